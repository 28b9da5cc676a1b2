// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// Eigen computes all eigenvalues and eigenvectors of a real symmetric matrix
// by cyclic Jacobi rotations.
//
// Implementation:
//   - Stage 1: ValidateSymmetric within the symmetry tolerance, then work on
//     the symmetrized copy (m + mᵀ)/2 so tiny drift never breaks convergence.
//   - Stage 2: sweep all pairs p<q in fixed order, annihilating A[p,q] with a
//     plane rotation and accumulating it into V.
//   - Stage 3: stop once off(A) ≤ eps·‖A‖_F; fail with ErrMatrixEigenFailed
//     after maxSweeps.
//   - Stage 4: sort eigenpairs by ascending eigenvalue (unless disabled).
//
// Returns:
//   - eigenvalues, and V whose column k is the unit eigenvector of value k.
//
// Complexity:
//   - O(n³) per sweep; a handful of sweeps for well-scaled input.
func Eigen(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(m, o.symmetryTol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	A, err := Symmetrize(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := A.r
	V, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	norm := FrobeniusNorm(A)
	threshold := o.eps * norm

	var (
		sweep, p, q, r int
		app, aqq, apq  float64
		arp, arq       float64
		vrp, vrq       float64
		theta, t, c, s float64
	)
	converged := false
	for sweep = 0; sweep < o.maxSweeps; sweep++ {
		if offDiagonal(A) <= threshold {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = A.data[p*n+q]
				if apq == 0 {
					continue
				}
				app = A.data[p*n+p]
				aqq = A.data[q*n+q]

				// θ = (aqq−app)/(2*apq), t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for r = 0; r < n; r++ {
					if r == p || r == q {
						continue
					}
					arp = A.data[r*n+p]
					arq = A.data[r*n+q]
					A.data[r*n+p] = c*arp - s*arq
					A.data[p*n+r] = A.data[r*n+p]
					A.data[r*n+q] = s*arp + c*arq
					A.data[q*n+r] = A.data[r*n+q]
				}
				A.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				A.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
				A.data[p*n+q], A.data[q*n+p] = 0, 0

				for r = 0; r < n; r++ {
					vrp = V.data[r*n+p]
					vrq = V.data[r*n+q]
					V.data[r*n+p] = c*vrp - s*vrq
					V.data[r*n+q] = s*vrp + c*vrq
				}
			}
		}
	}
	if !converged && offDiagonal(A) > threshold {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("%d sweeps: %w", o.maxSweeps, ErrMatrixEigenFailed))
	}

	vals := make([]float64, n)
	for r = 0; r < n; r++ {
		vals[r] = A.data[r*n+r]
	}
	if !o.sortAscending {
		return vals, V, nil
	}

	return sortEigenpairs(vals, V)
}

// offDiagonal returns √(Σ_{i≠j} A[i,j]²).
func offDiagonal(A *Dense) float64 {
	var acc float64
	var i, j int
	for i = 0; i < A.r; i++ {
		for j = 0; j < A.c; j++ {
			if i != j {
				acc += A.data[i*A.c+j] * A.data[i*A.c+j]
			}
		}
	}

	return math.Sqrt(acc)
}

// sortEigenpairs permutes eigenvalues ascending and moves V's columns along.
// sort.SliceStable keeps equal eigenvalues in Jacobi order (deterministic).
func sortEigenpairs(vals []float64, V *Dense) ([]float64, *Dense, error) {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	sortedVals := make([]float64, n)
	sortedV, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var k, r int
	for k = 0; k < n; k++ {
		sortedVals[k] = vals[idx[k]]
		for r = 0; r < n; r++ {
			sortedV.data[r*n+k] = V.data[r*n+idx[k]]
		}
	}

	return sortedVals, sortedV, nil
}
