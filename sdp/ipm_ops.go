// SPDX-License-Identifier: MIT

package sdp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/momsos/matrix"
)

// grid copies a Dense into row slices for the entry-wise hot loops.
func grid(d *matrix.Dense) [][]float64 {
	out := make([][]float64, d.Rows())
	for i := range out {
		out[i], _ = d.RawRow(i) // i is in range by construction
	}

	return out
}

// grids applies grid to every block.
func grids(blocks []*matrix.Dense) [][][]float64 {
	out := make([][][]float64, len(blocks))
	for k, b := range blocks {
		out[k] = grid(b)
	}

	return out
}

// zeroGrids allocates zero n_k×n_k row-slice blocks.
func zeroGrids(sizes []int) [][][]float64 {
	out := make([][][]float64, len(sizes))
	for k, n := range sizes {
		out[k] = make([][]float64, n)
		for i := range out[k] {
			out[k][i] = make([]float64, n)
		}
	}

	return out
}

// denseBlocks converts row-slice blocks back to Dense.
func denseBlocks(g [][][]float64) ([]*matrix.Dense, error) {
	out := make([]*matrix.Dense, len(g))
	var err error
	for k := range g {
		if out[k], err = matrix.NewDenseFrom(g[k]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// opA returns 𝒜(X) + A_f·xf; xf may be nil to skip the free part.
func (sf *standardForm) opA(X [][][]float64, xf []float64) []float64 {
	out := make([]float64, len(sf.rows))
	for i, row := range sf.rows {
		var s float64
		for _, e := range row {
			s += e.v * X[e.k][e.p][e.q]
		}
		if xf != nil {
			for _, fe := range sf.frees[i] {
				s += fe.v * xf[fe.f]
			}
		}
		out[i] = s
	}

	return out
}

// opAT returns 𝒜*(y) = Σ yᵢ·Aᵢ per block, and A_fᵀ·y.
func (sf *standardForm) opAT(y []float64) ([]*matrix.Dense, []float64, error) {
	g := zeroGrids(sf.sizes)
	free := make([]float64, sf.nFree)
	for i, row := range sf.rows {
		yi := y[i]
		if yi == 0 {
			continue
		}
		for _, e := range row {
			g[e.k][e.p][e.q] += yi * e.v
		}
		for _, fe := range sf.frees[i] {
			free[fe.f] += yi * fe.v
		}
	}
	blocks, err := denseBlocks(g)
	if err != nil {
		return nil, nil, err
	}

	return blocks, free, nil
}

// schur forms the HKM Schur complement M_ij = ⟨A_i, X·A_j·W⟩ with W = Z⁻¹:
//
//	M_ij = Σ_{e∈A_i} Σ_{e'∈A_j, same block} v·v'·X[p,p']·W[q',q]
//
// M is symmetric; only i ≤ j is computed.
func (sf *standardForm) schur(X, W [][][]float64) (*matrix.Dense, error) {
	m := len(sf.rows)
	M, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, err
	}
	var (
		i, j   int
		s      float64
		e, e2  entry
		xk, wk [][]float64
	)
	for i = 0; i < m; i++ {
		for j = i; j < m; j++ {
			s = 0
			for _, e = range sf.rows[i] {
				xk, wk = X[e.k], W[e.k]
				for _, e2 = range sf.rows[j] {
					if e2.k != e.k {
						continue
					}
					s += e.v * e2.v * xk[e.p][e2.p] * wk[e2.q][e.q]
				}
			}
			if err = M.Set(i, j, s); err != nil {
				return nil, err
			}
			if i != j {
				if err = M.Set(j, i, s); err != nil {
					return nil, err
				}
			}
		}
	}

	return M, nil
}

// kkt assembles [[M, A_f], [A_fᵀ, 0]].
func (sf *standardForm) kkt(M *matrix.Dense) (*matrix.Dense, error) {
	if sf.nFree == 0 {
		return M, nil
	}
	m := len(sf.rows)
	K, err := matrix.NewDense(m+sf.nFree, m+sf.nFree)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < m; i++ {
		for j = 0; j < m; j++ {
			v, _ = M.At(i, j)
			_ = K.Set(i, j, v)
		}
		for _, fe := range sf.frees[i] {
			_ = K.Set(i, m+fe.f, fe.v)
			_ = K.Set(m+fe.f, i, fe.v)
		}
	}

	return K, nil
}

// Regularization of a numerically singular Newton system: δ starts at
// regStart·max|K| and grows by regGrowth for regRungs tries, so the last
// rung is 1e-4·max|K|.
const (
	regStart    = 1e-12
	regGrowth   = 100
	regRungs    = 5
	refineSteps = 3
)

// newtonSystem solves the KKT system of one iteration. When LU rejects it as
// singular, the Schur block is shifted by +δ·I and the free block by −δ·I,
// and the solution is refined against the unshifted system. The δ found on
// the first solve is reused for the corrector.
type newtonSystem struct {
	K     *matrix.Dense
	reg   *matrix.Dense // nil while plain LU succeeds
	m     int           // Schur rows; rows ≥ m belong to free variables
	delta float64
}

func newNewtonSystem(K *matrix.Dense, m int) *newtonSystem {
	return &newtonSystem{K: K, m: m}
}

func (ns *newtonSystem) solve(rhs []float64) ([]float64, error) {
	if ns.reg == nil {
		sol, err := matrix.Solve(ns.K, rhs)
		if err == nil || !errors.Is(err, matrix.ErrSingular) {
			return sol, err
		}
		if err = ns.regularize(rhs); err != nil {
			return nil, err
		}
	}

	return ns.refine(rhs)
}

// regularize picks the smallest δ on the ladder for which LU succeeds.
func (ns *newtonSystem) regularize(rhs []float64) error {
	var scale float64
	ns.K.Do(func(_, _ int, v float64) bool {
		scale = math.Max(scale, math.Abs(v))

		return true
	})
	if scale == 0 {
		scale = 1
	}
	n := ns.K.Rows()
	d := regStart * scale
	for rung := 0; rung < regRungs; rung, d = rung+1, d*regGrowth {
		R := ns.K.Clone().(*matrix.Dense)
		for i := 0; i < n; i++ {
			v, _ := R.At(i, i)
			if i < ns.m {
				v += d
			} else {
				v -= d
			}
			if err := R.Set(i, i, v); err != nil {
				return err
			}
		}
		if _, err := matrix.Solve(R, rhs); err == nil {
			ns.reg, ns.delta = R, d

			return nil
		}
	}

	return fmt.Errorf("newton system singular up to δ = %g: %w", d/regGrowth, matrix.ErrSingular)
}

// refine solves with the shifted matrix and applies iterative refinement
// against K, keeping the iterate with the smallest residual.
func (ns *newtonSystem) refine(rhs []float64) ([]float64, error) {
	x, err := matrix.Solve(ns.reg, rhs)
	if err != nil {
		return nil, err
	}
	res, err := ns.residual(x, rhs)
	if err != nil {
		return nil, err
	}
	floor := 1e-14 * (1 + norm2(rhs))
	for step := 0; step < refineSteps && norm2(res) > floor; step++ {
		dx, err := matrix.Solve(ns.reg, res)
		if err != nil {
			return nil, err
		}
		next := axpy(x, 1, dx)
		nextRes, err := ns.residual(next, rhs)
		if err != nil {
			return nil, err
		}
		if norm2(nextRes) >= norm2(res) {
			break
		}
		x, res = next, nextRes
	}

	return x, nil
}

// residual is rhs − K·x.
func (ns *newtonSystem) residual(x, rhs []float64) ([]float64, error) {
	Kx, err := matrix.MatVec(ns.K, x)
	if err != nil {
		return nil, err
	}

	return axpy(rhs, -1, Kx), nil
}

// norm2 is the Euclidean norm.
func norm2(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}

	return math.Sqrt(s)
}

// dot is xᵀy.
func dot(x, y []float64) float64 {
	var s float64
	for i := range x {
		s += x[i] * y[i]
	}

	return s
}

// blocksNorm is √Σ‖B_k‖_F².
func blocksNorm(B []*matrix.Dense) float64 {
	var s float64
	for _, b := range B {
		f := matrix.FrobeniusNorm(b)
		s += f * f
	}

	return math.Sqrt(s)
}

// blocksDot is Σ⟨A_k, B_k⟩.
func blocksDot(A, B []*matrix.Dense) (float64, error) {
	var s float64
	for k := range A {
		d, err := matrix.Dot(A[k], B[k])
		if err != nil {
			return 0, err
		}
		s += d
	}

	return s, nil
}

// boundaryStep returns the largest α with X + α·ΔX ⪰ 0 for every block
// (+Inf when ΔX never leaves the cone). With X = L·Lᵀ the limit is
// −1/λ_min(L⁻¹·ΔX·L⁻ᵀ) when λ_min < 0.
func boundaryStep(X, dX []*matrix.Dense) (float64, error) {
	alpha := math.Inf(1)
	for k := range X {
		L, err := matrix.Cholesky(X[k])
		if err != nil {
			return 0, err
		}
		G, err := matrix.CongruenceInverse(L, dX[k])
		if err != nil {
			return 0, err
		}
		lo, err := matrix.MinEigenvalue(G)
		if err != nil {
			return 0, err
		}
		if lo < 0 {
			alpha = math.Min(alpha, -1/lo)
		}
	}

	return alpha, nil
}

// axpyBlocks returns A_k + α·B_k, symmetrized.
func axpyBlocks(A []*matrix.Dense, alpha float64, B []*matrix.Dense) ([]*matrix.Dense, error) {
	out := make([]*matrix.Dense, len(A))
	for k := range A {
		s, err := matrix.AddScaled(A[k], alpha, B[k])
		if err != nil {
			return nil, err
		}
		if out[k], err = matrix.Symmetrize(s); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// axpy returns x + α·y.
func axpy(x []float64, alpha float64, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + alpha*y[i]
	}

	return out
}

// mul3 returns A·B·C.
func mul3(A, B, C *matrix.Dense) (*matrix.Dense, error) {
	AB, err := matrix.Mul(A, B)
	if err != nil {
		return nil, err
	}

	return matrix.Mul(AB, C)
}
