// SPDX-License-Identifier: MIT

package sdp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/momsos/matrix"
)

// Standard form handled by the interior-point backend:
//
//	minimize   ⟨C, X⟩ + c_fᵀ x_f
//	subject to 𝒜(X) + A_f x_f = b,   X = diag(X_1,…,X_K) ⪰ 0,  x_f free
//
// with 𝒜(X)_i = Σ_k ⟨A_i^k, X_k⟩. Each A_i^k is stored as sparse symmetric
// entries: a coefficient a on the off-diagonal variable (p,q) becomes a/2 at
// both (p,q) and (q,p), so ⟨A_i^k, X_k⟩ reproduces a·X_k[p,q].

// entry is one stored element of a constraint matrix A_i^k.
type entry struct {
	k, p, q int
	v       float64
}

// fentry is one coefficient of a free variable in a constraint row.
type fentry struct {
	f int
	v float64
}

// standardForm is a compiled Model.
type standardForm struct {
	sizes []int      // block sizes n_k
	rows  [][]entry  // per constraint i: entries of A_i
	frees [][]fentry // per constraint i: entries of row i of A_f
	b     []float64
	C     []*matrix.Dense
	cf    []float64
	nFree int

	objConst float64 // model objective = objSign·(⟨C,X⟩ + c_fᵀx_f) + objConst
	objSign  float64

	freeOf []int // model scalar index -> free column, -1 when dropped
}

// trivial is the verdict on constant-only rows found while compiling.
type trivial int

const (
	trivialNone       trivial = iota
	trivialInfeasible         // some row reads c == 0 with c ≠ 0
	trivialUnbounded          // a free variable with cost but no constraint
)

// constTol decides whether a variable-free row 0 == c holds.
const constTol = 1e-12

// compile lowers m into standard form.
func compile(m *Model) (*standardForm, trivial, error) {
	if err := m.Validate(); err != nil {
		return nil, trivialNone, err
	}
	sf := &standardForm{
		sizes:   make([]int, len(m.blocks)),
		C:       make([]*matrix.Dense, len(m.blocks)),
		objSign: 1,
		freeOf:  make([]int, len(m.scalars)),
	}
	for k, blk := range m.blocks {
		sf.sizes[k] = blk.n
		C, err := matrix.NewDense(blk.n, blk.n)
		if err != nil {
			return nil, trivialNone, sdpErrorf("compile", err)
		}
		sf.C[k] = C
	}

	// Free columns only for scalars that some constraint references.
	used := make([]bool, len(m.scalars))
	for _, c := range m.constraints {
		for v := range c.Expr.Terms() {
			if r := m.refs[v]; r.kind == kindScalar {
				used[r.index] = true
			}
		}
	}
	for s := range m.scalars {
		sf.freeOf[s] = -1
		if used[s] {
			sf.freeOf[s] = sf.nFree
			sf.nFree++
		}
	}
	sf.cf = make([]float64, sf.nFree)

	verdict := trivialNone
	for _, c := range m.constraints {
		if c.Expr.IsConstant() {
			if math.Abs(c.Expr.Const()) > constTol {
				verdict = trivialInfeasible
			}

			continue
		}
		var (
			row  []entry
			frow []fentry
		)
		for v, a := range c.Expr.Terms() {
			r := m.refs[v]
			switch {
			case r.kind == kindScalar:
				frow = append(frow, fentry{f: sf.freeOf[r.index], v: a})
			case r.i == r.j:
				row = append(row, entry{k: r.index, p: r.i, q: r.i, v: a})
			default:
				row = append(row,
					entry{k: r.index, p: r.i, q: r.j, v: a / 2},
					entry{k: r.index, p: r.j, q: r.i, v: a / 2})
			}
		}
		sf.rows = append(sf.rows, row)
		sf.frees = append(sf.frees, frow)
		sf.b = append(sf.b, -c.Expr.Const())
	}

	// Objective, always as a minimization.
	obj := m.objective
	if m.sense == Maximize {
		sf.objSign = -1
	}
	sf.objConst = obj.Const()
	for v, a := range obj.Terms() {
		a *= sf.objSign
		r := m.refs[v]
		switch {
		case r.kind == kindScalar:
			f := sf.freeOf[r.index]
			if f < 0 {
				if a != 0 && verdict == trivialNone {
					verdict = trivialUnbounded
				}

				continue
			}
			sf.cf[f] += a
		case r.i == r.j:
			cur, _ := sf.C[r.index].At(r.i, r.i)
			_ = sf.C[r.index].Set(r.i, r.i, cur+a)
		default:
			cur, _ := sf.C[r.index].At(r.i, r.j)
			_ = sf.C[r.index].Set(r.i, r.j, cur+a/2)
			_ = sf.C[r.index].Set(r.j, r.i, cur+a/2)
		}
	}
	if len(sf.sizes) == 0 {
		return nil, trivialNone, sdpErrorf("compile", fmt.Errorf("no PSD block: %w", ErrInvalidModel))
	}

	return sf, verdict, nil
}

// withPhaseOne returns the margin-maximization problem of a feasibility
// form:
//
//	maximize t  s.t.  𝒜(S) + t·a_t + A_f x_f = b,  t + u = 1,  S ⪰ 0, u ≥ 0
//
// where X_k = S_k + t·I and a_t[i] = Σ_k tr(A_i^k). The optimum t* is the
// best achievable λ_min over all feasible points, capped at 1. The extra 1×1
// block u is appended last; t is the last free column.
func (sf *standardForm) withPhaseOne() *standardForm {
	K := len(sf.sizes)
	out := &standardForm{
		sizes:    append(append([]int(nil), sf.sizes...), 1),
		rows:     make([][]entry, 0, len(sf.rows)+1),
		frees:    make([][]fentry, 0, len(sf.rows)+1),
		b:        append(append([]float64(nil), sf.b...), 1),
		C:        make([]*matrix.Dense, K+1),
		cf:       make([]float64, sf.nFree+1),
		nFree:    sf.nFree + 1,
		objSign:  1,
		objConst: 0,
		freeOf:   sf.freeOf,
	}
	for k, n := range out.sizes {
		out.C[k], _ = matrix.NewDense(n, n)
	}
	t := sf.nFree
	for i, row := range sf.rows {
		var trace float64
		for _, e := range row {
			if e.p == e.q {
				trace += e.v
			}
		}
		out.rows = append(out.rows, row)
		frow := append([]fentry(nil), sf.frees[i]...)
		if trace != 0 {
			frow = append(frow, fentry{f: t, v: trace})
		}
		out.frees = append(out.frees, frow)
	}
	out.rows = append(out.rows, []entry{{k: K, p: 0, q: 0, v: 1}})
	out.frees = append(out.frees, []fentry{{f: t, v: 1}})
	out.cf[t] = -1

	return out
}

// numRows is the number of equality constraints.
func (sf *standardForm) numRows() int { return len(sf.b) }

// order is Σ n_k, the barrier parameter normalizer.
func (sf *standardForm) order() int {
	s := 0
	for _, n := range sf.sizes {
		s += n
	}

	return s
}
