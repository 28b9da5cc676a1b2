// SPDX-License-Identifier: MIT

package sdp

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/momsos/matrix"
)

// ipm is the built-in primal-dual interior-point backend.
//
// Algorithm (infeasible-start, HKM direction, Mehrotra predictor-corrector):
//  1. Start from X_k = ξ_k·I, Z_k = η_k·I, y = 0, x_f = 0.
//  2. Each iteration forms the Schur complement M_ij = ⟨A_i, X·A_j·Z⁻¹⟩ and
//     solves [[M, A_f], [A_fᵀ, 0]]·[Δy; Δx_f] = [h; r_f] twice: once for the
//     affine-scaling predictor (σ = 0), once for the corrector with
//     σ = (μ_aff/μ)³ and the second-order term ΔX_aff·ΔZ_aff·Z⁻¹.
//  3. Step lengths keep X and Z inside the cone (factor stepFactor of the
//     distance to the boundary, capped at 1).
//  4. Stop when relative primal/dual residuals and relative gap are below
//     Config.Tolerance, or when an infeasibility certificate appears.
//  5. A numerically singular Newton system is shifted by δ·I and refined
//     (newtonSystem) before the loop gives up.
//
// Feasibility models are solved through a margin-maximization phase
// (standardForm.withPhaseOne); Solution.Margin reports the optimal margin.
type ipm struct {
	cfg Config
	log *slog.Logger
}

const (
	stepFactor = 0.95
	minStep    = 1e-10
)

func newIPM(cfg Config) *ipm {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &ipm{cfg: cfg, log: cfg.Logger.With("backend", "ipm")}
}

// iterate is one measured point of the interior-point loop.
type iterate struct {
	X, Z            []*matrix.Dense
	xf, y           []float64
	pobj, dobj      float64
	relP, relD, gap float64
}

// score is the worst of the three termination measures.
func (it *iterate) score() float64 { return math.Max(it.relP, math.Max(it.relD, it.gap)) }

// ipmResult is the raw outcome on a standard form.
type ipmResult struct {
	iterate
	status     Status
	iterations int
}

// Solve implements Solver.
func (s *ipm) Solve(ctx context.Context, m *Model) (*Solution, error) {
	sf, verdict, err := compile(m)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case trivialInfeasible:
		s.log.Debug("constant constraint violated", "constraints", len(m.constraints))

		return newSolution(Infeasible), nil
	case trivialUnbounded:
		s.log.Debug("objective variable appears in no constraint")

		return newSolution(Unbounded), nil
	}

	if m.sense == Feasibility {
		return s.solveFeasibility(ctx, m, sf)
	}
	if sf.numRows() == 0 {
		return nil, sdpErrorf("ipm", fmt.Errorf("objective without constraints: %w", ErrInvalidModel))
	}

	res, err := s.run(ctx, sf)
	if err != nil {
		return nil, err
	}
	sol := res.solution()
	if sol.Status.HasSolution() {
		sol.Objective = sf.objSign*res.pobj + sf.objConst
		fill(sol, m, sf, res.X, res.xf, 0)
	}

	return sol, nil
}

// solveFeasibility runs the margin problem and maps its optimum t* back.
func (s *ipm) solveFeasibility(ctx context.Context, m *Model, sf *standardForm) (*Solution, error) {
	ph := sf.withPhaseOne()
	res, err := s.run(ctx, ph)
	if err != nil {
		return nil, err
	}
	sol := res.solution()
	if !res.status.HasSolution() {
		// The margin problem is bounded by construction, so "unbounded" means breakdown.
		if res.status.IsUnbounded() {
			sol.Status = SolverError
		}

		return sol, nil
	}

	t := res.xf[sf.nFree]
	sol.Margin = t
	sol.Objective = 0
	s.log.Debug("feasibility margin", "margin", t, "status", res.status)
	if t < -s.cfg.FeasibilityTolerance {
		sol.Status = Infeasible
		if res.status.IsInaccurate() {
			sol.Status = InfeasibleInaccurate
		}

		return sol, nil
	}
	fill(sol, m, sf, res.X[:len(sf.sizes)], res.xf[:sf.nFree], t)

	return sol, nil
}

// solution converts a raw result into a Solution without values.
func (r *ipmResult) solution() *Solution {
	sol := newSolution(r.status)
	sol.Iterations = r.iterations
	sol.PrimalResidual, sol.DualResidual, sol.Gap = r.relP, r.relD, r.gap

	return sol
}

// fill copies block and scalar values into sol. shift is added to every
// block diagonal (X = S + shift·I for the margin problem).
func fill(sol *Solution, m *Model, sf *standardForm, X []*matrix.Dense, xf []float64, shift float64) {
	sol.blocks = make([]*matrix.Dense, len(m.blocks))
	for k := range m.blocks {
		b := X[k].Clone().(*matrix.Dense)
		if shift != 0 {
			if I, err := matrix.NewScaledIdentity(b.Rows(), shift); err == nil {
				b, _ = matrix.Add(b, I)
			}
		}
		sol.blocks[k] = b
	}
	sol.values = make([]float64, len(m.refs))
	for id, r := range m.refs {
		switch r.kind {
		case kindBlock:
			sol.values[id], _ = sol.blocks[r.index].At(r.i, r.j)
		case kindScalar:
			if f := sf.freeOf[r.index]; f >= 0 {
				sol.values[id] = xf[f]
			}
		}
	}
}

// run is the interior-point loop on a standard form. A loop that stops
// without converging (iteration cap, stalled steps, a Newton system that
// stays singular after regularization) reports its best measured iterate,
// graded against Config.InaccurateTolerance.
func (s *ipm) run(ctx context.Context, sf *standardForm) (*ipmResult, error) {
	var (
		K     = len(sf.sizes)
		nrow  = sf.numRows()
		N     = float64(sf.order())
		tol   = s.cfg.Tolerance
		loose = math.Max(tol, s.cfg.InaccurateTolerance)
	)

	X, Z, err := s.start(sf)
	if err != nil {
		return nil, sdpErrorf("ipm", fmt.Errorf("%w: %w", ErrSolverFailure, err))
	}
	y := make([]float64, nrow)
	xf := make([]float64, sf.nFree)

	normB := norm2(sf.b)
	normC := math.Sqrt(math.Pow(blocksNorm(sf.C), 2) + math.Pow(norm2(sf.cf), 2))

	res := &ipmResult{status: SolverError}
	primalInf, dualInf := math.Inf(1), math.Inf(1)
	var (
		cur, best            *iterate
		rp, rf               []float64
		Rd                   []*matrix.Dense
		mu                   float64
		converged, brokeDown bool
		alphaP, alphaD       float64
		iter, regularized    int
	)

	for iter = 0; iter < s.cfg.MaxIterations; iter++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		// --- residuals and objectives ---
		xg := grids(X)
		Ax := sf.opA(xg, xf)
		rp = axpy(sf.b, -1, Ax)
		ATy, ATyf, err := sf.opAT(y)
		if err != nil {
			brokeDown = true

			break
		}
		Rd = make([]*matrix.Dense, K)
		for k := range Rd {
			cz, err := matrix.Sub(sf.C[k], Z[k])
			if err == nil {
				Rd[k], err = matrix.Sub(cz, ATy[k])
			}
			if err != nil {
				return nil, sdpErrorf("ipm", err)
			}
		}
		rf = axpy(sf.cf, -1, ATyf)

		cur = &iterate{X: X, Z: Z, xf: xf, y: y}
		cx, _ := blocksDot(sf.C, X)
		cur.pobj = cx + dot(sf.cf, xf)
		cur.dobj = dot(sf.b, y)
		xz, _ := blocksDot(X, Z)
		mu = xz / N

		cur.relP = norm2(rp) / (1 + normB)
		cur.relD = math.Sqrt(math.Pow(blocksNorm(Rd), 2)+math.Pow(norm2(rf), 2)) / (1 + normC)
		cur.gap = math.Abs(cur.pobj-cur.dobj) / (1 + math.Abs(cur.pobj) + math.Abs(cur.dobj))

		// Certificates: 𝒜*(y) + Z = C − R_d and A_fᵀy = c_f − r_f.
		primalInf, dualInf = math.Inf(1), math.Inf(1)
		if cur.dobj > 0 {
			ray := make([]*matrix.Dense, K)
			for k := range ray {
				ray[k], _ = matrix.Sub(sf.C[k], Rd[k])
			}
			primalInf = math.Sqrt(math.Pow(blocksNorm(ray), 2)+math.Pow(norm2(axpy(sf.cf, -1, rf)), 2)) / cur.dobj
		}
		if cur.pobj < 0 {
			dualInf = norm2(Ax) / -cur.pobj
		}

		if s.cfg.Verbose {
			s.log.Debug("ipm iteration",
				"iter", iter, "pobj", cur.pobj, "dobj", cur.dobj,
				"relP", cur.relP, "relD", cur.relD, "gap", cur.gap, "mu", mu,
				"alphaP", alphaP, "alphaD", alphaD)
		}
		if math.IsNaN(mu) || math.IsNaN(cur.score()) {
			brokeDown = true

			break
		}
		if best == nil || cur.score() < best.score() {
			best = cur
		}
		if cur.relP < tol && cur.relD < tol && cur.gap < tol {
			converged = true

			break
		}
		if primalInf < tol {
			res.status = Infeasible

			break
		}
		if dualInf < tol {
			res.status = Unbounded

			break
		}

		// --- Newton system ---
		W := make([]*matrix.Dense, K)
		for k := range Z {
			if W[k], err = matrix.InverseSPD(Z[k]); err != nil {
				break
			}
		}
		if err != nil {
			brokeDown = true

			break
		}
		wg := grids(W)
		M, err := sf.schur(xg, wg)
		if err != nil {
			return nil, sdpErrorf("ipm", err)
		}
		KKT, err := sf.kkt(M)
		if err != nil {
			return nil, sdpErrorf("ipm", err)
		}
		newton := newNewtonSystem(KKT, nrow)
		XRdW := make([]*matrix.Dense, K)
		for k := range X {
			if XRdW[k], err = mul3(X[k], Rd[k], W[k]); err != nil {
				return nil, sdpErrorf("ipm", err)
			}
		}

		// direction solves the system for H_k = base_k − XRdW_k.
		direction := func(base []*matrix.Dense) (dX, dZ []*matrix.Dense, dy, dxf []float64, err error) {
			H := make([]*matrix.Dense, K)
			for k := range H {
				if H[k], err = matrix.Sub(base[k], XRdW[k]); err != nil {
					return
				}
			}
			hg := grids(H)
			h := axpy(rp, -1, sf.opA(hg, nil))
			rhs := append(h, rf...)
			sol, err := newton.solve(rhs)
			if err != nil {
				return
			}
			dy, dxf = sol[:nrow], sol[nrow:]
			ATdy, _, err := sf.opAT(dy)
			if err != nil {
				return
			}
			dX = make([]*matrix.Dense, K)
			dZ = make([]*matrix.Dense, K)
			for k := range H {
				if dZ[k], err = matrix.Sub(Rd[k], ATdy[k]); err != nil {
					return
				}
				var XAW, sum *matrix.Dense
				if XAW, err = mul3(X[k], ATdy[k], W[k]); err != nil {
					return
				}
				if sum, err = matrix.Add(H[k], XAW); err != nil {
					return
				}
				if dX[k], err = matrix.Symmetrize(sum); err != nil {
					return
				}
			}

			return
		}

		// predictor: base = −X
		base := make([]*matrix.Dense, K)
		for k := range X {
			base[k], _ = matrix.Scale(X[k], -1)
		}
		dXa, dZa, _, _, err := direction(base)
		if err != nil {
			s.log.Debug("newton system failed", "iter", iter, "error", err)
			brokeDown = true

			break
		}
		if newton.reg != nil {
			regularized++
			if s.cfg.Verbose {
				s.log.Debug("newton system regularized", "iter", iter, "delta", newton.delta)
			}
		}
		ap, err1 := boundaryStep(X, dXa)
		ad, err2 := boundaryStep(Z, dZa)
		if err1 != nil || err2 != nil {
			brokeDown = true

			break
		}
		ap, ad = math.Min(1, ap), math.Min(1, ad)
		Xa, err1 := axpyBlocks(X, ap, dXa)
		Za, err2 := axpyBlocks(Z, ad, dZa)
		if err1 != nil || err2 != nil {
			brokeDown = true

			break
		}
		xzAff, _ := blocksDot(Xa, Za)
		sigma := math.Pow(math.Max(xzAff, 0)/(mu*N), 3)
		sigma = math.Min(1, sigma)

		// corrector: base = σμW − X − ΔX_aff·ΔZ_aff·W
		for k := range X {
			corr, err := mul3(dXa[k], dZa[k], W[k])
			if err != nil {
				return nil, sdpErrorf("ipm", err)
			}
			smw, _ := matrix.Scale(W[k], sigma*mu)
			b1, _ := matrix.Sub(smw, X[k])
			if base[k], err = matrix.Sub(b1, corr); err != nil {
				return nil, sdpErrorf("ipm", err)
			}
		}
		dX, dZ, dy, dxf, err := direction(base)
		if err != nil {
			s.log.Debug("newton system failed", "iter", iter, "error", err)
			brokeDown = true

			break
		}
		ap, err1 = boundaryStep(X, dX)
		ad, err2 = boundaryStep(Z, dZ)
		if err1 != nil || err2 != nil {
			brokeDown = true

			break
		}
		alphaP = math.Min(1, stepFactor*ap)
		alphaD = math.Min(1, stepFactor*ad)

		nX, err1 := axpyBlocks(X, alphaP, dX)
		nZ, err2 := axpyBlocks(Z, alphaD, dZ)
		if err1 != nil || err2 != nil {
			brokeDown = true

			break
		}
		X, Z = nX, nZ
		xf = axpy(xf, alphaP, dxf)
		y = axpy(y, alphaD, dy)

		if alphaP < minStep && alphaD < minStep {
			// no progress possible
			iter++

			break
		}
	}
	res.iterations = iter

	switch {
	case best == nil:
		// breakdown before the first measurement
		if cur != nil {
			res.iterate = *cur
		}
	case converged, res.status == Infeasible, res.status == Unbounded:
		res.iterate = *cur
	default:
		res.iterate = *best
	}

	switch {
	case converged:
		res.status = Optimal
	case res.status == Infeasible || res.status == Unbounded:
	case best != nil && best.relP < loose && best.relD < loose && best.gap < loose:
		res.status = OptimalInaccurate
	case primalInf < loose:
		res.status = InfeasibleInaccurate
	case dualInf < loose:
		res.status = UnboundedInaccurate
	default:
		res.status = SolverError
	}
	s.log.Debug("ipm finished",
		"status", res.status, "iterations", res.iterations, "brokeDown", brokeDown, "regularized", regularized,
		"pobj", res.pobj, "dobj", res.dobj, "relP", res.relP, "relD", res.relD, "gap", res.gap)

	return res, nil
}

// start returns the initial point X_k = ξ_k·I, Z_k = η_k·I:
//
//	ξ_k = max(10, √n_k, n_k·maxᵢ (1+|bᵢ|)/(1+‖A_i^k‖_F))
//	η_k = max(10, √n_k, 1 + max(‖C_k‖_F, maxᵢ ‖A_i^k‖_F))
func (s *ipm) start(sf *standardForm) (X, Z []*matrix.Dense, err error) {
	K := len(sf.sizes)
	normA := make([][]float64, len(sf.rows)) // normA[i][k]
	for i, row := range sf.rows {
		normA[i] = make([]float64, K)
		for _, e := range row {
			normA[i][e.k] += e.v * e.v
		}
		for k := range normA[i] {
			normA[i][k] = math.Sqrt(normA[i][k])
		}
	}
	X = make([]*matrix.Dense, K)
	Z = make([]*matrix.Dense, K)
	for k, n := range sf.sizes {
		fn := float64(n)
		xi := math.Max(10, math.Sqrt(fn))
		eta := math.Max(10, math.Sqrt(fn))
		maxA := matrix.FrobeniusNorm(sf.C[k])
		for i := range sf.rows {
			xi = math.Max(xi, fn*(1+math.Abs(sf.b[i]))/(1+normA[i][k]))
			maxA = math.Max(maxA, normA[i][k])
		}
		eta = math.Max(eta, 1+maxA)
		if X[k], err = matrix.NewScaledIdentity(n, xi); err != nil {
			return nil, nil, err
		}
		if Z[k], err = matrix.NewScaledIdentity(n, eta); err != nil {
			return nil, nil, err
		}
	}

	return X, Z, nil
}
