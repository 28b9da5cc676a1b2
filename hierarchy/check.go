// SPDX-License-Identifier: MIT

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/momsos/matrix"
	"github.com/katalvlaran/momsos/poly"
	"github.com/katalvlaran/momsos/sdp"
	"github.com/katalvlaran/momsos/sos"
)

// SosCheck is the answer of IsSos.
type SosCheck struct {
	IsSos   bool
	Status  sdp.Status
	Margin  float64 // smallest Gram eigenvalue the solver could reach; NaN if unknown
	Level   int     // half degree of the candidate, ceil(deg/2)
	Gram    *matrix.Dense
	Squares []sos.Square
}

// squareTol drops Gram eigenvalues below it when decomposing a certificate.
const squareTol = 1e-9

// IsSos decides whether target is a sum of squares of polynomials of degree
// ceil(deg target / 2). When it is, the certificate's Gram matrix and its
// weighted squares are returned too.
//
// Errors: ErrSolverFailure for unbounded or solver_error statuses;
// ctx.Err() on cancellation.
func (d *Driver) IsSos(ctx context.Context, target *poly.Polynomial[poly.Real]) (*SosCheck, error) {
	half := (target.Degree() + 1) / 2
	m := sdp.NewModel()
	cand, err := sos.SumOfSquares(m, poly.Lift(target), half)
	if err != nil {
		return nil, hierarchyErrorf("IsSos", err)
	}
	sol, err := d.solver.Solve(ctx, m)
	if err != nil {
		return nil, hierarchyErrorf("IsSos", err)
	}
	out := &SosCheck{Status: sol.Status, Margin: sol.Margin, Level: half}
	d.log.Info("sos check", "target", target.String(), "level", half, "status", sol.Status, "margin", sol.Margin)
	if err = checkStatus(sol.Status); err != nil {
		return out, hierarchyErrorf("IsSos", err)
	}
	if !sol.Status.HasSolution() {
		return out, nil
	}

	out.IsSos = true
	if out.Gram, _, err = cand.Numeric(sol); err != nil {
		return out, hierarchyErrorf("IsSos", err)
	}
	if out.Squares, err = sos.Decompose(out.Gram, cand.Basis, squareTol); err != nil {
		if !errors.Is(err, matrix.ErrMatrixEigenFailed) {
			return out, hierarchyErrorf("IsSos", err)
		}
		d.log.Warn("gram decomposition failed", "error", err)
	}
	if math.IsNaN(out.Margin) {
		if lo, err := matrix.MinEigenvalue(out.Gram); err == nil {
			out.Margin = lo
		}
	}

	return out, nil
}

// String summarizes the check for logs and the CLI.
func (c *SosCheck) String() string {
	return fmt.Sprintf("sos=%t status=%s level=%d margin=%.3g squares=%d", c.IsSos, c.Status, c.Level, c.Margin, len(c.Squares))
}
