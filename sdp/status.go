// SPDX-License-Identifier: MIT

package sdp

// Status is the outcome reported by a solver. The values match the status
// strings of common modelling layers so logs and tables stay familiar.
type Status string

const (
	Optimal              Status = "optimal"
	OptimalInaccurate    Status = "optimal_inaccurate"
	Infeasible           Status = "infeasible"
	InfeasibleInaccurate Status = "infeasible_inaccurate"
	Unbounded            Status = "unbounded"
	UnboundedInaccurate  Status = "unbounded_inaccurate"
	SolverError          Status = "solver_error"
)

// String returns the status token.
func (s Status) String() string { return string(s) }

// HasSolution reports whether primal values are available (optimal variants).
func (s Status) HasSolution() bool { return s == Optimal || s == OptimalInaccurate }

// IsInaccurate reports the weaker-evidence variants.
func (s Status) IsInaccurate() bool {
	return s == OptimalInaccurate || s == InfeasibleInaccurate || s == UnboundedInaccurate
}

// IsInfeasible reports either infeasible variant.
func (s Status) IsInfeasible() bool { return s == Infeasible || s == InfeasibleInaccurate }

// IsUnbounded reports either unbounded variant.
func (s Status) IsUnbounded() bool { return s == Unbounded || s == UnboundedInaccurate }

// IsError reports solver_error and any unknown token.
func (s Status) IsError() bool {
	return !s.HasSolution() && !s.IsInfeasible() && !s.IsUnbounded()
}

