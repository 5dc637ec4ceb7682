package depotassign

import "fmt"

// SolveOptions are solver-engine knobs independent of the model.
type SolveOptions struct {
	// TimeLimit in seconds; 0 means no limit. A solver-side timeout
	// surfaces as StatusNotSolved, never as an error in disguise.
	TimeLimit float64
}

// Backend is the mathematical-programming engine contract. A backend
// must always report a status; it must not swallow a non-optimal one.
// Implementations have to be safe for concurrent use: the sensitivity
// estimator runs several Solve calls in parallel, each with its own
// model.
type Backend interface {
	Name() string
	Solve(m *AssignmentModel, opt SolveOptions) (*SolveResult, error)
}

// NewBackend selects the engine by name.
func NewBackend(name string) (Backend, error) {
	switch name {
	case SOLVER_HIGHS:
		return highsBackend{}, nil
	case SOLVER_GUROBI:
		return gurobiBackend{}, nil
	default:
		return nil, fmt.Errorf("unsupported solver %q (want %s or %s)", name, SOLVER_HIGHS, SOLVER_GUROBI)
	}
}
