package depotassign

import (
	"fmt"
	"time"
)

// Solve runs the full pipeline against the configured backend:
// validate config and data, scale capacities, optionally inject the
// overflow depot, build the compatibility matrix, validate coverage
// and capacity, assemble the model, solve and extract.
func Solve(inst *Instance, cfg SolveConfig) (*Solution, error) {
	backend, err := NewBackend(cfg.Solver)
	if err != nil {
		return nil, err
	}
	return SolveWith(inst, cfg, backend)
}

// SolveWith is Solve with an explicit backend. The instance is never
// mutated; every invocation builds its own model, so concurrent calls
// with different configurations are safe.
func SolveWith(inst *Instance, cfg SolveConfig, backend Backend) (*Solution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateInstance(inst); err != nil {
		return nil, err
	}

	routes := inst.Routes
	depots := ScaleCapacities(inst.Depots, cfg.CapacityScale, cfg.CapacityOverride)
	distances, times := inst.Distances, inst.Times

	// The capacity check only means something without the overflow
	// depot; its unbounded capacity satisfies any demand trivially.
	if cfg.OverflowPenalty > 0 {
		depots, distances, times, err := WithOverflowDepot(routes, depots, distances, times, cfg.OverflowPenalty)
		if err != nil {
			return nil, err
		}
		return solvePrepared(inst, cfg, backend, routes, depots, distances, times)
	}
	if err := ValidateCapacity(routes, depots); err != nil {
		return nil, err
	}
	return solvePrepared(inst, cfg, backend, routes, depots, distances, times)
}

func solvePrepared(inst *Instance, cfg SolveConfig, backend Backend, routes []Route, depots []Depot, distances, times CostMatrix) (*Solution, error) {
	costs := distances
	if cfg.Objective == OBJECTIVE_TIME {
		costs = times
	}

	compat := BuildCompatibilityMatrix(routes, depots, costs, cfg.MaxDistanceKm)
	if err := ValidateCoverage(routes, depots, compat); err != nil {
		return nil, err
	}

	model, err := CreateAssignmentModel(routes, depots, compat, costs, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := backend.Solve(model, SolveOptions{TimeLimit: cfg.TimeLimit})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	switch res.Status {
	case StatusOptimal:
	case StatusInfeasible:
		// Validation passed, so this is a builder/validator mismatch,
		// not bad input data. Worth its own loud diagnostic.
		Log(1, "Internal inconsistency: model infeasible although coverage and capacity checks passed (instance %s)", inst.Name)
		return nil, ErrSolverInfeasible
	case StatusUnbounded:
		return nil, ErrSolverUnbounded
	default:
		return nil, fmt.Errorf("%w after %s", ErrNotSolved, elapsed)
	}

	sol, err := ExtractSolution(model, res)
	if err != nil {
		return nil, err
	}
	sol.Solver = backend.Name()
	sol.Time = elapsed.String()
	Log(2, "Optimal assignment found: objective %.2f, %d buses across %d depots",
		sol.Objective, sol.TotalBuses, len(sol.DepotSummary))
	return sol, nil
}
