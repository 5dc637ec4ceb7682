package depotassign

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSolverInfeasible is returned when the backend reports an
// infeasible model even though validation passed. That points at an
// inconsistency between validator and model builder, not at the data.
var ErrSolverInfeasible = errors.New("solver reported infeasible model after validation passed")

// ErrSolverUnbounded should never happen for a minimization with
// bounded variables; treated like an internal inconsistency.
var ErrSolverUnbounded = errors.New("solver reported unbounded model")

// ErrNotSolved covers timeouts, crashes and other environmental solver
// failures. The caller may retry once; retrying Infeasible is pointless.
var ErrNotSolved = errors.New("solver did not finish")

// NoCompatibleDepotError lists every route with no compatible depot, so
// the data can be fixed in one pass.
type NoCompatibleDepotError struct {
	Routes []string
}

func (e *NoCompatibleDepotError) Error() string {
	return fmt.Sprintf(
		"%d route(s) have no compatible depot: %s (fix the cost matrix or raise -max-distance-km)",
		len(e.Routes), strings.Join(e.Routes, ", "))
}

// CapacityDeficitError reports aggregate demand exceeding aggregate
// depot capacity when overflow mode is off.
type CapacityDeficitError struct {
	TotalPVR float64
	TotalCap float64
}

func (e *CapacityDeficitError) Shortfall() float64 {
	return e.TotalPVR - e.TotalCap
}

func (e *CapacityDeficitError) Error() string {
	return fmt.Sprintf(
		"insufficient capacity: total PVR %.0f > total capacity %.2f (shortfall %.2f buses; raise -capacity-scale, edit depot capacities or enable -overflow-penalty)",
		e.TotalPVR, e.TotalCap, e.Shortfall())
}

// Validate rejects configurations that would otherwise surface as a
// confusing model or solver error later.
func (c SolveConfig) Validate() error {
	switch c.Objective {
	case OBJECTIVE_DISTANCE, OBJECTIVE_TIME:
	default:
		return fmt.Errorf("unsupported objective %q (want %s or %s)", c.Objective, OBJECTIVE_DISTANCE, OBJECTIVE_TIME)
	}
	switch c.Mode {
	case MODE_INTEGER, MODE_RELAX, MODE_KMAX:
	default:
		return fmt.Errorf("unsupported mode %q (want %s, %s or %s)", c.Mode, MODE_INTEGER, MODE_RELAX, MODE_KMAX)
	}
	if c.Mode == MODE_KMAX && c.Kmax <= 0 {
		return fmt.Errorf("mode %s requires -kmax > 0, got %d", MODE_KMAX, c.Kmax)
	}
	if c.CapacityScale <= 0 {
		return fmt.Errorf("capacity scale must be positive, got %g", c.CapacityScale)
	}
	if c.MaxDistanceKm < 0 {
		return fmt.Errorf("max distance must be positive, got %g", c.MaxDistanceKm)
	}
	// The ceiling is a distance in km. Comparing it against travel
	// minutes would silently mix units, so the combination is rejected.
	if c.MaxDistanceKm > 0 && c.Objective != OBJECTIVE_DISTANCE {
		return fmt.Errorf("-max-distance-km only applies to the %s objective; drop it or switch -objective", OBJECTIVE_DISTANCE)
	}
	if c.OverflowPenalty < 0 {
		return fmt.Errorf("overflow penalty must be positive, got %g", c.OverflowPenalty)
	}
	switch c.Solver {
	case SOLVER_HIGHS, SOLVER_GUROBI:
	default:
		return fmt.Errorf("unsupported solver %q (want %s or %s)", c.Solver, SOLVER_HIGHS, SOLVER_GUROBI)
	}
	return nil
}

// ValidateInstance checks the raw input data before any model work.
func ValidateInstance(inst *Instance) error {
	if len(inst.Routes) == 0 {
		return errors.New("instance has no routes")
	}
	if len(inst.Depots) == 0 {
		return errors.New("instance has no depots")
	}
	seen := make(map[string]bool, len(inst.Routes))
	for _, r := range inst.Routes {
		if r.PVR < 0 {
			return fmt.Errorf("route %s has negative PVR %d", r.ID, r.PVR)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate route id %s", r.ID)
		}
		seen[r.ID] = true
	}
	seenD := make(map[string]bool, len(inst.Depots))
	for _, p := range inst.Depots {
		if p.Capacity < 0 {
			return fmt.Errorf("depot %s has negative capacity %g", p.ID, p.Capacity)
		}
		if p.ID == OverflowDepotID {
			return fmt.Errorf("depot id %q is reserved for the synthetic overflow depot", OverflowDepotID)
		}
		if seenD[p.ID] {
			return fmt.Errorf("duplicate depot id %s", p.ID)
		}
		seenD[p.ID] = true
	}
	return nil
}

// ValidateCoverage requires every route to have at least one compatible
// depot. All offending routes are collected before failing.
func ValidateCoverage(routes []Route, depots []Depot, compat *CompatibilityMatrix) error {
	var uncovered []string
	for _, r := range routes {
		covered := false
		for _, p := range depots {
			if compat.Compatible(r.ID, p.ID) {
				covered = true
				break
			}
		}
		if !covered {
			uncovered = append(uncovered, r.ID)
		}
	}
	if len(uncovered) > 0 {
		return &NoCompatibleDepotError{Routes: uncovered}
	}
	return nil
}

// ValidateCapacity requires aggregate demand to fit aggregate capacity.
// Call it on the scaled real depots, before the overflow depot is
// added; with overflow enabled the check is skipped by the pipeline.
func ValidateCapacity(routes []Route, depots []Depot) error {
	totalPVR := 0.0
	for _, r := range routes {
		totalPVR += float64(r.PVR)
	}
	totalCap := 0.0
	for _, p := range depots {
		totalCap += p.Capacity
	}
	if totalPVR > totalCap {
		return &CapacityDeficitError{TotalPVR: totalPVR, TotalCap: totalCap}
	}
	return nil
}

// ScaleCapacities applies the multiplicative scale and any per-depot
// absolute overrides. Overrides win over scaling; scaled values stay
// real-valued, the capacity constraint tolerates a fractional bound.
func ScaleCapacities(depots []Depot, scale float64, override map[string]float64) []Depot {
	scaled := make([]Depot, len(depots))
	for i, p := range depots {
		cap := p.Capacity * scale
		if v, ok := override[p.ID]; ok {
			cap = v
		}
		if cap < 0 {
			cap = 0
		}
		scaled[i] = Depot{ID: p.ID, Capacity: cap}
	}
	return scaled
}
