package depotassign

import (
	"fmt"
	"math"
)

// IntTolerance is how far a solver value may sit from an integer before
// the solution is rejected instead of rounded.
const IntTolerance = 1e-4

// ExtractSolution turns an optimal backend result into the structured
// solution output. In the integer modes values are rounded to absorb
// floating-point noise; a value further than IntTolerance from an
// integer is a hard error rather than silent data corruption.
func ExtractSolution(m *AssignmentModel, res *SolveResult) (*Solution, error) {
	if res.Status != StatusOptimal {
		return nil, fmt.Errorf("cannot extract from a %s result", res.Status)
	}
	if len(res.X) < len(m.Pairs) {
		return nil, fmt.Errorf("backend returned %d values for %d variables", len(res.X), m.VarCount)
	}

	integral := m.Mode != MODE_RELAX
	sol := &Solution{
		Status:      res.Status.String(),
		Objective:   res.Objective,
		Mode:        m.Mode,
		RouteCount:  len(m.Routes),
		DepotCount:  len(m.Depots),
		ViablePairs: len(m.Pairs),
	}

	buses := make(map[string]float64, len(m.Depots))
	for i, pair := range m.Pairs {
		v := res.X[i]
		if integral {
			rounded := math.Round(v)
			if math.Abs(v-rounded) > IntTolerance {
				return nil, fmt.Errorf("variable %s has non-integral value %g in %s mode", m.VarNames[i], v, m.Mode)
			}
			v = rounded
		}
		if v <= 0 {
			continue
		}
		cost, _ := m.Costs.Cost(pair.Depot, pair.Route)
		sol.Assignments = append(sol.Assignments, Assignment{
			Route:    pair.Route,
			Depot:    pair.Depot,
			Buses:    int(math.Round(v)),
			UnitCost: cost,
		})
		buses[pair.Depot] += v
	}

	for _, p := range m.Depots {
		b := buses[p.ID]
		if b <= 0 {
			continue
		}
		load := DepotLoad{Depot: p.ID, Buses: int(math.Round(b)), Capacity: p.Capacity}
		sol.DepotSummary = append(sol.DepotSummary, load)
		sol.TotalBuses += load.Buses
		if p.ID == OverflowDepotID {
			sol.OverflowBuses = load.Buses
		}
	}

	sol.ShadowPrices = CapacityDuals(m, res)
	sol.ReducedCosts = PairReducedCosts(m, res)
	return sol, nil
}

// CapacityDuals reads the per-depot shadow prices through the
// constraint-name reverse index. Best effort: when the backend exposed
// no row duals every entry is explicitly marked unavailable.
func CapacityDuals(m *AssignmentModel, res *SolveResult) []ShadowPrice {
	duals := make([]ShadowPrice, 0, len(m.Depots))
	for _, p := range m.Depots {
		sp := ShadowPrice{Depot: p.ID}
		if res.RowDuals != nil {
			if row, ok := m.CapacityRow[p.ID]; ok && row < len(res.RowDuals) {
				sp.Price = res.RowDuals[row]
				sp.Available = true
			}
		}
		duals = append(duals, sp)
	}
	return duals
}

// PairReducedCosts keys the backend's column duals back to the owning
// route-depot pair. Same degradation contract as CapacityDuals.
func PairReducedCosts(m *AssignmentModel, res *SolveResult) []ReducedCost {
	out := make([]ReducedCost, 0, len(m.Pairs))
	for i, pair := range m.Pairs {
		rc := ReducedCost{Route: pair.Route, Depot: pair.Depot}
		if res.ColDuals != nil && i < len(res.ColDuals) {
			rc.Cost = res.ColDuals[i]
			rc.Available = true
		}
		out = append(out, rc)
	}
	return out
}
