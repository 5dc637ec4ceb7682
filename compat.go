package depotassign

import "math"

// CompatibilityMatrix is the boolean relation A[r,p]. Only viable pairs
// are stored; any pair not recorded is incompatible.
type CompatibilityMatrix struct {
	viable map[Pair]bool

	Viable int
	Total  int
}

func (a *CompatibilityMatrix) Compatible(route, depot string) bool {
	return a.viable[Pair{route, depot}]
}

func (a *CompatibilityMatrix) set(route, depot string) {
	a.viable[Pair{route, depot}] = true
	a.Viable++
}

// Cost looks up a cost entry. The second return is false for a missing
// or non-finite value, which counts as "no known cost".
func (c CostMatrix) Cost(depot, route string) (float64, bool) {
	row, ok := c[depot]
	if !ok {
		return 0, false
	}
	v, ok := row[route]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// BuildCompatibilityMatrix derives A[r,p] from the active cost matrix.
// A pair is viable when a finite cost exists and, if maxDistance > 0,
// the cost does not exceed it. Missing costs are a normal signal here,
// never an error; coverage problems are reported by ValidateCoverage.
func BuildCompatibilityMatrix(routes []Route, depots []Depot, costs CostMatrix, maxDistance float64) *CompatibilityMatrix {
	a := &CompatibilityMatrix{
		viable: make(map[Pair]bool, len(routes)*len(depots)),
		Total:  len(routes) * len(depots),
	}
	for _, r := range routes {
		for _, p := range depots {
			cost, ok := costs.Cost(p.ID, r.ID)
			if !ok {
				continue
			}
			// The overflow depot carries a penalty cost well above any
			// ceiling; filtering it out would defeat its purpose.
			if maxDistance > 0 && cost > maxDistance && p.ID != OverflowDepotID {
				continue
			}
			a.set(r.ID, p.ID)
		}
	}
	Log(2, "Compatibility matrix: %d viable (route,depot) pairs of %d possible", a.Viable, a.Total)
	return a
}
