package depotassign

import "fmt"

// WithOverflowDepot extends the depot set with the synthetic overflow
// depot and returns new matrices containing its cost rows. The inputs
// are never mutated; the returned matrices share the real depots' rows.
//
// The penalty for a route is penaltyFactor times the route's maximum
// finite real cost, so the overflow depot is only attractive when no
// real depot has remaining capacity. The time row is derived from the
// distance penalty via the average speed.
func WithOverflowDepot(routes []Route, depots []Depot, distances, times CostMatrix, penaltyFactor float64) ([]Depot, CostMatrix, CostMatrix, error) {
	overflowDist := make(map[string]float64, len(routes))
	overflowTime := make(map[string]float64, len(routes))
	for _, r := range routes {
		maxCost := 0.0
		found := false
		for _, p := range depots {
			if c, ok := distances.Cost(p.ID, r.ID); ok {
				found = true
				if c > maxCost {
					maxCost = c
				}
			}
		}
		if !found {
			return nil, nil, nil, fmt.Errorf("route %s has no finite cost to any depot; cannot derive an overflow penalty", r.ID)
		}
		penalty := penaltyFactor * maxCost
		overflowDist[r.ID] = penalty
		overflowTime[r.ID] = penalty / AvgSpeedKmh * 60
	}

	extDepots := make([]Depot, len(depots), len(depots)+1)
	copy(extDepots, depots)
	extDepots = append(extDepots, Depot{ID: OverflowDepotID, Capacity: OverflowCapacity})

	extDist := make(CostMatrix, len(distances)+1)
	for k, v := range distances {
		extDist[k] = v
	}
	extDist[OverflowDepotID] = overflowDist

	extTimes := make(CostMatrix, len(times)+1)
	for k, v := range times {
		extTimes[k] = v
	}
	extTimes[OverflowDepotID] = overflowTime

	return extDepots, extDist, extTimes, nil
}
