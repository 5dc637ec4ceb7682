package depotassign

import "sync"

// EstimateShadowPrices measures each depot's shadow-like price by
// raising its capacity by exactly one unit and re-solving the complete
// model. Delta = objective(base) - objective(+1), so a positive delta
// means extra capacity at that depot would save cost. This works with
// every mode and backend, including the ones that expose no native
// duals, and doubles as a cross-check where duals do exist.
//
// The per-depot re-solves are independent and run in parallel; each
// builds its own model from the shared base inputs.
func EstimateShadowPrices(inst *Instance, cfg SolveConfig, backend Backend, baseObjective float64) []ShadowEstimate {
	baseCaps := ScaleCapacities(inst.Depots, cfg.CapacityScale, cfg.CapacityOverride)

	estimates := make([]ShadowEstimate, len(baseCaps))
	var wg sync.WaitGroup
	for i, depot := range baseCaps {
		wg.Add(1)
		go func(i int, depot Depot) {
			defer wg.Done()
			est := ShadowEstimate{
				Depot:         depot.ID,
				BaseCapacity:  depot.Capacity,
				BaseObjective: baseObjective,
			}
			perturbed := cfg
			perturbed.CapacityOverride = make(map[string]float64, len(baseCaps))
			for _, d := range baseCaps {
				perturbed.CapacityOverride[d.ID] = d.Capacity
			}
			perturbed.CapacityOverride[depot.ID] = depot.Capacity + 1

			sol, err := SolveWith(inst, perturbed, backend)
			if err != nil {
				est.Note = err.Error()
			} else {
				est.Objective = sol.Objective
				est.Delta = baseObjective - sol.Objective
			}
			estimates[i] = est
		}(i, depot)
	}
	wg.Wait()
	return estimates
}

// SweepCapacityScale solves the instance once per scale factor and
// records objective and feasibility. Infeasibility at a low scale is an
// expected outcome here, not an error: the sweep's whole point is to
// find the scale where the model becomes feasible.
func SweepCapacityScale(inst *Instance, cfg SolveConfig, backend Backend, scales []float64) []SweepPoint {
	points := make([]SweepPoint, 0, len(scales))
	for _, scale := range scales {
		swept := cfg
		swept.CapacityScale = scale
		point := SweepPoint{Scale: scale}
		sol, err := SolveWith(inst, swept, backend)
		if err != nil {
			point.Note = err.Error()
		} else {
			point.Objective = sol.Objective
			point.Feasible = true
		}
		points = append(points, point)
		Log(2, "Scale %.2f: feasible=%t objective=%.2f %s", scale, point.Feasible, point.Objective, point.Note)
	}
	return points
}
