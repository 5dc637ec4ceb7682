package depotassign

import (
	"math"
	"sort"
)

// greedyBackend is a deterministic stand-in engine for tests: it
// assigns each route's buses to its cheapest compatible depots with
// remaining capacity, in route order. Not optimal in general, but
// exact on the hand-crafted fixtures below, and it needs no solver
// installation.
type greedyBackend struct {
	withDuals bool
}

func (greedyBackend) Name() string { return "greedy" }

func (g greedyBackend) Solve(m *AssignmentModel, opt SolveOptions) (*SolveResult, error) {
	remaining := make(map[string]float64, len(m.Depots))
	for _, p := range m.Depots {
		remaining[p.ID] = p.Capacity
	}

	x := make([]float64, m.VarCount)
	objective := 0.0
	for _, r := range m.Routes {
		type candidate struct {
			idx   int
			cost  float64
			depot string
		}
		var cands []candidate
		for _, p := range m.Depots {
			if i, ok := m.PairIndex[Pair{r.ID, p.ID}]; ok {
				cands = append(cands, candidate{idx: i, cost: m.ColCosts[i], depot: p.ID})
			}
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].cost < cands[j].cost })

		need := float64(r.PVR)
		for _, c := range cands {
			if need <= 0 {
				break
			}
			take := math.Min(need, remaining[c.depot])
			if take <= 0 {
				continue
			}
			x[c.idx] += take
			remaining[c.depot] -= take
			objective += take * c.cost
			need -= take
		}
		if need > 0 {
			return &SolveResult{Status: StatusInfeasible}, nil
		}
	}

	res := &SolveResult{Status: StatusOptimal, Objective: objective, X: x}
	if g.withDuals {
		res.RowDuals = make([]float64, len(m.Rows))
		res.ColDuals = make([]float64, m.VarCount)
		for i := range res.RowDuals {
			res.RowDuals[i] = float64(i) * 0.5
		}
		for i := range res.ColDuals {
			res.ColDuals[i] = float64(i) * 0.25
		}
	}
	return res, nil
}

// Two routes, two depots, everything compatible. The optimum is
// R1->P1=4, R1->P2=1, R2->P2=3 with objective 79.
func smallInstance() *Instance {
	return &Instance{
		Name: "small",
		Routes: []Route{
			{ID: "R1", PVR: 5},
			{ID: "R2", PVR: 3},
		},
		Depots: []Depot{
			{ID: "P1", Capacity: 4},
			{ID: "P2", Capacity: 6},
		},
		Distances: CostMatrix{
			"P1": {"R1": 10, "R2": 8},
			"P2": {"R1": 12, "R2": 9},
		},
		Times: CostMatrix{
			"P1": {"R1": 30, "R2": 24},
			"P2": {"R1": 36, "R2": 27},
		},
	}
}

// Total PVR 20 against total capacity 15; needs overflow or scaling.
func deficitInstance() *Instance {
	return &Instance{
		Name: "deficit",
		Routes: []Route{
			{ID: "R1", PVR: 12},
			{ID: "R2", PVR: 8},
		},
		Depots: []Depot{
			{ID: "P1", Capacity: 9},
			{ID: "P2", Capacity: 6},
		},
		Distances: CostMatrix{
			"P1": {"R1": 5, "R2": 7},
			"P2": {"R1": 6, "R2": 4},
		},
		Times: CostMatrix{
			"P1": {"R1": 15, "R2": 21},
			"P2": {"R1": 18, "R2": 12},
		},
	}
}
