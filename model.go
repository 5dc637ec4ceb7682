package depotassign

import "fmt"

// ConstrRow is one named constraint of the solver-neutral model, in
// sparse form: sum(Val[i] * x[Ind[i]]) <sense> RHS.
type ConstrRow struct {
	Name  string
	Ind   []int32
	Val   []float64
	Sense int8
	RHS   float64
}

// AssignmentModel is the assembled transportation model for one solve.
// Columns 0..len(Pairs)-1 hold one x variable per viable pair; when
// Kmax is active, columns ZStart.. hold the matching binary z
// variables. Incompatible pairs never get a column at all.
type AssignmentModel struct {
	Mode string
	Kmax int

	Routes []Route
	Depots []Depot
	Costs  CostMatrix
	Compat *CompatibilityMatrix

	Pairs     []Pair
	PairIndex map[Pair]int
	ZStart    int // -1 when no z variables exist

	VarCount int
	VarNames []string
	ColCosts []float64
	ColLower []float64
	ColUpper []float64
	VarTypes []int8

	Rows []ConstrRow

	// Reverse indexes from constraint name to owning entity, built
	// alongside construction so dual extraction never parses names.
	DemandRow   map[string]int // routeID -> row index
	CapacityRow map[string]int // depotID -> row index
}

func demandName(route string) string   { return "Demand_" + route }
func capacityName(depot string) string { return "Capacity_" + depot }

// CreateAssignmentModel builds the objective, variables and constraint
// rows for the requested mode. It is pure: building twice from the
// same inputs yields structurally identical models.
//
//	min  sum c[r,p]*x[r,p]                 over viable pairs only
//	s.t. sum_p x[r,p]  = PVR[r]            (Demand_<r>)
//	     sum_r x[r,p] <= Cap[p]            (Capacity_<p>)
//	     0 <= x[r,p]  <= PVR[r]            (column bounds)
//	     sum_p z[r,p] <= Kmax              (KMax_<r>, kmax mode)
//	     x[r,p] - PVR[r]*z[r,p] <= 0       (Link_<r>_<p>, kmax mode)
func CreateAssignmentModel(routes []Route, depots []Depot, compat *CompatibilityMatrix, costs CostMatrix, cfg SolveConfig) (*AssignmentModel, error) {
	m := &AssignmentModel{
		Mode:        cfg.Mode,
		Routes:      routes,
		Depots:      depots,
		Costs:       costs,
		Compat:      compat,
		PairIndex:   make(map[Pair]int),
		ZStart:      -1,
		DemandRow:   make(map[string]int, len(routes)),
		CapacityRow: make(map[string]int, len(depots)),
	}
	if cfg.Mode == MODE_KMAX {
		m.Kmax = cfg.Kmax
	}

	pvr := make(map[string]int, len(routes))
	for _, r := range routes {
		pvr[r.ID] = r.PVR
	}

	xType := VAR_INTEGER
	if cfg.Mode == MODE_RELAX {
		xType = VAR_CONTINUOUS
	}

	// x columns, one per viable pair, in route-major order.
	for _, r := range routes {
		for _, p := range depots {
			if !compat.Compatible(r.ID, p.ID) {
				continue
			}
			cost, ok := costs.Cost(p.ID, r.ID)
			if !ok {
				// Compatibility was derived from this very matrix.
				return nil, fmt.Errorf("pair (%s,%s) is marked compatible but has no finite cost", r.ID, p.ID)
			}
			pair := Pair{r.ID, p.ID}
			m.PairIndex[pair] = len(m.Pairs)
			m.Pairs = append(m.Pairs, pair)
			m.VarNames = append(m.VarNames, fmt.Sprintf("x_%s_%s", r.ID, p.ID))
			m.ColCosts = append(m.ColCosts, cost)
			m.ColLower = append(m.ColLower, 0)
			m.ColUpper = append(m.ColUpper, float64(r.PVR))
			m.VarTypes = append(m.VarTypes, xType)
		}
	}

	// z columns mirror the x columns when the depot-count limit is on.
	if m.Kmax > 0 {
		m.ZStart = len(m.Pairs)
		for _, pair := range m.Pairs {
			m.VarNames = append(m.VarNames, fmt.Sprintf("z_%s_%s", pair.Route, pair.Depot))
			m.ColCosts = append(m.ColCosts, 0)
			m.ColLower = append(m.ColLower, 0)
			m.ColUpper = append(m.ColUpper, 1)
			m.VarTypes = append(m.VarTypes, VAR_BINARY)
		}
	}
	m.VarCount = len(m.VarNames)

	// Demand rows: every bus of a route must be housed somewhere.
	for _, r := range routes {
		var ind []int32
		var val []float64
		for _, p := range depots {
			if i, ok := m.PairIndex[Pair{r.ID, p.ID}]; ok {
				ind = append(ind, int32(i))
				val = append(val, 1.0)
			}
		}
		m.DemandRow[r.ID] = len(m.Rows)
		m.Rows = append(m.Rows, ConstrRow{
			Name: demandName(r.ID), Ind: ind, Val: val, Sense: SENSE_EQ, RHS: float64(r.PVR),
		})
	}

	// Capacity rows: one per depot, summing only its compatible routes.
	// The bound may be fractional after capacity scaling.
	for _, p := range depots {
		var ind []int32
		var val []float64
		for _, r := range routes {
			if i, ok := m.PairIndex[Pair{r.ID, p.ID}]; ok {
				ind = append(ind, int32(i))
				val = append(val, 1.0)
			}
		}
		m.CapacityRow[p.ID] = len(m.Rows)
		m.Rows = append(m.Rows, ConstrRow{
			Name: capacityName(p.ID), Ind: ind, Val: val, Sense: SENSE_LE, RHS: p.Capacity,
		})
	}

	if m.Kmax > 0 {
		for _, r := range routes {
			var ind []int32
			var val []float64
			for _, p := range depots {
				if i, ok := m.PairIndex[Pair{r.ID, p.ID}]; ok {
					ind = append(ind, int32(m.ZStart+i))
					val = append(val, 1.0)
				}
			}
			m.Rows = append(m.Rows, ConstrRow{
				Name: "KMax_" + r.ID, Ind: ind, Val: val, Sense: SENSE_LE, RHS: float64(m.Kmax),
			})
		}
		for i, pair := range m.Pairs {
			m.Rows = append(m.Rows, ConstrRow{
				Name:  fmt.Sprintf("Link_%s_%s", pair.Route, pair.Depot),
				Ind:   []int32{int32(i), int32(m.ZStart + i)},
				Val:   []float64{1.0, -float64(pvr[pair.Route])},
				Sense: SENSE_LE,
				RHS:   0,
			})
		}
	}

	Log(3, "Model built: %d variables, %d constraints (%d viable pairs, mode %s)",
		m.VarCount, len(m.Rows), len(m.Pairs), m.Mode)
	return m, nil
}
