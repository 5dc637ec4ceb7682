package depotassign

const (
	OBJECTIVE_DISTANCE = "distance"
	OBJECTIVE_TIME     = "time"

	MODE_INTEGER = "integer"
	MODE_RELAX   = "relax"
	MODE_KMAX    = "kmax"

	SOLVER_HIGHS  = "highs"
	SOLVER_GUROBI = "gurobi"

	// OverflowDepotID is the identifier of the synthetic depot injected
	// when overflow mode is active. It must not collide with a real depot.
	OverflowDepotID = "overflow"

	// OverflowCapacity is large enough to absorb any realistic deficit.
	OverflowCapacity = 1e9

	// AvgSpeedKmh converts an overflow distance penalty into a time
	// penalty for the time matrix.
	AvgSpeedKmh = 20.0
)

// Variable domains and row senses of the solver-neutral model. The
// values match the single-character codes both backends understand.
const (
	VAR_CONTINUOUS int8 = 'C'
	VAR_INTEGER    int8 = 'I'
	VAR_BINARY     int8 = 'B'

	SENSE_LE int8 = '<'
	SENSE_GE int8 = '>'
	SENSE_EQ int8 = '='
)

type Route struct {
	ID  string `json:"id"`
	PVR int    `json:"pvr"`
}

type Depot struct {
	ID       string  `json:"id"`
	Capacity float64 `json:"capacity"`
}

// CostMatrix maps depotID -> routeID -> unit cost (km or minutes).
// A missing entry means "no known cost", never zero.
type CostMatrix map[string]map[string]float64

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	Routes    []Route    `json:"routes"`
	Depots    []Depot    `json:"depots"`
	Distances CostMatrix `json:"distances"`
	Times     CostMatrix `json:"times"`

	Solution *Solution `json:"solution,omitempty"`
}

// Pair identifies one route-depot combination.
type Pair struct {
	Route string
	Depot string
}

// SolveConfig is the full configuration surface of one solve run.
type SolveConfig struct {
	Objective        string             `json:"objective"`
	Mode             string             `json:"mode"`
	CapacityScale    float64            `json:"capacity_scale"`
	CapacityOverride map[string]float64 `json:"capacity_override,omitempty"`
	Kmax             int                `json:"kmax,omitempty"`
	MaxDistanceKm    float64            `json:"max_distance_km,omitempty"`
	OverflowPenalty  float64            `json:"overflow_penalty,omitempty"`
	Solver           string             `json:"solver"`
	TimeLimit        float64            `json:"time_limit,omitempty"`
}

// DefaultConfig returns the configuration used when no flags are given:
// integer transportation model over distances, solved with HiGHS.
func DefaultConfig() SolveConfig {
	return SolveConfig{
		Objective:     OBJECTIVE_DISTANCE,
		Mode:          MODE_INTEGER,
		CapacityScale: 1.0,
		Solver:        SOLVER_HIGHS,
	}
}

type SolveStatus int

const (
	StatusNotSolved SolveStatus = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "not_solved"
	}
}

// SolveResult is the raw backend output. X is indexed by model column.
// RowDuals and ColDuals stay nil when the backend does not expose them.
type SolveResult struct {
	Status    SolveStatus
	Objective float64
	X         []float64
	RowDuals  []float64
	ColDuals  []float64
}

type Assignment struct {
	Route    string  `json:"route"`
	Depot    string  `json:"depot"`
	Buses    int     `json:"buses"`
	UnitCost float64 `json:"unit_cost"`
}

type DepotLoad struct {
	Depot    string  `json:"depot"`
	Buses    int     `json:"buses"`
	Capacity float64 `json:"capacity"`
}

// ShadowPrice carries a capacity dual. Available is false when the
// backend did not expose duals for this run; the value is then
// meaningless and must not be read.
type ShadowPrice struct {
	Depot     string  `json:"depot"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type ReducedCost struct {
	Route     string  `json:"route"`
	Depot     string  `json:"depot"`
	Cost      float64 `json:"cost"`
	Available bool    `json:"available"`
}

type Solution struct {
	Status    string  `json:"status"`
	Objective float64 `json:"objective"`
	Mode      string  `json:"mode"`
	Solver    string  `json:"solver"`

	RouteCount    int `json:"route_count"`
	DepotCount    int `json:"depot_count"`
	TotalBuses    int `json:"total_buses"`
	OverflowBuses int `json:"overflow_buses"`
	ViablePairs   int `json:"viable_pairs"`

	Assignments  []Assignment `json:"assignments"`
	DepotSummary []DepotLoad  `json:"depot_summary"`

	ShadowPrices []ShadowPrice `json:"shadow_prices,omitempty"`
	ReducedCosts []ReducedCost `json:"reduced_costs,omitempty"`

	Time    string  `json:"time"`
	System  SysInfo `json:"system"`
	Comment string  `json:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// ShadowEstimate is one row of the perturbation-based sensitivity
// analysis: capacity of Depot raised by one unit, full re-solve.
type ShadowEstimate struct {
	Depot         string  `json:"depot"`
	BaseCapacity  float64 `json:"base_capacity"`
	BaseObjective float64 `json:"base_objective"`
	Objective     float64 `json:"objective_plus1"`
	Delta         float64 `json:"delta_objective"`
	Note          string  `json:"note,omitempty"`
}

// SweepPoint is one row of the capacity-scale sweep.
type SweepPoint struct {
	Scale     float64 `json:"scale"`
	Objective float64 `json:"objective"`
	Feasible  bool    `json:"feasible"`
	Note      string  `json:"note,omitempty"`
}
