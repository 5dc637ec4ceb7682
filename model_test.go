package depotassign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSmallModel(t *testing.T, cfg SolveConfig) *AssignmentModel {
	t.Helper()
	inst := smallInstance()
	costs := inst.Distances
	if cfg.Objective == OBJECTIVE_TIME {
		costs = inst.Times
	}
	a := BuildCompatibilityMatrix(inst.Routes, inst.Depots, costs, cfg.MaxDistanceKm)
	m, err := CreateAssignmentModel(inst.Routes, inst.Depots, a, costs, cfg)
	require.NoError(t, err)
	return m
}

func TestModelVariablesOnlyForViablePairs(t *testing.T) {
	routes := []Route{{ID: "R1", PVR: 5}, {ID: "R2", PVR: 3}}
	depots := []Depot{{ID: "P1", Capacity: 10}, {ID: "P2", Capacity: 10}}
	costs := CostMatrix{
		"P1": {"R1": 10},
		"P2": {"R1": 15, "R2": 8},
	}
	a := BuildCompatibilityMatrix(routes, depots, costs, 0)
	m, err := CreateAssignmentModel(routes, depots, a, costs, DefaultConfig())
	require.NoError(t, err)

	// Three viable pairs, no column for the incompatible (R2,P1).
	assert.Equal(t, 3, m.VarCount)
	assert.Len(t, m.Pairs, 3)
	_, exists := m.PairIndex[Pair{"R2", "P1"}]
	assert.False(t, exists)
	for _, pair := range m.Pairs {
		assert.True(t, a.Compatible(pair.Route, pair.Depot))
	}
}

func TestModelStructure(t *testing.T) {
	m := buildSmallModel(t, DefaultConfig())

	assert.Equal(t, 4, m.VarCount)
	assert.Equal(t, -1, m.ZStart)

	// Column bounds carry the x <= PVR tightening.
	i := m.PairIndex[Pair{"R1", "P2"}]
	assert.Equal(t, 0.0, m.ColLower[i])
	assert.Equal(t, 5.0, m.ColUpper[i])
	assert.Equal(t, VAR_INTEGER, m.VarTypes[i])
	assert.Equal(t, 12.0, m.ColCosts[i])
	assert.Equal(t, "x_R1_P2", m.VarNames[i])

	// One named demand row per route, equality at PVR.
	require.Contains(t, m.DemandRow, "R1")
	demand := m.Rows[m.DemandRow["R1"]]
	assert.Equal(t, "Demand_R1", demand.Name)
	assert.Equal(t, SENSE_EQ, demand.Sense)
	assert.Equal(t, 5.0, demand.RHS)
	assert.Len(t, demand.Ind, 2)

	// One named capacity row per depot, <= capacity.
	require.Contains(t, m.CapacityRow, "P1")
	capRow := m.Rows[m.CapacityRow["P1"]]
	assert.Equal(t, "Capacity_P1", capRow.Name)
	assert.Equal(t, SENSE_LE, capRow.Sense)
	assert.Equal(t, 4.0, capRow.RHS)

	// 2 demand + 2 capacity rows, nothing else in integer mode.
	assert.Len(t, m.Rows, 4)
}

func TestModelFractionalCapacityBound(t *testing.T) {
	inst := smallInstance()
	depots := ScaleCapacities(inst.Depots, 1.1, nil)
	a := BuildCompatibilityMatrix(inst.Routes, depots, inst.Distances, 0)
	m, err := CreateAssignmentModel(inst.Routes, depots, a, inst.Distances, DefaultConfig())
	require.NoError(t, err)

	capRow := m.Rows[m.CapacityRow["P1"]]
	assert.InDelta(t, 4.4, capRow.RHS, 1e-9)
}

func TestModelRelaxMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = MODE_RELAX
	m := buildSmallModel(t, cfg)

	for _, vt := range m.VarTypes {
		assert.Equal(t, VAR_CONTINUOUS, vt)
	}
	assert.Equal(t, -1, m.ZStart)
}

func TestModelKmaxMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = MODE_KMAX
	cfg.Kmax = 1
	m := buildSmallModel(t, cfg)

	// One binary z per x column.
	require.Equal(t, 8, m.VarCount)
	assert.Equal(t, 4, m.ZStart)
	for i := m.ZStart; i < m.VarCount; i++ {
		assert.Equal(t, VAR_BINARY, m.VarTypes[i])
		assert.Equal(t, 0.0, m.ColCosts[i])
		assert.Equal(t, 1.0, m.ColUpper[i])
	}
	assert.Equal(t, "z_R1_P1", m.VarNames[m.ZStart])

	// 2 demand + 2 capacity + 2 kmax + 4 link rows.
	require.Len(t, m.Rows, 10)

	var kmaxRows, linkRows int
	for _, row := range m.Rows {
		switch {
		case len(row.Name) > 5 && row.Name[:5] == "KMax_":
			kmaxRows++
			assert.Equal(t, SENSE_LE, row.Sense)
			assert.Equal(t, 1.0, row.RHS)
		case len(row.Name) > 5 && row.Name[:5] == "Link_":
			linkRows++
			assert.Equal(t, SENSE_LE, row.Sense)
			assert.Equal(t, 0.0, row.RHS)
			require.Len(t, row.Ind, 2)
			// x - PVR*z <= 0
			assert.Equal(t, 1.0, row.Val[0])
			assert.Less(t, row.Val[1], 0.0)
		}
	}
	assert.Equal(t, 2, kmaxRows)
	assert.Equal(t, 4, linkRows)
}

func TestModelIdempotence(t *testing.T) {
	m1 := buildSmallModel(t, DefaultConfig())
	m2 := buildSmallModel(t, DefaultConfig())

	assert.Equal(t, m1.VarNames, m2.VarNames)
	assert.Equal(t, m1.Pairs, m2.Pairs)
	assert.Equal(t, m1.ColCosts, m2.ColCosts)
	require.Equal(t, len(m1.Rows), len(m2.Rows))
	for i := range m1.Rows {
		assert.Equal(t, m1.Rows[i].Name, m2.Rows[i].Name)
		assert.Equal(t, m1.Rows[i].Ind, m2.Rows[i].Ind)
		assert.Equal(t, m1.Rows[i].Val, m2.Rows[i].Val)
		assert.Equal(t, m1.Rows[i].RHS, m2.Rows[i].RHS)
	}
	assert.Equal(t, m1.DemandRow, m2.DemandRow)
	assert.Equal(t, m1.CapacityRow, m2.CapacityRow)
}

func TestModelTimeObjective(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Objective = OBJECTIVE_TIME
	m := buildSmallModel(t, cfg)

	i := m.PairIndex[Pair{"R1", "P1"}]
	assert.Equal(t, 30.0, m.ColCosts[i])
}
