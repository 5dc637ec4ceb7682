package depotassign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateShadowPrices(t *testing.T) {
	inst := smallInstance()
	cfg := DefaultConfig()

	base, err := SolveWith(inst, cfg, greedyBackend{})
	require.NoError(t, err)
	require.Equal(t, 79.0, base.Objective)

	estimates := EstimateShadowPrices(inst, cfg, greedyBackend{}, base.Objective)
	require.Len(t, estimates, 2)

	// One more slot at P1 moves a bus off the 12km pair onto the 10km
	// pair, saving 2. P2 already has slack, so its extra slot is worthless.
	byDepot := map[string]ShadowEstimate{}
	for _, est := range estimates {
		byDepot[est.Depot] = est
	}
	require.Empty(t, byDepot["P1"].Note)
	assert.Equal(t, 2.0, byDepot["P1"].Delta)
	assert.Equal(t, 77.0, byDepot["P1"].Objective)
	assert.Equal(t, 4.0, byDepot["P1"].BaseCapacity)

	require.Empty(t, byDepot["P2"].Note)
	assert.Equal(t, 0.0, byDepot["P2"].Delta)
	assert.Equal(t, 79.0, byDepot["P2"].Objective)
}

func TestEstimateShadowPricesRecordsFailures(t *testing.T) {
	inst := smallInstance()
	cfg := DefaultConfig()
	cfg.MaxDistanceKm = 1 // nothing is reachable, every re-solve fails

	estimates := EstimateShadowPrices(inst, cfg, greedyBackend{}, 0)
	require.Len(t, estimates, 2)
	for _, est := range estimates {
		assert.NotEmpty(t, est.Note)
	}
}

func TestSweepCapacityScale(t *testing.T) {
	inst := deficitInstance()
	cfg := DefaultConfig()

	points := SweepCapacityScale(inst, cfg, greedyBackend{}, []float64{0.5, 1.0, 2.0})
	require.Len(t, points, 3)

	// Total demand is 20 against base capacity 15; only the doubled
	// capacities fit it.
	assert.False(t, points[0].Feasible)
	assert.NotEmpty(t, points[0].Note)
	assert.False(t, points[1].Feasible)
	assert.NotEmpty(t, points[1].Note)

	require.True(t, points[2].Feasible)
	assert.Empty(t, points[2].Note)
	assert.Equal(t, 92.0, points[2].Objective)
}
