package depotassign

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighsInteger(t *testing.T) {
	sol, err := SolveWith(smallInstance(), DefaultConfig(), highsBackend{})
	require.NoError(t, err)

	assert.Equal(t, "optimal", sol.Status)
	assert.InDelta(t, 79.0, sol.Objective, 1e-6)
	assert.Equal(t, 8, sol.TotalBuses)

	// Every route fully covered.
	covered := map[string]int{}
	for _, a := range sol.Assignments {
		covered[a.Route] += a.Buses
	}
	assert.Equal(t, map[string]int{"R1": 5, "R2": 3}, covered)
}

func TestHighsRelaxDuals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = MODE_RELAX
	m := buildSmallModel(t, cfg)

	res, err := highsBackend{}.Solve(m, SolveOptions{})
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	require.NotNil(t, res.RowDuals)
	require.NotNil(t, res.ColDuals)

	prices := CapacityDuals(m, res)
	require.Len(t, prices, 2)
	byDepot := map[string]ShadowPrice{}
	for _, sp := range prices {
		require.True(t, sp.Available)
		byDepot[sp.Depot] = sp
	}

	// P1 is binding: one extra slot there saves 2km. P2 has two slack
	// slots, so its price is zero by complementary slackness.
	assert.InDelta(t, 2.0, math.Abs(byDepot["P1"].Price), 1e-6)
	assert.InDelta(t, 0.0, byDepot["P2"].Price, 1e-6)
}

func TestHighsRelaxNeverAboveInteger(t *testing.T) {
	inst := smallInstance()
	cfg := DefaultConfig()
	cfg.CapacityScale = 1.1

	integer, err := SolveWith(inst, cfg, highsBackend{})
	require.NoError(t, err)

	cfg.Mode = MODE_RELAX
	relaxed, err := SolveWith(inst, cfg, highsBackend{})
	require.NoError(t, err)

	// The fractional capacity 4.4 at P1 is only exploitable without
	// integrality.
	assert.InDelta(t, 79.0, integer.Objective, 1e-6)
	assert.InDelta(t, 78.2, relaxed.Objective, 1e-6)
	assert.LessOrEqual(t, relaxed.Objective, integer.Objective+1e-6)
}

func TestHighsKmax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = MODE_KMAX
	cfg.Kmax = 1

	sol, err := SolveWith(smallInstance(), cfg, highsBackend{})
	require.NoError(t, err)

	// R1 (5 buses) only fits whole at P2, which forces R2 onto P1.
	assert.InDelta(t, 84.0, sol.Objective, 1e-6)
	depotsPerRoute := map[string]int{}
	for _, a := range sol.Assignments {
		depotsPerRoute[a.Route]++
	}
	for route, n := range depotsPerRoute {
		assert.Equal(t, 1, n, "route %s split across depots", route)
	}
}

func TestHighsOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OverflowPenalty = 1000

	sol, err := SolveWith(deficitInstance(), cfg, highsBackend{})
	require.NoError(t, err)

	// R2's overflow penalty (7000/bus) exceeds R1's (6000/bus), so the
	// optimizer parks the 5-bus deficit from R1 there.
	assert.Equal(t, 5, sol.OverflowBuses)
	assert.Equal(t, 20, sol.TotalBuses)
	assert.InDelta(t, 30073.0, sol.Objective, 1e-6)
}
