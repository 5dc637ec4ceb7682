package depotassign

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.json")
	inst := smallInstance()

	sol, err := SolveWith(inst, DefaultConfig(), greedyBackend{})
	require.NoError(t, err)
	inst.Solution = sol

	require.NoError(t, SaveInstance(path, inst))

	loaded, err := LoadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, inst.Name, loaded.Name)
	assert.Equal(t, inst.Routes, loaded.Routes)
	assert.Equal(t, inst.Depots, loaded.Depots)
	assert.Equal(t, inst.Distances, loaded.Distances)
	require.NotNil(t, loaded.Solution)
	assert.Equal(t, sol.Objective, loaded.Solution.Objective)
	assert.Equal(t, sol.Assignments, loaded.Solution.Assignments)
}

func TestLoadInstanceMissingFile(t *testing.T) {
	_, err := LoadInstance(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
