package gen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"homesim/internal/config"
	"homesim/internal/gen"
)

func testConfig(outDir string) config.RunConfig {
	return config.RunConfig{
		OutDir:               outDir,
		Seed:                 7,
		StateChanges:         12,
		StateChangesPerQuery: 4,
		StateChangesPerGoal:  6,
		MaxRooms:             5,
		MaxFreeItems:         20,
		MaxItemsPerContainer: 5,
		PersonCapacity:       3,
	}
}

func TestRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "dataset")
	cfg := testConfig(outDir)

	res, err := gen.Run(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Seed)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, outDir, res.OutDir)

	// Twelve state changes with a query every fourth and a goal every sixth.
	require.Equal(t, 17, res.TimeSteps)

	for _, name := range []string{
		gen.InitialStateFile,
		gen.PredicateNamesFile,
		gen.DomainFile,
		gen.ProblemFile,
		gen.KnowledgeFile,
		gen.ManifestFile,
	} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "missing root artifact %s", name)
		assert.NotZero(t, info.Size(), "empty root artifact %s", name)
	}

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	dirs := 0
	for _, entry := range entries {
		if entry.IsDir() {
			dirs++
		}
	}
	assert.Equal(t, res.TimeSteps, dirs)

	// The shared time-step counter interleaves the kinds at fixed offsets.
	for _, dir := range []string{
		"time_0000_state_change",
		"time_0004_query",
		"time_0007_goal",
		"time_0016_goal",
	} {
		_, err := os.Stat(filepath.Join(outDir, dir))
		assert.NoError(t, err, "missing time-step directory %s", dir)
	}

	_, err = os.Stat(filepath.Join(outDir, "time_0004_query", "answer.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "time_0007_goal", "goal.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "time_0000_state_change", gen.ProblemFile))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, gen.ManifestFile))
	require.NoError(t, err)
	var manifest gen.Manifest
	require.NoError(t, yaml.Unmarshal(data, &manifest))
	assert.Equal(t, res.RunID, manifest.RunID)
	assert.Equal(t, int64(7), manifest.Seed)
	assert.Equal(t, 17, manifest.TimeSteps)
	assert.Equal(t, 12, manifest.StateChanges)
	assert.Equal(t, 3, manifest.Queries)
	assert.Equal(t, 2, manifest.Goals)
	assert.NotZero(t, manifest.Rooms)
	assert.NotZero(t, manifest.Items)
}

func TestRunDeterministic(t *testing.T) {
	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")

	_, err := gen.Run(testConfig(dirA), zap.NewNop())
	require.NoError(t, err)
	_, err = gen.Run(testConfig(dirB), zap.NewNop())
	require.NoError(t, err)

	// Everything except the manifest (run id, timestamp) is a pure function
	// of the seed.
	for _, name := range []string{
		gen.InitialStateFile,
		gen.DomainFile,
		gen.ProblemFile,
		gen.KnowledgeFile,
		filepath.Join("time_0000_state_change", "state_change.txt"),
		filepath.Join("time_0007_goal", gen.KnowledgeFile),
	} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "artifact %s differs between identical seeds", name)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.StateChanges = 0

	_, err := gen.Run(cfg, zap.NewNop())
	require.Error(t, err)
}
