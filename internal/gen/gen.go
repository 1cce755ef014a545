package gen

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"homesim/internal/config"
	"homesim/internal/pddl"
	"homesim/internal/world"
)

// Top-level artifact names. Every run writes these at the output root before
// the time-step directories.
const (
	InitialStateFile   = "initial_state.txt"
	PredicateNamesFile = "predicate_names.txt"
	DomainFile         = "domain.pddl"
	ProblemFile        = "problem.pddl"
	KnowledgeFile      = "knowledge.yaml"
	ManifestFile       = "manifest.yaml"
)

// Manifest records the run's identity and shape, for tooling that consumes
// the dataset later.
type Manifest struct {
	RunID        string `yaml:"run_id"`
	Seed         int64  `yaml:"seed"`
	CreatedAt    string `yaml:"created_at"`
	TimeSteps    int    `yaml:"time_steps"`
	StateChanges int    `yaml:"state_changes"`
	Queries      int    `yaml:"queries"`
	Goals        int    `yaml:"goals"`
	Rooms        int    `yaml:"rooms"`
	Items        int    `yaml:"items"`
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Seed      int64
	OutDir    string
	TimeSteps int
	Dropped   []string
}

// Run generates a complete dataset under cfg.OutDir: the narrated initial
// state, the planning domain, and one problem/knowledge snapshot per
// simulated time step, with queries and goals interleaved on their
// configured cadence.
func Run(cfg config.RunConfig, logger *zap.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("running generator: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("derived random seed", zap.Int64("seed", seed))
	}
	runID := uuid.New().String()
	logger.Info("starting run",
		zap.String("run_id", runID),
		zap.Int64("seed", seed),
		zap.String("out_dir", cfg.OutDir))

	ctx := world.NewContext(rand.New(rand.NewSource(seed)))
	w, err := world.Build(ctx, world.Params{
		MaxRooms:        cfg.MaxRooms,
		MaxFreeItems:    cfg.MaxFreeItems,
		MaxPerContainer: cfg.MaxItemsPerContainer,
		PersonCapacity:  cfg.PersonCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("running generator: %w", err)
	}
	for _, name := range w.Dropped {
		logger.Warn("dropped unplaced item", zap.String("item", name))
	}
	logger.Info("world built",
		zap.Int("rooms", len(w.Rooms)),
		zap.Int("items", len(w.Items)))

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("running generator: %w", err)
	}

	domain := world.Domain()
	rootFiles := map[string]string{
		InitialStateFile:   w.Description,
		PredicateNamesFile: strings.Join(domain.PredicateNames(), "\n"),
		DomainFile:         domain.Render(),
		ProblemFile:        w.Problem(nil).Render(),
		KnowledgeFile:      w.Knowledge().Render(),
	}
	for name, contents := range rootFiles {
		if err := writeFile(filepath.Join(cfg.OutDir, name), contents); err != nil {
			return nil, fmt.Errorf("running generator: %w", err)
		}
	}

	timeStep := 0
	queries, goals := 0, 0
	for i := 0; i < cfg.StateChanges; i++ {
		narration := w.StateChange(ctx)
		dir := stepDir(cfg.OutDir, timeStep, "state_change")
		err := writeStep(dir, map[string]string{
			"state_change.txt": narration,
			ProblemFile:        w.Problem(nil).Render(),
			KnowledgeFile:      w.Knowledge().Render(),
		})
		if err != nil {
			return nil, fmt.Errorf("running generator: %w", err)
		}
		logger.Debug("state change", zap.Int("time_step", timeStep), zap.String("narration", narration))
		timeStep++

		if (i+1)%cfg.StateChangesPerQuery == 0 {
			question, answer := w.QueryAnswer(ctx)
			dir := stepDir(cfg.OutDir, timeStep, "query")
			err := writeStep(dir, map[string]string{
				"query.txt":  question,
				"answer.txt": answer,
			})
			if err != nil {
				return nil, fmt.Errorf("running generator: %w", err)
			}
			logger.Debug("query", zap.Int("time_step", timeStep), zap.String("question", question))
			timeStep++
			queries++
		}

		if (i+1)%cfg.StateChangesPerGoal == 0 {
			// The problem snapshot must reflect the state before the goal
			// mutation; the knowledge dump reflects the state after it.
			objects, init := w.ProblemParts()
			goal := w.NextGoal(ctx)
			problem := pddl.Problem{
				Name:    world.ProblemName,
				Domain:  world.DomainName,
				Objects: objects,
				Init:    init,
				Goal:    &goal,
			}
			dir := stepDir(cfg.OutDir, timeStep, "goal")
			err := writeStep(dir, map[string]string{
				"goal.txt":    goal.Description,
				ProblemFile:   problem.Render(),
				KnowledgeFile: w.Knowledge().Render(),
			})
			if err != nil {
				return nil, fmt.Errorf("running generator: %w", err)
			}
			logger.Debug("goal", zap.Int("time_step", timeStep), zap.String("goal", goal.Description))
			timeStep++
			goals++
		}
	}

	manifest := Manifest{
		RunID:        runID,
		Seed:         seed,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		TimeSteps:    timeStep,
		StateChanges: cfg.StateChanges,
		Queries:      queries,
		Goals:        goals,
		Rooms:        len(w.Rooms),
		Items:        len(w.Items),
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("running generator: %w", err)
	}
	if err := writeFile(filepath.Join(cfg.OutDir, ManifestFile), string(data)); err != nil {
		return nil, fmt.Errorf("running generator: %w", err)
	}

	logger.Info("run complete",
		zap.Int("time_steps", timeStep),
		zap.Int("queries", queries),
		zap.Int("goals", goals))

	return &Result{
		RunID:     runID,
		Seed:      seed,
		OutDir:    cfg.OutDir,
		TimeSteps: timeStep,
		Dropped:   w.Dropped,
	}, nil
}

func stepDir(outDir string, timeStep int, kind string) string {
	return filepath.Join(outDir, fmt.Sprintf("time_%04d_%s", timeStep, kind))
}

func writeStep(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, contents := range files {
		if err := writeFile(filepath.Join(dir, name), contents); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
