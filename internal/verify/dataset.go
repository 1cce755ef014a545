package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"homesim/internal/gen"
	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Step kinds, matching the time-step directory suffixes.
const (
	StepStateChange = "state_change"
	StepQuery       = "query"
	StepGoal        = "goal"
)

// Step is one loaded time-step directory.
type Step struct {
	Time int
	Kind string
	Dir  string

	Narration string
	Query     string
	Answer    string
	Goal      string

	Problem   *pddl.ParsedProblem
	Knowledge *knowledge.ParsedDocument
}

// Dataset is a generated run loaded back from disk.
type Dataset struct {
	Dir string

	InitialState   string
	PredicateNames []string
	DomainPDDL     string

	InitialProblem   *pddl.ParsedProblem
	InitialKnowledge *knowledge.ParsedDocument

	Manifest *gen.Manifest
	Steps    []Step
}

// Load reads a dataset directory. Structural damage, missing files, unknown
// directories, or unparseable artifacts, is a load error; semantic issues
// are left to the checks.
func Load(dir string) (*Dataset, error) {
	ds := &Dataset{Dir: dir}

	initialState, err := readText(filepath.Join(dir, gen.InitialStateFile))
	if err != nil {
		return nil, err
	}
	ds.InitialState = initialState

	names, err := readText(filepath.Join(dir, gen.PredicateNamesFile))
	if err != nil {
		return nil, err
	}
	ds.PredicateNames = strings.Split(strings.TrimSpace(names), "\n")

	domainPDDL, err := readText(filepath.Join(dir, gen.DomainFile))
	if err != nil {
		return nil, err
	}
	ds.DomainPDDL = domainPDDL

	ds.InitialProblem, err = readProblem(filepath.Join(dir, gen.ProblemFile))
	if err != nil {
		return nil, err
	}
	ds.InitialKnowledge, err = readKnowledge(filepath.Join(dir, gen.KnowledgeFile))
	if err != nil {
		return nil, err
	}

	manifestData, err := os.ReadFile(filepath.Join(dir, gen.ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	var manifest gen.Manifest
	if err := yaml.Unmarshal(manifestData, &manifest); err != nil {
		return nil, fmt.Errorf("loading dataset manifest: %w", err)
	}
	ds.Manifest = &manifest

	if err := ds.loadSteps(); err != nil {
		return nil, err
	}
	return ds, nil
}

var rootFiles = map[string]struct{}{
	gen.InitialStateFile:   {},
	gen.PredicateNamesFile: {},
	gen.DomainFile:         {},
	gen.ProblemFile:        {},
	gen.KnowledgeFile:      {},
	gen.ManifestFile:       {},
}

func (ds *Dataset) loadSteps() error {
	entries, err := os.ReadDir(ds.Dir)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if _, known := rootFiles[entry.Name()]; known {
			continue
		}
		if !entry.IsDir() {
			return fmt.Errorf("loading dataset: unexpected file %s", entry.Name())
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for i, name := range names {
		step, err := ds.loadStep(i, name)
		if err != nil {
			return err
		}
		ds.Steps = append(ds.Steps, step)
	}
	return nil
}

func (ds *Dataset) loadStep(time int, name string) (Step, error) {
	dir := filepath.Join(ds.Dir, name)
	step := Step{Time: time, Dir: dir}

	var err error
	switch {
	case strings.HasSuffix(name, "_"+StepQuery):
		step.Kind = StepQuery
		if step.Query, err = readText(filepath.Join(dir, "query.txt")); err != nil {
			return Step{}, err
		}
		if step.Answer, err = readText(filepath.Join(dir, "answer.txt")); err != nil {
			return Step{}, err
		}
	case strings.HasSuffix(name, "_"+StepStateChange):
		step.Kind = StepStateChange
		if step.Narration, err = readText(filepath.Join(dir, "state_change.txt")); err != nil {
			return Step{}, err
		}
		if err = step.loadSnapshots(); err != nil {
			return Step{}, err
		}
	case strings.HasSuffix(name, "_"+StepGoal):
		step.Kind = StepGoal
		if step.Goal, err = readText(filepath.Join(dir, "goal.txt")); err != nil {
			return Step{}, err
		}
		if err = step.loadSnapshots(); err != nil {
			return Step{}, err
		}
	default:
		return Step{}, fmt.Errorf("loading dataset: invalid time-step directory %s", name)
	}
	return step, nil
}

func (s *Step) loadSnapshots() error {
	var err error
	if s.Problem, err = readProblem(filepath.Join(s.Dir, gen.ProblemFile)); err != nil {
		return err
	}
	s.Knowledge, err = readKnowledge(filepath.Join(s.Dir, gen.KnowledgeFile))
	return err
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading dataset: %w", err)
	}
	return string(data), nil
}

func readProblem(path string) (*pddl.ParsedProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	problem, err := pddl.ParseProblem(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return problem, nil
}

func readKnowledge(path string) (*knowledge.ParsedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	doc, err := knowledge.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
