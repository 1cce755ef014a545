package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one dataset generation run.
type RunConfig struct {
	OutDir string `yaml:"out_dir"`
	// Seed fixes the random source; zero asks the generator to derive one.
	Seed int64 `yaml:"seed"`

	StateChanges         int `yaml:"state_changes"`
	StateChangesPerQuery int `yaml:"state_changes_per_query"`
	StateChangesPerGoal  int `yaml:"state_changes_per_goal"`

	MaxRooms             int `yaml:"max_rooms"`
	MaxFreeItems         int `yaml:"max_free_items"`
	MaxItemsPerContainer int `yaml:"max_items_per_container"`
	PersonCapacity       int `yaml:"person_capacity"`
}

func Default() RunConfig {
	return RunConfig{
		OutDir:               "dataset",
		StateChanges:         100,
		StateChangesPerQuery: 10,
		StateChangesPerGoal:  20,
		MaxRooms:             5,
		MaxFreeItems:         20,
		MaxItemsPerContainer: 5,
		PersonCapacity:       3,
	}
}

// Load reads a run configuration, filling unset fields with defaults.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading run config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading run config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading run config: %w", err)
	}

	return &cfg, nil
}

func (c *RunConfig) Validate() error {
	if strings.TrimSpace(c.OutDir) == "" {
		return fmt.Errorf("out_dir is required")
	}
	if c.StateChanges <= 0 {
		return fmt.Errorf("state_changes must be positive, got %d", c.StateChanges)
	}
	if c.StateChangesPerQuery <= 0 {
		return fmt.Errorf("state_changes_per_query must be positive, got %d", c.StateChangesPerQuery)
	}
	if c.StateChangesPerGoal <= 0 {
		return fmt.Errorf("state_changes_per_goal must be positive, got %d", c.StateChangesPerGoal)
	}
	if c.MaxRooms <= 0 {
		return fmt.Errorf("max_rooms must be positive, got %d", c.MaxRooms)
	}
	if c.MaxFreeItems < 0 {
		return fmt.Errorf("max_free_items must not be negative, got %d", c.MaxFreeItems)
	}
	if c.MaxItemsPerContainer <= 0 {
		return fmt.Errorf("max_items_per_container must be positive, got %d", c.MaxItemsPerContainer)
	}
	if c.PersonCapacity <= 0 {
		return fmt.Errorf("person_capacity must be positive, got %d", c.PersonCapacity)
	}
	return nil
}
