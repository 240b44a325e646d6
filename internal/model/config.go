package model

import "fmt"

// Config controls a full pipeline run
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Charts ChartsConfig `yaml:"charts" mapstructure:"charts"`
	Stats  StatsConfig  `yaml:"stats" mapstructure:"stats"`
	Rank   RankConfig   `yaml:"rank" mapstructure:"rank"`
}

// InputConfig locates and describes the source dataset
type InputConfig struct {
	Path    string            `yaml:"path" mapstructure:"path"`                 // Source file location
	Dialect string            `yaml:"dialect" mapstructure:"dialect"`           // Header dialect: auto, all_diets, snake
	Columns map[string]string `yaml:"columns,omitempty" mapstructure:"columns"` // Per-field header overrides (field -> column name)
}

// OutputConfig controls artifact emission
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`       // Artifact destination, created if absent
	Charts  bool   `yaml:"charts" mapstructure:"charts"` // Emit PNG charts
	XLSX    bool   `yaml:"xlsx" mapstructure:"xlsx"`     // Emit the XLSX workbook
	Verbose bool   `yaml:"-" mapstructure:"-"`           // Progress logging, set from the CLI
}

// ChartsConfig sets chart rendering dimensions
type ChartsConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`   // Pixels
	Height int `yaml:"height" mapstructure:"height"` // Pixels
}

// StatsConfig selects the aggregate statistic set
type StatsConfig struct {
	StdDev bool `yaml:"stddev" mapstructure:"stddev"` // Include sample standard deviation columns
}

// RankConfig controls the ranking views
type RankConfig struct {
	TopN    int    `yaml:"top_n" mapstructure:"top_n"`       // Entries in the overall top view
	PerDiet int    `yaml:"per_diet" mapstructure:"per_diet"` // Entries in each per-diet top view
	Metric  string `yaml:"metric" mapstructure:"metric"`     // protein, carbs, fat, protein_to_carbs, carbs_to_fat
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:    "All_Diets.csv",
			Dialect: "auto",
		},
		Output: OutputConfig{
			Dir:    "reports",
			Charts: true,
			XLSX:   true,
		},
		Charts: ChartsConfig{
			Width:  1024,
			Height: 512,
		},
		Stats: StatsConfig{
			StdDev: true,
		},
		Rank: RankConfig{
			TopN:    10,
			PerDiet: 5,
			Metric:  string(MetricProtein),
		},
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input path is empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	if m := Metric(c.Rank.Metric); !m.Valid() {
		return fmt.Errorf("unknown ranking metric %q (valid: %v)", c.Rank.Metric, Metrics)
	}
	if c.Rank.TopN < 1 {
		return fmt.Errorf("rank.top_n must be at least 1, got %d", c.Rank.TopN)
	}
	if c.Rank.PerDiet < 1 {
		return fmt.Errorf("rank.per_diet must be at least 1, got %d", c.Rank.PerDiet)
	}
	if c.Charts.Width < 64 || c.Charts.Height < 64 {
		return fmt.Errorf("chart dimensions too small: %dx%d", c.Charts.Width, c.Charts.Height)
	}
	return nil
}
