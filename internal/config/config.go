// Package config handles subgraph configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in subgraph.yml.
//
// File names are resolved against DataDir unless absolute.
type Config struct {
	DataDir string `yaml:"data_dir"`

	Recommendations         string `yaml:"recommendations"`
	SubscriberCounts        string `yaml:"subscriber_counts"`
	CategoryRecommendations string `yaml:"category_recommendations"`
	Categories              string `yaml:"categories"`

	GraphOutput         string `yaml:"graph_output"`
	CategoryGraphOutput string `yaml:"category_graph_output"`
	CountsOutput        string `yaml:"counts_output"`
	MergedOutput        string `yaml:"merged_output"`

	Style Style `yaml:"style"`
}

const (
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "subgraph.yml"
	// DefaultDataDir is where the front end serves its JSON from.
	DefaultDataDir = "static/jsons"

	// EnvConfig names an alternate config file.
	EnvConfig = "SUBGRAPH_CONFIG"
	// EnvDataDir overrides data_dir.
	EnvDataDir = "SUBGRAPH_DATA_DIR"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:                 DefaultDataDir,
		Recommendations:         "recommendations.json",
		SubscriberCounts:        "subscriber_counts.json",
		CategoryRecommendations: "category_recommendations.json",
		Categories:              "categories.json",
		GraphOutput:             "graph_data_optimized.json",
		CategoryGraphOutput:     "category_graph_data_optimized.json",
		CountsOutput:            "recommendation_counts.json",
		MergedOutput:            "publications_merged.json",
		Style:                   DefaultStyle(),
	}
}

// ResolvePath picks the config file to read: the explicit path if given,
// then $SUBGRAPH_CONFIG, then subgraph.yml in the working directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return DefaultConfigFile
}

// Load reads configuration from path on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Style.normalize()
	return cfg, nil
}

// Validate checks that every configured file name and colour is set.
// The first empty name, in file order, is reported.
func (c *Config) Validate() error {
	files := []struct {
		key  string
		name string
	}{
		{"recommendations", c.Recommendations},
		{"subscriber_counts", c.SubscriberCounts},
		{"category_recommendations", c.CategoryRecommendations},
		{"categories", c.Categories},
		{"graph_output", c.GraphOutput},
		{"category_graph_output", c.CategoryGraphOutput},
		{"counts_output", c.CountsOutput},
		{"merged_output", c.MergedOutput},
	}
	for _, f := range files {
		if f.name == "" {
			return fmt.Errorf("invalid config: %s is empty", f.key)
		}
	}
	return c.Style.Validate()
}

// Path resolves a configured file name against DataDir.
func (c *Config) Path(name string) string {
	name = ExpandPath(name)
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(ExpandPath(c.DataDir), name)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
