// Package config loads the engine's on-disk YAML configuration,
// grounded on cognicore-io-korel's pkg/korel/config pattern
// (os.ReadFile + yaml.Unmarshal, sane defaults when the file is
// absent).
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the engine's full on-disk configuration: where its
// persistent state lives, an analyzer setting, the single-word fuzzy
// cutoff, and the CORS origins. The multi-word fuzzy policy (always the
// nearest lexicon word) has no setting.
type Config struct {
	DataDir string `yaml:"data_dir"`

	Analyzer struct {
		// MinTokenLength is loaded but not passed to the analyzer, which
		// always applies its built-in rule (tokens longer than 2 characters).
		MinTokenLength int `yaml:"min_token_length"`
	} `yaml:"analyzer"`

	Fuzzy struct {
		// SingleCutoff is the single-word query's ratio cutoff (default 0.8).
		SingleCutoff float64 `yaml:"single_cutoff"`
	} `yaml:"fuzzy"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{DataDir: "data"}
	cfg.Analyzer.MinTokenLength = 2
	cfg.Fuzzy.SingleCutoff = 0.8
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

// Load reads a YAML config file. A missing file is not an error: it
// yields Default(), matching the rest of the pipeline's "output-like
// artifact absent -> recreate sane state" recovery policy.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("config file missing, using defaults", slog.String("path", path))
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LexiconPath, ForwardIndexPath, InvertedIndexPath, BarrelDir, and
// MetadataPath derive the engine's on-disk layout from DataDir.
func (c Config) LexiconPath() string       { return filepath.Join(c.DataDir, "lexicon.csv") }
func (c Config) ForwardIndexPath() string  { return filepath.Join(c.DataDir, "forward_index.json") }
func (c Config) ForwardDeltaPath() string  { return filepath.Join(c.DataDir, "forward_delta.json") }
func (c Config) InvertedDeltaPath() string { return filepath.Join(c.DataDir, "inverted_delta.json") }
func (c Config) BarrelDir() string         { return filepath.Join(c.DataDir, "barrels") }
func (c Config) MetadataPath() string      { return filepath.Join(c.DataDir, "jobs.csv") }
