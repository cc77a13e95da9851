// Package config describes the recognizer configuration and its
// yaml file format.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// AssetsConfig says where to fetch the model and vocabulary from.
type AssetsConfig struct {
	ModelURL string `yaml:"model_url"`
	VocabURL string `yaml:"vocab_url"`
	CacheDir string `yaml:"cache_dir,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// ExecutorConfig selects inference backends, most preferred first.
type ExecutorConfig struct {
	Backends []string `yaml:"backends,flow"`
	Threads  int      `yaml:"threads,omitempty"`
}

type DecodeConfig struct {
	BeamWidth int `yaml:"beam_width"`
	MaxSteps  int `yaml:"max_steps"`
}

type BatchConfig struct {
	MaxConcurrent int64 `yaml:"max_concurrent"`
}

type Config struct {
	Assets   AssetsConfig   `yaml:"assets"`
	Executor ExecutorConfig `yaml:"executor"`
	Decode   DecodeConfig   `yaml:"decode"`
	Batch    BatchConfig    `yaml:"batch"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Executor: ExecutorConfig{
			Backends: []string{"cuda", "cpu"},
		},
		Decode: DecodeConfig{
			BeamWidth: 1,
			MaxSteps:  200,
		},
		Batch: BatchConfig{
			MaxConcurrent: 3,
		},
	}
}

// LoadFromFile reads path on top of the defaults, so a partial file
// only overrides the fields it names.
func LoadFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	return cfg, nil
}

func (c *Config) SaveToFile(path string) error {
	content, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return errors.Wrap(err, "write config")
	}

	return nil
}

func (c *Config) Validate() error {
	if len(c.Executor.Backends) == 0 {
		return errors.New("at least one backend is required")
	}
	if c.Executor.Threads < 0 {
		return errors.New("threads cannot be negative")
	}
	if c.Decode.BeamWidth < 0 {
		return errors.New("beam width cannot be negative")
	}
	if c.Decode.MaxSteps < 0 {
		return errors.New("max steps cannot be negative")
	}
	if c.Batch.MaxConcurrent <= 0 {
		return errors.New("max concurrent must be positive")
	}
	return nil
}
