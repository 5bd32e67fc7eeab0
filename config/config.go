// Package config loads the YAML session configuration files consumed by the
// evaluator command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neurlang/evaluator/learning"
	"github.com/neurlang/evaluator/trainers"
)

// Config is one evaluation session description.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Trainer TrainerConfig `yaml:"trainer"`
	Model   ModelConfig   `yaml:"model"`
	Data    DataConfig    `yaml:"data"`
}

// SessionConfig controls the run loop and the reporting mode.
type SessionConfig struct {
	// NRuns is the amount of independent runs (fit and evaluate).
	NRuns int `yaml:"n_runs"`

	// Verbose reports the session metrics instead of those of each
	// individual run, and vice-versa.
	Verbose bool `yaml:"verbose"`
}

// TrainerConfig maps onto trainers.Trainer.
type TrainerConfig struct {
	OutputDir        string                   `yaml:"output_dir"`
	MaxEpochs        int                      `yaml:"max_epochs"`
	CheckpointMode   string                   `yaml:"checkpoint_mode"`
	EvalThreads      int                      `yaml:"eval_threads"`
	EvalSignificance byte                     `yaml:"eval_significance"`
	Learner          learning.HyperParameters `yaml:"learner"`
}

// ModelConfig describes the classifier under evaluation.
type ModelConfig struct {
	// Bits is the model output width.
	Bits byte `yaml:"bits"`

	// Weights optionally points to zlib weights to load before inference.
	Weights string `yaml:"weights"`
}

// DataConfig selects a task dataset and its split fractions.
type DataConfig struct {
	// Dataset names a built-in task: "squareroot:small", "squareroot:medium",
	// "squareroot:big", "isalnum" or "isalnum:ascii".
	Dataset string `yaml:"dataset"`

	TrainFraction      float64 `yaml:"train_fraction"`
	ValidationFraction float64 `yaml:"validation_fraction"`
	TestFraction       float64 `yaml:"test_fraction"`
	Seed               int64   `yaml:"seed"`
}

// Default returns the configuration used when a field is left unset.
func Default() Config {
	return Config{
		Session: SessionConfig{NRuns: 1, Verbose: true},
		Trainer: TrainerConfig{
			OutputDir:      "logs",
			MaxEpochs:      2,
			CheckpointMode: trainers.CheckpointBest,
		},
		Model: ModelConfig{Bits: 1},
		Data: DataConfig{
			Dataset:            "isalnum",
			TrainFraction:      0.6,
			ValidationFraction: 0.2,
			TestFraction:       0.2,
		},
	}
}

// Load reads a YAML config file on top of the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if c.Session.NRuns < 1 {
		return fmt.Errorf("session.n_runs must be at least 1, got %d", c.Session.NRuns)
	}
	if c.Trainer.MaxEpochs < 1 {
		return fmt.Errorf("trainer.max_epochs must be at least 1, got %d", c.Trainer.MaxEpochs)
	}
	switch c.Trainer.CheckpointMode {
	case trainers.CheckpointBest, trainers.CheckpointLast:
	default:
		return fmt.Errorf("trainer.checkpoint_mode must be %q or %q, got %q",
			trainers.CheckpointBest, trainers.CheckpointLast, c.Trainer.CheckpointMode)
	}
	if c.Model.Bits < 1 || c.Model.Bits > 16 {
		return fmt.Errorf("model.bits must be between 1 and 16, got %d", c.Model.Bits)
	}
	if c.Data.Dataset == "" {
		return fmt.Errorf("data.dataset must be set")
	}
	return nil
}

// NewTrainer builds a trainer from the configuration.
func (c Config) NewTrainer() *trainers.Trainer {
	t := trainers.New(c.Trainer.OutputDir, c.Trainer.MaxEpochs)
	t.CheckpointMode = c.Trainer.CheckpointMode
	t.EvalThreads = c.Trainer.EvalThreads
	t.EvalSignificance = c.Trainer.EvalSignificance
	t.Learner = c.Trainer.Learner
	return t
}
