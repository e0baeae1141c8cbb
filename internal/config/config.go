// Package config reads and writes the finprofile.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finprofile-dev/finprofile/internal/generator"
	"github.com/finprofile-dev/finprofile/internal/nn"
	"github.com/finprofile-dev/finprofile/internal/telemetry"
	"github.com/finprofile-dev/finprofile/internal/train"
)

// FileName is the project file created by init.
const FileName = "finprofile.yaml"

// Config represents the top-level finprofile.yaml configuration.
type Config struct {
	Data      DataConfig       `yaml:"data"`
	Model     ModelConfig      `yaml:"model"`
	Training  TrainingConfig   `yaml:"training"`
	Scheduler SchedulerConfig  `yaml:"scheduler"`
	Generator generator.Config `yaml:"generator"`
	Output    OutputConfig     `yaml:"output"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// DataConfig locates the transaction CSVs and names the columns the
// preprocessing pipeline treats specially. The label is always column 0.
type DataConfig struct {
	Train       string   `yaml:"train"`
	Test        string   `yaml:"test"`
	Categorical string   `yaml:"categorical"`
	Drop        []string `yaml:"drop"`
}

// ModelConfig sizes the network.
type ModelConfig struct {
	Hidden int `yaml:"hidden"`
}

// TrainingConfig holds the optimisation hyperparameters.
type TrainingConfig struct {
	Folds         int     `yaml:"folds"`
	Epochs        int     `yaml:"epochs"`
	BatchSize     int     `yaml:"batch_size"`
	LearningRate  float64 `yaml:"learning_rate"`
	WeightDecay   float64 `yaml:"weight_decay"`
	Seed          uint64  `yaml:"seed"`
	ReinitPerFold bool    `yaml:"reinit_per_fold"`
	LogEvery      int     `yaml:"log_every"`
}

// SchedulerConfig controls the reduce-on-plateau learning rate schedule.
type SchedulerConfig struct {
	Mode     string  `yaml:"mode"` // "min" or "max"
	Factor   float64 `yaml:"factor"`
	Patience int     `yaml:"patience"`
}

// OutputConfig names optional artifacts. Empty paths disable them.
type OutputConfig struct {
	ResultsLog string `yaml:"results_log"`
	Plot       string `yaml:"plot"`
}

// Load reads a finprofile.yaml file from disk. Sections missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	tc := train.DefaultConfig()
	return &Config{
		Data: DataConfig{
			Train:       "data/customer_transactions_train.csv",
			Test:        "data/customer_transactions_test.csv",
			Categorical: "customer_name",
			Drop:        []string{"transaction_id"},
		},
		Model: ModelConfig{
			Hidden: tc.Hidden,
		},
		Training: TrainingConfig{
			Folds:         tc.Folds,
			Epochs:        tc.Epochs,
			BatchSize:     tc.BatchSize,
			LearningRate:  tc.LearningRate,
			WeightDecay:   tc.WeightDecay,
			Seed:          tc.Seed,
			ReinitPerFold: tc.ReinitPerFold,
			LogEvery:      tc.LogEvery,
		},
		Scheduler: SchedulerConfig{
			Mode:     string(tc.SchedulerMode),
			Factor:   tc.SchedulerFactor,
			Patience: tc.SchedulerPatience,
		},
		Generator: generator.DefaultConfig(),
		Output: OutputConfig{
			ResultsLog: "results/scores.csv",
		},
		Telemetry: telemetry.Config{
			Endpoint: "localhost:4317",
			Insecure: true,
		},
	}
}

// Train maps the model, training and scheduler sections onto the runner's
// hyperparameters.
func (c *Config) Train() (train.Config, error) {
	mode, err := nn.ParseMode(c.Scheduler.Mode)
	if err != nil {
		return train.Config{}, fmt.Errorf("scheduler: %w", err)
	}
	return train.Config{
		Folds:             c.Training.Folds,
		Epochs:            c.Training.Epochs,
		BatchSize:         c.Training.BatchSize,
		Hidden:            c.Model.Hidden,
		LearningRate:      c.Training.LearningRate,
		WeightDecay:       c.Training.WeightDecay,
		Seed:              c.Training.Seed,
		ReinitPerFold:     c.Training.ReinitPerFold,
		SchedulerMode:     mode,
		SchedulerFactor:   c.Scheduler.Factor,
		SchedulerPatience: c.Scheduler.Patience,
		LogEvery:          c.Training.LogEvery,
	}, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Data.Train == "" {
		return errors.New("data.train must be set")
	}
	tc, err := c.Train()
	if err != nil {
		return err
	}
	if err := tc.Validate(); err != nil {
		return err
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return errors.New("telemetry.endpoint must be set when telemetry is enabled")
	}
	return nil
}
