package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finprofile-dev/finprofile/internal/nn"
	"github.com/finprofile-dev/finprofile/internal/train"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Training.Folds = 3
	cfg.Training.ReinitPerFold = false
	cfg.Scheduler.Mode = "min"
	cfg.Output.Plot = "results/curve.png"
	cfg.Telemetry.Enabled = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data/customer_transactions_train.csv", cfg.Data.Train)
	assert.Equal(t, "data/customer_transactions_test.csv", cfg.Data.Test)
	assert.Equal(t, "customer_name", cfg.Data.Categorical)
	assert.Equal(t, []string{"transaction_id"}, cfg.Data.Drop)
	assert.Equal(t, 64, cfg.Model.Hidden)
	assert.Equal(t, 5, cfg.Training.Folds)
	assert.Equal(t, 10, cfg.Training.Epochs)
	assert.Equal(t, 32, cfg.Training.BatchSize)
	assert.InDelta(t, 0.001, cfg.Training.LearningRate, 1e-12)
	assert.InDelta(t, 0.01, cfg.Training.WeightDecay, 1e-12)
	assert.True(t, cfg.Training.ReinitPerFold)
	assert.Equal(t, "max", cfg.Scheduler.Mode)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("training:\n  epochs: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Training.Epochs)
	assert.Equal(t, 32, cfg.Training.BatchSize)
	assert.Equal(t, "customer_name", cfg.Data.Categorical)
}

func TestLoad_ExplicitEmptyOverridesDefault(t *testing.T) {
	cfg := Default()
	cfg.Data.Categorical = ""
	cfg.Data.Drop = nil
	cfg.Output.ResultsLog = ""

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, got.Data.Categorical)
	assert.Empty(t, got.Data.Drop)
	assert.Empty(t, got.Output.ResultsLog)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("training: [not, a, map]\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "categorical: customer_name")
	assert.Contains(t, contents, "reinit_per_fold: true")
	assert.Contains(t, contents, "mode: max")
	assert.Contains(t, contents, "results_log: results/scores.csv")
}

func TestTrain(t *testing.T) {
	cfg := Default()
	cfg.Scheduler.Mode = "min"
	cfg.Model.Hidden = 8

	tc, err := cfg.Train()
	require.NoError(t, err)
	assert.Equal(t, nn.ModeMin, tc.SchedulerMode)
	assert.Equal(t, 8, tc.Hidden)
	assert.Equal(t, cfg.Training.Seed, tc.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		isErr  error
	}{
		{"no train path", func(c *Config) { c.Data.Train = "" }, nil},
		{"bad mode", func(c *Config) { c.Scheduler.Mode = "sideways" }, nil},
		{"one fold", func(c *Config) { c.Training.Folds = 1 }, train.ErrInvalidConfig},
		{"zero hidden", func(c *Config) { c.Model.Hidden = 0 }, train.ErrInvalidConfig},
		{"no customers", func(c *Config) { c.Generator.Customers = 0 }, nil},
		{"telemetry without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}
