package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/evaluator/trainers"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Session.NRuns)
	require.True(t, cfg.Session.Verbose)
	require.Equal(t, trainers.CheckpointBest, cfg.Trainer.CheckpointMode)
	require.Equal(t, byte(1), cfg.Model.Bits)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
session:
  n_runs: 5
  verbose: false
trainer:
  output_dir: /tmp/out
  max_epochs: 3
  checkpoint_mode: last
  learner:
    threads: 8
    deadline_ms: 2500
model:
  bits: 4
data:
  dataset: squareroot:small
  train_fraction: 0.7
  validation_fraction: 0.3
  test_fraction: 0
  seed: 9
`))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Session.NRuns)
	require.False(t, cfg.Session.Verbose)
	require.Equal(t, "/tmp/out", cfg.Trainer.OutputDir)
	require.Equal(t, trainers.CheckpointLast, cfg.Trainer.CheckpointMode)
	require.Equal(t, 8, cfg.Trainer.Learner.Threads)
	require.Equal(t, 2500, cfg.Trainer.Learner.DeadlineMs)
	require.Equal(t, byte(4), cfg.Model.Bits)

	tr := cfg.NewTrainer()
	require.Equal(t, "/tmp/out", tr.DefaultLogDir())
	require.Equal(t, 3, tr.MaxEpochs)

	dm, err := cfg.Data.DataModule()
	require.NoError(t, err)
	require.False(t, dm.HasTest())
	require.Len(t, dm.Train, 179)
}

func TestLoadInvalid(t *testing.T) {
	for _, body := range []string{
		"session:\n  n_runs: -1\n",
		"trainer:\n  checkpoint_mode: newest\n",
		"model:\n  bits: 20\n",
		"data:\n  dataset: \"\"\n",
	} {
		_, err := Load(writeConfig(t, body))
		require.Error(t, err, "config %q", body)
	}
}

func TestSamplesUnknownDataset(t *testing.T) {
	_, err := DataConfig{Dataset: "mnist"}.Samples()
	require.Error(t, err)
}
