package trainers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTrainerClone(t *testing.T) {
	base := New("out", 5)
	base.CheckpointMode = CheckpointLast
	base.EvalThreads = 3
	base.EvalSignificance = 95
	base.SetLogger(zap.NewNop())

	c := base.Clone()
	require.Equal(t, base.OutputDir, c.OutputDir)
	require.Equal(t, base.MaxEpochs, c.MaxEpochs)
	require.Equal(t, base.CheckpointMode, c.CheckpointMode)
	require.Equal(t, base.EvalThreads, c.EvalThreads)
	require.Equal(t, base.EvalSignificance, c.EvalSignificance)
	require.False(t, c.haveBest)
}

func TestInitLoggerRun(t *testing.T) {
	dir := t.TempDir()
	tr := New(dir, 1)
	require.Equal(t, dir, tr.DefaultLogDir())
	require.Equal(t, dir, tr.RunDir())

	require.NoError(t, tr.InitLoggerRun(7))
	require.Equal(t, filepath.Join(dir, "run_7"), tr.RunDir())
	_, err := os.Stat(tr.RunDir())
	require.NoError(t, err)

	tr.FinishLoggerRun()
	require.Equal(t, dir, tr.RunDir())
}

func TestCheckpointModes(t *testing.T) {
	tr := New(t.TempDir(), 1)
	model := newStubModel()
	require.NoError(t, model.ConfigureModel())

	// no best snapshot yet: the passed model is used
	require.Same(t, model, tr.checkpoint(model).(*stubModel))

	model.good = true
	tr.noteBest(model, 1.0)
	model.good = false

	best := tr.checkpoint(model).(*stubModel)
	require.True(t, best.good, "best mode must return the best snapshot")

	tr.CheckpointMode = CheckpointLast
	require.Same(t, model, tr.checkpoint(model).(*stubModel))
}

func TestValidateRequiresSplit(t *testing.T) {
	tr := New(t.TempDir(), 1)
	model := newStubModel()
	require.NoError(t, model.ConfigureModel())

	_, err := tr.Validate(model, testDataModule(false), false)
	require.NoError(t, err)

	_, err = tr.Test(model, testDataModule(false), false)
	require.Error(t, err, "test evaluation without a test split")
}

func TestEvaluateMetrics(t *testing.T) {
	tr := New(t.TempDir(), 1)
	model := newStubModel()
	require.NoError(t, model.ConfigureModel())
	model.good = true

	report, state := tr.evaluate(model, testSamples(10), false)
	require.Equal(t, 1.0, report["accuracy"])
	require.Equal(t, 0.0, report["error"])

	model.good = false
	report, state2 := tr.evaluate(model, testSamples(10), false)
	require.Equal(t, 0.0, report["accuracy"])
	require.Equal(t, 1.0, report["error"])
	require.NotEqual(t, state, state2)
}

func TestSampleSize(t *testing.T) {
	require.Equal(t, 0, sampleSize(0, 95))
	require.Equal(t, 1, sampleSize(1, 95))
	require.Equal(t, 10, sampleSize(10, 100))

	n := sampleSize(100000, 95)
	require.Greater(t, n, 100)
	require.Less(t, n, 100000)

	require.LessOrEqual(t, sampleSize(50, 95), 50)
}

func TestZScoreFromAlpha(t *testing.T) {
	require.Equal(t, 2.576, zScoreFromAlpha(1))
	require.Equal(t, 1.96, zScoreFromAlpha(5))
	require.Equal(t, 1.645, zScoreFromAlpha(10))
	require.Equal(t, 1.96, zScoreFromAlpha(50))
}
