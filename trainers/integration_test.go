package trainers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/evaluator/datamodules"
	"github.com/neurlang/evaluator/datasets/isalnum"
	"github.com/neurlang/evaluator/learning"
	"github.com/neurlang/evaluator/models"
)

// End to end session on the is-alnum task with the real classifier.
func TestSessionOnIsAlnum(t *testing.T) {
	if testing.Short() {
		t.Skip("salt search is too slow for -short")
	}

	dm, err := datamodules.Split(isalnum.All(), 0.6, 0.2, 0.2, 11)
	require.NoError(t, err)

	dir := t.TempDir()
	trainer := New(dir, 2)
	trainer.Learner = learning.HyperParameters{Threads: 4, DeadlineMs: 60000}

	model, err := models.NewHashtronClassifier(1)
	require.NoError(t, err)

	require.NoError(t, RunEvaluationSession(trainer, model, dm, 2, true))
	require.Zero(t, model.Units(), "base model must stay unconfigured")

	_, err = os.Stat(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
}
