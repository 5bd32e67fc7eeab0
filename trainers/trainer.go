// Package trainers implements the out-of-place fit and evaluate sessions
// and their session-level metric recording.
package trainers

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/neurlang/evaluator/datamodules"
	"github.com/neurlang/evaluator/datasets"
	"github.com/neurlang/evaluator/learning"
	"github.com/neurlang/evaluator/metrics"
	"github.com/neurlang/evaluator/models"
	"github.com/neurlang/evaluator/parallel"
)

// Checkpoint modes selecting which model state Validate and Test see.
const (
	CheckpointBest = "best"
	CheckpointLast = "last"
)

// Trainer drives fit, validate, test and predict phases of one run. The
// substantive work happens in the model units and the learner; the trainer
// sequences them, tracks the best snapshot and owns the run log directory.
type Trainer struct {
	// OutputDir is the session log directory; run directories live below it.
	OutputDir string

	// MaxEpochs bounds the passes Fit makes over the model units.
	MaxEpochs int

	// CheckpointMode selects the snapshot evaluated after Fit.
	CheckpointMode string

	// EvalThreads bounds evaluation concurrency. Zero means GOMAXPROCS.
	EvalThreads int

	// EvalSignificance enables subsampled validation during Fit at the
	// given significance level (0-100). Zero evaluates the full split.
	EvalSignificance byte

	// Learner holds the program search settings handed to the model units.
	Learner learning.HyperParameters

	base      *zap.Logger
	logger    *zap.Logger
	runDir    string
	best      models.ModelModule
	bestScore float64
	haveBest  bool
}

// New creates a trainer logging to outputDir.
func New(outputDir string, maxEpochs int) *Trainer {
	if maxEpochs <= 0 {
		maxEpochs = 1
	}
	nop := zap.NewNop()
	return &Trainer{
		OutputDir:      outputDir,
		MaxEpochs:      maxEpochs,
		CheckpointMode: CheckpointBest,
		base:           nop,
		logger:         nop,
	}
}

// SetLogger attaches a logger used by this trainer and its clones.
func (t *Trainer) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	t.base = l
	t.logger = l
}

// Logger returns the trainer's current logger.
func (t *Trainer) Logger() *zap.Logger {
	return t.logger
}

// DefaultLogDir is the session log directory this trainer writes below.
func (t *Trainer) DefaultLogDir() string {
	return t.OutputDir
}

// RunDir is the log directory of the current run, or the session directory
// outside a run.
func (t *Trainer) RunDir() string {
	if t.runDir != "" {
		return t.runDir
	}
	return t.OutputDir
}

// Clone returns a trainer with the same settings and no run state, so the
// base trainer is never modified by a run.
func (t *Trainer) Clone() *Trainer {
	return &Trainer{
		OutputDir:        t.OutputDir,
		MaxEpochs:        t.MaxEpochs,
		CheckpointMode:   t.CheckpointMode,
		EvalThreads:      t.EvalThreads,
		EvalSignificance: t.EvalSignificance,
		Learner:          t.Learner,
		base:             t.base,
		logger:           t.base,
	}
}

// InitLoggerRun creates the log directory of run runID and scopes the
// trainer's logger to it.
func (t *Trainer) InitLoggerRun(runID int) error {
	t.runDir = filepath.Join(t.OutputDir, fmt.Sprintf("run_%d", runID))
	if err := os.MkdirAll(t.runDir, 0o755); err != nil {
		return err
	}
	t.logger = t.base.With(zap.Int("run", runID))
	return nil
}

// FinishLoggerRun closes the run scope opened by InitLoggerRun.
func (t *Trainer) FinishLoggerRun() {
	_ = t.logger.Sync()
	t.logger = t.base
	t.runDir = ""
}

// Fit trains the model on the train split, walking the units in shuffled
// order and keeping only unit replacements that do not hurt the validation
// score. States already visited are undone to escape oscillation. The best
// scoring snapshot is retained for checkpointing.
func (t *Trainer) Fit(model models.ModelModule, dm datamodules.DataModule) error {
	if len(dm.Train) == 0 || len(dm.Validation) == 0 {
		return errors.New("trainers: fit needs train and validation splits")
	}
	if model.Units() == 0 {
		return errors.New("trainers: model is not configured")
	}

	hp := t.Learner
	hp.SetLogger(t.logger)

	visited := make(map[[32]byte]struct{})
	report, state := t.evaluate(model, dm.Validation, true)
	score := report["accuracy"]
	visited[state] = struct{}{}
	t.noteBest(model, score)

	for epoch := 0; epoch < t.MaxEpochs; epoch++ {
		for _, idx := range rand.Perm(model.Units()) {
			undo, err := model.TrainUnit(idx, dm.Train, hp)
			if err != nil {
				if errors.Is(err, learning.ErrDeadline) {
					t.logger.Warn("unit solve deadline, skipping",
						zap.Int("unit", idx), zap.Int("epoch", epoch))
					continue
				}
				return err
			}
			if undo == nil {
				continue
			}

			newReport, newState := t.evaluate(model, dm.Validation, true)
			newScore := newReport["accuracy"]
			if _, dup := visited[newState]; dup || newScore < score {
				undo()
				continue
			}
			visited[newState] = struct{}{}
			score = newScore
			t.noteBest(model, newScore)
		}
		t.logger.Info("epoch finished",
			zap.Int("epoch", epoch),
			zap.Float64("val_accuracy", score))
	}
	return nil
}

// Validate evaluates the checkpointed model on the validation split.
func (t *Trainer) Validate(model models.ModelModule, dm datamodules.DataModule, verbose bool) (metrics.Report, error) {
	if len(dm.Validation) == 0 {
		return nil, errors.New("trainers: no validation split")
	}
	report, _ := t.evaluate(t.checkpoint(model), dm.Validation, false)
	if verbose {
		t.logReport("validation metrics", report)
	}
	return report, nil
}

// Test evaluates the checkpointed model on the held-out test split.
func (t *Trainer) Test(model models.ModelModule, dm datamodules.DataModule, verbose bool) (metrics.Report, error) {
	if !dm.HasTest() {
		return nil, errors.New("trainers: no test split")
	}
	report, _ := t.evaluate(t.checkpoint(model), dm.Test, false)
	if verbose {
		t.logReport("test metrics", report)
	}
	return report, nil
}

// Predict computes model outputs over the predict split.
func (t *Trainer) Predict(model models.ModelModule, dm datamodules.DataModule) ([]uint16, error) {
	if !dm.HasPredict() {
		return nil, errors.New("trainers: no predict split")
	}
	if model.Units() == 0 {
		return nil, errors.New("trainers: model is not configured")
	}
	out := make([]uint16, len(dm.Predict))
	parallel.ForEach(len(dm.Predict), t.EvalThreads, func(i int) {
		out[i] = model.Forward(dm.Predict[i])
	})
	return out, nil
}

// checkpoint selects the model state by CheckpointMode.
func (t *Trainer) checkpoint(model models.ModelModule) models.ModelModule {
	if t.CheckpointMode != CheckpointLast && t.haveBest {
		return t.best
	}
	return model
}

func (t *Trainer) noteBest(model models.ModelModule, score float64) {
	if !t.haveBest || score > t.bestScore {
		t.best = model.Clone()
		t.bestScore = score
		t.haveBest = true
	}
}

// evaluate runs the model over samples and reports accuracy and mean
// absolute error, together with a fingerprint of the predictions. During
// fit a statistically sufficient sample may stand in for the full split.
func (t *Trainer) evaluate(model models.ModelModule, samples []datasets.Sample, sampled bool) (metrics.Report, [32]byte) {
	length := len(samples)
	if sampled && t.EvalSignificance > 0 {
		length = sampleSize(length, t.EvalSignificance)
	}

	fp := parallel.NewFingerprint()
	var correct, errsum atomic.Uint64
	parallel.ForEach(length, t.EvalThreads, func(i int) {
		s := samples[i]
		predicted := model.Forward(s)
		fp.PutUint16(i, predicted)
		expected := s.Output()
		if predicted == expected {
			correct.Add(1)
		}
		if predicted > expected {
			errsum.Add(uint64(predicted - expected))
		} else {
			errsum.Add(uint64(expected - predicted))
		}
	})

	return metrics.Report{
		"accuracy": float64(correct.Load()) / float64(length),
		"error":    float64(errsum.Load()) / float64(length),
	}, fp.Sum()
}

func (t *Trainer) logReport(msg string, report metrics.Report) {
	fields := make([]zap.Field, 0, len(report))
	for _, name := range report.Names() {
		fields = append(fields, zap.Float64(name, report[name]))
	}
	t.logger.Info(msg, fields...)
}
