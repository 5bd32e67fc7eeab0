package trainers

import (
	"github.com/neurlang/evaluator/datamodules"
	"github.com/neurlang/evaluator/metrics"
	"github.com/neurlang/evaluator/models"
)

// RunEvaluationSession runs a downstream evaluation session out-of-place.
//
// It performs nRuns independent evaluation runs (fit and evaluate) on clones
// of the base trainer and base model, so the inputs are never modified, and
// feeds every run's scores into a session recorder saved at the end. When
// verbose is true the session metrics are reported instead of those of each
// individual run, and vice-versa.
func RunEvaluationSession(baseTrainer *Trainer, baseModel models.ModelModule, dm datamodules.DataModule, nRuns int, verbose bool) error {
	if nRuns <= 0 {
		nRuns = 1
	}
	recorder := NewSessionRecorder(baseTrainer.DefaultLogDir(), verbose, baseTrainer.Logger())
	for runIndex := 0; runIndex < nRuns; runIndex++ {
		validationScores, testScores, err := RunEvaluation(baseTrainer, baseModel, dm, runIndex, !verbose)
		if err != nil {
			return err
		}
		recorder.Update(validationScores, testScores)
	}
	return recorder.Save()
}

// RunEvaluation fits and evaluates a model out-of-place.
//
// The base trainer and base model are cloned and stay unmodified; runID
// names the run log directory. It returns the validation scores and, when a
// test split exists, the test scores.
func RunEvaluation(baseTrainer *Trainer, baseModel models.ModelModule, dm datamodules.DataModule, runID int, verbose bool) (metrics.Report, metrics.Report, error) {
	trainer, model := clone(baseTrainer, baseModel)
	if err := model.ConfigureModel(); err != nil {
		return nil, nil, err
	}

	if err := trainer.InitLoggerRun(runID); err != nil {
		return nil, nil, err
	}
	defer trainer.FinishLoggerRun()

	return FitAndValidate(trainer, model, dm, verbose)
}

// FitAndValidate fits and evaluates a model in-place.
//
// If the datamodule has a test split, the model is evaluated on it as well;
// otherwise the returned test report is nil.
func FitAndValidate(trainer *Trainer, model models.ModelModule, dm datamodules.DataModule, verbose bool) (metrics.Report, metrics.Report, error) {
	if err := trainer.Fit(model, dm); err != nil {
		return nil, nil, err
	}
	validationScores, err := trainer.Validate(model, dm, verbose)
	if err != nil {
		return nil, nil, err
	}
	if !dm.HasTest() {
		return validationScores, nil, nil
	}
	testScores, err := trainer.Test(model, dm, verbose)
	if err != nil {
		return nil, nil, err
	}
	return validationScores, testScores, nil
}

// InferModel performs model inference out-of-place.
//
// The base trainer and base model are cloned and stay unmodified. The
// predictions are returned only when returnPredictions is set.
func InferModel(baseTrainer *Trainer, baseModel models.ModelModule, dm datamodules.DataModule, returnPredictions bool) ([]uint16, error) {
	trainer, model := clone(baseTrainer, baseModel)
	predictions, err := trainer.Predict(model, dm)
	if err != nil {
		return nil, err
	}
	if !returnPredictions {
		return nil, nil
	}
	return predictions, nil
}

// clone deep copies a trainer and a model for one out-of-place run.
func clone(t *Trainer, m models.ModelModule) (*Trainer, models.ModelModule) {
	return t.Clone(), m.Clone()
}
