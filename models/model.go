// Package models defines the model modules driven by evaluation sessions.
package models

import (
	"github.com/neurlang/evaluator/datasets"
	"github.com/neurlang/evaluator/learning"
)

// ModelModule is the train and inference unit a Trainer drives. Fit walks
// the units in some order and retrains them one at a time; every mutation is
// undoable so the trainer can back out of steps that hurt validation.
type ModelModule interface {
	// ConfigureModel builds the model weights when not built yet.
	ConfigureModel() error

	// Clone returns a deep copy sharing no mutable state.
	Clone() ModelModule

	// Forward computes the model output for one sample.
	Forward(s datasets.Sample) uint16

	// Units reports the number of trainable units.
	Units() int

	// TrainUnit retrains unit idx on the samples. It returns a non-nil
	// undo when the unit was replaced, and nil when no improvement was
	// possible or the candidate was rejected.
	TrainUnit(idx int, train []datasets.Sample, hp learning.HyperParameters) (undo func(), err error)
}
