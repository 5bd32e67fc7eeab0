// Package datamodules groups the dataset splits an evaluation session runs
// against.
package datamodules

import (
	"errors"
	"math/rand"

	"github.com/neurlang/evaluator/datasets"
)

// DataModule holds the sample splits of one task. The test split is
// optional; sessions run the held-out test evaluation only when it is
// present. The predict split feeds inference sessions.
type DataModule struct {
	Train      []datasets.Sample
	Validation []datasets.Sample
	Test       []datasets.Sample
	Predict    []datasets.Sample
}

// HasTest reports whether a held-out test split is present.
func (dm DataModule) HasTest() bool {
	return len(dm.Test) > 0
}

// HasPredict reports whether a predict split is present.
func (dm DataModule) HasPredict() bool {
	return len(dm.Predict) > 0
}

// Split shuffles samples with the seed and divides them into train,
// validation and test splits by the given fractions. A zero test fraction
// produces a datamodule without a test split.
func Split(samples []datasets.Sample, trainFrac, valFrac, testFrac float64, seed int64) (DataModule, error) {
	if trainFrac < 0 || valFrac < 0 || testFrac < 0 || trainFrac+valFrac+testFrac > 1+1e-9 {
		return DataModule{}, errors.New("datamodules: invalid split fractions")
	}

	shuffled := make([]datasets.Sample, len(samples))
	copy(shuffled, samples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTrain := int(float64(len(shuffled)) * trainFrac)
	nVal := int(float64(len(shuffled)) * valFrac)
	nTest := int(float64(len(shuffled)) * testFrac)
	if nTrain == 0 || nVal == 0 {
		return DataModule{}, errors.New("datamodules: train and validation splits must be non-empty")
	}

	dm := DataModule{
		Train:      shuffled[:nTrain],
		Validation: shuffled[nTrain : nTrain+nVal],
	}
	if nTest > 0 {
		dm.Test = shuffled[nTrain+nVal : nTrain+nVal+nTest]
	}
	return dm, nil
}
