package config

import (
	"fmt"

	"github.com/neurlang/evaluator/datamodules"
	"github.com/neurlang/evaluator/datasets"
	"github.com/neurlang/evaluator/datasets/isalnum"
	"github.com/neurlang/evaluator/datasets/squareroot"
)

// Samples resolves the configured dataset name to its samples.
func (c DataConfig) Samples() ([]datasets.Sample, error) {
	switch c.Dataset {
	case "squareroot:small":
		return squareroot.Small(), nil
	case "squareroot:medium":
		return squareroot.Medium(), nil
	case "squareroot:big":
		return squareroot.Big(), nil
	case "isalnum":
		return isalnum.All(), nil
	case "isalnum:ascii":
		return isalnum.Ascii(), nil
	}
	return nil, fmt.Errorf("unknown dataset %q", c.Dataset)
}

// DataModule splits the configured dataset.
func (c DataConfig) DataModule() (datamodules.DataModule, error) {
	samples, err := c.Samples()
	if err != nil {
		return datamodules.DataModule{}, err
	}
	return datamodules.Split(samples, c.TrainFraction, c.ValidationFraction, c.TestFraction, c.Seed)
}
