package models

import (
	"errors"

	"github.com/neurlang/quaternary"

	"github.com/neurlang/evaluator/datasets"
	"github.com/neurlang/evaluator/hashtron"
	"github.com/neurlang/evaluator/learning"
	"github.com/neurlang/evaluator/parallel"
)

// HashtronClassifier predicts one hashtron per output bit. Each unit is
// retrained by solving a fresh program over the majority-voted decisions of
// the training samples.
type HashtronClassifier struct {
	bits    byte
	units   []hashtron.Hashtron
	trained []bool
}

// NewHashtronClassifier creates an unconfigured classifier predicting the
// given number of output bits.
func NewHashtronClassifier(bits byte) (*HashtronClassifier, error) {
	if bits == 0 {
		bits = 1
	}
	if bits > 16 {
		return nil, errors.New("models: bits exceed the 16 bit output")
	}
	return &HashtronClassifier{bits: bits}, nil
}

// Bits reports the number of output bits.
func (c *HashtronClassifier) Bits() byte {
	return c.bits
}

// Classes reports the number of distinguishable classes.
func (c *HashtronClassifier) Classes() uint16 {
	return 1 << c.bits
}

// ConfigureModel allocates the units with random initial programs. A model
// that already carries units is left untouched.
func (c *HashtronClassifier) ConfigureModel() error {
	if len(c.units) != 0 {
		return nil
	}
	c.units = make([]hashtron.Hashtron, c.bits)
	c.trained = make([]bool, c.bits)
	for i := range c.units {
		h, err := hashtron.New(nil, 1, nil)
		if err != nil {
			return err
		}
		c.units[i] = *h
	}
	return nil
}

// Clone returns a deep copy sharing no mutable state with c.
func (c *HashtronClassifier) Clone() ModelModule {
	o := &HashtronClassifier{bits: c.bits}
	if c.units != nil {
		o.units = make([]hashtron.Hashtron, len(c.units))
		for i := range c.units {
			o.units[i] = c.units[i].Clone()
		}
		o.trained = make([]bool, len(c.trained))
		copy(o.trained, c.trained)
	}
	return o
}

// Units reports the number of trainable units.
func (c *HashtronClassifier) Units() int {
	return len(c.units)
}

// Forward predicts the output of one sample, one bit per unit.
func (c *HashtronClassifier) Forward(s datasets.Sample) (out uint16) {
	feature := s.Feature(0)
	for j := range c.units {
		out |= (c.units[j].Forward(feature) & 1) << j
	}
	return
}

// TrainUnit retrains unit idx on the samples. Samples the unit currently
// misclassifies mark the tally as improvable; without them the unit is left
// alone.
func (c *HashtronClassifier) TrainUnit(idx int, train []datasets.Sample, hp learning.HyperParameters) (undo func(), err error) {
	if idx < 0 || idx >= len(c.units) {
		return nil, errors.New("models: unit index out of range")
	}

	tally := datasets.NewTally()
	parallel.ForEach(len(train), hp.Threads, func(i int) {
		s := train[i]
		feature := s.Feature(0)
		want := s.Output()>>idx&1 != 0
		have := c.units[idx].Forward(feature)&1 != 0
		vote := int8(-1)
		if want {
			vote = 1
		}
		tally.Add(feature, vote, want != have)
	})
	if !tally.GetImprovementPossible() {
		return nil, nil
	}

	dset := tally.Dataset()
	program, err := hp.Solve(datasets.BalanceDataset(datasets.SplitDataset(dset)))
	if err != nil {
		return nil, err
	}
	filter := quaternary.Make(map[uint32]bool(dset))
	candidate, err := hashtron.New(program, 1, []byte(filter))
	if err != nil {
		return nil, err
	}
	backup := c.units[idx]
	wasTrained := c.trained[idx]
	c.units[idx] = *candidate
	c.trained[idx] = true
	return func() {
		c.units[idx] = backup
		c.trained[idx] = wasTrained
	}, nil
}
