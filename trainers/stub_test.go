package trainers

import (
	"sync/atomic"

	"github.com/neurlang/evaluator/datamodules"
	"github.com/neurlang/evaluator/datasets"
	"github.com/neurlang/evaluator/learning"
	"github.com/neurlang/evaluator/models"
)

type testSample struct {
	f uint32
	o uint16
}

func (s testSample) Feature(int) uint32 { return s.f }
func (s testSample) Output() uint16     { return s.o }

func testSamples(n int) (out []datasets.Sample) {
	for i := 0; i < n; i++ {
		out = append(out, testSample{f: uint32(i), o: uint16(i % 4)})
	}
	return
}

func testDataModule(withTest bool) datamodules.DataModule {
	dm := datamodules.DataModule{
		Train:      testSamples(16),
		Validation: testSamples(8),
	}
	if withTest {
		dm.Test = testSamples(4)
	}
	return dm
}

// stubCounters is shared between a stub model and all its clones, so tests
// can observe what the session did to the clones.
type stubCounters struct {
	configures atomic.Int32
	trainings  atomic.Int32
}

// stubModel answers correctly once trained. degrade flips the behavior:
// training breaks a previously correct model, which the fit loop must undo.
type stubModel struct {
	counters   *stubCounters
	configured bool
	good       bool
	degrade    bool
}

func newStubModel() *stubModel {
	return &stubModel{counters: &stubCounters{}}
}

func (m *stubModel) ConfigureModel() error {
	m.counters.configures.Add(1)
	m.configured = true
	return nil
}

func (m *stubModel) Clone() models.ModelModule {
	c := *m
	return &c
}

func (m *stubModel) Units() int {
	if !m.configured {
		return 0
	}
	return 1
}

func (m *stubModel) Forward(s datasets.Sample) uint16 {
	if m.good {
		return s.Output()
	}
	return s.Output() + 1
}

func (m *stubModel) TrainUnit(idx int, train []datasets.Sample, hp learning.HyperParameters) (func(), error) {
	m.counters.trainings.Add(1)
	if m.degrade {
		if !m.good {
			return nil, nil
		}
		m.good = false
		return func() { m.good = true }, nil
	}
	if m.good {
		return nil, nil
	}
	m.good = true
	return func() { m.good = false }, nil
}
