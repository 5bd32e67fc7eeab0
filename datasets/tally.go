package datasets

import "sync"

// Tally accumulates per-feature votes while a unit is being retrained.
// It is safe for concurrent use.
type Tally struct {
	mut         sync.Mutex
	votes       map[uint32]int32
	improvement bool
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{votes: make(map[uint32]int32)}
}

// Add casts a vote for the decision on feature. A positive vote pulls the
// decision towards true, a negative one towards false. The improvement flag
// marks votes cast by currently misclassified samples.
func (t *Tally) Add(feature uint32, vote int8, improvement bool) {
	t.mut.Lock()
	t.votes[feature] += int32(vote)
	if improvement {
		t.improvement = true
	}
	t.mut.Unlock()
}

// GetImprovementPossible reports whether any misclassified sample voted.
func (t *Tally) GetImprovementPossible() bool {
	t.mut.Lock()
	defer t.mut.Unlock()
	return t.improvement
}

// Len reports the number of distinct features voted on.
func (t *Tally) Len() int {
	t.mut.Lock()
	defer t.mut.Unlock()
	return len(t.votes)
}

// Dataset resolves the votes into a dataset by majority. Tied features are
// dropped.
func (t *Tally) Dataset() (d Dataset) {
	t.mut.Lock()
	defer t.mut.Unlock()
	d.Init()
	for k, v := range t.votes {
		if v == 0 {
			continue
		}
		d[k] = v > 0
	}
	return
}

// Free drops the tallied votes.
func (t *Tally) Free() {
	t.mut.Lock()
	t.votes = nil
	t.mut.Unlock()
}
