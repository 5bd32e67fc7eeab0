// Package datasets implements the dataset types consumed by the learner
// and the evaluation sessions.
package datasets

import "math/rand"

// Dataset maps an input feature to the expected binary decision.
type Dataset map[uint32]bool

// Init erases the dataset.
func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// SplittedDataset holds the false set and the true set of a Dataset.
type SplittedDataset [2]map[uint32]struct{}

// SplitDataset splits dataset into a false set and a true set.
func SplitDataset(d Dataset) (o SplittedDataset) {
	o[0] = make(map[uint32]struct{})
	o[1] = make(map[uint32]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// BalanceDataset fills the smaller set with random features until it matches
// the bigger set.
func BalanceDataset(d SplittedDataset) SplittedDataset {
	for len(d[0]) < len(d[1]) {
		var w = rand.Uint32()
		if _, ok := d[1][w]; !ok {
			d[0][w] = struct{}{}
		}
	}
	for len(d[1]) < len(d[0]) {
		var w = rand.Uint32()
		if _, ok := d[0][w]; !ok {
			d[1][w] = struct{}{}
		}
	}
	return d
}
