// Package squareroot implements the integer square root toy dataset.
package squareroot

import (
	"math"

	"github.com/neurlang/evaluator/datasets"
)

// Sample is one input number; the expected output is its integer square root.
type Sample uint32

// Feature extracts the feature from the sample.
func (s Sample) Feature(n int) uint32 {
	return uint32(s)
}

// Output is the integer square root of the sample.
func (s Sample) Output() uint16 {
	return uint16(math.Sqrt(float64(s)))
}

const SmallBits = 4
const MediumBits = 5
const BigBits = 6

// Small is the dataset of the first 1<<8 numbers.
func Small() (ret []datasets.Sample) {
	for i := uint32(0); i < 1<<8; i++ {
		ret = append(ret, Sample(i))
	}
	return
}

// Medium is the dataset of the first 1<<10 numbers.
func Medium() (ret []datasets.Sample) {
	for i := uint32(0); i < 1<<10; i++ {
		ret = append(ret, Sample(i))
	}
	return
}

// Big is the dataset of the first 1<<12 numbers.
func Big() (ret []datasets.Sample) {
	for i := uint32(0); i < 1<<12; i++ {
		ret = append(ret, Sample(i))
	}
	return
}
