// Package isalnum implements the is-alphanumeric byte classification dataset.
package isalnum

import "github.com/neurlang/evaluator/datasets"

// Sample is one character; the expected output is 1 for alphanumeric runes.
type Sample rune

// Feature extracts the feature from the sample.
func (c Sample) Feature(_ int) uint32 {
	return uint32(c)
}

// Output reports whether the rune is alphanumeric.
func (c Sample) Output() uint16 {
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return 1
	}
	return 0
}

// All is the dataset of all 256 one byte characters.
func All() (ret []datasets.Sample) {
	for i := 0; i < 256; i++ {
		ret = append(ret, Sample(i))
	}
	return
}

// Ascii is the dataset of the printable ASCII characters.
func Ascii() (ret []datasets.Sample) {
	for i := ' '; i < 127; i++ {
		ret = append(ret, Sample(i))
	}
	return
}
