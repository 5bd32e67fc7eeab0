package datasets

// Sample is one individual input to a model together with its expected output.
type Sample interface {
	// Feature extracts the n-th input feature.
	Feature(n int) uint32

	// Output is the expected model output.
	Output() uint16
}
