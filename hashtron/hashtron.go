// Package hashtron implements a hashtron, the unit classifier evaluated by
// chained modular hashing.
package hashtron

import (
	"errors"
	"math/rand"

	"github.com/neurlang/evaluator/hash"
)

// Program is the sequence of hashing commands, each a [salt, modulo] pair.
type Program [][2]uint32

// Hashtron is a single trained classifier unit. The program hashes the input
// feature down to a one bit decision per output bit. The filter holds the
// quaternary-compressed solution set the program was solved from; it is
// carried for size accounting and serialization only.
type Hashtron struct {
	program Program
	bits    byte
	filter  []byte
}

// New creates a hashtron from a program, an output bit width and an optional
// solution filter. A nil program yields an untrained hashtron with a random
// single command.
func New(program Program, bits byte, filter []byte) (*Hashtron, error) {
	h := new(Hashtron)
	if bits == 0 {
		bits = 1
	}
	if bits > 16 {
		return nil, errors.New("hashtron: bits exceed the 16 bit output")
	}
	if program == nil {
		h.program = Program{{rand.Uint32() >> 1, 2}}
	} else {
		h.program = program
	}
	h.bits = bits
	h.filter = filter
	return h, nil
}

// Get gets the hashing command at position n.
func (h Hashtron) Get(n int) (s uint32, max uint32) {
	return h.program[n][0], h.program[n][1]
}

// Len gets the number of hashing commands (size of hashtron program).
func (h Hashtron) Len() int {
	return len(h.program)
}

// LenQ gets the size of learned data (size of quaternary filter).
func (h Hashtron) LenQ() int {
	return len(h.filter)
}

// Bits determines the number of output bits returned by Forward.
func (h Hashtron) Bits() byte {
	return h.bits
}

// SetBits sets the number of output bits returned by Forward.
func (h *Hashtron) SetBits(bits byte) {
	if bits == 0 {
		bits = 1
	}
	h.bits = bits
}

// Clone returns a deep copy sharing no memory with h.
func (h Hashtron) Clone() Hashtron {
	var o Hashtron
	o.program = make(Program, len(h.program))
	copy(o.program, h.program)
	o.bits = h.bits
	if h.filter != nil {
		o.filter = make([]byte, len(h.filter))
		copy(o.filter, h.filter)
	}
	return o
}

// Forward evaluates the program on one input feature and returns up to Bits
// output bits. Bit j is computed on the feature offset by j in the high half
// word, so one program serves all output bits.
func (h Hashtron) Forward(feature uint32) (out uint16) {
	if h.Len() == 0 {
		return
	}
	for j := byte(0); j < h.bits; j++ {
		var input = feature | uint32(j)<<16
		for i := 0; i < h.Len(); i++ {
			s, max := h.Get(i)
			input = hash.Hash(input, s, max)
		}
		if input&1 != 0 {
			out |= 1 << j
		}
	}
	return
}
