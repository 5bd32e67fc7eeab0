// Package learning implements the salt and modulo search which solves a
// hashtron program for a dataset.
package learning

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// HyperParameters control the program search.
type HyperParameters struct {
	// Threads is the number of goroutines searching salts.
	Threads int `yaml:"threads"`

	// DeadlineMs is the total solve budget in milliseconds.
	DeadlineMs int `yaml:"deadline_ms"`

	// InitialModulo overrides the derived first stage modulo.
	InitialModulo uint32 `yaml:"initial_modulo"`

	// InitialLimit bounds the solved program length.
	InitialLimit int `yaml:"initial_limit"`

	// Seed seeds the salt search from the clock instead of a fixed value.
	Seed bool `yaml:"seed"`

	logger *zap.Logger
}

// SetLogger attaches a logger for solve progress.
func (h *HyperParameters) SetLogger(l *zap.Logger) {
	h.logger = l
}

const defaultDeadlineMs = 10000
const defaultInitialLimit = 256

func (h HyperParameters) normalized() HyperParameters {
	if h.Threads <= 0 {
		h.Threads = 4
	}
	if h.DeadlineMs <= 0 {
		h.DeadlineMs = defaultDeadlineMs
	}
	if h.InitialLimit <= 0 {
		h.InitialLimit = defaultInitialLimit
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

func (h HyperParameters) saltBase() uint32 {
	if h.Seed {
		return rand.New(rand.NewSource(time.Now().UnixNano())).Uint32()
	}
	return 0x5bd1e995
}
