package learning

import (
	"errors"
	"sync"
	"time"

	"github.com/jbarham/primegen"
	"go.uber.org/zap"

	"github.com/neurlang/evaluator/datasets"
	"github.com/neurlang/evaluator/hash"
	"github.com/neurlang/evaluator/hashtron"
	"github.com/neurlang/evaluator/parallel"
)

// ErrDeadline is returned when the solve budget ran out before a program
// separating the two sets was found.
var ErrDeadline = errors.New("learning: solve deadline exceeded")

// ErrOneSided is returned for datasets whose decisions are all equal.
var ErrOneSided = errors.New("learning: one sided dataset")

// golden ratio increment decorrelates consecutive salt candidates
const saltStep = 2654435761

// Training solves a program for the dataset and wraps it in a fresh one bit
// hashtron. The dataset is split and balanced first.
func (h HyperParameters) Training(d datasets.Dataset) (*hashtron.Hashtron, error) {
	sd := datasets.BalanceDataset(datasets.SplitDataset(d))
	program, err := h.Solve(sd)
	if err != nil {
		return nil, err
	}
	return hashtron.New(program, 1, nil)
}

// Solve searches a chain of [salt, modulo] hash commands under which the
// false set and the true set stay disjoint while shrinking, until both
// collapse to single values split by the final modulo two command. The
// returned program classifies every feature of the input sets by its low
// output bit.
func (h HyperParameters) Solve(d datasets.SplittedDataset) (hashtron.Program, error) {
	p := h.normalized()

	set0 := setKeys(d[0])
	set1 := setKeys(d[1])
	if len(set0) == 0 || len(set1) == 0 {
		return nil, ErrOneSided
	}

	var program hashtron.Program
	deadline := time.Duration(p.DeadlineMs) * time.Millisecond
	start := time.Now()
	slice := deadline / 8
	if slice <= 0 {
		slice = time.Millisecond
	}

	mod := p.stageModulo(len(set0) + len(set1))
	for {
		remaining := deadline - time.Since(start)
		if remaining <= 0 {
			return nil, ErrDeadline
		}
		if len(program) >= p.InitialLimit {
			return nil, errors.New("learning: program length limit reached")
		}

		if len(set0) == 1 && len(set1) == 1 {
			salt, ok := p.searchFinal(set0[0], set1[0], minDuration(slice, remaining))
			if !ok {
				continue
			}
			program = append(program, [2]uint32{salt, 2})
			p.logger.Debug("program solved",
				zap.Int("size", len(program)),
				zap.Duration("elapsed", time.Since(start)))
			return program, nil
		}

		salt, img0, img1, ok := p.searchStage(set0, set1, mod, minDuration(slice, remaining))
		if !ok {
			// widen the image space and retry
			mod = nextPrime(uint64(mod) + uint64(mod)/2 + 1)
			continue
		}

		program = append(program, [2]uint32{salt, mod})
		set0, set1 = img0, img1
		p.logger.Debug("stage solved",
			zap.Uint32("modulo", mod),
			zap.Int("size", len(set0)+len(set1)),
			zap.Int("program", len(program)))
		mod = p.stageModulo(len(set0) + len(set1))
	}
}

// stageModulo picks the image space for the next stage. Roughly a fifth of
// the squared set size, which trades a few expected duplicates inside each
// set (the shrink) against the odds of a cross collision ruining the salt.
func (h HyperParameters) stageModulo(total int) uint32 {
	if h.InitialModulo > 2 {
		return h.InitialModulo
	}
	target := uint64(total) * uint64(total) / 5
	if target < 4 {
		target = 4
	}
	if target > 1<<31 {
		target = 1 << 31
	}
	return nextPrime(target)
}

// searchStage looks for a salt under which hashing both sets modulo mod
// keeps them disjoint and strictly smaller.
func (h HyperParameters) searchStage(set0, set1 []uint32, mod uint32, budget time.Duration) (salt uint32, img0, img1 []uint32, ok bool) {
	total := len(set0) + len(set1)
	base := h.saltBase()

	var mut sync.Mutex
	found := parallel.Loop(h.Threads).LoopUntil(budget, func(i uint32, ender parallel.LoopStopper) bool {
		candidate := base + i*saltStep
		o0, o1, good := hashStage(set0, set1, candidate, mod, total)
		if !good {
			return false
		}
		mut.Lock()
		if !ok {
			salt, img0, img1, ok = candidate, o0, o1, true
		}
		mut.Unlock()
		return true
	})
	return salt, img0, img1, found && ok
}

// hashStage hashes both sets with one salt and reports the deduplicated
// images when they are disjoint and strictly smaller than before.
func hashStage(set0, set1 []uint32, salt, mod uint32, total int) (img0, img1 []uint32, ok bool) {
	salts := make([]uint32, total)
	for i := range salts {
		salts[i] = salt
	}
	in := make([]uint32, 0, total)
	in = append(in, set0...)
	in = append(in, set1...)
	out := make([]uint32, total)
	hash.HashVectorized(out, in, salts, mod)

	seen0 := make(map[uint32]struct{}, len(set0))
	for _, v := range out[:len(set0)] {
		seen0[v] = struct{}{}
	}
	seen1 := make(map[uint32]struct{}, len(set1))
	for _, v := range out[len(set0):] {
		if _, cross := seen0[v]; cross {
			return nil, nil, false
		}
		seen1[v] = struct{}{}
	}
	if len(seen0)+len(seen1) >= total {
		return nil, nil, false
	}
	for v := range seen0 {
		img0 = append(img0, v)
	}
	for v := range seen1 {
		img1 = append(img1, v)
	}
	return img0, img1, true
}

// searchFinal looks for the closing salt mapping the two remaining values
// onto opposite parities modulo two.
func (h HyperParameters) searchFinal(v0, v1 uint32, budget time.Duration) (salt uint32, ok bool) {
	base := h.saltBase()

	var mut sync.Mutex
	found := parallel.Loop(h.Threads).LoopUntil(budget, func(i uint32, ender parallel.LoopStopper) bool {
		candidate := base + i*saltStep
		if hash.Hash(v0, candidate, 2) != 0 || hash.Hash(v1, candidate, 2) != 1 {
			return false
		}
		mut.Lock()
		if !ok {
			salt, ok = candidate, true
		}
		mut.Unlock()
		return true
	})
	return salt, found && ok
}

func setKeys(m map[uint32]struct{}) (o []uint32) {
	o = make([]uint32, 0, len(m))
	for k := range m {
		o = append(o, k)
	}
	return
}

func nextPrime(n uint64) uint32 {
	g := primegen.New()
	for {
		p := g.Next()
		if p >= n {
			return uint32(p)
		}
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
