package parallel

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// LoopStopper is an interface to check if the loop should stop.
type LoopStopper interface {
	// Load reports true if the loop should stop.
	Load() bool
}

// Loop represents the number of goroutines to run.
type Loop int

// LoopUntil starts l goroutines that each process a unique integer i counted
// up from 0 until one of them returns true, the counter wraps, or the
// deadline passes. A zero deadline never expires. It reports whether any
// yield returned true.
func (l Loop) LoopUntil(deadline time.Duration, yield func(i uint32, ender LoopStopper) bool) bool {
	if l <= 0 {
		l = 1
	}

	var (
		i     atomic.Uint32
		ender atomic.Bool
		found atomic.Bool
		wg    sync.WaitGroup
	)

	start := time.Now()
	for n := 0; n < int(l); n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ender.Load() {
					return
				}
				if deadline > 0 && time.Since(start) > deadline {
					ender.Store(true)
					return
				}

				newI := i.Add(1)
				if newI == math.MaxUint32 {
					ender.Store(true)
					return
				}

				if yield(newI-1, &ender) {
					found.Store(true)
					ender.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()
	return found.Load()
}
