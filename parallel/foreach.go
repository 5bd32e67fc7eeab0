// Package parallel contains the bounded concurrency primitives used by the
// learner and by evaluation passes.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ForEach executes body for every integer in [0, length) using at most limit
// concurrent workers. A limit below one selects GOMAXPROCS workers.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if limit > length {
		limit = length
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(limit)
	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if i >= int64(length) {
					return
				}
				body(int(i))
			}
		}()
	}
	wg.Wait()
}
