package parallel

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestForEachCoversAllIndices(t *testing.T) {
	const length = 1000
	var seen [length]atomic.Int32
	ForEach(length, 8, func(i int) {
		seen[i].Add(1)
	})
	for i := range seen {
		require.Equal(t, int32(1), seen[i].Load(), "index %d", i)
	}
}

func TestForEachEdgeCases(t *testing.T) {
	var count atomic.Int64
	ForEach(0, 4, func(i int) { count.Add(1) })
	require.Zero(t, count.Load())

	ForEach(3, 0, func(i int) { count.Add(1) })
	require.Equal(t, int64(3), count.Load())

	ForEach(2, 100, func(i int) { count.Add(1) })
	require.Equal(t, int64(5), count.Load())
}

func TestLoopUntilFinds(t *testing.T) {
	found := Loop(4).LoopUntil(0, func(i uint32, ender LoopStopper) bool {
		return i == 1234
	})
	require.True(t, found)
}

func TestLoopUntilDeadline(t *testing.T) {
	start := time.Now()
	found := Loop(2).LoopUntil(20*time.Millisecond, func(i uint32, ender LoopStopper) bool {
		time.Sleep(time.Millisecond)
		return false
	})
	require.False(t, found)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := NewFingerprint()
	b := NewFingerprint()

	a.PutUint16(0, 7)
	a.PutUint16(1, 9)
	b.PutUint16(1, 9)
	b.PutUint16(0, 7)
	require.Equal(t, a.Sum(), b.Sum())
	require.Equal(t, 2, a.Count())

	c := NewFingerprint()
	c.PutUint16(0, 9)
	c.PutUint16(1, 7)
	require.NotEqual(t, a.Sum(), c.Sum())
}

func TestFingerprintConcurrent(t *testing.T) {
	a := NewFingerprint()
	ForEach(500, 16, func(i int) {
		a.PutUint16(i, uint16(i*3))
	})
	b := NewFingerprint()
	for i := 0; i < 500; i++ {
		b.PutUint16(i, uint16(i*3))
	}
	require.Equal(t, a.Sum(), b.Sum())
}
