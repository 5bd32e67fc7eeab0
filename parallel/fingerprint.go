package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Fingerprint accumulates an order independent digest of per-slot uint16
// values. Evaluation passes write predictions from many goroutines; two
// passes producing the same predictions yield the same Sum regardless of
// write order.
type Fingerprint struct {
	mut sync.Mutex
	acc [32]byte
	n   int
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return new(Fingerprint)
}

// PutUint16 records value at slot n.
func (f *Fingerprint) PutUint16(n int, value uint16) {
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(n))
	binary.LittleEndian.PutUint16(buf[8:10], value)
	d := sha256.Sum256(buf[:])

	f.mut.Lock()
	for i := range f.acc {
		f.acc[i] ^= d[i]
	}
	f.n++
	f.mut.Unlock()
}

// Sum returns the digest over everything recorded so far.
func (f *Fingerprint) Sum() (ret [32]byte) {
	f.mut.Lock()
	ret = f.acc
	f.mut.Unlock()
	return
}

// Count reports the number of recorded values.
func (f *Fingerprint) Count() int {
	f.mut.Lock()
	defer f.mut.Unlock()
	return f.n
}
