package x12

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	controlModulus = 999_999_999
	controlTick    = 100 * time.Microsecond
)

// ControlNumbers hands out 9-digit interchange control numbers. Numbers are
// derived from the clock in 100µs ticks and never repeat within a process
// (the underlying sequence is strictly increasing). A random offset chosen at
// construction keeps separate processes apart. Safe for concurrent use.
type ControlNumbers struct {
	now    func() time.Time
	offset uint64
	last   atomic.Uint64
}

// NewControlNumbers returns a generator reading the given clock; nil means time.Now.
func NewControlNumbers(now func() time.Time) *ControlNumbers {
	if now == nil {
		now = time.Now
	}
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms; keep going with the clock alone.
		binary.BigEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	}
	return &ControlNumbers{
		now:    now,
		offset: binary.BigEndian.Uint64(seed[:]) % controlModulus,
	}
}

// Next returns the next control number in 1..999999999.
func (c *ControlNumbers) Next() uint64 {
	tick := uint64(c.now().UnixNano() / int64(controlTick))
	for {
		last := c.last.Load()
		next := tick
		if next <= last {
			next = last + 1
		}
		if c.last.CompareAndSwap(last, next) {
			return (next+c.offset)%controlModulus + 1
		}
	}
}

// FormatControlNumber zero-pads to the nine digits ISA13 requires.
func FormatControlNumber(n uint64) string {
	return fmt.Sprintf("%09d", n)
}

// FormatSetControlNumber derives the four-digit ST02/SE02 value from an
// interchange control number. It stays in 0001..9999.
func FormatSetControlNumber(n uint64) string {
	if n == 0 {
		return "0001"
	}
	return fmt.Sprintf("%04d", (n-1)%9999+1)
}
