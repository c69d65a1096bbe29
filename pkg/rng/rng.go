// Package rng provides the random source shared by every table.
package rng

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// New returns a time-seeded source.
func New() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeeded returns a deterministic source. A zero seed means time-seeded.
func NewSeeded(seed int64) Source {
	if seed == 0 {
		return New()
	}
	return rand.New(rand.NewSource(seed))
}

// Sequence returns a factory of independent sources. Each call gets its own
// *rand.Rand, so sources can be used from different goroutines. With a
// non-zero seed the n-th source is seeded with seed+n, which keeps a whole
// run reproducible; a zero seed gives time-seeded sources.
func Sequence(seed int64) func() Source {
	var n atomic.Int64
	return func() Source {
		if seed == 0 {
			return New()
		}
		return NewSeeded(seed + n.Add(1))
	}
}

// Shuffle permutes s in place with Fisher-Yates.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly chosen element of s. s must not be empty.
func Pick[T any](src Source, s []T) T {
	return s[src.Intn(len(s))]
}

// Fixed replays a scripted sequence of draws, cycling when exhausted.
// Each value is reduced modulo the requested bound.
type Fixed struct {
	values []int
	next   int
}

// NewFixed returns a Source that yields values in order.
func NewFixed(values ...int) *Fixed {
	return &Fixed{values: values}
}

// Intn implements Source.
func (f *Fixed) Intn(n int) int {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
