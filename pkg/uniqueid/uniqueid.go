// Package uniqueid hands out process-unique integers used to build temporary names.
package uniqueid

import (
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
)

// Source is a monotonic counter seeded once from the clock.
type Source struct {
	counter atomic.Int64
}

var (
	defaultOnce   sync.Once
	defaultSource *Source
)

// New creates a Source seeded from the sub-second part of clk's current time.
func New(clk clock.Clock) *Source {
	if clk == nil {
		clk = clock.New()
	}

	s := &Source{}
	s.counter.Store(int64(clk.Now().Nanosecond()))

	return s
}

// Default returns the process-wide Source, creating it on first use.
func Default() *Source {
	defaultOnce.Do(func() {
		defaultSource = New(clock.New())
	})

	return defaultSource
}

// Next returns a value no other caller of this Source has observed or will observe.
func (s *Source) Next() int64 {
	return s.counter.Add(1)
}

// Next draws from the process-wide Source.
func Next() int64 {
	return Default().Next()
}
