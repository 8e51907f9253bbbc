package stopwatch

import (
	"strconv"
	"sync"
	"time"
)

// HashGenerator issues time-derived identifiers (base36 of Unix
// milliseconds). Values are strictly increasing within one generator,
// so two calls in the same millisecond still differ.
type HashGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *HashGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return strconv.FormatInt(ms, 36)
}
