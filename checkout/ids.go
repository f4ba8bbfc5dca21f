package checkout

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator derives order ids from the submission time in milliseconds.
// Ids are strictly increasing even when two orders land in the same
// millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *IDGenerator) Next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := t.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
