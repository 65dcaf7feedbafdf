package store

import (
	"fmt"
	"sync"
	"time"
)

// idGenerator issues record identifiers: a fixed-width decimal string of
// Unix milliseconds followed by a per-millisecond counter. Ids stay
// string-typed for downstream consumers, never collide within a process,
// and sort lexically in creation order.
type idGenerator struct {
	mu     sync.Mutex
	millis int64
	seq    int
}

var ids idGenerator

func (g *idGenerator) next(now time.Time) string {
	ms := now.UnixMilli()
	g.mu.Lock()
	defer g.mu.Unlock()
	if ms <= g.millis {
		// Same tick, or the clock stepped back: keep the last observed
		// millisecond and bump the counter so ordering holds.
		ms = g.millis
		g.seq++
	} else {
		g.millis = ms
		g.seq = 0
	}
	return fmt.Sprintf("%013d%04d", ms, g.seq)
}

// newID returns the next record identifier for the given instant.
func newID(now time.Time) string {
	return ids.next(now)
}
