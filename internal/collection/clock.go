package collection

import (
	"strconv"
	"sync"
	"time"
)

// Clock is the time source used to stamp new records.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator produces record identifiers.
type IDGenerator interface {
	NewID(now time.Time) string
}

// TimestampIDs issues the Unix millisecond time as a decimal string, moving
// past the last issued value when two records land in the same millisecond.
type TimestampIDs struct {
	mu   sync.Mutex
	last int64
}

func (g *TimestampIDs) NewID(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
