package entrynumber

import (
	"fmt"
	"time"
)

// DefaultPrefix is used when the configuration does not override it.
const DefaultPrefix = "JE"

// Allocator produces display-friendly journal entry numbers at preparation
// time, so the number can be shown to the user while the entry is still
// being edited.
//
// Allocation is advisory: the suffix is the last six digits of the current
// millisecond timestamp, so two concurrent sessions can collide. True
// uniqueness is enforced by the persistence layer's unique constraint, and a
// collision surfaces as a retriable duplicate-number commit failure.
type Allocator struct {
	prefix string
	now    func() time.Time
}

// New creates an allocator with the given prefix. An empty prefix falls back
// to DefaultPrefix.
func New(prefix string) *Allocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Allocator{prefix: prefix, now: time.Now}
}

// NewWithClock creates an allocator with an injected clock, for tests.
func NewWithClock(prefix string, now func() time.Time) *Allocator {
	a := New(prefix)
	a.now = now
	return a
}

// Allocate returns a new entry number of the form <prefix>-<year>-<6 digits>.
func (a *Allocator) Allocate() string {
	now := a.now().UTC()
	suffix := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("%s-%d-%06d", a.prefix, now.Year(), suffix)
}
