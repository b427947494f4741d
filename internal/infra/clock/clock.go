// Package clock provides the single source of "now" for the service.
// Every timestamp the service writes and every expiry it checks goes
// through a Clock, so the whole process shares one timezone discipline.
package clock

import (
	"fmt"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System reads the wall clock and presents it in a fixed UTC offset.
type System struct {
	loc *time.Location
}

func New(offset time.Duration) *System {
	return &System{loc: Zone(offset)}
}

func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s *System) Location() *time.Location {
	return s.loc
}

// Zone returns a fixed location for offset, named like "UTC-03:00".
func Zone(offset time.Duration) *time.Location {
	sign := "+"
	d := offset
	if d < 0 {
		sign = "-"
		d = -d
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, int(d.Hours()), int(d.Minutes())%60)
	return time.FixedZone(name, int(offset.Seconds()))
}

// Fake is a manually driven Clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
