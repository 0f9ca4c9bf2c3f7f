package splitkb

import "time"

// Clock is the monotonic time source consulted by Wait states. On target
// hardware it wraps a free-running hardware timer; tests inject a
// VirtualClock so that `T` timeouts can be exercised tick-by-tick without
// real delays.
type Clock interface {
	Now() time.Time
}

// RealClock reports wall-clock time via the runtime's monotonic clock
// reading (time.Now on Go already carries a monotonic component, which is
// all Wait's now-t0 subtraction relies on).
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// VirtualClock is a Clock a test can advance deterministically, standing
// in for the hardware timer. The zero value starts at the zero time;
// tests normally call Set or Advance once per simulated tick.
type VirtualClock struct {
	now time.Time
}

// NewVirtualClock returns a VirtualClock starting at an arbitrary but
// fixed instant (never the zero Time, so comparisons against a zero t0
// in a freshly constructed FSM can't accidentally read as "just
// entered").
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{now: time.Unix(1700000000, 0)}
}

func (c *VirtualClock) Now() time.Time { return c.now }

// Set pins the clock to t.
func (c *VirtualClock) Set(t time.Time) { c.now = t }

// Advance moves the clock forward by d.
func (c *VirtualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
