// Package clock abstracts the wall-clock source so rate-limit checks can be
// driven deterministically in tests.
package clock

import "time"

// Clock supplies one monotonic wall-clock reading per instruction.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func New() *Real {
	return &Real{}
}

func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// Mock is a settable clock for tests.
type Mock struct {
	Current time.Time
}

var _ Clock = (*Mock)(nil)

func NewMock(t time.Time) *Mock {
	return &Mock{Current: t}
}

func (c *Mock) Now() time.Time {
	return c.Current
}

// Advance moves the mock clock forward by d.
func (c *Mock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
