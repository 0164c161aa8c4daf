// Package testutils provides test helpers shared across packages
package testutils

import (
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/jzx17/gopoller/pkg/types"
)

// NewMockClock creates a mock clock for testing
func NewMockClock(t testing.TB) *quartz.Mock {
	return quartz.NewMock(t)
}

// ClockWrapper adapts quartz.Mock to the types.Clock interface
type ClockWrapper struct {
	*quartz.Mock
}

// NewClockWrapper creates a new ClockWrapper
func NewClockWrapper(mock *quartz.Mock) *ClockWrapper {
	return &ClockWrapper{Mock: mock}
}

// Now returns the mocked current time
func (c *ClockWrapper) Now() time.Time {
	return c.Mock.Now()
}

// Since returns the mocked time elapsed since t
func (c *ClockWrapper) Since(t time.Time) time.Duration {
	return c.Mock.Since(t)
}

// After returns a channel that delivers the mocked time after the duration
func (c *ClockWrapper) After(d time.Duration) <-chan time.Time {
	timer := c.Mock.NewTimer(d)
	return timer.C
}

// NewTimer creates a mocked Timer
func (c *ClockWrapper) NewTimer(d time.Duration) types.Timer {
	return &timerWrapper{timer: c.Mock.NewTimer(d)}
}

// timerWrapper adapts a quartz timer
type timerWrapper struct {
	timer *quartz.Timer
}

func (t *timerWrapper) C() <-chan time.Time {
	return t.timer.C
}

func (t *timerWrapper) Stop() bool {
	return t.timer.Stop()
}

func (t *timerWrapper) Reset(d time.Duration) bool {
	return t.timer.Reset(d)
}
