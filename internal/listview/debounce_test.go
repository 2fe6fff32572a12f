package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock collects scheduled timers so tests can fast-forward by firing
// them explicitly.
type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) start(_ time.Duration, f func()) timer {
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fireLast runs the most recently scheduled timer if it has not been
// cancelled.
func (c *fakeClock) fireLast() {
	if len(c.timers) == 0 {
		return
	}
	last := c.timers[len(c.timers)-1]
	if !last.stopped {
		last.fn()
	}
}

func TestDebouncerReplacesPending(t *testing.T) {
	clock := &fakeClock{}
	d := NewDebouncer(500 * time.Millisecond)
	d.start = clock.start

	var fired []string
	d.Schedule(func() { fired = append(fired, "first") })
	d.Schedule(func() { fired = append(fired, "second") })
	d.Schedule(func() { fired = append(fired, "third") })

	require.Len(t, clock.timers, 3)
	assert.True(t, clock.timers[0].stopped)
	assert.True(t, clock.timers[1].stopped)
	assert.False(t, clock.timers[2].stopped)

	clock.fireLast()
	assert.Equal(t, []string{"third"}, fired)
}

func TestDebouncerCancel(t *testing.T) {
	clock := &fakeClock{}
	d := NewDebouncer(500 * time.Millisecond)
	d.start = clock.start

	fired := false
	d.Schedule(func() { fired = true })
	d.Cancel()

	require.Len(t, clock.timers, 1)
	assert.True(t, clock.timers[0].stopped)

	clock.fireLast()
	assert.False(t, fired)
}

func TestDebouncerRealTimer(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	done := make(chan struct{})
	d.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}
}
