package schedule

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounting(t *testing.T) (*Scheduler, *int) {
	t.Helper()
	calls := 0
	return New(0, func() { calls++ }, zerolog.Nop()), &calls
}

func TestDefaultDelay(t *testing.T) {
	s, _ := newCounting(t)
	assert.Equal(t, DefaultDelay, s.Delay())
	assert.Equal(t, 20*time.Millisecond, New(20*time.Millisecond, nil, zerolog.Nop()).Delay())
}

func TestBurstCollapsesToOneRecompute(t *testing.T) {
	s, calls := newCounting(t)

	var tickets []Ticket
	for i := 0; i < 10; i++ {
		tickets = append(tickets, s.NotifyEdit())
	}
	require.True(t, s.Pending())

	// Timers fire in arming order; only the last one counts.
	for _, tk := range tickets[:len(tickets)-1] {
		assert.False(t, s.Fire(tk))
	}
	assert.Equal(t, 0, *calls)

	assert.True(t, s.Fire(tickets[len(tickets)-1]))
	assert.Equal(t, 1, *calls)
	assert.False(t, s.Pending())
}

func TestTicketFiresOnce(t *testing.T) {
	s, calls := newCounting(t)
	tk := s.NotifyEdit()
	assert.True(t, s.Fire(tk))
	assert.False(t, s.Fire(tk))
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 1, s.Fired())
}

func TestSeparateQuietPeriods(t *testing.T) {
	s, calls := newCounting(t)
	assert.True(t, s.Fire(s.NotifyEdit()))
	assert.True(t, s.Fire(s.NotifyEdit()))
	assert.Equal(t, 2, *calls)
}

func TestZeroTicketNeverFires(t *testing.T) {
	s, calls := newCounting(t)
	assert.False(t, s.Fire(0))
	assert.Equal(t, 0, *calls)
}

func TestCancel(t *testing.T) {
	s, calls := newCounting(t)
	tk := s.NotifyEdit()
	s.Cancel()
	assert.False(t, s.Pending())
	assert.False(t, s.Fire(tk))
	assert.False(t, s.Flush())
	assert.Equal(t, 0, *calls)
}

func TestFlush(t *testing.T) {
	s, calls := newCounting(t)
	tk := s.NotifyEdit()
	assert.True(t, s.Flush())
	assert.Equal(t, 1, *calls)
	assert.False(t, s.Fire(tk), "timer after a flush is a no-op")
	assert.Equal(t, 1, *calls)
}

func TestNilCallback(t *testing.T) {
	s := New(time.Millisecond, nil, zerolog.Nop())
	assert.True(t, s.Fire(s.NotifyEdit()))
	assert.Equal(t, 1, s.Fired())
}
