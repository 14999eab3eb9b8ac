// Package schedule implements the trailing debounce that decides when the
// document is realigned after direct edits.
//
// The scheduler owns no timer. A host arms its own single-shot timer for
// Delay with the Ticket returned by NotifyEdit and hands the ticket back to
// Fire when the timer goes off. Only the most recent ticket fires, so bursts
// of edits collapse into one recompute per quiet period.
package schedule

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultDelay is the quiet period used when none is configured.
const DefaultDelay = 500 * time.Millisecond

// Ticket identifies one armed timer. The zero Ticket is never pending.
type Ticket uint64

// Scheduler is a single pending-recompute slot. It is not safe for
// concurrent use; the host event loop drives it.
type Scheduler struct {
	delay   time.Duration
	fn      func()
	seq     Ticket
	pending bool
	fired   int
	logger  zerolog.Logger
}

// New returns a scheduler that runs fn once per quiet period of delay.
// A non-positive delay means DefaultDelay.
func New(delay time.Duration, fn func(), logger zerolog.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		delay:  delay,
		fn:     fn,
		logger: logger.With().Str("component", "Scheduler").Logger(),
	}
}

// Delay returns the quiet period.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// NotifyEdit supersedes any pending recompute and returns the ticket the host
// must deliver to Fire after Delay.
func (s *Scheduler) NotifyEdit() Ticket {
	s.seq++
	s.pending = true
	return s.seq
}

// Fire runs the recompute if t is the pending ticket. It reports whether it
// ran. Superseded, cancelled and already fired tickets are ignored.
func (s *Scheduler) Fire(t Ticket) bool {
	if !s.pending || t != s.seq {
		s.logger.Debug().Uint64("ticket", uint64(t)).Msg("dropped superseded ticket")
		return false
	}
	s.run()
	return true
}

// Flush runs a pending recompute now. It reports whether one was pending.
func (s *Scheduler) Flush() bool {
	if !s.pending {
		return false
	}
	s.run()
	return true
}

// Cancel drops the pending recompute without running it.
func (s *Scheduler) Cancel() {
	s.pending = false
}

// Pending reports whether a recompute is waiting for its timer.
func (s *Scheduler) Pending() bool { return s.pending }

// Fired returns how many recomputes have run.
func (s *Scheduler) Fired() int { return s.fired }

func (s *Scheduler) run() {
	s.pending = false
	s.fired++
	if s.fn != nil {
		s.fn()
	}
	s.logger.Debug().Uint64("ticket", uint64(s.seq)).Msg("recompute fired")
}
