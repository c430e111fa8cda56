package gesture

import "time"

// Timer is a repeating, cancellable tick source. Ticks are delivered on the
// same logical thread as contact updates and are never re-entered.
type Timer interface {
	Start()
	Stop()
}

// TimerFactory creates a stopped Timer that calls tick every interval with
// the time elapsed since the previous tick (or since Start).
type TimerFactory func(interval time.Duration, tick func(elapsed time.Duration)) Timer

// FrameScheduler hands out timers driven by a host loop. Call Advance once
// per frame with the frame duration; every started timer whose interval has
// elapsed fires at most once per Advance.
//
// There is no background goroutine: ticks run inside Advance.
type FrameScheduler struct {
	timers []*frameTimer
	now    time.Duration
}

// NewFrameScheduler returns an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// NewTimer satisfies TimerFactory.
func (s *FrameScheduler) NewTimer(interval time.Duration, tick func(elapsed time.Duration)) Timer {
	return &frameTimer{sched: s, interval: interval, tick: tick}
}

// Now returns the total time advanced so far.
func (s *FrameScheduler) Now() time.Duration { return s.now }

// Pending returns the number of running timers.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.running {
			n++
		}
	}
	return n
}

// Advance moves the scheduler clock forward by dt and fires due timers.
func (s *FrameScheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	s.now += dt

	// Timers started by a tick join the next Advance.
	n := len(s.timers)
	for i := 0; i < n; i++ {
		t := s.timers[i]
		if !t.running {
			continue
		}
		t.acc += dt
		if t.acc < t.interval {
			continue
		}
		elapsed := t.acc
		t.acc = 0
		t.tick(elapsed)
	}

	// Compact stopped timers.
	live := s.timers[:0]
	for _, t := range s.timers {
		if t.running {
			live = append(live, t)
		} else {
			t.registered = false
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

type frameTimer struct {
	sched      *FrameScheduler
	interval   time.Duration
	tick       func(time.Duration)
	acc        time.Duration
	running    bool
	registered bool
}

func (t *frameTimer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.acc = 0
	if !t.registered {
		t.registered = true
		t.sched.timers = append(t.sched.timers, t)
	}
}

func (t *frameTimer) Stop() {
	t.running = false
}
