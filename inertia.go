package gesture

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// InertiaConfig controls the simulated deceleration that follows a fast
// release.
//
// The displacement, rotation and expansion targets are fixed magnitudes
// applied in the direction of the release velocity; they are not derived
// from the velocity value or a deceleration model.
type InertiaConfig struct {
	// Duration is the total length of the simulation.
	Duration time.Duration
	// Interval is the tick period requested from the TimerFactory.
	Interval time.Duration
	// Displacement is the translation added per enabled axis, in px.
	Displacement float64
	// Rotation is the rotation added, in degrees.
	Rotation float64
	// Expansion is the expansion added, in px.
	Expansion float64
}

// DefaultInertiaConfig returns a one second, 60 ticks per second simulation.
func DefaultInertiaConfig() InertiaConfig {
	return InertiaConfig{
		Duration:     time.Second,
		Interval:     time.Second / 60,
		Displacement: 300,
		Rotation:     90,
		Expansion:    100,
	}
}

// inertiaAxes selects which components the simulator moves. A disabled
// axis stays at its release value for the whole simulation.
type inertiaAxes struct {
	translateX, translateY, rotate, expansion bool
}

// InertiaSimulator runs the post-release deceleration of one Manipulation.
// Each tick evaluates a quartic ease-out over the configured duration and
// hands the simulated cumulative delta to the manipulation's update path.
type InertiaSimulator struct {
	cfg    InertiaConfig
	axes   inertiaAxes
	notify func()

	release        Delta
	direction      Velocities
	originDistance float64
	startedAt      time.Duration

	tween    *gween.Tween
	timer    Timer
	elapsed  time.Duration
	progress float64

	started  bool
	running  bool
	disposed bool
}

func newInertiaSimulator(timers TimerFactory, cfg InertiaConfig, axes inertiaAxes,
	release Delta, velocities Velocities, originDistance float64, startedAt time.Duration, notify func()) *InertiaSimulator {
	s := &InertiaSimulator{
		cfg:            cfg,
		axes:           axes,
		notify:         notify,
		release:        release,
		direction:      velocities,
		originDistance: originDistance,
		startedAt:      startedAt,
		tween:          gween.New(0, 1, float32(cfg.Duration.Seconds()), ease.OutQuart),
	}
	s.timer = timers(cfg.Interval, s.tick)
	return s
}

// Start begins ticking. It has no effect once started or disposed.
func (s *InertiaSimulator) Start() {
	if s.started || s.disposed {
		return
	}
	s.started = true
	s.running = true
	s.timer.Start()
}

// IsRunning reports whether the simulation is still producing ticks.
func (s *InertiaSimulator) IsRunning() bool { return s.running }

// Progress returns the eased progress in [0, 1].
func (s *InertiaSimulator) Progress() float64 { return s.progress }

// Elapsed returns the simulated time since Start.
func (s *InertiaSimulator) Elapsed() time.Duration { return s.elapsed }

// Timestamp returns the release timestamp plus the simulated time.
func (s *InertiaSimulator) Timestamp() time.Duration { return s.startedAt + s.elapsed }

// Cumulative returns the simulated cumulative delta at the current progress.
func (s *InertiaSimulator) Cumulative() Delta {
	d := s.release
	p := s.progress
	if s.axes.translateX {
		d.Translation.X += sign(s.direction.Linear.X) * s.cfg.Displacement * p
	}
	if s.axes.translateY {
		d.Translation.Y += sign(s.direction.Linear.Y) * s.cfg.Displacement * p
	}
	if s.axes.rotate {
		d.Rotation = normalizeDegrees(d.Rotation + sign(s.direction.Angular)*s.cfg.Rotation*p)
	}
	if s.axes.expansion {
		d.Expansion += sign(s.direction.Expansion) * s.cfg.Expansion * p
		if s.originDistance > 0 {
			d.Scale = math.Max(0, (s.originDistance+d.Expansion)/s.originDistance)
		}
	}
	return d
}

// Dispose stops the timer. Safe to call more than once.
func (s *InertiaSimulator) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.stop()
}

func (s *InertiaSimulator) stop() {
	if !s.running {
		return
	}
	s.running = false
	s.timer.Stop()
}

func (s *InertiaSimulator) tick(elapsed time.Duration) {
	if !s.running {
		return
	}
	s.elapsed += elapsed
	progress, done := s.tween.Set(float32(s.elapsed.Seconds()))
	s.progress = float64(progress)
	if done {
		s.progress = 1
	}
	Logger().V(2).Info("inertia tick", "elapsed", s.elapsed, "progress", s.progress)

	s.notify()
	if done && s.running {
		s.stop()
		s.notify()
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
