package crosser

import (
	"sync"
	"time"
)

// FrameRequester schedules fn to run once on the host's next redraw signal.
// The returned cancel func drops the pending request.
type FrameRequester interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// Loop drives step and render once per host frame with the measured
// wall-clock delta. There is no fixed timestep and dt is not clamped.
type Loop struct {
	step      func(dt float64)
	render    func()
	requester FrameRequester
	now       func() time.Time

	mu      sync.Mutex // guards running, cancel, last, gen
	running bool
	cancel  func()
	last    time.Time
	gen     uint64

	frameMu sync.Mutex // serializes frames with Do
}

// NewLoop creates a stopped loop. render may be nil.
func NewLoop(step func(dt float64), render func(), requester FrameRequester) *Loop {
	if render == nil {
		render = func() {}
	}
	return &Loop{
		step:      step,
		render:    render,
		requester: requester,
		now:       time.Now,
	}
}

// Start begins the cycle. Calling Start on a running loop is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}
	l.running = true
	l.gen++
	l.last = l.now()
	l.schedule(l.gen)
}

// Stop cancels the pending frame. Calling Stop on a stopped loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Running reports whether the loop is started.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Do runs fn between frames, never concurrently with step or render.
// Hosts deliver input commands through it.
func (l *Loop) Do(fn func()) {
	l.frameMu.Lock()
	defer l.frameMu.Unlock()
	fn()
}

// schedule must be called with mu held.
func (l *Loop) schedule(gen uint64) {
	l.cancel = l.requester.RequestFrame(func(now time.Time) {
		l.frame(gen, now)
	})
}

func (l *Loop) frame(gen uint64, now time.Time) {
	l.mu.Lock()
	if !l.running || gen != l.gen {
		l.mu.Unlock()
		return
	}
	dt := float64(now.Sub(l.last)) / float64(time.Millisecond)
	l.last = now
	l.mu.Unlock()

	l.frameMu.Lock()
	l.step(dt)
	l.render()
	l.frameMu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running && gen == l.gen {
		l.schedule(gen)
	}
}

// TimerRequester schedules frames on a fixed interval. It stands in for a
// redraw signal in headless hosts.
type TimerRequester struct {
	Interval time.Duration
}

// RequestFrame implements FrameRequester.
func (r TimerRequester) RequestFrame(fn func(now time.Time)) func() {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	t := time.AfterFunc(interval, func() {
		fn(time.Now())
	})
	return func() { t.Stop() }
}
