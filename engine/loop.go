package engine

import (
	"sync"
	"time"
)

const (
	// FixedDeltaTime is the simulation timestep in seconds.
	FixedDeltaTime = 1.0 / 60.0
	// maxFrameTime clamps a single host frame so a stall cannot trigger an
	// unbounded catch-up loop (spiral of death).
	maxFrameTime = 0.25
	// hostFrameInterval is the host callback cadence when the loop drives
	// itself; tests call frame() directly instead.
	hostFrameInterval = time.Second / 60
)

// Loop bridges a variable-rate host callback to the constant simulation tick
// with a time accumulator. Each host frame runs zero or more fixed updates
// followed by exactly one render; there is no interpolation between steps.
type Loop struct {
	mu sync.Mutex

	fixedDT float64
	update  func(dt float64)
	render  func()

	accumulator float64
	lastTime    time.Time

	running bool
	paused  bool
	cancel  chan struct{}

	// FPS accounting: host callbacks counted over wall-clock seconds.
	fps         float64
	frameCount  int
	fpsWindowAt time.Time

	now func() time.Time
}

// NewLoop creates a stopped loop with the default fixed timestep.
func NewLoop() *Loop {
	return &Loop{
		fixedDT: FixedDeltaTime,
		now:     time.Now,
	}
}

// FixedDelta returns the simulation timestep in seconds.
func (l *Loop) FixedDelta() float64 {
	return l.fixedDT
}

// FPS returns the host callback rate measured over the last wall-clock second.
func (l *Loop) FPS() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fps
}

// Running reports whether host callbacks are scheduled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running && !l.paused
}

// Paused reports whether the loop is paused.
func (l *Loop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// Start begins scheduling host callbacks. No-op if already running.
func (l *Loop) Start(update func(dt float64), render func()) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.update = update
	l.render = render
	l.running = true
	l.paused = false
	l.accumulator = 0
	l.lastTime = l.now()
	l.fpsWindowAt = l.lastTime
	l.frameCount = 0
	cancel := make(chan struct{})
	l.cancel = cancel
	l.mu.Unlock()

	go l.hostLoop(cancel)
}

// Stop cancels the pending host callback and clears both the running and
// paused flags. Safe to call repeatedly.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		close(l.cancel)
		l.cancel = nil
	}
	l.running = false
	l.paused = false
}

// Pause cancels the pending host callback but marks the loop paused so it
// can be resumed. Safe to call repeatedly.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	if l.cancel != nil {
		close(l.cancel)
		l.cancel = nil
	}
	l.paused = true
}

// Resume restarts callbacks after Pause. The accumulator is reset and frame
// timing restarts from now, so paused wall time is not replayed.
// No-op unless paused.
func (l *Loop) Resume() {
	l.mu.Lock()
	if !l.running || !l.paused {
		l.mu.Unlock()
		return
	}
	l.paused = false
	l.accumulator = 0
	l.lastTime = l.now()
	cancel := make(chan struct{})
	l.cancel = cancel
	l.mu.Unlock()

	go l.hostLoop(cancel)
}

func (l *Loop) hostLoop(cancel chan struct{}) {
	ticker := time.NewTicker(hostFrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			l.frame(l.now())
		}
	}
}

// frame is one host callback: accumulate clamped frame time, run fixed
// updates while a full step fits, then render once.
func (l *Loop) frame(now time.Time) {
	l.mu.Lock()
	if !l.running || l.paused {
		l.mu.Unlock()
		return
	}

	frameTime := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	}
	l.accumulator += frameTime

	steps := 0
	for l.accumulator >= l.fixedDT {
		l.accumulator -= l.fixedDT
		steps++
	}

	l.frameCount++
	if elapsed := now.Sub(l.fpsWindowAt).Seconds(); elapsed >= 1.0 {
		l.fps = float64(l.frameCount) / elapsed
		l.frameCount = 0
		l.fpsWindowAt = now
	}

	update := l.update
	render := l.render
	dt := l.fixedDT
	l.mu.Unlock()

	for i := 0; i < steps; i++ {
		update(dt)
	}
	render()
}
