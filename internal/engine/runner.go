package engine

import (
	"context"
	"sync"
	"time"
)

// Speeds are the allowed tick speed multipliers.
var Speeds = []int{1, 2, 3, 50}

// DefaultTickInterval is the real-time length of one game second.
const DefaultTickInterval = time.Second

// SaveFunc persists a committed state snapshot. Errors are the caller's to
// log; the runner keeps ticking either way.
type SaveFunc func(*GameState) error

// Runner drives the engine with a real-time ticker. It owns the current
// state; all access goes through its methods. Ticks never overlap: a tick
// commits its state transition before the next one may start.
type Runner struct {
	engine   *Engine
	interval time.Duration
	save     SaveFunc

	mu       sync.RWMutex
	state    *GameState
	speed    int
	paused   bool
	reset    chan struct{}
	saveErr  func(error)
	lastSave time.Time
}

// saveDebounce is the minimum spacing between periodic saves. Shutdown
// always saves regardless.
const saveDebounce = 5 * time.Second

// NewRunner wraps an engine and an initial state. saveFn may be nil; onSaveErr
// receives persistence failures and may be nil.
func NewRunner(eng *Engine, state *GameState, interval time.Duration, saveFn SaveFunc, onSaveErr func(error)) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if onSaveErr == nil {
		onSaveErr = func(error) {}
	}
	return &Runner{
		engine:   eng,
		interval: interval,
		save:     saveFn,
		state:    state,
		speed:    1,
		reset:    make(chan struct{}, 1),
		saveErr:  onSaveErr,
	}
}

// State returns the current committed snapshot. Snapshots are replace-only,
// so callers may read the returned value freely.
func (r *Runner) State() *GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Apply runs one action transition against the current state and commits
// the result. fn receives the committed snapshot and must not mutate it.
func (r *Runner) Apply(fn func(*GameState) *GameState) *GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = fn(r.state)
	return r.state
}

// SetSpeed changes the tick rate multiplier. Unknown values are ignored.
func (r *Runner) SetSpeed(speed int) {
	valid := false
	for _, s := range Speeds {
		if s == speed {
			valid = true
			break
		}
	}
	if !valid {
		return
	}
	r.mu.Lock()
	r.speed = speed
	r.mu.Unlock()
	r.kick()
}

// Speed returns the current multiplier.
func (r *Runner) Speed() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.speed
}

// Pause stops ticking without stopping the loop. Ticks skipped while
// paused are never replayed.
func (r *Runner) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume restarts ticking at the configured interval.
func (r *Runner) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
	r.kick()
}

// Paused reports whether ticking is suspended.
func (r *Runner) Paused() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paused
}

// kick wakes the loop so an interval change applies immediately.
func (r *Runner) kick() {
	select {
	case r.reset <- struct{}{}:
	default:
	}
}

func (r *Runner) tickDelay() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.interval / time.Duration(r.speed)
}

// Run ticks until the context is cancelled, then saves one final snapshot.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tickDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.persist(true)
			return
		case <-r.reset:
			ticker.Reset(r.tickDelay())
		case <-ticker.C:
			r.mu.RLock()
			paused := r.paused
			r.mu.RUnlock()
			if paused {
				continue
			}

			r.mu.Lock()
			r.state = r.engine.Tick(r.state)
			r.mu.Unlock()

			r.persist(false)
		}
	}
}

func (r *Runner) persist(force bool) {
	if r.save == nil {
		return
	}
	if !force && time.Since(r.lastSave) < saveDebounce {
		return
	}
	r.lastSave = time.Now()
	if err := r.save(r.State()); err != nil {
		r.saveErr(err)
	}
}
