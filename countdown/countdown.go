// Package countdown contains the domain logic for the Greater Fortitude buff
// countdown: a 60 second timer that is decremented in fixed steps, recolored
// by remaining-time band and reset whenever the configured hotkey fires.
//
// Maintenance notes:
//   - Mutable fields (remainingMillis, running, alertLatched) are accessed by
//     the command loop and the tick goroutine. All mutation happens through
//     the exported methods, which take the internal mutex. Read coherent
//     state via Snapshot() rather than through individual getters when more
//     than one field is needed.
//   - The alert is latched: it fires at most once per countdown cycle and is
//     cleared only by Reset.
package countdown

import "sync"

// App is the interface the countdown needs to notify the application when the
// buff alert threshold is crossed.
type App interface {
	BuffAlert()
}

// Band classifies the remaining time into one of the three display ranges.
type Band int

const (
	BandGreen Band = iota
	BandYellow
	BandRed
)

const (
	// InitialMillis is the full buff duration.
	InitialMillis = 60000

	// TickStepMillis is how much one tick removes from the countdown.
	TickStepMillis = 100

	// AlertThresholdSec is the remaining time at which the buff alert fires.
	AlertThresholdSec = 5.0

	// Band floors. Strictly above GreenFloorSec is green, strictly above
	// YellowFloorSec is yellow, everything else is red.
	GreenFloorSec  = 30.0
	YellowFloorSec = 10.0
)

// BandFor maps a remaining-seconds value to its display band.
func BandFor(seconds float64) Band {
	switch {
	case seconds > GreenFloorSec:
		return BandGreen
	case seconds > YellowFloorSec:
		return BandYellow
	default:
		return BandRed
	}
}

// Countdown is the buff timer state machine.
type Countdown struct {
	mu              sync.RWMutex
	remainingMillis int
	running         bool
	alertLatched    bool
}

// New returns a stopped countdown at the full duration.
func New() *Countdown {
	return &Countdown{remainingMillis: InitialMillis}
}

// Snapshot is an atomic view of the countdown for UI rendering.
type Snapshot struct {
	Running      bool
	Seconds      float64
	Band         Band
	AlertLatched bool
}

// Snapshot returns a consistent view of the countdown state.
func (c *Countdown) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sec := float64(c.remainingMillis) / 1000.0
	return Snapshot{
		Running:      c.running,
		Seconds:      sec,
		Band:         BandFor(sec),
		AlertLatched: c.alertLatched,
	}
}

// Seconds returns the remaining time in seconds.
func (c *Countdown) Seconds() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float64(c.remainingMillis) / 1000.0
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// Start begins (or continues) the countdown from its current value.
func (c *Countdown) Start() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
}

// Stop halts the countdown, keeping the current value.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// Toggle flips between running and stopped and reports the new state.
func (c *Countdown) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = !c.running
	return c.running
}

// Reset puts the countdown back to the full duration and clears the alert
// latch. The running state is left untouched; the hotkey path resets a live
// countdown without stopping it.
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.remainingMillis = InitialMillis
	c.alertLatched = false
	c.mu.Unlock()
}

// Tick removes one step from a running countdown, clamping at zero. When the
// remaining time crosses the alert threshold the app is notified exactly once
// per cycle.
func (c *Countdown) Tick(a App) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}

	if c.remainingMillis > 0 {
		c.remainingMillis -= TickStepMillis
		if c.remainingMillis < 0 {
			c.remainingMillis = 0
		}
	}

	fireAlert := false
	sec := float64(c.remainingMillis) / 1000.0
	if sec <= AlertThresholdSec && !c.alertLatched {
		c.alertLatched = true
		fireAlert = true
	}
	c.mu.Unlock()

	if fireAlert && a != nil {
		a.BuffAlert()
	}
}
