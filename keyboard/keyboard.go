// Package keyboard wraps OS level input: the virtual CTRL hold used to
// sustain auto-attack, and the global hotkey listener that detects the
// Greater Fortitude cast key while the game window has focus.
//
// Maintenance notes:
//   - Holder is the only writer of simulated key state. Its Release is
//     idempotent and Close always routes through Release, so every shutdown
//     path leaves the key up. Do not call the simulator directly.
//   - The listener consumes the raw global event stream instead of
//     registering fixed key callbacks so the selected hotkey can change at
//     runtime without re-hooking.
package keyboard

import (
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// HeldKey is the key the lock toggle holds down.
const HeldKey = "ctrl"

// Simulator abstracts key-state injection so the hold logic is testable
// without touching the OS.
type Simulator interface {
	// Toggle moves key into the given direction, "down" or "up".
	Toggle(key, direction string) error
}

type robotgoSimulator struct{}

func (robotgoSimulator) Toggle(key, direction string) error {
	return robotgo.KeyToggle(key, direction)
}

// Holder maintains the virtual hold state of a single key.
type Holder struct {
	mu   sync.Mutex
	sim  Simulator
	key  string
	held bool
}

// NewHolder creates a Holder for the CTRL key. A nil simulator selects the
// robotgo-backed one.
func NewHolder(sim Simulator) *Holder {
	if sim == nil {
		sim = robotgoSimulator{}
	}
	return &Holder{sim: sim, key: HeldKey}
}

// Hold presses and holds the key. Calling Hold while already held is a no-op.
func (h *Holder) Hold() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.held {
		return nil
	}
	if err := h.sim.Toggle(h.key, "down"); err != nil {
		return fmt.Errorf("hold %s: %w", h.key, err)
	}
	h.held = true
	return nil
}

// Release lets go of the key. Releasing an already released key is a no-op,
// so Release is safe to call from every shutdown path.
func (h *Holder) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.held {
		return nil
	}
	if err := h.sim.Toggle(h.key, "up"); err != nil {
		return fmt.Errorf("release %s: %w", h.key, err)
	}
	h.held = false
	return nil
}

// Held reports whether the key is currently held.
func (h *Holder) Held() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held
}

// Close releases the key if held. It exists so shutdown code reads as a
// resource cleanup.
func (h *Holder) Close() error {
	return h.Release()
}

// Valid hotkeys and their Windows virtual-key codes. The game binds Greater
// Fortitude to the 4 or 5 skill slot.
var hotkeyRawcodes = map[rune]uint16{
	'4': 0x34,
	'5': 0x35,
}

// DefaultHotkey is the hotkey selected when no preference is stored.
const DefaultHotkey = '5'

// ValidHotkey reports whether r is a selectable hotkey.
func ValidHotkey(r rune) bool {
	_, ok := hotkeyRawcodes[r]
	return ok
}

// Listener watches the global keyboard stream for the selected hotkey and
// invokes the callback on every match. The callback runs on the listener
// goroutine; keep it short and hand real work to the command loop.
type Listener struct {
	mu       sync.Mutex
	hotkey   rune
	running  bool
	stopped  chan struct{}
	onHotkey func(rune)
}

// NewListener creates a listener with the default hotkey.
func NewListener(onHotkey func(rune)) *Listener {
	return &Listener{hotkey: DefaultHotkey, onHotkey: onHotkey}
}

// SetHotkey changes which key resets the countdown.
func (l *Listener) SetHotkey(r rune) error {
	if !ValidHotkey(r) {
		return fmt.Errorf("unsupported hotkey %q", r)
	}
	l.mu.Lock()
	l.hotkey = r
	l.mu.Unlock()
	return nil
}

// Hotkey returns the currently selected hotkey.
func (l *Listener) Hotkey() rune {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hotkey
}

// Start installs the global hook and begins dispatching hotkey matches.
// Starting an already running listener is a no-op.
func (l *Listener) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.stopped = make(chan struct{})
	l.mu.Unlock()

	events := hook.Start()
	go l.consume(events)
}

func (l *Listener) consume(events chan hook.Event) {
	defer close(l.stopped)
	for ev := range events {
		if matchesHotkey(ev, l.Hotkey()) && l.onHotkey != nil {
			l.onHotkey(l.Hotkey())
		}
	}
}

// Stop removes the global hook and waits for the dispatch goroutine to
// drain. Safe to call when the listener never started.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	stopped := l.stopped
	l.mu.Unlock()

	hook.End()
	<-stopped
}

// matchesHotkey reports whether a hook event is a press of the selected
// hotkey. Both the typed character and the raw virtual-key code are checked:
// with CTRL held the game swallows the character, leaving only the raw code.
func matchesHotkey(ev hook.Event, hotkey rune) bool {
	if ev.Kind != hook.KeyDown {
		return false
	}
	if ev.Keychar == hotkey {
		return true
	}
	raw, ok := hotkeyRawcodes[hotkey]
	return ok && ev.Rawcode == raw
}
