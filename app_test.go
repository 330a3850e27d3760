package main

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/maorga/DarkCtrlKeeper/analytics"
	"github.com/maorga/DarkCtrlKeeper/config"
	"github.com/maorga/DarkCtrlKeeper/control"
)

// fakeSim records key toggles without touching the OS.
type fakeSim struct {
	mu      sync.Mutex
	toggles []string
}

func (f *fakeSim) Toggle(key, direction string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles = append(f.toggles, key+":"+direction)
	return nil
}

func (f *fakeSim) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.toggles) == 0 {
		return ""
	}
	return f.toggles[len(f.toggles)-1]
}

func newTestApp(t *testing.T) (*AppManager, *fakeSim) {
	t.Helper()
	sim := &fakeSim{}
	cfg := &config.Config{AppVersion: config.DefaultAppVersion}
	prefs := config.DefaultPreferences()
	prefsPath := filepath.Join(t.TempDir(), config.PrefsFilename)
	a := NewAppManager(cfg, prefs, prefsPath, sim)
	t.Cleanup(a.Shutdown)
	return a, sim
}

// send posts a command and waits for the loop to process it.
func send(t *testing.T, a *AppManager, cmd control.Command) error {
	t.Helper()
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case err := <-reply:
		return err
	case <-time.After(time.Second):
		t.Fatalf("command %v was never processed", cmd.Type)
		return nil
	}
}

func TestLockAndReleaseCommands(t *testing.T) {
	a, sim := newTestApp(t)

	if err := send(t, a, control.Command{Type: control.CmdLock}); err != nil {
		t.Fatalf("lock command: %v", err)
	}
	if !a.KeyHeld() {
		t.Error("KeyHeld() = false after lock")
	}
	if got := sim.last(); got != "ctrl:down" {
		t.Errorf("last toggle = %q, want ctrl:down", got)
	}

	if err := send(t, a, control.Command{Type: control.CmdRelease}); err != nil {
		t.Fatalf("release command: %v", err)
	}
	if a.KeyHeld() {
		t.Error("KeyHeld() = true after release")
	}
	if got := sim.last(); got != "ctrl:up" {
		t.Errorf("last toggle = %q, want ctrl:up", got)
	}
}

func TestShutdownReleasesHeldKey(t *testing.T) {
	a, sim := newTestApp(t)

	if err := send(t, a, control.Command{Type: control.CmdLock}); err != nil {
		t.Fatalf("lock command: %v", err)
	}

	a.Shutdown()

	if a.KeyHeld() {
		t.Error("KeyHeld() = true after Shutdown")
	}
	if got := sim.last(); got != "ctrl:up" {
		t.Errorf("last toggle after Shutdown = %q, want ctrl:up", got)
	}

	// A second Shutdown must be a no-op, not a second release.
	before := len(sim.toggles)
	a.Shutdown()
	if len(sim.toggles) != before {
		t.Error("repeated Shutdown injected extra key events")
	}
}

func TestShutdownWithoutLockInjectsNothing(t *testing.T) {
	a, sim := newTestApp(t)
	a.Shutdown()
	if len(sim.toggles) != 0 {
		t.Errorf("Shutdown injected key events with nothing held: %v", sim.toggles)
	}
}

func TestTimerToggleCommand(t *testing.T) {
	a, _ := newTestApp(t)

	send(t, a, control.Command{Type: control.CmdTimerToggle})
	if !a.CountdownSnapshot().Running {
		t.Error("countdown not running after toggle")
	}

	send(t, a, control.Command{Type: control.CmdTimerToggle})
	if a.CountdownSnapshot().Running {
		t.Error("countdown still running after second toggle")
	}
}

func TestResetButtonRestartsStoppedCountdown(t *testing.T) {
	a, _ := newTestApp(t)

	send(t, a, control.Command{Type: control.CmdTimerReset})

	s := a.CountdownSnapshot()
	if !s.Running {
		t.Error("RESET did not start a stopped countdown")
	}
	if s.Seconds != 60.0 {
		t.Errorf("Seconds after RESET = %v, want 60.0", s.Seconds)
	}
}

func TestHotkeyResetKeepsRunningState(t *testing.T) {
	a, _ := newTestApp(t)

	send(t, a, control.Command{Type: control.CmdTimerToggle})
	for i := 0; i < 200; i++ { // burn 20 seconds
		a.countdown.Tick(nil)
	}

	send(t, a, control.Command{Type: control.CmdHotkeyReset})

	s := a.CountdownSnapshot()
	if s.Seconds != 60.0 {
		t.Errorf("Seconds after hotkey reset = %v, want 60.0", s.Seconds)
	}
	if !s.Running {
		t.Error("hotkey reset stopped a running countdown")
	}

	// And on a stopped countdown the running state stays stopped.
	send(t, a, control.Command{Type: control.CmdTimerToggle})
	send(t, a, control.Command{Type: control.CmdHotkeyReset})
	if a.CountdownSnapshot().Running {
		t.Error("hotkey reset started a stopped countdown")
	}
}

func TestSetHotkeyPersists(t *testing.T) {
	a, _ := newTestApp(t)

	if err := send(t, a, control.Command{Type: control.CmdSetHotkey, Hotkey: '4'}); err != nil {
		t.Fatalf("set hotkey: %v", err)
	}
	if got := a.SelectedHotkey(); got != '4' {
		t.Errorf("SelectedHotkey() = %q, want '4'", got)
	}

	saved := config.LoadPreferences(a.prefsPath)
	if saved.Hotkey != "4" {
		t.Errorf("persisted hotkey = %q, want \"4\"", saved.Hotkey)
	}

	if err := send(t, a, control.Command{Type: control.CmdSetHotkey, Hotkey: '9'}); err == nil {
		t.Error("invalid hotkey accepted")
	}
}

func TestAnalyticsDisabledWithoutCredentials(t *testing.T) {
	a, _ := newTestApp(t)

	if _, ok := a.tracker.(analytics.Disabled); !ok {
		t.Fatalf("tracker = %T, want analytics.Disabled without credentials", a.tracker)
	}

	// Core behaviors still work with analytics off.
	if err := send(t, a, control.Command{Type: control.CmdLock}); err != nil {
		t.Errorf("lock with analytics disabled: %v", err)
	}
	send(t, a, control.Command{Type: control.CmdTimerReset})
	if !a.CountdownSnapshot().Running {
		t.Error("countdown unusable with analytics disabled")
	}
}
