// Package main contains the application wiring and the AppManager which
// coordinates the CTRL hold, the buff countdown, analytics and the UI. This
// file centralizes the shared application state and the command loop used to
// serialize state mutations.
//
// Maintenance notes / tips:
//   - Concurrency model: a single command-loop goroutine (see `commandLoop`)
//     serializes Lock/Release/Toggle/Reset/SetHotkey operations coming from
//     the UI and the global hotkey listener. The countdown is ticked in a
//     separate goroutine (`tick`); its own mutex keeps the two safe.
//   - `cmdCh` is a buffered channel used to enqueue commands. Sends time out
//     after a short interval and drop the command rather than block the UI.
//   - The Shutdown path must always release the held key. It is guarded by a
//     sync.Once so the window-close hook and the main defer can both call it.
package main

import (
	"context"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/maorga/DarkCtrlKeeper/analytics"
	"github.com/maorga/DarkCtrlKeeper/config"
	"github.com/maorga/DarkCtrlKeeper/control"
	"github.com/maorga/DarkCtrlKeeper/countdown"
	"github.com/maorga/DarkCtrlKeeper/keyboard"
	"github.com/maorga/DarkCtrlKeeper/ui"
)

const (
	tickInterval = 100 * time.Millisecond

	alertToneFreq     = 880
	alertToneDuration = 300 * time.Millisecond

	speakerSampleRate = beep.SampleRate(44100)
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	cfg       *config.Config
	prefs     config.Preferences
	prefsPath string

	holder    *keyboard.Holder
	listener  *keyboard.Listener
	countdown *countdown.Countdown
	tracker   analytics.Tracker

	mainUI *ui.MainUI

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc

	speakerReady bool
	speakerLock  sync.Mutex

	shutdownOnce sync.Once
}

// NewAppManager creates a new application manager. sim selects the key
// simulator; nil picks the OS-backed one.
func NewAppManager(cfg *config.Config, prefs config.Preferences, prefsPath string, sim keyboard.Simulator) *AppManager {
	a := &AppManager{
		cfg:       cfg,
		prefs:     prefs,
		prefsPath: prefsPath,
		holder:    keyboard.NewHolder(sim),
		countdown: countdown.New(),
		tracker:   analytics.New(cfg.MeasurementID, cfg.APISecret, prefs.ClientID),
	}

	a.listener = keyboard.NewListener(func(rune) {
		a.EnqueueCommand(control.Command{Type: control.CmdHotkeyReset})
	})
	if len(prefs.Hotkey) == 1 && keyboard.ValidHotkey(rune(prefs.Hotkey[0])) {
		_ = a.listener.SetHotkey(rune(prefs.Hotkey[0]))
	}

	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

// EnqueueCommand posts a command to the internal command loop. If the
// channel stays full for the configured short timeout, the command is
// dropped and logged rather than blocking the caller.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			var err error
			switch cmd.Type {
			case control.CmdLock:
				err = a.lockCtrl()
			case control.CmdRelease:
				err = a.releaseCtrl()
			case control.CmdTimerToggle:
				a.countdown.Toggle()
			case control.CmdTimerReset:
				// The RESET button restarts a stopped countdown.
				a.countdown.Reset()
				a.countdown.Start()
			case control.CmdHotkeyReset:
				a.countdown.Reset()
			case control.CmdSetHotkey:
				err = a.setHotkey(cmd.Hotkey)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

func (a *AppManager) lockCtrl() error {
	if err := a.holder.Hold(); err != nil {
		// Key injection needs elevated privileges on some setups. Keep
		// the countdown usable and tell the log what happened.
		log.Printf("Could not lock CTRL (running without administrator rights?): %v", err)
		return err
	}
	log.Printf("CTRL key pressed and held virtually")
	a.tracker.Track(analytics.EventCtrlLocked, nil)
	return nil
}

func (a *AppManager) releaseCtrl() error {
	if err := a.holder.Release(); err != nil {
		log.Printf("Could not release CTRL: %v", err)
		return err
	}
	log.Printf("CTRL key released")
	a.tracker.Track(analytics.EventCtrlReleased, nil)
	return nil
}

func (a *AppManager) setHotkey(r rune) error {
	if err := a.listener.SetHotkey(r); err != nil {
		return err
	}
	a.prefs.Hotkey = string(r)
	if err := a.prefs.Save(a.prefsPath); err != nil {
		log.Printf("Could not persist hotkey preference: %v", err)
	}
	log.Printf("Hotkey set to: %c", r)
	return nil
}

// StartListening installs the global hotkey hook.
func (a *AppManager) StartListening() {
	a.listener.Start()
	log.Printf("Keyboard listener started")
}

// CountdownSnapshot returns a coherent view of the countdown for the UI.
func (a *AppManager) CountdownSnapshot() countdown.Snapshot {
	return a.countdown.Snapshot()
}

// KeyHeld reports whether the virtual CTRL hold is active.
func (a *AppManager) KeyHeld() bool {
	return a.holder.Held()
}

// SelectedHotkey returns the currently configured reset hotkey.
func (a *AppManager) SelectedHotkey() rune {
	return a.listener.Hotkey()
}

// AppVersion returns the configured application version.
func (a *AppManager) AppVersion() string {
	return a.cfg.AppVersion
}

// BuffAlert is invoked by the countdown when the alert threshold is crossed.
func (a *AppManager) BuffAlert() {
	log.Printf("BUFF alert: countdown reached threshold")
	a.playAlertTone()
}

func (a *AppManager) initAudio() {
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: failed to initialize speaker: %v", err)
		return
	}
	a.speakerReady = true
}

func (a *AppManager) playAlertTone() {
	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()
	if !a.speakerReady {
		return
	}

	tone, err := generators.SineTone(speakerSampleRate, alertToneFreq)
	if err != nil {
		log.Printf("Could not generate alert tone: %v", err)
		return
	}
	speaker.Play(beep.Take(speakerSampleRate.N(alertToneDuration), tone))
}

func (a *AppManager) tick(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.countdown.Tick(a)
			if a.mainUI != nil {
				a.mainUI.UpdateDisplay(a)
				a.mainUI.PulseAlert()
			}
		}
	}
}

// Shutdown stops all background work and, above everything else, releases
// the virtually held key. Safe to call more than once.
func (a *AppManager) Shutdown() {
	a.shutdownOnce.Do(func() {
		if err := a.holder.Release(); err != nil {
			log.Printf("Shutdown: could not release CTRL: %v", err)
		}
		a.listener.Stop()
		if a.cmdCancel != nil {
			a.cmdCancel()
		}
		a.tracker.Track(analytics.EventAppClosed, nil)
		a.tracker.Shutdown(5 * time.Second)
		if err := a.prefs.Save(a.prefsPath); err != nil {
			log.Printf("Shutdown: could not save preferences: %v", err)
		}
	})
}

// trackOpened reports the startup event.
func (a *AppManager) trackOpened() {
	a.tracker.Track(analytics.EventAppOpened, map[string]any{
		"version":  a.cfg.AppVersion,
		"platform": runtime.GOOS,
	})
}
