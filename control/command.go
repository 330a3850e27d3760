// Package control defines lightweight command messages used by the UI and
// the hotkey listener to request actions from the application command loop.
// The command-loop centralizes state changes to avoid races and to simplify
// synchronization.
package control

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdLock CommandType = iota
	CmdRelease
	CmdTimerToggle
	CmdTimerReset  // the RESET button: reset and make sure the countdown runs
	CmdHotkeyReset // the in-game hotkey: reset without touching the running state
	CmdSetHotkey
)

// Command is the message sent to the application command loop. The optional
// Reply channel can be used by the loop to confirm completion back to the
// sender (useful for keeping UI state in sync).
type Command struct {
	Type   CommandType
	Hotkey rune       // selected hotkey, for CmdSetHotkey
	Reply  chan error // optional reply channel
}
