package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/maorga/DarkCtrlKeeper/control"
	"github.com/maorga/DarkCtrlKeeper/countdown"
	"github.com/maorga/DarkCtrlKeeper/i18n"
)

// UI constants
const (
	WindowWidth  = 356
	WindowHeight = 430

	FontSizeTitle     float32 = 24.0
	FontSizeStatus    float32 = 16.0
	FontSizeCountdown float32 = 44.0
	FontSizeAlert     float32 = 36.0

	replyTimeout = 200 * time.Millisecond
)

// App is the interface the window needs from the application manager.
type App interface {
	EnqueueCommand(cmd control.Command)
	CountdownSnapshot() countdown.Snapshot
	KeyHeld() bool
	SelectedHotkey() rune
	AppVersion() string
}

// MainUI owns the window widgets and renders application state into them.
// All refreshes go through fyne.Do, so UpdateDisplay is safe to call from
// any goroutine.
type MainUI struct {
	window fyne.Window

	statusText      *canvas.Text
	lockButton      *widget.Button
	releaseButton   *widget.Button
	hotkeyRadio     *widget.RadioGroup
	countdownText   *canvas.Text
	buffAlertText   *canvas.Text
	startStopButton *widget.Button
	resetButton     *widget.Button

	pulseState int
}

// enqueueAndWait posts a command and waits briefly for the loop to confirm,
// keeping button state in sync without ever blocking the UI for long.
func enqueueAndWait(a App, cmd control.Command) {
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case <-reply:
	case <-time.After(replyTimeout):
	}
}

// NewMainUI builds the main window and wires every control to the command
// loop.
func NewMainUI(a App, fyneApp fyne.App) *MainUI {
	u := &MainUI{}

	title := fyneApp.Metadata().Name
	if title == "" {
		title = "DarkCtrlKeeper"
	}
	u.window = fyneApp.NewWindow(title)

	titleText := canvas.NewText("DarkCtrlKeeper", AccentGold)
	titleText.TextStyle.Bold = true
	titleText.TextSize = FontSizeTitle

	infoIcon := widget.NewIcon(theme.InfoIcon())
	infoButton := NewTappableContainer(infoIcon, func() {
		u.showInfoDialog(a)
	}, nil)

	header := container.New(
		layout.NewBorderLayout(nil, nil, nil, infoButton),
		container.New(layout.NewCenterLayout(), titleText),
		infoButton,
	)

	u.buffAlertText = canvas.NewText("BUFF", CountdownRed)
	u.buffAlertText.TextStyle.Bold = true
	u.buffAlertText.TextSize = FontSizeAlert
	u.buffAlertText.Hide()

	u.statusText = canvas.NewText(i18n.T("CTRL RELEASED"), ParchmentText)
	u.statusText.TextSize = FontSizeStatus

	u.lockButton = widget.NewButton(i18n.T("Lock CTRL"), func() {
		enqueueAndWait(a, control.Command{Type: control.CmdLock})
		u.UpdateDisplay(a)
	})
	u.releaseButton = widget.NewButton(i18n.T("Release CTRL"), func() {
		enqueueAndWait(a, control.Command{Type: control.CmdRelease})
		u.UpdateDisplay(a)
	})
	u.releaseButton.Disable()

	hotkeyLabel := canvas.NewText(i18n.T("Greater Fortitude Hotkey:"), ParchmentText)
	hotkeyLabel.TextSize = FontSizeStatus

	u.hotkeyRadio = widget.NewRadioGroup([]string{"4", "5"}, func(selected string) {
		if selected == "" {
			return
		}
		enqueueAndWait(a, control.Command{Type: control.CmdSetHotkey, Hotkey: rune(selected[0])})
	})
	u.hotkeyRadio.Horizontal = true
	u.hotkeyRadio.SetSelected(string(a.SelectedHotkey()))

	u.countdownText = canvas.NewText(countdown.FormatSeconds(60.0), CountdownGreen)
	u.countdownText.TextStyle.Bold = true
	u.countdownText.TextSize = FontSizeCountdown

	u.startStopButton = widget.NewButton(i18n.T("Start"), func() {
		enqueueAndWait(a, control.Command{Type: control.CmdTimerToggle})
		u.UpdateDisplay(a)
	})
	u.resetButton = widget.NewButton(i18n.T("Reset"), func() {
		enqueueAndWait(a, control.Command{Type: control.CmdTimerReset})
		u.UpdateDisplay(a)
	})

	content := container.NewVBox(
		header,
		container.New(layout.NewCenterLayout(), u.buffAlertText),
		layout.NewSpacer(),
		container.New(layout.NewCenterLayout(), u.statusText),
		container.NewHBox(
			layout.NewSpacer(),
			u.lockButton,
			u.releaseButton,
			layout.NewSpacer(),
		),
		container.NewHBox(
			layout.NewSpacer(),
			hotkeyLabel,
			u.hotkeyRadio,
			layout.NewSpacer(),
		),
		layout.NewSpacer(),
		container.New(layout.NewCenterLayout(), u.countdownText),
		container.NewHBox(
			layout.NewSpacer(),
			u.startStopButton,
			u.resetButton,
			layout.NewSpacer(),
		),
		layout.NewSpacer(),
	)

	u.window.SetContent(content)
	u.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	u.window.SetFixedSize(true)

	return u
}

// Window returns the fyne window for show/close wiring.
func (u *MainUI) Window() fyne.Window {
	return u.window
}

// UpdateDisplay re-renders every stateful widget from a fresh snapshot.
func (u *MainUI) UpdateDisplay(a App) {
	s := a.CountdownSnapshot()
	held := a.KeyHeld()

	fyne.Do(func() {
		u.countdownText.Text = countdown.FormatSeconds(s.Seconds)
		switch s.Band {
		case countdown.BandGreen:
			u.countdownText.Color = CountdownGreen
		case countdown.BandYellow:
			u.countdownText.Color = CountdownYellow
		default:
			u.countdownText.Color = CountdownRed
		}
		u.countdownText.Refresh()

		if s.AlertLatched {
			u.buffAlertText.Show()
		} else {
			u.buffAlertText.Hide()
			u.pulseState = 0
		}

		if s.Running {
			u.startStopButton.SetText(i18n.T("Stop"))
		} else {
			u.startStopButton.SetText(i18n.T("Start"))
		}

		if held {
			u.statusText.Text = i18n.T("CTRL IS PRESSED")
			u.lockButton.Disable()
			u.releaseButton.Enable()
		} else {
			u.statusText.Text = i18n.T("CTRL RELEASED")
			u.lockButton.Enable()
			u.releaseButton.Disable()
		}
		u.statusText.Refresh()
	})
}

// PulseAlert animates the buff alert while it is visible, alternating the
// glow between full and dimmed red.
func (u *MainUI) PulseAlert() {
	fyne.Do(func() {
		if u.buffAlertText.Hidden {
			return
		}
		u.pulseState++
		c := CountdownRed
		if u.pulseState%2 == 1 {
			c.A = 0xb4
		}
		u.buffAlertText.Color = c
		u.buffAlertText.Refresh()
	})
}

func (u *MainUI) showInfoDialog(a App) {
	text := fmt.Sprintf(`DarkCtrlKeeper %s

Dark fantasy themed CTRL key locker for MU Online.
Maintains the Greater Fortitude buff by virtually locking the CTRL key.

How to use:
1. Click "%s" to hold the CTRL key.
2. Select your Greater Fortitude hotkey (4 or 5).
3. Press %s to begin the 60 second countdown.
4. When the window shows BUFF, press your hotkey to refresh.
5. Click "%s" to let go of CTRL.

The countdown turns yellow below 30 seconds and red below 10.`,
		a.AppVersion(), i18n.T("Lock CTRL"), i18n.T("Start"), i18n.T("Release CTRL"))

	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(label)
	scrollableContent.SetMinSize(fyne.NewSize(320, 300))

	dialog.ShowCustom(i18n.T("About DarkCtrlKeeper"), i18n.T("Close"), scrollableContent, u.window)
}

// TappableContainer wraps a canvas object with primary/secondary tap
// handlers.
type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(t.Content, layout.NewSpacer()))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
