package main

import (
	"log"

	"fyne.io/fyne/v2/app"

	"github.com/maorga/DarkCtrlKeeper/config"
	"github.com/maorga/DarkCtrlKeeper/ui"
)

func main() {
	fyneApp := app.NewWithID("com.github.maorga.darkctrlkeeper")
	fyneApp.Settings().SetTheme(ui.NewDarkTheme())

	cfg := config.Load("")
	log.Println(cfg.Summary())

	prefs := config.LoadPreferences(config.PrefsFilename)

	a := NewAppManager(cfg, prefs, config.PrefsFilename, nil)
	defer a.Shutdown()

	u := ui.NewMainUI(a, fyneApp)
	a.mainUI = u

	a.initAudio()
	a.StartListening()
	a.trackOpened()

	w := u.Window()
	w.SetOnClosed(func() {
		a.Shutdown()
	})

	go a.tick(a.cmdCtx)

	u.UpdateDisplay(a)
	w.ShowAndRun()
}
