package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// PrefsFilename is the preference file written next to the executable.
const PrefsFilename = "user_config.json"

const prefsNote = "This file contains an anonymous identifier for analytics. Delete to reset."

// DefaultHotkey mirrors the listener default; stored as a string so the JSON
// stays a flat key-value record.
const DefaultHotkey = "5"

// Preferences is the persistent user preference record: the anonymous
// analytics client id, the selected Greater Fortitude hotkey and the last
// window position.
type Preferences struct {
	ClientID  string `json:"client_id"`
	Hotkey    string `json:"hotkey"`
	WindowX   int    `json:"window_x"`
	WindowY   int    `json:"window_y"`
	CreatedAt string `json:"created_at"`
	Version   string `json:"version"`
	Note      string `json:"note"`
}

// DefaultPreferences returns a fresh record with a newly generated client id.
func DefaultPreferences() Preferences {
	return Preferences{
		ClientID:  uuid.NewString(),
		Hotkey:    DefaultHotkey,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Version:   DefaultAppVersion,
		Note:      prefsNote,
	}
}

// LoadPreferences reads the preference file at path. A missing or corrupt
// file regenerates defaults and writes them back, so a broken record heals on
// the next start. Individual invalid fields are repaired the same way.
func LoadPreferences(path string) Preferences {
	data, err := os.ReadFile(path)
	if err != nil {
		p := DefaultPreferences()
		_ = p.Save(path)
		return p
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		p = DefaultPreferences()
		_ = p.Save(path)
		return p
	}

	repaired := false
	if p.ClientID == "" {
		p.ClientID = uuid.NewString()
		repaired = true
	}
	if p.Hotkey != "4" && p.Hotkey != "5" {
		p.Hotkey = DefaultHotkey
		repaired = true
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		repaired = true
	}
	if repaired {
		_ = p.Save(path)
	}
	return p
}

// Save writes the record as indented JSON readable only by the user.
func (p Preferences) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
