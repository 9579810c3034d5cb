// Package engineconfig loads and saves editor preferences. Preferences are
// engine-only state persisted across runs; scene save data is separate and
// owned by an external collaborator.
package engineconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where preferences live, relative to the working directory.
const DefaultPath = "config/engine.toml"

// Prefs holds editor preferences.
type Prefs struct {
	ShowFPS        bool          `toml:"show_fps"`
	ShowFrameStats bool          `toml:"show_frame_stats"`
	GridVisible    bool          `toml:"grid_visible"`
	Debug          bool          `toml:"debug"`
	TickRate       time.Duration `toml:"tick_rate"`
	// OrbitSensitivity scales mouse movement to orbit radians.
	OrbitSensitivity float32 `toml:"orbit_sensitivity"`
	// DollySensitivity scales wheel movement to dolly distance.
	DollySensitivity float32 `toml:"dolly_sensitivity"`
	// UIScale scales overlay text, for high-DPI displays.
	UIScale float32 `toml:"ui_scale"`
}

// Default returns the default preferences: overlays off, grid on, 120 Hz
// engine tick.
func Default() Prefs {
	return Prefs{
		ShowFPS:          false,
		ShowFrameStats:   false,
		GridVisible:      true,
		Debug:            false,
		TickRate:         time.Second / 120,
		OrbitSensitivity: 0.005,
		DollySensitivity: 0.5,
		UIScale:          1,
	}
}

// Load reads preferences from path. A missing or invalid file yields
// Default() without creating anything.
func Load(path string) Prefs {
	prefs := Default()
	if _, err := toml.DecodeFile(path, &prefs); err != nil {
		return Default()
	}
	if prefs.TickRate <= 0 {
		prefs.TickRate = Default().TickRate
	}
	if prefs.UIScale <= 0 {
		prefs.UIScale = Default().UIScale
	}
	return prefs
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, prefs Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(prefs)
}
