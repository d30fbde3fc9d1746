// Package paths centralizes the XDG-derived locations grove reads and
// writes: the declarative config file, the user settings file and the log
// file.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile overrides the default config file location
	EnvConfigFile = "GROVE_CONFIG"
)

const (
	appDirName       = "grove"
	configFileName   = "config.yaml"
	settingsFileName = "settings.toml"
	logFileName      = "grove.log"
)

// ConfigFile returns the path of the declarative config file, honoring
// GROVE_CONFIG over the XDG default.
func ConfigFile() string {
	if override := os.Getenv(EnvConfigFile); override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, appDirName, configFileName)
}

// SettingsFile returns the path of the optional user settings file.
func SettingsFile() string {
	return filepath.Join(xdg.ConfigHome, appDirName, settingsFileName)
}

// LogFile returns the path of the append-mode log file under the XDG
// state directory.
func LogFile() string {
	return filepath.Join(xdg.StateHome, appDirName, logFileName)
}
