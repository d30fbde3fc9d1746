// Package settings loads the optional per-user settings file. Settings
// provide defaults for the run options; command-line flags win over the
// file. Options are threaded explicitly through the pipeline and link
// resolver, never held as process-wide state.
package settings

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/grove/pkg/errors"
	"github.com/arthur-debert/grove/pkg/logging"
)

// Settings mirrors the settings.toml schema.
type Settings struct {
	// Quiet suppresses per-step terminal output.
	Quiet bool `toml:"quiet"`
	// Emoji toggles ✔/❎ markers in terminal output.
	Emoji bool `toml:"emoji"`
	// Force lets the link resolver replace conflicting link targets,
	// backing the original up first.
	Force bool `toml:"force"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{Emoji: true}
}

// Load reads the settings file at path. A missing file is not an error;
// defaults are returned. A present but unreadable or malformed file is.
func Load(path string) (Settings, error) {
	logger := logging.GetLogger("settings")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("no settings file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return Default(), errors.Wrapf(err, errors.ErrConfigLoad, "reading settings file %s", path)
	}

	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), errors.Wrapf(err, errors.ErrConfigParse, "parsing settings file %s", path)
	}

	logger.Debug().Str("path", path).Msg("settings loaded")
	return s, nil
}
