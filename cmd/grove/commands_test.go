package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `categories:
  dots:
    repos:
      gg:
        name: gg
        path: /home/user/.dots/
        url: git@github.com:cafkafk/gg.git
        flags: [Clone, Fast]
    links:
      starship:
        name: starship
        rx: /home/user/.config/starship.toml
        tx: /home/user/.dots/starship.toml
`

func setupTestEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	xdg.Reload()

	configPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))
	t.Setenv("GROVE_CONFIG", configPath)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"link", "quick", "fast", "clone", "pull", "add", "commit", "commit-msg", "jump", "version", "completion"}

	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing subcommand %s", name)
	}
}

func TestJumpCommand(t *testing.T) {
	setupTestEnv(t)

	out, err := runCommand(t, "jump", "dots", "gg")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.dots/gg\n", out)

	out, err = runCommand(t, "jump", "dots", "starship")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.config/starship.toml\n", out)
}

func TestJumpUnknownNameFails(t *testing.T) {
	setupTestEnv(t)

	_, err := runCommand(t, "jump", "dots", "nope")
	assert.Error(t, err)
}

func TestConfigLoadFailureIsFatal(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("GROVE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := runCommand(t, "pull")
	assert.Error(t, err)
}

func TestOptionalMsg(t *testing.T) {
	assert.Equal(t, "", optionalMsg(nil))
	assert.Equal(t, "fix things", optionalMsg([]string{"fix things"}))
}
