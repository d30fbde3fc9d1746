package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/grove/pkg/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.True(t, s.Emoji)
	assert.False(t, s.Quiet)
	assert.False(t, s.Force)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("quiet = true\nemoji = false\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.Quiet)
	assert.False(t, s.Emoji)
	assert.False(t, s.Force)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("quiet = = nope"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfigParse))
}
