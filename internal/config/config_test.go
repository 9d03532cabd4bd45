package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("NIRI_SOCKET", "/run/user/1000/niri.sock")
	t.Setenv("NIRISTICK_SOCKET", "")

	cfg := Default()
	assert.Equal(t, "/run/user/1000/niristick.sock", cfg.SocketPath)
	assert.Equal(t, "/run/user/1000/niri.sock", cfg.NiriSocket)
	assert.Equal(t, "niri", cfg.NiriBinary)
	assert.Equal(t, "stage", cfg.StageWorkspace)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout.Std())
}

func TestLoad(t *testing.T) {
	t.Setenv("NIRISTICK_SOCKET", "")

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
socket_path: /tmp/custom.sock
stage_workspace: parking
command_timeout: 2s
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.sock", cfg.SocketPath)
		assert.Equal(t, "parking", cfg.StageWorkspace)
		assert.Equal(t, 2*time.Second, cfg.CommandTimeout.Std())
		// untouched keys keep their defaults
		assert.Equal(t, "niri", cfg.NiriBinary)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("missing default file falls back to defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "stage", cfg.StageWorkspace)
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("command_timeout: soon\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty stage workspace is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`stage_workspace: ""`+"\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("NIRISTICK_SOCKET wins over the file", func(t *testing.T) {
		t.Setenv("NIRISTICK_SOCKET", "/tmp/env.sock")
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("socket_path: /tmp/file.sock\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env.sock", cfg.SocketPath)
	})
}
