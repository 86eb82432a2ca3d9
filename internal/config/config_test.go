package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"richdoc/internal/editor"
	"richdoc/internal/store"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, editor.ScopeBlock, cfg.Scope())
	require.Equal(t, "editorContent", cfg.Storage.Key)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[storage]
dir = "docs"
compression = false

[editor]
style_scope = "selection"

[log]
level = "debug"
`))
	require.NoError(t, err)
	require.Equal(t, "docs", cfg.Storage.Dir)
	require.Equal(t, "editorContent", cfg.Storage.Key)
	require.False(t, cfg.Storage.Compression)
	require.Equal(t, editor.ScopeSelection, cfg.Scope())
	require.Equal(t, "richedit.log", cfg.Log.File)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("[storage]\npassword = \"x\"\n"))
	require.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Storage.Key = "a/b"
	cfg.Storage.Encryption = true
	cfg.Editor.StyleScope = "word"
	cfg.Log.Level = "loud"
	err := cfg.Validate()
	require.ErrorIs(t, err, store.ErrInvalidKey)
	require.ErrorIs(t, err, store.ErrPasswordRequired)
	require.ErrorContains(t, err, "editor.style_scope")
	require.ErrorContains(t, err, "log.level")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Defaults().Storage.Key, cfg.Storage.Key)
}

func TestLoadReadsPasswordFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "richedit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nencryption = true\n"), 0o644))

	t.Setenv(PasswordEnv, "")
	_, err := Load(path)
	require.True(t, errors.Is(err, store.ErrPasswordRequired))

	t.Setenv(PasswordEnv, "hunter2")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, store.EnvelopeOptions{Compress: true, Encrypt: true, Password: "hunter2"}, cfg.Envelope())

	slot, err := cfg.Slot()
	require.NoError(t, err)
	require.Equal(t, "editorContent", slot.Key)
}
