// Package config loads the editor's TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"richdoc/internal/diag"
	"richdoc/internal/editor"
	"richdoc/internal/store"
)

// PasswordEnv names the environment variable holding the storage password.
// The password is never read from the config file.
const PasswordEnv = "RICHDOC_PASSWORD"

type Config struct {
	Storage Storage `toml:"storage"`
	Editor  Editor  `toml:"editor"`
	Log     Log     `toml:"log"`
}

type Storage struct {
	Dir         string `toml:"dir"`
	Key         string `toml:"key"`
	Compression bool   `toml:"compression"`
	Encryption  bool   `toml:"encryption"`

	Password string `toml:"-"`
}

type Editor struct {
	StyleScope string `toml:"style_scope"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Defaults() Config {
	return Config{
		Storage: Storage{Dir: ".", Key: "editorContent", Compression: true},
		Editor:  Editor{StyleScope: "block"},
		Log:     Log{Level: "info", File: "richedit.log"},
	}
}

// Load reads path over the defaults. A missing file is not an error. The
// environment is applied last, then the result is validated.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("open config %s: %w", path, err)
		default:
			defer f.Close()
			if err := decode(f, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// Parse decodes raw TOML over the defaults without consulting the
// environment.
func Parse(raw []byte) (Config, error) {
	cfg := Defaults()
	if err := decode(bytes.NewReader(raw), &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(PasswordEnv); ok {
		c.Storage.Password = v
	}
}

func (c Config) Validate() error {
	var errs []error
	if _, err := store.NewFileSlot(c.Storage.Dir, c.Storage.Key, store.EnvelopeOptions{}); err != nil {
		errs = append(errs, fmt.Errorf("storage.key: %w", err))
	}
	if c.Storage.Encryption && strings.TrimSpace(c.Storage.Password) == "" {
		errs = append(errs, fmt.Errorf("storage.encryption needs %s: %w", PasswordEnv, store.ErrPasswordRequired))
	}
	if _, err := editor.ParseScope(c.Editor.StyleScope); err != nil {
		errs = append(errs, fmt.Errorf("editor.style_scope: %w", err))
	}
	if _, ok := diag.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// Scope returns the configured command scope. Validate has already
// rejected unknown values.
func (c Config) Scope() editor.Scope {
	s, _ := editor.ParseScope(c.Editor.StyleScope)
	return s
}

func (c Config) Envelope() store.EnvelopeOptions {
	return store.EnvelopeOptions{
		Compress: c.Storage.Compression,
		Encrypt:  c.Storage.Encryption,
		Password: c.Storage.Password,
	}
}

// Slot opens the file slot described by the storage section.
func (c Config) Slot() (*store.FileSlot, error) {
	return store.NewFileSlot(c.Storage.Dir, c.Storage.Key, c.Envelope())
}
