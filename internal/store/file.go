package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const fileExt = ".rdoc"

var ErrInvalidKey = errors.New("store: invalid key")

// FileSlot stores one document per key as <Dir>/<Key>.rdoc.
type FileSlot struct {
	Dir      string
	Key      string
	Envelope EnvelopeOptions
}

func NewFileSlot(dir, key string, env EnvelopeOptions) (*FileSlot, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = "."
	}
	return &FileSlot{Dir: dir, Key: key, Envelope: env}, nil
}

func (f *FileSlot) Path() string {
	return filepath.Join(f.Dir, f.Key+fileExt)
}

// Load reads the stored markup. A missing file means nothing is stored.
// Wrapped files are opened with the configured password whatever the
// current envelope options say.
func (f *FileSlot) Load() (string, bool, error) {
	b, err := os.ReadFile(f.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if isEnvelope(b) {
		if b, err = open(b, f.Envelope.Password); err != nil {
			return "", false, err
		}
	}
	if !utf8.Valid(b) {
		return "", false, fmt.Errorf("%w: %s is not UTF-8", ErrInvalidEnvelope, f.Path())
	}
	return string(b), true, nil
}

// Store writes markup through a temporary file and renames it into place.
func (f *FileSlot) Store(markup string) error {
	blob := []byte(markup)
	if f.Envelope.wraps() {
		var err error
		if blob, err = seal(blob, f.Envelope); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	path := f.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Inspect reports how the file at path is wrapped.
func Inspect(path string) (EnvelopeInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return inspectBytes(b)
}

func validateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`), key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
