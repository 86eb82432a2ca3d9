package store

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	envelopeMagic   = "RICHDOC\x00ENV"
	envelopeVersion = uint16(1)

	flagCompressed = uint16(1 << 0)
	flagEncrypted  = uint16(1 << 1)

	saltSize      = 16
	nonceSize     = 12
	keySize       = 32
	kdfIterations = 200000

	headerSize = len(envelopeMagic) + 2 + 2 + saltSize + nonceSize + 8
)

var (
	ErrPasswordRequired = errors.New("store: password required")
	ErrInvalidPassword  = errors.New("store: invalid password")
	ErrInvalidEnvelope  = errors.New("store: invalid envelope")
)

// EnvelopeOptions selects how a payload is wrapped on disk. A zero value
// stores the payload as is.
type EnvelopeOptions struct {
	Compress bool
	Encrypt  bool
	Password string
}

func (o EnvelopeOptions) wraps() bool { return o.Compress || o.Encrypt }

type EnvelopeInfo struct {
	Wrapped    bool
	Compressed bool
	Encrypted  bool
	Version    uint16
}

type envelopeHeader struct {
	Version uint16
	Flags   uint16
	Salt    [saltSize]byte
	Nonce   [nonceSize]byte
	Length  uint64
}

func (h envelopeHeader) marshal() []byte {
	out := make([]byte, headerSize)
	n := copy(out, envelopeMagic)
	binary.LittleEndian.PutUint16(out[n:], h.Version)
	binary.LittleEndian.PutUint16(out[n+2:], h.Flags)
	n += 4
	n += copy(out[n:], h.Salt[:])
	n += copy(out[n:], h.Nonce[:])
	binary.LittleEndian.PutUint64(out[n:], h.Length)
	return out
}

func parseHeader(b []byte) (envelopeHeader, error) {
	var h envelopeHeader
	if len(b) < headerSize {
		return h, fmt.Errorf("%w: short header", ErrInvalidEnvelope)
	}
	n := len(envelopeMagic)
	h.Version = binary.LittleEndian.Uint16(b[n:])
	h.Flags = binary.LittleEndian.Uint16(b[n+2:])
	n += 4
	n += copy(h.Salt[:], b[n:])
	n += copy(h.Nonce[:], b[n:])
	h.Length = binary.LittleEndian.Uint64(b[n:])
	if h.Version != envelopeVersion {
		return h, fmt.Errorf("%w: version %d", ErrInvalidEnvelope, h.Version)
	}
	return h, nil
}

func isEnvelope(b []byte) bool {
	return bytes.HasPrefix(b, []byte(envelopeMagic))
}

func inspectBytes(b []byte) (EnvelopeInfo, error) {
	if !isEnvelope(b) {
		return EnvelopeInfo{}, nil
	}
	h, err := parseHeader(b)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return EnvelopeInfo{
		Wrapped:    true,
		Compressed: h.Flags&flagCompressed != 0,
		Encrypted:  h.Flags&flagEncrypted != 0,
		Version:    h.Version,
	}, nil
}

// seal compresses and encrypts payload as opts asks and prefixes the header.
func seal(payload []byte, opts EnvelopeOptions) ([]byte, error) {
	h := envelopeHeader{Version: envelopeVersion}
	var err error
	if opts.Compress {
		h.Flags |= flagCompressed
		if payload, err = compress(payload); err != nil {
			return nil, err
		}
	}
	if opts.Encrypt {
		if strings.TrimSpace(opts.Password) == "" {
			return nil, ErrPasswordRequired
		}
		h.Flags |= flagEncrypted
		if _, err := io.ReadFull(rand.Reader, h.Salt[:]); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(rand.Reader, h.Nonce[:]); err != nil {
			return nil, err
		}
		gcm, err := newGCM(opts.Password, h.Salt[:])
		if err != nil {
			return nil, err
		}
		payload = gcm.Seal(nil, h.Nonce[:], payload, nil)
	}
	h.Length = uint64(len(payload))
	return append(h.marshal(), payload...), nil
}

// open reverses seal. password is only consulted for encrypted envelopes.
func open(b []byte, password string) ([]byte, error) {
	if !isEnvelope(b) {
		return nil, ErrInvalidEnvelope
	}
	h, err := parseHeader(b)
	if err != nil {
		return nil, err
	}
	payload := b[headerSize:]
	if uint64(len(payload)) != h.Length {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrInvalidEnvelope, len(payload), h.Length)
	}
	if h.Flags&flagEncrypted != 0 {
		if strings.TrimSpace(password) == "" {
			return nil, ErrPasswordRequired
		}
		gcm, err := newGCM(password, h.Salt[:])
		if err != nil {
			return nil, err
		}
		if payload, err = gcm.Open(nil, h.Nonce[:], payload, nil); err != nil {
			return nil, ErrInvalidPassword
		}
	}
	if h.Flags&flagCompressed != 0 {
		if payload, err = decompress(payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
		}
	}
	return payload, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(in); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(in []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
