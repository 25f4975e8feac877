package sessions

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	minSecretLength = 16
	nonceLength     = 24
	sealInfo        = "wallet-admin-console credential cookie v1"
)

// Sealer encrypts and authenticates cookie values. The cookie name is sealed
// with the value so a remembered cookie cannot be replayed as an ephemeral one.
type Sealer struct {
	key [32]byte
}

func NewSealer(secret []byte) (*Sealer, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("[sessions NewSealer] secret must be at least %d bytes", minSecretLength)
	}
	s := &Sealer{}
	kdf := hkdf.New(sha256.New, secret, nil, []byte(sealInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("[sessions NewSealer] derive key: %w", err)
	}
	return s, nil
}

// GenerateSecret returns fresh random key material for NewSealer.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("[sessions GenerateSecret] %w", err)
	}
	return secret, nil
}

func (s *Sealer) Seal(name string, plain []byte) (string, error) {
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("[sessions Seal] nonce: %w", err)
	}
	msg := append([]byte(name+"\x00"), plain...)
	out := secretbox.Seal(nonce[:], msg, &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(name, value string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if len(raw) < nonceLength+secretbox.Overhead {
		return nil, ErrMalformedSession
	}

	var nonce [nonceLength]byte
	copy(nonce[:], raw[:nonceLength])
	msg, ok := secretbox.Open(nil, raw[nonceLength:], &nonce, &s.key)
	if !ok {
		return nil, ErrMalformedSession
	}

	prefix := []byte(name + "\x00")
	if !bytes.HasPrefix(msg, prefix) {
		return nil, ErrMalformedSession
	}
	return msg[len(prefix):], nil
}
