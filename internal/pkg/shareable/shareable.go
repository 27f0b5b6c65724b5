// Package shareable derives shareable identifiers from raw aggregator
// account identifiers. The shareable form is the account identifier sealed
// with ChaCha20-Poly1305 (nonce||ciphertext, base64url), so a link can be
// referenced without exposing the underlying account identifier.
package shareable

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encrypter seals and opens account identifiers with a fixed key.
type Encrypter struct {
	aead cipher.AEAD
}

// NewEncrypter builds an Encrypter from a 32-byte key.
func NewEncrypter(key []byte) (*Encrypter, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("shareable: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("shareable: %w", err)
	}
	return &Encrypter{aead: aead}, nil
}

// EncryptID seals an account identifier into its shareable form.
func (e *Encrypter) EncryptID(id string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("shareable: nonce: %w", err)
	}
	sealed := e.aead.Seal(nonce, nonce, []byte(id), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// DecryptID recovers the raw account identifier from a shareable one.
func (e *Encrypter) DecryptID(shareableID string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(shareableID)
	if err != nil {
		return "", fmt.Errorf("shareable: decode: %w", err)
	}
	if len(sealed) < e.aead.NonceSize() {
		return "", errors.New("shareable: ciphertext too short")
	}
	nonce, ct := sealed[:e.aead.NonceSize()], sealed[e.aead.NonceSize():]
	plain, err := e.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("shareable: open: %w", err)
	}
	return string(plain), nil
}
