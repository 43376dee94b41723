package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	oerrors "github.com/ochre-sh/ochre/internal/errors"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// SecretKeyEnv is the environment variable holding the hex-encoded secret key.
// The key is passed through the environment rather than a command-line
// argument so it never shows up in process listings.
const SecretKeyEnv = "OCHRE_SECRET"

// KeySize is the byte length of both halves of the keypair.
const KeySize = 32

// PublicKey is the curve25519 key stored in the document and used to encrypt.
// It is safe to commit to version control.
type PublicKey [KeySize]byte

// SecretKey is the curve25519 key required to decrypt. It is handed to the
// user exactly once at init time and never written to the document.
type SecretKey [KeySize]byte

// GenerateKeyPair produces a fresh keypair from the OS random source.
func GenerateKeyPair() (PublicKey, SecretKey, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return PublicKey{}, SecretKey{}, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return PublicKey(*pub), SecretKey(*priv), nil
}

// String renders the public key as lowercase hex.
func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// Hex renders the secret key as lowercase hex. This is the only way to get
// the key material out as text; use it deliberately.
func (k SecretKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// String deliberately does not expose key material, so that %v/%s formatting
// of surrounding structs cannot leak the key into logs.
func (k SecretKey) String() string {
	return "<secret key>"
}

// PublicKey derives the public half of the keypair.
func (k SecretKey) PublicKey() PublicKey {
	var pub [KeySize]byte
	priv := [KeySize]byte(k)
	curve25519.ScalarBaseMult(&pub, &priv)
	return PublicKey(pub)
}

// ParsePublicKey decodes a lowercase hex public key.
func ParsePublicKey(s string) (PublicKey, error) {
	raw, err := decodeKey(s)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey(raw), nil
}

// ParseSecretKey decodes a lowercase hex secret key.
func ParseSecretKey(s string) (SecretKey, error) {
	raw, err := decodeKey(s)
	if err != nil {
		return SecretKey{}, err
	}
	return SecretKey(raw), nil
}

func decodeKey(s string) ([KeySize]byte, error) {
	var key [KeySize]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("%w: not valid hex", oerrors.ErrInvalidKeyEncoding)
	}
	if len(raw) != KeySize {
		return key, fmt.Errorf("%w: expected %d bytes, got %d", oerrors.ErrInvalidKeyEncoding, KeySize, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// LoadSecretKey reads the secret key from the environment and validates that
// it pairs with the given public key.
func LoadSecretKey(pub PublicKey) (SecretKey, error) {
	encoded, ok := os.LookupEnv(SecretKeyEnv)
	if !ok || encoded == "" {
		return SecretKey{}, fmt.Errorf("%w: set the %s environment variable", oerrors.ErrMissingSecretKey, SecretKeyEnv)
	}
	key, err := ParseSecretKey(strings.TrimSpace(encoded))
	if err != nil {
		return SecretKey{}, fmt.Errorf("failed to decode %s: %w", SecretKeyEnv, err)
	}
	if key.PublicKey() != pub {
		return SecretKey{}, oerrors.ErrSecretKeyMismatch
	}
	return key, nil
}
