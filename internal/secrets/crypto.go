package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	oerrors "github.com/ochre-sh/ochre/internal/errors"

	"golang.org/x/crypto/nacl/box"
)

// Encrypt seals plaintext to the given public key using an anonymous sealed
// box. Encryption is probabilistic: an ephemeral keypair and nonce are drawn
// per call, so encrypting the same plaintext twice yields different bytes.
// Whether a value actually changed is decided by the content hash, never by
// comparing ciphertext.
func Encrypt(pub PublicKey, plaintext []byte) ([]byte, error) {
	recipient := [KeySize]byte(pub)
	ciphertext, err := box.SealAnonymous(nil, plaintext, &recipient, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt value: %w", err)
	}
	return ciphertext, nil
}

// Decrypt opens a sealed box produced by Encrypt. It fails with
// ErrDecryptionFailed when the ciphertext was sealed to a different public
// key or has been tampered with; it never degrades to an empty value.
func Decrypt(pub PublicKey, key SecretKey, ciphertext []byte) ([]byte, error) {
	recipientPub := [KeySize]byte(pub)
	recipientKey := [KeySize]byte(key)
	plaintext, ok := box.OpenAnonymous(nil, ciphertext, &recipientPub, &recipientKey)
	if !ok {
		return nil, oerrors.ErrDecryptionFailed
	}
	return plaintext, nil
}

// HashValue computes the deterministic digest used for change detection.
// It plays no role in authentication; the sealed box carries its own
// integrity check.
func HashValue(plaintext []byte) [sha256.Size]byte {
	return sha256.Sum256(plaintext)
}
