package errors

import "errors"

// Document errors indicate the secrets document is unreadable or structurally invalid.
var (
	// ErrUnsupportedFormatVersion indicates the document declares a file format
	// version this build does not understand.
	ErrUnsupportedFormatVersion = errors.New("unsupported file format version")

	// ErrMalformedDocument indicates the document could not be parsed.
	ErrMalformedDocument = errors.New("malformed secrets document")

	// ErrDuplicateSecretName indicates the document holds two records with the same name.
	ErrDuplicateSecretName = errors.New("duplicate secret name")

	// ErrSecretNotFound indicates the named secret does not exist in the document.
	ErrSecretNotFound = errors.New("secret not found")
)

// Encoding errors indicate hex-encoded fields could not be decoded.
var (
	// ErrInvalidKeyEncoding indicates a key is not valid lowercase hex of the expected length.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrInvalidCiphertextEncoding indicates a stored ciphertext is not valid hex.
	ErrInvalidCiphertextEncoding = errors.New("invalid ciphertext encoding")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrDecryptionFailed indicates a ciphertext was produced for a different key
	// or has been tampered with.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMissingSecretKey indicates the secret key environment variable is not set.
	ErrMissingSecretKey = errors.New("secret key not provided")

	// ErrSecretKeyMismatch indicates the supplied secret key does not pair with
	// the document's public key.
	ErrSecretKeyMismatch = errors.New("secret key does not match the document's public key")
)
