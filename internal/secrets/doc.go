// Package secrets implements the ochre secret store: curve25519 keypairs,
// sealed-box encryption of individual values, SHA-256 change detection, and
// the ordered, diff-friendly YAML document the ciphertext lives in.
package secrets
