package secrets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	oerrors "github.com/ochre-sh/ochre/internal/errors"
	"github.com/ochre-sh/ochre/internal/utils"

	"github.com/goccy/go-yaml"
)

// FileFormatVersion is the document format this build reads and writes.
// Any other version is a hard error.
const FileFormatVersion = 1

// DefaultDocumentName is the file name searched for when no explicit path is given.
const DefaultDocumentName = "ochre.yaml"

// Status reports what an upsert did to the document.
type Status string

const (
	// StatusAdded means the name did not exist and a new record was appended.
	StatusAdded Status = "added"
	// StatusUnchanged means the plaintext hash matched the stored one; nothing
	// was re-encrypted and the document does not need to be rewritten.
	StatusUnchanged Status = "unchanged"
	// StatusOverwritten means an existing record was re-encrypted in place.
	// This is destructive; callers should log it as a warning.
	StatusOverwritten Status = "overwritten"
)

// SecretRecord is one named secret: the SHA-256 digest of its plaintext and
// the sealed ciphertext. The two fields are only ever updated together.
type SecretRecord struct {
	Name   string
	Digest [sha256.Size]byte
	Cipher []byte
}

// Pair is a decrypted name/value pair.
type Pair struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Document is the in-memory form of the secrets file: the public key plus an
// ordered sequence of records. Record order is preserved across load/save and
// new records are appended at the end, keeping version-control diffs minimal.
//
// A Document is not safe for concurrent use. Across processes the file is
// last-write-wins: two invocations racing on the same document can silently
// drop one change. That is an accepted limitation of the format.
type Document struct {
	PublicKey PublicKey

	records []SecretRecord
	index   map[string]int
}

// documentYAML mirrors the on-disk layout. Field order here is the
// serialization order.
type documentYAML struct {
	FileFormatVersion int          `yaml:"file_format_version"`
	PublicKey         string       `yaml:"public_key"`
	Secrets           []recordYAML `yaml:"secrets"`
}

type recordYAML struct {
	Name   string `yaml:"name"`
	SHA256 string `yaml:"sha256"`
	Cipher string `yaml:"cipher"`
}

// NewDocument creates an empty document for the given public key.
func NewDocument(pub PublicKey) *Document {
	return &Document{
		PublicKey: pub,
		records:   []SecretRecord{},
		index:     map[string]int{},
	}
}

// Load parses a serialized document.
func Load(data []byte) (*Document, error) {
	var raw documentYAML
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", oerrors.ErrMalformedDocument, err)
	}
	if raw.FileFormatVersion != FileFormatVersion {
		return nil, fmt.Errorf("%w: document has version %d, this build only supports %d",
			oerrors.ErrUnsupportedFormatVersion, raw.FileFormatVersion, FileFormatVersion)
	}

	pub, err := ParsePublicKey(raw.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public_key: %w", err)
	}

	doc := NewDocument(pub)
	for _, r := range raw.Secrets {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: secret record with empty name", oerrors.ErrMalformedDocument)
		}
		if _, exists := doc.index[r.Name]; exists {
			return nil, fmt.Errorf("%w: %q", oerrors.ErrDuplicateSecretName, r.Name)
		}

		digestRaw, err := hex.DecodeString(r.SHA256)
		if err != nil || len(digestRaw) != sha256.Size {
			return nil, fmt.Errorf("%w: secret %q has an invalid sha256 field", oerrors.ErrMalformedDocument, r.Name)
		}
		cipher, err := hex.DecodeString(r.Cipher)
		if err != nil {
			return nil, fmt.Errorf("%w: secret %q", oerrors.ErrInvalidCiphertextEncoding, r.Name)
		}

		record := SecretRecord{Name: r.Name, Cipher: cipher}
		copy(record.Digest[:], digestRaw)
		doc.index[r.Name] = len(doc.records)
		doc.records = append(doc.records, record)
	}
	return doc, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets document at %s: %w", path, err)
	}
	doc, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secrets document at %s: %w", path, err)
	}
	return doc, nil
}

// Save serializes the document deterministically: stable field order, record
// order as held in memory, two-space indentation. Saving a logically
// unchanged document always produces byte-identical output.
func (d *Document) Save() ([]byte, error) {
	raw := documentYAML{
		FileFormatVersion: FileFormatVersion,
		PublicKey:         d.PublicKey.String(),
		Secrets:           make([]recordYAML, 0, len(d.records)),
	}
	for _, r := range d.records {
		raw.Secrets = append(raw.Secrets, recordYAML{
			Name:   r.Name,
			SHA256: hex.EncodeToString(r.Digest[:]),
			Cipher: hex.EncodeToString(r.Cipher),
		})
	}
	data, err := yaml.MarshalWithOptions(raw, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize secrets document: %w", err)
	}
	return data, nil
}

// SaveFile atomically writes the serialized document to path. The document
// is committable, so it gets world-readable permissions.
func (d *Document) SaveFile(path string) error {
	data, err := d.Save()
	if err != nil {
		return err
	}
	// #nosec G306 -- the document holds only ciphertext and is meant to be committed
	if err := utils.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write secrets document: %w", err)
	}
	return nil
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.records)
}

// Records returns the records in document order. The slice is a copy; the
// ciphertext bytes are not.
func (d *Document) Records() []SecretRecord {
	out := make([]SecretRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Set adds or updates the named secret. A new name is appended at the end of
// the sequence; an existing name keeps its position. When the plaintext hash
// matches the stored digest nothing is re-encrypted, so repeated Set calls
// with the same value leave the serialized document byte-identical.
func (d *Document) Set(name, value string) (Status, error) {
	digest := HashValue([]byte(value))

	if i, exists := d.index[name]; exists {
		if d.records[i].Digest == digest {
			return StatusUnchanged, nil
		}
		cipher, err := Encrypt(d.PublicKey, []byte(value))
		if err != nil {
			return "", fmt.Errorf("failed to encrypt secret %q: %w", name, err)
		}
		d.records[i].Digest = digest
		d.records[i].Cipher = cipher
		return StatusOverwritten, nil
	}

	cipher, err := Encrypt(d.PublicKey, []byte(value))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret %q: %w", name, err)
	}
	record := SecretRecord{Name: name, Digest: digest, Cipher: cipher}
	d.index[name] = len(d.records)
	d.records = append(d.records, record)
	return StatusAdded, nil
}

// Remove deletes the named secret, preserving the order of the remaining
// records. Removing an unknown name is an error.
func (d *Document) Remove(name string) error {
	i, exists := d.index[name]
	if !exists {
		return fmt.Errorf("%w: %q", oerrors.ErrSecretNotFound, name)
	}
	d.records = append(d.records[:i], d.records[i+1:]...)
	delete(d.index, name)
	for j := i; j < len(d.records); j++ {
		d.index[d.records[j].Name] = j
	}
	return nil
}

// Get decrypts a single named secret.
func (d *Document) Get(name string, key SecretKey) (string, error) {
	i, exists := d.index[name]
	if !exists {
		return "", fmt.Errorf("%w: %q", oerrors.ErrSecretNotFound, name)
	}
	return d.decryptRecord(d.records[i], key)
}

// DecryptAll decrypts every record, in document order. If any single record
// fails the whole operation fails naming that record; no partial set of
// plaintext is ever returned.
func (d *Document) DecryptAll(key SecretKey) ([]Pair, error) {
	pairs := make([]Pair, 0, len(d.records))
	for _, r := range d.records {
		value, err := d.decryptRecord(r, key)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Name: r.Name, Value: value})
	}
	return pairs, nil
}

// decryptRecord opens one record and cross-checks the stored digest against
// the decrypted plaintext, catching documents where the two fields were
// edited independently.
func (d *Document) decryptRecord(r SecretRecord, key SecretKey) (string, error) {
	plaintext, err := Decrypt(d.PublicKey, key, r.Cipher)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt secret %q: %w", r.Name, err)
	}
	digest := HashValue(plaintext)
	if digest != r.Digest {
		return "", fmt.Errorf("secret %q: stored digest %s does not match decrypted value digest %s",
			r.Name, hex.EncodeToString(r.Digest[:]), hex.EncodeToString(digest[:]))
	}
	return string(plaintext), nil
}
