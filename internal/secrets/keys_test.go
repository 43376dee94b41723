package secrets

import (
	"strings"
	"testing"

	oerrors "github.com/ochre-sh/ochre/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEncoding(t *testing.T) {
	pub, key := mustKeyPair(t)

	assert.Len(t, pub.String(), 2*KeySize)
	assert.Equal(t, strings.ToLower(pub.String()), pub.String())

	parsedPub, err := ParsePublicKey(pub.String())
	require.NoError(t, err)
	assert.Equal(t, pub, parsedPub)

	parsedKey, err := ParseSecretKey(key.Hex())
	require.NoError(t, err)
	assert.Equal(t, key, parsedKey)
}

func TestParseKeyRejectsBadEncodings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not hex", strings.Repeat("zz", KeySize)},
		{"too short", "deadbeef"},
		{"too long", strings.Repeat("ab", KeySize+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePublicKey(tt.input)
			assert.ErrorIs(t, err, oerrors.ErrInvalidKeyEncoding)
			_, err = ParseSecretKey(tt.input)
			assert.ErrorIs(t, err, oerrors.ErrInvalidKeyEncoding)
		})
	}
}

func TestSecretKeyDerivesPublicKey(t *testing.T) {
	pub, key := mustKeyPair(t)
	assert.Equal(t, pub, key.PublicKey())
}

func TestSecretKeyStringDoesNotLeak(t *testing.T) {
	_, key := mustKeyPair(t)
	assert.NotContains(t, key.String(), key.Hex())
}

func TestLoadSecretKey(t *testing.T) {
	pub, key := mustKeyPair(t)

	t.Run("missing", func(t *testing.T) {
		t.Setenv(SecretKeyEnv, "")
		_, err := LoadSecretKey(pub)
		assert.ErrorIs(t, err, oerrors.ErrMissingSecretKey)
		assert.Contains(t, err.Error(), SecretKeyEnv)
	})

	t.Run("bad encoding", func(t *testing.T) {
		t.Setenv(SecretKeyEnv, "not-a-key")
		_, err := LoadSecretKey(pub)
		assert.ErrorIs(t, err, oerrors.ErrInvalidKeyEncoding)
	})

	t.Run("mismatched key", func(t *testing.T) {
		_, otherKey := mustKeyPair(t)
		t.Setenv(SecretKeyEnv, otherKey.Hex())
		_, err := LoadSecretKey(pub)
		assert.ErrorIs(t, err, oerrors.ErrSecretKeyMismatch)
	})

	t.Run("valid", func(t *testing.T) {
		t.Setenv(SecretKeyEnv, key.Hex())
		loaded, err := LoadSecretKey(pub)
		require.NoError(t, err)
		assert.Equal(t, key, loaded)
	})
}
