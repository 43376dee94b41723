package mask

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskAll writes the chunks through a masker and returns everything emitted,
// including the final flush.
func maskAll(t *testing.T, secrets []string, chunks ...string) string {
	t.Helper()
	var out bytes.Buffer
	m := NewMasker(&out, secrets)
	for _, chunk := range chunks {
		n, err := m.Write([]byte(chunk))
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}
	require.NoError(t, m.Close())
	return out.String()
}

func TestMaskSingleChunk(t *testing.T) {
	got := maskAll(t, []string{"abcdef"}, "xx abcdef yy")
	assert.Equal(t, "xx ***** yy", got)
}

func TestMaskAcrossChunkBoundary(t *testing.T) {
	// The secret straddles the two chunks; the boundary must not be trusted
	// as a scan boundary.
	got := maskAll(t, []string{"abcdef"}, "xx ab", "cdef yy")
	assert.Equal(t, "xx ***** yy", got)
	assert.NotContains(t, got, "abcdef")
}

func TestMaskByteAtATime(t *testing.T) {
	input := "start abcdef middle abcdef end"
	chunks := make([]string, 0, len(input))
	for i := 0; i < len(input); i++ {
		chunks = append(chunks, input[i:i+1])
	}
	got := maskAll(t, []string{"abcdef"}, chunks...)
	assert.Equal(t, "start ***** middle ***** end", got)
}

func TestMaskMultipleSecrets(t *testing.T) {
	got := maskAll(t, []string{"hunter2", "s3cr3t"}, "pass=hunter2 token=s3cr3t")
	assert.Equal(t, "pass=***** token=*****", got)
}

func TestMaskAdjacentOccurrences(t *testing.T) {
	got := maskAll(t, []string{"abc"}, "abcabcabc")
	assert.Equal(t, strings.Repeat(Placeholder, 3), got)
}

func TestOnlyConfiguredValuesAreMasked(t *testing.T) {
	// "abc" is configured; "abcdef" is not a secret, so only the configured
	// substring is replaced and the rest of the text is left alone.
	got := maskAll(t, []string{"abc"}, "xxabcdefyy")
	assert.Equal(t, "xx*****defyy", got)
}

func TestLeftmostLongestWins(t *testing.T) {
	// Both secrets match at the same position; the longer one is replaced as
	// a single unit.
	got := maskAll(t, []string{"abc", "abcdef"}, "say abcdef now")
	assert.Equal(t, "say ***** now", got)
}

func TestPrefixSecretMaskedWhenLongerDoesNotComplete(t *testing.T) {
	got := maskAll(t, []string{"abc", "abcdef"}, "say abcX now")
	assert.Equal(t, "say *****X now", got)
}

func TestPrefixSecretAcrossBoundary(t *testing.T) {
	// After the first chunk "abc" has fully matched, but "abcdef" might still
	// complete; the decision must wait for the next chunk.
	got := maskAll(t, []string{"abc", "abcdef"}, "say abc", "def now")
	assert.Equal(t, "say ***** now", got)

	got = maskAll(t, []string{"abc", "abcdef"}, "say abc", "X now")
	assert.Equal(t, "say *****X now", got)
}

func TestNoSecretsIsPassthrough(t *testing.T) {
	got := maskAll(t, nil, "anything ", "at all")
	assert.Equal(t, "anything at all", got)
}

func TestEmptySecretIgnored(t *testing.T) {
	got := maskAll(t, []string{"", "abc"}, "xabcx")
	assert.Equal(t, "x*****x", got)
}

func TestCloseFlushesUndecidedTailWithoutLeaking(t *testing.T) {
	var out bytes.Buffer
	m := NewMasker(&out, []string{"abcdef"})
	_, err := m.Write([]byte("xx ab"))
	require.NoError(t, err)

	// Only the decided prefix has been emitted so far.
	assert.Equal(t, "xx ", out.String())

	require.NoError(t, m.Close())
	// The tail can be emitted at EOF: it is provably not a complete secret.
	assert.Equal(t, "xx ab", out.String())
	assert.NotContains(t, out.String(), "abcdef")
}

func TestDiscardDropsWithheldBytes(t *testing.T) {
	var out bytes.Buffer
	m := NewMasker(&out, []string{"abcdef"})
	_, err := m.Write([]byte("xx abcde"))
	require.NoError(t, err)

	m.Discard()
	assert.Equal(t, "xx ", out.String())

	// A closed masker refuses further writes.
	_, err = m.Write([]byte("f leaked"))
	assert.Error(t, err)
}

func TestWithheldBufferIsBounded(t *testing.T) {
	secret := strings.Repeat("a", 16) + "b"
	var out bytes.Buffer
	m := NewMasker(&out, []string{secret})

	// A long run of 'a' keeps looking like the start of the secret; the
	// masker may only withhold up to len(secret)-1 bytes of it.
	_, err := m.Write([]byte(strings.Repeat("a", 1000)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out.Len(), 1000-len(secret)+1)

	require.NoError(t, m.Close())
	assert.Equal(t, strings.Repeat("a", 1000), out.String())
}
