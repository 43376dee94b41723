package mask

import (
	"bytes"
	"errors"
	"io"
	"sort"
)

// Placeholder is what masked secrets are replaced with.
const Placeholder = "*****"

// Masker is an io.Writer that scans a byte stream for known secret values and
// replaces every occurrence with a placeholder before forwarding to the
// underlying writer.
//
// Chunk boundaries are not scan boundaries: a secret split across two Write
// calls is still caught. The masker withholds at most maxLen-1 trailing bytes
// between calls, exactly the bytes that could still turn out to be the start
// of a secret. Matching is byte-exact and leftmost-longest: when two secrets
// match at the same position the longer one wins, and a secret that is a
// strict prefix of another is masked on its own whenever the longer secret
// does not complete.
type Masker struct {
	out         io.Writer
	secrets     [][]byte // sorted longest first
	placeholder []byte
	maxLen      int
	buf         []byte
	closed      bool
}

// NewMasker wraps out with a masker for the given secret values. Empty
// values are ignored. With no secrets the masker is a passthrough.
func NewMasker(out io.Writer, secrets []string) *Masker {
	m := &Masker{
		out:         out,
		placeholder: []byte(Placeholder),
	}
	for _, s := range secrets {
		if s == "" {
			continue
		}
		m.secrets = append(m.secrets, []byte(s))
		if len(s) > m.maxLen {
			m.maxLen = len(s)
		}
	}
	sort.SliceStable(m.secrets, func(i, j int) bool {
		return len(m.secrets[i]) > len(m.secrets[j])
	})
	return m
}

// Write buffers p, masks everything that is decidable, and forwards it.
// It always reports len(p) consumed on success.
func (m *Masker) Write(p []byte) (int, error) {
	if m.closed {
		return 0, errors.New("masker is closed")
	}
	m.buf = append(m.buf, p...)
	if err := m.scan(false); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close performs the final scan and flushes the remaining buffer. Bytes held
// back for a potential match are emitted only once the match is ruled out, so
// the flushed tail can never contain a complete secret.
func (m *Masker) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.scan(true)
}

// Discard drops any withheld bytes without emitting them. Used on teardown
// (child killed, copy failed) where flushing a partially-scanned buffer is
// not worth any risk of leaking.
func (m *Masker) Discard() {
	m.closed = true
	m.buf = nil
}

// scan walks the buffer replacing completed matches. When final is false it
// stops at the first position that could still grow into a match and keeps
// the rest buffered; when final is true every undecided position is resolved
// with the bytes at hand.
func (m *Masker) scan(final bool) error {
	if m.maxLen == 0 {
		return m.emit(m.buf, len(m.buf))
	}

	out := make([]byte, 0, len(m.buf))
	lit := 0 // start of pending literal bytes
	cut := len(m.buf)

	i := 0
	for i < len(m.buf) {
		match, undecided := m.matchAt(i)
		if undecided && !final {
			cut = i
			break
		}
		if match > 0 {
			out = append(out, m.buf[lit:i]...)
			out = append(out, m.placeholder...)
			i += match
			lit = i
			continue
		}
		i++
	}
	if lit < cut {
		out = append(out, m.buf[lit:cut]...)
	}
	return m.emit(out, cut)
}

// matchAt reports the length of the longest secret fully matching at i, and
// whether some longer secret still could match if more bytes arrived.
func (m *Masker) matchAt(i int) (match int, undecided bool) {
	avail := m.buf[i:]
	for _, s := range m.secrets {
		if len(s) <= len(avail) {
			if match == 0 && bytes.Equal(avail[:len(s)], s) {
				match = len(s)
			}
		} else if bytes.HasPrefix(s, avail) {
			// The whole remaining buffer is a proper prefix of this secret; a
			// longer match than anything decidable now may still complete.
			undecided = true
		}
	}
	return match, undecided
}

// emit writes out and drops the first cut bytes of the buffer.
func (m *Masker) emit(out []byte, cut int) error {
	m.buf = append(m.buf[:0], m.buf[cut:]...)
	if len(out) == 0 {
		return nil
	}
	_, err := m.out.Write(out)
	return err
}
