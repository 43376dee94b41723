package mask

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Run starts cmd with its stdout and stderr piped through maskers and waits
// for it to exit. Each stream is masked and forwarded independently, in its
// own arrival order; the two streams are never merged or reordered. Returns
// the child's exit code.
//
// The caller is expected to have set cmd.Env (including the decrypted
// secrets) and cmd.Stdin before calling.
func Run(cmd *exec.Cmd, secrets []string, stdout, stderr io.Writer) (int, error) {
	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}

	var wg sync.WaitGroup
	copyErrs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		copyErrs[0] = maskStream(outPipe, stdout, secrets)
	}()
	go func() {
		defer wg.Done()
		copyErrs[1] = maskStream(errPipe, stderr, secrets)
	}()
	wg.Wait()

	err = cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to wait for %s: %w", cmd.Path, err)
	}
	for _, copyErr := range copyErrs {
		if copyErr != nil {
			return -1, copyErr
		}
	}
	return 0, nil
}

// maskStream copies r to w through a masker. On a copy failure the withheld
// tail is discarded rather than flushed: a torn-down stream never emits bytes
// that were being held as a potential secret match.
func maskStream(r io.Reader, w io.Writer, secrets []string) error {
	m := NewMasker(w, secrets)
	if _, err := io.Copy(m, r); err != nil {
		m.Discard()
		return fmt.Errorf("failed to mask output stream: %w", err)
	}
	return m.Close()
}
