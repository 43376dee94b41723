package mask

import (
	"bytes"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests use sh")
	}
}

func TestRunMasksStdout(t *testing.T) {
	requireUnixShell(t)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("sh", "-c", "echo token=hunter2")
	code, err := Run(cmd, []string{"hunter2"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "token="+Placeholder+"\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunMasksStderrIndependently(t *testing.T) {
	requireUnixShell(t)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("sh", "-c", "echo out=hunter2; echo err=hunter2 1>&2")
	code, err := Run(cmd, []string{"hunter2"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "out="+Placeholder+"\n", stdout.String())
	assert.Equal(t, "err="+Placeholder+"\n", stderr.String())
}

func TestRunPropagatesExitCode(t *testing.T) {
	requireUnixShell(t)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("sh", "-c", "exit 3")
	code, err := Run(cmd, nil, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRunStartFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command("/nonexistent-binary-for-ochre-tests")
	_, err := Run(cmd, nil, &stdout, &stderr)
	assert.Error(t, err)
}
