package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellRunnerSuccess(t *testing.T) {
	r := NewShellRunner()
	res, err := r.Run(context.Background(), Custom("echo hello"), 4096)
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "hello")
	assert.False(t, res.TimedOut)
}

func TestShellRunnerNonZeroExit(t *testing.T) {
	r := NewShellRunner()
	res, err := r.Run(context.Background(), Custom("exit 7"), 4096)
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
}

func TestShellRunnerTimeout(t *testing.T) {
	r := NewShellRunner()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := r.Run(ctx, Custom("sleep 5"), 4096)
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, SpawnFailureExitCode, res.ExitCode)
}

func TestShellRunnerCapsOutput(t *testing.T) {
	r := NewShellRunner()
	res, err := r.Run(context.Background(), Custom("yes x | head -c 1000"), 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Output), 100)
	assert.True(t, res.Truncated)
}

func TestShellRunnerUnknownProbe(t *testing.T) {
	r := NewShellRunner()
	_, err := r.Run(context.Background(), ID{Name: "bogus"}, 4096)
	require.Error(t, err)
}
