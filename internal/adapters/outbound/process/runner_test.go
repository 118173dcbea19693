package process_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/distkit/internal/adapters/outbound/process"
	"github.com/abdidvp/distkit/internal/domain"
	"github.com/abdidvp/distkit/internal/testutil"
)

func sh(script string) domain.Invocation {
	return domain.Invocation{Path: "/bin/sh", Args: []string{"-c", script}}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	testutil.RequirePOSIX(t)

	res, err := process.New(nil).Run(context.Background(), sh("echo out; echo err >&2"))
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\nerr\n", res.Combined())
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	testutil.RequirePOSIX(t)

	res, err := process.New(nil).Run(context.Background(), sh("echo boom >&2; exit 3"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.Stderr)
}

func TestExecRunner_Env(t *testing.T) {
	testutil.RequirePOSIX(t)

	inv := sh(`printf '%s' "$DISTKIT_PROBE"`)
	inv.Env = []string{"DISTKIT_PROBE=relocated"}

	res, err := process.New(nil).Run(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "relocated", res.Stdout)
}

func TestExecRunner_StartFailure(t *testing.T) {
	_, err := process.New(nil).Run(context.Background(), domain.Invocation{Path: "/definitely/not/here"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting /definitely/not/here")
}

func TestExecRunner_ContextCancel(t *testing.T) {
	testutil.RequirePOSIX(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := process.New(nil).Run(ctx, sh("exec sleep 10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
