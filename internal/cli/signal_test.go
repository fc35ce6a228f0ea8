//go:build unix

package cli

import (
	"bytes"
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/aretw0/reel/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interrupt(t *testing.T) *SignalContext {
	t.Helper()
	ctx := NewSignalContext(context.Background())
	t.Cleanup(ctx.Cancel)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGINT")
	}
	return ctx
}

func TestSignalContext_CapturesSignal(t *testing.T) {
	ctx := interrupt(t)
	assert.Equal(t, os.Interrupt, ctx.Signal())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := NewSignalContext(parent)
	defer ctx.Cancel()

	cancel()
	<-ctx.Done()
	assert.Nil(t, ctx.Signal())
}

func TestPlay_InterruptedBySignal(t *testing.T) {
	ctx := interrupt(t)

	var out bytes.Buffer
	err := Play(ctx, PlayOptions{File: testutils.WriteScript(t, "rooftop.yaml", rooftop), Instant: true, Out: &out})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), ">>> Interrupted (interrupt) at step 0/6.")
}
