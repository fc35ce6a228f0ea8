package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"golang.org/x/term"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the dialogue on Stdout).
func createLogger(debug bool) *slog.Logger {
	return logging.ForDebug(debug)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or fallback when it is not a terminal.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// interruptSignal returns the signal that cancelled ctx, if ctx is a SignalContext.
func interruptSignal(ctx context.Context) os.Signal {
	if sc, ok := ctx.(*SignalContext); ok {
		return sc.Signal()
	}
	return nil
}

func closeSink(logger *slog.Logger, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("failed to close completion sink", "error", err)
	}
}

// handleExecutionError maps a cancelled playback to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

// fanout delivers a completion to every sink and joins their errors.
type fanout []ports.CompletionSink

func (f fanout) SequenceComplete(ctx context.Context, c domain.Completion) error {
	var errs []error
	for _, sink := range f {
		if err := sink.SequenceComplete(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
