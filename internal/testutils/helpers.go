package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/require"
)

// WriteScript writes body to name inside a fresh temp dir and returns the path.
// It fails the test immediately on error.
func WriteScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644), "Failed to write script")
	return path
}

// Scenario returns the reference rooftop exchange: the box opens, Delilah and
// Sky.ix each speak after a pause, and the box closes 14.5s in.
func Scenario() *domain.Sequence {
	return domain.NewSequence(domain.Meta{Name: "scenario", CompletionMessage: "scenario complete"},
		domain.Box(true),
		domain.Seconds(1.0),
		domain.Say("Delilah", "..."),
		domain.Seconds(7.5),
		domain.Say("Sky.ix", "..."),
		domain.Seconds(6.0),
		domain.Box(false),
	)
}
