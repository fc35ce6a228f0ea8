package ports

import (
	"sort"
	"testing"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSequenceLoaderContract runs a suite of tests to verify that a SequenceLoader
// implementation adheres to the defined interface contract.
// want maps every sequence the loader holds to its expected step count.
func RunSequenceLoaderContract(t *testing.T, loader SequenceLoader, want map[string]int) {
	t.Helper()

	t.Run("List", func(t *testing.T) {
		names, err := loader.List()
		require.NoError(t, err)
		assert.Len(t, names, len(want))
		assert.True(t, sort.StringsAreSorted(names), "List must be deterministic (sorted)")
		for name := range want {
			assert.Contains(t, names, name)
		}
	})

	t.Run("Load", func(t *testing.T) {
		for name, steps := range want {
			seq, err := loader.Load(name)
			require.NoError(t, err, "Load(%q)", name)
			assert.Equal(t, name, seq.Name())
			assert.Equal(t, steps, seq.Len())
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := loader.Load("non-existent-sequence")
		assert.ErrorIs(t, err, domain.ErrSequenceNotFound)
	})
}
