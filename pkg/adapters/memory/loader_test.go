package memory_test

import (
	"testing"

	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoader_Contract(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.NewSequence(domain.Meta{Name: "intro"}, domain.Box(true), domain.Seconds(1), domain.Box(false)),
		domain.NewSequence(domain.Meta{Name: "outro"}, domain.Say("Kai", "bye")),
	)
	require.NoError(t, err)

	ports.RunSequenceLoaderContract(t, loader, map[string]int{"intro": 3, "outro": 1})
}

func TestMemoryLoader_Add_Rejects(t *testing.T) {
	loader, err := memory.NewLoader()
	require.NoError(t, err)

	assert.Error(t, loader.Add(nil))
	assert.Error(t, loader.Add(domain.NewSequence(domain.Meta{})))

	require.NoError(t, loader.Add(domain.NewSequence(domain.Meta{Name: "a"})))
	assert.Error(t, loader.Add(domain.NewSequence(domain.Meta{Name: "a"})), "duplicate names must be rejected")
}

func TestRecorder_RecordsInOrder(t *testing.T) {
	r := memory.NewRecorder()
	r.SetVisible(true)
	r.SetSpeaker("Kai")
	r.SetText("now!")

	calls := r.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "SetVisible(true)", calls[0].String())
	assert.Equal(t, "SetSpeaker(Kai)", calls[1].String())
	assert.Equal(t, "SetText(now!)", calls[2].String())

	speaker, text, visible := r.Displayed()
	assert.Equal(t, "Kai", speaker)
	assert.Equal(t, "now!", text)
	assert.True(t, visible)

	r.Reset()
	assert.Empty(t, r.Calls())
}
