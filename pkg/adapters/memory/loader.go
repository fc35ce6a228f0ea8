package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/reel/pkg/domain"
)

// Loader implements ports.SequenceLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu        sync.RWMutex
	sequences map[string]*domain.Sequence
}

// NewLoader creates a loader holding the given sequences, keyed by name.
func NewLoader(seqs ...*domain.Sequence) (*Loader, error) {
	l := &Loader{sequences: make(map[string]*domain.Sequence)}
	for _, s := range seqs {
		if err := l.Add(s); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers a sequence. Sequences are immutable, so they are shared, not copied.
func (l *Loader) Add(seq *domain.Sequence) error {
	if seq == nil || seq.Name() == "" {
		return fmt.Errorf("sequence missing name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.sequences[seq.Name()]; exists {
		return fmt.Errorf("duplicate sequence %q", seq.Name())
	}
	l.sequences[seq.Name()] = seq
	return nil
}

// Load returns the named sequence.
func (l *Loader) Load(name string) (*domain.Sequence, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seq, ok := l.sequences[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSequenceNotFound, name)
	}
	return seq, nil
}

// List returns all sequence names.
func (l *Loader) List() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.sequences))
	for k := range l.sequences {
		names = append(names, k)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}
