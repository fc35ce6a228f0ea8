package ports

import "github.com/aretw0/reel/pkg/domain"

// SequenceLoader resolves authored sequences by name.
type SequenceLoader interface {
	// Load returns the named sequence.
	// Returns domain.ErrSequenceNotFound if the name is unknown.
	Load(name string) (*domain.Sequence, error)

	// List returns the available sequence names in a deterministic order.
	List() ([]string, error)
}
