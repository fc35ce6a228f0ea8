package cli

import (
	"fmt"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/script"
	"github.com/aretw0/reel/scenes"
)

// DefaultScene is played when neither a file nor a scene name is given.
const DefaultScene = "into-the-void"

// OpenLibrary returns the scripts in dir, or the built-in scenes when dir is empty.
func OpenLibrary(dir string) (ports.SequenceLoader, error) {
	if dir == "" {
		lib, err := scenes.Library()
		if err != nil {
			return nil, err
		}
		return lib, nil
	}
	loader, err := script.NewDirLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open scripts in %s: %w", dir, err)
	}
	return loader, nil
}

// ResolveSequence loads file when set, otherwise scene from the library in dir.
func ResolveSequence(file, dir, scene string) (*domain.Sequence, error) {
	if file != "" {
		return script.LoadFile(file)
	}
	if scene == "" {
		scene = DefaultScene
	}
	lib, err := OpenLibrary(dir)
	if err != nil {
		return nil, err
	}
	return lib.Load(scene)
}
