package script

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
)

// Loader implements ports.SequenceLoader over a directory of *.yaml / *.yml scripts.
// Every script is parsed and validated eagerly, so a broken file fails at startup.
type Loader struct {
	sequences map[string]*domain.Sequence
	files     map[string]string
}

// NewDirLoader loads every script found directly under dir.
func NewDirLoader(dir string) (*Loader, error) {
	return NewFSLoader(os.DirFS(dir))
}

// NewFSLoader loads every script found at the root of fsys.
func NewFSLoader(fsys fs.FS) (*Loader, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	l := &Loader{
		sequences: make(map[string]*domain.Sequence),
		files:     make(map[string]string),
	}
	for _, entry := range entries {
		if entry.IsDir() || !isScript(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		seq, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if prev, dup := l.files[seq.Name()]; dup {
			return nil, fmt.Errorf("%s: sequence %q already defined in %s", entry.Name(), seq.Name(), prev)
		}
		l.sequences[seq.Name()] = seq
		l.files[seq.Name()] = entry.Name()
	}
	return l, nil
}

// LoadFile parses a single script file.
func LoadFile(name string) (*domain.Sequence, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

func isScript(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Load returns the named sequence.
func (l *Loader) Load(name string) (*domain.Sequence, error) {
	seq, ok := l.sequences[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSequenceNotFound, name)
	}
	return seq, nil
}

// List returns every sequence name, sorted.
func (l *Loader) List() ([]string, error) {
	names := make([]string, 0, len(l.sequences))
	for name := range l.sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
