// Package scenes embeds the cutscenes that ship with reel.
package scenes

import (
	"embed"

	"github.com/aretw0/reel/pkg/script"
)

//go:embed *.yaml
var FS embed.FS

// Library parses every embedded cutscene.
func Library() (*script.Loader, error) {
	return script.NewFSLoader(FS)
}
