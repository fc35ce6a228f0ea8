package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the reel banner followed by the title of the scene about to play.
func PrintBanner(w io.Writer, title string) {
	p := termenv.NewOutput(w).Profile
	lines := []struct{ text, color string }{
		{"  _ __ ___  ___| |", "#818cf8"},
		{" | '__/ _ \\/ _ \\ |", "#c084fc"},
		{" | | |  __/  __/ |", "#e879f9"},
		{" |_|  \\___|\\___|_|", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	if title != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.String("  "+title).Bold())
	}
	fmt.Fprintln(w)
}
