package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders dialogue markdown with glamour.
// With tty unset it uses the "notty" style so piped output stays free of escapes.
func NewRenderer(tty bool, width int) (func(string) (string, error), error) {
	style := glamour.WithAutoStyle()
	if !tty {
		style = glamour.WithStandardStyle("notty")
	}
	opts := []glamour.TermRendererOption{style}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
