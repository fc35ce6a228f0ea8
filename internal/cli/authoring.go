package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/script"
)

// ErrInvalidScripts is returned by Validate when at least one script is invalid.
var ErrInvalidScripts = errors.New("invalid scripts")

// Validate parses every path and reports each problem to w.
func Validate(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		seq, err := script.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s\n", path)
			problems := validator.ValidationErrors(err)
			if len(problems) == 0 {
				problems = []error{err}
			}
			for _, p := range problems {
				fmt.Fprintf(w, "    %v\n", p)
			}
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s, %d steps, %s)\n", path, seq.Name(), seq.Len(), seq.Duration())
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidScripts, failed, len(paths))
	}
	return nil
}

// Inspect prints the cast and the timeline of seq with each step's start offset.
func Inspect(w io.Writer, seq *domain.Sequence) error {
	meta := seq.Meta()
	fmt.Fprintf(w, "%s", meta.Name)
	if meta.Title != "" {
		fmt.Fprintf(w, " (%s)", meta.Title)
	}
	fmt.Fprintf(w, "\n%d steps, %s\n", seq.Len(), seq.Duration())

	if len(meta.Cast) > 0 {
		fmt.Fprintln(w, "\nCast:")
		for _, c := range meta.Cast {
			fmt.Fprintf(w, "  %-10s %s\n", c.ID, c.Role)
		}
	}

	fmt.Fprintln(w, "\nTimeline:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range seq.Timeline() {
		fmt.Fprintf(tw, "  %d\t%7.2fs\t%s\n", e.Index, e.Offset.Seconds(), e.Step)
	}
	return tw.Flush()
}

// Export formats for the export command.
const (
	FormatYAML    = "yaml"
	FormatMermaid = "mermaid"
)

// Export writes seq in format to w.
func Export(w io.Writer, seq *domain.Sequence, format string) error {
	switch format {
	case FormatYAML, "":
		data, err := script.Marshal(seq)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(seq, nil))
		return err
	default:
		return fmt.Errorf("unknown export format %q (want %s or %s)", format, FormatYAML, FormatMermaid)
	}
}

// ExportTo writes to path, or to stdout when path is empty or "-".
func ExportTo(path string, seq *domain.Sequence, format string) error {
	if path == "" || path == "-" {
		return Export(os.Stdout, seq, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Export(f, seq, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
