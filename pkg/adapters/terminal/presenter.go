// Package terminal provides a Presenter that writes dialogue to a text stream.
package terminal

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// palette is cycled per speaker so each character keeps one color for a whole scene.
var palette = []string{"#818cf8", "#f472b6", "#34d399", "#fbbf24", "#60a5fa", "#fb7185"}

// ContentRenderer turns a dialogue body into display text (e.g. markdown to ANSI).
type ContentRenderer func(body string) (string, error)

// Presenter writes dialogue lines to an io.Writer, styling speaker names with termenv.
// It implements ports.Presenter and ports.VoiceCue.
type Presenter struct {
	mu      sync.Mutex
	out     io.Writer
	profile termenv.Profile
	render  ContentRenderer
	logger  *slog.Logger

	speaker string
	visible bool
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithProfile forces a color profile. Defaults to the profile detected for the writer.
func WithProfile(p termenv.Profile) Option {
	return func(t *Presenter) {
		t.profile = p
	}
}

// WithRenderer sets the renderer applied to every dialogue body.
func WithRenderer(r ContentRenderer) Option {
	return func(t *Presenter) {
		t.render = r
	}
}

// WithLogger sets the logger used to report renderer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Presenter) {
		t.logger = logger
	}
}

// New creates a Presenter on out.
func New(out io.Writer, opts ...Option) *Presenter {
	t := &Presenter{
		out:     out,
		profile: termenv.NewOutput(out).Profile,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Presenter) SetSpeaker(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speaker = name
}

func (t *Presenter) SetText(body string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.render != nil {
		rendered, err := t.render(body)
		if err != nil {
			t.logger.Warn("dialogue render failed, printing raw text", "speaker", t.speaker, "error", err)
		} else {
			body = strings.Trim(rendered, "\n")
		}
	}

	name := t.profile.String(t.speaker).Bold().Foreground(t.profile.Color(speakerColor(t.speaker)))
	if !t.visible {
		// The box is hidden; the line is still delivered so nothing is lost in logs.
		name = name.Faint()
	}
	fmt.Fprintf(t.out, "%s: %s\n", name, body)
}

func (t *Presenter) SetVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible == visible {
		return
	}
	t.visible = visible
	marker := "── dialogue closed ──"
	if visible {
		marker = "── dialogue ──"
	}
	fmt.Fprintln(t.out, t.profile.String(marker).Faint())
}

// Play prints a voice line marker in place of audio.
func (t *Presenter) Play(_ context.Context, speaker, voice string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.profile.String(fmt.Sprintf("  ♪ %s (%s)", voice, speaker)).Italic().Faint())
}

func speakerColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return palette[h.Sum32()%uint32(len(palette))]
}
