// Package http exposes a sequence library over HTTP: listing, inspection and
// playback streamed to the client as Server-Sent Events.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/aretw0/reel/pkg/clock"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Server serves sequences from a loader. Every play request gets its own
// sequencer whose presenter is the response stream.
type Server struct {
	loader  ports.SequenceLoader
	clock   ports.Clock
	sink    ports.CompletionSink
	hooks   domain.LifecycleHooks
	metrics http.Handler
	logger  *slog.Logger
	streams *StreamManager
}

// Option configures the Server.
type Option func(*Server)

// WithClock sets the clock for streamed playbacks. Defaults to clock.Real.
func WithClock(c ports.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithCompletionSink forwards every completion to sink after it is streamed.
func WithCompletionSink(sink ports.CompletionSink) Option {
	return func(s *Server) {
		s.sink = sink
	}
}

// WithLifecycleHooks attaches hooks to every playback.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithMetrics mounts h (typically promhttp.Handler) on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server on loader.
func NewServer(loader ports.SequenceLoader, opts ...Option) *Server {
	s := &Server{
		loader: loader,
		clock:  clock.Real{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Streams returns the completion fan-out used by GET /events.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/events", s.SubscribeEvents)
	r.Route("/sequences", func(r chi.Router) {
		r.Get("/", s.ListSequences)
		r.Get("/{name}", s.InspectSequence)
		r.Get("/{name}/timeline.mmd", s.SequenceMermaid)
		r.Get("/{name}/play", s.PlaySequence)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return enableCORS(r)
}

// NewHandler is shorthand for NewServer(loader, opts...).Handler().
func NewHandler(loader ports.SequenceLoader, opts ...Option) http.Handler {
	return NewServer(loader, opts...).Handler()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListSequences handles GET /sequences.
func (s *Server) ListSequences(w http.ResponseWriter, r *http.Request) {
	names, err := s.loader.List()
	if err != nil {
		s.logger.Error("list sequences failed", "error", err)
		http.Error(w, "failed to list sequences", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, names)
}

// SequenceView is the JSON shape of GET /sequences/{name}.
type SequenceView struct {
	Name       string             `json:"name"`
	Title      string             `json:"title,omitempty"`
	Synopsis   string             `json:"synopsis,omitempty"`
	Steps      int                `json:"steps"`
	Duration   float64            `json:"duration_seconds"`
	BoxVisible bool               `json:"box_visible"`
	Cast       []domain.Character `json:"cast,omitempty"`
	Timeline   []TimelineView     `json:"timeline"`
}

// TimelineView is one step with its start offset.
type TimelineView struct {
	Index  int             `json:"index"`
	Offset float64         `json:"offset_seconds"`
	Kind   domain.StepKind `json:"kind"`
	Step   string          `json:"step"`
}

// InspectSequence handles GET /sequences/{name}.
func (s *Server) InspectSequence(w http.ResponseWriter, r *http.Request) {
	seq, ok := s.load(w, r)
	if !ok {
		return
	}
	meta := seq.Meta()
	view := SequenceView{
		Name:       meta.Name,
		Title:      meta.Title,
		Synopsis:   meta.Synopsis,
		Steps:      seq.Len(),
		Duration:   seq.Duration().Seconds(),
		BoxVisible: meta.BoxVisible,
		Cast:       meta.Cast,
		Timeline:   make([]TimelineView, 0, seq.Len()),
	}
	for _, e := range seq.Timeline() {
		view.Timeline = append(view.Timeline, TimelineView{
			Index:  e.Index,
			Offset: e.Offset.Seconds(),
			Kind:   e.Step.Kind,
			Step:   e.Step.String(),
		})
	}
	s.writeJSON(w, view)
}

// SequenceMermaid handles GET /sequences/{name}/timeline.mmd.
func (s *Server) SequenceMermaid(w http.ResponseWriter, r *http.Request) {
	seq, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(seq, nil)))
}

// PlaySequence handles GET /sequences/{name}/play?speed=N. Presenter calls are
// streamed as "speaker", "text", "visible" and "voice" events; the stream ends
// with "complete" (the completion as JSON) or "cancelled".
func (s *Server) PlaySequence(w http.ResponseWriter, r *http.Request) {
	seq, ok := s.load(w, r)
	if !ok {
		return
	}

	clk := s.clock
	if raw := r.URL.Query().Get("speed"); raw != "" {
		speed, err := strconv.ParseFloat(raw, 64)
		if err != nil || speed <= 0 {
			http.Error(w, "speed must be a positive number", http.StatusBadRequest)
			return
		}
		clk = clock.Scaled{Base: clk, Speed: speed}
	}

	stream, ok := newSSEWriter(w)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	presenter := &streamPresenter{out: stream}
	sequencer, err := reel.New(
		reel.WithPresenter(presenter),
		reel.WithVoice(presenter),
		reel.WithClock(clk),
		reel.WithLifecycleHooks(s.hooks),
		reel.WithLogger(s.logger),
		reel.WithCompletionSink(ports.CompletionFunc(func(ctx context.Context, c domain.Completion) error {
			data, err := json.Marshal(c)
			if err != nil {
				return err
			}
			stream.Event("complete", string(data))
			s.streams.Broadcast(c.Sequence, string(data))
			if s.sink != nil {
				return s.sink.SequenceComplete(ctx, c)
			}
			return nil
		})),
	)
	if err != nil {
		s.logger.Error("sequencer setup failed", "error", err)
		return
	}

	s.logger.Info("streaming playback", "sequence", seq.Name(), "remote", r.RemoteAddr)
	state, err := sequencer.Run(r.Context(), seq)
	if err != nil {
		s.logger.Info("playback stream closed early", "sequence", seq.Name(), "index", state.Index, "error", err)
		stream.Event("cancelled", strconv.Itoa(state.Index))
	}
}

// SubscribeEvents handles GET /events?sequence=name (SSE). Each completed
// playback is sent as a "complete" event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	stream, ok := newSSEWriter(w)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ch, cancel := s.streams.Subscribe(r.URL.Query().Get("sequence"))
	defer cancel()

	stream.Event("ping", "connected")
	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			stream.Event("complete", msg)
		}
	}
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.Sequence, bool) {
	name := chi.URLParam(r, "name")
	seq, err := s.loader.Load(name)
	if err != nil {
		if errors.Is(err, domain.ErrSequenceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return nil, false
		}
		s.logger.Error("load sequence failed", "sequence", name, "error", err)
		http.Error(w, "failed to load sequence", http.StatusInternalServerError)
		return nil, false
	}
	return seq, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// streamPresenter forwards presenter and voice calls as SSE events.
type streamPresenter struct {
	out *sseWriter
}

func (p *streamPresenter) SetSpeaker(name string) { p.out.Event("speaker", name) }
func (p *streamPresenter) SetText(body string)    { p.out.Event("text", body) }
func (p *streamPresenter) SetVisible(visible bool) {
	p.out.Event("visible", strconv.FormatBool(visible))
}

func (p *streamPresenter) Play(_ context.Context, speaker, voice string) {
	p.out.Event("voice", speaker+"/"+voice)
}
