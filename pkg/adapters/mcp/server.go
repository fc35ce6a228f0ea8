// Package mcp exposes the sequence library as a Model Context Protocol server,
// so agents can list, inspect, validate and export cutscene scripts as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/script"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Export formats accepted by the export_sequence tool.
const (
	FormatYAML    = "yaml"
	FormatMermaid = "mermaid"
)

// LibraryURI is the resource listing every sequence name.
const LibraryURI = "reel://sequences"

// ListResponse is the output of list_sequences.
type ListResponse struct {
	Sequences []string `json:"sequences" jsonschema_description:"Names of the sequences in the library"`
}

// SequenceView is the output of inspect_sequence.
type SequenceView struct {
	Name       string             `json:"name"`
	Title      string             `json:"title,omitempty"`
	Synopsis   string             `json:"synopsis,omitempty"`
	Steps      int                `json:"steps"`
	Duration   float64            `json:"duration_seconds" jsonschema_description:"Sum of every wait step"`
	BoxVisible bool               `json:"box_visible" jsonschema_description:"Authored initial visibility of the dialogue box"`
	Cast       []domain.Character `json:"cast,omitempty"`
	Timeline   []TimelineView     `json:"timeline"`
}

// TimelineView is one step with its start offset.
type TimelineView struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset_seconds"`
	Kind   string  `json:"kind"`
	Step   string  `json:"step"`
}

// ValidationResponse is the output of validate_script.
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Name     string   `json:"name,omitempty"`
	Steps    int      `json:"steps,omitempty"`
	Duration float64  `json:"duration_seconds,omitempty"`
	Problems []string `json:"problems,omitempty" jsonschema_description:"One entry per problem found in the script"`
}

type nameArgs struct {
	Name string `json:"name"`
}

type scriptArgs struct {
	Script string `json:"script"`
}

// Server wraps a sequence library and exposes it as an MCP server.
type Server struct {
	loader    ports.SequenceLoader
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for tool failures and transport events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server over loader.
func NewServer(loader ports.SequenceLoader, opts ...Option) *Server {
	s := &Server{
		loader: loader,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("reel-mcp", strings.TrimSpace(reel.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on Stdin/Stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Handler returns the SSE transport mounted at /sse and /message.
// baseURL is the externally reachable origin advertised to clients.
func (s *Server) Handler(baseURL string) http.Handler {
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sse.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sse.MessageHandler()))
	return mux
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	bound := ln.Addr().String()
	httpServer := &http.Server{Handler: s.Handler("http://" + bound)}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "addr", bound)
		serverErrors <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop MCP server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_sequences
	s.mcpServer.AddTool(mcp.NewTool("list_sequences",
		mcp.WithDescription("List the cutscenes available in the library."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: inspect_sequence
	s.mcpServer.AddTool(mcp.NewTool("inspect_sequence",
		mcp.WithDescription("Return the cast and the timeline of a cutscene, with the start offset of every step."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Sequence name as returned by list_sequences")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOutputSchema[SequenceView](),
	), mcp.NewStructuredToolHandler(s.handleInspect))

	// TOOL: validate_script
	s.mcpServer.AddTool(mcp.NewTool("validate_script",
		mcp.WithDescription("Check a YAML cutscene script and report every problem found."),
		mcp.WithString("script", mcp.Required(), mcp.Description("The YAML script text")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOutputSchema[ValidationResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: export_sequence
	s.mcpServer.AddTool(mcp.NewTool("export_sequence",
		mcp.WithDescription("Export a cutscene as a YAML script or as a Mermaid gantt chart."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Sequence name")),
		mcp.WithString("format",
			mcp.Enum(FormatYAML, FormatMermaid),
			mcp.DefaultString(FormatYAML),
			mcp.Description("Output format"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handleExport)
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (ListResponse, error) {
	names, err := s.loader.List()
	if err != nil {
		s.logger.ErrorContext(ctx, "MCP list failed", "error", err)
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return ListResponse{Sequences: names}, nil
}

func (s *Server) handleInspect(ctx context.Context, _ mcp.CallToolRequest, args nameArgs) (SequenceView, error) {
	seq, err := s.load(ctx, args.Name)
	if err != nil {
		return SequenceView{}, err
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
			Kind:   string(e.Step.Kind),
			Step:   e.Step.String(),
		})
	}
	return view, nil
}

func (s *Server) handleValidate(_ context.Context, _ mcp.CallToolRequest, args scriptArgs) (ValidationResponse, error) {
	if strings.TrimSpace(args.Script) == "" {
		return ValidationResponse{}, errors.New("script is required")
	}

	seq, err := script.Parse([]byte(args.Script))
	if err != nil {
		problems := validator.ValidationErrors(err)
		if len(problems) == 0 {
			problems = []error{err}
		}
		resp := ValidationResponse{Problems: make([]string, 0, len(problems))}
		for _, p := range problems {
			resp.Problems = append(resp.Problems, p.Error())
		}
		return resp, nil
	}
	return ValidationResponse{
		Valid:    true,
		Name:     seq.Name(),
		Steps:    seq.Len(),
		Duration: seq.Duration().Seconds(),
	}, nil
}

func (s *Server) handleExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	seq, err := s.load(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := request.GetString("format", FormatYAML); format {
	case FormatYAML:
		data, err := script.Marshal(seq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case FormatMermaid:
		return mcp.NewToolResultText(graph.GenerateMermaid(seq, nil)), nil
	default:
		return mcp.NewToolResultErrorf("unknown export format %q (want %s or %s)", format, FormatYAML, FormatMermaid), nil
	}
}

func (s *Server) load(ctx context.Context, name string) (*domain.Sequence, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	seq, err := s.loader.Load(name)
	if err != nil {
		if !errors.Is(err, domain.ErrSequenceNotFound) {
			s.logger.ErrorContext(ctx, "MCP load failed", "sequence", name, "error", err)
		}
		return nil, err
	}
	return seq, nil
}

func (s *Server) registerResources() {
	// EXPOSE: reel://sequences
	s.mcpServer.AddResource(mcp.NewResource(LibraryURI, "Sequence Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.loader.List()
		if err != nil {
			return nil, fmt.Errorf("failed to list sequences: %w", err)
		}
		if names == nil {
			names = []string{}
		}
		data, err := json.Marshal(names)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      LibraryURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
