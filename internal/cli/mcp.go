package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/reel/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions contains all the configuration for the mcp command.
type MCPOptions struct {
	ScriptsDir string
	Transport  string
	// Addr is the SSE listen address.
	Addr  string
	Debug bool
}

// ServeMCP exposes the library as an MCP server. Logs never go to Stdout,
// which carries the JSON-RPC stream on the stdio transport.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger := createLogger(opts.Debug)

	lib, err := OpenLibrary(opts.ScriptsDir)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(lib, mcp.WithLogger(logger))

	switch opts.Transport {
	case TransportStdio, "":
		logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		err := srv.ServeSSE(ctx, opts.Addr)
		logger.Info("MCP server stopped")
		return err
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", opts.Transport, TransportStdio, TransportSSE)
	}
}
