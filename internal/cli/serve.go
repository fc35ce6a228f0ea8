package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	reelhttp "github.com/aretw0/reel/pkg/adapters/http"
	"github.com/aretw0/reel/pkg/adapters/redis"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// ServeOptions contains all the configuration for the serve command.
type ServeOptions struct {
	ScriptsDir string
	Addr       string
	// MetricsAddr serves /metrics on a separate listener; empty mounts it on Addr.
	MetricsAddr string
	Speed       float64
	Debug       bool

	RedisAddr    string
	RedisPrefix  string
	RedisHistory int64

	// Ready, when set, receives the bound listener addresses once serving.
	Ready func(addr, metricsAddr string)
}

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP control surface until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.Debug)

	lib, err := OpenLibrary(opts.ScriptsDir)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	serverOpts := []reelhttp.Option{
		reelhttp.WithLogger(logger),
		reelhttp.WithLifecycleHooks(metrics.Hooks()),
	}
	if opts.Speed > 0 && opts.Speed != 1 {
		serverOpts = append(serverOpts, reelhttp.WithClock(scaledRealClock(opts.Speed)))
	}
	if opts.RedisAddr != "" {
		rs := redis.New(opts.RedisAddr,
			redis.WithPrefix(opts.RedisPrefix),
			redis.WithHistory(opts.RedisHistory),
		)
		defer closeSink(logger, rs)
		serverOpts = append(serverOpts, reelhttp.WithCompletionSink(rs))
	}
	if opts.MetricsAddr == "" {
		serverOpts = append(serverOpts, reelhttp.WithMetrics(metricsHandler))
	}

	servers := []*http.Server{{Handler: reelhttp.NewHandler(lib, serverOpts...)}}
	addrs := []string{opts.Addr}
	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		servers = append(servers, &http.Server{Handler: mux})
		addrs = append(addrs, opts.MetricsAddr)
	}

	listeners := make([]net.Listener, 0, len(servers))
	for _, addr := range addrs {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		listeners = append(listeners, ln)
	}

	bound := make([]string, 2)
	for i, ln := range listeners {
		bound[i] = ln.Addr().String()
	}
	logger.Info("serving sequences", "addr", bound[0], "metrics_addr", bound[1])
	if opts.Ready != nil {
		opts.Ready(bound[0], bound[1])
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		srv, ln := srv, listeners[i]
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(logger, servers)
	})
	return g.Wait()
}

func shutdown(logger *slog.Logger, servers []*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			errs = append(errs, srv.Close())
		}
	}
	return errors.Join(errs...)
}
