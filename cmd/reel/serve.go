package main

import (
	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scene library over HTTP",
	Long: `Starts the HTTP control surface: GET /sequences, GET /sequences/{name},
GET /sequences/{name}/play (Server-Sent Events), GET /events and GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{
			ScriptsDir:   cfg.ScriptsDir,
			Addr:         cfg.HTTPAddr,
			MetricsAddr:  cfg.MetricsAddr,
			Speed:        cfg.Speed,
			Debug:        cfg.Debug,
			RedisAddr:    cfg.RedisAddr,
			RedisPrefix:  cfg.RedisPrefix,
			RedisHistory: cfg.RedisHistory,
			Ready: func(addr, _ string) {
				cmd.Printf("Serving scenes on http://%s\n", addr)
			},
		}
		if cmd.Flags().Changed("addr") {
			opts.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("metrics-addr") {
			opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Serve(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1:8680", "Listen address ($REEL_HTTP_ADDR)")
	serveCmd.Flags().String("metrics-addr", "", "Separate listen address for /metrics ($REEL_METRICS_ADDR)")
}
