package main

import (
	"fmt"
	"os"

	"github.com/aretw0/reel/internal/config"
	"github.com/spf13/cobra"
)

// cfg holds the REEL_* environment defaults; flags override them.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "reel plays scripted cutscenes",
	Long: `reel is a cutscene sequencer: it plays timed dialogue scripts step by step,
in the terminal or streamed over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		flags := cmd.Flags()
		if flags.Changed("dir") {
			cfg.ScriptsDir, _ = flags.GetString("dir")
		}
		if flags.Changed("debug") {
			cfg.Debug, _ = flags.GetBool("debug")
		}
		if flags.Changed("redis-addr") {
			cfg.RedisAddr, _ = flags.GetString("redis-addr")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory of *.yaml scripts (default: built-in scenes, $REEL_SCRIPTS_DIR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr ($REEL_DEBUG)")
	rootCmd.PersistentFlags().String("redis-addr", "", "Publish completions to this Redis server ($REEL_REDIS_ADDR)")
}
