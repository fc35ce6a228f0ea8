package main

import (
	"fmt"
	"os"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Play a cutscene in the terminal",
	Long: `Plays a scene from the library (or a script file given with --file) in the
terminal, honouring every authored pause. Ctrl+C stops the playback.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		instant, _ := cmd.Flags().GetBool("instant")
		quiet, _ := cmd.Flags().GetBool("quiet")
		markdown, _ := cmd.Flags().GetBool("markdown")

		speed := cfg.Speed
		if cmd.Flags().Changed("speed") {
			speed, _ = cmd.Flags().GetFloat64("speed")
		}
		if speed <= 0 {
			return fmt.Errorf("--speed must be positive, got %v", speed)
		}

		opts := cli.PlayOptions{
			File:         file,
			ScriptsDir:   cfg.ScriptsDir,
			Speed:        speed,
			Instant:      instant,
			Debug:        cfg.Debug,
			Quiet:        quiet,
			Markdown:     markdown,
			RedisAddr:    cfg.RedisAddr,
			RedisPrefix:  cfg.RedisPrefix,
			RedisHistory: cfg.RedisHistory,
			Out:          os.Stdout,
		}
		if len(args) > 0 {
			opts.Scene = args[0]
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Play(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("file", "f", "", "Play a script file instead of a library scene")
	playCmd.Flags().Float64("speed", 1, "Playback speed multiplier ($REEL_SPEED)")
	playCmd.Flags().Bool("instant", false, "Skip every wait (dry run)")
	playCmd.Flags().BoolP("quiet", "q", false, "Only print dialogue")
	playCmd.Flags().Bool("markdown", true, "Render dialogue text as markdown")
}
