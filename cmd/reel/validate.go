package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check scripts for authoring errors",
	Long: `Parses each script and reports negative waits, missing speakers, speakers
outside the cast and unknown cue kinds. Without arguments every script in --dir is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			if cfg.ScriptsDir == "" {
				return fmt.Errorf("nothing to validate: pass files or --dir")
			}
			for _, pattern := range []string{"*.yaml", "*.yml"} {
				matches, err := filepath.Glob(filepath.Join(cfg.ScriptsDir, pattern))
				if err != nil {
					return err
				}
				paths = append(paths, matches...)
			}
		}
		if err := cli.Validate(os.Stdout, paths); err != nil {
			return err
		}
		fmt.Println("All scripts are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
