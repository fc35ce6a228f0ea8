package main

import (
	"fmt"
	"os"

	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [scene]",
	Short: "Print the cast and timeline of a scene",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		seq, err := cli.ResolveSequence(file, cfg.ScriptsDir, firstArg(args))
		if err != nil {
			return err
		}
		return cli.Inspect(os.Stdout, seq)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scenes in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := cli.OpenLibrary(cfg.ScriptsDir)
		if err != nil {
			return err
		}
		names, err := lib.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func init() {
	rootCmd.AddCommand(inspectCmd, listCmd)
	inspectCmd.Flags().StringP("file", "f", "", "Inspect a script file instead of a library scene")
}
