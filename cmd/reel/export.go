package main

import (
	"github.com/aretw0/reel/internal/cli"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [scene]",
	Short: "Export a scene as a YAML script or a Mermaid timeline",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		seq, err := cli.ResolveSequence(file, cfg.ScriptsDir, firstArg(args))
		if err != nil {
			return err
		}
		return cli.ExportTo(output, seq, format)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("file", "f", "", "Export a script file instead of a library scene")
	exportCmd.Flags().String("format", cli.FormatYAML, "Output format: yaml or mermaid")
	exportCmd.Flags().StringP("output", "o", "-", "Output file (- for stdout)")
}
