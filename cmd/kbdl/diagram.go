package main

import (
	"github.com/kbdl/kbdl/driver"
	"github.com/spf13/cobra"
)

var diagramFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "diagram [description file path]",
		Short:   "Generate a keymap-drawer description of every layer",
		Example: `  kbdl diagram sweep.kbdl -o keymap.yaml`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDiagram,
	}
	diagramFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default: output.diagram of the config, or stdout)")
	rootCmd.AddCommand(cmd)
}

func runDiagram(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := *diagramFlags.output
	if out == "" {
		out = configFromContext(ctx).Output.Diagram
	}
	return generate(ctx, args, driver.TargetDiagram, out)
}
