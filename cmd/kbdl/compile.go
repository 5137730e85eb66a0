package main

import (
	"github.com/kbdl/kbdl/driver"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile [description file path]",
		Short:   "Compile a keyboard description into keyberon layers",
		Example: `  kbdl compile sweep.kbdl -o src/layout.rs`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default: output.firmware of the config, or stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := *compileFlags.output
	if out == "" {
		out = configFromContext(ctx).Output.Firmware
	}
	return generate(ctx, args, driver.TargetFirmware, out)
}
