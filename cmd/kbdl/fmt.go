package main

import (
	"errors"

	"github.com/kbdl/kbdl/driver"
	"github.com/spf13/cobra"
)

var fmtFlags = struct {
	write *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "fmt [description file path]",
		Short:   "Format a keyboard description",
		Example: `  kbdl fmt -w sweep.kbdl`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runFmt,
	}
	fmtFlags.write = cmd.Flags().BoolP("write", "w", false, "write the result to the description file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	var out string
	if *fmtFlags.write {
		if len(args) == 0 {
			return errors.New("-w needs a description file")
		}
		out = args[0]
	}
	return generate(cmd.Context(), args, driver.TargetFormat, out)
}
