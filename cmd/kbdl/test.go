package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kbdl/kbdl/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Run golden tests against the compiler",
		Example: `  kbdl test testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts, err := resolveOptions(ctx)
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("cannot run test")
		}
	}
	loggerFromContext(ctx).Debug("test cases found", "path", args[0], "cases", len(cs))

	t := &tester.Tester{
		Cases:   cs,
		Options: opts,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		printTestResult(cmd.OutOrStdout(), r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("test failed")
	}
	return nil
}
