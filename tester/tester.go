package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/kbdl/kbdl/driver"
	"github.com/kbdl/kbdl/keymap"
)

type TestResult struct {
	TestCasePath string
	Error        error
	// Diff compares the expected output with the actual one when they differ.
	Diff string
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if r.Diff == "" {
			return msg
		}
		diffLines := strings.Split(strings.TrimRight(r.Diff, "\n"), "\n")
		return fmt.Sprintf("%v\n%v(-expected +actual)\n%v%v", msg, indent2, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

type Tester struct {
	Cases []*TestCaseWithMetadata
	// Options apply to every case, as the options of kbdl.toml do.
	Options []keymap.ResolveOption
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, t.runTest(c))
	}
	return rs
}

func (t *Tester) runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}
	tc := c.TestCase

	out, err := driver.Compile(c.FilePath, tc.Source, tc.Target, t.Options...)
	if tc.ExpectError {
		if err == nil {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("an error was expected but the compilation succeeded"),
			}
		}
		if !strings.Contains(err.Error(), tc.Expected) {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("error mismatch"),
				Diff:         cmp.Diff(tc.Expected, err.Error()),
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	actual := strings.TrimRight(string(out), "\n")
	if actual != tc.Expected {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diff:         cmp.Diff(strings.Split(tc.Expected, "\n"), strings.Split(actual, "\n")),
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
