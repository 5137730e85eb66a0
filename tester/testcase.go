package tester

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kbdl/kbdl/driver"
)

const expectError = "error"

// TestCase is a description and what compiling it must produce.
//
//	<description>
//	---
//	<source>
//	--- firmware | diagram | format | error
//	<expected output, or a part of the expected error message>
type TestCase struct {
	Description string
	Source      []byte
	// Target is the artifact compared with Expected. It is meaningless when ExpectError is set.
	Target      driver.Target
	ExpectError bool
	Expected    string
}

type testCasePart struct {
	// label follows the delimiter that opens the part.
	label string
	lines []string
}

func (p *testCasePart) text() string {
	return strings.Join(p.lines, "\n")
}

var reDelim = regexp.MustCompile(`^\s*---+\s*([a-z]*)\s*$`)

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}
	if parts[1].label != "" {
		return nil, fmt.Errorf("the delimiter before the source takes no kind: %v", parts[1].label)
	}

	c := &TestCase{
		Description: strings.TrimSpace(parts[0].text()),
		Source:      []byte(parts[1].text()),
		Expected:    strings.TrimRight(parts[2].text(), "\n"),
	}
	switch label := parts[2].label; label {
	case expectError:
		c.ExpectError = true
		c.Expected = strings.TrimSpace(c.Expected)
	case "":
		return nil, fmt.Errorf("the delimiter before the expected output needs a kind: firmware, diagram, format or error")
	default:
		t, ok := driver.ParseTarget(label)
		if !ok {
			return nil, fmt.Errorf("unknown output kind: %v", label)
		}
		c.Target = t
	}
	return c, nil
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	parts := []*testCasePart{{}}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if m := reDelim.FindStringSubmatch(line); m != nil {
			parts = append(parts, &testCasePart{
				label: m[1],
			})
			continue
		}
		p := parts[len(parts)-1]
		p.lines = append(p.lines, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}
