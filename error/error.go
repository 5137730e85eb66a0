package error

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kbdl/kbdl/source"
)

// Label points at a secondary location that explains an error.
type Label struct {
	Span    source.Span
	Message string
}

func NewLabel(span source.Span, message string) *Label {
	return &Label{
		Span:    span,
		Message: message,
	}
}

type SpecError struct {
	Cause       error
	Detail      string
	Span        source.Span
	Labels      []*Label
	Help        string
	Suggestions []string

	SourceName string
	Source     []byte
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if !e.Span.IsZero() {
		fmt.Fprintf(&b, "%v: ", e.Span.From)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	if snippet := Snippet(e.Source, e.Span); snippet != "" {
		fmt.Fprintf(&b, "\n%v", snippet)
	}
	for _, l := range e.Labels {
		fmt.Fprintf(&b, "\n    %v: %v", l.Span.From, l.Message)
		if snippet := Snippet(e.Source, l.Span); snippet != "" {
			fmt.Fprintf(&b, "\n%v", snippet)
		}
	}
	if e.Help != "" {
		fmt.Fprintf(&b, "\n    help: %v", e.Help)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, "\n    did you mean: %v", strings.Join(e.Suggestions, ", "))
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// WithSource attaches the source text so that Error can quote the offending line.
func (e *SpecError) WithSource(name string, src []byte) *SpecError {
	e.SourceName = name
	e.Source = src
	return e
}

// Snippet renders the line span starts on, followed by a caret line underlining the span.
// It returns an empty string when the line cannot be found.
func Snippet(src []byte, span source.Span) string {
	line := SourceLine(src, span.From.Row)
	if line == "" {
		return ""
	}

	from := span.From.Col
	if from < 1 {
		from = 1
	}
	width := 1
	switch {
	case span.To.Row == span.From.Row && span.To.Col > from:
		width = span.To.Col - from
	case span.To.Row > span.From.Row:
		if n := utf8.RuneCountInString(line); n >= from {
			width = n - from + 1
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    %v\n", line)
	fmt.Fprintf(&b, "    %v%v", strings.Repeat(" ", from-1), strings.Repeat("^", width))
	return b.String()
}

// SourceLine returns the row-th (1-based) line of src.
func SourceLine(src []byte, row int) string {
	if len(src) == 0 || row <= 0 {
		return ""
	}

	i := 1
	s := bufio.NewScanner(bytes.NewReader(src))
	for s.Scan() {
		if i == row {
			return strings.TrimRight(s.Text(), "\r")
		}
		i++
	}

	return ""
}
