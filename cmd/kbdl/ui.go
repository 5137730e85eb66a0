package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kbdl/kbdl/tester"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleCaret   = lipgloss.NewStyle().Foreground(colorRed)
	styleHelp    = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
)

// printError styles the parts of a rendered error: the headline, the caret lines under source
// snippets, and the help and suggestion lines.
func printError(w io.Writer, err error) {
	lines := strings.Split(err.Error(), "\n")
	fmt.Fprintln(w, styleError.Render(lines[0]))
	for _, line := range lines[1:] {
		t := strings.TrimSpace(line)
		switch {
		case t != "" && strings.Trim(t, "^") == "":
			fmt.Fprintln(w, styleCaret.Render(line))
		case strings.HasPrefix(t, "help:"), strings.HasPrefix(t, "did you mean:"):
			fmt.Fprintln(w, styleHelp.Render(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}

func printTestResult(w io.Writer, r *tester.TestResult) {
	s := r.String()
	if r.Error != nil {
		head, rest, _ := strings.Cut(s, "\n")
		fmt.Fprintln(w, styleError.Render(head))
		if rest != "" {
			fmt.Fprintln(w, rest)
		}
		return
	}
	fmt.Fprintln(w, styleSuccess.Render(s))
}
