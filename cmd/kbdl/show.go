package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kbdl/kbdl/driver"
	"github.com/kbdl/kbdl/firmware"
	"github.com/kbdl/kbdl/keymap"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show [description file path]",
		Short:   "Print a summary of a keyboard description",
		Example: `  kbdl show sweep.kbdl`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name, src, err := readSource(args)
	if err != nil {
		return err
	}
	meta, err := load(ctx, name, src)
	if err != nil {
		return err
	}
	t, err := firmware.Build(meta)
	if err != nil {
		return driver.WithSource(err, name, src)
	}
	loggerFromContext(ctx).Debug("chords allocated", "chords", len(t.Chords), "rows", t.Rows-meta.Layout.Height)

	writeSummary(cmd.OutOrStdout(), name, meta, t)
	return nil
}

func writeSummary(w io.Writer, name string, meta *keymap.Metadata, t *firmware.Table) {
	fmt.Fprintln(w, styleTitle.Render(name))
	fmt.Fprintf(w, "%v %v columns, %v rows (%v for chords)\n", styleLabel.Render("matrix:"), t.Width, t.Rows, t.Rows-meta.Layout.Height)
	fmt.Fprintf(w, "%v %v\n", styleLabel.Render("keys:  "), meta.Layout.KeyCount())
	fmt.Fprintln(w)

	layers := make([][]string, 0, len(meta.Layers.Layers))
	for i, l := range meta.Layers.Layers {
		layers = append(layers, []string{fmt.Sprint(i), l.Name, fmt.Sprint(len(l.Keys)), fmt.Sprint(len(l.Chords))})
	}
	fmt.Fprintln(w, newTable("#", "Layer", "Keys", "Chords").Rows(layers...).String())

	if len(t.Chords) > 0 {
		chords := make([][]string, 0, len(t.Chords))
		for _, c := range t.Chords {
			chords = append(chords, []string{c.Pair.Left.String(), c.Pair.Right.String(), c.Pos.String()})
		}
		fmt.Fprintln(w, newTable("Left", "Right", "Position").Rows(chords...).String())
	}

	var opts [][]string
	for _, b := range keymap.Backends {
		for _, o := range meta.Options.Options(b) {
			opts = append(opts, []string{b.String(), o.Name, o.Value})
		}
	}
	if len(opts) > 0 {
		fmt.Fprintln(w, newTable("Backend", "Option", "Value").Rows(opts...).String())
	}

	var custom []string
	for _, b := range keymap.Backends {
		if names := meta.CustomKeys.Names(b); len(names) > 0 {
			custom = append(custom, fmt.Sprintf("%v: %v", b, strings.Join(names, ", ")))
		}
	}
	if len(custom) > 0 {
		fmt.Fprintf(w, "%v\n  %v\n", styleLabel.Render("custom keys:"), strings.Join(custom, "\n  "))
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
