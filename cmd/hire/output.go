package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type styles struct {
	plain  lipgloss.Style
	header lipgloss.Style
	faint  lipgloss.Style
	ok     lipgloss.Style
	bad    lipgloss.Style
}

// newStyles binds the styles to w so color is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		plain:  r.NewStyle(),
		header: r.NewStyle().Bold(true),
		faint:  r.NewStyle().Faint(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// marshalJSON encodes v indented, without HTML escaping.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func writeJSON(w io.Writer, v any) error {
	s, err := marshalJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// writeTable prints rows under a bold header as a borderless table with
// two spaces between columns.
func writeTable(w io.Writer, st styles, header []string, rows [][]string) {
	last := len(header) - 1
	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Wrap(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := st.plain
			if row == table.HeaderRow {
				style = st.header
			}
			if col < last {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Headers(header...).
		Rows(rows...)

	for line := range strings.SplitSeq(strings.TrimRight(tbl.Render(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
