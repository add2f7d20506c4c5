package catalog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const columnGap = 2

// table aligns cells by display width. Cells may carry ANSI styling.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) String() string {
	widths := make([]int, len(t.header))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], cellWidth(cell))
			}
		}
	}
	measure(t.header)
	for _, r := range t.rows {
		measure(r)
	}

	var b strings.Builder
	write := func(cells []string) {
		var line strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			line.WriteString(cell)
			if i < len(cells)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-cellWidth(cell)+columnGap))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	write(t.header)
	for _, r := range t.rows {
		write(r)
	}
	return b.String()
}

func cellWidth(cell string) int {
	return runewidth.StringWidth(ansi.Strip(cell))
}

func lipglossColor(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}
