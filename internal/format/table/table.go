// Package table aligns rows of text into columns by terminal cell width.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gap = "  "

// Format pads every cell to the widest entry of its column. Rows may be
// ragged; missing cells count as empty. Trailing padding is trimmed.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gap)
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(runewidth.FillLeft(cell, widths[c]))
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[c]))
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Pairs formats label/value rows with labels right-aligned.
func Pairs(pairs [][2]string) []string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return Format(rows, []Alignment{AlignRight, AlignLeft})
}
