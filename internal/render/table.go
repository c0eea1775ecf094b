// Package render draws result sets as bordered text tables.
package render

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/width"
)

// Table writes headers and rows as a grid:
//
//	+----+------+
//	| id | name |
//	+====+======+
//	| 1  | Ann  |
//	+----+------+
//
// Rows shorter than the header are padded with empty cells. Cells containing
// newlines span several lines. When rows is empty, only empty is written.
func Table(w io.Writer, headers []string, rows [][]string, empty string) error {
	bw := bufio.NewWriter(w)

	if len(rows) == 0 {
		bw.WriteString(empty)
		bw.WriteByte('\n')
		return bw.Flush()
	}

	ncols := len(headers)
	for _, row := range rows {
		if len(row) > ncols {
			ncols = len(row)
		}
	}

	widths := make([]int, ncols)
	measure := func(row []string) {
		for i, cell := range row {
			for _, line := range strings.Split(cell, "\n") {
				if n := DisplayWidth(line); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	rule := func(fill string) {
		bw.WriteByte('+')
		for _, n := range widths {
			bw.WriteString(strings.Repeat(fill, n+2))
			bw.WriteByte('+')
		}
		bw.WriteByte('\n')
	}

	rule("-")
	writeRow(bw, headers, widths)
	rule("=")
	for _, row := range rows {
		writeRow(bw, row, widths)
		rule("-")
	}

	return bw.Flush()
}

func writeRow(bw *bufio.Writer, row []string, widths []int) {
	cells := make([][]string, len(widths))
	height := 1
	for i := range widths {
		if i < len(row) {
			cells[i] = strings.Split(row[i], "\n")
		}
		if len(cells[i]) > height {
			height = len(cells[i])
		}
	}

	for line := 0; line < height; line++ {
		bw.WriteByte('|')
		for i, n := range widths {
			var text string
			if line < len(cells[i]) {
				text = cells[i][line]
			}
			bw.WriteByte(' ')
			bw.WriteString(text)
			bw.WriteString(strings.Repeat(" ", n-DisplayWidth(text)))
			bw.WriteString(" |")
		}
		bw.WriteByte('\n')
	}
}

// DisplayWidth returns the number of terminal columns s occupies.
// East Asian wide and fullwidth runes count as two.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
