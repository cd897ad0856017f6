package db

import (
	"fmt"
	"io"
	"strings"
)

// renderTable writes headers and rows as an ASCII grid, columns sized to
// their widest cell.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 && len(rows) == 0 {
		return
	}

	widths := columnWidths(headers, rows)
	separator := separatorLine(widths)

	fmt.Fprintln(w, separator)
	if len(headers) > 0 {
		fmt.Fprintln(w, formatCells(headers, widths))
		fmt.Fprintln(w, separator)
	}
	for _, row := range rows {
		fmt.Fprintln(w, formatCells(row, widths))
	}
	fmt.Fprintln(w, separator)
}

func columnWidths(headers []string, rows [][]string) []int {
	numCols := len(headers)
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	widths := make([]int, numCols)
	for i, h := range headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

func separatorLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func formatCells(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
