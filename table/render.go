package table

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the table as aligned text, one header row then data rows.
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col.Name)
		for r := 0; r < col.Len(); r++ {
			if n := len(col.Cell(r)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Name
	}
	if err := writeRow(header); err != nil {
		return err
	}

	for r := 0; r < t.NumRows(); r++ {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = col.Cell(r)
		}
		if err := writeRow(cells); err != nil {
			return err
		}
	}

	return nil
}
