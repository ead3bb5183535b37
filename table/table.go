// Package table converts archive JSON query results (ordered field
// descriptors plus row mappings) into typed, ordered columns.
package table

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

type Field struct {
	ColName  string `json:"colname"`
	DataType string `json:"datatype"`
}

type Kind int

const (
	// KindString covers varchar(N) and any declared type we don't map;
	// unmapped declared types pass through with their cells stringified.
	KindString Kind = iota
	KindFloat
)

type Column struct {
	Name     string
	DataType string
	Kind     Kind
	MaxLen   int // varchar width; 0 means unbounded

	Strings []string
	Floats  []float64
}

func (c *Column) Len() int {
	if c.Kind == KindFloat {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Cell returns the cell at row i rendered as a string.
func (c *Column) Cell(i int) string {
	if c.Kind == KindFloat {
		v := c.Floats[i]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return c.Strings[i]
}

type Table struct {
	Columns []*Column
}

func (t *Table) Column(name string) *Column {
	for _, col := range t.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

var varcharRe = regexp.MustCompile(`^varchar\((\d+)\)$`)

func newColumn(f Field) *Column {
	col := &Column{
		Name:     f.ColName,
		DataType: f.DataType,
	}

	if m := varcharRe.FindStringSubmatch(f.DataType); m != nil {
		n, _ := strconv.Atoi(m[1])
		col.Kind = KindString
		col.MaxLen = n
		return col
	}

	if f.DataType == "real" {
		col.Kind = KindFloat
		return col
	}

	col.Kind = KindString
	return col
}

// Build assembles a table from field descriptors and row mappings. Column
// order follows descriptor order. Duplicate descriptors for one name keep
// the first position but the last declared type wins. A row missing a key
// contributes a null placeholder ("" or NaN) rather than failing.
func Build(fields []Field, rows []map[string]any) *Table {
	t := &Table{}

	position := map[string]int{}
	for _, f := range fields {
		col := newColumn(f)
		if pos, seen := position[f.ColName]; seen {
			t.Columns[pos] = col
			continue
		}
		position[f.ColName] = len(t.Columns)
		t.Columns = append(t.Columns, col)
	}

	for _, row := range rows {
		for _, col := range t.Columns {
			v, ok := row[col.Name]
			col.append(v, ok)
		}
	}

	return t
}

func (c *Column) append(v any, present bool) {
	if c.Kind == KindFloat {
		if !present || v == nil {
			c.Floats = append(c.Floats, math.NaN())
			return
		}
		switch x := v.(type) {
		case float64:
			c.Floats = append(c.Floats, x)
		case int:
			c.Floats = append(c.Floats, float64(x))
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				f = math.NaN()
			}
			c.Floats = append(c.Floats, f)
		default:
			c.Floats = append(c.Floats, math.NaN())
		}
		return
	}

	if !present || v == nil {
		c.Strings = append(c.Strings, "")
		return
	}

	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if c.MaxLen > 0 && len(s) > c.MaxLen {
		s = s[:c.MaxLen]
	}
	c.Strings = append(c.Strings, s)
}
