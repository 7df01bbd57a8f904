// core/mart/table.go
package mart

import "strings"

// Table is a column-ordered result set with row-major string cells. Missing
// values are empty cells; rows may be shorter than the schema when a
// response line was truncated.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) Empty() bool { return len(t.Columns) == 0 && len(t.Rows) == 0 }

// Concat merges batch results in order. The schema is the union of the
// inputs' columns in first-seen order; rows are re-projected onto it so a
// batch that came back with fewer columns still lines up, padding with
// empty cells.
func Concat(tables []Table) Table {
	var (
		cols  []string
		index = make(map[string]int)
	)
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := index[c]; !ok {
				index[c] = len(cols)
				cols = append(cols, c)
			}
		}
	}
	var rows [][]string
	for _, t := range tables {
		for _, r := range t.Rows {
			row := make([]string, len(cols))
			for i, c := range t.Columns {
				if i < len(r) {
					row[index[c]] = r[i]
				}
			}
			rows = append(rows, row)
		}
	}
	return Table{Columns: cols, Rows: rows}
}

// NormalizeColumns rewrites the schema to lower-snake-case: names are
// trimmed, internal spaces become underscores, and the result is
// lower-cased. Rows are untouched.
func NormalizeColumns(t Table) Table {
	if len(t.Columns) == 0 {
		return t
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		c = strings.TrimSpace(c)
		c = strings.ReplaceAll(c, " ", "_")
		cols[i] = strings.ToLower(c)
	}
	return Table{Columns: cols, Rows: t.Rows}
}

// DropIncomplete removes every row with a missing value in any column, so
// the survivors are fully annotated.
func DropIncomplete(t Table) Table {
	if len(t.Rows) == 0 {
		return t
	}
	kept := make([][]string, 0, len(t.Rows))
rows:
	for _, r := range t.Rows {
		if len(r) < len(t.Columns) {
			continue
		}
		for _, cell := range r {
			if cell == "" {
				continue rows
			}
		}
		kept = append(kept, r)
	}
	return Table{Columns: t.Columns, Rows: kept}
}
