// Copyright 2022 Nordfin

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/stockparfait/errors"
)

// Row is a single table row: one Cell per column in Header order.
type Row []Cell

// CSV is an encoding/csv compatible row representation.
func (r Row) CSV() []string {
	res := make([]string, len(r))
	for i, c := range r {
		res[i] = c.String()
	}
	return res
}

// Table is a two-dimensional container of Cell values with named columns and
// an optional index: one or more columns by which the rows are sorted.
//
// A typical use:
//
//	t := NewTable("year", "period", "kpiValue")
//	t.AddRow(Row{Number(2020), Number(1), Number(5.5)})
//	t.SetIndex(false, "year", "period")
type Table struct {
	Header []string // optional, may be nil
	Rows   []Row
	index  []int // positions of the index columns; empty = un-indexed
}

// NewTable creates a new Table instance with optional column headers. It is
// expected that, when present, the number of column headers is the same as the
// number of elements in each Row.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow adds one or more rows to the table.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Column returns the position of the named column, or -1 if absent.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell of the named column in the given row; absent columns
// yield the empty cell.
func (t *Table) Cell(row int, name string) Cell {
	i := t.Column(name)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return Empty()
	}
	return t.Rows[row][i]
}

// Rename replaces column names according to the map. Names not present in the
// table are ignored.
func (t *Table) Rename(names map[string]string) {
	for i, h := range t.Header {
		if n, ok := names[h]; ok {
			t.Header[i] = n
		}
	}
}

// RenameFunc replaces every column name by f(name).
func (t *Table) RenameFunc(f func(string) string) {
	for i, h := range t.Header {
		t.Header[i] = f(h)
	}
}

// ParseDates coerces string cells of the named columns to date cells. Columns
// not present in the table, non-string cells and unparseable strings are left
// untouched.
func (t *Table) ParseDates(names ...string) {
	for _, name := range names {
		i := t.Column(name)
		if i < 0 {
			continue
		}
		for _, row := range t.Rows {
			if i >= len(row) || row[i].kind != cellString {
				continue
			}
			d, err := NewDateFromString(row[i].string)
			if err != nil {
				continue
			}
			row[i] = d.Cell()
		}
	}
}

// Transform applies f to every cell of the named column. A column not present
// in the table is a no-op.
func (t *Table) Transform(name string, f func(Cell) Cell) {
	i := t.Column(name)
	if i < 0 {
		return
	}
	for _, row := range t.Rows {
		if i < len(row) {
			row[i] = f(row[i])
		}
	}
}

// FillEmpty replaces every empty cell in the table by the given cell.
func (t *Table) FillEmpty(c Cell) {
	for _, row := range t.Rows {
		for i := range row {
			if row[i].IsEmpty() {
				row[i] = c
			}
		}
	}
}

// SetIndex declares the index columns and sorts the rows by them,
// lexicographically, ascending or descending. When any of the columns is
// absent the table is left un-indexed and unsorted, and the result is false.
func (t *Table) SetIndex(ascending bool, names ...string) bool {
	pos := make([]int, len(names))
	for i, name := range names {
		p := t.Column(name)
		if p < 0 {
			return false
		}
		pos[i] = p
	}
	t.index = pos
	less := func(i, j int) bool { return t.lessRows(t.Rows[i], t.Rows[j]) }
	if !ascending {
		less = func(i, j int) bool { return t.lessRows(t.Rows[j], t.Rows[i]) }
	}
	sort.SliceStable(t.Rows, less)
	return true
}

// Index returns the names of the currently applied index columns, nil when the
// table is un-indexed.
func (t *Table) Index() []string {
	if len(t.index) == 0 {
		return nil
	}
	names := make([]string, len(t.index))
	for i, p := range t.index {
		names[i] = t.Header[p]
	}
	return names
}

func (t *Table) lessRows(r, r2 Row) bool {
	for _, p := range t.index {
		var c, c2 Cell
		if p < len(r) {
			c = r[p]
		}
		if p < len(r2) {
			c2 = r2[p]
		}
		if c.Less(c2) {
			return true
		}
		if c2.Less(c) {
			return false
		}
	}
	return false
}

// Pivot reshapes the table so that each distinct cell of the pivot column
// becomes its own column holding the corresponding value cells, one row per
// distinct combination of the index columns. The pivoted columns are ordered
// ascending by their cell value; combinations without a value yield empty
// cells. The resulting table is not yet indexed.
func (t *Table) Pivot(index []string, column, value string) (*Table, error) {
	ipos := make([]int, len(index))
	for i, name := range index {
		p := t.Column(name)
		if p < 0 {
			return nil, errors.Reason("index column '%s' is not in the table", name)
		}
		ipos[i] = p
	}
	cpos := t.Column(column)
	if cpos < 0 {
		return nil, errors.Reason("pivot column '%s' is not in the table", column)
	}
	vpos := t.Column(value)
	if vpos < 0 {
		return nil, errors.Reason("value column '%s' is not in the table", value)
	}

	rowKey := func(r Row) string {
		parts := make([]string, len(ipos))
		for i, p := range ipos {
			parts[i] = r[p].String()
		}
		return strings.Join(parts, "\x00")
	}

	var keys []string          // distinct index combinations in row order
	groups := map[string]Row{} // key -> index cells
	values := map[string]map[Cell]Cell{}
	columns := map[Cell]bool{} // distinct pivot cells
	for _, r := range t.Rows {
		k := rowKey(r)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
			cells := make(Row, len(ipos))
			for i, p := range ipos {
				cells[i] = r[p]
			}
			groups[k] = cells
			values[k] = map[Cell]Cell{}
		}
		values[k][r[cpos]] = r[vpos]
		columns[r[cpos]] = true
	}

	cols := make([]Cell, 0, len(columns))
	for c := range columns {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Less(cols[j]) })

	header := append([]string{}, index...)
	for _, c := range cols {
		header = append(header, c.String())
	}
	res := NewTable(header...)
	for _, k := range keys {
		row := append(Row{}, groups[k]...)
		for _, c := range cols {
			row = append(row, values[k][c])
		}
		res.AddRow(row)
	}
	return res, nil
}

// Params are parameters for pretty-printing or CSV export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

// WriteCSV writes the entire table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// WriteText writes the table as a text formatted for ease of reading.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	var widths []int
	update := func(row []string) error {
		if len(row) == 0 {
			return errors.Reason("row size = 0")
		}
		if len(widths) == 0 {
			widths = make([]int, len(row))
		}
		if len(row) != len(widths) {
			return errors.Reason("row size [%d] != expected size [%d]",
				len(row), len(widths))
		}
		for i := range widths {
			if widths[i] < len(row[i]) {
				widths[i] = len(row[i])
				if p.MaxColWidth > 0 && widths[i] > p.MaxColWidth {
					widths[i] = p.MaxColWidth
				}
			}
		}
		return nil
	}

	write := func(row []string) error {
		trimmed := make([]string, len(row))
		for i, s := range row {
			trimmed[i] = s
			if len([]rune(s)) > widths[i] {
				r := []rune(s)[:widths[i]-2]
				trimmed[i] = string(r) + ".."
			}
			trimmed[i] = fmt.Sprintf("%[2]*[1]s", trimmed[i], widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(trimmed, " | "))
		return err
	}

	dashes := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte('-')
		}
		return string(b)
	}

	dashedRow := func() []string {
		row := make([]string, len(widths))
		for i, w := range widths {
			row[i] = dashes(w)
		}
		return row
	}

	if !p.NoHeader && len(t.Header) > 0 {
		if err := update(t.Header); err != nil {
			return errors.Annotate(err, "failed to update header widths")
		}
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		if err := update(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to update row widths")
		}
	}

	if !p.NoHeader && len(t.Header) > 0 {
		if err := write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		if err := write(dashedRow()); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		if err := write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
