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

import "strconv"

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellBool
	cellString
	cellNumber
	cellDate
)

// Cell is a single table value: a tagged union of nothing, boolean, string,
// number (float64) or Date. The zero value is the empty cell.
type Cell struct {
	kind   cellKind
	number float64
	string string
	date   Date
}

// Empty creates an empty cell, the value of an absent optional field.
func Empty() Cell {
	return Cell{}
}

// Bool creates a boolean cell.
func Bool(b bool) Cell {
	var n float64
	if b {
		n = 1.0
	}
	return Cell{kind: cellBool, number: n}
}

// String creates a string cell.
func String(s string) Cell {
	return Cell{kind: cellString, string: s}
}

// Number creates a numeric cell.
func Number(n float64) Cell {
	return Cell{kind: cellNumber, number: n}
}

// Cell converts the date to a date cell.
func (d Date) Cell() Cell {
	return Cell{kind: cellDate, date: d}
}

// IsEmpty checks whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.kind == cellEmpty }

// Number returns the numeric value of a number or boolean cell.
func (c Cell) Number() (float64, bool) {
	return c.number, c.kind == cellNumber || c.kind == cellBool
}

// Date returns the date value of a date cell.
func (c Cell) Date() (Date, bool) {
	return c.date, c.kind == cellDate
}

// Text returns the value of a string cell.
func (c Cell) Text() (string, bool) {
	return c.string, c.kind == cellString
}

// String prints the cell value; empty cells print as "".
func (c Cell) String() string {
	switch c.kind {
	case cellBool:
		return strconv.FormatBool(c.number != 0.0)
	case cellString:
		return c.string
	case cellNumber:
		return strconv.FormatFloat(c.number, 'g', -1, 64)
	case cellDate:
		return c.date.String()
	}
	return ""
}

// Less defines the ordering used when sorting rows by index columns. Cells of
// different kinds order as empty < boolean < string < number < date, so that
// absent values sort first in an ascending table.
func (c Cell) Less(c2 Cell) bool {
	if c.kind != c2.kind {
		return c.kind < c2.kind
	}
	switch c.kind {
	case cellBool, cellNumber:
		return c.number < c2.number
	case cellString:
		return c.string < c2.string
	case cellDate:
		return c.date.Before(c2.date)
	}
	return false
}
