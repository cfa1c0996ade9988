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

package bd

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nordfin/borsdata/table"
)

// record is one row of an endpoint payload, decoded generically so that
// payload schema changes do not break the client.
type record map[string]interface{}

// withMeta returns a copy of the record with a parent key attached, used when
// flattening nested arrays joined to a parent id.
func (r record) withMeta(key string, value interface{}) record {
	res := make(record, len(r)+1)
	for k, v := range r {
		res[k] = v
	}
	res[key] = value
	return res
}

// cellOf converts a decoded JSON value to a table cell. Unsupported shapes
// (nested arrays) become empty cells.
func cellOf(v interface{}) table.Cell {
	switch val := v.(type) {
	case float64: // any JSON number unmarshals as float64
		return table.Number(val)
	case string:
		return table.String(val)
	case bool:
		return table.Bool(val)
	}
	return table.Empty()
}

// flatten copies the record into flat, expanding nested objects into dotted
// column names the way pandas json_normalize does.
func (r record) flatten(prefix string, flat record) {
	for k, v := range r {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			record(nested).flatten(key, flat)
			continue
		}
		flat[key] = v
	}
}

// tableFrom builds a table from the records. The column set is the union of
// the record keys in sorted order; a record missing a column yields an empty
// cell in that row.
func tableFrom(recs []record) *table.Table {
	columns := map[string]bool{}
	flat := make([]record, len(recs))
	for i, rec := range recs {
		f := make(record, len(rec))
		rec.flatten("", f)
		flat[i] = f
		for k := range f {
			columns[k] = true
		}
	}
	header := maps.Keys(columns)
	slices.Sort(header)

	t := table.NewTable(header...)
	for _, f := range flat {
		row := make(table.Row, len(header))
		for i, name := range header {
			if v, ok := f[name]; ok {
				row[i] = cellOf(v)
			}
		}
		t.AddRow(row)
	}
	return t
}
