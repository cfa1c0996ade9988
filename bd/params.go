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
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/stockparfait/logging"

	"github.com/nordfin/borsdata/table"
)

// params are per-call overrides of the base query parameters. Recognized keys
// and their server-side encodings:
//
//	"from_date" - sent as "from"
//	"to_date"   - sent as "to"
//	"date"      - sent as "date"
//	"maxCount"  - sent as "maxCount", overriding the base history limit
//	"instList"  - []int, sent comma-joined in the input order
//
// A nil or zero value omits the override. Any other key is logged as a
// diagnostic and dropped; the call proceeds without it.
type params map[string]interface{}

// joinIDs encodes a list of instrument ids as a comma-separated decimal
// string, preserving the input order.
func joinIDs(ids []int) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}
	return strings.Join(strs, ",")
}

// paramValue encodes a single override value; the second result is false when
// the value is unset and the override must be omitted.
func paramValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case int:
		return strconv.Itoa(val), val != 0
	case table.Date:
		return val.String(), !val.IsZero()
	}
	return "", false
}

// queryParams overlays the recognized overrides onto the base parameter set.
func (c *Client) queryParams(ctx context.Context, overrides params) url.Values {
	v := make(url.Values)
	v.Set("authKey", c.apiKey)
	v.Set("maxYearCount", strconv.Itoa(maxYearCount))
	v.Set("maxR12QCount", strconv.Itoa(maxR12QCount))
	v.Set("maxCount", strconv.Itoa(maxCount))
	for key, value := range overrides {
		switch key {
		case "from_date":
			if s, ok := paramValue(value); ok {
				v.Set("from", s)
			}
		case "to_date":
			if s, ok := paramValue(value); ok {
				v.Set("to", s)
			}
		case "date", "maxCount":
			if s, ok := paramValue(value); ok {
				v.Set(key, s)
			}
		case "instList":
			if ids, ok := value.([]int); ok && len(ids) > 0 {
				v.Set("instList", joinIDs(ids))
			}
		default:
			logging.Warningf(ctx, "unknown param: %s=%v", key, value)
		}
	}
	return v
}
