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

	"github.com/stockparfait/errors"

	"github.com/nordfin/borsdata/table"
)

// Instruments returns the instrument metadata for all Nordic instruments,
// indexed by insId.
func Instruments(ctx context.Context) (*table.Table, error) {
	var res struct {
		Instruments []record `json:"instruments"`
	}
	if err := callAPI(ctx, "instruments", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch instruments")
	}
	t := tableFrom(res.Instruments)
	t.ParseDates("listingDate")
	if err := applyIndex(ctx, t, true, "insId"); err != nil {
		return nil, err
	}
	return t, nil
}

// InstrumentsUpdated returns the time each instrument or its reports was last
// updated, indexed by insId.
func InstrumentsUpdated(ctx context.Context) (*table.Table, error) {
	var res struct {
		Instruments []record `json:"instruments"`
	}
	if err := callAPI(ctx, "instruments/updated", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch instrument updates")
	}
	t := tableFrom(res.Instruments)
	t.ParseDates("updatedAt")
	if err := applyIndex(ctx, t, true, "insId"); err != nil {
		return nil, err
	}
	return t, nil
}

// InstrumentDescriptions returns the descriptions of up to 50 instruments,
// indexed by (insId, lang). Larger lists fail before any network call.
func InstrumentDescriptions(ctx context.Context, insIDs []int) (*table.Table, error) {
	if err := checkBatchSize(insIDs); err != nil {
		return nil, err
	}
	var res struct {
		List []record `json:"list"`
	}
	err := callAPI(ctx, "instruments/description", params{"instList": insIDs}, &res)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch instrument descriptions")
	}
	t := tableFrom(res.List)
	t.Rename(map[string]string{"languageCode": "lang"})
	if err := applyIndex(ctx, t, true, "insId", "lang"); err != nil {
		return nil, err
	}
	return t, nil
}

// StockSplits returns the stock split calendar indexed by insId.
func StockSplits(ctx context.Context) (*table.Table, error) {
	var res struct {
		StockSplitList []record `json:"stockSplitList"`
	}
	if err := callAPI(ctx, "instruments/stocksplits", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch stock splits")
	}
	t := tableFrom(res.StockSplitList)
	t.Rename(map[string]string{"instrumentId": "insId"})
	t.ParseDates("splitDate")
	if err := applyIndex(ctx, t, true, "insId"); err != nil {
		return nil, err
	}
	return t, nil
}
