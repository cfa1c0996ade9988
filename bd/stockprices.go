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
	"fmt"

	"github.com/stockparfait/errors"

	"github.com/nordfin/borsdata/table"
)

// priceNames rename the short OHLCV keys of the price payloads.
var priceNames = map[string]string{
	"d": "date",
	"i": "insId",
	"c": "close",
	"h": "high",
	"l": "low",
	"o": "open",
	"v": "volume",
}

// StockPrices returns the daily stock prices of one instrument, indexed by
// date descending. Zero from/to dates and a zero maxCount keep the server
// defaults.
func StockPrices(ctx context.Context, insID int, from, to table.Date, maxCount int) (*table.Table, error) {
	var res struct {
		StockPricesList []record `json:"stockPricesList"`
	}
	uri := fmt.Sprintf("instruments/%d/stockprices", insID)
	overrides := params{"from_date": from, "to_date": to, "maxCount": maxCount}
	if err := callAPI(ctx, uri, overrides, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch stock prices")
	}
	t := tableFrom(res.StockPricesList)
	t.Rename(priceNames)
	t.ParseDates("date")
	if err := applyIndex(ctx, t, false, "date"); err != nil {
		return nil, err
	}
	return t, nil
}

// StockPricesList returns the daily stock prices of the listed instruments as
// one combined table, each row tagged with its instrument id as stock_id.
// Missing numeric fields are filled with zero to keep the table rectangular.
func StockPricesList(ctx context.Context, insIDs []int, from, to table.Date) (*table.Table, error) {
	var res struct {
		StockPricesArrayList []struct {
			Instrument      float64  `json:"instrument"`
			StockPricesList []record `json:"stockPricesList"`
		} `json:"stockPricesArrayList"`
	}
	overrides := params{"from_date": from, "to_date": to, "instList": insIDs}
	if err := callAPI(ctx, "instruments/stockprices", overrides, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch stock price list")
	}
	var recs []record
	for _, inst := range res.StockPricesArrayList {
		for _, rec := range inst.StockPricesList {
			recs = append(recs, rec.withMeta("stock_id", inst.Instrument))
		}
	}
	t := tableFrom(recs)
	t.Rename(priceNames)
	t.FillEmpty(table.Number(0))
	return t, nil
}

// StockPricesLast returns the last day's stock prices of all instruments,
// indexed by date descending.
func StockPricesLast(ctx context.Context) (*table.Table, error) {
	var res struct {
		StockPricesList []record `json:"stockPricesList"`
	}
	if err := callAPI(ctx, "instruments/stockprices/last", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch last stock prices")
	}
	t := tableFrom(res.StockPricesList)
	t.Rename(priceNames)
	t.ParseDates("date")
	if err := applyIndex(ctx, t, false, "date"); err != nil {
		return nil, err
	}
	return t, nil
}

// StockPricesDate returns the stock prices of all instruments for one date,
// indexed by insId.
func StockPricesDate(ctx context.Context, date table.Date) (*table.Table, error) {
	if date.IsZero() {
		return nil, errors.Reason("date is required")
	}
	var res struct {
		StockPricesList []record `json:"stockPricesList"`
	}
	overrides := params{"date": date}
	if err := callAPI(ctx, "instruments/stockprices/date", overrides, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch stock prices by date")
	}
	t := tableFrom(res.StockPricesList)
	t.Rename(priceNames)
	t.ParseDates("date")
	if err := applyIndex(ctx, t, true, "insId"); err != nil {
		return nil, err
	}
	return t, nil
}
