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
	"strings"

	"github.com/stockparfait/errors"

	"github.com/nordfin/borsdata/table"
)

func stripUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", "")
}

// reportTable shapes one report array: underscore-free column names, parsed
// report dates, indexed by (year, period) descending.
func reportTable(ctx context.Context, recs []record) (*table.Table, error) {
	t := tableFrom(recs)
	t.RenameFunc(stripUnderscores)
	t.ParseDates("reportStartDate", "reportEndDate", "reportDate")
	if err := applyIndex(ctx, t, false, "year", "period"); err != nil {
		return nil, err
	}
	return t, nil
}

// Report returns the reports of one instrument for one report period length.
func Report(ctx context.Context, insID int, reportType ReportType, maxCount int) (*table.Table, error) {
	if err := reportType.check(); err != nil {
		return nil, err
	}
	var res struct {
		Reports []record `json:"reports"`
	}
	uri := fmt.Sprintf("instruments/%d/reports/%s", insID, reportType)
	if err := callAPI(ctx, uri, params{"maxCount": maxCount}, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch reports")
	}
	return reportTable(ctx, res.Reports)
}

// Reports returns all report data of one instrument as three tables: quarter,
// year and rolling 12 months.
func Reports(ctx context.Context, insID int) (quarter, year, r12 *table.Table, err error) {
	var res struct {
		ReportsQuarter []record `json:"reportsQuarter"`
		ReportsYear    []record `json:"reportsYear"`
		ReportsR12     []record `json:"reportsR12"`
	}
	uri := fmt.Sprintf("instruments/%d/reports", insID)
	if err := callAPI(ctx, uri, nil, &res); err != nil {
		return nil, nil, nil, errors.Annotate(err, "failed to fetch reports")
	}
	if quarter, err = reportTable(ctx, res.ReportsQuarter); err != nil {
		return nil, nil, nil, err
	}
	if year, err = reportTable(ctx, res.ReportsYear); err != nil {
		return nil, nil, nil, err
	}
	if r12, err = reportTable(ctx, res.ReportsR12); err != nil {
		return nil, nil, nil, err
	}
	return quarter, year, r12, nil
}

// reportListEnvelope is the payload of the multi-instrument report endpoint.
type reportListEnvelope struct {
	ReportList []struct {
		Instrument     float64  `json:"instrument"`
		ReportsQuarter []record `json:"reportsQuarter"`
		ReportsYear    []record `json:"reportsYear"`
		ReportsR12     []record `json:"reportsR12"`
	} `json:"reportList"`
}

// reportListTable combines one report array per instrument into a single
// table tagging each row with its originating instrument id as stock_id.
func reportListTable(recs []record) *table.Table {
	t := tableFrom(recs)
	t.RenameFunc(strings.ToLower)
	t.Rename(map[string]string{"instrument": "stock_id"})
	t.ParseDates("report_start_date", "report_end_date", "report_date")
	return t
}

// ReportsList returns all report data for the listed instruments as three
// combined tables: quarter, year and rolling 12 months. Each row carries its
// instrument id in the stock_id column.
func ReportsList(ctx context.Context, insIDs []int) (quarter, year, r12 *table.Table, err error) {
	var res reportListEnvelope
	err = callAPI(ctx, "instruments/reports", params{"instList": insIDs}, &res)
	if err != nil {
		return nil, nil, nil, errors.Annotate(err, "failed to fetch report list")
	}
	var qRecs, yRecs, rRecs []record
	for _, inst := range res.ReportList {
		for _, rec := range inst.ReportsQuarter {
			qRecs = append(qRecs, rec.withMeta("instrument", inst.Instrument))
		}
		for _, rec := range inst.ReportsYear {
			yRecs = append(yRecs, rec.withMeta("instrument", inst.Instrument))
		}
		for _, rec := range inst.ReportsR12 {
			rRecs = append(rRecs, rec.withMeta("instrument", inst.Instrument))
		}
	}
	return reportListTable(qRecs), reportListTable(yRecs), reportListTable(rRecs), nil
}

// ReportsMetadata returns the report metadata indexed by reportProperty. The
// upstream misspelling reportPropery is corrected, and underscores are
// stripped from the property names.
func ReportsMetadata(ctx context.Context) (*table.Table, error) {
	var res struct {
		ReportMetadatas []record `json:"reportMetadatas"`
	}
	if err := callAPI(ctx, "instruments/reports/metadata", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch report metadata")
	}
	t := tableFrom(res.ReportMetadatas)
	t.Rename(map[string]string{"reportPropery": "reportProperty"})
	t.Transform("reportProperty", func(c table.Cell) table.Cell {
		if s, ok := c.Text(); ok {
			return table.String(stripUnderscores(s))
		}
		return c
	})
	if err := applyIndex(ctx, t, true, "reportProperty"); err != nil {
		return nil, err
	}
	return t, nil
}

// ReportCalendar returns the report calendar of up to 50 instruments, one row
// per calendar entry tagged with its insId. Larger lists fail before any
// network call.
func ReportCalendar(ctx context.Context, insIDs []int) (*table.Table, error) {
	if err := checkBatchSize(insIDs); err != nil {
		return nil, err
	}
	var res struct {
		List []struct {
			InsID  float64  `json:"insId"`
			Values []record `json:"values"`
		} `json:"list"`
	}
	err := callAPI(ctx, "instruments/report/calendar", params{"instList": insIDs}, &res)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch report calendar")
	}
	var recs []record
	for _, inst := range res.List {
		for _, rec := range inst.Values {
			recs = append(recs, rec.withMeta("insId", inst.InsID))
		}
	}
	return tableFrom(recs), nil
}
