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

// kpiValueNames rename the screener value columns to their long names.
var kpiValueNames = map[string]string{
	"i": "insId",
	"n": "valueNum",
	"s": "valueStr",
}

// KPIHistory returns the KPI value history of one instrument, indexed by
// (year, period) descending. maxCount limits the number of history points;
// 0 keeps the server default.
func KPIHistory(ctx context.Context, insID, kpiID int, reportType ReportType, priceType PriceType, maxCount int) (*table.Table, error) {
	if err := reportType.check(); err != nil {
		return nil, err
	}
	if err := priceType.check(); err != nil {
		return nil, err
	}
	var res struct {
		Values []record `json:"values"`
	}
	uri := fmt.Sprintf("instruments/%d/kpis/%d/%s/%s/history",
		insID, kpiID, reportType, priceType)
	if err := callAPI(ctx, uri, params{"maxCount": maxCount}, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch KPI history")
	}
	t := tableFrom(res.Values)
	t.Rename(map[string]string{"y": "year", "p": "period", "v": "kpiValue"})
	if err := applyIndex(ctx, t, false, "year", "period"); err != nil {
		return nil, err
	}
	return t, nil
}

// KPISummary returns the KPI summary of one instrument pivoted so that each
// KPI id becomes its own column, indexed by (year, period) descending.
func KPISummary(ctx context.Context, insID int, reportType ReportType, maxCount int) (*table.Table, error) {
	if err := reportType.check(); err != nil {
		return nil, err
	}
	var res struct {
		KPIs []struct {
			KpiID  float64  `json:"KpiId"`
			Values []record `json:"values"`
		} `json:"kpis"`
	}
	uri := fmt.Sprintf("instruments/%d/kpis/%s/summary", insID, reportType)
	if err := callAPI(ctx, uri, params{"maxCount": maxCount}, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch KPI summary")
	}
	var recs []record
	for _, kpi := range res.KPIs {
		for _, rec := range kpi.Values {
			recs = append(recs, rec.withMeta("kpiId", kpi.KpiID))
		}
	}
	t := tableFrom(recs)
	t.Rename(map[string]string{"y": "year", "p": "period", "v": "kpiValue"})
	pivoted, err := t.Pivot([]string{"year", "period"}, "kpiId", "kpiValue")
	if err != nil {
		return nil, errors.Annotate(err, "failed to pivot KPI summary")
	}
	if err := applyIndex(ctx, pivoted, false, "year", "period"); err != nil {
		return nil, err
	}
	return pivoted, nil
}

// KPIScreenerValue returns the screener value of one KPI for one instrument,
// indexed by insId.
func KPIScreenerValue(ctx context.Context, insID, kpiID int, calcGroup CalcGroup, calc Calc) (*table.Table, error) {
	if err := calcGroup.check(); err != nil {
		return nil, err
	}
	if err := calc.check(); err != nil {
		return nil, err
	}
	var res struct {
		Value record `json:"value"`
	}
	uri := fmt.Sprintf("instruments/%d/kpis/%d/%s/%s", insID, kpiID, calcGroup, calc)
	if err := callAPI(ctx, uri, nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch KPI screener value")
	}
	var recs []record
	if res.Value != nil {
		recs = append(recs, res.Value)
	}
	t := tableFrom(recs)
	t.Rename(kpiValueNames)
	if err := applyIndex(ctx, t, true, "insId"); err != nil {
		return nil, err
	}
	return t, nil
}

// KPIScreenerValues returns the screener values of one KPI for all
// instruments, indexed by insId.
func KPIScreenerValues(ctx context.Context, kpiID int, calcGroup CalcGroup, calc Calc) (*table.Table, error) {
	if err := calcGroup.check(); err != nil {
		return nil, err
	}
	if err := calc.check(); err != nil {
		return nil, err
	}
	var res struct {
		Values []record `json:"values"`
	}
	uri := fmt.Sprintf("instruments/kpis/%d/%s/%s", kpiID, calcGroup, calc)
	if err := callAPI(ctx, uri, nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch KPI screener values")
	}
	t := tableFrom(res.Values)
	t.Rename(kpiValueNames)
	if err := applyIndex(ctx, t, true, "insId"); err != nil {
		return nil, err
	}
	return t, nil
}

// KPIsUpdated returns the time of the latest KPI recalculation.
func KPIsUpdated(ctx context.Context) (*table.Time, error) {
	var res struct {
		KPIsCalcUpdated string `json:"kpisCalcUpdated"`
	}
	if err := callAPI(ctx, "instruments/kpis/updated", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch KPI update time")
	}
	if res.KPIsCalcUpdated == "" {
		return nil, errors.Reason("kpisCalcUpdated is missing from the payload")
	}
	tm, err := table.NewTimeFromString(res.KPIsCalcUpdated)
	if err != nil {
		return nil, errors.Annotate(err, "failed to parse KPI update time")
	}
	return tm, nil
}

// KPIMetadata returns the KPI history metadata indexed by kpiId.
func KPIMetadata(ctx context.Context) (*table.Table, error) {
	var res struct {
		KPIHistoryMetadatas []record `json:"kpiHistoryMetadatas"`
	}
	if err := callAPI(ctx, "instruments/kpis/metadata", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch KPI metadata")
	}
	t := tableFrom(res.KPIHistoryMetadatas)
	if err := applyIndex(ctx, t, true, "kpiId"); err != nil {
		return nil, err
	}
	return t, nil
}
