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
	"testing"

	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKPIs(t *testing.T) {
	Convey("KPI API calls work correctly", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()

		ctx := fetch.UseClient(context.Background(), server.Client())
		baseURL := URL
		URL = server.URL()
		defer func() { URL = baseURL }()
		ctx = UseClient(ctx, "testkey")

		Convey("KPIHistory", func() {
			server.ResponseBody = []string{`{
  "kpiId": 10, "reportTime": "r12", "priceValue": "mean",
  "values": [
    {"y": 2019, "p": 4, "v": 4.5},
    {"y": 2020, "p": 1, "v": 5.5}
  ]
}`}
			tbl, err := KPIHistory(ctx, 3, 10, ReportR12, PriceMean, 4)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/instruments/3/kpis/10/r12/mean/history")
			So(server.RequestQuery.Get("maxCount"), ShouldEqual, "4")
			So(tbl.Header, ShouldResemble, []string{"period", "kpiValue", "year"})
			So(tbl.Index(), ShouldResemble, []string{"year", "period"})
			// Sorted descending by (year, period).
			v, ok := tbl.Cell(0, "kpiValue").Number()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 5.5)

			Convey("rejects an invalid report type", func() {
				_, err := KPIHistory(ctx, 3, 10, ReportType("daily"), PriceMean, 0)
				So(err, ShouldNotBeNil)
			})
		})

		Convey("KPISummary pivots each KPI into its own column", func() {
			server.ResponseBody = []string{`{
  "instrument": 3,
  "kpis": [
    {"KpiId": 10, "values": [
      {"y": 2020, "p": 1, "v": 5.0},
      {"y": 2019, "p": 4, "v": 4.0}
    ]},
    {"KpiId": 11, "values": [
      {"y": 2020, "p": 1, "v": 7.0}
    ]}
  ]
}`}
			tbl, err := KPISummary(ctx, 3, ReportYear, 0)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/instruments/3/kpis/year/summary")
			So(tbl.Header, ShouldResemble, []string{"year", "period", "10", "11"})
			So(tbl.Index(), ShouldResemble, []string{"year", "period"})
			So(len(tbl.Rows), ShouldEqual, 2)

			v, ok := tbl.Cell(0, "10").Number()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 5.0)
			v, ok = tbl.Cell(0, "11").Number()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 7.0)
			// KPI 11 has no value for (2019, 4).
			So(tbl.Cell(1, "11").IsEmpty(), ShouldBeTrue)
		})

		Convey("KPIScreenerValue", func() {
			server.ResponseBody = []string{`{
  "kpiId": 2, "group": "1year", "calculation": "mean",
  "value": {"i": 3, "n": 20.5, "s": null}
}`}
			tbl, err := KPIScreenerValue(ctx, 3, 2, Calc1Year, CalcMean)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/instruments/3/kpis/2/1year/mean")
			So(tbl.Header, ShouldResemble, []string{"insId", "valueNum", "valueStr"})
			So(len(tbl.Rows), ShouldEqual, 1)
			v, ok := tbl.Cell(0, "valueNum").Number()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 20.5)
			So(tbl.Cell(0, "valueStr").IsEmpty(), ShouldBeTrue)

			Convey("rejects an invalid calc group", func() {
				_, err := KPIScreenerValue(ctx, 3, 2, CalcGroup("2year"), CalcMean)
				So(err, ShouldNotBeNil)
			})
		})

		Convey("KPIScreenerValues", func() {
			server.ResponseBody = []string{`{
  "kpiId": 2, "group": "1year", "calculation": "mean",
  "values": [
    {"i": 4, "n": 10.0, "s": null},
    {"i": 3, "n": 20.5, "s": null}
  ]
}`}
			tbl, err := KPIScreenerValues(ctx, 2, Calc1Year, CalcMean)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/instruments/kpis/2/1year/mean")
			So(tbl.Index(), ShouldResemble, []string{"insId"})
			v, ok := tbl.Cell(0, "valueNum").Number()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 20.5)
		})

		Convey("KPIsUpdated", func() {
			server.ResponseBody = []string{`{"kpisCalcUpdated": "2022-01-05T11:00:00"}`}
			tm, err := KPIsUpdated(ctx)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/instruments/kpis/updated")
			So(tm.String(), ShouldEqual, "2022-01-05 11:00:00")
		})

		Convey("KPIsUpdated fails on a missing timestamp", func() {
			server.ResponseBody = []string{`{}`}
			_, err := KPIsUpdated(ctx)
			So(err, ShouldNotBeNil)
		})

		Convey("KPIMetadata", func() {
			server.ResponseBody = []string{`{"kpiHistoryMetadatas": [
  {"kpiId": 2, "nameEn": "P/E", "format": null, "isString": false}
]}`}
			tbl, err := KPIMetadata(ctx)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/instruments/kpis/metadata")
			So(tbl.Index(), ShouldResemble, []string{"kpiId"})
			So(tbl.Cell(0, "nameEn").String(), ShouldEqual, "P/E")
			b, ok := tbl.Cell(0, "isString").Number()
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, 0.0)
		})
	})
}
