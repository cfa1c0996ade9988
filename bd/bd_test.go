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
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	"github.com/nordfin/borsdata/table"

	. "github.com/smartystreets/goconvey/convey"
)

func baseQuery(key string) url.Values {
	v := make(url.Values)
	v.Set("authKey", key)
	v.Set("maxYearCount", strconv.Itoa(maxYearCount))
	v.Set("maxR12QCount", strconv.Itoa(maxR12QCount))
	v.Set("maxCount", strconv.Itoa(maxCount))
	return v
}

func TestParams(t *testing.T) {
	Convey("queryParams works", t, func() {
		ctx := context.Background()
		c := newClient(URL, "testkey")

		Convey("without overrides", func() {
			So(c.queryParams(ctx, nil), ShouldResemble, baseQuery("testkey"))
		})

		Convey("renames the date range overrides", func() {
			expected := baseQuery("testkey")
			expected.Set("from", "2022-01-01")
			expected.Set("to", "2022-06-30")
			So(c.queryParams(ctx, params{
				"from_date": table.NewDate(2022, 1, 1),
				"to_date":   table.NewDate(2022, 6, 30),
			}), ShouldResemble, expected)
		})

		Convey("omits zero values", func() {
			So(c.queryParams(ctx, params{
				"from_date": table.Date{},
				"to_date":   "",
				"maxCount":  0,
			}), ShouldResemble, baseQuery("testkey"))
		})

		Convey("overrides maxCount", func() {
			expected := baseQuery("testkey")
			expected.Set("maxCount", "5")
			So(c.queryParams(ctx, params{"maxCount": 5}), ShouldResemble, expected)
		})

		Convey("joins the instrument list preserving the order", func() {
			expected := baseQuery("testkey")
			expected.Set("instList", "2,3,4,5")
			So(c.queryParams(ctx, params{
				"instList": []int{2, 3, 4, 5},
			}), ShouldResemble, expected)
		})

		Convey("drops unknown overrides", func() {
			So(c.queryParams(ctx, params{
				"version": 2,
			}), ShouldResemble, baseQuery("testkey"))
		})
	})
}

func TestCallAPI(t *testing.T) {
	Convey("callAPI", t, func() {
		Convey("requires a client in the context", func() {
			var res struct{}
			err := callAPI(context.Background(), "branches", nil, &res)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no client in context")
		})

		Convey("queries the endpoint with the base parameters", func() {
			server := testutil.NewTestServer()
			defer server.Close()
			server.ResponseBody = []string{`{"branches": []}`}

			ctx := fetch.UseClient(context.Background(), server.Client())
			baseURL := URL
			URL = server.URL() + "/v1"
			defer func() { URL = baseURL }()
			ctx = UseClient(ctx, "testkey")

			var res struct {
				Branches []record `json:"branches"`
			}
			So(callAPI(ctx, "branches", nil, &res), ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/v1/branches")
			So(server.RequestQuery, ShouldResemble, baseQuery("testkey"))
		})

		Convey("reports a non-200 status with its body", func() {
			server := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusTooManyRequests)
					w.Write([]byte("slow down"))
				}))
			defer server.Close()

			ctx := fetch.UseClient(context.Background(), server.Client())
			baseURL := URL
			URL = server.URL
			defer func() { URL = baseURL }()
			ctx = UseClient(ctx, "testkey")

			var res struct{}
			err := callAPI(ctx, "branches", nil, &res)
			So(err, ShouldNotBeNil)
			var statusErr *StatusError
			So(stderrors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusTooManyRequests)
			So(statusErr.Body, ShouldEqual, "slow down")
		})
	})
}

func TestThrottling(t *testing.T) {
	Convey("requests are spaced out by the call rate", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()

		calls := 5
		cps := 100.0
		bodies := make([]string, calls)
		for i := range bodies {
			bodies[i] = `{"branches": []}`
		}
		server.ResponseBody = bodies

		ctx := fetch.UseClient(context.Background(), server.Client())
		baseURL := URL
		URL = server.URL()
		defer func() { URL = baseURL }()
		ctx = UseClient(ctx, "testkey", CallsPerSecond(cps))

		start := time.Now()
		for i := 0; i < calls; i++ {
			_, err := Branches(ctx)
			So(err, ShouldBeNil)
		}
		elapsed := time.Since(start)
		minElapsed := time.Duration(float64(calls-1) / cps * float64(time.Second))
		So(elapsed, ShouldBeGreaterThanOrEqualTo, minElapsed)
	})

	Convey("a canceled context aborts the wait", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		ctx = UseClient(ctx, "testkey", CallsPerSecond(0.001))
		cancel()

		_, err := Branches(ctx)
		So(err, ShouldNotBeNil)
	})
}

func TestIndexPolicy(t *testing.T) {
	Convey("a missing index column", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		server.ResponseBody = []string{
			`{"branches": [{"name": "Banks"}, {"name": "Mining"}]}`}

		ctx := fetch.UseClient(context.Background(), server.Client())
		baseURL := URL
		URL = server.URL()
		defer func() { URL = baseURL }()

		Convey("returns the table un-indexed by default", func() {
			tbl, err := Branches(UseClient(ctx, "testkey"))
			So(err, ShouldBeNil)
			So(tbl.Index(), ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{"name"})
			So(len(tbl.Rows), ShouldEqual, 2)
		})

		Convey("fails under StrictIndex", func() {
			_, err := Branches(UseClient(ctx, "testkey", StrictIndex()))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing from the payload")
		})
	})
}

func TestBatchSize(t *testing.T) {
	Convey("oversized instrument lists fail before any network call", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()

		ctx := fetch.UseClient(context.Background(), server.Client())
		baseURL := URL
		URL = server.URL()
		defer func() { URL = baseURL }()
		ctx = UseClient(ctx, "testkey")

		ids := make([]int, maxBatchSize+1)
		for i := range ids {
			ids[i] = i + 1
		}

		_, err := InstrumentDescriptions(ctx, ids)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "too many instrument ids")

		_, err = ReportCalendar(ctx, ids)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "too many instrument ids")

		So(server.RequestPath, ShouldEqual, "")
	})
}
