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
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDate(t *testing.T) {
	t.Parallel()

	Convey("Date works", t, func() {
		Convey("parses the common payload formats", func() {
			for _, s := range []string{
				"2022-01-02",
				"2022-01-02T00:00:00",
				"2022-01-02 15:04:05",
				"2022-01-02T15:04:05.123",
			} {
				d, err := NewDateFromString(s)
				So(err, ShouldBeNil)
				So(d, ShouldResemble, NewDate(2022, 1, 2))
			}
		})

		Convey("rejects garbage", func() {
			_, err := NewDateFromString("season 2022")
			So(err, ShouldNotBeNil)
		})

		Convey("zero date", func() {
			d, err := NewDateFromString("0000-00-00")
			So(err, ShouldBeNil)
			So(d.IsZero(), ShouldBeTrue)
		})

		Convey("String", func() {
			So(NewDate(2022, 1, 2).String(), ShouldEqual, "2022-01-02")
		})

		Convey("ordering", func() {
			So(NewDate(2021, 12, 31).Before(NewDate(2022, 1, 1)), ShouldBeTrue)
			So(NewDate(2022, 1, 1).After(NewDate(2021, 12, 31)), ShouldBeTrue)
			So(NewDate(2022, 1, 1).Before(NewDate(2022, 1, 1)), ShouldBeFalse)
		})

		Convey("JSON round-trip", func() {
			js, err := json.Marshal(NewDate(2022, 1, 2))
			So(err, ShouldBeNil)
			So(string(js), ShouldEqual, `"2022-01-02"`)

			var d Date
			So(json.Unmarshal(js, &d), ShouldBeNil)
			So(d, ShouldResemble, NewDate(2022, 1, 2))
		})
	})
}

func TestTime(t *testing.T) {
	t.Parallel()

	Convey("Time works", t, func() {
		Convey("parses a timestamp", func() {
			tm, err := NewTimeFromString("2022-01-05T11:00:00")
			So(err, ShouldBeNil)
			So(tm.String(), ShouldEqual, "2022-01-05 11:00:00")
		})

		Convey("JSON round-trip", func() {
			js, err := json.Marshal(NewTime(2022, 1, 5, 11, 0, 0))
			So(err, ShouldBeNil)
			So(string(js), ShouldEqual, `"2022-01-05 11:00:00"`)

			var tm Time
			So(tm.UnmarshalJSON(js), ShouldBeNil)
			So(tm.String(), ShouldEqual, "2022-01-05 11:00:00")
		})
	})
}
