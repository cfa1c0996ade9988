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

import "github.com/stockparfait/errors"

// ReportType selects the report period length of KPI and report endpoints.
type ReportType string

const (
	ReportQuarter = ReportType("quarter")
	ReportYear    = ReportType("year")
	ReportR12     = ReportType("r12")
)

func (rt ReportType) check() error {
	switch rt {
	case ReportQuarter, ReportYear, ReportR12:
		return nil
	}
	return errors.Reason("invalid report type: '%s'", rt)
}

// PriceType selects the price aggregation of the KPI history endpoint.
type PriceType string

const (
	PriceMean = PriceType("mean")
	PriceHigh = PriceType("high")
	PriceLow  = PriceType("low")
)

func (pt PriceType) check() error {
	switch pt {
	case PriceMean, PriceHigh, PriceLow:
		return nil
	}
	return errors.Reason("invalid price type: '%s'", pt)
}

// CalcGroup selects the time window of the KPI screener endpoints.
type CalcGroup string

const (
	Calc1Year  = CalcGroup("1year")
	Calc3Year  = CalcGroup("3year")
	Calc5Year  = CalcGroup("5year")
	Calc7Year  = CalcGroup("7year")
	Calc10Year = CalcGroup("10year")
	Calc15Year = CalcGroup("15year")
)

func (cg CalcGroup) check() error {
	switch cg {
	case Calc1Year, Calc3Year, Calc5Year, Calc7Year, Calc10Year, Calc15Year:
		return nil
	}
	return errors.Reason("invalid calc group: '%s'", cg)
}

// Calc selects the aggregation function of the KPI screener endpoints.
type Calc string

const (
	CalcHigh   = Calc("high")
	CalcLatest = Calc("latest")
	CalcMean   = Calc("mean")
	CalcLow    = Calc("low")
	CalcSum    = Calc("sum")
	CalcCAGR   = Calc("cagr")
)

func (c Calc) check() error {
	switch c {
	case CalcHigh, CalcLatest, CalcMean, CalcLow, CalcSum, CalcCAGR:
		return nil
	}
	return errors.Reason("invalid calc: '%s'", c)
}
