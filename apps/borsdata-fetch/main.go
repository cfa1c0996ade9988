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

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"gonum.org/v1/gonum/stat"

	"github.com/nordfin/borsdata/bd"
	"github.com/nordfin/borsdata/table"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	ConfDir  string // default: ~/.borsdata
	LogLevel logging.Level
	// Exactly one of instruments, prices or splits must be present.
	Instruments bool
	Prices      int    // instrument id to fetch prices for
	Splits      bool   //
	From        string // price start date, e.g. '2022-01-01'
	To          string // price stop date
	Stats       bool   // print price statistics instead of the price table
	CSV         bool   // dump CSV format; default: text.
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("borsdata-fetch", flag.ExitOnError)
	fs.StringVar(&flags.ConfDir, "config",
		filepath.Join(os.Getenv("HOME"), ".borsdata"),
		"configuration path")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.Instruments, "instruments", false, "print all instrument rows")
	fs.IntVar(&flags.Prices, "prices", 0, "instrument id to print prices for")
	fs.BoolVar(&flags.Splits, "splits", false, "print the stock split calendar")
	fs.StringVar(&flags.From, "from", "", "price start date, e.g. 2022-01-01")
	fs.StringVar(&flags.To, "to", "", "price stop date, e.g. 2023-01-01")
	fs.BoolVar(&flags.Stats, "stats", false, "print price statistics; requires -prices")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	kinds := 0
	if flags.Instruments {
		kinds++
	}
	if flags.Prices != 0 {
		kinds++
	}
	if flags.Splits {
		kinds++
	}
	if kinds != 1 {
		return nil, errors.Reason(
			"expected exactly one of -instruments, -prices or -splits")
	}
	if flags.Stats && flags.Prices == 0 {
		return nil, errors.Reason("-stats requires -prices")
	}
	return &flags, err
}

type Config struct {
	Key            string  `toml:"key"`              // user key for Borsdata
	CallsPerSecond float64 `toml:"calls_per_second"` // default: 10
}

func parseConfig(confDir string) (*Config, error) {
	filePath := filepath.Join(confDir, "config.toml")
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sample := `key = "YourSecretBorsdataKey"
`
			err = errors.Annotate(err,
				"config file '%s' does not exist.\nPlease create config file containing:\n%s",
				filePath, sample)
			return nil, err
		} else {
			return nil, errors.Annotate(err,
				"cannot check config file for existence: '%s'", filePath)
		}
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	return &c, nil
}

func parseDate(s string) (table.Date, error) {
	if s == "" {
		return table.Date{}, nil
	}
	return table.NewDateFromString(s)
}

// statsTable computes count, mean close and daily return volatility from a
// price table sorted descending by date.
func statsTable(prices *table.Table) (*table.Table, error) {
	col := prices.Column("close")
	if col < 0 {
		return nil, errors.Reason("no close column in the price table")
	}
	var closes []float64
	for _, row := range prices.Rows {
		if c, ok := row[col].Number(); ok {
			closes = append(closes, c)
		}
	}
	if len(closes) == 0 {
		return nil, errors.Reason("no close prices to compute statistics from")
	}
	var returns []float64
	for i := 0; i+1 < len(closes); i++ {
		if closes[i+1] != 0.0 {
			// Rows are sorted descending, the previous day is the next row.
			returns = append(returns, closes[i]/closes[i+1]-1.0)
		}
	}
	t := table.NewTable("samples", "mean close", "daily volatility")
	t.AddRow(table.Row{
		table.Number(float64(len(closes))),
		table.Number(stat.Mean(closes, nil)),
		table.Number(stat.StdDev(returns, nil)),
	})
	return t, nil
}

func fetchTable(ctx context.Context, flags *Flags) (*table.Table, error) {
	switch {
	case flags.Instruments:
		return bd.Instruments(ctx)
	case flags.Splits:
		return bd.StockSplits(ctx)
	}
	from, err := parseDate(flags.From)
	if err != nil {
		return nil, errors.Annotate(err, "invalid -from date")
	}
	to, err := parseDate(flags.To)
	if err != nil {
		return nil, errors.Annotate(err, "invalid -to date")
	}
	prices, err := bd.StockPrices(ctx, flags.Prices, from, to, 0)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch prices")
	}
	if flags.Stats {
		return statsTable(prices)
	}
	return prices, nil
}

func run(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.ConfDir)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	var opts []bd.Option
	if config.CallsPerSecond > 0 {
		opts = append(opts, bd.CallsPerSecond(config.CallsPerSecond))
	}
	ctx = bd.UseClient(ctx, config.Key, opts...)

	tbl, err := fetchTable(ctx, flags)
	if err != nil {
		return err
	}
	if flags.CSV {
		return tbl.WriteCSV(w, table.Params{})
	}
	return tbl.WriteText(w, table.Params{})
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
