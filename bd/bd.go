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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
	"golang.org/x/time/rate"

	"github.com/nordfin/borsdata/table"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default base URL of the server. It may be overwritten in tests
// before creating a new client.
var URL = "https://apiservice.borsdata.se/v1"

// Server-side history limits sent with every request.
const (
	maxYearCount = 20
	maxR12QCount = 40
	maxCount     = 20
)

// maxBatchSize is the largest instrument list accepted by the batch endpoints.
const maxBatchSize = 50

// defaultCallsPerSecond is the default outbound request rate.
const defaultCallsPerSecond = 10.0

// Client for querying the Borsdata API.
type Client struct {
	baseURL     string        // the base URL of the server
	apiKey      string        // your very own secret key
	limiter     *rate.Limiter // spaces out the starts of outbound requests
	strictIndex bool
}

// Option configures the Client in UseClient.
type Option func(c *Client)

// CallsPerSecond sets the maximum outbound request rate; default 10.
func CallsPerSecond(cps float64) Option {
	return func(c *Client) {
		if cps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(cps), 1)
		}
	}
}

// StrictIndex makes operations fail when a declared index column is missing
// from the payload, instead of returning the table un-indexed.
func StrictIndex() Option {
	return func(c *Client) { c.strictIndex = true }
}

// newClient creates a new client.
func newClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(defaultCallsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the API key and injects it into the
// context.
func UseClient(ctx context.Context, apiKey string, opts ...Option) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URL, apiKey, opts...))
}

// StatusError is a non-2xx HTTP response, reported with the status code and
// the raw response body. Test for it with errors.As.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP status %d: %s", e.StatusCode, e.Body)
}

// throttle blocks until the next outbound request is allowed to start, so that
// no two requests begin less than 1/callsPerSecond apart. Safe for concurrent
// callers; a canceled context aborts the wait.
func (c *Client) throttle(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Annotate(err, "interrupted while throttling")
	}
	return nil
}

// callAPI performs a single throttled GET of urlPath relative to the base URL
// and decodes the JSON payload into result. A non-2xx response is returned as
// *StatusError without retrying.
func callAPI(ctx context.Context, urlPath string, overrides params, result interface{}) error {
	c := GetClient(ctx)
	if c == nil {
		return errors.Reason("no client in context")
	}
	if err := c.throttle(ctx); err != nil {
		return err
	}
	uri := c.baseURL + "/" + urlPath
	logging.Debugf(ctx, "GET %s", uri)
	resp, err := fetch.Get(ctx, uri, c.queryParams(ctx, overrides))
	if resp != nil {
		defer resp.Body.Close()
		// A non-2xx status takes precedence over the fetch error, which only
		// restates it.
		if !fetch.ResponseOK(resp) {
			body, _ := io.ReadAll(resp.Body)
			return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		}
	}
	if err != nil {
		return errors.Annotate(err, "failed to fetch URL")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Annotate(err, "failed to read response body")
	}
	if err := json.Unmarshal(body, result); err != nil {
		return errors.Annotate(err, "failed to parse JSON payload")
	}
	return nil
}

// applyIndex applies the declared index columns to the table. A missing column
// is a no-op by default, or an error under the StrictIndex option.
func applyIndex(ctx context.Context, t *table.Table, ascending bool, names ...string) error {
	if t.SetIndex(ascending, names...) {
		return nil
	}
	if c := GetClient(ctx); c != nil && c.strictIndex {
		return errors.Reason("index column(s) [%s] missing from the payload",
			strings.Join(names, ", "))
	}
	return nil
}

// checkBatchSize validates the instrument list size of the batch endpoints
// before any network call.
func checkBatchSize(insIDs []int) error {
	if len(insIDs) > maxBatchSize {
		return errors.Reason("too many instrument ids: %d > %d",
			len(insIDs), maxBatchSize)
	}
	return nil
}
