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

// Package bd implements a client for the Borsdata HTTP API.
//
// Official documentation is at https://github.com/Borsdata-Sweden/API/wiki .
//
// The client is injected into a context with UseClient and shared by all of
// the endpoint operations, which are plain functions taking that context. Each
// operation issues a single authenticated GET, throttled to the configured
// number of calls per second, and reshapes the JSON payload into a
// table.Table with endpoint-specific column renames, date coercion and index
// columns. Declared index columns missing from a payload leave the table
// un-indexed rather than failing; the StrictIndex option turns this into an
// error.
//
// Non-2xx responses are reported as *StatusError carrying the HTTP status
// and response body, and are never retried.
package bd
