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

	"github.com/stockparfait/errors"

	"github.com/nordfin/borsdata/table"
)

// Branches returns the branch reference data indexed by id.
func Branches(ctx context.Context) (*table.Table, error) {
	var res struct {
		Branches []record `json:"branches"`
	}
	if err := callAPI(ctx, "branches", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch branches")
	}
	t := tableFrom(res.Branches)
	if err := applyIndex(ctx, t, true, "id"); err != nil {
		return nil, err
	}
	return t, nil
}

// Countries returns the country reference data indexed by id.
func Countries(ctx context.Context) (*table.Table, error) {
	var res struct {
		Countries []record `json:"countries"`
	}
	if err := callAPI(ctx, "countries", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch countries")
	}
	t := tableFrom(res.Countries)
	if err := applyIndex(ctx, t, true, "id"); err != nil {
		return nil, err
	}
	return t, nil
}

// Markets returns the market reference data indexed by id.
func Markets(ctx context.Context) (*table.Table, error) {
	var res struct {
		Markets []record `json:"markets"`
	}
	if err := callAPI(ctx, "markets", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch markets")
	}
	t := tableFrom(res.Markets)
	if err := applyIndex(ctx, t, true, "id"); err != nil {
		return nil, err
	}
	return t, nil
}

// Sectors returns the sector reference data indexed by id.
func Sectors(ctx context.Context) (*table.Table, error) {
	var res struct {
		Sectors []record `json:"sectors"`
	}
	if err := callAPI(ctx, "sectors", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch sectors")
	}
	t := tableFrom(res.Sectors)
	if err := applyIndex(ctx, t, true, "id"); err != nil {
		return nil, err
	}
	return t, nil
}

// TranslationMetadata returns the translation metadata indexed by
// translationKey.
func TranslationMetadata(ctx context.Context) (*table.Table, error) {
	var res struct {
		TranslationMetadatas []record `json:"translationMetadatas"`
	}
	if err := callAPI(ctx, "translationmetadata", nil, &res); err != nil {
		return nil, errors.Annotate(err, "failed to fetch translation metadata")
	}
	t := tableFrom(res.TranslationMetadatas)
	if err := applyIndex(ctx, t, true, "translationKey"); err != nil {
		return nil, err
	}
	return t, nil
}
