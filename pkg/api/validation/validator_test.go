/*
Nova Panel
Copyright (c) 2026 The Nova Panel Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of Nova Panel.

Nova Panel is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Nova Panel is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Nova Panel.  If not, see <http://www.gnu.org/licenses/>.
*/

package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlayParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantMsg string
	}{
		{name: "builtin", id: "japanese_rain"},
		{name: "art", id: "cat2"},
		{name: "empty", id: "", wantMsg: "id is required"},
		{name: "upper case", id: "Fire", wantMsg: "must contain only"},
		{name: "path", id: "../etc", wantMsg: "must contain only"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(&models.PlayParams{ID: tt.id})
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	gaming := "Gaming"
	assert.NoError(t, v.Validate(&models.PresetsParams{Category: &gaming}))
	assert.NoError(t, v.Validate(&models.PresetsParams{}))

	bogus := "Sports"
	err := v.Validate(&models.PresetsParams{Category: &bogus})
	require.Error(t, err)
	assert.Equal(t, `category "Sports" not found`, err.Error())
}

func TestValidateCustomParams(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	assert.NoError(t, v.Validate(&models.CustomParams{Lines: []string{"hello"}}))
	assert.NoError(t, v.Validate(&models.CustomParams{Lines: []string{"a", "b", "c"}}))

	err := v.Validate(&models.CustomParams{Lines: []string{"a", "b", "c", "d"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 3")

	err = v.Validate(&models.CustomParams{Lines: []string{strings.Repeat("x", 65)}})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "max", verr.Fields[0].Tag)
}

func TestValidateAndUnmarshal(t *testing.T) {
	t.Parallel()

	var params models.SpeedParams
	require.ErrorIs(t, ValidateAndUnmarshal(nil, &params), ErrMissingParams)
	require.ErrorIs(t, ValidateAndUnmarshal(json.RawMessage(`{"ms":`), &params), ErrInvalidParams)

	err := ValidateAndUnmarshal(json.RawMessage(`{"ms":0}`), &params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than 0")

	require.NoError(t, ValidateAndUnmarshal(json.RawMessage(`{"ms":120}`), &params))
	assert.InDelta(t, 120.0, params.Ms, 0.001)
}
