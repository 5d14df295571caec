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

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRPCID_Unmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		null    bool
		wantErr bool
	}{
		{name: "string", raw: `"abc"`, want: `"abc"`},
		{name: "number", raw: `42`, want: `42`},
		{name: "null", raw: `null`, want: `null`, null: true},
		{name: "object", raw: `{"a":1}`, wantErr: true},
		{name: "array", raw: ` [1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var id RPCID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRPCID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
			assert.Equal(t, tt.null, id.IsNull())
			assert.False(t, id.IsAbsent())
		})
	}
}

func TestRPCID_AbsentInRequest(t *testing.T) {
	t.Parallel()

	var req RequestObject
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"stop"}`), &req))
	assert.True(t, req.ID.IsAbsent())
	assert.False(t, req.ID.IsNull())
	assert.Equal(t, "null", req.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":null,"method":"stop"}`), &req))
	assert.False(t, req.ID.IsAbsent())
	assert.True(t, req.ID.IsNull())
}

func TestRPCID_EchoedInResponse(t *testing.T) {
	t.Parallel()

	resp := ResponseObject{JSONRPC: "2.0", ID: NewStringID("req-1"), Result: "ok"}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":"req-1","result":"ok"}`, string(data))

	data, err = json.Marshal(ResponseErrorObject{
		JSONRPC: "2.0",
		Error:   &ErrorObject{Code: -32601, Message: "Method not found"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32601,"message":"Method not found"}}`, string(data))

	num := NewNumberID(7)
	assert.Equal(t, "7", num.String())
}
