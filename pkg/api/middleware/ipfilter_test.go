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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRemoteIP(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "192.168.1.5", ParseRemoteIP("192.168.1.5:4000").String())
	assert.Equal(t, "192.168.1.5", ParseRemoteIP("192.168.1.5").String())
	assert.Equal(t, "::1", ParseRemoteIP("[::1]:4000").String())
	assert.Nil(t, ParseRemoteIP("not-an-ip"))

	assert.True(t, IsLoopbackAddr("127.0.0.1:1"))
	assert.False(t, IsLoopbackAddr("10.0.0.1:1"))
}

func TestIPFilter_IsAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		allowed []string
		want    bool
	}{
		{name: "empty allows all", allowed: nil, addr: "8.8.8.8:1", want: true},
		{name: "exact ip", allowed: []string{"192.168.1.10"}, addr: "192.168.1.10:5000", want: true},
		{name: "other ip", allowed: []string{"192.168.1.10"}, addr: "192.168.1.11:5000", want: false},
		{name: "cidr", allowed: []string{"10.0.0.0/8"}, addr: "10.20.30.40:1", want: true},
		{name: "entry with port", allowed: []string{"192.168.1.10:7373"}, addr: "192.168.1.10:1", want: true},
		{name: "mapped ipv4", allowed: []string{"192.168.1.10"}, addr: "[::ffff:192.168.1.10]:1", want: true},
		{name: "loopback always", allowed: []string{"10.0.0.0/8"}, addr: "127.0.0.1:1", want: true},
		{name: "ipv6 cidr", allowed: []string{"fd00::/8"}, addr: "[fd12::1]:1", want: true},
		{name: "invalid entry skipped", allowed: []string{"nonsense", "10.0.0.1"}, addr: "10.0.0.1:1", want: true},
		{name: "unparsable remote", allowed: []string{"10.0.0.1"}, addr: "garbage", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewIPFilter(tt.allowed).IsAllowed(tt.addr))
		})
	}
}

func TestHTTPIPFilterMiddleware(t *testing.T) {
	t.Parallel()

	handler := HTTPIPFilterMiddleware(NewIPFilter([]string{"10.0.0.0/8"}))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v0.1", http.NoBody)
	req.RemoteAddr = "10.1.1.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req.RemoteAddr = "192.168.1.1:1234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
