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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_Burst(t *testing.T) {
	t.Parallel()

	rl := NewIPRateLimiter(clockwork.NewFakeClock())
	for i := range BurstSize {
		assert.True(t, rl.Allow("192.168.1.100"), "request %d within burst", i+1)
	}
	assert.False(t, rl.Allow("192.168.1.100"))
	assert.True(t, rl.Allow("192.168.1.101"), "other clients have their own bucket")
}

func TestIPRateLimiter_Refills(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	rl := NewIPRateLimiter(clock)
	for range BurstSize {
		rl.Allow("10.0.0.2")
	}
	require.False(t, rl.Allow("10.0.0.2"))

	clock.Advance(2 * time.Minute / RequestsPerMinute)
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	rl := NewIPRateLimiter(clock)
	rl.Allow("old.ip")
	clock.Advance(11 * time.Minute)
	rl.Allow("new.ip")

	rl.Cleanup()
	assert.Equal(t, 1, rl.size())
	assert.Contains(t, rl.limiters, "new.ip")
}

func TestIPRateLimiter_StartCleanup(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	rl := NewIPRateLimiter(clock)
	rl.Allow("old.ip")
	rl.StartCleanup(ctx)

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(limiterMaxAge + cleanupInterval)

	assert.Eventually(t, func() bool { return rl.size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHTTPRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	rl := NewIPRateLimiter(clockwork.NewFakeClock())
	calls := 0
	handler := HTTPRateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for range BurstSize {
		req := httptest.NewRequest(http.MethodPost, "/api/v0.1", http.NoBody)
		req.RemoteAddr = "192.168.1.100:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v0.1", http.NoBody)
	req.RemoteAddr = "192.168.1.100:54321"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, BurstSize, calls)
}
