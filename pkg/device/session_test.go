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

package device

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGameSense struct {
	status map[string]int
	calls  []string
	events []eventRequest
	mu     sync.Mutex
}

func newFakeGameSense(t *testing.T) (*fakeGameSense, *httptest.Server) {
	t.Helper()

	gs := &fakeGameSense{status: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gs.mu.Lock()
		defer gs.mu.Unlock()

		gs.calls = append(gs.calls, r.URL.Path)
		if r.URL.Path == "/game_event" {
			var ev eventRequest
			if err := json.NewDecoder(r.Body).Decode(&ev); err == nil {
				gs.events = append(gs.events, ev)
			}
		}

		code, ok := gs.status[r.URL.Path]
		if !ok {
			code = http.StatusOK
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return gs, srv
}

func (gs *fakeGameSense) setStatus(path string, code int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.status[path] = code
}

func (gs *fakeGameSense) Calls() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]string(nil), gs.calls...)
}

func (gs *fakeGameSense) Events() []eventRequest {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]eventRequest(nil), gs.events...)
}

func (gs *fakeGameSense) count(path string) int {
	n := 0
	for _, c := range gs.Calls() {
		if c == path {
			n++
		}
	}
	return n
}

func newTestSession(url string, opts Options) *Session {
	opts.ServerURL = url
	s := NewSession(opts)
	s.pause = 0
	return s
}

func TestSetup(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)

	var mu sync.Mutex
	var states []ConnectionState
	s := newTestSession(srv.URL, Options{OnStateChange: func(cs ConnectionState) {
		mu.Lock()
		states = append(states, cs)
		mu.Unlock()
	}})

	require.NoError(t, s.Setup(context.Background()))
	assert.True(t, s.Connected())
	assert.Equal(t, []string{"/remove_game", "/game_metadata", "/bind_game_event"}, gs.Calls())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []ConnectionState{StateConnecting, StateConnected}, states)
}

func TestSetup_BindRejected(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	gs.setStatus("/bind_game_event", http.StatusInternalServerError)
	s := newTestSession(srv.URL, Options{})

	err := s.Setup(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, StateDisconnected, s.State())
	assert.Contains(t, s.Status().LastError, "500")
}

func TestSetup_RemoveGameFailureIgnored(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	gs.setStatus("/remove_game", http.StatusBadRequest)
	s := newTestSession(srv.URL, Options{})

	require.NoError(t, s.Setup(context.Background()))
	assert.True(t, s.Connected())
}

func TestSetup_MetadataFailureIgnored(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	gs.setStatus("/game_metadata", http.StatusInternalServerError)
	s := newTestSession(srv.URL, Options{})

	require.NoError(t, s.Setup(context.Background()))
	assert.True(t, s.Connected())
	assert.Equal(t, []string{"/remove_game", "/game_metadata", "/bind_game_event"}, gs.Calls())
}

func TestSetup_BindNeedsExactlyOK(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	gs.setStatus("/bind_game_event", http.StatusNoContent)
	s := newTestSession(srv.URL, Options{})

	err := s.Setup(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, s.Connected())
	assert.Contains(t, s.Status().LastError, "204")
}

func TestSetup_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := newTestSession(url, Options{})
	err := s.Setup(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, s.Connected())
}

func TestDisplay_NotConnected(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})

	err := s.Display(context.Background(), frames.NewFrame("hello"))
	require.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, gs.Calls())
}

func TestDisplay_Payload(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})
	require.NoError(t, s.Setup(context.Background()))

	require.NoError(t, s.Display(context.Background(), frames.Frame{"hi there", "", "a b c d e f g h"}))

	events := gs.Events()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, GameName, ev.Game)
	assert.Equal(t, "DISPLAY", ev.Event)
	assert.Equal(t, 1, ev.Data.Value)
	assert.Equal(t, "hi⠀there", ev.Data.Frame.L1)
	assert.Empty(t, ev.Data.Frame.L2)
	assert.Equal(t, "a⠀b⠀c⠀d⠀e⠀f⠀g", ev.Data.Frame.L3)
}

func TestDisplay_ValueWraps(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})
	require.NoError(t, s.Setup(context.Background()))

	s.value = ValueModulo - 1
	require.NoError(t, s.Display(context.Background(), frames.NewFrame("x")))
	assert.Equal(t, 0, gs.Events()[0].Data.Value)
	assert.Equal(t, 0, s.Status().Value)
}

func TestDisplay_ErrorStatus(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})
	require.NoError(t, s.Setup(context.Background()))
	gs.setStatus("/game_event", http.StatusBadRequest)

	err := s.Display(context.Background(), frames.NewFrame("x"))
	require.Error(t, err)
	assert.True(t, s.Connected(), "a failed send does not drop the registration")
}

func TestDisplay_AcceptedIsNotOK(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})
	require.NoError(t, s.Setup(context.Background()))
	gs.setStatus("/game_event", http.StatusAccepted)

	err := s.Display(context.Background(), frames.NewFrame("x"))
	require.Error(t, err)
	assert.Contains(t, s.Status().LastError, "202")
}

func TestDisplay_RateLimited(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	clock := clockwork.NewFakeClock()
	s := newTestSession(srv.URL, Options{MaxFPS: 1, Clock: clock})
	require.NoError(t, s.Setup(context.Background()))

	ctx := context.Background()
	require.NoError(t, s.Display(ctx, frames.NewFrame("one")))
	require.ErrorIs(t, s.Display(ctx, frames.NewFrame("two")), ErrRateLimited)
	require.NoError(t, s.Display(ctx, frames.Frame{}), "blank frames are never limited")

	clock.Advance(time.Second)
	require.NoError(t, s.Display(ctx, frames.NewFrame("three")))
	assert.Len(t, gs.Events(), 3)
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})
	require.NoError(t, s.Setup(context.Background()))

	s.Cleanup(context.Background())

	calls := gs.Calls()
	assert.Equal(t, []string{"/game_event", "/game_event", "/game_event", "/remove_game"}, calls[3:])
	for _, ev := range gs.Events() {
		assert.Empty(t, ev.Data.Frame.L1)
	}
	assert.Equal(t, StateDisconnected, s.State())
}

func TestCleanup_NotConnected(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	s := newTestSession(srv.URL, Options{})

	s.Cleanup(context.Background())
	assert.Equal(t, []string{"/remove_game"}, gs.Calls())
	assert.Equal(t, StateDisconnected, s.State())
}

func runHeartbeat(t *testing.T, s *Session) (context.Context, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Heartbeat(ctx)
	}()
	return ctx, func() {
		cancel()
		<-done
	}
}

func TestHeartbeat_ResendsIdleFrame(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	clock := clockwork.NewFakeClock()
	s := newTestSession(srv.URL, Options{Clock: clock, Heartbeat: 10 * time.Second})
	require.NoError(t, s.Setup(context.Background()))
	require.NoError(t, s.Display(context.Background(), frames.NewFrame("keep", "me")))

	ctx, stop := runHeartbeat(t, s)
	defer stop()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(10 * time.Second)

	assert.Eventually(t, func() bool { return len(gs.Events()) == 2 }, time.Second, 5*time.Millisecond)
	events := gs.Events()
	assert.Equal(t, events[0].Data.Frame, events[1].Data.Frame)
	assert.Equal(t, 2, events[1].Data.Value)
}

func TestHeartbeat_ReconnectsAfterFailure(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t)
	clock := clockwork.NewFakeClock()
	s := newTestSession(srv.URL, Options{Clock: clock, Heartbeat: 10 * time.Second})
	require.NoError(t, s.Setup(context.Background()))
	require.NoError(t, s.Display(context.Background(), frames.NewFrame("x")))
	gs.setStatus("/game_event", http.StatusInternalServerError)

	ctx, stop := runHeartbeat(t, s)
	defer stop()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(10 * time.Second)

	assert.Eventually(t, func() bool {
		return gs.count("/bind_game_event") == 2 && s.Connected()
	}, time.Second, 5*time.Millisecond)
}

func TestHeartbeat_Disabled(t *testing.T) {
	t.Parallel()

	s := NewSession(Options{})
	s.Heartbeat(context.Background())
}
