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

// Package device drives the Nova Pro OLED through the SteelSeries GameSense
// local HTTP API. A Session registers the panel as a GameSense game, pushes
// frames to it and keeps the registration alive.
package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/novapanel/novapanel/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	SetupTimeout   = 2 * time.Second
	SetupPause     = 200 * time.Millisecond
	DisplayTimeout = 500 * time.Millisecond
	CleanupTimeout = time.Second
	CleanupFrames  = 3
	CleanupGap     = 10 * time.Millisecond
	ValueModulo    = 100

	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

var (
	ErrNotConnected = errors.New("device not connected")
	ErrRateLimited  = errors.New("frame dropped by rate limit")
)

// Status is a point-in-time view of a Session.
type Status struct {
	State     ConnectionState `json:"state"`
	ServerURL string          `json:"serverUrl"`
	LastError string          `json:"lastError,omitempty"`
	Value     int             `json:"value"`
}

// Options configure a Session. Zero values select defaults.
type Options struct {
	Client        *httpclient.Client
	Clock         clockwork.Clock
	OnStateChange func(ConnectionState)
	ServerURL     string
	MaxFPS        float64
	Heartbeat     time.Duration
}

// Session is a GameSense registration for the panel. It is safe for
// concurrent use.
type Session struct {
	client    *httpclient.Client
	clock     clockwork.Clock
	limiter   *rate.Limiter
	state     *StateManager
	onState   func(ConnectionState)
	lastErr   error
	serverURL string
	last      frames.Frame
	sentAt    time.Time
	heartbeat time.Duration
	pause     time.Duration
	value     int
	mu        syncutil.Mutex
}

func NewSession(opts Options) *Session {
	s := &Session{
		client:    opts.Client,
		clock:     opts.Clock,
		onState:   opts.OnStateChange,
		serverURL: opts.ServerURL,
		heartbeat: opts.Heartbeat,
		pause:     SetupPause,
		state:     NewStateManager(),
	}
	if s.client == nil {
		s.client = httpclient.NewClient()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.serverURL == "" {
		s.serverURL = DefaultServerURL
	}
	if opts.MaxFPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.MaxFPS), 1)
	}
	return s
}

func (s *Session) State() ConnectionState {
	return s.state.Get()
}

func (s *Session) Connected() bool {
	return s.state.Get() == StateConnected
}

func (s *Session) ServerURL() string {
	return s.serverURL
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		State:     s.state.Get(),
		ServerURL: s.serverURL,
		Value:     s.value,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *Session) transition(next ConnectionState) {
	prev := s.state.Get()
	if !s.state.Set(next) {
		log.Debug().
			Stringer("from", prev).
			Stringer("to", next).
			Msg("ignored invalid device state transition")
		return
	}
	log.Debug().Stringer("from", prev).Stringer("to", next).Msg("device state changed")
	if s.onState != nil {
		s.onState(next)
	}
}

func (s *Session) setLastErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Session) post(ctx context.Context, timeout time.Duration, path string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := s.client.PostJSONStatus(ctx, s.serverURL+path, payload, http.StatusOK)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Setup registers the panel with GameSense. Any previous registration of
// the same game is removed first so the handler binding is fresh.
func (s *Session) Setup(ctx context.Context) error {
	failState := StateDisconnected
	if s.state.Get() == StateReconnecting {
		failState = StateReconnecting
	}
	s.transition(StateConnecting)

	err := s.register(ctx)
	if err != nil {
		s.setLastErr(err)
		s.transition(failState)
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	}

	s.setLastErr(nil)
	s.transition(StateConnected)
	log.Info().Str("url", s.serverURL).Msg("registered with gamesense")
	return nil
}

func (s *Session) register(ctx context.Context) error {
	if err := s.post(ctx, SetupTimeout, "/remove_game", gameRequest{Game: GameName}); err != nil {
		log.Debug().Err(err).Msg("remove_game before setup failed")
	}

	if s.pause > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck // wrapped by Setup
		case <-s.clock.After(s.pause):
		}
	}

	err := s.post(ctx, SetupTimeout, "/game_metadata", metadataRequest{
		Game:            GameName,
		GameDisplayName: GameDisplayName,
		Developer:       Developer,
	})
	if err != nil {
		log.Debug().Err(err).Msg("game_metadata during setup failed")
	}

	return s.post(ctx, SetupTimeout, "/bind_game_event", newBindRequest())
}

// Display sends a frame to the OLED. Blank frames bypass the rate limit so
// clearing the screen is never dropped.
func (s *Session) Display(ctx context.Context, f frames.Frame) error {
	if !s.Connected() {
		return ErrNotConnected
	}
	if s.limiter != nil && !f.IsBlank() && !s.limiter.AllowN(s.clock.Now(), 1) {
		return ErrRateLimited
	}

	s.mu.Lock()
	s.value = (s.value + 1) % ValueModulo
	req := newEventRequest(f, s.value)
	s.last = f
	s.sentAt = s.clock.Now()
	s.mu.Unlock()

	if err := s.post(ctx, DisplayTimeout, "/game_event", req); err != nil {
		s.setLastErr(err)
		return err
	}
	return nil
}

// Cleanup blanks the screen and unregisters the game. Errors are logged.
func (s *Session) Cleanup(ctx context.Context) {
	if s.Connected() {
		for i := range CleanupFrames {
			if err := s.Display(ctx, frames.Frame{}); err != nil {
				log.Debug().Err(err).Msg("error blanking display during cleanup")
			}
			if i < CleanupFrames-1 {
				s.clock.Sleep(CleanupGap)
			}
		}
	}

	if err := s.post(ctx, CleanupTimeout, "/remove_game", gameRequest{Game: GameName}); err != nil {
		log.Debug().Err(err).Msg("remove_game during cleanup failed")
	}
	if s.state.Get() != StateDisconnected {
		s.transition(StateDisconnected)
	}
}

// Heartbeat re-sends the last frame once nothing has been sent for the
// heartbeat interval, until ctx is done. GameSense drops games that go
// quiet. A failed send moves the session to reconnecting and Setup is
// retried with exponential back-off. A zero interval returns immediately.
func (s *Session) Heartbeat(ctx context.Context) {
	if s.heartbeat <= 0 {
		return
	}

	ticker := s.clock.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}

		switch s.state.Get() {
		case StateConnected:
			s.mu.Lock()
			last, idle := s.last, s.clock.Since(s.sentAt)
			s.mu.Unlock()
			if idle < s.heartbeat {
				continue
			}
			err := s.Display(ctx, last)
			if err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNotConnected) {
				continue
			}
			log.Warn().Err(err).Msg("heartbeat failed, reconnecting to gamesense")
			s.transition(StateReconnecting)
			s.reconnect(ctx)
		case StateReconnecting:
			s.reconnect(ctx)
		case StateDisconnected, StateConnecting:
		}
	}
}

func (s *Session) reconnect(ctx context.Context) {
	delay := minReconnectDelay
	for {
		err := s.Setup(ctx)
		if err == nil {
			s.mu.Lock()
			last := s.last
			s.mu.Unlock()
			if err := s.Display(ctx, last); err != nil {
				log.Debug().Err(err).Msg("error restoring frame after reconnect")
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		log.Debug().Err(err).Dur("retry", delay).Msg("gamesense reconnect failed")
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(delay):
		}
		delay = min(delay*2, maxReconnectDelay)
	}
}
