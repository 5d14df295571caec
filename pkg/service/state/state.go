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

// Package state holds the runtime state shared by the service and the API:
// the service lifetime, the notification queue and the frame currently on
// the panel.
package state

import (
	"context"
	"time"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// NotificationBuffer is the size of the queue in front of the broker.
const NotificationBuffer = 200

// LastFrame is the most recently published frame.
type LastFrame struct {
	At    time.Time
	ID    string
	Frame frames.Frame
}

// State must not send notifications while mu is held.
type State struct {
	ctx           context.Context
	ctxCancelFunc context.CancelFunc
	Notifications chan<- models.Notification
	lastFrame     LastFrame
	mu            syncutil.RWMutex
	stopService   bool
}

func NewState() (state *State, notificationCh <-chan models.Notification) {
	ns := make(chan models.Notification, NotificationBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	return &State{
		ctx:           ctx,
		ctxCancelFunc: cancel,
		Notifications: ns,
	}, ns
}

func (s *State) GetContext() context.Context {
	return s.ctx
}

func (s *State) StopService() {
	s.mu.Lock()
	s.stopService = true
	s.mu.Unlock()
	log.Debug().Msg("stopping service")
	s.ctxCancelFunc()
}

func (s *State) ShouldStopService() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopService
}

func (s *State) SetLastFrame(id string, f frames.Frame, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFrame = LastFrame{ID: id, Frame: f, At: at}
}

func (s *State) LastFrame() LastFrame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFrame
}
