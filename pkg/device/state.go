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
	"fmt"
	"sync/atomic"
)

// ConnectionState is the GameSense registration state of a Session.
type ConnectionState int32

const (
	// StateDisconnected means the game is not registered with GameSense.
	StateDisconnected ConnectionState = iota
	// StateConnecting means Setup is registering the game.
	StateConnecting
	// StateConnected means frames can be sent.
	StateConnected
	// StateReconnecting means a send failed and Setup will be retried.
	StateReconnecting
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s ConnectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ConnectionState) UnmarshalText(text []byte) error {
	for c := StateDisconnected; c <= StateReconnecting; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown connection state: %q", text)
}

// IsValidTransition reports whether a session may move from one state to
// another. Any state may drop to disconnected.
func IsValidTransition(from, to ConnectionState) bool {
	if to == StateDisconnected {
		return from != StateDisconnected
	}
	switch from {
	case StateDisconnected:
		return to == StateConnecting
	case StateConnecting:
		return to == StateConnected || to == StateReconnecting
	case StateConnected:
		return to == StateReconnecting || to == StateConnecting
	case StateReconnecting:
		return to == StateConnecting
	default:
		return false
	}
}

// StateManager holds a ConnectionState that is safe for concurrent use.
type StateManager struct {
	state atomic.Int32
}

// NewStateManager returns a manager in StateDisconnected.
func NewStateManager() *StateManager {
	return &StateManager{}
}

func (sm *StateManager) Get() ConnectionState {
	return ConnectionState(sm.state.Load())
}

// Set moves to next if the transition is valid and reports whether it did.
func (sm *StateManager) Set(next ConnectionState) bool {
	for {
		current := ConnectionState(sm.state.Load())
		if !IsValidTransition(current, next) {
			return false
		}
		if sm.state.CompareAndSwap(int32(current), int32(next)) {
			return true
		}
	}
}

// Force sets the state without validation.
func (sm *StateManager) Force(next ConnectionState) {
	sm.state.Store(int32(next))
}
