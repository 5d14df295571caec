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

package notifications

import (
	"testing"
	"time"

	"github.com/novapanel/novapanel/pkg/animation"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_NonBlocking(t *testing.T) {
	t.Parallel()

	ns := make(chan models.Notification)
	done := make(chan struct{})
	go func() {
		PresetsReloaded(ns, 3)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send blocked on a full channel")
	}
}

func TestFrameUpdated(t *testing.T) {
	t.Parallel()

	ns := make(chan models.Notification, 1)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	FrameUpdated(ns, "fire", frames.NewFrame("a", "b", "c"), at)

	n := <-ns
	assert.Equal(t, models.NotificationFrameUpdated, n.Method)
	assert.JSONEq(t,
		`{"id":"fire","lines":["a","b","c"],"timestamp":"2026-03-01T12:00:00Z"}`,
		string(n.Params))
}

func TestStateNotifications(t *testing.T) {
	t.Parallel()

	ns := make(chan models.Notification, 2)
	DeviceState(ns, device.StateConnected, "http://127.0.0.1:3650")
	LoopState(ns, animation.Status{ID: "snake", State: animation.StateRunning, SpeedMs: 200})

	n := <-ns
	require.Equal(t, models.NotificationDeviceState, n.Method)
	assert.JSONEq(t, `{"state":"connected","serverUrl":"http://127.0.0.1:3650"}`, string(n.Params))

	n = <-ns
	require.Equal(t, models.NotificationLoopState, n.Method)
	assert.JSONEq(t, `{"id":"snake","state":"running","speedMs":200}`, string(n.Params))
}
