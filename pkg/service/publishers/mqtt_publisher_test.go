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

package publishers

import (
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(filter []string) (*MQTTPublisher, *mockMQTTClient) {
	client := &mockMQTTClient{}
	p := NewMQTTPublisher("localhost:1883", "novapanel/frames", filter)
	p.newClient = func(opts *mqtt.ClientOptions) mqtt.Client {
		client.opts = opts
		return client
	}
	return p, client
}

func TestNewMQTTPublisher_DefaultFilter(t *testing.T) {
	t.Parallel()

	p := NewMQTTPublisher("localhost:1883", "t", nil)
	assert.Equal(t, []string{models.NotificationFrameUpdated}, p.filter)
	assert.True(t, p.matchesFilter(models.NotificationFrameUpdated))
	assert.False(t, p.matchesFilter(models.NotificationDeviceState))

	p = NewMQTTPublisher("localhost:1883", "t", []string{models.NotificationLoopState})
	assert.True(t, p.matchesFilter(models.NotificationLoopState))
	assert.False(t, p.matchesFilter(models.NotificationFrameUpdated))
}

func TestMQTTPublisher_PublishesFrames(t *testing.T) {
	t.Parallel()

	p, client := newTestPublisher(nil)
	ch := make(chan models.Notification, 4)
	require.NoError(t, p.Start(ch))

	require.Len(t, client.opts.Servers, 1)
	assert.Equal(t, "tcp://localhost:1883", client.opts.Servers[0].String())
	assert.Contains(t, client.opts.ClientID, "novapanel-")

	frame := `{"id":"fire","lines":["a","b","c"],"timestamp":"2026-03-01T12:00:00Z"}`
	ch <- models.Notification{Method: models.NotificationDeviceState, Params: []byte(`{"state":"connected"}`)}
	ch <- models.Notification{Method: models.NotificationFrameUpdated, Params: []byte(frame)}

	require.Eventually(t, func() bool {
		return len(client.messages()) == 1
	}, time.Second, 5*time.Millisecond)

	msg := client.messages()[0]
	assert.Equal(t, "novapanel/frames", msg.topic)
	assert.JSONEq(t, frame, string(msg.payload))

	p.Stop()
	p.Stop()
	assert.Equal(t, 1, client.disconnectCount())
	assert.False(t, client.IsConnected())
}

func TestMQTTPublisher_ConnectError(t *testing.T) {
	t.Parallel()

	p, client := newTestPublisher(nil)
	client.connectErr = errors.New("connection refused")

	err := p.Start(make(chan models.Notification))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, client.disconnectCount())

	p.Stop()
}

func TestMQTTPublisher_PublishErrorKeepsRunning(t *testing.T) {
	t.Parallel()

	p, client := newTestPublisher(nil)
	client.publishErr = errors.New("broker gone")
	ch := make(chan models.Notification)
	require.NoError(t, p.Start(ch))

	ch <- models.Notification{Method: models.NotificationFrameUpdated}
	ch <- models.Notification{Method: models.NotificationFrameUpdated}
	assert.Empty(t, client.messages())

	close(ch)
	p.Stop()
}
