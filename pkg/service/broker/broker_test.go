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

package broker

import (
	"context"
	"testing"
	"time"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func recv(t *testing.T, ch <-chan models.Notification) models.Notification {
	t.Helper()
	select {
	case n, ok := <-ch:
		require.True(t, ok, "channel closed")
		return n
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting for notification")
	}
	return models.Notification{}
}

func waitDone(t *testing.T, b *Broker) {
	t.Helper()
	select {
	case <-b.Done():
	case <-time.After(time.Second):
		require.FailNow(t, "broker did not exit")
	}
}

func TestBroker_SubscribeIDs(t *testing.T) {
	t.Parallel()

	b := NewBroker(context.Background(), make(chan models.Notification))

	_, id1 := b.Subscribe(1)
	_, id2 := b.Subscribe(1)
	assert.Equal(t, 0, id1)
	assert.Equal(t, 1, id2)
	assert.Len(t, b.subscribers, 2)

	b.Unsubscribe(id1)
	b.Unsubscribe(id1)
	assert.Len(t, b.subscribers, 1)
	b.Stop()
	assert.Empty(t, b.subscribers)
}

func TestBroker_FansOut(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	source := make(chan models.Notification)
	b := NewBroker(ctx, source)
	sub1, _ := b.Subscribe(4)
	sub2, _ := b.Subscribe(4)
	b.Start()

	source <- models.Notification{Method: models.NotificationFrameUpdated, Params: []byte(`{"id":"fire"}`)}

	assert.Equal(t, models.NotificationFrameUpdated, recv(t, sub1).Method)
	n := recv(t, sub2)
	assert.JSONEq(t, `{"id":"fire"}`, string(n.Params))

	cancel()
	waitDone(t, b)

	_, ok := <-sub1
	assert.False(t, ok, "subscriber channel should be closed on shutdown")
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	source := make(chan models.Notification)
	b := NewBroker(context.Background(), source)
	slow, _ := b.Subscribe(1)
	fast, _ := b.Subscribe(10)
	b.Start()

	for range 5 {
		source <- models.Notification{Method: models.NotificationLoopState}
	}
	for range 5 {
		recv(t, fast)
	}

	close(source)
	waitDone(t, b)

	recv(t, slow)
	_, ok := <-slow
	assert.False(t, ok, "later notifications should have been dropped")
}

func TestBroker_UnsubscribeWhileRunning(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source := make(chan models.Notification)
	b := NewBroker(ctx, source)
	sub, id := b.Subscribe(4)
	other, _ := b.Subscribe(4)
	b.Start()

	b.Unsubscribe(id)
	_, ok := <-sub
	assert.False(t, ok)

	source <- models.Notification{Method: models.NotificationDeviceState}
	assert.Equal(t, models.NotificationDeviceState, recv(t, other).Method)

	cancel()
	waitDone(t, b)
}
