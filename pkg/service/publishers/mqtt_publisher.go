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

// Package publishers mirrors panel notifications to external systems.
package publishers

import (
	"fmt"
	"slices"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/rs/zerolog/log"
)

const (
	connectTimeout  = 10 * time.Second
	publishTimeout  = 2 * time.Second
	disconnectQuiet = 250
)

// DefaultFilter publishes only frames when a broker entry has no filter.
var DefaultFilter = []string{models.NotificationFrameUpdated}

// MQTTPublisher forwards notification params, without the JSON-RPC
// envelope, to one topic on one broker.
type MQTTPublisher struct {
	client    mqtt.Client
	newClient func(*mqtt.ClientOptions) mqtt.Client
	stopCh    chan struct{}
	done      chan struct{}
	broker    string
	topic     string
	filter    []string
}

func NewMQTTPublisher(broker, topic string, filter []string) *MQTTPublisher {
	if len(filter) == 0 {
		filter = DefaultFilter
	}
	return &MQTTPublisher{
		broker:    broker,
		topic:     topic,
		filter:    filter,
		newClient: mqtt.NewClient,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start connects and forwards notifications until Stop is called or the
// channel closes. The paho client keeps reconnecting on its own after the
// first connection.
func (p *MQTTPublisher) Start(notifications <-chan models.Notification) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker("tcp://" + p.broker)
	opts.SetClientID("novapanel-" + uuid.New().String()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.OnConnect = func(_ mqtt.Client) {
		log.Info().Str("broker", p.broker).Msg("mqtt publisher: connected")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", p.broker).Msg("mqtt publisher: connection lost")
	}

	client := p.newClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		client.Disconnect(0)
		return fmt.Errorf("timed out connecting to MQTT broker %s", p.broker)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	p.client = client

	log.Info().Str("broker", p.broker).Str("topic", p.topic).Msg("mqtt publisher started")
	go p.run(notifications)
	return nil
}

// Stop is safe to call more than once.
func (p *MQTTPublisher) Stop() {
	select {
	case <-p.stopCh:
		return
	default:
		close(p.stopCh)
	}

	if p.client != nil {
		<-p.done
		if p.client.IsConnected() {
			p.client.Disconnect(disconnectQuiet)
		}
	}
}

func (p *MQTTPublisher) run(notifications <-chan models.Notification) {
	defer close(p.done)
	for {
		select {
		case <-p.stopCh:
			return
		case notif, ok := <-notifications:
			if !ok {
				log.Debug().Msg("mqtt publisher: notification channel closed")
				return
			}
			if !p.matchesFilter(notif.Method) {
				continue
			}
			p.publish(notif)
		}
	}
}

func (p *MQTTPublisher) publish(notif models.Notification) {
	payload := []byte(notif.Params)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("method", notif.Method).Msg("mqtt publisher: publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Str("method", notif.Method).Msg("mqtt publisher: failed to publish")
	}
}

func (p *MQTTPublisher) matchesFilter(method string) bool {
	return slices.Contains(p.filter, method)
}
