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

// Package client talks to a running Nova Panel service over its local
// WebSocket API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestTimeout   = errors.New("request timed out")
	ErrInvalidParams    = errors.New("invalid params")
	ErrRequestCancelled = errors.New("request cancelled")
)

// localURL is the service's WebSocket endpoint as seen from this machine.
// Wildcard listen addresses are dialled on localhost.
func localURL(cfg *config.Instance) string {
	host, port, err := net.SplitHostPort(cfg.APIListen())
	if err != nil {
		host, port = "localhost", ""
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(host, port),
		Path:   config.APIPath,
	}
	return u.String()
}

func closeConn(c *websocket.Conn) {
	if err := c.Close(); err != nil {
		log.Debug().Err(err).Msg("error closing websocket")
	}
}

// waitDone blocks until done closes, the API timeout passes or ctx ends.
// A zero timeout uses config.APIRequestTimeout and a negative one waits
// forever.
func waitDone(ctx context.Context, c *websocket.Conn, done <-chan struct{}, timeout time.Duration) error {
	var timerChan <-chan time.Time
	switch {
	case timeout == 0:
		timer := time.NewTimer(config.APIRequestTimeout)
		defer timer.Stop()
		timerChan = timer.C
	case timeout > 0:
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timerChan = timer.C
	}

	select {
	case <-done:
		return nil
	case <-timerChan:
		closeConn(c)
		return ErrRequestTimeout
	case <-ctx.Done():
		closeConn(c)
		return ErrRequestCancelled
	}
}

// LocalClient sends a single method with params to the local running
// service, waits for the matching response and returns its result as JSON.
func LocalClient(
	ctx context.Context,
	cfg *config.Instance,
	method string,
	params string,
) (string, error) {
	id := models.NewStringID(uuid.NewString())
	req := models.RequestObject{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
	}

	if params != "" {
		if !json.Valid([]byte(params)) {
			return "", ErrInvalidParams
		}
		req.Params = json.RawMessage(params)
	}

	c, resp, err := websocket.DefaultDialer.DialContext(ctx, localURL(cfg), nil)
	if err != nil {
		return "", err //nolint:wrapcheck // dial errors are descriptive
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer closeConn(c)

	done := make(chan struct{})
	var result *models.ResponseObject

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Msg("error reading message")
				return
			}

			var m models.ResponseObject
			if err := json.Unmarshal(message, &m); err != nil {
				continue
			}
			if m.JSONRPC != "2.0" {
				log.Warn().Msg("invalid jsonrpc version")
				continue
			}
			if !bytes.Equal(m.ID.RawMessage, id.RawMessage) {
				continue
			}

			result = &m
			return
		}
	}()

	if err := c.WriteJSON(req); err != nil {
		return "", err //nolint:wrapcheck // write errors are descriptive
	}

	if err := waitDone(ctx, c, done, 0); err != nil {
		return "", err
	}
	if result == nil {
		return "", ErrRequestTimeout
	}
	if result.Error != nil {
		return "", errors.New(result.Error.Message)
	}

	b, err := json.Marshal(result.Result)
	if err != nil {
		return "", err //nolint:wrapcheck // result came from json
	}
	return string(b), nil
}

// WaitNotification blocks until the service sends a notification with the
// given method and returns its params.
func WaitNotification(
	ctx context.Context,
	timeout time.Duration,
	cfg *config.Instance,
	method string,
) (string, error) {
	c, resp, err := websocket.DefaultDialer.DialContext(ctx, localURL(cfg), nil)
	if err != nil {
		return "", err //nolint:wrapcheck // dial errors are descriptive
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer closeConn(c)

	done := make(chan struct{})
	var notif *models.RequestObject

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Msg("error reading message")
				return
			}

			var m models.RequestObject
			if err := json.Unmarshal(message, &m); err != nil {
				continue
			}
			if m.JSONRPC != "2.0" || !m.ID.IsAbsent() || m.Method != method {
				continue
			}

			notif = &m
			return
		}
	}()

	if err := waitDone(ctx, c, done, timeout); err != nil {
		return "", err
	}
	if notif == nil {
		return "", ErrRequestTimeout
	}
	if len(notif.Params) == 0 {
		return "null", nil
	}
	return string(notif.Params), nil
}

// IsServiceRunning reports whether a service answers on the local API.
func IsServiceRunning(cfg *config.Instance) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LocalClient(ctx, cfg, models.MethodVersion, ""); err != nil {
		log.Debug().Err(err).Msg("error checking if service running")
		return false
	}
	return true
}

// WaitForAPI polls until the service answers or timeout passes.
func WaitForAPI(cfg *config.Instance, timeout, interval time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if IsServiceRunning(cfg) {
			return true
		}
		if time.Now().Add(interval).After(deadline) {
			time.Sleep(time.Until(deadline))
			return false
		}
		time.Sleep(interval)
	}
}
