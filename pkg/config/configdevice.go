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

package config

import "time"

const (
	DefaultMaxFPS           = 20.0
	DefaultHeartbeatSeconds = 10
)

type Device struct {
	MaxFPS           *float64 `toml:"max_fps,omitempty" validate:"omitempty,gt=0,lte=60"`
	HeartbeatSeconds *int     `toml:"heartbeat_seconds,omitempty" validate:"omitempty,gte=0,lte=3600"`
	ServerURL        string   `toml:"server_url,omitempty" validate:"omitempty,http_url"`
}

// DeviceServerURL returns the configured GameSense address, or an empty
// string when it should be discovered from coreProps.json.
func (c *Instance) DeviceServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Device.ServerURL
}

func (c *Instance) SetDeviceServerURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Device.ServerURL = url
}

func (c *Instance) DeviceMaxFPS() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Device.MaxFPS == nil {
		return DefaultMaxFPS
	}
	return *c.vals.Device.MaxFPS
}

// DeviceHeartbeat is the idle interval after which the last frame is
// re-sent. Zero disables the heartbeat.
func (c *Instance) DeviceHeartbeat() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Device.HeartbeatSeconds == nil {
		return DefaultHeartbeatSeconds * time.Second
	}
	return time.Duration(*c.vals.Device.HeartbeatSeconds) * time.Second
}
