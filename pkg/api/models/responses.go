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

package models

import (
	"time"

	"github.com/novapanel/novapanel/pkg/animation"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/presets"
)

type PresetsResponse struct {
	Categories []string         `json:"categories"`
	Presets    []presets.Preset `json:"presets"`
}

type PresetsExportResponse struct {
	CSV string `json:"csv"`
}

type PresetsReloadResponse struct {
	Count int `json:"count"`
}

type SettingsResponse struct {
	config.SettingsValues
	DebugLogging bool `json:"debugLogging"`
}

type StatusResponse struct {
	Device  device.Status    `json:"device"`
	Loop    animation.Status `json:"loop"`
	Preview []string         `json:"preview"`
}

type SpeedResponse struct {
	Ms float64 `json:"ms"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

// FrameUpdatedParams is sent for every published frame, on the API and over
// MQTT.
type FrameUpdatedParams struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Lines     []string  `json:"lines"`
}

type DeviceStateParams struct {
	State     device.ConnectionState `json:"state"`
	ServerURL string                 `json:"serverUrl"`
}

type PresetsReloadedParams struct {
	Count int `json:"count"`
}
