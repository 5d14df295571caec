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

// Package models holds the JSON-RPC envelope and the payloads exchanged
// over the panel API.
package models

import "encoding/json"

const (
	MethodPresets        = "presets"
	MethodPresetsExport  = "presets.export"
	MethodPresetsReload  = "presets.reload"
	MethodPlay           = "play"
	MethodCustom         = "custom"
	MethodStop           = "stop"
	MethodClear          = "clear"
	MethodSpeed          = "speed"
	MethodSettings       = "settings"
	MethodSettingsUpdate = "settings.update"
	MethodStatus         = "status"
	MethodSysinfo        = "sysinfo"
	MethodVersion        = "version"
)

const (
	NotificationFrameUpdated    = "frame.updated"
	NotificationDeviceState     = "device.state"
	NotificationPresetsReloaded = "presets.reloaded"
	NotificationLoopState       = "loop.state"
)

// Notification is a server-initiated message with no id.
type Notification struct {
	Method string
	Params json.RawMessage
}

type RequestObject struct {
	ID      RPCID           `json:"id,omitzero"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NotificationObject is the wire form of a Notification.
type NotificationObject struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}

// ResponseErrorObject omits result so error replies never carry
// "result": null, while ResponseObject still sends null results.
type ResponseErrorObject struct {
	Error   *ErrorObject `json:"error"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}
