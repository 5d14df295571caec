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
	"strings"

	"github.com/novapanel/novapanel/pkg/frames"
)

const (
	// GameName is the id the panel registers with GameSense.
	GameName        = "NOVAPANEL"
	GameDisplayName = "Nova Panel"
	Developer       = "Nova Panel Contributors"

	eventName = "DISPLAY"

	// BlankRune replaces spaces on the wire. GameSense collapses plain
	// spaces, which would shift the art.
	BlankRune = '\u2800'
)

type gameRequest struct {
	Game string `json:"game"`
}

type metadataRequest struct {
	Game            string `json:"game"`
	GameDisplayName string `json:"game_display_name"`
	Developer       string `json:"developer"`
}

type lineBinding struct {
	ContextFrameKey string `json:"context-frame-key"`
	HasText         bool   `json:"has-text"`
}

type screenData struct {
	Lines []lineBinding `json:"lines"`
}

type screenHandler struct {
	DeviceType string       `json:"device-type"`
	Zone       string       `json:"zone"`
	Mode       string       `json:"mode"`
	Datas      []screenData `json:"datas"`
}

type bindRequest struct {
	Game     string          `json:"game"`
	Event    string          `json:"event"`
	Handlers []screenHandler `json:"handlers"`
}

type frameLines struct {
	L1 string `json:"l1"`
	L2 string `json:"l2"`
	L3 string `json:"l3"`
}

type eventData struct {
	Frame frameLines `json:"frame"`
	Value int        `json:"value"`
}

type eventRequest struct {
	Game  string    `json:"game"`
	Event string    `json:"event"`
	Data  eventData `json:"data"`
}

func newBindRequest() bindRequest {
	return bindRequest{
		Game:  GameName,
		Event: eventName,
		Handlers: []screenHandler{{
			DeviceType: "screened",
			Zone:       "one",
			Mode:       "screen",
			Datas: []screenData{{
				Lines: []lineBinding{
					{HasText: true, ContextFrameKey: "l1"},
					{HasText: true, ContextFrameKey: "l2"},
					{HasText: true, ContextFrameKey: "l3"},
				},
			}},
		}},
	}
}

// wireLine prepares one row for the OLED.
func wireLine(s string) string {
	return frames.Truncate(strings.ReplaceAll(s, " ", string(BlankRune)), frames.Width)
}

func newEventRequest(f frames.Frame, value int) eventRequest {
	return eventRequest{
		Game:  GameName,
		Event: eventName,
		Data: eventData{
			Value: value,
			Frame: frameLines{
				L1: wireLine(f[0]),
				L2: wireLine(f[1]),
				L3: wireLine(f[2]),
			},
		},
	}
}
