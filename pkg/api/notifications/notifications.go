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

// Package notifications builds the server-initiated API messages.
package notifications

import (
	"encoding/json"
	"time"

	"github.com/novapanel/novapanel/pkg/animation"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/rs/zerolog/log"
)

// send never blocks: frame notifications are emitted from the animation
// worker and must not wait on the broker.
func send(ns chan<- models.Notification, method string, payload any) {
	var params json.RawMessage
	if payload != nil {
		var err error
		params, err = json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("method", method).Msg("error marshalling notification params")
			return
		}
	}

	select {
	case ns <- models.Notification{Method: method, Params: params}:
	default:
		log.Debug().Str("method", method).Msg("notification channel full, dropping")
	}
}

func FrameUpdated(ns chan<- models.Notification, id string, f frames.Frame, at time.Time) {
	send(ns, models.NotificationFrameUpdated, models.FrameUpdatedParams{
		ID:        id,
		Lines:     f.Lines(),
		Timestamp: at,
	})
}

func DeviceState(ns chan<- models.Notification, state device.ConnectionState, serverURL string) {
	send(ns, models.NotificationDeviceState, models.DeviceStateParams{
		State:     state,
		ServerURL: serverURL,
	})
}

func LoopState(ns chan<- models.Notification, st animation.Status) {
	send(ns, models.NotificationLoopState, st)
}

func PresetsReloaded(ns chan<- models.Notification, count int) {
	send(ns, models.NotificationPresetsReloaded, models.PresetsReloadedParams{Count: count})
}
