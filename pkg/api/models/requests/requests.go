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

package requests

import (
	"context"
	"encoding/json"
	"io"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/novapanel/novapanel/pkg/sysinfo"
)

// Panel is what API methods drive. service.Controller implements it.
type Panel interface {
	Presets(category string) ([]presets.Preset, error)
	ExportPresets(w io.Writer) error
	ReloadPresets() (int, error)
	LoadPreset(ctx context.Context, id string) error
	SendCustom(ctx context.Context, lines [config.CustomLineCount]string) error
	Stop()
	Clear()
	SetSpeed(ms float64) float64
	SetAutoStart(enabled bool)
	Settings() config.SettingsValues
	Status() models.StatusResponse
	Snapshot(ctx context.Context) sysinfo.Snapshot
}

type RequestEnv struct {
	Context  context.Context
	Panel    Panel
	Config   *config.Instance
	Platform string
	Params   json.RawMessage
	ID       models.RPCID
	IsLocal  bool
}
