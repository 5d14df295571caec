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

package mocks

import (
	"context"
	"io"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/novapanel/novapanel/pkg/sysinfo"
	"github.com/stretchr/testify/mock"
)

// MockPanel is a testify mock for requests.Panel.
type MockPanel struct {
	mock.Mock
}

func (m *MockPanel) Presets(category string) ([]presets.Preset, error) {
	args := m.Called(category)
	list, _ := args.Get(0).([]presets.Preset)
	//nolint:wrapcheck // mock returns are passed through
	return list, args.Error(1)
}

func (m *MockPanel) ExportPresets(w io.Writer) error {
	args := m.Called(w)
	if s := args.String(0); s != "" {
		_, _ = io.WriteString(w, s)
	}
	//nolint:wrapcheck // mock returns are passed through
	return args.Error(1)
}

func (m *MockPanel) ReloadPresets() (int, error) {
	args := m.Called()
	//nolint:wrapcheck // mock returns are passed through
	return args.Int(0), args.Error(1)
}

func (m *MockPanel) LoadPreset(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	//nolint:wrapcheck // mock returns are passed through
	return args.Error(0)
}

func (m *MockPanel) SendCustom(ctx context.Context, lines [config.CustomLineCount]string) error {
	args := m.Called(ctx, lines)
	//nolint:wrapcheck // mock returns are passed through
	return args.Error(0)
}

func (m *MockPanel) Stop() {
	m.Called()
}

func (m *MockPanel) Clear() {
	m.Called()
}

func (m *MockPanel) SetSpeed(ms float64) float64 {
	args := m.Called(ms)
	return args.Get(0).(float64)
}

func (m *MockPanel) SetAutoStart(enabled bool) {
	m.Called(enabled)
}

func (m *MockPanel) Settings() config.SettingsValues {
	args := m.Called()
	return args.Get(0).(config.SettingsValues)
}

func (m *MockPanel) Status() models.StatusResponse {
	args := m.Called()
	return args.Get(0).(models.StatusResponse)
}

func (m *MockPanel) Snapshot(ctx context.Context) sysinfo.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(sysinfo.Snapshot)
}
