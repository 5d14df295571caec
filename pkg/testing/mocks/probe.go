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
	"time"

	"github.com/novapanel/novapanel/pkg/sysinfo"
	"github.com/stretchr/testify/mock"
)

// MockProbe is a testify mock for sysinfo.Probe.
type MockProbe struct {
	mock.Mock
}

func (m *MockProbe) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	args := m.Called(ctx, interval)
	//nolint:wrapcheck // mock returns are passed through
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProbe) MemoryPercent(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	//nolint:wrapcheck // mock returns are passed through
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProbe) GPU(ctx context.Context) (*sysinfo.GPUInfo, error) {
	args := m.Called(ctx)
	info, _ := args.Get(0).(*sysinfo.GPUInfo)
	//nolint:wrapcheck // mock returns are passed through
	return info, args.Error(1)
}

func (m *MockProbe) CPUTemperature(ctx context.Context) (float64, bool) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Bool(1)
}

func (m *MockProbe) NetworkSpeed(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	//nolint:wrapcheck // mock returns are passed through
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProbe) Uptime(ctx context.Context) (time.Duration, error) {
	args := m.Called(ctx)
	//nolint:wrapcheck // mock returns are passed through
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockProbe) Hostname() (string, error) {
	args := m.Called()
	//nolint:wrapcheck // mock returns are passed through
	return args.String(0), args.Error(1)
}

func (m *MockProbe) PrimaryIPv4(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	//nolint:wrapcheck // mock returns are passed through
	return args.String(0), args.Error(1)
}

// SetupHealthyProbe stubs every call with plausible readings.
func (m *MockProbe) SetupHealthyProbe() {
	m.On("CPUPercent", mock.Anything, mock.Anything).Return(37.5, nil).Maybe()
	m.On("MemoryPercent", mock.Anything).Return(61.2, nil).Maybe()
	m.On("GPU", mock.Anything).Return(&sysinfo.GPUInfo{
		Name:        "NVIDIA GeForce RTX 3080",
		Load:        0.42,
		Temperature: 58,
	}, nil).Maybe()
	m.On("CPUTemperature", mock.Anything).Return(54.8, true).Maybe()
	m.On("NetworkSpeed", mock.Anything).Return(1.25, nil).Maybe()
	m.On("Uptime", mock.Anything).Return(26*time.Hour+14*time.Minute, nil).Maybe()
	m.On("Hostname").Return("battlestation", nil).Maybe()
	m.On("PrimaryIPv4", mock.Anything).Return("192.168.1.20", nil).Maybe()
}
