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
	"github.com/novapanel/novapanel/pkg/platforms"
	"github.com/stretchr/testify/mock"
)

// MockPlatform is a testify mock for platforms.Platform.
type MockPlatform struct {
	mock.Mock
}

func NewMockPlatform() *MockPlatform {
	return &MockPlatform{}
}

// SetupBasicMock configures the mock with paths rooted at dir.
func (m *MockPlatform) SetupBasicMock(settings platforms.Settings) {
	m.On("ID").Return("mock-platform").Maybe()
	m.On("Settings").Return(settings).Maybe()
	m.On("CorePropsPath").Return("").Maybe()
}

func (m *MockPlatform) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlatform) Settings() platforms.Settings {
	args := m.Called()
	if settings, ok := args.Get(0).(platforms.Settings); ok {
		return settings
	}
	return platforms.Settings{}
}

func (m *MockPlatform) CorePropsPath() string {
	args := m.Called()
	return args.String(0)
}
