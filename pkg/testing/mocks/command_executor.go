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

	"github.com/novapanel/novapanel/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor. It lets probes
// that shell out be tested without the real programs installed.
//
// Example:
//
//	mockCmd := &MockCommandExecutor{}
//	mockCmd.On("LookPath", "nvidia-smi").Return("/usr/bin/nvidia-smi", nil)
//	mockCmd.On("OutputWithOptions", mock.Anything, mock.Anything, "nvidia-smi", mock.Anything).
//		Return([]byte("12, 48, RTX 3080\n"), nil)
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	out, _ := called.Get(0).([]byte)
	//nolint:wrapcheck // mock returns are passed through
	return out, called.Error(1)
}

func (m *MockCommandExecutor) OutputWithOptions(
	ctx context.Context,
	opts command.RunOptions,
	name string,
	args ...string,
) ([]byte, error) {
	called := m.Called(ctx, opts, name, args)
	out, _ := called.Get(0).([]byte)
	//nolint:wrapcheck // mock returns are passed through
	return out, called.Error(1)
}

func (m *MockCommandExecutor) LookPath(name string) (string, error) {
	called := m.Called(name)
	//nolint:wrapcheck // mock returns are passed through
	return called.String(0), called.Error(1)
}
