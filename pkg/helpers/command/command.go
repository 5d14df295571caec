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

// Package command wraps os/exec behind an interface so telemetry probes that
// shell out (nvidia-smi) can be faked in tests.
package command

import (
	"context"
	"os/exec"
)

// RunOptions configures how a child process is spawned.
type RunOptions struct {
	// HideWindow suppresses the console window flash on Windows. Ignored
	// elsewhere.
	HideWindow bool
}

// Executor runs external programs.
type Executor interface {
	// Output runs a program and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// OutputWithOptions is Output with platform-specific spawn options.
	OutputWithOptions(ctx context.Context, opts RunOptions, name string, args ...string) ([]byte, error)

	// LookPath reports the resolved path of a program, or an error when it
	// is not installed.
	LookPath(name string) (string, error)
}

// RealExecutor runs real processes.
type RealExecutor struct{}

// Output runs a program with exec.CommandContext.
//
//nolint:wrapcheck // exec errors carry the exit status already
func (*RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

//nolint:wrapcheck // exec errors carry the exit status already
func (*RealExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
