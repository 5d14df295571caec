// Nova Panel
// Copyright (c) 2026 The Nova Panel Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !windows

package command

import (
	"context"
	"os/exec"
)

// OutputWithOptions runs a program. Options only matter on Windows.
//
//nolint:wrapcheck // exec errors carry the exit status already
func (*RealExecutor) OutputWithOptions(
	ctx context.Context,
	_ RunOptions,
	name string,
	args ...string,
) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
