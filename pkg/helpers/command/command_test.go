// Nova Panel
// Copyright (c) 2026 The Nova Panel Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !windows

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Output(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("captures_stdout", func(t *testing.T) {
		t.Parallel()

		out, err := executor.Output(context.Background(), "echo", "42, 61, RTX")

		require.NoError(t, err)
		assert.Equal(t, "42, 61, RTX\n", string(out))
	})

	t.Run("returns_error_for_failed_command", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Output(context.Background(), "false")

		assert.Error(t, err)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Output(context.Background(), "nonexistent_command_that_should_not_exist_12345")

		require.Error(t, err)
	})
}

func TestRealExecutor_OutputWithOptions(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("hide_window_is_ignored", func(t *testing.T) {
		t.Parallel()

		out, err := executor.OutputWithOptions(
			context.Background(),
			RunOptions{HideWindow: true},
			"echo", "ok",
		)

		require.NoError(t, err)
		assert.Equal(t, "ok\n", string(out))
	})
}

func TestRealExecutor_LookPath(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	_, err := executor.LookPath("nonexistent_command_that_should_not_exist_12345")
	require.Error(t, err)

	path, err := executor.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestExecutor_Interface(t *testing.T) {
	t.Parallel()

	var _ Executor = (*RealExecutor)(nil)
}
