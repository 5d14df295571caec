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

package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no username in path",
			input:    "/usr/local/bin/novapanel",
			expected: "/usr/local/bin/novapanel",
		},
		{
			name:     "linux home path",
			input:    "/home/sam/.config/novapanel/config.toml",
			expected: "/home/<user>/.config/novapanel/config.toml",
		},
		{
			name:     "linux home path uppercase",
			input:    "/Home/Sam/.local/share/novapanel/art/cat.txt",
			expected: "/home/<user>/.local/share/novapanel/art/cat.txt",
		},
		{
			name:     "macos users path",
			input:    "/Users/sam/Library/Application Support/novapanel/settings.ini",
			expected: "/Users/<user>/Library/Application Support/novapanel/settings.ini",
		},
		{
			name:     "windows path",
			input:    "C:\\Users\\sam\\AppData\\Roaming\\novapanel\\config.toml",
			expected: "C:\\Users\\<user>\\AppData\\Roaming\\novapanel\\config.toml",
		},
		{
			name:     "windows path different drive",
			input:    "D:\\Users\\admin\\novapanel\\logs",
			expected: "C:\\Users\\<user>\\novapanel\\logs",
		},
		{
			name:     "error message with path",
			input:    "failed to read art directory: open /home/u1/art: permission denied",
			expected: "failed to read art directory: open /home/<user>/art: permission denied",
		},
		{
			name:     "multiple paths in message",
			input:    "copying /home/alice/art to /home/bob/art",
			expected: "copying /home/<user>/art to /home/<user>/art",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

func TestSanitizeEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "sams-desktop",
		Message:    "error loading /home/sam/.config/novapanel/config.toml",
		Extra:      map[string]any{"path": "/Users/sam/art", "count": 3},
		Exception: []sentry.Exception{{
			Value: "open /home/sam/settings.ini",
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/sam/src/novapanel/pkg/device/session.go",
				Filename: "pkg/device/session.go",
			}}},
		}, {
			Value: "no stacktrace",
		}},
	}

	out := sanitizeEvent(event)
	require.NotNil(t, out)
	assert.Empty(t, out.ServerName)
	assert.Equal(t, "error loading /home/<user>/.config/novapanel/config.toml", out.Message)
	assert.Equal(t, "/Users/<user>/art", out.Extra["path"])
	assert.Equal(t, 3, out.Extra["count"])
	assert.Equal(t, "open /home/<user>/settings.ini", out.Exception[0].Value)
	assert.Equal(t, "/home/<user>/src/novapanel/pkg/device/session.go",
		out.Exception[0].Stacktrace.Frames[0].AbsPath)
	assert.Equal(t, "pkg/device/session.go", out.Exception[0].Stacktrace.Frames[0].Filename)
}

//nolint:paralleltest // modifies environment
func TestInit_RequiresDSN(t *testing.T) {
	t.Setenv(DSNEnv, "")
	require.ErrorIs(t, Init(true, "id", "1.0.0", "linux"), ErrNoDSN)
	assert.False(t, Enabled())
}

//nolint:paralleltest // modifies environment
func TestResolveDSN(t *testing.T) {
	t.Setenv(DSNEnv, "https://key@example.invalid/1")
	assert.Equal(t, "https://key@example.invalid/1", resolveDSN())
}

func TestInit_Disabled(t *testing.T) {
	t.Parallel()
	require.NoError(t, Init(false, "id", "1.0.0", "linux"))
}

func TestCloseAndFlushWhenDisabled(t *testing.T) {
	t.Parallel()
	Close()
	Flush()
}
