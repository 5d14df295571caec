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

package presets

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := NewCatalog(NewArtStore(afero.NewOsFs(), dir))
	require.NoError(t, err)

	var reloads atomic.Int32
	c.OnReload(func([]Preset) { reloads.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fresh.txt"), []byte("a\nb\nc"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.log"), []byte("x"), 0o600))

	assert.Eventually(t, func() bool {
		return reloads.Load() == 1
	}, 3*time.Second, 20*time.Millisecond, "burst of events debounced into one reload")
	_, ok := c.Lookup("fresh")
	assert.True(t, ok)
}

func TestWatch_MissingDir(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog(NewArtStore(afero.NewOsFs(), filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	require.Error(t, c.Watch(context.Background()))
}
