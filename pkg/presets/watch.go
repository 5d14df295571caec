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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// WatchDebounce is how long the art directory must be quiet before a
// reload.
const WatchDebounce = 250 * time.Millisecond

const reloadOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch reloads the catalog when art files change until ctx is done. It
// watches the real filesystem path of the art store.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create art watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing art watcher")
		}
	}()

	if err := watcher.Add(c.store.Dir()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", c.store.Dir(), err)
	}
	log.Info().Str("dir", c.store.Dir()).Msg("watching ascii art directory")

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&reloadOps == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), artExt) {
				continue
			}
			log.Debug().Str("file", event.Name).Stringer("op", event.Op).Msg("art file changed")
			timer.Reset(WatchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("art watcher error")
		case <-timer.C:
			if err := c.Reload(); err != nil {
				log.Error().Err(err).Msg("error reloading ascii art")
			}
		}
	}
}
