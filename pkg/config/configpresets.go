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

package config

import "path/filepath"

type Presets struct {
	Watch  *bool  `toml:"watch,omitempty"`
	ArtDir string `toml:"art_dir,omitempty"`
}

// PresetsArtDir resolves the ASCII art directory. Relative paths are taken
// from dataDir.
func (c *Instance) PresetsArtDir(dataDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dir := c.vals.Presets.ArtDir
	if dir == "" {
		return filepath.Join(dataDir, ArtDir)
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(dataDir, dir)
}

func (c *Instance) PresetsWatch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Presets.Watch == nil {
		return true
	}
	return *c.vals.Presets.Watch
}
