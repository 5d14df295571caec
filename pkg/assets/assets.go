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

package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Art holds the ASCII art presets installed on first run.
//
//go:embed art/*.txt
var Art embed.FS

// DefaultArt is one bundled art file.
type DefaultArt struct {
	ID      string
	Content []byte
}

// DefaultArts returns every bundled art file ordered by id.
func DefaultArts() ([]DefaultArt, error) {
	paths, err := fs.Glob(Art, "art/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to list bundled art: %w", err)
	}

	arts := make([]DefaultArt, 0, len(paths))
	for _, p := range paths {
		data, err := Art.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read bundled art %s: %w", p, err)
		}
		arts = append(arts, DefaultArt{
			ID:      strings.TrimSuffix(path.Base(p), ".txt"),
			Content: data,
		})
	}
	return arts, nil
}
