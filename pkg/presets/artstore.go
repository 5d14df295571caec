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
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/novapanel/novapanel/pkg/assets"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const artExt = ".txt"

var validate = validator.New(validator.WithRequiredStructEnabled())

type artDef struct {
	ID    string   `validate:"required"`
	Lines []string `validate:"len=3,dive,max=13"`
}

// ArtStore reads and seeds the ASCII art directory.
type ArtStore struct {
	fs  afero.Fs
	dir string
}

func NewArtStore(fs afero.Fs, dir string) *ArtStore {
	return &ArtStore{fs: fs, dir: dir}
}

func (s *ArtStore) Dir() string {
	return s.dir
}

// EnsureDefaults writes each bundled art file that is not already present
// and returns how many were written. Existing files are left untouched.
func (s *ArtStore) EnsureDefaults() (int, error) {
	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return 0, fmt.Errorf("failed to create art directory: %w", err)
	}

	arts, err := assets.DefaultArts()
	if err != nil {
		return 0, fmt.Errorf("failed to load bundled art: %w", err)
	}

	written := 0
	for _, art := range arts {
		path := filepath.Join(s.dir, art.ID+artExt)
		_, err := s.fs.Stat(path)
		if err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if err := afero.WriteFile(s.fs, path, art.Content, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written++
	}

	if written > 0 {
		log.Info().Int("count", written).Str("dir", s.dir).Msg("installed default ascii art")
	}
	return written, nil
}

// Load reads every art file in the directory, sorted by id. Files that
// cannot be read or do not validate are skipped.
func (s *ArtStore) Load() ([]Preset, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Preset{}, nil
		}
		return nil, fmt.Errorf("failed to read art directory: %w", err)
	}

	titler := cases.Title(language.Und)
	presets := make([]Preset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), artExt) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable art file")
			continue
		}

		def := artDef{
			ID:    strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Lines: ParseArt(string(data)),
		}
		if err := validate.Struct(def); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping invalid art file")
			continue
		}

		presets = append(presets, Preset{
			ID:       def.ID,
			Name:     titler.String(strings.ReplaceAll(def.ID, "_", " ")),
			Category: CategoryArt,
			Kind:     KindStatic,
			Lines:    def.Lines,
		})
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].ID < presets[j].ID
	})
	return presets, nil
}

// ParseArt turns file content into exactly frames.Rows lines, each cut to
// frames.Width runes.
func ParseArt(content string) []string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	out := make([]string, frames.Rows)
	for i := 0; i < frames.Rows && i < len(lines); i++ {
		out[i] = frames.Truncate(strings.TrimRight(lines[i], "\r"), frames.Width)
	}
	return out
}
