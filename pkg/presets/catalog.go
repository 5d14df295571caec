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
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/hbollon/go-edlib"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

const (
	maxSuggestions   = 3
	minSuggestionSim = 0.4
)

// Catalog is the set of presets the panel offers. The art category is
// reloaded from disk on demand; built-ins are fixed.
type Catalog struct {
	store    *ArtStore
	onReload func([]Preset)
	art      []Preset
	mu       syncutil.RWMutex
}

// NewCatalog builds a catalog over store and loads the art once. A nil
// store gives a catalog with built-ins only.
func NewCatalog(store *ArtStore) (*Catalog, error) {
	c := &Catalog{store: store}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// OnReload registers a hook called with the new art list after each
// successful Reload.
func (c *Catalog) OnReload(fn func([]Preset)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReload = fn
}

// Reload re-reads the art directory and swaps in the result.
func (c *Catalog) Reload() error {
	if c.store == nil {
		return nil
	}

	art, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load ascii art: %w", err)
	}

	c.mu.Lock()
	c.art = art
	hook := c.onReload
	c.mu.Unlock()

	log.Debug().Int("count", len(art)).Msg("loaded ascii art presets")
	if hook != nil {
		hook(art)
	}
	return nil
}

// Categories returns the category names in display order.
func Categories() []string {
	return slices.Clone(categoryOrder)
}

func (*Catalog) Categories() []string {
	return Categories()
}

// List returns the presets in one category.
func (c *Catalog) List(category string) ([]Preset, error) {
	switch category {
	case CategoryArt:
		c.mu.RLock()
		defer c.mu.RUnlock()
		return slices.Clone(c.art), nil
	case CategoryAnimations, CategoryGaming, CategoryAnime, CategorySystem:
		var out []Preset
		for _, p := range builtins {
			if p.Category == category {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
}

// All returns every preset, categories in display order.
func (c *Catalog) All() []Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Preset, 0, len(builtins)+len(c.art))
	out = append(out, builtins...)
	return append(out, c.art...)
}

// Lookup finds a preset by id. Built-ins win over art with the same id.
func (c *Catalog) Lookup(id string) (Preset, bool) {
	for _, p := range c.All() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Source builds a fresh frame source for the preset. Unknown ids return an
// *UnknownPresetError with suggestions.
func (c *Catalog) Source(id string, deps frames.Deps) (frames.Source, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return nil, &UnknownPresetError{ID: id, Suggestions: c.Suggest(id)}
	}
	if p.Kind == KindStatic {
		return frames.NewStatic(p.ID, p.Lines), nil
	}
	src, err := frames.New(p.ID, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build preset %s: %w", id, err)
	}
	return src, nil
}

type suggestion struct {
	id  string
	sim float32
}

// Suggest returns up to three preset ids that look like id.
func (c *Catalog) Suggest(id string) []string {
	var matches []suggestion
	for _, p := range c.All() {
		sim, err := edlib.StringsSimilarity(id, p.ID, edlib.Levenshtein)
		if err != nil {
			continue
		}
		if sim >= minSuggestionSim {
			matches = append(matches, suggestion{id: p.ID, sim: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].sim > matches[j].sim
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].id)
	}
	return out
}

// Export writes every preset as CSV with a header row.
func (c *Catalog) Export(w io.Writer) error {
	all := c.All()
	if err := gocsv.Marshal(&all, w); err != nil {
		return fmt.Errorf("failed to export presets: %w", err)
	}
	return nil
}
