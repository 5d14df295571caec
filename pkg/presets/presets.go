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

// Package presets lists everything the panel can show, grouped by category:
// the built-in frame generators and the ASCII art files in the user's art
// directory.
package presets

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindAnimation Kind = "animation"
	KindDynamic   Kind = "dynamic"
	KindStatic    Kind = "static"
)

const (
	CategoryAnimations = "Animations"
	CategoryGaming     = "Gaming"
	CategoryAnime      = "Anime"
	CategorySystem     = "System"
	CategoryArt        = "ASCII Art"
)

// Categories in display order. Lookups search them in this order.
var categoryOrder = []string{
	CategoryAnimations,
	CategoryGaming,
	CategoryAnime,
	CategorySystem,
	CategoryArt,
}

var (
	ErrUnknownPreset   = errors.New("unknown preset")
	ErrUnknownCategory = errors.New("unknown category")
)

// Preset is one entry in the catalog.
type Preset struct {
	ID       string   `json:"id" csv:"id"`
	Name     string   `json:"name" csv:"name"`
	Category string   `json:"category" csv:"category"`
	Kind     Kind     `json:"kind" csv:"kind"`
	Lines    []string `json:"lines,omitempty" csv:"-"`
}

// UnknownPresetError carries close matches for an id that was not found.
type UnknownPresetError struct {
	ID          string
	Suggestions []string
}

func (e *UnknownPresetError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown preset: %s", e.ID)
	}
	return fmt.Sprintf("unknown preset: %s (did you mean %v?)", e.ID, e.Suggestions)
}

func (*UnknownPresetError) Unwrap() error {
	return ErrUnknownPreset
}

var builtins = []Preset{
	{ID: "japanese_rain", Name: "Matrix Rain", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "regular_rain", Name: "Rain", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "snowflake", Name: "Snowflakes", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "pulse", Name: "Pulse", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "sparkle", Name: "Sparkles", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "rainbow", Name: "Rainbow", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "fire", Name: "Fire Effect", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "wave", Name: "Ocean Wave", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "glitch", Name: "Glitch Matrix", Category: CategoryAnimations, Kind: KindAnimation},
	{ID: "binary", Name: "Binary Stream", Category: CategoryAnimations, Kind: KindAnimation},

	{ID: "loading", Name: "Loading Bar", Category: CategoryGaming, Kind: KindAnimation},
	{ID: "radar", Name: "Radar Sweep", Category: CategoryGaming, Kind: KindAnimation},
	{ID: "snake", Name: "Snake Game", Category: CategoryGaming, Kind: KindAnimation},
	{ID: "typing", Name: "Victory Text", Category: CategoryGaming, Kind: KindAnimation},

	{ID: "anime_faces", Name: "Anime Faces", Category: CategoryAnime, Kind: KindAnimation},
	{ID: "anime_sparkle", Name: "Anime Sparkles", Category: CategoryAnime, Kind: KindAnimation},
	{ID: "cat_standing", Name: "Standing Cat", Category: CategoryAnime, Kind: KindAnimation},
	{ID: "cat_walking", Name: "Walking Cat", Category: CategoryAnime, Kind: KindAnimation},
	{ID: "mouse_running", Name: "Running Mouse", Category: CategoryAnime, Kind: KindAnimation},

	{ID: "clock", Name: "Clock", Category: CategorySystem, Kind: KindDynamic},
	{ID: "gpu_cpu_ram", Name: "GPU CPU & RAM", Category: CategorySystem, Kind: KindDynamic},
	{ID: "ram_net_uptime", Name: "RAM, NETWORK & UPTIME", Category: CategorySystem, Kind: KindDynamic},
	{ID: "temperatures", Name: "Temperatures", Category: CategorySystem, Kind: KindDynamic},
	{ID: "system", Name: "System Monitor", Category: CategorySystem, Kind: KindDynamic},
	{ID: "cpu_graph", Name: "CPU Graph", Category: CategorySystem, Kind: KindDynamic},
	{ID: "network", Name: "Network Info", Category: CategorySystem, Kind: KindDynamic},
}
