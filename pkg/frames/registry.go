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

package frames

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrNoProbe is returned when a telemetry source is built without a probe.
var ErrNoProbe = errors.New("telemetry source needs a probe")

// Constructor builds a fresh source.
type Constructor func(d Deps) Source

// Registry maps built-in source ids to their constructors. Static art and
// custom text are not registered; they are built from their lines.
var Registry = map[string]Constructor{
	"japanese_rain": func(d Deps) Source { return newRain("japanese_rain", d.Rand, katakanaRain, 0.7) },
	"regular_rain":  func(d Deps) Source { return newRain("regular_rain", d.Rand, dropRain, 0.8) },
	"snowflake":     func(d Deps) Source { return newSnow(d.Rand) },
	"pulse":         func(d Deps) Source { return newPulse(d.Rand) },
	"sparkle":       func(d Deps) Source { return newSparkle(d.Rand) },
	"rainbow":       func(d Deps) Source { return newRainbow(d.Rand) },
	"fire":          func(d Deps) Source { return newFire(d.Rand) },
	"wave":          func(d Deps) Source { return newWave(d.Rand) },
	"glitch":        func(d Deps) Source { return newGlitch(d.Rand) },
	"binary":        func(d Deps) Source { return newBinary(d.Rand) },

	"loading": func(d Deps) Source { return newLoading(d.Rand) },
	"radar":   func(d Deps) Source { return newRadar(d.Rand) },
	"snake":   func(d Deps) Source { return newSnake(d.Rand) },
	"typing":  func(d Deps) Source { return newTyping(d.Rand) },

	"anime_faces":   func(d Deps) Source { return newCycle("anime_faces", d.Rand, animeFaces, faceHoldTicks) },
	"anime_sparkle": func(d Deps) Source { return newAnimeSparkle(d.Rand) },
	"cat_standing":  func(d Deps) Source { return newCycle("cat_standing", d.Rand, standingCat, catHoldTicks) },
	"cat_walking":   func(d Deps) Source { return newCatWalk(d.Rand) },
	"mouse_running": func(d Deps) Source { return newMouseRun(d.Rand) },

	"clock":          func(d Deps) Source { return NewClock(d.Clock) },
	"gpu_cpu_ram":    func(d Deps) Source { return NewGPUCPURAM("gpu_cpu_ram", SnapshotInterval, d.Probe) },
	"system":         func(d Deps) Source { return NewGPUCPURAM("system", SlowSnapshotInterval, d.Probe) },
	"ram_net_uptime": func(d Deps) Source { return NewRAMNetUptime(d.Probe) },
	"temperatures":   func(d Deps) Source { return NewTemperatures(d.Probe) },
	"cpu_graph":      func(d Deps) Source { return NewCPUGraph(d.Probe) },
	"network":        func(d Deps) Source { return NewNetwork(d.Probe) },
}

var probeSources = []string{
	"gpu_cpu_ram", "system", "ram_net_uptime", "temperatures", "cpu_graph", "network",
}

// IDs returns the registered ids in sorted order.
func IDs() []string {
	return slices.Sorted(maps.Keys(Registry))
}

// New builds the registered source id.
func New(id string, d Deps) (Source, error) {
	ctor, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, id)
	}
	if d.Probe == nil && slices.Contains(probeSources, id) {
		return nil, fmt.Errorf("%s: %w", id, ErrNoProbe)
	}
	if d.Rand == nil || d.Clock == nil {
		defaults := NewDeps(d.Probe)
		if d.Rand == nil {
			d.Rand = defaults.Rand
		}
		if d.Clock == nil {
			d.Clock = defaults.Clock
		}
	}
	return ctor(d), nil
}
