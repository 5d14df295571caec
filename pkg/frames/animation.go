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
	"math/rand/v2"
	"time"
)

// animation is embedded by every procedural source. Animations tick at the
// user's speed.
type animation struct {
	rng *rand.Rand
	id  string
}

func (a *animation) ID() string            { return a.id }
func (*animation) Interval() time.Duration { return 0 }

func (a *animation) pick(chars []rune) rune {
	return chars[a.rng.IntN(len(chars))]
}

// chance returns true with probability 1-threshold.
func (a *animation) chance(threshold float64) bool {
	return a.rng.Float64() > threshold
}

// between returns a random int in [lo, hi].
func (a *animation) between(lo, hi int) int {
	return lo + a.rng.IntN(hi-lo+1)
}

type cell struct {
	row, col int
}
