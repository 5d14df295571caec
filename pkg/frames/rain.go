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
	"context"
	"math/rand/v2"
)

var (
	katakanaRain = []rune("あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわをん")
	dropRain     = []rune("|¦┆┊╎╏")
	snowChars    = []rune("❄❅❆*·◦")
)

const (
	rainMaxStart  = 10
	rainTailTicks = 6
	snowStart     = 5
	snowMax       = 8
)

// rain drops a glyph down each column. A column is idle at position 0 and
// spawns a new drop at random; an active drop draws its head, erases its
// tail and lingers off screen for a few ticks before the column resets.
type rain struct {
	animation
	chars    []rune
	spawnMin float64
	pos      [Width]int
	canvas   grid
}

func newRain(id string, rng *rand.Rand, chars []rune, spawnMin float64) *rain {
	r := &rain{
		animation: animation{id: id, rng: rng},
		chars:     chars,
		spawnMin:  spawnMin,
	}
	r.Reset()
	return r
}

func (r *rain) Reset() {
	r.canvas = blankGrid()
	for col := range r.pos {
		r.pos[col] = r.between(0, rainMaxStart)
	}
}

func (r *rain) Next(context.Context) (Frame, error) {
	for col := range Width {
		p := r.pos[col]
		if p == 0 {
			if r.chance(r.spawnMin) {
				r.pos[col] = 1
			}
			continue
		}

		if p <= Rows {
			r.canvas.set(p-1, col, r.pick(r.chars))
		}
		if p > 1 && p <= Rows+1 {
			r.canvas.set(p-2, col, ' ')
		}

		r.pos[col]++
		if r.pos[col] > rainTailTicks {
			r.pos[col] = 0
			for row := range Rows {
				r.canvas.set(row, col, ' ')
			}
		}
	}
	return r.canvas.frame(), nil
}

// snow drifts flakes downward, nudging them sideways every other tick.
type snow struct {
	animation
	flakes  []cell
	counter int
}

func newSnow(rng *rand.Rand) *snow {
	s := &snow{animation: animation{id: "snowflake", rng: rng}}
	s.Reset()
	return s
}

func (s *snow) Reset() {
	s.counter = 0
	s.flakes = s.flakes[:0]
	for range snowStart {
		s.flakes = append(s.flakes, cell{row: s.rng.IntN(Rows), col: s.rng.IntN(Width)})
	}
}

func (s *snow) Next(context.Context) (Frame, error) {
	s.counter++

	moved := make([]cell, 0, len(s.flakes)+1)
	for _, f := range s.flakes {
		next := cell{row: f.row + 1, col: f.col}
		if s.counter%2 == 0 {
			next.col += s.between(-1, 1)
		}
		if next.row < Rows && next.col >= 0 && next.col < Width {
			moved = append(moved, next)
		}
	}

	if len(moved) < snowMax && s.chance(0.6) {
		moved = append(moved, cell{row: 0, col: s.rng.IntN(Width)})
	}
	s.flakes = moved

	g := blankGrid()
	for _, f := range s.flakes {
		g.set(f.row, f.col, s.pick(snowChars))
	}
	return g.frame(), nil
}
