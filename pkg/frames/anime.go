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
	"slices"
)

const (
	faceHoldTicks    = 15
	catHoldTicks     = 10
	maxAnimeSparkles = 6
	animeSparkleLife = 15
	catWalkSpan      = Width + 10
	mouseStep        = 2
	mouseRestart     = -10
	mouseTrailLength = 3
)

var animeFaces = [][Rows]string{
	{"  ◕ ‿ ◕    ", "    ___    ", `   \___/   `},
	{"  ^ _ ^    ", "    ___    ", `   \___/   `},
	{"  ◕ ‿ ~    ", "    ___    ", `   \___/   `},
	{"  - ‿ ◕    ", "    ___    ", `   \___/   `},
	{"  ★ ‿ ★    ", "    ___    ", `   \___/   `},
	{"  ♥ ‿ ♥    ", "    ___    ", `   \___/   `},
	{"  - _ -    ", "    ___    ", `   \___/   `},
	{"  ˘ _ ˘    ", "    ___    ", `   \___/   `},
	{"  O _ O    ", "    ___    ", `   \___/   `},
	{"  ◉ _ ◉    ", "    ___    ", `   \___/   `},
}

var standingCat = [][Rows]string{
	{`    /\_/\    `, "   ( o.o )   ", "    > ^ <    "},
	{`    /\_/\    `, "   ( o.o )   ", "    > ~ <    "},
	{`    /\_/\    `, "   ( o.o )   ", "    > v <    "},
	{`    /\_/\    `, "   ( o.o )   ", "    > ~ <    "},
}

var walkingCat = [][Rows]string{
	{"∧_∧", "(='.'=)", "(¨)_(¨)"},
	{"∧_∧", "(='.'=)", "(_¨)(¨)"},
	{"∧_∧", "(='.'=)", "(¨)_(¨)"},
	{"∧_∧", "(='.'=)", "(¨)(_¨)"},
}

var runningMouse = []string{"ᘛ⁐ᕐᐷ...", ".ᘛ⁐ᕐᐷ..", "..ᘛ⁐ᕐᐷ."}

var animeSparkleChars = []rune("✧✦✩✪⋆｡°∘")

// cycle steps through fixed frames, holding each for hold ticks.
type cycle struct {
	animation
	frames [][Rows]string
	hold   int
	tick   int
}

func newCycle(id string, rng *rand.Rand, frames [][Rows]string, hold int) *cycle {
	return &cycle{animation: animation{id: id, rng: rng}, frames: frames, hold: hold}
}

func (c *cycle) Reset() { c.tick = 0 }

func (c *cycle) Next(context.Context) (Frame, error) {
	c.tick = (c.tick + 1) % (len(c.frames) * c.hold)
	return Frame(c.frames[c.tick/c.hold]).Normalize(), nil
}

type animeSparkleCell struct {
	cell
	ch   rune
	life int
}

// animeSparkle spawns short-lived stars that change shape as they age.
type animeSparkle struct {
	animation
	stars []animeSparkleCell
}

func newAnimeSparkle(rng *rand.Rand) *animeSparkle {
	return &animeSparkle{animation: animation{id: "anime_sparkle", rng: rng}}
}

func (a *animeSparkle) Reset() { a.stars = nil }

func (a *animeSparkle) Next(context.Context) (Frame, error) {
	if len(a.stars) < maxAnimeSparkles && a.chance(0.7) {
		a.stars = append(a.stars, animeSparkleCell{
			cell: cell{row: a.rng.IntN(Rows), col: a.rng.IntN(Width)},
			ch:   a.pick(animeSparkleChars),
		})
	}

	g := blankGrid()
	for i := range a.stars {
		s := &a.stars[i]
		s.life++
		if s.life >= animeSparkleLife {
			continue
		}
		if s.life%3 == 0 {
			s.ch = a.pick(animeSparkleChars)
		}
		g.set(s.row, s.col, s.ch)
	}
	a.stars = slices.DeleteFunc(a.stars, func(s animeSparkleCell) bool {
		return s.life >= animeSparkleLife
	})
	return g.frame(), nil
}

// catWalk walks a cat in from the left edge.
type catWalk struct {
	animation
	step int
	pos  int
}

func newCatWalk(rng *rand.Rand) *catWalk {
	return &catWalk{animation: animation{id: "cat_walking", rng: rng}}
}

func (c *catWalk) Reset() {
	c.step = 0
	c.pos = 0
}

func (c *catWalk) Next(context.Context) (Frame, error) {
	c.step = (c.step + 1) % len(walkingCat)
	c.pos = (c.pos + 1) % catWalkSpan

	g := blankGrid()
	for row, line := range walkingCat[c.step] {
		runes := []rune(line)
		start := c.pos - len(runes)
		for i, ch := range runes {
			g.set(row, start+i, ch)
		}
	}
	return g.frame(), nil
}

// mouseRun sends a mouse dashing across the middle row with a dust trail.
type mouseRun struct {
	animation
	step int
	pos  int
}

func newMouseRun(rng *rand.Rand) *mouseRun {
	m := &mouseRun{animation: animation{id: "mouse_running", rng: rng}}
	m.Reset()
	return m
}

func (m *mouseRun) Reset() {
	m.step = 0
	m.pos = Width - 1
}

func (m *mouseRun) Next(context.Context) (Frame, error) {
	m.step = (m.step + 1) % len(runningMouse)
	m.pos += mouseStep
	if m.pos > Width+5 {
		m.pos = mouseRestart
	}

	g := blankGrid()
	for i, ch := range []rune(runningMouse[m.step]) {
		g.set(1, m.pos+i, ch)
	}
	for i := range mouseTrailLength {
		g.set(1, m.pos-i-1, '-')
	}
	return g.frame(), nil
}
