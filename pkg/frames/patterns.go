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
	"math"
	"math/rand/v2"
	"slices"
)

var (
	pulseShades   = []rune(" ░▒▓█▓▒░ ")
	rainbowShades = []rune("░▒▓█▓▒░")
	sparkleChars  = []rune("·•*✦✧★")
	fireChars     = []rune(" ·:▪▫▬▲▼")
	waveChars     = []rune(" ·~≈≋━")
	glitchChars   = []rune("01!@#$%^&*()<>?")
	bits          = []rune("01")
)

const (
	maxSparkles     = 10
	maxFireHeat     = 7
	wavePeriod      = 20
	binaryPeriod    = 8
	glitchPeriod    = 10
	glitchRowOffset = 5
)

// pulse grows a diamond from the centre, cycling through shades.
type pulse struct {
	animation
	state int
}

func newPulse(rng *rand.Rand) *pulse {
	return &pulse{animation: animation{id: "pulse", rng: rng}}
}

func (p *pulse) Reset() { p.state = 0 }

func (p *pulse) Next(context.Context) (Frame, error) {
	p.state = (p.state + 1) % len(pulseShades)
	ch := pulseShades[p.state]
	radius := p.state % 8
	center := Width / 2

	g := blankGrid()
	for row := range Rows {
		for col := range Width {
			if absInt(col-center)+absInt(row-1) <= radius {
				g.set(row, col, ch)
			}
		}
	}
	return g.frame(), nil
}

// sparkle twinkles up to maxSparkles random cells.
type sparkle struct {
	animation
	cells []cell
}

func newSparkle(rng *rand.Rand) *sparkle {
	return &sparkle{animation: animation{id: "sparkle", rng: rng}}
}

func (s *sparkle) Reset() { s.cells = nil }

func (s *sparkle) Next(context.Context) (Frame, error) {
	s.cells = slices.DeleteFunc(s.cells, func(cell) bool {
		return s.chance(0.7)
	})

	for range s.between(0, 3) {
		if len(s.cells) >= maxSparkles {
			break
		}
		c := cell{row: s.rng.IntN(Rows), col: s.rng.IntN(Width)}
		if !slices.Contains(s.cells, c) {
			s.cells = append(s.cells, c)
		}
	}

	g := blankGrid()
	for _, c := range s.cells {
		g.set(c.row, c.col, s.pick(sparkleChars))
	}
	return g.frame(), nil
}

// rainbow scrolls diagonal shade bands.
type rainbow struct {
	animation
	offset int
}

func newRainbow(rng *rand.Rand) *rainbow {
	return &rainbow{animation: animation{id: "rainbow", rng: rng}}
}

func (r *rainbow) Reset() { r.offset = 0 }

func (r *rainbow) Next(context.Context) (Frame, error) {
	var g grid
	for row := range Rows {
		for col := range Width {
			g[row][col] = rainbowShades[(col+r.offset+row*2)%len(rainbowShades)]
		}
	}
	r.offset++
	return g.frame(), nil
}

// fire seeds heat on the bottom row and lets it cool as it rises.
type fire struct {
	animation
	heat [Rows][Width]int
}

func newFire(rng *rand.Rand) *fire {
	return &fire{animation: animation{id: "fire", rng: rng}}
}

func (f *fire) Reset() { f.heat = [Rows][Width]int{} }

func (f *fire) Next(context.Context) (Frame, error) {
	bottom, middle, top := Rows-1, Rows-2, Rows-3
	for col := range Width {
		f.heat[bottom][col] = f.between(4, maxFireHeat)
		if col == 0 || col == Width-1 {
			continue
		}
		avg := (f.heat[bottom][col-1] + f.heat[bottom][col] + f.heat[bottom][col+1]) / 3
		f.heat[middle][col] = max(0, avg+f.between(-2, 1))

		avg = (f.heat[middle][col-1] + f.heat[middle][col] + f.heat[middle][col+1]) / 3
		f.heat[top][col] = max(0, avg+f.between(-2, 0))
	}

	var g grid
	for row := range Rows {
		for col := range Width {
			g[row][col] = fireChars[min(maxFireHeat, f.heat[row][col])]
		}
	}
	return g.frame(), nil
}

// wave rolls a swell that is tallest on the top row and grows to the right.
type wave struct {
	animation
	offset int
}

var waveRowAmplitude = [Rows]float64{1, 0.7, 0.4}

func newWave(rng *rand.Rand) *wave {
	return &wave{animation: animation{id: "wave", rng: rng}}
}

func (w *wave) Reset() { w.offset = 0 }

func (w *wave) Next(context.Context) (Frame, error) {
	var g grid
	for row := range Rows {
		for col := range Width {
			phase := math.Abs(float64((w.offset+col*2)%wavePeriod - wavePeriod/2))
			v := 5 * (0.5 + 0.5*waveRowAmplitude[row]*
				(0.5+0.5*float64(col)/Width)*
				(0.5+0.5*phase/10))
			idx := min(len(waveChars)-1, absInt(int(v)))
			g[row][col] = waveChars[idx]
		}
	}
	w.offset++
	return g.frame(), nil
}

// glitch mixes a scrolling bit pattern with random symbol noise.
type glitch struct {
	animation
	counter int
}

func newGlitch(rng *rand.Rand) *glitch {
	return &glitch{animation: animation{id: "glitch", rng: rng}}
}

func (gl *glitch) Reset() { gl.counter = 0 }

func (gl *glitch) Next(context.Context) (Frame, error) {
	gl.counter++

	var g grid
	for row := range Rows {
		for col := range Width {
			switch {
			case !gl.chance(0.3):
				g[row][col] = gl.pick(glitchChars)
			case (gl.counter+col+row*glitchRowOffset)%glitchPeriod < 3:
				g[row][col] = gl.pick(bits)
			default:
				g[row][col] = ' '
			}
		}
	}
	return g.frame(), nil
}

// binary streams bands of random bits to the left.
type binary struct {
	animation
	offset int
}

func newBinary(rng *rand.Rand) *binary {
	return &binary{animation: animation{id: "binary", rng: rng}}
}

func (b *binary) Reset() { b.offset = 0 }

func (b *binary) Next(context.Context) (Frame, error) {
	b.offset++

	var g grid
	for row := range Rows {
		for col := range Width {
			if (col+b.offset+row*3)%binaryPeriod < binaryPeriod/2 {
				g[row][col] = b.pick(bits)
			} else {
				g[row][col] = ' '
			}
		}
	}
	return g.frame(), nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
