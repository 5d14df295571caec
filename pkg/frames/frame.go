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

// Package frames holds the generators that draw the OLED. A generator (a
// Source) produces one Frame per tick: three rows of at most Width
// characters. Sources are stateful and owned by a single goroutine.
package frames

import (
	"strings"
	"unicode/utf8"
)

const (
	// Rows is the number of text lines on the OLED.
	Rows = 3
	// Width is the number of characters that fit on one line.
	Width = 13
)

// Frame is one screenful of text.
type Frame [Rows]string

// NewFrame builds a frame from up to Rows lines, truncating each one.
// Missing lines are left empty and extra lines are dropped.
func NewFrame(lines ...string) Frame {
	var f Frame
	for i := 0; i < Rows && i < len(lines); i++ {
		f[i] = Truncate(lines[i], Width)
	}
	return f
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Normalize truncates every row to Width runes.
func (f Frame) Normalize() Frame {
	for i := range f {
		f[i] = Truncate(f[i], Width)
	}
	return f
}

// Padded right-pads every row with spaces to exactly Width runes.
func (f Frame) Padded() Frame {
	f = f.Normalize()
	for i := range f {
		if n := utf8.RuneCountInString(f[i]); n < Width {
			f[i] += strings.Repeat(" ", Width-n)
		}
	}
	return f
}

// IsBlank reports whether the frame has no visible characters.
func (f Frame) IsBlank() bool {
	for _, row := range f {
		if strings.TrimSpace(row) != "" {
			return false
		}
	}
	return true
}

// Lines returns the rows as a slice.
func (f Frame) Lines() []string {
	return []string{f[0], f[1], f[2]}
}

// grid is a mutable canvas the animations draw into.
type grid [Rows][Width]rune

func blankGrid() grid {
	var g grid
	g.clear()
	return g
}

func (g *grid) clear() {
	for r := range g {
		for c := range g[r] {
			g[r][c] = ' '
		}
	}
}

func (g *grid) set(row, col int, ch rune) {
	if row < 0 || row >= Rows || col < 0 || col >= Width {
		return
	}
	g[row][col] = ch
}

func (g *grid) frame() Frame {
	var f Frame
	for r := range g {
		f[r] = string(g[r][:])
	}
	return f
}
