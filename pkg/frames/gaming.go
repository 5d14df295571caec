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
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

const (
	solid       = '█'
	loadingSpan = 2 * Width
	radarStep   = 15
	snakeMaxLen = 5
	snakeStart  = 7
)

var typingMessages = []string{
	"GG EZ", "HEADSHOT!", "VICTORY!", "FLAWLESS", "DOMINATED",
	"LEGENDARY", "GODLIKE", "UNSTOPPABLE", "RAMPAGE", "SAVAGE",
}

// loading fills a progress bar, holds it full, then starts over.
type loading struct {
	animation
	pos int
}

func newLoading(rng *rand.Rand) *loading {
	return &loading{animation: animation{id: "loading", rng: rng}}
}

func (l *loading) Reset() { l.pos = 0 }

func (l *loading) Next(context.Context) (Frame, error) {
	l.pos = (l.pos + 1) % loadingSpan
	progress := min(Width, l.pos)

	var bar strings.Builder
	for i := range Width {
		switch {
		case i < progress:
			bar.WriteRune(solid)
		case i == progress:
			bar.WriteRune('▓')
		default:
			bar.WriteRune('░')
		}
	}

	percent := fmt.Sprintf("%d%%", progress*100/Width)
	return NewFrame(
		"██LOADING...█",
		bar.String(),
		center(percent, solid),
	), nil
}

// radar sweeps a beam around the centre of the display.
type radar struct {
	animation
	angle int
}

func newRadar(rng *rand.Rand) *radar {
	return &radar{animation: animation{id: "radar", rng: rng}}
}

func (r *radar) Reset() { r.angle = 0 }

func (r *radar) Next(context.Context) (Frame, error) {
	r.angle = (r.angle + radarStep) % 360
	const cx, cy = Width / 2, Rows / 2

	g := blankGrid()
	for row := range Rows {
		for col := range Width {
			d := math.Hypot(float64(col-cx), float64(row-cy))
			if (d > 2.5 && d < 3.5) || (d > 5.5 && d < 6.5) {
				g.set(row, col, '·')
			}
		}
	}

	rad := float64(r.angle) * math.Pi / 180
	g.set(int(cy+2*math.Sin(rad)), int(cx+5*math.Cos(rad)), solid)
	g.set(cy, cx, '●')
	return g.frame(), nil
}

// snake slides back and forth along the middle row.
type snake struct {
	animation
	body []int
	dir  int
}

func newSnake(rng *rand.Rand) *snake {
	s := &snake{animation: animation{id: "snake", rng: rng}}
	s.Reset()
	return s
}

func (s *snake) Reset() {
	s.body = []int{snakeStart}
	s.dir = 1
}

func (s *snake) Next(context.Context) (Frame, error) {
	head := s.body[0] + s.dir
	if head >= Width-1 || head <= 0 {
		s.dir = -s.dir
		head = s.body[0] + s.dir
	}
	s.body = append([]int{head}, s.body...)
	if len(s.body) > snakeMaxLen {
		s.body = s.body[:snakeMaxLen]
	}

	g := blankGrid()
	for i, col := range s.body {
		ch := '○'
		if i == 0 {
			ch = '●'
		}
		g.set(1, col, ch)
	}
	return g.frame(), nil
}

// typing types out a gaming shout with a blinking cursor.
type typing struct {
	animation
	msg string
	pos int
}

func newTyping(rng *rand.Rand) *typing {
	t := &typing{animation: animation{id: "typing", rng: rng}}
	t.Reset()
	return t
}

func (t *typing) Reset() {
	t.pos = 0
	t.msg = typingMessages[t.rng.IntN(len(typingMessages))]
}

func (t *typing) Next(context.Context) (Frame, error) {
	t.pos++
	n := utf8.RuneCountInString(t.msg)
	if t.pos > n+10 {
		t.pos = 0
		t.msg = typingMessages[t.rng.IntN(len(typingMessages))]
	}

	text := string([]rune(t.msg)[:min(t.pos, n)])
	if t.pos <= n {
		if t.pos%2 == 0 {
			text += string(solid)
		} else {
			text += "_"
		}
	}

	bar := strings.Repeat(string(solid), Width)
	return NewFrame(bar, center(text, solid), bar), nil
}

// center pads s on both sides with fill to Width runes.
func center(s string, fill rune) string {
	n := utf8.RuneCountInString(s)
	if n >= Width {
		return Truncate(s, Width)
	}
	left := (Width - n) / 2
	right := Width - n - left
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
}
