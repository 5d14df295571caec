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
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  Frame
	}{
		{
			name:  "fits",
			lines: []string{"one", "two", "three"},
			want:  Frame{"one", "two", "three"},
		},
		{
			name:  "missing lines stay empty",
			lines: []string{"only"},
			want:  Frame{"only", "", ""},
		},
		{
			name:  "extra lines dropped",
			lines: []string{"a", "b", "c", "d"},
			want:  Frame{"a", "b", "c"},
		},
		{
			name:  "long lines truncated",
			lines: []string{"abcdefghijklmnopqrstuvwxyz"},
			want:  Frame{"abcdefghijklm", "", ""},
		},
		{
			name:  "truncation counts runes",
			lines: []string{"あいうえおかきくけこさしすせそ"},
			want:  Frame{"あいうえおかきくけこさしす", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewFrame(tt.lines...))
		})
	}
}

func TestPadded(t *testing.T) {
	t.Parallel()

	f := Frame{"hi", "", "abcdefghijklmnop"}.Padded()
	for _, row := range f {
		assert.Equal(t, Width, utf8.RuneCountInString(row))
	}
	assert.Equal(t, "hi           ", f[0])
	assert.Equal(t, "abcdefghijklm", f[2])
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, Frame{}.IsBlank())
	assert.True(t, Frame{"   ", " ", ""}.IsBlank())
	assert.False(t, Frame{"", "x", ""}.IsBlank())
}

func TestGridSetIgnoresOutOfBounds(t *testing.T) {
	t.Parallel()

	g := blankGrid()
	g.set(-1, 0, 'x')
	g.set(0, Width, 'x')
	g.set(Rows, 0, 'x')
	g.set(1, 2, 'x')

	f := g.frame()
	assert.Equal(t, "  x          ", f[1])
	assert.True(t, Frame{f[0], f[2]}.IsBlank())
}

func TestCenter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "█████7%██████", center("7%", solid))
	assert.Equal(t, "abcdefghijklm", center("abcdefghijklmnop", solid))
}
