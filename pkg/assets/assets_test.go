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

package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArts(t *testing.T) {
	t.Parallel()

	arts, err := DefaultArts()
	require.NoError(t, err)
	require.Len(t, arts, 19)

	ids := make([]string, 0, len(arts))
	for _, a := range arts {
		ids = append(ids, a.ID)
		assert.Len(t, strings.Split(string(a.Content), "\n"), 3, a.ID)
	}
	assert.Contains(t, ids, "nova_logo")
	assert.Contains(t, ids, "emoji_gaming")
	assert.IsIncreasing(t, ids)
}
