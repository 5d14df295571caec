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

// Package helpers holds shared test fixtures.
package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/novapanel/novapanel/pkg/config"
	"github.com/stretchr/testify/require"
)

// NewTestConfig loads a config from a temp dir. When contents is not empty
// it is written as config.toml first, with the schema version prepended if
// missing.
func NewTestConfig(t *testing.T, contents string) *config.Instance {
	t.Helper()

	dir := t.TempDir()
	if contents != "" {
		if !strings.HasPrefix(contents, "config_schema") {
			contents = "config_schema = 1\n" + contents
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.CfgFile), []byte(contents), 0o600))
	}

	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)
	return cfg
}
