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

package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/platforms"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DefaultServerURL is used when GameSense's coreProps.json cannot be read.
const DefaultServerURL = "http://127.0.0.1:3650"

var ErrNoCoreProps = errors.New("coreProps.json not available")

type coreProps struct {
	Address string `json:"address"`
}

// DiscoverServerURL reads the GameSense address from the coreProps.json
// file at path.
func DiscoverServerURL(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", ErrNoCoreProps
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoCoreProps, err)
	}

	var props coreProps
	if err := json.Unmarshal(data, &props); err != nil {
		return "", fmt.Errorf("error parsing %s: %w", path, err)
	}
	if props.Address == "" {
		return "", fmt.Errorf("%w: no address in %s", ErrNoCoreProps, path)
	}

	return "http://" + strings.TrimPrefix(props.Address, "http://"), nil
}

// ResolveServerURL picks the GameSense address: the configured URL, then
// coreProps.json, then DefaultServerURL.
func ResolveServerURL(cfg *config.Instance, fs afero.Fs, pl platforms.Platform) string {
	if url := cfg.DeviceServerURL(); url != "" {
		return strings.TrimSuffix(url, "/")
	}

	url, err := DiscoverServerURL(fs, pl.CorePropsPath())
	if err != nil {
		log.Debug().Err(err).Msg("using default gamesense address")
		return DefaultServerURL
	}

	log.Info().Str("url", url).Msg("discovered gamesense address")
	return url
}
