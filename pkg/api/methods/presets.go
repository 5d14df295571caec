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

package methods

import (
	"bytes"
	"fmt"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/models/requests"
	"github.com/novapanel/novapanel/pkg/api/validation"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandlePresets(env requests.RequestEnv) (any, error) {
	var category string
	if len(env.Params) > 0 {
		var params models.PresetsParams
		if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
			return nil, err //nolint:wrapcheck // validation errors map to invalid params
		}
		if params.Category != nil {
			category = *params.Category
		}
	}
	log.Info().Str("category", category).Msg("received presets request")

	list, err := env.Panel.Presets(category)
	if err != nil {
		return nil, fmt.Errorf("error listing presets: %w", err)
	}
	if list == nil {
		list = make([]presets.Preset, 0)
	}

	return models.PresetsResponse{
		Categories: presets.Categories(),
		Presets:    list,
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandlePresetsExport(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received presets export request")

	var buf bytes.Buffer
	if err := env.Panel.ExportPresets(&buf); err != nil {
		return nil, fmt.Errorf("error exporting presets: %w", err)
	}
	return models.PresetsExportResponse{CSV: buf.String()}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandlePresetsReload(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received presets reload request")

	count, err := env.Panel.ReloadPresets()
	if err != nil {
		return nil, fmt.Errorf("error reloading presets: %w", err)
	}
	return models.PresetsReloadResponse{Count: count}, nil
}
