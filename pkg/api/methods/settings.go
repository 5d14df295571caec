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
	"fmt"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/models/requests"
	"github.com/novapanel/novapanel/pkg/api/validation"
	"github.com/rs/zerolog/log"
)

func HandleSettings(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received settings request")

	return models.SettingsResponse{
		SettingsValues: env.Panel.Settings(),
		DebugLogging:   env.Config.DebugLogging(),
	}, nil
}

// HandleSettingsUpdate applies only the fields present in params. Speed and
// auto-start go to the user settings, debug logging to config.toml.
//
//nolint:gocritic // single-use parameter in API handler
func HandleSettingsUpdate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings update request")

	var params models.UpdateSettingsParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err //nolint:wrapcheck // validation errors map to invalid params
	}

	if params.AutoStart != nil {
		log.Info().Bool("autoStart", *params.AutoStart).Msg("update")
		env.Panel.SetAutoStart(*params.AutoStart)
	}

	if params.SpeedMs != nil {
		log.Info().Float64("speedMs", *params.SpeedMs).Msg("update")
		env.Panel.SetSpeed(*params.SpeedMs)
	}

	if params.DebugLogging != nil {
		log.Info().Bool("debugLogging", *params.DebugLogging).Msg("update")
		env.Config.SetDebugLogging(*params.DebugLogging)
		if err := env.Config.Save(); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
	}

	return NoContent{}, nil
}
