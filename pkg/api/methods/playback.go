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
	"errors"
	"fmt"

	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/models/requests"
	"github.com/novapanel/novapanel/pkg/api/validation"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/rs/zerolog/log"
)

// NoContent is returned by methods with nothing to report. It encodes as {}.
type NoContent struct{}

//nolint:gocritic // single-use parameter in API handler
func HandlePlay(env requests.RequestEnv) (any, error) {
	var params models.PlayParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err //nolint:wrapcheck // validation errors map to invalid params
	}
	log.Info().Str("id", params.ID).Msg("received play request")

	if err := env.Panel.LoadPreset(env.Context, params.ID); err != nil {
		var unknown *presets.UnknownPresetError
		if errors.As(err, &unknown) {
			return nil, err //nolint:wrapcheck // suggestions are sent back as error data
		}
		return nil, fmt.Errorf("error playing preset: %w", err)
	}
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleCustom(env requests.RequestEnv) (any, error) {
	var params models.CustomParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err //nolint:wrapcheck // validation errors map to invalid params
	}
	log.Info().Int("lines", len(params.Lines)).Msg("received custom text request")

	var lines [config.CustomLineCount]string
	copy(lines[:], params.Lines)

	if err := env.Panel.SendCustom(env.Context, lines); err != nil {
		return nil, fmt.Errorf("error showing custom text: %w", err)
	}
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleStop(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received stop request")
	env.Panel.Stop()
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleClear(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received clear request")
	env.Panel.Clear()
	return NoContent{}, nil
}

// HandleSpeed returns the speed actually applied, after clamping.
//
//nolint:gocritic // single-use parameter in API handler
func HandleSpeed(env requests.RequestEnv) (any, error) {
	var params models.SpeedParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err //nolint:wrapcheck // validation errors map to invalid params
	}
	log.Info().Float64("ms", params.Ms).Msg("received speed request")

	applied := env.Panel.SetSpeed(params.Ms)
	return models.SpeedResponse{Ms: applied}, nil
}
