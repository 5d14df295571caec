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
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/models/requests"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/rs/zerolog/log"
)

func HandleVersion(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received version request")
	return models.VersionResponse{
		Version:  config.AppVersion,
		Platform: env.Platform,
	}, nil
}

func HandleStatus(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Debug().Msg("received status request")
	return env.Panel.Status(), nil
}

// HandleSysinfo takes a fresh telemetry snapshot. Probes that fail are left
// out of the result rather than failing the request.
//
//nolint:gocritic // single-use parameter in API handler
func HandleSysinfo(env requests.RequestEnv) (any, error) {
	log.Debug().Msg("received sysinfo request")
	return env.Panel.Snapshot(env.Context), nil
}
