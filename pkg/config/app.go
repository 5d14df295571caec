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

package config

import "time"

var AppVersion = "DEVELOPMENT"

const (
	AppName           = "novapanel"
	LogFile           = "novapanel.log"
	CfgFile           = "config.toml"
	SettingsFile      = "settings.ini"
	ArtDir            = "ascii_art"
	UserDir           = "user"
	APIPath           = "/api/v0.1"
	APIRequestTimeout = 30 * time.Second
)
