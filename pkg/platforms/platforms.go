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

// Package platforms describes the host operating systems Nova Panel runs on:
// where it keeps its files and where SteelSeries GG publishes the GameSense
// server address.
package platforms

const (
	PlatformIDLinux   = "linux"
	PlatformIDMac     = "mac"
	PlatformIDWindows = "windows"
)

// Settings holds simple platform-specific paths.
type Settings struct {
	// DataDir is where art files and user settings live. Access it through
	// helpers.DataDir so portable installs are honoured.
	DataDir string
	// ConfigDir is where config.toml lives. Access it through
	// helpers.ConfigDir.
	ConfigDir string
	// TempDir holds the log file. Expect it to be deleted.
	TempDir string
}

// Platform is implemented once per supported operating system.
type Platform interface {
	// ID returns the unique ID of this platform.
	ID() string
	// Settings returns the platform paths.
	Settings() Settings
	// CorePropsPath returns the location of the coreProps.json file that
	// SteelSeries GG writes on startup, or an empty string when the engine
	// is not available on this platform.
	CorePropsPath() string
}
