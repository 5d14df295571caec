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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/novapanel/novapanel/internal/telemetry"
	"github.com/novapanel/novapanel/pkg/cli"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/platforms/windows"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	pl := windows.NewPlatform()
	flags := cli.SetupFlags()
	flags.Pre(pl)

	var logWriters []io.Writer
	if !flags.WithTUI() {
		logWriters = []io.Writer{os.Stderr}
	}

	cfg := cli.Setup(pl, config.BaseDefaults, logWriters, *flags.Debug)
	defer telemetry.Close()

	flags.Post(cfg, pl)

	if err := cli.RunApp(pl, cfg, flags.WithTUI()); err != nil {
		log.Error().Err(err).Msg("exiting with error")
		return err //nolint:wrapcheck // already wrapped by RunApp
	}
	return nil
}
