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

// Package cli holds the flags and start-up steps shared by every platform
// binary.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/novapanel/novapanel/internal/telemetry"
	"github.com/novapanel/novapanel/pkg/api/client"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/helpers"
	"github.com/novapanel/novapanel/pkg/platforms"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrServiceNotRunning is returned by commands that need a running service.
var ErrServiceNotRunning = errors.New("service is not running, start it with -daemon or -tui")

type Flags struct {
	Version     *bool
	Config      *string
	Daemon      *bool
	TUI         *bool
	ListPresets *bool
	Play        *string
	Debug       *bool
}

// SetupFlags defines the flags common to all platforms.
func SetupFlags() *Flags {
	return &Flags{
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Config: flag.String(
			"config",
			"",
			"path to an alternative config.toml",
		),
		Daemon: flag.Bool(
			"daemon",
			false,
			"run the service in the foreground with no UI",
		),
		TUI: flag.Bool(
			"tui",
			false,
			"run the service with the terminal UI",
		),
		ListPresets: flag.Bool(
			"list-presets",
			false,
			"print every preset and exit",
		),
		Play: flag.String(
			"play",
			"",
			"play a preset on the running service and exit",
		),
		Debug: flag.Bool(
			"debug",
			false,
			"enable debug logging for this run",
		),
	}
}

// WithTUI reports whether the terminal UI should run. -daemon wins over
// -tui and is also the default.
func (f *Flags) WithTUI() bool {
	return *f.TUI && !*f.Daemon
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses flags and handles the ones that need no setup. Add any
// platform flags before calling it.
func (f *Flags) Pre(pl platforms.Platform) {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("Nova Panel v%s (%s)\n", config.AppVersion, pl.ID())
		os.Exit(0)
	}

	if *f.Config != "" {
		if err := os.Setenv(config.CfgEnv, *f.Config); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error setting config path: %v\n", err)
			os.Exit(1)
		}
	}
}

// Post handles the one-shot flags that need config and logging. It exits
// the process when one of them was given.
func (f *Flags) Post(cfg *config.Instance, pl platforms.Platform) {
	ctx := context.Background()

	switch {
	case *f.ListPresets:
		if err := ListPresets(ctx, os.Stdout, cfg, pl); err != nil {
			log.Error().Err(err).Msg("error listing presets")
			_, _ = fmt.Fprintf(os.Stderr, "Error listing presets: %v\n", err)
			exit(1)
		}
		exit(0)
	case isFlagPassed("play"):
		if *f.Play == "" {
			_, _ = fmt.Fprint(os.Stderr, "Error: play flag requires a preset id\n")
			exit(1)
		}
		if err := Play(ctx, cfg, *f.Play); err != nil {
			log.Error().Err(err).Str("id", *f.Play).Msg("error playing preset")
			_, _ = fmt.Fprintf(os.Stderr, "Error playing preset: %v\n", err)
			exit(1)
		}
		exit(0)
	}
}

func exit(code int) {
	telemetry.Flush()
	os.Exit(code)
}

// ListPresets prints every preset as a table. A running service is asked
// first, otherwise the art directory is read directly.
func ListPresets(ctx context.Context, w io.Writer, cfg *config.Instance, pl platforms.Platform) error {
	var list []presets.Preset
	if client.IsServiceRunning(cfg) {
		resp, err := client.LocalClient(ctx, cfg, models.MethodPresets, "")
		if err != nil {
			return fmt.Errorf("failed to query service: %w", err)
		}
		var presetsResp models.PresetsResponse
		if err := json.Unmarshal([]byte(resp), &presetsResp); err != nil {
			return fmt.Errorf("failed to decode presets: %w", err)
		}
		list = presetsResp.Presets
	} else {
		store := presets.NewArtStore(afero.NewOsFs(), cfg.PresetsArtDir(helpers.DataDir(pl)))
		catalog, err := presets.NewCatalog(store)
		if err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		list = catalog.All()
	}
	return WritePresets(w, list)
}

// WritePresets writes an aligned id/name/category/kind table.
func WritePresets(w io.Writer, list []presets.Preset) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tKIND")
	for _, p := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Kind)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return nil
}

// Play asks the running service to play the preset with id.
func Play(ctx context.Context, cfg *config.Instance, id string) error {
	if !client.IsServiceRunning(cfg) {
		return ErrServiceNotRunning
	}

	data, err := json.Marshal(&models.PlayParams{ID: id})
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	if _, err := client.LocalClient(ctx, cfg, models.MethodPlay, string(data)); err != nil {
		return fmt.Errorf("failed to play %s: %w", id, err)
	}
	return nil
}

// Setup creates the platform directories, starts logging and loads the
// config. It exits the process on failure.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	pl platforms.Platform,
	defaultConfig config.Values,
	writers []io.Writer,
	debug bool,
) *config.Instance {
	err := helpers.EnsureDirectories(pl)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}

	err = helpers.InitLogging(pl, writers)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(pl), defaultConfig)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if debug || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := telemetry.Init(
		cfg.ErrorReporting(),
		cfg.DeviceID(),
		config.AppVersion,
		pl.ID(),
	); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg
}
