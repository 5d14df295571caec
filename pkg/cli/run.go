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

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/novapanel/novapanel/pkg/api/client"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/platforms"
	"github.com/novapanel/novapanel/pkg/service"
	"github.com/novapanel/novapanel/pkg/ui/tui"
	"github.com/rs/zerolog/log"
)

// ErrAlreadyRunning is returned when another instance owns the API port.
var ErrAlreadyRunning = errors.New("another instance is already running")

const tuiSubscriberBuffer = 64

// Runner starts the service. Tests replace it to avoid binding ports.
type Runner interface {
	IsRunning(cfg *config.Instance) bool
	Start(pl platforms.Platform, cfg *config.Instance) (*service.Service, error)
}

type serviceRunner struct{}

func (serviceRunner) IsRunning(cfg *config.Instance) bool {
	return client.IsServiceRunning(cfg)
}

func (serviceRunner) Start(pl platforms.Platform, cfg *config.Instance) (*service.Service, error) {
	return service.Start(pl, cfg) //nolint:wrapcheck // wrapped by run
}

var defaultRunner Runner = serviceRunner{}

// RunApp runs the service until a signal arrives or the service stops on
// its own. With withTUI the terminal UI runs on top and quitting it stops
// the service.
func RunApp(pl platforms.Platform, cfg *config.Instance, withTUI bool) (returnErr error) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %v\n", r)
			log.Error().Msgf("panic recovered: %v", r)
			returnErr = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(ctx, defaultRunner, pl, cfg, withTUI)
}

func run(
	ctx context.Context,
	runner Runner,
	pl platforms.Platform,
	cfg *config.Instance,
	withTUI bool,
) error {
	if runner.IsRunning(cfg) {
		log.Info().Str("listen", cfg.APIListen()).Msg("service already running, exiting")
		return ErrAlreadyRunning
	}

	svc, err := runner.Start(pl, cfg)
	if err != nil {
		log.Error().Err(err).Msg("error starting service")
		return fmt.Errorf("error starting service: %w", err)
	}
	defer func() {
		if err := svc.Stop(); err != nil {
			log.Error().Err(err).Msg("error stopping service")
		}
	}()

	if !withTUI {
		log.Info().Msg("started in daemon mode")
		select {
		case <-ctx.Done():
			log.Info().Msg("received stop signal")
		case <-svc.Done():
			log.Info().Msg("service shut down internally")
		}
		return nil
	}

	notifs, id := svc.Subscribe(tuiSubscriberBuffer)
	defer svc.Unsubscribe(id)

	app, err := tui.New(svc.Controller(), pl.ID())
	if err != nil {
		return fmt.Errorf("error building UI: %w", err)
	}
	if err := app.Run(ctx, notifs); err != nil {
		log.Error().Err(err).Msg("error running UI")
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}
