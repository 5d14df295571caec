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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/api"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/helpers"
	"github.com/novapanel/novapanel/pkg/helpers/command"
	"github.com/novapanel/novapanel/pkg/platforms"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/novapanel/novapanel/pkg/service/broker"
	"github.com/novapanel/novapanel/pkg/service/discovery"
	"github.com/novapanel/novapanel/pkg/service/publishers"
	"github.com/novapanel/novapanel/pkg/service/state"
	"github.com/novapanel/novapanel/pkg/shared/httpclient"
	"github.com/novapanel/novapanel/pkg/sysinfo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	subscriberBuffer = 100
	apiStopTimeout   = 5 * time.Second
)

// Service is a running Nova Panel: the controller plus every surface that
// drives or observes it.
type Service struct {
	st         *state.State
	controller *Controller
	catalog    *presets.Catalog
	broker     *broker.Broker
	done       chan struct{}
}

// Controller is the panel the API and the TUI drive.
func (s *Service) Controller() *Controller {
	return s.controller
}

func (s *Service) Catalog() *presets.Catalog {
	return s.catalog
}

// Subscribe returns a channel receiving every notification the service
// emits. It is closed when the service stops.
func (s *Service) Subscribe(bufferSize int) (<-chan models.Notification, int) {
	return s.broker.Subscribe(bufferSize)
}

func (s *Service) Unsubscribe(id int) {
	s.broker.Unsubscribe(id)
}

// Done is closed after shutdown has finished.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// Stop shuts the service down and waits for cleanup to finish.
func (s *Service) Stop() error {
	s.st.StopService()
	<-s.done
	return nil
}

func loadSettings(fs afero.Fs, pl platforms.Platform) *config.Settings {
	settings := config.NewSettings(fs, helpers.SettingsPath(pl))
	if err := settings.Load(); err != nil {
		log.Warn().Err(err).Msg("error loading settings, using defaults")
	}
	return settings
}

func loadCatalog(fs afero.Fs, cfg *config.Instance, pl platforms.Platform) (*presets.Catalog, error) {
	store := presets.NewArtStore(fs, cfg.PresetsArtDir(helpers.DataDir(pl)))

	installed, err := store.EnsureDefaults()
	if err != nil {
		log.Error().Err(err).Msg("error installing default ascii art")
	} else if installed > 0 {
		log.Info().Int("count", installed).Msg("installed default ascii art")
	}

	catalog, err := presets.NewCatalog(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	return catalog, nil
}

// startPublishers starts every enabled MQTT publisher, each on its own
// broker subscription. Subscriptions of publishers that fail to connect are
// released so they do not fill up.
func startPublishers(cfg *config.Instance, b *broker.Broker) []*publishers.MQTTPublisher {
	active := make([]*publishers.MQTTPublisher, 0)

	for _, mqttCfg := range cfg.GetMQTTPublishers() {
		// nil means enabled
		if mqttCfg.Enabled != nil && !*mqttCfg.Enabled {
			continue
		}

		log.Info().Msgf("starting MQTT publisher: %s (topic: %s)", mqttCfg.Broker, mqttCfg.Topic)

		notifs, id := b.Subscribe(subscriberBuffer)
		publisher := publishers.NewMQTTPublisher(mqttCfg.Broker, mqttCfg.Topic, mqttCfg.Filter)
		if err := publisher.Start(notifs); err != nil {
			log.Error().Err(err).Msgf("failed to start MQTT publisher for %s", mqttCfg.Broker)
			b.Unsubscribe(id)
			continue
		}

		active = append(active, publisher)
	}

	if len(active) > 0 {
		log.Info().Msgf("started %d MQTT publisher(s)", len(active))
	}
	return active
}

func Start(pl platforms.Platform, cfg *config.Instance) (*Service, error) {
	log.Info().Msgf("version: %s", config.AppVersion)

	st, ns := state.NewState()
	ctx := st.GetContext()

	notifBroker := broker.NewBroker(ctx, ns)
	notifBroker.Start()

	fail := func(err error) (*Service, error) {
		st.StopService()
		<-notifBroker.Done()
		return nil, err
	}

	if err := helpers.EnsureDirectories(pl); err != nil {
		log.Error().Err(err).Msg("error setting up environment")
		return fail(err)
	}

	fs := afero.NewOsFs()
	clock := clockwork.NewRealClock()
	settings := loadSettings(fs, pl)

	log.Info().Msg("loading presets")
	catalog, err := loadCatalog(fs, cfg, pl)
	if err != nil {
		return fail(err)
	}

	controller := NewController(ControllerOptions{
		State:     st,
		Config:    cfg,
		Settings:  settings,
		Catalog:   catalog,
		Probe:     sysinfo.NewSystem(fs, &command.RealExecutor{}, clock),
		Client:    httpclient.NewClient(),
		Clock:     clock,
		ServerURL: device.ResolveServerURL(cfg, fs, pl),
	})

	log.Info().Msg("starting API service")
	apiNotifications, _ := notifBroker.Subscribe(subscriberBuffer)
	apiServer, err := api.Start(ctx, api.Options{
		Panel:         controller,
		Config:        cfg,
		Clock:         clock,
		Notifications: apiNotifications,
		Platform:      pl.ID(),
	})
	if err != nil {
		return fail(fmt.Errorf("failed to start api: %w", err))
	}

	log.Info().Msg("starting mDNS discovery service")
	discoveryService := discovery.New(cfg, pl.ID())
	if discoveryErr := discoveryService.Start(); discoveryErr != nil {
		log.Error().Err(discoveryErr).Msg("mDNS discovery failed to start (continuing without discovery)")
	}

	log.Info().Msg("starting publishers")
	activePublishers := startPublishers(cfg, notifBroker)

	if cfg.PresetsWatch() {
		go func() {
			if watchErr := catalog.Watch(ctx); watchErr != nil && !errors.Is(watchErr, context.Canceled) {
				log.Error().Err(watchErr).Msg("ascii art watcher stopped")
			}
		}()
	}

	controller.Start(ctx)
	log.Info().Msg("service fully initialized")

	svc := &Service{
		st:         st,
		controller: controller,
		catalog:    catalog,
		broker:     notifBroker,
		done:       make(chan struct{}),
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("service context cancelled, running cleanup")

		controller.Shutdown()
		discoveryService.Stop()
		for _, publisher := range activePublishers {
			publisher.Stop()
		}

		select {
		case <-apiServer.Done():
		case <-time.After(apiStopTimeout):
			log.Warn().Msg("timed out waiting for api server to stop")
		}

		notifBroker.Stop()
		<-notifBroker.Done()
		log.Info().Msg("service cleanup completed")
		close(svc.done)
	}()

	return svc, nil
}
