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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/animation"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/notifications"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/novapanel/novapanel/pkg/service/state"
	"github.com/novapanel/novapanel/pkg/shared/httpclient"
	"github.com/novapanel/novapanel/pkg/sysinfo"
	"github.com/rs/zerolog/log"
)

// AutoStartDelay is the pause between a successful GameSense setup and
// restoring the last preset.
const AutoStartDelay = 500 * time.Millisecond

const shutdownTimeout = 3 * time.Second

// ControllerOptions are the pieces a Controller drives. Clock and Client
// default to real implementations.
type ControllerOptions struct {
	State     *state.State
	Config    *config.Instance
	Settings  *config.Settings
	Catalog   *presets.Catalog
	Probe     sysinfo.Probe
	Client    *httpclient.Client
	Clock     clockwork.Clock
	ServerURL string
}

// Controller ties the device session, the animation loop and the user
// settings together. It implements requests.Panel.
type Controller struct {
	st       *state.State
	settings *config.Settings
	catalog  *presets.Catalog
	probe    sysinfo.Probe
	session  *device.Session
	loop     *animation.Loop
	clock    clockwork.Clock
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewController(opts ControllerOptions) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	c := &Controller{
		st:       opts.State,
		settings: opts.Settings,
		catalog:  opts.Catalog,
		probe:    opts.Probe,
		clock:    clock,
	}

	ns := opts.State.Notifications
	c.session = device.NewSession(device.Options{
		Client:    opts.Client,
		Clock:     clock,
		ServerURL: opts.ServerURL,
		MaxFPS:    opts.Config.DeviceMaxFPS(),
		Heartbeat: opts.Config.DeviceHeartbeat(),
		OnStateChange: func(cs device.ConnectionState) {
			notifications.DeviceState(ns, cs, opts.ServerURL)
		},
	})

	c.loop = animation.NewLoop(animation.Options{
		Sink:    c.session,
		Clock:   clock,
		SpeedMs: opts.Settings.SpeedMs(),
		OnFrame: func(id string, f frames.Frame) {
			now := clock.Now()
			c.st.SetLastFrame(id, f, now)
			notifications.FrameUpdated(ns, id, f, now)
		},
		OnState: func(st animation.Status) {
			notifications.LoopState(ns, st)
		},
	})

	opts.Catalog.OnReload(func(art []presets.Preset) {
		notifications.PresetsReloaded(ns, len(art))
	})

	return c
}

// Start connects to GameSense in the background, restores the last preset
// when auto-start is on and then keeps the registration alive until
// Shutdown.
func (c *Controller) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		if err := c.session.Setup(ctx); err != nil {
			log.Warn().Err(err).Msg("gamesense unavailable, running in preview-only mode")
			return
		}

		if c.settings.AutoStart() {
			select {
			case <-ctx.Done():
				return
			case <-c.clock.After(AutoStartDelay):
			}
			c.restore(ctx)
		}

		c.session.Heartbeat(ctx)
	}()
}

// restore plays the saved preset. Custom text is only restored when there
// is some.
func (c *Controller) restore(ctx context.Context) {
	vals := c.settings.Values()
	switch {
	case vals.LastPreset == "":
		return
	case vals.LastPreset == frames.CustomID && !c.settings.HasCustomText():
		return
	}

	log.Info().Str("id", vals.LastPreset).Msg("auto-starting last preset")
	var err error
	if vals.LastPreset == frames.CustomID {
		err = c.SendCustom(ctx, vals.CustomLines)
	} else {
		err = c.LoadPreset(ctx, vals.LastPreset)
	}
	if err != nil {
		log.Error().Err(err).Str("id", vals.LastPreset).Msg("error auto-starting last preset")
	}
}

// Shutdown stops the animation, blanks and unregisters the panel and saves
// the settings.
func (c *Controller) Shutdown() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	c.loop.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	c.session.Cleanup(ctx)

	c.saveSettings()
	log.Info().Msg("controller stopped")
}

func (c *Controller) saveSettings() {
	if err := c.settings.Save(); err != nil {
		log.Error().Err(err).Msg("error saving settings")
	}
}

func (c *Controller) Session() *device.Session {
	return c.session
}

func (c *Controller) Loop() *animation.Loop {
	return c.loop
}

func (c *Controller) Presets(category string) ([]presets.Preset, error) {
	if category == "" {
		return c.catalog.All(), nil
	}
	list, err := c.catalog.List(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return list, nil
}

func (c *Controller) ExportPresets(w io.Writer) error {
	return c.catalog.Export(w) //nolint:wrapcheck // already wrapped by the catalog
}

func (c *Controller) ReloadPresets() (int, error) {
	if err := c.catalog.Reload(); err != nil {
		return 0, fmt.Errorf("failed to reload presets: %w", err)
	}
	list, err := c.catalog.List(presets.CategoryArt)
	if err != nil {
		return 0, fmt.Errorf("failed to list art: %w", err)
	}
	return len(list), nil
}

// LoadPreset plays the preset with the given id and remembers it.
func (c *Controller) LoadPreset(ctx context.Context, id string) error {
	if id == frames.CustomID {
		return c.SendCustom(ctx, c.settings.CustomLines())
	}

	// one generator per source: rand.Rand is not safe for concurrent use
	deps := frames.NewDeps(c.probe)
	deps.Clock = c.clock

	src, err := c.catalog.Source(id, deps)
	if err != nil {
		return err //nolint:wrapcheck // keeps *UnknownPresetError visible to callers
	}
	if err := c.loop.Play(ctx, src); err != nil {
		return fmt.Errorf("failed to play %s: %w", id, err)
	}

	c.settings.SetLastPreset(id)
	c.saveSettings()
	return nil
}

// SendCustom shows user text and remembers it as the last preset.
func (c *Controller) SendCustom(ctx context.Context, lines [config.CustomLineCount]string) error {
	if err := c.loop.Play(ctx, frames.NewCustom(lines[:])); err != nil {
		return fmt.Errorf("failed to show custom text: %w", err)
	}

	c.settings.SetCustomLines(lines)
	c.settings.SetLastPreset(frames.CustomID)
	c.saveSettings()
	return nil
}

func (c *Controller) Stop() {
	c.loop.Stop()
}

// Clear blanks the panel and forgets the last preset and any custom text.
func (c *Controller) Clear() {
	c.loop.Clear()
	c.settings.SetLastPreset("")
	c.settings.SetCustomLines([config.CustomLineCount]string{})
	c.saveSettings()
}

// SetSpeed clamps ms, applies it to the loop and returns the stored value.
func (c *Controller) SetSpeed(ms float64) float64 {
	ms = c.loop.SetSpeed(ms)
	c.settings.SetSpeedMs(ms)
	c.saveSettings()
	return ms
}

func (c *Controller) SetAutoStart(enabled bool) {
	c.settings.SetAutoStart(enabled)
	c.saveSettings()
}

func (c *Controller) Settings() config.SettingsValues {
	return c.settings.Values()
}

func (c *Controller) Status() models.StatusResponse {
	return models.StatusResponse{
		Device:  c.session.Status(),
		Loop:    c.loop.Status(),
		Preview: c.st.LastFrame().Frame.Lines(),
	}
}

func (c *Controller) Snapshot(ctx context.Context) sysinfo.Snapshot {
	if c.probe == nil {
		return sysinfo.Snapshot{}
	}
	return sysinfo.Collect(ctx, c.probe)
}
