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
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/novapanel/novapanel/pkg/animation"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/novapanel/novapanel/pkg/service/state"
	"github.com/novapanel/novapanel/pkg/shared/httpclient"
	"github.com/novapanel/novapanel/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsPath = "/settings.ini"

type fakeGameSense struct {
	calls  []string
	status int
	mu     sync.Mutex
}

func newFakeGameSense(t *testing.T, status int) (*fakeGameSense, *httptest.Server) {
	t.Helper()

	gs := &fakeGameSense{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gs.mu.Lock()
		gs.calls = append(gs.calls, r.URL.Path)
		code := gs.status
		gs.mu.Unlock()
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return gs, srv
}

func (gs *fakeGameSense) count(path string) int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	n := 0
	for _, c := range gs.calls {
		if c == path {
			n++
		}
	}
	return n
}

type controllerEnv struct {
	controller *Controller
	fs         afero.Fs
	ns         <-chan models.Notification
}

func newControllerEnv(t *testing.T, serverURL string, seed func(*config.Settings)) *controllerEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	settings := config.NewSettings(fs, settingsPath)
	require.NoError(t, settings.Load())
	if seed != nil {
		seed(settings)
		require.NoError(t, settings.Save())
	}

	catalog, err := presets.NewCatalog(presets.NewArtStore(fs, "/art"))
	require.NoError(t, err)

	st, ns := state.NewState()
	t.Cleanup(st.StopService)

	if serverURL == "" {
		serverURL = "http://127.0.0.1:1"
	}

	c := NewController(ControllerOptions{
		State:     st,
		Config:    helpers.NewTestConfig(t, "[device]\nheartbeat_seconds = 0\n"),
		Settings:  settings,
		Catalog:   catalog,
		Client:    httpclient.NewClientWithTimeout(time.Second),
		ServerURL: serverURL,
	})
	return &controllerEnv{controller: c, fs: fs, ns: ns}
}

func (e *controllerEnv) reloadSettings(t *testing.T) config.SettingsValues {
	t.Helper()
	s := config.NewSettings(e.fs, settingsPath)
	require.NoError(t, s.Load())
	return s.Values()
}

func TestController_LoadPreset(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller
	t.Cleanup(c.Stop)

	require.NoError(t, c.LoadPreset(context.Background(), "snake"))

	status := c.Loop().Status()
	assert.Equal(t, "snake", status.ID)
	assert.Equal(t, animation.StateRunning, status.State)
	assert.Equal(t, "snake", c.Settings().LastPreset)
	assert.Equal(t, "snake", env.reloadSettings(t).LastPreset)

	require.Eventually(t, func() bool {
		return c.st.LastFrame().ID == "snake"
	}, 3*time.Second, 20*time.Millisecond)
	assert.Len(t, c.Status().Preview, frames.Rows)
}

func TestController_LoadPreset_Unknown(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", func(s *config.Settings) {
		s.SetLastPreset("rainbow")
	})
	c := env.controller

	err := c.LoadPreset(context.Background(), "snak")
	require.Error(t, err)

	var unknown *presets.UnknownPresetError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Suggestions, "snake")
	assert.Equal(t, "rainbow", c.Settings().LastPreset)
	assert.Equal(t, animation.StateIdle, c.Loop().Status().State)
}

func TestController_SendCustom(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller
	t.Cleanup(c.Stop)

	lines := [config.CustomLineCount]string{"hello", "", "world"}
	require.NoError(t, c.SendCustom(context.Background(), lines))

	vals := env.reloadSettings(t)
	assert.Equal(t, frames.CustomID, vals.LastPreset)
	assert.Equal(t, lines, vals.CustomLines)
	assert.Equal(t, frames.CustomID, c.Loop().Status().ID)

	// playing the custom id replays the stored text
	c.Stop()
	require.NoError(t, c.LoadPreset(context.Background(), frames.CustomID))
	assert.Equal(t, frames.CustomID, c.Loop().Status().ID)
	assert.Equal(t, lines, c.Settings().CustomLines)
}

func TestController_Clear(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	require.NoError(t, c.LoadPreset(context.Background(), "pulse"))
	c.Clear()

	assert.Equal(t, animation.StateIdle, c.Loop().Status().State)
	assert.Empty(t, c.Settings().LastPreset)
	assert.Empty(t, env.reloadSettings(t).LastPreset)
}

func TestController_Clear_ForgetsCustomText(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	require.NoError(t, c.SendCustom(context.Background(), [config.CustomLineCount]string{"secret", "", ""}))
	c.Clear()

	assert.Equal(t, [config.CustomLineCount]string{}, c.Settings().CustomLines)
	vals := env.reloadSettings(t)
	assert.Empty(t, vals.LastPreset)
	assert.Equal(t, [config.CustomLineCount]string{}, vals.CustomLines)
}

func TestController_Stop_KeepsLastPreset(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	require.NoError(t, c.LoadPreset(context.Background(), "pulse"))
	c.Stop()

	assert.Equal(t, animation.StateIdle, c.Loop().Status().State)
	assert.Equal(t, "pulse", c.Settings().LastPreset)
}

func TestController_SetSpeed(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	assert.InDelta(t, 150.0, c.SetSpeed(150), 0.001)
	assert.InDelta(t, 150.0, env.reloadSettings(t).SpeedMs, 0.001)
	assert.Equal(t, 150*time.Millisecond, c.Loop().Speed())

	assert.InDelta(t, config.ClampSpeed(1), c.SetSpeed(1), 0.001)
	assert.InDelta(t, config.ClampSpeed(1e6), c.SetSpeed(1e6), 0.001)
}

func TestController_SetAutoStart(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	c.SetAutoStart(false)
	assert.False(t, c.Settings().AutoStart)
	assert.False(t, env.reloadSettings(t).AutoStart)
}

func TestController_Presets(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	all, err := c.Presets("")
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	system, err := c.Presets(presets.CategorySystem)
	require.NoError(t, err)
	for _, p := range system {
		assert.Equal(t, presets.CategorySystem, p.Category)
	}

	_, err = c.Presets("nope")
	require.Error(t, err)
	require.ErrorIs(t, err, presets.ErrUnknownCategory)

	count, err := c.ReloadPresets()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestController_Start_RestoresLastPreset(t *testing.T) {
	t.Parallel()

	gs, srv := newFakeGameSense(t, http.StatusOK)
	env := newControllerEnv(t, srv.URL, func(s *config.Settings) {
		s.SetAutoStart(true)
		s.SetLastPreset("rainbow")
	})
	c := env.controller

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return c.Loop().Status().ID == "rainbow"
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, device.StateConnected, c.Session().Status().State)

	require.Eventually(t, func() bool {
		return gs.count("/game_event") > 0
	}, 3*time.Second, 20*time.Millisecond)

	c.Shutdown()
	assert.Equal(t, animation.StateIdle, c.Loop().Status().State)
	assert.Equal(t, device.StateDisconnected, c.Session().Status().State)
	assert.GreaterOrEqual(t, gs.count("/remove_game"), 2)
	assert.Equal(t, "rainbow", env.reloadSettings(t).LastPreset)
}

func TestController_Start_AutoStartOff(t *testing.T) {
	t.Parallel()

	_, srv := newFakeGameSense(t, http.StatusOK)
	env := newControllerEnv(t, srv.URL, func(s *config.Settings) {
		s.SetAutoStart(false)
		s.SetLastPreset("rainbow")
	})
	c := env.controller

	c.Start(context.Background())
	require.Eventually(t, func() bool {
		return c.Session().Status().State == device.StateConnected
	}, 5*time.Second, 20*time.Millisecond)

	time.Sleep(AutoStartDelay + 200*time.Millisecond)
	assert.Equal(t, animation.StateIdle, c.Loop().Status().State)

	c.Shutdown()
}

func TestController_Start_SetupFailsPreviewOnly(t *testing.T) {
	t.Parallel()

	_, srv := newFakeGameSense(t, http.StatusInternalServerError)
	env := newControllerEnv(t, srv.URL, func(s *config.Settings) {
		s.SetAutoStart(true)
		s.SetLastPreset("rainbow")
	})
	c := env.controller

	c.Start(context.Background())
	require.Eventually(t, func() bool {
		st := c.Session().Status()
		return st.State == device.StateDisconnected && st.LastError != ""
	}, 5*time.Second, 20*time.Millisecond)

	time.Sleep(AutoStartDelay + 200*time.Millisecond)
	assert.Equal(t, animation.StateIdle, c.Loop().Status().State)

	// presets still play for the preview
	require.NoError(t, c.LoadPreset(context.Background(), "pulse"))
	require.Eventually(t, func() bool {
		return c.st.LastFrame().ID == "pulse"
	}, 3*time.Second, 20*time.Millisecond)

	c.Shutdown()
}

func TestController_NotifiesLoopState(t *testing.T) {
	t.Parallel()

	env := newControllerEnv(t, "", nil)
	c := env.controller

	require.NoError(t, c.LoadPreset(context.Background(), "pulse"))
	c.Stop()

	seen := make(map[string]bool)
	timeout := time.After(3 * time.Second)
	for !seen[models.NotificationLoopState] {
		select {
		case n := <-env.ns:
			seen[n.Method] = true
		case <-timeout:
			t.Fatal("no loop.state notification")
		}
	}
}
