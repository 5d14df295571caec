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

package tui

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/novapanel/novapanel/pkg/animation"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/novapanel/novapanel/pkg/testing/mocks"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPresets = []presets.Preset{
	{ID: "pulse", Name: "Pulse", Category: presets.CategoryAnimations, Kind: presets.KindAnimation},
	{ID: "clock", Name: "Clock", Category: presets.CategorySystem, Kind: presets.KindDynamic},
}

func testStatus() models.StatusResponse {
	return models.StatusResponse{
		Device: device.Status{State: device.StateConnected, ServerURL: "http://127.0.0.1:51234"},
		Loop:   animation.Status{ID: "pulse", State: animation.StateRunning, SpeedMs: 200},
		Preview: []string{
			"line one",
			"line two",
			"line three",
		},
	}
}

func newTestApp(t *testing.T) (*App, *mocks.MockPanel) {
	t.Helper()

	panel := &mocks.MockPanel{}
	panel.On("Presets", "").Return(testPresets, nil)
	panel.On("Status").Return(testStatus())

	a, err := New(panel, "linux")
	require.NoError(t, err)
	return a, panel
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func pressEnter(a *App) {
	a.list.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	assert.Equal(t, len(testPresets), a.list.GetItemCount())
	main, secondary := a.list.GetItemText(1)
	assert.Equal(t, "Clock", main)
	assert.Equal(t, "System / clock", secondary)

	assert.Contains(t, a.preview.GetText(true), "line one\nline two\nline three")
	assert.Contains(t, a.status.GetText(true), "connected")
	assert.Contains(t, a.status.GetText(true), "pulse")
}

func TestNew_PresetsError(t *testing.T) {
	t.Parallel()

	panel := &mocks.MockPanel{}
	panel.On("Presets", "").Return(nil, errors.New("boom"))

	_, err := New(panel, "linux")
	require.Error(t, err)
}

func TestApply_FrameUpdated(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	params, err := json.Marshal(models.FrameUpdatedParams{
		ID:        "clock",
		Lines:     []string{"12:00:00", "GG", ""},
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	a.apply(models.Notification{Method: models.NotificationFrameUpdated, Params: params})
	text := a.preview.GetText(true)
	assert.Contains(t, text, "12:00:00\nGG")
	assert.NotContains(t, text, "line one")
}

func TestApply_BadFrameIgnored(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a.apply(models.Notification{Method: models.NotificationFrameUpdated, Params: json.RawMessage(`[1]`)})
	assert.Contains(t, a.preview.GetText(true), "line one\nline two\nline three")
}

func TestApply_StateRefreshesStatus(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	panel.AssertNumberOfCalls(t, "Status", 2)

	a.apply(models.Notification{Method: models.NotificationDeviceState})
	a.apply(models.Notification{Method: models.NotificationLoopState})

	panel.AssertNumberOfCalls(t, "Status", 4)
}

func TestApply_PresetsReloaded(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	a.apply(models.Notification{Method: models.NotificationPresetsReloaded})
	panel.AssertNumberOfCalls(t, "Presets", 2)
}

func TestHandleKey_Stop(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	panel.On("Stop").Return()

	assert.Nil(t, a.handleKey(keyRune('s')))
	panel.AssertCalled(t, "Stop")
	assert.Contains(t, a.message.GetText(true), "stopped")
}

func TestHandleKey_Clear(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	panel.On("Clear").Return()

	assert.Nil(t, a.handleKey(keyRune('c')))
	panel.AssertCalled(t, "Clear")
	assert.Empty(t, strings.TrimSpace(a.preview.GetText(true)))
}

func TestHandleKey_Speed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  rune
		want float64
	}{
		{name: "faster", key: '+', want: 150},
		{name: "faster alias", key: '=', want: 150},
		{name: "slower", key: '-', want: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, panel := newTestApp(t)
			panel.On("Settings").Return(config.SettingsValues{SpeedMs: 200})
			panel.On("SetSpeed", tt.want).Return(tt.want)

			assert.Nil(t, a.handleKey(keyRune(tt.key)))
			panel.AssertCalled(t, "SetSpeed", tt.want)
			assert.Contains(t, a.message.GetText(true), "ms")
		})
	}
}

func TestHandleKey_Reload(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	panel.On("ReloadPresets").Return(4, nil)

	assert.Nil(t, a.handleKey(keyRune('r')))
	assert.Contains(t, a.message.GetText(true), "reloaded 4 art files")
	panel.AssertNumberOfCalls(t, "Presets", 2)
}

func TestHandleKey_PassThrough(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	ev := keyRune('x')
	assert.Same(t, ev, a.handleKey(ev))

	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	assert.Same(t, down, a.handleKey(down))
}

func TestPlay(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	panel.On("LoadPreset", mock.Anything, "pulse").Return(nil)

	pressEnter(a)

	panel.AssertCalled(t, "LoadPreset", mock.Anything, "pulse")
	assert.Contains(t, a.message.GetText(true), "playing pulse")
}

func TestPlay_UnknownPreset(t *testing.T) {
	t.Parallel()

	a, panel := newTestApp(t)
	panel.On("LoadPreset", mock.Anything, "clock").Return(&presets.UnknownPresetError{
		ID:          "clock",
		Suggestions: []string{"clock2", "block"},
	})

	a.list.SetCurrentItem(1)
	pressEnter(a)

	assert.Contains(t, a.message.GetText(true), "unknown preset clock, try clock2, block")
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	st := testStatus()
	st.Device.State = device.StateReconnecting
	st.Device.LastError = "connection refused"
	st.Loop = animation.Status{State: animation.StateIdle, SpeedMs: 120}

	out := formatStatus(st)
	assert.Contains(t, out, "reconnecting")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "120 ms")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasSuffix(lines[3], " -"))
}

func TestSetCurrentTheme(t *testing.T) { //nolint:paralleltest // global theme
	t.Cleanup(func() { SetCurrentTheme(ThemeDefault.Name) })

	assert.False(t, SetCurrentTheme("nope"))
	assert.True(t, SetCurrentTheme(ThemeOLED.Name))
	assert.Equal(t, &ThemeOLED, CurrentTheme())
	assert.Equal(t, ThemeOLED.BorderColor, tview.Styles.BorderColor)
}
