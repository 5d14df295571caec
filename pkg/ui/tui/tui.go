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

// Package tui is a terminal front end for a running panel: a live preview of
// the three OLED lines, the preset list and the connection status.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/models/requests"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/device"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	speedStep     = 50.0
	actionTimeout = 5 * time.Second
	listWidth     = 36
	helpKeys      = "enter play  s stop  c clear  +/- speed  r reload  q quit"
)

// App is the TUI bound to one panel.
type App struct {
	app     *tview.Application
	panel   requests.Panel
	list    *tview.List
	preview *tview.TextView
	status  *tview.TextView
	message *tview.TextView
	entries []presets.Preset
}

// New builds the layout and loads the preset list. Nothing is drawn until
// Run.
func New(panel requests.Panel, platformID string) (*App, error) {
	a := &App{
		app:   tview.NewApplication(),
		panel: panel,
	}

	a.list = tview.NewList().ShowSecondaryText(true)
	a.list.SetBorder(true).SetTitle(" Presets ")
	a.list.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		if i >= 0 && i < len(a.entries) {
			a.play(a.entries[i].ID)
		}
	})

	a.preview = tview.NewTextView().SetDynamicColors(true)
	a.preview.SetBorder(true).SetTitle(" OLED ")
	a.preview.SetBackgroundColor(CurrentTheme().PreviewBackgroundColor)

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetBorder(true).SetTitle(" Status ")

	a.message = tview.NewTextView().SetDynamicColors(true)
	help := tview.NewTextView().SetText(helpKeys)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.preview, frames.Rows+2, 0, false).
		AddItem(a.status, 0, 1, false).
		AddItem(a.message, 1, 0, false)

	body := tview.NewFlex().
		AddItem(a.list, listWidth, 0, true).
		AddItem(right, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(help, 1, 0, false)
	root.SetBorder(true).
		SetTitle(fmt.Sprintf(" Nova Panel v%s (%s) ", config.AppVersion, platformID)).
		SetTitleAlign(tview.AlignCenter)

	a.app.SetRoot(root, true).SetFocus(a.list)
	a.app.SetInputCapture(a.handleKey)

	if err := a.reloadList(); err != nil {
		return nil, err
	}
	a.setPreview(panel.Status().Preview)
	a.refreshStatus()
	return a, nil
}

// Run draws the UI until the user quits, ctx is done or the notification
// channel closes.
func (a *App) Run(ctx context.Context, notifs <-chan models.Notification) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ApplyTheme(CurrentTheme())
	go a.follow(ctx, notifs)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}

func (a *App) follow(ctx context.Context, notifs <-chan models.Notification) {
	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case n, ok := <-notifs:
			if !ok {
				a.app.Stop()
				return
			}
			a.app.QueueUpdateDraw(func() {
				a.apply(n)
			})
		}
	}
}

// apply updates the widgets for one notification. It must run on the UI
// goroutine.
func (a *App) apply(n models.Notification) {
	switch n.Method {
	case models.NotificationFrameUpdated:
		var params models.FrameUpdatedParams
		if err := json.Unmarshal(n.Params, &params); err != nil {
			log.Debug().Err(err).Msg("bad frame notification")
			return
		}
		a.setPreview(params.Lines)
	case models.NotificationLoopState, models.NotificationDeviceState:
		a.refreshStatus()
	case models.NotificationPresetsReloaded:
		if err := a.reloadList(); err != nil {
			a.showError(err)
		}
	}
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		a.app.Stop()
		return nil
	}
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case 'q':
		a.app.Stop()
	case 's':
		a.panel.Stop()
		a.showInfo("stopped")
		a.refreshStatus()
	case 'c':
		a.panel.Clear()
		a.setPreview(nil)
		a.showInfo("cleared")
		a.refreshStatus()
	case '+', '=':
		a.changeSpeed(-speedStep)
	case '-':
		a.changeSpeed(speedStep)
	case 'r':
		count, err := a.panel.ReloadPresets()
		if err != nil {
			a.showError(err)
			break
		}
		if err := a.reloadList(); err != nil {
			a.showError(err)
			break
		}
		a.showInfo(fmt.Sprintf("reloaded %d art files", count))
	default:
		return event
	}
	return nil
}

// changeSpeed moves the frame interval by delta ms. Faster means a smaller
// interval.
func (a *App) changeSpeed(delta float64) {
	current := a.panel.Settings().SpeedMs
	applied := a.panel.SetSpeed(current + delta)
	a.showInfo(fmt.Sprintf("speed %.0f ms", applied))
	a.refreshStatus()
}

func (a *App) play(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if err := a.panel.LoadPreset(ctx, id); err != nil {
		a.showError(err)
		return
	}
	a.showInfo("playing " + id)
	a.refreshStatus()
}

func (a *App) reloadList() error {
	list, err := a.panel.Presets("")
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	current := a.list.GetCurrentItem()
	a.list.Clear()
	a.entries = list
	for _, p := range list {
		a.list.AddItem(tview.Escape(p.Name), p.Category+" / "+p.ID, 0, nil)
	}
	if current < len(list) {
		a.list.SetCurrentItem(current)
	}
	return nil
}

func (a *App) setPreview(lines []string) {
	color := CurrentTheme().PreviewColorName
	var sb strings.Builder
	for i := range frames.Rows {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		sb.WriteString("[" + color + "]" + tview.Escape(line) + "[-]")
		if i < frames.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	a.preview.SetText(sb.String())
}

func (a *App) refreshStatus() {
	a.status.SetText(formatStatus(a.panel.Status()))
}

func formatStatus(st models.StatusResponse) string {
	theme := CurrentTheme()

	deviceColor := theme.WarningColorName
	switch st.Device.State { //nolint:exhaustive // connecting states stay amber
	case device.StateConnected:
		deviceColor = theme.SuccessColorName
	case device.StateDisconnected:
		deviceColor = theme.ErrorColorName
	}

	preset := st.Loop.ID
	if preset == "" {
		preset = "-"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[::b]GameSense:[::-] [%s]%s[-]\n", deviceColor, st.Device.State)
	fmt.Fprintf(&sb, "[::b]Server:[::-]    %s\n", tview.Escape(st.Device.ServerURL))
	fmt.Fprintf(&sb, "[::b]Loop:[::-]      %s\n", st.Loop.State)
	fmt.Fprintf(&sb, "[::b]Preset:[::-]    %s\n", tview.Escape(preset))
	fmt.Fprintf(&sb, "[::b]Speed:[::-]     %.0f ms", st.Loop.SpeedMs)
	if st.Device.LastError != "" {
		fmt.Fprintf(&sb, "\n[%s]%s[-]", theme.ErrorColorName, tview.Escape(st.Device.LastError))
	}
	return sb.String()
}

func (a *App) showInfo(msg string) {
	a.message.SetText(fmt.Sprintf("[%s]%s[-]", CurrentTheme().AccentColorName, tview.Escape(msg)))
}

func (a *App) showError(err error) {
	msg := err.Error()
	var unknown *presets.UnknownPresetError
	if errors.As(err, &unknown) && len(unknown.Suggestions) > 0 {
		msg = fmt.Sprintf("unknown preset %s, try %s", unknown.ID, strings.Join(unknown.Suggestions, ", "))
	}
	a.message.SetText(fmt.Sprintf("[%s]%s[-]", CurrentTheme().ErrorColorName, tview.Escape(msg)))
}
