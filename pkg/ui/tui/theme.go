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
	"github.com/gdamore/tcell/v2"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/rivo/tview"
)

// Theme is the colour set for the TUI. The *Name fields are for tview
// colour tags and must match their tcell counterparts.
type Theme struct {
	Name                     string
	DisplayName              string
	AccentColorName          string
	ErrorColorName           string
	SuccessColorName         string
	WarningColorName         string
	PreviewColorName         string
	PrimitiveBackgroundColor tcell.Color
	ContrastBackgroundColor  tcell.Color
	BorderColor              tcell.Color
	PrimaryTextColor         tcell.Color
	SecondaryTextColor       tcell.Color
	InverseTextColor         tcell.Color
	PreviewBackgroundColor   tcell.Color
}

var ThemeDefault = Theme{
	Name:        "default",
	DisplayName: "Default (Dark Blue)",

	PrimitiveBackgroundColor: tcell.ColorDarkBlue,
	ContrastBackgroundColor:  tcell.ColorBlue,
	BorderColor:              tcell.ColorLightYellow,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorGray,
	InverseTextColor:         tcell.ColorDarkBlue,
	PreviewBackgroundColor:   tcell.ColorBlack,

	AccentColorName:  "yellow",
	ErrorColorName:   "red",
	SuccessColorName: "green",
	WarningColorName: "yellow",
	PreviewColorName: "white",
}

// ThemeOLED mimics the panel itself: white on black.
var ThemeOLED = Theme{
	Name:        "oled",
	DisplayName: "OLED",

	PrimitiveBackgroundColor: tcell.ColorBlack,
	ContrastBackgroundColor:  tcell.NewHexColor(0x1A1A1A),
	BorderColor:              tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorGray,
	InverseTextColor:         tcell.ColorBlack,
	PreviewBackgroundColor:   tcell.ColorBlack,

	AccentColorName:  "white",
	ErrorColorName:   "red",
	SuccessColorName: "lime",
	WarningColorName: "yellow",
	PreviewColorName: "white",
}

var AvailableThemes = map[string]*Theme{
	ThemeDefault.Name: &ThemeDefault,
	ThemeOLED.Name:    &ThemeOLED,
}

var (
	currentTheme = &ThemeDefault
	themeMu      syncutil.RWMutex
)

func CurrentTheme() *Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme switches theme by name. It returns false for unknown
// names.
func SetCurrentTheme(name string) bool {
	theme, ok := AvailableThemes[name]
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	ApplyTheme(theme)
	return true
}

// ApplyTheme copies the theme into tview's global styles.
func ApplyTheme(theme *Theme) {
	tview.Styles.PrimitiveBackgroundColor = theme.PrimitiveBackgroundColor
	tview.Styles.ContrastBackgroundColor = theme.ContrastBackgroundColor
	tview.Styles.BorderColor = theme.BorderColor
	tview.Styles.PrimaryTextColor = theme.PrimaryTextColor
	tview.Styles.SecondaryTextColor = theme.SecondaryTextColor
	tview.Styles.InverseTextColor = theme.InverseTextColor
}
