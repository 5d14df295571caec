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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const (
	MinSpeedMs     = 50.0
	MaxSpeedMs     = 1000.0
	DefaultSpeedMs = 200.0

	CustomLineCount = 3

	settingsSection = "Settings"
	keyAutoStart    = "auto_start"
	keyLastPreset   = "last_preset"
	keySpeed        = "speed"
	keyCustomLine   = "custom_line_"
)

// SettingsValues is a snapshot of the user settings.
type SettingsValues struct {
	LastPreset  string                  `json:"lastPreset"`
	CustomLines [CustomLineCount]string `json:"customLines"`
	SpeedMs     float64                 `json:"speedMs"`
	AutoStart   bool                    `json:"autoStart"`
}

var defaultSettings = SettingsValues{
	AutoStart: true,
	SpeedMs:   DefaultSpeedMs,
}

// Settings persists what the user last did: the active preset, the custom
// text lines, the animation speed and whether to resume on launch. It is
// stored as an INI file separate from config.toml because it is rewritten
// on every change.
type Settings struct {
	fs     afero.Fs
	path   string
	vals   SettingsValues
	mu     syncutil.RWMutex
	loaded bool
}

func NewSettings(fs afero.Fs, path string) *Settings {
	return &Settings{
		fs:   fs,
		path: path,
		vals: defaultSettings,
	}
}

// ClampSpeed bounds an animation interval to the supported range.
func ClampSpeed(ms float64) float64 {
	switch {
	case ms < MinSpeedMs:
		return MinSpeedMs
	case ms > MaxSpeedMs:
		return MaxSpeedMs
	default:
		return ms
	}
}

// Load reads the settings file. A missing or unreadable file leaves the
// defaults in place; either way the store is marked loaded so later saves
// go through.
func (s *Settings) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loaded = true }()

	s.vals = defaultSettings

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Msg("no settings file found, using defaults")
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	f, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, data)
	if err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	sec, err := f.GetSection(settingsSection)
	if err != nil {
		log.Warn().Msg("settings file has no [Settings] section")
		return nil
	}

	if sec.HasKey(keyAutoStart) {
		v, err := sec.Key(keyAutoStart).Bool()
		if err != nil {
			log.Warn().Err(err).Msg("invalid auto_start value")
		} else {
			s.vals.AutoStart = v
		}
	}

	s.vals.LastPreset = sec.Key(keyLastPreset).String()

	if sec.HasKey(keySpeed) {
		v, err := sec.Key(keySpeed).Float64()
		if err != nil {
			log.Warn().Err(err).Msg("invalid speed value")
		} else {
			s.vals.SpeedMs = ClampSpeed(v)
		}
	}

	for i := range CustomLineCount {
		s.vals.CustomLines[i] = sec.Key(keyCustomLine + strconv.Itoa(i+1)).String()
	}

	log.Info().Str("lastPreset", s.vals.LastPreset).Msg("settings loaded")
	return nil
}

// Save writes the settings file. It is a no-op until Load has run, so a
// failed startup cannot clobber the user's file with defaults.
func (s *Settings) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		log.Debug().Msg("settings not loaded yet, skipping save")
		return nil
	}

	f := ini.Empty()
	sec, err := f.NewSection(settingsSection)
	if err != nil {
		return fmt.Errorf("failed to create settings section: %w", err)
	}

	keys := [][2]string{
		{keyAutoStart, strconv.FormatBool(s.vals.AutoStart)},
		{keyLastPreset, s.vals.LastPreset},
	}
	for i, line := range s.vals.CustomLines {
		keys = append(keys, [2]string{keyCustomLine + strconv.Itoa(i+1), line})
	}
	keys = append(keys, [2]string{keySpeed, strconv.FormatFloat(s.vals.SpeedMs, 'f', 1, 64)})

	for _, kv := range keys {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	log.Debug().Str("lastPreset", s.vals.LastPreset).Msg("settings saved")
	return nil
}

func (s *Settings) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Settings) Values() SettingsValues {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vals
}

func (s *Settings) AutoStart() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vals.AutoStart
}

func (s *Settings) SetAutoStart(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.AutoStart = enabled
}

func (s *Settings) LastPreset() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vals.LastPreset
}

func (s *Settings) SetLastPreset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.LastPreset = id
}

func (s *Settings) CustomLines() [CustomLineCount]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vals.CustomLines
}

func (s *Settings) SetCustomLines(lines [CustomLineCount]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.CustomLines = lines
}

// HasCustomText reports whether any custom line is non-empty.
func (s *Settings) HasCustomText() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.vals.CustomLines {
		if l != "" {
			return true
		}
	}
	return false
}

func (s *Settings) SpeedMs() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vals.SpeedMs
}

// SetSpeedMs stores the clamped speed and returns it.
func (s *Settings) SetSpeedMs(ms float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.SpeedMs = ClampSpeed(ms)
	return s.vals.SpeedMs
}
