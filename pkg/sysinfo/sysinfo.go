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

// Package sysinfo collects the host telemetry shown by the system presets:
// CPU and memory load, GPU load and temperature, CPU temperature, network
// throughput and uptime. Every probe is best effort. Missing sensors are
// reported as errors or "not available" rather than failing the caller.
package sysinfo

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoGPU is returned when no supported GPU tool is installed.
	ErrNoGPU = errors.New("no supported gpu found")
	// ErrNoAddress is returned when the host has no usable IPv4 address.
	ErrNoAddress = errors.New("no ipv4 address found")
)

// GPUInfo is a reading from nvidia-smi.
type GPUInfo struct {
	Name        string  `json:"name"`
	Load        float64 `json:"load"`
	Temperature float64 `json:"temperature"`
}

// Probe reads host telemetry.
type Probe interface {
	// CPUPercent samples total CPU utilisation over interval. An interval of
	// zero compares against the previous call.
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	// MemoryPercent returns used virtual memory in percent.
	MemoryPercent(ctx context.Context) (float64, error)
	// GPU returns the first GPU's load (0..1) and temperature.
	GPU(ctx context.Context) (*GPUInfo, error)
	// CPUTemperature returns the CPU temperature in °C and whether a valid
	// reading was found.
	CPUTemperature(ctx context.Context) (float64, bool)
	// NetworkSpeed returns combined rx+tx throughput in MiB/s since the
	// previous call. The first call returns 0.
	NetworkSpeed(ctx context.Context) (float64, error)
	// Uptime returns the time since boot.
	Uptime(ctx context.Context) (time.Duration, error)
	// Hostname returns the host name.
	Hostname() (string, error)
	// PrimaryIPv4 returns the first non-loopback IPv4 address.
	PrimaryIPv4(ctx context.Context) (string, error)
}

// Snapshot is every probe reading at once. Fields that could not be read
// are left nil.
type Snapshot struct {
	CPUPercent     *float64       `json:"cpuPercent,omitempty"`
	MemoryPercent  *float64       `json:"memoryPercent,omitempty"`
	GPU            *GPUInfo       `json:"gpu,omitempty"`
	CPUTemperature *float64       `json:"cpuTemperature,omitempty"`
	NetworkMiBps   *float64       `json:"networkMiBps,omitempty"`
	Uptime         *time.Duration `json:"uptime,omitempty"`
	Hostname       string         `json:"hostname,omitempty"`
	IPv4           string         `json:"ipv4,omitempty"`
}
