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

package sysinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jonboulle/clockwork"
	"github.com/mackerelio/go-osstat/uptime"
	"github.com/novapanel/novapanel/pkg/helpers/command"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"
	"github.com/spf13/afero"
)

const (
	nvidiaSmi     = "nvidia-smi"
	gpuTimeout    = 2 * time.Second
	thermalZones  = 10
	thermalFormat = "/sys/class/thermal/thermal_zone%d/temp"
	minValidTemp  = 0.0
	maxValidTemp  = 150.0
	bytesPerMiB   = 1024 * 1024
)

var nvidiaSmiArgs = []string{
	"--query-gpu=utilization.gpu,temperature.gpu,name",
	"--format=csv,noheader,nounits",
}

// cpuSensorKeywords match gopsutil sensor keys that belong to the CPU.
var cpuSensorKeywords = []string{"CPU", "CORE", "PROCESSOR", "PACKAGE", "K10TEMP", "TCTL"}

type nvidiaRow struct {
	Utilization float64 `csv:"utilization"`
	Temperature float64 `csv:"temperature"`
	Name        string  `csv:"name"`
}

type netSample struct {
	at    time.Time
	bytes uint64
}

// System is the Probe for the local machine, backed by gopsutil.
type System struct {
	fs    afero.Fs
	exec  command.Executor
	clock clockwork.Clock

	cpuPercent    func(context.Context, time.Duration, bool) ([]float64, error)
	virtualMemory func(context.Context) (*mem.VirtualMemoryStat, error)
	netCounters   func(context.Context, bool) ([]gnet.IOCountersStat, error)
	interfaces    func(context.Context) (gnet.InterfaceStatList, error)
	temperatures  func(context.Context) ([]sensors.TemperatureStat, error)
	bootUptime    func() (time.Duration, error)
	hostname      func() (string, error)

	lastNet *netSample
	mu      syncutil.Mutex
}

func NewSystem(fs afero.Fs, exec command.Executor, clock clockwork.Clock) *System {
	return &System{
		fs:            fs,
		exec:          exec,
		clock:         clock,
		cpuPercent:    cpu.PercentWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		netCounters:   gnet.IOCountersWithContext,
		interfaces:    gnet.InterfacesWithContext,
		temperatures:  sensors.TemperaturesWithContext,
		bootUptime:    uptime.Get,
		hostname:      os.Hostname,
	}
}

func (s *System) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	vals, err := s.cpuPercent(ctx, interval, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read cpu percent: %w", err)
	}
	if len(vals) == 0 {
		return 0, errors.New("failed to read cpu percent: no values")
	}
	return vals[0], nil
}

func (s *System) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := s.virtualMemory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read memory usage: %w", err)
	}
	return vm.UsedPercent, nil
}

// GPU queries nvidia-smi. Only NVIDIA cards are supported.
func (s *System) GPU(ctx context.Context) (*GPUInfo, error) {
	if _, err := s.exec.LookPath(nvidiaSmi); err != nil {
		return nil, ErrNoGPU
	}

	ctx, cancel := context.WithTimeout(ctx, gpuTimeout)
	defer cancel()

	out, err := s.exec.OutputWithOptions(
		ctx,
		command.RunOptions{HideWindow: runtime.GOOS == "windows"},
		nvidiaSmi,
		nvidiaSmiArgs...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", nvidiaSmi, err)
	}

	return parseNvidiaSmi(out)
}

func parseNvidiaSmi(out []byte) (*GPUInfo, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, ErrNoGPU
	}

	var rows []nvidiaRow
	err := gocsv.UnmarshalCSVWithoutHeaders(gocsv.LazyCSVReader(bytes.NewReader(out)), &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s output: %w", nvidiaSmi, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoGPU
	}

	return &GPUInfo{
		Load:        rows[0].Utilization / 100,
		Temperature: rows[0].Temperature,
		Name:        strings.TrimSpace(rows[0].Name),
	}, nil
}

func validTemp(t float64) bool {
	return t > minValidTemp && t < maxValidTemp
}

// CPUTemperature tries hardware sensors first, then the Linux thermal
// zones.
func (s *System) CPUTemperature(ctx context.Context) (float64, bool) {
	temps, err := s.temperatures(ctx)
	if err != nil {
		// gopsutil returns partial readings alongside warnings
		log.Debug().Err(err).Msg("sensor temperatures incomplete")
	}
	for _, t := range temps {
		key := strings.ToUpper(t.SensorKey)
		if !slices.ContainsFunc(cpuSensorKeywords, func(kw string) bool {
			return strings.Contains(key, kw)
		}) {
			continue
		}
		if validTemp(t.Temperature) {
			return t.Temperature, true
		}
	}

	for i := range thermalZones {
		data, err := afero.ReadFile(s.fs, fmt.Sprintf(thermalFormat, i))
		if err != nil {
			continue
		}
		milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			continue
		}
		t := float64(milli) / 1000
		if validTemp(t) {
			return t, true
		}
	}

	return 0, false
}

func (s *System) NetworkSpeed(ctx context.Context) (float64, error) {
	counters, err := s.netCounters(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read network counters: %w", err)
	}
	if len(counters) == 0 {
		return 0, errors.New("failed to read network counters: no interfaces")
	}

	current := netSample{
		bytes: counters[0].BytesRecv + counters[0].BytesSent,
		at:    s.clock.Now(),
	}

	s.mu.Lock()
	prev := s.lastNet
	s.lastNet = &current
	s.mu.Unlock()

	if prev == nil || current.bytes < prev.bytes {
		return 0, nil
	}
	elapsed := current.at.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return 0, nil
	}

	return float64(current.bytes-prev.bytes) / elapsed / bytesPerMiB, nil
}

func (s *System) Uptime(ctx context.Context) (time.Duration, error) {
	d, err := s.bootUptime()
	if err == nil {
		return d, nil
	}
	log.Debug().Err(err).Msg("osstat uptime failed, falling back to gopsutil")

	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read uptime: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}

func (s *System) Hostname() (string, error) {
	name, err := s.hostname()
	if err != nil {
		return "", fmt.Errorf("failed to read hostname: %w", err)
	}
	return name, nil
}

func (s *System) PrimaryIPv4(ctx context.Context) (string, error) {
	ifaces, err := s.interfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if slices.Contains(iface.Flags, "loopback") || !slices.Contains(iface.Flags, "up") {
			continue
		}
		for _, a := range iface.Addrs {
			prefix, err := netip.ParsePrefix(a.Addr)
			if err != nil {
				continue
			}
			addr := prefix.Addr()
			if addr.Is4() && !addr.IsLoopback() && !addr.IsLinkLocalUnicast() {
				return addr.String(), nil
			}
		}
	}

	return "", ErrNoAddress
}
