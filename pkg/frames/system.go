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

package frames

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/sysinfo"
)

const (
	gpuCPUSampleInterval   = 100 * time.Millisecond
	cpuGraphSampleInterval = 500 * time.Millisecond
	cpuGraphStep           = 12.5
	hostnameWidth          = 10
	errorTextWidth         = 15
)

var graphBars = []rune(" ▁▂▃▄▅▆▇█")

// NewClock shows the time, weekday and date. Long month names run past the
// panel width and are cut like any other line.
func NewClock(clock clockwork.Clock) Source {
	return NewFunc("clock", StaticInterval, func(context.Context) (Frame, error) {
		now := clock.Now()
		return NewFrame(now.Format("15:04:05"), now.Weekday().String(), now.Format("02 January 2006")), nil
	})
}

func probeError(title string, err error) Frame {
	return NewFrame(title, Truncate(err.Error(), errorTextWidth), "")
}

// NewGPUCPURAM shows GPU, CPU and memory load.
func NewGPUCPURAM(id string, interval time.Duration, p sysinfo.Probe) Source {
	return NewFunc(id, interval, func(ctx context.Context) (Frame, error) {
		cpu, err := p.CPUPercent(ctx, gpuCPUSampleInterval)
		if err != nil {
			return probeError("System Error", err), nil
		}
		mem, err := p.MemoryPercent(ctx)
		if err != nil {
			return probeError("System Error", err), nil
		}

		gpu := "GPU: N/A"
		if info, err := p.GPU(ctx); err == nil && info != nil {
			gpu = fmt.Sprintf("GPU: %.0f%%", info.Load*100)
		}

		return NewFrame(
			gpu,
			fmt.Sprintf("CPU: %.0f%%", cpu),
			fmt.Sprintf("RAM: %.0f%%", mem),
		), nil
	})
}

// NewRAMNetUptime shows memory load, network throughput and uptime.
func NewRAMNetUptime(p sysinfo.Probe) Source {
	return NewFunc("ram_net_uptime", SnapshotInterval, func(ctx context.Context) (Frame, error) {
		mem, err := p.MemoryPercent(ctx)
		if err != nil {
			return probeError("Error", err), nil
		}
		speed, err := p.NetworkSpeed(ctx)
		if err != nil {
			return probeError("Error", err), nil
		}
		up, err := p.Uptime(ctx)
		if err != nil {
			return probeError("Error", err), nil
		}

		return NewFrame(
			fmt.Sprintf("RAM: %.0f%%", mem),
			fmt.Sprintf("NET: %.1f MB/s", speed),
			fmt.Sprintf("UP: %dh %dm", int(up.Hours()), int(up.Minutes())%60),
		), nil
	})
}

// NewTemperatures shows CPU and GPU temperatures.
func NewTemperatures(p sysinfo.Probe) Source {
	return NewFunc("temperatures", SlowSnapshotInterval, func(ctx context.Context) (Frame, error) {
		cpu := "CPU: N/A"
		if t, ok := p.CPUTemperature(ctx); ok {
			cpu = fmt.Sprintf("CPU: %d°C", int(t))
		}
		gpu := "GPU: N/A"
		if info, err := p.GPU(ctx); err == nil && info != nil {
			gpu = fmt.Sprintf("GPU: %.0f°C", info.Temperature)
		}
		return NewFrame(cpu, gpu, "Temperatures"), nil
	})
}

// NewNetwork shows the host name and primary address.
func NewNetwork(p sysinfo.Probe) Source {
	return NewFunc("network", NetworkInfoInterval, func(ctx context.Context) (Frame, error) {
		host, err := p.Hostname()
		if err != nil {
			return NewFrame("Network Info", "Disconnected", ""), nil
		}
		ip, err := p.PrimaryIPv4(ctx)
		if err != nil {
			return NewFrame("Network Info", "Disconnected", ""), nil
		}
		return NewFrame("Host: "+Truncate(host, hostnameWidth), "IP: "+ip, "Connected"), nil
	})
}

// cpuGraph plots recent CPU load as a bar chart.
type cpuGraph struct {
	probe   sysinfo.Probe
	history [Width]int
}

// NewCPUGraph returns a source that plots the last Width CPU samples.
func NewCPUGraph(p sysinfo.Probe) Source {
	return &cpuGraph{probe: p}
}

func (*cpuGraph) ID() string              { return "cpu_graph" }
func (*cpuGraph) Interval() time.Duration { return SnapshotInterval }
func (g *cpuGraph) Reset()                { g.history = [Width]int{} }

func (g *cpuGraph) Next(ctx context.Context) (Frame, error) {
	cpu, err := g.probe.CPUPercent(ctx, cpuGraphSampleInterval)
	if err != nil {
		return probeError("CPU Error", err), nil
	}

	copy(g.history[:], g.history[1:])
	g.history[Width-1] = int(cpu / cpuGraphStep)

	bars := make([]rune, Width)
	for i, v := range g.history {
		bars[i] = graphBars[min(max(v, 0), len(graphBars)-1)]
	}
	return NewFrame(string(bars), fmt.Sprintf("CPU: %.1f%%", cpu), "History Graph"), nil
}
