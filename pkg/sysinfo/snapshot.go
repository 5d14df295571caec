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
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SnapshotCPUInterval is the CPU sampling window used by Collect.
const SnapshotCPUInterval = 200 * time.Millisecond

// Collect reads every probe concurrently. Individual failures are logged
// at debug level and leave the matching field empty.
func Collect(ctx context.Context, p Probe) Snapshot {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if v, err := p.CPUPercent(ctx, SnapshotCPUInterval); err == nil {
			snap.CPUPercent = &v
		} else {
			log.Debug().Err(err).Msg("snapshot: cpu")
		}
		return nil
	})
	g.Go(func() error {
		if v, err := p.MemoryPercent(ctx); err == nil {
			snap.MemoryPercent = &v
		} else {
			log.Debug().Err(err).Msg("snapshot: memory")
		}
		return nil
	})
	g.Go(func() error {
		if v, err := p.GPU(ctx); err == nil {
			snap.GPU = v
		} else {
			log.Debug().Err(err).Msg("snapshot: gpu")
		}
		return nil
	})
	g.Go(func() error {
		if v, ok := p.CPUTemperature(ctx); ok {
			snap.CPUTemperature = &v
		}
		return nil
	})
	g.Go(func() error {
		if v, err := p.NetworkSpeed(ctx); err == nil {
			snap.NetworkMiBps = &v
		} else {
			log.Debug().Err(err).Msg("snapshot: network")
		}
		return nil
	})
	g.Go(func() error {
		if v, err := p.Uptime(ctx); err == nil {
			snap.Uptime = &v
		} else {
			log.Debug().Err(err).Msg("snapshot: uptime")
		}
		return nil
	})
	g.Go(func() error {
		if v, err := p.Hostname(); err == nil {
			snap.Hostname = v
		}
		if v, err := p.PrimaryIPv4(ctx); err == nil {
			snap.IPv4 = v
		}
		return nil
	})

	_ = g.Wait()
	return snap
}
