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
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/sysinfo"
)

// CustomID is the id of the user-entered text source.
const CustomID = "custom_text"

const (
	// StaticInterval is how often static art and custom text are re-sent.
	StaticInterval = time.Second
	// SnapshotInterval is the cadence of the fast system readouts.
	SnapshotInterval = time.Second
	// SlowSnapshotInterval is the cadence of readouts that shell out.
	SlowSnapshotInterval = 2 * time.Second
	// NetworkInfoInterval is the cadence of the host/IP readout.
	NetworkInfoInterval = 5 * time.Second
)

var ErrUnknownSource = errors.New("unknown frame source")

// Source generates frames. Implementations are not safe for concurrent use.
type Source interface {
	// ID is the preset id this source was built for.
	ID() string
	// Next advances the source by one tick and returns the frame to show.
	Next(ctx context.Context) (Frame, error)
	// Reset restores the source to its initial state.
	Reset()
	// Interval is the fixed tick cadence, or zero to follow the user's
	// animation speed.
	Interval() time.Duration
}

// Deps are the collaborators a source may need.
type Deps struct {
	Rand  *rand.Rand
	Clock clockwork.Clock
	Probe sysinfo.Probe
}

// NewDeps returns production dependencies with a randomly seeded generator.
func NewDeps(probe sysinfo.Probe) Deps {
	return Deps{
		Rand:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // visual effects only
		Clock: clockwork.NewRealClock(),
		Probe: probe,
	}
}

type funcSource struct {
	fn       func(ctx context.Context) (Frame, error)
	id       string
	interval time.Duration
}

// NewFunc wraps a stateless frame function as a Source.
func NewFunc(id string, interval time.Duration, fn func(ctx context.Context) (Frame, error)) Source {
	return &funcSource{id: id, interval: interval, fn: fn}
}

func (s *funcSource) ID() string              { return s.id }
func (s *funcSource) Interval() time.Duration { return s.interval }
func (*funcSource) Reset()                    {}

func (s *funcSource) Next(ctx context.Context) (Frame, error) {
	f, err := s.fn(ctx)
	if err != nil {
		return Frame{}, err
	}
	return f.Normalize(), nil
}

// NewStatic returns a source that shows the same lines every tick.
func NewStatic(id string, lines []string) Source {
	f := NewFrame(lines...)
	return NewFunc(id, StaticInterval, func(context.Context) (Frame, error) {
		return f, nil
	})
}

// NewCustom returns the source for user-entered text.
func NewCustom(lines []string) Source {
	return NewStatic(CustomID, lines)
}
