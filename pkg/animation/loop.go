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

// Package animation runs the active frame source. A Loop owns at most one
// worker goroutine which ticks the source and publishes each frame to the
// device and to a bounded preview queue.
package animation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/frames"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

const (
	// PreviewCapacity is the size of the preview queue. Frames are dropped
	// when it is full.
	PreviewCapacity = 100
	// MaxConsecutiveErrors stops the worker after this many failed ticks
	// in a row.
	MaxConsecutiveErrors = 5
	// JoinTimeout bounds how long Stop waits for the worker to exit.
	JoinTimeout = time.Second
)

var ErrPreflight = errors.New("source failed its first frame")

// Sink receives published frames. device.Session implements it.
type Sink interface {
	Display(ctx context.Context, f frames.Frame) error
	Connected() bool
}

// Status is a point-in-time view of a Loop.
type Status struct {
	ID      string  `json:"id"`
	State   State   `json:"state"`
	SpeedMs float64 `json:"speedMs"`
}

// Options configure a Loop.
type Options struct {
	Sink    Sink
	Clock   clockwork.Clock
	OnFrame func(id string, f frames.Frame)
	OnState func(st Status)
	SpeedMs float64
}

// Loop drives one frame source at a time.
type Loop struct {
	sink    Sink
	clock   clockwork.Clock
	onFrame func(string, frames.Frame)
	onState func(Status)
	preview chan frames.Frame
	src     frames.Source
	cancel  context.CancelFunc
	done    chan struct{}
	current string
	speed   atomic.Int64
	gen     atomic.Uint64
	state   State
	// mu serializes Play, Stop and Clear.
	mu syncutil.Mutex
	// stateMu guards state and current.
	stateMu sync.Mutex
	// pubMu is held while a frame is published so Stop can fence off a
	// worker that is mid-publish.
	pubMu sync.Mutex
}

func NewLoop(opts Options) *Loop {
	l := &Loop{
		sink:    opts.Sink,
		clock:   opts.Clock,
		onFrame: opts.OnFrame,
		onState: opts.OnState,
		preview: make(chan frames.Frame, PreviewCapacity),
	}
	if l.clock == nil {
		l.clock = clockwork.NewRealClock()
	}
	speed := opts.SpeedMs
	if speed == 0 {
		speed = config.DefaultSpeedMs
	}
	l.storeSpeed(config.ClampSpeed(speed))
	return l
}

func (l *Loop) storeSpeed(ms float64) {
	l.speed.Store(int64(ms * float64(time.Millisecond)))
}

// Speed is the tick interval for sources that follow the user's speed.
func (l *Loop) Speed() time.Duration {
	return time.Duration(l.speed.Load())
}

// Preview returns the queue of published frames.
func (l *Loop) Preview() <-chan frames.Frame {
	return l.preview
}

// Current returns the active source id and loop state.
func (l *Loop) Current() (string, State) {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()
	return l.current, l.state
}

func (l *Loop) Status() Status {
	id, st := l.Current()
	return Status{
		ID:      id,
		State:   st,
		SpeedMs: float64(l.Speed()) / float64(time.Millisecond),
	}
}

func (l *Loop) setState(next State, id string) {
	l.stateMu.Lock()
	if l.state == next && l.current == id {
		l.stateMu.Unlock()
		return
	}
	if next != l.state && !validTransition(l.state, next) {
		log.Warn().
			Stringer("from", l.state).
			Stringer("to", next).
			Msg("invalid animation loop transition")
	}
	l.state = next
	l.current = id
	l.stateMu.Unlock()

	if l.onState != nil {
		l.onState(l.Status())
	}
}

// Play stops the current source and starts src. The source is reset and
// asked for one frame first; if that fails the loop stays idle and the
// error is returned.
func (l *Loop) Play(ctx context.Context, src frames.Source) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playLocked(ctx, src)
}

func (l *Loop) playLocked(ctx context.Context, src frames.Source) error {
	l.stopLocked()

	src.Reset()
	first, err := src.Next(ctx)
	if err != nil {
		l.src = nil
		log.Error().Err(err).Str("id", src.ID()).Msg("frame source preflight failed")
		return fmt.Errorf("%w: %s: %w", ErrPreflight, src.ID(), err)
	}

	gen := l.gen.Add(1)
	workerCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	l.src = src
	l.cancel = cancel
	l.done = done
	l.setState(StateRunning, src.ID())

	l.publish(workerCtx, gen, src.ID(), first)
	go l.run(workerCtx, gen, src, done)

	log.Info().Str("id", src.ID()).Msg("started frame source")
	return nil
}

// Stop halts the worker, clears the preview queue and blanks the display.
// It is safe to call when nothing is running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// Clear stops playback and forgets the current source.
func (l *Loop) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
	l.src = nil
	l.setState(StateIdle, "")
}

func (l *Loop) stopLocked() {
	id, st := l.Current()
	if l.cancel != nil {
		if st == StateRunning {
			l.setState(StateStopping, id)
		}
		l.cancel()

		l.pubMu.Lock()
		l.gen.Add(1)
		l.pubMu.Unlock()

		timer := time.NewTimer(JoinTimeout)
		select {
		case <-l.done:
		case <-timer.C:
			log.Warn().Str("id", id).Msg("frame source worker did not stop in time")
		}
		timer.Stop()

		l.cancel = nil
		l.done = nil
	}

	l.drainPreview()
	l.blank()
	l.setState(StateIdle, id)
}

func (l *Loop) drainPreview() {
	for range PreviewCapacity {
		select {
		case <-l.preview:
		default:
			return
		}
	}
}

func (l *Loop) blank() {
	if l.sink != nil && l.sink.Connected() {
		if err := l.sink.Display(context.Background(), frames.Frame{}); err != nil {
			log.Debug().Err(err).Msg("error blanking display")
		}
	}
	l.offerPreview(frames.Frame{})
	if l.onFrame != nil {
		l.onFrame("", frames.Frame{})
	}
}

func (l *Loop) offerPreview(f frames.Frame) {
	select {
	case l.preview <- f:
	default:
	}
}

// SetSpeed clamps and stores the animation speed, returning the value
// used. A running animation restarts from its initial state.
func (l *Loop) SetSpeed(ms float64) float64 {
	ms = config.ClampSpeed(ms)

	l.mu.Lock()
	defer l.mu.Unlock()

	old := l.Speed()
	l.storeSpeed(ms)

	_, st := l.Current()
	if st == StateRunning && l.src != nil && l.src.Interval() == 0 && old != l.Speed() {
		if err := l.playLocked(context.Background(), l.src); err != nil {
			log.Error().Err(err).Msg("error restarting animation after speed change")
		}
	} else if l.onState != nil {
		l.onState(l.Status())
	}
	return ms
}

// publish sends f to the sink, the preview queue and the frame hook. It
// returns false if gen is no longer current.
func (l *Loop) publish(ctx context.Context, gen uint64, id string, f frames.Frame) bool {
	l.pubMu.Lock()
	defer l.pubMu.Unlock()

	if l.gen.Load() != gen {
		return false
	}

	if l.sink != nil && l.sink.Connected() {
		if err := l.sink.Display(ctx, f); err != nil {
			log.Debug().Err(err).Str("id", id).Msg("error sending frame")
		}
	}
	l.offerPreview(f)
	if l.onFrame != nil {
		l.onFrame(id, f)
	}
	return true
}

func (l *Loop) run(ctx context.Context, gen uint64, src frames.Source, done chan struct{}) {
	defer close(done)

	id := src.ID()
	errCount := 0
	for {
		interval := src.Interval()
		if interval == 0 {
			interval = l.Speed()
		}

		select {
		case <-ctx.Done():
			return
		case <-l.clock.After(interval):
		}

		f, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errCount++
			log.Warn().Err(err).Str("id", id).Int("count", errCount).Msg("frame source tick failed")
			if errCount >= MaxConsecutiveErrors {
				log.Error().Str("id", id).Msg("frame source stopped after repeated errors")
				l.giveUp(gen, id)
				return
			}
			continue
		}
		errCount = 0

		if !l.publish(ctx, gen, id, f) {
			return
		}
	}
}

// giveUp returns the loop to idle after the worker quits on its own,
// unless a newer run has already taken over.
func (l *Loop) giveUp(gen uint64, id string) {
	l.pubMu.Lock()
	current := l.gen.Load() == gen
	l.pubMu.Unlock()
	if current {
		l.setState(StateIdle, id)
	}
}
