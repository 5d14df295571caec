// Nova Panel
// Copyright (c) 2026 The Nova Panel Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build deadlock

// Package syncutil holds the lock types used across the daemon. Building
// with -tags=deadlock swaps them for go-deadlock implementations so lock
// ordering bugs between the animation loop, the device session and the
// settings store surface during development.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether the detector is compiled in.
const DeadlockEnabled = true

// LockTimeout is how long a lock may be held before the detector reports it.
// Frame pushes are bounded by a 500ms HTTP timeout, so anything past a few
// seconds is a real stall.
const LockTimeout = 10 * time.Second

func init() {
	deadlock.Opts.DeadlockTimeout = LockTimeout
}

type Mutex struct {
	deadlock.Mutex
}

type RWMutex struct {
	deadlock.RWMutex
}
