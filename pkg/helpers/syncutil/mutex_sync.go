// Nova Panel
// Copyright (c) 2026 The Nova Panel Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !deadlock

// Package syncutil holds the lock types used across the daemon. Building
// with -tags=deadlock swaps them for go-deadlock implementations so lock
// ordering bugs between the animation loop, the device session and the
// settings store surface during development.
package syncutil

import (
	"sync"
	"time"
)

// DeadlockEnabled reports whether the detector is compiled in.
const DeadlockEnabled = false

// LockTimeout is unused without the deadlock tag but kept so callers can log
// it unconditionally.
const LockTimeout = 10 * time.Second

//nolint:gocritic // embedding is the point of the wrapper
type Mutex struct {
	sync.Mutex //nolint:forbidigo // wrapped here only
}

//nolint:gocritic // embedding is the point of the wrapper
type RWMutex struct {
	sync.RWMutex //nolint:forbidigo // wrapped here only
}
