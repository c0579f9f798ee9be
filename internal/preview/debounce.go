// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

import (
	"sync"
	"time"
)

// =============================================================================
// DEBOUNCER
// =============================================================================

// Debouncer is a cancellable deferred task. Schedule arms (or re-arms) a
// single pending callback; each call supersedes the previous one, so the
// callback only fires after a quiet period. Cancel invalidates any pending
// fire.
//
// RELIABILITY: A fire that raced with Cancel or a newer Schedule is
// detected by generation counting and becomes a no-op, never a callback
// against a stale target.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Schedule arms the debouncer to run fn after delay, superseding any
// previously scheduled callback.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Cancel invalidates any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
