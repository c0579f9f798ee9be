// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

import "sync"

// =============================================================================
// SIMULATED ELEMENT
// =============================================================================

// Events carries the element event callbacks a caller wires to the
// Controller's handlers, mirroring how a browser surface binds play,
// pause, and ended listeners on a media element.
type Events struct {
	OnPlay  func()
	OnPause func()
	OnEnded func()
}

// SimulatedElement implements Element over a tick-driven play head. The
// terminal has no real audio or video device, so the TUI advances the play
// head from its own clock; the Controller cannot tell the difference.
type SimulatedElement struct {
	mu sync.Mutex

	duration float64
	current  float64
	paused   bool
	volume   float64
	muted    bool

	events Events
}

// NewSimulatedElement creates a paused element with the given duration in
// seconds and full volume.
func NewSimulatedElement(duration float64) *SimulatedElement {
	return &SimulatedElement{
		duration: duration,
		paused:   true,
		volume:   1.0,
	}
}

// SetEvents registers the event callbacks. Callbacks run on the goroutine
// that triggered the event.
func (e *SimulatedElement) SetEvents(events Events) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = events
}

// Advance moves the play head by dt seconds. A play head reaching the end
// pauses the element and fires the ended event.
func (e *SimulatedElement) Advance(dt float64) {
	e.mu.Lock()
	if e.paused || dt <= 0 {
		e.mu.Unlock()
		return
	}

	e.current += dt
	ended := e.duration > 0 && e.current >= e.duration
	if ended {
		e.current = e.duration
		e.paused = true
	}
	onEnded := e.events.OnEnded
	e.mu.Unlock()

	if ended && onEnded != nil {
		onEnded()
	}
}

// Play starts playback. Playing from the end restarts at the beginning,
// matching replay semantics of platform media elements.
func (e *SimulatedElement) Play() error {
	e.mu.Lock()
	if !e.paused {
		e.mu.Unlock()
		return nil
	}
	if e.duration > 0 && e.current >= e.duration {
		e.current = 0
	}
	e.paused = false
	onPlay := e.events.OnPlay
	e.mu.Unlock()

	if onPlay != nil {
		onPlay()
	}
	return nil
}

// Pause halts playback.
func (e *SimulatedElement) Pause() {
	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return
	}
	e.paused = true
	onPause := e.events.OnPause
	e.mu.Unlock()

	if onPause != nil {
		onPause()
	}
}

// Paused reports whether playback is halted.
func (e *SimulatedElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Duration returns the total length in seconds.
func (e *SimulatedElement) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// CurrentTime returns the play head position in seconds.
func (e *SimulatedElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// SetCurrentTime seeks the play head, clamped to the valid range.
func (e *SimulatedElement) SetCurrentTime(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seconds < 0 {
		seconds = 0
	}
	if e.duration > 0 && seconds > e.duration {
		seconds = e.duration
	}
	e.current = seconds
}

// Volume returns the fractional volume.
func (e *SimulatedElement) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume sets the fractional volume, clamped to 0.0-1.0.
func (e *SimulatedElement) SetVolume(fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	e.volume = fraction
}

// Muted reports whether the element is muted.
func (e *SimulatedElement) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// SetMuted sets the mute flag.
func (e *SimulatedElement) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
}
