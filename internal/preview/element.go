// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

// Element is the capability interface over a live playable target, the
// abstraction of a platform media element. The Controller issues commands
// through it and reads its authoritative playback properties; it never
// caches element state beyond what MediaState mirrors.
//
// Times are seconds, Volume is fractional 0.0 to 1.0.
type Element interface {
	// Transport commands. Play may be rejected by the target (for example
	// an autoplay policy); state is reconciled by event callbacks, not by
	// the command having been issued.
	Play() error
	Pause()

	// Playback properties
	Paused() bool
	Duration() float64
	CurrentTime() float64
	SetCurrentTime(seconds float64)

	// Volume properties
	Volume() float64
	SetVolume(fraction float64)
	Muted() bool
	SetMuted(muted bool)
}
