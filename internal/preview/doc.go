// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem: attachment
// classification and the playback control state machine.
//
// A FileInfo is classified into image, video, audio, or document to select
// a renderer; files matching none of the four have no preview renderer.
//
// The Controller is a single-active-target state machine layered over an
// abstract playable Element (the terminal equivalent of a browser media
// element). Commands (TogglePlay, seek, volume) are issued to the element;
// playing/paused state is only ever flipped by the element's own event
// callbacks (HandlePlay, HandlePause, HandleEnded), so a command the
// element rejects cannot drift the state.
//
// Two debounce timers auto-hide UI chrome: the transport controls after
// 3 seconds of quiet (only while playing), and the volume slider 300 ms
// after the pointer leaves it. Every state-clearing transition cancels
// both timers; a stale fire against a replaced target is a no-op.
package preview
