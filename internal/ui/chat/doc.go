// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view for the parlor TUI.
//
// The Bubble Tea model here composes the session sidebar, the message
// transcript, the staged attachment list, the input line, and the media
// preview overlay. All conversation state lives in the session store; the
// model only holds view state (focus, scroll position, dimensions) and
// drives the preview controller through a simulated playback element.
package chat
