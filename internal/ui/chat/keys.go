// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	// Transcript navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Session management
	NewSession    key.Binding
	NextSession   key.Binding
	PrevSession   key.Binding
	DeleteSession key.Binding

	// Composition
	Submit key.Binding
	Attach key.Binding

	// Media preview
	OpenPreview  key.Binding
	ClosePreview key.Binding
	PlayPause    key.Binding
	SeekBack     key.Binding
	SeekForward  key.Binding
	VolumeUp     key.Binding
	VolumeDown   key.Binding
	Mute         key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		NextSession: key.NewBinding(
			key.WithKeys("ctrl+j", "tab"),
			key.WithHelp("Tab", "next chat"),
		),
		PrevSession: key.NewBinding(
			key.WithKeys("ctrl+k", "shift+tab"),
			key.WithHelp("S-Tab", "previous chat"),
		),
		DeleteSession: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete chat"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "attach file"),
		),
		OpenPreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "preview last media"),
		),
		ClosePreview: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close preview"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "play/pause"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "seek back"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "seek forward"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
