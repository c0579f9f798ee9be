// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the parlor TUI.
//
// Components are pure renderers: they take model or preview state plus a
// theme and produce styled strings. All state lives in the chat model, so
// components stay trivially testable.
package components
