// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions, messages,
// and staged attachments.
//
// A Session is one independent conversation thread: an ordered, append-only
// message history plus the list of attachments staged for the next outgoing
// user message. Messages are immutable once appended, except for delivery
// status transitions (pending -> sent -> delivered -> read | failed).
//
// The package has no dependencies on storage or UI; it is consumed by the
// session store (internal/store), the preview subsystem (internal/preview),
// and the TUI (internal/ui).
package model
