// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the multi-session chat store.
//
// The Store owns the ordered list of chat sessions, the active-session
// pointer, message append and session removal, and durable persistence.
// Every mutating operation synchronously serializes the full session list
// to the configured storage.KV under the "chat-sessions" key; a missing or
// corrupt snapshot loads as an empty list, and write failures are logged
// and swallowed because the in-memory state remains the source of truth
// for the current process lifetime.
//
// Invariants:
//   - The active-session ID is always empty or the ID of a present session.
//   - Removing the active session promotes the first remaining session in
//     storage order, or clears the pointer if none remain.
//   - Appending a user text message atomically clears the session's staged
//     attachment list (the attachments are consumed by that send). Bot
//     messages and user media messages leave the list untouched.
//
// Dependent views recompute via the observer list: Subscribe registers a
// callback invoked after every successful mutation.
package store
