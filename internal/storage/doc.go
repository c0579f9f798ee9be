// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for parlor.
//
// The session store persists its full snapshot through the KV interface:
// Get returns the stored string for a key (or reports absence), Set writes
// it. Both are synchronous. Two durable backends are provided:
//
//   - FileKV: one file per key under a base directory, written atomically
//     with fsync so a crash never leaves a torn snapshot.
//   - SQLiteKV: a single-table SQLite database (modernc.org/sqlite, no
//     cgo), for installs that prefer one artifact over a directory tree.
//
// MemoryKV backs tests and ephemeral runs.
package storage
