// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for parlor.
package storage

import "sync"

// =============================================================================
// KV INTERFACE
// =============================================================================

// KV is the durable storage contract consumed by the session store.
//
// Get returns the stored value and true, or "" and false when the key has
// never been written. Set stores the value synchronously. Implementations
// must be safe for concurrent use.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// =============================================================================
// MEMORY BACKEND
// =============================================================================

// MemoryKV is an in-memory KV for tests and ephemeral runs.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get returns the value for key, if present.
func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
