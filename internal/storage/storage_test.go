// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for parlor.
package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// backends returns one of each KV implementation for table-driven tests.
func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKVWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKVWithDir failed: %v", err)
	}

	sqliteKV, err := NewSQLiteKV(filepath.Join(t.TempDir(), "parlor.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

// =============================================================================
// KV CONTRACT TESTS
// =============================================================================

func TestKV_MissingKey(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			value, ok := kv.Get("never-written")
			if ok || value != "" {
				t.Errorf("Get(missing) = (%q, %v), want (\"\", false)", value, ok)
			}
		})
	}
}

func TestKV_SetGet(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set("chat-sessions", `[{"id":"s1"}]`); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			value, ok := kv.Get("chat-sessions")
			if !ok {
				t.Fatal("Get should find written key")
			}
			if value != `[{"id":"s1"}]` {
				t.Errorf("Get = %q, want stored value", value)
			}
		})
	}
}

func TestKV_Overwrite(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set("k", "first"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set("k", "second"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			value, _ := kv.Get("k")
			if value != "second" {
				t.Errorf("Get after overwrite = %q, want %q", value, "second")
			}
		})
	}
}

// =============================================================================
// FILE BACKEND TESTS
// =============================================================================

func TestFileKV_KeySanitization(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKVWithDir(dir)
	if err != nil {
		t.Fatalf("NewFileKVWithDir failed: %v", err)
	}

	if err := kv.Set("../escape/attempt", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// The value must land inside the base directory
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("base dir has %d entries, want 1", len(entries))
	}

	value, ok := kv.Get("../escape/attempt")
	if !ok || value != "v" {
		t.Error("sanitized key should round-trip")
	}
}

// =============================================================================
// SQLITE BACKEND TESTS
// =============================================================================

func TestSQLiteKV_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parlor.db")

	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	if err := kv.Set("chat-sessions", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	kv.Close()

	// Reopen and verify durability
	kv2, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer kv2.Close()

	value, ok := kv2.Get("chat-sessions")
	if !ok || value != "[]" {
		t.Errorf("value did not survive reopen: (%q, %v)", value, ok)
	}
}
