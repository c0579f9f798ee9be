// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for parlor.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileKV stores each key as a file under BaseDir.
// Writes go through util.AtomicWriteFile so a crash mid-write never leaves
// a torn value: either the old file or the new complete file survives.
type FileKV struct {
	// BaseDir is the directory holding one file per key.
	// Default: ~/.parlor/state/
	BaseDir string

	mu sync.Mutex
}

// NewFileKV creates a file-backed KV under the user's home directory.
func NewFileKV() (*FileKV, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileKVWithDir(filepath.Join(homeDir, ".parlor", "state"))
}

// NewFileKVWithDir creates a file-backed KV with a custom directory.
func NewFileKVWithDir(baseDir string) (*FileKV, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileKV{BaseDir: baseDir}, nil
}

// Get returns the value for key, if a file for it exists.
// Read errors other than absence are treated as absence: the caller's
// contract is "missing or corrupt yields empty state, never a crash".
func (f *FileKV) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.keyPath(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes value under key atomically.
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return util.AtomicWriteFile(f.keyPath(key), []byte(value), 0644)
}

// keyPath maps a key to its file path, sanitizing path separators so a
// key can never escape BaseDir.
func (f *FileKV) keyPath(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.BaseDir, safe+".json")
}
