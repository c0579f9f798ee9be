// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the parlor application.
package util

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// STRING UTILITY TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncate with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max", "hello", 2, "he"},
		{"unicode safe", "日本語のテキスト", 5, "日本..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateRunes(tc.input, tc.maxRunes)
			if got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth_CJK(t *testing.T) {
	// Each CJK character occupies two columns
	got := TruncateWidth("日本語", 4)
	if got != "..." && got != "日..." {
		t.Errorf("TruncateWidth CJK = %q, want width-limited result", got)
	}

	if got := TruncateWidth("abc", 10); got != "abc" {
		t.Errorf("TruncateWidth(%q, 10) = %q, want unchanged", "abc", got)
	}
}

func TestPadWidth(t *testing.T) {
	if got := PadWidth("ab", 5); got != "ab   " {
		t.Errorf("PadWidth = %q, want %q", got, "ab   ")
	}
	if got := PadWidth("abcdef", 3); got != "abcdef" {
		t.Errorf("PadWidth should not truncate, got %q", got)
	}
}

// =============================================================================
// CONVERSION TESTS
// =============================================================================

func TestIntToString(t *testing.T) {
	if got := IntToString(42); got != "42" {
		t.Errorf("IntToString(42) = %q, want %q", got, "42")
	}
	if got := Int64ToString(-7); got != "-7" {
		t.Errorf("Int64ToString(-7) = %q, want %q", got, "-7")
	}
	if got := FloatToString(1.5); got != "1.50" {
		t.Errorf("FloatToString(1.5) = %q, want %q", got, "1.50")
	}
}

// =============================================================================
// MEDIA TIME TESTS
// =============================================================================

func TestFormatMediaTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{65, "01:05"},
		{3599, "59:59"},
		{59.9, "00:59"}, // truncated, not rounded
		{
			seconds: 600,
			want:    "10:00",
		},
		{-5, "00:00"},
		{math.NaN(), "00:00"},
	}

	for _, tc := range tests {
		if got := FormatMediaTime(tc.seconds); got != tc.want {
			t.Errorf("FormatMediaTime(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	if err := AtomicWriteFile(path, []byte(`{"ok":true}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("file content = %q, want %q", data, `{"ok":true}`)
	}
}

func TestAtomicWriteFile_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("file content = %q, want %q", data, "second")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}
