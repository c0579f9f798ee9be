// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the parlor application.
//
// This package contains common helper functions used throughout the
// application for string manipulation, type conversion, time formatting,
// and file operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width aware truncation (CJK safe)
//   - PadWidth: display-width aware right padding
//
// Type Conversion:
//   - IntToString, Int64ToString: Numeric to string conversion
//
// Time Formatting:
//   - FormatMediaTime: seconds to zero-padded MM:SS playback clock
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
