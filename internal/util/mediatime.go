// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the parlor application.
package util

import "strconv"

// FormatMediaTime formats a playback position in seconds as a zero-padded
// MM:SS clock string. Fractional seconds are truncated, not rounded, so
// the displayed clock never runs ahead of the actual position.
// Negative or non-finite inputs format as "00:00".
func FormatMediaTime(seconds float64) string {
	if !(seconds > 0) { // catches negatives and NaN
		return "00:00"
	}
	total := int(seconds)
	mins := total / 60
	secs := total % 60
	return pad2(mins) + ":" + pad2(secs)
}

// pad2 formats an integer as a two-digit zero-padded string.
func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
