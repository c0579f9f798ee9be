// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server implements the upload relay: a stateless multipart-to-disk
// HTTP service with static serving of uploaded content.
//
// Endpoints:
//   - POST /upload   - single multipart "file" field, stored under a
//     generated unique filename; responds {url, name, type, size}
//   - GET  /uploads/ - read-only static serving of uploaded files, with
//     permissive cross-origin headers, extension-sniffed content types
//     for document formats, inline disposition, and caching disabled
//   - GET  /health   - health check
//   - GET  /stats    - upload statistics
//
// The chat client consumes the relay as an opaque upload(file) call; the
// preview classifier depends on the type and name fields of the response
// staying consistent with what this package serves.
package server
