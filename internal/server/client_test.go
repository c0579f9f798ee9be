// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClientUpload(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello relay"), 0644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(ts.URL)
	resp, err := client.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if !strings.HasSuffix(resp.Name, ".txt") {
		t.Errorf("stored name %q should keep the extension", resp.Name)
	}
	if resp.Size != int64(len("hello relay")) {
		t.Errorf("size = %d, want %d", resp.Size, len("hello relay"))
	}
	if !strings.Contains(resp.URL, "/uploads/") {
		t.Errorf("url %q should point into /uploads/", resp.URL)
	}
}

func TestClientUploadMissingFile(t *testing.T) {
	client := NewClient("http://localhost:0")
	if _, err := client.Upload(context.Background(), "/does/not/exist"); err == nil {
		t.Error("expected error for missing file")
	}
}
