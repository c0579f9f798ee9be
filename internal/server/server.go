// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server implements the upload relay HTTP service.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/parlorchat/parlor-tui/internal/util"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultPort is the default port for the upload relay.
	DefaultPort = 3000

	// MaxUploadSize caps a single multipart upload (32 MB).
	MaxUploadSize = 32 * 1024 * 1024

	// uploadField is the multipart form field carrying the file.
	uploadField = "file"

	// Version is the relay version.
	Version = "0.2.0"
)

// ============================================================================
// SERVER STATS
// ============================================================================

// Stats tracks relay usage.
type Stats struct {
	mu sync.Mutex

	TotalUploads  int64     `json:"total_uploads"`
	TotalBytes    int64     `json:"total_bytes"`
	FailedUploads int64     `json:"failed_uploads"`
	StartTime     time.Time `json:"start_time"`
}

// NewStats creates a Stats instance stamped with the current time.
func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// RecordUpload records a completed upload of the given size.
func (s *Stats) RecordUpload(bytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalUploads++
	s.TotalBytes += bytes
}

// RecordFailure records a rejected or failed upload.
func (s *Stats) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailedUploads++
}

// Snapshot returns a copy of the current stats.
func (s *Stats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		TotalUploads:  s.TotalUploads,
		TotalBytes:    s.TotalBytes,
		FailedUploads: s.FailedUploads,
		StartTime:     s.StartTime,
	}
}

// ============================================================================
// UPLOAD RESPONSE
// ============================================================================

// UploadResponse is the JSON body returned for a stored file. The chat
// client stages these fields verbatim into its attachment descriptors, and
// the preview classifier keys off Type and Name.
type UploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// ============================================================================
// SERVER
// ============================================================================

// Config holds the relay configuration.
type Config struct {
	// Port is the listen port.
	Port int

	// UploadDir is the directory receiving stored files.
	UploadDir string

	// BaseURL is the externally visible prefix for stored file URLs.
	// Empty derives http://localhost:<port>.
	BaseURL string

	// CORS is the cross-origin policy for the API surface.
	CORS *CORSConfig

	// Limiter is the per-IP rate limiter. Nil uses the default.
	Limiter *RateLimiter
}

// DefaultConfig returns the default relay configuration.
func DefaultConfig() Config {
	return Config{
		Port:      DefaultPort,
		UploadDir: "uploads",
		CORS:      DefaultCORSConfig(),
		Limiter:   DefaultRateLimiter(),
	}
}

// Server is the upload relay.
type Server struct {
	cfg   Config
	stats *Stats
	http  *http.Server
}

// New creates a relay server and ensures its upload directory exists.
func New(cfg Config) (*Server, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.CORS == nil {
		cfg.CORS = DefaultCORSConfig()
	}
	if cfg.Limiter == nil {
		cfg.Limiter = DefaultRateLimiter()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	s := &Server{
		cfg:   cfg,
		stats: NewStats(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", s.handleUpload)
	mux.Handle("/uploads/", s.uploadsHandler())
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	handler := Chain(
		RecoveryMiddleware(),
		LoggingMiddleware(log.Default()),
		CORSMiddleware(cfg.CORS),
		RateLimitMiddleware(cfg.Limiter),
	)(mux)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully assembled HTTP handler, for tests and
// embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe runs the relay until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("SERVER: Upload relay listening on %s", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// ============================================================================
// UPLOAD HANDLER
// ============================================================================

// handleUpload accepts a single multipart "file" field, stores it under a
// generated unique filename, and responds with the stored descriptor.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		s.stats.RecordFailure()
		writeJSONError(w, http.StatusBadRequest, "no file was uploaded")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.stats.RecordFailure()
		writeJSONError(w, http.StatusBadRequest, "no file was uploaded")
		return
	}
	defer file.Close()

	storedName := generateStoredName(header.Filename)
	destPath := filepath.Join(s.cfg.UploadDir, storedName)

	dest, err := os.Create(destPath)
	if err != nil {
		s.stats.RecordFailure()
		log.Printf("SERVER: Failed to create %s: %v", destPath, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dest.Close()

	size, err := io.Copy(dest, file)
	if err != nil {
		s.stats.RecordFailure()
		os.Remove(destPath)
		log.Printf("SERVER: Failed to write %s: %v", destPath, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}

	s.stats.RecordUpload(size)

	writeJSON(w, http.StatusOK, UploadResponse{
		URL:  s.cfg.BaseURL + "/uploads/" + storedName,
		Name: header.Filename,
		Type: contentType,
		Size: size,
	})
}

// generateStoredName builds a unique on-disk filename preserving only the
// original extension: file-<unix-ms>-<random>.<ext>.
func generateStoredName(original string) string {
	buf := make([]byte, 4)
	rand.Read(buf)
	ext := filepath.Ext(original)
	return fmt.Sprintf("%s-%s-%s%s",
		uploadField, util.Int64ToString(time.Now().UnixMilli()), hex.EncodeToString(buf), ext)
}

// ============================================================================
// STATIC SERVING
// ============================================================================

// uploadsHandler serves stored files read-only with the headers document
// preview surfaces require: permissive cross-origin access, frame
// embedding allowed, extension-sniffed content types for office formats,
// inline disposition, and caching disabled.
func (s *Server) uploadsHandler() http.Handler {
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.UploadDir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")

		// Allow embedding in preview iframes
		h.Set("X-Frame-Options", "ALLOWALL")
		h.Set("Content-Security-Policy", "frame-ancestors *")

		// Document preview needs explicit types for office formats
		if ct := documentContentType(r.URL.Path); ct != "" {
			h.Set("Content-Type", ct)
		}

		// Inline display, never a download prompt
		h.Set("Content-Disposition", "inline")

		// Uploads are immutable but iterated on during development;
		// caching disabled to match
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		fileServer.ServeHTTP(w, r)
	})
}

// documentContentType sniffs the content type for document extensions the
// preview classifier depends on. Returns "" for everything else, leaving
// the file server's own detection in place.
func documentContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".doc", ".docx":
		return "application/msword"
	case ".xls", ".xlsx":
		return "application/vnd.ms-excel"
	default:
		return ""
	}
}

// ============================================================================
// HEALTH AND STATS
// ============================================================================

// handleHealth responds with the relay's liveness and version.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}

// handleStats responds with upload statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// ============================================================================
// JSON HELPERS
// ============================================================================

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("SERVER: Failed to encode response: %v", err)
	}
}

// writeJSONError writes an error body in the relay's {error} shape.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
