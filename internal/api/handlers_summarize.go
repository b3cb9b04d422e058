package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"pagesum/internal/llm"
	"pagesum/internal/splitter"
)

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !splitter.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	summary, err := s.pipeline.Summarize(r.Context(), bytes.NewReader(data), filename)
	if err != nil {
		s.writeSummarizeError(w, filename, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(summary))
}

// writeSummarizeError maps pipeline failures onto HTTP status codes:
// unreadable input is the client's fault, model failures are upstream.
func (s *Server) writeSummarizeError(w http.ResponseWriter, filename string, err error) {
	var unreadable *splitter.UnreadableError
	var unavailable *llm.UnavailableError
	var modelErr *llm.ModelError

	switch {
	case errors.As(err, &unreadable):
		s.log.Warn("unreadable document", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &unavailable):
		s.log.Error("model unavailable", "filename", filename, "error", err)
		jsonError(w, "inference server unavailable", http.StatusServiceUnavailable)
	case errors.As(err, &modelErr):
		s.log.Error("model error", "filename", filename, "error", err)
		jsonError(w, "inference server returned an error", http.StatusBadGateway)
	default:
		s.log.Error("summarize failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
