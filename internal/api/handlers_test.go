package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pagesum/internal/config"
	"pagesum/internal/llm"
	"pagesum/internal/splitter"
	"pagesum/internal/summarize"
)

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return "echo:" + prompt, nil
}

type downCompleter struct{}

func (downCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return "", &llm.UnavailableError{Err: context.DeadlineExceeded}
}

func testConfig() config.Config {
	return config.Config{
		Port:                   "0",
		Model:                  "test-model",
		ModelTimeout:           time.Second,
		MaxUploadBytes:         1 << 20,
		MaxConcurrentSummarize: 2,
	}
}

func newTestServer(model summarize.Completer) *Server {
	cfg := testConfig()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := splitter.NewRegistry(splitter.Options{PDFFallbackPdftotext: false})
	pipeline := summarize.NewPipeline(reg, model, cfg.MaxConcurrentSummarize, log)
	client := llm.NewOpenAIClient(llm.Config{
		BaseURL: "http://localhost:0/v1",
		APIKey:  "local",
		Model:   cfg.Model,
	})
	return NewServer(pipeline, client, log, cfg)
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleSummarize_TextUpload(t *testing.T) {
	srv := newTestServer(echoCompleter{})

	body, contentType := multipartUpload(t, "file", "note.txt", []byte("hello world"))
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain response, got %q", ct)
	}

	want := "echo:" + summarize.DocumentPromptPrefix +
		"echo:" + summarize.PagePromptPrefix + "hello world"
	if rec.Body.String() != want {
		t.Errorf("expected %q, got %q", want, rec.Body.String())
	}
}

func TestHandleSummarize_MissingFileField(t *testing.T) {
	srv := newTestServer(echoCompleter{})

	body, contentType := multipartUpload(t, "document", "note.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSummarize_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(echoCompleter{})

	body, contentType := multipartUpload(t, "file", "binary.exe", []byte{0x4d, 0x5a})
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSummarize_UnreadablePDF(t *testing.T) {
	srv := newTestServer(echoCompleter{})

	body, contentType := multipartUpload(t, "file", "broken.pdf", []byte("this is not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected non-empty error message")
	}
}

func TestHandleSummarize_ModelUnavailable(t *testing.T) {
	srv := newTestServer(downCompleter{})

	body, contentType := multipartUpload(t, "file", "note.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleSummarize_FileTooLarge(t *testing.T) {
	srv := newTestServer(echoCompleter{})
	srv.cfg.MaxUploadBytes = 16

	body, contentType := multipartUpload(t, "file", "big.txt", bytes.Repeat([]byte("a"), 64))
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(echoCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleLLMStats(t *testing.T) {
	srv := newTestServer(echoCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/llm", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Model string            `json:"model"`
		Stats llm.StatsSnapshot `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats response: %v", err)
	}
	if resp.Model != "test-model" {
		t.Errorf("expected model %q, got %q", "test-model", resp.Model)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		"dir/nested/file.txt": "file.txt",
		"":                    "unnamed",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", in, want, got)
		}
	}
}
