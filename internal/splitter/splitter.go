package splitter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pagesum/internal/document"
)

// Splitter converts raw document bytes into an ordered sequence of pages.
type Splitter interface {
	Split(r io.Reader, filename string) ([]document.Page, error)
}

// UnreadableError indicates the uploaded bytes could not be read as the
// claimed format. It aborts the request before any model call.
type UnreadableError struct {
	Format string
	Err    error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable %s document: %v", e.Format, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// Options configure format-specific behavior.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate splitter for a filename.
func ForFile(filename string, opts Options) (Splitter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSplitter{}, nil
	case ".md", ".markdown":
		return &MarkdownSplitter{}, nil
	case ".csv":
		return &CSVSplitter{}, nil
	case ".html", ".htm":
		return &HTMLSplitter{}, nil
	case ".pdf":
		return &PDFSplitter{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXSplitter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Registry dispatches to the right splitter by filename and implements
// Splitter itself, so the pipeline can take a single splitting capability.
type Registry struct {
	opts Options
}

func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts}
}

func (g *Registry) Split(r io.Reader, filename string) ([]document.Page, error) {
	s, err := ForFile(filename, g.opts)
	if err != nil {
		return nil, err
	}
	return s.Split(r, filename)
}

// appendPage adds a non-empty trimmed text as the next page.
func appendPage(pages []document.Page, text string) []document.Page {
	text = strings.TrimSpace(text)
	if text == "" {
		return pages
	}
	return append(pages, document.Page{Index: len(pages), Text: text})
}
