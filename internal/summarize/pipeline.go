package summarize

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"pagesum/internal/document"
)

// Fixed instruction prefixes for the two pipeline stages.
const (
	PagePromptPrefix     = "Summarize this page: "
	DocumentPromptPrefix = "Summarize the whole document: "
)

// Completer is the model capability the pipeline needs: one prompt in, one
// completion out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Splitter is the document-splitting capability.
type Splitter interface {
	Split(r io.Reader, filename string) ([]document.Page, error)
}

// Pipeline turns an uploaded document into one summary using exactly N+1
// model calls for N pages: one per page, then one reduce call over the
// per-page summaries joined in page order.
type Pipeline struct {
	split         Splitter
	model         Completer
	maxConcurrent int
	log           *slog.Logger
}

func NewPipeline(split Splitter, model Completer, maxConcurrent int, log *slog.Logger) *Pipeline {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Pipeline{
		split:         split,
		model:         model,
		maxConcurrent: maxConcurrent,
		log:           log,
	}
}

// Summarize splits the document and reduces it to a single summary.
func (p *Pipeline) Summarize(ctx context.Context, r io.Reader, filename string) (string, error) {
	pages, err := p.split.Split(r, filename)
	if err != nil {
		return "", err
	}
	p.log.Info("split document", "filename", filename, "pages", len(pages))
	return p.SummarizePages(ctx, pages)
}

// SummarizePages runs the map step over pages concurrently (bounded), then
// the reduce step. Page summaries enter the reduce prompt in original page
// order regardless of completion order. A zero-page document still runs the
// reduce call with an empty joined string.
func (p *Pipeline) SummarizePages(ctx context.Context, pages []document.Page) (string, error) {
	mapCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type pageResult struct {
		idx int
		out string
		err error
	}
	summaries := make([]string, len(pages))
	results := make(chan pageResult, len(pages))
	sem := make(chan struct{}, p.maxConcurrent)

	for i, page := range pages {
		go func(i int, pg document.Page) {
			select {
			case sem <- struct{}{}:
			case <-mapCtx.Done():
				results <- pageResult{idx: i, err: mapCtx.Err()}
				return
			}
			defer func() { <-sem }()

			out, err := p.model.Complete(mapCtx, PagePromptPrefix+pg.Text)
			results <- pageResult{idx: i, out: out, err: err}
		}(i, page)
	}

	// First failure wins; remaining map calls are cancelled and any output
	// already produced is discarded.
	var firstErr error
	for range pages {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		summaries[r.idx] = r.out
	}
	if firstErr != nil {
		return "", firstErr
	}

	joined := strings.Join(summaries, "\n")
	summary, err := p.model.Complete(ctx, DocumentPromptPrefix+joined)
	if err != nil {
		return "", err
	}
	return summary, nil
}
