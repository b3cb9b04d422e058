package splitter

import (
	"strings"
	"testing"
)

func TestTextSplitter_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextSplitter{}
	pages, err := p.Split(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if pages[i].Text != w {
			t.Errorf("page[%d]: expected %q, got %q", i, w, pages[i].Text)
		}
		if pages[i].Index != i {
			t.Errorf("page[%d]: expected index %d, got %d", i, i, pages[i].Index)
		}
	}
}

func TestTextSplitter_EmptyInput(t *testing.T) {
	p := &TextSplitter{}
	pages, err := p.Split(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(pages))
	}
}

func TestTextSplitter_SingleLine(t *testing.T) {
	p := &TextSplitter{}
	pages, err := p.Split(strings.NewReader("Hello world"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Text != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", pages[0].Text)
	}
}

func TestTextSplitter_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty pages.
	input := "Para one.\n\n\n\nPara two."
	p := &TextSplitter{}
	pages, err := p.Split(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
}

func TestTextSplitter_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextSplitter{}
	pages, err := p.Split(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
}
