package splitter

import (
	"bufio"
	"io"
	"strings"

	"pagesum/internal/document"
)

// TextSplitter handles plain text files. Blank-line separated paragraph
// groups become pages.
type TextSplitter struct{}

func (p *TextSplitter) Split(r io.Reader, filename string) ([]document.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pages []document.Page
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				pages = appendPage(pages, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		pages = appendPage(pages, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, &UnreadableError{Format: "text", Err: err}
	}

	return pages, nil
}
