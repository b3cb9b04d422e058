package splitter

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"pagesum/internal/document"
)

// MarkdownSplitter handles Markdown files using goldmark. Each heading
// starts a new page; the heading line is kept at the top of its page so the
// model sees the section context.
type MarkdownSplitter struct{}

func (p *MarkdownSplitter) Split(r io.Reader, filename string) ([]document.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &UnreadableError{Format: "markdown", Err: err}
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var pages []document.Page
	var current bytes.Buffer

	flush := func() {
		pages = appendPage(pages, current.String())
		current.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			current.WriteString(string(node.Text(src)))
		default:
			t := mdBlockText(n, src)
			if t != "" {
				if current.Len() > 0 {
					current.WriteString("\n\n")
				}
				current.WriteString(t)
			}
		}
	}
	flush()

	return pages, nil
}

// mdBlockText gets the text content of a goldmark AST node.
func mdBlockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(mdBlockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
