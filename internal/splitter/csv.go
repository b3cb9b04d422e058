package splitter

import (
	"encoding/csv"
	"io"
	"strings"

	"pagesum/internal/document"
)

// CSVSplitter handles CSV files. Data rows are grouped into batches of 20,
// each labelled with the header row so every page reads standalone.
type CSVSplitter struct{}

const csvBatchSize = 20

func (p *CSVSplitter) Split(r io.Reader, filename string) ([]document.Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &UnreadableError{Format: "csv", Err: err}
	}

	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var pages []document.Page
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}

		pages = appendPage(pages, text.String())
	}

	return pages, nil
}
