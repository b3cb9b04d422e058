package document

// Page is one unit of summarizable text extracted from an uploaded document.
// For PDFs a Page corresponds to a physical page; for other formats it is a
// section or paragraph group. Pages are immutable once produced and ordered
// by Index.
type Page struct {
	Index int    // 0-based position in the document
	Text  string // Plain text content, never empty
}
