package model

// ParsedDocument represents one document's fully resolved tables along
// with document-level metadata. Tables are owned by their document and
// never shared across documents.
type ParsedDocument struct {
	Name     string // file identity, as reported by the reader
	Source   any    // handle to the reader-provided raw content, opaque
	Tables   []*Table
	Metadata map[string]any
}

// NewParsedDocument creates an empty document with the given identity.
func NewParsedDocument(name string) *ParsedDocument {
	return &ParsedDocument{
		Name:     name,
		Metadata: make(map[string]any),
	}
}

// AddTable appends a resolved table to the document.
func (d *ParsedDocument) AddTable(t *Table) {
	d.Tables = append(d.Tables, t)
}

// TableCount returns the number of resolved tables.
func (d *ParsedDocument) TableCount() int {
	return len(d.Tables)
}

// GetTable returns the table at the given discovery position, or nil if
// no table holds that position.
func (d *ParsedDocument) GetTable(position int) *Table {
	for _, t := range d.Tables {
		if t.Position == position {
			return t
		}
	}
	return nil
}

// TablesOnPage returns the tables whose metadata records the given page
// number. Tables from word-processing sources carry no page metadata and
// are never returned here.
func (d *ParsedDocument) TablesOnPage(page int) []*Table {
	var tables []*Table
	for _, t := range d.Tables {
		if p, ok := t.Metadata["page_number"].(int); ok && p == page {
			tables = append(tables, t)
		}
	}
	return tables
}
