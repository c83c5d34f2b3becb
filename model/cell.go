package model

// Cell represents an atomic table content unit with span and style
// metadata and any tables nested inside it.
//
// RowSpan and ColSpan are always >= 1 for an owning cell. Continuation
// slots in a materialized grid do not hold separate placeholder cells;
// they share the owner's pointer.
type Cell struct {
	Content string
	RowSpan int
	ColSpan int
	Style   CellStyle
	Nested  []*Table
}

// CellStyle is the opaque style bag carried through the pipeline. The
// engine records it verbatim and never interprets it.
type CellStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	FontName  string
	Color     string // hex RGB, empty if unset
}

// NewCell creates a 1x1 cell with the given content.
func NewCell(content string) *Cell {
	return &Cell{
		Content: content,
		RowSpan: 1,
		ColSpan: 1,
	}
}

// EmptyCell creates a 1x1 cell with no content, used to fill grid slots
// never claimed by any source cell.
func EmptyCell() *Cell {
	return NewCell("")
}

// IsEmpty reports whether the cell has no content and no nested tables.
func (c *Cell) IsEmpty() bool {
	return c.Content == "" && len(c.Nested) == 0
}

// HasNested reports whether the cell contains nested tables.
func (c *Cell) HasNested() bool {
	return len(c.Nested) > 0
}

// SpanArea returns the number of grid slots the cell covers.
func (c *Cell) SpanArea() int {
	rs, cs := c.RowSpan, c.ColSpan
	if rs < 1 {
		rs = 1
	}
	if cs < 1 {
		cs = 1
	}
	return rs * cs
}
