package model

import (
	"fmt"
	"strings"
)

// TableState represents a table's position in the interpretation lifecycle.
type TableState int

const (
	// StateRaw is a table as produced by span inference, before grid
	// materialization.
	StateRaw TableState = iota
	// StateMaterialized is a dense rectangular grid, pre-interpretation.
	StateMaterialized
	// StateMergeResolved means merged-cell expansion has run.
	StateMergeResolved
	// StateNestedResolved means all nested tables are fully interpreted.
	StateNestedResolved
	// StateNormalized is the terminal state; the table is ready for
	// downstream consumption and must not be mutated.
	StateNormalized
)

func (s TableState) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateMaterialized:
		return "materialized"
	case StateMergeResolved:
		return "merge_resolved"
	case StateNestedResolved:
		return "nested_resolved"
	case StateNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

// Table represents a table with cells organized in rows and columns.
// Rows is dense and rectangular once the table reaches StateMaterialized;
// slots covered by a span hold the owning cell's pointer.
type Table struct {
	Rows     [][]*Cell
	Position int // 0-based index among tables discovered in the document
	Metadata map[string]any
	State    TableState
}

// NewTable creates an empty raw table at the given document position.
// Position is assigned once at discovery and never changes.
func NewTable(position int) *Table {
	return &Table{
		Position: position,
		Metadata: make(map[string]any),
		State:    StateRaw,
	}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the widest row length. For a rectangular table this is
// the length of every row.
func (t *Table) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// IsRectangular reports whether every row has the same length.
func (t *Table) IsRectangular() bool {
	if len(t.Rows) == 0 {
		return true
	}
	width := len(t.Rows[0])
	for _, row := range t.Rows[1:] {
		if len(row) != width {
			return false
		}
	}
	return true
}

// Ready reports whether the table has completed interpretation.
func (t *Table) Ready() bool {
	return t.State == StateNormalized
}

// Advance moves the table to the next lifecycle state. Transitions are
// forward-only and single-step; anything else is a programming error.
func (t *Table) Advance(next TableState) error {
	if next != t.State+1 {
		return fmt.Errorf("model: invalid state transition %s -> %s for table %d",
			t.State, next, t.Position)
	}
	t.State = next
	return nil
}

// GetCell returns the cell at the given row and column (0-indexed), or nil
// if the position is out of bounds.
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// GetText returns a tab- and newline-separated plain text rendering of the
// grid, intended for debugging and tests. Structured serialization is the
// caller's concern.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("\t")
			}
			if cell != nil {
				sb.WriteString(cell.Content)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
