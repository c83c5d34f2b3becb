package model

import "fmt"

// TableExtractionError reports that a table region could not be turned
// into a Table at all.
type TableExtractionError struct {
	Document string // document identity, empty if unknown
	Position int    // table position within the document
	Err      error  // underlying cause
}

func (e *TableExtractionError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("extracting table %d of %s: %v", e.Position, e.Document, e.Err)
	}
	return fmt.Sprintf("extracting table %d: %v", e.Position, e.Err)
}

func (e *TableExtractionError) Unwrap() error { return e.Err }

// MergedCellError reports a span conflict, an out-of-bounds span, or a
// malformed merge continuation.
type MergedCellError struct {
	Document string
	Position int    // table position within the document
	Row, Col int    // grid slot where the problem was detected
	Reason   string // human-readable description of the conflict
}

func (e *MergedCellError) Error() string {
	msg := fmt.Sprintf("merged cell at (%d,%d) in table %d: %s", e.Row, e.Col, e.Position, e.Reason)
	if e.Document != "" {
		msg += " (document " + e.Document + ")"
	}
	return msg
}

// NestedTableParsingError reports that the nested table depth cap was
// exceeded or a nested region was malformed.
type NestedTableParsingError struct {
	Document string
	Position int // position of the containing table
	Depth    int // nesting depth at which the failure occurred
	Reason   string
}

func (e *NestedTableParsingError) Error() string {
	msg := fmt.Sprintf("nested table at depth %d in table %d: %s", e.Depth, e.Position, e.Reason)
	if e.Document != "" {
		msg += " (document " + e.Document + ")"
	}
	return msg
}

// StructureInterpretationError wraps a failure in one of the
// interpretation stages, carrying the originating stage name.
type StructureInterpretationError struct {
	Stage    string // merge_expansion, nested_resolution, or normalization
	Document string
	Position int
	Err      error
}

func (e *StructureInterpretationError) Error() string {
	return fmt.Sprintf("interpreting table %d, stage %s: %v", e.Position, e.Stage, e.Err)
}

func (e *StructureInterpretationError) Unwrap() error { return e.Err }
