// Package model provides the canonical in-memory representation for
// extracted tables.
//
// This package defines the user-facing data structures produced by the
// extraction and interpretation pipeline. All extractors ultimately emit
// these types, making them the primary API for consuming resolved tables.
//
// # Tables and Cells
//
// A [Table] is a dense rectangular grid of [Cell] pointers. Grid slots
// covered by a row or column span share the owning cell's pointer rather
// than holding deep copies, so wide or tall merges do not duplicate
// potentially large nested structures.
//
// Each [Cell] carries its text content, span counts, an opaque style bag,
// and any tables nested inside it.
//
// # Lifecycle
//
// Every table moves through a fixed, forward-only sequence of states:
//
//	StateRaw -> StateMaterialized -> StateMergeResolved ->
//	StateNestedResolved -> StateNormalized
//
// Extractors hand off tables in StateMaterialized (dense and rectangular).
// The interpretation pipeline advances a table through the remaining
// states exactly once; a table in StateNormalized is immutable and ready
// for downstream consumption.
//
// # Errors
//
// The typed errors surfaced across the pipeline boundary are defined here:
// [TableExtractionError], [MergedCellError], [NestedTableParsingError],
// and [StructureInterpretationError]. All carry the table position and,
// where known, the document identity, and support errors.As and
// errors.Unwrap.
package model
