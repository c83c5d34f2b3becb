// Package wordproc extracts tables from word-processing markup trees.
//
// Word-processing formats store table geometry implicitly: a cell
// declares "span N columns" or "continue the vertical merge above me",
// never an explicit row/column index. The [Extractor] reconstructs the
// logical grid by walking each row's cells in source order, placing every
// cell at the first column not already claimed by an earlier span, and
// resolving vertical merges either from explicit row-span attributes or
// by scanning forward through sibling rows for continuation markers.
//
// The tag and attribute names that drive the walk come from a [Dialect];
// [WordDialect], [ODFDialect], and [HTMLDialect] cover the common
// flavors, and custom dialects can be supplied for anything else that
// fits the same shape.
//
// Extraction ends with grid materialization: the sparse span-annotated
// placements become a dense rectangular grid in which covered slots share
// the owning cell's pointer and unclaimed slots hold empty cells. Tables
// nested inside cells are extracted recursively, bounded by
// [Extractor.MaxDepth].
//
// Malformed input surfaces as typed errors from the model package; the
// extractor never guesses. In particular a vertical-merge continuation
// with no owning cell above it is rejected rather than placed with a
// zero span, which would silently desynchronize column indexing for
// every cell after it.
package wordproc
