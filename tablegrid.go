// Package tablegrid turns ambiguous word-processing and page-layout
// table markup into canonical, rectangular, fully-resolved tables.
//
// Word-processing formats never state a cell's grid position directly:
// cells declare "span N columns" or "continue the vertical merge above
// me", and tables nest inside cells. The pipeline reconstructs the
// logical grid from that span metadata, recurses into nested tables, and
// normalizes irregular input without losing data.
//
// Basic usage:
//
//	root, err := markup.ParseXML(f)
//	if err != nil {
//	    // handle error
//	}
//	tables, warnings, err := tablegrid.FromRegions(root).Tables()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tablegrid.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := tablegrid.FromRegions(root).
//	    Named("report.docx").
//	    MaxNestingDepth(4).
//	    Document()
//
// Page-layout sources skip span reconstruction entirely; their detectors
// already emit dense grids:
//
//	tables, _, err := tablegrid.FromPageGrids(pages).Tables()
//
// Every returned table has passed the three interpretation stages (merge
// expansion, nested resolution, irregular-row normalization) and is
// immutable from the caller's point of view.
package tablegrid

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables is a helper that wraps a terminal pipeline call and panics
// if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	tables := tablegrid.MustTables(tablegrid.FromRegions(root).Tables())
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
