package tablegrid

import "github.com/tsawler/tablegrid/wordproc"

// InterpretOptions holds configuration for the interpretation stages.
// Stages default to enabled; disabling one still advances the table's
// lifecycle state so downstream consumers see a READY table.
type InterpretOptions struct {
	// Stage toggles
	expandMerged  bool
	resolveNested bool
	normalizeRows bool

	// Nested table recursion bound
	maxNestingDepth int

	// Maximum tables interpreted in parallel
	concurrency int
}

// defaultInterpretOptions returns the default interpretation options.
func defaultInterpretOptions() InterpretOptions {
	return InterpretOptions{
		expandMerged:    true,
		resolveNested:   true,
		normalizeRows:   true,
		maxNestingDepth: wordproc.DefaultMaxDepth,
		concurrency:     4,
	}
}
