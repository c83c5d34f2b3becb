package tablegrid

import (
	"fmt"
	"strings"
)

// Warning reports a non-fatal, per-table problem. A failing table is
// skipped and reported as a warning so its siblings still resolve; the
// underlying typed error is preserved for callers whose policy is to
// abort instead.
type Warning struct {
	Position int    // position of the affected table
	Message  string // short description of what was skipped and why
	Err      error  // the typed error that caused the skip
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("table %d: %s: %v", w.Position, w.Message, w.Err)
	}
	return fmt.Sprintf("table %d: %s", w.Position, w.Message)
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
