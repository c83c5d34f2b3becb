package tablegrid

import (
	"fmt"

	"github.com/tsawler/tablegrid/model"
)

// Stage names recorded in StructureInterpretationError.
const (
	stageMergeExpansion   = "merge_expansion"
	stageNestedResolution = "nested_resolution"
	stageNormalization    = "normalization"
)

// Interpreter applies the fixed-order interpretation pipeline to a
// materialized table: merge expansion, then nested resolution, then
// irregular-row normalization. Expansion must run before nested
// resolution so nested cells are visited in their final positions, and
// normalization runs last because expansion can change the table width.
//
// Interpretation mutates the table in place and advances its lifecycle
// state; each table passes through the pipeline exactly once. It is a
// pure function of the table's own data, so distinct tables may be
// interpreted concurrently without locking.
type Interpreter struct {
	opts     InterpretOptions
	document string
}

// NewInterpreter creates an interpreter with default options.
func NewInterpreter() *Interpreter {
	return &Interpreter{opts: defaultInterpretOptions()}
}

// Interpret runs the pipeline on one table, leaving it in
// StateNormalized. Any stage failure surfaces as a
// StructureInterpretationError wrapping the stage's typed error, and the
// table does not reach the READY state.
func (in *Interpreter) Interpret(t *model.Table) error {
	return in.interpret(t, 0)
}

func (in *Interpreter) interpret(t *model.Table, depth int) error {
	if t.State != model.StateMaterialized {
		return &model.StructureInterpretationError{
			Stage:    stageMergeExpansion,
			Document: in.document,
			Position: t.Position,
			Err:      fmt.Errorf("table is %s, want %s", t.State, model.StateMaterialized),
		}
	}

	if in.opts.expandMerged {
		if err := expandMergedCells(t, in.document); err != nil {
			return &model.StructureInterpretationError{
				Stage:    stageMergeExpansion,
				Document: in.document,
				Position: t.Position,
				Err:      err,
			}
		}
	}
	t.Advance(model.StateMergeResolved)

	if in.opts.resolveNested {
		if err := in.resolveNestedTables(t, depth); err != nil {
			return &model.StructureInterpretationError{
				Stage:    stageNestedResolution,
				Document: in.document,
				Position: t.Position,
				Err:      err,
			}
		}
	}
	t.Advance(model.StateNestedResolved)

	if in.opts.normalizeRows {
		normalizeIrregularRows(t)
	}
	t.Advance(model.StateNormalized)
	return nil
}

type gridRef struct {
	row, col int
}

type claim struct {
	cell   *model.Cell
	origin gridRef
}

// expandMergedCells re-lays every row out through an occupancy map and
// rebuilds the dense grid, so spans cover their slots with the owning
// cell's pointer and unclaimed slots hold fresh empty cells. Two spans
// claiming the same slot is a hard error. The pass is idempotent: on an
// already-expanded table the covered slots are recognized by pointer
// identity and the layout reproduces itself exactly.
func expandMergedCells(t *model.Table, document string) error {
	claims := make(map[gridRef]claim)
	seen := make(map[*model.Cell]bool)
	maxCol := 0

	for r, row := range t.Rows {
		col := 0
		for _, cell := range row {
			if cell == nil || seen[cell] {
				continue
			}
			for {
				if _, taken := claims[gridRef{r, col}]; !taken {
					break
				}
				col++
			}

			rowSpan, colSpan := cell.RowSpan, cell.ColSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			if colSpan < 1 {
				colSpan = 1
			}
			if r+rowSpan > len(t.Rows) {
				return &model.MergedCellError{
					Document: document,
					Position: t.Position,
					Row:      r,
					Col:      col,
					Reason:   fmt.Sprintf("row span %d extends beyond the last row", rowSpan),
				}
			}

			origin := gridRef{r, col}
			for i := 0; i < rowSpan; i++ {
				for j := 0; j < colSpan; j++ {
					ref := gridRef{r + i, col + j}
					if prev, taken := claims[ref]; taken {
						return &model.MergedCellError{
							Document: document,
							Position: t.Position,
							Row:      ref.row,
							Col:      ref.col,
							Reason: fmt.Sprintf("cells at (%d,%d) and (%d,%d) claim the same slot",
								prev.origin.row, prev.origin.col, origin.row, origin.col),
						}
					}
					claims[ref] = claim{cell: cell, origin: origin}
				}
			}
			if rowSpan > 1 || colSpan > 1 {
				seen[cell] = true
			}

			col += colSpan
			if col > maxCol {
				maxCol = col
			}
		}
	}

	rows := make([][]*model.Cell, len(t.Rows))
	for r := range rows {
		rows[r] = make([]*model.Cell, maxCol)
		for c := 0; c < maxCol; c++ {
			if cl, ok := claims[gridRef{r, c}]; ok {
				rows[r][c] = cl.cell
			} else {
				rows[r][c] = model.EmptyCell()
			}
		}
	}
	t.Rows = rows
	return nil
}

// resolveNestedTables runs the whole pipeline on every nested table,
// bottom-up, so nested tables are fully resolved before their parent is
// normalized. The depth cap guards against pathological hand-built
// input; extraction applies its own cap first.
func (in *Interpreter) resolveNestedTables(t *model.Table, depth int) error {
	seen := make(map[*model.Cell]bool)
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell == nil || seen[cell] {
				continue
			}
			seen[cell] = true
			for _, nested := range cell.Nested {
				if depth+1 > in.opts.maxNestingDepth {
					return &model.NestedTableParsingError{
						Document: in.document,
						Position: t.Position,
						Depth:    depth + 1,
						Reason:   fmt.Sprintf("maximum nesting depth %d exceeded", in.opts.maxNestingDepth),
					}
				}
				if err := in.interpret(nested, depth+1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// normalizeIrregularRows pads every row to the widest row's length with
// empty cells. Irregular widths mostly come from page-layout detection
// artifacts; word-processing tables are rectangular after expansion.
func normalizeIrregularRows(t *model.Table) {
	width := t.ColCount()
	for r, row := range t.Rows {
		for len(row) < width {
			row = append(row, model.EmptyCell())
		}
		t.Rows[r] = row
	}
}
