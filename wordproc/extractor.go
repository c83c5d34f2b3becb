package wordproc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tablegrid/markup"
	"github.com/tsawler/tablegrid/model"
)

// DefaultMaxDepth is the default bound on nested table recursion.
const DefaultMaxDepth = 10

// Extractor turns word-processing table regions into materialized tables.
// It infers each cell's grid position from span and merge attributes: the
// source never states a row or column index directly.
type Extractor struct {
	Dialect  Dialect
	MaxDepth int    // nested table depth cap; 0 means DefaultMaxDepth
	Document string // document identity carried into errors
}

// NewExtractor creates an extractor for the given dialect.
func NewExtractor(d Dialect) *Extractor {
	return &Extractor{Dialect: d, MaxDepth: DefaultMaxDepth}
}

func (e *Extractor) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return DefaultMaxDepth
}

// Regions returns the top-level table regions under root, in document
// order. Tables nested inside cells are not returned; extraction recurses
// into them itself.
func (e *Extractor) Regions(root *markup.Node) []*markup.Node {
	if root.Tag == e.Dialect.TableTag {
		return []*markup.Node{root}
	}
	return root.FindShallow(e.Dialect.TableTag)
}

// ExtractAll extracts every top-level table region under root, assigning
// positions in discovery order. It stops at the first failing region;
// callers that want per-table continuation use Regions and ExtractTable.
func (e *Extractor) ExtractAll(root *markup.Node) ([]*model.Table, error) {
	regions := e.Regions(root)
	tables := make([]*model.Table, 0, len(regions))
	for i, region := range regions {
		table, err := e.ExtractTable(region, i)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// ExtractTable extracts a single table region into a materialized table
// at the given document position.
func (e *Extractor) ExtractTable(region *markup.Node, position int) (*model.Table, error) {
	if region == nil || region.Tag != e.Dialect.TableTag {
		tag := "<nil>"
		if region != nil {
			tag = region.Tag
		}
		return nil, &model.TableExtractionError{
			Document: e.Document,
			Position: position,
			Err:      fmt.Errorf("region has tag %q, want %q", tag, e.Dialect.TableTag),
		}
	}
	return e.extract(region, position, position, 0)
}

type mergeState int

const (
	mergeNone mergeState = iota
	mergeRestart
	mergeContinue
)

// gridRef identifies one grid slot.
type gridRef struct {
	row, col int
}

// placement records an owning cell and the span it claims.
type placement struct {
	cell             *model.Cell
	row, col         int
	rowSpan, colSpan int
}

// extract performs span inference over a table region and materializes
// the result. position is the table's index within its own context
// (document order for top-level tables, per-cell order for nested ones);
// origin is the position of the containing top-level table, used in
// errors.
func (e *Extractor) extract(region *markup.Node, position, origin, depth int) (*model.Table, error) {
	if depth > e.maxDepth() {
		return nil, &model.NestedTableParsingError{
			Document: e.Document,
			Position: origin,
			Depth:    depth,
			Reason:   fmt.Sprintf("maximum nesting depth %d exceeded", e.maxDepth()),
		}
	}

	rows := findBounded(region, e.Dialect.TableTag, e.Dialect.RowTag)
	occupied := make(map[gridRef]gridRef) // slot -> claiming cell's origin slot
	var placements []placement
	maxCol := 0

	for r, rowNode := range rows {
		col := 0
		for _, cellNode := range e.cellsOf(rowNode) {
			colSpan := e.spanValue(cellNode, e.Dialect.ColSpan)

			if e.mergeStateOf(cellNode) == mergeContinue {
				// A continuation must sit on a slot claimed by an owner in
				// an earlier row; anything else is a malformed document.
				owner, ok := occupied[gridRef{r, col}]
				if !ok || owner.row >= r {
					return nil, &model.MergedCellError{
						Document: e.Document,
						Position: origin,
						Row:      r,
						Col:      col,
						Reason:   "merge continuation with no owning cell above",
					}
				}
				col += colSpan
				continue
			}

			// Effective column: first slot not claimed by an earlier span.
			for {
				if _, taken := occupied[gridRef{r, col}]; !taken {
					break
				}
				col++
			}

			rowSpan := 1
			if e.Dialect.Merge.defined() {
				rowSpan = e.countRowSpan(rows, r, col)
			} else if e.Dialect.RowSpan.defined() {
				rowSpan = e.spanValue(cellNode, e.Dialect.RowSpan)
			}
			if r+rowSpan > len(rows) {
				return nil, &model.MergedCellError{
					Document: e.Document,
					Position: origin,
					Row:      r,
					Col:      col,
					Reason:   fmt.Sprintf("row span %d extends beyond the last row", rowSpan),
				}
			}

			cellOrigin := gridRef{r, col}
			for i := 0; i < rowSpan; i++ {
				for j := 0; j < colSpan; j++ {
					ref := gridRef{r + i, col + j}
					if prev, taken := occupied[ref]; taken {
						return nil, &model.MergedCellError{
							Document: e.Document,
							Position: origin,
							Row:      ref.row,
							Col:      ref.col,
							Reason:   fmt.Sprintf("slot already claimed by the cell at (%d,%d)", prev.row, prev.col),
						}
					}
					occupied[ref] = cellOrigin
				}
			}

			cell, err := e.buildCell(cellNode, origin, depth)
			if err != nil {
				return nil, err
			}
			cell.RowSpan = rowSpan
			cell.ColSpan = colSpan
			placements = append(placements, placement{cell, r, col, rowSpan, colSpan})

			col += colSpan
			if col > maxCol {
				maxCol = col
			}
		}
	}

	return materialize(position, len(rows), maxCol, placements), nil
}

// materialize builds the dense rectangular grid from sparse placements.
// Covered slots share the owning cell's pointer; slots never claimed by
// any source cell become empty 1x1 cells.
func materialize(position, rowCount, colCount int, placements []placement) *model.Table {
	table := model.NewTable(position)
	table.Rows = make([][]*model.Cell, rowCount)
	for r := range table.Rows {
		table.Rows[r] = make([]*model.Cell, colCount)
	}
	for _, p := range placements {
		for i := 0; i < p.rowSpan; i++ {
			for j := 0; j < p.colSpan; j++ {
				table.Rows[p.row+i][p.col+j] = p.cell
			}
		}
	}
	for r := range table.Rows {
		for c := range table.Rows[r] {
			if table.Rows[r][c] == nil {
				table.Rows[r][c] = model.EmptyCell()
			}
		}
	}
	table.Advance(model.StateMaterialized)
	return table
}

// countRowSpan computes the vertical extent of a merge owner by scanning
// forward through the sibling rows at the same grid column, counting
// consecutive continuation cells.
func (e *Extractor) countRowSpan(rows []*markup.Node, row, col int) int {
	span := 1
	for r := row + 1; r < len(rows); r++ {
		next := e.cellAtColumn(rows[r], col)
		if next == nil || e.mergeStateOf(next) != mergeContinue {
			break
		}
		span++
	}
	return span
}

// cellAtColumn returns the cell starting at the given grid column of a
// row. In merge-chain dialects every covered slot has a continuation
// placeholder in its row, so the running column-span total gives the grid
// column directly.
func (e *Extractor) cellAtColumn(rowNode *markup.Node, target int) *markup.Node {
	col := 0
	for _, cellNode := range e.cellsOf(rowNode) {
		if col == target {
			return cellNode
		}
		col += e.spanValue(cellNode, e.Dialect.ColSpan)
		if col > target {
			return nil
		}
	}
	return nil
}

// buildCell converts a cell node, recursing into any nested table regions
// it contains.
func (e *Extractor) buildCell(cellNode *markup.Node, origin, depth int) (*model.Cell, error) {
	cell := model.NewCell(e.cellText(cellNode))
	cell.Style = e.styleOf(cellNode)

	for i, region := range cellNode.FindShallow(e.Dialect.TableTag) {
		nested, err := e.extract(region, i, origin, depth+1)
		if err != nil {
			return nil, err
		}
		cell.Nested = append(cell.Nested, nested)
	}
	return cell, nil
}

// cellText gathers a cell's own text, excluding nested table content.
// Paragraph dialects join non-empty paragraphs with newlines; otherwise
// the whole subtree is taken with whitespace collapsed. Text is
// NFC-normalized.
func (e *Extractor) cellText(cellNode *markup.Node) string {
	if e.Dialect.ParaTag != "" {
		var parts []string
		for _, p := range findBounded(cellNode, e.Dialect.TableTag, e.Dialect.ParaTag) {
			if t := strings.TrimSpace(p.TextContent(e.Dialect.TableTag)); t != "" {
				parts = append(parts, t)
			}
		}
		return norm.NFC.String(strings.Join(parts, "\n"))
	}
	text := cellNode.TextContent(e.Dialect.TableTag)
	return norm.NFC.String(strings.Join(strings.Fields(text), " "))
}

// styleOf records basic run styling into the opaque style bag. The tags
// follow OOXML run properties; HTML b/i/u elements match as well. Sources
// that encode styling elsewhere simply leave the bag empty.
func (e *Extractor) styleOf(cellNode *markup.Node) model.CellStyle {
	var style model.CellStyle
	barrier := e.Dialect.TableTag
	if n := findBoundedFirst(cellNode, barrier, "b"); n != nil {
		style.Bold = toggleOn(n)
	}
	if n := findBoundedFirst(cellNode, barrier, "i"); n != nil {
		style.Italic = toggleOn(n)
	}
	if n := findBoundedFirst(cellNode, barrier, "u"); n != nil {
		style.Underline = n.Attr("val") != "none"
	}
	if n := findBoundedFirst(cellNode, barrier, "color"); n != nil {
		style.Color = n.Attr("val")
	}
	if n := findBoundedFirst(cellNode, barrier, "rFonts"); n != nil {
		style.FontName = n.Attr("ascii")
	}
	return style
}

// toggleOn interprets an OOXML boolean toggle element.
func toggleOn(n *markup.Node) bool {
	v := n.Attr("val")
	return v != "0" && v != "false"
}

// mergeStateOf classifies a cell's participation in a vertical merge
// chain. With the element present, a missing or "continue" value
// continues the merge above; "restart" (or any other value) starts a new
// one. A cell without the element does not participate.
func (e *Extractor) mergeStateOf(cellNode *markup.Node) mergeState {
	if !e.Dialect.Merge.defined() {
		return mergeNone
	}
	if e.Dialect.Merge.Elem == "" {
		v, ok := cellNode.LookupAttr(e.Dialect.Merge.Attr)
		if !ok {
			return mergeNone
		}
		if v == "" || v == "continue" {
			return mergeContinue
		}
		return mergeRestart
	}
	elem := findBoundedFirst(cellNode, e.Dialect.TableTag, e.Dialect.Merge.Elem)
	if elem == nil {
		return mergeNone
	}
	switch elem.Attr(e.Dialect.Merge.Attr) {
	case "", "continue":
		return mergeContinue
	default:
		return mergeRestart
	}
}

// spanValue reads a span count, defaulting to 1 when the reference is
// undefined, absent, or not a positive integer.
func (e *Extractor) spanValue(cellNode *markup.Node, ref AttrRef) int {
	if !ref.defined() {
		return 1
	}
	var raw string
	if ref.Elem == "" {
		raw = cellNode.Attr(ref.Attr)
	} else if elem := findBoundedFirst(cellNode, e.Dialect.TableTag, ref.Elem); elem != nil {
		raw = elem.Attr(ref.Attr)
	}
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// cellsOf returns the cell nodes of a row in document order, without
// crossing into nested tables.
func (e *Extractor) cellsOf(rowNode *markup.Node) []*markup.Node {
	tags := []string{e.Dialect.CellTag}
	if e.Dialect.HeaderCellTag != "" {
		tags = append(tags, e.Dialect.HeaderCellTag)
	}
	return findBounded(rowNode, e.Dialect.TableTag, tags...)
}

// findBounded returns the nearest descendants matching any of the tags,
// in document order, skipping subtrees rooted at barrier and not
// descending into matches.
func findBounded(n *markup.Node, barrier string, tags ...string) []*markup.Node {
	var found []*markup.Node
	var walk func(node *markup.Node)
	walk = func(node *markup.Node) {
		for _, c := range node.Children {
			matched := false
			for _, t := range tags {
				if c.Tag == t {
					matched = true
					break
				}
			}
			if matched {
				found = append(found, c)
				continue
			}
			if c.Tag == barrier {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// findBoundedFirst returns the first bounded match, or nil.
func findBoundedFirst(n *markup.Node, barrier, tag string) *markup.Node {
	matches := findBounded(n, barrier, tag)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
