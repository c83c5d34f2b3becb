// Package pagelayout wraps already-dense table grids, as produced by
// page-layout (PDF-style) table detectors, into the canonical table
// model. Detectors of this kind emit per-page 2-D string arrays with the
// spans already resolved, so no span reconstruction happens here: every
// cell is 1x1 and the grid is taken as given.
package pagelayout

import (
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tablegrid/model"
)

// Page holds the grids detected on one page. A page with no detected
// tables is represented by an empty Grids slice; that is not an error.
type Page struct {
	Number int // 1-indexed page number from the source document
	Grids  [][][]string
}

// Extractor wraps detected page grids into tables.
type Extractor struct {
	Document string // document identity recorded for downstream errors
}

// NewExtractor creates a page-layout extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractAll wraps every grid on every page. Positions form a single
// running counter across all pages of the document, and each table
// records its originating page number in metadata.
func (e *Extractor) ExtractAll(pages []Page) []*model.Table {
	var tables []*model.Table
	position := 0
	for _, page := range pages {
		for _, grid := range page.Grids {
			tables = append(tables, e.wrap(grid, position, page.Number))
			position++
		}
	}
	return tables
}

// ExtractPage wraps the grids of a single page, continuing the position
// counter from startPosition. It returns the wrapped tables and the next
// free position.
func (e *Extractor) ExtractPage(page Page, startPosition int) ([]*model.Table, int) {
	tables := make([]*model.Table, 0, len(page.Grids))
	position := startPosition
	for _, grid := range page.Grids {
		tables = append(tables, e.wrap(grid, position, page.Number))
		position++
	}
	return tables, position
}

// wrap converts one dense string grid into a materialized table.
func (e *Extractor) wrap(grid [][]string, position, pageNumber int) *model.Table {
	table := model.NewTable(position)
	table.Metadata["page_number"] = pageNumber

	table.Rows = make([][]*model.Cell, len(grid))
	for r, row := range grid {
		table.Rows[r] = make([]*model.Cell, len(row))
		for c, content := range row {
			table.Rows[r][c] = model.NewCell(norm.NFC.String(content))
		}
	}
	table.Advance(model.StateMaterialized)
	return table
}
