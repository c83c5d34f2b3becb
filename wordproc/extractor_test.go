package wordproc

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tsawler/tablegrid/markup"
	"github.com/tsawler/tablegrid/model"
)

// parseWord parses a document.xml-style body fragment.
func parseWord(t *testing.T, body string) *markup.Node {
	t.Helper()
	src := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`
	root, err := markup.ParseXMLString(src)
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return root
}

func tc(content string) string {
	return `<w:tc><w:p><w:r><w:t>` + content + `</w:t></w:r></w:p></w:tc>`
}

func tcSpan(content string, span int) string {
	return fmt.Sprintf(`<w:tc><w:tcPr><w:gridSpan w:val="%d"/></w:tcPr><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:tc>`, span, content)
}

func tcRestart(content string) string {
	return `<w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr><w:p><w:r><w:t>` + content + `</w:t></w:r></w:p></w:tc>`
}

func tcContinue() string {
	return `<w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc>`
}

func tr(cells ...string) string {
	return "<w:tr>" + strings.Join(cells, "") + "</w:tr>"
}

func tbl(rows ...string) string {
	return "<w:tbl>" + strings.Join(rows, "") + "</w:tbl>"
}

func gridContent(t *model.Table) [][]string {
	grid := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		grid[r] = make([]string, len(row))
		for c, cell := range row {
			grid[r][c] = cell.Content
		}
	}
	return grid
}

func assertGrid(t *testing.T, table *model.Table, want [][]string) {
	t.Helper()
	got := gridContent(table)
	if len(got) != len(want) {
		t.Fatalf("grid has %d rows, want %d: %v", len(got), len(want), got)
	}
	for r := range want {
		if len(got[r]) != len(want[r]) {
			t.Fatalf("row %d has %d cells, want %d: %v", r, len(got[r]), len(want[r]), got[r])
		}
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Errorf("cell (%d,%d) = %q, want %q", r, c, got[r][c], want[r][c])
			}
		}
	}
}

func TestExtractSimpleTable(t *testing.T) {
	root := parseWord(t, tbl(
		tr(tc("Header 1"), tc("Header 2")),
		tr(tc("Cell A"), tc("Cell B")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	table := tables[0]
	assertGrid(t, table, [][]string{
		{"Header 1", "Header 2"},
		{"Cell A", "Cell B"},
	})
	if table.State != model.StateMaterialized {
		t.Errorf("state = %s, want materialized", table.State)
	}
	if !table.IsRectangular() {
		t.Error("materialized table must be rectangular")
	}
	if table.Position != 0 {
		t.Errorf("position = %d, want 0", table.Position)
	}
}

func TestExtractColSpan(t *testing.T) {
	root := parseWord(t, tbl(
		tr(tcSpan("Merged Header", 2), tc("Single")),
		tr(tc("A"), tc("B"), tc("C")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	table := tables[0]
	assertGrid(t, table, [][]string{
		{"Merged Header", "Merged Header", "Single"},
		{"A", "B", "C"},
	})

	owner := table.GetCell(0, 0)
	if owner.ColSpan != 2 {
		t.Errorf("ColSpan = %d, want 2", owner.ColSpan)
	}
	// Covered slots share the owner pointer rather than holding copies.
	if table.GetCell(0, 1) != owner {
		t.Error("slot (0,1) should share the owning cell's pointer")
	}
}

func TestExtractVerticalMerge(t *testing.T) {
	// Scenario: A owns a two-row vertical merge in column 0.
	root := parseWord(t, tbl(
		tr(tcRestart("A"), tc("B")),
		tr(tcContinue(), tc("C")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	table := tables[0]
	assertGrid(t, table, [][]string{
		{"A", "B"},
		{"A", "C"},
	})

	owner := table.GetCell(0, 0)
	if owner.RowSpan != 2 {
		t.Errorf("RowSpan = %d, want 2", owner.RowSpan)
	}
	if table.GetCell(1, 0) != owner {
		t.Error("slot (1,0) should share the owning cell's pointer")
	}
	if got := table.GetCell(1, 1).Content; got != "C" {
		t.Errorf("cell (1,1) = %q, want C", got)
	}
}

func TestExtractVerticalMergeChainBreaks(t *testing.T) {
	// Merge spans rows 0-1; row 2 restarts a new single-row cell.
	root := parseWord(t, tbl(
		tr(tcRestart("A"), tc("B")),
		tr(tcContinue(), tc("C")),
		tr(tc("D"), tc("E")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	table := tables[0]
	if got := table.GetCell(0, 0).RowSpan; got != 2 {
		t.Errorf("RowSpan = %d, want 2 (chain broken by row 2)", got)
	}
	assertGrid(t, table, [][]string{
		{"A", "B"},
		{"A", "C"},
		{"D", "E"},
	})
}

func TestExtractImplicitMergeOwner(t *testing.T) {
	// A cell with no vMerge element still owns the continuation below it.
	root := parseWord(t, tbl(
		tr(tc("A"), tc("B")),
		tr(tcContinue(), tc("C")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if got := tables[0].GetCell(0, 0).RowSpan; got != 2 {
		t.Errorf("RowSpan = %d, want 2 for implicit owner", got)
	}
}

func TestMalformedContinuationRejected(t *testing.T) {
	// A continuation in the first row has no possible owner.
	root := parseWord(t, tbl(
		tr(tcContinue(), tc("B")),
	))

	_, err := NewExtractor(WordDialect()).ExtractAll(root)
	var mce *model.MergedCellError
	if !errors.As(err, &mce) {
		t.Fatalf("error = %v, want MergedCellError", err)
	}
	if mce.Row != 0 || mce.Col != 0 {
		t.Errorf("error at (%d,%d), want (0,0)", mce.Row, mce.Col)
	}
}

func TestUnclaimedSlotsBecomeEmptyCells(t *testing.T) {
	// Second row is one cell short; materialization must pad it.
	root := parseWord(t, tbl(
		tr(tc("A"), tc("B"), tc("C")),
		tr(tc("D"), tc("E")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	table := tables[0]
	assertGrid(t, table, [][]string{
		{"A", "B", "C"},
		{"D", "E", ""},
	})
	pad := table.GetCell(1, 2)
	if !pad.IsEmpty() || pad.RowSpan != 1 || pad.ColSpan != 1 {
		t.Errorf("padding cell = %+v, want empty 1x1", pad)
	}
}

func TestExtractNestedTable(t *testing.T) {
	inner := tbl(
		tr(tc("n1"), tc("n2")),
		tr(tc("n3"), tc("n4")),
	)
	root := parseWord(t, tbl(
		tr(`<w:tc><w:p><w:r><w:t>outer</w:t></w:r></w:p>`+inner+`</w:tc>`, tc("plain")),
	))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("nested table must not surface as a top-level table; got %d tables", len(tables))
	}

	cell := tables[0].GetCell(0, 0)
	if cell.Content != "outer" {
		t.Errorf("outer cell content = %q, want %q (nested text excluded)", cell.Content, "outer")
	}
	if len(cell.Nested) != 1 {
		t.Fatalf("expected 1 nested table, got %d", len(cell.Nested))
	}

	nested := cell.Nested[0]
	assertGrid(t, nested, [][]string{
		{"n1", "n2"},
		{"n3", "n4"},
	})
	if nested.State != model.StateMaterialized {
		t.Errorf("nested state = %s, want materialized", nested.State)
	}
}

// nestDepth builds a table nested n levels deep.
func nestDepth(n int) string {
	table := tbl(tr(tc("deepest")))
	for i := 0; i < n; i++ {
		table = tbl(tr("<w:tc><w:p/>" + table + "</w:tc>"))
	}
	return table
}

func TestNestingDepthCap(t *testing.T) {
	e := NewExtractor(WordDialect())
	e.MaxDepth = 3

	// Three levels below the top table is within the cap.
	root := parseWord(t, nestDepth(3))
	if _, err := e.ExtractAll(root); err != nil {
		t.Fatalf("depth 3 should extract, got error %v", err)
	}

	root = parseWord(t, nestDepth(4))
	_, err := e.ExtractAll(root)
	var ntpe *model.NestedTableParsingError
	if !errors.As(err, &ntpe) {
		t.Fatalf("error = %v, want NestedTableParsingError", err)
	}
	if ntpe.Depth != 4 {
		t.Errorf("Depth = %d, want 4", ntpe.Depth)
	}
	if !strings.Contains(ntpe.Error(), "depth") {
		t.Errorf("error %q should name the offending depth", ntpe.Error())
	}
}

func TestExtractAllAssignsPositions(t *testing.T) {
	root := parseWord(t,
		tbl(tr(tc("first")))+
			`<w:p><w:r><w:t>between</w:t></w:r></w:p>`+
			tbl(tr(tc("second"))),
	)

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	for i, table := range tables {
		if table.Position != i {
			t.Errorf("table %d has position %d", i, table.Position)
		}
	}
}

func TestCellParagraphsAndNormalization(t *testing.T) {
	// Two paragraphs join with a newline; decomposed é normalizes to NFC.
	cell := `<w:tc><w:p><w:r><w:t>line one</w:t></w:r></w:p>` +
		"<w:p><w:r><w:t>cafe\u0301</w:t></w:r></w:p></w:tc>"
	root := parseWord(t, tbl(tr(cell)))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	got := tables[0].GetCell(0, 0).Content
	want := "line one\ncaf\u00e9"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestCellStyleExtraction(t *testing.T) {
	cell := `<w:tc><w:p><w:r><w:rPr><w:b/><w:i w:val="0"/><w:color w:val="FF0000"/>` +
		`<w:rFonts w:ascii="Calibri"/></w:rPr><w:t>styled</w:t></w:r></w:p></w:tc>`
	root := parseWord(t, tbl(tr(cell)))

	tables, err := NewExtractor(WordDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	style := tables[0].GetCell(0, 0).Style
	if !style.Bold {
		t.Error("Bold should be set")
	}
	if style.Italic {
		t.Error("Italic toggled off with val=0 should stay unset")
	}
	if style.Color != "FF0000" {
		t.Errorf("Color = %q, want FF0000", style.Color)
	}
	if style.FontName != "Calibri" {
		t.Errorf("FontName = %q, want Calibri", style.FontName)
	}
}

func TestExtractTableRejectsWrongRegion(t *testing.T) {
	root := parseWord(t, `<w:p/>`)
	e := NewExtractor(WordDialect())

	_, err := e.ExtractTable(root.FindFirst("p"), 0)
	var tee *model.TableExtractionError
	if !errors.As(err, &tee) {
		t.Fatalf("error = %v, want TableExtractionError", err)
	}
	_, err = e.ExtractTable(nil, 0)
	if !errors.As(err, &tee) {
		t.Fatalf("nil region: error = %v, want TableExtractionError", err)
	}
}

func TestHTMLDialect(t *testing.T) {
	src := `<table>
  <tr><th>H1</th><th>H2</th></tr>
  <tr><td rowspan="2">A</td><td>B</td></tr>
  <tr><td>C</td></tr>
</table>`
	root, err := markup.ParseHTMLString(src)
	if err != nil {
		t.Fatalf("ParseHTMLString() error = %v", err)
	}

	tables, err := NewExtractor(HTMLDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	table := tables[0]
	assertGrid(t, table, [][]string{
		{"H1", "H2"},
		{"A", "B"},
		{"A", "C"},
	})
	if got := table.GetCell(1, 0).RowSpan; got != 2 {
		t.Errorf("RowSpan = %d, want 2", got)
	}
}

func TestHTMLSpanConflict(t *testing.T) {
	// The colspan cell in row 2 collides with the rowspan claim above it.
	src := `<table>
  <tr><td>H</td><td rowspan="2">A</td></tr>
  <tr><td colspan="2">X</td></tr>
</table>`
	root, err := markup.ParseHTMLString(src)
	if err != nil {
		t.Fatalf("ParseHTMLString() error = %v", err)
	}

	_, err = NewExtractor(HTMLDialect()).ExtractAll(root)
	var mce *model.MergedCellError
	if !errors.As(err, &mce) {
		t.Fatalf("error = %v, want MergedCellError", err)
	}
	if mce.Row != 1 || mce.Col != 1 {
		t.Errorf("conflict at (%d,%d), want (1,1)", mce.Row, mce.Col)
	}
}

func TestHTMLRowSpanOutOfBounds(t *testing.T) {
	src := `<table><tr><td rowspan="5">A</td><td>B</td></tr><tr><td>C</td></tr></table>`
	root, err := markup.ParseHTMLString(src)
	if err != nil {
		t.Fatalf("ParseHTMLString() error = %v", err)
	}

	_, err = NewExtractor(HTMLDialect()).ExtractAll(root)
	var mce *model.MergedCellError
	if !errors.As(err, &mce) {
		t.Fatalf("error = %v, want MergedCellError for out-of-bounds span", err)
	}
}

func TestODFDialect(t *testing.T) {
	src := `<office:document xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
  <table:table>
    <table:table-row>
      <table:table-cell table:number-rows-spanned="2"><text:p>A</text:p></table:table-cell>
      <table:table-cell><text:p>B</text:p></table:table-cell>
    </table:table-row>
    <table:table-row>
      <table:covered-table-cell/>
      <table:table-cell><text:p>C</text:p></table:table-cell>
    </table:table-row>
  </table:table>
</office:document>`
	root, err := markup.ParseXMLString(src)
	if err != nil {
		t.Fatalf("ParseXMLString() error = %v", err)
	}

	tables, err := NewExtractor(ODFDialect()).ExtractAll(root)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	table := tables[0]
	assertGrid(t, table, [][]string{
		{"A", "B"},
		{"A", "C"},
	})
	if got := table.GetCell(0, 0).RowSpan; got != 2 {
		t.Errorf("RowSpan = %d, want 2", got)
	}
}

func TestDialectEquivalence(t *testing.T) {
	// The same logical table through OOXML and HTML markup produces the
	// same grid.
	wordRoot := parseWord(t, tbl(
		tr(tcRestart("A"), tc("B")),
		tr(tcContinue(), tc("C")),
	))
	htmlRoot, err := markup.ParseHTMLString(
		`<table><tr><td rowspan="2">A</td><td>B</td></tr><tr><td>C</td></tr></table>`)
	if err != nil {
		t.Fatalf("ParseHTMLString() error = %v", err)
	}

	fromWord, err := NewExtractor(WordDialect()).ExtractAll(wordRoot)
	if err != nil {
		t.Fatalf("word ExtractAll() error = %v", err)
	}
	fromHTML, err := NewExtractor(HTMLDialect()).ExtractAll(htmlRoot)
	if err != nil {
		t.Fatalf("html ExtractAll() error = %v", err)
	}

	if got, want := fromHTML[0].GetText(), fromWord[0].GetText(); got != want {
		t.Errorf("html grid %q != word grid %q", got, want)
	}
}
