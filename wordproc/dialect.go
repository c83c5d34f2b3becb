package wordproc

// AttrRef locates a span or merge value relative to a cell node: either
// an attribute on the cell itself (Elem empty) or an attribute on a
// property element somewhere below the cell (Elem set), as OOXML does
// with <w:tcPr><w:gridSpan w:val="2"/></w:tcPr>.
type AttrRef struct {
	Elem string
	Attr string
}

func (r AttrRef) defined() bool {
	return r.Elem != "" || r.Attr != ""
}

// Dialect names the tags and attributes a word-processing markup flavor
// uses for table structure. Tags are matched after namespace prefixes
// have been dropped by the markup adapters.
//
// Exactly one of RowSpan and Merge should be defined. Dialects with
// explicit row spans (ODF, HTML) declare RowSpan; dialects that encode
// vertical merges as restart/continue chains (OOXML) declare Merge, and
// row spans are reconstructed by scanning forward through sibling rows.
type Dialect struct {
	Name          string
	TableTag      string
	RowTag        string
	CellTag       string
	HeaderCellTag string // optional second cell tag (HTML th)
	ParaTag       string // paragraph tag for cell text; "" takes the whole subtree

	ColSpan AttrRef
	RowSpan AttrRef
	Merge   AttrRef
}

// WordDialect returns the OOXML wordprocessingml dialect: w:tbl/w:tr/w:tc
// with gridSpan column spans and vMerge restart/continue vertical merges.
func WordDialect() Dialect {
	return Dialect{
		Name:     "ooxml",
		TableTag: "tbl",
		RowTag:   "tr",
		CellTag:  "tc",
		ParaTag:  "p",
		ColSpan:  AttrRef{Elem: "gridSpan", Attr: "val"},
		Merge:    AttrRef{Elem: "vMerge", Attr: "val"},
	}
}

// ODFDialect returns the OpenDocument text dialect: table:table rows and
// cells with explicit number-columns-spanned / number-rows-spanned
// attributes. Covered placeholder cells use a distinct tag and are never
// visited, so the occupancy cursor accounts for them implicitly.
func ODFDialect() Dialect {
	return Dialect{
		Name:     "odf",
		TableTag: "table",
		RowTag:   "table-row",
		CellTag:  "table-cell",
		ParaTag:  "p",
		ColSpan:  AttrRef{Attr: "number-columns-spanned"},
		RowSpan:  AttrRef{Attr: "number-rows-spanned"},
	}
}

// HTMLDialect returns the HTML table dialect with rowspan/colspan
// attributes on td and th cells.
func HTMLDialect() Dialect {
	return Dialect{
		Name:          "html",
		TableTag:      "table",
		RowTag:        "tr",
		CellTag:       "td",
		HeaderCellTag: "th",
		ColSpan:       AttrRef{Attr: "colspan"},
		RowSpan:       AttrRef{Attr: "rowspan"},
	}
}
