package tablegrid

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/tablegrid/markup"
	"github.com/tsawler/tablegrid/model"
	"github.com/tsawler/tablegrid/pagelayout"
	"github.com/tsawler/tablegrid/wordproc"
)

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceMarkup
	sourcePages
)

// Pipeline provides a fluent interface for extracting and interpreting
// tables from one document. Each configuration method returns a new
// Pipeline instance, making it safe for concurrent use and allowing
// method chaining.
type Pipeline struct {
	// Source
	kind    sourceKind
	root    *markup.Node
	pages   []pagelayout.Page
	dialect wordproc.Dialect

	// Document identity carried into errors and warnings
	document string

	// Configuration
	options InterpretOptions

	// Accumulated error (fail-fast)
	err error
}

// FromRegions creates a pipeline over a word-processing markup tree.
// Top-level table regions are discovered in document order; the dialect
// defaults to OOXML and can be changed with [Pipeline.Dialect].
func FromRegions(root *markup.Node) *Pipeline {
	return &Pipeline{
		kind:    sourceMarkup,
		root:    root,
		dialect: wordproc.WordDialect(),
		options: defaultInterpretOptions(),
	}
}

// FromPageGrids creates a pipeline over page-layout detector output:
// already-dense per-page string grids needing no span reconstruction.
func FromPageGrids(pages []pagelayout.Page) *Pipeline {
	return &Pipeline{
		kind:    sourcePages,
		pages:   pages,
		options: defaultInterpretOptions(),
	}
}

// FromHTML creates a pipeline over an HTML document read from r.
func FromHTML(r io.Reader) *Pipeline {
	p := &Pipeline{
		kind:    sourceMarkup,
		dialect: wordproc.HTMLDialect(),
		options: defaultInterpretOptions(),
	}
	root, err := markup.ParseHTML(r)
	if err != nil {
		p.err = err
		return p
	}
	p.root = root
	return p
}

// clone creates a copy of the Pipeline so each chain method returns a
// new instance.
func (p *Pipeline) clone() *Pipeline {
	cp := *p
	return &cp
}

// Named records the document identity carried into errors, warnings,
// and the ParsedDocument.
func (p *Pipeline) Named(name string) *Pipeline {
	np := p.clone()
	np.document = name
	return np
}

// Dialect selects the word-processing dialect used for region walking.
func (p *Pipeline) Dialect(d wordproc.Dialect) *Pipeline {
	np := p.clone()
	np.dialect = d
	return np
}

// MaxNestingDepth bounds nested table recursion. Values below 1 are
// ignored.
func (p *Pipeline) MaxNestingDepth(n int) *Pipeline {
	np := p.clone()
	if n >= 1 {
		np.options.maxNestingDepth = n
	}
	return np
}

// Concurrency bounds how many tables are interpreted in parallel.
// Values below 1 are ignored.
func (p *Pipeline) Concurrency(n int) *Pipeline {
	np := p.clone()
	if n >= 1 {
		np.options.concurrency = n
	}
	return np
}

// SkipMergeExpansion disables the merge expansion stage.
func (p *Pipeline) SkipMergeExpansion() *Pipeline {
	np := p.clone()
	np.options.expandMerged = false
	return np
}

// SkipNestedResolution disables recursive interpretation of nested
// tables; nested tables stay in their materialized state.
func (p *Pipeline) SkipNestedResolution() *Pipeline {
	np := p.clone()
	np.options.resolveNested = false
	return np
}

// SkipNormalization disables irregular-row padding.
func (p *Pipeline) SkipNormalization() *Pipeline {
	np := p.clone()
	np.options.normalizeRows = false
	return np
}

// Tables extracts and interprets every table in the source. Tables are
// independent units of work: one table failing to extract or interpret
// is skipped and reported as a [Warning] carrying its typed error, and
// its siblings still resolve. The returned error is reserved for
// document-wide failures (no source, unparseable input).
func (p *Pipeline) Tables() ([]*model.Table, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	var raw []*model.Table
	var warnings []Warning

	switch p.kind {
	case sourceMarkup:
		e := &wordproc.Extractor{
			Dialect:  p.dialect,
			MaxDepth: p.options.maxNestingDepth,
			Document: p.document,
		}
		for i, region := range e.Regions(p.root) {
			table, err := e.ExtractTable(region, i)
			if err != nil {
				warnings = append(warnings, Warning{
					Position: i,
					Message:  "table skipped: extraction failed",
					Err:      err,
				})
				continue
			}
			raw = append(raw, table)
		}

	case sourcePages:
		e := &pagelayout.Extractor{Document: p.document}
		raw = e.ExtractAll(p.pages)

	default:
		return nil, nil, fmt.Errorf("tablegrid: no source configured")
	}

	interpreted, interpretWarnings := p.interpretAll(raw)
	warnings = append(warnings, interpretWarnings...)
	return interpreted, warnings, nil
}

// interpretAll runs the interpretation pipeline over the raw tables,
// in parallel up to the configured concurrency. Interpretation of one
// table touches no state shared with its siblings, so no locking is
// needed; results are collected by index to keep document order.
func (p *Pipeline) interpretAll(raw []*model.Table) ([]*model.Table, []Warning) {
	in := &Interpreter{opts: p.options, document: p.document}

	tableErrs := make([]error, len(raw))
	var g errgroup.Group
	g.SetLimit(p.options.concurrency)
	for i, table := range raw {
		i, table := i, table
		g.Go(func() error {
			tableErrs[i] = in.Interpret(table)
			return nil
		})
	}
	g.Wait()

	var tables []*model.Table
	var warnings []Warning
	for i, table := range raw {
		if err := tableErrs[i]; err != nil {
			warnings = append(warnings, Warning{
				Position: table.Position,
				Message:  "table skipped: interpretation failed",
				Err:      err,
			})
			continue
		}
		tables = append(tables, table)
	}
	return tables, warnings
}

// Document runs [Pipeline.Tables] and assembles the resolved tables into
// a ParsedDocument.
func (p *Pipeline) Document() (*model.ParsedDocument, []Warning, error) {
	tables, warnings, err := p.Tables()
	if err != nil {
		return nil, warnings, err
	}

	doc := model.NewParsedDocument(p.document)
	switch p.kind {
	case sourceMarkup:
		doc.Source = p.root
	case sourcePages:
		doc.Source = p.pages
	}
	for _, t := range tables {
		doc.AddTable(t)
	}
	doc.Metadata["table_count"] = len(tables)
	if len(warnings) > 0 {
		doc.Metadata["skipped_tables"] = len(warnings)
	}
	return doc, warnings, nil
}
