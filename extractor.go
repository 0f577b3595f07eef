package illustra

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"

	"github.com/tsawler/illustra/glyph"
	"github.com/tsawler/illustra/policy"
	"github.com/tsawler/illustra/table"
)

// Extractor provides a fluent interface for extracting policy data from an
// illustration PDF. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	reader   *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	r, err := reader.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Catalog replaces the built-in product/currency catalog.
//
// Example:
//
//	ill, _, err := illustra.Open("doc.pdf").Catalog(custom).Extract()
func (e *Extractor) Catalog(c policy.Catalog) *Extractor {
	newExt := e.clone()
	newExt.options.catalog = c
	return newExt
}

// CatalogFile loads the product/currency catalog from a YAML file. Fields
// absent from the file keep their built-in defaults. A load failure is
// reported by the next terminal operation.
//
// Example:
//
//	ill, _, err := illustra.Open("doc.pdf").CatalogFile("catalog.yaml").Extract()
func (e *Extractor) CatalogFile(path string) *Extractor {
	newExt := e.clone()
	c, err := policy.LoadCatalog(path)
	if err != nil {
		newExt.err = err
		return newExt
	}
	newExt.options.catalog = c
	return newExt
}

// InfoRowLimit sets the maximum row count for a first-page table to be
// treated as a policy-info table rather than a data series.
func (e *Extractor) InfoRowLimit(n int) *Extractor {
	newExt := e.clone()
	newExt.options.infoRowLimit = n
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Extract runs the full pipeline and returns the normalized record set.
// This is a terminal operation that closes the underlying reader (unless it
// was supplied via FromReader).
//
// Returns the extracted illustration, any warnings encountered during
// processing, and an error only if the document could not be opened or
// read. A document in which nothing could be recognized still returns
// normally, with empty record sets and warnings explaining what was found.
func (e *Extractor) Extract() (*policy.Illustration, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	ctx := &runContext{options: e.options}

	rawTables, err := e.collectTables(ctx)
	if err != nil {
		return nil, ctx.warnings, err
	}
	e.collectTextSources(ctx)

	classifyTables(ctx, rawTables)
	ill := extract(ctx)
	return ill, ctx.warnings, nil
}

// RawTables returns every table detected in the document, with its page
// number, before any classification. Useful when debugging a layout the
// classifier does not recognize.
func (e *Extractor) RawTables() ([]*table.RawTable, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	ctx := &runContext{options: e.options}
	rawTables, err := e.collectTables(ctx)
	if err != nil {
		return nil, ctx.warnings, err
	}
	return rawTables, ctx.warnings, nil
}

// ============================================================================
// Pipeline
// ============================================================================

// runContext carries the per-run state through the pipeline stages: the
// warning log, the classified table buckets and the first-page text
// sources. Each run constructs its own context; nothing is shared between
// concurrent runs.
type runContext struct {
	options  ExtractOptions
	warnings []Warning

	surrender    []*table.RawTable
	death        []*table.RawTable
	withdrawal   []*table.RawTable
	info         []*table.RawTable
	unclassified []*table.RawTable

	// textSources holds independently obtained first-page text
	// extractions, in priority order.
	textSources []string
}

func (ctx *runContext) warnf(stage, format string, args ...any) {
	ctx.warnings = append(ctx.warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// collectTables walks every page and runs geometric table detection,
// returning the raw tables in page order. A page that fails to parse is
// skipped with a warning; only a document whose page tree is unreadable is
// an error.
func (e *Extractor) collectTables(ctx *runContext) ([]*table.RawTable, error) {
	pageCount, err := e.reader.PageCount()
	if err != nil {
		return nil, fmt.Errorf("reading page count: %w", err)
	}

	detector := tables.NewGeometricDetector()

	var rawTables []*table.RawTable
	for i := 0; i < pageCount; i++ {
		page, err := e.reader.GetPage(i)
		if err != nil {
			ctx.warnf("detect", "page %d: %v", i+1, err)
			continue
		}
		fragments, err := e.reader.ExtractTextFragments(page)
		if err != nil {
			ctx.warnf("detect", "page %d: %v", i+1, err)
			continue
		}

		width, _ := page.Width()
		height, _ := page.Height()
		modelPage := model.NewPage(width, height)
		modelPage.Number = i + 1
		for _, f := range fragments {
			modelPage.RawText = append(modelPage.RawText, model.TextFragment{
				Text:     f.Text,
				BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
				FontSize: f.FontSize,
				FontName: f.FontName,
			})
		}

		detected, err := detector.Detect(modelPage)
		if err != nil {
			ctx.warnf("detect", "page %d: %v", i+1, err)
			continue
		}
		for _, dt := range detected {
			rawTables = append(rawTables, fromModelTable(dt, i+1))
		}
	}
	return rawTables, nil
}

// fromModelTable converts a detected table into the pipeline's raw form.
func fromModelTable(t *model.Table, pageNum int) *table.RawTable {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.Text
		}
		rows[i] = cells
	}
	return &table.RawTable{Page: pageNum, Rows: rows}
}

// collectTextSources runs two independent text extractions of the first
// page: the plain reading-order pass and the layout-preserving pass.
// Product and currency phrases sometimes survive in only one of them, so
// both are kept and consulted in priority order.
func (e *Extractor) collectTextSources(ctx *runContext) {
	plain, _, err := tabula.FromReader(e.reader).Pages(1).Text()
	if err != nil {
		ctx.warnf("text", "first-page text extraction failed: %v", err)
	} else if plain != "" {
		ctx.textSources = append(ctx.textSources, glyph.DecodeCID(plain))
	}

	preserved, _, err := tabula.FromReader(e.reader).Pages(1).PreserveLayout().Text()
	if err != nil {
		ctx.warnf("text", "first-page layout text extraction failed: %v", err)
	} else if preserved != "" {
		ctx.textSources = append(ctx.textSources, glyph.DecodeCID(preserved))
	}
}

// classifyTables assigns every raw table to a role bucket. Small first-page
// tables hold policy info rather than series data. Tables no tier could
// classify are logged with their shape and a header preview, and retained
// for the heuristic pass when large enough to plausibly hold a series.
func classifyTables(ctx *runContext, rawTables []*table.RawTable) {
	for _, t := range rawTables {
		if len(t.Rows) < 2 {
			continue
		}
		if t.Page == 1 && len(t.Rows) <= ctx.options.infoRowLimit {
			ctx.info = append(ctx.info, t)
			continue
		}

		switch table.Classify(t) {
		case table.SurrenderValue:
			ctx.surrender = append(ctx.surrender, t)
		case table.DeathBenefit:
			ctx.death = append(ctx.death, t)
		case table.Withdrawal:
			ctx.withdrawal = append(ctx.withdrawal, t)
		default:
			ctx.warnf("classify", "page %d: unrecognized table (%d rows x %d cols), header: %s",
				t.Page, len(t.Rows), t.ColCount(), headerPreview(t))
			if len(t.Rows) >= ctx.options.minHeuristicRows {
				ctx.unclassified = append(ctx.unclassified, t)
			}
		}
	}

	if len(ctx.surrender) == 0 && len(ctx.unclassified) > 0 {
		heuristicPass(ctx)
	}

	ctx.warnf("classify", "classification result: surrender_value=%d, death_benefit=%d, withdrawal=%d",
		len(ctx.surrender), len(ctx.death), len(ctx.withdrawal))
}

// heuristicPass classifies leftover tables by shape and numeric content
// when strict header matching found no surrender-value series. The most
// data-rich candidates are tried first. If none qualifies, the largest
// table is forced into the surrender-value role so extraction still
// produces something a human can correct.
func heuristicPass(ctx *runContext) {
	ctx.warnf("classify", "strict matching failed, falling back to heuristic classification")

	sort.SliceStable(ctx.unclassified, func(i, j int) bool {
		return ctx.unclassified[i].Size() > ctx.unclassified[j].Size()
	})

	for _, t := range ctx.unclassified {
		switch table.HeuristicClassify(t) {
		case table.SurrenderValue:
			if len(ctx.surrender) == 0 {
				ctx.surrender = append(ctx.surrender, t)
				ctx.warnf("classify", "heuristic: table (%d rows x %d cols) -> surrender_value",
					len(t.Rows), t.ColCount())
			}
		case table.DeathBenefit:
			if len(ctx.death) == 0 {
				ctx.death = append(ctx.death, t)
			}
		case table.Withdrawal:
			if len(ctx.withdrawal) == 0 {
				ctx.withdrawal = append(ctx.withdrawal, t)
			}
		}
	}

	if len(ctx.surrender) == 0 {
		largest := ctx.unclassified[0]
		ctx.surrender = append(ctx.surrender, largest)
		ctx.warnf("classify", "last resort: largest table (%d rows x %d cols) -> surrender_value",
			len(largest.Rows), largest.ColCount())
	}
}

// headerPreview returns the first few decoded header tokens of a table, for
// diagnostics about unrecognized layouts.
func headerPreview(t *table.RawTable) string {
	var cells []string
	for _, row := range t.Rows[:min(2, len(t.Rows))] {
		for _, cell := range row[:min(4, len(row))] {
			if cell == "" {
				continue
			}
			decoded := strings.TrimSpace(glyph.DecodeCID(cell))
			if decoded == "" {
				continue
			}
			if runes := []rune(decoded); len(runes) > 30 {
				decoded = string(runes[:30])
			}
			cells = append(cells, decoded)
			if len(cells) == 6 {
				return strings.Join(cells, " | ")
			}
		}
	}
	return strings.Join(cells, " | ")
}

// extract turns the classified table buckets into the final record set.
func extract(ctx *runContext) *policy.Illustration {
	info := extractPolicyInfo(ctx)
	yearly := assembleYearly(ctx, &info)
	applySeriesOverrides(ctx, &info, yearly)
	withdrawal := assembleWithdrawal(ctx)

	return &policy.Illustration{
		PolicyInfo:     info,
		Brand:          ctx.options.catalog.Brand,
		Display:        ctx.options.catalog.Display,
		YearlyData:     yearly,
		WithdrawalData: withdrawal,
	}
}
