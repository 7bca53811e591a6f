// pkg/generator/generator.go

package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoice-generator/pkg/counter"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/layout"
	"github.com/invoice-generator/pkg/render"
)

// ErrNumberBurned is joined to a generation error when the issued number
// could not be handed back to the counter.
var ErrNumberBurned = errors.New("invoice number burned")

// Generator runs the generate-invoice transaction: issue a number, lay the
// invoice out, write the PDF. A number is only kept when its file was
// written; on any later failure it is rolled back.
type Generator struct {
	Counter  counter.Store
	Spec     layout.PageSpec
	Measurer layout.Measurer
	Emitter  *render.Emitter
	OutDir   string
	Logger   *zap.Logger
}

// Result describes a written invoice.
type Result struct {
	Number int
	Path   string
	Pages  int
	Total  decimal.Decimal
	Bytes  int64
}

// New wires a generator with the default A4 page and gofpdf measurements.
func New(store counter.Store, emitter *render.Emitter, outDir string, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		Counter:  store,
		Spec:     layout.DefaultA4(),
		Measurer: render.NewMeasurer(),
		Emitter:  emitter,
		OutDir:   outDir,
		Logger:   logger.Named("generator"),
	}
}

// Generate validates rec and writes it as the next numbered invoice.
func (g *Generator) Generate(rec invoice.Record) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := g.Logger.With(zap.String("run_id", runID))

	if err := rec.Validate(); err != nil {
		log.Info("invoice rejected", zap.Error(err))
		return nil, err
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return nil, &render.IOError{Op: "mkdir", Path: g.OutDir, Err: err}
	}

	n, err := g.Counter.IssueNext()
	if err != nil {
		log.Error("invoice number not issued", zap.Error(err))
		return nil, fmt.Errorf("issue invoice number: %w", err)
	}
	log = log.With(zap.Int("invoice_number", n))

	res, err := g.render(rec.WithNumber(n))
	if err != nil {
		if rbErr := g.Counter.Rollback(n); rbErr != nil {
			log.Error("invoice number burned", zap.Error(err), zap.NamedError("rollback_error", rbErr))
			return nil, errors.Join(err, fmt.Errorf("%w: %d: %w", ErrNumberBurned, n, rbErr))
		}
		log.Warn("invoice generation failed, number rolled back", zap.Error(err))
		return nil, err
	}

	log.Info("invoice generated",
		zap.String("path", res.Path),
		zap.Int("pages", res.Pages),
		zap.String("total", invoice.FormatAmount(res.Total)),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (g *Generator) render(rec invoice.Record) (*Result, error) {
	pages, err := layout.Plan(rec, g.Spec, g.Measurer)
	if err != nil {
		return nil, fmt.Errorf("lay out invoice %d: %w", rec.Number, err)
	}

	path := filepath.Join(g.OutDir, render.FileName(rec.Number))
	info := render.DocInfo{
		Title:   fmt.Sprintf("Invoice %d", rec.Number),
		Author:  rec.Company.Name,
		Subject: "Invoice for " + rec.Customer.Name,
	}
	n, err := g.Emitter.WithAssets(companyAssets(rec.Company)).Render(pages, info, path)
	if err != nil {
		return nil, err
	}
	return &Result{
		Number: rec.Number,
		Path:   path,
		Pages:  len(pages),
		Total:  rec.Total(),
		Bytes:  n,
	}, nil
}

// companyAssets are the images the invoice's company block refers to.
func companyAssets(c invoice.Company) map[layout.Asset]string {
	return map[layout.Asset]string{
		layout.AssetLogo:      c.LogoPath,
		layout.AssetSignature: c.SignaturePath,
	}
}
