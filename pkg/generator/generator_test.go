package generator

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoice-generator/pkg/counter"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/layout"
	"github.com/invoice-generator/pkg/render"
)

func newRecord(rates ...string) invoice.Record {
	tpl := invoice.Template{
		Company:  invoice.Company{Name: "Acme Cleaning", Address: "1 Main St", CityStZip: "Springfield", Phone: "555-0100"},
		Customer: invoice.Customer{Name: "Globex"},
	}
	rec := tpl.NewRecord(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	for _, r := range rates {
		rec.Items = append(rec.Items, invoice.LineItem{Date: "01/08", Description: "Window cleaning", Location: "HQ", Rate: decimal.RequireFromString(r)})
	}
	return rec
}

func newGenerator(t *testing.T, store counter.Store) *Generator {
	t.Helper()
	return New(store, render.NewEmitter(nil, nil), filepath.Join(t.TempDir(), "invoices"), nil)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerateFirstInvoice(t *testing.T) {
	store := counter.NewFileStore(filepath.Join(t.TempDir(), "invoice_number.txt"), 0)
	g := newGenerator(t, store)

	res, err := g.Generate(newRecord("100.00"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Number != 1 {
		t.Errorf("number = %d, want 1", res.Number)
	}
	if res.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Pages)
	}
	if got := invoice.FormatAmount(res.Total); got != "100.00" {
		t.Errorf("total = %s", got)
	}
	if base := filepath.Base(res.Path); !strings.Contains(base, "1") || base != "Invoice_1.pdf" {
		t.Errorf("path = %s", res.Path)
	}
	if fi, err := os.Stat(res.Path); err != nil || fi.Size() != res.Bytes {
		t.Errorf("stat %s: %v", res.Path, err)
	}
	if cur, _ := store.ReadCurrent(); cur != 1 {
		t.Errorf("counter = %d", cur)
	}
}

func TestGenerateTwoPages(t *testing.T) {
	store := counter.NewMemStore(41)
	g := newGenerator(t, store)

	rates := make([]string, 20)
	for i := range rates {
		rates[i] = "12.50"
	}
	rec := newRecord(rates...)
	res, err := g.Generate(rec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Number != 42 || res.Pages != 2 {
		t.Fatalf("number %d pages %d, want 42 and 2", res.Number, res.Pages)
	}
	if got := invoice.FormatAmount(res.Total); got != "250.00" {
		t.Errorf("total = %s", got)
	}

	pages, err := layout.Plan(rec.WithNumber(42), g.Spec, g.Measurer)
	if err != nil {
		t.Fatal(err)
	}
	if pages[0].Closing || !pages[1].Closing {
		t.Error("totals and signature must appear only on the final page")
	}
	if len(pages[0].Rows)+len(pages[1].Rows) != 20 {
		t.Error("rows lost across the page break")
	}
}

func TestGenerateDistinctFiles(t *testing.T) {
	g := newGenerator(t, counter.NewMemStore(0))
	rec := newRecord("5.00")

	a, err := g.Generate(rec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(rec)
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Fatalf("both invoices written to %s", a.Path)
	}
	if names := listDir(t, g.OutDir); len(names) != 2 {
		t.Errorf("out dir holds %v", names)
	}
}

func TestGenerateUsesRecordImages(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	f, err := os.Create(logo)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	g := newGenerator(t, counter.NewMemStore(0))
	rec := newRecord("5.00")
	rec.Company.LogoPath = logo

	res, err := g.Generate(rec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("/Subtype /Image")) {
		t.Error("company logo not embedded")
	}
	if len(g.Emitter.Assets) != 0 {
		t.Errorf("emitter assets changed to %v", g.Emitter.Assets)
	}
}

func TestGenerateCorruptCounter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice_number.txt")
	if err := os.WriteFile(path, []byte("forty-one"), 0o644); err != nil {
		t.Fatal(err)
	}
	g := newGenerator(t, counter.NewFileStore(path, 0))

	_, err := g.Generate(newRecord("100.00"))
	if !errors.Is(err, counter.ErrCorruptCounter) {
		t.Fatalf("err = %v, want ErrCorruptCounter", err)
	}
	if names := listDir(t, g.OutDir); len(names) != 0 {
		t.Errorf("files written: %v", names)
	}
}

func TestGenerateValidationLeavesCounter(t *testing.T) {
	store := counter.NewMemStore(3)
	g := newGenerator(t, store)

	_, err := g.Generate(newRecord())
	if !errors.Is(err, invoice.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if store.Current != 3 {
		t.Errorf("counter moved to %d", store.Current)
	}
}

func TestGenerateWriteFailureRollsBack(t *testing.T) {
	store := counter.NewMemStore(0)
	g := newGenerator(t, store)
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// someone else's file already holds the next name
	if err := os.WriteFile(filepath.Join(g.OutDir, "Invoice_1.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := g.Generate(newRecord("1.00"))
	if !errors.Is(err, render.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if store.Current != 0 {
		t.Errorf("counter = %d after failed write, want 0", store.Current)
	}
}

func TestGenerateItemTooLargeRollsBack(t *testing.T) {
	store := counter.NewMemStore(9)
	g := newGenerator(t, store)
	rec := newRecord("1.00")
	rec.Items[0].Description = strings.Repeat("very long description ", 300)

	_, err := g.Generate(rec)
	if !errors.Is(err, layout.ErrItemTooLarge) {
		t.Fatalf("err = %v, want ErrItemTooLarge", err)
	}
	if store.Current != 9 {
		t.Errorf("counter = %d, want 9", store.Current)
	}
}

type stuckStore struct {
	*counter.MemStore
}

func (stuckStore) Rollback(int) error { return errors.New("read-only") }

func TestGenerateBurnedNumber(t *testing.T) {
	store := stuckStore{counter.NewMemStore(0)}
	g := newGenerator(t, store)
	rec := newRecord("1.00")
	rec.Items[0].Description = strings.Repeat("very long description ", 300)

	_, err := g.Generate(rec)
	if !errors.Is(err, ErrNumberBurned) || !errors.Is(err, layout.ErrItemTooLarge) {
		t.Fatalf("err = %v", err)
	}
	if store.Current != 1 {
		t.Errorf("counter = %d, want burned 1", store.Current)
	}
}
