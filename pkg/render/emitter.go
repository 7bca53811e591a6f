// pkg/render/emitter.go

package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/invoice-generator/pkg/layout"
)

// DocInfo is the PDF document metadata.
type DocInfo struct {
	Title   string
	Author  string
	Subject string
}

// Emitter turns layout pages into PDF bytes.
//
// CreationDate, when set, is written as the document creation date; the same
// pages, info and date always produce the same bytes.
type Emitter struct {
	Assets       map[layout.Asset]string
	CreationDate time.Time
	Logger       *zap.Logger
}

// NewEmitter returns an emitter resolving images through assets.
func NewEmitter(assets map[layout.Asset]string, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{Assets: assets, Logger: logger.Named("render")}
}

// WithAssets returns a copy of e whose images are overridden by the
// non-empty paths in assets.
func (e *Emitter) WithAssets(assets map[layout.Asset]string) *Emitter {
	merged := make(map[layout.Asset]string, len(e.Assets)+len(assets))
	for k, v := range e.Assets {
		merged[k] = v
	}
	for k, v := range assets {
		if v != "" {
			merged[k] = v
		}
	}
	c := *e
	c.Assets = merged
	return &c
}

// FileName is the output name for invoice n.
func FileName(n int) string {
	return fmt.Sprintf("Invoice_%d.pdf", n)
}

// WriteTo renders pages to w and returns the number of bytes written.
func (e *Emitter) WriteTo(pages []layout.Page, info DocInfo, w io.Writer) (int64, error) {
	var n int64
	err := e.build(pages, info).Output(writerFunc(func(p []byte) (int, error) {
		m, err := w.Write(p)
		n += int64(m)
		return m, err
	}))
	return n, err
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// Render writes pages to dest. It never replaces an existing file and never
// leaves a partial file at dest: the document goes to a temp file in the
// same directory that is renamed into place once complete.
func (e *Emitter) Render(pages []layout.Page, info DocInfo, dest string) (n int64, err error) {
	if _, err := os.Stat(dest); err == nil {
		return 0, &IOError{Op: "create", Path: dest, Err: os.ErrExist}
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, &IOError{Op: "stat", Path: dest, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+"-*.tmp")
	if err != nil {
		return 0, &IOError{Op: "create", Path: dest, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if n, err = e.WriteTo(pages, info, tmp); err != nil {
		return 0, &IOError{Op: "write", Path: dest, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return 0, &IOError{Op: "sync", Path: dest, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return 0, &IOError{Op: "close", Path: dest, Err: err}
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return 0, &IOError{Op: "rename", Path: dest, Err: err}
	}
	e.Logger.Debug("invoice written", zap.String("path", dest), zap.Int64("bytes", n), zap.Int("pages", len(pages)))
	return n, nil
}

func (e *Emitter) build(pages []layout.Page, info DocInfo) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	if !e.CreationDate.IsZero() {
		pdf.SetCreationDate(e.CreationDate)
	}
	pdf.SetTitle(info.Title, true)
	pdf.SetAuthor(info.Author, true)
	pdf.SetSubject(info.Subject, true)
	pdf.SetCreator("invoicegen", true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	images := e.usableAssets()

	for _, pg := range pages {
		pdf.AddPage()
		for _, op := range pg.Ops {
			switch op := op.(type) {
			case layout.Text:
				pdf.SetFont(op.Font.Family, op.Font.Style, op.Font.Size)
				pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
				s := tr(op.Text)
				x := op.X
				switch op.Align {
				case layout.AlignRight:
					x -= pdf.GetStringWidth(s)
				case layout.AlignCenter:
					x -= pdf.GetStringWidth(s) / 2
				}
				pdf.Text(x, op.Y, s)
			case layout.Line:
				pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
				pdf.SetLineWidth(op.Width)
				pdf.Line(op.X1, op.Y1, op.X2, op.Y2)
			case layout.Rect:
				pdf.SetFillColor(op.Fill.R, op.Fill.G, op.Fill.B)
				pdf.Rect(op.X, op.Y, op.W, op.H, "F")
			case layout.Image:
				img, ok := images[op.Asset]
				if !ok {
					continue
				}
				opts := gofpdf.ImageOptions{ImageType: img.kind}
				pdf.ImageOptions(img.path, op.X, op.Y, op.W, op.H, false, opts, 0, "")
			}
		}
	}
	return pdf
}

type asset struct {
	path string
	kind string
}

// usableAssets checks every configured image once per document. Anything
// missing or undecodable is left out with a warning; the invoice is still
// valid without its logo or signature.
func (e *Emitter) usableAssets() map[layout.Asset]asset {
	out := make(map[layout.Asset]asset)
	for _, name := range []layout.Asset{layout.AssetLogo, layout.AssetSignature} {
		path := e.Assets[name]
		log := e.Logger.With(zap.String("asset", string(name)), zap.String("path", path))
		if path == "" {
			log.Warn("image not configured, omitting")
			continue
		}
		kind, err := imageKind(path)
		if err != nil {
			log.Warn("image unusable, omitting", zap.Error(err))
			continue
		}
		out[name] = asset{path: path, kind: kind}
	}
	return out
}

func imageKind(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", err
	}
	switch format = strings.ToLower(format); format {
	case "jpeg":
		return "jpg", nil
	case "png", "gif":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}
