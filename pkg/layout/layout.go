// pkg/layout/layout.go

package layout

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/invoice-generator/pkg/invoice"
)

var (
	// ErrNoItems is returned for a record without line items.
	ErrNoItems = errors.New("invoice has no line items")
	// ErrItemTooLarge matches every *ItemTooLargeError.
	ErrItemTooLarge = errors.New("item does not fit on a page")
)

// ItemTooLargeError reports a block taller than the table region of an empty
// page. Index is the line item position, or -1 for the totals and signature.
type ItemTooLargeError struct {
	Index       int
	Description string
	Height      float64
	Available   float64
}

func (e *ItemTooLargeError) Error() string {
	what := "totals and signature"
	if e.Index >= 0 {
		what = fmt.Sprintf("line item %d (%q)", e.Index+1, e.Description)
	}
	return fmt.Sprintf("%s needs %.1fmm but a page holds %.1fmm", what, e.Height, e.Available)
}

func (e *ItemTooLargeError) Is(target error) bool { return target == ErrItemTooLarge }

// Measurer wraps text to a width using real font metrics.
type Measurer interface {
	SplitText(text string, width float64, font Font) []string
}

// Row is the placement of one line item.
type Row struct {
	Index  int
	Item   invoice.LineItem
	Top    float64
	Height float64
}

// Page is the layout of one physical page.
type Page struct {
	Number  int
	Rows    []Row
	Closing bool // totals and signature are on this page
	Ops     []Op
}

// Plan lays rec out on as many pages as its line items need.
//
// Rows stream into the table greedily and are never split; a row that does
// not fit moves whole to the next page. Totals and signature form one unit
// after the last row and move to a new page together when they do not fit.
// Header and customer block are repeated on every page.
func Plan(rec invoice.Record, spec PageSpec, m Measurer) ([]Page, error) {
	if len(rec.Items) == 0 {
		return nil, ErrNoItems
	}
	p := &planner{rec: rec, spec: spec, m: m}
	return p.run()
}

// BodyHeight is the table height available for rows on every page of rec.
func BodyHeight(rec invoice.Record, spec PageSpec, m Measurer) float64 {
	p := &planner{rec: rec, spec: spec, m: m}
	p.measureClosing()
	return p.tableBottom() - spec.TableTop
}

type planner struct {
	rec  invoice.Record
	spec PageSpec
	m    Measurer

	noteLines []string
	totalsH   float64

	pages []*Page
	cur   *Page
	y     float64
}

func (p *planner) run() ([]Page, error) {
	p.measureClosing()
	s := p.spec

	closingH := p.totalsH + s.SignatureHeight
	if room := s.ContentBottom() - s.TableTop; closingH > room {
		return nil, &ItemTooLargeError{Index: -1, Height: closingH, Available: room}
	}
	available := p.tableBottom() - s.TableTop

	p.newPage()
	for i, it := range p.rec.Items {
		cells := p.wrapRow(it)
		h := s.RowHeight + float64(cells.lines()-1)*s.LineHeight
		if h > available {
			return nil, &ItemTooLargeError{Index: i, Description: it.Description, Height: h, Available: available}
		}
		if p.y+h > p.tableBottom() {
			p.breakPage()
		}
		p.drawRow(i, it, cells, h)
	}

	if p.y+p.totalsH > s.ContentBottom()-s.SignatureHeight {
		p.breakPage()
	}
	p.drawClosing()

	out := make([]Page, len(p.pages))
	for i, pg := range p.pages {
		pg.Ops = append(pg.Ops, Text{
			X:     s.Width / 2,
			Y:     s.Height - s.Margins.Bottom/2,
			Text:  "Page " + strconv.Itoa(pg.Number) + " of " + strconv.Itoa(len(p.pages)),
			Font:  s.font("", s.FooterSize),
			Color: Grey,
			Align: AlignCenter,
		})
		out[i] = *pg
	}
	return out, nil
}

func (p *planner) measureClosing() {
	s := p.spec
	p.noteLines = nil
	if p.rec.Note != "" {
		width := s.ContentWidth() - s.NoteIndent
		p.noteLines = p.m.SplitText(p.rec.Note, width, s.font("", s.BodySize))
	}
	p.totalsH = s.TotalsHeight + float64(len(p.noteLines))*s.LineHeight
}

func (p *planner) tableBottom() float64 {
	bottom := p.spec.ContentBottom()
	if p.spec.ReserveClosing {
		bottom -= p.totalsH + p.spec.SignatureHeight
	}
	return bottom
}

func (p *planner) newPage() {
	p.cur = &Page{Number: len(p.pages) + 1}
	p.pages = append(p.pages, p.cur)
	p.y = p.spec.TableTop
	p.drawHeader()
}

func (p *planner) breakPage() {
	s := p.spec
	p.add(Text{
		X:     s.RightEdge(),
		Y:     s.ContentBottom(),
		Text:  "Continued on next page",
		Font:  s.font("I", s.FooterSize),
		Color: Grey,
		Align: AlignRight,
	})
	p.newPage()
}

func (p *planner) add(ops ...Op) {
	p.cur.Ops = append(p.cur.Ops, ops...)
}
