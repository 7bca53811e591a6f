package layout

import (
	"strconv"

	"github.com/invoice-generator/pkg/invoice"
)

func (p *planner) drawHeader() {
	s := p.spec
	r := p.rec
	left, right := s.Margins.Left, s.RightEdge()
	body := s.font("", s.BodySize)
	bold := s.font("B", s.BodySize)

	p.add(Image{Asset: AssetLogo, X: left, Y: 15, W: 40, H: 20})

	company := []string{r.Company.Name, r.Company.Email, r.Company.Phone, r.Company.Address, r.Company.CityStZip}
	for i, line := range company {
		if line == "" {
			continue
		}
		p.add(Text{X: right, Y: 20 + float64(i)*5, Text: line, Font: body, Color: Grey, Align: AlignRight})
	}

	p.add(
		Text{X: s.Width / 2, Y: 50, Text: "INVOICE", Font: s.font("", s.TitleSize), Color: Accent, Align: AlignCenter},
		Text{X: right, Y: 50, Text: "Invoice No.: " + strconv.Itoa(r.Number), Font: bold, Align: AlignRight},
		Text{X: right, Y: 55, Text: invoice.FormatDate(r.Date), Font: body, Align: AlignRight},
		Text{X: left, Y: 50, Text: "BILL TO:", Font: bold},
	)
	customer := []string{r.Customer.Name, r.Customer.Email, r.Customer.Phone, r.Customer.Address, r.Customer.City}
	for i, line := range customer {
		if line == "" {
			continue
		}
		p.add(Text{X: left, Y: 55 + float64(i)*5, Text: line, Font: body})
	}

	c := s.Columns
	p.add(
		Line{X1: left, Y1: 80, X2: right, Y2: 80, Color: RuleGrey, Width: 0.2},
		Text{X: c.Date.X, Y: s.HeaderRowY, Text: "Date", Font: body},
		Text{X: c.Description.X, Y: s.HeaderRowY, Text: "Description", Font: body},
		Text{X: c.Location.X, Y: s.HeaderRowY, Text: "Location", Font: body},
		Text{X: c.Rate.X, Y: s.HeaderRowY, Text: "Rate", Font: body},
	)
}

type rowCells struct {
	date, description, location []string
}

func (c rowCells) lines() int {
	n := max(len(c.date), len(c.description), len(c.location))
	return max(n, 1)
}

func (p *planner) wrapRow(it invoice.LineItem) rowCells {
	s := p.spec
	f := s.font("", s.BodySize)
	return rowCells{
		date:        p.split(it.Date, s.Columns.Date.W, f),
		description: p.split(it.Description, s.Columns.Description.W, f),
		location:    p.split(it.Location, s.Columns.Location.W, f),
	}
}

func (p *planner) split(text string, width float64, f Font) []string {
	if text == "" {
		return nil
	}
	return p.m.SplitText(text, width, f)
}

func (p *planner) drawRow(index int, it invoice.LineItem, cells rowCells, h float64) {
	s := p.spec
	top := p.y
	body := s.font("", s.BodySize)

	if index%2 != 0 {
		extra := float64(cells.lines()-1) * s.LineHeight
		p.add(Rect{X: s.Margins.Left - 2, Y: top, W: s.ContentWidth(), H: s.BandHeight + extra, Fill: BandGrey})
	}

	baseline := top + s.LineHeight
	column := func(x float64, lines []string) {
		for i, line := range lines {
			p.add(Text{X: x, Y: baseline + float64(i)*s.LineHeight, Text: line, Font: body})
		}
	}
	column(s.Columns.Date.X, cells.date)
	column(s.Columns.Description.X, cells.description)
	column(s.Columns.Location.X, cells.location)
	p.add(Text{X: s.Columns.Rate.X, Y: baseline, Text: "$" + invoice.FormatAmount(it.Rate), Font: body})

	p.cur.Rows = append(p.cur.Rows, Row{Index: index, Item: it, Top: top, Height: h})
	p.y += h
}

// drawClosing draws the totals below the table at the cursor and the
// signature pinned to the bottom margin of the same page.
func (p *planner) drawClosing() {
	s := p.spec
	r := p.rec
	y := p.y
	left, right := s.Margins.Left, s.RightEdge()
	body := s.font("", s.BodySize)
	bold := s.font("B", s.BodySize)

	p.add(
		Line{X1: left, Y1: y, X2: right, Y2: y, Color: RuleGrey, Width: 0.2},
		Text{X: right - 40, Y: y + 10, Text: "Total:", Font: body, Align: AlignRight},
		Text{X: right - 10, Y: y + 10, Text: "$ " + invoice.FormatAmount(r.Total()), Font: s.font("B", s.TotalSize), Color: Accent, Align: AlignRight},
		Line{X1: right - 60, Y1: y + 15, X2: right, Y2: y + 15, Color: RuleGrey, Width: 0.2},
		Text{X: right - 37, Y: y + 20, Text: "Due Date:", Font: bold, Align: AlignRight},
		Text{X: right - 5, Y: y + 20, Text: invoice.FormatDate(r.DueDate), Font: body, Align: AlignRight},
	)
	for i, line := range p.noteLines {
		p.add(Text{X: left + s.NoteIndent, Y: y + 30 + float64(i)*s.LineHeight, Text: line, Font: body, Color: NoteGrey})
	}

	bottom := s.ContentBottom()
	p.add(
		Image{Asset: AssetSignature, X: right - 60, Y: bottom - s.SignatureHeight, W: 60, H: 20},
		Text{X: right, Y: bottom, Text: "Authorized Signatory: " + r.Signatory, Font: body, Align: AlignRight},
	)
	p.cur.Closing = true
	p.y += p.totalsH
}
