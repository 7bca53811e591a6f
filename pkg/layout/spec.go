package layout

// Margins are page margins in mm.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Column is the left edge and usable width of a table column, in mm.
type Column struct {
	X, W float64
}

// Columns places the line-item table.
type Columns struct {
	Date, Description, Location, Rate Column
}

// PageSpec fixes the page geometry. All values are mm with the origin at the
// top-left corner, the way the PDF emitter addresses the page.
type PageSpec struct {
	Width, Height float64
	Margins       Margins

	// TableTop is where the first row of the line-item table starts on
	// every page, below the repeated header and customer block.
	TableTop   float64
	HeaderRowY float64
	Columns    Columns

	RowHeight  float64
	LineHeight float64
	BandHeight float64

	// TotalsHeight excludes the note lines, which add LineHeight each.
	TotalsHeight    float64
	SignatureHeight float64
	NoteIndent      float64

	// ReserveClosing keeps room for totals and signature below the table
	// on every page, so all pages carry the same number of rows.
	ReserveClosing bool

	FontFamily string
	TitleSize  float64
	BodySize   float64
	TotalSize  float64
	FooterSize float64
}

// DefaultA4 is the invoice page: A4 portrait with 2cm margins.
func DefaultA4() PageSpec {
	return PageSpec{
		Width:      210,
		Height:     297,
		Margins:    Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		TableTop:   90,
		HeaderRowY: 85,
		Columns: Columns{
			Date:        Column{X: 20, W: 28},
			Description: Column{X: 50, W: 68},
			Location:    Column{X: 120, W: 48},
			Rate:        Column{X: 170, W: 20},
		},
		RowHeight:       10,
		LineHeight:      5,
		BandHeight:      7,
		TotalsHeight:    30,
		SignatureHeight: 30,
		NoteIndent:      10,
		ReserveClosing:  true,
		FontFamily:      "Helvetica",
		TitleSize:       20,
		BodySize:        10,
		TotalSize:       12,
		FooterSize:      8,
	}
}

// ContentBottom is the lowest baseline content may use.
func (s PageSpec) ContentBottom() float64 { return s.Height - s.Margins.Bottom }

// RightEdge is the x position right-aligned text ends at.
func (s PageSpec) RightEdge() float64 { return s.Width - s.Margins.Right }

// ContentWidth is the width between the left and right margins.
func (s PageSpec) ContentWidth() float64 { return s.Width - s.Margins.Left - s.Margins.Right }

func (s PageSpec) font(style string, size float64) Font {
	return Font{Family: s.FontFamily, Style: style, Size: size}
}
