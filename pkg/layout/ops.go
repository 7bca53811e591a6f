package layout

// Align is the horizontal anchor of a Text op.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Font selects a core PDF font. Style is "", "B", "I" or "BI".
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B int
}

var (
	Black    = Color{0, 0, 0}
	Grey     = Color{153, 153, 153}
	NoteGrey = Color{128, 128, 128}
	RuleGrey = Color{204, 204, 204}
	BandGrey = Color{230, 230, 230}
	Accent   = Color{0, 153, 230}
)

// Asset names an image the emitter resolves to a file.
type Asset string

const (
	AssetLogo      Asset = "logo"
	AssetSignature Asset = "signature"
)

// Op is one drawing instruction. The set is closed: Text, Line, Rect, Image.
type Op interface {
	isOp()
}

// Text draws a single line; Y is the baseline. For AlignRight X is the
// right end of the text, for AlignCenter its middle.
type Text struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
	Align Align
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

// Rect is a filled rectangle without stroke.
type Rect struct {
	X, Y, W, H float64
	Fill       Color
}

// Image places an asset; a missing asset is left out by the emitter.
type Image struct {
	Asset      Asset
	X, Y, W, H float64
}

func (Text) isOp()  {}
func (Line) isOp()  {}
func (Rect) isOp()  {}
func (Image) isOp() {}
