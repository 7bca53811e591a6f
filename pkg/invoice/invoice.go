// pkg/invoice/invoice.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDueDays is the payment term applied when a template does not set one.
const DefaultDueDays = 15

// DefaultNote is printed under the totals when a template does not set one.
const DefaultNote = "Your business is greatly appreciated."

// Company represents the issuing business.
type Company struct {
	Name          string `yaml:"name" validate:"required"`
	Address       string `yaml:"address" validate:"required"`
	CityStZip     string `yaml:"city_st_zip" validate:"required"`
	Phone         string `yaml:"phone" validate:"required"`
	Email         string `yaml:"email" validate:"omitempty,email"`
	LogoPath      string `yaml:"logo"`
	SignaturePath string `yaml:"signature"`
}

// Customer represents the billed party.
type Customer struct {
	Name    string `yaml:"name" validate:"required"`
	Email   string `yaml:"email" validate:"omitempty,email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	City    string `yaml:"city"`
}

// LineItem represents one billable row of the invoice.
type LineItem struct {
	Date        string          `validate:"max=40"`
	Description string          `validate:"required"`
	Location    string          `validate:"max=200"`
	Rate        decimal.Decimal `validate:"money"`
}

// Record represents everything needed to render one invoice.
//
// Number is zero until the record has been issued a number by a counter
// store, see WithNumber.
type Record struct {
	Number    int
	Date      time.Time
	DueDate   time.Time
	Company   Company
	Customer  Customer
	Signatory string `validate:"required"`
	Note      string
	Items     []LineItem `validate:"required,min=1,dive"`
}

// WithNumber returns a copy of r carrying invoice number n. The item slice
// is cloned so later edits to r do not leak into the numbered copy.
func (r Record) WithNumber(n int) Record {
	out := r
	out.Number = n
	out.Items = append([]LineItem(nil), r.Items...)
	return out
}

// Total is the exact sum of every line item rate.
func (r Record) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Rate)
	}
	return total
}

// Template holds the shared defaults every new invoice starts from.
type Template struct {
	Company   Company
	Customer  Customer
	Signatory string
	DueDays   int
	Note      string
}

// NewRecord clones the template into a fresh, unnumbered record dated date.
func (t Template) NewRecord(date time.Time) Record {
	due := t.DueDays
	if due <= 0 {
		due = DefaultDueDays
	}
	signatory := t.Signatory
	if signatory == "" {
		signatory = t.Company.Name
	}
	note := t.Note
	if note == "" {
		note = DefaultNote
	}
	return Record{
		Date:      date,
		DueDate:   date.AddDate(0, 0, due),
		Company:   t.Company,
		Customer:  t.Customer,
		Signatory: signatory,
		Note:      note,
	}
}

// FormatDate renders a date the way it is printed on the invoice.
func FormatDate(t time.Time) string {
	return t.Format("02 January 2006")
}
