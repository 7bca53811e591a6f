// pkg/form/decode.go

package form

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/invoice-generator/pkg/invoice"
)

// DateLayout is the accepted input format for invoice dates.
const DateLayout = "2006-01-02"

// Document is the YAML shape of one invoice request. Company and customer
// fields override the configured defaults only where set.
type Document struct {
	Date      string           `yaml:"date"`
	Company   invoice.Company  `yaml:"company"`
	Customer  invoice.Customer `yaml:"customer"`
	Signatory string           `yaml:"signatory"`
	Note      string           `yaml:"note"`
	Items     []Item           `yaml:"items"`
}

// Item keeps the rate as its literal YAML text so amounts never pass
// through a float.
type Item struct {
	Date        string    `yaml:"date"`
	Description string    `yaml:"description"`
	Location    string    `yaml:"location"`
	Rate        yaml.Node `yaml:"rate"`
}

// Decode reads a YAML invoice from r on top of the template defaults.
// today is used when the document has no date.
func Decode(r io.Reader, tpl invoice.Template, today time.Time) (invoice.Record, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return invoice.Record{}, &invoice.ValidationError{Fields: []invoice.FieldError{{Field: "Items", Reason: "required"}}}
		}
		return invoice.Record{}, fmt.Errorf("decode invoice: %w", err)
	}
	return doc.Record(tpl, today)
}

// Record builds the invoice record. Malformed dates and rates are reported
// together as one *invoice.ValidationError.
func (d Document) Record(tpl invoice.Template, today time.Time) (invoice.Record, error) {
	verr := &invoice.ValidationError{}

	date := today
	if d.Date != "" {
		t, err := time.Parse(DateLayout, strings.TrimSpace(d.Date))
		if err != nil {
			verr.Add("Date", "expected "+DateLayout)
		}
		date = t
	}

	mergeCompany(&tpl.Company, d.Company)
	mergeCustomer(&tpl.Customer, d.Customer)
	if d.Signatory != "" {
		tpl.Signatory = d.Signatory
	}
	if d.Note != "" {
		tpl.Note = d.Note
	}
	rec := tpl.NewRecord(date)

	for i, it := range d.Items {
		rate, err := invoice.ParseRate(it.Rate.Value)
		if err != nil {
			verr.Add("Items["+strconv.Itoa(i)+"].Rate", err.Error())
		}
		rec.Items = append(rec.Items, invoice.LineItem{
			Date:        it.Date,
			Description: it.Description,
			Location:    it.Location,
			Rate:        rate,
		})
	}
	if err := verr.OrNil(); err != nil {
		return invoice.Record{}, err
	}
	return rec, nil
}

func mergeCompany(dst *invoice.Company, src invoice.Company) {
	set(&dst.Name, src.Name)
	set(&dst.Address, src.Address)
	set(&dst.CityStZip, src.CityStZip)
	set(&dst.Phone, src.Phone)
	set(&dst.Email, src.Email)
	set(&dst.LogoPath, src.LogoPath)
	set(&dst.SignaturePath, src.SignaturePath)
}

func mergeCustomer(dst *invoice.Customer, src invoice.Customer) {
	set(&dst.Name, src.Name)
	set(&dst.Email, src.Email)
	set(&dst.Phone, src.Phone)
	set(&dst.Address, src.Address)
	set(&dst.City, src.City)
}

func set(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
