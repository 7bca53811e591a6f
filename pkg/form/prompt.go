package form

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/invoice-generator/pkg/invoice"
)

// ErrAborted is returned when input ends before an invoice is complete.
var ErrAborted = errors.New("input ended before the invoice was complete")

type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// ask prints label with its default and returns the trimmed answer, or def
// for an empty answer.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	if v := strings.TrimSpace(p.sc.Text()); v != "" {
		return v, nil
	}
	return def, nil
}

// Prompt collects one invoice interactively, offering the template's company
// and customer details as defaults. Invalid dates and rates are asked again on the spot.
func Prompt(in io.Reader, out io.Writer, tpl invoice.Template, today time.Time) (invoice.Record, error) {
	p := &prompter{sc: bufio.NewScanner(in), out: out}

	date := today
	for {
		v, err := p.ask("Invoice date (YYYY-MM-DD)", today.Format(DateLayout))
		if err != nil {
			return invoice.Record{}, err
		}
		t, err := time.Parse(DateLayout, v)
		if err == nil {
			date = t
			break
		}
		fmt.Fprintf(out, "  not a date, expected %s\n", DateLayout)
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Company name", &tpl.Company.Name},
		{"Company address", &tpl.Company.Address},
		{"Company city, state and zip", &tpl.Company.CityStZip},
		{"Company phone", &tpl.Company.Phone},
		{"Customer name", &tpl.Customer.Name},
		{"Customer email", &tpl.Customer.Email},
		{"Customer phone", &tpl.Customer.Phone},
		{"Customer address", &tpl.Customer.Address},
		{"Customer city", &tpl.Customer.City},
	}
	for _, f := range fields {
		v, err := p.ask(f.label, *f.dst)
		if err != nil {
			return invoice.Record{}, err
		}
		*f.dst = v
	}
	signatory := tpl.Signatory
	if signatory == "" {
		signatory = tpl.Company.Name
	}
	v, err := p.ask("Authorized signatory", signatory)
	if err != nil {
		return invoice.Record{}, err
	}
	tpl.Signatory = v

	rec := tpl.NewRecord(date)
	for {
		it, done, err := p.item(len(rec.Items) + 1)
		if errors.Is(err, ErrAborted) && len(rec.Items) > 0 {
			break
		}
		if err != nil {
			return invoice.Record{}, err
		}
		if done {
			if len(rec.Items) > 0 {
				break
			}
			fmt.Fprintln(out, "  at least one line item is required")
			continue
		}
		rec.Items = append(rec.Items, it)
	}
	return rec, nil
}

// item asks for line item n. done is set when the description is left blank.
func (p *prompter) item(n int) (it invoice.LineItem, done bool, err error) {
	if it.Description, err = p.ask(fmt.Sprintf("Item %d description (blank to finish)", n), ""); err != nil || it.Description == "" {
		return it, err == nil, err
	}
	if it.Date, err = p.ask(fmt.Sprintf("Item %d date", n), ""); err != nil {
		return it, false, err
	}
	if it.Location, err = p.ask(fmt.Sprintf("Item %d location", n), ""); err != nil {
		return it, false, err
	}
	for {
		raw, err := p.ask(fmt.Sprintf("Item %d rate", n), "")
		if err != nil {
			return it, false, err
		}
		rate, err := invoice.ParseRate(raw)
		if err == nil {
			it.Rate = rate
			return it, false, nil
		}
		fmt.Fprintf(p.out, "  %v\n", err)
	}
}
