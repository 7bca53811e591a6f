// pkg/config/config.go

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/invoice-generator/pkg/invoice"
)

// EnvPrefix prefixes the environment variables that override config keys,
// e.g. INVOICEGEN_COMPANY_NAME.
const EnvPrefix = "INVOICEGEN_"

// ErrConfigNotFound is returned alongside usable defaults when the config
// file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Settings is everything the application reads before any invoice is
// collected.
type Settings struct {
	Template    invoice.Template `validate:"-"`
	CounterPath string           `validate:"required"`
	CounterSeed int              `validate:"gte=0"`
	OutDir      string           `validate:"required"`
	DueDays     int              `validate:"gte=0,lte=365"`
}

// Defaults are the settings used for keys absent from every source.
func Defaults() Settings {
	return Settings{
		CounterPath: "invoice_number.txt",
		OutDir:      "invoices",
		DueDays:     invoice.DefaultDueDays,
		Template: invoice.Template{
			DueDays: invoice.DefaultDueDays,
			Note:    invoice.DefaultNote,
		},
	}
}

// Load reads key=value pairs from path, then applies INVOICEGEN_* overrides
// from the environment. A missing file is not fatal: the returned settings
// are usable and the error wraps ErrConfigNotFound.
func Load(path string) (Settings, error) {
	values := map[string]string{}
	var notFound error
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		notFound = fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case err != nil:
		return Settings{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if values, err = godotenv.Parse(bytes.NewReader(literal(data))); err != nil {
			return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	s := Defaults()
	if err := s.apply(values); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, notFound
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// literal rewrites every key=value line as a double-quoted assignment so
// that godotenv keeps the value verbatim: everything after the first '=' is
// the value, including '#' and '$'. The space before the closing quote keeps
// a trailing '\' or '"' from touching it; values are trimmed on lookup.
func literal(data []byte) []byte {
	var out bytes.Buffer
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fmt.Fprintf(&out, "%s=\"%s \"\n", strings.TrimSpace(key), escaper.Replace(value))
	}
	return out.Bytes()
}

var validate = validator.New()

// Validate checks the numeric and path settings.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

func lookup(values map[string]string, key string) (string, bool) {
	if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok {
		return strings.TrimSpace(v), true
	}
	v, ok := values[key]
	return strings.TrimSpace(v), ok
}

func (s *Settings) apply(values map[string]string) error {
	strs := map[string]*string{
		"companyimage_file_name": &s.Template.Company.LogoPath,
		"signature_file_name":    &s.Template.Company.SignaturePath,
		"company_name":           &s.Template.Company.Name,
		"address":                &s.Template.Company.Address,
		"city_st_zip":            &s.Template.Company.CityStZip,
		"phone_no":               &s.Template.Company.Phone,
		"email":                  &s.Template.Company.Email,
		"customer_name":          &s.Template.Customer.Name,
		"customer_email":         &s.Template.Customer.Email,
		"customer_phone":         &s.Template.Customer.Phone,
		"customer_address":       &s.Template.Customer.Address,
		"customer_city":          &s.Template.Customer.City,
		"authorized_signatory":   &s.Template.Signatory,
		"note":                   &s.Template.Note,
		"invoice_number_file":    &s.CounterPath,
		"invoices_dir":           &s.OutDir,
	}
	for key, dst := range strs {
		if v, ok := lookup(values, key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"invoice_number_seed": &s.CounterSeed,
		"due_days":            &s.DueDays,
	}
	for key, dst := range ints {
		v, ok := lookup(values, key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", key, v)
		}
		*dst = n
	}
	s.Template.DueDays = s.DueDays
	return nil
}
