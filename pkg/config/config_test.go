package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sample = `companyimage_file_name=assets/logo.png
signature_file_name=assets/signature.png
company_name=Acme Cleaning
address=1 Main St
city_st_zip=Springfield, IL 62701
phone_no=555-0100
email=billing@acme.test
customer_name=Globex
customer_email=ap@globex.test
customer_address=2 Side St
customer_city=Shelbyville
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOriginalFormat(t *testing.T) {
	s, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c := s.Template.Company
	if c.Name != "Acme Cleaning" || c.CityStZip != "Springfield, IL 62701" || c.Email != "billing@acme.test" {
		t.Errorf("company = %+v", c)
	}
	if s.Template.Customer.City != "Shelbyville" {
		t.Errorf("customer = %+v", s.Template.Customer)
	}
	if c.LogoPath != "assets/logo.png" || c.SignaturePath != "assets/signature.png" {
		t.Errorf("images = %q, %q", c.LogoPath, c.SignaturePath)
	}
	if s.CounterPath != "invoice_number.txt" || s.OutDir != "invoices" || s.DueDays != 15 {
		t.Errorf("defaults not applied: %+v", s)
	}
}

func TestLoadKeepsValuesVerbatim(t *testing.T) {
	s, err := Load(writeConfig(t, sample+`address=12 Main St #4
company_name=Smith$Co Cleaning
note=Pay within 15 days # thanks
authorized_signatory=O'Brien "Bob" \\ $HOME
city_st_zip = a=b=c
# a comment line
not a setting
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tests := []struct {
		name, got, want string
	}{
		{"address", s.Template.Company.Address, "12 Main St #4"},
		{"company_name", s.Template.Company.Name, "Smith$Co Cleaning"},
		{"note", s.Template.Note, "Pay within 15 days # thanks"},
		{"authorized_signatory", s.Template.Signatory, `O'Brien "Bob" \\ $HOME`},
		{"city_st_zip", s.Template.Company.CityStZip, "a=b=c"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INVOICEGEN_COMPANY_NAME", "Acme Ltd")
	t.Setenv("INVOICEGEN_INVOICE_NUMBER_SEED", "41")
	t.Setenv("INVOICEGEN_DUE_DAYS", "30")

	s, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	if s.Template.Company.Name != "Acme Ltd" {
		t.Errorf("name = %q", s.Template.Company.Name)
	}
	if s.CounterSeed != 41 || s.DueDays != 30 || s.Template.DueDays != 30 {
		t.Errorf("ints = seed %d due %d/%d", s.CounterSeed, s.DueDays, s.Template.DueDays)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
	if s.OutDir != "invoices" {
		t.Errorf("defaults missing: %+v", s)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, content := range []string{
		sample + "due_days=soon\n",
		sample + "invoice_number_seed=-4\n",
		sample + "invoices_dir=\n",
	} {
		if _, err := Load(writeConfig(t, content)); err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("config accepted:\n%s\nerr = %v", content, err)
		}
	}
}
