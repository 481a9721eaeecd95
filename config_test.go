package ledgerconv

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptionsMergesOverDefaults(t *testing.T) {
	path := writeOptionsFile(t, `
prefixes:
  bank: Aktiva:Girokonto
  credit-card: Passiva:Kreditkarte
income_prefix: Einnahmen
transfer_payee: Umbuchung
`)
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Prefixes["bank"] != "Aktiva:Girokonto" || opts.Prefixes["credit-card"] != "Passiva:Kreditkarte" {
		t.Errorf("prefixes = %v", opts.Prefixes)
	}
	if opts.IncomePrefix != "Einnahmen" || opts.TransferPayee != "Umbuchung" {
		t.Errorf("overrides = %q %q", opts.IncomePrefix, opts.TransferPayee)
	}
	// Untouched fields keep their defaults.
	def := DefaultOptions()
	if opts.Prefixes["cash"] != def.Prefixes["cash"] || opts.ExpensePrefix != def.ExpensePrefix || opts.EquityAccount != def.EquityAccount {
		t.Errorf("defaults clobbered: %+v", opts)
	}
}

func TestLoadOptionsIgnoresUnknownPrefixKeys(t *testing.T) {
	path := writeOptionsFile(t, `
prefixes:
  checking: Aktiva
`)
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if _, ok := opts.Prefixes["checking"]; ok {
		t.Error("unknown account type name must be ignored")
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestLoadOptionsBadYAML(t *testing.T) {
	path := writeOptionsFile(t, "prefixes: [not a map")
	if _, err := LoadOptions(path); err == nil {
		t.Error("want error for malformed YAML")
	}
}
