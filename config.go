package ledgerconv

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls account naming and journal output. The zero value is not
// usable; start from DefaultOptions and override selectively, or load
// overrides from a YAML file with LoadOptions.
type Options struct {
	// Prefixes maps account type names (none, bank, cash, asset,
	// credit-card, liability, savings) to the hierarchical prefix of the
	// resulting hledger account.
	Prefixes map[string]string `yaml:"prefixes"`

	// IncomePrefix and ExpensePrefix root the category accounts.
	IncomePrefix  string `yaml:"income_prefix"`
	ExpensePrefix string `yaml:"expense_prefix"`

	// PayablePrefix and ReceivablePrefix root the synthesized per-payee
	// creditor/debtor accounts.
	PayablePrefix    string `yaml:"payable_prefix"`
	ReceivablePrefix string `yaml:"receivable_prefix"`

	// EquityAccount receives the inferred posting of every synthesized
	// opening-balance transaction.
	EquityAccount string `yaml:"equity_account"`

	// Uncategorized is the leaf name used for transactions without a category.
	Uncategorized string `yaml:"uncategorized"`

	// OpeningPayee labels the synthesized opening-balance transactions.
	OpeningPayee string `yaml:"opening_payee"`

	// TransferPayee labels transfer transactions that carry no payee.
	TransferPayee string `yaml:"transfer_payee"`
}

// DefaultOptions returns the canonical conversion options.
func DefaultOptions() Options {
	return Options{
		Prefixes: map[string]string{
			"none":        "Assets",
			"bank":        "Assets:Bank",
			"cash":        "Assets:Cash",
			"asset":       "Assets:Holdings",
			"credit-card": "Liabilities:CreditCard",
			"liability":   "Liabilities:Loan",
			"savings":     "Assets:Savings",
		},
		IncomePrefix:     "Income",
		ExpensePrefix:    "Expense",
		PayablePrefix:    "Liabilities:Payable",
		ReceivablePrefix: "Assets:Receivable",
		EquityAccount:    "Equity:Opening Balances",
		Uncategorized:    "Uncategorized",
		OpeningPayee:     "Opening Balances",
		TransferPayee:    "Internal transfer",
	}
}

// LoadOptions reads a YAML options file and merges it over DefaultOptions.
// Fields absent from the file keep their default.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("could not read options file: %w", err)
	}
	// Decode into a shadow struct so that absent keys do not clobber defaults.
	var file Options
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return opts, fmt.Errorf("could not parse options file %q: %w", path, err)
	}
	opts.merge(file)
	return opts, nil
}

func (o *Options) merge(file Options) {
	for name, prefix := range file.Prefixes {
		if _, known := o.Prefixes[name]; !known {
			continue // ignore unknown account type names
		}
		if prefix != "" {
			o.Prefixes[name] = prefix
		}
	}
	if file.IncomePrefix != "" {
		o.IncomePrefix = file.IncomePrefix
	}
	if file.ExpensePrefix != "" {
		o.ExpensePrefix = file.ExpensePrefix
	}
	if file.PayablePrefix != "" {
		o.PayablePrefix = file.PayablePrefix
	}
	if file.ReceivablePrefix != "" {
		o.ReceivablePrefix = file.ReceivablePrefix
	}
	if file.EquityAccount != "" {
		o.EquityAccount = file.EquityAccount
	}
	if file.Uncategorized != "" {
		o.Uncategorized = file.Uncategorized
	}
	if file.OpeningPayee != "" {
		o.OpeningPayee = file.OpeningPayee
	}
	if file.TransferPayee != "" {
		o.TransferPayee = file.TransferPayee
	}
}
