package ledgerconv

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Sanitize cleans a raw name for use as an hledger account name segment.
//
//   - ':' is replaced by '-' (hledger uses ':' as the hierarchy delimiter)
//   - runs of two or more whitespace characters collapse to a single space
//     (hledger uses 2+ spaces to separate account name from amount)
//   - leading and trailing whitespace is trimmed
func Sanitize(name string) string {
	s := strings.ReplaceAll(name, ":", "-")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Namer resolves source identities into canonical hierarchical account names.
// The account type dispatch is a lookup table seeded from Options, not a type
// hierarchy: a new account type is one enumeration case plus one table row.
type Namer struct {
	opts Options
}

// NewNamer creates a Namer from conversion options.
func NewNamer(opts Options) *Namer { return &Namer{opts: opts} }

// accountPrefix returns the hierarchical prefix for an account type.
func (n *Namer) accountPrefix(t AccountType) string {
	if p, ok := n.opts.Prefixes[t.String()]; ok {
		return p
	}
	return n.opts.Prefixes[AccountNone.String()]
}

// AccountName builds the full canonical name of a financial account.
// A closed account resolves to the same name as an open one; closure is
// surfaced as declaration metadata, never as a naming change.
func (n *Namer) AccountName(a Account) (string, error) {
	safe := Sanitize(a.Name)
	if safe == "" {
		return "", &NamingError{Kind: "account", Raw: a.Name}
	}
	return n.accountPrefix(a.Type) + ":" + safe, nil
}

// TypeTag returns the hledger account type tag (A, C, L, E, R or X) for an
// account type.
func TypeTag(t AccountType) string {
	switch t {
	case AccountBank, AccountCash:
		return "C"
	case AccountCreditCard, AccountLiability:
		return "L"
	default:
		return "A"
	}
}

// CategoryName builds the canonical name for a category reference.
//
// A zero key (no category) falls into the Uncategorized bucket: the expense
// bucket for a negative amount, the income bucket otherwise. A non-zero key
// that is not present in cats is the caller's error to report.
func (n *Namer) CategoryName(key int, amount decimal.Decimal, cats map[int]Category) (string, error) {
	if key == 0 {
		if amount.IsNegative() {
			return n.opts.ExpensePrefix + ":" + n.opts.Uncategorized, nil
		}
		return n.opts.IncomePrefix + ":" + n.opts.Uncategorized, nil
	}

	cat, ok := cats[key]
	if !ok {
		return "", &NamingError{Kind: "category", Raw: ""}
	}
	safe := Sanitize(cat.Name)
	if safe == "" {
		return "", &NamingError{Kind: "category", Raw: cat.Name}
	}

	path := safe
	if parent, ok := cats[cat.ParentKey]; cat.ParentKey != 0 && ok {
		if p := Sanitize(parent.Name); p != "" {
			path = p + ":" + safe
		}
	}

	prefix := n.opts.ExpensePrefix
	if cat.Income() {
		prefix = n.opts.IncomePrefix
	}
	return prefix + ":" + path, nil
}

// PayeeName builds the canonical name of the synthesized creditor/debtor
// account for a payee: a payable leaf for a negative amount, a receivable
// leaf otherwise.
func (n *Namer) PayeeName(payee string, amount decimal.Decimal) (string, error) {
	safe := Sanitize(payee)
	if safe == "" {
		return "", &NamingError{Kind: "payee", Raw: payee}
	}
	if amount.IsNegative() {
		return n.opts.PayablePrefix + ":" + safe, nil
	}
	return n.opts.ReceivablePrefix + ":" + safe, nil
}

// EquityName returns the canonical equity account receiving the inferred
// posting of opening-balance transactions.
func (n *Namer) EquityName() string { return n.opts.EquityAccount }

// categoryTypeTag returns the hledger type tag for a category account.
func categoryTypeTag(income bool) string {
	if income {
		return "R"
	}
	return "X"
}
