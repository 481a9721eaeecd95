package ledgerconv

import (
	"github.com/shopspring/decimal"

	"github.com/hbtools/ledgerconv/date"
)

// AccountType is the closed enumeration of HomeBank account types.
// Values match the numeric codes stored in .xhb files.
type AccountType int

const (
	AccountNone AccountType = iota
	AccountBank
	AccountCash
	AccountAsset
	AccountCreditCard
	AccountLiability
	AccountSavings
)

func (t AccountType) String() string {
	switch t {
	case AccountNone:
		return "none"
	case AccountBank:
		return "bank"
	case AccountCash:
		return "cash"
	case AccountAsset:
		return "asset"
	case AccountCreditCard:
		return "credit-card"
	case AccountLiability:
		return "liability"
	case AccountSavings:
		return "savings"
	default:
		return "unknown"
	}
}

// Account flag bits, from HomeBank's hb-account.h.
const afClosed = 1 << 1

// Category flag bits, from HomeBank's hb-category.h.
const (
	gfSub    = 1 << 0
	gfIncome = 1 << 1
)

// Transaction flag bits, from HomeBank's hb-transaction.h.
const (
	ofIncome = 1 << 1
	ofSplit  = 1 << 8
)

// Status is a transaction's cleared/pending marker.
type Status int

const (
	StatusNone Status = iota
	StatusCleared
	StatusReconciled
	StatusRemind
)

// Mark returns the hledger status marker for this status.
func (s Status) Mark() string {
	switch s {
	case StatusReconciled:
		return "*"
	case StatusCleared:
		return "!"
	default:
		return ""
	}
}

// Currency is a currency defined in the source document.
type Currency struct {
	Key         int
	ISO         string // ISO 4217, e.g. "EUR"
	Name        string
	Symbol      string
	DecimalChar string // decimal separator used by the source document
	GroupChar   string // thousands separator used by the source document
	Fraction    int    // number of decimal places
	Rate        decimal.Decimal
}

// Group is an account group.
type Group struct {
	Key  int
	Name string
}

// Account is a financial account in the source document.
type Account struct {
	Key            int
	Name           string
	Type           AccountType
	CurrencyKey    int
	InitialBalance decimal.Decimal
	Flags          int
	Number         string
	BankName       string
	Notes          string
	GroupKey       int // 0 = none
}

// Closed reports whether the account is closed/archived.
func (a Account) Closed() bool { return a.Flags&afClosed != 0 }

// Payee is a transaction counterparty.
type Payee struct {
	Key                int
	Name               string
	DefaultCategoryKey int // 0 = none
	DefaultPaymode     int
}

// Category is a booking category. Categories form a tree of depth two:
// a category with a non-zero ParentKey is a subcategory.
type Category struct {
	Key       int
	Name      string // leaf name only, never the full path
	Flags     int
	ParentKey int // 0 = top-level
}

// Income reports whether this is an income category.
func (c Category) Income() bool { return c.Flags&gfIncome != 0 }

// Transaction is a single booking in the source document.
//
// Keys are HomeBank record keys; they start at 1, so 0 means "absent".
// Split allocations are kept in their raw composite encoding (three
// "||"-joined parallel lists) and expanded by ExpandSplits.
type Transaction struct {
	Date        date.Date
	Amount      decimal.Decimal
	AccountKey  int
	Flags       int
	Status      Status
	Paymode     int
	PayeeKey    int // 0 = none
	CategoryKey int // 0 = none
	Wording     string
	Info        string
	Tags        []string

	// Transfer pairing: both sides of an internal transfer share a non-zero
	// Transfer identifier; DstAccountKey is set on both legs.
	Transfer      int
	DstAccountKey int

	// Raw split encoding, only meaningful when Split() is true.
	SplitCategories string
	SplitAmounts    string
	SplitMemos      string
}

// Split reports whether this is a split transaction.
func (t Transaction) Split() bool { return t.Flags&ofSplit != 0 }

// InternalTransfer reports whether this transaction is one leg of an
// internal transfer pair.
func (t Transaction) InternalTransfer() bool { return t.Transfer != 0 && t.DstAccountKey != 0 }

// Document is the complete normalized content of a HomeBank file.
// All records are immutable once decoded; Transactions are kept in
// chronological order (stable with respect to encounter order).
type Document struct {
	BaseCurrencyKey int
	Currencies      map[int]Currency
	Groups          map[int]Group
	Accounts        map[int]Account
	Payees          map[int]Payee
	Categories      map[int]Category
	Transactions    []Transaction
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Currencies: make(map[int]Currency),
		Groups:     make(map[int]Group),
		Accounts:   make(map[int]Account),
		Payees:     make(map[int]Payee),
		Categories: make(map[int]Category),
	}
}

// BaseCurrency returns the document's base currency, or a zero Currency if
// the base currency key is dangling.
func (d *Document) BaseCurrency() Currency {
	return d.Currencies[d.BaseCurrencyKey]
}

// CurrencyISO returns the ISO code of the account's currency, falling back
// to the base currency when the account or its currency is unknown.
func (d *Document) CurrencyISO(accountKey int) string {
	if acc, ok := d.Accounts[accountKey]; ok {
		if cur, ok := d.Currencies[acc.CurrencyKey]; ok && cur.ISO != "" {
			return cur.ISO
		}
	}
	return d.BaseCurrency().ISO
}
