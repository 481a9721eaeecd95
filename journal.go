package ledgerconv

import (
	"github.com/shopspring/decimal"

	"github.com/hbtools/ledgerconv/date"
)

// Posting is one account/amount line within a ledger transaction.
// An inferred posting carries no explicit amount; hledger balances it
// against the rest of the transaction. At most one posting per transaction
// may be inferred.
type Posting struct {
	Account  string
	Amount   Money
	Inferred bool
	Comment  string
}

// LedgerTransaction is a complete hledger transaction. Posting order is
// significant and reproduced identically on repeat runs.
type LedgerTransaction struct {
	Date     date.Date
	Mark     string // "" | "!" | "*"
	Payee    string
	Note     string
	Postings []Posting
	Comment  string
}

// AccountDecl is one account declaration of a year journal. Closed accounts
// keep their canonical name; closure is carried here as metadata only.
type AccountDecl struct {
	Name    string
	TypeTag string // hledger account type: A, C, L, E, R or X
	Closed  bool
}

// YearLedger is the journal of a single calendar year: its declarations in
// first-seen order and its transactions in chronological order.
type YearLedger struct {
	Year         int
	Currency     string // base currency ISO code
	Accounts     []AccountDecl
	Payees       []string
	Transactions []LedgerTransaction
}

// Conversion is the complete result of one conversion run: the ordered year
// journals, the index of years present (the include manifest), and the
// data-integrity warnings that degraded gracefully.
type Conversion struct {
	Years    []YearLedger
	Index    []int
	Warnings []Warning
}

// checkBalanced enforces the double-entry postcondition: the explicit
// posting amounts of each currency sum to exactly zero, unless exactly one
// inferred posting exists to absorb the remainder.
func checkBalanced(ltx LedgerTransaction, tx Transaction) error {
	inferred := 0
	sums := make(map[string]decimal.Decimal)
	for _, p := range ltx.Postings {
		if p.Inferred {
			inferred++
			continue
		}
		sums[p.Amount.Currency()] = sums[p.Amount.Currency()].Add(p.Amount.Decimal())
	}
	if inferred > 1 {
		return convErr(tx, "unbalanced postings: %d inferred postings, at most one allowed", inferred)
	}
	if inferred == 1 {
		// The single inferred posting absorbs the explicit sum by definition.
		return nil
	}
	for currency, sum := range sums {
		if !sum.IsZero() {
			return convErr(tx, "unbalanced postings: %s %s left over", sum, currency)
		}
	}
	return nil
}
