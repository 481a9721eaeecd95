package ledgerconv

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hbtools/ledgerconv/date"
)

// Convert transforms a decoded document into one ledger journal per calendar
// year, with synthesized opening-balance entries chaining year to year.
//
// The run is a pure fold over the document: no state survives it, and
// identical input yields byte-for-byte identical output. On failure no
// partial result is returned.
func Convert(doc *Document, opts Options) (*Conversion, error) {
	a := &assembler{
		doc:   doc,
		opts:  opts,
		namer: NewNamer(opts),
		decls: make(map[string]AccountDecl),
	}
	return a.run()
}

// entry pairs a built ledger transaction with the position of its source
// record, so that equal-date ordering stays stable and reproducible.
type entry struct {
	pos int // source position; -1 for synthesized opening entries
	ltx LedgerTransaction
}

type assembler struct {
	doc   *Document
	opts  Options
	namer *Namer

	// decls accumulates declaration metadata for every canonical account
	// name referenced during the run.
	decls map[string]AccountDecl
}

func (a *assembler) run() (*Conversion, error) {
	if len(a.doc.Transactions) == 0 {
		return &Conversion{}, nil
	}
	baseISO := a.doc.BaseCurrency().ISO

	transfers := ResolveTransfers(a.doc.Transactions)

	// Classify and convert every non-consumed transaction.
	byYear := make(map[int][]entry)
	for i, tx := range a.doc.Transactions {
		if transfers.Consumed(i) {
			continue
		}

		var ltx LedgerTransaction
		var err error
		switch {
		case transfers.Resolved(i):
			ltx, err = a.buildTransfer(tx)
		case tx.Split():
			ltx, err = a.buildSplit(tx)
		default:
			ltx, err = a.buildNormal(tx)
		}
		if err != nil {
			return nil, err
		}
		if err := checkBalanced(ltx, tx); err != nil {
			return nil, err
		}
		year := tx.Date.Year()
		byYear[year] = append(byYear[year], entry{pos: i, ltx: ltx})
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	conv := &Conversion{Index: years, Warnings: transfers.Warnings()}
	for _, year := range years {
		entries := byYear[year]

		// Every year after the first opens with the carried-forward balances.
		if year != years[0] {
			firstDay := date.New(year, time.January, 1)
			balances := BalancesAsOf(a.doc, transfers, firstDay)
			if opening, ok, err := a.buildOpening(year, balances, baseISO); err != nil {
				return nil, err
			} else if ok {
				entries = append([]entry{{pos: -1, ltx: opening}}, entries...)
			}
		}

		// Date order; equal dates keep their source order, and the opening
		// entry stays at the head of its day.
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].ltx.Date != entries[j].ltx.Date {
				return entries[i].ltx.Date.Before(entries[j].ltx.Date)
			}
			return entries[i].pos < entries[j].pos
		})

		conv.Years = append(conv.Years, a.buildYear(year, baseISO, entries))
	}
	return conv, nil
}

// buildYear assembles a YearLedger with declarations in first-seen order.
func (a *assembler) buildYear(year int, baseISO string, entries []entry) YearLedger {
	ledger := YearLedger{Year: year, Currency: baseISO}

	seenAccounts := make(map[string]struct{})
	seenPayees := make(map[string]struct{})
	for _, e := range entries {
		ledger.Transactions = append(ledger.Transactions, e.ltx)
		if p := e.ltx.Payee; p != "" {
			if _, ok := seenPayees[p]; !ok {
				seenPayees[p] = struct{}{}
				ledger.Payees = append(ledger.Payees, p)
			}
		}
		for _, posting := range e.ltx.Postings {
			if _, ok := seenAccounts[posting.Account]; ok {
				continue
			}
			seenAccounts[posting.Account] = struct{}{}
			ledger.Accounts = append(ledger.Accounts, a.decls[posting.Account])
		}
	}
	return ledger
}

// declare records declaration metadata for a canonical account name and
// returns the name unchanged.
func (a *assembler) declare(name, typeTag string, closed bool) string {
	if _, ok := a.decls[name]; !ok {
		a.decls[name] = AccountDecl{Name: name, TypeTag: typeTag, Closed: closed}
	}
	return name
}

// accountName resolves the transaction's owning financial account.
func (a *assembler) accountName(tx Transaction, key int) (string, error) {
	acc, ok := a.doc.Accounts[key]
	if !ok {
		return "", convErr(tx, "unknown account key %d", key)
	}
	name, err := a.namer.AccountName(acc)
	if err != nil {
		return "", err
	}
	return a.declare(name, TypeTag(acc.Type), acc.Closed()), nil
}

// categoryName resolves a category reference for a given signed amount.
func (a *assembler) categoryName(tx Transaction, key int, amount decimal.Decimal) (string, error) {
	if key != 0 {
		if _, ok := a.doc.Categories[key]; !ok {
			return "", convErr(tx, "unknown category key %d", key)
		}
	}
	name, err := a.namer.CategoryName(key, amount, a.doc.Categories)
	if err != nil {
		return "", err
	}
	income := strings.HasPrefix(name, a.opts.IncomePrefix+":")
	return a.declare(name, categoryTypeTag(income), false), nil
}

// payeeLabel resolves the payee display name, or "" when the transaction
// carries no payee.
func (a *assembler) payeeLabel(tx Transaction) (string, error) {
	if tx.PayeeKey == 0 {
		return "", nil
	}
	p, ok := a.doc.Payees[tx.PayeeKey]
	if !ok {
		return "", convErr(tx, "unknown payee key %d", tx.PayeeKey)
	}
	return p.Name, nil
}

// payeeName resolves the synthesized creditor/debtor account of a payee.
func (a *assembler) payeeName(payee string, amount decimal.Decimal) (string, error) {
	name, err := a.namer.PayeeName(payee, amount)
	if err != nil {
		return "", err
	}
	tag := "A"
	if amount.IsNegative() {
		tag = "L"
	}
	return a.declare(name, tag, false), nil
}

// note builds the free-text part of the description line.
func note(tx Transaction) string {
	parts := make([]string, 0, 2)
	if tx.Wording != "" {
		parts = append(parts, tx.Wording)
	}
	if tx.Info != "" {
		parts = append(parts, tx.Info)
	}
	return strings.Join(parts, " – ")
}

// buildNormal converts a plain transaction into the 2-posting pattern
// (category ↔ account), extended to the 4-posting pattern through the
// synthesized creditor/debtor account when a payee is present.
func (a *assembler) buildNormal(tx Transaction) (LedgerTransaction, error) {
	accName, err := a.accountName(tx, tx.AccountKey)
	if err != nil {
		return LedgerTransaction{}, err
	}
	catName, err := a.categoryName(tx, tx.CategoryKey, tx.Amount)
	if err != nil {
		return LedgerTransaction{}, err
	}
	payee, err := a.payeeLabel(tx)
	if err != nil {
		return LedgerTransaction{}, err
	}

	amount := M(tx.Amount, a.doc.CurrencyISO(tx.AccountKey))
	var postings []Posting
	if payee != "" {
		pName, err := a.payeeName(payee, tx.Amount)
		if err != nil {
			return LedgerTransaction{}, err
		}
		postings = []Posting{
			{Account: catName, Amount: amount.Neg()},
			{Account: pName, Amount: amount},
			{Account: pName, Amount: amount.Neg()},
			{Account: accName, Amount: amount},
		}
	} else {
		postings = []Posting{
			{Account: catName, Amount: amount.Neg()},
			{Account: accName, Amount: amount},
		}
	}

	return LedgerTransaction{
		Date:     tx.Date,
		Mark:     tx.Status.Mark(),
		Payee:    payee,
		Note:     note(tx),
		Postings: postings,
	}, nil
}

// buildSplit converts a split transaction: one category posting per
// allocation, the payee pair on the parent amount when a payee is present,
// and the closing account posting.
func (a *assembler) buildSplit(tx Transaction) (LedgerTransaction, error) {
	accName, err := a.accountName(tx, tx.AccountKey)
	if err != nil {
		return LedgerTransaction{}, err
	}
	allocations, err := ExpandSplits(tx)
	if err != nil {
		return LedgerTransaction{}, err
	}
	payee, err := a.payeeLabel(tx)
	if err != nil {
		return LedgerTransaction{}, err
	}

	iso := a.doc.CurrencyISO(tx.AccountKey)
	amount := M(tx.Amount, iso)

	postings := make([]Posting, 0, len(allocations)+3)
	for _, alloc := range allocations {
		catName, err := a.categoryName(tx, alloc.CategoryKey, alloc.Amount)
		if err != nil {
			return LedgerTransaction{}, err
		}
		postings = append(postings, Posting{
			Account: catName,
			Amount:  M(alloc.Amount, iso).Neg(),
			Comment: alloc.Memo,
		})
	}
	if payee != "" {
		pName, err := a.payeeName(payee, tx.Amount)
		if err != nil {
			return LedgerTransaction{}, err
		}
		postings = append(postings,
			Posting{Account: pName, Amount: amount},
			Posting{Account: pName, Amount: amount.Neg()},
		)
	}
	postings = append(postings, Posting{Account: accName, Amount: amount})

	return LedgerTransaction{
		Date:     tx.Date,
		Mark:     tx.Status.Mark(),
		Payee:    payee,
		Note:     note(tx),
		Postings: postings,
	}, nil
}

// buildTransfer converts the canonical representative of a transfer pair
// into a single two-posting transaction: source account debited/credited,
// destination account reciprocally.
func (a *assembler) buildTransfer(tx Transaction) (LedgerTransaction, error) {
	srcName, err := a.accountName(tx, tx.AccountKey)
	if err != nil {
		return LedgerTransaction{}, err
	}
	dstName, err := a.accountName(tx, tx.DstAccountKey)
	if err != nil {
		return LedgerTransaction{}, err
	}
	payee, err := a.payeeLabel(tx)
	if err != nil {
		return LedgerTransaction{}, err
	}
	if payee == "" {
		payee = a.opts.TransferPayee
	}

	// Both legs settle in the source account's currency; cross-currency
	// conversion is out of scope.
	amount := M(tx.Amount, a.doc.CurrencyISO(tx.AccountKey))
	return LedgerTransaction{
		Date:  tx.Date,
		Mark:  tx.Status.Mark(),
		Payee: payee,
		Note:  note(tx),
		Postings: []Posting{
			{Account: srcName, Amount: amount},
			{Account: dstName, Amount: amount.Neg()},
		},
	}, nil
}

// buildOpening synthesizes the opening-balance transaction of a year: one
// posting per account with a non-zero carried balance, ordered by canonical
// account name, plus an inferred posting to the equity account. It reports
// ok=false when every balance is zero.
func (a *assembler) buildOpening(year int, balances map[int]decimal.Decimal, baseISO string) (LedgerTransaction, bool, error) {
	type carried struct {
		name    string
		key     int
		balance decimal.Decimal
	}
	var accounts []carried
	for key, balance := range balances {
		if balance.IsZero() {
			continue
		}
		acc, ok := a.doc.Accounts[key]
		if !ok {
			continue
		}
		name, err := a.namer.AccountName(acc)
		if err != nil {
			return LedgerTransaction{}, false, err
		}
		a.declare(name, TypeTag(acc.Type), acc.Closed())
		accounts = append(accounts, carried{name: name, key: key, balance: balance})
	}
	if len(accounts) == 0 {
		return LedgerTransaction{}, false, nil
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].name != accounts[j].name {
			return accounts[i].name < accounts[j].name
		}
		return accounts[i].key < accounts[j].key
	})

	postings := make([]Posting, 0, len(accounts)+1)
	for _, c := range accounts {
		iso := a.doc.CurrencyISO(c.key)
		postings = append(postings, Posting{Account: c.name, Amount: M(c.balance, iso)})
	}
	equity := a.declare(a.namer.EquityName(), "E", false)
	postings = append(postings, Posting{Account: equity, Amount: M(decimal.Zero, baseISO), Inferred: true})

	return LedgerTransaction{
		Date:     date.New(year, time.January, 1),
		Mark:     StatusReconciled.Mark(),
		Payee:    a.opts.OpeningPayee,
		Note:     strconv.Itoa(year),
		Postings: postings,
	}, true, nil
}
