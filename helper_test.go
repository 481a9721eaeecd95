package ledgerconv

import (
	"github.com/shopspring/decimal"

	"github.com/hbtools/ledgerconv/date"
)

// dec parses an exact decimal literal, panicking on malformed test data.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testDocument builds a small but representative document: two currencies,
// three accounts, two payees and a category tree with an income category.
func testDocument() *Document {
	doc := NewDocument()
	doc.BaseCurrencyKey = 1
	doc.Currencies[1] = Currency{Key: 1, ISO: "EUR", DecimalChar: ",", GroupChar: ".", Fraction: 2}
	doc.Currencies[2] = Currency{Key: 2, ISO: "USD", DecimalChar: ".", GroupChar: ",", Fraction: 2}

	doc.Accounts[1] = Account{Key: 1, Name: "Checking", Type: AccountBank, CurrencyKey: 1, InitialBalance: dec("1000.00")}
	doc.Accounts[2] = Account{Key: 2, Name: "Nest Egg", Type: AccountSavings, CurrencyKey: 1}
	doc.Accounts[3] = Account{Key: 3, Name: "Visa", Type: AccountCreditCard, CurrencyKey: 1, Flags: afClosed}

	doc.Payees[1] = Payee{Key: 1, Name: "Market"}
	doc.Payees[2] = Payee{Key: 2, Name: "Employer"}

	doc.Categories[1] = Category{Key: 1, Name: "Groceries", ParentKey: 4, Flags: gfSub}
	doc.Categories[2] = Category{Key: 2, Name: "Household"}
	doc.Categories[3] = Category{Key: 3, Name: "Salary", Flags: gfIncome}
	doc.Categories[4] = Category{Key: 4, Name: "Food"}
	return doc
}

// tx is a shorthand transaction constructor for tests.
func tx(on string, amount string, accountKey int) Transaction {
	return Transaction{
		Date:       date.MustParse(on),
		Amount:     dec(amount),
		AccountKey: accountKey,
	}
}
