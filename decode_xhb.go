package ledgerconv

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hbtools/ledgerconv/date"
)

// Raw XML shapes of a HomeBank document. Amounts are decoded as strings and
// converted through decimal.NewFromString so values never round-trip through
// binary floats.
type xhbDoc struct {
	XMLName    xml.Name `xml:"homebank"`
	Properties *struct {
		Curr int `xml:"curr,attr"`
	} `xml:"properties"`
	Currencies []xhbCurrency  `xml:"cur"`
	Groups     []xhbGroup     `xml:"grp"`
	Accounts   []xhbAccount   `xml:"account"`
	Payees     []xhbPayee     `xml:"pay"`
	Categories []xhbCategory  `xml:"cat"`
	Operations []xhbOperation `xml:"ope"`
}

type xhbCurrency struct {
	Key      int    `xml:"key,attr"`
	ISO      string `xml:"iso,attr"`
	Name     string `xml:"name,attr"`
	Symbol   string `xml:"symb,attr"`
	DChar    string `xml:"dchar,attr"`
	GChar    string `xml:"gchar,attr"`
	Fraction *int   `xml:"frac,attr"`
	Rate     string `xml:"rate,attr"`
}

type xhbGroup struct {
	Key  int    `xml:"key,attr"`
	Name string `xml:"name,attr"`
}

type xhbAccount struct {
	Key      int    `xml:"key,attr"`
	Name     string `xml:"name,attr"`
	Type     int    `xml:"type,attr"`
	Currency int    `xml:"curr,attr"`
	Initial  string `xml:"initial,attr"`
	Flags    int    `xml:"flags,attr"`
	Number   string `xml:"number,attr"`
	BankName string `xml:"bankname,attr"`
	Notes    string `xml:"notes,attr"`
	Group    int    `xml:"grp,attr"`
}

type xhbPayee struct {
	Key      int    `xml:"key,attr"`
	Name     string `xml:"name,attr"`
	Category int    `xml:"category,attr"`
	Paymode  int    `xml:"paymode,attr"`
}

type xhbCategory struct {
	Key    int    `xml:"key,attr"`
	Name   string `xml:"name,attr"`
	Flags  int    `xml:"flags,attr"`
	Parent int    `xml:"parent,attr"`
}

type xhbOperation struct {
	Date       *int   `xml:"date,attr"`
	Amount     string `xml:"amount,attr"`
	Account    int    `xml:"account,attr"`
	Flags      int    `xml:"flags,attr"`
	Status     int    `xml:"st,attr"`
	Paymode    int    `xml:"paymode,attr"`
	Payee      int    `xml:"payee,attr"`
	Category   int    `xml:"category,attr"`
	Wording    string `xml:"wording,attr"`
	Info       string `xml:"info,attr"`
	Tags       string `xml:"tags,attr"`
	Kxfer      int    `xml:"kxfer,attr"`
	DstAccount int    `xml:"dst_account,attr"`
	SCat       string `xml:"scat,attr"`
	SAmt       string `xml:"samt,attr"`
	SMem       string `xml:"smem,attr"`
}

// decodeDecimal parses an amount attribute exactly. Absent attributes decode
// to zero.
func decodeDecimal(element, attr, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &DecodeError{Element: element, Reason: fmt.Sprintf("invalid decimal %q for attribute %q", raw, attr), Err: err}
	}
	return d, nil
}

// DecodeDocument reads a HomeBank XHB document from r into a normalized
// Document. Transactions are sorted chronologically (stable with respect to
// file order) so all downstream processing sees a chronological stream.
func DecodeDocument(r io.Reader) (*Document, error) {
	var raw xhbDoc
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Element: "homebank", Reason: "malformed XML", Err: err}
	}
	if raw.Properties == nil {
		return nil, &DecodeError{Element: "properties", Reason: "required element is missing"}
	}

	doc := NewDocument()
	doc.BaseCurrencyKey = raw.Properties.Curr
	if doc.BaseCurrencyKey == 0 {
		doc.BaseCurrencyKey = 1
	}

	for _, c := range raw.Currencies {
		if c.Key == 0 {
			return nil, &DecodeError{Element: "cur", Reason: "currency with key=0 is invalid"}
		}
		rate, err := decodeDecimal("cur", "rate", c.Rate)
		if err != nil {
			return nil, err
		}
		fraction := 2
		if c.Fraction != nil {
			fraction = *c.Fraction
		}
		dchar, gchar := c.DChar, c.GChar
		if dchar == "" {
			dchar = "."
		}
		if gchar == "" {
			gchar = ","
		}
		doc.Currencies[c.Key] = Currency{
			Key:         c.Key,
			ISO:         c.ISO,
			Name:        c.Name,
			Symbol:      c.Symbol,
			DecimalChar: dchar,
			GroupChar:   gchar,
			Fraction:    fraction,
			Rate:        rate,
		}
	}

	for _, g := range raw.Groups {
		doc.Groups[g.Key] = Group{Key: g.Key, Name: g.Name}
	}

	for _, a := range raw.Accounts {
		if a.Key == 0 {
			return nil, &DecodeError{Element: "account", Reason: "account with key=0 is invalid"}
		}
		initial, err := decodeDecimal("account", "initial", a.Initial)
		if err != nil {
			return nil, err
		}
		doc.Accounts[a.Key] = Account{
			Key:            a.Key,
			Name:           a.Name,
			Type:           AccountType(a.Type),
			CurrencyKey:    a.Currency,
			InitialBalance: initial,
			Flags:          a.Flags,
			Number:         a.Number,
			BankName:       a.BankName,
			Notes:          a.Notes,
			GroupKey:       a.Group,
		}
	}

	for _, p := range raw.Payees {
		doc.Payees[p.Key] = Payee{
			Key:                p.Key,
			Name:               p.Name,
			DefaultCategoryKey: p.Category,
			DefaultPaymode:     p.Paymode,
		}
	}

	for _, c := range raw.Categories {
		doc.Categories[c.Key] = Category{Key: c.Key, Name: c.Name, Flags: c.Flags, ParentKey: c.Parent}
	}

	for _, op := range raw.Operations {
		if op.Date == nil {
			return nil, &DecodeError{Element: "ope", Reason: "required attribute 'date' is missing"}
		}
		on, err := date.FromJulian(*op.Date)
		if err != nil {
			return nil, &DecodeError{Element: "ope", Reason: "invalid date", Err: err}
		}
		amount, err := decodeDecimal("ope", "amount", op.Amount)
		if err != nil {
			return nil, err
		}
		var tags []string
		for _, t := range strings.Split(op.Tags, " ") {
			if t != "" {
				tags = append(tags, t)
			}
		}
		doc.Transactions = append(doc.Transactions, Transaction{
			Date:            on,
			Amount:          amount,
			AccountKey:      op.Account,
			Flags:           op.Flags,
			Status:          Status(op.Status),
			Paymode:         op.Paymode,
			PayeeKey:        op.Payee,
			CategoryKey:     op.Category,
			Wording:         op.Wording,
			Info:            op.Info,
			Tags:            tags,
			Transfer:        op.Kxfer,
			DstAccountKey:   op.DstAccount,
			SplitCategories: op.SCat,
			SplitAmounts:    op.SAmt,
			SplitMemos:      op.SMem,
		})
	}

	sort.SliceStable(doc.Transactions, func(i, j int) bool {
		return doc.Transactions[i].Date.Before(doc.Transactions[j].Date)
	})

	return doc, nil
}
