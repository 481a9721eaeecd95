package ledgerconv

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const postingIndent = "    " // 4-space indentation for posting lines

// AmountFormatter renders exact amounts in the textual style of their
// currency: the decimal and grouping characters declared in the source
// document, with go-money currency metadata as fallback for the fraction of
// currencies the document does not declare.
type AmountFormatter struct {
	currencies map[string]Currency // indexed by ISO code
}

// NewAmountFormatter builds a formatter from the currencies declared in the
// document.
func NewAmountFormatter(doc *Document) AmountFormatter {
	f := AmountFormatter{currencies: make(map[string]Currency)}
	for _, c := range doc.Currencies {
		if c.ISO != "" {
			f.currencies[c.ISO] = c
		}
	}
	return f
}

// Format renders the amount followed by its currency code, e.g. "1.234,56 EUR".
func (f AmountFormatter) Format(m Money) string {
	fraction := m.Fraction()
	dchar, gchar := ".", ","
	if c, ok := f.currencies[m.Currency()]; ok {
		fraction = c.Fraction
		dchar, gchar = c.DecimalChar, c.GroupChar
	}

	d := m.Decimal().Round(int32(fraction))
	neg := d.IsNegative()
	raw := d.Abs().StringFixed(int32(fraction))

	intPart, fracPart, _ := strings.Cut(raw, ".")
	out := groupDigits(intPart, gchar)
	if fraction > 0 {
		out += dchar + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out + " " + m.Currency()
}

// groupDigits inserts the grouping character every three digits: "1234567" → "1.234.567".
func groupDigits(digits, gchar string) string {
	if len(digits) <= 3 || gchar == "" {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(gchar)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// DecimalMark returns the decimal mark of the given currency, for the
// journal's decimal-mark directive.
func (f AmountFormatter) DecimalMark(iso string) string {
	if c, ok := f.currencies[iso]; ok {
		return c.DecimalChar
	}
	return "."
}

// EncodeJournal writes one year's journal as hledger text.
func EncodeJournal(w io.Writer, y YearLedger, f AmountFormatter) error {
	var b strings.Builder

	b.WriteString("; ============================================================\n")
	fmt.Fprintf(&b, "; hledger journal %d\n", y.Year)
	b.WriteString("; generated by ledgerconv\n")
	b.WriteString("; ============================================================\n\n")

	if y.Currency != "" {
		fmt.Fprintf(&b, "decimal-mark %s\n", f.DecimalMark(y.Currency))
		fmt.Fprintf(&b, "commodity %s\n\n", f.Format(M(decimal.NewFromInt(1000), y.Currency)))
	}

	if len(y.Accounts) > 0 {
		b.WriteString("; --- account declarations ---\n")
		for _, decl := range y.Accounts {
			// A second ';' would make hledger parse the type code as part of
			// the previous tag, so closure is a comma tag on the same comment.
			if decl.Closed {
				fmt.Fprintf(&b, "account %-55s ; type: %s, closed: true\n", decl.Name, decl.TypeTag)
			} else {
				fmt.Fprintf(&b, "account %-55s ; type: %s\n", decl.Name, decl.TypeTag)
			}
		}
		b.WriteString("\n")
	}

	if len(y.Payees) > 0 {
		b.WriteString("; --- payees ---\n")
		for _, p := range y.Payees {
			fmt.Fprintf(&b, "payee %s\n", Sanitize(p))
		}
		b.WriteString("\n")
	}

	if len(y.Transactions) > 0 {
		b.WriteString("; --- transactions ---\n")
		for _, tx := range y.Transactions {
			encodeTransaction(&b, tx, f)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func encodeTransaction(b *strings.Builder, tx LedgerTransaction, f AmountFormatter) {
	desc := tx.Payee
	switch {
	case tx.Payee != "" && tx.Note != "":
		desc = tx.Payee + " | " + tx.Note
	case tx.Note != "":
		desc = tx.Note
	case tx.Payee == "":
		desc = "(no description)"
	}

	b.WriteString(tx.Date.String())
	if tx.Mark != "" {
		b.WriteString(" " + tx.Mark)
	}
	b.WriteString(" " + desc)
	if tx.Comment != "" {
		b.WriteString("  ; " + tx.Comment)
	}
	b.WriteString("\n")

	for _, p := range tx.Postings {
		line := postingIndent + p.Account
		if !p.Inferred {
			line = fmt.Sprintf("%s%-48s  %s", postingIndent, p.Account, f.Format(p.Amount))
		}
		if p.Comment != "" {
			line += "  ; " + p.Comment
		}
		b.WriteString(line + "\n")
	}
}

// EncodeIndex writes the top-level journal that includes every year file in
// ascending order.
func EncodeIndex(w io.Writer, index []int) error {
	var b strings.Builder
	b.WriteString("; ============================================================\n")
	b.WriteString("; hledger main journal\n")
	b.WriteString("; every year journal is pulled in through include directives.\n")
	b.WriteString("; ============================================================\n\n")
	for _, year := range index {
		fmt.Fprintf(&b, "include %d.journal\n", year)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
