package ledgerconv

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hbtools/ledgerconv/date"
)

func TestFormatAmount(t *testing.T) {
	f := NewAmountFormatter(testDocument())
	testCases := []struct {
		amount string
		iso    string
		want   string
	}{
		{"1234.56", "EUR", "1.234,56 EUR"},
		{"-1234.56", "EUR", "-1.234,56 EUR"},
		{"0.5", "EUR", "0,50 EUR"},
		{"0", "EUR", "0,00 EUR"},
		{"1234567.89", "EUR", "1.234.567,89 EUR"},
		{"1234.56", "USD", "1,234.56 USD"},
		// JPY is not declared in the document; the fraction comes from the
		// currency metadata and the separators fall back to the defaults.
		{"1000", "JPY", "1,000 JPY"},
	}
	for _, tc := range testCases {
		if got := f.Format(M(dec(tc.amount), tc.iso)); got != tc.want {
			t.Errorf("Format(%s %s) = %q, want %q", tc.amount, tc.iso, got, tc.want)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	testCases := []struct {
		digits, gchar, want string
	}{
		{"0", ".", "0"},
		{"123", ".", "123"},
		{"1234", ".", "1.234"},
		{"123456", ".", "123.456"},
		{"1234567", ".", "1.234.567"},
		{"1234567", "", "1234567"},
	}
	for _, tc := range testCases {
		if got := groupDigits(tc.digits, tc.gchar); got != tc.want {
			t.Errorf("groupDigits(%q, %q) = %q, want %q", tc.digits, tc.gchar, got, tc.want)
		}
	}
}

func TestDecimalMark(t *testing.T) {
	f := NewAmountFormatter(testDocument())
	if got := f.DecimalMark("EUR"); got != "," {
		t.Errorf("DecimalMark(EUR) = %q, want ,", got)
	}
	if got := f.DecimalMark("JPY"); got != "." {
		t.Errorf("DecimalMark(JPY) = %q, want .", got)
	}
}

func TestEncodeJournal(t *testing.T) {
	y := YearLedger{
		Year:     2024,
		Currency: "EUR",
		Accounts: []AccountDecl{
			{Name: "Assets:Bank:Checking", TypeTag: "C"},
			{Name: "Liabilities:CreditCard:Visa", TypeTag: "L", Closed: true},
			{Name: "Expense:Household", TypeTag: "X"},
		},
		Payees: []string{"Market"},
		Transactions: []LedgerTransaction{
			{
				Date:  date.MustParse("2024-01-01"),
				Mark:  "*",
				Payee: "Opening Balances",
				Note:  "2024",
				Postings: []Posting{
					{Account: "Assets:Bank:Checking", Amount: M(dec("1234.56"), "EUR")},
					{Account: "Equity:Opening Balances", Inferred: true},
				},
			},
			{
				Date:  date.MustParse("2024-03-05"),
				Mark:  "!",
				Payee: "Market",
				Note:  "weekly shopping",
				Postings: []Posting{
					{Account: "Expense:Household", Amount: M(dec("50.00"), "EUR"), Comment: "soap"},
					{Account: "Assets:Bank:Checking", Amount: M(dec("-50.00"), "EUR")},
				},
			},
		},
	}

	var sb strings.Builder
	if err := EncodeJournal(&sb, y, NewAmountFormatter(testDocument())); err != nil {
		t.Fatalf("EncodeJournal: %v", err)
	}

	decl := func(name, tags string) string { return fmt.Sprintf("account %-55s ; type: %s\n", name, tags) }
	posting := func(name, amount string) string { return fmt.Sprintf("    %-48s  %s", name, amount) }
	want := "; ============================================================\n" +
		"; hledger journal 2024\n" +
		"; generated by ledgerconv\n" +
		"; ============================================================\n" +
		"\n" +
		"decimal-mark ,\n" +
		"commodity 1.000,00 EUR\n" +
		"\n" +
		"; --- account declarations ---\n" +
		decl("Assets:Bank:Checking", "C") +
		decl("Liabilities:CreditCard:Visa", "L, closed: true") +
		decl("Expense:Household", "X") +
		"\n" +
		"; --- payees ---\n" +
		"payee Market\n" +
		"\n" +
		"; --- transactions ---\n" +
		"2024-01-01 * Opening Balances | 2024\n" +
		posting("Assets:Bank:Checking", "1.234,56 EUR") + "\n" +
		"    Equity:Opening Balances\n" +
		"\n" +
		"2024-03-05 ! Market | weekly shopping\n" +
		posting("Expense:Household", "50,00 EUR") + "  ; soap\n" +
		posting("Assets:Bank:Checking", "-50,00 EUR") + "\n" +
		"\n"
	if got := sb.String(); got != want {
		t.Errorf("journal mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeJournalNoDescription(t *testing.T) {
	y := YearLedger{
		Year: 2024,
		Transactions: []LedgerTransaction{
			{
				Date: date.MustParse("2024-06-01"),
				Postings: []Posting{
					{Account: "Expense:Uncategorized", Amount: M(dec("5.00"), "EUR")},
					{Account: "Assets:Bank:Checking", Amount: M(dec("-5.00"), "EUR")},
				},
			},
		},
	}
	var sb strings.Builder
	if err := EncodeJournal(&sb, y, NewAmountFormatter(testDocument())); err != nil {
		t.Fatalf("EncodeJournal: %v", err)
	}
	if !strings.Contains(sb.String(), "2024-06-01 (no description)\n") {
		t.Errorf("missing placeholder description:\n%s", sb.String())
	}
	if strings.Contains(sb.String(), "decimal-mark") {
		t.Error("journal without base currency must not emit commodity directives")
	}
}

func TestEncodeIndex(t *testing.T) {
	var sb strings.Builder
	if err := EncodeIndex(&sb, []int{2023, 2024, 2026}); err != nil {
		t.Fatalf("EncodeIndex: %v", err)
	}
	want := "; ============================================================\n" +
		"; hledger main journal\n" +
		"; every year journal is pulled in through include directives.\n" +
		"; ============================================================\n" +
		"\n" +
		"include 2023.journal\n" +
		"include 2024.journal\n" +
		"include 2026.journal\n"
	if got := sb.String(); got != want {
		t.Errorf("index mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
