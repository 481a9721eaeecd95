package ledgerconv

import (
	"testing"

	"github.com/hbtools/ledgerconv/date"
)

func TestBalancesAsOfInitialOnly(t *testing.T) {
	doc := testDocument()
	doc.Transactions = []Transaction{tx("2024-06-01", "-50.00", 1)}

	balances := BalancesAsOf(doc, ResolveTransfers(doc.Transactions), date.MustParse("2024-01-01"))

	if got := balances[1]; !got.Equal(dec("1000.00")) {
		t.Errorf("balance before any transaction = %s, want 1000.00", got)
	}
	if got := balances[2]; !got.IsZero() {
		t.Errorf("untouched account balance = %s, want 0", got)
	}
}

func TestBalancesAsOfStrictlyBefore(t *testing.T) {
	doc := testDocument()
	doc.Transactions = []Transaction{
		tx("2023-12-31", "-100.00", 1),
		tx("2024-01-01", "-999.00", 1), // on the cut-off date: excluded
	}
	transfers := ResolveTransfers(doc.Transactions)

	balances := BalancesAsOf(doc, transfers, date.MustParse("2024-01-01"))

	if got := balances[1]; !got.Equal(dec("900.00")) {
		t.Errorf("balance = %s, want 900.00 (cut-off date transaction must be excluded)", got)
	}
}

func TestBalancesAsOfTransferReciprocal(t *testing.T) {
	doc := testDocument()
	doc.Transactions = []Transaction{
		transferTx("2023-05-01", "-200.00", 1, 2, 9),
		transferTx("2023-05-01", "200.00", 2, 1, 9),
	}
	transfers := ResolveTransfers(doc.Transactions)

	balances := BalancesAsOf(doc, transfers, date.MustParse("2024-01-01"))

	if got := balances[1]; !got.Equal(dec("800.00")) {
		t.Errorf("source balance = %s, want 800.00", got)
	}
	if got := balances[2]; !got.Equal(dec("200.00")) {
		t.Errorf("destination balance = %s, want 200.00", got)
	}
}

func TestBalancesAsOfIsPure(t *testing.T) {
	doc := testDocument()
	doc.Transactions = []Transaction{
		tx("2023-03-01", "-10.00", 1),
		tx("2023-09-01", "-20.00", 1),
	}
	transfers := ResolveTransfers(doc.Transactions)
	cutoff := date.MustParse("2024-01-01")

	first := BalancesAsOf(doc, transfers, cutoff)
	second := BalancesAsOf(doc, transfers, cutoff)

	for key := range first {
		if !first[key].Equal(second[key]) {
			t.Errorf("account %d: repeated calls disagree: %s vs %s", key, first[key], second[key])
		}
	}
	if got := first[1]; !got.Equal(dec("970.00")) {
		t.Errorf("balance = %s, want 970.00", got)
	}
}
