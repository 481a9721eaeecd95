package ledgerconv

import (
	"strings"
	"testing"
)

// transferTx builds one leg of an internal transfer.
func transferTx(on, amount string, account, dst, id int) Transaction {
	leg := tx(on, amount, account)
	leg.Transfer = id
	leg.DstAccountKey = dst
	return leg
}

func TestResolveTransfersPair(t *testing.T) {
	txs := []Transaction{
		transferTx("2024-01-10", "-50.00", 1, 2, 7),
		tx("2024-01-11", "-5.00", 1),
		transferTx("2024-01-10", "50.00", 2, 1, 7),
	}

	set := ResolveTransfers(txs)

	if !set.Resolved(0) {
		t.Error("first leg should be the canonical representative")
	}
	if !set.Consumed(2) {
		t.Error("second leg should be consumed")
	}
	if set.Resolved(2) || set.Consumed(0) || set.Consumed(1) {
		t.Error("unexpected classification of other positions")
	}
	if len(set.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", set.Warnings())
	}
}

func TestResolveTransfersOrphan(t *testing.T) {
	txs := []Transaction{
		transferTx("2024-01-10", "-50.00", 1, 2, 7),
	}

	set := ResolveTransfers(txs)

	if set.Resolved(0) || set.Consumed(0) {
		t.Error("orphaned transfer must convert as an ordinary transaction")
	}
	warnings := set.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if !strings.Contains(warnings[0].Msg, "orphaned") {
		t.Errorf("warning = %q", warnings[0].Msg)
	}
}

func TestResolveTransfersExcess(t *testing.T) {
	txs := []Transaction{
		transferTx("2024-01-10", "-50.00", 1, 2, 7),
		transferTx("2024-01-10", "50.00", 2, 1, 7),
		transferTx("2024-01-12", "-50.00", 1, 2, 7), // data corruption: third sharer
	}

	set := ResolveTransfers(txs)

	if !set.Resolved(0) || !set.Consumed(1) {
		t.Error("first two sharers should form the pair")
	}
	if set.Resolved(2) || set.Consumed(2) {
		t.Error("excess sharer must convert as an ordinary transaction")
	}
	warnings := set.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Pos != 2 || !strings.Contains(warnings[0].Msg, "more than two") {
		t.Errorf("warning = %+v", warnings[0])
	}
}

func TestResolveTransfersWarningsInStreamOrder(t *testing.T) {
	txs := []Transaction{
		transferTx("2024-01-05", "-20.00", 1, 2, 9), // orphan
		transferTx("2024-01-10", "-50.00", 1, 2, 7),
		transferTx("2024-01-10", "50.00", 2, 1, 7),
		transferTx("2024-01-12", "-50.00", 1, 2, 7), // third sharer
	}

	set := ResolveTransfers(txs)

	warnings := set.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(warnings))
	}
	// The orphan comes first in the stream and must come first in the report,
	// even though excess sharers are detected in an earlier pass.
	if warnings[0].Pos != 0 || !strings.Contains(warnings[0].Msg, "orphaned") {
		t.Errorf("warnings[0] = %+v", warnings[0])
	}
	if warnings[1].Pos != 3 || !strings.Contains(warnings[1].Msg, "more than two") {
		t.Errorf("warnings[1] = %+v", warnings[1])
	}
}

func TestResolveTransfersIndependentPairs(t *testing.T) {
	txs := []Transaction{
		transferTx("2024-01-10", "-50.00", 1, 2, 7),
		transferTx("2024-02-01", "-10.00", 2, 3, 8),
		transferTx("2024-01-10", "50.00", 2, 1, 7),
		transferTx("2024-02-01", "10.00", 3, 2, 8),
	}

	set := ResolveTransfers(txs)

	if !set.Resolved(0) || !set.Resolved(1) {
		t.Error("each identifier should resolve to its own representative")
	}
	if !set.Consumed(2) || !set.Consumed(3) {
		t.Error("each duplicate side should be consumed")
	}
}
