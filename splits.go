package ledgerconv

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Allocation is one discrete category allocation of a transaction.
type Allocation struct {
	CategoryKey int // 0 = none
	Amount      decimal.Decimal
	Memo        string
}

// splitSep separates entries of the composite split encoding.
const splitSep = "||"

// ExpandSplits expands a transaction's composite split encoding into its
// ordered sequence of allocations. Output order equals the encoded order.
//
// For a non-split transaction it returns the single allocation inherited
// from the transaction itself. It fails when the encoding's parallel lists
// (categories, amounts, memos) have mismatched lengths, or when an encoded
// amount is not a valid decimal.
func ExpandSplits(tx Transaction) ([]Allocation, error) {
	if !tx.Split() {
		return []Allocation{{CategoryKey: tx.CategoryKey, Amount: tx.Amount}}, nil
	}
	if tx.SplitCategories == "" && tx.SplitAmounts == "" {
		return nil, convErr(tx, "split transaction has no split entries")
	}

	cats := strings.Split(tx.SplitCategories, splitSep)
	amts := strings.Split(tx.SplitAmounts, splitSep)
	if len(cats) != len(amts) {
		return nil, convErr(tx, "inconsistent split encoding: %d categories but %d amounts", len(cats), len(amts))
	}

	var memos []string
	if tx.SplitMemos != "" {
		memos = strings.Split(tx.SplitMemos, splitSep)
		if len(memos) != len(cats) {
			return nil, convErr(tx, "inconsistent split encoding: %d categories but %d memos", len(cats), len(memos))
		}
	} else {
		memos = make([]string, len(cats))
	}

	allocations := make([]Allocation, 0, len(cats))
	for i := range cats {
		var key int
		if s := strings.TrimSpace(cats[i]); s != "" {
			k, err := strconv.Atoi(s)
			if err != nil {
				return nil, convErr(tx, "invalid split category key %q", cats[i])
			}
			key = k
		}
		amount, err := decimal.NewFromString(amts[i])
		if err != nil {
			return nil, convErr(tx, "invalid split amount %q", amts[i])
		}
		allocations = append(allocations, Allocation{CategoryKey: key, Amount: amount, Memo: memos[i]})
	}
	return allocations, nil
}
