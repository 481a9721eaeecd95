package ledgerconv

import (
	"github.com/shopspring/decimal"

	"github.com/hbtools/ledgerconv/date"
)

// BalancesAsOf computes the running balance of every account at a cut-off
// date, keyed by account key.
//
// It is a pure fold: starting from each account's initial balance, it adds
// the signed amount of every non-consumed transaction dated strictly before
// cutoff to the account the transaction references. For the canonical
// representative of a transfer pair the reciprocal (negated) amount is also
// applied to the destination account; the suppressed duplicate already
// carried that movement in the source data and is skipped entirely.
//
// Repeated calls are independent: no state is shared or mutated across
// invocations, so the computation at every year boundary is individually
// verifiable.
func BalancesAsOf(doc *Document, transfers TransferSet, cutoff date.Date) map[int]decimal.Decimal {
	balances := make(map[int]decimal.Decimal, len(doc.Accounts))
	for key, acc := range doc.Accounts {
		balances[key] = acc.InitialBalance
	}

	for i, tx := range doc.Transactions {
		if transfers.Consumed(i) {
			continue
		}
		if !tx.Date.Before(cutoff) {
			continue
		}
		balances[tx.AccountKey] = balances[tx.AccountKey].Add(tx.Amount)
		if transfers.Resolved(i) {
			balances[tx.DstAccountKey] = balances[tx.DstAccountKey].Sub(tx.Amount)
		}
	}
	return balances
}
