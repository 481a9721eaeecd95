package ledgerconv

import "sort"

// TransferSet is the result of resolving transfer pairs over the full
// transaction stream. Consumed positions and pair representatives are kept
// as explicit sets threaded through the pipeline; source records are never
// flagged in place.
type TransferSet struct {
	// resolved maps the position of each pair's canonical representative to
	// the position of its suppressed duplicate.
	resolved map[int]int
	// consumed holds the positions of suppressed duplicates.
	consumed map[int]struct{}
	warnings []Warning
}

// Resolved reports whether the transaction at position i is the canonical
// representative of a transfer pair.
func (s TransferSet) Resolved(i int) bool {
	_, ok := s.resolved[i]
	return ok
}

// Consumed reports whether the transaction at position i is the suppressed
// duplicate side of a transfer pair.
func (s TransferSet) Consumed(i int) bool {
	_, ok := s.consumed[i]
	return ok
}

// Warnings returns the data-integrity anomalies found while pairing.
func (s TransferSet) Warnings() []Warning { return s.warnings }

// ResolveTransfers scans the ordered transaction stream and pairs records
// sharing a non-zero transfer identifier.
//
// For each identifier, the first occurrence (in stable original order) is
// kept as the canonical representative of the pair and the second is marked
// consumed. An identifier appearing on a single transaction is a recoverable
// degradation: the record converts as an ordinary transaction. Occurrences
// beyond the second are reported as warnings and also convert ordinarily.
func ResolveTransfers(txs []Transaction) TransferSet {
	set := TransferSet{
		resolved: make(map[int]int),
		consumed: make(map[int]struct{}),
	}

	// first maps a transfer identifier to the position of its representative
	// until a pair is completed.
	first := make(map[int]int)
	paired := make(map[int]struct{})

	for i, tx := range txs {
		if !tx.InternalTransfer() {
			continue
		}
		id := tx.Transfer
		if _, done := paired[id]; done {
			set.warnings = append(set.warnings, Warning{
				Pos:  i,
				Date: tx.Date,
				Msg:  "transfer identifier shared by more than two records; converting as ordinary transaction",
			})
			continue
		}
		if rep, seen := first[id]; seen {
			set.resolved[rep] = i
			set.consumed[i] = struct{}{}
			paired[id] = struct{}{}
			delete(first, id)
			continue
		}
		first[id] = i
	}

	// Identifiers left unpaired degrade to ordinary transactions.
	for i, tx := range txs {
		if pos, ok := first[tx.Transfer]; ok && pos == i {
			set.warnings = append(set.warnings, Warning{
				Pos:  i,
				Date: tx.Date,
				Msg:  "orphaned transfer identifier; converting as ordinary transaction",
			})
		}
	}

	// Orphans are found in a second pass; merge them back into stream order.
	sort.Slice(set.warnings, func(i, j int) bool {
		return set.warnings[i].Pos < set.warnings[j].Pos
	})

	return set
}
