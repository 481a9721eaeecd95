// Package ledgerconv converts HomeBank (.xhb) accounting data into hledger
// journals, one per calendar year, chained by synthesized opening-balance
// entries.
//
// The core functionalities include:
//   - Account Naming: mapping HomeBank accounts, categories and payees to
//     canonical hierarchical hledger account names.
//   - Split Expansion: decoding HomeBank's composite split encoding into
//     discrete category allocations.
//   - Transfer Resolution: collapsing internal transfer pairs into a single
//     two-posting ledger transaction, suppressing the duplicate side.
//   - Balance Tracking: computing running account balances at any cut-off
//     date, used to synthesize each year's opening entry.
//   - Ledger Assembly: classifying every transaction, producing balanced
//     postings, grouping by calendar year and emitting deterministic,
//     diffable output.
//
// All monetary amounts are exact decimals; binary floating point is never
// used for balances. Given identical input the produced journals are
// byte-for-byte reproducible.
//
// This package serves as the foundational logic for the `ledgerconv`
// command-line tool.
package ledgerconv
