package ledgerconv

import (
	"fmt"

	"github.com/hbtools/ledgerconv/date"
)

// NamingError reports an account identity that cannot be resolved into a
// canonical name, i.e. a raw name that is empty after sanitization.
type NamingError struct {
	Kind string // "account", "category" or "payee"
	Raw  string // the offending raw name
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("cannot name %s from %q: empty after sanitization", e.Kind, e.Raw)
}

// ConversionError reports a transaction that cannot be soundly converted:
// a malformed split encoding, a dangling record key, or a posting set that
// violates the double-entry invariant.
type ConversionError struct {
	Date       date.Date // date of the offending transaction
	AccountKey int       // owning account of the offending transaction
	Reason     string
	Err        error // optional underlying cause
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert transaction on %s (account %d): %s", e.Date, e.AccountKey, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// convErr builds a ConversionError for a transaction.
func convErr(tx Transaction, format string, args ...any) *ConversionError {
	return &ConversionError{Date: tx.Date, AccountKey: tx.AccountKey, Reason: fmt.Sprintf(format, args...)}
}

// DecodeError reports a structurally invalid source document.
type DecodeError struct {
	Element string // the XML element being decoded
	Reason  string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("invalid <%s> element: %s", e.Element, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Warning is a data-integrity anomaly that degrades gracefully instead of
// aborting the conversion (orphaned transfer identifiers, transfer
// identifiers shared by more than two records).
type Warning struct {
	Pos  int // position of the record in the source transaction stream
	Date date.Date
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (record %d): %s", w.Date, w.Pos, w.Msg)
}
