package ledgerconv

import (
	"errors"
	"fmt"
	"sort"
)

// ValidateDocument checks the referential integrity of a decoded document and
// returns an error joining every failure found, so a broken file is reported
// in one pass instead of one conversion error at a time.
//
// Key references used by individual transactions (account, category, payee)
// are checked during conversion; this pass covers the document metadata that
// conversion takes for granted.
func ValidateDocument(doc *Document) error {
	var errs []error

	if _, ok := doc.Currencies[doc.BaseCurrencyKey]; !ok {
		errs = append(errs, fmt.Errorf("base currency key %d is not declared", doc.BaseCurrencyKey))
	}

	for _, key := range sortedKeys(doc.Accounts) {
		acc := doc.Accounts[key]
		if _, ok := doc.Currencies[acc.CurrencyKey]; !ok {
			errs = append(errs, fmt.Errorf("account %q (key %d) references undeclared currency %d", acc.Name, key, acc.CurrencyKey))
		}
		if acc.GroupKey != 0 {
			if _, ok := doc.Groups[acc.GroupKey]; !ok {
				errs = append(errs, fmt.Errorf("account %q (key %d) references undeclared group %d", acc.Name, key, acc.GroupKey))
			}
		}
	}

	for _, key := range sortedKeys(doc.Categories) {
		cat := doc.Categories[key]
		if cat.ParentKey == 0 {
			continue
		}
		parent, ok := doc.Categories[cat.ParentKey]
		if !ok {
			errs = append(errs, fmt.Errorf("category %q (key %d) references undeclared parent %d", cat.Name, key, cat.ParentKey))
			continue
		}
		if parent.ParentKey != 0 {
			errs = append(errs, fmt.Errorf("category %q (key %d) nests under subcategory %q; only two levels are supported", cat.Name, key, parent.Name))
		}
	}

	for _, key := range sortedKeys(doc.Payees) {
		p := doc.Payees[key]
		if p.DefaultCategoryKey == 0 {
			continue
		}
		if _, ok := doc.Categories[p.DefaultCategoryKey]; !ok {
			errs = append(errs, fmt.Errorf("payee %q (key %d) references undeclared default category %d", p.Name, key, p.DefaultCategoryKey))
		}
	}

	return errors.Join(errs...)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
