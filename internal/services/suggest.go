package services

import (
	"sort"

	"expenses/internal/store"
)

// Suggestions derives payee autocomplete entries from the store. The result
// is rebuilt on demand after every add or delete; it is a view, never a
// source of truth, and is not persisted.
type Suggestions struct {
	store *store.Store
}

func NewSuggestions(st *store.Store) *Suggestions {
	return &Suggestions{store: st}
}

// Payees returns every distinct payee across all accounts in lexicographic
// order. De-duplication is exact-string and case-sensitive.
func (s *Suggestions) Payees() []string {
	seen := map[string]struct{}{}
	for _, list := range s.store.AllExpenses() {
		for _, e := range list {
			seen[e.Payee] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for payee := range seen {
		out = append(out, payee)
	}
	sort.Strings(out)
	return out
}
