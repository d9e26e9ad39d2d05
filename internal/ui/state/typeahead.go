package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

// Candidate is one selectable entry offered to the type-ahead.
type Candidate struct {
	Index int
	ID    string
	Label string
}

// TypeAhead accumulates the characters typed while a menu is focused. The
// query is dropped whenever focus moves to another menu.
type TypeAhead struct {
	Query  string
	MenuID string
}

// Push appends text to the query for menuID and returns the new query.
func (t *TypeAhead) Push(menuID, text string) string {
	if t.MenuID != menuID {
		t.Query = ""
		t.MenuID = menuID
	}
	t.Query += text
	return t.Query
}

// Pop removes the last user-perceived character of the query, so a letter
// typed with a combining accent goes in one step. It reports whether anything
// was removed.
func (t *TypeAhead) Pop() bool {
	if t.Query == "" {
		return false
	}
	last := 0
	gr := uniseg.NewGraphemes(t.Query)
	for gr.Next() {
		last, _ = gr.Positions()
	}
	t.Query = t.Query[:last]
	return true
}

// Reset clears the query.
func (t *TypeAhead) Reset() {
	t.Query = ""
	t.MenuID = ""
}

// Active reports whether a query is being typed.
func (t *TypeAhead) Active() bool {
	return t.Query != ""
}

// BestMatchIndex picks the candidate that best matches query and returns its
// Index, or -1 when nothing matches. Exact matches beat label prefixes, which
// beat ID prefixes and substrings; fuzzy matches come last, ranked by
// distance.
func BestMatchIndex(cands []Candidate, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(cands) == 0 {
		return -1
	}
	fold := cases.Fold()
	q := fold.String(trimmed)
	labels := make([]string, len(cands))
	ids := make([]string, len(cands))
	for i, c := range cands {
		labels[i] = fold.String(c.Label)
		ids[i] = fold.String(c.ID)
	}
	for i, c := range cands {
		if labels[i] == q || ids[i] == q {
			return c.Index
		}
	}
	for i, c := range cands {
		if strings.HasPrefix(labels[i], q) {
			return c.Index
		}
	}
	for i, c := range cands {
		if strings.HasPrefix(ids[i], q) {
			return c.Index
		}
	}
	for i, c := range cands {
		if strings.Contains(labels[i], q) {
			return c.Index
		}
	}
	raw := make([]string, len(cands))
	for i, c := range cands {
		raw[i] = c.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, raw)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(cands) {
		return -1
	}
	return cands[best.OriginalIndex].Index
}
