package ui

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/five82/todo/internal/todo"
)

// itemSource adapts a slice of items to fuzzy.Source.
type itemSource []todo.Item

func (s itemSource) String(i int) string { return s[i].FilterValue() }
func (s itemSource) Len() int            { return len(s) }

// filterItems keeps the items whose title fuzzy-matches query. Matches
// stay in list order rather than score order so rows don't jump while
// typing.
func filterItems(items []todo.Item, query string) []todo.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, itemSource(items))
	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })

	out := make([]todo.Item, 0, len(matches))
	for _, match := range matches {
		out = append(out, items[match.Index])
	}
	return out
}

// withoutCompleted drops completed items.
func withoutCompleted(items []todo.Item) []todo.Item {
	out := make([]todo.Item, 0, len(items))
	for _, it := range items {
		if !it.Completed {
			out = append(out, it)
		}
	}
	return out
}
