package pagemanager

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode decides the fixed order of the registry.
type SortMode int

const (
	// SortByOrder sorts on the order hint, ascending.
	SortByOrder SortMode = iota
	// SortByName sorts on the friendly name.
	SortByName
	// SortByPage sorts on the page reference's identity string.
	SortByPage
)

func (m SortMode) String() string {
	switch m {
	case SortByOrder:
		return "by_order"
	case SortByName:
		return "by_name"
	case SortByPage:
		return "by_page"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode maps a configuration value to a SortMode. Empty means by_order.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "by_order":
		return SortByOrder, nil
	case "by_name":
		return SortByName, nil
	case "by_page":
		return SortByPage, nil
	default:
		return SortByOrder, fmt.Errorf("%w: sort must be \"by_order\", \"by_name\", or \"by_page\", got %q", ErrInvalidConfig, s)
	}
}

// sortEntries orders entries in place. Ties keep insertion order.
func sortEntries(entries []Entry, mode SortMode) {
	var key func(a, b Entry) int
	switch mode {
	case SortByName:
		key = func(a, b Entry) int { return strings.Compare(a.Label, b.Label) }
	case SortByPage:
		// Literal identity comparison; no semantic page ordering is inferred.
		key = func(a, b Entry) int { return strings.Compare(a.Page.ID(), b.Page.ID()) }
	default:
		key = func(a, b Entry) int { return cmp.Compare(a.Order, b.Order) }
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := key(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
}
