package main

import (
	"cmp"
	"slices"
)

// categoryWithEntries pairs a category link with the entries filed under it.
type categoryWithEntries struct {
	Category *LinkItem
	Entries  entries
}

func (c categoryWithEntries) EarliestDateFormatted() string {
	return formatDateShort(c.Entries.earliestDate())
}

func (c categoryWithEntries) LatestDateFormatted() string {
	return formatDateShort(c.Entries.latestDate())
}

// Entries grouped by category, most populated first, then by newest entry.
// Create using groupByCategory which sorts like this.
type entriesByCategory []categoryWithEntries

// Return the most frequent n categories.
func (ec entriesByCategory) frequentCategories(n, minEntries int) []*LinkItem {
	frequent := make([]*LinkItem, 0, n)
	for i, c := range ec {
		if i == n || len(c.Entries) < minEntries {
			break
		}
		frequent = append(frequent, c.Category)
	}

	return frequent
}

func groupByCategory(x *Index) entriesByCategory {
	byCat := make(entriesByCategory, 0, len(x.categories))
	for _, li := range x.Categories() {
		d, ok := x.Pages().Get(ViewCategory, li.Sorter)
		if !ok {
			continue
		}
		byCat = append(byCat, categoryWithEntries{Category: li, Entries: d.Entries()})
	}

	slices.SortStableFunc(byCat, func(a, b categoryWithEntries) int {
		// More entries = comes first (descending order)
		if c := cmp.Compare(len(b.Entries), len(a.Entries)); c != 0 {
			return c
		}
		// If equal entry count, newer comes first
		return b.Entries.latestDate().Compare(a.Entries.latestDate())
	})

	return byCat
}
