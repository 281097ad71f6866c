package main

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// LinkItem is a named reference to a page. Categories, years, series members
// and prev/next navigation are all expressed as link items.
type LinkItem struct {
	Name  string
	Place string
	// Sorter orders link items; it defaults to the sort key of Name.
	Sorter  string
	Reverse bool
	// Active is only ever set on per-render copies, see RenderContext.
	Active bool
	Count  int
}

func NewLinkItem(name, place, sorter string) *LinkItem {
	if sorter == "" {
		sorter = sortKey(name)
	}
	return &LinkItem{Name: name, Place: place, Sorter: sorter, Count: 1}
}

// NewReverseLinkItem returns a link item that sorts in descending order of
// its sorter.
func NewReverseLinkItem(name, place, sorter string) *LinkItem {
	li := NewLinkItem(name, place, sorter)
	li.Reverse = true
	return li
}

// categoryLinkItem places the item at base followed by its sort key.
func categoryLinkItem(name, base string) *LinkItem {
	key := sortKey(name)
	return &LinkItem{Name: name, Place: base + key, Sorter: key, Count: 1}
}

func plainLinkItem(name string) *LinkItem {
	key := sortKey(name)
	return &LinkItem{Name: name, Place: key, Sorter: key, Count: 1}
}

// Compare orders by sorter, descending when the receiver is a reverse item.
func (li *LinkItem) Compare(o *LinkItem) int {
	if li.Reverse {
		return strings.Compare(o.Sorter, li.Sorter)
	}
	return strings.Compare(li.Sorter, o.Sorter)
}

func (li *LinkItem) String() string {
	return li.Name + " -> " + li.Place
}

var lower = cases.Lower(language.Und)

// sortKey turns a display name into a URL and sort friendly key: lower case,
// accents decomposed, everything but [a-z0-9] dropped.
func sortKey(name string) string {
	s := norm.NFKD.String(lower.String(strings.TrimSpace(name)))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dateSorter renders a timestamp so that string order equals time order.
func dateSorter(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000")
}
