package main

import (
	"cmp"
	"slices"
)

// EntryLinks is the navigation computed for one entry page.
type EntryLinks struct {
	Previous *LinkItem
	Next     *LinkItem
	// Series members, most recent first. Empty for entries without series.
	Series []*LinkItem
}

// SeriesHead represents one series on the series index page.
type SeriesHead struct {
	Name   string
	Latest *Entry
	Link   *LinkItem
	Count  int
}

// Navigation holds everything computed by Link. Entries themselves are
// never touched.
type Navigation struct {
	entries map[string]*EntryLinks
	series  []*SeriesHead
}

// Entry returns the links for the entry with id. Unknown ids get empty links.
func (n *Navigation) Entry(id string) *EntryLinks {
	if l, ok := n.entries[id]; ok {
		return l
	}
	return &EntryLinks{}
}

// SeriesIndex lists every series once, most recently updated first.
func (n *Navigation) SeriesIndex() []*SeriesHead {
	return n.series
}

// Link walks the frozen index once and computes previous/next for the
// chronological stream, the series member lists and the series index, and
// previous/next between overview pages.
func Link(x *Index) *Navigation {
	base := x.conf.WebBlogLocation
	nav := &Navigation{entries: make(map[string]*EntryLinks, x.Len())}
	completed := make(map[string]bool)

	var prev *Entry
	for _, e := range x.Entries() {
		links := &EntryLinks{}
		nav.entries[e.ID] = links

		if s, ok := x.series[seriesKey(e.Series)]; e.Series != "" && ok {
			members := s.ascending()
			slices.SortFunc(members, func(a, b *LinkItem) int { return cmp.Compare(a.Sorter, b.Sorter) })
			slices.Reverse(members)
			links.Series = members
			key := seriesKey(e.Series)
			if !completed[key] && len(members) > 0 {
				completed[key] = true
				latest := s.order.Descending()[0]
				nav.series = append(nav.series, &SeriesHead{
					Name:   s.name,
					Latest: latest,
					Link:   members[0],
					Count:  len(members),
				})
			}
		}

		if prev != nil {
			nav.entries[prev.ID].Next = e.LinkItem(base)
			links.Previous = prev.LinkItem(base)
		}
		prev = e
	}

	slices.SortFunc(nav.series, func(a, b *SeriesHead) int {
		if c := b.Latest.PublishDate.Compare(a.Latest.PublishDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	linkOverviewPages(x.Pages().Pages(), base)
	return nav
}

// linkOverviewPages chains the descriptors in the given order. Each step
// links the descriptor seen one iteration earlier; the last one only gets
// its previous link.
func linkOverviewPages(pages []*PageDescriptor, base string) {
	var current *PageDescriptor
	for _, d := range pages {
		d.Previous, d.Next = nil, nil
		if current != nil {
			current.Next = d.LinkItem(base)
			d.Previous = current.LinkItem(base)
		}
		current = d
	}
}
