package main

import (
	"cmp"
	"slices"
	"time"
)

// entryKey is fixed when an entry enters a set, so later changes to an entry
// can never corrupt the ordering.
type entryKey struct {
	date time.Time
	tie  string
}

func (k entryKey) compare(o entryKey) int {
	if c := k.date.Compare(o.date); c != 0 {
		return c
	}
	return cmp.Compare(k.tie, o.tie)
}

type keyedEntry struct {
	key   entryKey
	entry *Entry
}

// entrySet is an ordered set of entries. Its order is ascending by key; the
// reverse flag only affects Ordered.
type entrySet struct {
	items   []keyedEntry
	keyOf   func(*Entry) entryKey
	reverse bool
}

// newChronologicalSet orders by publish date, then id.
func newChronologicalSet() *entrySet {
	return &entrySet{keyOf: func(e *Entry) entryKey {
		return entryKey{date: e.PublishDate, tie: e.ID}
	}}
}

// newMemberSet orders by publish date, then entry URL.
func newMemberSet(reverse bool) *entrySet {
	return &entrySet{
		keyOf: func(e *Entry) entryKey {
			return entryKey{date: e.PublishDate, tie: e.EntryURL}
		},
		reverse: reverse,
	}
}

// insert adds e unless an entry with the same key is present. It reports
// whether the set changed.
func (s *entrySet) insert(e *Entry) bool {
	k := s.keyOf(e)
	i, found := slices.BinarySearchFunc(s.items, k, func(ke keyedEntry, k entryKey) int {
		return ke.key.compare(k)
	})
	if found {
		return false
	}
	s.items = slices.Insert(s.items, i, keyedEntry{key: k, entry: e})
	return true
}

func (s *entrySet) contains(e *Entry) bool {
	_, found := slices.BinarySearchFunc(s.items, s.keyOf(e), func(ke keyedEntry, k entryKey) int {
		return ke.key.compare(k)
	})
	return found
}

func (s *entrySet) Len() int {
	return len(s.items)
}

func (s *entrySet) Ascending() entries {
	out := make(entries, len(s.items))
	for i, ke := range s.items {
		out[i] = ke.entry
	}
	return out
}

func (s *entrySet) Descending() entries {
	out := s.Ascending()
	slices.Reverse(out)
	return out
}

// Ordered returns the members in the set's display order.
func (s *entrySet) Ordered() entries {
	if s.reverse {
		return s.Descending()
	}
	return s.Ascending()
}

// newest returns up to n entries, most recent first.
func (s *entrySet) newest(n int) entries {
	out := s.Descending()
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
