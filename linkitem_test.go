package main

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Go", "go"},
		{"  Lotus Notes & Domino ", "lotusnotesdomino"},
		{"C++", "c"},
		{"Café", "cafe"},
		{"Web 2.0", "web20"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sortKey(tc.in), tc.in)
	}
}

func TestNewLinkItemDerivesSorter(t *testing.T) {
	li := NewLinkItem("Singapore Life", "/blog/x.html", "")
	assert.Equal(t, "singaporelife", li.Sorter)
	assert.Equal(t, 1, li.Count)
	assert.False(t, li.Active)

	li = NewLinkItem("Singapore Life", "/blog/x.html", "0001")
	assert.Equal(t, "0001", li.Sorter)
}

func TestCategoryLinkItemPlace(t *testing.T) {
	li := categoryLinkItem("Software Architecture", "/blog/categories/")
	assert.Equal(t, "/blog/categories/softwarearchitecture", li.Place)
	assert.Equal(t, "softwarearchitecture", plainLinkItem("Software Architecture").Place)
}

func TestLinkItemCompareHonoursReverse(t *testing.T) {
	a := NewLinkItem("a", "", "1")
	b := NewLinkItem("b", "", "2")
	assert.Negative(t, a.Compare(b))

	ra := NewReverseLinkItem("a", "", "1")
	rb := NewReverseLinkItem("b", "", "2")
	items := []*LinkItem{ra, rb}
	slices.SortFunc(items, (*LinkItem).Compare)
	assert.Equal(t, "b", items[0].Name)
}

func TestDateSorterOrdersLikeTime(t *testing.T) {
	early := time.Date(2019, 12, 31, 23, 0, 0, 0, time.UTC)
	late := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Less(t, dateSorter(early), dateSorter(late))
}
