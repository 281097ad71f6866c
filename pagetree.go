package main

import (
	"cmp"
	"maps"
	"path"
	"slices"
)

// ViewKind tags the archive view a descriptor belongs to.
type ViewKind int

const (
	ViewAllEntries ViewKind = iota
	ViewAllCategories
	ViewCategory
	ViewYear
	ViewYearMonth
	ViewSeries
)

func (v ViewKind) String() string {
	switch v {
	case ViewAllEntries:
		return "all-entries"
	case ViewAllCategories:
		return "all-categories"
	case ViewCategory:
		return "category"
	case ViewYear:
		return "year"
	case ViewYearMonth:
		return "year-month"
	case ViewSeries:
		return "series"
	}
	return "unknown"
}

const (
	allEntriesKey    = "allEntries"
	allCategoriesKey = "allCategories"
)

// PageDescriptor is the render plan for one overview page. It is either a
// leaf holding members or a branch holding child descriptors, never both.
type PageDescriptor struct {
	Kind     ViewKind
	Key      string
	Path     string
	Template string
	Title    string
	PageLink string

	Previous *LinkItem
	Next     *LinkItem

	members  *entrySet
	children map[string]*PageDescriptor
	// Newest first for leaves, descending keys for branches.
	reverse bool
}

func newLeaf(kind ViewKind, key, p, template, title string, newestFirst bool) *PageDescriptor {
	return &PageDescriptor{
		Kind: kind, Key: key, Path: p, Template: template, Title: title, PageLink: key,
		members: newMemberSet(newestFirst),
		reverse: newestFirst,
	}
}

func newBranch(kind ViewKind, key, p, template, title string, descendingKeys bool) *PageDescriptor {
	return &PageDescriptor{
		Kind: kind, Key: key, Path: p, Template: template, Title: title, PageLink: key,
		children: make(map[string]*PageDescriptor),
		reverse:  descendingKeys,
	}
}

func (d *PageDescriptor) IsBranch() bool {
	return d.children != nil
}

// Entries returns a leaf's members in display order.
func (d *PageDescriptor) Entries() entries {
	if d.members == nil {
		return nil
	}
	return d.members.Ordered()
}

func (d *PageDescriptor) Len() int {
	if d.IsBranch() {
		return len(d.children)
	}
	return d.members.Len()
}

// Sections returns a branch's children in display order.
func (d *PageDescriptor) Sections() []*PageDescriptor {
	keys := slices.Sorted(maps.Keys(d.children))
	if d.reverse {
		slices.Reverse(keys)
	}
	out := make([]*PageDescriptor, len(keys))
	for i, k := range keys {
		out[i] = d.children[k]
	}
	return out
}

// child returns the section for key, creating it on first use. Sections share
// the parent's output path and template and list their members newest first.
func (d *PageDescriptor) child(key, title string) *PageDescriptor {
	c, ok := d.children[key]
	if !ok {
		c = newLeaf(d.Kind, key, d.Path, d.Template, title, true)
		d.children[key] = c
	}
	return c
}

func (d *PageDescriptor) add(e *Entry) {
	d.members.insert(e)
}

// LinkItem points at the descriptor's page below base.
func (d *PageDescriptor) LinkItem(base string) *LinkItem {
	return NewLinkItem(d.Title, base+d.Path, "")
}

type pageID struct {
	kind ViewKind
	key  string
}

// PageTree owns every overview descriptor of a run.
type PageTree struct {
	conf  *SiteConf
	pages map[pageID]*PageDescriptor
}

func NewPageTree(conf *SiteConf) *PageTree {
	t := &PageTree{conf: conf, pages: make(map[pageID]*PageDescriptor)}
	t.pages[pageID{ViewAllEntries, allEntriesKey}] = newLeaf(ViewAllEntries, allEntriesKey,
		conf.AllIndexFileName, conf.Templates.AllIndex, "All entries", false)
	t.pages[pageID{ViewAllCategories, allCategoriesKey}] = newBranch(ViewAllCategories, allCategoriesKey,
		path.Join(conf.CategoriesLocation, conf.IndexFileName), conf.Templates.AllCategory, "All Categories", false)
	return t
}

// Attach adds e to the descriptor for key within the namespace of kind,
// creating the descriptor on first use. title is only used on creation. For
// the all-categories and year views key selects the section within the single
// branch descriptor of that view.
func (t *PageTree) Attach(kind ViewKind, key, title string, e *Entry) *PageDescriptor {
	c := t.conf
	switch kind {
	case ViewAllEntries:
		d := t.pages[pageID{ViewAllEntries, allEntriesKey}]
		d.add(e)
		return d
	case ViewAllCategories:
		d := t.pages[pageID{ViewAllCategories, allCategoriesKey}]
		d.child(key, title).add(e)
		return d
	case ViewYear:
		d := t.lookup(kind, key, func() *PageDescriptor {
			return newBranch(kind, key, path.Join(key, c.IndexFileName), c.Templates.Year, title, true)
		})
		d.child(e.MonthNumber(), e.MonthName()).add(e)
		return d
	}

	d := t.lookup(kind, key, func() *PageDescriptor {
		switch kind {
		case ViewCategory:
			return newLeaf(kind, key, c.CategoriesLocation+key+".html", c.Templates.Category, title, true)
		case ViewYearMonth:
			return newLeaf(kind, key, path.Join(key, c.IndexFileName), c.Templates.Month, title, true)
		default:
			return newLeaf(kind, key, c.SeriesLocation+key+".html", c.Templates.SeriesPage, title, false)
		}
	})
	d.add(e)
	return d
}

func (t *PageTree) lookup(kind ViewKind, key string, create func() *PageDescriptor) *PageDescriptor {
	id := pageID{kind, key}
	d, ok := t.pages[id]
	if !ok {
		d = create()
		t.pages[id] = d
	}
	return d
}

// Get returns the descriptor for key in the namespace of kind.
func (t *PageTree) Get(kind ViewKind, key string) (*PageDescriptor, bool) {
	d, ok := t.pages[pageID{kind, key}]
	return d, ok
}

// Pages returns all top-level descriptors in natural key order.
func (t *PageTree) Pages() []*PageDescriptor {
	out := slices.Collect(maps.Values(t.pages))
	slices.SortFunc(out, func(a, b *PageDescriptor) int {
		if c := cmp.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	return out
}

func (t *PageTree) Len() int {
	return len(t.pages)
}
