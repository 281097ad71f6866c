package main

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"
)

// seriesLinks holds the members of one series, keyed by entry URL and
// ordered by publish date.
type seriesLinks struct {
	name  string
	items map[string]*LinkItem
	order *entrySet
}

func newSeriesLinks(name string) *seriesLinks {
	return &seriesLinks{name: name, items: make(map[string]*LinkItem), order: newMemberSet(false)}
}

func (s *seriesLinks) put(e *Entry, li *LinkItem) {
	s.items[e.EntryURL] = li
	s.order.insert(e)
}

// ascending returns the member links, oldest first.
func (s *seriesLinks) ascending() []*LinkItem {
	es := s.order.Ascending()
	out := make([]*LinkItem, 0, len(es))
	for _, e := range es {
		out = append(out, s.items[e.EntryURL])
	}
	return out
}

// Index cross-references all published entries by date, category, year and
// series, and owns the overview page tree. It is filled once per run and
// read-only afterwards.
type Index struct {
	conf *SiteConf
	log  *slog.Logger
	now  func() time.Time

	chrono     *entrySet
	byID       map[string]*Entry
	drafts     []*Entry
	categories map[string]*LinkItem
	years      map[string]*LinkItem
	series     map[string]*seriesLinks
	redirects  map[string]string
	pages      *PageTree
}

func NewIndex(conf *SiteConf, logger *slog.Logger) *Index {
	return &Index{
		conf:       conf,
		log:        logger,
		now:        time.Now,
		chrono:     newChronologicalSet(),
		byID:       make(map[string]*Entry),
		categories: make(map[string]*LinkItem),
		years:      make(map[string]*LinkItem),
		series:     make(map[string]*seriesLinks),
		redirects:  make(map[string]string),
		pages:      NewPageTree(conf),
	}
}

// Ingest adds a published entry to every index it belongs to. Entries
// without a title are ignored and unpublished ones are only kept as drafts;
// neither is an error. Ingesting an id twice is rejected and changes nothing.
func (x *Index) Ingest(e *Entry) error {
	if e == nil {
		return nil
	}
	if e.Title == "" {
		x.log.Warn("Skipping entry without title", logEntry(e.ID), logPath(e.path))
		return nil
	}
	if !strings.EqualFold(e.Status, x.conf.PublishedStatus) {
		x.log.Debug("Skipping unpublished entry", logEntry(e.ID), slog.String("status", e.Status))
		x.drafts = append(x.drafts, e)
		return nil
	}
	if e.ID == "" {
		return newError(KindParseFailure, e.path, "entry has no id")
	}
	if _, dup := x.byID[e.ID]; dup {
		return duplicateEntry(e.ID)
	}
	if e.PublishDate.IsZero() {
		e.PublishDate = x.now()
		x.log.Warn("Entry has no publish date, using now", logEntry(e.ID))
	}

	x.chrono.insert(e)
	x.byID[e.ID] = e
	x.addRedirect(e)

	base := x.conf.WebBlogLocation
	seen := make(map[string]bool, len(e.Categories))
	for _, name := range e.Categories {
		key := sortKey(name)
		if key == "" {
			x.log.Warn("Ignoring category without usable characters", logEntry(e.ID), logCategory(name))
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if li, ok := x.categories[key]; ok {
			li.Count++
		} else {
			x.categories[key] = categoryLinkItem(name, base+x.conf.CategoriesLocation)
		}
		x.pages.Attach(ViewAllCategories, key, name, e)
		x.pages.Attach(ViewCategory, key, name, e)
	}

	year := e.Year()
	if li, ok := x.years[year]; ok {
		li.Count++
	} else {
		x.years[year] = NewLinkItem(year, base+year, year)
	}
	x.pages.Attach(ViewAllEntries, allEntriesKey, "", e)
	x.pages.Attach(ViewYear, year, "Year "+year, e)
	x.pages.Attach(ViewYearMonth, e.DateURL(), "By Date: "+e.PublishDateShort(), e)

	if e.Series != "" {
		key := seriesKey(e.Series)
		s, ok := x.series[key]
		if !ok {
			s = newSeriesLinks(e.Series)
			x.series[key] = s
		}
		s.put(e, NewReverseLinkItem(e.Title, base+e.EntryURL, dateSorter(e.PublishDate)))
		if sortKey(e.Series) != "" {
			x.pages.Attach(ViewSeries, key, s.name, e)
		} else {
			x.log.Warn("Series has no usable characters, no series page", logEntry(e.ID), logSeries(e.Series))
		}
	}
	return nil
}

func (x *Index) addRedirect(e *Entry) {
	if !e.hasLegacyURL() {
		return
	}
	key := strings.ToLower(e.LegacyURL)
	if prev, ok := x.redirects[key]; ok {
		x.log.Warn("Legacy URL already mapped, keeping first", logKey(key), slog.String("kept", prev), logEntry(e.ID))
		return
	}
	x.redirects[key] = e.EntryURL
}

// AddComment attaches c to its parent entry.
func (x *Index) AddComment(c *Comment) error {
	parent, ok := x.byID[c.ParentID]
	if !ok {
		return danglingReference(c.ParentID)
	}
	parent.addComment(c)
	return nil
}

// Entries returns all published entries, oldest first.
func (x *Index) Entries() entries {
	return x.chrono.Ascending()
}

func (x *Index) Len() int {
	return x.chrono.Len()
}

func (x *Index) Entry(id string) (*Entry, bool) {
	e, ok := x.byID[id]
	return e, ok
}

// Drafts returns the ingested entries that were not published.
func (x *Index) Drafts() []*Entry {
	return x.drafts
}

func (x *Index) Category(key string) (*LinkItem, bool) {
	li, ok := x.categories[key]
	return li, ok
}

// Categories returns the category links ordered by key.
func (x *Index) Categories() []*LinkItem {
	return sortedLinks(x.categories)
}

func (x *Index) Year(year string) (*LinkItem, bool) {
	li, ok := x.years[year]
	return li, ok
}

// Years returns the year links, oldest first.
func (x *Index) Years() []*LinkItem {
	return sortedLinks(x.years)
}

func (x *Index) YearsDescending() []*LinkItem {
	out := x.Years()
	slices.Reverse(out)
	return out
}

// SeriesNames returns the first-seen spelling of every series, sorted.
func (x *Index) SeriesNames() []string {
	names := make([]string, 0, len(x.series))
	for _, s := range x.series {
		names = append(names, s.name)
	}
	slices.Sort(names)
	return names
}

// SeriesMembers returns the members of a series, oldest first. Spellings of
// name with the same sort key select the same series.
func (x *Index) SeriesMembers(name string) []*LinkItem {
	s, ok := x.series[seriesKey(name)]
	if !ok {
		return nil
	}
	return s.ascending()
}

// seriesKey identifies a series. Names without any sort key characters fall
// back to their lower-cased spelling.
func seriesKey(name string) string {
	if key := sortKey(name); key != "" {
		return key
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// RedirectKeys returns the lower-cased legacy URLs in sorted order.
func (x *Index) RedirectKeys() []string {
	return slices.Sorted(maps.Keys(x.redirects))
}

func (x *Index) Redirect(legacy string) (string, bool) {
	u, ok := x.redirects[strings.ToLower(legacy)]
	return u, ok
}

func (x *Index) Pages() *PageTree {
	return x.pages
}

func sortedLinks(m map[string]*LinkItem) []*LinkItem {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, (*LinkItem).Compare)
	return out
}
