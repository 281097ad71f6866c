package main

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"
)

const (
	sourceHTML     = "HTML"
	sourceMarkdown = "MARKDOWN"
)

// Entry is one blog entry. Apart from its comments it is not modified once
// it has been handed to the index.
type Entry struct {
	ID             string
	Title          string
	Author         string
	Location       string
	PublishDate    time.Time
	Status         string
	Categories     []string
	Series         string
	EntryURL       string
	LegacyURL      string
	SourceType     string
	Body           string
	MoreBody       string
	CommentsClosed bool

	comments map[string]*Comment
	// Source file, for log messages.
	path string
}

// Called from templates
func (e *Entry) FormatDate() string {
	return formatDate(e.PublishDate)
}

func (e *Entry) FormatDateShort() string {
	return formatDateShort(e.PublishDate)
}

func (e *Entry) PublishDateShort() string {
	return e.PublishDate.Format("January 2006")
}

func (e *Entry) Year() string {
	return e.PublishDate.Format("2006")
}

func (e *Entry) MonthNumber() string {
	return e.PublishDate.Format("01")
}

func (e *Entry) MonthName() string {
	return e.PublishDate.Format("January")
}

func (e *Entry) DateURL() string {
	return e.PublishDate.Format("2006/01")
}

func (e *Entry) HasMore() bool {
	return e.MoreBody != ""
}

// DisplayCategories returns the entry's categories as link items sorted by key.
func (e *Entry) DisplayCategories() []*LinkItem {
	items := make([]*LinkItem, 0, len(e.Categories))
	for _, c := range e.Categories {
		items = append(items, plainLinkItem(c))
	}
	slices.SortFunc(items, (*LinkItem).Compare)
	return items
}

// LinkItem points at the entry's page below base.
func (e *Entry) LinkItem(base string) *LinkItem {
	return NewLinkItem(e.Title, base+e.EntryURL, dateSorter(e.PublishDate))
}

func (e *Entry) hasLegacyURL() bool {
	return e.LegacyURL != "" && e.LegacyURL != "null"
}

func (e *Entry) addComment(c *Comment) {
	if e.comments == nil {
		e.comments = make(map[string]*Comment)
	}
	e.comments[c.ID] = c
}

// Comments returns the comments ordered by creation time, then author, then id.
func (e *Entry) Comments() []*Comment {
	cs := slices.Collect(maps.Values(e.comments))
	slices.SortFunc(cs, func(a, b *Comment) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Author, b.Author); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return cs
}

func (e *Entry) CommentCount() string {
	return strconv.Itoa(len(e.comments))
}

func (e *Entry) String() string {
	b := new(bytes.Buffer)
	b.WriteString("id: ")
	b.WriteString(e.ID)
	b.WriteString("\ntitle: ")
	b.WriteString(e.Title)
	b.WriteString("\ndate: ")
	b.WriteString(e.PublishDate.String())
	b.WriteString("\nstatus: ")
	b.WriteString(e.Status)
	b.WriteString("\ncategories: ")
	fmt.Fprintln(b, e.Categories)

	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	b.WriteString("body: ")
	b.WriteString(body)

	return b.String()
}

type entries []*Entry

func (es entries) earliestDate() time.Time {
	t := time.Now()
	for _, e := range es {
		if e.PublishDate.Before(t) {
			t = e.PublishDate
		}
	}
	return t
}

func (es entries) latestDate() time.Time {
	var t time.Time
	for _, e := range es {
		if e.PublishDate.After(t) {
			t = e.PublishDate
		}
	}
	return t
}
