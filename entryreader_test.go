package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testEntryReader() *entryReader {
	r := newEntryReader(newMarkdownRenderer(), discardLogger())
	r.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

const markdownEntry = `---
title: Hello World
unid: ABC123
publishDate: 2023-06-01T10:00:00Z
status: Published
category:
  - Go
  - Static Sites
series: Getting Started
url: 2023/06/hello-world.html
oldurl: /d6plinks/OLD-HELLO
author: Joe
mood: happy
---
Some *markdown* here.
!highlight go
---
More **text**.
`

func TestReadMarkdownEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.blog")
	writeFile(t, path, markdownEntry)

	e, err := testEntryReader().readEntryFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", e.ID)
	assert.Equal(t, "Hello World", e.Title)
	assert.Equal(t, "Joe", e.Author)
	assert.Equal(t, time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC), e.PublishDate.UTC())
	assert.Equal(t, []string{"Go", "Static Sites"}, e.Categories)
	assert.Equal(t, "Getting Started", e.Series)
	assert.Equal(t, "2023/06/hello-world.html", e.EntryURL)
	assert.Equal(t, "/d6plinks/OLD-HELLO", e.LegacyURL)
	assert.Equal(t, sourceMarkdown, e.SourceType)
	assert.Contains(t, e.Body, "<em>markdown</em>")
	assert.NotContains(t, e.Body, "highlight")
	assert.Contains(t, e.MoreBody, "<strong>text</strong>")
}

func TestReadHTMLEntryDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2021-02-03-Some Post.blog")
	writeFile(t, path, "---\ntitle: Raw\nsourcetype: html\nstatus: Draft\noldurl: null\n---\n<p>as is</p>\n")

	e, err := testEntryReader().readEntryFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2021-02-03-Some Post", e.ID)
	assert.Equal(t, sourceHTML, e.SourceType)
	assert.Equal(t, "<p>as is</p>\n", e.Body)
	assert.Empty(t, e.MoreBody)
	assert.Equal(t, day("2021-02-03"), e.PublishDate)
	assert.Equal(t, "2021/02/20210203somepost.html", e.EntryURL)
	assert.Empty(t, e.LegacyURL)
	assert.Equal(t, "Draft", e.Status)
}

func TestReadEntryBadDateFallsBackToNow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.md")
	writeFile(t, path, "---\ntitle: X\npublishdate: someday\ncategory: a, b\n---\nbody\n")

	e, err := testEntryReader().readEntryFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2030, e.PublishDate.Year())
	assert.Equal(t, []string{"a", "b"}, e.Categories)
}

func TestReadEntryWithoutFrontMatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.blog")
	writeFile(t, path, "just text\n")

	_, err := testEntryReader().readEntryFromFile(path)
	assert.True(t, IsKind(err, KindParseFailure))
}

func TestReadEntriesSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "good.blog"), markdownEntry)
	writeFile(t, filepath.Join(dir, "b", "bad.blog"), "no front matter\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), markdownEntry)

	es, err := testEntryReader().readEntries(dir)
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, "ABC123", es[0].ID)
}

func TestReadEntriesMissingDirectory(t *testing.T) {
	_, err := testEntryReader().readEntries(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, IsKind(err, KindMissingSource))
}

func TestParseEntryDate(t *testing.T) {
	cases := []struct {
		in   any
		want time.Time
		ok   bool
	}{
		{"2023-01-02", day("2023-01-02"), true},
		{"2023-01-02 08:30", time.Date(2023, 1, 2, 8, 30, 0, 0, time.UTC), true},
		{"2023-01-02Tgarbage", day("2023-01-02"), true},
		{day("2020-05-05"), day("2020-05-05"), true},
		{"May 5th", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := parseEntryDate(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.True(t, tc.want.Equal(got), "%v: got %v", tc.in, got)
	}
}
