package main

import (
	"io"
	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConf(outDir string) *SiteConf {
	c := &SiteConf{SourceDir: "src", OutDir: outDir, SiteTitle: "Test blog", BaseUrl: "https://example.com"}
	c.setDefaults()
	if err := c.validate(); err != nil {
		panic(err)
	}
	return c
}

func published(id, date string, categories ...string) *Entry {
	return &Entry{
		ID:          id,
		Title:       "Title " + id,
		Status:      "Published",
		PublishDate: day(date),
		Categories:  categories,
		EntryURL:    day(date).Format("2006/01/") + id + ".html",
	}
}
