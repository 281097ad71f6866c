package main

import (
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	atom "github.com/thomas11/atomgenerator"
)

// RenderFeeds writes the main feed, its copy and one feed per category. A
// feed that fails does not stop the others; the failures are returned joined.
func (s *Site) RenderFeeds() error {
	var errs []error
	newest := s.index.chrono.newest(s.conf.EntriesInFeed)
	xml, err := s.renderFeed(s.conf.SiteTitle, "", newest)
	if err != nil {
		errs = append(errs, err)
	} else {
		for _, name := range []string{s.conf.FeedFileName, s.conf.FeedCopyFileName} {
			if name == "" {
				continue
			}
			errs = append(errs, s.writeBytes(filepath.Join(s.conf.OutDir, name), xml))
		}
	}

	errs = append(errs, s.renderCategoryFeeds())
	return errors.Join(errs...)
}

func (s *Site) renderFeed(title, relUrl string, es entries) ([]byte, error) {
	feedUrl := s.conf.BaseUrl
	if len(relUrl) > 0 {
		if relUrl[0] == '/' {
			relUrl = relUrl[1:]
		}
		feedUrl = strings.TrimSuffix(feedUrl, "/") + "/" + relUrl
	}

	pubDate := time.Now()
	if len(es) > 0 {
		pubDate = es.latestDate()
	}
	feed := atom.Feed{
		Title:   title,
		Link:    feedUrl,
		PubDate: pubDate,
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Author,
		Uri:  s.conf.AuthorUri,
	})

	for _, e := range es {
		feed.AddEntry(s.feedEntry(e))
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		for _, e := range errs {
			s.log.Error("Atom feed is not valid", slog.String("feed", title), logError(e))
		}
		return nil, wrapError(errs[0], KindParseFailure, title, "invalid feed")
	}

	return feed.GenXml()
}

func (s *Site) feedEntry(e *Entry) *atom.Entry {
	ae := &atom.Entry{
		Title:       e.Title,
		Description: s.feedDescription(e),
		Link:        s.absoluteURL(e.EntryURL),
		PubDate:     e.PublishDate,
		Content:     e.Body,
	}

	for _, cat := range e.Categories {
		ae.AddCategory(atom.Category{Term: cat})
	}
	return ae
}

// feedDescription is the text content of the entry body, cut to the
// configured length. Entries without text fall back to the site description.
func (s *Site) feedDescription(e *Entry) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(e.Body))
	if err != nil {
		s.log.Warn("Cannot extract feed description", logEntry(e.ID), logError(err))
		return s.conf.SiteDescription
	}
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if text == "" {
		return s.conf.SiteDescription
	}
	return truncateText(text, s.conf.FeedDescriptionLength)
}

// truncateText cuts s after at most n runes.
func truncateText(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func (s *Site) absoluteURL(rel string) string {
	return strings.TrimSuffix(s.conf.BaseUrl, "/") + path.Join(s.conf.WebBlogLocation, rel)
}

func (s *Site) renderCategoryFeeds() error {
	var errs []error
	for _, c := range s.index.Categories() {
		d, ok := s.index.Pages().Get(ViewCategory, c.Sorter)
		if !ok {
			continue
		}
		es := d.Entries()
		if len(es) > s.conf.EntriesInFeed {
			es = es[:s.conf.EntriesInFeed]
		}
		title := s.conf.SiteTitle + ` Category "` + c.Name + `"`
		urlPath := path.Join(s.conf.WebBlogLocation, s.conf.CategoriesLocation, c.Sorter) + ".html"
		xml, err := s.renderFeed(title, urlPath, es)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, s.writeBytes(filepath.Join(s.conf.OutDir, s.conf.CategoriesLocation, c.Sorter+".xml"), xml))
	}
	return errors.Join(errs...)
}
