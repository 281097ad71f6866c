// Package main is blogengine, a static blog generator that only rewrites the
// files whose content changed. With categories, series, markdown, atom feeds
// and redirect maps for legacy URLs.
//
// To get started, copy example/blogengine.json and customize it for your
// setup, then run "blogengine --conf blogengine.json build".
//
// You need to provide your own templates.
//
// This code is under BSD license. See license-bsd.txt.
package main

import (
	"errors"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
)

type Site struct {
	conf   *SiteConf
	log    *slog.Logger
	index  *Index
	nav    *Navigation
	engine *templateEngine

	// Render unpublished entries as standalone pages.
	renderDrafts bool
	frequent     []*LinkItem
	stats        WriteStats
}

// ReadSite loads entries and comments, indexes them and computes the
// navigation. Broken sources are logged and skipped; only a missing document
// directory leaves the site empty.
func ReadSite(conf *SiteConf, drafts bool, logger *slog.Logger) (*Site, error) {
	s := &Site{
		conf:         conf,
		log:          logger,
		index:        NewIndex(conf, logger),
		engine:       newTemplateEngine(conf.TemplateDir),
		renderDrafts: drafts,
	}
	toHtml := newMarkdownRenderer()

	reader := newEntryReader(toHtml, logger)
	es, err := reader.readEntries(conf.documentDir())
	switch {
	case IsKind(err, KindMissingSource):
		logger.Error("No documents to read", logPath(conf.documentDir()), logError(err))
	case err != nil:
		return nil, err
	}
	for _, e := range es {
		if err := s.index.Ingest(e); err != nil {
			logger.Error("Cannot index entry", logEntry(e.ID), logPath(e.path),
				slog.String("kind", KindOf(err).String()), logError(err))
		}
	}

	comments, err := readComments(conf.commentDir(), toHtml, logger)
	switch {
	case IsKind(err, KindMissingSource):
		logger.Info("No comments to read", logPath(conf.commentDir()))
	case err != nil:
		return nil, err
	}
	for _, c := range comments {
		if err := s.index.AddComment(c); err != nil {
			logger.Warn("Dropping comment", slog.String("comment", c.ID), logError(err))
		}
	}

	s.nav = Link(s.index)
	s.frequent = groupByCategory(s.index).frequentCategories(
		conf.NumFrequentCategories,
		conf.MinArticlesForFrequentCategories)

	logger.Info("Site read",
		slog.Int("entries", s.index.Len()),
		slog.Int("drafts", len(s.index.Drafts())),
		slog.Int("pages", s.index.Pages().Len()),
		slog.Int("comments", len(comments)))
	return s, nil
}

// RenderAll writes every page, feed and redirect map. A page that fails is
// logged and the run continues; the failures are returned joined.
func (s *Site) RenderAll() error {
	if err := os.MkdirAll(s.conf.OutDir, 0o775); err != nil {
		return ioFailure(s.conf.OutDir, err)
	}
	s.stats = WriteStats{}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, e := range s.index.Entries() {
		collect(s.renderEntry(e, s.nav.Entry(e.ID)))
	}
	if s.renderDrafts {
		for _, e := range s.index.Drafts() {
			collect(s.renderEntry(e, &EntryLinks{}))
		}
	}
	for _, d := range s.index.Pages().Pages() {
		collect(s.renderOverview(d))
	}
	collect(s.renderFrontPages())
	collect(s.RenderFeeds())
	collect(s.writeRedirectMaps())

	s.log.Info("Site rendered", slog.Any("stats", s.stats))
	return errors.Join(errs...)
}

// Stats reports the outcomes of the last RenderAll.
func (s *Site) Stats() WriteStats {
	return s.stats
}

func (s *Site) pageParam(title, link, feedId string, rc RenderContext) templateParam {
	return templateParam{
		Site:               s.conf,
		PageTitle:          title,
		PageLink:           link,
		FeedId:             feedId,
		AllCategories:      rc.highlight(s.index.Categories()),
		AllDateCategories:  rc.highlight(s.index.YearsDescending()),
		FrequentCategories: s.frequent,
		Context:            rc,
	}
}

func (s *Site) mainFeedId() string {
	return strings.TrimSuffix(s.conf.FeedFileName, filepath.Ext(s.conf.FeedFileName))
}

// entryContext marks the entry's categories, its year and the entry itself.
func (s *Site) entryContext(e *Entry) RenderContext {
	places := []string{s.conf.WebBlogLocation + e.EntryURL}
	for _, name := range e.Categories {
		if li, ok := s.index.Category(sortKey(name)); ok {
			places = append(places, li.Place)
		}
	}
	if li, ok := s.index.Year(e.Year()); ok {
		places = append(places, li.Place)
	}
	return newRenderContext(places...)
}

func (s *Site) renderEntry(e *Entry, links *EntryLinks) error {
	rc := s.entryContext(e)
	feedId := s.mainFeedId()
	if len(e.Categories) > 0 {
		feedId = s.conf.CategoriesLocation + sortKey(e.Categories[0])
	}
	param := entryTemplateParam{
		templateParam: s.pageParam(e.Title, s.conf.WebBlogLocation+e.EntryURL, feedId, rc),
		Entry:         e,
		RenderedBody:  template.HTML(e.Body),
		RenderedMore:  template.HTML(e.MoreBody),
		Previous:      links.Previous,
		Next:          links.Next,
		SeriesMembers: rc.highlight(links.Series),
	}
	return s.writePage(e.EntryURL, s.conf.Templates.Entry, param)
}

// overviewContext marks the category or year a descriptor belongs to.
func (s *Site) overviewContext(d *PageDescriptor) RenderContext {
	var places []string
	switch d.Kind {
	case ViewCategory:
		if li, ok := s.index.Category(d.Key); ok {
			places = append(places, li.Place)
		}
	case ViewYear, ViewYearMonth:
		year, _, _ := strings.Cut(d.Key, "/")
		if li, ok := s.index.Year(year); ok {
			places = append(places, li.Place)
		}
	}
	return newRenderContext(places...)
}

func (s *Site) renderOverview(d *PageDescriptor) error {
	feedId := s.mainFeedId()
	if d.Kind == ViewCategory {
		feedId = s.conf.CategoriesLocation + d.Key
	}
	param := overviewTemplateParam{
		templateParam: s.pageParam(d.Title, s.conf.WebBlogLocation+d.Path, feedId, s.overviewContext(d)),
		Kind:          d.Kind.String(),
		Previous:      d.Previous,
		Next:          d.Next,
	}
	if d.IsBranch() {
		for _, c := range d.Sections() {
			param.Sections = append(param.Sections, sectionParam{
				Title:    c.Title,
				PageLink: c.PageLink,
				Entries:  c.Entries(),
			})
		}
	} else {
		param.Entries = d.Entries()
	}
	return s.writePage(d.Path, s.engine.templateFor(d), param)
}

// renderFrontPages writes the front page, the imprint, the error page and
// the series index.
func (s *Site) renderFrontPages() error {
	c := s.conf
	base := c.WebBlogLocation
	feedId := s.mainFeedId()
	rc := newRenderContext()
	var errs []error

	front := s.index.chrono.newest(c.EntriesOnFrontPage)
	errs = append(errs, s.writePage(c.IndexFileName, c.Templates.Index, listTemplateParam{
		templateParam: s.pageParam(c.SiteTitle, base+c.IndexFileName, feedId, rc),
		Entries:       front,
		HaveMore:      s.index.Len() > len(front),
		ShowAllLink:   base + c.AllIndexFileName,
	}))

	errs = append(errs, s.writePage(c.ImprintFileName, c.Templates.Imprint, listTemplateParam{
		templateParam: s.pageParam("Imprint", base+c.ImprintFileName, feedId, rc),
		Entries:       s.index.chrono.newest(c.EntriesOnImprint),
	}))

	errs = append(errs, s.writePage(c.ErrorFileName, c.Templates.Error, listTemplateParam{
		templateParam: s.pageParam("Page not found", base+c.ErrorFileName, feedId, rc),
		Entries:       s.index.chrono.Descending(),
	}))

	errs = append(errs, s.writePage(c.SeriesFileName, c.Templates.Series, seriesTemplateParam{
		templateParam: s.pageParam("Series", base+c.SeriesFileName, feedId, rc),
		Series:        s.nav.SeriesIndex(),
	}))
	return errors.Join(errs...)
}

func (s *Site) writeRedirectMaps() error {
	var errs []error
	if s.conf.UrlmapFile != "" {
		w := NewOutputWriter(filepath.Join(s.conf.OutDir, s.conf.UrlmapFile), false, s.log)
		if err := writeRedirectMap(s.index, w); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, s.commit(w))
	}
	if s.conf.UrlmapProxyFile != "" {
		w := NewOutputWriter(filepath.Join(s.conf.OutDir, s.conf.UrlmapProxyFile), false, s.log)
		if err := writeProxyRedirectMap(s.index, w); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, s.commit(w))
	}
	return errors.Join(errs...)
}

// writePage renders tmpl into relPath below the output directory. Nothing is
// written when the template fails.
func (s *Site) writePage(relPath, tmpl string, data any) error {
	target := filepath.Join(s.conf.OutDir, filepath.FromSlash(relPath))
	w := NewOutputWriter(target, !s.conf.RawHTML, s.log)
	if err := s.engine.execute(tmpl, data, w); err != nil {
		s.log.Error("Cannot render page", logPath(target), slog.String("template", tmpl), logError(err))
		s.stats.record(OutcomeNotSaved)
		return err
	}
	return s.commit(w)
}

func (s *Site) writeBytes(target string, b []byte) error {
	w := NewOutputWriter(target, false, s.log)
	if _, err := w.Write(b); err != nil {
		s.stats.record(OutcomeNotSaved)
		return ioFailure(target, err)
	}
	return s.commit(w)
}

func (s *Site) commit(w *OutputWriter) error {
	outcome, err := w.Commit()
	s.stats.record(outcome)
	return err
}

// CopyStaticFiles copies the static directory, if any, below the output
// directory.
func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticFilesDir
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		s.log.Info("No static files to copy", logPath(srcDir))
		return nil
	}
	dest := filepath.Join(s.conf.OutDir, filepath.Base(srcDir))
	s.log.Info("Recursively copying static files", logPath(srcDir), slog.String("to", dest))
	if err := copy.Copy(srcDir, dest); err != nil {
		return ioFailure(dest, err)
	}
	return nil
}
