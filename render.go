package main

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func formatDate(d time.Time) string {
	return d.Format("January 2, 2006")
}

func formatDateShort(d time.Time) string {
	return d.Format("Jan 2, 2006")
}

// RenderContext tells a template which link items belong to the page being
// rendered, so navigation can highlight them. It is built per page; shared
// link items are never modified.
type RenderContext struct {
	active map[string]bool
}

func newRenderContext(places ...string) RenderContext {
	rc := RenderContext{active: make(map[string]bool, len(places))}
	for _, p := range places {
		rc.active[p] = true
	}
	return rc
}

// Called from templates
func (rc RenderContext) IsActive(place string) bool {
	return rc.active[place]
}

// highlight returns copies of items with Active set from the context.
func (rc RenderContext) highlight(items []*LinkItem) []LinkItem {
	out := make([]LinkItem, len(items))
	for i, li := range items {
		out[i] = *li
		out[i].Active = rc.active[li.Place]
	}
	return out
}

type templateParam struct {
	Site      *SiteConf
	PageTitle string
	PageLink  string
	// A short id such as a category key, used to pick the matching feed.
	FeedId             string
	AllCategories      []LinkItem
	AllDateCategories  []LinkItem
	FrequentCategories []*LinkItem
	Context            RenderContext
}

func (t templateParam) IsActive(place string) bool {
	return t.Context.IsActive(place)
}

type entryTemplateParam struct {
	templateParam
	*Entry
	RenderedBody  template.HTML
	RenderedMore  template.HTML
	Previous      *LinkItem
	Next          *LinkItem
	SeriesMembers []LinkItem
}

type sectionParam struct {
	Title    string
	PageLink string
	Entries  entries
}

type overviewTemplateParam struct {
	templateParam
	Kind     string
	Previous *LinkItem
	Next     *LinkItem
	Entries  entries
	Sections []sectionParam
}

type listTemplateParam struct {
	templateParam
	Entries     entries
	HaveMore    bool
	ShowAllLink string
}

type seriesTemplateParam struct {
	templateParam
	Series []*SeriesHead
}

type templateEngine struct {
	templateDir   string
	templateCache map[string]*template.Template
}

func newTemplateEngine(dir string) *templateEngine {
	return &templateEngine{
		templateDir:   dir,
		templateCache: make(map[string]*template.Template),
	}
}

func (te *templateEngine) execute(filename string, data any, w io.Writer) error {
	t, err := te.getTemplate(filename)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// getTemplate parses filename together with the shared global.html, if the
// template directory has one.
func (te *templateEngine) getTemplate(filename string) (*template.Template, error) {
	if t, ok := te.templateCache[filename]; ok {
		return t, nil
	}
	files := []string{}
	global := filepath.Join(te.templateDir, "global.html")
	if _, err := os.Stat(global); err == nil {
		files = append(files, global)
	}
	files = append(files, filepath.Join(te.templateDir, filename))

	t, err := template.New(filename).Funcs(templateFuncs).ParseFiles(files...)
	if err != nil {
		return nil, wrapError(err, KindParseFailure, filename, "cannot parse template")
	}
	t = t.Lookup(filename)
	if t == nil {
		return nil, newError(KindParseFailure, filename, "template not defined")
	}
	te.templateCache[filename] = t
	return t, nil
}

// templateFor prefers a key specific variant of the descriptor's template,
// e.g. category-golang.html over category.html.
func (te *templateEngine) templateFor(d *PageDescriptor) string {
	if strings.ContainsRune(d.Key, '/') {
		return d.Template
	}
	ext := filepath.Ext(d.Template)
	special := strings.TrimSuffix(d.Template, ext) + "-" + d.Key + ext
	if _, err := os.Stat(filepath.Join(te.templateDir, special)); err == nil {
		return special
	}
	return d.Template
}

var templateFuncs = template.FuncMap{
	"safe": func(s string) template.HTML { return template.HTML(s) },
}
