package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file.
const (
	envOutDir    = "BLOGENGINE_OUT_DIR"
	envSourceDir = "BLOGENGINE_SOURCE_DIR"
)

// TemplateNames maps every page kind to its template file.
type TemplateNames struct {
	Index       string `yaml:"index"`
	Error       string `yaml:"error"`
	Entry       string `yaml:"entry"`
	Category    string `yaml:"category"`
	Year        string `yaml:"year"`
	Month       string `yaml:"month"`
	AllCategory string `yaml:"allCategory"`
	AllIndex    string `yaml:"allIndex"`
	Imprint     string `yaml:"imprint"`
	Series      string `yaml:"series"`
	SeriesPage  string `yaml:"seriesPage"`
}

type SiteConf struct {
	Author          string `yaml:"author"`
	AuthorUri       string `yaml:"authorUri"`
	BaseUrl         string `yaml:"baseUrl"`
	SiteTitle       string `yaml:"siteTitle"`
	SiteDescription string `yaml:"siteDescription"`

	TemplateDir string        `yaml:"templateDir"`
	Templates   TemplateNames `yaml:"templates"`

	SourceDir      string `yaml:"sourceDir"`
	DocumentDir    string `yaml:"documentDir"`
	CommentDir     string `yaml:"commentDir"`
	StaticFilesDir string `yaml:"staticFilesDir"`

	OutDir string `yaml:"outDir"`
	// Location of the blog relative to the web root, e.g. "/blog/".
	WebBlogLocation    string `yaml:"webBlogLocation"`
	CategoriesLocation string `yaml:"categoriesLocation"`
	SeriesLocation     string `yaml:"seriesLocation"`

	IndexFileName    string `yaml:"indexFileName"`
	AllIndexFileName string `yaml:"allIndexFileName"`
	SeriesFileName   string `yaml:"seriesFileName"`
	ErrorFileName    string `yaml:"errorFileName"`
	ImprintFileName  string `yaml:"imprintFileName"`
	FeedFileName     string `yaml:"feedFileName"`
	FeedCopyFileName string `yaml:"feedCopyFileName"`

	UrlmapFile      string `yaml:"urlmapFile"`
	UrlmapProxyFile string `yaml:"urlmapProxyFile"`
	// Where the permanent links of the old blog lived.
	PlinkPrefix string `yaml:"plinkPrefix"`

	PublishedStatus string `yaml:"publishedStatus"`
	// Write pages exactly as the templates produce them.
	RawHTML bool `yaml:"rawHtml"`

	EntriesOnFrontPage    int `yaml:"entriesOnFrontPage"`
	EntriesInFeed         int `yaml:"entriesInFeed"`
	EntriesOnImprint      int `yaml:"entriesOnImprint"`
	FeedDescriptionLength int `yaml:"feedDescriptionLength"`

	NumFrequentCategories            int `yaml:"numFrequentCategories"`
	MinArticlesForFrequentCategories int `yaml:"minArticlesForFrequentCategories"`
}

// readConf loads the configuration from a JSON or YAML file. A .env file next
// to it may override the source and output directories.
func readConf(fileName string, logger *slog.Logger) (*SiteConf, error) {
	rawConf, err := os.ReadFile(fileName)
	if err != nil {
		return nil, wrapError(err, KindConfig, fileName, "cannot read configuration")
	}

	conf := SiteConf{}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(rawConf, &conf)
	default:
		err = json.Unmarshal(rawConf, &conf)
	}
	if err != nil {
		return nil, wrapError(err, KindConfig, fileName, "cannot decode configuration")
	}

	baseDir := filepath.Dir(fileName)
	envFile := filepath.Join(baseDir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Cannot load environment file", logPath(envFile), logError(err))
	}
	if v := os.Getenv(envOutDir); v != "" {
		conf.OutDir = v
	}
	if v := os.Getenv(envSourceDir); v != "" {
		conf.SourceDir = v
	}

	conf.setDefaults()
	if err := conf.validate(); err != nil {
		return nil, err
	}

	// Normalize relative paths because the executable can be called from anywhere
	conf.TemplateDir = normalizePath(conf.TemplateDir, baseDir, logger)
	conf.SourceDir = normalizePath(conf.SourceDir, baseDir, logger)
	conf.StaticFilesDir = normalizePath(conf.StaticFilesDir, baseDir, logger)
	conf.OutDir = normalizePath(conf.OutDir, baseDir, logger)

	conf.TemplateDir, err = filepath.Abs(conf.TemplateDir)
	if err != nil {
		return nil, wrapError(err, KindConfig, conf.TemplateDir, "cannot resolve template directory")
	}

	return &conf, nil
}

func (c *SiteConf) setDefaults() {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	defInt := func(n *int, v int) {
		if *n == 0 {
			*n = v
		}
	}

	def(&c.TemplateDir, "tmpl")
	def(&c.DocumentDir, "documents")
	def(&c.CommentDir, "comments")
	if c.StaticFilesDir == "" && c.SourceDir != "" {
		c.StaticFilesDir = filepath.Join(c.SourceDir, "static")
	}
	def(&c.WebBlogLocation, "/blog/")
	def(&c.CategoriesLocation, "categories/")
	def(&c.SeriesLocation, "series/")
	for _, loc := range []*string{&c.WebBlogLocation, &c.CategoriesLocation, &c.SeriesLocation} {
		if !strings.HasSuffix(*loc, "/") {
			*loc += "/"
		}
	}
	def(&c.IndexFileName, "index.html")
	def(&c.AllIndexFileName, "all.html")
	def(&c.SeriesFileName, "series.html")
	def(&c.ErrorFileName, "404.html")
	def(&c.ImprintFileName, "imprint.html")
	def(&c.FeedFileName, "stories.xml")
	def(&c.FeedCopyFileName, "stories.rss")
	def(&c.UrlmapFile, "blogmap.txt")
	def(&c.UrlmapProxyFile, "blognginx.map")
	def(&c.PlinkPrefix, c.WebBlogLocation+"d6plinks/")
	def(&c.PublishedStatus, "Published")

	t := &c.Templates
	def(&t.Index, "index.html")
	def(&t.Error, "404.html")
	def(&t.Entry, "blogentry.html")
	def(&t.Category, "category.html")
	def(&t.Year, "blogyear.html")
	def(&t.Month, "blogmonth.html")
	def(&t.AllCategory, "allcategory.html")
	def(&t.AllIndex, "allindex.html")
	def(&t.Imprint, "imprint.html")
	def(&t.Series, "series.html")
	def(&t.SeriesPage, "seriespage.html")

	defInt(&c.EntriesOnFrontPage, 10)
	defInt(&c.EntriesInFeed, 20)
	defInt(&c.EntriesOnImprint, 5)
	defInt(&c.FeedDescriptionLength, 500)
	defInt(&c.NumFrequentCategories, 6)
	defInt(&c.MinArticlesForFrequentCategories, 2)
}

func (c *SiteConf) validate() error {
	if c.SourceDir == "" {
		return configRequired("sourceDir")
	}
	if c.OutDir == "" {
		return configRequired("outDir")
	}
	return nil
}

func (c *SiteConf) documentDir() string {
	return filepath.Join(c.SourceDir, c.DocumentDir)
}

func (c *SiteConf) commentDir() string {
	return filepath.Join(c.SourceDir, c.CommentDir)
}

func normalizePath(path, baseDir string, logger *slog.Logger) string {
	if path != "" && !filepath.IsAbs(path) {
		absPath := filepath.Join(baseDir, path)
		logger.Debug("Normalizing path", slog.String("from", path), slog.String("to", absPath))
		return absPath
	}
	return path
}
