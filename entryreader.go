package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterSeparator = "---"

var entryFileExtensions = []string{".blog", ".md"}

var entryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// entryReader turns source files into entries.
type entryReader struct {
	toHtml renderer
	log    *slog.Logger
	now    func() time.Time
}

func newEntryReader(r renderer, logger *slog.Logger) *entryReader {
	return &entryReader{toHtml: r, log: logger, now: time.Now}
}

func findEntryFiles(dir string, extensions []string, logger *slog.Logger) ([]string, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, missingSource(dir)
	}

	files := make([]string, 0, 100)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Cannot read", logPath(path), logError(err))
			return nil
		}
		if !d.IsDir() && hasAnySuffix(path, extensions) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// splitEntry separates the front matter from the main and the optional
// "more" body. A source without leading front matter is rejected.
func splitEntry(content []byte) (meta, body, more []byte, err error) {
	s := bufio.NewScanner(bytes.NewReader(content))
	s.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	var metaBuf, bodyBuf, moreBuf bytes.Buffer
	section := -1
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if section == -1 {
			if line != frontMatterSeparator {
				return nil, nil, nil, fmt.Errorf("no front matter")
			}
			section = 0
			continue
		}
		if line == frontMatterSeparator && section < 2 {
			section++
			continue
		}
		switch section {
		case 0:
			metaBuf.WriteString(line + "\n")
		case 1:
			bodyBuf.WriteString(line + "\n")
		default:
			moreBuf.WriteString(line + "\n")
		}
	}
	if err := s.Err(); err != nil {
		return nil, nil, nil, err
	}
	if section < 1 {
		return nil, nil, nil, fmt.Errorf("front matter not terminated")
	}
	return metaBuf.Bytes(), bodyBuf.Bytes(), moreBuf.Bytes(), nil
}

func (r *entryReader) readEntryFromFile(path string) (*Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ioFailure(path, err)
	}
	meta, body, more, err := splitEntry(content)
	if err != nil {
		return nil, parseFailure(path, err)
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return nil, parseFailure(path, err)
	}

	fileBaseName := filepath.Base(path)
	fileBaseName = fileBaseName[:len(fileBaseName)-len(filepath.Ext(fileBaseName))]
	e := &Entry{SourceType: sourceMarkdown, path: path}

	for rawKey, value := range fields {
		valueString := strings.TrimSpace(fmt.Sprint(value))
		if value == nil || valueString == "" || valueString == "null" {
			continue
		}
		switch key := strings.ToLower(rawKey); key {
		case "author":
			e.Author = valueString
		case "category", "categories":
			e.Categories = toStringList(value)
		case "publishdate", "date":
			if d, ok := parseEntryDate(value); ok {
				e.PublishDate = d
			} else {
				r.log.Warn("Cannot parse date, using now", logPath(path), slog.String("date", valueString))
				e.PublishDate = r.now()
			}
		case "location":
			e.Location = valueString
		case "status":
			e.Status = valueString
		case "title":
			e.Title = valueString
		case "series":
			e.Series = valueString
		case "unid", "id":
			e.ID = valueString
		case "url":
			e.EntryURL = valueString
		case "oldurl":
			e.LegacyURL = valueString
		case "commentsclosed":
			e.CommentsClosed, _ = strconv.ParseBool(valueString)
		case "sourcetype":
			switch strings.ToLower(valueString[:1]) {
			case "h":
				e.SourceType = sourceHTML
			case "m":
				e.SourceType = sourceMarkdown
			default:
				e.SourceType = valueString
			}
		default:
			r.log.Warn("Unknown front matter key, ignoring", logPath(path), logKey(rawKey))
		}
	}

	if e.PublishDate.IsZero() {
		if d, err := extractDateFromFilename(fileBaseName, "2006-01-02"); err == nil {
			e.PublishDate = *d
		} else {
			r.log.Warn("Entry has no date, using now", logPath(path))
			e.PublishDate = r.now()
		}
	}
	if e.ID == "" {
		e.ID = fileBaseName
	}
	if e.EntryURL == "" {
		e.EntryURL = e.DateURL() + "/" + sortKey(fileBaseName) + ".html"
	}

	if e.SourceType == sourceHTML {
		e.Body = string(body)
		e.MoreBody = string(more)
	} else {
		e.Body = r.toHtml.render(body)
		if len(bytes.TrimSpace(more)) > 0 {
			e.MoreBody = r.toHtml.render(more)
		}
	}
	return e, nil
}

func extractDateFromFilename(filename string, dateStampFormat string) (*time.Time, error) {
	if len(filename) < len(dateStampFormat)+1 {
		return nil, fmt.Errorf("skipping %v, name too short", filename)
	}

	dateStr := filename[:len(dateStampFormat)]
	date, err := time.Parse(dateStampFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date stamp in %v", filename)
	}
	return &date, nil
}

func parseEntryDate(value any) (time.Time, bool) {
	if t, ok := value.(time.Time); ok {
		return t, true
	}
	s := strings.TrimSpace(fmt.Sprint(value))
	for _, layout := range entryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toStringList(value any) []string {
	var raw []string
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	case []string:
		raw = v
	default:
		raw = strings.Split(fmt.Sprint(v), ",")
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// readEntries loads every entry below dir. Unreadable entries are logged and
// skipped.
func (r *entryReader) readEntries(dir string) ([]*Entry, error) {
	files, err := findEntryFiles(dir, entryFileExtensions, r.log)
	if err != nil {
		return nil, err
	}
	out := make([]*Entry, 0, len(files))
	for _, f := range files {
		e, err := r.readEntryFromFile(f)
		if err != nil {
			r.log.Error("Skipping entry", logPath(f), logError(err))
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
