package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const commentDateLayout = "January 2, 2006 3:04:05 PM"

var commentFileExtensions = []string{".comment", ".json"}

// readCommentFromFile decodes one comment. Field names are matched case
// insensitively and a few legacy aliases are accepted.
func readCommentFromFile(path string, toHtml renderer, logger *slog.Logger) (*Comment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ioFailure(path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, parseFailure(path, err)
	}

	c := &Comment{}
	if info, err := os.Stat(path); err == nil {
		c.Created = info.ModTime()
	}

	for rawKey, value := range raw {
		s := ""
		if value != nil {
			s = fmt.Sprint(value)
		}
		switch strings.ToLower(rawKey) {
		case "commentor", "author":
			c.Author = s
		case "website", "url":
			c.WebSite = s
		case "body", "comment":
			c.Body = s
		case "parentid":
			c.ParentID = s
		case "unid", "commentid":
			c.ID = s
		case "email":
			c.Email = s
		case "markdown":
			c.Markdown, _ = strconv.ParseBool(s)
		case "created":
			if t, err := time.Parse(commentDateLayout, s); err == nil {
				c.Created = t
			} else if t, err := time.Parse(time.RFC3339, s); err == nil {
				c.Created = t
			} else {
				logger.Warn("Cannot parse comment date, keeping file time", logPath(path), slog.String("created", s))
			}
		}
	}

	if c.Markdown && c.Body != "" {
		c.Body = toHtml.render([]byte(c.Body))
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return c, nil
}

// readComments loads all comments below dir.
func readComments(dir string, toHtml renderer, logger *slog.Logger) ([]*Comment, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, missingSource(dir)
	}

	var out []*Comment
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Cannot read", logPath(path), logError(err))
			return nil
		}
		if d.IsDir() || !hasAnySuffix(path, commentFileExtensions) {
			return nil
		}
		c, err := readCommentFromFile(path, toHtml, logger)
		if err != nil {
			logger.Error("Skipping comment", logPath(path), logError(err))
			return nil
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
