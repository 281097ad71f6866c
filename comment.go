package main

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

const (
	gravatarBase = "//www.gravatar.com/avatar/"
	gravatarSize = "88"
)

// Comment is a reader comment attached to an entry by ParentID.
type Comment struct {
	ID       string
	ParentID string
	Author   string
	Email    string
	WebSite  string
	Body     string
	Created  time.Time
	Markdown bool
}

// Called from templates
func (c *Comment) FormatCreated() string {
	return c.Created.Format("Monday 02 January 2006 - 15:04 MST")
}

// GravatarURL is empty for comments without an e-mail address.
func (c *Comment) GravatarURL() string {
	if c.Email == "" {
		return ""
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(c.Email))))
	return gravatarBase + hex.EncodeToString(sum[:]) + ".jpg?s=" + gravatarSize
}
