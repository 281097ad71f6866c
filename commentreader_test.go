package main

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCommentAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c1.comment")
	writeFile(t, path, `{
		"Commentor": "Ann",
		"WebSite": "https://ann.example",
		"Comment": "Nice *post*",
		"ParentId": "ABC123",
		"CommentId": "C-1",
		"Markdown": true,
		"eMail": " Ann@Example.com ",
		"created": "October 3, 2017 2:07:04 PM"
	}`)

	c, err := readCommentFromFile(path, newMarkdownRenderer(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "Ann", c.Author)
	assert.Equal(t, "https://ann.example", c.WebSite)
	assert.Equal(t, "ABC123", c.ParentID)
	assert.Equal(t, "C-1", c.ID)
	assert.Contains(t, c.Body, "<em>post</em>")
	assert.Equal(t, time.Date(2017, 10, 3, 14, 7, 4, 0, time.UTC), c.Created)
	sum := md5.Sum([]byte("ann@example.com"))
	assert.Equal(t, "//www.gravatar.com/avatar/"+hex.EncodeToString(sum[:])+".jpg?s=88", c.GravatarURL())
}

func TestReadCommentGeneratesID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c2.json")
	writeFile(t, path, `{"author": "Bob", "body": "plain", "parentid": "X"}`)

	c, err := readCommentFromFile(path, newMarkdownRenderer(), discardLogger())
	require.NoError(t, err)
	_, err = uuid.Parse(c.ID)
	assert.NoError(t, err)
	assert.Equal(t, "plain", c.Body)
	assert.False(t, c.Created.IsZero(), "falls back to file time")
	assert.Empty(t, (&Comment{}).GravatarURL())
}

func TestReadCommentsSkipsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2023", "a.comment"), `{"author": "A", "parentid": "p"}`)
	writeFile(t, filepath.Join(dir, "b.json"), `{broken`)
	writeFile(t, filepath.Join(dir, "c.txt"), `{"author": "C"}`)

	cs, err := readComments(dir, newMarkdownRenderer(), discardLogger())
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "A", cs[0].Author)
}

func TestReadCommentsMissingDirectory(t *testing.T) {
	_, err := readComments(filepath.Join(t.TempDir(), "none"), newMarkdownRenderer(), discardLogger())
	assert.True(t, IsKind(err, KindMissingSource))
}
