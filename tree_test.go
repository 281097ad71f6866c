package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageTreeString(t *testing.T) {
	x := newTestIndex()
	require.NoError(t, x.Ingest(published("a", "2023-01-05", "Go")))
	require.NoError(t, x.Ingest(published("b", "2024-02-01", "Go")))

	out := pageTreeString(x, "Test blog")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Test blog", lines[0])
	assert.Contains(t, out, "category go -> categories/go.html [category.html]")
	assert.Contains(t, out, "year 2024 -> 2024/index.html [blogyear.html]")
	assert.Contains(t, out, "February (1)")
	assert.Contains(t, out, "Jan 5, 2023 Title a")
	assert.Contains(t, out, "└── ")
}
