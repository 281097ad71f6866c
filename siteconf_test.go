package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfJSONAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blogengine.json")
	writeFile(t, path, `{"SiteTitle": "My blog", "SourceDir": "content", "OutDir": "/tmp/out", "WebBlogLocation": "/b"}`)

	conf, err := readConf(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "My blog", conf.SiteTitle)
	assert.Equal(t, filepath.Join(dir, "content"), conf.SourceDir)
	assert.Equal(t, "/tmp/out", conf.OutDir)
	assert.Equal(t, "/b/", conf.WebBlogLocation)
	assert.Equal(t, "/b/d6plinks/", conf.PlinkPrefix)
	assert.Equal(t, filepath.Join(dir, "tmpl"), conf.TemplateDir)
	assert.Equal(t, filepath.Join(dir, "content", "static"), conf.StaticFilesDir)
	assert.Equal(t, "blogentry.html", conf.Templates.Entry)
	assert.Equal(t, 10, conf.EntriesOnFrontPage)
	assert.Equal(t, filepath.Join(dir, "content", "documents"), conf.documentDir())
}

func TestReadConfYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blogengine.yaml")
	writeFile(t, path, `
siteTitle: From YAML
sourceDir: src
outDir: out
entriesInFeed: 3
templates:
  entry: post.html
`)

	conf, err := readConf(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "From YAML", conf.SiteTitle)
	assert.Equal(t, 3, conf.EntriesInFeed)
	assert.Equal(t, "post.html", conf.Templates.Entry)
	assert.Equal(t, "index.html", conf.Templates.Index)
}

func TestReadConfEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blogengine.json")
	writeFile(t, path, `{"SourceDir": "content", "OutDir": "out"}`)
	t.Setenv(envOutDir, "/srv/www")

	conf, err := readConf(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "/srv/www", conf.OutDir)
}

func TestReadConfDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blogengine.json")
	writeFile(t, path, `{"OutDir": "out"}`)
	writeFile(t, filepath.Join(dir, ".env"), envSourceDir+"=/data/blog\n")
	t.Setenv(envSourceDir, "")
	os.Unsetenv(envSourceDir)

	conf, err := readConf(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "/data/blog", conf.SourceDir)
}

func TestReadConfRequiresSourceDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogengine.json")
	writeFile(t, path, `{"OutDir": "out"}`)

	_, err := readConf(path, discardLogger())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConfig))
}

func TestReadConfMissingFile(t *testing.T) {
	_, err := readConf(filepath.Join(t.TempDir(), "none.json"), discardLogger())
	assert.True(t, IsKind(err, KindConfig))
}
