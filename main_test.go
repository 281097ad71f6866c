package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSiteCopiesStaticFilesAfterRenderFailure(t *testing.T) {
	conf := testSiteConf(t)
	conf.TemplateDir = t.TempDir()

	err := renderSite(conf, false, discardLogger())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParseFailure))
	assert.FileExists(t, filepath.Join(conf.OutDir, "static", "style.css"))
}
