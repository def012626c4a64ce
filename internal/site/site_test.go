package site

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/ariel-frischer/verlog/internal/changelog"
	"github.com/ariel-frischer/verlog/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(fsys fstest.MapFS, logs *bytes.Buffer) *Builder {
	logger := slog.New(slog.NewTextHandler(logs, nil))
	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
	return &Builder{
		Loader:   changelog.NewLoader(changelog.NewDirSource(fsys, "mem"), changelog.WithLogger(logger), changelog.WithRecorder(m)),
		Renderer: changelog.NewRenderer(changelog.WithRenderLogger(logger)),
		Metrics:  m,
	}
}

func TestBuild(t *testing.T) {
	tests := map[string]struct {
		fsys         fstest.MapFS
		wantVersions []string
		wantErrors   int
	}{
		"all versions load": {
			fsys: fstest.MapFS{
				"versions-index.json": {Data: []byte(`{"versionFiles":["b.json","a.json"]}`)},
				"versions/a.json":     {Data: []byte(`{"version":"1.0","date":"2024-01-01","updates":[]}`)},
				"versions/b.json":     {Data: []byte(`{"version":"1.1","date":"2024-02-01","updates":[]}`)},
			},
			wantVersions: []string{"Version 1.1", "Version 1.0"},
		},
		"one of three missing": {
			fsys: fstest.MapFS{
				"versions-index.json": {Data: []byte(`{"versionFiles":["c.json","b.json","a.json"]}`)},
				"versions/a.json":     {Data: []byte(`{"version":"1.0","updates":[]}`)},
				"versions/c.json":     {Data: []byte(`{"version":"1.2","updates":[]}`)},
			},
			wantVersions: []string{"Version 1.2", "Version 1.0"},
			wantErrors:   1,
		},
		"no manifest": {
			fsys:       fstest.MapFS{},
			wantErrors: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			b := newBuilder(tt.fsys, &logs)

			p, err := b.Build(context.Background())
			require.NoError(t, err)
			assert.True(t, p.Rendered)
			assert.Equal(t, len(tt.wantVersions), p.Versions)

			var got []string
			p.Doc.Find("#changelog-container .version-block h2").Each(func(_ int, s *goquery.Selection) {
				got = append(got, s.Text())
			})
			assert.Equal(t, tt.wantVersions, got)
			assert.Equal(t, tt.wantErrors, strings.Count(logs.String(), "level=ERROR"))
		})
	}
}

func TestBuild_CustomPageAndContainer(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(`<html><body><ol id="releases"><li>stale</li></ol></body></html>`), 0o644))

	var logs bytes.Buffer
	b := newBuilder(fstest.MapFS{
		"versions-index.json": {Data: []byte(`{"versionFiles":["a.json"]}`)},
		"versions/a.json":     {Data: []byte(`{"version":"1.0","updates":[{"text":"x","type":"feature"}]}`)},
	}, &logs)
	b.PagePath = pagePath
	b.ContainerID = "releases"

	var out bytes.Buffer
	p, err := b.WriteTo(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Versions)
	assert.NotContains(t, out.String(), "stale")
	assert.Contains(t, out.String(), `<span class="tag feature">Yeni</span>`)
}

func TestBuild_MissingContainer(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(`<html><body></body></html>`), 0o644))

	var logs bytes.Buffer
	b := newBuilder(fstest.MapFS{
		"versions-index.json": {Data: []byte(`{"versionFiles":[]}`)},
	}, &logs)
	b.PagePath = pagePath

	p, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, p.Rendered)
	assert.Zero(t, p.Versions)
	assert.Contains(t, logs.String(), "changelog container not found")
}

func TestBuild_BadPagePath(t *testing.T) {
	var logs bytes.Buffer
	b := newBuilder(fstest.MapFS{}, &logs)
	b.PagePath = filepath.Join(t.TempDir(), "missing.html")

	_, err := b.Build(context.Background())
	require.Error(t, err)
}
