// Package site runs the page pipeline: load the changelog data, render it
// into a fresh copy of the host page, and serialize the result.
package site

import (
	"context"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ariel-frischer/verlog/internal/changelog"
	"github.com/ariel-frischer/verlog/internal/metrics"
	"github.com/ariel-frischer/verlog/internal/page"
)

// Builder produces rendered changelog pages. It holds no per-page state, so
// one Builder can serve concurrent requests.
type Builder struct {
	Loader      *changelog.Loader
	Renderer    *changelog.Renderer
	ContainerID string
	// PagePath is the host page file. Empty uses the embedded page.
	PagePath string
	Metrics  *metrics.Metrics
}

// Page is the outcome of one pipeline run.
type Page struct {
	Doc *goquery.Document
	// Versions is the number of version blocks rendered.
	Versions int
	// Rendered is false when the container was missing.
	Rendered bool
}

// Build runs the pipeline once. The only error is a host page that cannot be
// read or parsed; data failures shrink the page instead.
func (b *Builder) Build(ctx context.Context) (*Page, error) {
	start := time.Now()

	doc, err := page.LoadFile(b.PagePath)
	if err != nil {
		return nil, err
	}

	records := b.Loader.LoadAll(ctx)

	containerID := b.ContainerID
	if containerID == "" {
		containerID = changelog.DefaultContainerID
	}
	ok := b.Renderer.RenderPage(doc, containerID, records)

	versions := 0
	if ok {
		versions = len(records)
	}
	b.Metrics.ObserveRender(ok, versions, time.Since(start))

	return &Page{Doc: doc, Versions: versions, Rendered: ok}, nil
}

// WriteTo builds the page and writes the HTML to w.
func (b *Builder) WriteTo(ctx context.Context, w io.Writer) (*Page, error) {
	p, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := page.Write(w, p.Doc); err != nil {
		return nil, err
	}
	return p, nil
}
