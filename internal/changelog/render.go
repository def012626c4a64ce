package changelog

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
)

// DefaultContainerID is the id of the element version blocks are rendered into.
const DefaultContainerID = "changelog-container"

var blockTemplate = template.Must(template.New("version-block").Parse(`<div class="version-block">
  <div class="version-header">
    <h2>Version {{.Version}}</h2>
    <span class="version-date">{{.Date}}</span>
  </div>
  <ul class="update-list">
    {{- range .Updates}}
    <li class="update-item">{{.Text}}{{if .Type}} <span class="tag {{.Type}}">{{.Label}}</span>{{end}}</li>
    {{- end}}
  </ul>
</div>`))

type blockView struct {
	Version template.HTML
	Date    template.HTML
	Updates []updateView
}

type updateView struct {
	Text  template.HTML
	Type  string
	Label string
}

// Renderer turns version records into version blocks.
type Renderer struct {
	logger  *slog.Logger
	rawHTML bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderLogger sets the logger used for render diagnostics.
func WithRenderLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRawHTML inserts version, date and update text without escaping.
// Only enable this for trusted data.
func WithRawHTML(raw bool) RendererOption {
	return func(r *Renderer) {
		r.rawHTML = raw
	}
}

// NewRenderer creates a Renderer. Text is HTML-escaped unless WithRawHTML is set.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces the children of container with one block per record, in order.
// Calling it repeatedly with the same records yields the same content.
func (r *Renderer) Render(container *goquery.Selection, records []VersionRecord) error {
	container.Empty()

	for i := range records {
		block, err := r.Block(&records[i])
		if err != nil {
			return fmt.Errorf("rendering version %s: %w", records[i].Version, err)
		}
		container.AppendHtml(block)
	}

	return nil
}

// RenderPage resolves the element with id containerID in doc and renders into it.
// A missing container is logged and nothing is rendered; it returns false in that case.
func (r *Renderer) RenderPage(doc *goquery.Document, containerID string, records []VersionRecord) bool {
	container := FindByID(doc, containerID)
	if container.Length() == 0 {
		r.logger.Error("changelog container not found", slog.String("container", containerID))
		return false
	}

	if err := r.Render(container, records); err != nil {
		r.logger.Error("error rendering changelog", slog.Any("error", err))
		return false
	}

	return true
}

// FindByID returns the first element whose id attribute equals id exactly.
// The id is compared as a string, never parsed as a selector, so ids such as
// "v1.log" or "a b" match only themselves.
func FindByID(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}

// Block renders the markup of a single version block.
func (r *Renderer) Block(rec *VersionRecord) (string, error) {
	view := blockView{
		Version: r.html(rec.Version),
		Date:    r.html(rec.Date),
		Updates: make([]updateView, 0, len(rec.Updates)),
	}
	for _, u := range rec.Updates {
		view.Updates = append(view.Updates, updateView{
			Text:  r.html(u.Text),
			Type:  string(u.Type),
			Label: TagLabel(u.Type),
		})
	}

	var buf bytes.Buffer
	if err := blockTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) html(s string) template.HTML {
	if r.rawHTML {
		return template.HTML(s)
	}
	return template.HTML(template.HTMLEscapeString(s))
}
