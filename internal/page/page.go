// Package page loads and serializes the host page that the changelog is rendered into.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
)

//go:embed page.html
var defaultPage []byte

// Default parses the embedded host page. It contains an empty
// #changelog-container element.
func Default() (*goquery.Document, error) {
	return Load(bytes.NewReader(defaultPage))
}

// Load parses a host page from r.
func Load(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing host page: %w", err)
	}
	return doc, nil
}

// LoadFile parses the host page at path, or the embedded page when path is empty.
func LoadFile(path string) (*goquery.Document, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening host page: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// HTML serializes the whole document, including the doctype.
func HTML(doc *goquery.Document) (string, error) {
	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", fmt.Errorf("serializing page: %w", err)
	}
	return out, nil
}

// Write serializes doc to w.
func Write(w io.Writer, doc *goquery.Document) error {
	out, err := HTML(doc)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
