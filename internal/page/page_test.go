package page

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	container := doc.Find("#changelog-container")
	assert.Equal(t, 1, container.Length())
	assert.Zero(t, container.Children().Length())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(custom, []byte(`<html><body><section id="news"></section></body></html>`), 0o644))

	tests := map[string]struct {
		path     string
		selector string
		wantErr  bool
	}{
		"embedded page": {
			path:     "",
			selector: "#changelog-container",
		},
		"custom page": {
			path:     custom,
			selector: "#news",
		},
		"missing file": {
			path:    filepath.Join(dir, "nope.html"),
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadFile(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "opening host page")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, doc.Find(tt.selector).Length())
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	doc.Find("#changelog-container").AppendHtml(`<div class="version-block"></div>`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), "doctype should be kept")

	again, err := Load(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1, again.Find("#changelog-container .version-block").Length())
}
