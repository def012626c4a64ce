package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTerminal_Plain(t *testing.T) {
	records := []VersionRecord{
		{Version: "1.1", Date: "2024-02-01", Updates: []UpdateItem{
			{Text: "Dark mode", Type: TagFeature},
			{Text: "Docs refresh"},
		}},
		{Version: "1.0", Updates: []UpdateItem{{Text: "Crash on start", Type: TagBugfix}}},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(records, &buf, FormatOptions{Plain: true, MaxWidth: 80}))

	want := strings.Join([]string{
		"## Version 1.1 (2024-02-01)",
		"  - [Yeni] Dark mode",
		"  - Docs refresh",
		"",
		"## Version 1.0",
		"  - [Bugfix] Crash on start",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestFormatTerminal_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(nil, &buf, FormatOptions{Plain: true}))
	assert.Empty(t, buf.String())
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"fits": {
			text:     "short line",
			maxWidth: 20,
			want:     "short line",
		},
		"wraps at space": {
			text:     "one two three four",
			maxWidth: 9,
			want:     "one two\n    three\n    four",
		},
		"no width": {
			text:     "anything goes here",
			maxWidth: 0,
			want:     "anything goes here",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "    "))
		})
	}
}
