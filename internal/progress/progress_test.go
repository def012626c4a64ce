package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDisplay_NoTTY(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf, TerminalCapabilities{})

	d.Start("loading versions")
	d.Success("rendered 3 versions")
	d.Start("loading versions")
	d.Failure("container not found")

	assert.Equal(t, "[OK] rendered 3 versions\n[FAIL] container not found\n", buf.String())
}
