package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_ExitCode(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		want     int
	}{
		"argument":      {category: Argument, want: 3},
		"configuration": {category: Configuration, want: 4},
		"prerequisite":  {category: Prerequisite, want: 4},
		"runtime":       {category: Runtime, want: 1},
		"unknown":       {category: ErrorCategory(42), want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.ExitCode())
		})
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	err := WrapWithMessage(fs.ErrNotExist, Prerequisite, "cannot load host page")
	require.NotNil(t, err)

	assert.Equal(t, "cannot load host page: file does not exist", err.Error())
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, Wrap(nil, Runtime))
}

func TestAsCLIError_FindsWrapped(t *testing.T) {
	inner := InvalidFormat("xml", "text", "json", "yaml")
	outer := fmt.Errorf("list: %w", inner)

	assert.True(t, IsCLIError(outer))
	assert.Same(t, inner, AsCLIError(outer))
	assert.False(t, IsCLIError(errors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatError(t *testing.T) {
	tests := map[string]struct {
		err  *CLIError
		want []string
		skip []string
	}{
		"argument error with usage": {
			err: WatchNeedsDirectory("https://example.com/"),
			want: []string{
				"Error [Argument Error]: --watch needs a local directory source",
				"Usage: verlog render",
				"To fix this:\n  • Point --source",
				"exit status 3",
			},
		},
		"prerequisite error without usage": {
			err:  PageUnavailable("page.html", fs.ErrNotExist),
			want: []string{"Error [Prerequisite Error]: cannot load host page", "exit status 4"},
			skip: []string{"Usage:"},
		},
		"runtime error without remediation": {
			err:  NewRuntimeError("render failed"),
			want: []string{"Error [Runtime Error]: render failed\n", "exit status 1"},
			skip: []string{"To fix this:"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out := FormatError(tt.err, false)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, s := range tt.skip {
				assert.NotContains(t, out, s)
			}
			assert.NotContains(t, out, "\x1b[")
		})
	}

	assert.Empty(t, FormatError(nil, false))
}

func TestFprintError_PlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	FprintError(&buf, InvalidFormat("xml", "text"))

	assert.Equal(t, FormatError(InvalidFormat("xml", "text"), false), buf.String())

	buf.Reset()
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestMessages_Categories(t *testing.T) {
	cause := errors.New("boom")

	tests := map[string]struct {
		err  *CLIError
		want ErrorCategory
	}{
		"invalid config":     {err: InvalidConfig(cause), want: Configuration},
		"source unavailable": {err: SourceUnavailable("./data", cause), want: Prerequisite},
		"page unavailable":   {err: PageUnavailable("page.html", cause), want: Prerequisite},
		"invalid format":     {err: InvalidFormat("xml"), want: Argument},
		"output failed":      {err: OutputFailed("out.html", cause), want: Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Category)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}
