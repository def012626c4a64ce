package changelog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	tests := map[string]struct {
		input        string
		want         VersionIndex
		wantErr      bool
		wantMissing  bool
		wantErrMatch string
	}{
		"two files": {
			input: `{"versionFiles":["v1.json","v2.json"]}`,
			want:  VersionIndex{"v1.json", "v2.json"},
		},
		"empty list": {
			input: `{"versionFiles":[]}`,
			want:  VersionIndex{},
		},
		"extra fields ignored": {
			input: `{"versionFiles":["a.json"],"generated":"2024-01-01"}`,
			want:  VersionIndex{"a.json"},
		},
		"missing field": {
			input:       `{}`,
			wantErr:     true,
			wantMissing: true,
		},
		"null field": {
			input:       `{"versionFiles":null}`,
			wantErr:     true,
			wantMissing: true,
		},
		"wrong type": {
			input:        `{"versionFiles":"v1.json"}`,
			wantErr:      true,
			wantErrMatch: "parsing versions index JSON",
		},
		"empty body": {
			input:        ``,
			wantErr:      true,
			wantErrMatch: "parsing versions index JSON",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseIndex(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantMissing, IsMissingField(err))
				if tt.wantErrMatch != "" {
					assert.Contains(t, err.Error(), tt.wantErrMatch)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := map[string]struct {
		input       string
		want        *VersionRecord
		wantErr     bool
		wantMissing bool
	}{
		"full record": {
			input: `{"version":"1.0","date":"2024-01-01","updates":[{"text":"Added X","type":"feature"},{"text":"Tweak"}]}`,
			want: &VersionRecord{
				Version: "1.0",
				Date:    "2024-01-01",
				Updates: []UpdateItem{{Text: "Added X", Type: TagFeature}, {Text: "Tweak"}},
			},
		},
		"no updates": {
			input: `{"version":"0.1","date":"?"}`,
			want:  &VersionRecord{Version: "0.1", Date: "?"},
		},
		"empty version string is present": {
			input: `{"version":"","updates":[]}`,
			want:  &VersionRecord{Version: "", Updates: []UpdateItem{}},
		},
		"missing version": {
			input:       `{"date":"2024-01-01"}`,
			wantErr:     true,
			wantMissing: true,
		},
		"not an object": {
			input:   `["1.0"]`,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseVersion(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantMissing, IsMissingField(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := map[string]struct {
		err  *FetchError
		want string
	}{
		"status": {
			err:  &FetchError{Resource: "versions/v2.json", Kind: FailureStatus, StatusCode: 404},
			want: "loading versions/v2.json: unexpected status code: 404",
		},
		"transport": {
			err:  &FetchError{Resource: "versions-index.json", Kind: FailureTransport, Err: cause},
			want: "loading versions-index.json: transport: connection refused",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	wrapped := &FetchError{Resource: "x", Kind: FailureTransport, Err: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, AsFetchError(cause))
	assert.Same(t, wrapped, AsFetchError(wrapped))
}

func TestTag_IsKnown(t *testing.T) {
	for _, tag := range ValidTags() {
		assert.True(t, tag.IsKnown(), string(tag))
		assert.NotEmpty(t, TagLabel(tag))
	}
	assert.False(t, Tag("").IsKnown())
	assert.False(t, Tag("docs").IsKnown())
}
