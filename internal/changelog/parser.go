package changelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// FailureKind classifies why a resource could not be loaded.
type FailureKind string

const (
	// FailureTransport covers network and I/O errors before a response exists.
	FailureTransport FailureKind = "transport"
	// FailureStatus is a response with a non-success status.
	FailureStatus FailureKind = "status"
	// FailureMalformed is a body that is not valid JSON or lacks a required field.
	FailureMalformed FailureKind = "malformed"
)

// FetchError reports a failed load of a single resource.
type FetchError struct {
	Resource   string
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FailureStatus {
		return fmt.Sprintf("loading %s: unexpected status code: %d", e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("loading %s: %s: %v", e.Resource, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError returns the *FetchError in err's chain, or nil.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// errMissingField is wrapped by malformed errors caused by a failed presence check.
var errMissingField = errors.New("required field is missing")

// ParseIndex decodes a manifest body. The versionFiles field must be present.
func ParseIndex(r io.Reader) (VersionIndex, error) {
	var m manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing versions index JSON: %w", err)
	}
	if m.VersionFiles == nil {
		return nil, fmt.Errorf("versionFiles: %w", errMissingField)
	}
	return VersionIndex(*m.VersionFiles), nil
}

// ParseVersion decodes a version file body. The version field must be present.
func ParseVersion(r io.Reader) (*VersionRecord, error) {
	var raw struct {
		Version *string      `json:"version"`
		Date    string       `json:"date"`
		Updates []UpdateItem `json:"updates"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing version JSON: %w", err)
	}
	if raw.Version == nil {
		return nil, fmt.Errorf("version: %w", errMissingField)
	}
	return &VersionRecord{
		Version: *raw.Version,
		Date:    raw.Date,
		Updates: raw.Updates,
	}, nil
}

// IsMissingField reports whether err came from a failed presence check.
func IsMissingField(err error) bool {
	return errors.Is(err, errMissingField)
}
