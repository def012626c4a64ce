package changelog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/verlog/internal/build"
)

// DefaultTimeout is the default timeout for HTTP source requests.
const DefaultTimeout = 5 * time.Second

// Source opens changelog resources by path relative to a root.
// Failures are returned as *FetchError.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// String describes the root for log and CLI output.
	String() string
}

// HTTPSource reads resources relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source rooted at baseURL. A nil client gets one
// with DefaultTimeout.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base URL scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Open issues a GET for name resolved against the base URL.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.base.ResolveReference(&url.URL{Path: name})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &FetchError{Resource: name, Kind: FailureTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", build.UserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Resource: name, Kind: FailureTransport, Err: fmt.Errorf("making request: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &FetchError{Resource: name, Kind: FailureStatus, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

func (s *HTTPSource) String() string {
	return s.base.String()
}

// DirSource reads resources from a file system, typically a local directory.
type DirSource struct {
	fsys fs.FS
	root string
}

// NewDirSource creates a source reading from fsys. root is only used for display.
func NewDirSource(fsys fs.FS, root string) *DirSource {
	return &DirSource{fsys: fsys, root: root}
}

// Open opens name inside the file system. A missing file is reported the way
// a web server would report it, as a 404 status failure.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Resource: name, Kind: FailureTransport, Err: err}
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FetchError{Resource: name, Kind: FailureStatus, StatusCode: http.StatusNotFound, Err: err}
		}
		return nil, &FetchError{Resource: name, Kind: FailureTransport, Err: err}
	}
	return f, nil
}

func (s *DirSource) String() string {
	return s.root
}

// FS returns the underlying file system.
func (s *DirSource) FS() fs.FS {
	return s.fsys
}

// NewSource picks a source for location: http(s) URLs become an HTTPSource,
// anything else is treated as a local directory.
func NewSource(location string, timeout time.Duration) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, &http.Client{Timeout: timeout})
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("opening source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %q is not a directory", location)
	}
	return NewDirSource(os.DirFS(location), location), nil
}
