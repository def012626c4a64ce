package changelog

import (
	"context"
	"io"
	"log/slog"
	"path"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultIndexFile is the manifest path relative to the source root.
	DefaultIndexFile = "versions-index.json"
	// DefaultVersionsDir holds the per-version files relative to the source root.
	DefaultVersionsDir = "versions"
)

// Resource kinds reported to a Recorder.
const (
	ResourceIndex   = "index"
	ResourceVersion = "version"
)

// Recorder observes fetch outcomes. outcome is "ok" or a FailureKind.
type Recorder interface {
	ObserveFetch(resource, outcome string)
}

// Result is the outcome of fetching one version file.
// Exactly one of Record and Err is set.
type Result struct {
	Name   string
	Record *VersionRecord
	Err    error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Loader fetches the manifest and version files from a Source.
type Loader struct {
	source      Source
	logger      *slog.Logger
	recorder    Recorder
	indexFile   string
	versionsDir string
	maxParallel int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder sets a Recorder for fetch outcomes.
func WithRecorder(r Recorder) LoaderOption {
	return func(l *Loader) {
		l.recorder = r
	}
}

// WithIndexFile overrides the manifest path.
func WithIndexFile(name string) LoaderOption {
	return func(l *Loader) {
		if name != "" {
			l.indexFile = name
		}
	}
}

// WithVersionsDir overrides the directory holding version files.
func WithVersionsDir(dir string) LoaderOption {
	return func(l *Loader) {
		if dir != "" {
			l.versionsDir = dir
		}
	}
}

// WithMaxParallel bounds concurrent version fetches. n <= 0 means unbounded.
func WithMaxParallel(n int) LoaderOption {
	return func(l *Loader) {
		l.maxParallel = n
	}
}

// NewLoader creates a Loader reading from source.
func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:      source,
		logger:      slog.Default(),
		indexFile:   DefaultIndexFile,
		versionsDir: DefaultVersionsDir,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Source returns the loader's source.
func (l *Loader) Source() Source {
	return l.source
}

// FetchIndex loads the manifest, returning a *FetchError on failure.
func (l *Loader) FetchIndex(ctx context.Context) (VersionIndex, error) {
	var index VersionIndex
	err := l.fetch(ctx, l.indexFile, func(r io.Reader) error {
		var err error
		index, err = ParseIndex(r)
		return err
	})
	l.observe(ResourceIndex, err)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// LoadIndex loads the manifest. Failures are logged and yield an empty index,
// so callers cannot tell a failed fetch from a manifest with no versions.
func (l *Loader) LoadIndex(ctx context.Context) VersionIndex {
	index, err := l.FetchIndex(ctx)
	if err != nil {
		l.logFailure("error loading versions index", err)
		return VersionIndex{}
	}
	return index
}

// VersionPath returns the resource path of a version file.
func (l *Loader) VersionPath(filename string) string {
	return path.Join(l.versionsDir, filename)
}

// FetchVersion loads one version file, returning a *FetchError on failure.
func (l *Loader) FetchVersion(ctx context.Context, filename string) (*VersionRecord, error) {
	var rec *VersionRecord
	err := l.fetch(ctx, l.VersionPath(filename), func(r io.Reader) error {
		var err error
		rec, err = ParseVersion(r)
		return err
	})
	l.observe(ResourceVersion, err)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadVersion loads one version file. Failures are logged with the filename
// and yield nil.
func (l *Loader) LoadVersion(ctx context.Context, filename string) *VersionRecord {
	rec, err := l.FetchVersion(ctx, filename)
	if err != nil {
		l.logFailure("error loading version", err, slog.String("file", filename))
		return nil
	}
	return rec
}

// FetchAll fetches every file in names concurrently and waits for all of
// them. One failure never cancels the others. Results are in names order.
func (l *Loader) FetchAll(ctx context.Context, names []string) []Result {
	results := make([]Result, len(names))
	l.each(len(names), func(i int) {
		rec, err := l.FetchVersion(ctx, names[i])
		results[i] = Result{Name: names[i], Record: rec, Err: err}
	})
	return results
}

// LoadAll runs the full load: manifest, then LoadVersion for every listed
// file. Failed files are dropped; the remaining records keep manifest order.
func (l *Loader) LoadAll(ctx context.Context) []VersionRecord {
	index := l.LoadIndex(ctx)

	slots := make([]*VersionRecord, len(index))
	l.each(len(index), func(i int) {
		slots[i] = l.LoadVersion(ctx, index[i])
	})

	records := make([]VersionRecord, 0, len(slots))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// each calls fn(0..n-1) concurrently, at most maxParallel at a time, and
// waits for all calls to return.
func (l *Loader) each(n int, fn func(i int)) {
	var g errgroup.Group
	if l.maxParallel > 0 {
		g.SetLimit(l.maxParallel)
	}
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// fetch opens name and hands the body to parse. Parse errors become
// malformed failures.
func (l *Loader) fetch(ctx context.Context, name string, parse func(io.Reader) error) error {
	body, err := l.source.Open(ctx, name)
	if err != nil {
		if AsFetchError(err) == nil {
			err = &FetchError{Resource: name, Kind: FailureTransport, Err: err}
		}
		return err
	}
	defer body.Close()

	if err := parse(body); err != nil {
		return &FetchError{Resource: name, Kind: FailureMalformed, Err: err}
	}
	return nil
}

func (l *Loader) observe(resource string, err error) {
	if l.recorder == nil {
		return
	}
	outcome := "ok"
	if fe := AsFetchError(err); fe != nil {
		outcome = string(fe.Kind)
	} else if err != nil {
		outcome = string(FailureTransport)
	}
	l.recorder.ObserveFetch(resource, outcome)
}

func (l *Loader) logFailure(msg string, err error, attrs ...any) {
	args := append([]any{}, attrs...)
	if fe := AsFetchError(err); fe != nil {
		args = append(args, slog.String("resource", fe.Resource), slog.String("kind", string(fe.Kind)))
		if fe.StatusCode != 0 {
			args = append(args, slog.Int("status", fe.StatusCode))
		}
	}
	args = append(args, slog.Any("error", err))
	l.logger.Error(msg, args...)
}
