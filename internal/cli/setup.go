package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/verlog/internal/changelog"
	"github.com/ariel-frischer/verlog/internal/config"
	clierrors "github.com/ariel-frischer/verlog/internal/errors"
	"github.com/ariel-frischer/verlog/internal/logging"
	"github.com/ariel-frischer/verlog/internal/metrics"
	"github.com/ariel-frischer/verlog/internal/progress"
	"github.com/ariel-frischer/verlog/internal/site"
)

// env is the per-invocation state every command starts from.
type env struct {
	cfg    *config.Configuration
	logger *slog.Logger
}

// setup loads configuration, applies flag overrides and builds the logger.
// Logs go to the command's stderr so stdout stays clean for page output.
func setup(cmd *cobra.Command, opts *rootOptions) (*env, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: opts.configPath})
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}

	applyFlagOverrides(cmd, cfg)
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	// The file and environment already passed validation, so anything that
	// fails now came from a flag.
	if err := config.ValidateConfigValues(cfg, "command line flags"); err != nil {
		return nil, clierrors.NewArgumentError(err.Error(), "Run 'verlog --help' to see valid flag values")
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, clierrors.NewArgumentError(err.Error(), "Valid levels: debug, info, warn, error")
	}

	return &env{cfg: cfg, logger: logger}, nil
}

// applyFlagOverrides copies explicitly set flags over config values.
// Flags that were not passed leave the config (and its defaults) alone.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if changed("page") {
		cfg.Page, _ = flags.GetString("page")
	}
	if changed("out") {
		cfg.Output, _ = flags.GetString("out")
	}
	if changed("container") {
		cfg.ContainerID, _ = flags.GetString("container")
	}
	if changed("raw-html") {
		cfg.RawHTML, _ = flags.GetBool("raw-html")
	}
	if changed("max-parallel") {
		cfg.MaxParallel, _ = flags.GetInt("max-parallel")
	}
	if changed("addr") {
		cfg.ListenAddr, _ = flags.GetString("addr")
	}
}

// newLoader opens the configured source and builds a Loader on it.
func (e *env) newLoader(recorder changelog.Recorder) (*changelog.Loader, error) {
	source, err := changelog.NewSource(e.cfg.Source, e.cfg.TimeoutDuration())
	if err != nil {
		return nil, clierrors.SourceUnavailable(e.cfg.Source, err)
	}

	opts := []changelog.LoaderOption{
		changelog.WithLogger(e.logger),
		changelog.WithIndexFile(e.cfg.IndexFile),
		changelog.WithVersionsDir(e.cfg.VersionsDir),
		changelog.WithMaxParallel(e.cfg.MaxParallel),
	}
	if recorder != nil {
		opts = append(opts, changelog.WithRecorder(recorder))
	}
	return changelog.NewLoader(source, opts...), nil
}

// newBuilder wires the page pipeline. registry may be nil when metrics are
// not exposed.
func (e *env) newBuilder(registry prometheus.Registerer) (*site.Builder, error) {
	var m *metrics.Metrics
	if registry != nil {
		m = metrics.New(metrics.WithRegistry(registry))
	}

	var recorder changelog.Recorder
	if m != nil {
		recorder = m
	}
	loader, err := e.newLoader(recorder)
	if err != nil {
		return nil, err
	}

	return &site.Builder{
		Loader: loader,
		Renderer: changelog.NewRenderer(
			changelog.WithRenderLogger(e.logger),
			changelog.WithRawHTML(e.cfg.RawHTML),
		),
		ContainerID: e.cfg.ContainerID,
		PagePath:    e.cfg.Page,
		Metrics:     m,
	}, nil
}

// isRemote reports whether the configured source is a URL.
func (e *env) isRemote() bool {
	return strings.HasPrefix(e.cfg.Source, "http://") || strings.HasPrefix(e.cfg.Source, "https://")
}

// terminalCaps returns real capabilities only when w is the process's
// terminal; buffers and pipes get plain output.
func terminalCaps(w io.Writer) progress.TerminalCapabilities {
	if f, ok := w.(*os.File); ok && (f == os.Stderr || f == os.Stdout) {
		return progress.DetectTerminalCapabilities()
	}
	return progress.TerminalCapabilities{}
}
