package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/verlog/internal/changelog"
	"github.com/ariel-frischer/verlog/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered changelog over HTTP",
		Long: `Serve the changelog page at /. Every request loads the data and renders a
fresh page, so changes to the source show up on reload.

Also served:
  /metrics               Prometheus metrics
  /healthz               Liveness check
  /versions-index.json   Raw manifest (local directory sources only)
  /versions/*            Raw version files (local directory sources only)`,
		Example: `  # Serve a local directory on :8080
  verlog serve --source ./public

  # Serve a remote changelog on another port
  verlog serve --source https://example.com/changelog/ --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root)
		},
	}
	cmd.GroupID = GroupPages

	cmd.Flags().String("addr", "", "Listen address (default: listen_addr from config, :8080)")
	cmd.Flags().String("page", "", "Host page HTML file (default: built-in page)")
	cmd.Flags().String("container", "", "Id of the element versions are rendered into")
	cmd.Flags().Bool("raw-html", false, "Insert fetched text without HTML escaping (trusted data only)")
	cmd.Flags().Int("max-parallel", 0, "Concurrent version fetches (0 = unbounded)")

	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions) error {
	e, err := setup(cmd, root)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	builder, err := e.newBuilder(registry)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Addr:     e.cfg.ListenAddr,
		Builder:  builder,
		Gatherer: registry,
		Logger:   e.logger,
	}
	if dir, ok := builder.Loader.Source().(*changelog.DirSource); ok {
		cfg.DataFS = dir.FS()
		cfg.IndexFile = e.cfg.IndexFile
		cfg.VersionsDir = e.cfg.VersionsDir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg).ListenAndServe(ctx)
}
