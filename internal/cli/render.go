package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/verlog/internal/errors"
	"github.com/ariel-frischer/verlog/internal/progress"
	"github.com/ariel-frischer/verlog/internal/site"
	"github.com/ariel-frischer/verlog/internal/watch"
)

type renderOptions struct {
	watch bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the changelog into the host page",
		Long: `Load the manifest and every version file, render them into the host page's
container element, and write the whole page.

Version files that fail to load are logged and skipped. If the container
element is missing the page is written unchanged and an error is logged.`,
		Example: `  # Render the built-in page to stdout
  verlog render --source ./public

  # Render a custom page to a file
  verlog render --source https://example.com/changelog/ --page site.html -o out.html

  # Re-render whenever the data changes
  verlog render --source ./public -o ./public/changelog.html --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts)
		},
	}
	cmd.GroupID = GroupPages

	cmd.Flags().String("page", "", "Host page HTML file (default: built-in page)")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("container", "", "Id of the element versions are rendered into")
	cmd.Flags().Bool("raw-html", false, "Insert fetched text without HTML escaping (trusted data only)")
	cmd.Flags().Int("max-parallel", 0, "Concurrent version fetches (0 = unbounded)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render when files in a local source change")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	e, err := setup(cmd, root)
	if err != nil {
		return err
	}
	if opts.watch && e.isRemote() {
		return clierrors.WatchNeedsDirectory(e.cfg.Source)
	}

	builder, err := e.newBuilder(nil)
	if err != nil {
		return err
	}

	display := progress.NewDisplay(cmd.ErrOrStderr(), terminalCaps(cmd.ErrOrStderr()))
	r := &renderer{builder: builder, display: display, out: e.cfg.Output, stdout: cmd.OutOrStdout()}

	if err := r.renderOnce(cmd.Context()); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirs := []string{e.cfg.Source, filepath.Join(e.cfg.Source, e.cfg.VersionsDir)}
	if e.cfg.Page != "" {
		dirs = append(dirs, filepath.Dir(e.cfg.Page))
	}
	w, err := watch.New(dirs, func() {
		if err := r.renderOnce(ctx); err != nil {
			e.logger.Error("re-render failed", "error", err)
		}
	}, watch.WithIgnore(e.cfg.Output), watch.WithLogger(e.logger))
	if err != nil {
		return clierrors.SourceUnavailable(e.cfg.Source, err)
	}

	e.logger.Info("watching for changes", "source", e.cfg.Source)
	return w.Run(ctx)
}

// renderer runs the pipeline and writes the page, one run at a time.
type renderer struct {
	mu      sync.Mutex
	builder *site.Builder
	display *progress.Display
	out     string
	stdout  io.Writer
}

func (r *renderer) renderOnce(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	r.display.Start(fmt.Sprintf("Loading changelog from %s", r.builder.Loader.Source()))

	var buf bytes.Buffer
	p, err := r.builder.WriteTo(ctx, &buf)
	if err != nil {
		r.display.Failure("Render failed")
		pagePath := r.builder.PagePath
		if pagePath == "" {
			pagePath = "built-in page"
		}
		return clierrors.PageUnavailable(pagePath, err)
	}

	if r.out == "" {
		if _, err := buf.WriteTo(r.stdout); err != nil {
			r.display.Failure("Render failed")
			return clierrors.OutputFailed("stdout", err)
		}
	} else if err := os.WriteFile(r.out, buf.Bytes(), 0o644); err != nil {
		r.display.Failure("Render failed")
		return clierrors.OutputFailed(r.out, err)
	}

	if !p.Rendered {
		r.display.Failure("Container not found, page written unchanged")
		return nil
	}
	r.display.Success(fmt.Sprintf("Rendered %d %s", p.Versions, plural(p.Versions, "version", "versions")))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
