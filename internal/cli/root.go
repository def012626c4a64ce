// Package cli implements the verlog command line: rendering, serving and
// checking a versioned changelog.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/verlog/internal/build"
	clierrors "github.com/ariel-frischer/verlog/internal/errors"
)

// Command groups for organized help output
const (
	GroupPages         = "pages"
	GroupDiagnostics   = "diagnostics"
	GroupConfiguration = "configuration"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	source     string
	logLevel   string
	debug      bool
}

var rootCmd = NewRootCmd()

// NewRootCmd builds the verlog command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "verlog",
		Short: "Render a versioned changelog into an HTML page",
		Long: `verlog renders a versioned changelog into an HTML page.

It reads a manifest (versions-index.json) listing one JSON file per release,
fetches every release concurrently, and renders one block per version into the
page's #changelog-container element. Releases that fail to load are logged and
left out; the rest keep manifest order.

The data source is an http(s) base URL or a local directory.

Source: ` + build.SourceURL,
		Example: `  # Render the built-in page from a local directory
  verlog render --source ./public -o changelog.html

  # Serve the page, re-rendered on every request
  verlog serve --source ./public --addr :8080

  # Check that every version file loads
  verlog check --source https://example.com/changelog/

  # Print the changelog in the terminal
  verlog list`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(),
			fmt.Sprintf("Run '%s --help' for the list of flags", c.CommandPath()))
	})

	cmd.AddGroup(
		&cobra.Group{ID: GroupPages, Title: "Pages:"},
		&cobra.Group{ID: GroupDiagnostics, Title: "Diagnostics:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (default: .verlog/config.yml)")
	flags.StringVarP(&opts.source, "source", "s", "", "Data source: http(s) base URL or local directory")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging (same as --log-level debug)")

	cmd.AddCommand(
		newRenderCmd(opts),
		newServeCmd(opts),
		newListCmd(opts),
		newCheckCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	reportError(rootCmd.ErrOrStderr(), err)
	return err
}

func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
