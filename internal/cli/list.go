package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/verlog/internal/changelog"
	clierrors "github.com/ariel-frischer/verlog/internal/errors"
)

// Output formats for list
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type listOptions struct {
	plain  bool
	format string
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the loaded changelog in the terminal",
		Long: `Load the changelog the same way render does and print it instead of
rendering HTML. Versions that fail to load are logged and skipped.`,
		Example: `  # Colored terminal output
  verlog list

  # Plain text for piping
  verlog list --plain

  # Machine-readable
  verlog list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts)
		},
	}
	cmd.GroupID = GroupDiagnostics

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Plain text output (no colors)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "Output format: text, json, yaml")
	cmd.Flags().Int("max-parallel", 0, "Concurrent version fetches (0 = unbounded)")

	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions) error {
	switch opts.format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return clierrors.InvalidFormat(opts.format, FormatText, FormatJSON, FormatYAML)
	}

	e, err := setup(cmd, root)
	if err != nil {
		return err
	}
	loader, err := e.newLoader(nil)
	if err != nil {
		return err
	}

	records := loader.LoadAll(cmd.Context())
	out := cmd.OutOrStdout()

	switch opts.format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(records))
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(records)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No versions found.")
		return nil
	}

	plain := opts.plain || !terminalCaps(out).SupportsColor
	return changelog.FormatTerminal(records, out, changelog.FormatOptions{Plain: plain})
}

// nonNil makes an empty changelog encode as [] rather than null.
func nonNil(records []changelog.VersionRecord) []changelog.VersionRecord {
	if records == nil {
		return []changelog.VersionRecord{}
	}
	return records
}
