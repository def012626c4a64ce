package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/verlog/internal/changelog"
	"github.com/ariel-frischer/verlog/internal/progress"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the manifest and every version file load",
		Long: `Fetch the manifest and every version file it lists, and report each one.
Failures are shown with their kind:

  transport   the request could not be made or the file could not be read
  status      the server answered with a non-2xx status (missing files are 404)
  malformed   the body is not valid JSON or lacks a required field

Exits with status 1 if anything failed.`,
		Example: `  # Check a local directory
  verlog check --source ./public

  # Check a deployed changelog in CI
  verlog check --source https://example.com/changelog/ || exit 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root)
		},
	}
	cmd.GroupID = GroupDiagnostics

	cmd.Flags().Int("max-parallel", 0, "Concurrent version fetches (0 = unbounded)")

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions) error {
	e, err := setup(cmd, root)
	if err != nil {
		return err
	}
	loader, err := e.newLoader(nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	display := progress.NewDisplay(out, terminalCaps(out))
	fmt.Fprintf(out, "Checking %s\n", loader.Source())

	index, err := loader.FetchIndex(cmd.Context())
	if err != nil {
		display.Failure(fmt.Sprintf("%s: %s", e.cfg.IndexFile, describeFailure(err)))
		return NewExitError(ExitCheckFailed)
	}
	display.Success(fmt.Sprintf("%s (%d %s)", e.cfg.IndexFile, len(index), plural(len(index), "version file", "version files")))

	results := loader.FetchAll(cmd.Context(), index)
	failed := 0
	for _, res := range results {
		path := loader.VersionPath(res.Name)
		if !res.OK() {
			failed++
			display.Failure(fmt.Sprintf("%s: %s", path, describeFailure(res.Err)))
			continue
		}
		display.Success(fmt.Sprintf("%s: version %s", path, res.Record.Version))
	}

	fmt.Fprintf(out, "%d of %d version files loaded\n", len(results)-failed, len(results))
	if failed > 0 {
		return NewExitError(ExitCheckFailed)
	}
	return nil
}

// describeFailure renders a fetch error as "kind (detail)".
func describeFailure(err error) string {
	fe := changelog.AsFetchError(err)
	if fe == nil {
		return err.Error()
	}
	switch fe.Kind {
	case changelog.FailureStatus:
		return fmt.Sprintf("%s (%d)", fe.Kind, fe.StatusCode)
	default:
		return fmt.Sprintf("%s (%v)", fe.Kind, fe.Err)
	}
}
