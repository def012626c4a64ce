package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/verlog/internal/config"
	clierrors "github.com/ariel-frischer/verlog/internal/errors"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect verlog configuration",
		Long: `Inspect verlog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags
  2. Environment variables (VERLOG_*)
  3. Project config (.verlog/config.yml, or --config)
  4. User config (~/.config/verlog/config.yml)
  5. Built-in defaults`,
		Example: `  # Show the effective configuration
  verlog config show

  # Start a project config from the commented template
  mkdir -p .verlog && verlog config template > .verlog/config.yml`,
	}
	cmd.GroupID = GroupConfiguration

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := setup(cmd, root)
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(e.cfg)
				if err != nil {
					return clierrors.Wrap(err, clierrors.Runtime)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "template",
			Short: "Print a commented config file with every option",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the user and project config file locations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := config.UserConfigPath()
				if err != nil {
					return clierrors.Wrap(err, clierrors.Configuration)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user:    %s\nproject: %s\n", user, config.ProjectConfigPath())
				return nil
			},
		},
	)

	return cmd
}
