package commands

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/timeportal/internal/config"
)

func configCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// A broken config file must not stop it from being rewritten.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.log = zap.NewNop()
			return nil
		},
	}
	cmd.AddCommand(configInitCmd(e), configPathCmd(e))
	return cmd
}

func configInitCmd(e *env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := e.resolveConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(
					errors.Newf("config %s already exists", path),
					"pass --force to overwrite it",
				)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("wrote " + path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func configPathCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the config file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := e.resolveConfigPath()
			if err != nil {
				return err
			}
			pterm.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (e *env) resolveConfigPath() (string, error) {
	if e.configPath != "" {
		return e.configPath, nil
	}
	return config.Path()
}
