package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"pkgview/internal/config"
	"pkgview/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the configuration file",
	Long: `Show the effective configuration, print where it is read from, or
write it to disk as a starting point for editing.

Examples:
  pkgview config show             # Print the effective configuration
  pkgview config path             # Print the config file path
  pkgview -b pip config init      # Write a config with pip as the default`,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

// configFilePath is the file named by --config, or the default path.
func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Encode(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Write the effective configuration, including any global flags such as
--backend or --timeout, to the config file. An existing file is kept
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	ui.SuccessMsg("Wrote %s", path)
	return nil
}
