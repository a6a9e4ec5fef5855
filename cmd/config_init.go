package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/cellkit/internal/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write a commented default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if cfgFile != "" {
			path = cfgFile
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(configInitCmd)
}
