package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/cellkit/internal/config"
	"github.com/zjrosen/cellkit/internal/presentation"
)

var templatesListCmd = &cobra.Command{
	Use:   "templates:list",
	Short: "List the cell templates available to the gallery",
	Long: `List every template in the configured namespace as JSON.

Templates from --templates-dir (or templates.dir in the config) shadow the
built-in templates with the same identifier. The source field shows which
file won.

Examples:
  # List all templates
  cellkit templates:list

  # Include a user template directory
  cellkit templates:list --templates-dir ./my-templates

  # Parse specific fields with jq
  cellkit templates:list | jq '.[].identifier'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cleanup, err := setupRuntime()
		defer cleanup()
		if err != nil {
			return err
		}

		all, err := b.Templates()
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		dtos := make([]presentation.TemplateDTO, 0, len(all))
		for _, t := range all {
			dtos = append(dtos, presentation.FromTemplate(t))
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatTemplates(dtos)
	},
}

var templatesUseCmd = &cobra.Command{
	Use:   "templates:use <dir>",
	Short: "Save a user template directory to the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}

		t := config.TemplatesConfig{Dir: dir, Namespace: cfg.Templates.Namespace}
		if err := config.ValidateTemplates(t); err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(dir, t.Namespace)); err != nil {
			return fmt.Errorf("%s has no %s/ directory: %w", dir, t.Namespace, err)
		}

		path := configPath()
		if err := config.SaveTemplates(path, t); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "templates.dir set to %s in %s\n", dir, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesListCmd)
	rootCmd.AddCommand(templatesUseCmd)
}
