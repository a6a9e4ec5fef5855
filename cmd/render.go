package cmd

import (
	"fmt"

	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/cellkit/internal/gallery"
)

var (
	renderView   string
	renderWidth  int
	renderHeight int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print one frame of the gallery and exit",
	Long: `Render the gallery once to stdout without starting the interactive UI.

Examples:
  cellkit render
  cellkit render --view grid --width 120 --height 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var focus gallery.Pane
		switch renderView {
		case "list":
			focus = gallery.PaneList
		case "grid":
			focus = gallery.PaneGrid
		default:
			return fmt.Errorf("--view must be \"list\" or \"grid\", got %q", renderView)
		}

		_, cleanup, err := setupRuntime()
		defer cleanup()
		if err != nil {
			return err
		}

		zone.NewGlobal()
		out, err := gallery.Render(galleryOptions(), gallery.SampleIssues(), focus, renderWidth, renderHeight)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderView, "view", "list", "Pane to focus: list or grid")
	renderCmd.Flags().IntVar(&renderWidth, "width", 100, "Frame width in columns")
	renderCmd.Flags().IntVar(&renderHeight, "height", 24, "Frame height in lines")
	rootCmd.AddCommand(renderCmd)
}
