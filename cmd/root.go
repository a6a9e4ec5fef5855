package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/cellkit/internal/bundle"
	"github.com/zjrosen/cellkit/internal/config"
	"github.com/zjrosen/cellkit/internal/gallery"
	"github.com/zjrosen/cellkit/internal/log"
	"github.com/zjrosen/cellkit/internal/templates"
	"github.com/zjrosen/cellkit/internal/tracing"
	"github.com/zjrosen/cellkit/internal/ui/cells"
	"github.com/zjrosen/cellkit/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".cellkit/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "cellkit",
	Short:   "A terminal gallery of template-backed cells",
	Long:    `A terminal user interface showing a sectioned list and a grid built from cell templates.`,
	Version: version,
	RunE:    runGallery,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .cellkit/config.yaml, then ~/.config/cellkit/config.yaml)")
	rootCmd.PersistentFlags().String("templates-dir", "",
		"directory searched for templates before the built-in ones")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by CELLKIT_DEBUG)")
}

func initConfig() {
	// Bind flags to viper
	_ = viper.BindPFlag("templates.dir", rootCmd.PersistentFlags().Lookup("templates-dir"))

	defaults := config.Defaults()
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("templates.namespace", defaults.Templates.Namespace)
	viper.SetDefault("ui.show_border", defaults.UI.ShowBorder)
	viper.SetDefault("ui.cell_width", defaults.UI.CellWidth)
	viper.SetDefault("ui.start_view", defaults.UI.StartView)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .cellkit/config.yaml (current directory)
		// 2. ~/.config/cellkit/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "cellkit"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", viper.ConfigFileUsed())
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

// setupRuntime starts logging and tracing, applies the theme and points the
// built-in cell kinds at the configured template bundle. The returned
// cleanup must run before exit to flush spans.
func setupRuntime() (*bundle.Bundle, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Initialize logging if debug mode enabled (via flag, config or env var)
	if debugFlag || cfg.Debug || os.Getenv("CELLKIT_DEBUG") != "" {
		logPath := cfg.LogFile
		if logPath == "" {
			logPath = "debug.log"
		}
		closeLog, err := log.InitWithTeaLog(logPath, "cellkit")
		if err != nil {
			return nil, cleanup, fmt.Errorf("initializing logging: %w", err)
		}
		cleanups = append(cleanups, closeLog)
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
		log.Info(log.CatConfig, "cellkit starting", "config", viper.ConfigFileUsed())
	}

	if err := config.Validate(cfg); err != nil {
		return nil, cleanup, fmt.Errorf("invalid configuration: %w", err)
	}

	styles.ApplyTheme(cfg.Theme.Highlight, cfg.Theme.Muted, cfg.Theme.Error)

	tc := cfg.Tracing
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, cleanup, fmt.Errorf("initializing tracing: %w", err)
	}
	cleanups = append(cleanups, func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	})

	b := buildBundle(cfg.Templates)
	cells.SetBundle(b)
	return b, cleanup, nil
}

// buildBundle layers the user template directory, when set, in front of the
// embedded templates.
func buildBundle(t config.TemplatesConfig) *bundle.Bundle {
	var layers []fs.FS
	if t.Dir != "" {
		layers = append(layers, os.DirFS(t.Dir))
	}
	layers = append(layers, templates.CellsFS())

	namespace := t.Namespace
	if namespace == "" {
		namespace = templates.DefaultNamespace
	}
	log.Debug(log.CatConfig, "template bundle configured", "namespace", namespace, "dir", t.Dir, "layers", len(layers))
	return bundle.New(namespace, layers)
}

func galleryOptions() gallery.Options {
	return gallery.Options{
		ShowBorder:  cfg.UI.ShowBorder,
		GridColumns: cfg.UI.GridColumns,
		CellWidth:   cfg.UI.CellWidth,
		StartView:   cfg.UI.StartView,
	}
}

func runGallery(cmd *cobra.Command, args []string) error {
	// First run with no config anywhere gets a commented default file.
	if viper.ConfigFileUsed() == "" {
		if err := config.WriteDefaultConfig(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		}
	}

	_, cleanup, err := setupRuntime()
	defer cleanup()
	if err != nil {
		return err
	}

	zone.NewGlobal()
	model, err := gallery.New(galleryOptions(), gallery.SampleIssues())
	if err != nil {
		return fmt.Errorf("building gallery: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// configPath is where config changes are saved.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigPath
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
