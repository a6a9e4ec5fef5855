// Package config provides configuration types and defaults for cellkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/zjrosen/cellkit/internal/log"
	"github.com/zjrosen/cellkit/internal/templates"
	"github.com/zjrosen/cellkit/internal/tracing"
)

// Config holds all configuration options for cellkit.
type Config struct {
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme" yaml:"theme"`
	Tracing   tracing.Config  `mapstructure:"tracing" yaml:"tracing"`
	Debug     bool            `mapstructure:"debug" yaml:"debug"`
	LogFile   string          `mapstructure:"log_file" yaml:"log_file"`
	LogLevel  string          `mapstructure:"log_level" yaml:"log_level"` // debug (default), info, warn or error
}

// TemplatesConfig controls where cell templates are loaded from.
type TemplatesConfig struct {
	// Dir is a user template directory searched before the built-in
	// templates. It must contain a <namespace>/ subdirectory.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Namespace is the subdirectory holding the templates.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowBorder  bool   `mapstructure:"show_border" yaml:"show_border"`
	GridColumns int    `mapstructure:"grid_columns" yaml:"grid_columns"` // 0 fits to width
	CellWidth   int    `mapstructure:"cell_width" yaml:"cell_width"`
	StartView   string `mapstructure:"start_view" yaml:"start_view"` // "list" (default) or "grid"
}

// ThemeConfig overrides default colors with hex values.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight" yaml:"highlight"`
	Muted     string `mapstructure:"muted" yaml:"muted"`
	Error     string `mapstructure:"error" yaml:"error"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/cellkit/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cellkit", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Templates: TemplatesConfig{
			Namespace: templates.DefaultNamespace,
		},
		UI: UIConfig{
			ShowBorder: true,
			CellWidth:  18,
			StartView:  "list",
		},
		Tracing:  tracing.DefaultConfig(),
		LogLevel: "debug",
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateTemplates(c.Templates); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTemplates checks template configuration for errors.
func ValidateTemplates(t TemplatesConfig) error {
	if t.Namespace == "" {
		return fmt.Errorf("templates.namespace is required")
	}
	if filepath.IsAbs(t.Namespace) || filepath.Base(t.Namespace) != t.Namespace {
		return fmt.Errorf("templates.namespace must be a single directory name, got %q", t.Namespace)
	}
	if t.Dir != "" {
		info, err := os.Stat(t.Dir)
		if err != nil {
			return fmt.Errorf("templates.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("templates.dir %q is not a directory", t.Dir)
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.GridColumns < 0 {
		return fmt.Errorf("ui.grid_columns must be >= 0, got %d", ui.GridColumns)
	}
	if ui.CellWidth < 0 {
		return fmt.Errorf("ui.cell_width must be >= 0, got %d", ui.CellWidth)
	}
	switch ui.StartView {
	case "", "list", "grid":
	default:
		return fmt.Errorf("ui.start_view must be \"list\" or \"grid\", got %q", ui.StartView)
	}
	return nil
}

// ValidateTheme checks that every set color is a hex value.
func ValidateTheme(t ThemeConfig) error {
	for name, value := range map[string]string{
		"highlight": t.Highlight,
		"muted":     t.Muted,
		"error":     t.Error,
	} {
		if value != "" && !hexColor.MatchString(value) {
			return fmt.Errorf("theme.%s must be a hex color like #54A0FF, got %q", name, value)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# cellkit configuration

# Debug logging (also enabled by --debug or CELLKIT_DEBUG)
debug: false
# log_file: debug.log
log_level: debug

# Cell templates
templates:
  # dir: ./my-templates   # Searched before the built-in templates
  namespace: cells        # Subdirectory of dir holding <Identifier>.yaml / .toml files

# UI settings
ui:
  show_border: true       # Draw borders around the list and grid
  grid_columns: 0         # Tiles per grid row (0 = fit to width)
  cell_width: 18          # Grid tile width
  start_view: list        # Pane focused at startup: "list" or "grid"

# Theme colors (hex). Empty values keep the defaults.
theme:
  # highlight: "#54A0FF"
  # muted: "#696969"
  # error: "#FF8787"

# Template lookup tracing
tracing:
  enabled: false
  exporter: file          # "none", "file", "stdout" or "otlp"
  # file_path: ~/.config/cellkit/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: cellkit
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
