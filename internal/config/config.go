// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultContentDir  = "content"
	DefaultSortField   = "date"
	DefaultSortOrder   = "desc"
	DefaultFormat      = "plain"
	DefaultExportDir   = "public"
	DefaultExportTitle = "Articles"
	DefaultListTmpl    = "{{.Title}} — {{.RelativeDate}} ({{.ReadingTime | minutes}})"
	DefaultIndexTmpl   = "{{.Slug}} | {{.Title}} | {{.RelativeDate}}"
)

// Config represents the inkwell configuration.
type Config struct {
	Content   ContentConfig   `toml:"content"`
	Theme     ThemeConfig     `toml:"theme"`
	List      ListConfig      `toml:"list"`
	Templates TemplatesConfig `toml:"templates"`
	TUI       TUIConfig       `toml:"tui"`
	Export    ExportConfig    `toml:"export"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// ContentConfig locates and filters the article sources.
type ContentConfig struct {
	Dir           string `toml:"dir"`            // Directory scanned for *.md articles
	IncludeDrafts bool   `toml:"include_drafts"` // Include draft articles by default
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name   string `toml:"name"`   // Named theme ("" = resolve from ambient signal)
	Signal string `toml:"signal"` // Explicit signal override: dark, light
}

// ListConfig holds default listing options.
type ListConfig struct {
	Limit int    `toml:"limit"` // Max articles (0 = unlimited)
	Sort  string `toml:"sort"`  // date, title, words
	Order string `toml:"order"` // asc, desc
}

// TemplatesConfig holds output templates.
type TemplatesConfig struct {
	List   string            `toml:"list"`
	Index  string            `toml:"index"`
	Custom map[string]string `toml:"custom"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp  bool `toml:"show_help"`
	WordWrap  int  `toml:"word_wrap"` // 0 = use terminal width
	LiveWatch bool `toml:"live_watch"`
}

// ExportConfig holds static export settings.
type ExportConfig struct {
	Dir   string `toml:"dir"`   // Output directory for exported HTML
	Title string `toml:"title"` // Heading for the generated index page
}

// ClipboardConfig controls how the TUI copies text.
type ClipboardConfig struct {
	Command string `toml:"command"` // Override the auto-detected clipboard command
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Dir:           DefaultContentDir,
			IncludeDrafts: false,
		},
		Theme: ThemeConfig{
			Name:   "",
			Signal: "",
		},
		List: ListConfig{
			Limit: 0,
			Sort:  DefaultSortField,
			Order: DefaultSortOrder,
		},
		Templates: TemplatesConfig{
			List:   DefaultListTmpl,
			Index:  DefaultIndexTmpl,
			Custom: make(map[string]string),
		},
		TUI: TUIConfig{
			ShowHelp:  true,
			WordWrap:  0,
			LiveWatch: true,
		},
		Export: ExportConfig{
			Dir:   DefaultExportDir,
			Title: DefaultExportTitle,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "inkwell", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTemplate returns the template for the given name.
// First checks custom templates, then built-in ones.
// Returns empty string if not found.
func (c *Config) GetTemplate(name string) string {
	if tmpl, ok := c.Templates.Custom[name]; ok {
		return tmpl
	}

	switch name {
	case "list":
		return c.Templates.List
	case "index":
		return c.Templates.Index
	default:
		return ""
	}
}
