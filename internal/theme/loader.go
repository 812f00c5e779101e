package theme

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// colorRegex matches #rgb, #rrggbb, and #rrggbbaa color tokens.
var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Theme file validation errors.
var (
	ErrMissingForeground = errors.New("theme must set foreground")
	ErrMissingBackground = errors.New("theme must set background")
	ErrInvalidColor      = errors.New("invalid color token")
)

// Info provides basic theme information for listing.
type Info struct {
	Name      string
	Path      string // Empty for built-in themes
	IsBuiltin bool
}

// Loader resolves named themes with hot-reload support.
//
// Theme resolution order:
//  1. User themes directory (~/.config/inkwell/themes/*.toml)
//  2. Built-in themes (dark, light)
//
// Users can override a built-in by placing a file with the same name in
// their themes directory. Only foreground/background are configurable; the
// accent palette is shared by every theme.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	themesDir   string
	currentName string
	current     Theme
	currentPath string
	modTime     time.Time
	watcher     *Watcher
}

// NewLoader creates a new theme loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		current:   Resolve(DefaultSignal),
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "inkwell", "themes"), nil
}

// ParseThemeFile loads and validates a user theme from a TOML file.
func ParseThemeFile(name, path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse %s: %w", path, err)
	}
	t.Name = name

	if t.Foreground == "" {
		return Theme{}, ErrMissingForeground
	}
	if t.Background == "" {
		return Theme{}, ErrMissingBackground
	}
	for _, c := range []string{t.Foreground, t.Background} {
		if !colorRegex.MatchString(c) {
			return Theme{}, fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}

	return t, nil
}

// LoadTheme loads a theme by name. An empty name resolves the theme from
// the ambient color-scheme signal. Unknown names fall back to the signal
// resolution with a warning rather than failing.
func (l *Loader) LoadTheme(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		t := Resolve(DetectSignal())
		l.setCurrent(t, "", time.Time{})
		l.logger.Debug("resolved theme from ambient signal", "name", t.Name)
		return nil
	}

	// First, check user themes directory
	if l.themesDir != "" {
		themePath := filepath.Join(l.themesDir, name+".toml")
		if info, err := os.Stat(themePath); err == nil {
			t, err := ParseThemeFile(name, themePath)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying built-in", "theme", name, "error", err)
			} else {
				l.setCurrent(t, themePath, info.ModTime())
				l.logger.Info("loaded user theme", "name", name, "path", themePath)
				return nil
			}
		}
	}

	// Second, check built-in themes
	if t, ok := Builtin(name); ok {
		l.setCurrent(t, "", time.Time{})
		l.logger.Debug("loaded built-in theme", "name", name)
		return nil
	}

	// Fallback to the ambient signal
	l.logger.Warn("theme not found, resolving from ambient signal", "theme", name)
	t := Resolve(DetectSignal())
	l.setCurrent(t, "", time.Time{})
	return nil
}

func (l *Loader) setCurrent(t Theme, path string, modTime time.Time) {
	l.current = t
	l.currentName = t.Name
	l.currentPath = path
	l.modTime = modTime
}

// Current returns the currently loaded theme.
func (l *Loader) Current() Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// CurrentName returns the name of the currently loaded theme.
func (l *Loader) CurrentName() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}

// Reload re-resolves the current theme from disk.
func (l *Loader) Reload() error {
	l.mu.RLock()
	name := l.currentName
	l.mu.RUnlock()
	return l.LoadTheme(name)
}

// StartHotReload starts watching the current theme file for changes.
// Built-in themes are constants and are not watched.
func (l *Loader) StartHotReload(onChange func(Theme)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentPath == "" {
		l.logger.Debug("not starting hot-reload for built-in theme")
		return
	}

	if l.watcher != nil {
		l.watcher.Stop()
	}

	l.watcher = NewWatcher(l.currentName, l.currentPath, l.logger)
	l.watcher.SetChangeCallback(func(t Theme) {
		l.mu.Lock()
		l.current = t
		l.mu.Unlock()
		l.logger.Info("hot-reloaded theme", "name", t.Name)
		if onChange != nil {
			onChange(t)
		}
	})
	l.watcher.Start()
}

// StopHotReload stops watching the theme file for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// ListThemes lists all available themes (built-in + user), with user
// overrides shadowing built-ins of the same name.
func (l *Loader) ListThemes() []Info {
	seen := make(map[string]bool)
	var themes []Info

	// User themes first so overrides win
	if l.themesDir != "" {
		entries, err := os.ReadDir(l.themesDir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				if filepath.Ext(name) != ".toml" {
					continue
				}
				themeName := strings.TrimSuffix(name, ".toml")
				if !seen[themeName] {
					seen[themeName] = true
					themes = append(themes, Info{
						Name: themeName,
						Path: filepath.Join(l.themesDir, name),
					})
				}
			}
		} else if !os.IsNotExist(err) {
			l.logger.Debug("failed to read themes directory", "error", err)
		}
	}

	for _, name := range BuiltinNames() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, Info{Name: name, IsBuiltin: true})
		}
	}

	return themes
}

// CreateThemesDir creates the themes directory if it doesn't exist.
func CreateThemesDir() error {
	themesDir, err := ThemesDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(themesDir, 0755)
}
