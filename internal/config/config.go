package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/cascade-menu/internal/app"
	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile    = "CASCADE_MENU_FILE"
	envMonitors    = "CASCADE_MENU_MONITORS"
	envBorderWidth = "CASCADE_MENU_BORDER_WIDTH"
	envOverlap     = "CASCADE_MENU_OVERLAP"
	envWatch       = "CASCADE_MENU_WATCH"
	envInterval    = "CASCADE_MENU_WATCH_INTERVAL"
	envWidth       = "CASCADE_MENU_WIDTH"
	envHeight      = "CASCADE_MENU_HEIGHT"
	envTrace       = "CASCADE_MENU_TRACE"
	envLogFile     = "CASCADE_MENU_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	defaults := theme.Default()

	fs := flag.NewFlagSet("cascade-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "path to a YAML menu file (built-in menus when empty)")
	monitors := fs.String("monitors", envOrDefault(env, envMonitors, ""), "comma separated monitor layout as WxH+X+Y (terminal size when empty)")
	borderWidth := fs.Int("border-width", envOrInt(env, envBorderWidth, defaults.BorderWidth), "menu border width in cells")
	overlap := fs.Int("overlap", envOrInt(env, envOverlap, defaults.MenuOverlap), "columns a submenu overlaps its parent by")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the menu file when it changes")
	interval := fs.Duration("watch-interval", envOrDuration(env, envInterval, backend.DefaultInterval), "how often the menu file is checked for changes")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "fixed canvas width in cells (0 follows the terminal)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "fixed canvas height in rows (0 follows the terminal)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	layout, err := ParseMonitors(*monitors)
	if err != nil {
		return Config{}, fmt.Errorf("monitors: %w", err)
	}

	cfg := Config{
		App: app.Config{
			MenuFile:      *menuFile,
			Monitors:      layout,
			BorderWidth:   *borderWidth,
			Overlap:       *overlap,
			Watch:         *watch,
			WatchInterval: *interval,
			Width:         *width,
			Height:        *height,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menuFile":      *menuFile,
			"monitors":      *monitors,
			"borderWidth":   strconv.Itoa(*borderWidth),
			"overlap":       strconv.Itoa(*overlap),
			"watch":         strconv.FormatBool(*watch),
			"watchInterval": interval.String(),
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// ParseMonitors reads a comma separated list of WxH+X+Y geometries. An empty
// string yields no monitors.
func ParseMonitors(s string) ([]geom.Rect, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]geom.Rect, 0, len(parts))
	for _, part := range parts {
		r, err := parseGeometry(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseGeometry(s string) (geom.Rect, error) {
	size, offset, ok := strings.Cut(s, "+")
	if !ok {
		return geom.Rect{}, fmt.Errorf("%q: expected WxH+X+Y", s)
	}
	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return geom.Rect{}, fmt.Errorf("%q: expected WxH+X+Y", s)
	}
	xs, ys, ok := strings.Cut(offset, "+")
	if !ok {
		return geom.Rect{}, fmt.Errorf("%q: expected WxH+X+Y", s)
	}
	var vals [4]int
	for i, field := range []string{ws, hs, xs, ys} {
		v, err := strconv.Atoi(field)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("%q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[0] <= 0 || vals[1] <= 0 {
		return geom.Rect{}, fmt.Errorf("%q: monitor size must be positive", s)
	}
	return geom.NewRect(vals[2], vals[3], vals[0], vals[1]), nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects sizes and combinations the menus cannot be drawn with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.BorderWidth < 0 {
		return fmt.Errorf("border width must be >= 0 (got %d)", a.BorderWidth)
	}
	if a.Overlap < 0 {
		return fmt.Errorf("overlap must be >= 0 (got %d)", a.Overlap)
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Watch && a.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive (got %s)", a.WatchInterval)
	}
	if a.Watch && strings.TrimSpace(a.MenuFile) == "" {
		return fmt.Errorf("--watch requires --menu-file")
	}
	return nil
}
