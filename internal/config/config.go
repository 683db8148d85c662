package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popup-widgets/internal/app"
	"github.com/atomicstack/popup-widgets/internal/toast"
)

// Config captures runtime configuration for the gallery.
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
	envMenuPath      = "POPUP_WIDGETS_MENU"
	envWatchMenu     = "POPUP_WIDGETS_WATCH_MENU"
	envWidth         = "POPUP_WIDGETS_WIDTH"
	envHeight        = "POPUP_WIDGETS_HEIGHT"
	envShowFooter    = "POPUP_WIDGETS_FOOTER"
	envTrace         = "POPUP_WIDGETS_TRACE"
	envLogFile       = "POPUP_WIDGETS_LOG_FILE"
	envToastDuration = "POPUP_WIDGETS_TOAST_DURATION"
	envDesktopNotify = "POPUP_WIDGETS_DESKTOP_NOTIFY"
	envMetricsAddr   = "POPUP_WIDGETS_METRICS_ADDR"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popup-widgets", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuPath := fs.String("menu", envOrDefault(env, envMenuPath, ""), "YAML file describing the sidebar menu (built-in sample when empty)")
	watchMenu := fs.Bool("watch-menu", envOrBool(env, envWatchMenu, false), "reload the menu file when it changes on disk")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	toastDuration := fs.Duration("toast-duration", envOrDuration(env, envToastDuration, toast.DefaultDuration), "how long toasts stay visible (0 keeps them until dismissed)")
	desktopNotify := fs.Bool("desktop-notify", envOrBool(env, envDesktopNotify, false), "mirror toasts as desktop notifications")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			MenuPath:      *menuPath,
			WatchMenu:     *watchMenu,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			ToastDuration: *toastDuration,
			DesktopNotify: *desktopNotify,
			MetricsAddr:   *metricsAddr,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menu":          *menuPath,
			"watchMenu":     strconv.FormatBool(*watchMenu),
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
			"toastDuration": toastDuration.String(),
			"desktopNotify": strconv.FormatBool(*desktopNotify),
			"metricsAddr":   *metricsAddr,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
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

// Validate rejects values the gallery cannot start with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.ToastDuration < 0 {
		return fmt.Errorf("toast-duration must be >= 0 (got %s)", cfg.App.ToastDuration)
	}
	if cfg.App.WatchMenu && cfg.App.MenuPath == "" {
		return fmt.Errorf("watch-menu requires a menu file")
	}
	if addr := cfg.App.MetricsAddr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("metrics-addr %q: %w", addr, err)
		}
	}
	return nil
}
