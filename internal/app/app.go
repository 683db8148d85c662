package app

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/atomicstack/popup-widgets/internal/backend"
	"github.com/atomicstack/popup-widgets/internal/logging/events"
	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/atomicstack/popup-widgets/internal/metric"
	"github.com/atomicstack/popup-widgets/internal/toast"
	"github.com/atomicstack/popup-widgets/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	appName           = "popup-widgets"
	menuReloadSpacing = 250 * time.Millisecond
	shutdownTimeout   = 2 * time.Second
)

//go:embed default_menu.yaml
var defaultMenu []byte

// Config describes user-provided application options.
type Config struct {
	MenuPath      string
	WatchMenu     bool
	Width         int
	Height        int
	ShowFooter    bool
	ToastDuration time.Duration
	DesktopNotify bool
	MetricsAddr   string
}

// LoadForest reads the menu at path, or the built-in sample when path is
// empty.
func LoadForest(path string) (menu.Forest, error) {
	if path == "" {
		return menu.ParseForest(defaultMenu)
	}
	return menu.LoadForest(path)
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	return RunContext(context.Background(), cfg)
}

// RunContext runs the gallery until the user quits or ctx is cancelled. The
// metrics listener, when configured, shares the program's lifetime.
func RunContext(ctx context.Context, cfg Config) error {
	forest, err := LoadForest(cfg.MenuPath)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	reg := prometheus.NewRegistry()
	toasts := newToasts(cfg, reg)
	ctx = toast.WithManager(ctx, toasts)

	opts := ui.Options{
		Forest:     forest,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	}
	if cfg.WatchMenu && cfg.MenuPath != "" {
		watcher, err := backend.NewWatcher(cfg.MenuPath, menuReloadSpacing)
		if err != nil {
			return fmt.Errorf("watch menu: %w", err)
		}
		defer watcher.Stop()
		opts.Watcher = watcher
	}

	model, err := ui.NewModel(ctx, opts)
	if err != nil {
		return err
	}
	defer model.Teardown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux(reg)}
		g.Go(func() error {
			events.App.MetricsListen(cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	events.App.Stop(err)
	return err
}

func newToasts(cfg Config, reg prometheus.Registerer) *toast.Model {
	counter := metric.NewCounterWithRegistry(reg,
		"popup_widgets_toasts_total",
		"Toast lifecycle events by variant.",
		"event", "variant",
	)
	opts := []toast.Option{
		toast.WithDefaultDuration(cfg.ToastDuration),
		toast.WithCounter(counter),
	}
	if cfg.DesktopNotify {
		opts = append(opts, toast.WithNotifier(toast.BeeepNotifier{AppName: appName}))
	}
	return toast.New(opts...)
}

func metricsMux(reg prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metric.HandlerFor(reg))
	return mux
}
