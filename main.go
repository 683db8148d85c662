package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/popup-widgets/internal/app"
	"github.com/atomicstack/popup-widgets/internal/config"
	"github.com/atomicstack/popup-widgets/internal/logging"
	"github.com/atomicstack/popup-widgets/internal/logging/events"
	"github.com/atomicstack/popup-widgets/internal/menu"
	"golang.org/x/term"
)

const embeddedMenuSource = "embedded"

func main() {
	cfg := config.MustLoad()
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	size, ok := detectTerminal(os.Stdin.Fd(), os.Stdout.Fd())
	if !ok {
		fmt.Fprintln(os.Stderr, "popup-widgets needs an interactive terminal")
		os.Exit(2)
	}

	summary, err := summarizeMenu(cfg.App)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Menu error: %v\n", err)
		os.Exit(2)
	}
	events.App.Start(startupTracePayload(cfg, summary, size))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// menuSummary describes the forest the gallery is about to mount.
type menuSummary struct {
	Source string `json:"source"`
	Watch  bool   `json:"watch"`
	Roots  int    `json:"roots"`
	Nodes  int    `json:"nodes"`
}

// summarizeMenu loads and indexes the configured menu so a broken file is
// reported before the terminal switches to the alternate screen.
func summarizeMenu(cfg app.Config) (menuSummary, error) {
	forest, err := app.LoadForest(cfg.MenuPath)
	if err != nil {
		return menuSummary{}, err
	}
	idx, err := menu.NewIndex(forest, 0)
	if err != nil {
		return menuSummary{}, err
	}
	source := cfg.MenuPath
	if source == "" {
		source = embeddedMenuSource
	}
	return menuSummary{
		Source: source,
		Watch:  cfg.WatchMenu,
		Roots:  len(forest),
		Nodes:  idx.Len(),
	}, nil
}

type terminalSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// detectTerminal returns the size of the first descriptor that is a
// terminal. The gallery cannot run without one.
func detectTerminal(fds ...uintptr) (terminalSize, bool) {
	for _, fd := range fds {
		if !term.IsTerminal(int(fd)) {
			continue
		}
		width, height, err := term.GetSize(int(fd))
		if err != nil {
			continue
		}
		return terminalSize{Width: width, Height: height}, true
	}
	return terminalSize{}, false
}

func startupTracePayload(cfg config.Config, summary menuSummary, size terminalSize) map[string]interface{} {
	return map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"menu":     summary,
		"terminal": size,
		"toasts": map[string]interface{}{
			"duration":      cfg.App.ToastDuration.String(),
			"desktopNotify": cfg.App.DesktopNotify,
		},
		"metricsAddr": cfg.App.MetricsAddr,
		"logFile":     cfg.Logging.FilePath,
	}
}
