package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/trendradar/internal/datasource"
	"github.com/vanderheijden86/trendradar/internal/server"
	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/config"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/export"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/ui"
	"github.com/vanderheijden86/trendradar/pkg/version"
	"github.com/vanderheijden86/trendradar/pkg/watcher"
)

func main() {
	var f cliFlags
	flag.StringVar(&f.data, "data", "", "Dataset file (.json, .yaml, .db); embedded dataset when empty")
	flag.StringVar(&f.view, "view", "", "Initial view: radar or matrix")
	flag.StringVar(&f.method, "method", "", "Radar distribution: authored, technology, business, impact, timeline")
	flag.Float64Var(&f.size, "size", 0, "Nominal chart size for the TUI canvas and exports")
	flag.StringVar(&f.category, "category", "", "Category filter, comma separated (e.g. 'Technology,Industry')")
	flag.StringVar(&f.impact, "impact", "", "Impact filter, comma separated")
	flag.StringVar(&f.horizon, "horizon", "", "Time horizon filter, comma separated (e.g. '2025,2029+')")
	flag.StringVar(&f.trl, "trl", "", "Technology readiness filter, comma separated levels 1-9")
	flag.StringVar(&f.search, "search", "", "Free-text search over name, description and tags")
	flag.StringVar(&f.selected, "select", "", "Open the detail panel for this trend id")
	flag.BoolVar(&f.watch, "watch", false, "Reload the dataset when its file changes")
	exportFlag := flag.String("export", "", "Write snapshots to these paths (comma separated .svg/.png/.md/.db) and exit")
	serveAddr := flag.String("serve", "", "Serve the HTTP API on this address instead of starting the TUI")
	configPath := flag.String("config", "", "Config file (default "+config.ConfigPath()+")")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		pf, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: tr [options]")
		fmt.Println("\nA terminal dashboard for technology, industry and humanity trends.")
		flag.PrintDefaults()
		return
	}

	if *versionFlag {
		fmt.Printf("tr %s\n", version.Version)
		return
	}

	cfg := loadConfig(*configPath)
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = applyFlags(cfg.ApplyEnv(os.Getenv), f)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		os.Exit(1)
	}

	opts, warnings, err := buildOptions(cfg, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unknown %s\n", w)
	}

	trends, source, err := datasource.Load(cfg.Data.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *exportFlag != "":
		opts.Size = cfg.Export.Size
		if err := runExport(context.Background(), trends, opts, splitPaths(*exportFlag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
	case *serveAddr != "":
		cfg.Server.Addr = *serveAddr
		if err := runServer(cfg, trends, source, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
			os.Exit(1)
		}
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: the dashboard needs a terminal; use --export or --serve")
			os.Exit(1)
		}
		if err := runTUI(cfg, trends, source, opts); err != nil {
			fmt.Printf("Error running trend radar: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig reads the config file. A broken file is reported and replaced
// by the defaults.
func loadConfig(path string) config.Config {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func runExport(ctx context.Context, trends []model.Trend, opts app.Options, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no export paths given")
	}
	st := app.New(trends, opts)
	if err := export.SaveAll(ctx, paths, exportDocument(st, time.Now())); err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Wrote %s\n", p)
	}
	return nil
}

func runServer(cfg config.Config, trends []model.Trend, source datasource.DataSource, opts app.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := server.NewStore(trends, source)
	if cfg.Data.Watch && source.Watchable() {
		w, err := watcher.New(source.Path, watcher.WithOnEvent(func(ev watcher.Event) {
			if ev.Op == watcher.OpRemoved {
				debug.Log("server: %s removed, keeping the loaded dataset", ev.Path)
				return
			}
			if _, err := store.Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "Reload error: %v\n", err)
			}
		}))
		if err != nil {
			return fmt.Errorf("watching %s: %w", source.Path, err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watching %s: %w", source.Path, err)
		}
		defer w.Stop()
	}

	srv := server.New(cfg.Server, store, opts)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	fmt.Printf("Serving %s on http://%s\n", source, srv.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runTUI(cfg config.Config, trends []model.Trend, source datasource.DataSource, opts app.Options) error {
	uiOpts := ui.Options{
		App:           opts,
		Source:        source,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		SidebarWidth:  cfg.UI.SidebarWidth,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Data.Watch && source.Watchable() {
		w, err := watcher.New(source.Path)
		if err != nil {
			return fmt.Errorf("watching %s: %w", source.Path, err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watching %s: %w", source.Path, err)
		}
		defer w.Stop()
		uiOpts.Watcher = w
	}

	return runTUIProgram(ui.NewModel(trends, uiOpts))
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated runs: set TR_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("TR_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
