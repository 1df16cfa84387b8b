// Command podgraph explores a ranked result set of podcast segments as a
// node-link graph in the terminal.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/podgraph/internal/datasource"
	"github.com/vanderheijden86/podgraph/pkg/config"
	"github.com/vanderheijden86/podgraph/pkg/debug"
	"github.com/vanderheijden86/podgraph/pkg/loader"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/search"
	"github.com/vanderheijden86/podgraph/pkg/ui"
	"github.com/vanderheijden86/podgraph/pkg/version"
	"github.com/vanderheijden86/podgraph/pkg/watcher"
)

func main() {
	defer debug.Sync()
	if err := newRootCmd().Execute(); err != nil {
		Bad.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	data       string
	query      string
	config     string
	fullscreen bool
	noWatch    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "podgraph",
		Short:         "Explore podcast segments and their connections as a graph",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplorer(opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.data, "data", "d", "", "Result set file (.jsonl, .json, .db); discovered in the current directory when empty")
	pf.StringVarP(&opts.query, "query", "q", "", "Only show segments matching this query")
	pf.StringVar(&opts.config, "config", "", "Config file (default $XDG_CONFIG_HOME/podgraph/config.yaml)")
	root.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "Start without header and help bar")
	root.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not reload when the data file changes")

	root.AddCommand(newLayoutCmd(opts), newExportCmd(opts), newConfigCmd(opts), newVersionCmd())
	return root
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// resolveDataPath picks the data file: the flag, then the config, then the
// freshest valid source in dir.
func resolveDataPath(flagPath string, cfg config.Config, dir string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if cfg.Data != "" {
		return cfg.Data, nil
	}
	sources, err := datasource.DiscoverSources(dir, datasource.DiscoveryOptions{
		ValidateAfterDiscovery: true,
		Logger:                 func(msg string) { debug.Log("%s", msg) },
	})
	if err != nil {
		return "", err
	}
	best, err := datasource.SelectBestSource(sources)
	if err != nil {
		return "", fmt.Errorf("no result set found in %s (pass --data): %w", dir, err)
	}
	return best.Path, nil
}

// loadInput resolves config and data for a command and applies --query.
func loadInput(opts *rootOptions) (config.Config, model.ResultSet, string, error) {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return cfg, model.ResultSet{}, "", err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return cfg, model.ResultSet{}, "", err
	}
	path, err := resolveDataPath(opts.data, cfg, cwd)
	if err != nil {
		return cfg, model.ResultSet{}, "", err
	}

	start := time.Now()
	rs, _, err := datasource.Load(path, loader.ParseOptions{
		WarningHandler: func(msg string) { Warn.Fprintf(os.Stderr, "Warning: %s\n", msg) },
	})
	if err != nil {
		return cfg, model.ResultSet{}, path, fmt.Errorf("loading %s: %w", path, err)
	}
	debug.LogTiming("load "+path, time.Since(start))
	return cfg, rs, path, nil
}

// applyQuery filters rs the way the explorer's search does.
func applyQuery(rs model.ResultSet, query string) model.ResultSet {
	if query == "" {
		return rs
	}
	return search.NewCatalog(rs.Items).Search(query)
}

func runExplorer(opts *rootOptions) error {
	cfg, rs, path, err := loadInput(opts)
	if err != nil {
		return err
	}
	if opts.fullscreen {
		cfg.UI.Fullscreen = true
	}

	var w *watcher.Watcher
	if !opts.noWatch {
		w, err = watcher.NewWatcher(path)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			Warn.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
			w = nil
		} else {
			defer w.Stop()
		}
	}

	m := ui.NewModel(rs, ui.Options{
		Config:   cfg,
		DataPath: path,
		Query:    opts.query,
		Watcher:  w,
	})
	if err := runTUIProgram(m, cfg.UI.Mouse); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}

func runTUIProgram(m ui.Model, mouse bool) error {
	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, progOpts...)

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

	// Optional auto-quit for automated tests: set PODGRAPH_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("PODGRAPH_TUI_AUTOCLOSE_MS"); v != "" {
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

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the podgraph version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "podgraph %s\n", version.Version)
		},
	}
}
