package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/podgraph/pkg/config"
	"github.com/vanderheijden86/podgraph/pkg/explorer"
	"github.com/vanderheijden86/podgraph/pkg/export"
	"github.com/vanderheijden86/podgraph/pkg/hooks"
	"github.com/vanderheijden86/podgraph/pkg/model"
)

type exportFlags struct {
	out      string
	dir      string
	name     string
	title    string
	formats  []string
	selectID string
	zoom     int
	noHooks  bool
}

func newExportCmd(root *rootOptions) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an SVG, PNG or SQLite snapshot of the graph",
		Long: `Write a snapshot of the graph as it would appear in the explorer.

With --out a single file is written, its format taken from --format or the
file extension. Otherwise one file per --format is written to --dir. When
no output flags are given on a terminal, an interactive form asks for them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rs, _, err := loadInput(root)
			if err != nil {
				return err
			}
			rs = applyQuery(rs, root.query)

			base, err := snapshotOptions(cfg, rs, f)
			if err != nil {
				return err
			}

			var (
				paths   []string
				formats []export.Format
				dir     string
				name    = f.name
			)
			if f.out != "" {
				base.Path = f.out
				if len(f.formats) > 0 {
					base.Format = export.Format(f.formats[0])
				}
				paths = []string{f.out}
			} else {
				formats, err = parseFormats(f.formats, cfg)
				if err != nil {
					return err
				}
				dir = f.dir
				if dir == "" && len(f.formats) == 0 && export.IsTerminal() {
					choices, err := export.NewWizard(export.WizardChoices{
						Dir:     exportDir(cfg),
						Name:    name,
						Title:   base.Title,
						Formats: formats,
					}).Run()
					if err != nil {
						return err
					}
					dir, name, formats = choices.Dir, choices.Name, choices.Formats
					if choices.Title != "" {
						base.Title = choices.Title
					}
				}
				if dir == "" {
					dir = exportDir(cfg)
				}
				for _, format := range formats {
					paths = append(paths, export.PathFor(dir, name, format))
				}
			}

			executor, err := exportHooks(cmd, f.noHooks, rs, base, paths, formats)
			if err != nil {
				return err
			}
			if executor != nil {
				if err := executor.RunPreExport(cmd.Context()); err != nil {
					Subtle.Fprintln(cmd.ErrOrStderr(), executor.Summary())
					return fmt.Errorf("pre-export hook failed: %w", err)
				}
			}

			if f.out != "" {
				if err := export.Save(base); err != nil {
					return err
				}
			} else if paths, err = export.SaveAll(cmd.Context(), dir, name, formats, base); err != nil {
				return err
			}
			for _, p := range paths {
				Good.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
			}
			Subtle.Fprintf(cmd.OutOrStdout(), "  %d segments, %d connections\n", len(base.Snapshot.Nodes), len(base.Snapshot.Segments))

			if executor != nil {
				postErr := executor.RunPostExport(cmd.Context())
				Subtle.Fprintln(cmd.OutOrStdout(), executor.Summary())
				if postErr != nil {
					return fmt.Errorf("post-export hook failed: %w", postErr)
				}
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.out, "out", "o", "", "Output file")
	fl.StringVar(&f.dir, "dir", "", "Output directory for multi-format export (default from config, else .)")
	fl.StringVar(&f.name, "name", "podgraph", "File name without extension for multi-format export")
	fl.StringVar(&f.title, "title", "", "Header title (default: the query, else podgraph)")
	fl.StringSliceVarP(&f.formats, "format", "f", nil, "Formats: svg, png, db (repeatable)")
	fl.StringVar(&f.selectID, "select", "", "Item ID to show selected with its popup")
	fl.IntVar(&f.zoom, "zoom", 0, "Zoom in (positive) or out (negative) by this many toolbar steps")
	fl.BoolVar(&f.noHooks, "no-hooks", false, "Skip hooks from .podgraph/hooks.yaml")
	return cmd
}

// snapshotOptions drives an engine to the requested state and captures it.
func snapshotOptions(cfg config.Config, rs model.ResultSet, f *exportFlags) (export.Options, error) {
	engine := explorer.New(cfg.ExplorerConfig(), explorer.Callbacks{})
	engine.SetResultSet(rs)

	for i := 0; i < f.zoom; i++ {
		engine.ZoomIn()
	}
	for i := 0; i > f.zoom; i-- {
		engine.ZoomOut()
	}

	if f.selectID != "" {
		found := false
		for _, n := range engine.Snapshot().Nodes {
			if n.ID == f.selectID {
				engine.PointerDown(n.Screen)
				found = true
				break
			}
		}
		if !found {
			return export.Options{}, fmt.Errorf("--select: no item %q in the result set", f.selectID)
		}
	}

	title := f.title
	if title == "" {
		title = rs.Query
	}
	return export.Options{
		Title:    title,
		Snapshot: engine.Snapshot(),
		Items:    rs,
	}, nil
}

// exportHooks loads .podgraph/hooks.yaml from the working directory.
func exportHooks(cmd *cobra.Command, disabled bool, rs model.ResultSet, base export.Options, paths []string, formats []export.Format) (*hooks.Executor, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	names := make([]string, 0, len(paths))
	if len(formats) == 0 {
		f, ok := base.Format, base.Format != ""
		if !ok {
			if f, ok = export.FormatForPath(base.Path); !ok {
				f = export.FormatSVG
			}
		}
		names = append(names, string(f))
	}
	for _, f := range formats {
		names = append(names, string(f))
	}
	executor, warnings, err := hooks.Run(wd, hooks.ExportContext{
		Paths:     paths,
		Formats:   names,
		ItemCount: len(rs.Items),
		Query:     rs.Query,
		Timestamp: time.Now(),
	}, disabled)
	for _, w := range warnings {
		Warn.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	if err != nil {
		return nil, fmt.Errorf("load hooks: %w", err)
	}
	return executor, nil
}

func parseFormats(raw []string, cfg config.Config) ([]export.Format, error) {
	if len(raw) == 0 && cfg.Export.Format != "" {
		raw = []string{cfg.Export.Format}
	}
	if len(raw) == 0 {
		raw = []string{string(export.FormatSVG)}
	}
	out := make([]export.Format, 0, len(raw))
	for _, r := range raw {
		f, err := export.ParseFormat(r)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func exportDir(cfg config.Config) string {
	if d := strings.TrimSpace(cfg.Export.Dir); d != "" {
		return d
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
