// Package export writes offline artefacts of the explorer state: SVG and
// PNG pictures of the current graph and a SQLite copy of the result set.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/podgraph/internal/datasource"
	"github.com/vanderheijden86/podgraph/pkg/explorer"
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/metrics"
	"github.com/vanderheijden86/podgraph/pkg/model"
)

var (
	ErrNoItems           = errors.New("no items to export")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Format is an output file type.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatPNG    Format = "png"
	FormatSQLite Format = "db"
)

// Formats lists every supported format in menu order.
func Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatSQLite}
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "db", "sqlite", "sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w %q (want svg, png or db)", ErrUnsupportedFormat, s)
	}
}

// FormatForPath infers the format from the file extension.
func FormatForPath(path string) (Format, bool) {
	f, err := ParseFormat(filepath.Ext(path))
	return f, err == nil
}

// Options controls a single export.
type Options struct {
	Path     string
	Format   Format // inferred from Path when empty
	Title    string
	Snapshot explorer.Snapshot
	Items    model.ResultSet // written by FormatSQLite
}

func (o Options) resolve() (Options, error) {
	if o.Format == "" {
		f, ok := FormatForPath(o.Path)
		if !ok {
			f = FormatSVG
			if o.Path != "" && filepath.Ext(o.Path) == "" {
				o.Path += ".svg"
			}
		}
		o.Format = f
	} else {
		f, err := ParseFormat(string(o.Format))
		if err != nil {
			return o, err
		}
		o.Format = f
	}
	if o.Path == "" {
		return o, fmt.Errorf("output path is required")
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = "podgraph"
	}
	return o, nil
}

// Save writes one export.
func Save(opts Options) error {
	opts, err := opts.resolve()
	if err != nil {
		return err
	}
	defer metrics.Timer(metrics.ExportRender)()
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch opts.Format {
	case FormatSQLite:
		if len(opts.Items.Items) == 0 {
			return ErrNoItems
		}
		return datasource.WriteSQLite(opts.Path, opts.Items)
	case FormatPNG:
		if opts.Snapshot.Empty() {
			return ErrNoItems
		}
		return renderPNG(opts.Path, buildScene(opts))
	default:
		if opts.Snapshot.Empty() {
			return ErrNoItems
		}
		f, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		if err := renderSVG(f, buildScene(opts)); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// --- scene -----------------------------------------------------------------

const headerHeight = 72.0

type sceneNode struct {
	ID       string
	Label    string
	X, Y, R  float64
	Band     layout.Band
	Selected bool
}

type sceneLine struct {
	X1, Y1, X2, Y2 float64
}

type scene struct {
	Width, Height int
	Title         string
	Subtitle      string
	Nodes         []sceneNode
	Lines         []sceneLine
}

// buildScene shifts the snapshot's screen coordinates under a header strip.
func buildScene(opts Options) scene {
	snap := opts.Snapshot
	w := int(snap.Screen.W)
	h := int(snap.Screen.H)
	if w <= 0 {
		w = int(layout.DefaultWidth)
	}
	if h <= 0 {
		h = int(layout.DefaultHeight)
	}

	sc := scene{
		Width:  w,
		Height: h + int(headerHeight),
		Title:  opts.Title,
		Subtitle: fmt.Sprintf("query: %q  nodes: %d  edges: %d  zoom: %d%%",
			snap.Query, len(snap.Nodes), len(snap.Segments), snap.ZoomPercent),
	}
	for _, s := range snap.Segments {
		sc.Lines = append(sc.Lines, sceneLine{
			X1: s.From.X, Y1: s.From.Y + headerHeight,
			X2: s.To.X, Y2: s.To.Y + headerHeight,
		})
	}
	for _, n := range snap.Nodes {
		sc.Nodes = append(sc.Nodes, sceneNode{
			ID:       n.ID,
			Label:    layout.Label(n.Title),
			X:        n.Screen.X,
			Y:        n.Screen.Y + headerHeight,
			R:        n.Radius,
			Band:     n.Band,
			Selected: n.Selected,
		})
	}
	return sc
}

// --- palette ---------------------------------------------------------------

var (
	colorHigh     = color.RGBA{59, 130, 246, 0xff}
	colorMedium   = color.RGBA{16, 185, 129, 0xff}
	colorLow      = color.RGBA{245, 158, 11, 0xff}
	colorMinimal  = color.RGBA{156, 163, 175, 0xff}
	colorEdge     = color.RGBA{156, 163, 175, 0x4d}
	colorStroke   = color.RGBA{0, 0, 0, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

func bandColor(b layout.Band) color.RGBA {
	switch b {
	case layout.BandHigh:
		return colorHigh
	case layout.BandMedium:
		return colorMedium
	case layout.BandLow:
		return colorLow
	default:
		return colorMinimal
	}
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.RGBA) string {
	return fmt.Sprintf("%.2f", float64(c.A)/255)
}
