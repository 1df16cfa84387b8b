// Package layout places a ranked result set on a circle around the canvas
// centre. More relevant items sit closer to the centre.
//
// The layout is a pure function of input order and relevance: there is no
// randomness and no iteration, so the same input always yields the same
// positions and a new search can recompute everything cheaply.
package layout

import (
	"math"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Default logical canvas and ring geometry.
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultBaseRadius = 100.0
	DefaultSpread     = 150.0
)

// Config controls the logical canvas and ring geometry.
type Config struct {
	Width      float64 // Logical canvas width
	Height     float64 // Logical canvas height
	BaseRadius float64 // Radius of a relevance-1.0 item
	Spread     float64 // Extra radius added for a relevance-0.0 item
}

// DefaultConfig returns the 800x600 canvas with radii 100..250.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		BaseRadius: DefaultBaseRadius,
		Spread:     DefaultSpread,
	}
}

// Center returns the canvas centre.
func (c Config) Center() model.Point {
	return model.Pt(c.Width/2, c.Height/2)
}

// Layout assigns a position to every item. Item i of n sits at angle
// i/n*2π and radius BaseRadius + (1-relevance)*Spread.
func Layout(items []model.Item, cfg Config) []model.PositionedItem {
	n := len(items)
	if n == 0 {
		return []model.PositionedItem{}
	}

	center := cfg.Center()
	out := make([]model.PositionedItem, n)
	for i, item := range items {
		angle := float64(i) / float64(n) * 2 * math.Pi
		radius := Radius(item.Relevance, cfg)
		out[i] = model.PositionedItem{
			Item: item,
			Position: model.Pt(
				center.X+math.Cos(angle)*radius,
				center.Y+math.Sin(angle)*radius,
			),
		}
	}
	return out
}

// Radius returns the ring radius for a relevance score.
func Radius(relevance float64, cfg Config) float64 {
	return cfg.BaseRadius + (1-clampRelevance(relevance))*cfg.Spread
}

// NodeRadius is the drawn circle radius of a node, 20..50 logical units.
func NodeRadius(relevance float64) float64 {
	return 20 + clampRelevance(relevance)*30
}

// Band buckets relevance for colouring.
type Band int

const (
	BandMinimal Band = iota
	BandLow
	BandMedium
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	case BandLow:
		return "low"
	default:
		return "minimal"
	}
}

// RelevanceBand returns high above 0.8, medium above 0.6, low above 0.4.
func RelevanceBand(relevance float64) Band {
	switch {
	case relevance > 0.8:
		return BandHigh
	case relevance > 0.6:
		return BandMedium
	case relevance > 0.4:
		return BandLow
	default:
		return BandMinimal
	}
}

// LabelMax is the number of title runes shown under a node.
const LabelMax = 20

// Label returns the node caption: the first LabelMax runes of title,
// followed by "..." when anything was cut.
func Label(title string) string {
	runes := []rune(title)
	if len(runes) <= LabelMax {
		return title
	}
	return string(runes[:LabelMax]) + "..."
}

// Index maps item IDs to their position in a layout. The first item with a
// given ID wins, matching edges.Build.
func Index(items []model.PositionedItem) map[string]int {
	idx := make(map[string]int, len(items))
	for i := range items {
		if _, seen := idx[items[i].ID]; !seen {
			idx[items[i].ID] = i
		}
	}
	return idx
}

func clampRelevance(r float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
