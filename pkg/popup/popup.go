// Package popup computes where the item details popup is drawn relative to
// the pointer that opened it.
package popup

import (
	"math"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Default placement geometry.
const (
	DefaultOffset = 20.0
	DefaultMargin = 8.0
	DefaultWidth  = 320.0
	DefaultHeight = 400.0
)

// Options controls the pointer offset and the minimum distance kept from
// the viewport edges.
type Options struct {
	Offset float64
	Margin float64
}

// DefaultOptions returns offset 20 and margin 8.
func DefaultOptions() Options {
	return Options{Offset: DefaultOffset, Margin: DefaultMargin}
}

// DefaultSize is the 320x400 details popup.
func DefaultSize() model.Size {
	return model.Size{W: DefaultWidth, H: DefaultHeight}
}

// Place returns the top-left corner for a popup of size popup opened at
// pointer inside a viewport of size viewport.
//
// The popup starts below-right of the pointer and flips to the other side
// on each axis where it would overflow. The result is then clamped into
// [margin, viewport-margin-size]; when the popup is larger than the
// viewport on an axis the lower bound wins and the popup hangs off the
// far edge only.
func Place(pointer model.Point, viewport, popup model.Size, opts Options) model.Point {
	x := pointer.X + opts.Offset
	y := pointer.Y + opts.Offset

	if x+popup.W > viewport.W {
		x = pointer.X - popup.W - opts.Offset
	}
	if y+popup.H > viewport.H {
		y = pointer.Y - popup.H - opts.Offset
	}

	return model.Pt(
		clampAxis(x, popup.W, viewport.W, opts.Margin),
		clampAxis(y, popup.H, viewport.H, opts.Margin),
	)
}

func clampAxis(v, size, limit, margin float64) float64 {
	v = math.Min(v, limit-margin-size)
	return math.Max(v, margin)
}

// Placer binds viewport and popup sizes so callers only pass the pointer.
type Placer struct {
	Viewport model.Size
	Popup    model.Size
	Options  Options
}

// NewPlacer returns a placer for the default popup in viewport.
func NewPlacer(viewport model.Size) *Placer {
	return &Placer{Viewport: viewport, Popup: DefaultSize(), Options: DefaultOptions()}
}

// Place positions the bound popup at pointer.
func (p *Placer) Place(pointer model.Point) model.Point {
	return Place(pointer, p.Viewport, p.Popup, p.Options)
}

// Rect returns the popup rectangle anchored at pos.
func (p *Placer) Rect(pos model.Point) model.Rect {
	return model.Rect{Min: pos, Size: p.Popup}
}
