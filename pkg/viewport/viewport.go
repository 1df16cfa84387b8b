// Package viewport owns the pan/zoom state of the graph canvas and the
// transform between logical layout coordinates and screen coordinates.
package viewport

import (
	"math"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Config holds zoom limits and step factors.
type Config struct {
	ZoomMin    float64 // Lower zoom bound
	ZoomMax    float64 // Upper zoom bound
	WheelStep  float64 // Multiplicative step per wheel notch (zoom in); out uses 2-WheelStep
	ButtonStep float64 // Multiplicative step for ZoomIn/ZoomOut
}

// DefaultConfig returns zoom bounds [0.1, 3.0], wheel ×1.1/×0.9 and button ×1.2.
func DefaultConfig() Config {
	return Config{
		ZoomMin:    0.1,
		ZoomMax:    3.0,
		WheelStep:  1.1,
		ButtonStep: 1.2,
	}
}

// State is the persistent viewport: zoom factor and pan offset in screen units.
type State struct {
	Zoom float64     `json:"zoom"`
	Pan  model.Point `json:"pan"`
}

// DragState exists only between BeginDrag and EndDrag.
type DragState struct {
	OriginPointer model.Point
	OriginPan     model.Point
}

// Controller mutates a viewport State. It is not safe for concurrent use;
// a single event loop owns it.
type Controller struct {
	cfg    Config
	state  State
	drag   *DragState
	anchor model.Point
}

// New returns a controller at zoom 1, zero pan.
func New(cfg Config) *Controller {
	if cfg.ZoomMin <= 0 || cfg.ZoomMax < cfg.ZoomMin {
		d := DefaultConfig()
		cfg.ZoomMin, cfg.ZoomMax = d.ZoomMin, d.ZoomMax
	}
	if cfg.WheelStep <= 1 || cfg.WheelStep >= 2 {
		cfg.WheelStep = DefaultConfig().WheelStep
	}
	if cfg.ButtonStep <= 1 {
		cfg.ButtonStep = DefaultConfig().ButtonStep
	}
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// State returns a copy of the current viewport state.
func (c *Controller) State() State { return c.state }

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.drag != nil }

// Drag returns the active drag state, if any.
func (c *Controller) Drag() (DragState, bool) {
	if c.drag == nil {
		return DragState{}, false
	}
	return *c.drag, true
}

// BeginDrag starts a pan gesture at pointer p. No-op while a drag is active.
func (c *Controller) BeginDrag(p model.Point) {
	if c.drag != nil {
		return
	}
	c.drag = &DragState{OriginPointer: p, OriginPan: c.state.Pan}
}

// UpdateDrag moves the pan so the content follows the pointer.
// Ignored when no drag is active.
func (c *Controller) UpdateDrag(p model.Point) {
	if c.drag == nil {
		return
	}
	c.state.Pan = c.drag.OriginPan.Add(p.Sub(c.drag.OriginPointer))
}

// EndDrag finishes the gesture. Safe to call when idle.
func (c *Controller) EndDrag() {
	c.drag = nil
}

// PanBy shifts the pan by d, as keyboard panning does. Ignored mid-drag.
func (c *Controller) PanBy(d model.Point) {
	if c.drag != nil {
		return
	}
	c.state.Pan = c.state.Pan.Add(d)
}

// ZoomBy applies one wheel step: positive sign zooms in, negative zooms
// out, zero does nothing.
func (c *Controller) ZoomBy(sign int) {
	switch {
	case sign > 0:
		c.setZoom(c.state.Zoom * c.cfg.WheelStep)
	case sign < 0:
		c.setZoom(c.state.Zoom * (2 - c.cfg.WheelStep))
	}
}

// ZoomIn applies one toolbar step in.
func (c *Controller) ZoomIn() { c.setZoom(c.state.Zoom * c.cfg.ButtonStep) }

// ZoomOut applies one toolbar step out.
func (c *Controller) ZoomOut() { c.setZoom(c.state.Zoom / c.cfg.ButtonStep) }

// ZoomPercent is the rounded zoom readout, e.g. 120 for 1.2.
func (c *Controller) ZoomPercent() int {
	return int(math.Round(c.state.Zoom * 100))
}

// Reset returns to zoom 1 and zero pan and drops any drag.
func (c *Controller) Reset() {
	c.state = State{Zoom: clamp(1, c.cfg.ZoomMin, c.cfg.ZoomMax)}
	c.drag = nil
}

// SetViewportSize sets the zoom anchor to the centre of a viewport of size s.
func (c *Controller) SetViewportSize(s model.Size) {
	c.anchor = model.Pt(s.W/2, s.H/2)
}

// Anchor returns the fixed point of zoom.
func (c *Controller) Anchor() model.Point { return c.anchor }

// ToScreen maps a logical point to screen space.
func (c *Controller) ToScreen(world model.Point) model.Point {
	return Transform(c.state, c.anchor, world)
}

// ToWorld maps a screen point back to logical space.
func (c *Controller) ToWorld(screen model.Point) model.Point {
	return Inverse(c.state, c.anchor, screen)
}

// Transform computes anchor + pan + zoom*(world - anchor).
func Transform(s State, anchor, world model.Point) model.Point {
	return anchor.Add(s.Pan).Add(world.Sub(anchor).Scale(s.Zoom))
}

// Inverse undoes Transform. Zoom is never zero for a clamped state.
func Inverse(s State, anchor, screen model.Point) model.Point {
	return screen.Sub(anchor).Sub(s.Pan).Scale(1 / s.Zoom).Add(anchor)
}

func (c *Controller) setZoom(z float64) {
	c.state.Zoom = clamp(z, c.cfg.ZoomMin, c.cfg.ZoomMax)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
