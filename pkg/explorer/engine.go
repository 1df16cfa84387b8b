// Package explorer composes layout, viewport, selection, popup placement
// and edge resolution into the engine a host UI drives with pointer events.
//
// The engine is single-threaded: the host delivers events serially and
// reads Snapshot on the same goroutine.
package explorer

import (
	"time"

	"github.com/vanderheijden86/podgraph/pkg/debug"
	"github.com/vanderheijden86/podgraph/pkg/edges"
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/metrics"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/popup"
	"github.com/vanderheijden86/podgraph/pkg/selection"
	"github.com/vanderheijden86/podgraph/pkg/viewport"
)

// RegionPopup is the exclusion region name of the open details popup.
const RegionPopup = "popup"

// Config bundles the component configurations.
type Config struct {
	Layout       layout.Config
	Viewport     viewport.Config
	PopupSize    model.Size
	PopupOptions popup.Options
	Screen       model.Size
	Suggestions  model.Suggestions
}

// DefaultConfig returns an 800x600 screen matching the logical canvas.
func DefaultConfig() Config {
	l := layout.DefaultConfig()
	return Config{
		Layout:       l,
		Viewport:     viewport.DefaultConfig(),
		PopupSize:    popup.DefaultSize(),
		PopupOptions: popup.DefaultOptions(),
		Screen:       model.Size{W: l.Width, H: l.Height},
	}
}

// Callbacks are invoked synchronously from event handlers. Nil callbacks
// are skipped.
type Callbacks struct {
	OnPreview             func(item model.Item)
	OnAddToTarget         func(item model.Item)
	OnCopy                func(item model.Item)
	OnSuggestionActivated func(text string)
	OnRequestFullscreen   func()
}

// Engine owns the current result set and one of each core component.
type Engine struct {
	cfg Config
	cb  Callbacks

	viewport *viewport.Controller
	placer   *popup.Placer
	machine  *selection.Machine
	regions  *selection.Regions
	router   *selection.Router

	query      string
	generation uint64
	nodes      []model.PositionedItem
	index      map[string]int
	graph      *edges.Graph
	segments   []edges.Segment
	lastPtr    model.Point
}

// New returns an engine with an empty result set.
func New(cfg Config, cb Callbacks) *Engine {
	if cfg.Layout == (layout.Config{}) {
		cfg.Layout = layout.DefaultConfig()
	}
	if cfg.PopupSize == (model.Size{}) {
		cfg.PopupSize = popup.DefaultSize()
	}
	if cfg.PopupOptions == (popup.Options{}) {
		cfg.PopupOptions = popup.DefaultOptions()
	}
	if cfg.Screen.W <= 0 || cfg.Screen.H <= 0 {
		cfg.Screen = model.Size{W: cfg.Layout.Width, H: cfg.Layout.Height}
	}

	e := &Engine{
		cfg:      cfg,
		cb:       cb,
		viewport: viewport.New(cfg.Viewport),
		placer: &popup.Placer{
			Viewport: cfg.Screen,
			Popup:    cfg.PopupSize,
			Options:  cfg.PopupOptions,
		},
		regions: selection.NewRegions(),
	}
	e.machine = selection.NewMachine(e.placer)
	e.router = selection.NewRouter(e.machine, e.regions)
	e.viewport.SetViewportSize(cfg.Screen)
	e.SetResultSet(model.ResultSet{})
	return e
}

// SetCallbacks replaces the callback set.
func (e *Engine) SetCallbacks(cb Callbacks) { e.cb = cb }

// Regions exposes the exclusion-region registry so hosts can register
// their own chrome (toolbars, chips) as non-outside areas.
func (e *Engine) Regions() *selection.Regions { return e.regions }

// Viewport exposes the viewport controller for toolbar actions.
func (e *Engine) Viewport() *viewport.Controller { return e.viewport }

// Generation identifies the current result set; it increases on every
// SetResultSet.
func (e *Engine) Generation() uint64 { return e.generation }

// Nodes returns the positioned items of the current result set.
func (e *Engine) Nodes() []model.PositionedItem { return e.nodes }

// SetResultSet replaces the result set wholesale: positions and edges are
// recomputed, the viewport resets and the selection clears.
func (e *Engine) SetResultSet(rs model.ResultSet) {
	start := time.Now()

	e.query = rs.Query
	stopLayout := metrics.Timer(metrics.LayoutCompute)
	e.nodes = layout.Layout(rs.Items, e.cfg.Layout)
	e.index = layout.Index(e.nodes)
	stopLayout()

	stopEdges := metrics.Timer(metrics.EdgeResolve)
	e.graph = edges.Build(e.nodes)
	e.segments = edges.Segments(e.nodes)
	stopEdges()
	e.viewport.Reset()
	e.machine.ResultSetReplaced()
	e.syncPopupRegion()
	e.generation++

	debug.Logw("result set replaced",
		"query", rs.Query,
		"items", len(e.nodes),
		"edges", len(e.segments),
		"generation", e.generation)
	debug.LogTiming("SetResultSet", time.Since(start))
}

// Resize updates the screen size used for the zoom anchor and popup bounds.
// An open popup keeps its captured anchor.
func (e *Engine) Resize(s model.Size) {
	if s.W <= 0 || s.H <= 0 {
		return
	}
	e.cfg.Screen = s
	e.viewport.SetViewportSize(s)
	e.placer.Viewport = s
	e.syncPopupRegion()
}

// Screen returns the current screen size.
func (e *Engine) Screen() model.Size { return e.cfg.Screen }

// Result describes how a pointer-down was handled.
type Result struct {
	Outcome selection.Outcome
	Action  Action
	NodeID  string
}

// PointerDown handles a press at screen point p. The popup is evaluated
// first since it draws above nodes, then nodes, then other registered
// regions. A press outside everything clears the selection and starts a
// pan.
func (e *Engine) PointerDown(p model.Point) Result {
	e.lastPtr = p

	if rect, ok := e.popupRect(); ok && rect.Contains(p) {
		action := HitButton(PopupButtons(rect), p)
		e.runAction(action)
		return Result{Outcome: selection.OutcomeRegion, Action: action}
	}

	hit := selection.HitTest(e.nodes, e.viewport.ToWorld(p))
	out := e.router.PointerDown(p, e.nodes, hit)
	e.syncPopupRegion()

	res := Result{Outcome: out}
	switch out {
	case selection.OutcomeNode:
		res.NodeID = e.nodes[hit].ID
		debug.Log("node %s pressed, selected=%v", res.NodeID, e.machine.State().Selected())
	case selection.OutcomeOutside:
		e.viewport.BeginDrag(p)
	}
	return res
}

// PointerMove records the pointer and pans while a drag is active.
func (e *Engine) PointerMove(p model.Point) {
	e.lastPtr = p
	e.viewport.UpdateDrag(p)
}

// PointerUp ends any drag.
func (e *Engine) PointerUp() { e.endDrag() }

// PointerLeave ends any drag. It shares PointerUp's handler so a pointer
// leaving mid-drag never leaves the viewport stuck dragging.
func (e *Engine) PointerLeave() { e.endDrag() }

func (e *Engine) endDrag() { e.viewport.EndDrag() }

// LastPointer returns the last pointer position seen.
func (e *Engine) LastPointer() model.Point { return e.lastPtr }

// Wheel zooms out for positive deltaY and in for negative deltaY.
func (e *Engine) Wheel(deltaY float64) {
	switch {
	case deltaY > 0:
		e.viewport.ZoomBy(-1)
	case deltaY < 0:
		e.viewport.ZoomBy(1)
	}
}

// ZoomIn, ZoomOut and ResetView are the toolbar controls.
func (e *Engine) ZoomIn()    { e.viewport.ZoomIn() }
func (e *Engine) ZoomOut()   { e.viewport.ZoomOut() }
func (e *Engine) ResetView() { e.viewport.Reset() }

// Pan shifts the view by d screen units.
func (e *Engine) Pan(d model.Point) { e.viewport.PanBy(d) }

// Selected returns the selected item.
func (e *Engine) Selected() (model.Item, bool) {
	id, _, ok := e.machine.Current()
	if !ok {
		return model.Item{}, false
	}
	i, found := e.index[id]
	if !found {
		return model.Item{}, false
	}
	return e.nodes[i].Item, true
}

// SelectStep moves the selection delta nodes along input order, wrapping
// around, and anchors the popup at the node's on-screen position.
func (e *Engine) SelectStep(delta int) {
	n := len(e.nodes)
	if n == 0 {
		return
	}
	cur := -1
	if id, _, ok := e.machine.Current(); ok {
		cur = e.index[id]
	} else if delta < 0 {
		cur = 0
	}
	next := ((cur+delta)%n + n) % n
	node := e.nodes[next]
	e.machine.Select(node.ID, e.viewport.ToScreen(node.Position))
	e.syncPopupRegion()
}

// Trigger runs a popup action against the selected item.
func (e *Engine) Trigger(a Action) { e.runAction(a) }

// Close deselects, as the popup close button does.
func (e *Engine) Close() { e.runAction(ActionClose) }

// ActivateSuggestion forwards a suggestion chip activation.
func (e *Engine) ActivateSuggestion(text string) {
	debug.Log("suggestion activated: %q", text)
	if e.cb.OnSuggestionActivated != nil {
		e.cb.OnSuggestionActivated(text)
	}
}

// RequestFullscreen forwards a fullscreen request. The engine keeps no
// fullscreen state.
func (e *Engine) RequestFullscreen() {
	if e.cb.OnRequestFullscreen != nil {
		e.cb.OnRequestFullscreen()
	}
}

// Suggestions returns the configured suggestion chips.
func (e *Engine) Suggestions() model.Suggestions { return e.cfg.Suggestions }

func (e *Engine) runAction(a Action) {
	item, ok := e.Selected()
	if !ok {
		return
	}
	switch a {
	case ActionPreview:
		if e.cb.OnPreview != nil {
			e.cb.OnPreview(item)
		}
	case ActionAdd:
		if e.cb.OnAddToTarget != nil {
			e.cb.OnAddToTarget(item)
		}
	case ActionCopy:
		if e.cb.OnCopy != nil {
			e.cb.OnCopy(item)
		}
	case ActionClose:
		e.machine.Clear()
		e.syncPopupRegion()
	}
}

func (e *Engine) popupRect() (model.Rect, bool) {
	_, anchor, ok := e.machine.Current()
	if !ok {
		return model.Rect{}, false
	}
	return e.placer.Rect(anchor), true
}

func (e *Engine) syncPopupRegion() {
	if rect, ok := e.popupRect(); ok {
		e.regions.Register(RegionPopup, selection.Rect(rect))
		return
	}
	e.regions.Unregister(RegionPopup)
}
