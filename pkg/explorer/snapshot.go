package explorer

import (
	"github.com/vanderheijden86/podgraph/pkg/edges"
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/metrics"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/selection"
	"github.com/vanderheijden86/podgraph/pkg/viewport"
)

// Node is a positioned item as a renderer sees it.
type Node struct {
	model.PositionedItem
	Screen   model.Point `json:"screen"`
	Radius   float64     `json:"radius"`
	Band     layout.Band `json:"band"`
	Degree   int         `json:"degree"`
	Selected bool        `json:"selected,omitempty"`
}

// PopupView is the open details popup.
type PopupView struct {
	Item    model.Item `json:"item"`
	Rect    model.Rect `json:"rect"`
	Degree  int        `json:"degree"`
	Related []string   `json:"related,omitempty"` // titles of connected items
	Buttons []Button   `json:"-"`
}

// Snapshot is a read-only view of the engine for renderers. Segment
// endpoints and node centres are in screen units.
type Snapshot struct {
	Generation  uint64            `json:"generation"`
	Query       string            `json:"query,omitempty"`
	Screen      model.Size        `json:"screen"`
	Viewport    viewport.State    `json:"viewport"`
	ZoomPercent int               `json:"zoom_percent"`
	Dragging    bool              `json:"dragging,omitempty"`
	Nodes       []Node            `json:"nodes"`
	Segments    []edges.Segment   `json:"segments"`
	Selection   selection.State   `json:"selection"`
	Popup       *PopupView        `json:"popup,omitempty"`
	Suggestions model.Suggestions `json:"suggestions"`
}

// Empty reports whether the result set has no items.
func (s Snapshot) Empty() bool { return len(s.Nodes) == 0 }

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	defer metrics.Timer(metrics.SnapshotBuild)()
	vs := e.viewport.State()
	sel := e.machine.State()

	nodes := make([]Node, len(e.nodes))
	for i, n := range e.nodes {
		nodes[i] = Node{
			PositionedItem: n,
			Screen:         e.viewport.ToScreen(n.Position),
			Radius:         layout.NodeRadius(n.Relevance) * vs.Zoom,
			Band:           layout.RelevanceBand(n.Relevance),
			Degree:         e.graph.Degree(n.ID),
			Selected:       sel.ID == n.ID,
		}
	}

	segs := make([]edges.Segment, len(e.segments))
	for i, s := range e.segments {
		segs[i] = edges.Segment{
			Edge: s.Edge,
			From: e.viewport.ToScreen(s.From),
			To:   e.viewport.ToScreen(s.To),
		}
	}

	snap := Snapshot{
		Generation:  e.generation,
		Query:       e.query,
		Screen:      e.cfg.Screen,
		Viewport:    vs,
		ZoomPercent: e.viewport.ZoomPercent(),
		Dragging:    e.viewport.Dragging(),
		Nodes:       nodes,
		Segments:    segs,
		Selection:   sel,
		Suggestions: e.cfg.Suggestions,
	}

	if item, ok := e.Selected(); ok {
		rect, _ := e.popupRect()
		snap.Popup = &PopupView{
			Item:    item,
			Rect:    rect,
			Degree:  e.graph.Degree(item.ID),
			Related: e.relatedTitles(item.ID),
			Buttons: PopupButtons(rect),
		}
	}
	return snap
}

func (e *Engine) relatedTitles(id string) []string {
	var out []string
	for _, n := range e.graph.Neighbors(id) {
		if i, ok := e.index[n]; ok {
			out = append(out, e.nodes[i].Title)
		}
	}
	return out
}
