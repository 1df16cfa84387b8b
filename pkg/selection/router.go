package selection

import (
	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Outcome describes how a pointer-down was consumed.
type Outcome int

const (
	// OutcomeOutside means no node or region took the event; the
	// selection was cleared.
	OutcomeOutside Outcome = iota
	// OutcomeNode means a node was clicked and propagation stopped.
	OutcomeNode
	// OutcomeRegion means a registered region (e.g. the popup) took it.
	OutcomeRegion
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNode:
		return "node"
	case OutcomeRegion:
		return "region"
	default:
		return "outside"
	}
}

// Router dispatches one pointer-down. Nodes are evaluated first; a node hit
// stops propagation so the outside detector never sees that event.
type Router struct {
	Machine *Machine
	Regions *Regions
}

// NewRouter wires a machine and a region registry.
func NewRouter(m *Machine, r *Regions) *Router {
	return &Router{Machine: m, Regions: r}
}

// PointerDown routes a press at screen point p. hit is the index of the
// node under p (as returned by HitTest) or -1.
func (r *Router) PointerDown(p model.Point, nodes []model.PositionedItem, hit int) Outcome {
	if hit >= 0 && hit < len(nodes) {
		r.Machine.NodeClick(nodes[hit].ID, p)
		return OutcomeNode
	}
	if r.Regions != nil && !r.Regions.Outside(p) {
		return OutcomeRegion
	}
	r.Machine.PointerDownOutside()
	return OutcomeOutside
}
