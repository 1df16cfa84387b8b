package selection

import (
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/model"
)

// HitTest returns the index of the topmost node whose disc contains the
// logical point p, or -1. Later nodes are drawn on top of earlier ones.
func HitTest(nodes []model.PositionedItem, p model.Point) int {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if p.Dist(n.Position) <= layout.NodeRadius(n.Relevance) {
			return i
		}
	}
	return -1
}
