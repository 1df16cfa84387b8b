package selection

import (
	"testing"

	"github.com/vanderheijden86/podgraph/pkg/model"
	"pgregory.net/rapid"
)

type offsetPlacer struct{ d float64 }

func (o offsetPlacer) Place(p model.Point) model.Point { return p.Add(model.Pt(o.d, o.d)) }

func TestNodeClickToggles(t *testing.T) {
	m := NewMachine(offsetPlacer{20})

	if _, _, ok := m.Current(); ok {
		t.Fatal("new machine should be deselected")
	}
	m.NodeClick("X", model.Pt(10, 10))
	id, anchor, ok := m.Current()
	if !ok || id != "X" || anchor != model.Pt(30, 30) {
		t.Fatalf("after first click: id=%q anchor=%+v ok=%v", id, anchor, ok)
	}
	m.NodeClick("X", model.Pt(99, 99))
	if _, _, ok := m.Current(); ok {
		t.Fatal("second click on X should deselect")
	}
}

func TestNodeClickOtherNodeRecapturesAnchor(t *testing.T) {
	m := NewMachine(offsetPlacer{20})
	m.NodeClick("X", model.Pt(10, 10))
	m.NodeClick("Y", model.Pt(50, 60))
	id, anchor, ok := m.Current()
	if !ok || id != "Y" || anchor != model.Pt(70, 80) {
		t.Errorf("id=%q anchor=%+v ok=%v", id, anchor, ok)
	}
}

func TestClearingTransitions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(m *Machine)
	}{
		{"outside", (*Machine).PointerDownOutside},
		{"result set", (*Machine).ResultSetReplaced},
		{"close", (*Machine).Clear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(nil)
			m.NodeClick("X", model.Pt(1, 2))
			tt.fn(m)
			if m.State().Selected() {
				t.Errorf("still selected: %+v", m.State())
			}
		})
	}
}

func TestNilPlacerUsesPointer(t *testing.T) {
	m := NewMachine(nil)
	m.NodeClick("X", model.Pt(3, 4))
	if _, a, _ := m.Current(); a != model.Pt(3, 4) {
		t.Errorf("anchor = %+v", a)
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	nodes := []model.PositionedItem{
		{Item: model.Item{ID: "a", Relevance: 1}, Position: model.Pt(100, 100)},   // radius 50
		{Item: model.Item{ID: "b", Relevance: 0}, Position: model.Pt(120, 100)},   // radius 20
		{Item: model.Item{ID: "c", Relevance: 0.5}, Position: model.Pt(400, 400)}, // radius 35
	}
	tests := []struct {
		p    model.Point
		want int
	}{
		{model.Pt(90, 100), 0},
		{model.Pt(100, 100), 1}, // exactly on b's rim: the edge counts and b is on top
		{model.Pt(125, 100), 1},
		{model.Pt(140, 100), 1}, // on b's rim at the far side
		{model.Pt(150, 100), 0}, // a's rim
		{model.Pt(149, 100), 0},
		{model.Pt(151, 100), -1},
		{model.Pt(400, 434), 2},
		{model.Pt(300, 300), -1},
	}
	for _, tt := range tests {
		if got := HitTest(nodes, tt.p); got != tt.want {
			t.Errorf("HitTest(%+v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestRegionsOutside(t *testing.T) {
	r := NewRegions()
	if !r.Outside(model.Pt(0, 0)) {
		t.Fatal("empty registry should report outside")
	}
	r.Register("popup", Rect{Min: model.Pt(10, 10), Size: model.Size{W: 100, H: 50}})
	r.Register("nodes", NodeSet{{Center: model.Pt(300, 300), Radius: 20}})

	if r.Outside(model.Pt(50, 30)) {
		t.Error("point in popup reported outside")
	}
	if got := r.Hit(model.Pt(310, 300)); got != "nodes" {
		t.Errorf("Hit = %q, want nodes", got)
	}
	if !r.Outside(model.Pt(200, 200)) {
		t.Error("point between regions should be outside")
	}

	r.Unregister("popup")
	r.Unregister("missing")
	if !r.Outside(model.Pt(50, 30)) {
		t.Error("unregistered popup still swallowing events")
	}
	r.Register("nodes", nil)
	if len(r.Names()) != 0 {
		t.Errorf("names = %v", r.Names())
	}
}

func TestRouterNodeStopsPropagation(t *testing.T) {
	m := NewMachine(nil)
	regions := NewRegions()
	router := NewRouter(m, regions)
	nodes := []model.PositionedItem{{Item: model.Item{ID: "X"}, Position: model.Pt(0, 0)}}

	if out := router.PointerDown(model.Pt(0, 0), nodes, 0); out != OutcomeNode {
		t.Fatalf("outcome = %v", out)
	}
	if !m.State().Selected() {
		t.Fatal("node click did not select")
	}

	regions.Register("popup", Rect(model.Rect{Min: model.Pt(100, -50), Size: model.Size{W: 200, H: 100}}))
	if out := router.PointerDown(model.Pt(150, 0), nodes, -1); out != OutcomeRegion {
		t.Fatalf("outcome = %v", out)
	}
	if !m.State().Selected() {
		t.Fatal("press inside popup cleared the selection")
	}

	if out := router.PointerDown(model.Pt(50, 0), nodes, -1); out != OutcomeOutside {
		t.Fatalf("outcome = %v", out)
	}
	if m.State().Selected() {
		t.Fatal("outside press did not deselect")
	}
}

func TestSelectionToggle_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := NewMachine(nil)
		clicks := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c"})).Draw(rt, "clicks")
		var want string
		for _, id := range clicks {
			if want == id {
				want = ""
			} else {
				want = id
			}
			m.NodeClick(id, model.Pt(0, 0))
			if got := m.State().ID; got != want {
				rt.Fatalf("after click %q: selected %q, want %q", id, got, want)
			}
		}
	})
}

func TestSelectDoesNotToggle(t *testing.T) {
	m := NewMachine(offsetPlacer{1})
	m.Select("X", model.Pt(0, 0))
	m.Select("X", model.Pt(50, 50))
	id, anchor, ok := m.Current()
	if !ok || id != "X" || anchor != model.Pt(1, 1) {
		t.Errorf("id=%q anchor=%+v ok=%v", id, anchor, ok)
	}
}
