package viewport

import (
	"math"
	"testing"

	"github.com/vanderheijden86/podgraph/pkg/model"
	"pgregory.net/rapid"
)

func TestZoomSaturatesAtMax(t *testing.T) {
	c := New(DefaultConfig())
	for i := 0; i < 20; i++ {
		c.ZoomBy(1)
	}
	if got := c.State().Zoom; got != 3.0 {
		t.Errorf("zoom = %v, want 3.0", got)
	}
}

func TestZoomSaturatesAtMin(t *testing.T) {
	c := New(DefaultConfig())
	for i := 0; i < 100; i++ {
		c.ZoomBy(-1)
	}
	if got := c.State().Zoom; got != 0.1 {
		t.Errorf("zoom = %v, want 0.1", got)
	}
}

func TestZoomBySteps(t *testing.T) {
	c := New(DefaultConfig())
	c.ZoomBy(1)
	if got := c.State().Zoom; math.Abs(got-1.1) > 1e-12 {
		t.Errorf("zoom in = %v, want 1.1", got)
	}
	c.Reset()
	c.ZoomBy(-1)
	if got := c.State().Zoom; math.Abs(got-0.9) > 1e-12 {
		t.Errorf("zoom out = %v, want 0.9", got)
	}
	c.ZoomBy(0)
	if got := c.State().Zoom; math.Abs(got-0.9) > 1e-12 {
		t.Errorf("zero sign changed zoom to %v", got)
	}
}

func TestToolbarSteps(t *testing.T) {
	c := New(DefaultConfig())
	c.ZoomIn()
	if c.ZoomPercent() != 120 {
		t.Errorf("percent = %d, want 120", c.ZoomPercent())
	}
	c.ZoomOut()
	c.ZoomOut()
	if c.ZoomPercent() != 83 {
		t.Errorf("percent = %d, want 83", c.ZoomPercent())
	}
}

func TestDragLifecycle(t *testing.T) {
	c := New(DefaultConfig())

	c.UpdateDrag(model.Pt(50, 50))
	if c.State().Pan != (model.Point{}) {
		t.Fatalf("update without drag moved pan: %+v", c.State().Pan)
	}

	if _, ok := c.Drag(); ok {
		t.Fatal("drag state reported before BeginDrag")
	}
	c.BeginDrag(model.Pt(10, 10))
	c.BeginDrag(model.Pt(500, 500)) // ignored while active
	if d, ok := c.Drag(); !ok || d.OriginPointer != model.Pt(10, 10) || d.OriginPan != (model.Point{}) {
		t.Errorf("drag = %+v, %v", d, ok)
	}
	c.UpdateDrag(model.Pt(30, 5))
	if got, want := c.State().Pan, model.Pt(20, -5); got != want {
		t.Errorf("pan = %+v, want %+v", got, want)
	}
	c.UpdateDrag(model.Pt(40, 40))
	if got, want := c.State().Pan, model.Pt(30, 30); got != want {
		t.Errorf("pan = %+v, want %+v", got, want)
	}
	c.EndDrag()
	if c.Dragging() {
		t.Fatal("still dragging after EndDrag")
	}

	// A second gesture starts from the accumulated pan.
	c.BeginDrag(model.Pt(0, 0))
	c.UpdateDrag(model.Pt(1, 2))
	if got, want := c.State().Pan, model.Pt(31, 32); got != want {
		t.Errorf("pan = %+v, want %+v", got, want)
	}
	c.EndDrag()
	c.EndDrag()
}

func TestResetDropsDrag(t *testing.T) {
	c := New(DefaultConfig())
	c.BeginDrag(model.Pt(1, 1))
	c.UpdateDrag(model.Pt(5, 5))
	c.ZoomIn()
	c.Reset()
	if c.Dragging() || c.State() != (State{Zoom: 1}) {
		t.Errorf("reset left state %+v dragging=%v", c.State(), c.Dragging())
	}
}

func TestTransformZeroAnchor(t *testing.T) {
	s := State{Zoom: 2, Pan: model.Pt(10, -5)}
	got := Transform(s, model.Point{}, model.Pt(3, 4))
	if want := model.Pt(16, 3); got != want {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}
}

func TestCenterAnchoredZoom(t *testing.T) {
	c := New(DefaultConfig())
	c.SetViewportSize(model.Size{W: 800, H: 600})
	center := model.Pt(400, 300)
	c.ZoomIn()
	c.ZoomIn()
	if got := c.ToScreen(center); got.Dist(center) > 1e-9 {
		t.Errorf("centre moved under zoom: %+v", got)
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	c := New(Config{ZoomMin: -1, ZoomMax: 0})
	if got := c.Config(); got != DefaultConfig() {
		t.Errorf("config = %+v, want defaults", got)
	}
}

func TestZoomClamp_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := New(DefaultConfig())
		ops := rapid.SliceOf(rapid.IntRange(-3, 3)).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 3:
				c.ZoomIn()
			case -3:
				c.ZoomOut()
			default:
				c.ZoomBy(op)
			}
			z := c.State().Zoom
			if z < 0.1 || z > 3.0 {
				rt.Fatalf("zoom %v escaped [0.1, 3.0]", z)
			}
		}
	})
}

func TestTransformRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := State{
			Zoom: rapid.Float64Range(0.1, 3).Draw(rt, "zoom"),
			Pan:  model.Pt(rapid.Float64Range(-1e3, 1e3).Draw(rt, "px"), rapid.Float64Range(-1e3, 1e3).Draw(rt, "py")),
		}
		anchor := model.Pt(rapid.Float64Range(0, 1e3).Draw(rt, "ax"), rapid.Float64Range(0, 1e3).Draw(rt, "ay"))
		w := model.Pt(rapid.Float64Range(-1e3, 1e3).Draw(rt, "wx"), rapid.Float64Range(-1e3, 1e3).Draw(rt, "wy"))
		back := Inverse(s, anchor, Transform(s, anchor, w))
		if back.Dist(w) > 1e-6 {
			rt.Fatalf("round trip %+v -> %+v", w, back)
		}
	})
}

func TestPanBy(t *testing.T) {
	c := New(DefaultConfig())
	c.PanBy(model.Pt(5, -3))
	c.PanBy(model.Pt(1, 1))
	if got, want := c.State().Pan, model.Pt(6, -2); got != want {
		t.Errorf("pan = %+v, want %+v", got, want)
	}
	c.BeginDrag(model.Pt(0, 0))
	c.PanBy(model.Pt(100, 100))
	if got, want := c.State().Pan, model.Pt(6, -2); got != want {
		t.Errorf("PanBy during drag changed pan to %+v", got)
	}
}
