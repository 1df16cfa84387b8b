package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/vanderheijden86/podgraph/pkg/model"
	"pgregory.net/rapid"
)

func itemsWithRelevance(rels ...float64) []model.Item {
	items := make([]model.Item, len(rels))
	for i, r := range rels {
		items[i] = model.Item{ID: fmt.Sprintf("%d", i+1), Title: fmt.Sprintf("Item %d", i+1), Relevance: r}
	}
	return items
}

func distFromCenter(p model.PositionedItem, cfg Config) float64 {
	return p.Position.Dist(cfg.Center())
}

func TestLayoutEmpty(t *testing.T) {
	got := Layout(nil, DefaultConfig())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil layout, got %#v", got)
	}
}

func TestLayoutSingleItemAtAngleZero(t *testing.T) {
	cfg := DefaultConfig()
	got := Layout(itemsWithRelevance(1.0), cfg)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	want := model.Pt(500, 300)
	if got[0].Position != want {
		t.Errorf("position = %+v, want %+v", got[0].Position, want)
	}
}

func TestLayoutRelevanceRadius(t *testing.T) {
	cfg := DefaultConfig()
	items := itemsWithRelevance(0.95, 0.87, 0.76, 0.82, 0.69)
	got := Layout(items, cfg)

	nearest := 0
	for i := range got {
		if distFromCenter(got[i], cfg) < distFromCenter(got[nearest], cfg) {
			nearest = i
		}
	}
	if nearest != 0 {
		t.Errorf("expected item 1 closest to centre, got item %d", nearest+1)
	}
	if distFromCenter(got[2], cfg) <= distFromCenter(got[0], cfg) {
		t.Errorf("item 3 (0.76) should sit farther out than item 1 (0.95)")
	}

	for i, p := range got {
		want := 100 + (1-items[i].Relevance)*150
		if d := distFromCenter(p, cfg); math.Abs(d-want) > 1e-9 {
			t.Errorf("item %d radius = %v, want %v", i+1, d, want)
		}
	}
}

func TestLayoutReorderMovesAngles(t *testing.T) {
	cfg := DefaultConfig()
	items := itemsWithRelevance(0.95, 0.87, 0.76, 0.82, 0.69)
	reordered := []model.Item{items[2], items[0], items[1], items[3], items[4]}

	got := Layout(reordered, cfg)
	first := got[0]
	if first.ID != "3" {
		t.Fatalf("expected item 3 first, got %s", first.ID)
	}
	// Index 0 is always at angle 0: directly right of centre.
	if math.Abs(first.Position.Y-cfg.Center().Y) > 1e-9 || first.Position.X <= cfg.Center().X {
		t.Errorf("first item not at angle 0: %+v", first.Position)
	}
}

func TestLayoutClampsRelevance(t *testing.T) {
	cfg := DefaultConfig()
	got := Layout(itemsWithRelevance(-1, 2, math.NaN()), cfg)
	radii := []float64{250, 100, 250}
	for i, want := range radii {
		if d := distFromCenter(got[i], cfg); math.Abs(d-want) > 1e-9 {
			t.Errorf("item %d radius = %v, want %v", i, d, want)
		}
	}
}

func TestNodeRadiusAndBand(t *testing.T) {
	tests := []struct {
		rel    float64
		radius float64
		band   Band
	}{
		{0.95, 48.5, BandHigh},
		{0.8, 44, BandMedium},
		{0.69, 40.7, BandMedium},
		{0.5, 35, BandLow},
		{0.4, 32, BandMinimal},
		{0, 20, BandMinimal},
	}
	for _, tt := range tests {
		if got := NodeRadius(tt.rel); math.Abs(got-tt.radius) > 1e-9 {
			t.Errorf("NodeRadius(%v) = %v, want %v", tt.rel, got, tt.radius)
		}
		if got := RelevanceBand(tt.rel); got != tt.band {
			t.Errorf("RelevanceBand(%v) = %v, want %v", tt.rel, got, tt.band)
		}
	}
}

func TestIndex(t *testing.T) {
	got := Layout(itemsWithRelevance(0.1, 0.2, 0.3), DefaultConfig())
	idx := Index(got)
	if idx["2"] != 1 || idx["3"] != 2 || len(idx) != 3 {
		t.Errorf("unexpected index %v", idx)
	}
}

func TestIndexFirstDuplicateWins(t *testing.T) {
	items := itemsWithRelevance(0.1, 0.2, 0.3)
	items[2].ID = "1"
	idx := Index(Layout(items, DefaultConfig()))
	if idx["1"] != 0 || len(idx) != 2 {
		t.Errorf("duplicate ID should map to its first item, got %v", idx)
	}
}

func TestLayoutDeterministic_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rels := rapid.SliceOfN(rapid.Float64Range(0, 1), 0, 40).Draw(rt, "relevance")
		items := itemsWithRelevance(rels...)
		cfg := DefaultConfig()

		a := Layout(items, cfg)
		b := Layout(items, cfg)
		if len(a) != len(items) {
			rt.Fatalf("len = %d, want %d", len(a), len(items))
		}
		for i := range a {
			if a[i].Position != b[i].Position || a[i].ID != b[i].ID {
				rt.Fatalf("layout differs at %d: %+v vs %+v", i, a[i], b[i])
			}
			d := distFromCenter(a[i], cfg)
			if d < cfg.BaseRadius-1e-9 || d > cfg.BaseRadius+cfg.Spread+1e-9 {
				rt.Fatalf("item %d radius %v out of ring", i, d)
			}
		}
	})
}

func TestLabel(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"", ""},
		{"Short", "Short"},
		{"Exactly twenty chars", "Exactly twenty chars"},
		{"The Future of AI in Creative Industries", "The Future of AI in ..."},
		{"Ünïcödé títlé thät rüns löng", "Ünïcödé títlé thät r..."},
	}
	for _, tc := range tests {
		if got := Label(tc.title); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
