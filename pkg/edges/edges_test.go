package edges

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/vanderheijden86/podgraph/pkg/model"
	"pgregory.net/rapid"
)

func positioned(specs map[string][]string, order ...string) []model.PositionedItem {
	out := make([]model.PositionedItem, len(order))
	for i, id := range order {
		out[i] = model.PositionedItem{
			Item:     model.Item{ID: id, Title: id, Connections: specs[id]},
			Position: model.Pt(float64(i*10), float64(i*5)),
		}
	}
	return out
}

func TestResolveMutualConnectionOnce(t *testing.T) {
	items := positioned(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}, "A", "B")
	got := Resolve(items)
	want := []Edge{{A: "A", B: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveDropsDanglingAndSelf(t *testing.T) {
	items := positioned(map[string][]string{
		"1": {"2", "3", "99", "1"},
		"2": {"1", "4"},
		"3": {"1", "5"},
	}, "1", "2", "3")
	got := Resolve(items)
	want := []Edge{{A: "1", B: "2"}, {A: "1", B: "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveEmpty(t *testing.T) {
	if got := Resolve(nil); len(got) != 0 {
		t.Errorf("expected no edges, got %v", got)
	}
}

func TestSegmentsCarryPositions(t *testing.T) {
	items := positioned(map[string][]string{"b": {"a"}}, "a", "b")
	segs := Segments(items)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	s := segs[0]
	if s.A != "a" || s.From != model.Pt(0, 0) || s.To != model.Pt(10, 5) {
		t.Errorf("segment = %+v", s)
	}
}

func TestGraphDegreeAndNeighbors(t *testing.T) {
	items := positioned(map[string][]string{
		"1": {"2", "3"},
		"2": {"1", "4"},
		"4": {"2"},
	}, "1", "2", "3", "4")
	g := Build(items)
	if d := g.Degree("2"); d != 2 {
		t.Errorf("Degree(2) = %d, want 2", d)
	}
	if d := g.Degree("missing"); d != 0 {
		t.Errorf("Degree(missing) = %d", d)
	}
	if got := g.Neighbors("1"); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("Neighbors(1) = %v", got)
	}

	deg := Degree(g.Edges())
	if deg["1"] != 2 || deg["3"] != 1 || deg["4"] != 1 {
		t.Errorf("Degree map = %v", deg)
	}
}

func TestResolveDedup_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(rt, "n")
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("i%d", i)
		}
		specs := make(map[string][]string, n)
		for _, id := range ids {
			k := rapid.IntRange(0, 6).Draw(rt, "k")
			for j := 0; j < k; j++ {
				target := fmt.Sprintf("i%d", rapid.IntRange(0, 15).Draw(rt, "target"))
				specs[id] = append(specs[id], target)
			}
		}
		items := positioned(specs, ids...)
		got := Resolve(items)

		present := make(map[string]bool, n)
		for _, id := range ids {
			present[id] = true
		}
		seen := make(map[Edge]bool)
		for i, e := range got {
			if e.A >= e.B {
				rt.Fatalf("edge %v not ordered", e)
			}
			if !present[e.A] || !present[e.B] {
				rt.Fatalf("edge %v references absent item", e)
			}
			if seen[e] {
				rt.Fatalf("edge %v emitted twice", e)
			}
			seen[e] = true
			if i > 0 && !(got[i-1].A < e.A || (got[i-1].A == e.A && got[i-1].B < e.B)) {
				rt.Fatalf("edges not sorted at %d", i)
			}
		}
		// Every declared in-set relation is present.
		for id, targets := range specs {
			for _, tgt := range targets {
				if tgt == id || !present[tgt] {
					continue
				}
				if !seen[NewEdge(id, tgt)] {
					rt.Fatalf("missing edge %s-%s", id, tgt)
				}
			}
		}
	})
}
