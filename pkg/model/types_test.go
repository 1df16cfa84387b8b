package model

import (
	"math"
	"testing"
)

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{ID: "1", Title: "AI", Relevance: 0.5}, false},
		{"bounds inclusive", Item{ID: "1", Title: "AI", Relevance: 1}, false},
		{"empty id", Item{ID: " ", Title: "AI"}, true},
		{"empty title", Item{ID: "1"}, true},
		{"negative relevance", Item{ID: "1", Title: "AI", Relevance: -0.1}, true},
		{"relevance above one", Item{ID: "1", Title: "AI", Relevance: 1.01}, true},
		{"nan relevance", Item{ID: "1", Title: "AI", Relevance: math.NaN()}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestItemHasTag(t *testing.T) {
	it := Item{Tags: []string{"AI", "future"}}
	if !it.HasTag("ai") {
		t.Error("expected case-insensitive tag match")
	}
	if it.HasTag("ethics") {
		t.Error("unexpected tag match")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Pt(10, 10), Size: Size{W: 20, H: 10}}
	for _, p := range []Point{Pt(10, 10), Pt(30, 20), Pt(15, 15)} {
		if !r.Contains(p) {
			t.Errorf("expected %v inside %v", p, r)
		}
	}
	for _, p := range []Point{Pt(9.9, 10), Pt(31, 15), Pt(15, 21)} {
		if r.Contains(p) {
			t.Errorf("expected %v outside %v", p, r)
		}
	}
	if got := r.Max(); got != Pt(30, 20) {
		t.Errorf("Max() = %v", got)
	}
}

func TestSuggestionsAll(t *testing.T) {
	s := Suggestions{Top: []string{"a"}, Right: []string{"b"}, Bottom: []string{"c"}, Left: []string{"d"}}
	got := s.All()
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
