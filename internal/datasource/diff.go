package datasource

import (
	"fmt"
	"math"
	"sort"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// ResultSetDiff summarises how a reloaded result set differs from the one
// it replaces.
type ResultSetDiff struct {
	Added            []string `json:"added,omitempty"`
	Removed          []string `json:"removed,omitempty"`
	RelevanceChanged []string `json:"relevance_changed,omitempty"`
	QueryChanged     bool     `json:"query_changed,omitempty"`
}

// Empty reports whether the two sets are equivalent for display.
func (d ResultSetDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.RelevanceChanged) == 0 && !d.QueryChanged
}

// Summary returns a short status line such as "+2 -1 ~3".
func (d ResultSetDiff) Summary() string {
	if d.Empty() {
		return "no changes"
	}
	s := fmt.Sprintf("+%d -%d", len(d.Added), len(d.Removed))
	if n := len(d.RelevanceChanged); n > 0 {
		s += fmt.Sprintf(" ~%d", n)
	}
	if d.QueryChanged {
		s += " (new query)"
	}
	return s
}

// DiffResultSets compares old and new by item ID.
func DiffResultSets(old, new model.ResultSet) ResultSetDiff {
	before := make(map[string]float64, len(old.Items))
	for _, it := range old.Items {
		before[it.ID] = it.Relevance
	}
	after := make(map[string]bool, len(new.Items))

	d := ResultSetDiff{QueryChanged: old.Query != new.Query}
	for _, it := range new.Items {
		after[it.ID] = true
		rel, ok := before[it.ID]
		switch {
		case !ok:
			d.Added = append(d.Added, it.ID)
		case math.Abs(rel-it.Relevance) > 1e-9:
			d.RelevanceChanged = append(d.RelevanceChanged, it.ID)
		}
	}
	for _, it := range old.Items {
		if !after[it.ID] {
			d.Removed = append(d.Removed, it.ID)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.RelevanceChanged)
	return d
}
