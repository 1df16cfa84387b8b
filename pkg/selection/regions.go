package selection

import (
	"sort"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Region is an area of the screen that swallows pointer-down events before
// they reach the outside-click detector.
type Region interface {
	Contains(p model.Point) bool
}

// Rect is a rectangular region.
type Rect model.Rect

func (r Rect) Contains(p model.Point) bool { return model.Rect(r).Contains(p) }

// Circle is a disc region.
type Circle struct {
	Center model.Point
	Radius float64
}

func (c Circle) Contains(p model.Point) bool {
	return p.Dist(c.Center) <= c.Radius
}

// NodeSet is the union of the drawn node discs.
type NodeSet []Circle

func (s NodeSet) Contains(p model.Point) bool {
	for _, c := range s {
		if c.Contains(p) {
			return true
		}
	}
	return false
}

// Regions is the exclusion-region registry a host exposes to the
// selection machine. A pointer-down is "outside" when no registered
// region contains it.
type Regions struct {
	byName map[string]Region
}

// NewRegions returns an empty registry.
func NewRegions() *Regions {
	return &Regions{byName: make(map[string]Region)}
}

// Register adds or replaces a named region.
func (r *Regions) Register(name string, region Region) {
	if region == nil {
		delete(r.byName, name)
		return
	}
	r.byName[name] = region
}

// Unregister removes a named region. Unknown names are ignored.
func (r *Regions) Unregister(name string) {
	delete(r.byName, name)
}

// Outside reports whether p lies outside every registered region.
func (r *Regions) Outside(p model.Point) bool {
	return r.Hit(p) == ""
}

// Hit returns the name of the first region containing p, in name order,
// or "" if none does.
func (r *Regions) Hit(p model.Point) string {
	for _, name := range r.Names() {
		if r.byName[name].Contains(p) {
			return name
		}
	}
	return ""
}

// Names lists registered regions in sorted order.
func (r *Regions) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
