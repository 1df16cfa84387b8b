package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Item is one ranked content unit in a result set (a podcast segment).
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Podcast     string   `json:"podcast,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Episode     string   `json:"episode,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	Transcript  string   `json:"transcript,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Relevance   float64  `json:"relevance"`
	Connections []string `json:"connections,omitempty"`
}

// Validate checks the fields a result set must carry for every item.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("item ID cannot be empty")
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("item %s: title cannot be empty", i.ID)
	}
	if math.IsNaN(i.Relevance) || i.Relevance < 0 || i.Relevance > 1 {
		return fmt.Errorf("item %s: relevance %v outside [0,1]", i.ID, i.Relevance)
	}
	return nil
}

// HasTag reports whether the item carries tag (case-insensitive).
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Point is a 2D coordinate, in either logical (world) or screen units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Point `json:"min"`
	Size Size  `json:"size"`
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Min.X+r.Size.W &&
		p.Y >= r.Min.Y && p.Y <= r.Min.Y+r.Size.H
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

// PositionedItem is an Item with its derived layout position.
type PositionedItem struct {
	Item
	Position Point `json:"position"`
}

// ResultSet is the ordered output of the external search collaborator.
// It is replaced wholesale on every query.
type ResultSet struct {
	Query string `json:"query,omitempty"`
	Items []Item `json:"items"`
}

// Suggestions are the decorative query chips shown along the four edges.
type Suggestions struct {
	Top    []string `json:"top" yaml:"top"`
	Bottom []string `json:"bottom" yaml:"bottom"`
	Left   []string `json:"left" yaml:"left"`
	Right  []string `json:"right" yaml:"right"`
}

// All returns every suggestion in top, right, bottom, left order.
func (s Suggestions) All() []string {
	out := make([]string, 0, len(s.Top)+len(s.Right)+len(s.Bottom)+len(s.Left))
	out = append(out, s.Top...)
	out = append(out, s.Right...)
	out = append(out, s.Bottom...)
	out = append(out, s.Left...)
	return out
}
