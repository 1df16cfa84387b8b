// Package search turns a query into a result set over a loaded catalogue.
//
// Matching is a case-insensitive substring test against an item's title,
// podcast and tags. An empty query matches everything. Catalogue order and
// relevance are kept as loaded, so the graph layout is stable for a given
// catalogue and query.
package search

import (
	"strings"
	"sync"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Filter narrows a search. Tags must each match some item tag by substring
// when non-empty; any single tag match is enough.
type Filter struct {
	Query string
	Tags  []string
}

// Catalog is the set of items a query runs against. It is safe for
// concurrent use; Replace swaps the whole catalogue.
type Catalog struct {
	mu    sync.RWMutex
	items []model.Item
	docs  map[string][]string
}

// NewCatalog indexes items.
func NewCatalog(items []model.Item) *Catalog {
	c := &Catalog{}
	c.Replace(items)
	return c
}

// Replace swaps in a new catalogue.
func (c *Catalog) Replace(items []model.Item) {
	cp := append([]model.Item(nil), items...)
	docs := DocumentsFromItems(cp)

	c.mu.Lock()
	c.items = cp
	c.docs = docs
	c.mu.Unlock()
}

// Len returns the catalogue size.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Search runs a plain query.
func (c *Catalog) Search(query string) model.ResultSet {
	return c.SearchFilter(Filter{Query: query})
}

// SearchFilter runs a query with tag filters.
func (c *Catalog) SearchFilter(f Filter) model.ResultSet {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := model.ResultSet{Query: strings.TrimSpace(f.Query), Items: []model.Item{}}
	for _, item := range c.items {
		if !matchesQuery(c.docs[item.ID], q) {
			continue
		}
		if !matchesTags(item, tags) {
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func matchesQuery(doc []string, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range doc {
		if strings.Contains(field, q) {
			return true
		}
	}
	return false
}

func matchesTags(item model.Item, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range item.Tags {
			if strings.Contains(strings.ToLower(have), want) {
				return true
			}
		}
	}
	return false
}
