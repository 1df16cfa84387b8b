// Package testutil provides test fixtures and generators for result sets
// of various relation topologies. All generators produce deterministic
// output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// GraphFixture is an abstract relation graph: node names and index pairs.
type GraphFixture struct {
	Description string   `json:"description"`
	Nodes       []string `json:"nodes"`
	Edges       [][2]int `json:"edges"` // [a_idx, b_idx], undirected
}

// GeneratorConfig controls item generation.
type GeneratorConfig struct {
	Seed         int64    // Random seed (0 = 42)
	IDPrefix     string   // Prefix for item IDs (default: "seg")
	Mutual       bool     // Declare each relation on both endpoints
	DanglingRate float64  // Chance of adding a connection to an absent item
	TagPool      []string // Tags to draw from (nil = no tags)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDPrefix: "seg",
		Mutual:   true,
		TagPool:  []string{"AI", "ethics", "startup", "culture", "future", "technology"},
	}
}

// Generator builds fixtures from a seeded source.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "seg"
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Chain links n0 - n1 - ... - n{size-1}.
func (g *Generator) Chain(size int) GraphFixture {
	nodes := names("n", size)
	var edges [][2]int
	for i := 1; i < size; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	return GraphFixture{Description: fmt.Sprintf("chain of %d", size), Nodes: nodes, Edges: edges}
}

// Star links a hub to every spoke.
func (g *Generator) Star(spokes int) GraphFixture {
	nodes := append([]string{"hub"}, names("spoke", spokes)...)
	edges := make([][2]int, spokes)
	for i := range edges {
		edges[i] = [2]int{0, i + 1}
	}
	return GraphFixture{Description: fmt.Sprintf("star with %d spokes", spokes), Nodes: nodes, Edges: edges}
}

// Ring links every node to its successor and closes the loop.
func (g *Generator) Ring(size int) GraphFixture {
	f := g.Chain(size)
	if size > 2 {
		f.Edges = append(f.Edges, [2]int{size - 1, 0})
	}
	f.Description = fmt.Sprintf("ring of %d", size)
	return f
}

// Complete links every pair.
func (g *Generator) Complete(size int) GraphFixture {
	nodes := names("k", size)
	var edges [][2]int
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return GraphFixture{Description: fmt.Sprintf("complete graph of %d", size), Nodes: nodes, Edges: edges}
}

// Disconnected creates components chains of componentSize nodes each.
func (g *Generator) Disconnected(components, componentSize int) GraphFixture {
	var nodes []string
	var edges [][2]int
	for c := 0; c < components; c++ {
		base := len(nodes)
		for i := 0; i < componentSize; i++ {
			nodes = append(nodes, fmt.Sprintf("c%d_%d", c, i))
			if i > 0 {
				edges = append(edges, [2]int{base + i - 1, base + i})
			}
		}
	}
	return GraphFixture{
		Description: fmt.Sprintf("%d components of %d", components, componentSize),
		Nodes:       nodes,
		Edges:       edges,
	}
}

// Random links each pair with probability density.
func (g *Generator) Random(size int, density float64) GraphFixture {
	nodes := names("r", size)
	var edges [][2]int
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g.rng.Float64() < density {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return GraphFixture{Description: fmt.Sprintf("random %d @ %.2f", size, density), Nodes: nodes, Edges: edges}
}

// ToItems converts a fixture into a ranked result set. Relevance decreases
// with node index so the first node is the best match.
func (g *Generator) ToItems(gf GraphFixture) []model.Item {
	n := len(gf.Nodes)
	items := make([]model.Item, n)
	for i, name := range gf.Nodes {
		rel := 1.0
		if n > 1 {
			rel = 1 - float64(i)/float64(n-1)
		}
		items[i] = model.Item{
			ID:        fmt.Sprintf("%s-%d", g.cfg.IDPrefix, i),
			Title:     strings.ToUpper(name[:1]) + name[1:],
			Podcast:   "Fixture FM",
			Duration:  fmt.Sprintf("%d:%02d", 5+i%10, (i*7)%60),
			Tags:      g.pickTags(),
			Relevance: rel,
		}
	}
	for _, e := range gf.Edges {
		a, b := e[0], e[1]
		items[a].Connections = append(items[a].Connections, items[b].ID)
		if g.cfg.Mutual {
			items[b].Connections = append(items[b].Connections, items[a].ID)
		}
	}
	if g.cfg.DanglingRate > 0 {
		for i := range items {
			if g.rng.Float64() < g.cfg.DanglingRate {
				items[i].Connections = append(items[i].Connections, fmt.Sprintf("%s-missing-%d", g.cfg.IDPrefix, i))
			}
		}
	}
	return items
}

// ToJSONL serialises items one per line.
func ToJSONL(items []model.Item) string {
	var sb strings.Builder
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			continue
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Generator) pickTags() []string {
	if len(g.cfg.TagPool) == 0 {
		return nil
	}
	k := 1 + g.rng.Intn(3)
	seen := make(map[string]bool, k)
	var tags []string
	for len(tags) < k && len(seen) < len(g.cfg.TagPool) {
		t := g.cfg.TagPool[g.rng.Intn(len(g.cfg.TagPool))]
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

// Quick helpers using the default generator.

func QuickChain(size int) []model.Item { g := NewDefault(); return g.ToItems(g.Chain(size)) }
func QuickRandom(size int, density float64) []model.Item {
	g := NewDefault()
	return g.ToItems(g.Random(size, density))
}
