// Package edges turns the declared connections of a result set into the
// undirected relations drawn between nodes.
package edges

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Edge is an unordered pair of item IDs, stored with A < B.
type Edge struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewEdge orders the endpoints.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Segment is an edge together with the logical positions of its endpoints.
type Segment struct {
	Edge
	From model.Point `json:"from"`
	To   model.Point `json:"to"`
}

// Graph is the resolved relation graph of one result set.
type Graph struct {
	g        *simple.UndirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
}

// Build resolves connections among items. Connections to IDs outside the
// set are dropped, as are self references. When two items share an ID the
// first one wins.
func Build(items []model.PositionedItem) *Graph {
	g := simple.NewUndirectedGraph()
	idToNode := make(map[string]int64, len(items))
	nodeToID := make(map[int64]string, len(items))

	for _, it := range items {
		if _, dup := idToNode[it.ID]; dup {
			continue
		}
		n := g.NewNode()
		g.AddNode(n)
		idToNode[it.ID] = n.ID()
		nodeToID[n.ID()] = it.ID
	}

	for _, it := range items {
		from := idToNode[it.ID]
		for _, target := range it.Connections {
			to, ok := idToNode[target]
			if !ok || to == from {
				continue
			}
			// Declared on both ends: the graph keeps a single edge per pair.
			g.SetEdge(g.NewEdge(g.Node(from), g.Node(to)))
		}
	}

	return &Graph{g: g, idToNode: idToNode, nodeToID: nodeToID}
}

// Edges returns every relation once, sorted by A then B.
func (gr *Graph) Edges() []Edge {
	out := make([]Edge, 0, gr.g.Edges().Len())
	it := gr.g.Edges()
	for it.Next() {
		e := it.Edge()
		out = append(out, NewEdge(gr.nodeToID[e.From().ID()], gr.nodeToID[e.To().ID()]))
	}
	sortEdges(out)
	return out
}

// Degree returns the number of resolved relations of id, or 0 if id is not
// in the set.
func (gr *Graph) Degree(id string) int {
	n, ok := gr.idToNode[id]
	if !ok {
		return 0
	}
	return gr.g.From(n).Len()
}

// Neighbors returns the IDs related to id, sorted.
func (gr *Graph) Neighbors(id string) []string {
	n, ok := gr.idToNode[id]
	if !ok {
		return nil
	}
	var out []string
	nodes := gr.g.From(n)
	for nodes.Next() {
		out = append(out, gr.nodeToID[nodes.Node().ID()])
	}
	sort.Strings(out)
	return out
}

// Resolve returns the deduplicated undirected edges among items.
func Resolve(items []model.PositionedItem) []Edge {
	return Build(items).Edges()
}

// Segments resolves edges and attaches endpoint positions for drawing.
func Segments(items []model.PositionedItem) []Segment {
	pos := make(map[string]model.Point, len(items))
	for _, it := range items {
		if _, dup := pos[it.ID]; !dup {
			pos[it.ID] = it.Position
		}
	}
	edges := Resolve(items)
	out := make([]Segment, len(edges))
	for i, e := range edges {
		out[i] = Segment{Edge: e, From: pos[e.A], To: pos[e.B]}
	}
	return out
}

// Degree counts how many edges touch each ID.
func Degree(edges []Edge) map[string]int {
	deg := make(map[string]int, len(edges)*2)
	for _, e := range edges {
		deg[e.A]++
		deg[e.B]++
	}
	return deg
}

func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].A != es[j].A {
			return es[i].A < es[j].A
		}
		return es[i].B < es[j].B
	})
}
