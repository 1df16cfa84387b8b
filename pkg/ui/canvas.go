package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/podgraph/pkg/explorer"
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/model"
)

// cellClass selects the style a cell is drawn with.
type cellClass uint8

const (
	classNone cellClass = iota
	classEdge
	classNode
	classLabel
	classPopup
	classPopupTitle
	classButton
	classChip
	classToolbar
	classEmpty
)

type cell struct {
	r        rune
	class    cellClass
	band     layout.Band
	selected bool
	// cont marks the trailing half of a double-width rune.
	cont bool
}

// grid is a fixed-size cell raster. Later draws overwrite earlier ones.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

func (g *grid) in(x, y int) bool { return x >= 0 && y >= 0 && x < g.w && y < g.h }

func (g *grid) set(x, y int, c cell) {
	if !g.in(x, y) {
		return
	}
	g.cells[y*g.w+x] = c
}

func (g *grid) at(x, y int) cell {
	if !g.in(x, y) {
		return cell{}
	}
	return g.cells[y*g.w+x]
}

// text writes s starting at (x, y), clipped to the grid and to maxWidth
// cells when maxWidth > 0. It returns the number of cells written.
func (g *grid) text(x, y int, s string, c cell, maxWidth int) int {
	if maxWidth > 0 {
		s = truncate(s, maxWidth)
	}
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.r = r
		c.cont = false
		g.set(col, y, c)
		if rw == 2 {
			cc := c
			cc.cont = true
			g.set(col+1, y, cc)
		}
		col += rw
	}
	return col - x
}

// fill paints a rectangle of cells.
func (g *grid) fill(x, y, w, h int, c cell) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			g.set(col, row, c)
		}
	}
}

// line draws a Bresenham line between two cells.
func (g *grid) line(x0, y0, x1, y1 int, c cell) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for steps := 0; steps < 4*(g.w+g.h)+8; steps++ {
		g.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// render turns the grid into styled rows, grouping runs of equal style.
func (g *grid) render(t Theme) string {
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var cur lipgloss.Style
		var curKey cell
		open := false
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.cont {
				continue
			}
			key := cell{class: c.class, band: c.band, selected: c.selected}
			if !open || key != curKey {
				if open {
					sb.WriteString(cur.Render(run.String()))
					run.Reset()
				}
				cur = styleFor(t, c)
				curKey = key
				open = true
			}
			run.WriteRune(c.r)
		}
		if open {
			sb.WriteString(cur.Render(run.String()))
			run.Reset()
		}
	}
	return sb.String()
}

// plain returns the grid text without styling, for tests and golden files.
func (g *grid) plain() string {
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if !c.cont {
				sb.WriteRune(c.r)
			}
		}
	}
	return sb.String()
}

func styleFor(t Theme, c cell) lipgloss.Style {
	switch c.class {
	case classEdge:
		return t.Edge
	case classNode:
		return t.NodeStyle(c.band, c.selected)
	case classLabel:
		return t.Label
	case classPopup:
		return t.Popup
	case classPopupTitle:
		return t.PopupHdr
	case classButton:
		return t.Button
	case classChip:
		return t.Chip
	case classToolbar:
		return t.Toolbar
	case classEmpty:
		return t.Empty
	default:
		return t.Renderer.NewStyle()
	}
}

// cellMap converts between terminal cells and engine screen units. The
// canvas is cols x rows cells covering the engine's whole screen.
type cellMap struct {
	cols, rows int
	screen     model.Size
}

func (m cellMap) sx() float64 { return m.screen.W / float64(max(m.cols, 1)) }
func (m cellMap) sy() float64 { return m.screen.H / float64(max(m.rows, 1)) }

// toScreen returns the screen point at the centre of cell (x, y).
func (m cellMap) toScreen(x, y int) model.Point {
	return model.Pt((float64(x)+0.5)*m.sx(), (float64(y)+0.5)*m.sy())
}

// toCell returns the cell containing screen point p.
func (m cellMap) toCell(p model.Point) (int, int) {
	return int(math.Floor(p.X / m.sx())), int(math.Floor(p.Y / m.sy()))
}

// rectCells returns the cell rectangle covering r, at least one cell each way.
func (m cellMap) rectCells(r model.Rect) (x, y, w, h int) {
	x, y = m.toCell(r.Min)
	x2 := int(math.Ceil((r.Min.X + r.Size.W) / m.sx()))
	y2 := int(math.Ceil((r.Min.Y + r.Size.H) / m.sy()))
	return x, y, max(x2-x, 1), max(y2-y, 1)
}

// drawGraph rasterises edges, node discs and labels.
func drawGraph(g *grid, cm cellMap, snap explorer.Snapshot) {
	for _, s := range snap.Segments {
		x0, y0 := cm.toCell(s.From)
		x1, y1 := cm.toCell(s.To)
		g.line(x0, y0, x1, y1, cell{r: '·', class: classEdge})
	}

	for _, n := range snap.Nodes {
		drawNode(g, cm, n)
	}
	for _, n := range snap.Nodes {
		cx, cy := cm.toCell(n.Screen)
		ry := int(math.Floor(n.Radius / cm.sy()))
		label := layout.Label(n.Title)
		g.text(cx-runewidth.StringWidth(label)/2, cy+ry+1, label, cell{class: classLabel}, 0)
	}
}

func drawNode(g *grid, cm cellMap, n explorer.Node) {
	base := cell{class: classNode, band: n.Band, selected: n.Selected}
	cx, cy := cm.toCell(n.Screen)
	rx := int(math.Ceil(n.Radius / cm.sx()))
	ry := int(math.Ceil(n.Radius / cm.sy()))

	drawn := false
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if cm.toScreen(x, y).Dist(n.Screen) <= n.Radius {
				c := base
				c.r = '█'
				g.set(x, y, c)
				drawn = true
			}
		}
	}
	if !drawn {
		c := base
		c.r = '●'
		g.set(cx, cy, c)
	}
}

// drawEmpty centres the empty-result message.
func drawEmpty(g *grid) {
	lines := []string{emptyTitle, emptyHint}
	top := g.h/2 - 1
	for i, l := range lines {
		g.text(centerIn(l, g.w), top+i, l, cell{class: classEmpty}, g.w)
	}
}

const (
	emptyTitle = "No podcast segments found"
	emptyHint  = "Try adjusting your search terms or filters"
)
