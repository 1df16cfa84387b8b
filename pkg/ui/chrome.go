package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/podgraph/pkg/explorer"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/selection"
)

type targetKind int

const (
	targetToolbar targetKind = iota
	targetChip
	targetButton
	targetPopup
)

// Toolbar commands.
const (
	cmdZoomOut    = "zoom-out"
	cmdZoomIn     = "zoom-in"
	cmdReset      = "reset"
	cmdFullscreen = "fullscreen"
)

// target is a clickable chrome element drawn over the canvas.
type target struct {
	kind  targetKind
	value string
	// point is the engine screen point a click is forwarded as, for
	// targets the engine handles.
	point model.Point
}

// chrome is everything drawn above the graph plus its hit map, in canvas
// cell coordinates. It is rebuilt from the snapshot for both drawing and
// hit testing so the two never disagree.
type chrome struct {
	hits    *selection.Regions
	targets map[string]target
	draws   []func(g *grid)
}

func (c *chrome) add(name string, x, y, w, h int, t target) {
	c.hits.Register(name, selection.Rect(model.Rect{
		Min:  model.Pt(float64(x), float64(y)),
		Size: model.Size{W: float64(w), H: float64(h)},
	}))
	c.targets[name] = t
}

// hit returns the target under cell (x, y).
func (c *chrome) hit(x, y int) (target, bool) {
	name := c.hits.Hit(model.Pt(float64(x)+0.5, float64(y)+0.5))
	if name == "" {
		return target{}, false
	}
	t, ok := c.targets[name]
	return t, ok
}

func (c *chrome) draw(g *grid) {
	for _, d := range c.draws {
		d(g)
	}
}

func buildChrome(cm cellMap, snap explorer.Snapshot, fullscreen bool) *chrome {
	c := &chrome{hits: selection.NewRegions(), targets: make(map[string]target)}
	buildSuggestions(c, cm, snap.Suggestions)
	buildToolbar(c, cm, snap.ZoomPercent, fullscreen)
	if snap.Popup != nil {
		buildPopup(c, cm, *snap.Popup)
	}
	return c
}

func buildToolbar(c *chrome, cm cellMap, zoomPercent int, fullscreen bool) {
	tb := cell{class: classToolbar}
	col := 1
	for _, part := range []struct {
		label, cmd string
	}{
		{"[-]", cmdZoomOut},
		{fmt.Sprintf(" %d%% ", zoomPercent), ""},
		{"[+]", cmdZoomIn},
		{" ", ""},
		{"[reset]", cmdReset},
	} {
		x, label := col, part.label
		w := runewidth.StringWidth(label)
		c.draws = append(c.draws, func(g *grid) { g.text(x, 0, label, tb, 0) })
		if part.cmd != "" {
			c.add("1toolbar:"+part.cmd, x, 0, w, 1, target{kind: targetToolbar, value: part.cmd})
		}
		col += w
	}

	label := "[full]"
	if fullscreen {
		label = "[exit]"
	}
	w := runewidth.StringWidth(label)
	x := cm.cols - w - 1
	c.draws = append(c.draws, func(g *grid) { g.text(x, 0, label, tb, 0) })
	c.add("1toolbar:"+cmdFullscreen, x, 0, w, 1, target{kind: targetToolbar, value: cmdFullscreen})
}

func chipLabel(text string) string {
	return " " + truncate(text, chipMaxWidth) + " "
}

func buildSuggestions(c *chrome, cm cellMap, s model.Suggestions) {
	chip := cell{class: classChip}
	n := 0
	addChip := func(x, y int, text string) {
		label := chipLabel(text)
		w := runewidth.StringWidth(label)
		c.draws = append(c.draws, func(g *grid) { g.text(x, y, label, chip, 0) })
		c.add(fmt.Sprintf("2chip:%02d", n), x, y, w, 1, target{kind: targetChip, value: text})
		n++
	}

	row := func(texts []string, y int) {
		if len(texts) == 0 || y < 0 {
			return
		}
		// Drop chips from the end until the row fits.
		for k := len(texts); k > 0; k-- {
			labels := make([]string, k)
			for i := range labels {
				labels[i] = chipLabel(texts[i])
			}
			line := strings.Join(labels, " ")
			if runewidth.StringWidth(line) > cm.cols-2 {
				continue
			}
			x := centerIn(line, cm.cols)
			for i := 0; i < k; i++ {
				addChip(x, y, texts[i])
				x += runewidth.StringWidth(labels[i]) + 1
			}
			return
		}
	}

	column := func(texts []string, right bool) {
		top := cm.rows/2 - len(texts)
		for i, text := range texts {
			y := top + 2*i
			if y <= 1 || y >= cm.rows-1 {
				continue
			}
			x := 1
			if right {
				x = cm.cols - 1 - runewidth.StringWidth(chipLabel(text))
			}
			addChip(x, y, text)
		}
	}

	row(s.Top, 1)
	column(s.Right, true)
	row(s.Bottom, cm.rows-1)
	column(s.Left, false)
}

func buildPopup(c *chrome, cm cellMap, p explorer.PopupView) {
	x, y, w, h := cm.rectCells(p.Rect)
	if x+w > cm.cols {
		w = cm.cols - x
	}
	if y+h > cm.rows {
		h = cm.rows - y
	}
	if w < 8 || h < 4 {
		return
	}

	// Names sort popup, toolbar, chips: the first match wins, so that is
	// also the stacking order. "~body" sorts after the popup's buttons.
	c.add("0popup:~body", x, y, w, h, target{kind: targetPopup, point: p.Rect.Min})

	buttonRow := y + h - 1
	iconLeft := x + w - 1
	type btn struct {
		x, y, w int
		label   string
	}
	var btns []btn
	for _, b := range p.Buttons {
		bx, by, bw, bh := cm.rectCells(b.Rect)
		if bx+bw > x+w-1 {
			bw = x + w - 1 - bx
		}
		ly := by + bh/2
		if ly >= y+h-1 {
			ly = y + h - 2
		}
		if ly <= y {
			ly = y + 1
		}
		label := b.Label
		if b.Action == explorer.ActionPreview || b.Action == explorer.ActionAdd {
			label = "[ " + label + " ]"
			if ly < buttonRow {
				buttonRow = ly
			}
		} else if bx < iconLeft {
			iconLeft = bx
		}
		btns = append(btns, btn{x: bx, y: ly, w: bw, label: label})
		center := model.Pt(b.Rect.Min.X+b.Rect.Size.W/2, b.Rect.Min.Y+b.Rect.Size.H/2)
		c.add(fmt.Sprintf("0popup:%s", b.Action), bx, ly, bw, 1, target{kind: targetButton, value: b.Action.String(), point: center})
	}

	item := p.Item
	degree := p.Degree
	related := p.Related
	c.draws = append(c.draws, func(g *grid) {
		bg := cell{r: ' ', class: classPopup}
		g.fill(x, y, w, h, bg)
		drawBox(g, x, y, w, h, bg)

		inner := w - 4
		row := y + 1
		titleWidth := iconLeft - (x + 2) - 1
		for i, line := range wrapText(item.Title, titleWidth, 2) {
			g.text(x+2, row+i, line, cell{class: classPopupTitle}, titleWidth)
		}
		row += min(2, len(wrapText(item.Title, titleWidth, 2)))

		var lines []string
		meta := strings.TrimSpace(strings.Join(nonEmpty(item.Podcast, item.Duration), " · "))
		if meta != "" {
			lines = append(lines, meta)
		}
		conn := "connections"
		if degree == 1 {
			conn = "connection"
		}
		lines = append(lines, fmt.Sprintf("relevance %d%% · %d %s", int(item.Relevance*100+0.5), degree, conn))
		if tags := RenderTags(item.Tags, inner); tags != "" {
			lines = append(lines, tags)
		}
		if len(related) > 0 {
			lines = append(lines, truncate("related: "+strings.Join(related, ", "), inner))
		}
		if item.Description != "" {
			lines = append(lines, "")
			lines = append(lines, wrapText(item.Description, inner, 3)...)
		}
		for _, line := range lines {
			if row >= buttonRow {
				break
			}
			g.text(x+2, row, line, bg, inner)
			row++
		}

		for _, b := range btns {
			lbl := b.label
			if b.w > runewidth.StringWidth(lbl) {
				lbl = strings.Repeat(" ", (b.w-runewidth.StringWidth(lbl))/2) + lbl
				lbl = padRight(lbl, b.w)
			}
			g.text(b.x, b.y, lbl, cell{class: classButton}, b.w)
		}
	})
}

func drawBox(g *grid, x, y, w, h int, c cell) {
	put := func(cx, cy int, r rune) {
		cc := c
		cc.r = r
		g.set(cx, cy, cc)
	}
	for i := x + 1; i < x+w-1; i++ {
		put(i, y, '─')
		put(i, y+h-1, '─')
	}
	for j := y + 1; j < y+h-1; j++ {
		put(x, j, '│')
		put(x+w-1, j, '│')
	}
	put(x, y, '╭')
	put(x+w-1, y, '╮')
	put(x, y+h-1, '╰')
	put(x+w-1, y+h-1, '╯')
}

func nonEmpty(vals ...string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// targetNames lists registered targets, for tests.
func (c *chrome) targetNames() []string {
	names := make([]string, 0, len(c.targets))
	for n := range c.targets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
