// Package ui is the terminal host for the explorer engine: it rasterises
// snapshots onto a cell grid, turns mouse and key events into engine
// calls, and acts on the engine's callbacks.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/podgraph/internal/datasource"
	"github.com/vanderheijden86/podgraph/pkg/config"
	"github.com/vanderheijden86/podgraph/pkg/debug"
	"github.com/vanderheijden86/podgraph/pkg/explorer"
	"github.com/vanderheijden86/podgraph/pkg/loader"
	"github.com/vanderheijden86/podgraph/pkg/metrics"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/search"
	"github.com/vanderheijden86/podgraph/pkg/watcher"
)

// Default terminal size until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minCanvasRows = 3
	panStep       = 40.0
)

// clipboardWrite is swapped out by tests.
var clipboardWrite = clipboard.WriteAll

// FileChangedMsg is sent when the data file changes on disk.
type FileChangedMsg struct{}

// ResultSetMsg delivers a result set loaded off the UI goroutine.
type ResultSetMsg struct {
	ResultSet model.ResultSet
	Source    string
	Warnings  int
	Err       error
}

// WatchFileCmd waits for the next change notification.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// LoadResultSetCmd loads path and reports it as a ResultSetMsg.
func LoadResultSetCmd(path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		warnings := 0
		rs, src, err := datasource.Load(path, loader.ParseOptions{
			WarningHandler: func(msg string) {
				warnings++
				debug.Log("reload warning: %s", msg)
			},
		})
		debug.LogTiming("reload "+path, time.Since(start))
		return ResultSetMsg{ResultSet: rs, Source: src.Path, Warnings: warnings, Err: err}
	}
}

type hostEventKind int

const (
	eventPreview hostEventKind = iota
	eventAdd
	eventCopy
	eventSuggestion
	eventFullscreen
)

type hostEvent struct {
	kind hostEventKind
	item model.Item
	text string
}

// hostQueue collects engine callbacks during an Update so they can be
// applied to the value-typed Model afterwards.
type hostQueue struct {
	events []hostEvent
}

func (q *hostQueue) push(e hostEvent) { q.events = append(q.events, e) }

func (q *hostQueue) drain() []hostEvent {
	out := q.events
	q.events = nil
	return out
}

// Options configure a Model.
type Options struct {
	Config   config.Config
	DataPath string
	Query    string
	Watcher  *watcher.Watcher
}

// Model is the bubbletea model.
type Model struct {
	cfg      config.Config
	engine   *explorer.Engine
	catalog  *search.Catalog
	host     *hostQueue
	theme    Theme
	keys     keyMap
	help     help.Model
	input    textinput.Model
	markdown *glamour.TermRenderer

	width, height int
	fullscreen    bool
	searching     bool
	query         string
	status        string

	preview       []string
	previewTitle  string
	previewOffset int

	playlist []model.Item
	loaded   model.ResultSet
	dataPath string
	watcher  *watcher.Watcher
}

// NewModel builds a model over rs. A non-empty opts.Query filters the
// catalogue immediately.
func NewModel(rs model.ResultSet, opts Options) Model {
	host := &hostQueue{}
	engine := explorer.New(opts.Config.ExplorerConfig(), explorer.Callbacks{
		OnPreview:             func(it model.Item) { host.push(hostEvent{kind: eventPreview, item: it}) },
		OnAddToTarget:         func(it model.Item) { host.push(hostEvent{kind: eventAdd, item: it}) },
		OnCopy:                func(it model.Item) { host.push(hostEvent{kind: eventCopy, item: it}) },
		OnSuggestionActivated: func(text string) { host.push(hostEvent{kind: eventSuggestion, text: text}) },
		OnRequestFullscreen:   func() { host.push(hostEvent{kind: eventFullscreen}) },
	})

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search titles, podcasts, tags"
	input.CharLimit = 120

	md, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72))
	if err != nil {
		debug.Log("glamour renderer unavailable: %v", err)
	}

	m := Model{
		cfg:        opts.Config,
		engine:     engine,
		catalog:    search.NewCatalog(rs.Items),
		host:       host,
		theme:      DefaultTheme(lipgloss.DefaultRenderer()),
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      input,
		markdown:   md,
		width:      defaultWidth,
		height:     defaultHeight,
		fullscreen: opts.Config.UI.Fullscreen,
		loaded:     rs,
		dataPath:   opts.DataPath,
		watcher:    opts.Watcher,
	}

	if q := strings.TrimSpace(opts.Query); q != "" {
		m.runQuery(q)
	} else {
		engine.SetResultSet(rs)
		m.query = rs.Query
		m.status = fmt.Sprintf("Loaded %d segments", len(rs.Items))
		if opts.DataPath != "" {
			m.status += " from " + filepath.Base(opts.DataPath)
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

// Engine exposes the explorer engine.
func (m Model) Engine() *explorer.Engine { return m.engine }

// Playlist returns the items added so far.
func (m Model) Playlist() []model.Item { return append([]model.Item(nil), m.playlist...) }

// Fullscreen reports whether chrome is hidden.
func (m Model) Fullscreen() bool { return m.fullscreen }

// Status returns the current status line.
func (m Model) Status() string { return m.status }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case FileChangedMsg:
		if m.dataPath != "" {
			cmds = append(cmds, LoadResultSetCmd(m.dataPath))
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case ResultSetMsg:
		m.applyReload(msg)
	}

	m.applyHostEvents()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.input.Blur()
			m.runQuery(m.input.Value())
			return nil
		case tea.KeyEsc:
			m.searching = false
			m.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	if m.preview != nil {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Preview):
			m.closePreview()
		case key.Matches(msg, m.keys.PanDown):
			m.previewOffset = min(m.previewOffset+1, max(len(m.preview)-m.canvasRows(), 0))
		case key.Matches(msg, m.keys.PanUp):
			m.previewOffset = max(m.previewOffset-1, 0)
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.ZoomOut()
	case key.Matches(msg, m.keys.Reset):
		m.engine.ResetView()
	case key.Matches(msg, m.keys.PanLeft):
		m.engine.Pan(model.Pt(panStep, 0))
	case key.Matches(msg, m.keys.PanRight):
		m.engine.Pan(model.Pt(-panStep, 0))
	case key.Matches(msg, m.keys.PanUp):
		m.engine.Pan(model.Pt(0, panStep))
	case key.Matches(msg, m.keys.PanDown):
		m.engine.Pan(model.Pt(0, -panStep))
	case key.Matches(msg, m.keys.Next):
		m.engine.SelectStep(1)
	case key.Matches(msg, m.keys.Prev):
		m.engine.SelectStep(-1)
	case key.Matches(msg, m.keys.Preview):
		m.engine.Trigger(explorer.ActionPreview)
	case key.Matches(msg, m.keys.Add):
		m.engine.Trigger(explorer.ActionAdd)
	case key.Matches(msg, m.keys.Copy):
		m.engine.Trigger(explorer.ActionCopy)
	case key.Matches(msg, m.keys.Close):
		m.engine.Close()
	case key.Matches(msg, m.keys.Fullscreen):
		m.engine.RequestFullscreen()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue(m.query)
		m.input.CursorEnd()
		return m.input.Focus()
	case key.Matches(msg, m.keys.Suggest):
		all := m.engine.Suggestions().All()
		n := int(msg.String()[0] - '1')
		if n >= 0 && n < len(all) {
			m.engine.ActivateSuggestion(all[n])
		}
	}
	return nil
}

// canvasTop is the first terminal row of the canvas.
func (m Model) canvasTop() int {
	if m.fullscreen {
		return 0
	}
	return headerRows
}

func (m Model) canvasRows() int {
	chromeRows := headerRows + footerRows
	if m.fullscreen {
		chromeRows = fullscreenRows
	}
	return max(m.height-chromeRows, minCanvasRows)
}

func (m Model) cellMap() cellMap {
	return cellMap{cols: max(m.width, 1), rows: m.canvasRows(), screen: m.engine.Screen()}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.preview != nil {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.previewOffset = max(m.previewOffset-1, 0)
		case tea.MouseButtonWheelDown:
			m.previewOffset = min(m.previewOffset+1, max(len(m.preview)-m.canvasRows(), 0))
		}
		return
	}

	cm := m.cellMap()
	x, y := msg.X, msg.Y-m.canvasTop()
	inCanvas := x >= 0 && x < cm.cols && y >= 0 && y < cm.rows

	switch msg.Action {
	case tea.MouseActionMotion:
		if inCanvas {
			m.engine.PointerMove(cm.toScreen(x, y))
		} else {
			m.engine.PointerLeave()
		}

	case tea.MouseActionRelease:
		m.engine.PointerUp()

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.engine.Wheel(-1)
		case tea.MouseButtonWheelDown:
			m.engine.Wheel(1)
		case tea.MouseButtonLeft:
			if inCanvas {
				m.press(cm, x, y)
			}
		}
	}
}

// press routes a left click on canvas cell (x, y). Chrome draws above the
// graph, so it is tested first.
func (m *Model) press(cm cellMap, x, y int) {
	snap := m.engine.Snapshot()
	ch := buildChrome(cm, snap, m.fullscreen)

	if t, ok := ch.hit(x, y); ok {
		switch t.kind {
		case targetToolbar:
			m.runToolbar(t.value)
		case targetChip:
			m.engine.ActivateSuggestion(t.value)
		case targetButton, targetPopup:
			m.engine.PointerDown(t.point)
		}
		return
	}

	p := cm.toScreen(x, y)
	// A node smaller than a cell still has its centre cell.
	for i := len(snap.Nodes) - 1; i >= 0; i-- {
		if nx, ny := cm.toCell(snap.Nodes[i].Screen); nx == x && ny == y {
			p = snap.Nodes[i].Screen
			break
		}
	}
	res := m.engine.PointerDown(p)
	debug.Log("press cell=(%d,%d) outcome=%s node=%s", x, y, res.Outcome, res.NodeID)
}

func (m *Model) runToolbar(cmd string) {
	switch cmd {
	case cmdZoomIn:
		m.engine.ZoomIn()
	case cmdZoomOut:
		m.engine.ZoomOut()
	case cmdReset:
		m.engine.ResetView()
	case cmdFullscreen:
		m.engine.RequestFullscreen()
	}
}

func (m *Model) runQuery(q string) {
	q = strings.TrimSpace(q)
	rs := m.catalog.Search(q)
	m.engine.SetResultSet(rs)
	m.query = rs.Query
	m.status = fmt.Sprintf("Found %d relevant segments", len(rs.Items))
}

func (m *Model) applyReload(msg ResultSetMsg) {
	if msg.Err != nil {
		m.status = fmt.Sprintf("❌ Reload error: %v", msg.Err)
		return
	}
	diff := datasource.DiffResultSets(m.loaded, msg.ResultSet)
	m.loaded = msg.ResultSet
	if diff.Empty() {
		m.status = "Reloaded (no changes)"
		return
	}

	m.catalog.Replace(msg.ResultSet.Items)
	if m.query != "" && m.query != msg.ResultSet.Query {
		rs := m.catalog.Search(m.query)
		m.engine.SetResultSet(rs)
	} else {
		m.engine.SetResultSet(msg.ResultSet)
		m.query = msg.ResultSet.Query
	}
	m.status = fmt.Sprintf("Reloaded %d segments (%s)", m.catalog.Len(), diff.Summary())
	if msg.Warnings > 0 {
		m.status += fmt.Sprintf(" (%d warnings)", msg.Warnings)
	}
}

func (m *Model) applyHostEvents() {
	for _, ev := range m.host.drain() {
		switch ev.kind {
		case eventPreview:
			m.openPreview(ev.item)
		case eventAdd:
			m.addToPlaylist(ev.item)
		case eventCopy:
			text := fmt.Sprintf("%s · %s (%s)", ev.item.Title, ev.item.Podcast, ev.item.ID)
			if err := clipboardWrite(text); err != nil {
				m.status = fmt.Sprintf("❌ Clipboard error: %v", err)
			} else {
				m.status = fmt.Sprintf("📋 Copied %q to clipboard", ev.item.Title)
			}
		case eventSuggestion:
			m.runQuery(ev.text)
		case eventFullscreen:
			m.fullscreen = !m.fullscreen
		}
	}
}

func (m *Model) addToPlaylist(it model.Item) {
	for _, p := range m.playlist {
		if p.ID == it.ID {
			m.status = fmt.Sprintf("%q is already in the playlist", it.Title)
			return
		}
	}
	m.playlist = append(m.playlist, it)
	m.status = fmt.Sprintf("Added %q to playlist", it.Title)
}

func (m *Model) openPreview(it model.Item) {
	src := previewMarkdown(it)
	out := src
	if m.markdown != nil {
		if rendered, err := m.markdown.Render(src); err == nil {
			out = rendered
		}
	}
	m.preview = strings.Split(strings.TrimRight(out, "\n "), "\n")
	m.previewTitle = it.Title
	m.previewOffset = 0
}

func (m *Model) closePreview() {
	m.preview = nil
	m.previewTitle = ""
	m.previewOffset = 0
}

func previewMarkdown(it model.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", it.Title)

	var meta []string
	if it.Podcast != "" {
		meta = append(meta, "**"+it.Podcast+"**")
	}
	if it.Episode != "" {
		meta = append(meta, "Episode "+it.Episode)
	}
	if it.PublishDate != "" {
		meta = append(meta, it.PublishDate)
	}
	if it.Duration != "" {
		meta = append(meta, it.Duration)
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, " · ") + "\n\n")
	}
	fmt.Fprintf(&sb, "Relevance: %d%%\n\n", int(it.Relevance*100+0.5))
	if len(it.Tags) > 0 {
		tags := make([]string, len(it.Tags))
		for i, t := range it.Tags {
			tags[i] = "`" + t + "`"
		}
		sb.WriteString("Tags: " + strings.Join(tags, " ") + "\n\n")
	}
	if it.Description != "" {
		sb.WriteString("## Description\n\n" + it.Description + "\n\n")
	}
	if it.Transcript != "" {
		sb.WriteString("## Transcript\n\n" + it.Transcript + "\n")
	}
	return sb.String()
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()
	var sections []string
	if !m.fullscreen {
		sections = append(sections, m.headerView())
	}

	if m.preview != nil {
		sections = append(sections, m.previewView())
	} else {
		sections = append(sections, m.canvasGrid().render(m.theme))
	}

	sections = append(sections, m.statusView())
	if !m.fullscreen {
		sections = append(sections, m.help.View(m.keys))
	}
	return strings.Join(sections, "\n")
}

// canvasGrid rasterises the current snapshot with its chrome.
func (m Model) canvasGrid() *grid {
	cm := m.cellMap()
	g := newGrid(cm.cols, cm.rows)
	snap := m.engine.Snapshot()
	if snap.Empty() {
		drawEmpty(g)
	} else {
		drawGraph(g, cm, snap)
	}
	buildChrome(cm, snap, m.fullscreen).draw(g)
	return g
}

func (m Model) headerView() string {
	parts := []string{"podgraph"}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("query: %q", m.query))
	}
	parts = append(parts, fmt.Sprintf("%d segments", len(m.engine.Nodes())))
	if n := len(m.playlist); n > 0 {
		parts = append(parts, fmt.Sprintf("♫ %d", n))
	}
	line := " " + strings.Join(parts, " │ ")
	return m.theme.Header.Render(padRight(truncate(line, m.width), m.width))
}

func (m Model) statusView() string {
	if m.searching {
		return m.input.View()
	}
	return RenderStatus(m.status, m.width)
}

func (m Model) previewView() string {
	rows := m.canvasRows()
	end := min(m.previewOffset+rows-1, len(m.preview))
	body := m.preview[min(m.previewOffset, end):end]
	title := m.theme.PopupHdr.Render(truncate(" Preview: "+m.previewTitle+" (esc to close)", m.width))

	lines := append([]string{title}, body...)
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
