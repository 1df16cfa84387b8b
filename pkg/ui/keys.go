package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Reset      key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	PanUp      key.Binding
	PanDown    key.Binding
	Next       key.Binding
	Prev       key.Binding
	Preview    key.Binding
	Add        key.Binding
	Copy       key.Binding
	Close      key.Binding
	Fullscreen key.Binding
	Search     key.Binding
	Suggest    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Reset:      key.NewBinding(key.WithKeys("0", "r"), key.WithHelp("0", "reset view")),
		PanLeft:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		PanRight:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		PanUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		PanDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Next:       key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "next node")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "N"), key.WithHelp("shift+tab", "prev node")),
		Preview:    key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "preview")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		Copy:       key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Suggest:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "suggestion")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Preview, k.Add, k.ZoomIn, k.ZoomOut, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Preview, k.Add, k.Copy, k.Close},
		{k.ZoomIn, k.ZoomOut, k.Reset, k.PanLeft, k.PanRight, k.PanUp, k.PanDown},
		{k.Search, k.Suggest, k.Fullscreen, k.Help, k.Quit},
	}
}
