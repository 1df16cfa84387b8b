package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/podgraph/pkg/layout"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns hex on TrueColor terminals and the terminal's own
// background otherwise.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Relevance bands, matching the exported pictures.
	High    lipgloss.AdaptiveColor
	Medium  lipgloss.AdaptiveColor
	Low     lipgloss.AdaptiveColor
	Minimal lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Header   lipgloss.Style
	Edge     lipgloss.Style
	Label    lipgloss.Style
	Popup    lipgloss.Style
	PopupHdr lipgloss.Style
	Button   lipgloss.Style
	Chip     lipgloss.Style
	Toolbar  lipgloss.Style
	Empty    lipgloss.Style

	bands [4]lipgloss.Style
	// selected node discs, by band
	selected [4]lipgloss.Style
}

// DefaultTheme returns the Dracula-inspired adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		High:    lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"},
		Medium:  lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"},
		Low:     lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"},
		Minimal: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true)
	t.Edge = r.NewStyle().Foreground(t.Border)
	t.Label = r.NewStyle().Foreground(t.Subtext)
	t.Popup = r.NewStyle().Foreground(t.Base.GetForeground()).Background(ThemeBg("#21222C"))
	t.PopupHdr = t.Popup.Bold(true).Foreground(t.Primary)
	t.Button = r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).Background(t.Primary)
	t.Chip = r.NewStyle().Foreground(t.Subtext).Background(ThemeBg("#2B2D3A"))
	t.Toolbar = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Empty = r.NewStyle().Foreground(t.Muted).Italic(true)

	for b, c := range map[layout.Band]lipgloss.AdaptiveColor{
		layout.BandHigh:    t.High,
		layout.BandMedium:  t.Medium,
		layout.BandLow:     t.Low,
		layout.BandMinimal: t.Minimal,
	} {
		t.bands[b] = r.NewStyle().Foreground(c)
		t.selected[b] = r.NewStyle().Foreground(c).Background(t.Highlight).Bold(true)
	}
	return t
}

// NodeStyle returns the disc style for a node.
func (t Theme) NodeStyle(b layout.Band, selected bool) lipgloss.Style {
	if b < layout.BandMinimal || b > layout.BandHigh {
		b = layout.BandMinimal
	}
	if selected {
		return t.selected[b]
	}
	return t.bands[b]
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
