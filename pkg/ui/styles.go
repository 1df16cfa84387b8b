package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/podgraph/pkg/layout"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS
// ══════════════════════════════════════════════════════════════════════════════

const (
	SpaceXS = 1
	SpaceSM = 2
)

// Chrome rows outside the canvas.
const (
	headerRows     = 1
	footerRows     = 2 // status + help
	fullscreenRows = 1 // status only
	chipMaxWidth   = 18
)

var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderRelevanceBadge returns "● 95% high" in the band colour.
func RenderRelevanceBadge(t Theme, relevance float64) string {
	band := layout.RelevanceBand(relevance)
	dot := t.NodeStyle(band, false).Render("●")
	return fmt.Sprintf("%s %d%% %s", dot, int(relevance*100+0.5), band)
}

// RenderTags renders tags as "#tag" chips separated by spaces.
func RenderTags(tags []string, maxWidth int) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+strings.ReplaceAll(strings.TrimSpace(tag), " ", "-"))
	}
	return truncate(strings.Join(parts, " "), maxWidth)
}

// RenderStatus styles a status line by prefix convention: messages starting
// with "❌" render as errors, everything else as success.
func RenderStatus(msg string, width int) string {
	if msg == "" {
		return strings.Repeat(" ", max(width, 0))
	}
	color := ColorSuccess
	if strings.HasPrefix(msg, "❌") {
		color = ColorDanger
	}
	return lipgloss.NewStyle().Foreground(color).Render(padRight(truncate(msg, width), width))
}
