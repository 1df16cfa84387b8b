package export

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/podgraph/pkg/layout"
)

func renderSVG(w io.Writer, sc scene) error {
	canvas := svg.New(w)
	canvas.Start(sc.Width, sc.Height)
	canvas.Rect(0, 0, sc.Width, sc.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(12, 8, sc.Width-24, int(headerHeight)-16, 8, 8, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(24, 32, sc.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(24, 52, sc.Subtitle, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	drawLegendSVG(canvas, sc)

	for _, l := range sc.Lines {
		canvas.Line(int(l.X1), int(l.Y1), int(l.X2), int(l.Y2),
			fmt.Sprintf("stroke:%s;stroke-opacity:%s;stroke-width:1", css(colorEdge), opacity(colorEdge)))
	}

	for _, n := range sc.Nodes {
		stroke := "none"
		if n.Selected {
			stroke = css(colorStroke)
		}
		canvas.Circle(int(n.X), int(n.Y), int(n.R),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", css(bandColor(n.Band)), stroke))
		canvas.Text(int(n.X), int(n.Y+n.R+16), n.Label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	canvas.End()
	return nil
}

func drawLegendSVG(canvas *svg.SVG, sc scene) {
	x := sc.Width - 320
	for i, b := range legendBands {
		cx := x + i*76
		canvas.Circle(cx, 40, 6, fmt.Sprintf("fill:%s", css(bandColor(b))))
		canvas.Text(cx+10, 44, b.String(), fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle)))
	}
}

var legendBands = []layout.Band{layout.BandHigh, layout.BandMedium, layout.BandLow, layout.BandMinimal}

func renderPNG(path string, sc scene) error {
	dc := gg.NewContext(sc.Width, sc.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(12, 8, float64(sc.Width)-24, headerHeight-16, 8)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(sc.Title, 24, 28, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(sc.Subtitle, 24, 48, 0, 0.5)

	x := float64(sc.Width) - 320
	for i, b := range legendBands {
		cx := x + float64(i)*76
		dc.SetColor(bandColor(b))
		dc.DrawCircle(cx, 38, 6)
		dc.Fill()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(b.String(), cx+10, 38, 0, 0.5)
	}

	dc.SetColor(colorEdge)
	dc.SetLineWidth(1)
	for _, l := range sc.Lines {
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	for _, n := range sc.Nodes {
		dc.SetColor(bandColor(n.Band))
		dc.DrawCircle(n.X, n.Y, n.R)
		dc.Fill()
		if n.Selected {
			dc.SetColor(colorStroke)
			dc.SetLineWidth(2)
			dc.DrawCircle(n.X, n.Y, n.R)
			dc.Stroke()
		}
		dc.SetColor(colorText)
		dc.DrawStringAnchored(n.Label, n.X, n.Y+n.R+12, 0.5, 0.5)
	}

	return dc.SavePNG(path)
}
