package main

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/podgraph/pkg/config"
	"github.com/vanderheijden86/podgraph/pkg/edges"
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/metrics"
	"github.com/vanderheijden86/podgraph/pkg/model"
)

type layoutNode struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Relevance float64 `json:"relevance"`
	Radius    float64 `json:"radius"`
	Band      string  `json:"band"`
	Degree    int     `json:"degree"`
}

type layoutOutput struct {
	Source string       `json:"source"`
	Query  string       `json:"query,omitempty"`
	Canvas model.Size   `json:"canvas"`
	Nodes  []layoutNode `json:"nodes"`
	Edges  []edges.Edge `json:"edges"`

	Metrics []metrics.TimingStats `json:"metrics,omitempty"`
}

func buildLayoutOutput(rs model.ResultSet, cfg config.Config, source string) layoutOutput {
	lc := cfg.ExplorerConfig().Layout
	stop := metrics.Timer(metrics.LayoutCompute)
	positioned := layout.Layout(rs.Items, lc)
	stop()
	stop = metrics.Timer(metrics.EdgeResolve)
	es := edges.Resolve(positioned)
	stop()
	degree := edges.Degree(es)

	out := layoutOutput{
		Source: source,
		Query:  rs.Query,
		Canvas: model.Size{W: lc.Width, H: lc.Height},
		Nodes:  make([]layoutNode, 0, len(positioned)),
		Edges:  es,
	}
	if out.Edges == nil {
		out.Edges = []edges.Edge{}
	}
	for _, p := range positioned {
		out.Nodes = append(out.Nodes, layoutNode{
			ID:        p.ID,
			Title:     p.Title,
			X:         p.Position.X,
			Y:         p.Position.Y,
			Relevance: p.Relevance,
			Radius:    layout.NodeRadius(p.Relevance),
			Band:      layout.RelevanceBand(p.Relevance).String(),
			Degree:    degree[p.ID],
		})
	}
	return out
}

func writeLayoutOutput(w io.Writer, out layoutOutput, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func newLayoutCmd(root *rootOptions) *cobra.Command {
	var compact, withMetrics bool
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print node positions and edges as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rs, path, err := loadInput(root)
			if err != nil {
				return err
			}
			rs = applyQuery(rs, root.query)
			out := buildLayoutOutput(rs, cfg, path)
			if withMetrics {
				out.Metrics = metrics.AllTimingStats()
			}
			return writeLayoutOutput(cmd.OutOrStdout(), out, compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Write one line of JSON")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Include load and layout timings")
	return cmd
}
