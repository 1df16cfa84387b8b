//go:build ignore

// generate_testdata.go writes synthetic result sets for manual testing and
// profiling of the explorer.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.jsonl   (25 segments)
//	testdata/benchmark/medium.jsonl  (200 segments)
//	testdata/benchmark/large.jsonl   (1000 segments)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/testutil"
)

type datasetSpec struct {
	name    string
	size    int
	density float64
}

var datasets = []datasetSpec{
	{"small", 25, 0.15},
	{"medium", 200, 0.03},
	{"large", 1000, 0.005},
}

var podcasts = []string{
	"Tech Talk Daily",
	"Future Forward",
	"Ethics in Tech",
	"Startup Stories",
	"Culture Code",
}

func main() {
	outputDir := filepath.Join("testdata", "benchmark")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		cfg := testutil.DefaultConfig()
		cfg.Seed = int64(ds.size)
		cfg.DanglingRate = 0.05

		gen := testutil.New(cfg)
		gf := gen.Random(ds.size, ds.density)
		items := gen.ToItems(gf)
		decorate(items)

		jsonl := testutil.ToJSONL(items)
		path := filepath.Join(outputDir, ds.name+".jsonl")
		if err := os.WriteFile(path, []byte(jsonl), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d segments, %d relations)\n", path, len(items), len(gf.Edges))
	}
}

func decorate(items []model.Item) {
	for i := range items {
		items[i].Podcast = podcasts[i%len(podcasts)]
		items[i].Duration = fmt.Sprintf("%d:%02d", 3+i%20, (i*7)%60)
		if items[i].Description == "" {
			items[i].Description = fmt.Sprintf("Synthetic segment %d for profiling the explorer.", i)
		}
	}
}
