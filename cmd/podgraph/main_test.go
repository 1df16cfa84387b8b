package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/podgraph/pkg/config"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/testutil"
	"github.com/vanderheijden86/podgraph/pkg/version"
)

// setupData writes the mock items to a temp dir and isolates config lookup.
func setupData(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PODGRAPH_CONFIG", "")
	t.Setenv("PODGRAPH_DATA", "")
	t.Setenv("PODGRAPH_EXPORT_DIR", "")
	t.Setenv("PODGRAPH_EXPORT_FORMAT", "")
	path := filepath.Join(t.TempDir(), "results.jsonl")
	testutil.WriteItemsFile(t, path, testutil.MockItems())
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLayoutCommand(t *testing.T) {
	path := setupData(t)

	out, err := runCmd(t, "layout", "--data", path)
	if err != nil {
		t.Fatalf("layout failed: %v\n%s", err, out)
	}
	var got layoutOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got.Nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(got.Nodes))
	}
	if len(got.Edges) != 5 {
		t.Errorf("expected 5 edges, got %d: %+v", len(got.Edges), got.Edges)
	}
	first := got.Nodes[0]
	if first.ID != "1" || first.X != 507.5 || first.Y != 300 {
		t.Errorf("unexpected first node %+v", first)
	}
	if first.Band != "high" || first.Degree != 2 {
		t.Errorf("unexpected band/degree %+v", first)
	}
	if got.Canvas.W != 800 || got.Canvas.H != 600 {
		t.Errorf("unexpected canvas %+v", got.Canvas)
	}
}

func TestLayoutCommandQuery(t *testing.T) {
	path := setupData(t)

	out, err := runCmd(t, "layout", "--data", path, "--query", "future", "--compact")
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Error("--compact should write one line")
	}
	var got layoutOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Query != "future" || len(got.Nodes) != 2 {
		t.Errorf("expected 2 nodes for future, got %d (query %q)", len(got.Nodes), got.Query)
	}
	if len(got.Edges) != 0 {
		t.Errorf("items 1 and 5 are not connected, got %+v", got.Edges)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	path := setupData(t)
	a, err := runCmd(t, "layout", "--data", path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := runCmd(t, "layout", "--data", path)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("layout output should be deterministic")
	}
}

func TestExportOutFile(t *testing.T) {
	path := setupData(t)
	svgPath := filepath.Join(t.TempDir(), "graph.svg")

	out, err := runCmd(t, "export", "--data", path, "--out", svgPath, "--select", "1", "--title", "demo")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote "+svgPath) {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, "demo") || !strings.Contains(svg, "stroke:#000000") {
		t.Error("expected title and selected node in SVG")
	}
}

func TestExportMultipleFormats(t *testing.T) {
	path := setupData(t)
	dir := t.TempDir()

	out, err := runCmd(t, "export", "--data", path, "--dir", dir, "--name", "snap", "-f", "svg", "-f", "db")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	for _, name := range []string{"snap.svg", "snap.db"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if !strings.Contains(out, "5 segments, 5 connections") {
		t.Errorf("missing summary in %q", out)
	}
}

func TestExportErrors(t *testing.T) {
	path := setupData(t)
	dir := t.TempDir()

	if _, err := runCmd(t, "export", "--data", path, "--dir", dir, "-f", "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := runCmd(t, "export", "--data", path, "--out", filepath.Join(dir, "x.svg"), "--select", "nope"); err == nil {
		t.Error("expected error for unknown --select")
	}
	if _, err := runCmd(t, "export", "--data", path, "--dir", dir, "-f", "svg", "--query", "zzz"); err == nil {
		t.Error("expected error exporting an empty result set")
	}
}

func TestSnapshotOptionsZoom(t *testing.T) {
	cfg := config.DefaultConfig()
	rs := applyQuery(mockSet(), "")
	opts, err := snapshotOptions(cfg, rs, &exportFlags{zoom: 2})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Snapshot.ZoomPercent != 144 {
		t.Errorf("expected 144%%, got %d", opts.Snapshot.ZoomPercent)
	}
	opts, _ = snapshotOptions(cfg, rs, &exportFlags{zoom: -1})
	if opts.Snapshot.ZoomPercent != 83 {
		t.Errorf("expected 83%%, got %d", opts.Snapshot.ZoomPercent)
	}
}

func TestParseFormats(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Export.Format = "png"
	got, err := parseFormats(nil, cfg)
	if err != nil || len(got) != 1 || got[0] != "png" {
		t.Errorf("config default not used: %v %v", got, err)
	}
	got, err = parseFormats([]string{"SVG", "sqlite"}, cfg)
	if err != nil || len(got) != 2 || got[1] != "db" {
		t.Errorf("unexpected %v %v", got, err)
	}
}

func TestResolveDataPath(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	if _, err := resolveDataPath("", cfg, dir); err == nil {
		t.Error("expected error for a directory without sources")
	}

	want := filepath.Join(dir, "items.jsonl")
	testutil.WriteItemsFile(t, want, testutil.MockItems())
	got, err := resolveDataPath("", cfg, dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "items.jsonl" {
		t.Errorf("expected discovered items.jsonl, got %s", got)
	}

	if got, _ := resolveDataPath("flag.jsonl", cfg, dir); got != "flag.jsonl" {
		t.Errorf("flag should win, got %s", got)
	}
	cfg.Data = "config.jsonl"
	if got, _ := resolveDataPath("", cfg, dir); got != "config.jsonl" {
		t.Errorf("config should win over discovery, got %s", got)
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("popup:\n  width: 280\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Popup.Width != 280 {
		t.Errorf("expected popup width 280, got %v", cfg.Popup.Width)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("viewport:\n  zoom_min: 5\n  zoom_max: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad); err == nil {
		t.Error("expected validation error")
	}
}

func TestMissingDataFile(t *testing.T) {
	setupData(t)
	if _, err := runCmd(t, "layout", "--data", filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing data file")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version.Version) {
		t.Errorf("expected version in %q", out)
	}
}

func mockSet() model.ResultSet {
	return model.ResultSet{Items: testutil.MockItems()}
}

func TestExportRunsHooks(t *testing.T) {
	path := setupData(t)
	work := t.TempDir()
	chdir(t, work)
	if err := os.MkdirAll(filepath.Join(work, ".podgraph"), 0o755); err != nil {
		t.Fatal(err)
	}
	hooksYAML := `hooks:
  pre-export:
    - name: stamp
      command: echo "$PODGRAPH_ITEM_COUNT" > pre.txt
  post-export:
    - name: list
      command: echo "$PODGRAPH_EXPORT_FORMATS" > post.txt
`
	if err := os.WriteFile(filepath.Join(work, ".podgraph", "hooks.yaml"), []byte(hooksYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "export", "--data", path, "--dir", work, "-f", "svg", "-f", "db")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	pre, _ := os.ReadFile(filepath.Join(work, "pre.txt"))
	if strings.TrimSpace(string(pre)) != "5" {
		t.Errorf("pre-export hook saw item count %q", pre)
	}
	post, _ := os.ReadFile(filepath.Join(work, "post.txt"))
	if strings.TrimSpace(string(post)) != "svg,db" {
		t.Errorf("post-export hook saw formats %q", post)
	}
	if !strings.Contains(out, "2 hook(s), 0 failed") {
		t.Errorf("missing hook summary in %q", out)
	}
}

func TestExportPreHookFailureAborts(t *testing.T) {
	path := setupData(t)
	work := t.TempDir()
	chdir(t, work)
	if err := os.MkdirAll(filepath.Join(work, ".podgraph"), 0o755); err != nil {
		t.Fatal(err)
	}
	hooksYAML := "hooks:\n  pre-export:\n    - command: exit 1\n"
	if err := os.WriteFile(filepath.Join(work, ".podgraph", "hooks.yaml"), []byte(hooksYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	svgPath := filepath.Join(work, "g.svg")

	if _, err := runCmd(t, "export", "--data", path, "--out", svgPath); err == nil {
		t.Fatal("expected pre-export failure")
	}
	if _, err := os.Stat(svgPath); err == nil {
		t.Error("export should not be written when a pre-export hook fails")
	}

	if out, err := runCmd(t, "export", "--data", path, "--out", svgPath, "--no-hooks"); err != nil {
		t.Fatalf("--no-hooks export failed: %v\n%s", err, out)
	}
}

func TestLayoutMetrics(t *testing.T) {
	path := setupData(t)

	out, err := runCmd(t, "layout", "--data", path, "--metrics", "--compact")
	if err != nil {
		t.Fatalf("layout failed: %v\n%s", err, out)
	}
	var got layoutOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	names := map[string]bool{}
	for _, s := range got.Metrics {
		names[s.Name] = true
	}
	for _, want := range []string{"result_set_load", "layout_compute", "edge_resolve"} {
		if !names[want] {
			t.Errorf("missing %s in metrics %+v", want, got.Metrics)
		}
	}
}

func TestConfigInitAndPath(t *testing.T) {
	setupData(t)
	want := config.ConfigPath()

	out, err := runCmd(t, "config", "path")
	if err != nil || strings.TrimSpace(out) != want {
		t.Fatalf("config path = %q, %v; want %q", out, err, want)
	}

	if out, err := runCmd(t, "config", "init"); err != nil || !strings.Contains(out, "Wrote "+want) {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	def := config.DefaultConfig()
	if cfg.Layout != def.Layout || cfg.Popup != def.Popup {
		t.Errorf("written config differs from defaults: %+v", cfg)
	}

	if _, err := runCmd(t, "config", "init"); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
	if _, err := runCmd(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	custom := filepath.Join(t.TempDir(), "c.yaml")
	if _, err := runCmd(t, "config", "init", "--config", custom); err != nil {
		t.Fatalf("init --config: %v", err)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Errorf("custom config not written: %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
