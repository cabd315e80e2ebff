package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromaplane/pkg/pointset"
	"github.com/matzehuels/chromaplane/pkg/render"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// writePoints writes pts as a plain-text point file.
func writePoints(t *testing.T, dir, name string, pts []udg.Point) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# test points\n")
	for _, p := range pts {
		fmt.Fprintf(&b, "%.17g %.17g\n", p.X, p.Y)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// execute runs the CLI with args against an isolated cache directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePoints(t, dir, "spindle.txt", udg.MoserSpindle())
	core := filepath.Join(dir, "core.json")

	out, err := execute(t, "analyze", in, "--witness", "--critical", "-o", core)
	require.NoError(t, err)
	assert.Contains(t, out, "7 vertices")
	assert.Contains(t, out, "11 edges")
	assert.Contains(t, out, "4 exact")
	assert.Contains(t, out, "witness")
	assert.Contains(t, out, "Locally vertex-critical, chi=4 certified")

	pts, err := pointset.ImportPoints(core)
	require.NoError(t, err)
	assert.Len(t, pts, 7)
}

func TestAnalyzeReportsUnknown(t *testing.T) {
	in := writePoints(t, t.TempDir(), "golomb.txt", udg.GolombGraph())

	out, err := execute(t, "analyze", in, "--exact-limit=-1", "--node-budget=1", "--critical")
	require.NoError(t, err)
	assert.Contains(t, out, "in [3, ")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "no critical subgraph computed")
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "analyze", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	in := writePoints(t, dir, "tri.txt", udg.Triangle())
	_, err = execute(t, "analyze", in, "--tolerance", "0.9")
	assert.Error(t, err)

	_, err = execute(t, "analyze")
	assert.Error(t, err)
}

func TestReduceCommand(t *testing.T) {
	dir := t.TempDir()
	wheel := make([]udg.Point, 0, 10)
	wheel = append(wheel, udg.HexagonWheel()...)
	for _, p := range udg.Triangle() {
		wheel = append(wheel, p.Add(udg.Pt(10, 0)))
	}
	in := writePoints(t, dir, "wheel.txt", wheel)
	sub := filepath.Join(dir, "sub.json")

	out, err := execute(t, "reduce", in, "--chi", "3", "--verify", "-o", sub)
	require.NoError(t, err)
	assert.Contains(t, out, "3 vertices")
	assert.Contains(t, out, "Locally vertex-critical, chi=3 certified")

	pts, err := pointset.ImportPoints(sub)
	require.NoError(t, err)
	assert.Len(t, pts, 3)

	_, err = execute(t, "reduce", in)
	assert.Error(t, err, "--chi is required")
	_, err = execute(t, "reduce", in, "--chi", "3", "--order", "random")
	assert.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePoints(t, dir, "rhombus.txt", udg.Rhombus())
	records := filepath.Join(dir, "records.json")

	out, err := execute(t, "search", in, "--mode", "aligned", "-j", "2", "-o", records)
	require.NoError(t, err)
	assert.Contains(t, out, "base chi 3")
	assert.Contains(t, out, "has chi=4 with 7 vertices")
	assert.NotContains(t, out, "lower bound")

	f, err := os.Open(records)
	require.NoError(t, err)
	defer f.Close()
	recs, err := pointset.ReadRecords(f)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, 4, recs[0].K)
	assert.Equal(t, 1, recs[0].Rank)
}

func TestSearchUndecidedBase(t *testing.T) {
	dir := t.TempDir()
	tri := writePoints(t, dir, "triangle.txt", udg.Triangle())
	golomb := writePoints(t, dir, "golomb.txt", udg.GolombGraph())

	out, err := execute(t, "search", tri, golomb, "--mode", "grid", "--angle", "0",
		"--candidates", "1", "--exact-limit=-1", "--node-budget=1")
	require.NoError(t, err)
	assert.Contains(t, out, "base chi 3 is only a lower bound")
}

func TestSearchWithConfig(t *testing.T) {
	dir := t.TempDir()
	in := writePoints(t, dir, "rhombus.txt", udg.Rhombus())
	cfg := filepath.Join(dir, "run.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[search]
mode = "grid"
angles_deg = [0.0]
copies = [2]

[cache]
backend = "none"
`), 0o644))

	out, err := execute(t, "search", in, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No candidate exceeded chi=3")

	_, err = execute(t, "search", in, "--config", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
	_, err = execute(t, "search", in, "--mode", "grid")
	assert.Error(t, err, "grid mode needs angles")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePoints(t, dir, "spindle.txt", udg.MoserSpindle())

	out, err := execute(t, "render", in, "--format", "dot", "--critical", "--labels")
	require.NoError(t, err)
	dotPath := filepath.Join(dir, "spindle.dot")
	assert.Contains(t, out, dotPath)

	data, err := os.ReadFile(dotPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "graph G {"))
	assert.Equal(t, 11, strings.Count(string(data), " -- "))
	assert.Contains(t, string(data), "penwidth=3")

	_, err = execute(t, "render", in, "-o", filepath.Join(dir, "out.pdf"))
	assert.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         render.Format
		wantErr      bool
	}{
		{"", "", render.FormatSVG, false},
		{"", "a.svg", render.FormatSVG, false},
		{"", "a.PNG", render.FormatPNG, false},
		{"", "a.dot", render.FormatDOT, false},
		{"dot", "a.svg", render.FormatDOT, false},
		{"", "a.pdf", "", true},
		{"gif", "", "", true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.flag, tt.output)
		if tt.wantErr {
			assert.Error(t, err, "%q %q", tt.flag, tt.output)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	dir := filepath.Join(cacheHome, appName)

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	run := func(args ...string) error {
		root := c.RootCommand()
		root.SetArgs(args)
		return root.ExecuteContext(context.Background())
	}

	require.NoError(t, run("cache", "path"))
	assert.Equal(t, dir+"\n", out.String())

	out.Reset()
	require.NoError(t, run("cache", "clear"))
	assert.Contains(t, out.String(), "Cache is empty")

	in := writePoints(t, t.TempDir(), "spindle.txt", udg.MoserSpindle())
	require.NoError(t, run("analyze", in))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	out.Reset()
	require.NoError(t, run("cache", "clear"))
	assert.Contains(t, out.String(), "Cleared cache")
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".cache", appName), dir)

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err = cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/custom-cache", appName), dir)
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"analyze", "reduce", "search", "render", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells() {
		out, err := execute(t, "completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, out, "chromaplane", shell)
	}

	_, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
