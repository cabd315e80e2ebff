package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromaplane/pkg/udg"
)

func spindle(t *testing.T) *udg.Graph {
	t.Helper()
	g, err := udg.Build(udg.MoserSpindle(), 1e-9)
	require.NoError(t, err)
	return g
}

func TestToDOT(t *testing.T) {
	g := spindle(t)
	dot := ToDOT(g, Options{Coloring: []int{0, 1, 2, 3, 1, 2, 0}, Highlight: []int{0, 1}, Labels: true})

	assert.True(t, strings.HasPrefix(dot, "graph G {"))
	assert.Equal(t, g.EdgeCount(), strings.Count(dot, " -- "))
	assert.Contains(t, dot, `v0 [pos="0.0000,0.0000!", label="0", fillcolor="#e6194b", penwidth=3];`)
	assert.Contains(t, dot, `fillcolor="#ffe119"`)
	assert.Contains(t, dot, "v0 -- v1 [penwidth=2, color=black];")
}

func TestToDOTScaleAndNoColoring(t *testing.T) {
	g, err := udg.Build([]udg.Point{udg.Pt(0, 0), udg.Pt(1, 0)}, 1e-9)
	require.NoError(t, err)
	dot := ToDOT(g, Options{Scale: 2})
	assert.Contains(t, dot, `v1 [pos="2.0000,0.0000!", label=""];`)
	assert.NotContains(t, dot, "#e6194b")
	assert.Contains(t, dot, "v0 -- v1;")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"dot", "svg", "png"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestRenderDOTPassthrough(t *testing.T) {
	out, err := Render(context.Background(), "graph G {}", FormatDOT)
	require.NoError(t, err)
	assert.Equal(t, "graph G {}", string(out))
}

func TestRenderSVG(t *testing.T) {
	g := spindle(t)
	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "</svg>")
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `viewBox="0 0 100.00 50.00" width="100" height="50"`)
	assert.Contains(t, out, "<g/></svg>")

	plain := []byte("<svg><g/></svg>")
	assert.Equal(t, plain, normalizeViewBox(plain))
}
