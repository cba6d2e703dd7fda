package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph(t *testing.T) {
	graph := NewGraph(
		&Element{ID: "root"},
		&Element{ID: "middle", Parent: "root"},
		&Element{ID: "leaf", Parent: "middle"},
		&Element{ID: "orphan", Parent: "missing"},
	)

	t.Run("ancestors nearest first", func(t *testing.T) {
		var ids []string
		for _, ancestor := range graph.Ancestors("leaf") {
			ids = append(ids, ancestor.ID)
		}
		assert.Equal(t, []string{"middle", "root"}, ids)
		assert.Empty(t, graph.Ancestors("root"))
		assert.Empty(t, graph.Ancestors("orphan"))
		assert.Empty(t, graph.Ancestors("nobody"))
	})

	t.Run("cycles stop", func(t *testing.T) {
		cyclic := NewGraph(
			&Element{ID: "x", Parent: "y"},
			&Element{ID: "y", Parent: "x"},
		)
		ancestors := cyclic.Ancestors("x")
		require.Len(t, ancestors, 1)
		assert.Equal(t, "y", ancestors[0].ID)
	})

	t.Run("add replaces by id", func(t *testing.T) {
		g := NewGraph(&Element{ID: "a", Type: "old"}, &Element{ID: "b"})
		g.AddElement(&Element{ID: "a", Type: "new"})
		require.Len(t, g.Elements(), 2)
		assert.Equal(t, "new", g.Elements()[0].Type)
		a, ok := g.Element("a")
		require.True(t, ok)
		assert.Equal(t, "new", a.Type)
	})
}

func TestNewLinkView(t *testing.T) {
	graph := NewGraph(&Element{ID: "a", BBox: Rect{X: 1, Y: 2, Width: 3, Height: 4}})

	t.Run("resolves ends", func(t *testing.T) {
		view, err := NewLinkView(graph, &Link{
			Source:        ElementEnd("a"),
			Target:        PointEnd(Point{X: 9, Y: 8}),
			LastEndChange: EndTarget,
		})
		require.NoError(t, err)
		assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 4}, view.SourceBBox)
		assert.Equal(t, Rect{X: 9, Y: 8}, view.TargetBBox)
		assert.Equal(t, EndTarget, view.LastEndChange)

		end, ok := view.End(EndSource)
		assert.True(t, ok)
		assert.Equal(t, "a", end.ID)
		_, ok = view.End("middle")
		assert.False(t, ok)
	})

	t.Run("unknown element", func(t *testing.T) {
		view, err := NewLinkView(graph, &Link{ID: "l1", Source: ElementEnd("zzz")})
		assert.Nil(t, view)
		assert.EqualError(t, err, `link "l1": unknown element "zzz"`)
	})

	t.Run("nil graph", func(t *testing.T) {
		view, err := NewLinkView(nil, &Link{Source: PointEnd(Point{}), Target: PointEnd(Point{X: 1})})
		require.NoError(t, err)
		assert.Empty(t, view.Graph.Elements())
	})
}

func TestRouteLink(t *testing.T) {
	graph := NewGraph(
		&Element{ID: "a", BBox: Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		&Element{ID: "b", BBox: Rect{X: 300, Y: 0, Width: 100, Height: 100}},
	)
	link := &Link{ID: "ab", Source: ElementEnd("a"), Target: ElementEnd("b")}

	t.Run("defaults to manhattan", func(t *testing.T) {
		route, err := RouteLink(graph, link, "", nil)
		require.NoError(t, err)
		assert.Equal(t, []Point{{X: 120, Y: 50}, {X: 280, Y: 50}}, route.Points)
	})

	t.Run("link router", func(t *testing.T) {
		withRouter := *link
		withRouter.Router = "orthogonal"
		route, err := RouteLink(graph, &withRouter, "", nil)
		require.NoError(t, err)
		assert.Empty(t, route.Points)
	})

	t.Run("unknown router", func(t *testing.T) {
		_, err := RouteLink(graph, link, "subway", nil)
		assert.EqualError(t, err, `unknown router "subway"`)
	})

	t.Run("unknown element", func(t *testing.T) {
		_, err := RouteLink(graph, &Link{ID: "bad", Source: ElementEnd("a"), Target: ElementEnd("c")}, "metro", nil)
		assert.EqualError(t, err, `link "bad": unknown element "c"`)
	})

	t.Run("router names", func(t *testing.T) {
		assert.Equal(t, []string{"manhattan", "metro", "orthogonal"}, RouterNames())
	})
}
