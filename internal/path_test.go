package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squarePath = "M 0 0 L 10 0 L 10 10 L 0 10 Z"

func mustParse(t *testing.T, data string) *Path {
	t.Helper()
	path, err := ParsePath(data)
	require.NoError(t, err)
	return path
}

func TestParsePath(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data := "M 0 0 L 10 0 C 10 5 5 10 0 10 Z M 20 20 L 30 30"
		path := mustParse(t, data)
		serialized, err := path.Serialize()
		require.NoError(t, err)
		assert.Equal(t, data, serialized)
		assert.True(t, mustParse(t, serialized).Equals(path))
	})

	t.Run("compact data", func(t *testing.T) {
		path := mustParse(t, "M100-200L1.5.25zM10,10")
		assert.Equal(t, []Segment{
			Moveto(Point{100, -200}),
			Lineto(Point{1.5, 0.25}),
			Closepath(),
			Moveto(Point{10, 10}),
		}, path.Segments())
	})

	t.Run("chained arguments", func(t *testing.T) {
		assert.Equal(t, "M 0 0 L 10 0 L 10 10", mustParse(t, "M 0 0 10 0 10 10").String())
		assert.Equal(t, "L 1 2 L 3 4", mustParse(t, "L 1 2 3 4").String())
		assert.Equal(t, "M 0 0 C 1 1 2 2 3 3 C 4 4 5 5 6 6", mustParse(t, "M0 0 C 1 1 2 2 3 3 4 4 5 5 6 6").String())
	})

	t.Run("empty data", func(t *testing.T) {
		assert.Equal(t, 0, mustParse(t, "").Len())
		assert.Equal(t, 0, mustParse(t, "  \n").Len())
	})

	t.Run("errors", func(t *testing.T) {
		cases := map[string]string{
			"M 0 0 Q 1 1 2 2": "Q is not a recognized path segment type.",
			"L 1":             "Lineto constructor expects 2 coordinates (1 coordinates provided).",
			"M 0 0 L 1 2 3":   "Lineto constructor expects 2 coordinates (1 coordinates provided).",
			"M 0 0 1":         "Lineto constructor expects 2 coordinates (1 coordinates provided).",
			"M":               "Moveto constructor expects 2 coordinates (none provided).",
			"M 0 0 C 1 2 3 4": "Curveto constructor expects 6 coordinates (4 coordinates provided).",
			"M 0 0 Z 1":       "Closepath constructor expects no arguments.",
			"M 0 0 # 1":       "unexpected '#'",
			"10 10":           "expected a command",
		}
		for data, message := range cases {
			_, err := ParsePath(data)
			if assert.Error(t, err, data) {
				assert.Contains(t, err.Error(), message, data)
			}
		}
	})

	t.Run("must parse panics with a geometry error", func(t *testing.T) {
		err := Catch(func() { MustParsePath("M 0 0 X") })
		assert.ErrorContains(t, err, "X is not a recognized path segment type.")
	})
}

func TestIsDataSupported(t *testing.T) {
	assert.True(t, IsDataSupported("M 0 0 L 10 10 Z"))
	assert.True(t, IsDataSupported("M0,0C1,1,2,2,3.5,3z"))
	assert.False(t, IsDataSupported("M 0 -1"))
	assert.False(t, IsDataSupported("M 0 0 Q 1 1 2 2"))
}

func TestPathLength(t *testing.T) {
	// The closing segment runs along the diagonal.
	assert.InDelta(t, 20+10*math.Sqrt2, mustParse(t, "M0 0 L10 0 L10 10 Z").Length(nil), 1e-9)
	assert.InDelta(t, 30, mustParse(t, "M0 0 L10 0 L5 8.660254037844386 Z").Length(nil), 1e-9)
	assert.InDelta(t, 40, mustParse(t, squarePath).Length(nil), 1e-9)
	assert.InDelta(t, 30, mustParse(t, "M0 0 C10 0 20 0 30 0").Length(nil), 1e-9)
	assert.Equal(t, 0.0, (&Path{}).Length(nil))
	assert.Equal(t, 0.0, NewPath(Moveto(Point{5, 5})).Length(nil))
}

func TestPathSegmentAccess(t *testing.T) {
	path := mustParse(t, squarePath)

	segment, err := path.GetSegment(-1)
	require.NoError(t, err)
	assert.Equal(t, SegmentClosepath, segment.Type)

	_, err = path.GetSegment(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = path.GetSegment(-6)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = (&Path{}).GetSegment(0)
	assert.ErrorIs(t, err, ErrNoSegments)

	end, err := path.SegmentEnd(4)
	require.NoError(t, err)
	assert.Equal(t, Point{0, 0}, end)

	start, err := path.SegmentStart(4)
	require.NoError(t, err)
	assert.Equal(t, Point{0, 10}, start)

	_, err = path.SegmentStart(0)
	assert.EqualError(t, err, "Illegal access. Moveto segments should not need a start property.")

	dangling := NewPath(Lineto(Point{10, 0}), Closepath())
	_, err = dangling.SegmentStart(0)
	assert.EqualError(t, err, "Missing previous segment.")
	_, err = dangling.SegmentEnd(1)
	assert.EqualError(t, err, "Missing subpath start segment.")

	shape, err := path.Shape(0)
	require.NoError(t, err)
	assert.False(t, shape.IsVisible())
	shape, err = path.Shape(2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, shape.Length(nil))
}

func TestPathSurgery(t *testing.T) {
	t.Run("removing a moveto rebinds closepaths", func(t *testing.T) {
		path := mustParse(t, "M 0 0 L 10 0 M 20 0 L 30 0 Z")
		end, _ := path.SegmentEnd(-1)
		assert.Equal(t, Point{20, 0}, end)

		require.NoError(t, path.RemoveSegment(2))
		end, _ = path.SegmentEnd(-1)
		assert.Equal(t, Point{0, 0}, end)
		assert.Equal(t, "M 0 0 L 10 0 L 30 0 Z", path.String())
	})

	t.Run("replacing a moveto rebinds closepaths", func(t *testing.T) {
		path := mustParse(t, "M 0 0 L 10 0 M 20 0 L 30 0 Z")
		require.NoError(t, path.ReplaceSegment(2, Lineto(Point{20, 0})))
		end, _ := path.SegmentEnd(-1)
		assert.Equal(t, Point{0, 0}, end)
	})

	t.Run("inserting a moveto starts a new subpath", func(t *testing.T) {
		path := mustParse(t, "M 0 0 L 10 0 L 10 10 Z")
		require.NoError(t, path.InsertSegment(2, Moveto(Point{5, 5})))
		end, _ := path.SegmentEnd(-1)
		assert.Equal(t, Point{5, 5}, end)
	})

	t.Run("insert accepts the end position", func(t *testing.T) {
		path := mustParse(t, "M 0 0")
		require.NoError(t, path.InsertSegment(-1, Lineto(Point{1, 1})))
		require.NoError(t, path.InsertSegment(2, Lineto(Point{2, 2})))
		require.NoError(t, path.InsertSegment(0, Moveto(Point{-1, -1})))
		assert.Equal(t, "M -1 -1 M 0 0 L 1 1 L 2 2", path.String())

		assert.ErrorIs(t, path.InsertSegment(5, Lineto(Point{})), ErrIndexOutOfRange)
		assert.ErrorIs(t, path.InsertSegment(-6, Lineto(Point{})), ErrIndexOutOfRange)
		assert.ErrorIs(t, path.InsertSegment(0), ErrNoSegment)
	})

	t.Run("replace with several segments", func(t *testing.T) {
		path := mustParse(t, "M 0 0 L 10 0")
		require.NoError(t, path.ReplaceSegment(-1, Lineto(Point{5, 0}), Lineto(Point{10, 0})))
		assert.Equal(t, "M 0 0 L 5 0 L 10 0", path.String())
		assert.ErrorIs(t, (&Path{}).RemoveSegment(0), ErrNoSegments)
	})
}

func TestPathValidate(t *testing.T) {
	path := NewPath(Lineto(Point{10, 0}))
	assert.False(t, path.IsValid())
	_, err := path.Serialize()
	assert.ErrorIs(t, err, ErrInvalidPath)

	path.Validate()
	assert.True(t, path.IsValid())
	assert.Equal(t, "M 0 0 L 10 0", path.String())
	assert.Equal(t, 10.0, path.Length(nil))
	assert.True(t, (&Path{}).IsValid())
}

func TestPathBBox(t *testing.T) {
	bbox, ok := mustParse(t, "M0 0 L10 0 L10 10 Z").BBox()
	require.True(t, ok)
	assert.Equal(t, Rect{0, 0, 10, 10}, bbox)

	bbox, ok = NewPath(Moveto(Point{5, 5})).BBox()
	require.True(t, ok)
	assert.Equal(t, Rect{5, 5, 0, 0}, bbox)

	_, ok = (&Path{}).BBox()
	assert.False(t, ok)
}

func TestPathPointAt(t *testing.T) {
	path := mustParse(t, squarePath)
	cases := []struct {
		length   float64
		expected Point
	}{
		{0, Point{0, 0}},
		{15, Point{10, 5}},
		{-5, Point{0, 5}},
		{100, Point{0, 0}},
		{-100, Point{0, 0}},
	}
	for _, c := range cases {
		point, ok := path.PointAtLength(c.length, nil)
		require.True(t, ok)
		assertPointInDelta(t, c.expected, point)
	}

	point, ok := path.PointAt(0.5, nil)
	require.True(t, ok)
	assertPointInDelta(t, Point{10, 10}, point)

	point, ok = path.PointAtT(PathT{2, 0.5})
	require.True(t, ok)
	assertPointInDelta(t, Point{10, 5}, point)
	point, _ = path.PointAtT(PathT{99, 0})
	assertPointInDelta(t, Point{0, 0}, point)

	_, ok = (&Path{}).PointAt(0.5, nil)
	assert.False(t, ok)
}

func TestPathStartEnd(t *testing.T) {
	path := mustParse(t, "M 0 0 L 10 0 M 5 5")
	start, _ := path.Start()
	end, _ := path.End()
	assert.Equal(t, Point{0, 0}, start)
	assert.Equal(t, Point{10, 0}, end)

	start, _ = NewPath(Moveto(Point{1, 2}), Moveto(Point{3, 4})).Start()
	assert.Equal(t, Point{3, 4}, start)
}

func TestPathTangent(t *testing.T) {
	path := mustParse(t, squarePath)

	tangent := path.TangentAtLength(5, nil)
	require.NotNil(t, tangent)
	assert.Equal(t, Line{Point{5, 0}, Point{15, 0}}, *tangent)

	tangent = path.TangentAtLength(100, nil)
	require.NotNil(t, tangent)
	assert.Equal(t, Line{Point{0, 0}, Point{0, -10}}, *tangent)

	tangent = path.TangentAt(0.5, nil)
	require.NotNil(t, tangent)
	assert.Equal(t, Point{0, 10}, tangent.Vector())

	assert.Nil(t, NewPath(Moveto(Point{1, 1})).TangentAtLength(1, nil))
	assert.Nil(t, path.TangentAtT(PathT{0, 0.5}))
}

func TestPathClosestPoint(t *testing.T) {
	path := mustParse(t, squarePath)
	q := Point{5, -3}

	cpT, ok := path.ClosestPointT(q, nil)
	require.True(t, ok)
	assert.Equal(t, PathT{1, 0.5}, cpT)

	point, ok := path.ClosestPoint(q, nil)
	require.True(t, ok)
	assertPointInDelta(t, Point{5, 0}, point)

	assert.InDelta(t, 5, path.ClosestPointLength(q, nil), 1e-9)
	assert.InDelta(t, 0.125, path.ClosestPointNormalizedLength(q, nil), 1e-9)

	tangent := path.ClosestPointTangent(q, nil)
	require.NotNil(t, tangent)
	assert.Equal(t, Line{Point{5, 0}, Point{15, 0}}, *tangent)

	cpT, ok = NewPath(Moveto(Point{1, 1})).ClosestPointT(q, nil)
	require.True(t, ok)
	assert.Equal(t, PathT{0, 1}, cpT)

	_, ok = (&Path{}).ClosestPoint(q, nil)
	assert.False(t, ok)
}

func TestPathContainsPoint(t *testing.T) {
	path := mustParse(t, squarePath)
	assert.True(t, path.ContainsPoint(Point{5, 5}, nil))
	assert.False(t, path.ContainsPoint(Point{15, 5}, nil))

	// An open path is treated as closed.
	assert.True(t, mustParse(t, "M 0 0 L 10 0 L 10 10 L 0 10").ContainsPoint(Point{5, 5}, nil))

	nested := mustParse(t, squarePath+" M 2 2 L 8 2 L 8 8 L 2 8 Z")
	assert.False(t, nested.ContainsPoint(Point{5, 5}, nil))
	assert.True(t, nested.ContainsPoint(Point{1, 1}, nil))

	arch := mustParse(t, "M 0 0 C 0 10 10 10 10 0 Z")
	assert.True(t, arch.ContainsPoint(Point{5, 5}, nil))
	assert.False(t, arch.ContainsPoint(Point{5, 9}, nil))
}

func TestPathDivideAtLength(t *testing.T) {
	t.Run("closepath becomes a lineto in the second half", func(t *testing.T) {
		first, second, ok := mustParse(t, squarePath).DivideAtLength(15, nil)
		require.True(t, ok)
		assert.Equal(t, "M 0 0 L 10 0 L 10 5", first.String())
		assert.Equal(t, "M 10 5 L 10 10 L 0 10 L 0 0", second.String())
		assert.InDelta(t, 15, first.Length(nil), 1e-9)
		assert.InDelta(t, 25, second.Length(nil), 1e-9)
	})

	t.Run("point halves are dropped", func(t *testing.T) {
		first, second, ok := mustParse(t, "M 0 0 L 10 0").DivideAt(0, nil)
		require.True(t, ok)
		assert.Equal(t, "M 0 0", first.String())
		assert.Equal(t, "M 0 0 L 10 0", second.String())
	})

	t.Run("past the end", func(t *testing.T) {
		first, second, ok := mustParse(t, "M 0 0 L 10 0").DivideAtLength(50, nil)
		require.True(t, ok)
		assert.Equal(t, "M 0 0 L 10 0", first.String())
		assert.Equal(t, "M 10 0", second.String())
	})

	t.Run("from the end", func(t *testing.T) {
		first, second, ok := mustParse(t, "M 0 0 L 10 0 L 10 10").DivideAtLength(-5, nil)
		require.True(t, ok)
		assert.Equal(t, "M 0 0 L 10 0 L 10 5", first.String())
		assert.Equal(t, "M 10 5 L 10 10", second.String())
	})

	t.Run("curves", func(t *testing.T) {
		path := mustParse(t, "M 0 0 C 0 10 10 10 10 0")
		first, second, ok := path.DivideAt(0.5, nil)
		require.True(t, ok)
		end, _ := first.End()
		assertPointNear(t, Point{5, 7.5}, end, 0.05)
		assert.InDelta(t, first.Length(nil), second.Length(nil), 0.05)
	})

	t.Run("nothing to divide", func(t *testing.T) {
		_, _, ok := NewPath(Moveto(Point{1, 1})).DivideAtLength(1, nil)
		assert.False(t, ok)
		_, _, ok = (&Path{}).DivideAt(0.5, nil)
		assert.False(t, ok)
	})
}

func TestPathSegmentIndexAtLength(t *testing.T) {
	path := mustParse(t, squarePath)
	cases := map[float64]int{15: 2, -5: 4, 100: 4, 0: 1}
	for length, expected := range cases {
		index, ok := path.SegmentIndexAtLength(length, nil)
		require.True(t, ok)
		assert.Equal(t, expected, index, length)
	}

	index, ok := path.SegmentIndexAt(0, nil)
	require.True(t, ok)
	assert.Equal(t, 1, index)

	segment, ok := path.SegmentAt(1, nil)
	require.True(t, ok)
	assert.Equal(t, SegmentClosepath, segment.Type)

	_, ok = NewPath(Moveto(Point{})).SegmentIndexAtLength(1, nil)
	assert.False(t, ok)
}

func TestPathSubpaths(t *testing.T) {
	subpaths := mustParse(t, "M 0 0 L 10 0 M 20 0 L 30 0 Z").GetSubpaths()
	require.Len(t, subpaths, 2)
	assert.Equal(t, "M 0 0 L 10 0", subpaths[0].String())
	assert.Equal(t, "M 20 0 L 30 0 Z", subpaths[1].String())

	subpaths = NewPath(Lineto(Point{10, 0})).GetSubpaths()
	require.Len(t, subpaths, 1)
	assert.Equal(t, "M 0 0 L 10 0", subpaths[0].String())

	assert.Empty(t, (&Path{}).GetSubpaths())
}

func TestPathToPoints(t *testing.T) {
	points := mustParse(t, "M0 0 L10 0 L10 10 Z").ToPoints(nil)
	assert.Equal(t, [][]Point{{{0, 0}, {10, 0}, {10, 10}, {0, 0}}}, points)

	points = mustParse(t, "M 0 0 L 10 0 M 20 0 L 30 0").ToPoints(nil)
	assert.Equal(t, [][]Point{{{0, 0}, {10, 0}}, {{20, 0}, {30, 0}}}, points)

	polylines := mustParse(t, "M 0 0 C 0 10 10 10 10 0").ToPolylines(&PathOptions{Precision: 1})
	require.Len(t, polylines, 1)
	assert.Greater(t, len(polylines[0].Points), 2)

	assert.Nil(t, (&Path{}).ToPolylines(nil))
}

func TestPathIntersectionWithLine(t *testing.T) {
	path := mustParse(t, squarePath)
	points := path.IntersectionWithLine(Line{Point{5, -5}, Point{5, 15}}, nil)
	assert.ElementsMatch(t, []Point{{5, 0}, {5, 10}}, points)
	assert.Empty(t, path.IntersectionWithLine(Line{Point{20, -5}, Point{20, 15}}, nil))
}

func TestPathConstruction(t *testing.T) {
	path := PathFromPieces(
		Line{Point{0, 0}, Point{10, 0}},
		Curve{Point{10, 0}, Point{10, 5}, Point{10, 5}, Point{10, 10}},
		Line{Point{20, 20}, Point{30, 30}},
	)
	assert.Equal(t, "M 0 0 L 10 0 C 10 5 10 5 10 10 M 20 20 L 30 30", path.String())

	path = PathFromPolyline(NewPolyline(Point{0, 0}, Point{1, 1}, Point{2, 0}))
	assert.Equal(t, "M 0 0 L 1 1 L 2 0", path.String())
	assert.Equal(t, 0, PathFromPolyline(Polyline{}).Len())
}

func TestPathTransforms(t *testing.T) {
	path := mustParse(t, "M 0 0 L 10 0 C 10 5 5 10 0 10 Z")
	clone := path.Clone()
	assert.True(t, clone.Equals(path))

	clone.Translate(1, 2)
	assert.Equal(t, "M 1 2 L 11 2 C 11 7 6 12 1 12 Z", clone.String())
	assert.False(t, clone.Equals(path))
	assert.False(t, path.Equals(nil))

	path.Scale(2, 2, Point{})
	assert.Equal(t, "M 0 0 L 20 0 C 20 10 10 20 0 20 Z", path.String())

	rounded := mustParse(t, "M 0.123 0.456").Round(1)
	assert.Equal(t, "M 0.1 0.5", rounded.String())
}

func TestPathDifferentiable(t *testing.T) {
	assert.True(t, mustParse(t, squarePath).IsDifferentiable())
	assert.False(t, mustParse(t, "M 0 0 L 0 0 Z").IsDifferentiable())
	assert.False(t, NewPath(Lineto(Point{1, 1})).IsDifferentiable())
}
