package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elbow() Polyline {
	return NewPolyline(Point{0, 0}, Point{10, 0}, Point{10, 10})
}

func square() []Point {
	return []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func TestPolylineLength(t *testing.T) {
	assert.Equal(t, 20.0, elbow().Length())
	assert.InDelta(t, 20+math.Sqrt(200), NewPolygon(elbow().Points...).Length(), Tolerance)
	assert.Equal(t, 40.0, NewPolygon(square()...).Length())
	assert.Equal(t, 0.0, Polyline{}.Length())
}

func TestPolylinePointAt(t *testing.T) {
	p := elbow()

	point, ok := p.PointAt(0.5)
	require.True(t, ok)
	assert.Equal(t, Point{10, 0}, point)

	point, _ = p.PointAtLength(-5)
	assert.Equal(t, Point{10, 5}, point)

	point, _ = p.PointAtLength(100)
	assert.Equal(t, Point{10, 10}, point)

	point, _ = p.PointAt(-1)
	assert.Equal(t, Point{0, 0}, point)

	_, ok = Polyline{}.PointAt(0.5)
	assert.False(t, ok)

	// The closing segment of a polygon is walked too.
	point, _ = NewPolygon(square()...).PointAtLength(35)
	assert.Equal(t, Point{0, 5}, point)
}

func TestPolylineTangent(t *testing.T) {
	p := elbow()
	tangent := p.TangentAtLength(5)
	require.NotNil(t, tangent)
	assert.Equal(t, Line{Point{5, 0}, Point{15, 0}}, *tangent)

	tangent = p.TangentAtLength(100)
	require.NotNil(t, tangent)
	assert.Equal(t, Line{Point{10, 10}, Point{10, 20}}, *tangent)

	assert.Nil(t, NewPolyline(Point{1, 1}).TangentAt(0.5))
	assert.Nil(t, NewPolyline(Point{1, 1}, Point{1, 1}).TangentAt(0.5))
}

func TestPolylineClosestPoint(t *testing.T) {
	p := elbow()
	assert.Equal(t, 15.0, p.ClosestPointLength(Point{12, 5}))
	assert.Equal(t, 0.75, p.ClosestPointNormalizedLength(Point{12, 5}))
	closest, ok := p.ClosestPoint(Point{12, 5})
	require.True(t, ok)
	assert.Equal(t, Point{10, 5}, closest)
}

func TestPolylineContainsPoint(t *testing.T) {
	p := NewPolyline(square()...)
	assert.True(t, p.ContainsPoint(Point{5, 5}))
	assert.False(t, p.ContainsPoint(Point{15, 5}))
	assert.True(t, p.ContainsPoint(Point{10, 5}), "boundary")
	assert.True(t, p.ContainsPoint(Point{0, 0}), "vertex")
	assert.False(t, Polyline{}.ContainsPoint(Point{0, 0}))

	// A U shape; the notch is outside.
	u := NewPolygon(Point{0, 0}, Point{30, 0}, Point{30, 30}, Point{20, 30}, Point{20, 10}, Point{10, 10}, Point{10, 30}, Point{0, 30})
	assert.True(t, u.ContainsPoint(Point{5, 20}))
	assert.True(t, u.ContainsPoint(Point{25, 20}))
	assert.False(t, u.ContainsPoint(Point{15, 20}))
	// The ray passes through vertices.
	assert.True(t, u.ContainsPoint(Point{5, 10}))
}

func TestPolylineIntersectionWithLine(t *testing.T) {
	l := Line{Point{-5, 5}, Point{5, 5}}
	assert.Nil(t, NewPolyline(square()...).IntersectionWithLine(l))
	assert.Equal(t, []Point{{0, 5}}, NewPolygon(square()...).IntersectionWithLine(l))
}

func TestPolylineSimplify(t *testing.T) {
	p := NewPolyline(Point{0, 0}, Point{5, 0.1}, Point{10, 0}, Point{10, 10})
	p.Simplify(0.5)
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}}, p.Points)

	again := p.Clone()
	again.Simplify(0.5)
	assert.Equal(t, p.Points, again.Points)

	short := NewPolyline(Point{0, 0}, Point{1, 0})
	short.Simplify(100)
	assert.Len(t, short.Points, 2)
}

func TestPolylineTransforms(t *testing.T) {
	p := elbow()
	assert.Equal(t, []Point{{1, 2}, {11, 2}, {11, 12}}, p.Translate(1, 2).Points)
	assert.Equal(t, []Point{{0, 0}, {20, 0}, {20, 10}}, p.Scale(2, 1, Point{}).Points)
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}}, p.Points, "originals are untouched")
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 0}}, p.Close().Points)
	assert.Equal(t, p.Close().Points, p.Close().Close().Points)
	assert.True(t, p.Equals(elbow()))
	assert.False(t, p.Equals(p.Close()))

	bbox, ok := p.BBox()
	require.True(t, ok)
	assert.Equal(t, Rect{0, 0, 10, 10}, bbox)
	_, ok = Polyline{}.BBox()
	assert.False(t, ok)

	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}, PolylineFromRect(Rect{0, 0, 10, 10}).Points)
}

func TestPolylineDifferentiable(t *testing.T) {
	assert.True(t, elbow().IsDifferentiable())
	assert.False(t, NewPolyline(Point{1, 1}).IsDifferentiable())
	assert.False(t, NewPolyline(Point{1, 1}, Point{1, 1}).IsDifferentiable())
	assert.False(t, Polyline{}.IsDifferentiable())
}

func TestPolylineSerialization(t *testing.T) {
	p := NewPolyline(Point{0, 0}, Point{10.5, -1})
	assert.Equal(t, "0,0 10.5,-1", p.Serialize())
	assert.Equal(t, "0@0,10.5@-1", p.String())
	assert.Equal(t, p.Points, ParsePolyline(p.Serialize()).Points)
}

func TestParsePoints(t *testing.T) {
	assert.Equal(t, []Point{{10, 10}, {20, 20}, {30, 30}}, ParsePoints("10,10 20, 20 30 30"))
	assert.Nil(t, ParsePoints("   "))

	odd := ParsePoints("1,2,3")
	require.Len(t, odd, 2)
	assert.Equal(t, 3.0, odd[1].X)
	assert.True(t, math.IsNaN(odd[1].Y))

	assert.True(t, ParsePoints("a,1")[0].IsNaN())
}
