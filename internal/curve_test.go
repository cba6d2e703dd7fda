package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arch() Curve {
	return NewCurve(Point{0, 0}, Point{0, 10}, Point{10, 10}, Point{10, 0})
}

func straightCurve() Curve {
	return NewCurve(Point{0, 0}, Point{10, 0}, Point{20, 0}, Point{30, 0})
}

func TestCurveThroughPoints(t *testing.T) {
	t.Run("too few knots", func(t *testing.T) {
		err := Catch(func() { CurveThroughPoints([]Point{{0, 0}}) })
		assert.EqualError(t, err, "At least 2 points are required")
	})

	t.Run("two knots make a line", func(t *testing.T) {
		curves := CurveThroughPoints([]Point{{0, 0}, {3, 3}})
		require.Len(t, curves, 1)
		assert.Equal(t, Curve{Point{0, 0}, Point{1, 1}, Point{2, 2}, Point{3, 3}}, curves[0])
	})

	t.Run("smooth through every knot", func(t *testing.T) {
		knots := []Point{{0, 0}, {10, 20}, {30, 10}, {40, 40}}
		curves := CurveThroughPoints(knots)
		require.Len(t, curves, 3)
		for i, curve := range curves {
			assert.Equal(t, knots[i], curve.Start)
			assert.Equal(t, knots[i+1], curve.End)
		}
		for i := 0; i < len(curves)-1; i++ {
			joint := knots[i+1]
			incoming := curves[i].ControlPoint2
			outgoing := curves[i+1].ControlPoint1
			assertPointInDelta(t, Point{2 * joint.X, 2 * joint.Y}, Point{incoming.X + outgoing.X, incoming.Y + outgoing.Y})
		}
	})
}

func TestCurvePointAtT(t *testing.T) {
	c := arch()
	assert.Equal(t, Point{5, 7.5}, c.PointAtT(0.5))
	assert.Equal(t, c.Start, c.PointAtT(-1))
	assert.Equal(t, c.End, c.PointAtT(2))

	first, second := c.DivideAtT(0.5)
	assert.Equal(t, Point{5, 7.5}, first.End)
	assert.Equal(t, Point{5, 7.5}, second.Start)

	head, tail := c.DivideAtT(0)
	assert.Equal(t, Curve{c.Start, c.Start, c.Start, c.Start}, head)
	assert.Equal(t, c, tail)
}

func TestCurveBBox(t *testing.T) {
	assertRectInDelta(t, Rect{0, 0, 10, 7.5}, arch().BBox())

	c := NewCurve(Point{0, 0}, Point{-20, 40}, Point{60, -30}, Point{30, 30})
	bbox := c.BBox().Inflate(Tolerance, Tolerance)
	for i := 0; i <= 100; i++ {
		p := c.PointAtT(float64(i) / 100)
		assert.True(t, bbox.ContainsPoint(p), "%s outside %s", p, bbox)
	}
}

func TestCurveLength(t *testing.T) {
	assert.InDelta(t, 30.0, straightCurve().Length(nil), Tolerance)

	c := arch()
	precise := c.Length(&CurveOptions{Precision: 5})
	assert.Less(t, math.Abs(c.Length(nil)-precise)/precise, 1e-3)
	assert.Equal(t, c.EndpointDistance(), c.Length(&CurveOptions{Precision: 0}))

	subdivisions := c.GetSubdivisions(DefaultPrecision)
	assert.Equal(t, c.Length(nil), c.Length(&CurveOptions{Precision: DefaultPrecision, Subdivisions: subdivisions}))

	assert.Equal(t, 0.0, c.LengthAtT(0, nil))
	assert.InDelta(t, 30.0, straightCurve().LengthAtT(1, nil), Tolerance)
	assert.InDelta(t, 15.0, straightCurve().LengthAtT(0.5, nil), Tolerance)
}

func TestCurveSubdivisions(t *testing.T) {
	// A straight curve is split 2*precision times.
	assert.Len(t, straightCurve().GetSubdivisions(3), 64)
	assert.Len(t, straightCurve().GetSubdivisions(0), 1)

	point := NewCurve(Point{1, 1}, Point{1, 1}, Point{1, 1}, Point{1, 1})
	assert.False(t, point.IsDifferentiable())
	assert.Len(t, point.GetSubdivisions(3), 1)
	assert.Nil(t, point.TangentAtT(0.5))
	assert.Nil(t, point.TangentAt(0.5, nil))
}

func TestCurveAtLength(t *testing.T) {
	c := straightCurve()
	assertPointNear(t, Point{15, 0}, c.PointAtLength(15, nil), 0.03)
	assertPointNear(t, Point{20, 0}, c.PointAtLength(-10, nil), 0.03)
	assertPointNear(t, Point{15, 0}, c.PointAt(0.5, nil), 0.03)
	assert.Equal(t, c.End, c.PointAtLength(100, nil))
	assert.Equal(t, 1.0, c.TAtLength(100, nil))
	assert.Equal(t, 0.0, c.TAtLength(-100, nil))
	assert.Equal(t, 0.0, c.TAt(-1, nil))
	assert.Equal(t, 1.0, c.TAt(2, nil))

	first, second := c.DivideAtLength(10, nil)
	assertPointNear(t, Point{10, 0}, first.End, 0.03)
	assert.Equal(t, first.End, second.Start)

	first, _ = c.DivideAt(0.5, nil)
	assertPointNear(t, Point{15, 0}, first.End, 0.03)
}

func TestCurveClosestPoint(t *testing.T) {
	c := straightCurve()
	assert.InDelta(t, 0.5, c.ClosestPointT(Point{15, 5}, nil), 1e-2)
	assertPointNear(t, Point{15, 0}, c.ClosestPoint(Point{15, 5}, nil), 0.05)
	assert.InDelta(t, 15.0, c.ClosestPointLength(Point{15, 5}, nil), 0.05)
	assert.InDelta(t, 0.5, c.ClosestPointNormalizedLength(Point{15, 5}, nil), 1e-2)
	assert.Equal(t, 0.0, c.ClosestPointT(Point{-10, 0}, nil))
	assert.Equal(t, 1.0, c.ClosestPointT(Point{50, 0}, nil))
}

func TestCurveTangent(t *testing.T) {
	c := straightCurve()
	tangent := c.TangentAtT(0)
	require.NotNil(t, tangent)
	assert.Equal(t, Line{Point{0, 0}, Point{10, 0}}, *tangent)

	tangent = arch().TangentAtT(0.5)
	require.NotNil(t, tangent)
	assert.Equal(t, Point{5, 7.5}, tangent.Start)
	assert.Equal(t, 0.0, tangent.Vector().Y)
	assert.Greater(t, tangent.Vector().X, 0.0)
}

func TestCurveFlattening(t *testing.T) {
	c := arch()
	assert.Equal(t, []Point{c.Start, c.End}, c.ToPoints(&CurveOptions{Precision: 0}))

	points := c.ToPoints(nil)
	assert.Equal(t, c.Start, points[0])
	assert.Equal(t, c.End, points[len(points)-1])
	assert.True(t, c.ContainsPoint(Point{5, 5}, nil))
	assert.False(t, c.ContainsPoint(Point{5, 9}, nil))
}

func TestCurveTransforms(t *testing.T) {
	c := arch()
	assert.Equal(t, NewCurve(Point{1, 2}, Point{1, 12}, Point{11, 12}, Point{11, 2}), c.Translate(1, 2))
	assert.Equal(t, NewCurve(Point{0, 0}, Point{0, 20}, Point{20, 20}, Point{20, 0}), c.Scale(2, 2, Point{}))
	assert.True(t, c.Equals(arch()))
	assert.False(t, c.Equals(c.Translate(0, 1)))
	assert.Equal(t, "0@0 0@10 10@10 10@0", c.String())
}

func assertPointNear(t *testing.T, expected, actual Point, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x of %s", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "y of %s", actual)
}
