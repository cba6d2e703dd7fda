package internal

import (
	"fmt"
	"math"
)

// Shape is anything Exists can be asked about.
type Shape interface {
	fmt.Stringer
	isShape()
}

func (Line) isShape()     {}
func (Ellipse) isShape()  {}
func (Rect) isShape()     {}
func (Polyline) isShape() {}
func (Polygon) isShape()  {}
func (*Path) isShape()    {}
func (Curve) isShape()    {}

// Exists reports whether two shapes touch or overlap. Closed shapes count
// their interior, so a shape lying wholly inside a polygon intersects it.
// Pairs without a test panic with a GeometryError.
func Exists(shape1, shape2 Shape) bool {
	return ExistsWithOptions(shape1, shape2, nil, nil)
}

// ExistsWithOptions passes flattening options to the paths among the two
// shapes.
func ExistsWithOptions(shape1, shape2 Shape, opt1, opt2 *PathOptions) bool {
	switch s1 := shape1.(type) {
	case Line:
		if s2, ok := shape2.(Line); ok {
			return LineWithLine(s1, s2)
		}
	case Ellipse:
		switch s2 := shape2.(type) {
		case Line:
			return EllipseWithLine(s1, s2)
		case Ellipse:
			return EllipseWithEllipse(s1, s2)
		}
	case Rect:
		switch s2 := shape2.(type) {
		case Line:
			return RectWithLine(s1, s2)
		case Ellipse:
			return RectWithEllipse(s1, s2)
		case Rect:
			return RectWithRect(s1, s2)
		}
	case Polyline:
		switch s2 := shape2.(type) {
		case Line:
			return PolylineWithLine(s1, s2)
		case Ellipse:
			return PolylineWithEllipse(s1, s2)
		case Rect:
			return PolylineWithRect(s1, s2)
		case Polyline:
			return PolylineWithPolyline(s1, s2)
		}
	case Polygon:
		switch s2 := shape2.(type) {
		case Line:
			return PolygonWithLine(s1, s2)
		case Ellipse:
			return PolygonWithEllipse(s1, s2)
		case Rect:
			return PolygonWithRect(s1, s2)
		case Polyline:
			return PolygonWithPolyline(s1, s2)
		case Polygon:
			return PolygonWithPolygon(s1, s2)
		}
	case *Path:
		switch s2 := shape2.(type) {
		case Line:
			return PathWithLine(s1, s2, opt1)
		case Ellipse:
			return PathWithEllipse(s1, s2, opt1)
		case Rect:
			return PathWithRect(s1, s2, opt1)
		case Polyline:
			return PathWithPolyline(s1, s2, opt1)
		case Polygon:
			return PathWithPolygon(s1, s2, opt1)
		case *Path:
			return PathWithPath(s1, s2, opt1, opt2)
		}
	}

	switch shape2.(type) {
	case Ellipse, Rect, Polyline, Polygon, *Path:
		return ExistsWithOptions(shape2, shape1, opt2, opt1)
	}
	fatalf("The intersection for %v and %v could not be found.", shape1, shape2)
	return false
}

// LineWithLine includes touching endpoints.
func LineWithLine(line1, line2 Line) bool {
	s1x := line1.End.X - line1.Start.X
	s1y := line1.End.Y - line1.Start.Y
	s2x := line2.End.X - line2.Start.X
	s2y := line2.End.Y - line2.Start.Y
	s3x := line1.Start.X - line2.Start.X
	s3y := line1.Start.Y - line2.Start.Y
	p := s1x*s2y - s2x*s1y
	s := (s1x*s3y - s1y*s3x) / p
	t := (s2x*s3y - s2y*s3x) / p
	return s >= 0 && s <= 1 && t >= 0 && t <= 1
}

// EllipseWithLine tests the boundary only: a line wholly inside the
// ellipse does not intersect it.
func EllipseWithLine(ellipse Ellipse, line Line) bool {
	x1 := line.Start.X - ellipse.X
	x2 := line.End.X - ellipse.X
	y1 := line.Start.Y - ellipse.Y
	y2 := line.End.Y - ellipse.Y
	rx2 := ellipse.A * ellipse.A
	ry2 := ellipse.B * ellipse.B
	dx := x2 - x1
	dy := y2 - y1
	a := dx*dx/rx2 + dy*dy/ry2
	b := 2*x1*dx/rx2 + 2*y1*dy/ry2
	c := x1*x1/rx2 + y1*y1/ry2 - 1
	d := b*b - 4*a*c
	inUnit := func(t float64) bool { return t >= 0 && t <= 1 }
	switch {
	case d == 0:
		return inUnit(-b / 2 / a)
	case d > 0:
		sqrt := math.Sqrt(d)
		return inUnit((-b+sqrt)/2/a) || inUnit((-b-sqrt)/2/a)
	}
	return false
}

func EllipseWithEllipse(ellipse1, ellipse2 Ellipse) bool {
	return ellipsesIntersect(ellipse1, 0, ellipse2, 0)
}

func RectWithLine(rect Rect, line Line) bool {
	start, end := line.Start, line.End
	if (start.X > rect.X+rect.Width && end.X > rect.X+rect.Width) ||
		(start.X < rect.X && end.X < rect.X) ||
		(start.Y > rect.Y+rect.Height && end.Y > rect.Y+rect.Height) ||
		(start.Y < rect.Y && end.Y < rect.Y) {
		return false
	}
	if rect.ContainsPoint(start) || rect.ContainsPoint(end) {
		return true
	}
	for _, side := range rect.sides() {
		if LineWithLine(side, line) {
			return true
		}
	}
	return false
}

func RectWithEllipse(rect Rect, ellipse Ellipse) bool {
	if !RectWithRect(rect, RectFromEllipse(ellipse)) {
		return false
	}
	return PolygonWithEllipse(PolygonFromRect(rect), ellipse)
}

// RectWithRect needs a positive overlap; rectangles sharing only an edge do
// not intersect.
func RectWithRect(rect1, rect2 Rect) bool {
	return rect1.X < rect2.X+rect2.Width &&
		rect1.X+rect1.Width > rect2.X &&
		rect1.Y < rect2.Y+rect2.Height &&
		rect1.Y+rect1.Height > rect2.Y
}

func PolylineWithLine(polyline Polyline, line Line) bool {
	return pointsWithLine(polyline.Points, line, false)
}

func PolylineWithEllipse(polyline Polyline, ellipse Ellipse) bool {
	return pointsWithEllipse(polyline.Points, ellipse, false)
}

func PolylineWithRect(polyline Polyline, rect Rect) bool {
	return pointsWithPolygon(polyline.Points, PolygonFromRect(rect).Points, false)
}

func PolylineWithPolyline(polyline1, polyline2 Polyline) bool {
	return pointsWithPoints(polyline1.Points, polyline2.Points, false)
}

func PolygonWithLine(polygon Polygon, line Line) bool {
	return pointsWithLine(polygon.Points, line, true)
}

func PolygonWithEllipse(polygon Polygon, ellipse Ellipse) bool {
	return pointsWithEllipse(polygon.Points, ellipse, true)
}

func PolygonWithRect(polygon Polygon, rect Rect) bool {
	return pointsWithPolygon(polygon.Points, PolygonFromRect(rect).Points, true)
}

func PolygonWithPolyline(polygon Polygon, polyline Polyline) bool {
	return pointsWithPoints(polygon.Points, polyline.Points, true)
}

func PolygonWithPolygon(polygon1, polygon2 Polygon) bool {
	return pointsWithPolygon(polygon1.Points, polygon2.Points, true)
}

// Each subpath is flattened; one ending in a Closepath is tested as a
// polygon.
func (p *Path) flattenedSubpaths(opt *PathOptions, fn func(points []Point, closed bool) bool) bool {
	for _, subpath := range p.GetSubpaths() {
		polylines := subpath.ToPolylines(opt)
		if len(polylines) == 0 {
			continue
		}
		last := subpath.segments[len(subpath.segments)-1]
		if fn(polylines[0].Points, last.Type == SegmentClosepath) {
			return true
		}
	}
	return false
}

func PathWithLine(path *Path, line Line, opt *PathOptions) bool {
	return path.flattenedSubpaths(opt, func(points []Point, closed bool) bool {
		return pointsWithLine(points, line, closed)
	})
}

func PathWithEllipse(path *Path, ellipse Ellipse, opt *PathOptions) bool {
	return path.flattenedSubpaths(opt, func(points []Point, closed bool) bool {
		return pointsWithEllipse(points, ellipse, closed)
	})
}

func PathWithRect(path *Path, rect Rect, opt *PathOptions) bool {
	return PathWithPolygon(path, PolygonFromRect(rect), opt)
}

func PathWithPolyline(path *Path, polyline Polyline, opt *PathOptions) bool {
	return pathWithPoints(path, polyline.Points, opt, false)
}

func PathWithPolygon(path *Path, polygon Polygon, opt *PathOptions) bool {
	return pathWithPoints(path, polygon.Points, opt, true)
}

func PathWithPath(path1, path2 *Path, opt1, opt2 *PathOptions) bool {
	return path1.flattenedSubpaths(opt1, func(points []Point, closed bool) bool {
		return pathWithPoints(path2, points, opt2, closed)
	})
}

func pathWithPoints(path *Path, points []Point, opt *PathOptions, interior bool) bool {
	return path.flattenedSubpaths(opt, func(subpathPoints []Point, closed bool) bool {
		if closed {
			return pointsWithPolygon(points, subpathPoints, interior)
		}
		return pointsWithPoints(points, subpathPoints, interior)
	})
}

// With interior set the chain is a polygon: it is closed, and a line
// starting inside it already counts.
func pointsWithLine(points []Point, line Line, interior bool) bool {
	chain := points
	if interior {
		if pointChain(points).containsPoint(line.Start) {
			return true
		}
		chain = pointChain(points).closed()
	}
	for i := 0; i < len(chain)-1; i++ {
		if LineWithLine(line, Line{chain[i], chain[i+1]}) {
			return true
		}
	}
	return false
}

func pointsWithEllipse(points []Point, ellipse Ellipse, interior bool) bool {
	if len(points) == 0 {
		return false
	}
	if ellipse.ContainsPoint(points[0]) {
		return true
	}
	chain := points
	if interior {
		if pointChain(points).containsPoint(ellipse.Center()) {
			return true
		}
		chain = pointChain(points).closed()
	}
	for i := 0; i < len(chain)-1; i++ {
		if EllipseWithLine(ellipse, Line{chain[i], chain[i+1]}) {
			return true
		}
	}
	return false
}

func pointsWithPoints(points, other []Point, interior bool) bool {
	chain := points
	if interior {
		if len(other) > 0 && pointChain(points).containsPoint(other[0]) {
			return true
		}
		chain = pointChain(points).closed()
	}
	for i := 0; i < len(other)-1; i++ {
		if pointsWithLine(chain, Line{other[i], other[i+1]}, false) {
			return true
		}
	}
	return false
}

func pointsWithPolygon(points, polygon []Point, interior bool) bool {
	if len(points) > 0 && pointChain(polygon).containsPoint(points[0]) {
		return true
	}
	return pointsWithPoints(points, pointChain(polygon).closed(), interior)
}

// Separation test for two conics rotated by w1 and w2, built from the
// characteristic polynomial of the pencil of their matrices.
func ellipsesIntersect(e1 Ellipse, w1 float64, e2 Ellipse, w2 float64) bool {
	sinW1, cosW1 := math.Sincos(w1)
	sinW2, cosW2 := math.Sincos(w2)
	sinW1s, cosW1s, sinCos1 := sinW1*sinW1, cosW1*cosW1, sinW1*cosW1
	sinW2s, cosW2s, sinCos2 := sinW2*sinW2, cosW2*cosW2, sinW2*cosW2
	a1s, b1s := e1.A*e1.A, e1.B*e1.B
	a2s, b2s := e2.A*e2.A, e2.B*e2.B

	A1 := a1s*sinW1s + b1s*cosW1s
	A2 := a2s*sinW2s + b2s*cosW2s
	B1 := a1s*cosW1s + b1s*sinW1s
	B2 := a2s*cosW2s + b2s*sinW2s
	C1 := 2 * (b1s - a1s) * sinCos1
	C2 := 2 * (b2s - a2s) * sinCos2
	D1 := -2*A1*e1.X - C1*e1.Y
	D2 := -2*A2*e2.X - C2*e2.Y
	E1 := -C1*e1.X - 2*B1*e1.Y
	E2 := -C2*e2.X - 2*B2*e2.Y
	F1 := A1*e1.X*e1.X + B1*e1.Y*e1.Y + C1*e1.X*e1.Y - a1s*b1s
	F2 := A2*e2.X*e2.X + B2*e2.Y*e2.Y + C2*e2.X*e2.Y - a2s*b2s

	C1, C2 = C1/2, C2/2
	D1, D2 = D1/2, D2/2
	E1, E2 = E1/2, E2/2

	const third = 0.33333333
	l3 := det3(A1, C1, D1, C1, B1, E1, D1, E1, F1)
	l0 := det3(A2, C2, D2, C2, B2, E2, D2, E2, F2)
	l2 := third * (det3(A2, C1, D1, C2, B1, E1, D2, E1, F1) +
		det3(A1, C2, D1, C1, B2, E1, D1, E2, F1) +
		det3(A1, C1, D2, C1, B1, E2, D1, E1, F2))
	l1 := third * (det3(A1, C2, D2, C1, B2, E2, D1, E2, F2) +
		det3(A2, C1, D2, C2, B1, E2, D2, E1, F2) +
		det3(A2, C2, D1, C2, B2, E1, D2, E2, F1))

	delta1 := det2(l3, l2, l2, l1)
	delta2 := det2(l3, l1, l2, l0)
	delta3 := det2(l2, l1, l1, l0)
	dP := det2(2*delta1, delta2, delta2, 2*delta3)

	return !(dP > 0 && (l1 > 0 || l2 > 0))
}

// Row-major determinants.
func det2(a, b, c, d float64) float64 {
	return a*d - b*c
}

func det3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*e*i - a*f*h - b*d*i + b*f*g + c*d*h - c*e*g
}
