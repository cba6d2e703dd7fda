package internal

import "math"

// Axis-aligned ellipse with center (X, Y) and semi-axes A (horizontal) and B
// (vertical).
type Ellipse struct {
	X float64
	Y float64
	A float64
	B float64
}

func NewEllipse(center Point, a, b float64) Ellipse {
	return Ellipse{center.X, center.Y, a, b}
}

// The ellipse inscribed in r.
func EllipseFromRect(r Rect) Ellipse {
	return NewEllipse(r.Center(), r.Width/2, r.Height/2)
}

func (e Ellipse) BBox() Rect {
	return Rect{e.X - e.A, e.Y - e.B, 2 * e.A, 2 * e.B}
}

func (e Ellipse) Center() Point {
	return Point{e.X, e.Y}
}

func (e Ellipse) ContainsPoint(p Point) bool {
	return e.NormalizedDistance(p) <= 1
}

func (e Ellipse) Equals(other Ellipse) bool {
	return e.X == other.X && e.Y == other.Y && e.A == other.A && e.B == other.B
}

// Inflate grows the axes by 2*dx and 2*dy.
func (e Ellipse) Inflate(dx, dy float64) Ellipse {
	e.A += 2 * dx
	e.B += 2 * dy
	return e
}

// IntersectionWithLine solves for the segment parameter in the space where
// the ellipse is the unit circle. Returns 0, 1 or 2 points.
func (e Ellipse) IntersectionWithLine(l Line) []Point {
	a1 := l.Start
	a2 := l.End
	rx := e.A
	ry := e.B
	dir := l.Vector()
	diff := a1.Sub(e.Center())
	mDir := Point{dir.X / (rx * rx), dir.Y / (ry * ry)}
	mDiff := Point{diff.X / (rx * rx), diff.Y / (ry * ry)}

	a := dir.Dot(mDir)
	b := dir.Dot(mDiff)
	c := diff.Dot(mDiff) - 1.0
	d := b*b - a*c

	var intersections []Point
	if d < 0 {
		return nil
	} else if d > 0 {
		root := math.Sqrt(d)
		ta := (-b - root) / a
		tb := (-b + root) / a
		if (ta < 0 || 1 < ta) && (tb < 0 || 1 < tb) {
			return nil
		}
		if 0 <= ta && ta <= 1 {
			intersections = append(intersections, a1.Lerp(a2, ta))
		}
		if 0 <= tb && tb <= 1 {
			intersections = append(intersections, a1.Lerp(a2, tb))
		}
	} else {
		t := -b / a
		if !(0 <= t && t <= 1) {
			return nil
		}
		intersections = append(intersections, a1.Lerp(a2, t))
	}
	return intersections
}

// IntersectionWithLineFromCenterToPoint finds where the ray from the center
// towards p leaves the ellipse. A non-zero angle treats the ellipse as
// rotated by that many degrees.
func (e Ellipse) IntersectionWithLineFromCenterToPoint(p Point, angle float64) Point {
	center := e.Center()
	if angle != 0 {
		p = p.Rotate(center, angle)
	}
	dx := p.X - e.X
	dy := p.Y - e.Y

	var result Point
	if dx == 0 {
		result = e.BBox().PointNearestToPoint(p)
	} else {
		m := dy / dx
		mSquared := m * m
		aSquared := e.A * e.A
		bSquared := e.B * e.B
		x := math.Sqrt(1 / ((1 / aSquared) + (mSquared / bSquared)))
		if dx < 0 {
			x = -x
		}
		y := m * x
		result = Point{e.X + x, e.Y + y}
	}

	if angle != 0 {
		return result.Rotate(center, -angle)
	}
	return result
}

// NormalizedDistance is below 1 inside, exactly 1 on the boundary and above
// 1 outside.
func (e Ellipse) NormalizedDistance(p Point) float64 {
	return ((p.X-e.X)*(p.X-e.X))/(e.A*e.A) + ((p.Y-e.Y)*(p.Y-e.Y))/(e.B*e.B)
}

func (e Ellipse) Round(precision int) Ellipse {
	return Ellipse{
		roundTo(e.X, precision),
		roundTo(e.Y, precision),
		roundTo(e.A, precision),
		roundTo(e.B, precision),
	}
}

// TangentTheta is the angle between the x axis and the tangent at p, which
// must lie on the boundary.
func (e Ellipse) TangentTheta(p Point) float64 {
	const refPointDelta = 30

	x0 := p.X
	y0 := p.Y
	a := e.A
	b := e.B
	center := e.BBox().Center()
	m := center.X
	n := center.Y

	q1 := x0 > center.X+a/2
	q3 := x0 < center.X-a/2

	var x, y float64
	if q1 || q3 {
		if x0 > center.X {
			y = y0 - refPointDelta
		} else {
			y = y0 + refPointDelta
		}
		x = (a * a / (x0 - m)) - (a*a*(y0-n)*(y-n))/(b*b*(x0-m)) + m
	} else {
		if y0 > center.Y {
			x = x0 + refPointDelta
		} else {
			x = x0 - refPointDelta
		}
		y = (b * b / (y0 - n)) - (b*b*(x0-m)*(x-m))/(a*a*(y0-n)) + n
	}
	return Point{x, y}.Theta(p)
}

func (e Ellipse) String() string {
	return e.Center().String() + " " + formatNumber(e.A) + " " + formatNumber(e.B)
}
