package internal

import "math"

type Line struct {
	Start Point
	End   Point
}

func NewLine(start, end Point) Line {
	return Line{start, end}
}

// Anything a line can be intersected with.
type LineIntersector interface {
	IntersectionWithLine(l Line) []Point
}

// Angle of incline, in degrees.
func (l Line) Angle() float64 {
	horizontal := Point{l.Start.X + 1, l.Start.Y}
	return l.Start.AngleBetween(l.End, horizontal)
}

func (l Line) BBox() Rect {
	left := math.Min(l.Start.X, l.End.X)
	top := math.Min(l.Start.Y, l.End.Y)
	right := math.Max(l.Start.X, l.End.X)
	bottom := math.Max(l.Start.Y, l.End.Y)
	return Rect{left, top, right - left, bottom - top}
}

var bearings = [8]string{"NE", "E", "SE", "S", "SW", "W", "NW", "N"}

// Bearing is the compass direction of the line, treating x as longitude and
// y as latitude.
func (l Line) Bearing() string {
	lat1 := ToRad(l.Start.Y, false)
	lat2 := ToRad(l.End.Y, false)
	lon1 := l.Start.X
	lon2 := l.End.X
	dLon := ToRad(lon2-lon1, false)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := ToDeg(math.Atan2(y, x))

	index := brng - 22.5
	if index < 0 {
		index += 360
	}
	return bearings[int(index/45)%len(bearings)]
}

func (l Line) ClosestPoint(p Point) Point {
	return l.PointAt(l.ClosestPointNormalizedLength(p))
}

func (l Line) ClosestPointLength(p Point) float64 {
	return l.ClosestPointNormalizedLength(p) * l.Length()
}

// ClosestPointNormalizedLength projects p onto the line, clamped to [0, 1].
// A zero-length line reports 0.
func (l Line) ClosestPointNormalizedLength(p Point) float64 {
	product := l.Vector().Dot(Line{l.Start, p}.Vector())
	t := math.Min(1, math.Max(0, product/l.SquaredLength()))
	if math.IsNaN(t) {
		return 0
	}
	return t
}

func (l Line) ClosestPointTangent(p Point) *Line {
	return l.TangentAt(l.ClosestPointNormalizedLength(p))
}

func (l Line) ContainsPoint(p Point) bool {
	if l.Start.cross(p, l.End) != 0 {
		return false
	}
	length := l.Length()
	if (Line{l.Start, p}).Length() > length {
		return false
	}
	if (Line{p, l.End}).Length() > length {
		return false
	}
	return true
}

func (l Line) DivideAt(ratio float64) (Line, Line) {
	divider := l.PointAt(ratio)
	return Line{l.Start, divider}, Line{divider, l.End}
}

func (l Line) DivideAtLength(length float64) (Line, Line) {
	divider := l.PointAtLength(length)
	return Line{l.Start, divider}, Line{divider, l.End}
}

func (l Line) Equals(other Line) bool {
	return l.Start.Equals(other.Start) && l.End.Equals(other.End)
}

// Intersect returns the points where the line meets shape.
func (l Line) Intersect(shape LineIntersector) []Point {
	if shape == nil {
		return nil
	}
	return shape.IntersectionWithLine(l)
}

// IntersectionWithLine returns the single crossing point of two segments, or
// nil. Parallel segments never intersect; touching endpoints do.
func (l Line) IntersectionWithLine(other Line) []Point {
	dir1 := l.Vector()
	dir2 := other.Vector()
	det := dir1.X*dir2.Y - dir1.Y*dir2.X
	delta := Point{other.Start.X - l.Start.X, other.Start.Y - l.Start.Y}
	alpha := delta.X*dir2.Y - delta.Y*dir2.X
	beta := delta.X*dir1.Y - delta.Y*dir1.X

	if det == 0 || alpha*det < 0 || beta*det < 0 {
		return nil
	}
	if det > 0 {
		if alpha > det || beta > det {
			return nil
		}
	} else {
		if alpha < det || beta < det {
			return nil
		}
	}

	return []Point{{
		l.Start.X + alpha*dir1.X/det,
		l.Start.Y + alpha*dir1.Y/det,
	}}
}

func (l Line) IsDifferentiable() bool {
	return !l.Start.Equals(l.End)
}

func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

func (l Line) Midpoint() Point {
	return Point{(l.Start.X + l.End.X) / 2, (l.Start.Y + l.End.Y) / 2}
}

// Parallel returns the line shifted sideways by distance (to the right of
// the direction of travel for positive values).
func (l Line) Parallel(distance float64) Line {
	if !l.IsDifferentiable() {
		return l
	}
	eRef := l.Start.Rotate(l.End, 270)
	sRef := l.End.Rotate(l.Start, 90)
	return Line{l.Start.Move(sRef, distance), l.End.Move(eRef, distance)}
}

func (l Line) PointAt(t float64) Point {
	if t <= 0 {
		return l.Start
	}
	if t >= 1 {
		return l.End
	}
	return l.Start.Lerp(l.End, t)
}

// PointAtLength measures from the end for negative lengths.
func (l Line) PointAtLength(length float64) Point {
	fromStart := true
	if length < 0 {
		fromStart = false
		length = -length
	}

	lineLength := l.Length()
	if length >= lineLength {
		if fromStart {
			return l.End
		}
		return l.Start
	}
	if fromStart {
		return l.PointAt(length / lineLength)
	}
	return l.PointAt((lineLength - length) / lineLength)
}

// PointOffset is the signed distance of p from the line: positive on the
// right side, negative on the left.
func (l Line) PointOffset(p Point) float64 {
	determinant := (l.End.X-l.Start.X)*(p.Y-l.Start.Y) - (l.End.Y-l.Start.Y)*(p.X-l.Start.X)
	return determinant / l.Length()
}

func (l Line) Rotate(origin Point, angle float64) Line {
	return Line{l.Start.Rotate(origin, angle), l.End.Rotate(origin, angle)}
}

func (l Line) Round(precision int) Line {
	return Line{l.Start.Round(precision), l.End.Round(precision)}
}

func (l Line) Scale(sx, sy float64, origin Point) Line {
	return Line{l.Start.Scale(sx, sy, origin), l.End.Scale(sx, sy, origin)}
}

// SetLength scales the line around its start.
func (l Line) SetLength(length float64) Line {
	current := l.Length()
	if current == 0 || math.IsNaN(current) {
		return l
	}
	factor := length / current
	return l.Scale(factor, factor, l.Start)
}

func (l Line) SquaredLength() float64 {
	return l.Start.SquaredDistance(l.End)
}

// TangentAt is the line itself moved to start at PointAt(t). Nil for a
// zero-length line.
func (l Line) TangentAt(t float64) *Line {
	if !l.IsDifferentiable() {
		return nil
	}
	at := l.PointAt(t)
	tangent := l.Translate(at.X-l.Start.X, at.Y-l.Start.Y)
	return &tangent
}

func (l Line) TangentAtLength(length float64) *Line {
	if !l.IsDifferentiable() {
		return nil
	}
	at := l.PointAtLength(length)
	tangent := l.Translate(at.X-l.Start.X, at.Y-l.Start.Y)
	return &tangent
}

func (l Line) Translate(tx, ty float64) Line {
	return Line{l.Start.Offset(tx, ty), l.End.Offset(tx, ty)}
}

func (l Line) Vector() Point {
	return Point{l.End.X - l.Start.X, l.End.Y - l.Start.Y}
}

func (l Line) String() string {
	return l.Start.String() + " " + l.End.String()
}

func (l Line) Serialize() string {
	return l.Start.Serialize() + " " + l.End.Serialize()
}
