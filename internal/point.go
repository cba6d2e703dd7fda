package internal

import (
	"math"
	"strconv"
	"strings"
)

// Points are values; every transforming method returns a new point.
//
// The y axis points down, as on a screen. Theta is measured as if it pointed
// up, so angles grow counterclockwise as seen on screen, and Rotate by a
// positive angle turns the same way.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// ParsePoint accepts "x@y" or "x y". Unparseable coordinates become NaN.
func ParsePoint(s string) Point {
	sep := " "
	if strings.Contains(s, "@") {
		sep = "@"
	}
	parts := strings.SplitN(s, sep, 2)
	x := parseNumber(parts[0])
	y := math.NaN()
	if len(parts) > 1 {
		y = parseNumber(parts[1])
	}
	return Point{x, y}
}

// FromPolar builds a point at distance from origin in the direction of angle
// (radians, measured counterclockwise on screen).
func FromPolar(distance, angle float64, origin Point) Point {
	x := math.Abs(distance * math.Cos(angle))
	y := math.Abs(distance * math.Sin(angle))
	deg := NormalizeAngle(ToDeg(angle))

	if deg < 90 {
		y = -y
	} else if deg < 180 {
		x = -x
		y = -y
	} else if deg < 270 {
		x = -x
	}

	return Point{origin.X + x, origin.Y + y}
}

func RandomPoint(x1, x2, y1, y2 float64) Point {
	return Point{Random(x1, x2), Random(y1, y2)}
}

// ChooseClosest returns the candidate nearest to p, or false if there are none.
func (p Point) ChooseClosest(points []Point) (Point, bool) {
	if len(points) == 1 {
		return points[0], true
	}
	var closest Point
	found := false
	minSqrDistance := math.Inf(1)
	for _, candidate := range points {
		sqrDistance := p.SquaredDistance(candidate)
		if sqrDistance < minSqrDistance {
			closest = candidate
			minSqrDistance = sqrDistance
			found = true
		}
	}
	return closest, found
}

// AdhereToRect clamps the point onto the boundary of r if it lies outside.
func (p Point) AdhereToRect(r Rect) Point {
	if r.ContainsPoint(p) {
		return p
	}
	return Point{
		math.Min(math.Max(p.X, r.X), r.X+r.Width),
		math.Min(math.Max(p.Y, r.Y), r.Y+r.Height),
	}
}

// AngleBetween is the angle from the ray p->p1 to the ray p->p2, in [0, 360).
// NaN if either point coincides with p.
func (p Point) AngleBetween(p1, p2 Point) float64 {
	if p.Equals(p1) || p.Equals(p2) {
		return math.NaN()
	}
	angle := p.Theta(p2) - p.Theta(p1)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func (p Point) Bearing(other Point) string {
	return Line{p, other}.Bearing()
}

// ChangeInAngle measures how much the angle towards ref changed when the
// point moved by (dx, dy).
func (p Point) ChangeInAngle(dx, dy float64, ref Point) float64 {
	return p.Offset(-dx, -dy).Theta(ref) - p.Theta(ref)
}

// Cross is the cross product of p->p1 and p->p2. Positive means a clockwise
// turn on screen. NaN if either point is missing.
func (p Point) Cross(p1, p2 *Point) float64 {
	if p1 == nil || p2 == nil {
		return math.NaN()
	}
	return (p2.X-p.X)*(p1.Y-p.Y) - (p2.Y-p.Y)*(p1.X-p.X)
}

func (p Point) cross(p1, p2 Point) float64 {
	return p.Cross(&p1, &p2)
}

func (p Point) Difference(dx, dy float64) Point {
	return Point{p.X - dx, p.Y - dy}
}

func (p Point) Sub(other Point) Point {
	return p.Difference(other.X, other.Y)
}

func (p Point) Distance(other Point) float64 {
	return math.Sqrt(p.SquaredDistance(other))
}

func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Equals is exact. Routing relies on exact equality of grid-snapped points.
func (p Point) Equals(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Near compares both coordinates within Tolerance.
func (p Point) Near(other Point) bool {
	return Equal(p.X, other.X) && Equal(p.Y, other.Y)
}

func (p Point) Lerp(other Point, t float64) Point {
	return Point{Lerp(p.X, other.X, t), Lerp(p.Y, other.Y, t)}
}

// Magnitude of the vector from the origin. A zero vector reports 0.01 so it
// can still be normalized.
func (p Point) Magnitude() float64 {
	m := math.Sqrt(p.X*p.X + p.Y*p.Y)
	if m == 0 || math.IsNaN(m) {
		return 0.01
	}
	return m
}

func (p Point) ManhattanDistance(other Point) float64 {
	return math.Abs(other.X-p.X) + math.Abs(other.Y-p.Y)
}

// Move p along the line from ref through p by distance.
func (p Point) Move(ref Point, distance float64) Point {
	theta := ToRad(ref.Theta(p), false)
	return p.Offset(math.Cos(theta)*distance, -math.Sin(theta)*distance)
}

// Normalize scales the vector to length (1 when length is 0).
func (p Point) Normalize(length float64) Point {
	if length == 0 {
		length = 1
	}
	scale := length / p.Magnitude()
	return p.Scale(scale, scale, Point{})
}

func (p Point) Offset(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

func (p Point) Translate(dx, dy float64) Point {
	return p.Offset(dx, dy)
}

// Reflection of p with ref as the center of inversion.
func (p Point) Reflection(ref Point) Point {
	return ref.Move(p, p.Distance(ref))
}

// Rotate around origin by angle degrees. The point's Theta from origin grows
// by angle.
func (p Point) Rotate(origin Point, angle float64) Point {
	if angle == 0 {
		return p
	}
	rad := ToRad(NormalizeAngle(-angle), false)
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Point{
		cos*(p.X-origin.X) - sin*(p.Y-origin.Y) + origin.X,
		sin*(p.X-origin.X) + cos*(p.Y-origin.Y) + origin.Y,
	}
}

func (p Point) Round(precision int) Point {
	return Point{roundTo(p.X, precision), roundTo(p.Y, precision)}
}

func (p Point) Scale(sx, sy float64, origin Point) Point {
	return Point{
		origin.X + sx*(p.X-origin.X),
		origin.Y + sy*(p.Y-origin.Y),
	}
}

// SnapToGrid snaps to gx horizontally and gy vertically. A zero gy reuses gx.
func (p Point) SnapToGrid(gx, gy float64) Point {
	if gy == 0 {
		gy = gx
	}
	return Point{SnapToGrid(p.X, gx), SnapToGrid(p.Y, gy)}
}

func (p Point) SquaredDistance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Theta is the angle in degrees, in [0, 360), between the ray from p to
// other and the positive x axis, with the y axis flipped to point up.
func (p Point) Theta(other Point) float64 {
	y := -(other.Y - p.Y)
	x := other.X - p.X
	rad := math.Atan2(y, x)
	if rad < 0 {
		rad = 2*math.Pi + rad
	}
	if rad == 0 {
		// Atan2 keeps the sign of a zero y.
		return 0
	}
	return 180 * rad / math.Pi
}

// ToPolar converts to (r, angle in radians) around origin.
func (p Point) ToPolar(origin Point) Point {
	return Point{
		math.Sqrt((p.X-origin.X)*(p.X-origin.X) + (p.Y-origin.Y)*(p.Y-origin.Y)),
		ToRad(origin.Theta(p), false),
	}
}

// VectorAngle is the angle between the vectors 0->p and 0->other.
func (p Point) VectorAngle(other Point) float64 {
	return Point{}.AngleBetween(p, other)
}

func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// String is the "x@y" form also used as a map key.
func (p Point) String() string {
	return formatNumber(p.X) + "@" + formatNumber(p.Y)
}

func (p Point) Serialize() string {
	return formatNumber(p.X) + "," + formatNumber(p.Y)
}

func formatNumber(v float64) string {
	if v == 0 {
		// No "-0" in serialized output.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
