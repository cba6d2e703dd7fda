package internal

import (
	"math"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/exp/slices"
)

// Open chain of points.
type Polyline struct {
	Points []Point
}

func NewPolyline(points ...Point) Polyline {
	return Polyline{Points: points}
}

// Corners of r, clockwise from the top left, closed back onto the top left.
func PolylineFromRect(r Rect) Polyline {
	return Polyline{[]Point{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft(), r.TopLeft()}}
}

var pointListSeparator = regexp.MustCompile(`\b\s*,\s*|,\s*|\s+`)

// ParsePoints reads "x,y x,y ..." (commas and whitespace are interchangeable).
// Empty coordinates read as 0, garbage as NaN and a missing trailing y as NaN.
func ParsePoints(s string) []Point {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	coords := pointListSeparator.Split(s, -1)
	points := make([]Point, 0, (len(coords)+1)/2)
	for i := 0; i < len(coords); i += 2 {
		y := math.NaN()
		if i+1 < len(coords) {
			y = parseCoordinate(coords[i+1])
		}
		points = append(points, Point{parseCoordinate(coords[i]), y})
	}
	return points
}

func ParsePolyline(s string) Polyline {
	return Polyline{ParsePoints(s)}
}

func parseCoordinate(s string) float64 {
	if s == "" {
		return 0
	}
	value, n := strconv.ParseFloat([]byte(s))
	if n != len(s) {
		return math.NaN()
	}
	return value
}

func (p Polyline) lengthPoints() pointChain { return p.Points }

func (p Polyline) Start() (Point, bool) { return pointChain(p.Points).start() }
func (p Polyline) End() (Point, bool)   { return pointChain(p.Points).end() }

func (p Polyline) BBox() (Rect, bool) { return pointChain(p.Points).bbox() }

func (p Polyline) Clone() Polyline {
	return Polyline{slices.Clone(p.Points)}
}

// Close appends the start point unless the polyline already ends there.
func (p Polyline) Close() Polyline {
	return Polyline{pointChain(p.Points).closed()}
}

func (p Polyline) ClosestPoint(q Point) (Point, bool) {
	return p.PointAtLength(p.ClosestPointLength(q))
}

func (p Polyline) ClosestPointLength(q Point) float64 {
	return p.lengthPoints().closestPointLength(q)
}

func (p Polyline) ClosestPointNormalizedLength(q Point) float64 {
	return p.lengthPoints().closestPointNormalizedLength(q)
}

func (p Polyline) ClosestPointTangent(q Point) *Line {
	return p.TangentAtLength(p.ClosestPointLength(q))
}

// ContainsPoint applies the even-odd rule, imagining a closing segment.
// Points on the boundary are contained.
func (p Polyline) ContainsPoint(q Point) bool {
	return pointChain(p.Points).containsPoint(q)
}

func (p Polyline) ConvexHull() Polyline {
	return Polyline{ConvexHull(p.Points)}
}

func (p Polyline) Equals(other Polyline) bool {
	return pointChain(p.Points).equals(other.Points)
}

func (p Polyline) IntersectionWithLine(l Line) []Point {
	return p.lengthPoints().intersectionWithLine(l)
}

func (p Polyline) IsDifferentiable() bool {
	return pointChain(p.Points).isDifferentiable()
}

func (p Polyline) Length() float64 {
	return p.lengthPoints().length()
}

func (p Polyline) PointAt(ratio float64) (Point, bool) {
	return p.lengthPoints().pointAt(ratio)
}

// PointAtLength measures from the end for negative lengths.
func (p Polyline) PointAtLength(length float64) (Point, bool) {
	return p.lengthPoints().pointAtLength(length)
}

func (p Polyline) TangentAt(ratio float64) *Line {
	return p.lengthPoints().tangentAt(ratio)
}

func (p Polyline) TangentAtLength(length float64) *Line {
	return p.lengthPoints().tangentAtLength(length)
}

func (p Polyline) Round(precision int) Polyline {
	return Polyline{pointChain(p.Points).mapPoints(func(q Point) Point { return q.Round(precision) })}
}

func (p Polyline) Scale(sx, sy float64, origin Point) Polyline {
	return Polyline{pointChain(p.Points).mapPoints(func(q Point) Point { return q.Scale(sx, sy, origin) })}
}

func (p Polyline) Translate(tx, ty float64) Polyline {
	return Polyline{pointChain(p.Points).mapPoints(func(q Point) Point { return q.Offset(tx, ty) })}
}

// Simplify removes, in place, every point whose distance to the chord
// between its neighbours is at most threshold.
func (p *Polyline) Simplify(threshold float64) *Polyline {
	p.Points = simplifyPoints(p.Points, threshold)
	return p
}

func (p Polyline) Serialize() string {
	return pointChain(p.Points).serialize()
}

func (p Polyline) String() string {
	return pointChain(p.Points).String()
}

// Shared implementation for polylines and polygons. Polygons hand in their
// closed point list where length matters.
type pointChain []Point

func (c pointChain) start() (Point, bool) {
	if len(c) == 0 {
		return Point{}, false
	}
	return c[0], true
}

func (c pointChain) end() (Point, bool) {
	if len(c) == 0 {
		return Point{}, false
	}
	return c[len(c)-1], true
}

func (c pointChain) closed() []Point {
	points := slices.Clone([]Point(c))
	if len(points) > 0 && !points[0].Equals(points[len(points)-1]) {
		points = append(points, points[0])
	}
	return points
}

func (c pointChain) mapPoints(fn func(Point) Point) []Point {
	if c == nil {
		return nil
	}
	out := make([]Point, len(c))
	for i, p := range c {
		out[i] = fn(p)
	}
	return out
}

func (c pointChain) bbox() (Rect, bool) {
	return RectFromPointUnion(c...)
}

func (c pointChain) closestPointLength(p Point) float64 {
	if len(c) < 2 {
		return 0
	}
	var cpLength float64
	minSqrDistance := math.Inf(1)
	length := 0.0
	for i := 0; i < len(c)-1; i++ {
		line := Line{c[i], c[i+1]}
		lineLength := line.Length()
		cpNormalizedLength := line.ClosestPointNormalizedLength(p)
		cp := line.PointAt(cpNormalizedLength)
		if sqrDistance := cp.SquaredDistance(p); sqrDistance < minSqrDistance {
			minSqrDistance = sqrDistance
			cpLength = length + cpNormalizedLength*lineLength
		}
		length += lineLength
	}
	return cpLength
}

func (c pointChain) closestPointNormalizedLength(p Point) float64 {
	cpLength := c.closestPointLength(p)
	if cpLength == 0 {
		return 0
	}
	length := c.length()
	if length == 0 {
		return 0
	}
	return cpLength / length
}

func (c pointChain) containsPoint(p Point) bool {
	if len(c) == 0 {
		return false
	}

	// The first segment runs from the last point back to the first.
	startIndex := len(c) - 1
	numIntersections := 0
	for endIndex := 0; endIndex < len(c); endIndex++ {
		start := c[startIndex]
		end := c[endIndex]
		if p.Equals(start) {
			return true
		}

		segment := Line{start, end}
		if segment.ContainsPoint(p) {
			return true
		}

		// Horizontal segments on the ray never count. A ray touching a vertex
		// counts for both neighbouring segments, which cancels out.
		if (p.Y <= start.Y && p.Y > end.Y) || (p.Y > start.Y && p.Y <= end.Y) {
			xDifference := math.Max(start.X-p.X, end.X-p.X)
			if xDifference >= 0 {
				ray := Line{p, Point{p.X + xDifference, p.Y}}
				if len(segment.IntersectionWithLine(ray)) > 0 {
					numIntersections++
				}
			}
		}
		startIndex = endIndex
	}
	return numIntersections%2 == 1
}

func (c pointChain) equals(other []Point) bool {
	return slices.EqualFunc([]Point(c), other, Point.Equals)
}

func (c pointChain) intersectionWithLine(l Line) []Point {
	var intersections []Point
	for i := 0; i < len(c)-1; i++ {
		if found := l.IntersectionWithLine(Line{c[i], c[i+1]}); len(found) > 0 {
			intersections = append(intersections, found[0])
		}
	}
	return intersections
}

func (c pointChain) isDifferentiable() bool {
	for i := 0; i < len(c)-1; i++ {
		if (Line{c[i], c[i+1]}).IsDifferentiable() {
			return true
		}
	}
	return false
}

func (c pointChain) length() float64 {
	length := 0.0
	for i := 0; i < len(c)-1; i++ {
		length += c[i].Distance(c[i+1])
	}
	return length
}

func (c pointChain) pointAt(ratio float64) (Point, bool) {
	switch {
	case len(c) == 0:
		return Point{}, false
	case len(c) == 1:
		return c[0], true
	case ratio <= 0:
		return c[0], true
	case ratio >= 1:
		return c[len(c)-1], true
	}
	return c.pointAtLength(c.length() * ratio)
}

func (c pointChain) pointAtLength(length float64) (Point, bool) {
	if len(c) == 0 {
		return Point{}, false
	}
	if len(c) == 1 {
		return c[0], true
	}

	fromStart := length >= 0
	if !fromStart {
		length = -length
	}

	l := 0.0
	n := len(c) - 1
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		a := c[index]
		b := c[index+1]
		d := a.Distance(b)
		if length <= l+d {
			if fromStart {
				return Line{a, b}.PointAtLength(length - l), true
			}
			return Line{a, b}.PointAtLength(-(length - l)), true
		}
		l += d
	}

	if fromStart {
		return c[n], true
	}
	return c[0], true
}

func (c pointChain) tangentAt(ratio float64) *Line {
	if len(c) < 2 {
		return nil
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return c.tangentAtLength(c.length() * ratio)
}

func (c pointChain) tangentAtLength(length float64) *Line {
	if len(c) < 2 {
		return nil
	}

	fromStart := length >= 0
	if !fromStart {
		length = -length
	}

	var lastValidLine *Line
	l := 0.0
	n := len(c) - 1
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		line := Line{c[index], c[index+1]}
		d := line.Length()
		if line.IsDifferentiable() {
			if length <= l+d {
				if fromStart {
					return line.TangentAtLength(length - l)
				}
				return line.TangentAtLength(-(length - l))
			}
			lastValidLine = &line
		}
		l += d
	}

	if lastValidLine != nil {
		if fromStart {
			return lastValidLine.TangentAt(1)
		}
		return lastValidLine.TangentAt(0)
	}
	return nil
}

func simplifyPoints(points []Point, threshold float64) []Point {
	if len(points) < 3 {
		return points
	}
	current := 0
	for current+2 < len(points) {
		first := points[current]
		middle := points[current+1]
		last := points[current+2]
		chord := Line{first, last}
		if chord.ClosestPoint(middle).Distance(middle) <= threshold {
			points = slices.Delete(points, current+1, current+2)
		} else {
			current++
		}
	}
	return points
}

func (c pointChain) serialize() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.Serialize()
	}
	return strings.Join(parts, " ")
}

func (c pointChain) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
