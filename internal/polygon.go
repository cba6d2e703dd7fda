package internal

import "golang.org/x/exp/slices"

// Polygon is a Polyline that closes back onto its first point. Length and
// position queries walk the closing segment too.
type Polygon struct {
	Points []Point
}

func NewPolygon(points ...Point) Polygon {
	return Polygon{Points: points}
}

func PolygonFromRect(r Rect) Polygon {
	return Polygon{[]Point{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}}
}

func ParsePolygon(s string) Polygon {
	return Polygon{ParsePoints(s)}
}

func (p Polygon) lengthPoints() pointChain {
	return pointChain(p.Points).closed()
}

// Polyline view of the outline, closed.
func (p Polygon) Outline() Polyline {
	return Polyline{p.lengthPoints()}
}

func (p Polygon) Start() (Point, bool) { return pointChain(p.Points).start() }
func (p Polygon) End() (Point, bool)   { return pointChain(p.Points).end() }

func (p Polygon) BBox() (Rect, bool) { return pointChain(p.Points).bbox() }

func (p Polygon) Clone() Polygon {
	return Polygon{slices.Clone(p.Points)}
}

func (p Polygon) ClosestPoint(q Point) (Point, bool) {
	return p.PointAtLength(p.ClosestPointLength(q))
}

func (p Polygon) ClosestPointLength(q Point) float64 {
	return p.lengthPoints().closestPointLength(q)
}

func (p Polygon) ClosestPointNormalizedLength(q Point) float64 {
	return p.lengthPoints().closestPointNormalizedLength(q)
}

func (p Polygon) ClosestPointTangent(q Point) *Line {
	return p.TangentAtLength(p.ClosestPointLength(q))
}

func (p Polygon) ContainsPoint(q Point) bool {
	return pointChain(p.Points).containsPoint(q)
}

func (p Polygon) ConvexHull() Polygon {
	return Polygon{ConvexHull(p.Points)}
}

func (p Polygon) Equals(other Polygon) bool {
	return pointChain(p.Points).equals(other.Points)
}

func (p Polygon) IntersectionWithLine(l Line) []Point {
	return p.lengthPoints().intersectionWithLine(l)
}

func (p Polygon) IsDifferentiable() bool {
	return pointChain(p.Points).isDifferentiable()
}

func (p Polygon) Length() float64 {
	return p.lengthPoints().length()
}

func (p Polygon) PointAt(ratio float64) (Point, bool) {
	return p.lengthPoints().pointAt(ratio)
}

func (p Polygon) PointAtLength(length float64) (Point, bool) {
	return p.lengthPoints().pointAtLength(length)
}

func (p Polygon) TangentAt(ratio float64) *Line {
	return p.lengthPoints().tangentAt(ratio)
}

func (p Polygon) TangentAtLength(length float64) *Line {
	return p.lengthPoints().tangentAtLength(length)
}

func (p Polygon) Round(precision int) Polygon {
	return Polygon{pointChain(p.Points).mapPoints(func(q Point) Point { return q.Round(precision) })}
}

func (p Polygon) Scale(sx, sy float64, origin Point) Polygon {
	return Polygon{pointChain(p.Points).mapPoints(func(q Point) Point { return q.Scale(sx, sy, origin) })}
}

func (p Polygon) Translate(tx, ty float64) Polygon {
	return Polygon{pointChain(p.Points).mapPoints(func(q Point) Point { return q.Offset(tx, ty) })}
}

func (p *Polygon) Simplify(threshold float64) *Polygon {
	p.Points = simplifyPoints(p.Points, threshold)
	return p
}

func (p Polygon) Serialize() string {
	return pointChain(p.Points).serialize()
}

func (p Polygon) String() string {
	return pointChain(p.Points).String()
}
