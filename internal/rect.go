package internal

import "math"

// Axis-aligned rectangle. Width and Height may be negative until Normalize.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rect {
	return Rect{x, y, width, height}
}

func RectFromEllipse(e Ellipse) Rect {
	return e.BBox()
}

// RectFromPointUnion is the smallest rect covering all points. False when
// there are no points.
func RectFromPointUnion(points ...Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}, true
}

func RectFromRectUnion(rects ...Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		minX = math.Min(minX, r.X)
		maxX = math.Max(maxX, r.X+r.Width)
		minY = math.Min(minY, r.Y)
		maxY = math.Max(maxY, r.Y+r.Height)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}, true
}

// BBox is the bounding box of the rect rotated by angle degrees around its
// center.
func (r Rect) BBox(angle float64) Rect {
	return r.RotateAroundCenter(angle)
}

func (r Rect) RotateAroundCenter(angle float64) Rect {
	if angle == 0 || math.IsNaN(angle) {
		return r
	}
	theta := ToRad(angle, false)
	st := math.Abs(math.Sin(theta))
	ct := math.Abs(math.Cos(theta))
	w := r.Width*ct + r.Height*st
	h := r.Width*st + r.Height*ct
	return Rect{
		r.X + (r.Width-w)/2,
		r.Y + (r.Height-h)/2,
		w,
		h,
	}
}

func (r Rect) Origin() Point       { return Point{r.X, r.Y} }
func (r Rect) TopLeft() Point      { return r.Origin() }
func (r Rect) TopRight() Point     { return Point{r.X + r.Width, r.Y} }
func (r Rect) Corner() Point       { return Point{r.X + r.Width, r.Y + r.Height} }
func (r Rect) BottomRight() Point  { return r.Corner() }
func (r Rect) BottomLeft() Point   { return Point{r.X, r.Y + r.Height} }
func (r Rect) Center() Point       { return Point{r.X + r.Width/2, r.Y + r.Height/2} }
func (r Rect) TopMiddle() Point    { return Point{r.X + r.Width/2, r.Y} }
func (r Rect) RightMiddle() Point  { return Point{r.X + r.Width, r.Y + r.Height/2} }
func (r Rect) BottomMiddle() Point { return Point{r.X + r.Width/2, r.Y + r.Height} }
func (r Rect) LeftMiddle() Point   { return Point{r.X, r.Y + r.Height/2} }

func (r Rect) TopLine() Line    { return Line{r.TopLeft(), r.TopRight()} }
func (r Rect) RightLine() Line  { return Line{r.TopRight(), r.BottomRight()} }
func (r Rect) BottomLine() Line { return Line{r.BottomLeft(), r.BottomRight()} }
func (r Rect) LeftLine() Line   { return Line{r.TopLeft(), r.BottomLeft()} }

// Sides in clockwise order starting from the top.
func (r Rect) sides() [4]Line {
	return [4]Line{r.TopLine(), r.RightLine(), r.BottomLine(), r.LeftLine()}
}

// ContainsPoint includes the boundary.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect is false whenever either rect has a zero dimension.
func (r Rect) ContainsRect(other Rect) bool {
	r0 := r.Normalize()
	r1 := other.Normalize()
	if r0.Width == 0 || r0.Height == 0 || r1.Width == 0 || r1.Height == 0 {
		return false
	}
	return r0.X <= r1.X && r1.X+r1.Width <= r0.X+r0.Width &&
		r0.Y <= r1.Y && r1.Y+r1.Height <= r0.Y+r0.Height
}

func (r Rect) Equals(other Rect) bool {
	a := r.Normalize()
	b := other.Normalize()
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height
}

// Inflate grows the rect by dx on the left and right and dy on the top and
// bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.X - dx, r.Y - dy, r.Width + 2*dx, r.Height + 2*dy}
}

// Intersect returns the overlap of two rects. Touching edges do not count.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	myOrigin := r.Origin()
	myCorner := r.Corner()
	rOrigin := other.Origin()
	rCorner := other.Corner()

	if rCorner.X <= myOrigin.X ||
		rCorner.Y <= myOrigin.Y ||
		rOrigin.X >= myCorner.X ||
		rOrigin.Y >= myCorner.Y {
		return Rect{}, false
	}

	x := math.Max(myOrigin.X, rOrigin.X)
	y := math.Max(myOrigin.Y, rOrigin.Y)
	return Rect{x, y, math.Min(myCorner.X, rCorner.X) - x, math.Min(myCorner.Y, rCorner.Y) - y}, true
}

// IntersectionWithLine returns the distinct points where l crosses the
// boundary, in top, right, bottom, left order.
func (r Rect) IntersectionWithLine(l Line) []Point {
	var points []Point
	seen := map[string]struct{}{}
	for _, side := range r.sides() {
		found := l.IntersectionWithLine(side)
		if len(found) == 0 {
			continue
		}
		key := found[0].String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		points = append(points, found[0])
	}
	return points
}

// IntersectionWithLineFromCenterToPoint finds where the segment from the
// center to p crosses the boundary. A non-zero angle treats the rect as
// rotated around its center by that many degrees. False if p is inside.
func (r Rect) IntersectionWithLineFromCenterToPoint(p Point, angle float64) (Point, bool) {
	center := r.Center()
	if angle != 0 {
		p = p.Rotate(center, angle)
	}

	connector := Line{center, p}
	for _, side := range r.sides() {
		found := side.IntersectionWithLine(connector)
		if len(found) == 0 {
			continue
		}
		result := found[0]
		if angle != 0 {
			result = result.Rotate(center, -angle)
		}
		return result, true
	}
	return Point{}, false
}

// Scale factors along each axis that keep other inside r when other is
// scaled around origin.
func (r Rect) MaxRectScaleToFit(other Rect, origin Point) (sx, sy float64) {
	ox := origin.X
	oy := origin.Y
	sx1, sx2, sx3, sx4 := math.Inf(1), math.Inf(1), math.Inf(1), math.Inf(1)
	sy1, sy2, sy3, sy4 := math.Inf(1), math.Inf(1), math.Inf(1), math.Inf(1)

	p1 := other.TopLeft()
	if p1.X < ox {
		sx1 = (r.X - ox) / (p1.X - ox)
	}
	if p1.Y < oy {
		sy1 = (r.Y - oy) / (p1.Y - oy)
	}

	p2 := other.BottomRight()
	if p2.X > ox {
		sx2 = (r.X + r.Width - ox) / (p2.X - ox)
	}
	if p2.Y > oy {
		sy2 = (r.Y + r.Height - oy) / (p2.Y - oy)
	}

	p3 := other.TopRight()
	if p3.X > ox {
		sx3 = (r.X + r.Width - ox) / (p3.X - ox)
	}
	if p3.Y < oy {
		sy3 = (r.Y - oy) / (p3.Y - oy)
	}

	p4 := other.BottomLeft()
	if p4.X < ox {
		sx4 = (r.X - ox) / (p4.X - ox)
	}
	if p4.Y > oy {
		sy4 = (r.Y + r.Height - oy) / (p4.Y - oy)
	}

	return math.Min(math.Min(sx1, sx2), math.Min(sx3, sx4)),
		math.Min(math.Min(sy1, sy2), math.Min(sy3, sy4))
}

func (r Rect) MaxRectUniformScaleToFit(other Rect, origin Point) float64 {
	sx, sy := r.MaxRectScaleToFit(other, origin)
	return math.Min(sx, sy)
}

// MoveAndExpand adds delta component-wise.
func (r Rect) MoveAndExpand(delta Rect) Rect {
	return Rect{r.X + delta.X, r.Y + delta.Y, r.Width + delta.Width, r.Height + delta.Height}
}

// Normalize flips negative extents so that Width and Height are >= 0.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) Translate(dx, dy float64) Rect {
	return r.Offset(dx, dy)
}

// PointNearestToPoint projects an inside point onto the nearest side and
// clamps an outside point onto the boundary.
func (r Rect) PointNearestToPoint(p Point) Point {
	if r.ContainsPoint(p) {
		switch r.SideNearestToPoint(p) {
		case SideRight:
			return Point{r.X + r.Width, p.Y}
		case SideLeft:
			return Point{r.X, p.Y}
		case SideBottom:
			return Point{p.X, r.Y + r.Height}
		case SideTop:
			return Point{p.X, r.Y}
		}
	}
	return p.AdhereToRect(r)
}

func (r Rect) Round(precision int) Rect {
	return Rect{
		roundTo(r.X, precision),
		roundTo(r.Y, precision),
		roundTo(r.Width, precision),
		roundTo(r.Height, precision),
	}
}

func (r Rect) Scale(sx, sy float64, origin Point) Rect {
	o := r.Origin().Scale(sx, sy, origin)
	return Rect{o.X, o.Y, r.Width * sx, r.Height * sy}
}

type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// SideNearestToPoint compares left, right, top, bottom in that order with a
// strict less-than, so exact ties resolve to the earlier side.
func (r Rect) SideNearestToPoint(p Point) Side {
	distToLeft := p.X - r.X
	distToRight := (r.X + r.Width) - p.X
	distToTop := p.Y - r.Y
	distToBottom := (r.Y + r.Height) - p.Y

	closest := distToLeft
	side := SideLeft

	if distToRight < closest {
		closest = distToRight
		side = SideRight
	}
	if distToTop < closest {
		closest = distToTop
		side = SideTop
	}
	if distToBottom < closest {
		side = SideBottom
	}
	return side
}

func (r Rect) SnapToGrid(gx, gy float64) Rect {
	origin := r.Origin().SnapToGrid(gx, gy)
	corner := r.Corner().SnapToGrid(gx, gy)
	return Rect{origin.X, origin.Y, corner.X - origin.X, corner.Y - origin.Y}
}

func (r Rect) Union(other Rect) Rect {
	union, _ := RectFromRectUnion(r, other)
	return union
}

func (r Rect) String() string {
	return r.Origin().String() + " " + r.Corner().String()
}
