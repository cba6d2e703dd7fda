package internal

import (
	"math"
)

// Cubic Bezier segment.
type Curve struct {
	Start         Point
	ControlPoint1 Point
	ControlPoint2 Point
	End           Point
}

func NewCurve(start, controlPoint1, controlPoint2, end Point) Curve {
	return Curve{start, controlPoint1, controlPoint2, end}
}

// Flattening precision used when no options are given.
const DefaultPrecision = 3

// Bisection never needs to go deeper than the resolution of a float64 t.
const maxBisectionDepth = 64

// Caps GetSubdivisions at 2^16 pieces.
const maxSubdivisionLevels = 16

// CurveOptions controls flattening. A nil *CurveOptions means
// DefaultPrecision with subdivisions computed on demand. Subdivisions from a
// previous GetSubdivisions call can be passed back in to skip recomputation.
type CurveOptions struct {
	Precision    int
	Subdivisions []Curve
}

func (c Curve) resolve(opt *CurveOptions) (int, []Curve) {
	precision := DefaultPrecision
	var subdivisions []Curve
	if opt != nil {
		precision = opt.Precision
		subdivisions = opt.Subdivisions
	}
	if len(subdivisions) == 0 {
		subdivisions = c.GetSubdivisions(precision)
	}
	return precision, subdivisions
}

func (c Curve) localOptions(opt *CurveOptions) *CurveOptions {
	precision, subdivisions := c.resolve(opt)
	return &CurveOptions{Precision: precision, Subdivisions: subdivisions}
}

// CurveThroughPoints fits a smooth open spline through the knots, one curve
// per consecutive pair. Panics with a GeometryError on fewer than 2 knots.
func CurveThroughPoints(knots []Point) []Curve {
	if len(knots) < 2 {
		fatalf("At least 2 points are required")
	}

	firstControlPoints, secondControlPoints := curveControlPoints(knots)
	curves := make([]Curve, len(firstControlPoints))
	for i := range firstControlPoints {
		curves[i] = Curve{knots[i], firstControlPoints[i], secondControlPoints[i], knots[i+1]}
	}
	return curves
}

func curveControlPoints(knots []Point) (first, second []Point) {
	n := len(knots) - 1

	// Two knots make a straight line: 3P1 = 2P0 + P3, P2 = 2P1 - P0.
	if n == 1 {
		p1 := Point{
			(2*knots[0].X + knots[1].X) / 3,
			(2*knots[0].Y + knots[1].Y) / 3,
		}
		p2 := Point{2*p1.X - knots[0].X, 2*p1.Y - knots[0].Y}
		return []Point{p1}, []Point{p2}
	}

	rhs := make([]float64, n)
	axis := func(coordinate func(Point) float64) []float64 {
		for i := 1; i < n-1; i++ {
			rhs[i] = 4*coordinate(knots[i]) + 2*coordinate(knots[i+1])
		}
		rhs[0] = coordinate(knots[0]) + 2*coordinate(knots[1])
		rhs[n-1] = (8*coordinate(knots[n-1]) + coordinate(knots[n])) / 2
		return solveControlPointSystem(rhs)
	}
	x := axis(func(p Point) float64 { return p.X })
	y := axis(func(p Point) float64 { return p.Y })

	first = make([]Point, n)
	second = make([]Point, n)
	for i := 0; i < n; i++ {
		first[i] = Point{x[i], y[i]}
		if i < n-1 {
			second[i] = Point{2*knots[i+1].X - x[i+1], 2*knots[i+1].Y - y[i+1]}
		} else {
			second[i] = Point{(knots[n].X + x[n-1]) / 2, (knots[n].Y + y[n-1]) / 2}
		}
	}
	return first, second
}

// Thomas algorithm for the tridiagonal system of first control points.
func solveControlPointSystem(rhs []float64) []float64 {
	n := len(rhs)
	x := make([]float64, n)
	tmp := make([]float64, n)
	b := 2.0

	x[0] = rhs[0] / b
	for i := 1; i < n; i++ {
		tmp[i] = 1 / b
		if i < n-1 {
			b = 4 - tmp[i]
		} else {
			b = 3.5 - tmp[i]
		}
		x[i] = (rhs[i] - x[i-1]) / b
	}
	for i := 1; i < n; i++ {
		x[n-i-1] -= tmp[n-i] * x[n-i]
	}
	return x
}

// BBox is the tight bounding box, found from the roots of the derivative on
// each axis.
func (c Curve) BBox() Rect {
	x0, y0 := c.Start.X, c.Start.Y
	x1, y1 := c.ControlPoint1.X, c.ControlPoint1.Y
	x2, y2 := c.ControlPoint2.X, c.ControlPoint2.Y
	x3, y3 := c.End.X, c.End.Y

	var tvalues []float64
	for i := 0; i < 2; i++ {
		var a, b, cc float64
		if i == 0 {
			b = 6*x0 - 12*x1 + 6*x2
			a = -3*x0 + 9*x1 - 9*x2 + 3*x3
			cc = 3*x1 - 3*x0
		} else {
			b = 6*y0 - 12*y1 + 6*y2
			a = -3*y0 + 9*y1 - 9*y2 + 3*y3
			cc = 3*y1 - 3*y0
		}

		if math.Abs(a) < 1e-12 {
			if math.Abs(b) < 1e-12 {
				continue
			}
			if t := -cc / b; 0 < t && t < 1 {
				tvalues = append(tvalues, t)
			}
			continue
		}

		b2ac := b*b - 4*cc*a
		if b2ac < 0 {
			continue
		}
		sqrtb2ac := math.Sqrt(b2ac)
		if t1 := (-b + sqrtb2ac) / (2 * a); 0 < t1 && t1 < 1 {
			tvalues = append(tvalues, t1)
		}
		if t2 := (-b - sqrtb2ac) / (2 * a); 0 < t2 && t2 < 1 {
			tvalues = append(tvalues, t2)
		}
	}

	left, right := math.Min(x0, x3), math.Max(x0, x3)
	top, bottom := math.Min(y0, y3), math.Max(y0, y3)
	for _, t := range tvalues {
		mt := 1 - t
		x := mt*mt*mt*x0 + 3*mt*mt*t*x1 + 3*mt*t*t*x2 + t*t*t*x3
		y := mt*mt*mt*y0 + 3*mt*mt*t*y1 + 3*mt*t*t*y2 + t*t*t*y3
		left = math.Min(left, x)
		right = math.Max(right, x)
		top = math.Min(top, y)
		bottom = math.Max(bottom, y)
	}
	return Rect{left, top, right - left, bottom - top}
}

func (c Curve) ClosestPoint(p Point, opt *CurveOptions) Point {
	return c.PointAtT(c.ClosestPointT(p, opt))
}

func (c Curve) ClosestPointLength(p Point, opt *CurveOptions) float64 {
	local := c.localOptions(opt)
	return c.LengthAtT(c.ClosestPointT(p, local), local)
}

func (c Curve) ClosestPointNormalizedLength(p Point, opt *CurveOptions) float64 {
	local := c.localOptions(opt)
	cpLength := c.ClosestPointLength(p, local)
	if cpLength == 0 || math.IsNaN(cpLength) {
		return 0
	}
	length := c.Length(local)
	if length == 0 {
		return 0
	}
	return cpLength / length
}

// ClosestPointT picks the subdivision whose endpoints are nearest to p (by
// sum of distances) and keeps bisecting it until the two endpoint distances
// agree to the requested precision, or one of them is negligible relative to
// the chord.
func (c Curve) ClosestPointT(p Point, opt *CurveOptions) float64 {
	precision, subdivisions := c.resolve(opt)
	n := len(subdivisions)
	if n == 0 {
		return 0
	}

	var investigated Curve
	var startT, endT, distFromStart, distFromEnd, chordLength, minSumDist float64
	subdivisionSize := 1 / float64(n)
	for i, subdivision := range subdivisions {
		startDist := subdivision.Start.Distance(p)
		endDist := subdivision.End.Distance(p)
		sumDist := startDist + endDist
		if i == 0 || sumDist < minSumDist {
			investigated = subdivision
			startT = float64(i) * subdivisionSize
			endT = float64(i+1) * subdivisionSize
			distFromStart = startDist
			distFromEnd = endDist
			chordLength = subdivision.Start.Distance(subdivision.End)
			minSumDist = sumDist
		}
	}

	precisionRatio := math.Pow(10, -float64(precision))
	for depth := 0; ; depth++ {
		startPrecisionRatio := 0.0
		if truthy(distFromStart) {
			startPrecisionRatio = math.Abs(distFromStart-distFromEnd) / distFromStart
		}
		endPrecisionRatio := 0.0
		if truthy(distFromEnd) {
			endPrecisionRatio = math.Abs(distFromStart-distFromEnd) / distFromEnd
		}
		hasRequiredPrecision := startPrecisionRatio < precisionRatio || endPrecisionRatio < precisionRatio

		hasMinimalStartDistance := !truthy(distFromStart) || distFromStart < chordLength*precisionRatio
		hasMinimalEndDistance := !truthy(distFromEnd) || distFromEnd < chordLength*precisionRatio

		if hasRequiredPrecision || hasMinimalStartDistance || hasMinimalEndDistance || depth >= maxBisectionDepth {
			if distFromStart <= distFromEnd {
				return startT
			}
			return endT
		}

		first, second := investigated.DivideAtT(0.5)
		subdivisionSize /= 2

		startDist1 := first.Start.Distance(p)
		endDist1 := first.End.Distance(p)
		startDist2 := second.Start.Distance(p)
		endDist2 := second.End.Distance(p)

		if startDist1+endDist1 <= startDist2+endDist2 {
			investigated = first
			endT -= subdivisionSize
			distFromStart = startDist1
			distFromEnd = endDist1
		} else {
			investigated = second
			startT += subdivisionSize
			distFromStart = startDist2
			distFromEnd = endDist2
		}
	}
}

// Zero and NaN count as "no distance".
func truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func (c Curve) ClosestPointTangent(p Point, opt *CurveOptions) *Line {
	return c.TangentAtT(c.ClosestPointT(p, opt))
}

// ContainsPoint flattens the curve and applies the even-odd rule with an
// imagined closing segment.
func (c Curve) ContainsPoint(p Point, opt *CurveOptions) bool {
	return c.ToPolyline(opt).ContainsPoint(p)
}

// DivideAt splits at a length ratio.
func (c Curve) DivideAt(ratio float64, opt *CurveOptions) (Curve, Curve) {
	if ratio <= 0 {
		return c.DivideAtT(0)
	}
	if ratio >= 1 {
		return c.DivideAtT(1)
	}
	return c.DivideAtT(c.TAt(ratio, opt))
}

func (c Curve) DivideAtLength(length float64, opt *CurveOptions) (Curve, Curve) {
	return c.DivideAtT(c.TAtLength(length, opt))
}

// DivideAtT splits with de Casteljau's algorithm. Out-of-range t yields a
// point-like curve on the empty side.
func (c Curve) DivideAtT(t float64) (Curve, Curve) {
	if t <= 0 {
		return Curve{c.Start, c.Start, c.Start, c.Start}, c
	}
	if t >= 1 {
		return c, Curve{c.End, c.End, c.End, c.End}
	}

	s := c.GetSkeletonPoints(t)
	return Curve{c.Start, s.StartControlPoint1, s.StartControlPoint2, s.Divider},
		Curve{s.Divider, s.DividerControlPoint1, s.DividerControlPoint2, c.End}
}

func (c Curve) EndpointDistance() float64 {
	return c.Start.Distance(c.End)
}

func (c Curve) Equals(other Curve) bool {
	return c.Start.Equals(other.Start) &&
		c.ControlPoint1.Equals(other.ControlPoint1) &&
		c.ControlPoint2.Equals(other.ControlPoint2) &&
		c.End.Equals(other.End)
}

// The five helper points of a de Casteljau split.
type SkeletonPoints struct {
	StartControlPoint1   Point
	StartControlPoint2   Point
	Divider              Point
	DividerControlPoint1 Point
	DividerControlPoint2 Point
}

func (c Curve) GetSkeletonPoints(t float64) SkeletonPoints {
	if t <= 0 {
		return SkeletonPoints{c.Start, c.Start, c.Start, c.ControlPoint1, c.ControlPoint2}
	}
	if t >= 1 {
		return SkeletonPoints{c.ControlPoint1, c.ControlPoint2, c.End, c.End, c.End}
	}

	midpoint1 := Line{c.Start, c.ControlPoint1}.PointAt(t)
	midpoint2 := Line{c.ControlPoint1, c.ControlPoint2}.PointAt(t)
	midpoint3 := Line{c.ControlPoint2, c.End}.PointAt(t)

	subControl1 := Line{midpoint1, midpoint2}.PointAt(t)
	subControl2 := Line{midpoint2, midpoint3}.PointAt(t)

	return SkeletonPoints{
		StartControlPoint1:   midpoint1,
		StartControlPoint2:   subControl1,
		Divider:              Line{subControl1, subControl2}.PointAt(t),
		DividerControlPoint1: subControl2,
		DividerControlPoint2: midpoint3,
	}
}

// GetSubdivisions bisects the curve at t=0.5 level by level until the
// flattened length changes by less than 10^-precision between levels. At
// least two levels are done (a sine-like curve can measure the same at
// levels 0 and 1); a straight curve measures the same at every level, so it
// gets 2*precision levels instead. Precision 0 returns the curve itself.
func (c Curve) GetSubdivisions(precision int) []Curve {
	subdivisions := []Curve{c}
	if precision == 0 || !c.IsDifferentiable() {
		return subdivisions
	}

	previousLength := c.EndpointDistance()
	precisionRatio := math.Pow(10, -float64(precision))

	minIterations := 2
	if c.ControlPoint1.cross(c.Start, c.End) == 0 && c.ControlPoint2.cross(c.Start, c.End) == 0 {
		minIterations = 2 * precision
	}

	for iteration := 1; ; iteration++ {
		next := make([]Curve, 0, 2*len(subdivisions))
		for _, subdivision := range subdivisions {
			first, second := subdivision.DivideAtT(0.5)
			next = append(next, first, second)
		}

		length := 0.0
		for _, subdivision := range next {
			length += subdivision.EndpointDistance()
		}

		if iteration >= minIterations {
			observedPrecisionRatio := 0.0
			if length != 0 {
				observedPrecisionRatio = (length - previousLength) / length
			}
			if observedPrecisionRatio < precisionRatio || math.IsNaN(observedPrecisionRatio) || iteration >= maxSubdivisionLevels {
				return next
			}
		}

		subdivisions = next
		previousLength = length
	}
}

// IsDifferentiable is false only when all four points coincide.
func (c Curve) IsDifferentiable() bool {
	return !(c.Start.Equals(c.ControlPoint1) && c.ControlPoint1.Equals(c.ControlPoint2) && c.ControlPoint2.Equals(c.End))
}

// Length of the flattened curve.
func (c Curve) Length(opt *CurveOptions) float64 {
	_, subdivisions := c.resolve(opt)
	length := 0.0
	for _, subdivision := range subdivisions {
		length += subdivision.EndpointDistance()
	}
	return length
}

// LengthAtT measures the part of the curve before t. Only the precision of
// opt is used.
func (c Curve) LengthAtT(t float64, opt *CurveOptions) float64 {
	if t <= 0 {
		return 0
	}
	precision := DefaultPrecision
	if opt != nil {
		precision = opt.Precision
	}
	head, _ := c.DivideAtT(t)
	return head.Length(&CurveOptions{Precision: precision})
}

func (c Curve) PointAt(ratio float64, opt *CurveOptions) Point {
	if ratio <= 0 {
		return c.Start
	}
	if ratio >= 1 {
		return c.End
	}
	return c.PointAtT(c.TAt(ratio, opt))
}

func (c Curve) PointAtLength(length float64, opt *CurveOptions) Point {
	return c.PointAtT(c.TAtLength(length, opt))
}

// PointAtT evaluates the curve parameter directly. t does not track length.
func (c Curve) PointAtT(t float64) Point {
	if t <= 0 {
		return c.Start
	}
	if t >= 1 {
		return c.End
	}
	return c.GetSkeletonPoints(t).Divider
}

func (c Curve) Round(precision int) Curve {
	return Curve{c.Start.Round(precision), c.ControlPoint1.Round(precision), c.ControlPoint2.Round(precision), c.End.Round(precision)}
}

func (c Curve) Scale(sx, sy float64, origin Point) Curve {
	return Curve{
		c.Start.Scale(sx, sy, origin),
		c.ControlPoint1.Scale(sx, sy, origin),
		c.ControlPoint2.Scale(sx, sy, origin),
		c.End.Scale(sx, sy, origin),
	}
}

func (c Curve) TangentAt(ratio float64, opt *CurveOptions) *Line {
	if !c.IsDifferentiable() {
		return nil
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return c.TangentAtT(c.TAt(ratio, opt))
}

func (c Curve) TangentAtLength(length float64, opt *CurveOptions) *Line {
	if !c.IsDifferentiable() {
		return nil
	}
	return c.TangentAtT(c.TAtLength(length, opt))
}

// TangentAtT returns the tangent through PointAtT(t), pointing forward.
func (c Curve) TangentAtT(t float64) *Line {
	if !c.IsDifferentiable() {
		return nil
	}
	t = math.Max(0, math.Min(1, t))

	s := c.GetSkeletonPoints(t)
	p1 := s.StartControlPoint2
	p2 := s.DividerControlPoint1
	tangent := Line{p1, p2}.Translate(s.Divider.X-p1.X, s.Divider.Y-p1.Y)
	return &tangent
}

func (c Curve) TAt(ratio float64, opt *CurveOptions) float64 {
	if ratio <= 0 {
		return 0
	}
	if ratio >= 1 {
		return 1
	}
	local := c.localOptions(opt)
	return c.TAtLength(c.Length(local)*ratio, local)
}

// TAtLength finds the subdivision that contains length (measured from the
// end when negative) and bisects it until the target sits within
// 10^-precision of a subdivision endpoint, relative to the whole length.
// Lengths beyond the curve return 1 (or 0 from the end).
func (c Curve) TAtLength(length float64, opt *CurveOptions) float64 {
	fromStart := true
	if length < 0 {
		fromStart = false
		length = -length
	}

	local := c.localOptions(opt)
	subdivisions := local.Subdivisions

	n := len(subdivisions)
	subdivisionSize := 1 / float64(n)
	found := false
	var investigated Curve
	var startT, endT, distFromStart, distFromEnd float64
	l := 0.0
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		subdivision := subdivisions[index]
		d := subdivision.EndpointDistance()
		if length <= l+d {
			investigated = subdivision
			startT = float64(index) * subdivisionSize
			endT = float64(index+1) * subdivisionSize
			if fromStart {
				distFromStart = length - l
				distFromEnd = d + l - length
			} else {
				distFromStart = d + l - length
				distFromEnd = length - l
			}
			found = true
			break
		}
		l += d
	}

	if !found {
		if fromStart {
			return 1
		}
		return 0
	}

	curveLength := c.Length(local)
	precisionRatio := math.Pow(10, -float64(local.Precision))

	for depth := 0; ; depth++ {
		observed := 0.0
		if curveLength != 0 {
			observed = distFromStart / curveLength
		}
		if observed < precisionRatio {
			return startT
		}
		observed = 0
		if curveLength != 0 {
			observed = distFromEnd / curveLength
		}
		if observed < precisionRatio || depth >= maxBisectionDepth {
			return endT
		}

		first, second := investigated.DivideAtT(0.5)
		subdivisionSize /= 2

		baseline1Length := first.EndpointDistance()
		baseline2Length := second.EndpointDistance()

		if distFromStart <= baseline1Length {
			investigated = first
			endT -= subdivisionSize
			distFromEnd = baseline1Length - distFromStart
		} else {
			investigated = second
			startT += subdivisionSize
			distFromStart -= baseline1Length
			distFromEnd = baseline2Length - distFromStart
		}
	}
}

// ToPoints lists the start of the curve and the end of every subdivision.
func (c Curve) ToPoints(opt *CurveOptions) []Point {
	_, subdivisions := c.resolve(opt)
	points := make([]Point, 0, len(subdivisions)+1)
	points = append(points, subdivisions[0].Start)
	for _, subdivision := range subdivisions {
		points = append(points, subdivision.End)
	}
	return points
}

func (c Curve) ToPolyline(opt *CurveOptions) Polyline {
	return Polyline{c.ToPoints(opt)}
}

func (c Curve) Translate(tx, ty float64) Curve {
	return Curve{
		c.Start.Offset(tx, ty),
		c.ControlPoint1.Offset(tx, ty),
		c.ControlPoint2.Offset(tx, ty),
		c.End.Offset(tx, ty),
	}
}

func (c Curve) String() string {
	return c.Start.String() + " " + c.ControlPoint1.String() + " " + c.ControlPoint2.String() + " " + c.End.String()
}
