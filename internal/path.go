package internal

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	ErrNoSegments      = errors.New("Path has no segments.")
	ErrIndexOutOfRange = errors.New("Index out of range.")
	ErrInvalidPath     = errors.New("Invalid path segments.")
	ErrNoSegment       = errors.New("Segment required.")
)

// Path is an ordered list of segments. Each entry records the index of the
// Moveto that opens its subpath, which is how a Closepath finds its end.
// The relation is rebuilt by a forward scan after every insert, remove or
// replace, so there are no references to go stale.
//
// A Path does not have to start with a Moveto. Geometric queries on such a
// path panic with a GeometryError when they need the missing start; Validate
// repairs it.
type Path struct {
	segments []pathSegment
}

type pathSegment struct {
	Segment
	subpathStart int // -1 when no Moveto precedes the segment
}

// PathT locates a point by segment and the parameter within that segment.
type PathT struct {
	SegmentIndex int
	Value        float64
}

// PathOptions controls flattening of the curved segments. A nil *PathOptions
// means DefaultPrecision. SegmentSubdivisions, when set, holds the result of
// GetSegmentSubdivisions and must line up with the path's segments.
type PathOptions struct {
	Precision           int
	SegmentSubdivisions [][]Curve
}

func NewPath(segments ...Segment) *Path {
	path := &Path{}
	path.AppendSegment(segments...)
	return path
}

// PathFromPieces joins lines and curves into a path. A Moveto opens the path
// and is inserted wherever a piece does not start where the last one ended.
func PathFromPieces(pieces ...PathPiece) *Path {
	path := &Path{}
	var previousEnd *Point
	for _, piece := range pieces {
		start, segment := piece.pathSegment()
		if previousEnd == nil || !previousEnd.Equals(start) {
			path.AppendSegment(Moveto(start))
		}
		path.AppendSegment(segment)
		end := segment.End
		previousEnd = &end
	}
	return path
}

func PathFromPolyline(polyline Polyline) *Path {
	path := &Path{}
	for i, point := range polyline.Points {
		if i == 0 {
			path.AppendSegment(Moveto(point))
		} else {
			path.AppendSegment(Lineto(point))
		}
	}
	return path
}

func (p *Path) Len() int { return len(p.segments) }

// Segments returns a copy of the stored segments.
func (p *Path) Segments() []Segment {
	segments := make([]Segment, len(p.segments))
	for i, segment := range p.segments {
		segments[i] = segment.Segment
	}
	return segments
}

func (p *Path) AppendSegment(segments ...Segment) {
	from := len(p.segments)
	for _, segment := range segments {
		p.segments = append(p.segments, pathSegment{Segment: segment})
	}
	p.relink(from)
}

// InsertSegment inserts before index. Index len(path) appends, and negative
// indices count back from one past the end, so -1 also appends.
func (p *Path) InsertSegment(index int, segments ...Segment) error {
	n := len(p.segments)
	if index < 0 {
		index = n + index + 1
	}
	if index > n || index < 0 {
		return ErrIndexOutOfRange
	}
	if len(segments) == 0 {
		return ErrNoSegment
	}
	p.segments = slices.Insert(p.segments, index, wrapSegments(segments)...)
	p.relink(index)
	return nil
}

// RemoveSegment accepts negative indices counting from the end.
func (p *Path) RemoveSegment(index int) error {
	index, err := p.normalizeIndex(index)
	if err != nil {
		return err
	}
	p.segments = slices.Delete(p.segments, index, index+1)
	p.relink(index)
	return nil
}

// ReplaceSegment swaps the segment at index for one or more segments.
func (p *Path) ReplaceSegment(index int, segments ...Segment) error {
	index, err := p.normalizeIndex(index)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return ErrNoSegment
	}
	p.segments = slices.Replace(p.segments, index, index+1, wrapSegments(segments)...)
	p.relink(index)
	return nil
}

// GetSegment accepts negative indices counting from the end.
func (p *Path) GetSegment(index int) (Segment, error) {
	index, err := p.normalizeIndex(index)
	if err != nil {
		return Segment{}, err
	}
	return p.segments[index].Segment, nil
}

// Shape resolves the geometry of the segment at index.
func (p *Path) Shape(index int) (shape SegmentShape, err error) {
	index, err = p.normalizeIndex(index)
	if err != nil {
		return nil, err
	}
	err = Catch(func() { shape = p.shape(index) })
	return shape, err
}

// SegmentStart is the end of the previous segment. Asking for the start of a
// Moveto, or of a first segment, is an error.
func (p *Path) SegmentStart(index int) (start Point, err error) {
	index, err = p.normalizeIndex(index)
	if err != nil {
		return Point{}, err
	}
	err = Catch(func() { start = p.segmentStart(index) })
	return start, err
}

// SegmentEnd resolves a Closepath to the end of its subpath's Moveto.
func (p *Path) SegmentEnd(index int) (end Point, err error) {
	index, err = p.normalizeIndex(index)
	if err != nil {
		return Point{}, err
	}
	err = Catch(func() { end = p.segmentEnd(index) })
	return end, err
}

func (p *Path) normalizeIndex(index int) (int, error) {
	n := len(p.segments)
	if n == 0 {
		return 0, ErrNoSegments
	}
	if index < 0 {
		index = n + index
	}
	if index >= n || index < 0 {
		return 0, ErrIndexOutOfRange
	}
	return index, nil
}

func wrapSegments(segments []Segment) []pathSegment {
	wrapped := make([]pathSegment, len(segments))
	for i, segment := range segments {
		wrapped[i] = pathSegment{Segment: segment}
	}
	return wrapped
}

// Reassign subpath starts from index onward. Everything after a splice point
// shifts, so the scan runs to the end.
func (p *Path) relink(from int) {
	for i := from; i < len(p.segments); i++ {
		switch {
		case p.segments[i].Type == SegmentMoveto:
			p.segments[i].subpathStart = i
		case i == 0:
			p.segments[i].subpathStart = -1
		default:
			p.segments[i].subpathStart = p.segments[i-1].subpathStart
		}
	}
}

func (p *Path) segmentStart(index int) Point {
	if p.segments[index].Type == SegmentMoveto {
		fatalf("Illegal access. Moveto segments should not need a start property.")
	}
	if index == 0 {
		fatalf("Missing previous segment.")
	}
	return p.segmentEnd(index - 1)
}

func (p *Path) segmentEnd(index int) Point {
	segment := p.segments[index]
	if segment.Type != SegmentClosepath {
		return segment.End
	}
	if segment.subpathStart < 0 {
		fatalf("Missing subpath start segment.")
	}
	return p.segments[segment.subpathStart].End
}

func (p *Path) shape(index int) SegmentShape {
	segment := p.segments[index]
	switch segment.Type {
	case SegmentMoveto:
		return movetoShape{segment.End}
	case SegmentLineto:
		return linetoShape{Line{p.segmentStart(index), segment.End}}
	case SegmentCurveto:
		return curvetoShape{Curve{p.segmentStart(index), segment.ControlPoint1, segment.ControlPoint2, segment.End}}
	case SegmentClosepath:
		return closepathShape{linetoShape{Line{p.segmentStart(index), p.segmentEnd(index)}}}
	}
	fatalf("%v is not a recognized path segment type.", segment.Type)
	return nil
}

func (p *Path) isVisible(index int) bool {
	return p.segments[index].Type != SegmentMoveto
}

// A segment with no start cannot be differentiable; this never panics.
func (p *Path) isSegmentDifferentiable(index int) bool {
	segment := p.segments[index]
	if segment.Type == SegmentMoveto || index == 0 {
		return false
	}
	if segment.Type == SegmentClosepath && segment.subpathStart < 0 {
		return false
	}
	return p.shape(index).IsDifferentiable()
}

func (p *Path) resolve(opt *PathOptions) (int, [][]Curve) {
	precision := DefaultPrecision
	var segmentSubdivisions [][]Curve
	if opt != nil {
		precision = opt.Precision
		segmentSubdivisions = opt.SegmentSubdivisions
	}
	if segmentSubdivisions == nil {
		segmentSubdivisions = p.GetSegmentSubdivisions(precision)
	}
	return precision, segmentSubdivisions
}

func (p *Path) localOptions(opt *PathOptions) *PathOptions {
	precision, segmentSubdivisions := p.resolve(opt)
	return &PathOptions{Precision: precision, SegmentSubdivisions: segmentSubdivisions}
}

func segmentOptions(precision int, segmentSubdivisions [][]Curve, index int) *CurveOptions {
	opt := &CurveOptions{Precision: precision}
	if index < len(segmentSubdivisions) {
		opt.Subdivisions = segmentSubdivisions[index]
	}
	return opt
}

// GetSegmentSubdivisions flattens every curved segment. Straight segments
// get an empty list.
func (p *Path) GetSegmentSubdivisions(precision int) [][]Curve {
	segmentSubdivisions := make([][]Curve, len(p.segments))
	for i, segment := range p.segments {
		if segment.Type == SegmentCurveto {
			segmentSubdivisions[i] = p.shape(i).Subdivisions(precision)
		} else {
			segmentSubdivisions[i] = []Curve{}
		}
	}
	return segmentSubdivisions
}

// BBox is the union of the visible segments' boxes. A path of only Movetos
// collapses to its last point. Empty paths have no box.
func (p *Path) BBox() (Rect, bool) {
	n := len(p.segments)
	if n == 0 {
		return Rect{}, false
	}
	var bbox Rect
	found := false
	for i := range p.segments {
		if !p.isVisible(i) {
			continue
		}
		segmentBBox, _ := p.shape(i).BBox()
		if found {
			bbox = bbox.Union(segmentBBox)
		} else {
			bbox = segmentBBox
			found = true
		}
	}
	if found {
		return bbox, true
	}
	end := p.segments[n-1].End
	return Rect{end.X, end.Y, 0, 0}, true
}

func (p *Path) Clone() *Path {
	return &Path{segments: slices.Clone(p.segments)}
}

func (p *Path) ClosestPoint(q Point, opt *PathOptions) (Point, bool) {
	t, ok := p.ClosestPointT(q, opt)
	if !ok {
		return Point{}, false
	}
	return p.PointAtT(t)
}

func (p *Path) ClosestPointLength(q Point, opt *PathOptions) float64 {
	opt = p.localOptions(opt)
	t, ok := p.ClosestPointT(q, opt)
	if !ok {
		return 0
	}
	return p.LengthAtT(t, opt)
}

func (p *Path) ClosestPointNormalizedLength(q Point, opt *PathOptions) float64 {
	opt = p.localOptions(opt)
	cpLength := p.ClosestPointLength(q, opt)
	if cpLength == 0 {
		return 0
	}
	length := p.Length(opt)
	if length == 0 {
		return 0
	}
	return cpLength / length
}

// ClosestPointT searches the visible segments. A path with no visible
// segment answers with the end of its last segment.
func (p *Path) ClosestPointT(q Point, opt *PathOptions) (PathT, bool) {
	n := len(p.segments)
	if n == 0 {
		return PathT{}, false
	}
	precision, segmentSubdivisions := p.resolve(opt)

	var closest *PathT
	minSquaredDistance := math.Inf(1)
	for i := range p.segments {
		if !p.isVisible(i) {
			continue
		}
		shape := p.shape(i)
		t := shape.ClosestPointT(q, segmentOptions(precision, segmentSubdivisions, i))
		squaredDistance := shape.PointAtT(t).SquaredDistance(q)
		if squaredDistance < minSquaredDistance {
			closest = &PathT{i, t}
			minSquaredDistance = squaredDistance
		}
	}
	if closest != nil {
		return *closest, true
	}
	return PathT{n - 1, 1}, true
}

func (p *Path) ClosestPointTangent(q Point, opt *PathOptions) *Line {
	if len(p.segments) == 0 {
		return nil
	}
	precision, segmentSubdivisions := p.resolve(opt)

	var tangent *Line
	minSquaredDistance := math.Inf(1)
	for i := range p.segments {
		if !p.isSegmentDifferentiable(i) {
			continue
		}
		shape := p.shape(i)
		t := shape.ClosestPointT(q, segmentOptions(precision, segmentSubdivisions, i))
		squaredDistance := shape.PointAtT(t).SquaredDistance(q)
		if squaredDistance < minSquaredDistance {
			tangent = shape.TangentAtT(t)
			minSquaredDistance = squaredDistance
		}
	}
	return tangent
}

// ContainsPoint uses the even-odd rule over the flattened subpaths, each
// treated as closed.
func (p *Path) ContainsPoint(q Point, opt *PathOptions) bool {
	count := 0
	for _, polyline := range p.ToPolylines(opt) {
		if polyline.ContainsPoint(q) {
			count++
		}
	}
	return count%2 == 1
}

// DivideAt splits the path at ratio of its length.
func (p *Path) DivideAt(ratio float64, opt *PathOptions) (*Path, *Path, bool) {
	if len(p.segments) == 0 {
		return nil, nil, false
	}
	ratio = math.Max(0, math.Min(1, ratio))
	opt = p.localOptions(opt)
	return p.DivideAtLength(p.Length(opt)*ratio, opt)
}

// DivideAtLength splits the path into two independent paths. Negative
// lengths measure from the end. The second path gets its own Moveto, halves
// that collapse to a point are dropped, and Closepaths that would now close
// onto a different point become Linetos.
func (p *Path) DivideAtLength(length float64, opt *PathOptions) (*Path, *Path, bool) {
	n := len(p.segments)
	if n == 0 {
		return nil, nil, false
	}
	fromStart := true
	if length < 0 {
		fromStart = false
		length = -length
	}
	precision, segmentSubdivisions := p.resolve(opt)

	dividedIndex := -1
	lastValidIndex := -1
	var head, tail Segment
	l := 0.0
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		segmentOpt := segmentOptions(precision, segmentSubdivisions, index)
		shape := p.shape(index)
		d := shape.Length(segmentOpt)
		if p.isSegmentDifferentiable(index) {
			lastValidIndex = index
			if length <= l+d {
				dividedIndex = index
				sign := 1.0
				if !fromStart {
					sign = -1
				}
				head, tail = shape.DivideAtLength(sign*(length-l), segmentOpt)
				break
			}
		}
		l += d
	}

	if lastValidIndex < 0 {
		return nil, nil, false
	}
	if dividedIndex < 0 {
		// Longer than the path: cut at the far end of the last valid segment.
		dividedIndex = lastValidIndex
		t := 1.0
		if !fromStart {
			t = 0
		}
		head, tail = p.shape(lastValidIndex).DivideAtT(t)
	}

	pathCopy := p.Clone()
	pathCopy.mustReplace(dividedIndex, head, tail)

	divisionStart := dividedIndex
	divisionMid := dividedIndex + 1
	divisionEnd := dividedIndex + 2

	if !pathCopy.isSegmentDifferentiable(divisionStart) {
		pathCopy.mustRemove(divisionStart)
		divisionMid--
		divisionEnd--
	}

	pathCopy.mustInsert(divisionMid, Moveto(pathCopy.segmentStart(divisionMid)))
	divisionEnd++

	if !pathCopy.isSegmentDifferentiable(divisionEnd - 1) {
		pathCopy.mustRemove(divisionEnd - 1)
		divisionEnd--
	}

	shift := divisionEnd - divisionStart - 1
	for i := divisionEnd; i < len(pathCopy.segments); i++ {
		original := i - shift
		if pathCopy.segments[i].Type != SegmentClosepath {
			continue
		}
		if !p.subpathStartEnd(original).Equals(pathCopy.subpathStartEnd(i)) {
			pathCopy.mustReplace(i, Lineto(p.segmentEnd(original)))
		}
	}

	first := NewPath(pathCopy.Segments()[:divisionMid]...)
	second := NewPath(pathCopy.Segments()[divisionMid:]...)
	return first, second, true
}

func (p *Path) subpathStartEnd(index int) Point {
	start := p.segments[index].subpathStart
	if start < 0 {
		fatalf("Missing subpath start segment.")
	}
	return p.segments[start].End
}

func (p *Path) mustInsert(index int, segments ...Segment) {
	if err := p.InsertSegment(index, segments...); err != nil {
		fatalf("%v", err)
	}
}

func (p *Path) mustRemove(index int) {
	if err := p.RemoveSegment(index); err != nil {
		fatalf("%v", err)
	}
}

func (p *Path) mustReplace(index int, segments ...Segment) {
	if err := p.ReplaceSegment(index, segments...); err != nil {
		fatalf("%v", err)
	}
}

// Equals compares segment types and coordinates.
func (p *Path) Equals(other *Path) bool {
	if other == nil || len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if !p.segments[i].Segment.Equals(other.segments[i].Segment) {
			return false
		}
	}
	return true
}

// GetSubpaths splits a validated copy of the path at every Moveto.
func (p *Path) GetSubpaths() []*Path {
	validated := p.Clone().Validate()
	var subpaths []*Path
	for _, segment := range validated.segments {
		if segment.Type == SegmentMoveto {
			subpaths = append(subpaths, NewPath(segment.Segment))
		} else {
			subpaths[len(subpaths)-1].AppendSegment(segment.Segment)
		}
	}
	return subpaths
}

func (p *Path) IntersectionWithLine(l Line, opt *PathOptions) []Point {
	var intersection []Point
	for _, polyline := range p.ToPolylines(opt) {
		intersection = append(intersection, l.Intersect(polyline)...)
	}
	return intersection
}

func (p *Path) IsDifferentiable() bool {
	for i := range p.segments {
		if p.isSegmentDifferentiable(i) {
			return true
		}
	}
	return false
}

// IsValid reports whether the path is empty or opens with a Moveto.
func (p *Path) IsValid() bool {
	return len(p.segments) == 0 || p.segments[0].Type == SegmentMoveto
}

func (p *Path) Length(opt *PathOptions) float64 {
	if len(p.segments) == 0 {
		return 0
	}
	precision, segmentSubdivisions := p.resolve(opt)
	length := 0.0
	for i := range p.segments {
		length += p.shape(i).Length(segmentOptions(precision, segmentSubdivisions, i))
	}
	return length
}

// LengthAtT clamps t into the path.
func (p *Path) LengthAtT(t PathT, opt *PathOptions) float64 {
	n := len(p.segments)
	if n == 0 || t.SegmentIndex < 0 {
		return 0
	}
	index, value := t.SegmentIndex, t.Value
	if index >= n {
		index = n - 1
		value = 1
	} else {
		value = math.Max(0, math.Min(1, value))
	}
	precision, segmentSubdivisions := p.resolve(opt)

	length := 0.0
	for i := 0; i < index; i++ {
		length += p.shape(i).Length(segmentOptions(precision, segmentSubdivisions, i))
	}
	return length + p.shape(index).LengthAtT(value, segmentOptions(precision, segmentSubdivisions, index))
}

func (p *Path) PointAt(ratio float64, opt *PathOptions) (Point, bool) {
	if len(p.segments) == 0 {
		return Point{}, false
	}
	if ratio <= 0 {
		return p.Start()
	}
	if ratio >= 1 {
		return p.End()
	}
	opt = p.localOptions(opt)
	return p.PointAtLength(p.Length(opt)*ratio, opt)
}

// PointAtLength measures from the end for negative lengths. Lengths past the
// end clamp to the last visible point.
func (p *Path) PointAtLength(length float64, opt *PathOptions) (Point, bool) {
	n := len(p.segments)
	if n == 0 {
		return Point{}, false
	}
	if length == 0 {
		return p.Start()
	}
	fromStart := true
	if length < 0 {
		fromStart = false
		length = -length
	}
	precision, segmentSubdivisions := p.resolve(opt)

	lastVisible := -1
	l := 0.0
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		segmentOpt := segmentOptions(precision, segmentSubdivisions, index)
		shape := p.shape(index)
		d := shape.Length(segmentOpt)
		if shape.IsVisible() {
			if length <= l+d {
				if fromStart {
					return shape.PointAtLength(length-l, segmentOpt), true
				}
				return shape.PointAtLength(-(length - l), segmentOpt), true
			}
			lastVisible = index
		}
		l += d
	}

	if lastVisible >= 0 {
		if fromStart {
			return p.segmentEnd(lastVisible), true
		}
		return p.segmentStart(lastVisible), true
	}
	return p.segments[n-1].End, true
}

func (p *Path) PointAtT(t PathT) (Point, bool) {
	n := len(p.segments)
	if n == 0 {
		return Point{}, false
	}
	if t.SegmentIndex < 0 {
		return p.shape(0).PointAtT(0), true
	}
	if t.SegmentIndex >= n {
		return p.shape(n - 1).PointAtT(1), true
	}
	return p.shape(t.SegmentIndex).PointAtT(math.Max(0, math.Min(1, t.Value))), true
}

func (p *Path) Round(precision int) *Path {
	return p.mapPoints(func(q Point) Point { return q.Round(precision) })
}

func (p *Path) Scale(sx, sy float64, origin Point) *Path {
	return p.mapPoints(func(q Point) Point { return q.Scale(sx, sy, origin) })
}

func (p *Path) Translate(tx, ty float64) *Path {
	return p.mapPoints(func(q Point) Point { return q.Translate(tx, ty) })
}

// Transforms apply in place.
func (p *Path) mapPoints(fn func(Point) Point) *Path {
	for i := range p.segments {
		p.segments[i].Segment = p.segments[i].mapPoints(fn)
	}
	return p
}

func (p *Path) SegmentAt(ratio float64, opt *PathOptions) (Segment, bool) {
	index, ok := p.SegmentIndexAt(ratio, opt)
	if !ok {
		return Segment{}, false
	}
	return p.segments[index].Segment, true
}

func (p *Path) SegmentAtLength(length float64, opt *PathOptions) (Segment, bool) {
	index, ok := p.SegmentIndexAtLength(length, opt)
	if !ok {
		return Segment{}, false
	}
	return p.segments[index].Segment, true
}

func (p *Path) SegmentIndexAt(ratio float64, opt *PathOptions) (int, bool) {
	if len(p.segments) == 0 {
		return 0, false
	}
	ratio = math.Max(0, math.Min(1, ratio))
	opt = p.localOptions(opt)
	return p.SegmentIndexAtLength(p.Length(opt)*ratio, opt)
}

// SegmentIndexAtLength finds the visible segment covering length. Negative
// lengths measure from the end; lengths past the end give the last visible
// segment reached.
func (p *Path) SegmentIndexAtLength(length float64, opt *PathOptions) (int, bool) {
	n := len(p.segments)
	if n == 0 {
		return 0, false
	}
	fromStart := true
	if length < 0 {
		fromStart = false
		length = -length
	}
	precision, segmentSubdivisions := p.resolve(opt)

	lastVisible := -1
	l := 0.0
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		shape := p.shape(index)
		d := shape.Length(segmentOptions(precision, segmentSubdivisions, index))
		if shape.IsVisible() {
			if length <= l+d {
				return index, true
			}
			lastVisible = index
		}
		l += d
	}
	return lastVisible, lastVisible >= 0
}

// Serialize is String for valid paths only.
func (p *Path) Serialize() (string, error) {
	if !p.IsValid() {
		return "", ErrInvalidPath
	}
	return p.String(), nil
}

// Start is the start of the first visible segment.
func (p *Path) Start() (Point, bool) {
	n := len(p.segments)
	if n == 0 {
		return Point{}, false
	}
	for i := range p.segments {
		if p.isVisible(i) {
			return p.segmentStart(i), true
		}
	}
	return p.segments[n-1].End, true
}

// End is the end of the last visible segment.
func (p *Path) End() (Point, bool) {
	n := len(p.segments)
	if n == 0 {
		return Point{}, false
	}
	for i := n - 1; i >= 0; i-- {
		if p.isVisible(i) {
			return p.segmentEnd(i), true
		}
	}
	return p.segments[n-1].End, true
}

func (p *Path) TangentAt(ratio float64, opt *PathOptions) *Line {
	if len(p.segments) == 0 {
		return nil
	}
	ratio = math.Max(0, math.Min(1, ratio))
	opt = p.localOptions(opt)
	return p.TangentAtLength(p.Length(opt)*ratio, opt)
}

// TangentAtLength measures from the end for negative lengths. Past either
// end it gives the tangent at the end of the last differentiable segment.
func (p *Path) TangentAtLength(length float64, opt *PathOptions) *Line {
	n := len(p.segments)
	if n == 0 {
		return nil
	}
	fromStart := true
	if length < 0 {
		fromStart = false
		length = -length
	}
	precision, segmentSubdivisions := p.resolve(opt)

	lastValid := -1
	l := 0.0
	for i := 0; i < n; i++ {
		index := i
		if !fromStart {
			index = n - 1 - i
		}
		segmentOpt := segmentOptions(precision, segmentSubdivisions, index)
		shape := p.shape(index)
		d := shape.Length(segmentOpt)
		if p.isSegmentDifferentiable(index) {
			if length <= l+d {
				if fromStart {
					return shape.TangentAtLength(length-l, segmentOpt)
				}
				return shape.TangentAtLength(-(length - l), segmentOpt)
			}
			lastValid = index
		}
		l += d
	}

	if lastValid < 0 {
		return nil
	}
	if fromStart {
		return p.shape(lastValid).TangentAtT(1)
	}
	return p.shape(lastValid).TangentAtT(0)
}

func (p *Path) TangentAtT(t PathT) *Line {
	n := len(p.segments)
	if n == 0 {
		return nil
	}
	if t.SegmentIndex < 0 {
		return p.shape(0).TangentAtT(0)
	}
	if t.SegmentIndex >= n {
		return p.shape(n - 1).TangentAtT(1)
	}
	return p.shape(t.SegmentIndex).TangentAtT(math.Max(0, math.Min(1, t.Value)))
}

// ToPoints flattens the path into one point list per run of visible
// segments.
func (p *Path) ToPoints(opt *PathOptions) [][]Point {
	if len(p.segments) == 0 {
		return nil
	}
	_, segmentSubdivisions := p.resolve(opt)

	var points [][]Point
	var partial []Point
	for i := range p.segments {
		if p.isVisible(i) {
			var subdivisions []Curve
			if i < len(segmentSubdivisions) {
				subdivisions = segmentSubdivisions[i]
			}
			if len(subdivisions) > 0 {
				for _, curve := range subdivisions {
					partial = append(partial, curve.Start)
				}
			} else {
				partial = append(partial, p.segmentStart(i))
			}
		} else if len(partial) > 0 {
			partial = append(partial, p.segmentEnd(i-1))
			points = append(points, partial)
			partial = nil
		}
	}
	if len(partial) > 0 {
		end, _ := p.End()
		points = append(points, append(partial, end))
	}
	return points
}

func (p *Path) ToPolylines(opt *PathOptions) []Polyline {
	points := p.ToPoints(opt)
	if points == nil {
		return nil
	}
	polylines := make([]Polyline, len(points))
	for i, run := range points {
		polylines[i] = Polyline{run}
	}
	return polylines
}

func (p *Path) String() string {
	parts := make([]string, len(p.segments))
	for i, segment := range p.segments {
		parts[i] = segment.Serialize()
	}
	return strings.Join(parts, " ")
}

// Validate makes the path valid by opening it with "M 0 0" when needed.
func (p *Path) Validate() *Path {
	if !p.IsValid() {
		p.mustInsert(0, Moveto(Point{}))
	}
	return p
}
