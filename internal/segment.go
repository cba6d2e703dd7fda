package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

type SegmentType byte

const (
	SegmentMoveto    SegmentType = 'M'
	SegmentLineto    SegmentType = 'L'
	SegmentCurveto   SegmentType = 'C'
	SegmentClosepath SegmentType = 'Z'
)

func (t SegmentType) String() string {
	switch t {
	case SegmentMoveto:
		return "Moveto"
	case SegmentLineto:
		return "Lineto"
	case SegmentCurveto:
		return "Curveto"
	case SegmentClosepath:
		return "Closepath"
	}
	return fmt.Sprintf("SegmentType(%q)", byte(t))
}

// Segment is the stored form of one path command. Only the fields its Type
// needs are meaningful: a Closepath carries nothing, since its end is the end
// of the Moveto that starts its subpath. The start of every segment is the
// end of the one before it.
type Segment struct {
	Type          SegmentType
	ControlPoint1 Point
	ControlPoint2 Point
	End           Point
}

func Moveto(end Point) Segment { return Segment{Type: SegmentMoveto, End: end} }
func Lineto(end Point) Segment { return Segment{Type: SegmentLineto, End: end} }
func Curveto(controlPoint1, controlPoint2, end Point) Segment {
	return Segment{Type: SegmentCurveto, ControlPoint1: controlPoint1, ControlPoint2: controlPoint2, End: end}
}
func Closepath() Segment { return Segment{Type: SegmentClosepath} }

// CreateSegments builds the segments for one path command and its
// arguments. Extra argument groups chain: a Moveto followed by more
// coordinates continues as Linetos, and Lineto/Curveto repeat.
func CreateSegments(command byte, coords ...float64) ([]Segment, error) {
	var name string
	var arity int
	switch command {
	case 'M':
		name, arity = "Moveto", 2
	case 'L':
		name, arity = "Lineto", 2
	case 'C':
		name, arity = "Curveto", 6
	case 'Z', 'z':
		if len(coords) > 0 {
			return nil, errors.New("Closepath constructor expects no arguments.")
		}
		return []Segment{Closepath()}, nil
	default:
		return nil, errors.Errorf("%c is not a recognized path segment type.", command)
	}

	if len(coords) == 0 {
		return nil, errors.Errorf("%s constructor expects %d coordinates (none provided).", name, arity)
	}
	if remainder := len(coords) % arity; remainder != 0 {
		// Only the trailing incomplete group is reported, like a chained
		// command that ran out of arguments.
		if len(coords) > arity && command == 'M' {
			name, arity = "Lineto", 2
		}
		return nil, errors.Errorf("%s constructor expects %d coordinates (%d coordinates provided).", name, arity, remainder)
	}

	segments := make([]Segment, 0, len(coords)/arity)
	for i := 0; i < len(coords); i += arity {
		switch command {
		case 'M':
			end := Point{coords[i], coords[i+1]}
			if i == 0 {
				segments = append(segments, Moveto(end))
			} else {
				segments = append(segments, Lineto(end))
			}
		case 'L':
			segments = append(segments, Lineto(Point{coords[i], coords[i+1]}))
		case 'C':
			segments = append(segments, Curveto(
				Point{coords[i], coords[i+1]},
				Point{coords[i+2], coords[i+3]},
				Point{coords[i+4], coords[i+5]},
			))
		}
	}
	return segments, nil
}

// Serialize writes the segment as path data.
func (s Segment) Serialize() string {
	switch s.Type {
	case SegmentCurveto:
		return fmt.Sprintf("C %s %s %s %s %s %s",
			formatNumber(s.ControlPoint1.X), formatNumber(s.ControlPoint1.Y),
			formatNumber(s.ControlPoint2.X), formatNumber(s.ControlPoint2.Y),
			formatNumber(s.End.X), formatNumber(s.End.Y))
	case SegmentClosepath:
		return "Z"
	}
	return fmt.Sprintf("%c %s %s", byte(s.Type), formatNumber(s.End.X), formatNumber(s.End.Y))
}

func (s Segment) Equals(other Segment) bool {
	if s.Type != other.Type {
		return false
	}
	switch s.Type {
	case SegmentClosepath:
		return true
	case SegmentCurveto:
		return s.ControlPoint1.Equals(other.ControlPoint1) &&
			s.ControlPoint2.Equals(other.ControlPoint2) &&
			s.End.Equals(other.End)
	}
	return s.End.Equals(other.End)
}

func (s Segment) mapPoints(fn func(Point) Point) Segment {
	switch s.Type {
	case SegmentClosepath:
	case SegmentCurveto:
		s.ControlPoint1 = fn(s.ControlPoint1)
		s.ControlPoint2 = fn(s.ControlPoint2)
		s.End = fn(s.End)
	default:
		s.End = fn(s.End)
	}
	return s
}

// SegmentShape is the geometry of a segment placed in a path, with its start
// resolved. Lengths and parameters are local to the segment.
type SegmentShape interface {
	BBox() (Rect, bool)
	ClosestPointT(p Point, opt *CurveOptions) float64
	DivideAtLength(length float64, opt *CurveOptions) (Segment, Segment)
	DivideAtT(t float64) (Segment, Segment)
	IsDifferentiable() bool
	IsVisible() bool
	Length(opt *CurveOptions) float64
	LengthAtT(t float64, opt *CurveOptions) float64
	PointAtLength(length float64, opt *CurveOptions) Point
	PointAtT(t float64) Point
	Subdivisions(precision int) []Curve
	TangentAtLength(length float64, opt *CurveOptions) *Line
	TangentAtT(t float64) *Line
}

// A Moveto has no extent. Every query collapses onto its end point.
type movetoShape struct {
	end Point
}

func (m movetoShape) BBox() (Rect, bool)                         { return Rect{}, false }
func (m movetoShape) ClosestPointT(Point, *CurveOptions) float64 { return 1 }
func (m movetoShape) DivideAtLength(float64, *CurveOptions) (Segment, Segment) {
	return Moveto(m.end), Moveto(m.end)
}
func (m movetoShape) DivideAtT(float64) (Segment, Segment)         { return Moveto(m.end), Moveto(m.end) }
func (m movetoShape) IsDifferentiable() bool                       { return false }
func (m movetoShape) IsVisible() bool                              { return false }
func (m movetoShape) Length(*CurveOptions) float64                 { return 0 }
func (m movetoShape) LengthAtT(float64, *CurveOptions) float64     { return 0 }
func (m movetoShape) PointAtLength(float64, *CurveOptions) Point   { return m.end }
func (m movetoShape) PointAtT(float64) Point                       { return m.end }
func (m movetoShape) Subdivisions(int) []Curve                     { return nil }
func (m movetoShape) TangentAtLength(float64, *CurveOptions) *Line { return nil }
func (m movetoShape) TangentAtT(float64) *Line                     { return nil }

type linetoShape struct {
	line Line
}

func (l linetoShape) BBox() (Rect, bool) { return l.line.BBox(), true }

func (l linetoShape) ClosestPointT(p Point, _ *CurveOptions) float64 {
	return l.line.ClosestPointNormalizedLength(p)
}

func (l linetoShape) DivideAtLength(length float64, _ *CurveOptions) (Segment, Segment) {
	head, tail := l.line.DivideAtLength(length)
	return Lineto(head.End), Lineto(tail.End)
}

func (l linetoShape) DivideAtT(t float64) (Segment, Segment) {
	head, tail := l.line.DivideAt(t)
	return Lineto(head.End), Lineto(tail.End)
}

func (l linetoShape) IsDifferentiable() bool       { return l.line.IsDifferentiable() }
func (l linetoShape) IsVisible() bool              { return true }
func (l linetoShape) Length(*CurveOptions) float64 { return l.line.Length() }
func (l linetoShape) Subdivisions(int) []Curve     { return nil }
func (l linetoShape) PointAtT(t float64) Point     { return l.line.PointAt(t) }
func (l linetoShape) TangentAtT(t float64) *Line   { return l.line.TangentAt(t) }

func (l linetoShape) LengthAtT(t float64, _ *CurveOptions) float64 {
	if t <= 0 {
		return 0
	}
	length := l.line.Length()
	if t >= 1 {
		return length
	}
	return length * t
}

func (l linetoShape) PointAtLength(length float64, _ *CurveOptions) Point {
	return l.line.PointAtLength(length)
}

func (l linetoShape) TangentAtLength(length float64, _ *CurveOptions) *Line {
	return l.line.TangentAtLength(length)
}

// A Closepath behaves as a line back to its subpath start. When divided, the
// first half stays a Closepath if the cut was at the very end.
type closepathShape struct {
	linetoShape
}

func (c closepathShape) DivideAtLength(length float64, _ *CurveOptions) (Segment, Segment) {
	head, tail := c.line.DivideAtLength(length)
	return c.divided(head, tail)
}

func (c closepathShape) DivideAtT(t float64) (Segment, Segment) {
	head, tail := c.line.DivideAt(t)
	return c.divided(head, tail)
}

func (c closepathShape) divided(head, tail Line) (Segment, Segment) {
	if tail.IsDifferentiable() {
		return Lineto(head.End), Lineto(tail.End)
	}
	return Closepath(), Lineto(tail.End)
}

type curvetoShape struct {
	curve Curve
}

func (c curvetoShape) BBox() (Rect, bool) { return c.curve.BBox(), true }

func (c curvetoShape) ClosestPointT(p Point, opt *CurveOptions) float64 {
	return c.curve.ClosestPointT(p, opt)
}

func (c curvetoShape) DivideAtLength(length float64, opt *CurveOptions) (Segment, Segment) {
	return curvetoPair(c.curve.DivideAtLength(length, opt))
}

func (c curvetoShape) DivideAtT(t float64) (Segment, Segment) {
	return curvetoPair(c.curve.DivideAtT(t))
}

func curvetoPair(head, tail Curve) (Segment, Segment) {
	return Curveto(head.ControlPoint1, head.ControlPoint2, head.End),
		Curveto(tail.ControlPoint1, tail.ControlPoint2, tail.End)
}

func (c curvetoShape) IsDifferentiable() bool             { return c.curve.IsDifferentiable() }
func (c curvetoShape) IsVisible() bool                    { return true }
func (c curvetoShape) Length(opt *CurveOptions) float64   { return c.curve.Length(opt) }
func (c curvetoShape) PointAtT(t float64) Point           { return c.curve.PointAtT(t) }
func (c curvetoShape) Subdivisions(precision int) []Curve { return c.curve.GetSubdivisions(precision) }
func (c curvetoShape) TangentAtT(t float64) *Line         { return c.curve.TangentAtT(t) }

func (c curvetoShape) LengthAtT(t float64, opt *CurveOptions) float64 {
	return c.curve.LengthAtT(t, opt)
}

func (c curvetoShape) PointAtLength(length float64, opt *CurveOptions) Point {
	return c.curve.PointAtLength(length, opt)
}

func (c curvetoShape) TangentAtLength(length float64, opt *CurveOptions) *Line {
	return c.curve.TangentAtLength(length, opt)
}

// PathPiece is a Line or a Curve that can become a path segment.
type PathPiece interface {
	pathSegment() (start Point, segment Segment)
}

func (l Line) pathSegment() (Point, Segment) { return l.Start, Lineto(l.End) }

func (c Curve) pathSegment() (Point, Segment) {
	return c.Start, Curveto(c.ControlPoint1, c.ControlPoint2, c.End)
}
