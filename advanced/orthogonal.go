package advanced

import (
	"math"

	"github.com/osuushi/linkroute/internal"
)

// Compass bearing of an axis-aligned segment. Empty when the segment is
// diagonal.
type bearing string

const (
	north bearing = "N"
	south bearing = "S"
	east  bearing = "E"
	west  bearing = "W"
)

var opposites = map[bearing]bearing{
	north: south,
	south: north,
	east:  west,
	west:  east,
}

var bearingRadians = map[bearing]float64{
	north: -math.Pi / 2 * 3,
	south: -math.Pi / 2,
	east:  0,
	west:  math.Pi,
}

func getBearing(from, to Point) bearing {
	if from.X == to.X {
		if from.Y > to.Y {
			return north
		}
		return south
	}
	if from.Y == to.Y {
		if from.X > to.X {
			return west
		}
		return east
	}
	return ""
}

// The corner joining p1 and p2 with two perpendicular segments, preferring
// the one outside box.
func freeJoin(p1, p2 Point, box Rect) Point {
	p := Point{X: p1.X, Y: p2.Y}
	if box.ContainsPoint(p) {
		p = Point{X: p2.X, Y: p1.Y}
	}
	return p
}

func boxSizeAlong(box Rect, b bearing) float64 {
	if b == west || b == east {
		return box.Width
	}
	return box.Height
}

func pointBox(p Point) Rect {
	return Rect{X: p.X, Y: p.Y}
}

type partialRoute struct {
	points    []Point
	direction bearing
}

func vertexVertex(from, to Point, previous bearing) partialRoute {
	p1 := Point{X: from.X, Y: to.Y}
	p2 := Point{X: to.X, Y: from.Y}
	d1 := getBearing(from, p1)
	d2 := getBearing(from, p2)
	opposite := opposites[previous]

	p := p2
	if d1 == previous || (d1 != opposite && (d2 == opposite || d2 != previous)) {
		p = p1
	}
	return partialRoute{points: []Point{p}, direction: getBearing(p, to)}
}

func elementVertex(from, to Point, fromBox Rect) partialRoute {
	p := freeJoin(from, to, fromBox)
	return partialRoute{points: []Point{p}, direction: getBearing(p, to)}
}

func vertexElement(from, to Point, toBox Rect, previous bearing) partialRoute {
	points := []Point{{X: from.X, Y: to.Y}, {X: to.X, Y: from.Y}}
	var blockedPoints, freeBearingPoints []Point
	for _, p := range points {
		if toBox.ContainsPoint(p) {
			blockedPoints = append(blockedPoints, p)
			continue
		}
		if getBearing(p, from) != previous {
			freeBearingPoints = append(freeBearingPoints, p)
		}
	}

	if len(freeBearingPoints) > 0 {
		// Prefer carrying on in the previous direction.
		p := freeBearingPoints[0]
		for _, candidate := range freeBearingPoints {
			if getBearing(from, candidate) == previous {
				p = candidate
			}
		}
		return partialRoute{points: []Point{p}, direction: getBearing(p, to)}
	}

	// Every join either lies inside the element or would double back. Step
	// from the end towards the blocked corner by half the box and join that
	// point instead.
	p := points[0]
	if len(blockedPoints) > 0 {
		p = blockedPoints[0]
	}
	p2 := to.Move(p, -boxSizeAlong(toBox, previous)/2)
	p1 := freeJoin(p2, from, toBox)
	return partialRoute{points: []Point{p1, p2}, direction: getBearing(p2, to)}
}

func elementElement(from, to Point, fromBox, toBox Rect) partialRoute {
	route := elementVertex(to, from, toBox)
	p1 := route.points[0]
	if !fromBox.ContainsPoint(p1) {
		return route
	}

	route = elementVertex(from, to, fromBox)
	p2 := route.points[0]
	if !toBox.ContainsPoint(p2) {
		return route
	}

	// Both corners are taken. Meet halfway between the two borders.
	fromBorder := from.Move(p2, -boxSizeAlong(fromBox, getBearing(from, p2))/2)
	toBorder := to.Move(p1, -boxSizeAlong(toBox, getBearing(to, p1))/2)
	mid := Line{Start: fromBorder, End: toBorder}.Midpoint()

	startRoute := elementVertex(from, mid, fromBox)
	endRoute := vertexVertex(mid, to, startRoute.direction)
	return partialRoute{
		points:    []Point{startRoute.points[0], endRoute.points[0]},
		direction: endRoute.direction,
	}
}

// Route between two boxes where one sits inside the other: out past the
// common boundary, then back in.
func insideElement(from, to Point, fromBox, toBox Rect, previous bearing) partialRoute {
	boundary := fromBox.Union(toBox).Inflate(1, 1)

	// Start from whichever end is closer to the boundary.
	reversed := boundary.Center().Distance(to) > boundary.Center().Distance(from)
	start, end := from, to
	if reversed {
		start, end = to, from
	}

	var p1 Point
	if previous != "" {
		// A circle of radius W+H around a point of the box lies wholly
		// outside it.
		p1 = internal.FromPolar(boundary.Width+boundary.Height, bearingRadians[previous], start)
		p1 = boundary.PointNearestToPoint(p1).Move(p1, -1)
	} else {
		p1 = boundary.PointNearestToPoint(start).Move(start, 1)
	}

	p2 := freeJoin(p1, end, boundary)

	var route partialRoute
	if p1.Round(0).Equals(p2.Round(0)) {
		p2 = internal.FromPolar(boundary.Width+boundary.Height, internal.ToRad(p1.Theta(start), false)+math.Pi/2, end)
		p2 = boundary.PointNearestToPoint(p2).Move(end, 1).Round(0)
		p3 := freeJoin(p1, p2, boundary)
		if reversed {
			route.points = []Point{p2, p3, p1}
		} else {
			route.points = []Point{p1, p3, p2}
		}
	} else if reversed {
		route.points = []Point{p2, p1}
	} else {
		route.points = []Point{p1, p2}
	}

	if reversed {
		route.direction = getBearing(p1, to)
	} else {
		route.direction = getBearing(p2, to)
	}
	return route
}

// Orthogonal inserts the corners needed to join the source anchor, the
// vertices and the target anchor with axis-aligned segments. It ignores every
// element but the two ends, and only avoids those by their padded boxes.
func Orthogonal(vertices []Point, opt *Options, view *LinkView) Route {
	o := mergeOptions(opt)
	log := o.logger()
	padding := o.elementPadding()

	sourceBBox := view.SourceBBox.MoveAndExpand(padding)
	targetBBox := view.TargetBBox.MoveAndExpand(padding)

	sourceAnchor := sourceBBox.Center()
	if view.SourceAnchor != nil {
		sourceAnchor = *view.SourceAnchor
	}
	targetAnchor := targetBBox.Center()
	if view.TargetAnchor != nil {
		targetAnchor = *view.TargetAnchor
	}

	// An anchor outside its box grows the box.
	sourceBBox = sourceBBox.Union(pointBox(sourceAnchor))
	targetBBox = targetBBox.Union(pointBox(targetAnchor))

	points := make([]Point, 0, len(vertices)+2)
	points = append(points, sourceAnchor)
	points = append(points, vertices...)
	points = append(points, targetAnchor)

	var previous bearing
	var result []Point
	last := len(points) - 1
	for i := 0; i < last; i++ {
		var route *partialRoute
		from, to := points[i], points[i+1]
		isOrthogonal := getBearing(from, to) != ""

		switch {
		case i == 0 && i+1 == last:
			// Inflate one box so that boxes touching edge to edge count as
			// overlapping.
			if _, ok := sourceBBox.Intersect(targetBBox.Inflate(1, 1)); ok {
				log.Debug("routing between overlapping elements", "from", from, "to", to)
				r := insideElement(from, to, sourceBBox, targetBBox, "")
				route = &r
			} else if !isOrthogonal {
				r := elementElement(from, to, sourceBBox, targetBBox)
				route = &r
			}

		case i == 0:
			if sourceBBox.ContainsPoint(to) {
				r := insideElement(from, to, sourceBBox, pointBox(to).MoveAndExpand(padding), "")
				route = &r
			} else if !isOrthogonal {
				r := elementVertex(from, to, sourceBBox)
				route = &r
			}

		case i+1 == last:
			// Do not run back over the previous segment.
			isOrthogonalLoop := isOrthogonal && getBearing(to, from) == previous
			if targetBBox.ContainsPoint(from) || isOrthogonalLoop {
				r := insideElement(from, to, pointBox(from).MoveAndExpand(padding), targetBBox, previous)
				route = &r
			} else if !isOrthogonal {
				r := vertexElement(from, to, targetBBox, previous)
				route = &r
			}

		case !isOrthogonal:
			r := vertexVertex(from, to, previous)
			route = &r
		}

		if route != nil {
			result = append(result, route.points...)
			previous = route.direction
		} else {
			previous = getBearing(from, to)
		}

		if i+1 < last {
			result = append(result, to)
		}
	}

	return Route{
		Points:        result,
		Perpendicular: o.perpendicular(),
	}
}
