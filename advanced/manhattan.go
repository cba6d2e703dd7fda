package advanced

import (
	"container/heap"
	"math"

	"golang.org/x/exp/slices"
)

// Manhattan routes a link along horizontal and vertical segments around the
// other elements of the graph, using an A* search over a grid of opt.Step.
func Manhattan(vertices []Point, opt *Options, view *LinkView) Route {
	o := mergeOptions(opt)
	o.resolve(false)
	return findGridRoute(vertices, o, view)
}

// Metro is Manhattan with diagonal moves. Its fallback bends at 45 degrees.
func Metro(vertices []Point, opt *Options, view *LinkView) Route {
	o := mergeOptions(opt)
	o.resolve(true)
	return findGridRoute(vertices, o, view)
}

// One end of a partial route: a padded element box or a vertex.
type terminal struct {
	box   Rect
	isBox bool
	point Point
}

func boxTerminal(box Rect) terminal   { return terminal{box: box, isBox: true} }
func pointTerminal(p Point) terminal { return terminal{point: p} }

func (t terminal) center() Point {
	if t.isBox {
		return t.box.Center()
	}
	return t.point
}

// The grid points a search may start or stop at. A vertex is its own snapped
// point. A box gets one point per allowed side, on the box edge facing that
// side and pushed one step further out if snapping left it inside.
func (t terminal) points(sides []string, step float64) []Point {
	if !t.isBox {
		return []Point{t.point.SnapToGrid(step, 0)}
	}
	var points []Point
	center := t.box.Center()
	for _, side := range sideVectors {
		if !slices.Contains(sides, side.name) {
			continue
		}
		point := center.Offset(side.x*t.box.Width/2, side.y*t.box.Height/2).SnapToGrid(step, 0)
		if t.box.ContainsPoint(point) {
			point = point.Offset(side.x*step, side.y*step)
		}
		points = append(points, point)
	}
	return points
}

var sideVectors = []struct {
	name string
	x, y float64
}{
	{"right", 1, 0},
	{"bottom", 0, 1},
	{"left", -1, 0},
	{"top", 0, -1},
}

func findGridRoute(vertices []Point, o *Options, view *LinkView) Route {
	log := o.logger()
	padding := o.paddingBox()

	// Route from the end that did not just move, so the route keeps its shape
	// while the other end is dragged around.
	reversed := view.LastEndChange == EndSource
	sourceBBox := view.SourceBBox.MoveAndExpand(padding)
	targetBBox := view.TargetBBox.MoveAndExpand(padding)
	if reversed {
		sourceBBox, targetBBox = targetBBox, sourceBBox
		vertices = slices.Clone(vertices)
		slices.Reverse(vertices)
	}

	isPointObstacle := o.IsPointObstacle
	if isPointObstacle == nil {
		obstacles := BuildObstacleMap(view, o, padding)
		log.Debug("built obstacle map", "obstacles", obstacles.Len(), "cells", len(obstacles.cells))
		isPointObstacle = func(p Point) bool { return !obstacles.IsPointAccessible(p) }
	}

	search := &gridSearch{
		options:         o,
		isPointObstacle: isPointObstacle,
		reversed:        reversed,
		hints:           o.Hints,
	}
	endingAtPoint := !view.Source.IsElement() || !view.Target.IsElement()

	var result []Point
	tailPoint := sourceBBox.Center()
	from := boxTerminal(sourceBBox)
	for i := 0; i <= len(vertices); i++ {
		var partialRoute []Point
		var to terminal
		if i < len(vertices) {
			to = pointTerminal(vertices[i])
		} else {
			to = boxTerminal(targetBBox)
			if endingAtPoint && o.DraggingRoute != nil {
				log.Debug("using dragging route", "from", from.center(), "to", to.center())
				partialRoute = o.DraggingRoute(from.center(), to.center(), o)
			}
		}

		if partialRoute == nil {
			log.Debug("finding partial route", "from", from.center(), "to", to.center())
			partialRoute = search.find(from, to)
		}

		// Consecutive partial routes share their joint.
		if len(partialRoute) > 0 && partialRoute[0].Equals(tailPoint) {
			partialRoute = partialRoute[1:]
		}
		if len(partialRoute) > 0 {
			tailPoint = partialRoute[len(partialRoute)-1]
		}
		result = append(result, partialRoute...)
		from = to
	}

	if reversed {
		slices.Reverse(result)
	}
	return Route{
		Points:        result,
		Perpendicular: o.perpendicular(),
		Hints:         search.hints,
		Expansions:    search.expansions,
		Fallbacks:     search.fallbacks,
	}
}

type gridSearch struct {
	options         *Options
	isPointObstacle func(Point) bool
	reversed        bool
	hints           DirectionHints
	expansions      int
	fallbacks       int
}

// A searchNode is one grid point reached by the search.
type searchNode struct {
	point    Point
	parent   *searchNode
	cost     float64 // from the start, without penalties
	total    float64 // cost + estimate + penalty; the queue order
	dirIndex int     // direction taken to get here
	seq      int
	index    int
	closed   bool
}

// The open set. Among equal totals the node queued last comes out first.
type nodeQueue []*searchNode

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].total != q[j].total {
		return q[i].total < q[j].total
	}
	return q[i].seq > q[j].seq
}
func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x interface{}) {
	node := x.(*searchNode)
	node.index = len(*q)
	*q = append(*q, node)
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[:n-1]
	return node
}

// find runs A* from one terminal to the other. The search aims at the single
// reachable end point cheapest to reach from the start center, and falls back
// when there is none or the loop budget runs out.
func (s *gridSearch) find(from, to terminal) []Point {
	o := s.options
	log := o.logger()
	step := o.Step

	startSides, endSides := o.StartDirections, o.EndDirections
	if s.reversed {
		startSides, endSides = endSides, startSides
	}
	startSet := from.points(startSides, step)
	endSet := to.points(endSides, step)

	startCenter := from.center()
	if len(startSet) == 1 {
		startCenter = startSet[0]
	}
	endCenter := to.center()
	if len(endSet) == 1 {
		endCenter = endSet[0]
	}

	var endPoints []Point
	for _, p := range endSet {
		if !s.isPointObstacle(p) {
			endPoints = append(endPoints, p.SnapToGrid(step, 0))
		}
	}

	if len(endPoints) > 0 && len(startSet) > 0 {
		endPoint := endPoints[0]
		bestCost := o.EstimateCost(startCenter, endPoint)
		for _, p := range endPoints[1:] {
			if cost := o.EstimateCost(startCenter, p); cost < bestCost {
				endPoint, bestCost = p, cost
			}
		}

		if route, ok := s.search(startSet, startCenter, endPoint); ok {
			return route
		}
		log.Debug("loop budget exhausted", "maximumLoops", o.MaximumLoops)
	} else {
		log.Debug("no reachable end point", "from", startCenter, "to", endCenter)
	}

	s.fallbacks++
	log.Debug("using fallback route", "from", startCenter, "to", endCenter)
	return o.FallbackRoute(startCenter, endCenter, s.hints)
}

func (s *gridSearch) search(startSet []Point, startCenter, endPoint Point) ([]Point, bool) {
	o := s.options
	directions := o.Directions
	numDirections := len(directions)

	nodes := make(map[Point]*searchNode)
	open := &nodeQueue{}
	seq := 0
	enqueue := func(node *searchNode) {
		seq++
		node.seq = seq
		heap.Push(open, node)
	}

	for _, p := range startSet {
		p = p.SnapToGrid(o.Step, 0)
		if _, ok := nodes[p]; ok {
			continue
		}
		dirIndex, ok := s.hints[p.String()]
		if !ok {
			dirIndex = directionIndex(startCenter, p, numDirections)
		}
		node := &searchNode{point: p, dirIndex: dirIndex, total: o.EstimateCost(p, endPoint)}
		nodes[p] = node
		enqueue(node)
	}

	for loops := o.MaximumLoops; open.Len() > 0 && loops > 0; loops-- {
		current := heap.Pop(open).(*searchNode)
		s.expansions++
		if current.point.Equals(endPoint) {
			s.hints = DirectionHints{current.point.String(): current.dirIndex}
			return reconstructRoute(current), true
		}
		current.closed = true

		for dirIndex, direction := range directions {
			change := directionChange(dirIndex, current.dirIndex, numDirections)
			if change > o.MaxAllowedDirectionChange {
				continue
			}

			neighborPoint := current.point.Offset(direction.OffsetX, direction.OffsetY)
			neighbor, seen := nodes[neighborPoint]
			if seen && neighbor.closed {
				continue
			}
			if s.isPointObstacle(neighborPoint) {
				continue
			}

			cost := current.cost + direction.Cost
			if seen && cost >= neighbor.cost {
				continue
			}
			total := cost + o.EstimateCost(neighborPoint, endPoint) + o.penalty(change)
			if !seen {
				neighbor = &searchNode{point: neighborPoint}
				nodes[neighborPoint] = neighbor
			}
			neighbor.parent = current
			neighbor.dirIndex = dirIndex
			neighbor.cost = cost
			neighbor.total = total
			if seen {
				heap.Fix(open, neighbor.index)
			} else {
				enqueue(neighbor)
			}
		}
	}
	return nil, false
}

// Keep the points where the route changes direction, plus both ends.
func reconstructRoute(node *searchNode) []Point {
	var route []Point
	var previousDiff Point
	current := node
	for current.parent != nil {
		diff := current.parent.point.Sub(current.point)
		if !diff.Equals(previousDiff) {
			route = append(route, current.point)
			previousDiff = diff
		}
		current = current.parent
	}
	route = append(route, current.point)
	slices.Reverse(route)
	return route
}

// The bucket of the direction wheel the move from start to end falls in,
// numbered the same way as the search directions.
func directionIndex(start, end Point, numDirections int) int {
	bucket := 360 / float64(numDirections)
	q := int(math.Floor(start.Theta(end) / bucket))
	return (numDirections - q) % numDirections
}

func directionChange(a, b, numDirections int) int {
	change := a - b
	if change < 0 {
		change = -change
	}
	if change > numDirections/2 {
		change = numDirections - change
	}
	return change
}

// Join the two points with a single elbow, ignoring obstacles. The elbow goes
// vertical first when the hint for from says the search last moved along an
// odd (vertical) direction.
func manhattanFallbackRoute(from, to Point, hints DirectionHints) []Point {
	point := Point{X: to.X, Y: from.Y}
	if hints[from.String()]%2 == 1 {
		point = Point{X: from.X, Y: to.Y}
	}
	return []Point{point, to}
}
