package advanced

import (
	"math"

	"github.com/osuushi/linkroute/internal"
)

// Join the two points with one straight leg and one 45 degree leg, ignoring
// obstacles. When the legs do not meet the route goes straight to to.
func metroFallbackRoute(from, to Point, _ DirectionHints) []Point {
	theta := from.Theta(to)

	a := Point{X: to.X, Y: from.Y}
	b := Point{X: from.X, Y: to.Y}
	if math.Mod(theta, 180) > 90 {
		a, b = b, a
	}
	p1 := b
	if math.Mod(theta, 90) < 45 {
		p1 = a
	}
	l1 := Line{Start: from, End: p1}

	alpha := 90 * math.Ceil(theta/90)
	p2 := internal.FromPolar(l1.SquaredLength(), internal.ToRad(alpha+135, false), p1)
	l2 := Line{Start: to, End: p2}

	points := l1.IntersectionWithLine(l2)
	if len(points) == 0 {
		return []Point{to}
	}
	return []Point{points[0].Round(0), to}
}
