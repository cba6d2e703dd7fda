package internal

import (
	"math"

	"golang.org/x/exp/slices"
)

type hullRecord struct {
	point Point
	index int
	angle float64
}

// Collinearity slack when classifying zero cross products.
const hullAngleThreshold = 1e-10

// ConvexHull runs a Graham scan. The result lists only hull vertices (no
// collinear points), clockwise on screen, starting from the hull point with
// the lowest index in points. Duplicate points appear at most once.
func ConvexHull(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}

	// Lowest y, then highest x. Nothing lies at theta 0 from it except
	// itself.
	start := points[0]
	for _, p := range points[1:] {
		if p.Y < start.Y || (p.Y == start.Y && p.X > start.X) {
			start = p
		}
	}

	sorted := make([]hullRecord, len(points))
	for i, p := range points {
		angle := start.Theta(p)
		if angle == 0 {
			// The start point (and its duplicates) sort last, which puts it
			// first in the hull.
			angle = 360
		}
		sorted[i] = hullRecord{p, i, angle}
	}
	// Equal angles go by descending index so the lower index is popped
	// first.
	slices.SortFunc(sorted, func(a, b hullRecord) int {
		switch {
		case a.angle < b.angle:
			return -1
		case a.angle > b.angle:
			return 1
		}
		return b.index - a.index
	})

	if len(sorted) > 2 {
		// The start record goes on the bottom too, so the scan ends on it.
		sorted = append([]hullRecord{sorted[len(sorted)-1]}, sorted...)
	}

	type recordKey struct {
		point Point
		index int
	}
	inside := map[recordKey]struct{}{}
	var hull []hullRecord

	for len(sorted) > 0 {
		current := sorted[len(sorted)-1]
		sorted = sorted[:len(sorted)-1]
		if _, discarded := inside[recordKey{current.point, current.index}]; discarded {
			continue
		}

		for {
			if len(hull) < 2 {
				hull = append(hull, current)
				break
			}

			last := hull[len(hull)-1]
			secondLast := hull[len(hull)-2]
			hull = hull[:len(hull)-2]

			crossProduct := secondLast.point.cross(last.point, current.point)
			if crossProduct < 0 {
				// Right turn.
				hull = append(hull, secondLast, last, current)
				break
			}

			if crossProduct == 0 {
				angleBetween := last.point.AngleBetween(secondLast.point, current.point)
				switch {
				case math.Abs(angleBetween-180) < hullAngleThreshold:
					// Straight through: last is not a vertex.
					inside[recordKey{last.point, last.index}] = struct{}{}
					hull = append(hull, secondLast)
					continue
				case last.point.Equals(current.point) || secondLast.point.Equals(last.point):
					inside[recordKey{last.point, last.index}] = struct{}{}
					hull = append(hull, secondLast)
					continue
				case math.Abs(math.Mod(angleBetween+1, 360)-1) < hullAngleThreshold:
					// Doubling back: retry last after current.
					hull = append(hull, secondLast)
					sorted = append(sorted, last)
					continue
				}
			}

			// Left turn, or a degenerate turn that fits none of the cases
			// above.
			inside[recordKey{last.point, last.index}] = struct{}{}
			hull = append(hull, secondLast)
		}
	}

	// Drop the duplicated start record.
	if len(hull) > 2 {
		hull = hull[:len(hull)-1]
	}

	lowest := 0
	for i, record := range hull {
		if record.index < hull[lowest].index {
			lowest = i
		}
	}

	result := make([]Point, len(hull))
	for i := range hull {
		result[i] = hull[(lowest+i)%len(hull)].point
	}
	return result
}
