package dbg

import (
	"math"

	"github.com/osuushi/linkroute/advanced"
)

// The connector a route describes: from the source center through the bend
// points to the target center.
func connector(graph *advanced.Graph, link *advanced.Link, route advanced.Route) ([]advanced.Point, error) {
	view, err := advanced.NewLinkView(graph, link)
	if err != nil {
		return nil, err
	}
	points := make([]advanced.Point, 0, len(route.Points)+2)
	points = append(points, view.SourceBBox.Center())
	points = append(points, route.Points...)
	points = append(points, view.TargetBBox.Center())
	return points, nil
}

// Bounds of the elements and connectors together.
func sceneBounds(scene *advanced.Scene, connectors [][]advanced.Point) advanced.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(p advanced.Point) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for _, element := range scene.Graph.Elements() {
		extend(element.BBox.Origin())
		extend(element.BBox.Corner())
	}
	for _, points := range connectors {
		for _, p := range points {
			extend(p)
		}
	}
	if math.IsInf(minX, 1) {
		return advanced.Rect{}
	}
	return advanced.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func connectors(scene *advanced.Scene, routes []advanced.Route) ([][]advanced.Point, error) {
	result := make([][]advanced.Point, 0, len(routes))
	for i, route := range routes {
		if i >= len(scene.Links) {
			break
		}
		points, err := connector(scene.Graph, scene.Links[i], route)
		if err != nil {
			return nil, err
		}
		result = append(result, points)
	}
	return result, nil
}
