package advanced

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ObstacleMap answers "is this point inside an obstacle?" without scanning
// every obstacle. The plane is cut into square cells of gridSize; each cell
// lists the padded boxes overlapping it, and a query only checks the boxes
// of the cell the point snaps to.
type ObstacleMap struct {
	gridSize  float64
	cells     map[Point][]Rect
	obstacles []Rect
}

func NewObstacleMap(gridSize float64) *ObstacleMap {
	if gridSize <= 0 {
		gridSize = 100
	}
	return &ObstacleMap{
		gridSize: gridSize,
		cells:    make(map[Point][]Rect),
	}
}

// BuildObstacleMap collects the padded boxes of every element of the view's
// graph except the excluded ends, the excluded types, and the ancestors of
// either end.
func BuildObstacleMap(view *LinkView, opt *Options, padding Rect) *ObstacleMap {
	m := NewObstacleMap(opt.MapGridSize)
	if view.Graph == nil {
		return m
	}

	excluded := make(map[string]bool)
	for _, which := range opt.ExcludeEnds {
		if end, ok := view.End(which); ok && end.IsElement() {
			excluded[end.ID] = true
		}
	}
	for _, end := range []End{view.Source, view.Target} {
		if !end.IsElement() {
			continue
		}
		for _, ancestor := range view.Graph.Ancestors(end.ID) {
			excluded[ancestor.ID] = true
		}
	}

	for _, element := range view.Graph.Elements() {
		if excluded[element.ID] || slices.Contains(opt.ExcludeTypes, element.Type) {
			continue
		}
		m.Add(element.BBox.MoveAndExpand(padding))
	}
	return m
}

// Add registers box with every cell between its snapped origin and corner.
// A box with an infinite extent spans no countable set of cells and is only
// kept in Obstacles.
func (m *ObstacleMap) Add(box Rect) {
	m.obstacles = append(m.obstacles, box)
	origin := box.Origin().SnapToGrid(m.gridSize, 0)
	corner := box.Corner().SnapToGrid(m.gridSize, 0)
	if isInfinite(origin) || isInfinite(corner) {
		return
	}
	for x := origin.X; x <= corner.X; x += m.gridSize {
		for y := origin.Y; y <= corner.Y; y += m.gridSize {
			key := Point{X: x, Y: y}
			m.cells[key] = append(m.cells[key], box)
		}
	}
}

func (m *ObstacleMap) IsPointAccessible(p Point) bool {
	for _, obstacle := range m.cells[p.SnapToGrid(m.gridSize, 0)] {
		if obstacle.ContainsPoint(p) {
			return false
		}
	}
	return true
}

func (m *ObstacleMap) Len() int {
	return len(m.obstacles)
}

func (m *ObstacleMap) Obstacles() []Rect {
	return m.obstacles
}

// Cells lists the occupied cells, ordered by row and then column.
func (m *ObstacleMap) Cells() []Point {
	cells := maps.Keys(m.cells)
	slices.SortFunc(cells, func(a, b Point) int {
		switch {
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	return cells
}

// CellObstacles returns the boxes registered with a cell.
func (m *ObstacleMap) CellObstacles(cell Point) []Rect {
	return m.cells[cell]
}

func isInfinite(p Point) bool {
	return math.IsInf(p.X, 0) || math.IsInf(p.Y, 0)
}
