package advanced

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// An Element is a box on the canvas that links connect to and route around.
// Parent names the element it is embedded in, if any.
type Element struct {
	ID     string
	Type   string
	BBox   Rect
	Parent string
}

// Graph is a snapshot of the elements a link is routed among.
type Graph struct {
	elements []*Element
	byID     map[string]*Element
}

func NewGraph(elements ...*Element) *Graph {
	g := &Graph{byID: make(map[string]*Element)}
	for _, element := range elements {
		g.AddElement(element)
	}
	return g
}

// AddElement replaces any element with the same ID.
func (g *Graph) AddElement(element *Element) {
	if existing, ok := g.byID[element.ID]; ok {
		i := slices.Index(g.elements, existing)
		g.elements[i] = element
	} else {
		g.elements = append(g.elements, element)
	}
	g.byID[element.ID] = element
}

func (g *Graph) Elements() []*Element {
	return g.elements
}

func (g *Graph) Element(id string) (*Element, bool) {
	element, ok := g.byID[id]
	return element, ok
}

// Ancestors walks the Parent chain, nearest first. A chain that loops back on
// itself stops at the repeat.
func (g *Graph) Ancestors(id string) []*Element {
	var ancestors []*Element
	seen := map[string]bool{id: true}
	element, ok := g.byID[id]
	for ok && element.Parent != "" && !seen[element.Parent] {
		seen[element.Parent] = true
		element, ok = g.byID[element.Parent]
		if ok {
			ancestors = append(ancestors, element)
		}
	}
	return ancestors
}

// An End is where a link starts or stops: an element when ID is set,
// otherwise a bare point.
type End struct {
	ID    string
	Point Point
}

func ElementEnd(id string) End { return End{ID: id} }
func PointEnd(p Point) End     { return End{Point: p} }

func (e End) IsElement() bool { return e.ID != "" }

// Which end of a link was changed last.
const (
	EndSource = "source"
	EndTarget = "target"
)

// A Link connects two ends through optional user vertices.
type Link struct {
	ID            string
	Source        End
	Target        End
	Vertices      []Point
	Router        string
	LastEndChange string
}

// LinkView is everything a router needs to know about one link: its ends
// resolved to boxes, and the graph the obstacles come from. Anchors, when
// set, replace the box centers as the points the route leaves from and
// arrives at.
type LinkView struct {
	Graph         *Graph
	Source        End
	Target        End
	SourceBBox    Rect
	TargetBBox    Rect
	SourceAnchor  *Point
	TargetAnchor  *Point
	LastEndChange string
}

// NewLinkView resolves the link's ends against the graph. A point end becomes
// an empty box at that point.
func NewLinkView(graph *Graph, link *Link) (view *LinkView, err error) {
	defer func() {
		recoveredErr := HandleGeometryPanicRecover(recover())
		if recoveredErr != nil {
			view = nil
			err = errors.Wrapf(recoveredErr, "link %q", link.ID)
		}
	}()
	if graph == nil {
		graph = NewGraph()
	}
	return &LinkView{
		Graph:         graph,
		Source:        link.Source,
		Target:        link.Target,
		SourceBBox:    graph.endBBox(link.Source),
		TargetBBox:    graph.endBBox(link.Target),
		LastEndChange: link.LastEndChange,
	}, nil
}

// End looks up an end by name, "source" or "target".
func (v *LinkView) End(which string) (End, bool) {
	switch which {
	case EndSource:
		return v.Source, true
	case EndTarget:
		return v.Target, true
	}
	return End{}, false
}

func (g *Graph) endBBox(end End) Rect {
	if !end.IsElement() {
		return Rect{X: end.Point.X, Y: end.Point.Y}
	}
	element, ok := g.byID[end.ID]
	if !ok {
		fatalf("unknown element %q", end.ID)
	}
	return element.BBox
}
