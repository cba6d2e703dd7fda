// Geometry primitives and obstacle-aware link routing for 2-D diagrams.
//
// A link joins two ends, each either an element (a box on the canvas) or a
// bare point, optionally through user vertices. The routers compute the bend
// points of the connector: "orthogonal" inserts the corners needed to keep
// every segment axis aligned, while "manhattan" and "metro" search a grid
// around the other elements, falling back to a route that ignores them when
// no clean route is found.
//
// The advanced package exposes the routers and their options directly.
package linkroute

import (
	"github.com/osuushi/linkroute/advanced"
	"github.com/osuushi/linkroute/internal"
	"github.com/pkg/errors"
)

type Point = advanced.Point
type Line = advanced.Line
type Rect = advanced.Rect
type Ellipse = advanced.Ellipse
type Polyline = advanced.Polyline
type Polygon = advanced.Polygon
type Curve = advanced.Curve
type Path = advanced.Path
type Shape = advanced.Shape

type Options = advanced.Options
type RouteResult = advanced.Route
type Graph = advanced.Graph
type Element = advanced.Element
type Link = advanced.Link
type LinkView = advanced.LinkView
type End = advanced.End

func NewGraph(elements ...*Element) *Graph { return advanced.NewGraph(elements...) }
func ElementEnd(id string) End             { return advanced.ElementEnd(id) }
func PointEnd(p Point) End                 { return advanced.PointEnd(p) }

// NewLinkView resolves link's ends against graph. It fails when an end names
// an element graph does not have.
func NewLinkView(graph *Graph, link *Link) (*LinkView, error) {
	return advanced.NewLinkView(graph, link)
}

// Route runs the named router ("manhattan", "metro" or "orthogonal") for
// view through vertices. Only an unknown name or a missing view fails; the
// routers themselves always produce a route.
func Route(name string, vertices []Point, opt *Options, view *LinkView) (result RouteResult, err error) {
	defer func() {
		recoveredErr := advanced.HandleGeometryPanicRecover(recover())
		if recoveredErr != nil {
			result = RouteResult{}
			err = recoveredErr
		}
	}()
	router, err := advanced.LookupRouter(name)
	if err != nil {
		return RouteResult{}, err
	}
	if view == nil {
		return RouteResult{}, errors.Errorf("router %q needs a link view", name)
	}
	return router(vertices, opt, view), nil
}

// RouteLink resolves link's ends in graph and routes it. An empty name uses
// the link's own router, then manhattan.
func RouteLink(graph *Graph, link *Link, name string, opt *Options) (RouteResult, error) {
	return advanced.RouteLink(graph, link, name, opt)
}

// ParsePoint accepts "x@y" or "x y". Unparseable coordinates become NaN.
func ParsePoint(s string) Point {
	return internal.ParsePoint(s)
}

// ParsePath reads SVG-style path data made of M, L, C and Z commands.
func ParsePath(data string) (*Path, error) {
	return internal.ParsePath(data)
}

// CurveThroughPoints fits a smooth curve through the points, one cubic Bezier
// per consecutive pair. It needs at least two points.
func CurveThroughPoints(points []Point) (result []Curve, err error) {
	defer func() {
		recoveredErr := advanced.HandleGeometryPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.CurveThroughPoints(points), nil
}

// CurvePathThroughPoints is CurveThroughPoints as a single path.
func CurvePathThroughPoints(points []Point) (*Path, error) {
	curves, err := CurveThroughPoints(points)
	if err != nil {
		return nil, err
	}
	pieces := make([]internal.PathPiece, len(curves))
	for i, curve := range curves {
		pieces[i] = curve
	}
	return internal.PathFromPieces(pieces...), nil
}

// Intersects reports whether two shapes touch or overlap. Closed shapes
// include their interior. A bare Curve pairs with nothing; wrap it in a
// path first.
func Intersects(shape1, shape2 Shape) (result bool, err error) {
	err = internal.Catch(func() {
		result = internal.Exists(shape1, shape2)
	})
	return result, err
}

// ConvexHull returns the hull vertices of points, clockwise on screen.
func ConvexHull(points []Point) []Point {
	return internal.ConvexHull(points)
}
