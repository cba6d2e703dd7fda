package advanced

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Route is the list of bend points between a link's two ends. The ends
// themselves are not included.
type Route struct {
	Points []Point
	// Whether the connector should meet the ends perpendicularly.
	Perpendicular bool
	// Direction the last search arrived with. Pass it as Options.Hints to the
	// next routing call of the same chain.
	Hints DirectionHints
	// Path search expansions used across all partial routes.
	Expansions int
	// Number of partial routes that fell back to ignoring obstacles.
	Fallbacks int
}

// A Router computes the bend points for a link through the given vertices.
// Routers never fail: when no clean route exists they fall back to one that
// ignores obstacles.
type Router func(vertices []Point, opt *Options, view *LinkView) Route

var routers = map[string]Router{
	"manhattan":  Manhattan,
	"metro":      Metro,
	"orthogonal": Orthogonal,
}

func LookupRouter(name string) (Router, error) {
	router, ok := routers[name]
	if !ok {
		return nil, errors.Errorf("unknown router %q", name)
	}
	return router, nil
}

func RouterNames() []string {
	names := maps.Keys(routers)
	slices.Sort(names)
	return names
}

// RouteLink routes a link of graph with the named router. An empty name
// picks the link's own router, then manhattan.
func RouteLink(graph *Graph, link *Link, name string, opt *Options) (route Route, err error) {
	defer func() {
		recoveredErr := HandleGeometryPanicRecover(recover())
		if recoveredErr != nil {
			route = Route{}
			err = recoveredErr
		}
	}()
	if name == "" {
		name = link.Router
	}
	if name == "" {
		name = "manhattan"
	}
	router, err := LookupRouter(name)
	if err != nil {
		return Route{}, err
	}
	view, err := NewLinkView(graph, link)
	if err != nil {
		return Route{}, err
	}
	return router(link.Vertices, opt, view), nil
}
