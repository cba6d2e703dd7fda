package advanced

import (
	"fmt"
	"io"
	"os"

	"github.com/JoshVarga/svgparser"
	"github.com/mitchellh/go-homedir"
	"github.com/osuushi/linkroute/internal"
	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

// A Scene is a graph plus the links to route through it, read from an SVG
// drawing:
//
//   - every <rect> is an element. Its id names it (rect-N when missing),
//     data-type sets the type and data-parent the element it is embedded in.
//   - every <path> or <line> with a data-link attribute is a link. Its first
//     and last points are the ends, the points in between are vertices.
//     data-source and data-target attach an end to an element instead of the
//     point. data-router and data-last-change fill in Link.Router and
//     Link.LastEndChange.
type Scene struct {
	Width  float64
	Height float64
	Graph  *Graph
	Links  []*Link
}

func LoadScene(path string) (*Scene, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %q", path)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "opening scene")
	}
	defer file.Close()
	scene, err := ParseScene(file)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", expanded)
	}
	return scene, nil
}

func ParseScene(r io.Reader) (scene *Scene, err error) {
	defer func() {
		recoveredErr := HandleGeometryPanicRecover(recover())
		if recoveredErr != nil {
			scene = nil
			err = recoveredErr
		}
	}()

	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	scene = &Scene{
		Width:  leadingNumber(root.Attributes["width"]),
		Height: leadingNumber(root.Attributes["height"]),
		Graph:  NewGraph(),
	}

	for i, el := range root.FindAll("rect") {
		id := el.Attributes["id"]
		if id == "" {
			id = fmt.Sprintf("rect-%d", i)
		}
		scene.Graph.AddElement(&Element{
			ID:   id,
			Type: el.Attributes["data-type"],
			BBox: Rect{
				X:      optionalNumber(el, "x"),
				Y:      optionalNumber(el, "y"),
				Width:  requiredNumber(el, "width"),
				Height: requiredNumber(el, "height"),
			},
			Parent: el.Attributes["data-parent"],
		})
	}

	for _, el := range root.FindAll("path") {
		if _, ok := el.Attributes["data-link"]; !ok {
			continue
		}
		path, err := internal.ParsePath(el.Attributes["d"])
		if err != nil {
			return nil, errors.Wrapf(err, "link %q", el.Attributes["data-link"])
		}
		scene.Links = append(scene.Links, linkFromPoints(el, pathPoints(path)))
	}

	for _, el := range root.FindAll("line") {
		if _, ok := el.Attributes["data-link"]; !ok {
			continue
		}
		points := []Point{
			{X: optionalNumber(el, "x1"), Y: optionalNumber(el, "y1")},
			{X: optionalNumber(el, "x2"), Y: optionalNumber(el, "y2")},
		}
		scene.Links = append(scene.Links, linkFromPoints(el, points))
	}

	for _, link := range scene.Links {
		for _, end := range []End{link.Source, link.Target} {
			if end.IsElement() {
				if _, ok := scene.Graph.Element(end.ID); !ok {
					fatalf("link %q: unknown element %q", link.ID, end.ID)
				}
			}
		}
	}
	return scene, nil
}

func linkFromPoints(el *svgparser.Element, points []Point) *Link {
	id := el.Attributes["data-link"]
	if len(points) < 2 {
		fatalf("link %q: at least 2 points are required", id)
	}
	link := &Link{
		ID:            id,
		Source:        PointEnd(points[0]),
		Target:        PointEnd(points[len(points)-1]),
		Vertices:      points[1 : len(points)-1],
		Router:        el.Attributes["data-router"],
		LastEndChange: el.Attributes["data-last-change"],
	}
	if source := el.Attributes["data-source"]; source != "" {
		link.Source = ElementEnd(source)
	}
	if target := el.Attributes["data-target"]; target != "" {
		link.Target = ElementEnd(target)
	}
	return link
}

// The end points of the drawn segments, in order.
func pathPoints(path *Path) []Point {
	var points []Point
	for _, segment := range path.Segments() {
		if segment.Type == internal.SegmentClosepath {
			continue
		}
		points = append(points, segment.End)
	}
	return points
}

// Canvas sizes may carry units ("640px"), which are ignored.
func leadingNumber(value string) float64 {
	num, _ := strconv.ParseFloat([]byte(value))
	return num
}

func optionalNumber(el *svgparser.Element, name string) float64 {
	if _, ok := el.Attributes[name]; !ok {
		return 0
	}
	return requiredNumber(el, name)
}

func requiredNumber(el *svgparser.Element, name string) float64 {
	value, ok := el.Attributes[name]
	if !ok {
		fatalf("<%s> is missing %s", el.Name, name)
	}
	num, n := strconv.ParseFloat([]byte(value))
	if n == 0 || n != len(value) {
		fatalf("<%s> has a bad %s %q", el.Name, name, value)
	}
	return num
}

// RouteAll routes every link of the scene, in order. An empty router name
// uses each link's own router.
func (s *Scene) RouteAll(name string, opt *Options) ([]Route, error) {
	routes := make([]Route, 0, len(s.Links))
	for _, link := range s.Links {
		route, err := RouteLink(s.Graph, link, name, opt)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}
