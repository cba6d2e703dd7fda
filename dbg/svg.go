package dbg

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/osuushi/linkroute/advanced"
)

// WriteSVG writes the scene and its routed connectors as an SVG drawing.
// Elements keep their ids, types and parents, so ParseScene reads them back,
// and each connector becomes a <polyline> tagged with its link. A positive
// padding also draws every element box grown by it, dashed. svgo works in
// whole pixels, so coordinates are rounded.
func WriteSVG(w io.Writer, scene *advanced.Scene, routes []advanced.Route, padding float64) error {
	lines, err := connectors(scene, routes)
	if err != nil {
		return err
	}
	bounds := sceneBounds(scene, lines)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := px(scene.Width), px(scene.Height)
	if width == 0 || height == 0 {
		width, height = px(bounds.X+bounds.Width)+drawPadding, px(bounds.Y+bounds.Height)+drawPadding
	}
	canvas.Start(width, height)

	canvas.Gid("elements")
	for _, element := range scene.Graph.Elements() {
		box := element.BBox
		attributes := []string{`fill="none" stroke="black"`, `id="` + element.ID + `"`}
		if element.Type != "" {
			attributes = append(attributes, `data-type="`+element.Type+`"`)
		}
		if element.Parent != "" {
			attributes = append(attributes, `data-parent="`+element.Parent+`"`)
		}
		canvas.Rect(px(box.X), px(box.Y), px(box.Width), px(box.Height), attributes...)
	}
	canvas.Gend()

	if padding > 0 {
		canvas.Gid("obstacles")
		for _, element := range scene.Graph.Elements() {
			box := element.BBox.Inflate(padding, padding)
			canvas.Rect(px(box.X), px(box.Y), px(box.Width), px(box.Height),
				`fill="none" stroke="gray" stroke-dasharray="4 2"`)
		}
		canvas.Gend()
	}

	canvas.Gid("routes")
	for i, points := range lines {
		xs := make([]int, len(points))
		ys := make([]int, len(points))
		for j, p := range points {
			xs[j], ys[j] = px(p.X), px(p.Y)
		}
		canvas.Polyline(xs, ys, `fill="none" stroke="blue"`, `data-route="`+LinkName(scene.Links[i])+`"`)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

// Remembers the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
