package dbg

import (
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/linkroute/advanced"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Padding around the scene so that routes hugging the edge stay visible
const drawPadding = 40

// Palette cycled through for the connectors
var routeColors = [][3]float64{
	{0, 1, 1},
	{1, 0.6, 0},
	{0.6, 1, 0.2},
	{1, 0.3, 0.7},
}

// DrawScene renders the elements and the routed connectors of a scene to a
// PNG at path. Routes pair with the scene's links by index. With preview set
// the image is also printed to the terminal (iTerm only).
func DrawScene(scene *advanced.Scene, routes []advanced.Route, scale float64, path string, preview bool) error {
	if scale <= 0 {
		scale = 1
	}
	lines, err := connectors(scene, routes)
	if err != nil {
		return err
	}
	bounds := sceneBounds(scene, lines)

	width := int(scale*bounds.Width) + drawPadding*2
	height := int(scale*bounds.Height) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	face, err := labelFace(12)
	if err != nil {
		return err
	}
	c.SetFontFace(face)

	// Screen coordinates already point y down, so unlike the usual plots
	// there is no flip. Translate for padding, scale, then translate to min.
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-bounds.X, -bounds.Y)

	c.SetLineWidth(2)
	for _, element := range scene.Graph.Elements() {
		box := element.BBox
		c.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		c.SetRGBA(0.3, 0.2, 1, 0.5)
		c.FillPreserve()
		c.SetRGB(0.6, 0.6, 1)
		c.Stroke()

		// Labels go on in native coordinates so that they are not scaled.
		x, y := c.TransformPoint(box.X+box.Width/2, box.Y+box.Height/2)
		c.Push()
		c.Identity()
		c.SetRGB(1, 1, 1)
		c.DrawStringAnchored(ElementName(element), x, y, 0.5, 0.5)
		c.Pop()
	}

	for i, points := range lines {
		color := routeColors[i%len(routeColors)]
		c.SetRGB(color[0], color[1], color[2])
		c.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.Stroke()
		for _, p := range points[1 : len(points)-1] {
			c.DrawCircle(p.X, p.Y, 3/scale)
			c.Fill()
		}
	}

	if err := c.SavePNG(path); err != nil {
		return errors.Wrap(err, "saving scene image")
	}
	if preview {
		imgcat.CatFile(path, os.Stdout)
	}
	return nil
}

func labelFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "loading label font")
	}
	return truetype.NewFace(ttf, &truetype.Options{Size: size}), nil
}
