package advanced

import "github.com/osuushi/linkroute/internal"

type Point = internal.Point
type Line = internal.Line
type Rect = internal.Rect
type Ellipse = internal.Ellipse
type Polyline = internal.Polyline
type Polygon = internal.Polygon
type Curve = internal.Curve
type Path = internal.Path
type Segment = internal.Segment
type Shape = internal.Shape
