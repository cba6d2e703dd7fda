package advanced

import (
	"io"
	"log/slog"
	"math"

	"github.com/jinzhu/copier"
	"golang.org/x/exp/slices"
)

// A Direction is one move the path search may take from a grid point.
type Direction struct {
	OffsetX float64 `yaml:"offsetX" toml:"offsetX"`
	OffsetY float64 `yaml:"offsetY" toml:"offsetY"`
	Cost    float64 `yaml:"cost" toml:"cost"`
}

// DirectionHints maps a grid point (in Point.String form) to the index of the
// direction the search arrived there with. A route returns the hint for its
// last point; passing it back in keeps the next search from turning sharply
// at the joint.
type DirectionHints map[string]int

// Options configure the routers. Zero fields take their value from
// DefaultOptions, so a zero MaximumLoops or MaxAllowedDirectionChange means
// the default, not zero. The function fields can only be set from code.
type Options struct {
	// Grid step of the path search.
	Step float64 `yaml:"step,omitempty" toml:"step,omitempty"`
	// Whether the connector should meet the element perpendicularly.
	Perpendicular *bool `yaml:"perpendicular,omitempty" toml:"perpendicular,omitempty"`
	// Cell size of the obstacle map.
	MapGridSize float64 `yaml:"mapGridSize,omitempty" toml:"mapGridSize,omitempty"`
	// "source" and/or "target": ends whose elements are not obstacles.
	ExcludeEnds []string `yaml:"excludeEnds,omitempty" toml:"excludeEnds,omitempty"`
	// Element types that are not obstacles.
	ExcludeTypes []string `yaml:"excludeTypes,omitempty" toml:"excludeTypes,omitempty"`
	// Search budget before falling back to a route that ignores obstacles.
	MaximumLoops int `yaml:"maximumLoops,omitempty" toml:"maximumLoops,omitempty"`
	// Sides of the source and target boxes a route may leave and enter by.
	StartDirections []string `yaml:"startDirections,omitempty" toml:"startDirections,omitempty"`
	EndDirections   []string `yaml:"endDirections,omitempty" toml:"endDirections,omitempty"`
	// Largest turn, in direction buckets, taken in a single step.
	MaxAllowedDirectionChange int `yaml:"maxAllowedDirectionChange,omitempty" toml:"maxAllowedDirectionChange,omitempty"`
	// Uniform padding around every box. Wins over PaddingBox and
	// ElementPadding.
	Padding float64 `yaml:"padding,omitempty" toml:"padding,omitempty"`
	// Delta applied to every box with Rect.MoveAndExpand.
	PaddingBox *Rect `yaml:"paddingBox,omitempty" toml:"paddingBox,omitempty"`
	// Padding of the orthogonal router.
	ElementPadding float64 `yaml:"elementPadding,omitempty" toml:"elementPadding,omitempty"`
	// Cost of a diagonal step in the metro router.
	DiagonalCost float64 `yaml:"diagonalCost,omitempty" toml:"diagonalCost,omitempty"`
	// Moves of the path search and the penalty per bucket of direction
	// change. Computed from Step when empty.
	Directions []Direction `yaml:"directions,omitempty" toml:"directions,omitempty"`
	Penalties  []float64   `yaml:"penalties,omitempty" toml:"penalties,omitempty"`

	Hints           DirectionHints                                     `yaml:"-" toml:"-"`
	PaddingBoxFunc  func(step float64) Rect                            `yaml:"-" toml:"-"`
	EstimateCost    func(from, to Point) float64                       `yaml:"-" toml:"-"`
	FallbackRoute   func(from, to Point, hints DirectionHints) []Point `yaml:"-" toml:"-"`
	DraggingRoute   func(from, to Point, opt *Options) []Point         `yaml:"-" toml:"-"`
	IsPointObstacle func(p Point) bool                                 `yaml:"-" toml:"-"`
	Logger          *slog.Logger                                       `yaml:"-" toml:"-"`
}

var AllDirections = []string{"left", "right", "top", "bottom"}

func DefaultOptions() Options {
	perpendicular := true
	return Options{
		Step:                      10,
		Perpendicular:             &perpendicular,
		MapGridSize:               100,
		ExcludeTypes:              []string{"basic.Text"},
		MaximumLoops:              500,
		StartDirections:           slices.Clone(AllDirections),
		EndDirections:             slices.Clone(AllDirections),
		MaxAllowedDirectionChange: 1,
		ElementPadding:            20,
	}
}

// Merge opt over the defaults. Empty fields of opt are ignored, so an explicit
// empty (non-nil) ExcludeTypes still clears the default list.
func mergeOptions(opt *Options) *Options {
	merged := DefaultOptions()
	if opt != nil {
		err := copier.CopyWithOption(&merged, opt, copier.Option{IgnoreEmpty: true})
		if err != nil {
			fatalf("bad router options: %v", err)
		}
	}
	return &merged
}

// Fill in the derived options for the path search. Metro adds the diagonal
// moves and its own fallback.
func (o *Options) resolve(metro bool) {
	if o.Step <= 0 {
		o.Step = 10
	}
	if o.MapGridSize <= 0 {
		o.MapGridSize = 100
	}
	if len(o.Directions) == 0 {
		if metro {
			o.Directions = metroDirections(o.Step, o.DiagonalCost)
		} else {
			o.Directions = manhattanDirections(o.Step)
		}
	}
	if len(o.Penalties) == 0 {
		o.Penalties = []float64{0, o.Step / 2, o.Step}
	}
	if o.EstimateCost == nil {
		o.EstimateCost = Point.ManhattanDistance
	}
	if o.FallbackRoute == nil {
		if metro {
			o.FallbackRoute = metroFallbackRoute
		} else {
			o.FallbackRoute = manhattanFallbackRoute
		}
	}
}

// The padding delta of the path search.
func (o *Options) paddingBox() Rect {
	switch {
	case o.Padding != 0:
		return uniformPadding(o.Padding)
	case o.PaddingBox != nil:
		return *o.PaddingBox
	case o.PaddingBoxFunc != nil:
		return o.PaddingBoxFunc(o.Step)
	}
	return uniformPadding(o.Step)
}

func (o *Options) elementPadding() Rect {
	if o.Padding != 0 {
		return uniformPadding(o.Padding)
	}
	if o.ElementPadding != 0 {
		return uniformPadding(o.ElementPadding)
	}
	return uniformPadding(20)
}

func uniformPadding(padding float64) Rect {
	return Rect{X: -padding, Y: -padding, Width: 2 * padding, Height: 2 * padding}
}

func (o *Options) penalty(directionChange int) float64 {
	if len(o.Penalties) == 0 {
		return 0
	}
	if directionChange >= len(o.Penalties) {
		return o.Penalties[len(o.Penalties)-1]
	}
	return o.Penalties[directionChange]
}

func (o *Options) perpendicular() bool {
	return o.Perpendicular == nil || *o.Perpendicular
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// Right, down, left, up: index order matters, since a direction's index is
// its bucket on the direction wheel.
func manhattanDirections(step float64) []Direction {
	return []Direction{
		{OffsetX: step, OffsetY: 0, Cost: step},
		{OffsetX: 0, OffsetY: step, Cost: step},
		{OffsetX: -step, OffsetY: 0, Cost: step},
		{OffsetX: 0, OffsetY: -step, Cost: step},
	}
}

func metroDirections(step, diagonalCost float64) []Direction {
	if diagonalCost == 0 {
		diagonalCost = math.Ceil(math.Sqrt(2 * step * step))
	}
	return []Direction{
		{OffsetX: step, OffsetY: 0, Cost: step},
		{OffsetX: step, OffsetY: step, Cost: diagonalCost},
		{OffsetX: 0, OffsetY: step, Cost: step},
		{OffsetX: -step, OffsetY: step, Cost: diagonalCost},
		{OffsetX: -step, OffsetY: 0, Cost: step},
		{OffsetX: -step, OffsetY: -step, Cost: diagonalCost},
		{OffsetX: 0, OffsetY: -step, Cost: step},
		{OffsetX: step, OffsetY: -step, Cost: diagonalCost},
	}
}
