package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeOptions(t *testing.T) {
	t.Run("nil takes the defaults", func(t *testing.T) {
		merged := mergeOptions(nil)
		defaults := DefaultOptions()
		assert.Equal(t, defaults.Step, merged.Step)
		assert.Equal(t, defaults.MaximumLoops, merged.MaximumLoops)
		assert.Equal(t, []string{"basic.Text"}, merged.ExcludeTypes)
		assert.Equal(t, AllDirections, merged.StartDirections)
		assert.True(t, merged.perpendicular())
	})

	t.Run("set fields win", func(t *testing.T) {
		perpendicular := false
		merged := mergeOptions(&Options{
			Step:            20,
			Perpendicular:   &perpendicular,
			StartDirections: []string{"top"},
		})
		assert.Equal(t, 20.0, merged.Step)
		assert.False(t, merged.perpendicular())
		assert.Equal(t, []string{"top"}, merged.StartDirections)
		assert.Equal(t, AllDirections, merged.EndDirections)
		assert.Equal(t, 500, merged.MaximumLoops)
	})

	t.Run("defaults are not shared", func(t *testing.T) {
		perpendicular := false
		mergeOptions(&Options{Perpendicular: &perpendicular})
		assert.True(t, mergeOptions(nil).perpendicular())
	})

	t.Run("caller options are untouched", func(t *testing.T) {
		opt := &Options{Step: 5}
		merged := mergeOptions(opt)
		merged.resolve(false)
		assert.Zero(t, opt.MaximumLoops)
		assert.Nil(t, opt.Directions)
	})
}

func TestResolve(t *testing.T) {
	t.Run("manhattan", func(t *testing.T) {
		o := mergeOptions(&Options{Step: 20})
		o.resolve(false)
		assert.Equal(t, []Direction{
			{OffsetX: 20, OffsetY: 0, Cost: 20},
			{OffsetX: 0, OffsetY: 20, Cost: 20},
			{OffsetX: -20, OffsetY: 0, Cost: 20},
			{OffsetX: 0, OffsetY: -20, Cost: 20},
		}, o.Directions)
		assert.Equal(t, []float64{0, 10, 20}, o.Penalties)
		assert.Equal(t, 30.0, o.EstimateCost(Point{}, Point{X: 10, Y: -20}))
		assert.Equal(t, []Point{{X: 10, Y: 0}, {X: 10, Y: 10}}, o.FallbackRoute(Point{}, Point{X: 10, Y: 10}, nil))
	})

	t.Run("metro", func(t *testing.T) {
		o := mergeOptions(nil)
		o.resolve(true)
		assert.Len(t, o.Directions, 8)
		assert.Equal(t, 15.0, o.Directions[1].Cost)
		assert.Equal(t, 10.0, o.Directions[2].Cost)
	})

	t.Run("diagonal cost override", func(t *testing.T) {
		o := mergeOptions(&Options{DiagonalCost: 12})
		o.resolve(true)
		assert.Equal(t, 12.0, o.Directions[7].Cost)
	})
}

func TestPadding(t *testing.T) {
	t.Run("path search", func(t *testing.T) {
		assert.Equal(t, uniformPadding(10), mergeOptions(nil).paddingBox())
		assert.Equal(t, uniformPadding(3), mergeOptions(&Options{Padding: 3}).paddingBox())

		box := Rect{X: -1, Y: -2, Width: 3, Height: 4}
		assert.Equal(t, box, mergeOptions(&Options{PaddingBox: &box}).paddingBox())

		fromStep := mergeOptions(&Options{
			Step:           4,
			PaddingBoxFunc: func(step float64) Rect { return uniformPadding(step * 2) },
		})
		assert.Equal(t, uniformPadding(8), fromStep.paddingBox())
	})

	t.Run("orthogonal", func(t *testing.T) {
		assert.Equal(t, uniformPadding(20), mergeOptions(nil).elementPadding())
		assert.Equal(t, uniformPadding(7), mergeOptions(&Options{ElementPadding: 7}).elementPadding())
		assert.Equal(t, uniformPadding(2), mergeOptions(&Options{Padding: 2, ElementPadding: 7}).elementPadding())
	})
}

func TestPenalty(t *testing.T) {
	o := &Options{Penalties: []float64{0, 5, 10}}
	assert.Equal(t, 0.0, o.penalty(0))
	assert.Equal(t, 5.0, o.penalty(1))
	assert.Equal(t, 10.0, o.penalty(2))
	assert.Equal(t, 10.0, o.penalty(4))
	assert.Equal(t, 0.0, (&Options{}).penalty(3))
}
