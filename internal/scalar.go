package internal

import (
	"math"
	"math/rand"
)

// Tolerance used where floating comparisons need slack, e.g. in tests and in
// the curve bounding box robustness check.
const Tolerance = 1e-6

// Equal compares with Tolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Angles wrap into [0, 360). Negative inputs are shifted by a full turn.
func NormalizeAngle(angle float64) float64 {
	return math.Mod(angle, 360) + b2f(angle < 0)*360
}

func SnapToGrid(value, gridSize float64) float64 {
	return gridSize * jsRound(value/gridSize)
}

func ToDeg(rad float64) float64 {
	return math.Mod(180*rad/math.Pi, 360)
}

// ToRad wraps the angle to a single turn unless over360 is set.
func ToRad(deg float64, over360 bool) float64 {
	if !over360 {
		deg = math.Mod(deg, 360)
	}
	return deg * math.Pi / 180
}

// Random returns an integer-valued float in [min, max].
func Random(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return math.Floor(rand.Float64()*(max-min+1) + min)
}

// LinearScale maps value from the domain interval onto the range interval.
func LinearScale(domain, rng [2]float64, value float64) float64 {
	domainSpan := domain[1] - domain[0]
	rangeSpan := rng[1] - rng[0]
	result := ((value-domain[0])/domainSpan)*rangeSpan + rng[0]
	if math.IsNaN(result) {
		return 0
	}
	return result
}

func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Half-up rounding. math.Round rounds half away from zero, which disagrees on
// negative halves (-2.5 must become -2).
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Multiplier used by every Round(precision) method.
func precisionFactor(precision int) float64 {
	switch precision {
	case 0:
		return 1
	case 1:
		return 10
	case 2:
		return 100
	case 3:
		return 1000
	default:
		return math.Pow(10, float64(precision))
	}
}

func roundTo(value float64, precision int) float64 {
	f := precisionFactor(precision)
	return jsRound(value*f) / f
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
