package colorshape

import (
	"math"

	"github.com/okian/pawsense/internal/domain/model"
)

// Transform is the pure, stateless per-pixel dichromatic mapping. Given
// normalized RGB in [0,1] it produces the blue and yellow output channels:
//
//	blue'   = pow(blue * Blue, ContrastExponent)
//	yellow' = pow((red*Red + green*Green) * Yellow, ContrastExponent)
//
// Identical inputs always yield identical outputs, which keeps the
// transform testable independently of any renderer.
type Transform struct {
	w model.DichromaticWeights
}

// NewTransform creates a transform from a weight set.
func NewTransform(w model.DichromaticWeights) Transform {
	if w.ContrastExponent < 1 {
		w.ContrastExponent = 1
	}
	return Transform{w: w}
}

// Apply maps one pixel. Inputs are clamped to [0,1]; outputs stay in [0,1].
func (t Transform) Apply(r, g, b float64) (blue, yellow float64) {
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)

	blue = math.Pow(clamp(b*t.w.Blue, 0, 1), t.w.ContrastExponent)
	yellow = math.Pow(clamp((r*t.w.Red+g*t.w.Green)*t.w.Yellow, 0, 1), t.w.ContrastExponent)
	return blue, yellow
}

// Weights returns the transform's coefficients.
func (t Transform) Weights() model.DichromaticWeights {
	return t.w
}
