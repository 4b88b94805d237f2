package renderer

import (
	"math"

	"github.com/lumenforge/pathtracer/pkg/core"
)

// ACES coefficients for the Narkowicz fit used to compress HDR radiance
// into displayable range before gamma.
const (
	acesA = 2.51
	acesB = 0.03
	acesC = 2.43
	acesD = 0.59
	acesE = 0.14

	invGamma = 1.0 / 2.2
)

// ToneMap applies the ACES approximation followed by 2.2 gamma,
// componentwise, clamping to [0, 1]. Both stages are monotone
// non-decreasing on [0, +inf), so their composition is too.
func ToneMap(c core.Color) core.Color {
	return core.Color{
		X: gammaCorrect(acesComponent(c.X)),
		Y: gammaCorrect(acesComponent(c.Y)),
		Z: gammaCorrect(acesComponent(c.Z)),
	}
}

func acesComponent(x float64) float64 {
	v := (x * (acesA*x + acesB)) / (x*(acesC*x+acesD) + acesE)
	return clip01(v)
}

func gammaCorrect(x float64) float64 {
	return clip01(math.Pow(x, invGamma))
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
