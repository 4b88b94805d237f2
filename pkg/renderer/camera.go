package renderer

import (
	"math"

	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

// PrimaryRay builds the camera ray through sub-pixel coordinate (nx, ny),
// where nx in [0, width) and ny in [0, height) carry the fractional
// sample jitter already added by the caller.
func PrimaryRay(cam scene.Camera, width, height int, nx, ny float64) core.Ray {
	tanX := math.Tan(cam.FovX / 2)
	tanY := tanX * float64(height) / float64(width)

	cx := 2*nx/float64(width) - 1
	cy := 2*ny/float64(height) - 1

	dir := cam.Right.Multiply(cx * tanX).
		Subtract(cam.Up.Multiply(cy * tanY)).
		Add(cam.Forward)

	return core.NewRay(cam.Position, dir)
}
