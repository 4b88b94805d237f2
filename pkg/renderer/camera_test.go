package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

func straightCamera() scene.Camera {
	return scene.Camera{
		Position: core.Vec3{},
		Right:    core.Vec3{X: 1},
		Up:       core.Vec3{Y: 1},
		Forward:  core.Vec3{Z: 1},
		FovX:     math.Pi / 2,
	}
}

func TestPrimaryRayCenterPixelPointsForward(t *testing.T) {
	cam := straightCamera()
	ray := PrimaryRay(cam, 100, 100, 50, 50)
	require.InDelta(t, 0, ray.Direction.X, 1e-9)
	require.InDelta(t, 0, ray.Direction.Y, 1e-9)
	assert.Greater(t, ray.Direction.Z, 0.0)
}

func TestPrimaryRayOriginIsCameraPosition(t *testing.T) {
	cam := straightCamera()
	cam.Position = core.Vec3{X: 1, Y: 2, Z: 3}
	ray := PrimaryRay(cam, 10, 10, 5, 5)
	assert.Equal(t, cam.Position, ray.Origin)
}

func TestPrimaryRayLeftEdgeBendsNegativeX(t *testing.T) {
	cam := straightCamera()
	ray := PrimaryRay(cam, 100, 100, 0, 50)
	assert.Less(t, ray.Direction.X, 0.0)
}

func TestPrimaryRayTopEdgeBendsPositiveY(t *testing.T) {
	cam := straightCamera()
	ray := PrimaryRay(cam, 100, 100, 50, 0)
	assert.Greater(t, ray.Direction.Y, 0.0)
}
