package loaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/pathtracer/pkg/core"
)

const sampleScene = `
DIMENSIONS 64 48
BG_COLOR 0.1 0.2 0.3
CAMERA_POSITION 0 0 -5
CAMERA_RIGHT 1 0 0
CAMERA_UP 0 1 0
CAMERA_FORWARD 0 0 1
CAMERA_FOV_X 1.0

NEW_PRIMITIVE
BOX 1 1 1
POSITION 0 0 0
COLOR 0.8 0.2 0.2
METALLIC

NEW_PRIMITIVE
TRIANGLE 0 0 0 1 0 0 0 1 0
EMISSION 3 3 3

NEW_PRIMITIVE
ELLIPSOID 1 2 3
DIELECTRIC
IOR 1.5

RAY_DEPTH 6
SAMPLES 32
`

func TestParseTextSceneFullGrammar(t *testing.T) {
	scn, err := ParseTextScene(strings.NewReader(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, 64, scn.Width)
	assert.Equal(t, 48, scn.Height)
	assert.Equal(t, core.Color{X: 0.1, Y: 0.2, Z: 0.3}, scn.BGColor)
	assert.Equal(t, core.Vec3{X: 0, Y: 0, Z: -5}, scn.Camera.Position)
	assert.InDelta(t, 1.0, scn.Camera.FovX, 1e-12)
	assert.Equal(t, 6, scn.RayDepth)
	assert.Equal(t, 32, scn.Samples)
	require.Len(t, scn.Figures, 3)
}

func TestParseTextSceneMaterialProperties(t *testing.T) {
	scn, err := ParseTextScene(strings.NewReader(sampleScene))
	require.NoError(t, err)

	var box, tri, ellipsoid *core.Primitive
	for _, f := range scn.Figures {
		switch f.Kind {
		case core.Box:
			box = f
		case core.Triangle:
			tri = f
		case core.Ellipsoid:
			ellipsoid = f
		}
	}
	require.NotNil(t, box)
	require.NotNil(t, tri)
	require.NotNil(t, ellipsoid)

	assert.Equal(t, core.Metallic, box.Material.Kind)
	assert.Equal(t, core.Color{X: 0.8, Y: 0.2, Z: 0.2}, box.Material.Color)

	assert.Equal(t, core.Color{X: 3, Y: 3, Z: 3}, tri.Material.Emission)

	assert.Equal(t, core.Dielectric, ellipsoid.Material.Kind)
	assert.InDelta(t, 1.5, ellipsoid.Material.IOR, 1e-12)
}

func TestParseTextSceneSkipsUnknownCommandsAndContinues(t *testing.T) {
	src := "DIMENSIONS 10 10\nFROB 1 2 3\nSAMPLES 4\n"
	scn, err := ParseTextScene(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 10, scn.Width)
	assert.Equal(t, 4, scn.Samples)
}

func TestParseTextScenePropertyWithoutPrimitiveIsSkipped(t *testing.T) {
	src := "DIMENSIONS 10 10\nCOLOR 1 1 1\nSAMPLES 2\n"
	scn, err := ParseTextScene(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, scn.Samples)
	assert.Empty(t, scn.Figures)
}

func TestLoadTextSceneFileNotFoundIsFatalKind(t *testing.T) {
	_, err := LoadTextScene("/nonexistent/path/scene.txt")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, FileNotFound, loadErr.Kind)
}
