package loaders

import (
	"encoding/json"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/pathtracer/pkg/core"
)

func TestConvertMaterialDefaultsToWhiteColor(t *testing.T) {
	mat := convertMaterial(&gltf.Material{})
	assert.Equal(t, core.Color{X: 1, Y: 1, Z: 1}, mat.Color)
}

func TestConvertMaterialMetallicFactorSelectsMetallicKind(t *testing.T) {
	metallic := float32(1.0)
	m := &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{0.5, 0.6, 0.7, 1},
			MetallicFactor:  &metallic,
		},
	}
	mat := convertMaterial(m)
	assert.Equal(t, core.Metallic, mat.Kind)
	assert.InDelta(t, 0.5, mat.Color.X, 1e-6)
}

func TestConvertMaterialLowAlphaSelectsDielectricKind(t *testing.T) {
	metallic := float32(0)
	m := &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 0.1},
			MetallicFactor:  &metallic,
		},
	}
	mat := convertMaterial(m)
	assert.Equal(t, core.Dielectric, mat.Kind)
}

func TestConvertMaterialEmissiveFactorCarriesThrough(t *testing.T) {
	m := &gltf.Material{EmissiveFactor: [3]float32{2, 0, 0}}
	mat := convertMaterial(m)
	assert.InDelta(t, 2.0, mat.Emission.X, 1e-6)
}

func TestConvertMaterialEmissiveStrengthExtensionScalesEmission(t *testing.T) {
	m := &gltf.Material{
		EmissiveFactor: [3]float32{1, 1, 1},
		Extensions: gltf.Extensions{
			emissiveStrengthExt: map[string]any{"emissiveStrength": float64(5)},
		},
	}
	mat := convertMaterial(m)
	assert.InDelta(t, 5.0, mat.Emission.X, 1e-6)
	assert.InDelta(t, 5.0, mat.Emission.Y, 1e-6)
	assert.InDelta(t, 5.0, mat.Emission.Z, 1e-6)
}

func TestExtractEmissiveStrengthHandlesFloat32AndFloat64(t *testing.T) {
	v, ok := extractEmissiveStrength(map[string]any{"emissiveStrength": float64(3)})
	require.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-9)

	v, ok = extractEmissiveStrength(map[string]any{"emissiveStrength": float32(2.5)})
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-6)
}

func TestExtractEmissiveStrengthRejectsUnknownShapes(t *testing.T) {
	_, ok := extractEmissiveStrength("not a map")
	assert.False(t, ok)

	_, ok = extractEmissiveStrength(map[string]any{"somethingElse": 1})
	assert.False(t, ok)
}

func TestNodeLocalTransformPrefersExplicitMatrix(t *testing.T) {
	node := &gltf.Node{
		Matrix: [16]float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			5, 6, 7, 1,
		},
	}
	tr := nodeLocalTransform(node)
	got := tr.Apply(core.Vec3{})
	assert.InDelta(t, 5, got.X, 1e-9)
	assert.InDelta(t, 6, got.Y, 1e-9)
	assert.InDelta(t, 7, got.Z, 1e-9)
}

// TestNodeLocalTransformFallsBackToTRSWithDefaults decodes a node from
// real glTF JSON that omits "matrix" entirely. gltf.Node.UnmarshalJSON
// pre-seeds Matrix to the identity matrix before decoding, so a node
// literal built without going through JSON (and therefore leaving Matrix
// at the Go zero value) can't catch a regression to a zero-value check;
// this test only passes if nodeLocalTransform compares against the
// identity matrix instead.
func TestNodeLocalTransformFallsBackToTRSWithDefaults(t *testing.T) {
	var node gltf.Node
	require.NoError(t, json.Unmarshal([]byte(`{"translation":[1,2,3]}`), &node))
	require.Equal(t, identityMatrix16, node.Matrix, "qmuntal/gltf should have pre-seeded Matrix to identity")

	tr := nodeLocalTransform(&node)
	got := tr.Apply(core.Vec3{})
	assert.InDelta(t, 1, got.X, 1e-9)
	assert.InDelta(t, 2, got.Y, 1e-9)
	assert.InDelta(t, 3, got.Z, 1e-9)
}

func TestNodeLocalTransformZeroValueIsIdentity(t *testing.T) {
	tr := nodeLocalTransform(&gltf.Node{})
	got := tr.Apply(core.Vec3{X: 9, Y: -1, Z: 4})
	assert.InDelta(t, 9, got.X, 1e-9)
	assert.InDelta(t, -1, got.Y, 1e-9)
	assert.InDelta(t, 4, got.Z, 1e-9)
}
