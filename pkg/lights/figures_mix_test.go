package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/pathtracer/internal/rng"
	"github.com/lumenforge/pathtracer/pkg/core"
)

func TestNewFiguresMixNilWhenNoEmitters(t *testing.T) {
	assert.Nil(t, NewFiguresMix(nil))
}

func twoEmittersAboveOrigin() []*Emitter {
	a := &core.Primitive{
		Kind: core.Box, Rotation: core.IdentityQuat(),
		Position: core.Vec3{X: -5, Y: 5, Z: 0},
		Data:     core.Vec3{X: 1, Y: 1, Z: 1},
		Material: core.Material{Emission: core.Color{X: 5}},
	}
	b := &core.Primitive{
		Kind: core.Box, Rotation: core.IdentityQuat(),
		Position: core.Vec3{X: 5, Y: 5, Z: 0},
		Data:     core.Vec3{X: 1, Y: 1, Z: 1},
		Material: core.Material{Emission: core.Color{X: 5}},
	}
	return []*Emitter{{Prim: a}, {Prim: b}}
}

func TestFiguresMixLenMatchesEmitterCount(t *testing.T) {
	fm := NewFiguresMix(twoEmittersAboveOrigin())
	require.NotNil(t, fm)
	assert.Equal(t, 2, fm.Len())
}

func TestFiguresMixPDFSumsOverAllHitEmitters(t *testing.T) {
	fm := NewFiguresMix(twoEmittersAboveOrigin())
	require.NotNil(t, fm)

	toward := core.Vec3{X: -5, Y: 5, Z: 0}.Normalize()
	pdf := fm.PDF(core.Vec3{}, core.Vec3{Y: 1}, toward)
	assert.Greater(t, pdf, 0.0)
}

func TestFiguresMixSampleProducesUnitDirection(t *testing.T) {
	fm := NewFiguresMix(twoEmittersAboveOrigin())
	require.NotNil(t, fm)
	sampler := rng.New(5)
	n := core.Vec3{Y: 1}
	for i := 0; i < 100; i++ {
		d := fm.Sample(core.Vec3{}, n, sampler)
		assert.InDelta(t, 1, d.Length(), 1e-6)
	}
}
