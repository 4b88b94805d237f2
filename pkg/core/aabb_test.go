package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABBUnionContainsBothInputs(t *testing.T) {
	a := AABB{Min: Vec3{X: 0, Y: 0, Z: 0}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	b := AABB{Min: Vec3{X: -1, Y: 2, Z: 0}, Max: Vec3{X: 0.5, Y: 3, Z: 1}}
	u := a.Union(b)
	assert.Equal(t, Vec3{X: -1, Y: 0, Z: 0}, u.Min)
	assert.Equal(t, Vec3{X: 1, Y: 3, Z: 1}, u.Max)
}

func TestAABBSurfaceAreaOfUnitCube(t *testing.T) {
	a := AABB{Min: Vec3{}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	assert.InDelta(t, 6, a.SurfaceArea(), 1e-12)
}

func TestAABBIntersectHitsAxisAlignedBox(t *testing.T) {
	box := AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	ray := NewRay(Vec3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 0, Z: 1})
	tHit, ok := box.Intersect(ray)
	require.True(t, ok)
	assert.InDelta(t, 4, tHit, 1e-9)
}

func TestAABBIntersectMissesWhenRayDiverges(t *testing.T) {
	box := AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	ray := NewRay(Vec3{X: 0, Y: 10, Z: -5}, Vec3{X: 0, Y: 0, Z: 1})
	_, ok := box.Intersect(ray)
	assert.False(t, ok)
}

// TestAABBFromPrimitiveContainsSurfaceSamples checks invariant #2: the
// AABB of a rotated, translated primitive contains every sampled surface
// point, for each of the three bounded primitive kinds (planes have no
// finite extent and are excluded).
func TestAABBFromPrimitiveContainsSurfaceSamples(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	cases := []struct {
		name   string
		sample func() *Primitive
		point  func(p *Primitive) Vec3
	}{
		{
			name: "box",
			sample: func() *Primitive {
				return &Primitive{Kind: Box, Position: Vec3{X: 2, Y: -1, Z: 3}, Rotation: randomQuat(rnd), Data: Vec3{X: 1, Y: 2, Z: 0.5}}
			},
			point: func(p *Primitive) Vec3 {
				local := Vec3{X: signOf(rnd) * p.Data.X, Y: signOf(rnd) * p.Data.Y, Z: signOf(rnd) * p.Data.Z}
				return p.Rotation.RotatePoint(local).Add(p.Position)
			},
		},
		{
			name: "ellipsoid",
			sample: func() *Primitive {
				return &Primitive{Kind: Ellipsoid, Position: Vec3{X: -1, Y: 4, Z: 0}, Rotation: randomQuat(rnd), Data: Vec3{X: 1.5, Y: 0.7, Z: 2.2}}
			},
			point: func(p *Primitive) Vec3 {
				dir := randomUnitVector(rnd)
				local := dir.MultiplyVec(p.Data)
				return p.Rotation.RotatePoint(local).Add(p.Position)
			},
		},
		{
			name: "triangle",
			sample: func() *Primitive {
				return &Primitive{Kind: Triangle, Position: Vec3{X: 5, Y: 5, Z: 5}, Rotation: randomQuat(rnd),
					Data3: Vec3{X: 0, Y: 0, Z: 0}, Data2: Vec3{X: 1, Y: 0, Z: 0}, Data: Vec3{X: 0, Y: 1, Z: 0}}
			},
			point: func(p *Primitive) Vec3 {
				u, v := rnd.Float64(), rnd.Float64()
				if u+v > 1 {
					u, v = 1-u, 1-v
				}
				a, b, c := p.Data3, p.Data2, p.Data
				local := a.Add(b.Subtract(a).Multiply(u)).Add(c.Subtract(a).Multiply(v))
				return p.Rotation.RotatePoint(local).Add(p.Position)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prim := tc.sample()
			box := AABBFromPrimitive(prim)
			for i := 0; i < 1000; i++ {
				p := tc.point(prim)
				assert.GreaterOrEqual(t, p.X, box.Min.X-1e-9, "x below min")
				assert.GreaterOrEqual(t, p.Y, box.Min.Y-1e-9, "y below min")
				assert.GreaterOrEqual(t, p.Z, box.Min.Z-1e-9, "z below min")
				assert.LessOrEqual(t, p.X, box.Max.X+1e-9, "x above max")
				assert.LessOrEqual(t, p.Y, box.Max.Y+1e-9, "y above max")
				assert.LessOrEqual(t, p.Z, box.Max.Z+1e-9, "z above max")
			}
		})
	}
}

func signOf(rnd *rand.Rand) float64 {
	if rnd.Float64() < 0.5 {
		return -1
	}
	return 1
}

func randomUnitVector(rnd *rand.Rand) Vec3 {
	for {
		v := Vec3{X: rnd.Float64()*2 - 1, Y: rnd.Float64()*2 - 1, Z: rnd.Float64()*2 - 1}
		if l := v.LengthSquared(); l > 1e-6 && l <= 1 {
			return v.Normalize()
		}
	}
}

func randomQuat(rnd *rand.Rand) Quat {
	axis := randomUnitVector(rnd)
	angle := rnd.Float64() * 2 * math.Pi
	return NewQuat(axis.X*math.Sin(angle/2), axis.Y*math.Sin(angle/2), axis.Z*math.Sin(angle/2), math.Cos(angle/2))
}
