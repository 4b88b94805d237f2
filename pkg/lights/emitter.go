package lights

import (
	"math"

	"github.com/lumenforge/pathtracer/pkg/core"
)

// Emitter wraps one emissive primitive (Box, Ellipsoid, or Triangle —
// Planes are never emitters, matching the scene's BVH-eligible/plane
// partition) with surface-uniform direct-light sampling.
type Emitter struct {
	Prim *core.Primitive
}

// IsEmitterCandidate reports whether a primitive can act as an emitter:
// non-zero emission and a finite (non-plane) shape.
func IsEmitterCandidate(p *core.Primitive) bool {
	return p.Material.IsEmissive() && p.Kind != core.Plane
}

// Sample returns a unit direction from x toward a uniformly sampled
// surface point on the emitter.
func (e *Emitter) Sample(x core.Vec3, sampler core.Sampler) core.Vec3 {
	var point core.Vec3
	switch e.Prim.Kind {
	case core.Box:
		point = sampleBoxSurfacePoint(e.Prim, sampler)
	case core.Triangle:
		point = sampleTriangleSurfacePoint(e.Prim, sampler)
	case core.Ellipsoid:
		point = sampleEllipsoidSurfacePoint(e.Prim, sampler)
	}
	return point.Subtract(x).Normalize()
}

// PDF returns the solid-angle density of direction d from x toward this
// emitter, summing every intersection along the ray: boxes and
// ellipsoids can be pierced twice (entry and exit), triangles once. A
// miss (direction does not hit the primitive at all) contributes zero.
func (e *Emitter) PDF(x, d core.Vec3) float64 {
	ray := core.NewRay(x, d)
	hit, ok := e.Prim.Intersect(ray)
	if !ok {
		return 0
	}
	total := e.pdfOne(x, d, hit)

	if e.Prim.Kind != core.Triangle {
		exitOrigin := ray.At(hit.T + core.Epsilon)
		exitRay := core.NewRay(exitOrigin, d)
		if hit2, ok2 := e.Prim.Intersect(exitRay); ok2 {
			total += e.pdfOne(x, d, hit2)
		}
	}
	return total
}

func (e *Emitter) pdfOne(x, d core.Vec3, hit core.Intersection) float64 {
	y := x.Add(d.Multiply(hit.T))
	distSq := x.Subtract(y).LengthSquared()
	cosAtLight := d.AbsDot(hit.Normal)
	if cosAtLight <= 0 {
		return 0
	}

	switch e.Prim.Kind {
	case core.Box:
		s := e.Prim.Data
		area := 8 * (s.Y*s.Z + s.X*s.Z + s.X*s.Y)
		return distSq / (area * cosAtLight)
	case core.Triangle:
		a, b, c := e.Prim.Data3, e.Prim.Data2, e.Prim.Data
		area := 0.5 * c.Subtract(a).Cross(b.Subtract(a)).Length()
		return distSq / (area * cosAtLight)
	case core.Ellipsoid:
		r := e.Prim.Data
		local := e.Prim.Rotation.Conjugate().RotatePoint(y.Subtract(e.Prim.Position))
		n := local.DivideVec(r)
		scaled := core.NewVec3(n.X*r.Y*r.Z, r.X*n.Y*r.Z, r.X*r.Y*n.Z)
		return distSq / (4 * math.Pi * scaled.Length() * cosAtLight)
	default:
		return 0
	}
}

func sampleBoxSurfacePoint(p *core.Primitive, sampler core.Sampler) core.Vec3 {
	s := p.Data
	areaX := s.Y * s.Z
	areaY := s.X * s.Z
	areaZ := s.X * s.Y
	total := areaX + areaY + areaZ

	u := sampler.Float64() * total
	axis := 2
	switch {
	case u < areaX:
		axis = 0
	case u < areaX+areaY:
		axis = 1
	}

	u1, u2 := sampler.Vec2()
	sign := 1.0
	if sampler.Float64() < 0.5 {
		sign = -1.0
	}

	var local core.Vec3
	switch axis {
	case 0:
		local = core.NewVec3(sign*s.X, (2*u1-1)*s.Y, (2*u2-1)*s.Z)
	case 1:
		local = core.NewVec3((2*u1-1)*s.X, sign*s.Y, (2*u2-1)*s.Z)
	default:
		local = core.NewVec3((2*u1-1)*s.X, (2*u2-1)*s.Y, sign*s.Z)
	}
	return p.Rotation.RotatePoint(local).Add(p.Position)
}

func sampleTriangleSurfacePoint(p *core.Primitive, sampler core.Sampler) core.Vec3 {
	a, b, c := p.Data3, p.Data2, p.Data
	u, v := sampler.Vec2()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	local := a.Add(c.Subtract(a).Multiply(u)).Add(b.Subtract(a).Multiply(v))
	return p.Rotation.RotatePoint(local).Add(p.Position)
}

func sampleEllipsoidSurfacePoint(p *core.Primitive, sampler core.Sampler) core.Vec3 {
	w := uniformSpherePoint(sampler)
	local := w.MultiplyVec(p.Data)
	return p.Rotation.RotatePoint(local).Add(p.Position)
}

func uniformSpherePoint(sampler core.Sampler) core.Vec3 {
	v := core.NewVec3(sampler.StdNormal(), sampler.StdNormal(), sampler.StdNormal())
	if v.LengthSquared() < 1e-12 {
		return core.NewVec3(0, 0, 1)
	}
	return v.Normalize()
}
