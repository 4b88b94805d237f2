package core

import "math"

// PrimitiveKind discriminates the four supported primitive shapes.
type PrimitiveKind byte

const (
	Plane PrimitiveKind = iota
	Box
	Ellipsoid
	Triangle
)

// Primitive is a flat tagged union over {Plane, Box, Ellipsoid, Triangle}
// placed by a rigid-body (position + rotation) instance transform. This
// collapses what would otherwise be a base class with four subclasses
// into one record with stable size, trivial copyability, and a switch
// statement instead of virtual dispatch in the intersection kernel —
// the design this renderer's hot loop depends on, since primitives are
// intersected billions of times per render.
//
// Data/Data2/Data3 are type-dependent payloads:
//   - Plane:     Data = unit normal, in local space.
//   - Box:       Data = half-extents (local space, centered at origin).
//   - Ellipsoid: Data = semi-axes (local space, centered at origin).
//   - Triangle:  Data3 = A, Data = C, Data2 = B (vertex order is swapped
//     relative to the natural A,B,C reading — this is load-bearing: the
//     face-normal cross product below is (C-A) x (B-A), and changing the
//     field assignment without changing the cross order flips winding).
type Primitive struct {
	Kind     PrimitiveKind
	Position Vec3
	Rotation Quat
	Material Material

	Data, Data2, Data3 Vec3
}

// Intersection describes a ray/primitive hit.
type Intersection struct {
	T      float64
	Normal Vec3 // unit, world space
	Inside bool // true when the ray originated inside a closed primitive
}

// Intersect tests a world-space ray against the primitive and returns the
// nearest hit with 0 < t, or false if there is none. d is not required to
// be a unit vector.
func (p *Primitive) Intersect(ray Ray) (Intersection, bool) {
	conj := p.Rotation.Conjugate()
	localOrigin := conj.RotatePoint(ray.Origin.Subtract(p.Position))
	localDir := conj.RotatePoint(ray.Direction)

	var (
		t      float64
		normal Vec3
		inside bool
		hit    bool
	)

	switch p.Kind {
	case Plane:
		t, normal, inside, hit = intersectPlane(localOrigin, localDir, p.Data)
	case Box:
		t, normal, inside, hit = intersectBox(localOrigin, localDir, p.Data)
	case Ellipsoid:
		t, normal, inside, hit = intersectEllipsoid(localOrigin, localDir, p.Data)
	case Triangle:
		t, normal, inside, hit = intersectTriangle(localOrigin, localDir, p.Data3, p.Data2, p.Data)
	}
	if !hit {
		return Intersection{}, false
	}

	worldNormal := p.Rotation.RotatePoint(normal).Normalize()
	return Intersection{T: t, Normal: worldNormal, Inside: inside}, true
}

func intersectPlane(o, d, n Vec3) (t float64, normal Vec3, inside, hit bool) {
	denom := d.Dot(n)
	if denom == 0 {
		return 0, Vec3{}, false, false
	}
	t = -o.Dot(n) / denom
	if !(t > 0 && t < TMax) {
		return 0, Vec3{}, false, false
	}
	if denom > 0 {
		return t, n.Negate(), true, true
	}
	return t, n, false, true
}

func intersectBox(o, d, half Vec3) (t float64, normal Vec3, inside, hit bool) {
	t1 := half.Negate().Subtract(o).DivideVec(d)
	t2 := half.Subtract(o).DivideVec(d)

	tNear := math.Max(math.Min(t1.X, t2.X), math.Max(math.Min(t1.Y, t2.Y), math.Min(t1.Z, t2.Z)))
	tFar := math.Min(math.Max(t1.X, t2.X), math.Min(math.Max(t1.Y, t2.Y), math.Max(t1.Z, t2.Z)))

	if tNear > tFar || tFar < 0 {
		return 0, Vec3{}, false, false
	}

	if tNear < 0 {
		t, inside = tFar, true
	} else {
		t, inside = tNear, false
	}

	hitPoint := o.Add(d.Multiply(t))
	n := hitPoint.DivideVec(half)
	maxAbs := math.Max(math.Abs(n.X), math.Max(math.Abs(n.Y), math.Abs(n.Z)))
	n = snapToMaxComponent(n, maxAbs)
	if inside {
		n = n.Negate()
	}
	return t, n, inside, true
}

// snapToMaxComponent zeroes every component whose magnitude is not the
// maximum, collapsing a box hit point's normal onto the hit face.
func snapToMaxComponent(n Vec3, maxAbs float64) Vec3 {
	out := n
	if math.Abs(out.X) < maxAbs {
		out.X = 0
	}
	if math.Abs(out.Y) < maxAbs {
		out.Y = 0
	}
	if math.Abs(out.Z) < maxAbs {
		out.Z = 0
	}
	return out
}

func intersectEllipsoid(o, d, r Vec3) (t float64, normal Vec3, inside, hit bool) {
	oPrime := o.DivideVec(r)
	dPrime := d.DivideVec(r)

	a := dPrime.LengthSquared()
	b := 2 * oPrime.Dot(dPrime)
	c := oPrime.LengthSquared() - 1

	disc := b*b - 4*a*c
	if disc <= 0 {
		return 0, Vec3{}, false, false
	}
	sqrtDisc := math.Sqrt(disc)
	tSmall := (-b - sqrtDisc) / (2 * a)
	tLarge := (-b + sqrtDisc) / (2 * a)

	if tSmall > 0 {
		t, inside = tSmall, false
	} else if tLarge > 0 {
		t, inside = tLarge, true
	} else {
		return 0, Vec3{}, false, false
	}

	hitPoint := o.Add(d.Multiply(t))
	n := hitPoint.DivideVec(r).DivideVec(r).Normalize()
	if inside {
		n = n.Negate()
	}
	return t, n, inside, true
}

func intersectTriangle(o, d, a, b, c Vec3) (t float64, normal Vec3, inside, hit bool) {
	n := c.Subtract(a).Cross(b.Subtract(a))
	denom := d.Dot(n)
	if denom == 0 {
		return 0, Vec3{}, false, false
	}
	t = a.Subtract(o).Dot(n) / denom
	if t <= 0 {
		return 0, Vec3{}, false, false
	}
	p := o.Add(d.Multiply(t))

	if n.Dot(c.Subtract(a).Cross(p.Subtract(a))) < 0 {
		return 0, Vec3{}, false, false
	}
	if n.Dot(b.Subtract(c).Cross(p.Subtract(c))) < 0 {
		return 0, Vec3{}, false, false
	}
	if n.Dot(a.Subtract(b).Cross(p.Subtract(b))) < 0 {
		return 0, Vec3{}, false, false
	}

	inside = denom > 0
	if inside {
		return t, n.Negate(), true, true
	}
	return t, n, false, true
}
