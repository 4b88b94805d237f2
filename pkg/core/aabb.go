package core

import "math"

// AABB is an axis-aligned bounding box. The invariant Min <= Max
// (componentwise) holds for every AABB constructed by this package.
type AABB struct {
	Min, Max Vec3
}

// NewAABB creates an AABB from explicit corners.
func NewAABB(min, max Vec3) AABB { return AABB{Min: min, Max: max} }

// boxCorners enumerates the eight corners of an axis-aligned box
// centered at the origin with the given half-extents.
func boxCorners(half Vec3) [8]Vec3 {
	var corners [8]Vec3
	i := 0
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				corners[i] = Vec3{X: sx * half.X, Y: sy * half.Y, Z: sz * half.Z}
				i++
			}
		}
	}
	return corners
}

// AABBFromPrimitive computes the world-space AABB of a primitive. Planes
// have no finite extent and are excluded from the BVH by the caller
// before this is ever invoked on one.
func AABBFromPrimitive(p *Primitive) AABB {
	var localCorners [8]Vec3

	switch p.Kind {
	case Box, Ellipsoid:
		localCorners = boxCorners(p.Data)
	case Triangle:
		a, b, c := p.Data3, p.Data2, p.Data
		local := NewAABBFromPoints(a, b, c)
		localCorners = boxCorners(local.Max.Subtract(local.Min).Multiply(0.5))
		center := local.Min.Add(local.Max).Multiply(0.5)
		for i := range localCorners {
			localCorners[i] = localCorners[i].Add(center)
		}
	default:
		return AABB{}
	}

	min := p.Rotation.RotatePoint(localCorners[0])
	max := min
	for _, corner := range localCorners[1:] {
		rotated := p.Rotation.RotatePoint(corner)
		min = minVec(min, rotated)
		max = maxVec(max, rotated)
	}
	return AABB{Min: min.Add(p.Position), Max: max.Add(p.Position)}
}

// NewAABBFromPoints returns the AABB bounding all given points.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = minVec(min, p)
		max = maxVec(max, p)
	}
	return AABB{Min: min, Max: max}
}

func minVec(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func maxVec(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Union returns an AABB bounding both this AABB and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{Min: minVec(a.Min, other.Min), Max: maxVec(a.Max, other.Max)}
}

// Center returns the midpoint of the AABB.
func (a AABB) Center() Vec3 { return a.Min.Add(a.Max).Multiply(0.5) }

// SurfaceArea returns 2(dx*dy + dx*dz + dy*dz) where d = Max-Min.
func (a AABB) SurfaceArea() float64 {
	d := a.Max.Subtract(a.Min)
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// Intersect reuses the box slab test: translate the ray into the AABB's
// local (centered) frame and test against half-extents. The normal is
// not computed since AABB hits are only used to accelerate and prune BVH
// traversal, never reported to the integrator.
func (a AABB) Intersect(ray Ray) (t float64, hit bool) {
	half := a.Max.Subtract(a.Min).Multiply(0.5)
	center := a.Center()
	o := ray.Origin.Subtract(center)
	d := ray.Direction

	t1 := half.Negate().Subtract(o).DivideVec(d)
	t2 := half.Subtract(o).DivideVec(d)

	tNear := math.Max(math.Min(t1.X, t2.X), math.Max(math.Min(t1.Y, t2.Y), math.Min(t1.Z, t2.Z)))
	tFar := math.Min(math.Max(t1.X, t2.X), math.Min(math.Max(t1.Y, t2.Y), math.Max(t1.Z, t2.Z)))

	if tNear > tFar || tFar < 0 {
		return 0, false
	}
	if tNear < 0 {
		return tFar, true
	}
	return tNear, true
}

// IsInside reports whether point o lies within the AABB, used by BVH
// traversal to tell "already inside this box" apart from "entering it."
func (a AABB) IsInside(o Vec3) bool {
	return o.X >= a.Min.X && o.X <= a.Max.X &&
		o.Y >= a.Min.Y && o.Y <= a.Max.Y &&
		o.Z >= a.Min.Z && o.Z <= a.Max.Z
}
