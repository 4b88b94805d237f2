// Package scene assembles the primitive list, camera, and sampling
// configuration a loader produces into the structure the renderer walks:
// a partitioned primitive array, a BVH over the non-plane subset, and the
// emitter mixture distribution, built once at load time and never
// mutated again.
package scene

import (
	"math"

	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/lights"
)

// Camera describes the orthonormal basis and field of view used to
// generate primary rays. Right, Up, and Forward are assumed orthonormal;
// producing that basis is the loader's responsibility.
type Camera struct {
	Position Vec3
	Right    Vec3
	Up       Vec3
	Forward  Vec3
	FovX     float64
}

// Vec3 is re-exported so loaders that only need the scene package don't
// also have to import core for this one type.
type Vec3 = core.Vec3

// Scene holds every element the renderer needs, constructed once during
// load. Figures is partitioned in place so that all non-plane primitives
// occupy [0, BVHableCount) — the range the BVH indexes — and planes
// occupy [BVHableCount, len(Figures)), intersected by linear scan since
// they have no finite AABB. This partition is established by New and is
// never altered afterward.
type Scene struct {
	Width, Height int
	Camera        Camera
	BGColor       core.Color

	Figures      []*core.Primitive
	BVHableCount int
	BVH          *core.BVH

	Emitters *lights.Mix

	RayDepth int
	Samples  int
}

// New partitions figures (bvh-eligible first, planes last), builds the
// BVH over the eligible range, and constructs the emitter mixture
// distribution. figures is consumed and reordered in place.
func New(figures []*core.Primitive, width, height int, camera Camera, bgColor core.Color, rayDepth, samples int) *Scene {
	bvhableCount := partitionPlanesLast(figures)

	bvh := core.BuildBVH(figures[:bvhableCount])

	var emitters []*lights.Emitter
	for _, f := range figures {
		if lights.IsEmitterCandidate(f) {
			emitters = append(emitters, &lights.Emitter{Prim: f})
		}
	}

	return &Scene{
		Width:        width,
		Height:       height,
		Camera:       camera,
		BGColor:      bgColor,
		Figures:      figures,
		BVHableCount: bvhableCount,
		BVH:          bvh,
		Emitters:     lights.NewMix(lights.NewFiguresMix(emitters)),
		RayDepth:     rayDepth,
		Samples:      samples,
	}
}

// partitionPlanesLast reorders figures in place so planes occupy the
// trailing range, returning the count of non-plane (BVH-eligible)
// primitives that now occupy the leading range.
func partitionPlanesLast(figures []*core.Primitive) int {
	i := 0
	j := len(figures) - 1
	for i <= j {
		if figures[i].Kind == core.Plane {
			figures[i], figures[j] = figures[j], figures[i]
			j--
			continue
		}
		i++
	}
	return i
}

// Intersect finds the closest hit against the whole scene: a linear scan
// over the planes seeds the best-so-far distance, then the BVH is
// traversed over the bvh-eligible range. The combined result is the
// global minimum-t hit. With no plane hit, best-so-far starts unbounded
// (+Inf) rather than capped at core.TMax, so a BVH-eligible primitive
// farther than TMax is still found when nothing closer exists.
func (s *Scene) Intersect(ray core.Ray) (core.Intersection, *core.Primitive, bool) {
	bestT := math.Inf(1)
	var best core.Intersection
	var bestPrim *core.Primitive
	found := false

	for i := s.BVHableCount; i < len(s.Figures); i++ {
		p := s.Figures[i]
		if hit, ok := p.Intersect(ray); ok && hit.T < bestT {
			best, bestPrim, bestT, found = hit, p, hit.T, true
		}
	}

	if hit, prim, ok := s.BVH.Intersect(ray, bestT); ok {
		best, bestPrim, found = hit, prim, true
	}

	return best, bestPrim, found
}
