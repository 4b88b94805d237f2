package lights

import "github.com/lumenforge/pathtracer/pkg/core"

// FiguresMix is a uniform distribution over every emissive primitive in
// the scene, accelerated by a BVH built over the emitters alone (not the
// scene's main BVH, which also carries non-emissive geometry).
type FiguresMix struct {
	emitters []*Emitter
	byPrim   map[*core.Primitive]*Emitter
	bvh      *core.BVH
}

// NewFiguresMix builds the emitter BVH. It returns nil if there are no
// emitters, so callers can treat "no direct light sampling" as the
// absence of this distribution rather than a degenerate empty one.
func NewFiguresMix(emitters []*Emitter) *FiguresMix {
	if len(emitters) == 0 {
		return nil
	}

	prims := make([]*core.Primitive, len(emitters))
	byPrim := make(map[*core.Primitive]*Emitter, len(emitters))
	for i, e := range emitters {
		prims[i] = e.Prim
		byPrim[e.Prim] = e
	}

	return &FiguresMix{
		emitters: emitters,
		byPrim:   byPrim,
		bvh:      core.BuildBVH(prims),
	}
}

// Sample picks an emitter uniformly and delegates to its surface sampler.
func (f *FiguresMix) Sample(x, n core.Vec3, sampler core.Sampler) core.Vec3 {
	idx := int(sampler.Float64() * float64(len(f.emitters)))
	if idx >= len(f.emitters) {
		idx = len(f.emitters) - 1
	}
	return f.emitters[idx].Sample(x, sampler)
}

// PDF traverses the emitter BVH, summing PDF contributions from every
// emitter whose AABB the ray hits, and divides by the emitter count
// (uniform selection probability).
func (f *FiguresMix) PDF(x, n, d core.Vec3) float64 {
	ray := core.NewRay(x, d)
	sum := 0.0
	f.bvh.ForEachHit(ray, func(p *core.Primitive) {
		if e, ok := f.byPrim[p]; ok {
			sum += e.PDF(x, d)
		}
	})
	return sum / float64(len(f.emitters))
}

// Len reports the number of emitters in the mixture.
func (f *FiguresMix) Len() int {
	if f == nil {
		return 0
	}
	return len(f.emitters)
}
