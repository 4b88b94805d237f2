// Package lights implements the sampling distributions the path
// integrator draws scatter directions from: a cosine-weighted hemisphere,
// per-primitive direct-light sampling of emissive shapes, and the
// equal-weight mixture that combines them under Multiple Importance
// Sampling. Every distribution here is a small variant type rather than
// a polymorphic interface hierarchy, matching this renderer's
// allocation-free, cache-dense design for code paths evaluated billions
// of times per render.
package lights

import (
	"math"

	"github.com/lumenforge/pathtracer/pkg/core"
)

// Distribution samples a unit direction in the hemisphere around a
// surface normal and reports the solid-angle PDF of any direction.
type Distribution interface {
	Sample(x, n core.Vec3, sampler core.Sampler) core.Vec3
	PDF(x, n, d core.Vec3) float64
}

// Cosine is the cosine-weighted hemisphere distribution used for
// diffuse scattering.
type Cosine struct{}

// Sample draws normalize(g + n) where g is an isotropic Gaussian sample;
// this is the standard trick for generating a cosine-weighted direction
// without rejection. Degenerate candidates (near-zero sum, wrong
// hemisphere after normalizing, or NaN) fall back to the normal itself,
// per spec — a renderer that crashes on a rare degenerate sample is worse
// than one that occasionally returns a slightly biased direction.
func (Cosine) Sample(x, n core.Vec3, sampler core.Sampler) core.Vec3 {
	g := core.NewVec3(sampler.StdNormal(), sampler.StdNormal(), sampler.StdNormal())
	sum := g.Add(n)
	if sum.Length() <= 1e-4 || sum.IsNaN() {
		return n
	}
	d := sum.Normalize()
	if d.Dot(n) <= 1e-4 || d.IsNaN() {
		return n
	}
	return d
}

// PDF returns max(0, d.n)/pi.
func (Cosine) PDF(x, n, d core.Vec3) float64 {
	cos := d.Dot(n)
	if cos < 0 {
		cos = 0
	}
	return cos / math.Pi
}
