// Package integrator implements the recursive Monte Carlo estimator for
// the rendering equation: a single trace() call per primary ray, with
// Multiple Importance Sampling over the scene's mixture distribution for
// diffuse surfaces and analytic reflect/refract for metallic and
// dielectric ones.
package integrator

import (
	"math"

	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

// Trace estimates the radiance arriving along ray, recursing up to depth
// bounces. depth == 0 terminates the recursion with black, matching the
// hard bounce cap rather than Russian roulette — ray_depth is a small,
// fixed, stack-safe constant (typically <= 16) by design.
func Trace(scn *scene.Scene, ray core.Ray, depth int, sampler core.Sampler) core.Color {
	if depth == 0 {
		return core.Color{}
	}

	hit, prim, ok := scn.Intersect(ray)
	if !ok {
		return scn.BGColor
	}

	x := ray.At(hit.T)
	mat := prim.Material

	switch mat.Kind {
	case core.Diffuse:
		return traceDiffuse(scn, ray, hit, x, mat, depth, sampler)
	case core.Metallic:
		return traceMetallic(scn, ray, hit, x, mat, depth, sampler)
	case core.Dielectric:
		return traceDielectric(scn, ray, hit, x, mat, depth, sampler)
	default:
		return mat.Emission
	}
}

func traceDiffuse(scn *scene.Scene, ray core.Ray, hit core.Intersection, x Vec3, mat core.Material, depth int, sampler core.Sampler) core.Color {
	n := hit.Normal
	origin := x.Add(n.Multiply(core.Epsilon))

	d := scn.Emitters.Sample(origin, n, sampler)
	cosTheta := d.Dot(n)
	if cosTheta <= 0 {
		return mat.Emission
	}

	pdf := scn.Emitters.PDF(origin, n, d)
	if pdf <= 0 || math.IsNaN(pdf) {
		return mat.Emission
	}

	scattered := core.NewRay(x.Add(d.Multiply(core.Epsilon)), d)
	incoming := Trace(scn, scattered, depth-1, sampler)

	weight := cosTheta / (math.Pi * pdf)
	return mat.Emission.Add(mat.Color.MultiplyVec(incoming).Multiply(weight))
}

func traceMetallic(scn *scene.Scene, ray core.Ray, hit core.Intersection, x Vec3, mat core.Material, depth int, sampler core.Sampler) core.Color {
	dHat := ray.Direction.Normalize()
	r := reflect(dHat, hit.Normal)
	scattered := core.NewRay(x.Add(r.Multiply(core.Epsilon)), r)
	incoming := Trace(scn, scattered, depth-1, sampler)
	return mat.Emission.Add(mat.Color.MultiplyVec(incoming))
}

func traceDielectric(scn *scene.Scene, ray core.Ray, hit core.Intersection, x Vec3, mat core.Material, depth int, sampler core.Sampler) core.Color {
	dHat := ray.Direction.Normalize()
	n := hit.Normal
	reflected := reflect(dHat, n)

	eta1, eta2 := 1.0, mat.IOR
	if hit.Inside {
		eta1, eta2 = mat.IOR, 1.0
	}

	l := dHat.Negate()
	cosThetaI := n.Dot(l)
	sinThetaISq := math.Max(0, 1-cosThetaI*cosThetaI)
	sinThetaT := (eta1 / eta2) * math.Sqrt(sinThetaISq)

	if math.Abs(sinThetaT) > 1 {
		scattered := core.NewRay(x.Add(reflected.Multiply(core.Epsilon)), reflected)
		return mat.Emission.Add(Trace(scn, scattered, depth-1, sampler))
	}

	r := reflectance(cosThetaI, eta1, eta2)
	if sampler.Float64() < r {
		scattered := core.NewRay(x.Add(reflected.Multiply(core.Epsilon)), reflected)
		return mat.Emission.Add(Trace(scn, scattered, depth-1, sampler))
	}

	cosThetaT := math.Sqrt(1 - sinThetaT*sinThetaT)
	ratio := eta1 / eta2
	refracted := l.Negate().Multiply(ratio).Add(n.Multiply(ratio*cosThetaI - cosThetaT))
	scattered := core.NewRay(x.Add(refracted.Multiply(core.Epsilon)), refracted)
	incoming := Trace(scn, scattered, depth-1, sampler)
	if !hit.Inside {
		incoming = mat.Color.MultiplyVec(incoming)
	}
	return mat.Emission.Add(incoming)
}

// reflect computes v reflected about unit normal n: r = v - 2(n.v)n.
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * n.Dot(v)))
}

// Vec3 is a local alias so the trace* helper signatures read naturally.
type Vec3 = core.Vec3
