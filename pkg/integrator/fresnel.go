package integrator

import "math"

// reflectance computes the Schlick approximation to Fresnel reflectance:
// R(theta) = R0 + (1-R0)(1-cos(theta))^5, where R0 is the reflectance at
// normal incidence for the given index-of-refraction ratio.
func reflectance(cosTheta, eta1, eta2 float64) float64 {
	r0 := (eta1 - eta2) / (eta1 + eta2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}
