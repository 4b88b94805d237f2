package lights

import "github.com/lumenforge/pathtracer/pkg/core"

// Mix is the scene-level sampling distribution: an equal-weight
// composition of {Cosine} or {Cosine, FiguresMix}, with FiguresMix
// included iff the scene has at least one emitter. This is the
// distribution the diffuse branch of the path integrator samples from
// and evaluates the PDF of for Multiple Importance Sampling. Both
// components are held as concrete types, so neither is reached through
// interface dispatch.
type Mix struct {
	cosine  Cosine
	figures *FiguresMix
}

// NewMix builds the scene mixture. Pass nil figures when the scene has
// no emitters; Mix then degenerates to pure cosine sampling.
func NewMix(figures *FiguresMix) *Mix {
	return &Mix{figures: figures}
}

func (m *Mix) Sample(x, n core.Vec3, sampler core.Sampler) core.Vec3 {
	if m.figures == nil {
		return m.cosine.Sample(x, n, sampler)
	}
	if sampler.Float64() < 0.5 {
		return m.cosine.Sample(x, n, sampler)
	}
	return m.figures.Sample(x, n, sampler)
}

func (m *Mix) PDF(x, n, d core.Vec3) float64 {
	cosinePDF := m.cosine.PDF(x, n, d)
	if m.figures == nil {
		return cosinePDF
	}
	return 0.5 * (cosinePDF + m.figures.PDF(x, n, d))
}
