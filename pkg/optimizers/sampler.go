package optimizers

import (
	"math"
	"math/rand"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
)

// randomDesign samples a design uniformly inside the constraint bounds. The
// joint spring-index constraint is deliberately not enforced here; the
// evaluator checks it lazily since it couples two genes.
func randomDesign(rng *rand.Rand, c core.DesignConstraints) core.Design {
	return core.Design{
		WireDiameter: uniformIn(rng, c.WireDiameter),
		MeanDiameter: uniformIn(rng, c.MeanDiameter),
		ActiveCoils:  roundToRange(uniformIn(rng, c.ActiveCoils), c.ActiveCoils),
		FreeLength:   uniformIn(rng, c.FreeLength),
		Material:     rng.Intn(len(c.AllowedMaterials)),
	}
}

// clampDesign limits every gene to its bounds. Pure: the input is unchanged.
func clampDesign(d core.Design, c core.DesignConstraints) core.Design {
	d.WireDiameter = c.WireDiameter.Clamp(d.WireDiameter)
	d.MeanDiameter = c.MeanDiameter.Clamp(d.MeanDiameter)
	d.ActiveCoils = roundToRange(float64(d.ActiveCoils), c.ActiveCoils)
	d.FreeLength = c.FreeLength.Clamp(d.FreeLength)

	if d.Material < 0 {
		d.Material = 0
	}
	if max := len(c.AllowedMaterials) - 1; d.Material > max {
		d.Material = max
	}
	return d
}

func uniformIn(rng *rand.Rand, r core.Range) float64 {
	return r.Min + rng.Float64()*r.Span()
}

// roundToRange rounds to the nearest integer inside the (integer-valued)
// range.
func roundToRange(v float64, r core.Range) int {
	rounded := math.Round(r.Clamp(v))
	return int(rounded)
}
