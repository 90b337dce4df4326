package elastic

import "math"

// PoissonToVpVs converts Poisson's ratio to the Vp/Vs ratio.
func PoissonToVpVs(poisson float64) float64 {
	return math.Sqrt(2 * (poisson - 1) / (2*poisson - 1))
}

// PoissonToVsVp converts Poisson's ratio to the Vs/Vp ratio.
func PoissonToVsVp(poisson float64) float64 {
	return 1 / PoissonToVpVs(poisson)
}

// VsVpToPoisson converts the Vs/Vp ratio to Poisson's ratio. A zero shear
// velocity (fluid, or an ideal incompressible solid) gives 0.5.
//
// Typical values: sandstone ~0.2, carbonate ~0.3, shale >0.3, coal ~0.4.
func VsVpToPoisson(vsvp float64) float64 {
	if vsvp == 0 {
		return 0.5
	}
	return VpVsToPoisson(1 / vsvp)
}

// VpVsToPoisson converts the Vp/Vs ratio to Poisson's ratio.
func VpVsToPoisson(vpvs float64) float64 {
	s := vpvs * vpvs
	return 0.5 * (s - 2) / (s - 1)
}
