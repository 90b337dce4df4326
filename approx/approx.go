// Package approx implements the linearized PP reflection coefficient of
// Aki and Richards (1980) and the quadratic correction of Wang (1999), both
// in the relative-difference parameterization and evaluated at the average
// of the incidence and transmission angles.
package approx

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

const deg2rad = math.Pi / 180

// AverageAngles converts incidence angles (degrees) to the mean of the
// incidence and Snell transmission angles, with Vp2/Vp1 approximated by
// (2+vpRD)/(2−vpRD). A post-critical angle has no transmission angle and
// returns ErrInvalidAngle.
func AverageAngles(incident []float64, vpRD float64) ([]float64, error) {
	if !(vpRD > -2 && vpRD < 2) {
		return nil, fmt.Errorf("vp relative difference %g outside (-2, 2): %w", vpRD, elastic.ErrInvalidArgument)
	}
	r := (2 + vpRD) / (2 - vpRD)
	avg := make([]float64, len(incident))
	for i, theta := range incident {
		x := r * math.Sin(theta*deg2rad)
		if math.IsNaN(x) || math.Abs(x) > 1 {
			return nil, fmt.Errorf("incidence angle %g is post-critical for vp2/vp1 = %.4f: %w", theta, r, elastic.ErrInvalidAngle)
		}
		transmitted := math.Asin(x) / deg2rad
		avg[i] = 0.5 * (theta + transmitted)
	}
	return avg, nil
}

// CoefficientMatrix returns the M×3 matrix A of the linearized equation
// Ax = b, with columns for the density, Vp and Vs contrasts:
//
//	[0.5(1 − 4k²sin²θ), 0.5/cos²θ, −4k²sin²θ],  k = Vs/Vp
func CoefficientMatrix(vsVp float64, avg []float64) *mat.Dense {
	a := mat.NewDense(len(avg), 3, nil)
	for i, theta := range avg {
		s := math.Sin(theta * deg2rad)
		c := math.Cos(theta * deg2rad)
		cs := -4 * vsVp * vsVp * s * s
		a.Set(i, 0, 0.5*(1+cs))
		a.Set(i, 1, 0.5/(c*c))
		a.Set(i, 2, cs)
	}
	return a
}

// quadCoef is k³ cosθ sin²θ, the weight of Wang's quadratic term.
func quadCoef(vsVp, theta float64) float64 {
	s := math.Sin(theta * deg2rad)
	return vsVp * vsVp * vsVp * math.Cos(theta*deg2rad) * s * s
}

// LinearAmplitude returns the Aki-Richards PP amplitude at each average
// angle.
func LinearAmplitude(vsVp, rho, vp, vs float64, avg []float64, amp elastic.AmpType) ([]float64, error) {
	if !amp.Valid() {
		return nil, fmt.Errorf("amplitude type %v: %w", amp, elastic.ErrInvalidArgument)
	}
	r := linear(vsVp, rho, vp, vs, avg)
	return applyAmp(r, amp), nil
}

// QuadraticAmplitude adds Wang's k³cosθsin²θ(ρ_rd + 2Vs_rd)² term to the
// linear amplitude before the amplitude type is applied.
func QuadraticAmplitude(vsVp, rho, vp, vs float64, avg []float64, amp elastic.AmpType) ([]float64, error) {
	if !amp.Valid() {
		return nil, fmt.Errorf("amplitude type %v: %w", amp, elastic.ErrInvalidArgument)
	}
	r := linear(vsVp, rho, vp, vs, avg)
	quad := (rho + 2*vs) * (rho + 2*vs)
	for i, theta := range avg {
		r[i] += quadCoef(vsVp, theta) * quad
	}
	return applyAmp(r, amp), nil
}

// QuadraticJacobian returns the partial derivatives of QuadraticAmplitude
// with respect to (ρ_rd, Vp_rd, Vs_rd) at fixed average angles. The angle
// mapping depends on Vp_rd too, but it is held fixed here, so one step of
// a quadratic inversion sees the angles of its starting model.
func QuadraticJacobian(vsVp, rho, vs float64, avg []float64) *mat.Dense {
	a := CoefficientMatrix(vsVp, avg)
	rhoPD := 2 * (rho + 2*vs)
	vsPD := 2 * rhoPD
	for i, theta := range avg {
		q := quadCoef(vsVp, theta)
		a.Set(i, 0, a.At(i, 0)+q*rhoPD)
		a.Set(i, 2, a.At(i, 2)+q*vsPD)
	}
	return a
}

func linear(vsVp, rho, vp, vs float64, avg []float64) []float64 {
	if len(avg) == 0 {
		return nil
	}
	a := CoefficientMatrix(vsVp, avg)
	var r mat.VecDense
	r.MulVec(a, mat.NewVecDense(3, []float64{rho, vp, vs}))
	return mat.Col(nil, 0, &r)
}

func applyAmp(r []float64, amp elastic.AmpType) []float64 {
	if amp == elastic.Abs {
		for i := range r {
			r[i] = math.Abs(r[i])
		}
	}
	return r
}
