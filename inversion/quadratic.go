package inversion

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/zoeppritz/approx"
	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// DefaultVsVp is the background Vs/Vp ratio assumed when none is given.
const DefaultVsVp = 0.5

// QuadraticStep performs one Gauss-Newton update of the relative
// differences in x against PP amplitudes, using Wang's quadratic
// approximation. x.VsVp is the background ratio, known a priori and never
// updated. Average angles come from x.Vp and stay fixed within the step.
// It returns the updated model and the RMS residual of x.
func QuadraticStep(angles, pp []float64, x elastic.DeltaModel, scale float64) (elastic.DeltaModel, float64, error) {
	if len(angles) == 0 || len(pp) != len(angles) {
		return x, 0, fmt.Errorf("%d amplitudes for %d angles: %w", len(pp), len(angles), elastic.ErrInvalidArgument)
	}
	if x.VsVp == 0 {
		x.VsVp = DefaultVsVp
	}
	if scale == 0 {
		scale = 1
	}

	avg, err := approx.AverageAngles(angles, x.Vp)
	if err != nil {
		return x, 0, err
	}
	pred, err := approx.QuadraticAmplitude(x.VsVp, x.Rho, x.Vp, x.Vs, avg, elastic.Real)
	if err != nil {
		return x, 0, err
	}
	residual := make([]float64, len(pp))
	floats.SubTo(residual, pp, pred)

	jac := approx.QuadraticJacobian(x.VsVp, x.Rho, x.Vs, avg)
	dx, err := LeastSquares(jac, residual)
	if err != nil {
		return x, 0, err
	}

	next := x
	next.Rho += scale * dx[0]
	next.Vp += scale * dx[1]
	next.Vs += scale * dx[2]
	return next, rms(residual), nil
}

// QuadraticRun applies QuadraticStep a fixed number of times. observe, if
// not nil, receives the iteration number, the updated model and the misfit
// of the model the step started from.
func QuadraticRun(angles, pp []float64, x0 elastic.DeltaModel, iterations int, scale float64, observe func(int, elastic.DeltaModel, float64)) (elastic.DeltaModel, error) {
	x := x0
	for i := 0; i < iterations; i++ {
		next, misfit, err := QuadraticStep(angles, pp, x, scale)
		if err != nil {
			return x, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		x = next
		if observe != nil {
			observe(i+1, x, misfit)
		}
	}
	return x, nil
}
