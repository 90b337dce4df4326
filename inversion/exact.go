// Package inversion recovers elastic contrasts from angle-dependent
// reflection amplitudes: Gauss-Newton iterations on the exact Zoeppritz
// coefficients in ratio parameters, iterations on Wang's quadratic
// approximation, and direct L2 and L1 solves of the Aki-Richards linear
// system.
package inversion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/zoeppritz"
)

// Observations are amplitudes measured on one angle grid. PP holds signed
// real amplitudes. PS is optional and holds moduli.
type Observations struct {
	Angles []float64 // incidence angles in degrees
	PP     []float64
	PS     []float64
}

func (o Observations) validate() error {
	if len(o.Angles) == 0 {
		return fmt.Errorf("no observation angles: %w", elastic.ErrInvalidArgument)
	}
	if len(o.PP) != len(o.Angles) {
		return fmt.Errorf("%d PP amplitudes for %d angles: %w", len(o.PP), len(o.Angles), elastic.ErrInvalidArgument)
	}
	if len(o.PS) != 0 && len(o.PS) != len(o.Angles) {
		return fmt.Errorf("%d PS amplitudes for %d angles: %w", len(o.PS), len(o.Angles), elastic.ErrInvalidArgument)
	}
	return nil
}

// Constraints pins ratio parameters to fixed values. A pinned parameter is
// set before the model is evaluated and its update is discarded.
type Constraints map[elastic.Param]float64

func (c Constraints) validate() error {
	for p := range c {
		if !p.Valid() {
			return fmt.Errorf("constraint on %v: %w", p, elastic.ErrInvalidArgument)
		}
	}
	return nil
}

// Options control one Gauss-Newton step.
type Options struct {
	Scale       float64          // damping factor applied to the update, 1 when zero
	Constraints Constraints      // pinned parameters
	Method      zoeppritz.Method // gradient strategy for the Jacobian
}

func (o Options) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

// State is the estimate carried between iterations.
type State struct {
	Model     elastic.RatioModel
	Iteration int     // completed iterations
	Misfit    float64 // RMS residual of the model the last step started from
}

// Step performs one damped Gauss-Newton update of s.Model against obs and
// returns the next state. The receiver's model is not modified.
func Step(obs Observations, s State, opts Options) (State, error) {
	if err := obs.validate(); err != nil {
		return s, err
	}
	if err := opts.Constraints.validate(); err != nil {
		return s, err
	}
	if len(opts.Constraints) == len(elastic.Params) {
		return s, fmt.Errorf("all parameters are constrained: %w", elastic.ErrSolverDegenerate)
	}
	grad, err := opts.Method.Gradienter()
	if err != nil {
		return s, err
	}

	x := s.Model
	for p, v := range opts.Constraints {
		x = x.With(p, v)
	}

	jac, residual, err := linearize(obs, x, grad)
	if err != nil {
		return s, err
	}
	dx, err := LeastSquares(jac, residual)
	if err != nil {
		return s, err
	}

	vec := x.Vector()
	scale := opts.scale()
	for _, p := range elastic.Params {
		if _, pinned := opts.Constraints[p]; pinned {
			continue
		}
		vec[p] += scale * dx[p]
	}

	return State{
		Model:     elastic.RatioFromVector(vec),
		Iteration: s.Iteration + 1,
		Misfit:    rms(residual),
	}, nil
}

// linearize returns the stacked Jacobian and residual of the PP block and,
// when PS data are present, the PS block. PS residuals compare moduli, so
// the PS rows differentiate |Rps|, including past a critical angle.
func linearize(obs Observations, x elastic.RatioModel, grad zoeppritz.Gradienter) (*mat.Dense, []float64, error) {
	predPP, _, err := zoeppritz.Series(x, obs.Angles, elastic.PP, elastic.Real)
	if err != nil {
		return nil, nil, err
	}
	jac, err := zoeppritz.Jacobian(grad, x, obs.Angles, elastic.PP)
	if err != nil {
		return nil, nil, err
	}
	residual := make([]float64, len(obs.Angles))
	floats.SubTo(residual, obs.PP, predPP)

	if len(obs.PS) == 0 {
		return jac, residual, nil
	}

	predPS, _, err := zoeppritz.Series(x, obs.Angles, elastic.PS, elastic.Abs)
	if err != nil {
		return nil, nil, err
	}
	jps, err := zoeppritz.ModulusJacobian(grad, x, obs.Angles, elastic.PS)
	if err != nil {
		return nil, nil, err
	}
	psResidual := make([]float64, len(obs.Angles))
	floats.SubTo(psResidual, obs.PS, predPS)
	residual = append(residual, psResidual...)

	var stacked mat.Dense
	stacked.Stack(jac, jps)
	return &stacked, residual, nil
}

// Run applies Step a fixed number of times starting from x0. observe, if
// not nil, is called after every step.
func Run(obs Observations, x0 elastic.RatioModel, iterations int, opts Options, observe func(State)) (State, error) {
	s := State{Model: x0}
	for i := 0; i < iterations; i++ {
		next, err := Step(obs, s, opts)
		if err != nil {
			return s, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		s = next
		if observe != nil {
			observe(s)
		}
	}
	return s, nil
}

// Synthesize evaluates exact PP (signed) and, if withPS, PS (modulus)
// amplitudes of x at the given angles.
func Synthesize(x elastic.RatioModel, angles []float64, withPS bool) (Observations, error) {
	obs := Observations{Angles: angles}
	var err error
	obs.PP, _, err = zoeppritz.Series(x, angles, elastic.PP, elastic.Real)
	if err != nil {
		return Observations{}, err
	}
	if withPS {
		obs.PS, _, err = zoeppritz.Series(x, angles, elastic.PS, elastic.Abs)
		if err != nil {
			return Observations{}, err
		}
	}
	return obs, nil
}

func rms(r []float64) float64 {
	if len(r) == 0 {
		return 0
	}
	return floats.Norm(r, 2) / math.Sqrt(float64(len(r)))
}
