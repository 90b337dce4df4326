package zoeppritz

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// DefaultStep is the finite-difference step used by Numeric when none is set.
const DefaultStep = 1e-3

// A Gradienter returns the partial derivative of the real part of a
// reflection coefficient with respect to one ratio parameter.
type Gradienter interface {
	Gradient(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param) (float64, error)
}

// A ComplexGradienter also differentiates the imaginary part, which is
// needed once a leg is post-critical and the coefficient is complex.
type ComplexGradienter interface {
	Gradienter
	ComplexGradient(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param) (complex128, error)
}

// Analytic differentiates the coefficient in closed form. The expressions
// assume every leg is pre-critical, so the angle must be strictly inside
// (0, 90) and r1·sinθ must stay below 1.
type Analytic struct{}

// Gradient implements Gradienter.
func (Analytic) Gradient(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param) (float64, error) {
	if err := checkGradientArgs(angle, refl, p); err != nil {
		return 0, err
	}
	s := math.Sin(angle * deg2rad)
	if r.R1*s >= 1 {
		return 0, fmt.Errorf("r1·sin(%g) = %g is post-critical: %w", angle, r.R1*s, elastic.ErrInvalidAngle)
	}
	b, err := newDualBlocks(r, s, p)
	if err != nil {
		return 0, fmt.Errorf("angle %g: %w", angle, err)
	}
	return b.coefficient(refl).d, nil
}

// Numeric approximates the derivative by a central difference of the
// exact coefficient. It needs no pre-critical assumption and serves as a
// cross-check of Analytic.
type Numeric struct {
	Step float64 // DefaultStep when zero
}

// Gradient implements Gradienter.
func (n Numeric) Gradient(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param) (float64, error) {
	return n.derivative(r, angle, refl, p, realPart)
}

// ComplexGradient implements ComplexGradienter.
func (n Numeric) ComplexGradient(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param) (complex128, error) {
	re, err := n.derivative(r, angle, refl, p, realPart)
	if err != nil {
		return 0, err
	}
	im, err := n.derivative(r, angle, refl, p, imagPart)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

func (n Numeric) derivative(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param, part func(complex128) float64) (float64, error) {
	if err := checkGradientArgs(angle, refl, p); err != nil {
		return 0, err
	}
	step := n.Step
	if step == 0 {
		step = DefaultStep
	}

	var evalErr error
	f := func(x float64) float64 {
		z, err := Complex(r.With(p, x), angle, refl)
		if err != nil {
			evalErr = err
			return math.NaN()
		}
		return part(z)
	}
	g := fd.Derivative(f, r.Get(p), &fd.Settings{Formula: fd.Central, Step: step})
	if evalErr != nil {
		return 0, evalErr
	}
	return g, nil
}

func realPart(z complex128) float64 { return real(z) }
func imagPart(z complex128) float64 { return imag(z) }

func checkGradientArgs(angle float64, refl elastic.Reflection, p elastic.Param) error {
	if !(angle > 0 && angle < 90) {
		return fmt.Errorf("incidence angle %g outside (0, 90): %w", angle, elastic.ErrInvalidAngle)
	}
	if !refl.Valid() {
		return fmt.Errorf("reflection %v: %w", refl, elastic.ErrInvalidArgument)
	}
	if !p.Valid() {
		return fmt.Errorf("parameter %v: %w", p, elastic.ErrInvalidArgument)
	}
	return nil
}

// Method selects a gradient strategy.
type Method int

const (
	MethodAnalytic Method = iota
	MethodNumeric
)

func (m Method) String() string {
	switch m {
	case MethodAnalytic:
		return "analytic"
	case MethodNumeric:
		return "numeric"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts "analytic" or "numeric".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analytic":
		return MethodAnalytic, nil
	case "numeric":
		return MethodNumeric, nil
	}
	return 0, fmt.Errorf("gradient method %q: %w", s, elastic.ErrInvalidArgument)
}

// Gradienter returns the strategy for m.
func (m Method) Gradienter() (Gradienter, error) {
	switch m {
	case MethodAnalytic:
		return Analytic{}, nil
	case MethodNumeric:
		return Numeric{}, nil
	}
	return nil, fmt.Errorf("gradient method %v: %w", m, elastic.ErrInvalidArgument)
}

// Gradient returns ∂R/∂p for the PP or PS coefficient at one angle using
// the chosen method.
func Gradient(r elastic.RatioModel, angle float64, refl elastic.Reflection, p elastic.Param, method Method) (float64, error) {
	g, err := method.Gradienter()
	if err != nil {
		return 0, err
	}
	return g.Gradient(r, angle, refl, p)
}

// Jacobian returns the len(angles)×4 matrix of partial derivatives, one row
// per angle and one column per ratio parameter. Angles are evaluated
// concurrently; the first error cancels the result.
func Jacobian(g Gradienter, r elastic.RatioModel, angles []float64, refl elastic.Reflection) (*mat.Dense, error) {
	return jacobian(angles, func(angle float64) (row [4]float64, err error) {
		for _, p := range elastic.Params {
			if row[p], err = g.Gradient(r, angle, refl, p); err != nil {
				return row, fmt.Errorf("%v d/d%v: %w", refl, p, err)
			}
		}
		return row, nil
	})
}

// ModulusJacobian is Jacobian for |R| instead of Re R. Where the coefficient
// is real the rows are the real-part rows times sign(R). Where it is complex
// the rows are Re(conj(R)·∂R/∂p)/|R|, which needs a ComplexGradienter; other
// strategies fail with ErrInvalidAngle there.
func ModulusJacobian(g Gradienter, r elastic.RatioModel, angles []float64, refl elastic.Reflection) (*mat.Dense, error) {
	cg, haveComplex := g.(ComplexGradienter)
	return jacobian(angles, func(angle float64) (row [4]float64, err error) {
		z, err := Complex(r, angle, refl)
		if err != nil {
			return row, err
		}
		if imag(z) != 0 && !haveComplex {
			return row, fmt.Errorf("%v is complex at %g and the gradient strategy is real only: %w", refl, angle, elastic.ErrInvalidAngle)
		}
		for _, p := range elastic.Params {
			if imag(z) == 0 {
				row[p], err = g.Gradient(r, angle, refl, p)
				if real(z) < 0 {
					row[p] = -row[p]
				}
			} else {
				var dz complex128
				dz, err = cg.ComplexGradient(r, angle, refl, p)
				row[p] = real(cmplx.Conj(z)*dz) / cmplx.Abs(z)
			}
			if err != nil {
				return row, fmt.Errorf("%v d|R|/d%v: %w", refl, p, err)
			}
		}
		return row, nil
	})
}

func jacobian(angles []float64, row func(angle float64) ([4]float64, error)) (*mat.Dense, error) {
	if len(angles) == 0 {
		return nil, fmt.Errorf("jacobian needs at least one angle: %w", elastic.ErrInvalidArgument)
	}
	rows := make([][4]float64, len(angles))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, angle := range angles {
		eg.Go(func() error {
			var err error
			rows[i], err = row(angle)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	j := mat.NewDense(len(angles), len(elastic.Params), nil)
	for i := range rows {
		j.SetRow(i, rows[i][:])
	}
	return j, nil
}
