// Package modeling is the single entry point for forward modeling: it takes
// a half-space model, a set of incidence angles, an equation and a
// reflection type, and returns (angle, amplitude, phase) samples.
package modeling

import (
	"fmt"
	"strings"

	"github.com/bob-anderson-ok/zoeppritz/approx"
	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/zoeppritz"
)

// Equation selects the forward model.
type Equation int

const (
	Linear    Equation = iota // Aki and Richards (1980)
	Quadratic                 // Wang (1999)
	Zoeppritz                 // exact, Cerveny (1977)
)

func (e Equation) String() string {
	switch e {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Zoeppritz:
		return "zoeppritz"
	}
	return fmt.Sprintf("Equation(%d)", int(e))
}

// ParseEquation accepts "linear", "quadratic" or "zoeppritz".
func ParseEquation(s string) (Equation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	case "zoeppritz":
		return Zoeppritz, nil
	}
	return 0, fmt.Errorf("equation %q: %w", s, elastic.ErrInvalidArgument)
}

// Sample is one row of a modeling result.
type Sample struct {
	Angle     float64 // incidence angle, degrees
	Amplitude float64
	Phase     float64 // degrees; always 0 for the linearized equations
}

// Request describes one forward modeling run.
type Request struct {
	Model      elastic.HalfSpace
	Angles     []float64
	Equation   Equation
	Reflection elastic.Reflection
	Amp        elastic.AmpType
}

// Reflect parses angleSpec (see ParseAngles) and models signed real
// amplitudes.
func Reflect(hs elastic.HalfSpace, angleSpec string, eq Equation, refl elastic.Reflection) ([]Sample, error) {
	angles, err := ParseAngles(angleSpec)
	if err != nil {
		return nil, err
	}
	return Request{Model: hs, Angles: angles, Equation: eq, Reflection: refl, Amp: elastic.Real}.Run()
}

// Run evaluates the request. PS is only defined by the exact equation;
// asking a linearized equation for it returns ErrNotImplemented.
func (r Request) Run() ([]Sample, error) {
	if err := r.Model.Validate(); err != nil {
		return nil, err
	}
	if !r.Reflection.Valid() {
		return nil, fmt.Errorf("reflection %v: %w", r.Reflection, elastic.ErrInvalidArgument)
	}
	if !r.Amp.Valid() {
		return nil, fmt.Errorf("amplitude type %v: %w", r.Amp, elastic.ErrInvalidArgument)
	}

	var amps, phases []float64
	switch r.Equation {
	case Linear, Quadratic:
		if r.Reflection != elastic.PP {
			return nil, fmt.Errorf("%v %v: %w", r.Equation, r.Reflection, elastic.ErrNotImplemented)
		}
		d := elastic.ToDelta(r.Model)
		avg, err := approx.AverageAngles(r.Angles, d.Vp)
		if err != nil {
			return nil, err
		}
		if r.Equation == Linear {
			amps, err = approx.LinearAmplitude(d.VsVp, d.Rho, d.Vp, d.Vs, avg, r.Amp)
		} else {
			amps, err = approx.QuadraticAmplitude(d.VsVp, d.Rho, d.Vp, d.Vs, avg, r.Amp)
		}
		if err != nil {
			return nil, err
		}
		phases = make([]float64, len(amps))
	case Zoeppritz:
		ratios, err := elastic.ToRatio(r.Model)
		if err != nil {
			return nil, err
		}
		amps, phases, err = zoeppritz.Series(ratios, r.Angles, r.Reflection, r.Amp)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("equation %v: %w", r.Equation, elastic.ErrInvalidArgument)
	}

	samples := make([]Sample, len(r.Angles))
	for i, angle := range r.Angles {
		samples[i] = Sample{Angle: angle, Amplitude: amps[i], Phase: phases[i]}
	}
	return samples, nil
}

// Table returns the samples as an M×3 table of angle, amplitude and phase.
func Table(samples []Sample) [][3]float64 {
	t := make([][3]float64, len(samples))
	for i, s := range samples {
		t[i] = [3]float64{s.Angle, s.Amplitude, s.Phase}
	}
	return t
}
