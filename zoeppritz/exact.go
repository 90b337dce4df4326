// Package zoeppritz evaluates the exact PP and PS reflection coefficients
// of a plane P wave at a welded interface between two elastic half-spaces,
// using the explicit form of the Zoeppritz equations in ratio parameters
// (Cerveny 1977; Zhu 2012), and their partial derivatives with respect to
// those parameters.
package zoeppritz

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

const deg2rad = math.Pi / 180

// complexSqrt returns √(1 − (r·sinθ)²). A negative radicand belongs to an
// evanescent leg, and its root is taken with a zero real part and a
// negative imaginary part. That branch fixes the phase of post-critical
// coefficients and must not change.
func complexSqrt(r, sin float64) complex128 {
	rs := r * sin
	rad := 1 - rs*rs
	if rad >= 0 {
		return complex(math.Sqrt(rad), 0)
	}
	return complex(0, -math.Sqrt(-rad))
}

// blocks are the quantities shared by the PP and PS expressions at one
// incidence angle.
type blocks struct {
	q  float64       // 2 sin²θ (r4 r3² − r2²)
	ct [4]complex128 // rᵢ sinθ / √(1 − rᵢ² sin²θ), r0 = 1
}

func newBlocks(r elastic.RatioModel, angle float64) blocks {
	s := math.Sin(angle * deg2rad)
	ratios := [4]float64{1, r.R1, r.R2, r.R3}
	var b blocks
	b.q = 2 * s * s * (r.R4*r.R3*r.R3 - r.R2*r.R2)
	for i, ri := range ratios {
		b.ct[i] = complex(ri*s, 0) / complexSqrt(ri, s)
	}
	return b
}

// fraction returns the numerator of the requested coefficient and the
// denominator common to PP and PS.
func (b blocks) fraction(r elastic.RatioModel, refl elastic.Reflection) (num, den complex128) {
	q := b.q
	ct0, ct1, ct2, ct3 := b.ct[0], b.ct[1], b.ct[2], b.ct[3]
	u := r.R4 - q
	w := r.R4 - q - 1
	v := 1 + q

	a := complex(u*u, 0) * ct1 * ct3
	bb := complex(w*w, 0) * ct0 * ct1 * ct2 * ct3
	c := complex(v*v, 0) * ct0 * ct2
	d := complex(r.R4, 0) * ct1 * ct2
	e := complex(r.R4, 0) * ct0 * ct3
	f := complex(q*q, 0)
	den = f + e + d + c + bb + a

	if refl == elastic.PP {
		num = f - e + d - c - bb + a
		return num, den
	}
	g := complex(q*v, 0)
	h := complex(u*w, 0) * ct1 * ct3
	num = 2 * ct2 * (g + h) / complex(r.R2, 0)
	return num, den
}

func checkForwardAngle(angle float64) error {
	if !(angle >= 0 && angle < 90) {
		return fmt.Errorf("incidence angle %g outside [0, 90): %w", angle, elastic.ErrInvalidAngle)
	}
	return nil
}

// Complex returns the complex reflection coefficient for an incidence
// angle in degrees, 0 <= angle < 90.
func Complex(r elastic.RatioModel, angle float64, refl elastic.Reflection) (complex128, error) {
	if err := checkForwardAngle(angle); err != nil {
		return 0, err
	}
	if !refl.Valid() {
		return 0, fmt.Errorf("reflection %v: %w", refl, elastic.ErrInvalidArgument)
	}
	if angle == 0 {
		if refl == elastic.PS {
			return 0, nil
		}
		return complex(normalIncidence(r), 0), nil
	}
	num, den := newBlocks(r, angle).fraction(r, refl)
	if num == 0 {
		// keep signed zeros out of the phase
		return 0, nil
	}
	return num / den, nil
}

// normalIncidence is the acoustic impedance contrast, the limit of PP at
// zero angle.
func normalIncidence(r elastic.RatioModel) float64 {
	z := r.R1 * r.R4
	return (z - 1) / (z + 1)
}

// Coefficient returns the amplitude and phase (degrees) of the reflection
// coefficient. Real reports the signed real part and Abs the modulus; the
// phase is the principal argument in either case. At normal incidence the
// PP phase is exactly 0 or 180 and PS is (0, 0).
func Coefficient(r elastic.RatioModel, angle float64, refl elastic.Reflection, amp elastic.AmpType) (amplitude, phase float64, err error) {
	z, err := Complex(r, angle, refl)
	if err != nil {
		return 0, 0, err
	}
	if !amp.Valid() {
		return 0, 0, fmt.Errorf("amplitude type %v: %w", amp, elastic.ErrInvalidArgument)
	}

	if angle == 0 {
		amplitude = real(z)
		if amplitude < 0 {
			phase = 180
		}
		if amp == elastic.Abs {
			amplitude = math.Abs(amplitude)
		}
		return amplitude, phase, nil
	}

	phase = cmplx.Phase(z) * 180 / math.Pi
	if amp == elastic.Abs {
		return cmplx.Abs(z), phase, nil
	}
	return real(z), phase, nil
}

// PP is Coefficient for the reflected P wave.
func PP(r elastic.RatioModel, angle float64, amp elastic.AmpType) (amplitude, phase float64, err error) {
	return Coefficient(r, angle, elastic.PP, amp)
}

// PS is Coefficient for the converted S wave.
func PS(r elastic.RatioModel, angle float64, amp elastic.AmpType) (amplitude, phase float64, err error) {
	return Coefficient(r, angle, elastic.PS, amp)
}

// Series evaluates Coefficient over a set of angles. The first invalid
// angle aborts the whole series.
func Series(r elastic.RatioModel, angles []float64, refl elastic.Reflection, amp elastic.AmpType) (amplitudes, phases []float64, err error) {
	amplitudes = make([]float64, len(angles))
	phases = make([]float64, len(angles))
	for i, angle := range angles {
		amplitudes[i], phases[i], err = Coefficient(r, angle, refl, amp)
		if err != nil {
			return nil, nil, err
		}
	}
	return amplitudes, phases, nil
}
