package zoeppritz_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/zoeppritz"
)

func ratios(t *testing.T, vp1, vs1, rho1, vp2, vs2, rho2 float64) elastic.RatioModel {
	t.Helper()
	r, err := elastic.ToRatio(elastic.HalfSpace{Vp1: vp1, Vs1: vs1, Rho1: rho1, Vp2: vp2, Vs2: vs2, Rho2: rho2})
	require.NoError(t, err)
	return r
}

func TestPPNormalIncidence(t *testing.T) {
	r := ratios(t, 3.0, 1.5, 2.3, 2.0, 1.0, 2.0)

	amp, phase, err := zoeppritz.PP(r, 0, elastic.Real)
	require.NoError(t, err)
	assert.InDelta(t, -0.266055, amp, 1e-3)
	assert.Equal(t, 180.0, phase)

	want := (r.R1*r.R4 - 1) / (r.R1*r.R4 + 1)
	assert.InDelta(t, want, amp, 1e-15)

	amp, phase, err = zoeppritz.PP(r, 0, elastic.Abs)
	require.NoError(t, err)
	assert.InDelta(t, 0.266055, amp, 1e-3)
	assert.Equal(t, 180.0, phase)

	amp, phase, err = zoeppritz.PP(elastic.RatioModel{R1: 2, R2: 0.5, R3: 0.5, R4: 1}, 0, elastic.Real)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, amp, 1e-12)
	assert.Equal(t, 0.0, phase)
}

func TestPSNormalIncidence(t *testing.T) {
	r := ratios(t, 3.0, 1.5, 2.3, 2.0, 1.0, 2.0)
	for _, amp := range []elastic.AmpType{elastic.Real, elastic.Abs} {
		a, p, err := zoeppritz.PS(r, 0, amp)
		require.NoError(t, err)
		assert.Equal(t, 0.0, a)
		assert.Equal(t, 0.0, p)
	}
}

func TestPSTenDegrees(t *testing.T) {
	r := ratios(t, 5.72, 2.93, 2.86, 2.87, 1.61, 2.14)
	amp, _, err := zoeppritz.PS(r, 10, elastic.Real)
	require.NoError(t, err)
	assert.InDelta(t, -0.14823324, amp, 1e-3)
}

func TestReferenceValues(t *testing.T) {
	tests := []struct {
		name    string
		r       elastic.RatioModel
		angle   float64
		refl    elastic.Reflection
		amp     float64
		phase   float64
		ampType elastic.AmpType
	}{
		{"slower below PP", elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}, 30, elastic.PP, -0.10705785, 180, elastic.Real},
		{"slower below PS", elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}, 30, elastic.PS, -0.04646549, 180, elastic.Real},
		{"faster below PP", elastic.RatioModel{R1: 1.1, R2: 0.5, R3: 0.5, R4: 0.9}, 30, elastic.PP, 0.026191689, 0, elastic.Real},
		{"faster below PS", elastic.RatioModel{R1: 1.1, R2: 0.5, R3: 0.5, R4: 0.9}, 30, elastic.PS, -0.04659759, 180, elastic.Real},
		{"faster below normal", elastic.RatioModel{R1: 1.1, R2: 0.5, R3: 0.5, R4: 0.9}, 0, elastic.PP, -0.0050251256, 180, elastic.Real},
		{"slower below normal", elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}, 0, elastic.PP, -0.10497238, 180, elastic.Real},
		// r1·sin50° > 1: the transmitted P leg is evanescent
		{"post-critical PP real", elastic.RatioModel{R1: 1.5, R2: 0.5, R3: 0.8, R4: 1.2}, 50, elastic.PP, -0.29991414, 113.08102689, elastic.Real},
		{"post-critical PP abs", elastic.RatioModel{R1: 1.5, R2: 0.5, R3: 0.8, R4: 1.2}, 50, elastic.PP, 0.76502367, 113.08102689, elastic.Abs},
		{"post-critical PS", elastic.RatioModel{R1: 1.5, R2: 0.5, R3: 0.8, R4: 1.2}, 50, elastic.PS, 0.32529233, -52.79309675, elastic.Real},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amp, phase, err := zoeppritz.Coefficient(tt.r, tt.angle, tt.refl, tt.ampType)
			require.NoError(t, err)
			assert.InDelta(t, tt.amp, amp, 1e-7)
			assert.InDelta(t, tt.phase, phase, 1e-6)
		})
	}
}

func TestNoContrast(t *testing.T) {
	models := []elastic.RatioModel{
		{R1: 1, R2: 0.5, R3: 0.5, R4: 1},
		{R1: 1, R2: 0.3, R3: 0.3, R4: 1},
		{R1: 1, R2: 1.2, R3: 1.2, R4: 1},
	}
	for _, r := range models {
		for _, angle := range []float64{0, 1, 15, 30, 45, 60, 75, 89.9} {
			for _, refl := range []elastic.Reflection{elastic.PP, elastic.PS} {
				amp, phase, err := zoeppritz.Coefficient(r, angle, refl, elastic.Real)
				require.NoError(t, err)
				assert.Equal(t, 0.0, amp, "%v %v at %g", r, refl, angle)
				assert.Equal(t, 0.0, math.Abs(phase), "%v %v at %g", r, refl, angle)
			}
		}
	}
}

func TestInvalidAngle(t *testing.T) {
	r := elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}
	for _, angle := range []float64{-1, -0.001, 90, 90.5, 180, math.NaN()} {
		for _, refl := range []elastic.Reflection{elastic.PP, elastic.PS} {
			for _, amp := range []elastic.AmpType{elastic.Real, elastic.Abs} {
				_, _, err := zoeppritz.Coefficient(r, angle, refl, amp)
				assert.ErrorIs(t, err, elastic.ErrInvalidAngle, "angle %g", angle)
			}
		}
	}
}

func TestInvalidArgument(t *testing.T) {
	r := elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}
	_, _, err := zoeppritz.Coefficient(r, 30, elastic.PP, elastic.AmpType(5))
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
	_, _, err = zoeppritz.Coefficient(r, 0, elastic.PP, elastic.AmpType(5))
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
	_, _, err = zoeppritz.Coefficient(r, 30, elastic.Reflection(9), elastic.Real)
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
}

func TestAbsIsModulusOfReal(t *testing.T) {
	r := elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}
	for _, angle := range []float64{5, 25, 45} {
		re, _, err := zoeppritz.PP(r, angle, elastic.Real)
		require.NoError(t, err)
		ab, _, err := zoeppritz.PP(r, angle, elastic.Abs)
		require.NoError(t, err)
		// pre-critical coefficients are real
		assert.InDelta(t, math.Abs(re), ab, 1e-14)
	}
}

func TestSeries(t *testing.T) {
	r := elastic.RatioModel{R1: 0.9, R2: 0.5, R3: 0.5, R4: 0.9}
	amps, phases, err := zoeppritz.Series(r, []float64{0, 30}, elastic.PP, elastic.Real)
	require.NoError(t, err)
	assert.InDelta(t, -0.10497238, amps[0], 1e-7)
	assert.InDelta(t, -0.10705785, amps[1], 1e-7)
	assert.Equal(t, 180.0, phases[0])

	_, _, err = zoeppritz.Series(r, []float64{0, 30, 95, 40}, elastic.PP, elastic.Real)
	assert.ErrorIs(t, err, elastic.ErrInvalidAngle)
}
