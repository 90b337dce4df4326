package elastic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shaleOverSand = HalfSpace{Vp1: 3.0, Vs1: 1.5, Rho1: 2.3, Vp2: 2.0, Vs2: 1.0, Rho2: 2.0}

func TestToRatio(t *testing.T) {
	r, err := ToRatio(shaleOverSand)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, r.R1, 1e-12)
	assert.InDelta(t, 0.5, r.R2, 1e-12)
	assert.InDelta(t, 1.0/3.0, r.R3, 1e-12)
	assert.InDelta(t, 2.0/2.3, r.R4, 1e-12)
}

func TestToRatioZeroReference(t *testing.T) {
	_, err := ToRatio(HalfSpace{Vp1: 0, Vs1: 1, Rho1: 2, Vp2: 2, Vs2: 1, Rho2: 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ToRatio(HalfSpace{Vp1: 3, Vs1: 1, Rho1: 0, Vp2: 2, Vs2: 1, Rho2: 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRatioRoundTrip(t *testing.T) {
	r, err := ToRatio(shaleOverSand)
	require.NoError(t, err)
	h := r.HalfSpace(shaleOverSand.Vp1, shaleOverSand.Rho1)
	assert.InDelta(t, shaleOverSand.Vp2, h.Vp2, 1e-12)
	assert.InDelta(t, shaleOverSand.Vs1, h.Vs1, 1e-12)
	assert.InDelta(t, shaleOverSand.Vs2, h.Vs2, 1e-12)
	assert.InDelta(t, shaleOverSand.Rho2, h.Rho2, 1e-12)
}

func TestToDelta(t *testing.T) {
	d := ToDelta(shaleOverSand)
	assert.InDelta(t, -0.3/2.15, d.Rho, 1e-12)
	assert.InDelta(t, -0.4, d.Vp, 1e-12)
	assert.InDelta(t, -0.4, d.Vs, 1e-12)
	assert.InDelta(t, 0.5, d.VsVp, 1e-12)
	assert.Equal(t, [3]float64{d.Rho, d.Vp, d.Vs}, d.Vector())
}

func TestNormalIncidenceAgreesAcrossParameterizations(t *testing.T) {
	// Without shear terms both forms reduce to the acoustic impedance
	// contrast; the delta form is its first order expansion.
	h := HalfSpace{Vp1: 3.0, Vs1: 1.5, Rho1: 2.3, Vp2: 3.1, Vs2: 1.55, Rho2: 2.35}
	r, err := ToRatio(h)
	require.NoError(t, err)
	d := ToDelta(h)

	exact := (r.R1*r.R4 - 1) / (r.R1*r.R4 + 1)
	linear := 0.5 * (d.Rho + d.Vp)
	assert.InDelta(t, exact, linear, 1e-4)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, shaleOverSand.Validate())

	bad := shaleOverSand
	bad.Vs2 = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidArgument)

	bad = shaleOverSand
	bad.Rho1 = math.NaN()
	assert.ErrorIs(t, bad.Validate(), ErrInvalidArgument)

	bad = shaleOverSand
	bad.Vp1 = math.Inf(1)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidArgument)
}

func TestRatioModelAccessors(t *testing.T) {
	r := RatioModel{R1: 1.1, R2: 0.5, R3: 0.6, R4: 0.9}
	for i, p := range Params {
		assert.Equal(t, r.Vector()[i], r.Get(p))
	}
	s := r.With(R3, 0.7)
	assert.Equal(t, 0.7, s.R3)
	assert.Equal(t, 0.6, r.R3, "With must not modify the receiver")
	assert.Equal(t, r, RatioFromVector(r.Vector()))
}

func TestPoisson(t *testing.T) {
	assert.InDelta(t, math.Sqrt(3), PoissonToVpVs(0.25), 1e-12)
	assert.InDelta(t, 1/math.Sqrt(3), PoissonToVsVp(0.25), 1e-12)
	assert.InDelta(t, 0.25, VpVsToPoisson(math.Sqrt(3)), 1e-12)
	assert.InDelta(t, 1.0/3.0, VsVpToPoisson(0.5), 1e-12)
	assert.Equal(t, 0.5, VsVpToPoisson(0))
}

func TestParseEnums(t *testing.T) {
	tests := []struct {
		in      string
		want    AmpType
		wantErr bool
	}{
		{"real", Real, false},
		{" ABS ", Abs, false},
		{"modulus", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmpType(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidArgument, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	refl, err := ParseReflection("ps")
	require.NoError(t, err)
	assert.Equal(t, PS, refl)
	_, err = ParseReflection("PT")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	p, err := ParseParam("R4")
	require.NoError(t, err)
	assert.Equal(t, R4, p)
	assert.Equal(t, "r4", p.String())
	_, err = ParseParam("r5")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.False(t, AmpType(7).Valid())
	assert.False(t, Reflection(-1).Valid())
	assert.False(t, Param(4).Valid())
}
