package modeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

var shaleOverSand = elastic.HalfSpace{Vp1: 3.0, Vs1: 1.5, Rho1: 2.3, Vp2: 2.0, Vs2: 1.0, Rho2: 2.0}

func TestParseAngles(t *testing.T) {
	tests := []struct {
		spec string
		want []float64
	}{
		{"1,2,3", []float64{1, 2, 3}},
		{" 5, 12.5 ,40", []float64{5, 12.5, 40}},
		{"30", []float64{30}},
		{"0-60(10)", []float64{0, 10, 20, 30, 40, 50}},
		{"1-60(6)", []float64{1, 7, 13, 19, 25, 31, 37, 43, 49, 55}},
		{"0 - 2 (0.5)", []float64{0, 0.5, 1, 1.5}},
		{"0-61(10)", []float64{0, 10, 20, 30, 40, 50, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseAngles(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnglesErrors(t *testing.T) {
	for _, spec := range []string{"", "1,,2", "a,b", "0-60(0)", "60-0(10)", "0-60", "0-60(x)"} {
		_, err := ParseAngles(spec)
		assert.ErrorIs(t, err, elastic.ErrInvalidArgument, spec)
	}

	for _, spec := range []string{"0-1e300(1)", "0-1e11(1)", "0-90(1e-300)"} {
		_, err := ParseAngles(spec)
		assert.ErrorIs(t, err, elastic.ErrInvalidArgument, spec)
		assert.ErrorContains(t, err, "more than 65536 angles", spec)
	}

	angles, err := ParseAngles("0-65536(1)")
	require.NoError(t, err)
	assert.Len(t, angles, maxAngles)
}

func TestReflectShapes(t *testing.T) {
	for _, eq := range []Equation{Linear, Quadratic, Zoeppritz} {
		samples, err := Reflect(shaleOverSand, "1,2,3", eq, elastic.PP)
		require.NoError(t, err, eq.String())
		assert.Len(t, samples, 3)
		assert.Len(t, Table(samples), 3)
	}

	samples, err := Reflect(shaleOverSand, "1,2,3", Zoeppritz, elastic.PS)
	require.NoError(t, err)
	assert.Len(t, samples, 3)

	samples, err = Reflect(shaleOverSand, "0-60(10)", Zoeppritz, elastic.PP)
	require.NoError(t, err)
	assert.Len(t, samples, 6)
}

func TestReflectNormalIncidence(t *testing.T) {
	samples, err := Reflect(shaleOverSand, "0", Zoeppritz, elastic.PP)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, samples[0].Amplitude, 180}, Table(samples)[0])
	assert.InDelta(t, -0.266055, samples[0].Amplitude, 1e-3)

	// linearized equations carry no phase
	samples, err = Reflect(shaleOverSand, "0,10", Linear, elastic.PP)
	require.NoError(t, err)
	assert.Equal(t, 0.0, samples[0].Phase)
	assert.Equal(t, 0.0, samples[1].Phase)
	d := elastic.ToDelta(shaleOverSand)
	assert.InDelta(t, 0.5*(d.Rho+d.Vp), samples[0].Amplitude, 1e-12)
}

func TestReflectErrors(t *testing.T) {
	_, err := Reflect(shaleOverSand, "1,2,3", Linear, elastic.PS)
	assert.ErrorIs(t, err, elastic.ErrNotImplemented)
	_, err = Reflect(shaleOverSand, "1,2,3", Quadratic, elastic.PS)
	assert.ErrorIs(t, err, elastic.ErrNotImplemented)

	_, err = Reflect(shaleOverSand, "1,2,3", Zoeppritz, elastic.Reflection(2))
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
	_, err = Reflect(shaleOverSand, "1,2,3", Equation(5), elastic.PP)
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)

	_, err = Reflect(shaleOverSand, "10,95", Zoeppritz, elastic.PP)
	assert.ErrorIs(t, err, elastic.ErrInvalidAngle)

	bad := shaleOverSand
	bad.Vs1 = -1
	_, err = Reflect(bad, "10", Zoeppritz, elastic.PP)
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)

	_, err = Request{Model: shaleOverSand, Angles: []float64{10}, Equation: Zoeppritz, Amp: elastic.AmpType(4)}.Run()
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
}

func TestRequestAbs(t *testing.T) {
	req := Request{Model: shaleOverSand, Angles: []float64{0, 20}, Equation: Zoeppritz, Reflection: elastic.PP, Amp: elastic.Abs}
	samples, err := req.Run()
	require.NoError(t, err)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.Amplitude, 0.0)
	}
}

func TestParseEquation(t *testing.T) {
	eq, err := ParseEquation("Quadratic")
	require.NoError(t, err)
	assert.Equal(t, Quadratic, eq)
	_, err = ParseEquation("exponential")
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
}
