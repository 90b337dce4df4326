package approx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// 3.0/1.5/2.3 over 3.3/1.7/2.4
var gasSand = elastic.ToDelta(elastic.HalfSpace{Vp1: 3.0, Vs1: 1.5, Rho1: 2.3, Vp2: 3.3, Vs2: 1.7, Rho2: 2.4})

func TestAverageAngles(t *testing.T) {
	avg, err := AverageAngles([]float64{0, 30}, gasSand.Vp)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg[0])
	assert.InDelta(t, 31.683506484615872, avg[1], 1e-10)

	// no contrast: the average angle is the incidence angle
	avg, err = AverageAngles([]float64{12, 48}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 12, avg[0], 1e-12)
	assert.InDelta(t, 48, avg[1], 1e-12)
}

func TestAverageAnglesPostCritical(t *testing.T) {
	// vp2/vp1 = 1.5, critical angle 41.8 degrees
	_, err := AverageAngles([]float64{10, 40, 45}, 0.4)
	assert.ErrorIs(t, err, elastic.ErrInvalidAngle)

	_, err = AverageAngles([]float64{10}, 2)
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
}

func TestCoefficientMatrix(t *testing.T) {
	k := 0.5
	a := CoefficientMatrix(k, []float64{0, 30, 60})
	r, c := a.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)

	// normal incidence: half the impedance contrast, no shear term
	assert.InDelta(t, 0.5, a.At(0, 0), 1e-15)
	assert.InDelta(t, 0.5, a.At(0, 1), 1e-15)
	assert.InDelta(t, 0.0, a.At(0, 2), 1e-15)

	s2 := 0.25 // sin²30
	assert.InDelta(t, 0.5*(1-4*k*k*s2), a.At(1, 0), 1e-12)
	assert.InDelta(t, 0.5/0.75, a.At(1, 1), 1e-12)
	assert.InDelta(t, -4*k*k*s2, a.At(1, 2), 1e-12)
	assert.InDelta(t, 0.5/0.25, a.At(2, 1), 1e-12)
}

func TestLinearAndQuadraticAmplitude(t *testing.T) {
	avg, err := AverageAngles([]float64{0, 30}, gasSand.Vp)
	require.NoError(t, err)

	lin, err := LinearAmplitude(gasSand.VsVp, gasSand.Rho, gasSand.Vp, gasSand.Vs, avg, elastic.Real)
	require.NoError(t, err)
	assert.InDelta(t, 0.06889564336372847, lin[0], 1e-12)
	assert.InDelta(t, 0.045392818865266485, lin[1], 1e-12)

	quad, err := QuadraticAmplitude(gasSand.VsVp, gasSand.Rho, gasSand.Vp, gasSand.Vs, avg, elastic.Real)
	require.NoError(t, err)
	assert.InDelta(t, lin[0], quad[0], 1e-15, "no quadratic term at normal incidence")
	assert.InDelta(t, 0.04802576463462731, quad[1], 1e-12)
}

func TestAmplitudeTypes(t *testing.T) {
	avg := []float64{10, 20}
	signed, err := LinearAmplitude(0.5, -0.1, -0.2, -0.1, avg, elastic.Real)
	require.NoError(t, err)
	abs, err := LinearAmplitude(0.5, -0.1, -0.2, -0.1, avg, elastic.Abs)
	require.NoError(t, err)
	for i := range signed {
		assert.Less(t, signed[i], 0.0)
		assert.Equal(t, math.Abs(signed[i]), abs[i])
	}

	_, err = LinearAmplitude(0.5, 0, 0, 0, avg, elastic.AmpType(3))
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
	_, err = QuadraticAmplitude(0.5, 0, 0, 0, avg, elastic.AmpType(3))
	assert.ErrorIs(t, err, elastic.ErrInvalidArgument)
}

func TestQuadraticJacobianMatchesDifference(t *testing.T) {
	avg := []float64{0, 12, 24, 36, 48}
	k, rho, vp, vs := gasSand.VsVp, gasSand.Rho, gasSand.Vp, gasSand.Vs
	jac := QuadraticJacobian(k, rho, vs, avg)

	const h = 1e-6
	perturb := func(i int, d float64) []float64 {
		x := []float64{rho, vp, vs}
		x[i] += d
		r, err := QuadraticAmplitude(k, x[0], x[1], x[2], avg, elastic.Real)
		require.NoError(t, err)
		return r
	}
	for col := 0; col < 3; col++ {
		up, down := perturb(col, h), perturb(col, -h)
		for row := range avg {
			fd := (up[row] - down[row]) / (2 * h)
			assert.InDelta(t, fd, jac.At(row, col), 1e-8, "row %d col %d", row, col)
		}
	}
}
