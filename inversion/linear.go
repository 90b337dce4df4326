package inversion

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/bob-anderson-ok/zoeppritz/approx"
	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// Background is the prior knowledge the linear system is built from.
type Background struct {
	VsVp float64 // background Vs/Vp, DefaultVsVp when zero
	VpRD float64 // Vp relative difference used to map incidence to average angles
}

func (bg Background) system(angles, pp []float64) (*mat.Dense, error) {
	if len(angles) == 0 || len(pp) != len(angles) {
		return nil, fmt.Errorf("%d amplitudes for %d angles: %w", len(pp), len(angles), elastic.ErrInvalidArgument)
	}
	avg, err := approx.AverageAngles(angles, bg.VpRD)
	if err != nil {
		return nil, err
	}
	return approx.CoefficientMatrix(bg.vsVp(), avg), nil
}

func (bg Background) vsVp() float64 {
	if bg.VsVp == 0 {
		return DefaultVsVp
	}
	return bg.VsVp
}

func (bg Background) model(x []float64) elastic.DeltaModel {
	return elastic.DeltaModel{Rho: x[0], Vp: x[1], Vs: x[2], VsVp: bg.vsVp()}
}

// LinearL2 solves the Aki-Richards system for (ρ_rd, Vp_rd, Vs_rd) in the
// least-squares sense. The model is linear, so a single solve is final.
func LinearL2(angles, pp []float64, bg Background) (elastic.DeltaModel, error) {
	a, err := bg.system(angles, pp)
	if err != nil {
		return elastic.DeltaModel{}, err
	}
	x, err := LeastSquares(a, pp)
	if err != nil {
		return elastic.DeltaModel{}, err
	}
	return bg.model(x), nil
}

// l1Tol is the reduced-cost tolerance of the simplex solve.
const l1Tol = 1e-10

// LinearL1 minimizes ‖Ax − b‖₁ for the Aki-Richards system and returns the
// model and the optimal objective. The problem is posed in standard form
//
//	minimize Σ(uᵢ + vᵢ)  s.t.  A x⁺ − A x⁻ − u + v = b,  x⁺, x⁻, u, v ≥ 0
//
// starting from the feasible basis that absorbs each bᵢ in uᵢ or vᵢ.
func LinearL1(angles, pp []float64, bg Background) (elastic.DeltaModel, float64, error) {
	a, err := bg.system(angles, pp)
	if err != nil {
		return elastic.DeltaModel{}, 0, err
	}
	m, n := a.Dims()
	cols := 2*n + 2*m

	std := mat.NewDense(m, cols, nil)
	c := make([]float64, cols)
	basis := make([]int, m)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			std.Set(i, j, a.At(i, j))
			std.Set(i, n+j, -a.At(i, j))
		}
		u, v := 2*n+i, 2*n+m+i
		std.Set(i, u, -1)
		std.Set(i, v, 1)
		c[u], c[v] = 1, 1
		if pp[i] >= 0 {
			basis[i] = v
		} else {
			basis[i] = u
		}
	}

	obj, z, err := lp.Simplex(c, std, pp, l1Tol, basis)
	if err != nil {
		return elastic.DeltaModel{}, 0, fmt.Errorf("l1 solve: %w: %w", elastic.ErrSolverDegenerate, err)
	}
	x := make([]float64, n)
	for j := range x {
		x[j] = z[j] - z[n+j]
	}
	return bg.model(x), obj, nil
}
