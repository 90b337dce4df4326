package inversion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// LeastSquares returns x minimizing ‖Ax − b‖₂ through a thin SVD. Singular
// values at or below eps·max(m, n) times the largest are treated as zero;
// if fewer than n remain the system has no unique minimizer and
// ErrSolverDegenerate is returned.
func LeastSquares(a mat.Matrix, b []float64) ([]float64, error) {
	m, n := a.Dims()
	if len(b) != m {
		return nil, fmt.Errorf("%d right-hand values for %d rows: %w", len(b), m, elastic.ErrInvalidArgument)
	}
	for i := 0; i < m; i++ {
		if !finite(b[i]) {
			return nil, fmt.Errorf("right-hand side row %d is %g: %w", i, b[i], elastic.ErrSolverDegenerate)
		}
		for j := 0; j < n; j++ {
			if v := a.At(i, j); !finite(v) {
				return nil, fmt.Errorf("matrix element (%d, %d) is %g: %w", i, j, v, elastic.ErrSolverDegenerate)
			}
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd factorization failed: %w", elastic.ErrSolverDegenerate)
	}
	rcond := eps * float64(max(m, n))
	rank := svd.Rank(rcond)
	if rank < n {
		return nil, fmt.Errorf("rank %d for %d unknowns: %w", rank, n, elastic.ErrSolverDegenerate)
	}

	var x mat.VecDense
	svd.SolveVecTo(&x, mat.NewVecDense(m, b), rank)
	return mat.Col(nil, 0, &x), nil
}

// eps is the float64 machine epsilon.
var eps = math.Nextafter(1, 2) - 1

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
