package inversion

import (
	"fmt"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// AddNoise returns a copy of data with zero-mean Gaussian noise added.
// The standard deviation is fraction times the range of data, so 0.05
// gives noise at 5% of the amplitude span. The same seed always gives the
// same noise.
func AddNoise(data []float64, fraction float64, seed uint64) ([]float64, error) {
	if fraction < 0 {
		return nil, fmt.Errorf("noise fraction %g is negative: %w", fraction, elastic.ErrInvalidArgument)
	}
	hi, err := stats.Max(data)
	if err != nil {
		return nil, fmt.Errorf("noise range: %w: %w", elastic.ErrInvalidArgument, err)
	}
	lo, err := stats.Min(data)
	if err != nil {
		return nil, fmt.Errorf("noise range: %w: %w", elastic.ErrInvalidArgument, err)
	}

	dist := distuv.Normal{
		Mu:    0,
		Sigma: fraction * (hi - lo),
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
	noisy := make([]float64, len(data))
	for i, v := range data {
		noisy[i] = v + dist.Rand()
	}
	return noisy, nil
}
