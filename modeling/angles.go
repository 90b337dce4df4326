package modeling

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// maxAngles bounds the number of angles a range may expand to.
const maxAngles = 1 << 16

var rangeSpec = regexp.MustCompile(`^\s*([0-9.eE+]+)\s*-\s*([0-9.eE+]+)\s*\(\s*([0-9.eE+]+)\s*\)\s*$`)

// ParseAngles reads an angle specification in degrees. It is either a
// comma separated list ("5,10,20") or a range "start-stop(step)", where
// stop is excluded: "0-60(10)" gives 0, 10, 20, 30, 40, 50.
func ParseAngles(spec string) ([]float64, error) {
	if m := rangeSpec.FindStringSubmatch(spec); m != nil {
		var v [3]float64
		for i, s := range m[1:] {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("angle range %q: %w", spec, elastic.ErrInvalidArgument)
			}
			v[i] = f
		}
		return arange(v[0], v[1], v[2], spec)
	}

	fields := strings.Split(spec, ",")
	angles := make([]float64, 0, len(fields))
	for _, f := range fields {
		a, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("angle %q in %q: %w", strings.TrimSpace(f), spec, elastic.ErrInvalidArgument)
		}
		angles = append(angles, a)
	}
	return angles, nil
}

func arange(start, stop, step float64, spec string) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("angle range %q needs a positive step: %w", spec, elastic.ErrInvalidArgument)
	}
	count := math.Ceil((stop - start) / step)
	if count > maxAngles {
		return nil, fmt.Errorf("angle range %q gives more than %d angles: %w", spec, maxAngles, elastic.ErrInvalidArgument)
	}
	n := int(count)
	if n <= 0 {
		return nil, fmt.Errorf("angle range %q is empty: %w", spec, elastic.ErrInvalidArgument)
	}
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles, nil
}
