package main

import (
	"fmt"
	"math"
	"strings"

	json "github.com/KevinWang15/go-json5"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/inversion"
	"github.com/bob-anderson-ok/zoeppritz/modeling"
	"github.com/bob-anderson-ok/zoeppritz/zoeppritz"
)

// Job holds everything a parameter file can ask for.
type Job struct {
	Model            elastic.HalfSpace
	AngleSpec        string
	Angles           []float64
	Equation         modeling.Equation
	Reflection       elastic.Reflection
	Amp              elastic.AmpType
	InitialRatios    elastic.RatioModel
	HaveInitial      bool
	Constraints      inversion.Constraints
	Iterations       int
	Scale            float64
	UsePS            bool
	Method           zoeppritz.Method
	NoisePercent     float64
	NoiseSeed        uint64
	TableFile        string
	PlotFile         string
	WindowSizePixels int
	ShowInput        bool
}

// angleLabel describes the angles the way the parameter file gave them.
func (j Job) angleLabel() string {
	if j.AngleSpec != "" {
		return "angles " + strings.TrimSpace(j.AngleSpec)
	}
	return fmt.Sprintf("%d angles", len(j.Angles))
}

func parseJob(data []byte) (map[string]interface{}, error) {
	var jsonTable map[string]interface{}
	err := json.Unmarshal(data, &jsonTable)
	return jsonTable, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func fieldName(path []string) string {
	return strings.Join(path, ".")
}

func requiredFloat(jsonTable map[string]interface{}, path ...string) (float64, string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return 0, fieldName(path) + ": not found", false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fieldName(path) + ": is not a float64", false
	}
	return f, "", true
}

func optionalFloat(jsonTable map[string]interface{}, dflt float64, path ...string) (float64, string, bool) {
	if _, ok := getLeafValue(jsonTable, path...); !ok {
		return dflt, "", true
	}
	return requiredFloat(jsonTable, path...)
}

func optionalString(jsonTable map[string]interface{}, dflt string, path ...string) (string, string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return dflt, "", true
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldName(path) + ": is not a string", false
	}
	return s, "", true
}

func optionalBool(jsonTable map[string]interface{}, path ...string) (bool, string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return false, "", true
	}
	b, ok := v.(bool)
	if !ok {
		return false, fieldName(path) + ": is not a bool", false
	}
	return b, "", true
}

func wholeNumber(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

func validateJsonFileAndFillJob(jsonTable map[string]interface{}, job *Job) (string, bool) {
	var (
		msg string
		ok  bool
	)

	if job.ShowInput, msg, ok = optionalBool(jsonTable, "show_input_bool"); !ok {
		return msg, false
	}

	windowSize, msg, ok := optionalFloat(jsonTable, 800, "window_size_pixels")
	if !ok {
		return msg, false
	}
	if windowSize < 100 {
		return "window_size_pixels: must be at least 100", false
	}
	job.WindowSizePixels = int(windowSize)

	// The two half-spaces
	layers := [2]struct {
		name        string
		vp, vs, rho *float64
	}{
		{"upper", &job.Model.Vp1, &job.Model.Vs1, &job.Model.Rho1},
		{"lower", &job.Model.Vp2, &job.Model.Vs2, &job.Model.Rho2},
	}
	for _, layer := range layers {
		if *layer.vp, msg, ok = requiredFloat(jsonTable, layer.name, "vp"); !ok {
			return msg, false
		}
		if *layer.vs, msg, ok = requiredFloat(jsonTable, layer.name, "vs"); !ok {
			return msg, false
		}
		if *layer.rho, msg, ok = requiredFloat(jsonTable, layer.name, "rho"); !ok {
			return msg, false
		}
	}
	if err := job.Model.Validate(); err != nil {
		return fmt.Sprintf("upper/lower: %v", err), false
	}

	angles, ok := getLeafValue(jsonTable, "angles")
	if !ok {
		return "angles: not found", false
	}
	switch a := angles.(type) {
	case string:
		parsed, err := modeling.ParseAngles(a)
		if err != nil {
			return fmt.Sprintf("angles: %v", err), false
		}
		job.AngleSpec, job.Angles = a, parsed
	case []interface{}:
		if len(a) == 0 {
			return "angles: is empty", false
		}
		job.Angles = make([]float64, len(a))
		for i, v := range a {
			if job.Angles[i], ok = v.(float64); !ok {
				return fmt.Sprintf("angles[%d]: is not a float64", i), false
			}
		}
	default:
		return "angles: is neither a string nor an array", false
	}

	name, msg, ok := optionalString(jsonTable, "zoeppritz", "equation")
	if !ok {
		return msg, false
	}
	eq, err := modeling.ParseEquation(name)
	if err != nil {
		return fmt.Sprintf("equation: %v", err), false
	}
	job.Equation = eq

	if name, msg, ok = optionalString(jsonTable, "PP", "reflection"); !ok {
		return msg, false
	}
	if job.Reflection, err = elastic.ParseReflection(name); err != nil {
		return fmt.Sprintf("reflection: %v", err), false
	}

	if name, msg, ok = optionalString(jsonTable, "real", "amplitude_type"); !ok {
		return msg, false
	}
	if job.Amp, err = elastic.ParseAmpType(name); err != nil {
		return fmt.Sprintf("amplitude_type: %v", err), false
	}

	if msg, ok = fillInversion(jsonTable, job); !ok {
		return msg, false
	}

	if job.TableFile, msg, ok = optionalString(jsonTable, "", "table_file"); !ok {
		return msg, false
	}
	if job.PlotFile, msg, ok = optionalString(jsonTable, "", "plot_file"); !ok {
		return msg, false
	}

	return "No problem found in json file", true
}

// fillInversion reads the fields only the invert command uses.
func fillInversion(jsonTable map[string]interface{}, job *Job) (string, bool) {
	initial, ok := getLeafValue(jsonTable, "initial_ratios")
	if ok {
		list, ok := initial.([]interface{})
		if !ok || len(list) != 4 {
			return "initial_ratios: must be an array of four numbers", false
		}
		var v [4]float64
		for i, x := range list {
			if v[i], ok = x.(float64); !ok {
				return fmt.Sprintf("initial_ratios[%d]: is not a float64", i), false
			}
		}
		job.InitialRatios, job.HaveInitial = elastic.RatioFromVector(v), true
	}

	constraints, ok := getLeafValue(jsonTable, "constraints")
	if ok {
		table, ok := constraints.(map[string]interface{})
		if !ok {
			return "constraints: is not an object", false
		}
		job.Constraints = inversion.Constraints{}
		for key, value := range table {
			p, err := elastic.ParseParam(key)
			if err != nil {
				return fmt.Sprintf("constraints: %v", err), false
			}
			if job.Constraints[p], ok = value.(float64); !ok {
				return "constraints." + key + ": is not a float64", false
			}
		}
	}

	iterations, msg, ok := optionalFloat(jsonTable, 5, "iterations")
	if !ok {
		return msg, false
	}
	if iterations < 1 || !wholeNumber(iterations) {
		return "iterations: must be a positive whole number", false
	}
	job.Iterations = int(iterations)

	if job.Scale, msg, ok = optionalFloat(jsonTable, 1, "scale"); !ok {
		return msg, false
	}
	if !(job.Scale > 0) {
		return "scale: must be positive", false
	}

	if job.UsePS, msg, ok = optionalBool(jsonTable, "use_ps"); !ok {
		return msg, false
	}

	name, msg, ok := optionalString(jsonTable, "analytic", "gradient_method")
	if !ok {
		return msg, false
	}
	method, err := zoeppritz.ParseMethod(name)
	if err != nil {
		return fmt.Sprintf("gradient_method: %v", err), false
	}
	job.Method = method

	if job.NoisePercent, msg, ok = optionalFloat(jsonTable, 0, "noise_percent"); !ok {
		return msg, false
	}
	if job.NoisePercent < 0 {
		return "noise_percent: must not be negative", false
	}

	seed, msg, ok := optionalFloat(jsonTable, 1, "noise_seed")
	if !ok {
		return msg, false
	}
	if seed < 0 || !wholeNumber(seed) {
		return "noise_seed: must be a non-negative whole number", false
	}
	job.NoiseSeed = uint64(seed)

	return "", true
}
