package main

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/bob-anderson-ok/zoeppritz/approx"
	"github.com/bob-anderson-ok/zoeppritz/avaplot"
	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/export"
	"github.com/bob-anderson-ok/zoeppritz/internal/logging"
	"github.com/bob-anderson-ok/zoeppritz/inversion"
	"github.com/bob-anderson-ok/zoeppritz/modeling"
	"github.com/bob-anderson-ok/zoeppritz/zoeppritz"
)

func runModel(job Job, log *logging.Logger) error {
	start := time.Now()
	samples, err := modeling.Request{
		Model:      job.Model,
		Angles:     job.Angles,
		Equation:   job.Equation,
		Reflection: job.Reflection,
		Amp:        job.Amp,
	}.Run()
	if err != nil {
		return fail(exitCompute, err)
	}
	log.Debug("modeled %d angles with %v %v in %s", len(samples), job.Equation, job.Reflection, time.Since(start))

	fmt.Printf("\n%v %v (%v amplitudes), %s\n\n", job.Equation, job.Reflection, job.Amp, job.angleLabel())
	fmt.Printf("%8s  %12s  %10s\n", "angle", "amplitude", "phase")
	for _, s := range samples {
		fmt.Printf("%8.2f  %12.6f  %10.4f\n", s.Angle, s.Amplitude, s.Phase)
	}

	if err := writeTable(job.TableFile, export.Samples(samples)); err != nil {
		return err
	}
	title := fmt.Sprintf("%v %v, %s", job.Equation, job.Reflection, job.angleLabel())
	return writePlot(job.PlotFile, avaplot.SampleFigures(title, samples), job.WindowSizePixels, job.WindowSizePixels)
}

// observations synthesizes the data an inversion is run against from the
// parameter file's model, adding noise when asked to.
func observations(job Job) (inversion.Observations, error) {
	var obs inversion.Observations
	if job.Equation == modeling.Zoeppritz {
		truth, err := elastic.ToRatio(job.Model)
		if err != nil {
			return obs, err
		}
		if obs, err = inversion.Synthesize(truth, job.Angles, job.UsePS); err != nil {
			return obs, err
		}
	} else {
		samples, err := modeling.Request{Model: job.Model, Angles: job.Angles, Equation: job.Equation}.Run()
		if err != nil {
			return obs, err
		}
		obs.Angles = job.Angles
		obs.PP = make([]float64, len(samples))
		for i, s := range samples {
			obs.PP[i] = s.Amplitude
		}
	}

	if job.NoisePercent > 0 {
		var err error
		fraction := job.NoisePercent / 100
		if obs.PP, err = inversion.AddNoise(obs.PP, fraction, job.NoiseSeed); err != nil {
			return obs, err
		}
		if obs.PS != nil {
			if obs.PS, err = inversion.AddNoise(obs.PS, fraction, job.NoiseSeed+1); err != nil {
				return obs, err
			}
		}
	}
	return obs, nil
}

func runInvert(job Job, log *logging.Logger) error {
	start := time.Now()
	obs, err := observations(job)
	if err != nil {
		return fail(exitCompute, err)
	}
	if job.NoisePercent > 0 {
		fmt.Printf("\nAdded %0.2f%% Gaussian noise (seed %d)\n", job.NoisePercent, job.NoiseSeed)
	}

	switch job.Equation {
	case modeling.Zoeppritz:
		err = invertExact(job, obs, log)
	case modeling.Quadratic:
		err = invertQuadratic(job, obs, log)
	default:
		err = invertLinear(job, obs)
	}
	if err != nil {
		return err
	}
	fmt.Printf("\nInversion took %s\n", time.Since(start))
	return nil
}

func invertExact(job Job, obs inversion.Observations, log *logging.Logger) error {
	if !job.HaveInitial {
		return fail(exitValidate, errors.New("initial_ratios: required for a zoeppritz inversion"))
	}
	truth, err := elastic.ToRatio(job.Model)
	if err != nil {
		return fail(exitCompute, err)
	}
	opts := inversion.Options{Scale: job.Scale, Constraints: job.Constraints, Method: job.Method}

	fmt.Printf("\nGauss-Newton on the exact equations, %v gradients, PS %v\n\n", job.Method, job.UsePS)
	fmt.Printf("%4s  %10s  %10s  %10s  %10s  %12s\n", "iter", "r1", "r2", "r3", "r4", "misfit")
	history := []inversion.State{{Model: job.InitialRatios}}
	final, err := inversion.Run(obs, job.InitialRatios, job.Iterations, opts, func(s inversion.State) {
		history = append(history, s)
		v := s.Model.Vector()
		fmt.Printf("%4d  %10.6f  %10.6f  %10.6f  %10.6f  %12.4e\n", s.Iteration, v[0], v[1], v[2], v[3], s.Misfit)
		log.Debug("iteration %d misfit %g", s.Iteration, s.Misfit)
		if log.Level() >= logging.Trace {
			traceJacobian(log, job, s.Model)
		}
	})
	if err != nil {
		return fail(exitCompute, err)
	}
	fmt.Printf("\ntrue      %v\nestimated %v\n", truth, final.Model)

	fitted, err := inversion.Synthesize(final.Model, obs.Angles, job.UsePS)
	if err != nil {
		return fail(exitCompute, err)
	}
	if err := writeTable(job.TableFile, export.History(history)); err != nil {
		return err
	}
	figures := []avaplot.Figure{avaplot.FitFigure("Rpp", obs.Angles, obs.PP, fitted.PP)}
	if job.UsePS {
		figures = append(figures, avaplot.FitFigure("|Rps|", obs.Angles, obs.PS, fitted.PS))
	}
	return writePlot(job.PlotFile, figures, job.WindowSizePixels, job.WindowSizePixels*3/4*len(figures))
}

func traceJacobian(log *logging.Logger, job Job, x elastic.RatioModel) {
	g, err := job.Method.Gradienter()
	if err != nil {
		return
	}
	jac, err := zoeppritz.Jacobian(g, x, job.Angles, elastic.PP)
	if err != nil {
		log.Trace("jacobian at %v: %v", x, err)
		return
	}
	for i, angle := range job.Angles {
		log.Trace("dRpp at %5.1f deg: %v", angle, jac.RawRowView(i))
	}
}

// background is the a priori Vs/Vp and Vp contrast of the linearized
// inversions: taken from initial_ratios when present, otherwise from the
// model the data were synthesized from.
func background(job Job) elastic.DeltaModel {
	if job.HaveInitial {
		return elastic.ToDelta(job.InitialRatios.HalfSpace(job.Model.Vp1, job.Model.Rho1))
	}
	return elastic.ToDelta(job.Model)
}

func invertQuadratic(job Job, obs inversion.Observations, log *logging.Logger) error {
	bg := background(job)
	x0 := elastic.DeltaModel{VsVp: bg.VsVp}
	if job.HaveInitial {
		x0 = bg
	}

	fmt.Printf("\nGauss-Newton on the quadratic equation, background Vs/Vp %0.4f\n\n", x0.VsVp)
	fmt.Printf("%4s  %10s  %10s  %10s  %12s\n", "iter", "rho_rd", "vp_rd", "vs_rd", "misfit")
	x, err := inversion.QuadraticRun(obs.Angles, obs.PP, x0, job.Iterations, job.Scale, func(i int, d elastic.DeltaModel, misfit float64) {
		fmt.Printf("%4d  %10.6f  %10.6f  %10.6f  %12.4e\n", i, d.Rho, d.Vp, d.Vs, misfit)
		log.Debug("iteration %d misfit %g", i, misfit)
	})
	if err != nil {
		return fail(exitCompute, err)
	}
	fmt.Printf("\ntrue      %v\nestimated %v\n", elastic.ToDelta(job.Model), x)

	avg, err := approx.AverageAngles(obs.Angles, x.Vp)
	if err != nil {
		return fail(exitCompute, err)
	}
	fitted, err := approx.QuadraticAmplitude(x.VsVp, x.Rho, x.Vp, x.Vs, avg, elastic.Real)
	if err != nil {
		return fail(exitCompute, err)
	}
	return writeFit(job, obs, []string{"quadratic"}, fitted)
}

func invertLinear(job Job, obs inversion.Observations) error {
	d := background(job)
	bg := inversion.Background{VsVp: d.VsVp, VpRD: d.Vp}

	l2, err := inversion.LinearL2(obs.Angles, obs.PP, bg)
	if err != nil {
		return fail(exitCompute, err)
	}
	l1, objective, err := inversion.LinearL1(obs.Angles, obs.PP, bg)
	if err != nil {
		return fail(exitCompute, err)
	}
	fmt.Printf("\nAki-Richards inversion, background Vs/Vp %0.4f, Vp contrast %0.4f\n\n", bg.VsVp, bg.VpRD)
	fmt.Printf("true %v\nL2   %v\nL1   %v  (sum of |residual| %0.4e)\n", elastic.ToDelta(job.Model), l2, l1, objective)

	avg, err := approx.AverageAngles(obs.Angles, bg.VpRD)
	if err != nil {
		return fail(exitCompute, err)
	}
	var fits [][]float64
	for _, m := range []elastic.DeltaModel{l2, l1} {
		f, err := approx.LinearAmplitude(m.VsVp, m.Rho, m.Vp, m.Vs, avg, elastic.Real)
		if err != nil {
			return fail(exitCompute, err)
		}
		fits = append(fits, f)
	}
	return writeFit(job, obs, []string{"L2", "L1"}, fits...)
}

func writeFit(job Job, obs inversion.Observations, names []string, fitted ...[]float64) error {
	table, err := export.Fit(obs.Angles, obs.PP, names, fitted...)
	if err != nil {
		return fail(exitOutput, err)
	}
	if err := writeTable(job.TableFile, table); err != nil {
		return err
	}
	fig := avaplot.Figure{
		Title:  fmt.Sprintf("%v inversion", job.Equation),
		YLabel: "amplitude",
		Curves: []avaplot.Curve{{Name: "observed", Angles: obs.Angles, Values: obs.PP, Points: true}},
	}
	for i, f := range fitted {
		fig.Curves = append(fig.Curves, avaplot.Curve{Name: names[i], Angles: obs.Angles, Values: f})
	}
	return writePlot(job.PlotFile, []avaplot.Figure{fig}, job.WindowSizePixels, job.WindowSizePixels*3/4)
}

// gradcheckRow is one comparison at one angle.
type gradcheckRow struct {
	angle             float64
	refl              elastic.Reflection
	analytic, numeric [4]float64
}

func gradcheck(job Job) ([]gradcheckRow, []float64, error) {
	r, err := elastic.ToRatio(job.Model)
	if err != nil {
		return nil, nil, err
	}
	refls := []elastic.Reflection{elastic.PP}
	if job.UsePS || job.Reflection == elastic.PS {
		refls = append(refls, elastic.PS)
	}

	var rows []gradcheckRow
	var diffs []float64
	for _, refl := range refls {
		for _, angle := range job.Angles {
			row := gradcheckRow{angle: angle, refl: refl}
			for i, p := range elastic.Params {
				a, err := zoeppritz.Analytic{}.Gradient(r, angle, refl, p)
				if errors.Is(err, elastic.ErrInvalidAngle) {
					// normal incidence or a post-critical leg
					row.analytic[i] = math.NaN()
				} else if err != nil {
					return nil, nil, err
				} else {
					row.analytic[i] = a
				}
				n, err := zoeppritz.Numeric{}.Gradient(r, angle, refl, p)
				if errors.Is(err, elastic.ErrInvalidAngle) {
					row.numeric[i] = math.NaN()
				} else if err != nil {
					return nil, nil, err
				} else {
					row.numeric[i] = n
				}
				if d := math.Abs(row.analytic[i] - row.numeric[i]); !math.IsNaN(d) {
					diffs = append(diffs, d)
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, diffs, nil
}

func runGradcheck(job Job, log *logging.Logger) error {
	start := time.Now()
	rows, diffs, err := gradcheck(job)
	if err != nil {
		return fail(exitCompute, err)
	}
	log.Debug("compared %d gradients in %s", len(diffs), time.Since(start))

	fmt.Printf("\n%4s %6s  %-10s %12s %12s %12s %12s\n", "", "angle", "", "d/dr1", "d/dr2", "d/dr3", "d/dr4")
	for _, row := range rows {
		fmt.Printf("%4v %6.1f  %-10s %12.6f %12.6f %12.6f %12.6f\n", row.refl, row.angle, "analytic",
			row.analytic[0], row.analytic[1], row.analytic[2], row.analytic[3])
		fmt.Printf("%4s %6s  %-10s %12.6f %12.6f %12.6f %12.6f\n", "", "", "numeric",
			row.numeric[0], row.numeric[1], row.numeric[2], row.numeric[3])
	}

	if len(diffs) == 0 {
		return fail(exitCompute, fmt.Errorf("no angle has a defined gradient: %w", elastic.ErrInvalidAngle))
	}
	worst, err := stats.Max(diffs)
	if err != nil {
		return fail(exitCompute, err)
	}
	mean, err := stats.Mean(diffs)
	if err != nil {
		return fail(exitCompute, err)
	}
	fmt.Printf("\n|analytic - numeric| over %d gradients: max %0.3e, mean %0.3e\n", len(diffs), worst, mean)
	return nil
}

func writeTable(path string, t export.Table) error {
	if path == "" {
		return nil
	}
	if err := export.Write(path, t); err != nil {
		return fail(exitOutput, err)
	}
	fmt.Printf("\nWrote %s\n", path)
	return nil
}

func writePlot(path string, figures []avaplot.Figure, wPx, hPx int) error {
	if path == "" {
		return nil
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fail(exitOutput, fmt.Errorf("plot file %q: only .png is supported: %w", path, elastic.ErrInvalidArgument))
	}
	img, err := avaplot.Render(figures, float64(wPx), float64(hPx))
	if err != nil {
		return fail(exitOutput, err)
	}
	if err := avaplot.SavePNG(path, img); err != nil {
		return fail(exitOutput, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
