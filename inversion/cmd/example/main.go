// Example program demonstrating how to use the zoeppritz packages to:
// 1. Model exact PP and PS reflection coefficients for a shale over a gas sand
// 2. Invert synthetic exact amplitudes for the four velocity/density ratios
// 3. Invert linearized amplitudes with Wang's quadratic equation
// 4. Fit the Aki-Richards equation in the L2 and L1 sense, with and without noise
// 5. Plot observed against fitted amplitudes
//
// Usage:
//
//	go run main.go
//
// The plots are written to the current directory.
package main

import (
	"fmt"
	"log"

	"github.com/bob-anderson-ok/zoeppritz/approx"
	"github.com/bob-anderson-ok/zoeppritz/avaplot"
	"github.com/bob-anderson-ok/zoeppritz/elastic"
	"github.com/bob-anderson-ok/zoeppritz/inversion"
	"github.com/bob-anderson-ok/zoeppritz/modeling"
)

func main() {
	fmt.Println("Reflection Coefficient Inversion Example")
	fmt.Println("========================================")

	// The two half-spaces. Velocities in km/s, densities in g/cc; only the
	// ratios matter.
	model := elastic.HalfSpace{
		Vp1: 4.0, Vs1: 2.0, Rho1: 2.4, // upper: shale
		Vp2: 2.0, Vs2: 1.0, Rho2: 2.0, // lower: gas sand
	}
	truth, err := elastic.ToRatio(model)
	if err != nil {
		log.Fatalf("Bad model: %v", err)
	}
	fmt.Printf("\nTrue ratios: %v\n", truth)

	// Forward modeling through the single entry point
	samples, err := modeling.Reflect(model, "0-60(10)", modeling.Zoeppritz, elastic.PP)
	if err != nil {
		log.Fatalf("Modeling failed: %v", err)
	}
	fmt.Println("\nExact PP coefficients:")
	for _, s := range samples {
		fmt.Printf("  %4.0f deg  %9.5f  phase %4.0f\n", s.Angle, s.Amplitude, s.Phase)
	}

	// Synthetic data: signed PP and |PS| every 6 degrees from 1 to 55
	angles, err := modeling.ParseAngles("1-60(6)")
	if err != nil {
		log.Fatalf("Bad angles: %v", err)
	}
	obs, err := inversion.Synthesize(truth, angles, true)
	if err != nil {
		log.Fatalf("Could not synthesize data: %v", err)
	}

	// Exact Gauss-Newton inversion from a deliberately poor starting model
	start := elastic.RatioModel{R1: 2.4 / 4, R2: 2.2 / 4, R3: 1.3 / 4, R4: 1.6 / 2.4}
	fmt.Printf("\nExact inversion from %v\n", start)
	final, err := inversion.Run(obs, start, 5, inversion.Options{}, func(s inversion.State) {
		fmt.Printf("  iteration %d  misfit %.3e  %v\n", s.Iteration, s.Misfit, s.Model)
	})
	if err != nil {
		log.Fatalf("Exact inversion failed: %v", err)
	}

	// Pinning Vs1/Vp1 to its true value leaves three unknowns
	pinned := inversion.Options{Constraints: inversion.Constraints{elastic.R2: truth.R2}}
	constrained, err := inversion.Run(obs, start, 5, pinned, nil)
	if err != nil {
		log.Fatalf("Constrained inversion failed: %v", err)
	}
	fmt.Printf("  with r2 fixed: %v\n", constrained.Model)

	fitted, err := inversion.Synthesize(final.Model, angles, true)
	if err != nil {
		log.Fatalf("Could not model the fit: %v", err)
	}
	savePlot("exact_fit.png", []avaplot.Figure{
		avaplot.FitFigure("Rpp, exact inversion", angles, obs.PP, fitted.PP),
		avaplot.FitFigure("|Rps|, exact inversion", angles, obs.PS, fitted.PS),
	}, 800, 1000)

	// The linearized equations work on relative contrasts instead. Use a
	// small contrast so the approximations hold.
	weak := elastic.HalfSpace{Vp1: 3.0, Vs1: 1.5, Rho1: 2.3, Vp2: 3.3, Vs2: 1.7, Rho2: 2.4}
	d := elastic.ToDelta(weak)
	fmt.Printf("\nTrue contrasts: %v\n", d)

	linAngles, err := modeling.ParseAngles("1-40(3)")
	if err != nil {
		log.Fatalf("Bad angles: %v", err)
	}
	avg, err := approx.AverageAngles(linAngles, d.Vp)
	if err != nil {
		log.Fatalf("Average angles: %v", err)
	}
	quad, err := approx.QuadraticAmplitude(d.VsVp, d.Rho, d.Vp, d.Vs, avg, elastic.Real)
	if err != nil {
		log.Fatalf("Quadratic modeling failed: %v", err)
	}

	// Quadratic Gauss-Newton: the background Vs/Vp is known, the contrasts
	// start at zero
	fmt.Println("\nQuadratic inversion:")
	x, err := inversion.QuadraticRun(linAngles, quad, elastic.DeltaModel{VsVp: d.VsVp}, 9, 1, func(i int, x elastic.DeltaModel, misfit float64) {
		fmt.Printf("  iteration %d  misfit %.3e  %v\n", i, misfit, x)
	})
	if err != nil {
		log.Fatalf("Quadratic inversion failed: %v", err)
	}
	fmt.Printf("  true  %v\n  found %v\n", d, x)

	// Aki-Richards data with 2% noise, fitted both ways. The L1 fit is less
	// sensitive to the outliers.
	lin, err := approx.LinearAmplitude(d.VsVp, d.Rho, d.Vp, d.Vs, avg, elastic.Real)
	if err != nil {
		log.Fatalf("Linear modeling failed: %v", err)
	}
	noisy, err := inversion.AddNoise(lin, 0.02, 42)
	if err != nil {
		log.Fatalf("Could not add noise: %v", err)
	}
	bg := inversion.Background{VsVp: d.VsVp, VpRD: d.Vp}
	l2, err := inversion.LinearL2(linAngles, noisy, bg)
	if err != nil {
		log.Fatalf("L2 inversion failed: %v", err)
	}
	l1, objective, err := inversion.LinearL1(linAngles, noisy, bg)
	if err != nil {
		log.Fatalf("L1 inversion failed: %v", err)
	}
	fmt.Printf("\nAki-Richards on noisy data:\n  L2 %v\n  L1 %v  (sum |residual| %.3e)\n", l2, l1, objective)

	l2fit, err := approx.LinearAmplitude(l2.VsVp, l2.Rho, l2.Vp, l2.Vs, avg, elastic.Real)
	if err != nil {
		log.Fatalf("Linear modeling failed: %v", err)
	}
	l1fit, err := approx.LinearAmplitude(l1.VsVp, l1.Rho, l1.Vp, l1.Vs, avg, elastic.Real)
	if err != nil {
		log.Fatalf("Linear modeling failed: %v", err)
	}
	savePlot("linear_fit.png", []avaplot.Figure{{
		Title:  "Aki-Richards fits to noisy data",
		YLabel: "amplitude",
		Curves: []avaplot.Curve{
			{Name: "observed", Angles: linAngles, Values: noisy, Points: true},
			{Name: "L2", Angles: linAngles, Values: l2fit},
			{Name: "L1", Angles: linAngles, Values: l1fit},
		},
	}}, 800, 500)

	fmt.Println("\nDone!")
}

func savePlot(path string, figures []avaplot.Figure, w, h float64) {
	img, err := avaplot.Render(figures, w, h)
	if err != nil {
		log.Printf("Could not render %s: %v\n", path, err)
		return
	}
	if err := avaplot.SavePNG(path, img); err != nil {
		log.Printf("Could not save %s: %v\n", path, err)
		return
	}
	fmt.Printf("\nSaved %s\n", path)
}
