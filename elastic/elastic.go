// Package elastic describes a planar interface between two elastic
// half-spaces and converts it between the parameterizations used by the
// reflection models: the ratio form of the explicit Zoeppritz equation
// (Cerveny 1977; Zhu 2012) and the relative-difference form used by the
// linearized approximations.
package elastic

import (
	"fmt"
	"math"
)

// HalfSpace holds the P velocity, S velocity and density of the upper (1)
// and lower (2) media. Units only need to be consistent.
type HalfSpace struct {
	Vp1  float64 // P-wave velocity of the upper layer
	Vs1  float64 // S-wave velocity of the upper layer
	Rho1 float64 // density of the upper layer
	Vp2  float64 // P-wave velocity of the lower layer
	Vs2  float64 // S-wave velocity of the lower layer
	Rho2 float64 // density of the lower layer
}

// Validate checks that every velocity and density is finite and strictly
// positive. Vp > Vs is expected but not enforced.
func (h HalfSpace) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"vp1", h.Vp1}, {"vs1", h.Vs1}, {"rho1", h.Rho1},
		{"vp2", h.Vp2}, {"vs2", h.Vs2}, {"rho2", h.Rho2},
	}
	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s = %g must be positive: %w", f.name, f.value, ErrInvalidArgument)
		}
	}
	return nil
}

// RatioModel is the native parameterization of the exact engine and the
// vector recovered by the exact inversion.
type RatioModel struct {
	R1 float64 // Vp2/Vp1
	R2 float64 // Vs1/Vp1
	R3 float64 // Vs2/Vp1
	R4 float64 // rho2/rho1
}

// ToRatio converts a half-space model to ratios relative to the upper
// layer's P velocity and density.
func ToRatio(h HalfSpace) (RatioModel, error) {
	if h.Vp1 == 0 || h.Rho1 == 0 {
		return RatioModel{}, fmt.Errorf("ratio model needs non-zero vp1 and rho1: %w", ErrInvalidArgument)
	}
	return RatioModel{
		R1: h.Vp2 / h.Vp1,
		R2: h.Vs1 / h.Vp1,
		R3: h.Vs2 / h.Vp1,
		R4: h.Rho2 / h.Rho1,
	}, nil
}

// HalfSpace rebuilds physical properties from the ratios given the upper
// layer's P velocity and density.
func (r RatioModel) HalfSpace(vp1, rho1 float64) HalfSpace {
	return HalfSpace{
		Vp1:  vp1,
		Vs1:  r.R2 * vp1,
		Rho1: rho1,
		Vp2:  r.R1 * vp1,
		Vs2:  r.R3 * vp1,
		Rho2: r.R4 * rho1,
	}
}

// Vector returns the ratios in Params order.
func (r RatioModel) Vector() [4]float64 {
	return [4]float64{r.R1, r.R2, r.R3, r.R4}
}

// RatioFromVector is the inverse of RatioModel.Vector.
func RatioFromVector(v [4]float64) RatioModel {
	return RatioModel{R1: v[0], R2: v[1], R3: v[2], R4: v[3]}
}

// Get returns the value of parameter p. p must be valid.
func (r RatioModel) Get(p Param) float64 {
	return r.Vector()[p]
}

// With returns a copy of r with parameter p set to v. p must be valid.
func (r RatioModel) With(p Param, v float64) RatioModel {
	vec := r.Vector()
	vec[p] = v
	return RatioFromVector(vec)
}

func (r RatioModel) String() string {
	return fmt.Sprintf("r1=%.6f r2=%.6f r3=%.6f r4=%.6f", r.R1, r.R2, r.R3, r.R4)
}

// DeltaModel is the relative-difference parameterization: each contrast
// divided by the two-layer average, plus the background Vs/Vp ratio.
type DeltaModel struct {
	Rho  float64 // (rho2-rho1)/mean(rho)
	Vp   float64 // (vp2-vp1)/mean(vp)
	Vs   float64 // (vs2-vs1)/mean(vs)
	VsVp float64 // mean(vs)/mean(vp)
}

// ToDelta converts a half-space model to relative differences.
func ToDelta(h HalfSpace) DeltaModel {
	vpAve := 0.5 * (h.Vp2 + h.Vp1)
	vsAve := 0.5 * (h.Vs2 + h.Vs1)
	rhoAve := 0.5 * (h.Rho2 + h.Rho1)
	return DeltaModel{
		Rho:  (h.Rho2 - h.Rho1) / rhoAve,
		Vp:   (h.Vp2 - h.Vp1) / vpAve,
		Vs:   (h.Vs2 - h.Vs1) / vsAve,
		VsVp: vsAve / vpAve,
	}
}

// Vector returns the three contrasts (rho, vp, vs) in the column order of
// the linearized coefficient matrix.
func (d DeltaModel) Vector() [3]float64 {
	return [3]float64{d.Rho, d.Vp, d.Vs}
}

func (d DeltaModel) String() string {
	return fmt.Sprintf("rho_rd=%.6f vp_rd=%.6f vs_rd=%.6f vs/vp=%.4f", d.Rho, d.Vp, d.Vs, d.VsVp)
}
