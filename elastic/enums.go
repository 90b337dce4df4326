package elastic

import (
	"fmt"
	"strings"
)

// AmpType selects the scalar reported for a complex reflection coefficient.
type AmpType int

const (
	Real AmpType = iota // signed real part
	Abs                 // modulus
)

func (a AmpType) String() string {
	switch a {
	case Real:
		return "real"
	case Abs:
		return "abs"
	}
	return fmt.Sprintf("AmpType(%d)", int(a))
}

// Valid reports whether a is one of the declared amplitude types.
func (a AmpType) Valid() bool {
	return a == Real || a == Abs
}

// ParseAmpType accepts "real" or "abs" (case insensitive).
func ParseAmpType(s string) (AmpType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real":
		return Real, nil
	case "abs":
		return Abs, nil
	}
	return 0, fmt.Errorf("amplitude type %q: %w", s, ErrInvalidArgument)
}

// Reflection is the reflected wave type for an incident P wave.
type Reflection int

const (
	PP Reflection = iota // reflected P
	PS                   // converted reflected S
)

func (r Reflection) String() string {
	switch r {
	case PP:
		return "PP"
	case PS:
		return "PS"
	}
	return fmt.Sprintf("Reflection(%d)", int(r))
}

// Valid reports whether r is PP or PS.
func (r Reflection) Valid() bool {
	return r == PP || r == PS
}

// ParseReflection accepts "PP" or "PS" (case insensitive).
func ParseReflection(s string) (Reflection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PP":
		return PP, nil
	case "PS":
		return PS, nil
	}
	return 0, fmt.Errorf("reflection type %q: %w", s, ErrInvalidArgument)
}

// Param names one of the four ratio parameters. The zero value is R1 and
// the values double as indices into RatioModel.Vector.
type Param int

const (
	R1 Param = iota // Vp2/Vp1
	R2              // Vs1/Vp1
	R3              // Vs2/Vp1
	R4              // rho2/rho1
)

// Params lists the ratio parameters in vector order.
var Params = [4]Param{R1, R2, R3, R4}

func (p Param) String() string {
	if p.Valid() {
		return fmt.Sprintf("r%d", int(p)+1)
	}
	return fmt.Sprintf("Param(%d)", int(p))
}

// Valid reports whether p is one of R1..R4.
func (p Param) Valid() bool {
	return p >= R1 && p <= R4
}

// ParseParam accepts "r1".."r4" (case insensitive).
func ParseParam(s string) (Param, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r1":
		return R1, nil
	case "r2":
		return R2, nil
	case "r3":
		return R3, nil
	case "r4":
		return R4, nil
	}
	return 0, fmt.Errorf("parameter %q: %w", s, ErrInvalidArgument)
}
