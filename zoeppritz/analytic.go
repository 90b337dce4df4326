package zoeppritz

import (
	"fmt"
	"math"

	"github.com/bob-anderson-ok/zoeppritz/elastic"
)

// dualBlocks mirrors blocks for the pre-critical case, where every leg
// has a real horizontal-slowness ratio Tᵢ = rᵢ sinθ / √(1 − rᵢ² sin²θ),
// carrying derivatives with respect to one parameter alongside.
type dualBlocks struct {
	r2, r4 dual
	q      dual
	t      [4]dual
}

func newDualBlocks(r elastic.RatioModel, s float64, p elastic.Param) (dualBlocks, error) {
	seeded := func(which elastic.Param, v float64) dual {
		if which == p {
			return dual{v: v, d: 1}
		}
		return constant(v)
	}
	r1 := seeded(elastic.R1, r.R1)
	r2 := seeded(elastic.R2, r.R2)
	r3 := seeded(elastic.R3, r.R3)
	r4 := seeded(elastic.R4, r.R4)

	var b dualBlocks
	b.r2, b.r4 = r2, r4
	for i, ri := range [4]dual{constant(1), r1, r2, r3} {
		rs := ri.v * s
		rad := 1 - rs*rs
		if rad <= 0 {
			return dualBlocks{}, fmt.Errorf("leg %d is post-critical (radicand %g): %w", i, rad, elastic.ErrInvalidAngle)
		}
		root := math.Sqrt(rad)
		// dT/dr = sinθ / (1 − r² sin²θ)^(3/2) = (T + T³)/r
		b.t[i] = dual{v: rs / root, d: ri.d * s / (rad * root)}
	}
	b.q = r4.mul(r3.square()).sub(r2.square()).scale(2 * s * s)
	return b, nil
}

// coefficient assembles the PP or PS coefficient from the blocks. The
// value matches blocks.fraction for pre-critical angles; the derivative
// is the closed-form partial for the seeded parameter.
func (b dualBlocks) coefficient(refl elastic.Reflection) dual {
	one := constant(1)
	t0, t1, t2, t3 := b.t[0], b.t[1], b.t[2], b.t[3]
	u := b.r4.sub(b.q) // r4 − Q
	w := u.sub(one)    // r4 − Q − 1
	v := one.add(b.q)  // 1 + Q

	a := u.square().mul(t1).mul(t3)
	bb := w.square().mul(t0).mul(t1).mul(t2).mul(t3)
	c := v.square().mul(t0).mul(t2)
	d := b.r4.mul(t1).mul(t2)
	e := b.r4.mul(t0).mul(t3)
	f := b.q.square()
	den := f.add(e).add(d).add(c).add(bb).add(a)

	if refl == elastic.PP {
		num := f.sub(e).add(d).sub(c).sub(bb).add(a)
		return num.div(den)
	}
	g := b.q.mul(v)
	h := u.mul(w).mul(t1).mul(t3)
	num := t2.mul(g.add(h)).scale(2).div(b.r2)
	return num.div(den)
}
