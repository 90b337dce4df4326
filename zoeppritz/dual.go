package zoeppritz

// dual is a value together with its partial derivative with respect to a
// single ratio parameter. Products and quotients follow the product and
// quotient rules, so an expression assembled from duals carries its own
// closed-form derivative.
type dual struct {
	v float64 // value
	d float64 // derivative
}

func constant(v float64) dual { return dual{v: v} }

func (a dual) add(b dual) dual { return dual{a.v + b.v, a.d + b.d} }

func (a dual) sub(b dual) dual { return dual{a.v - b.v, a.d - b.d} }

func (a dual) mul(b dual) dual { return dual{a.v * b.v, a.d*b.v + a.v*b.d} }

func (a dual) scale(k float64) dual { return dual{k * a.v, k * a.d} }

func (a dual) square() dual { return a.mul(a) }

// div applies the quotient rule, −N·D′/D² + N′/D.
func (a dual) div(b dual) dual {
	return dual{a.v / b.v, -a.v*b.d/(b.v*b.v) + a.d/b.v}
}
