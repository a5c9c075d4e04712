package curvefit

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQuadBezDeriv(t *testing.T) {
	// y = x^2
	q := QuadBez{
		Pt(0.0, 0.0),
		Pt(0.5, 0.0),
		Pt(1.0, 1.0),
	}
	deriv := q.Differentiate()

	const n = 10
	const delta = 1e-6
	for i := 0; i < n+1; i++ {
		ts := float64(i) / float64(n)
		p := q.Eval(ts)
		p1 := q.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := Vec2(deriv.Eval(ts))
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
	}
}

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{
		Pt(0.0, 0.0),
		Pt(0.0, 0.5),
		Pt(1.0, 1.0),
	}
	c := q.Raise()

	diff(t, c.P0, q.P0)
	diff(t, c.P3, q.P2)
	const n = 8
	for i := 0; i < n+1; i++ {
		ts := float64(i) / float64(n)
		diff(t, q.Eval(ts), c.Eval(ts), cmpopts.EquateApprox(0, 1e-12))
	}
}
