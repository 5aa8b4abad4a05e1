package polykit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
)

func TestMPolyArithmetic(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	one := NewMPolyConstant(numkit.OneR)

	p := x.Mul(x).Add(y).Sub(one) // x^2 + y - 1
	val, ok := p.Eval(map[string]numkit.Rational{"x": numkit.NewFromInt64(2), "y": numkit.NewFromInt64(1)})
	a.True(ok)
	a.True(val.Equal(numkit.NewFromInt64(4)))
}

func TestMPolyIsConstant(t *testing.T) {
	a := assert.New(t)

	c, ok := NewMPolyConstant(numkit.NewFromInt64(5)).IsConstant()
	a.True(ok)
	a.True(c.Equal(numkit.NewFromInt64(5)))

	_, ok = NewMPolyVar("x").IsConstant()
	a.False(ok)
}

func TestMPolyDerivative(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	p := x.Mul(x).Mul(x) // x^3
	d := p.Derivative("x")
	val, ok := d.Eval(map[string]numkit.Rational{"x": numkit.NewFromInt64(2)})
	a.True(ok)
	a.True(val.Equal(numkit.NewFromInt64(12)))
}

func TestAsUnivariateRoundtrip(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	p := x.Mul(x).Mul(y).Add(y).Add(NewMPolyConstant(numkit.OneR)) // x^2*y + y + 1

	u := p.AsUnivariate("x")
	a.Equal(2, u.Degree())
	back := u.ToMPoly()
	a.True(back.Equal(p))
}

func TestEvalIntervalPartial(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	p := x.Mul(x) // x^2

	iv, ok := p.EvalIntervalPartial(map[string]interval.Interval{})
	_ = iv
	a.False(ok)
}

func TestNewMPolyMonomial(t *testing.T) {
	a := assert.New(t)

	m := NewMPolyMonomial(numkit.NewFromInt64(3), map[string]int{"x": 2, "y": 1})
	val, ok := m.Eval(map[string]numkit.Rational{"x": numkit.NewFromInt64(2), "y": numkit.NewFromInt64(5)})
	a.True(ok)
	a.True(val.Equal(numkit.NewFromInt64(60))) // 3 * 4 * 5
}
