package polykit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/numkit"
)

func TestSPolynomialCancelsLeadingTerms(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	ord := Order{"x", "y"}

	f := x.Mul(x).Sub(y) // x^2 - y
	g := x.Mul(y).Sub(x) // xy - x
	s := f.SPolynomial(g, ord)

	lt, ok := ord.Leading(s)
	if ok {
		a.False(lt.Exps["x"] == 2 && lt.Exps["y"] == 1)
	}
}

func TestReduceToNormalForm(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	ord := Order{"x"}
	basis := []MPoly{x.Mul(x).Sub(NewMPolyConstant(numkit.OneR))} // x^2 - 1

	p := x.Mul(x).Mul(x) // x^3, reduces to x via x^2 -> 1
	r := p.Reduce(basis, ord)
	a.True(r.Equal(x))
}
