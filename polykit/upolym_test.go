package polykit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/numkit"
)

func TestUPolyMToMPolyRoundtrip(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	p := x.Mul(x).Mul(y).Add(y) // x^2*y + y

	u := p.AsUnivariate("x")
	a.Equal(2, u.Degree())
	a.True(u.ToMPoly().Equal(p))
}

func TestAsRationalUPoly(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	p := x.Mul(x).Add(NewMPolyConstant(numkit.OneR)) // x^2 + 1

	u := p.AsUnivariate("x")
	plain, ok := u.AsRationalUPoly()
	a.True(ok)
	a.True(plain.Equal(NewUPoly("x", []numkit.Rational{numkit.OneR, numkit.ZeroR, numkit.OneR})))
}

func TestAsRationalUPolyFailsWithFreeVariable(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	p := x.Mul(x).Add(y)

	u := p.AsUnivariate("x")
	_, ok := u.AsRationalUPoly()
	a.False(ok)
}

func TestFromUPoly(t *testing.T) {
	a := assert.New(t)

	plain := NewUPoly("x", []numkit.Rational{numkit.NewFromInt64(3), numkit.NewFromInt64(2)})
	u := FromUPoly(plain)
	back, ok := u.AsRationalUPoly()
	a.True(ok)
	a.True(back.Equal(plain))
}
