package polykit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/numkit"
)

func TestResultantVanishesOnCommonRoot(t *testing.T) {
	a := assert.New(t)

	// a = x - y (root x=y), b = x - 1: resultant in x should vanish at y=1.
	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	aPoly := x.Sub(y)
	bPoly := x.Sub(NewMPolyConstant(numkit.OneR))

	res := Resultant(aPoly.AsUnivariate("x"), bPoly.AsUnivariate("x"))
	val, ok := res.Eval(map[string]numkit.Rational{"y": numkit.OneR})
	a.True(ok)
	a.True(val.IsZero())

	val2, ok := res.Eval(map[string]numkit.Rational{"y": numkit.NewFromInt64(2)})
	a.True(ok)
	a.False(val2.IsZero())
}

func TestResultantWithRationalMatchesPlainUPoly(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	aPoly := x.Mul(x).Sub(NewMPolyConstant(numkit.NewFromInt64(2))) // x^2 - 2

	bUPoly := NewUPoly("x", []numkit.Rational{numkit.NewFromInt64(-1), numkit.OneR}) // x - 1

	res := ResultantWithRational(aPoly.AsUnivariate("x"), bUPoly)
	c, ok := res.IsConstant()
	a.True(ok)
	// Res_x(x^2-2, x-1) = (1)^2 - 2 = -1
	a.True(c.Equal(numkit.NewFromInt64(-1)))
}

func TestResultantPanicsOnMismatchedMainVar(t *testing.T) {
	a := assert.New(t)

	x := NewMPolyVar("x")
	y := NewMPolyVar("y")
	a.Panics(func() {
		Resultant(x.AsUnivariate("x"), y.AsUnivariate("y"))
	})
}
