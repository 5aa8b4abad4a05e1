package ran

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/polykit"
)

func TestEvaluateConstraintFullyNumeric(t *testing.T) {
	a := assert.New(t)

	x := polykit.NewMPolyVar("x")
	f := x.Sub(polykit.NewMPolyConstant(r(3))) // x - 3
	c := Constraint{F: f, Rel: EQ}

	a.Equal(True, EvaluateConstraint(c, map[string]RAN{"x": FromRational(r(3))}))
	a.Equal(False, EvaluateConstraint(c, map[string]RAN{"x": FromRational(r(4))}))
}

func TestEvaluateConstraintMissingVariableIsIndeterminate(t *testing.T) {
	a := assert.New(t)

	x := polykit.NewMPolyVar("x")
	c := Constraint{F: x, Rel: GREATER}
	a.Equal(Indeterminate, EvaluateConstraint(c, map[string]RAN{}))
}

func TestEvaluateConstraintDecidesFromIntervalSign(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t) // isolated to (1,2) initially
	x := polykit.NewMPolyVar("x")

	fMinus1 := x.Sub(polykit.NewMPolyConstant(r(1))) // x - 1 > 0 since x in (1,2)
	a.Equal(True, EvaluateConstraint(Constraint{F: fMinus1, Rel: GREATER}, map[string]RAN{"x": s}))

	s2 := sqrt2(t)
	fMinus2 := x.Sub(polykit.NewMPolyConstant(r(2))) // x - 2 < 0 since x in (1,2)
	a.Equal(True, EvaluateConstraint(Constraint{F: fMinus2, Rel: LESS}, map[string]RAN{"x": s2}))
}

func TestEvaluateConstraintNeqDecidesFromIntervalSign(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t) // isolated to (1,2), so x - 1 is always positive there
	x := polykit.NewMPolyVar("x")
	fMinus1 := x.Sub(polykit.NewMPolyConstant(r(1)))
	a.Equal(True, EvaluateConstraint(Constraint{F: fMinus1, Rel: NEQ}, map[string]RAN{"x": s}))
}

func TestTrivalentString(t *testing.T) {
	a := assert.New(t)

	a.Equal("true", True.String())
	a.Equal("false", False.String())
	a.Equal("indeterminate", Indeterminate.String())
}
