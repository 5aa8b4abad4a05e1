package ran

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

func r(n int64) numkit.Rational { return numkit.NewFromInt64(n) }

func poly(coeffs ...int64) polykit.UPoly {
	cs := make([]numkit.Rational, len(coeffs))
	for i, c := range coeffs {
		cs[i] = r(c)
	}
	return polykit.NewUPoly("x", cs)
}

// sqrt2 constructs the positive root of x^2-2 inside (1,2).
func sqrt2(t *testing.T) RAN {
	p := poly(-2, 0, 1)
	ran, err := FromPolyInterval(p, interval.Open(r(1), r(2)))
	assert.NoError(t, err)
	return ran
}

func TestFromRationalIsNumeric(t *testing.T) {
	a := assert.New(t)

	x := FromRational(r(3))
	a.True(x.IsNumeric())
	v, ok := x.Value()
	a.True(ok)
	a.True(v.Equal(r(3)))
}

func TestFromPolyIntervalZeroPolyFails(t *testing.T) {
	a := assert.New(t)

	_, err := FromPolyInterval(poly(), interval.Unbounded())
	a.ErrorIs(err, ErrInvalidConstruction)
}

func TestFromPolyIntervalConstantFails(t *testing.T) {
	a := assert.New(t)

	_, err := FromPolyInterval(poly(5), interval.Unbounded())
	a.ErrorIs(err, ErrInvalidConstruction)
}

func TestFromPolyIntervalPointCollapsesToRational(t *testing.T) {
	a := assert.New(t)

	// x - 3 has root 3, isolated by the point {3}.
	p := poly(-3, 1)
	x, err := FromPolyInterval(p, interval.Point(r(3)))
	a.NoError(err)
	a.True(x.IsNumeric())
	v, _ := x.Value()
	a.True(v.Equal(r(3)))
}

func TestFromPolyIntervalLinearCollapsesToRational(t *testing.T) {
	a := assert.New(t)

	// 2x - 1 has root 1/2.
	p := poly(-1, 2)
	x, err := FromPolyInterval(p, interval.Open(r(0), r(1)))
	a.NoError(err)
	a.True(x.IsNumeric())
	v, _ := x.Value()
	a.True(v.Equal(numkit.NewFromFraction(1, 2)))
}

func TestFromPolyIntervalWrongRootCountFails(t *testing.T) {
	a := assert.New(t)

	// x^3 - x has three roots in (-2,2): fails to isolate exactly one.
	p := poly(0, -1, 0, 1)
	_, err := FromPolyInterval(p, interval.Open(r(-2), r(2)))
	a.ErrorIs(err, ErrInvalidConstruction)
}

func TestFromPolyIntervalIrrationalStaysNonNumericUntilRefined(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	a.False(s.IsNumeric())
	p, ok := s.Polynomial()
	a.True(ok)
	a.Equal(2, p.Degree())
}

func TestRefineNarrowsInterval(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	iv0, _ := s.Interval()
	s.Refine()
	iv1, _ := s.Interval()
	width0 := iv0.Upper.Sub(iv0.Lower)
	width1 := iv1.Upper.Sub(iv1.Lower)
	a.True(width1.Less(width0))
}

func TestRefineConvergesTowardSqrt2(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	for i := 0; i < 40 && !s.IsNumeric(); i++ {
		s.Refine()
	}
	iv, ok := s.Interval()
	if ok {
		width := iv.Upper.Sub(iv.Lower)
		a.True(width.Less(numkit.NewFromFraction(1, 1000)))
	}
}

func TestRefineUsingOutOfRangeFails(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	_, ok := s.RefineUsing(r(100))
	a.False(ok)
}

func TestRefineUsingSplitsInterval(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	sign, ok := s.RefineUsing(numkit.NewFromFraction(3, 2))
	a.True(ok)
	// sqrt(2) ~ 1.414 < 1.5, so the value is below the pivot.
	a.Equal(numkit.Negative, sign)
	iv, _ := s.Interval()
	a.True(iv.Upper.LessEqual(numkit.NewFromFraction(3, 2)))
}

func TestSgnOfDefiningPolynomialIsZero(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	p, _ := s.Polynomial()
	a.Equal(numkit.Zero, s.Sgn(p))
}

func TestSgnOfKnownGreaterPolynomial(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	// x - 1 is positive at sqrt(2).
	a.Equal(numkit.Positive, s.Sgn(poly(-1, 1)))
	// x - 2 is negative at sqrt(2).
	a.Equal(numkit.Negative, s.Sgn(poly(-2, 1)))
}

func TestSgnOnNumericRAN(t *testing.T) {
	a := assert.New(t)

	x := FromRational(r(5))
	a.Equal(numkit.Positive, x.Sgn(poly(-3, 1))) // x-3 at 5 is 2 > 0
}

func TestContainedIn(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	a.True(s.ContainedIn(interval.Closed(r(1), r(2))))
	a.False(s.ContainedIn(interval.Closed(r(3), r(4))))
}

func TestIsZeroAndIsIntegral(t *testing.T) {
	a := assert.New(t)

	a.True(FromRational(r(0)).IsZero())
	a.True(FromRational(r(4)).IsIntegral())
	a.False(FromRational(numkit.NewFromFraction(1, 2)).IsIntegral())
	a.False(sqrt2(t).IsIntegral())
}

func TestAbsOnNumeric(t *testing.T) {
	a := assert.New(t)

	neg := FromRational(r(-7))
	abs := neg.Abs()
	v, _ := abs.Value()
	a.True(v.Equal(r(7)))
}

func TestAbsOnNonNumericPositiveIsIdentity(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	abs := s.Abs()
	iv1, _ := s.Interval()
	iv2, _ := abs.Interval()
	a.True(iv1.Equal(iv2))
}

func TestAbsOnNonNumericNegative(t *testing.T) {
	a := assert.New(t)

	// negative root of x^2-2, in (-2,-1).
	neg, err := FromPolyInterval(poly(-2, 0, 1), interval.Open(r(-2), r(-1)))
	a.NoError(err)

	abs := neg.Abs()
	iv, ok := abs.Interval()
	a.True(ok)
	a.True(iv.Lower.Sign() >= 0)
}

func TestFloorCeilOnNumeric(t *testing.T) {
	a := assert.New(t)

	x := FromRational(numkit.NewFromFraction(7, 2))
	a.True(x.Floor().Equal(r(3)))
	a.True(x.Ceil().Equal(r(4)))
}

func TestFloorCeilOnSqrt2(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	a.True(s.Floor().Equal(r(1)))
	a.True(s.Ceil().Equal(r(2)))
}

func TestSampleAboveBelowBracketValue(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t)
	above := s.SampleAbove()
	below := s.SampleBelow()
	a.True(below.Less(above))
	iv, _ := s.Interval()
	a.True(iv.Upper.LessEqual(above))
	a.True(below.LessEqual(iv.Lower))
}

func TestSampleBetweenDistinctNumeric(t *testing.T) {
	a := assert.New(t)

	mid := SampleBetween(FromRational(r(1)), FromRational(r(2)))
	a.True(r(1).Less(mid))
	a.True(mid.Less(r(2)))
}

func TestSampleBetweenNumericAndIrrational(t *testing.T) {
	a := assert.New(t)

	s := sqrt2(t) // ~1.414
	mid := SampleBetween(FromRational(r(0)), s)
	a.True(r(0).Less(mid))
	a.True(CompareRational(s, mid, GREATER))
}

func TestStringNumericAndNonNumeric(t *testing.T) {
	a := assert.New(t)

	a.Equal(r(4).String(), FromRational(r(4)).String())
	s := sqrt2(t)
	a.NotEmpty(s.String())
}

func TestBitSizePositive(t *testing.T) {
	a := assert.New(t)

	a.True(FromRational(r(5)).BitSize() > 0)
	a.True(sqrt2(t).BitSize() > 0)
}
