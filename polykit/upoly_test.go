package polykit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
)

func rat(n int64) numkit.Rational { return numkit.NewFromInt64(n) }

func poly(coeffs ...int64) UPoly {
	cs := make([]numkit.Rational, len(coeffs))
	for i, c := range coeffs {
		cs[i] = rat(c)
	}
	return NewUPoly("x", cs)
}

func TestArithmetic(t *testing.T) {
	a := assert.New(t)

	p := poly(1, 2, 3) // 3x^2 + 2x + 1
	q := poly(-1, 1)   // x - 1

	sum := p.Add(q)
	a.True(sum.Equal(poly(0, 3, 3)))

	prod := p.Mul(q)
	a.True(prod.Equal(poly(-1, -1, -1, 3)))

	a.True(p.Sub(p).IsZero())
}

func TestDivModExact(t *testing.T) {
	a := assert.New(t)

	// x^2 - 1 = (x - 1)(x + 1)
	p := poly(-1, 0, 1)
	v := poly(-1, 1)

	q, r := p.DivMod(v)
	a.True(q.Equal(poly(1, 1)))
	a.True(r.IsZero())
}

func TestGCDOfCoprimeAndShared(t *testing.T) {
	a := assert.New(t)

	// (x-1)(x-2) and (x-1)(x-3) share (x-1).
	p := poly(2, -3, 1)
	q := poly(3, -4, 1)
	g := GCD(p, q)
	a.Equal(1, g.Degree())
	a.True(g.Eval(rat(1)).IsZero())
}

func TestSquareFreePart(t *testing.T) {
	a := assert.New(t)

	// (x-1)^2 * (x-2)
	p := poly(-2, 5, -4, 1)
	sf := p.SquareFreePart()
	a.Equal(2, sf.Degree())
	a.True(sf.Eval(rat(1)).IsZero())
	a.True(sf.Eval(rat(2)).IsZero())
}

func TestCountRealRootsOfKnownCubic(t *testing.T) {
	a := assert.New(t)

	// (x+1) x (x-1) = x^3 - x, roots at -1, 0, 1
	p := poly(0, -1, 0, 1)
	count := p.CountRealRoots(interval.Unbounded())
	a.Equal(3, count)

	count2 := p.CountRealRoots(interval.Open(rat(-2), rat(2)))
	a.Equal(3, count2)

	count3 := p.CountRealRoots(interval.Closed(rat(0), rat(1)))
	a.Equal(2, count3)
}

func TestCauchyBound(t *testing.T) {
	a := assert.New(t)

	p := poly(-2, 0, 1) // x^2 - 2, roots +-sqrt(2)
	bound := p.CauchyBound()
	a.True(bound.Cmp(rat(1)) > 0)

	root := numkit.NewFromFraction(142, 100)
	a.True(root.Abs().Less(bound))
}

func TestNegateVariable(t *testing.T) {
	a := assert.New(t)

	p := poly(1, 2, 3) // 3x^2+2x+1
	neg := p.NegateVariable()
	a.True(neg.Equal(poly(1, -2, 3)))
}

func TestGeneralizedSturmSequenceAndSignChanges(t *testing.T) {
	a := assert.New(t)

	// p = x^3 - x (roots -1,0,1), q = 1 (constant): sgn(q) on every root is
	// positive, so the generalized sequence counts the same 3 roots.
	p := poly(0, -1, 0, 1)
	one := poly(1)
	seq := GeneralizedSturmSequence(p, p.Derivative().Mul(one))
	count := CountSignChanges(seq, interval.Unbounded())
	a.Equal(3, count)
}

func TestStringFormatting(t *testing.T) {
	a := assert.New(t)

	a.Equal("0", poly().String())
	a.Equal("1", poly(1).String())
	a.Equal("x", poly(0, 1).String())
	a.Equal("3x^2 + 2x + 1", poly(1, 2, 3).String())
}
