package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/ranalg/numkit"
)

func r(n int64) numkit.Rational { return numkit.NewFromInt64(n) }

func TestContainsHonorsBoundTypes(t *testing.T) {
	a := assert.New(t)

	open := Open(r(0), r(1))
	a.False(open.Contains(r(0)))
	a.False(open.Contains(r(1)))
	a.True(open.Contains(numkit.NewFromFraction(1, 2)))

	closed := Closed(r(0), r(1))
	a.True(closed.Contains(r(0)))
	a.True(closed.Contains(r(1)))
}

func TestContainsIntegerAndZero(t *testing.T) {
	a := assert.New(t)

	a.True(Open(r(0), r(2)).ContainsInteger())
	a.False(Open(r(0), r(1)).ContainsInteger())
	a.True(Closed(r(-1), r(1)).ContainsZero())
	a.False(Open(r(0), r(1)).ContainsZero())
	a.True(Unbounded().ContainsInteger())

	// A non-integer Weak lower bound must still advance to the next
	// integer above it, not get stuck at its floor.
	a.True(Closed(numkit.NewFromFraction(5, 2), r(5)).ContainsInteger())
	a.False(Closed(numkit.NewFromFraction(5, 2), numkit.NewFromFraction(11, 4)).ContainsInteger())
}

func TestIsPoint(t *testing.T) {
	a := assert.New(t)

	a.True(Point(r(3)).IsPoint())
	a.False(Open(r(0), r(1)).IsPoint())
	a.False(Closed(r(1), r(2)).IsPoint())
}

func TestIntersect(t *testing.T) {
	a := assert.New(t)

	x := Closed(r(0), r(5))
	y := Open(r(3), r(10))
	a.True(HasIntersection(x, y))

	got := Intersect(x, y)
	a.True(got.Lower.Equal(r(3)))
	a.Equal(Strict, got.LowerType)
	a.True(got.Upper.Equal(r(5)))
	a.Equal(Weak, got.UpperType)
}

func TestIntersectWithUnbounded(t *testing.T) {
	a := assert.New(t)

	got := Intersect(Unbounded(), Closed(r(1), r(2)))
	a.True(got.Equal(Closed(r(1), r(2))))
}

func TestAbs(t *testing.T) {
	a := assert.New(t)

	a.True(Closed(r(1), r(3)).Abs().Equal(Closed(r(1), r(3))))
	a.True(Closed(r(-3), r(-1)).Abs().Equal(Closed(r(1), r(3))))
	a.Panics(func() { Closed(r(-1), r(1)).Abs() })
}

func TestSamplePrefersIntegerThenDyadic(t *testing.T) {
	a := assert.New(t)

	in := Open(r(0), r(3))
	s := in.Sample()
	a.True(s.IsInteger())
	a.True(in.Contains(s))

	noInt := Open(numkit.NewFromFraction(1, 4), numkit.NewFromFraction(3, 4))
	s2 := noInt.Sample()
	a.True(noInt.Contains(s2))
	a.True(s2.Equal(numkit.NewFromFraction(1, 2)))
}

func TestSetLowerSetUpperTighten(t *testing.T) {
	a := assert.New(t)

	iv := Closed(r(0), r(10))
	iv.SetLower(r(2))
	iv.SetUpper(r(8))
	a.True(iv.Lower.Equal(r(2)))
	a.Equal(Strict, iv.LowerType)
	a.True(iv.Upper.Equal(r(8)))
	a.Equal(Strict, iv.UpperType)
}

func TestEqual(t *testing.T) {
	a := assert.New(t)

	a.True(Closed(r(1), r(2)).Equal(Closed(r(1), r(2))))
	a.False(Closed(r(1), r(2)).Equal(Open(r(1), r(2))))
	a.True(Unbounded().Equal(Unbounded()))
}

func TestString(t *testing.T) {
	a := assert.New(t)

	a.Equal("[0, 1)", Interval{Lower: r(0), Upper: r(1), LowerType: Weak, UpperType: Strict}.String())
	a.Equal("(-inf, +inf)", Unbounded().String())
}
