// Package interval implements Interval<Rational>: endpoints each tagged
// strict, weak, or unbounded (infty), with the set-theoretic operations the
// RAN engine and PolyKit need.
package interval

import (
	"fmt"

	"github.com/jonathanmweiss/ranalg/numkit"
)

// BoundType tags an interval endpoint.
type BoundType int

const (
	Strict BoundType = iota
	Weak
	Infty
)

// Interval is a pair of endpoints, each independently strict/weak/infty.
// An Infty lower bound means "-infinity"; an Infty upper bound means
// "+infinity"; the Rational value of an Infty bound is never consulted.
type Interval struct {
	Lower, Upper         numkit.Rational
	LowerType, UpperType BoundType
}

// Unbounded returns (-infty, +infty).
func Unbounded() Interval {
	return Interval{LowerType: Infty, UpperType: Infty}
}

// Point returns the degenerate interval [x, x].
func Point(x numkit.Rational) Interval {
	return Interval{Lower: x, Upper: x, LowerType: Weak, UpperType: Weak}
}

// Open returns (lo, hi).
func Open(lo, hi numkit.Rational) Interval {
	return Interval{Lower: lo, Upper: hi, LowerType: Strict, UpperType: Strict}
}

// Closed returns [lo, hi].
func Closed(lo, hi numkit.Rational) Interval {
	return Interval{Lower: lo, Upper: hi, LowerType: Weak, UpperType: Weak}
}

func (iv Interval) IsPoint() bool {
	return iv.LowerType != Infty && iv.UpperType != Infty &&
		iv.LowerType == Weak && iv.UpperType == Weak && iv.Lower.Equal(iv.Upper)
}

// IsOpen reports whether both endpoints are strict (or infty).
func (iv Interval) IsOpen() bool {
	return iv.LowerType != Weak && iv.UpperType != Weak
}

func (iv Interval) lowerBelow(x numkit.Rational) bool {
	if iv.LowerType == Infty {
		return true
	}
	if iv.LowerType == Strict {
		return iv.Lower.Less(x)
	}
	return iv.Lower.LessEqual(x)
}

func (iv Interval) upperAbove(x numkit.Rational) bool {
	if iv.UpperType == Infty {
		return true
	}
	if iv.UpperType == Strict {
		return x.Less(iv.Upper)
	}
	return x.LessEqual(iv.Upper)
}

// Contains reports whether x lies in the interval, honoring the bound types.
func (iv Interval) Contains(x numkit.Rational) bool {
	return iv.lowerBelow(x) && iv.upperAbove(x)
}

// ContainsZero reports whether 0 lies in the interval.
func (iv Interval) ContainsZero() bool {
	return iv.Contains(numkit.ZeroR)
}

// ContainsInteger reports whether any integer lies in the interval,
// honoring the bound types (a weak integer endpoint counts).
func (iv Interval) ContainsInteger() bool {
	if iv.IsPoint() {
		return iv.Lower.IsInteger()
	}
	if iv.LowerType == Infty {
		return true // unbounded below always contains an integer
	}
	// lo is the smallest integer honoring the lower bound: ceil(Lower) when
	// the bound is inclusive, the next integer strictly above it otherwise.
	var lo numkit.Rational
	if iv.LowerType == Weak {
		lo = iv.Lower.Ceil()
	} else {
		lo = iv.Lower.Floor().Add(numkit.OneR)
	}
	if iv.UpperType == Infty {
		return true
	}
	return iv.Contains(lo)
}

// HasIntersection reports whether the two intervals overlap.
func HasIntersection(a, b Interval) bool {
	lowOK := a.LowerType == Infty || b.UpperType == Infty || a.Lower.Less(upperValue(b)) || (a.LowerType != Strict && b.UpperType != Strict && a.Lower.Equal(upperValue(b)))
	highOK := b.LowerType == Infty || a.UpperType == Infty || b.Lower.Less(upperValue(a)) || (b.LowerType != Strict && a.UpperType != Strict && b.Lower.Equal(upperValue(a)))
	return lowOK && highOK
}

func upperValue(iv Interval) numkit.Rational { return iv.Upper }

// Intersect returns the intersection of a and b. Callers must ensure
// HasIntersection(a, b) first.
func Intersect(a, b Interval) Interval {
	res := Interval{}
	if a.LowerType == Infty {
		res.Lower, res.LowerType = b.Lower, b.LowerType
	} else if b.LowerType == Infty {
		res.Lower, res.LowerType = a.Lower, a.LowerType
	} else if a.Lower.Cmp(b.Lower) >= 0 {
		res.Lower, res.LowerType = a.Lower, strictest(a.LowerType, b.LowerType, a.Lower.Equal(b.Lower))
	} else {
		res.Lower, res.LowerType = b.Lower, b.LowerType
	}

	if a.UpperType == Infty {
		res.Upper, res.UpperType = b.Upper, b.UpperType
	} else if b.UpperType == Infty {
		res.Upper, res.UpperType = a.Upper, a.UpperType
	} else if a.Upper.Cmp(b.Upper) <= 0 {
		res.Upper, res.UpperType = a.Upper, strictest(a.UpperType, b.UpperType, a.Upper.Equal(b.Upper))
	} else {
		res.Upper, res.UpperType = b.Upper, b.UpperType
	}
	return res
}

func strictest(a, b BoundType, equalValues bool) BoundType {
	if !equalValues {
		return a
	}
	if a == Strict || b == Strict {
		return Strict
	}
	return Weak
}

// Equal reports structural equality of the two intervals (same endpoints
// and bound types).
func (iv Interval) Equal(other Interval) bool {
	if iv.LowerType != other.LowerType || iv.UpperType != other.UpperType {
		return false
	}
	if iv.LowerType != Infty && !iv.Lower.Equal(other.Lower) {
		return false
	}
	if iv.UpperType != Infty && !iv.Upper.Equal(other.Upper) {
		return false
	}
	return true
}

// SetLower tightens the lower bound to x (strict), assuming x is a valid
// refinement (x lies within the current interval).
func (iv *Interval) SetLower(x numkit.Rational) {
	iv.Lower = x
	iv.LowerType = Strict
}

// SetUpper tightens the upper bound to x (strict).
func (iv *Interval) SetUpper(x numkit.Rational) {
	iv.Upper = x
	iv.UpperType = Strict
}

// Abs returns the interval of |x| for x in iv. Requires iv not to straddle
// zero unless it is a point interval at zero.
func (iv Interval) Abs() Interval {
	if iv.IsPoint() {
		return Point(iv.Lower.Abs())
	}
	if iv.LowerType != Infty && iv.Lower.Sign() >= 0 {
		return iv
	}
	if iv.UpperType != Infty && iv.Upper.Sign() <= 0 {
		return Interval{Lower: iv.Upper.Neg(), Upper: iv.Lower.Neg(), LowerType: iv.UpperType, UpperType: iv.LowerType}
	}
	panic("interval: Abs of an interval straddling zero is not a single interval")
}

// Sample returns a "nice" rational inside the interval: an integer if one
// lies strictly inside, else the smallest-denominator dyadic inside, else
// the exact midpoint. Requires the interval to be non-point and bounded.
func (iv Interval) Sample() numkit.Rational {
	if iv.IsPoint() {
		return iv.Lower
	}
	if iv.LowerType == Infty && iv.UpperType == Infty {
		return numkit.ZeroR
	}
	if iv.LowerType == Infty {
		return iv.Upper.Sub(numkit.OneR)
	}
	if iv.UpperType == Infty {
		return iv.Lower.Add(numkit.OneR)
	}

	lowCeil := iv.Lower.Ceil()
	if lowCeil.Equal(iv.Lower) {
		lowCeil = lowCeil.Add(numkit.OneR)
	}
	if lowCeil.Less(iv.Upper) {
		return lowCeil
	}
	return dyadicBetween(iv)
}

// dyadicBetween returns the rational k/2^e strictly between the endpoints
// with the smallest e (1 <= e <= 64), or the exact midpoint when no such
// dyadic exists.
func dyadicBetween(iv Interval) numkit.Rational {
	lo, hi := iv.Lower, iv.Upper
	two := numkit.NewFromInt64(2)
	den := numkit.OneR
	for e := 1; e <= 64; e++ {
		den = den.Mul(two)
		cand := lo.Mul(den).Floor().Add(numkit.OneR).Quo(den)
		if cand.Less(hi) {
			return cand
		}
	}
	mid := numkit.Mid(lo, hi)
	return mid
}

func (iv Interval) String() string {
	l := "("
	if iv.LowerType == Weak {
		l = "["
	}
	r := ")"
	if iv.UpperType == Weak {
		r = "]"
	}
	lv := "-inf"
	if iv.LowerType != Infty {
		lv = iv.Lower.String()
	}
	rv := "+inf"
	if iv.UpperType != Infty {
		rv = iv.Upper.String()
	}
	return fmt.Sprintf("%s%s, %s%s", l, lv, rv, r)
}
