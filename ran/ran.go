// Package ran implements the real algebraic number (RAN) engine:
// interval-representation real algebraic numbers with in-place shared
// refinement, comparison, sampling and sign-against-a-polynomial
// evaluation. It is the core the rest of the module (RootIsolator below
// it, the multivariate evaluator and the Tarski-query machinery above it)
// is built around, directly grounded on carl's RealAlgebraicNumberInterval
// (ran_interval.h).
package ran

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

var (
	// ErrInvalidConstruction is returned by FromPolyInterval when the
	// supplied (polynomial, interval) pair does not isolate exactly one
	// real root.
	ErrInvalidConstruction = errors.New("ran: interval does not isolate exactly one real root of the polynomial")
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

// mainVar is the fixed auxiliary variable every RAN's defining polynomial
// is renamed to, so that two RANs' defining polynomials are always directly
// comparable (gcd, equality) without a prior rename step.
const mainVar = "_ran"

// state is the shared, mutable refinement record behind a non-numeric RAN:
// multiple RAN handles may point at the same *state, and refining one
// handle's interval is visible to every other handle sharing it. Once the
// root is pinned down exactly, iv collapses to a point interval and poly /
// lowerSign become meaningless - see RAN.Value.
type state struct {
	poly      polykit.UPoly
	iv        interval.Interval
	lowerSign numkit.Sign
}

// RAN is a real algebraic number: either a standalone rational value, or a
// handle onto a shared refinement record for an irrational root.
type RAN struct {
	numeric *numkit.Rational
	shared  *state
}

// FromRational returns the numeric RAN for q.
func FromRational(q numkit.Rational) RAN {
	return RAN{numeric: &q}
}

// FromPolyInterval constructs a non-numeric RAN from p and an interval I
// that must contain exactly one real root of p. It square-frees and
// renames p, collapses to numeric on a point interval or a degree-1
// defining polynomial, and otherwise refines I until it contains no
// integer and does not straddle zero.
func FromPolyInterval(p polykit.UPoly, iv interval.Interval) (RAN, error) {
	if p.IsZero() {
		return RAN{}, ErrInvalidConstruction
	}
	sf := p.SquareFreePart().WithMainVar(mainVar)
	if sf.IsConstant() {
		return RAN{}, ErrInvalidConstruction
	}

	if iv.IsPoint() {
		if sf.EvalSign(iv.Lower) != numkit.Zero {
			return RAN{}, ErrInvalidConstruction
		}
		return FromRational(iv.Lower), nil
	}

	if sf.Degree() == 1 {
		a, b := sf.Coeff(1), sf.Coeff(0)
		val := b.Neg().Quo(a)
		if !iv.Contains(val) {
			return RAN{}, ErrInvalidConstruction
		}
		return FromRational(val), nil
	}

	bound := sf.CauchyBound()
	lo, hi := iv.Lower, iv.Upper
	if iv.LowerType == interval.Infty {
		lo = bound.Neg().Sub(numkit.OneR)
	}
	if iv.UpperType == interval.Infty {
		hi = bound.Add(numkit.OneR)
	}
	work := interval.Interval{Lower: lo, Upper: hi, LowerType: interval.Strict, UpperType: interval.Strict}

	if sf.CountRealRoots(work) != 1 {
		return RAN{}, ErrInvalidConstruction
	}

	lowerSign := sf.EvalSign(work.Lower)
	if lowerSign == numkit.Zero {
		// The excluded lower endpoint is itself a simple root of sf; just
		// above it sf has the sign of its derivative there.
		lowerSign = sf.Derivative().EvalSign(work.Lower)
	}
	s := &state{poly: sf, iv: work, lowerSign: lowerSign}
	r := RAN{shared: s}
	for !s.iv.IsPoint() && (s.iv.ContainsInteger() || s.iv.ContainsZero()) {
		r.Refine()
	}
	return r, nil
}

// IsNumeric reports whether a denotes a rational value directly - either
// because it was built numerically, or because refinement has pinned its
// shared interval down to a point.
func (a RAN) IsNumeric() bool {
	return a.numeric != nil || (a.shared != nil && a.shared.iv.IsPoint())
}

// Value returns a's rational value when IsNumeric() holds.
func (a RAN) Value() (numkit.Rational, bool) {
	if a.numeric != nil {
		return *a.numeric, true
	}
	if a.shared != nil && a.shared.iv.IsPoint() {
		return a.shared.iv.Lower, true
	}
	return numkit.ZeroR, false
}

// Polynomial returns the defining polynomial of a non-numeric RAN.
func (a RAN) Polynomial() (polykit.UPoly, bool) {
	if a.shared == nil || a.shared.iv.IsPoint() {
		return polykit.UPoly{}, false
	}
	return a.shared.poly, true
}

// Interval returns the current isolating interval of a non-numeric RAN.
func (a RAN) Interval() (interval.Interval, bool) {
	if a.shared == nil || a.shared.iv.IsPoint() {
		return interval.Interval{}, false
	}
	return a.shared.iv, true
}

// Refine is a no-op on numeric RANs. Otherwise it samples the current
// interval, evaluates the defining polynomial's sign there, and either
// collapses the shared state to that exact point or tightens whichever
// bound the cached lower sign indicates.
func (a RAN) Refine() {
	s := a.shared
	if s == nil || s.iv.IsPoint() {
		return
	}
	m := s.iv.Sample()
	sign := s.poly.EvalSign(m)
	log.Trace().Str("sample", m.String()).Str("interval", s.iv.String()).Msg("ran: refine")
	if sign == numkit.Zero {
		s.iv = interval.Point(m)
		return
	}
	if sign == s.lowerSign {
		s.iv.SetLower(m)
	} else {
		s.iv.SetUpper(m)
	}
}

// RefineUsing refines using caller-supplied pivot q, which must lie in the
// current interval. It returns the sign of (a's value - q): Zero if a
// collapsed to exactly q, Positive if q became the new lower bound (a > q),
// Negative if q became the new upper bound (a < q); ok is false if q lies
// outside a's current interval.
func (a RAN) RefineUsing(q numkit.Rational) (sign numkit.Sign, ok bool) {
	if val, isNum := a.Value(); isNum {
		return val.Sub(q).Sign(), true
	}
	s := a.shared
	if !s.iv.Contains(q) {
		return numkit.Zero, false
	}
	sgn := s.poly.EvalSign(q)
	if sgn == numkit.Zero {
		s.iv = interval.Point(q)
		return numkit.Zero, true
	}
	if sgn == s.lowerSign {
		s.iv.SetLower(q)
		return numkit.Positive, true
	}
	s.iv.SetUpper(q)
	return numkit.Negative, true
}

// Sgn returns the sign of q at a's value, q being univariate in the same
// variable as a's defining polynomial: if q equals the defining polynomial
// the answer is Zero by definition (a is one of its roots); otherwise it is
// the signed count of real roots of the generalized Sturm sequence
// (p, p'*q) inside a's current interval, which Sturm's theorem guarantees
// is in {-1,0,1}.
func (a RAN) Sgn(q polykit.UPoly) numkit.Sign {
	if val, ok := a.Value(); ok {
		return q.WithMainVar(mainVar).EvalSign(val)
	}
	s := a.shared
	q = q.WithMainVar(mainVar)
	if q.Equal(s.poly) {
		return numkit.Zero
	}
	seq := polykit.GeneralizedSturmSequence(s.poly, s.poly.Derivative().Mul(q))
	count := polykit.CountSignChanges(seq, s.iv)
	switch {
	case count > 0:
		return numkit.Positive
	case count < 0:
		return numkit.Negative
	default:
		return numkit.Zero
	}
}

// ContainedIn refines a's interval against both endpoints of J (when a is
// non-numeric) and reports whether the resulting interval lies within J.
func (a RAN) ContainedIn(j interval.Interval) bool {
	if val, ok := a.Value(); ok {
		return j.Contains(val)
	}
	if j.LowerType != interval.Infty {
		a.RefineUsing(j.Lower)
	}
	if j.UpperType != interval.Infty {
		a.RefineUsing(j.Upper)
	}
	iv, _ := a.Interval()
	return j.Contains(iv.Lower) && j.Contains(iv.Upper)
}

func (a RAN) IsZero() bool {
	v, ok := a.Value()
	return ok && v.IsZero()
}

func (a RAN) IsIntegral() bool {
	v, ok := a.Value()
	return ok && v.IsInteger()
}

func (a RAN) Abs() RAN {
	if v, ok := a.Value(); ok {
		return FromRational(v.Abs())
	}
	iv, _ := a.Interval()
	if iv.Lower.Sign() >= 0 {
		return a
	}
	p, _ := a.Polynomial()
	negP := p.NegateVariable()
	r, err := FromPolyInterval(negP, iv.Abs())
	if err != nil {
		panic("ran: Abs could not construct negated RAN: " + err.Error())
	}
	return r
}

// Floor and Ceil force enough refinement to pin down an integer bound:
// they return the integer floor/ceiling of the true value.
func (a RAN) Floor() numkit.Rational {
	if v, ok := a.Value(); ok {
		return v.Floor()
	}
	for a.shared.iv.ContainsInteger() {
		a.Refine()
		if a.IsNumeric() {
			v, _ := a.Value()
			return v.Floor()
		}
	}
	return a.shared.iv.Lower.Floor()
}

func (a RAN) Ceil() numkit.Rational {
	if v, ok := a.Value(); ok {
		return v.Ceil()
	}
	for a.shared.iv.ContainsInteger() {
		a.Refine()
		if a.IsNumeric() {
			v, _ := a.Value()
			return v.Ceil()
		}
	}
	return a.shared.iv.Upper.Ceil()
}

// SampleAbove returns an exact rational strictly above a's value.
func (a RAN) SampleAbove() numkit.Rational {
	if v, ok := a.Value(); ok {
		return v.Floor().Add(numkit.NewFromInt64(2))
	}
	return a.shared.iv.Upper.Floor().Add(numkit.OneR)
}

// SampleBelow returns an exact rational strictly below a's value.
func (a RAN) SampleBelow() numkit.Rational {
	if v, ok := a.Value(); ok {
		return v.Ceil().Sub(numkit.NewFromInt64(2))
	}
	return a.shared.iv.Lower.Ceil().Sub(numkit.OneR)
}

// SampleBetween refines a and b against each other until their intervals
// are disjoint, then returns a rational strictly between them.
func SampleBetween(a, b RAN) numkit.Rational {
	lo, hi := a, b
	if cmp, ok := compareByValue(a, b); ok && cmp > 0 {
		lo, hi = b, a
	}
	for {
		loHigh := upperOf(lo)
		hiLow := lowerOf(hi)
		if loHigh.Less(hiLow) {
			return numkit.Mid(loHigh, hiLow)
		}
		if !lo.IsNumeric() {
			lo.Refine()
		}
		if !hi.IsNumeric() {
			hi.Refine()
		}
		if lo.IsNumeric() && hi.IsNumeric() {
			lv, _ := lo.Value()
			hv, _ := hi.Value()
			if lv.Less(hv) {
				return numkit.Mid(lv, hv)
			}
			panic("ran: SampleBetween called with non-ordered or equal RANs")
		}
	}
}

func upperOf(a RAN) numkit.Rational {
	if v, ok := a.Value(); ok {
		return v
	}
	return a.shared.iv.Upper
}

func lowerOf(a RAN) numkit.Rational {
	if v, ok := a.Value(); ok {
		return v
	}
	return a.shared.iv.Lower
}

func compareByValue(a, b RAN) (int, bool) {
	av, aok := a.Value()
	bv, bok := b.Value()
	if aok && bok {
		return av.Cmp(bv), true
	}
	return 0, false
}

// BitSize approximates carl's size() heuristic: the bit length of the
// interval endpoints (and, for non-numeric RANs, the defining polynomial's
// degree). It is informational only: no algorithm in this module calls it.
func (a RAN) BitSize() int {
	if v, ok := a.Value(); ok {
		return v.BigRat().Num().BitLen() + v.BigRat().Denom().BitLen()
	}
	iv := a.shared.iv
	n := iv.Lower.BigRat().Num().BitLen() + iv.Lower.BigRat().Denom().BitLen()
	n += iv.Upper.BigRat().Num().BitLen() + iv.Upper.BigRat().Denom().BitLen()
	return n + a.shared.poly.Degree()
}

func (a RAN) String() string {
	if v, ok := a.Value(); ok {
		return v.String()
	}
	return fmt.Sprintf("(%s, %s)", a.shared.poly.String(), a.shared.iv.String())
}
