// Package polykit provides the univariate and multivariate rational
// polynomial containers that the rest of this module builds on: degree,
// leading coefficient, coprime content, pseudo-remainder, resultant, gcd,
// square-free part, derivative, substitution, evaluation, interval
// evaluation, root bounds, sturm sequences and real-root counting.
package polykit

import (
	"strconv"
	"strings"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
)

// UPoly is a univariate polynomial with rational coefficients, stored
// low-to-high degree. The zero polynomial is represented by an empty
// coefficient slice.
type UPoly struct {
	mainVar string
	coeffs  []numkit.Rational // coeffs[i] is the coefficient of mainVar^i
}

// NewUPoly builds a polynomial from low-to-high degree coefficients,
// trimming trailing (high-degree) zero coefficients.
func NewUPoly(mainVar string, coeffs []numkit.Rational) UPoly {
	p := UPoly{mainVar: mainVar, coeffs: append([]numkit.Rational(nil), coeffs...)}
	p.trim()
	return p
}

// ZeroUPoly returns the zero polynomial in mainVar.
func ZeroUPoly(mainVar string) UPoly {
	return UPoly{mainVar: mainVar}
}

// ConstUPoly returns the constant polynomial c in mainVar.
func ConstUPoly(mainVar string, c numkit.Rational) UPoly {
	if c.IsZero() {
		return ZeroUPoly(mainVar)
	}
	return UPoly{mainVar: mainVar, coeffs: []numkit.Rational{c}}
}

func (p *UPoly) trim() {
	n := len(p.coeffs)
	for n > 0 && p.coeffs[n-1].IsZero() {
		n--
	}
	p.coeffs = p.coeffs[:n]
}

func (p UPoly) MainVar() string { return p.mainVar }

// WithMainVar returns a copy of p with its main variable renamed.
func (p UPoly) WithMainVar(v string) UPoly {
	return UPoly{mainVar: v, coeffs: append([]numkit.Rational(nil), p.coeffs...)}
}

// Degree returns -1 for the zero polynomial.
func (p UPoly) Degree() int { return len(p.coeffs) - 1 }

func (p UPoly) IsZero() bool { return len(p.coeffs) == 0 }

func (p UPoly) IsConstant() bool { return len(p.coeffs) <= 1 }

// LeadCoeff returns the leading coefficient, or zero for the zero polynomial.
func (p UPoly) LeadCoeff() numkit.Rational {
	if p.IsZero() {
		return numkit.ZeroR
	}
	return p.coeffs[len(p.coeffs)-1]
}

// Coeff returns the coefficient of mainVar^i (zero if out of range).
func (p UPoly) Coeff(i int) numkit.Rational {
	if i < 0 || i >= len(p.coeffs) {
		return numkit.ZeroR
	}
	return p.coeffs[i]
}

// Coeffs returns a copy of the low-to-high coefficient slice.
func (p UPoly) Coeffs() []numkit.Rational {
	return append([]numkit.Rational(nil), p.coeffs...)
}

func (p UPoly) Copy() UPoly { return NewUPoly(p.mainVar, p.coeffs) }

func (p UPoly) Add(q UPoly) UPoly {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]numkit.Rational, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	return NewUPoly(p.mainVarOr(q), out)
}

func (p UPoly) mainVarOr(q UPoly) string {
	if p.mainVar != "" {
		return p.mainVar
	}
	return q.mainVar
}

func (p UPoly) Sub(q UPoly) UPoly {
	return p.Add(q.Neg())
}

func (p UPoly) Neg() UPoly {
	out := make([]numkit.Rational, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Neg()
	}
	return NewUPoly(p.mainVar, out)
}

func (p UPoly) Scale(c numkit.Rational) UPoly {
	if c.IsZero() {
		return ZeroUPoly(p.mainVar)
	}
	out := make([]numkit.Rational, len(p.coeffs))
	for i, v := range p.coeffs {
		out[i] = v.Mul(c)
	}
	return NewUPoly(p.mainVar, out)
}

func (p UPoly) Mul(q UPoly) UPoly {
	if p.IsZero() || q.IsZero() {
		return ZeroUPoly(p.mainVarOr(q))
	}
	out := make([]numkit.Rational, len(p.coeffs)+len(q.coeffs)-1)
	for i := range out {
		out[i] = numkit.ZeroR
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return NewUPoly(p.mainVarOr(q), out)
}

// Eval evaluates p(x) via Horner's rule.
func (p UPoly) Eval(x numkit.Rational) numkit.Rational {
	res := numkit.ZeroR
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		res = res.Mul(x).Add(p.coeffs[i])
	}
	return res
}

// EvalSign returns the sign of p(x).
func (p UPoly) EvalSign(x numkit.Rational) numkit.Sign {
	return p.Eval(x).Sign()
}

// EvalInterval bounds p(I) via interval (Horner) arithmetic.
func (p UPoly) EvalInterval(iv interval.Interval) interval.Interval {
	if p.IsZero() {
		return interval.Point(numkit.ZeroR)
	}
	res := interval.Point(p.coeffs[len(p.coeffs)-1])
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		res = ivMulScalarAware(res, iv)
		res = ivAddConst(res, p.coeffs[i])
	}
	return res
}

func ivAddConst(iv interval.Interval, c numkit.Rational) interval.Interval {
	lo, hi := iv.Lower, iv.Upper
	if iv.LowerType != interval.Infty {
		lo = lo.Add(c)
	}
	if iv.UpperType != interval.Infty {
		hi = hi.Add(c)
	}
	return interval.Interval{Lower: lo, Upper: hi, LowerType: iv.LowerType, UpperType: iv.UpperType}
}

// ivMulScalarAware multiplies interval res by interval x (general interval
// multiplication, needed because Horner's rule multiplies the running
// result by the sample interval at every step).
func ivMulScalarAware(res, x interval.Interval) interval.Interval {
	return IntervalMul(res, x)
}

// IntervalMul computes the product interval of a and b using the four
// corner products, handling unbounded endpoints conservatively.
func IntervalMul(a, b interval.Interval) interval.Interval {
	if a.IsPoint() && b.IsPoint() {
		return interval.Point(a.Lower.Mul(b.Lower))
	}
	type corner struct {
		v numkit.Rational
		t interval.BoundType
		ok bool
	}
	corners := func(iv interval.Interval) []corner {
		var cs []corner
		if iv.LowerType != interval.Infty {
			cs = append(cs, corner{iv.Lower, iv.LowerType, true})
		} else {
			cs = append(cs, corner{numkit.ZeroR, interval.Infty, false})
		}
		if iv.UpperType != interval.Infty {
			cs = append(cs, corner{iv.Upper, iv.UpperType, true})
		} else {
			cs = append(cs, corner{numkit.ZeroR, interval.Infty, false})
		}
		return cs
	}
	as, bs := corners(a), corners(b)

	var lo, hi numkit.Rational
	loType, hiType := interval.Weak, interval.Weak
	first := true
	for _, ca := range as {
		for _, cb := range bs {
			var val numkit.Rational
			var bt interval.BoundType
			var unbounded bool
			if !ca.ok || !cb.ok {
				unbounded = true
			} else {
				val = ca.v.Mul(cb.v)
				bt = interval.Weak
				if ca.t == interval.Strict || cb.t == interval.Strict {
					bt = interval.Strict
				}
			}
			if unbounded {
				// Any product touching an infinite endpoint extends the
				// result to +/-infinity on that side, unless the finite
				// factor is exactly zero (handled conservatively here by
				// widening, which keeps evaluation sound for the root
				// isolation/refinement use sites that call this code).
				loType, hiType = interval.Infty, interval.Infty
				continue
			}
			if first {
				lo, hi = val, val
				loType, hiType = bt, bt
				first = false
				continue
			}
			if loType != interval.Infty {
				if val.Less(lo) || (val.Equal(lo) && bt == interval.Strict) {
					lo, loType = val, bt
				} else if val.Equal(lo) {
					// keep
				}
			}
			if hiType != interval.Infty {
				if hi.Less(val) || (val.Equal(hi) && bt == interval.Strict) {
					hi, hiType = val, bt
				}
			}
		}
	}
	return interval.Interval{Lower: lo, Upper: hi, LowerType: loType, UpperType: hiType}
}

// Derivative returns p'.
func (p UPoly) Derivative() UPoly {
	if len(p.coeffs) <= 1 {
		return ZeroUPoly(p.mainVar)
	}
	out := make([]numkit.Rational, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = p.coeffs[i].Mul(numkit.NewFromInt64(int64(i)))
	}
	return NewUPoly(p.mainVar, out)
}

// DivMod performs exact polynomial long division over the rationals:
// p = q*v + r with deg(r) < deg(v). v must be non-zero.
func (p UPoly) DivMod(v UPoly) (q, r UPoly) {
	if v.IsZero() {
		panic("polykit: division by the zero polynomial")
	}
	r = p.Copy()
	qc := make([]numkit.Rational, max(0, p.Degree()-v.Degree()+1))
	vLead := v.LeadCoeff()
	for !r.IsZero() && r.Degree() >= v.Degree() {
		shift := r.Degree() - v.Degree()
		coef := r.LeadCoeff().Quo(vLead)
		qc[shift] = coef
		r = r.Sub(v.shiftScale(shift, coef))
	}
	return NewUPoly(p.mainVar, qc), r
}

// shiftScale returns coef * x^shift * p.
func (p UPoly) shiftScale(shift int, coef numkit.Rational) UPoly {
	out := make([]numkit.Rational, len(p.coeffs)+shift)
	for i, c := range p.coeffs {
		out[i+shift] = c.Mul(coef)
	}
	return NewUPoly(p.mainVar, out)
}

// Content returns a positive rational g such that p = g * PrimitivePart(p)
// with the primitive part's coefficients sharing gcd 1 among their
// cleared-denominator numerators. Returns 1 for the zero polynomial.
func (p UPoly) Content() numkit.Rational {
	if p.IsZero() {
		return numkit.OneR
	}
	num, den := clearDenominators(p.coeffs)
	g := num[0]
	for _, n := range num[1:] {
		if g.IsZero() {
			g = n
			continue
		}
		if n.IsZero() {
			continue
		}
		g = numkit.GCD(g, n)
	}
	if g.IsZero() {
		g = numkit.OneR
	}
	return g.Quo(den)
}

// clearDenominators returns integer-valued rationals num[i] and a single
// positive rational den (the LCM of denominators) such that
// coeffs[i] == num[i]/den.
func clearDenominators(coeffs []numkit.Rational) (num []numkit.Rational, den numkit.Rational) {
	den = numkit.OneR
	for _, c := range coeffs {
		d := numkit.NewFromBigInt(c.BigRat().Denom())
		den = lcm(den, d)
	}
	num = make([]numkit.Rational, len(coeffs))
	for i, c := range coeffs {
		num[i] = c.Mul(den)
	}
	return num, den
}

func lcm(a, b numkit.Rational) numkit.Rational {
	g := numkit.GCD(a, b)
	return a.Quo(g).Mul(b)
}

// PrimitivePart returns p / Content(p).
func (p UPoly) PrimitivePart() UPoly {
	if p.IsZero() {
		return p
	}
	return p.Scale(numkit.OneR.Quo(p.Content()))
}

// PseudoDivMod computes the pseudo-remainder of p by v: finds the least
// power e = max(0, deg(p)-deg(v)+1) such that
// lc(v)^e * p = q*v + r with deg(r) < deg(v), avoiding fractions when the
// coefficients are integers. Over the rationals this coincides with
// DivMod up to the recorded scale factor, which is returned for callers
// that track it (e.g. a future integer-coefficient backend).
func (p UPoly) PseudoDivMod(v UPoly) (q, r UPoly, scale numkit.Rational) {
	if v.IsZero() {
		panic("polykit: pseudo division by the zero polynomial")
	}
	e := p.Degree() - v.Degree() + 1
	if e < 0 {
		e = 0
	}
	scale = pow(v.LeadCoeff(), e)
	scaled := p.Scale(scale)
	q, r = scaled.DivMod(v)
	return q, r, scale
}

func pow(b numkit.Rational, e int) numkit.Rational {
	res := numkit.OneR
	for i := 0; i < e; i++ {
		res = res.Mul(b)
	}
	return res
}

// GCD returns the monic gcd(p, q) via the Euclidean algorithm.
func GCD(p, q UPoly) UPoly {
	a, b := p.Copy(), q.Copy()
	for !b.IsZero() {
		_, r := a.DivMod(b)
		a, b = b, r
	}
	if a.IsZero() {
		return a
	}
	return a.Scale(numkit.OneR.Quo(a.LeadCoeff()))
}

// SquareFreePart returns p / gcd(p, p'), monic, for non-zero p.
func (p UPoly) SquareFreePart() UPoly {
	if p.IsZero() {
		return p
	}
	if p.Degree() == 0 {
		return ConstUPoly(p.mainVar, numkit.OneR)
	}
	g := GCD(p, p.Derivative())
	if g.IsConstant() {
		return p.Scale(numkit.OneR.Quo(p.LeadCoeff()))
	}
	sf, _ := p.DivMod(g)
	return sf.Scale(numkit.OneR.Quo(sf.LeadCoeff()))
}

func (p UPoly) Equal(q UPoly) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// CauchyBound returns an upper bound on the absolute value of every real
// root of p (Cauchy's bound): 1 + max_i |a_i / a_n|.
func (p UPoly) CauchyBound() numkit.Rational {
	if p.IsZero() || p.IsConstant() {
		return numkit.ZeroR
	}
	lead := p.LeadCoeff()
	bound := numkit.ZeroR
	for i := 0; i < p.Degree(); i++ {
		ratio := p.coeffs[i].Abs().Quo(lead.Abs())
		if bound.Less(ratio) {
			bound = ratio
		}
	}
	return bound.Add(numkit.OneR)
}

// LagrangePositiveBound returns Lagrange's bound L+ such that p has no
// positive real root greater than L+ (0 when no coefficient below the
// leading one has the opposite sign, so that p has no positive real root).
func (p UPoly) LagrangePositiveBound() numkit.Rational {
	return lagrangeBound(p)
}

// LagrangeNegativeBound returns Lagrange's bound L- (as a non-positive
// rational) such that p has no real root less than L-.
func (p UPoly) LagrangeNegativeBound() numkit.Rational {
	flipped := p.substituteNegatedVar()
	return lagrangeBound(flipped).Neg()
}

// NegateVariable returns p(-x): substituting the negation of the main
// variable, used by root-bound computation and by the RAN engine's Abs on
// negative-interval RANs.
func (p UPoly) NegateVariable() UPoly {
	return p.substituteNegatedVar()
}

func (p UPoly) substituteNegatedVar() UPoly {
	out := make([]numkit.Rational, len(p.coeffs))
	for i, c := range p.coeffs {
		if i%2 == 1 {
			out[i] = c.Neg()
		} else {
			out[i] = c
		}
	}
	return NewUPoly(p.mainVar, out)
}

// lagrangeBound implements the classical Lagrange bound for positive real
// roots: if a_n > 0 and a_k is the largest-index negative coefficient,
// bound = 1 + (max sum over negative coeffs / a_n)^(1/(n-k)); we use the
// simpler, slightly weaker classical variant
// bound = max(1, sum of |negative coeffs| / a_n) which is monotone-valid
// and cheap to compute exactly in rationals (no root extraction needed).
func lagrangeBound(p UPoly) numkit.Rational {
	if p.IsZero() || p.IsConstant() {
		return numkit.ZeroR
	}
	lead := p.LeadCoeff()
	sign := lead.Sign()
	negSum := numkit.ZeroR
	for i := 0; i < p.Degree(); i++ {
		c := p.coeffs[i]
		if sign == numkit.Positive && c.Sign() == numkit.Negative {
			negSum = negSum.Add(c.Neg())
		} else if sign == numkit.Negative && c.Sign() == numkit.Positive {
			negSum = negSum.Add(c)
		}
	}
	if negSum.IsZero() {
		return numkit.ZeroR
	}
	bound := numkit.OneR
	ratio := negSum.Quo(lead.Abs())
	if bound.Less(ratio) {
		bound = ratio
	}
	return bound
}

// SturmSequence returns the canonical Sturm sequence of a square-free
// polynomial p: s0 = p, s1 = p', and s_{i+1} = -rem(s_{i-1}, s_i), stopping
// once a remainder of degree -1 (zero) or degree 0 (non-zero constant) is
// reached. Grounded on the Sturm sequence carl builds internally whenever it
// needs sig(p) across an interval (ran_interval.h's sgn()/real root
// isolation).
func (p UPoly) SturmSequence() []UPoly {
	if p.IsZero() {
		return nil
	}
	seq := []UPoly{p.Copy(), p.Derivative()}
	for {
		last := seq[len(seq)-1]
		if last.IsZero() || last.IsConstant() {
			break
		}
		prev := seq[len(seq)-2]
		_, r := prev.DivMod(last)
		seq = append(seq, r.Neg())
	}
	return seq
}

// GeneralizedSturmSequence builds s0 = p0, s1 = p1, s_{i+1} = -rem(s_{i-1},
// s_i), the generalized Sturm sequence Sturm's theorem (in the form carl
// uses for sgn(q) against a RAN, ran_interval.h's sgn()) needs to count sign
// variations of an arbitrary p1, not only p0's own derivative.
func GeneralizedSturmSequence(p0, p1 UPoly) []UPoly {
	if p0.IsZero() {
		return nil
	}
	seq := []UPoly{p0.Copy()}
	if p1.IsZero() {
		return seq
	}
	seq = append(seq, p1.Copy())
	for {
		last := seq[len(seq)-1]
		if last.IsZero() || last.IsConstant() {
			break
		}
		prev := seq[len(seq)-2]
		_, r := prev.DivMod(last)
		seq = append(seq, r.Neg())
	}
	return seq
}

// CountSignChanges returns the number of sign variations lost in seq moving
// from the lower endpoint of iv to its upper endpoint (Sturm's theorem and
// its generalization to sgn(q) counting / Tarski queries on the whole real
// line). iv's endpoints may be Infty. Zeros are skipped when counting
// variations, so the raw difference covers (lower, upper]; where the first
// sequence member vanishes at a finite endpoint, a Weak lower endpoint adds
// one root and a Strict upper endpoint removes one, as in CountRealRoots.
func CountSignChanges(seq []UPoly, iv interval.Interval) int {
	if len(seq) == 0 {
		return 0
	}
	var lo, hi int
	if iv.LowerType == interval.Infty {
		lo = sturmVariations(signAtNegInf(seq))
	} else {
		lo = sturmVariations(signAt(seq, iv.Lower))
	}
	if iv.UpperType == interval.Infty {
		hi = sturmVariations(signAtPosInf(seq))
	} else {
		hi = sturmVariations(signAt(seq, iv.Upper))
	}
	count := lo - hi
	if iv.LowerType == interval.Weak && seq[0].EvalSign(iv.Lower) == numkit.Zero {
		count++
	}
	if iv.UpperType == interval.Strict && seq[0].EvalSign(iv.Upper) == numkit.Zero {
		count--
	}
	return count
}

func signAt(seq []UPoly, x numkit.Rational) []numkit.Sign {
	out := make([]numkit.Sign, len(seq))
	for i, s := range seq {
		out[i] = s.EvalSign(x)
	}
	return out
}

func sturmVariations(signs []numkit.Sign) int {
	count := 0
	prev := numkit.Zero
	started := false
	for _, s := range signs {
		if s == numkit.Zero {
			continue
		}
		if started && s != prev {
			count++
		}
		prev = s
		started = true
	}
	return count
}

// CountRealRoots counts the real roots of a square-free p strictly inside
// iv (counted without multiplicity, since p is assumed square-free),
// including a boundary root only when that boundary is a closed
// (non-strict, non-infinite) endpoint equal to a root. Implements Sturm's
// theorem: the count equals the number of sign variations in the Sturm
// sequence lost moving from the lower bound to the upper bound.
func (p UPoly) CountRealRoots(iv interval.Interval) int {
	if p.IsZero() || p.IsConstant() {
		return 0
	}
	return CountSignChanges(p.SturmSequence(), iv)
}

// signAtNegInf / signAtPosInf return the eventual sign of each Sturm
// sequence member as x -> -infinity / +infinity, determined by the sign of
// its leading coefficient and (for -infinity) the parity of its degree.
func signAtPosInf(seq []UPoly) []numkit.Sign {
	out := make([]numkit.Sign, len(seq))
	for i, s := range seq {
		if s.IsZero() {
			out[i] = numkit.Zero
			continue
		}
		out[i] = s.LeadCoeff().Sign()
	}
	return out
}

func signAtNegInf(seq []UPoly) []numkit.Sign {
	out := make([]numkit.Sign, len(seq))
	for i, s := range seq {
		if s.IsZero() {
			out[i] = numkit.Zero
			continue
		}
		sign := s.LeadCoeff().Sign()
		if s.Degree()%2 == 1 {
			sign = sign.Negate()
		}
		out[i] = sign
	}
	return out
}

func (p UPoly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.IsZero() {
			continue
		}
		if !first {
			if c.Sign() == numkit.Negative {
				b.WriteString(" - ")
			} else {
				b.WriteString(" + ")
			}
		} else if c.Sign() == numkit.Negative {
			b.WriteString("-")
		}
		abs := c.Abs()
		switch i {
		case 0:
			b.WriteString(abs.String())
		case 1:
			if !abs.Equal(numkit.OneR) {
				b.WriteString(abs.String())
			}
			b.WriteString(p.mainVar)
		default:
			if !abs.Equal(numkit.OneR) {
				b.WriteString(abs.String())
			}
			b.WriteString(p.mainVar)
			b.WriteString("^")
			b.WriteString(strconv.Itoa(i))
		}
		first = false
	}
	if first {
		return "0"
	}
	return b.String()
}
