package polykit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
)

// Term is one monomial-coefficient pair of an MPoly, exposed for callers
// (e.g. package groebner) that need to inspect the canonical form without
// re-deriving it.
type Term struct {
	Coeff numkit.Rational
	Exps  map[string]int // variable -> exponent, zero-exponent entries never stored
}

func (t Term) key() string {
	if len(t.Exps) == 0 {
		return ""
	}
	vars := make([]string, 0, len(t.Exps))
	for v := range t.Exps {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(v)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(t.Exps[v]))
		b.WriteByte(',')
	}
	return b.String()
}

func (t Term) totalDegree() int {
	d := 0
	for _, e := range t.Exps {
		d += e
	}
	return d
}

func cloneExps(e map[string]int) map[string]int {
	out := make(map[string]int, len(e))
	for k, v := range e {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// MPoly is a multivariate polynomial with rational coefficients, in
// canonical form: zero-coefficient terms are pruned.
type MPoly struct {
	terms map[string]Term
}

// NewMPolyConstant returns the constant polynomial c.
func NewMPolyConstant(c numkit.Rational) MPoly {
	if c.IsZero() {
		return MPoly{terms: map[string]Term{}}
	}
	return MPoly{terms: map[string]Term{"": {Coeff: c, Exps: map[string]int{}}}}
}

// NewMPolyVar returns the polynomial v^1.
func NewMPolyVar(v string) MPoly {
	t := Term{Coeff: numkit.OneR, Exps: map[string]int{v: 1}}
	return MPoly{terms: map[string]Term{t.key(): t}}
}

// NewMPolyMonomial returns the single-term polynomial coeff * prod(x^e).
func NewMPolyMonomial(coeff numkit.Rational, exps map[string]int) MPoly {
	return termToPoly(Term{Coeff: coeff, Exps: cloneExps(exps)})
}

// NewMPolyFromUPoly lifts a univariate polynomial into MPoly form.
func NewMPolyFromUPoly(p UPoly) MPoly {
	res := NewMPolyConstant(numkit.ZeroR)
	for i, c := range p.Coeffs() {
		if c.IsZero() {
			continue
		}
		t := Term{Coeff: c, Exps: map[string]int{}}
		if i > 0 {
			t.Exps[p.MainVar()] = i
		}
		res = res.addTerm(t)
	}
	return res
}

func (p MPoly) addTerm(t Term) MPoly {
	if t.Coeff.IsZero() {
		return p
	}
	out := p.cloneTerms()
	k := t.key()
	if existing, ok := out[k]; ok {
		c := existing.Coeff.Add(t.Coeff)
		if c.IsZero() {
			delete(out, k)
		} else {
			out[k] = Term{Coeff: c, Exps: existing.Exps}
		}
	} else {
		out[k] = t
	}
	return MPoly{terms: out}
}

func (p MPoly) cloneTerms() map[string]Term {
	out := make(map[string]Term, len(p.terms))
	for k, t := range p.terms {
		out[k] = t
	}
	return out
}

// Terms returns a defensive copy of every (coefficient, exponent-map) pair.
func (p MPoly) Terms() []Term {
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, Term{Coeff: t.Coeff, Exps: cloneExps(t.Exps)})
	}
	return out
}

// Vars returns the sorted list of variables occurring in p.
func (p MPoly) Vars() []string {
	set := map[string]struct{}{}
	for _, t := range p.terms {
		for v := range t.Exps {
			set[v] = struct{}{}
		}
	}
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

func (p MPoly) IsZero() bool { return len(p.terms) == 0 }

// IsConstant reports whether p has no variables, returning its value.
func (p MPoly) IsConstant() (numkit.Rational, bool) {
	if p.IsZero() {
		return numkit.ZeroR, true
	}
	if len(p.terms) == 1 {
		if t, ok := p.terms[""]; ok {
			return t.Coeff, true
		}
	}
	return numkit.ZeroR, false
}

func (p MPoly) Add(q MPoly) MPoly {
	res := p
	for _, t := range q.Terms() {
		res = res.addTerm(t)
	}
	return res
}

func (p MPoly) Neg() MPoly {
	out := make(map[string]Term, len(p.terms))
	for k, t := range p.terms {
		out[k] = Term{Coeff: t.Coeff.Neg(), Exps: t.Exps}
	}
	return MPoly{terms: out}
}

func (p MPoly) Sub(q MPoly) MPoly { return p.Add(q.Neg()) }

func (p MPoly) Scale(c numkit.Rational) MPoly {
	if c.IsZero() {
		return NewMPolyConstant(numkit.ZeroR)
	}
	out := make(map[string]Term, len(p.terms))
	for k, t := range p.terms {
		out[k] = Term{Coeff: t.Coeff.Mul(c), Exps: t.Exps}
	}
	return MPoly{terms: out}
}

func mulExps(a, b map[string]int) map[string]int {
	out := make(map[string]int, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}

func (p MPoly) Mul(q MPoly) MPoly {
	res := NewMPolyConstant(numkit.ZeroR)
	for _, ta := range p.Terms() {
		for _, tb := range q.Terms() {
			t := Term{Coeff: ta.Coeff.Mul(tb.Coeff), Exps: mulExps(ta.Exps, tb.Exps)}
			res = res.addTerm(t)
		}
	}
	return res
}

// SubstituteNumeric replaces every occurrence of v by val.
func (p MPoly) SubstituteNumeric(v string, val numkit.Rational) MPoly {
	res := NewMPolyConstant(numkit.ZeroR)
	for _, t := range p.Terms() {
		e, ok := t.Exps[v]
		c := t.Coeff
		if ok {
			c = c.Mul(pow(val, e))
			delete(t.Exps, v)
		}
		res = res.addTerm(Term{Coeff: c, Exps: t.Exps})
	}
	return res
}

// Eval fully evaluates p; every variable of p must be present in m.
func (p MPoly) Eval(m map[string]numkit.Rational) (numkit.Rational, bool) {
	res := numkit.ZeroR
	for _, t := range p.Terms() {
		c := t.Coeff
		for v, e := range t.Exps {
			val, ok := m[v]
			if !ok {
				return numkit.ZeroR, false
			}
			c = c.Mul(pow(val, e))
		}
		res = res.Add(c)
	}
	return res, true
}

// EvalIntervalPartial bounds p under the interval assignment m, which must
// cover every variable of p; if any variable of p is missing from m it
// returns false, since the result would not be an interval.
func (p MPoly) EvalIntervalPartial(m map[string]interval.Interval) (interval.Interval, bool) {
	acc := interval.Point(numkit.ZeroR)
	for _, t := range p.Terms() {
		term := interval.Point(t.Coeff)
		for v, e := range t.Exps {
			iv, ok := m[v]
			if !ok {
				return interval.Interval{}, false
			}
			for i := 0; i < e; i++ {
				term = IntervalMul(term, iv)
			}
		}
		acc = ivAdd(acc, term)
	}
	return acc, true
}

func ivAdd(a, b interval.Interval) interval.Interval {
	lo, loT := addBound(a.Lower, a.LowerType, b.Lower, b.LowerType)
	hi, hiT := addBound(a.Upper, a.UpperType, b.Upper, b.UpperType)
	return interval.Interval{Lower: lo, Upper: hi, LowerType: loT, UpperType: hiT}
}

func addBound(a numkit.Rational, at interval.BoundType, b numkit.Rational, bt interval.BoundType) (numkit.Rational, interval.BoundType) {
	if at == interval.Infty || bt == interval.Infty {
		return numkit.ZeroR, interval.Infty
	}
	res := a.Add(b)
	t := interval.Weak
	if at == interval.Strict || bt == interval.Strict {
		t = interval.Strict
	}
	return res, t
}

// Degree returns the maximal exponent of v across all terms.
func (p MPoly) Degree(v string) int {
	d := 0
	for _, t := range p.terms {
		if e := t.Exps[v]; e > d {
			d = e
		}
	}
	return d
}

// TotalDegree returns the maximal total degree across all terms.
func (p MPoly) TotalDegree() int {
	d := 0
	for _, t := range p.terms {
		if td := t.totalDegree(); td > d {
			d = td
		}
	}
	return d
}

// Derivative returns dp/dv.
func (p MPoly) Derivative(v string) MPoly {
	res := NewMPolyConstant(numkit.ZeroR)
	for _, t := range p.Terms() {
		e, ok := t.Exps[v]
		if !ok || e == 0 {
			continue
		}
		newExps := cloneExps(t.Exps)
		if e == 1 {
			delete(newExps, v)
		} else {
			newExps[v] = e - 1
		}
		res = res.addTerm(Term{Coeff: t.Coeff.Mul(numkit.NewFromInt64(int64(e))), Exps: newExps})
	}
	return res
}

// AsUnivariate groups p's terms by the exponent of mainVar, returning a
// UPolyM whose coefficients are MPoly in the remaining variables.
func (p MPoly) AsUnivariate(mainVar string) UPolyM {
	byDeg := map[int]MPoly{}
	maxDeg := 0
	for _, t := range p.Terms() {
		e := t.Exps[mainVar]
		if e > maxDeg {
			maxDeg = e
		}
		rest := cloneExps(t.Exps)
		delete(rest, mainVar)
		byDeg[e] = byDeg[e].addTerm(Term{Coeff: t.Coeff, Exps: rest})
	}
	coeffs := make([]MPoly, maxDeg+1)
	for i := range coeffs {
		coeffs[i] = byDeg[i]
		if coeffs[i].terms == nil {
			coeffs[i] = NewMPolyConstant(numkit.ZeroR)
		}
	}
	return NewUPolyM(mainVar, coeffs)
}

// Equal reports whether p and q denote the same canonical polynomial.
func (p MPoly) Equal(q MPoly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for k, t := range p.terms {
		o, ok := q.terms[k]
		if !ok || !t.Coeff.Equal(o.Coeff) {
			return false
		}
	}
	return true
}

func (p MPoly) String() string {
	if p.IsZero() {
		return "0"
	}
	terms := p.Terms()
	sort.Slice(terms, func(i, j int) bool { return terms[i].key() < terms[j].key() })
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if len(t.Exps) == 0 {
			b.WriteString(t.Coeff.String())
			continue
		}
		if !t.Coeff.Equal(numkit.OneR) {
			b.WriteString(t.Coeff.String())
			b.WriteString("*")
		}
		vars := make([]string, 0, len(t.Exps))
		for v := range t.Exps {
			vars = append(vars, v)
		}
		sort.Strings(vars)
		for j, v := range vars {
			if j > 0 {
				b.WriteString("*")
			}
			if t.Exps[v] == 1 {
				b.WriteString(v)
			} else {
				fmt.Fprintf(&b, "%s^%d", v, t.Exps[v])
			}
		}
	}
	return b.String()
}
