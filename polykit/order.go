package polykit

import "github.com/jonathanmweiss/ranalg/numkit"

// Order fixes a lexicographic monomial order: the earlier a variable
// appears in Order, the more significant its exponent. It is the
// monomial order used by single-divisor polynomial reduction (this file)
// and by package groebner's Buchberger-algorithm normal forms.
type Order []string

func (o Order) exps(e map[string]int) []int {
	res := make([]int, len(o))
	for i, v := range o {
		res[i] = e[v]
	}
	return res
}

// Less reports whether monomial a is strictly smaller than b in this order.
func (o Order) Less(a, b map[string]int) bool {
	ea, eb := o.exps(a), o.exps(b)
	for i := range ea {
		if ea[i] != eb[i] {
			return ea[i] < eb[i]
		}
	}
	return false
}

// Leading returns the term of p with the greatest monomial under o.
func (o Order) Leading(p MPoly) (Term, bool) {
	terms := p.Terms()
	if len(terms) == 0 {
		return Term{}, false
	}
	best := terms[0]
	for _, t := range terms[1:] {
		if o.Less(best.Exps, t.Exps) {
			best = t
		}
	}
	return best, true
}

// DefaultOrder builds a lexicographic order over exactly the variables
// occurring in the given polynomials, alphabetically ranked.
func DefaultOrder(polys ...MPoly) Order {
	set := map[string]struct{}{}
	for _, p := range polys {
		for _, v := range p.Vars() {
			set[v] = struct{}{}
		}
	}
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	return Order(sortStrings(vars))
}

func expDivides(small, big map[string]int) bool {
	for v, e := range small {
		if big[v] < e {
			return false
		}
	}
	return true
}

func termDivide(a, b Term) Term {
	exps := make(map[string]int, len(a.Exps))
	for v, e := range a.Exps {
		rem := e - b.Exps[v]
		if rem != 0 {
			exps[v] = rem
		}
	}
	return Term{Coeff: a.Coeff.Quo(b.Coeff), Exps: exps}
}

func termToPoly(t Term) MPoly {
	return MPoly{terms: map[string]Term{t.key(): t}}
}

// DivideBySingle divides p by the non-zero divisor d using leading-term
// reduction under order ord: p = q*d + r, where no term of r is divisible
// by LT(d). This is the single-divisor special case of multivariate
// polynomial division (general Gröbner reduction lives in package
// groebner); it always terminates because ord well-orders the monomials
// appearing across the reduction.
func DivideBySingle(p, d MPoly, ord Order) (q, r MPoly) {
	if d.IsZero() {
		panic("polykit: division by the zero polynomial")
	}
	dLead, _ := ord.Leading(d)
	q = NewMPolyConstant(numkit.ZeroR)
	r = NewMPolyConstant(numkit.ZeroR)
	cur := p
	for !cur.IsZero() {
		lt, _ := ord.Leading(cur)
		if expDivides(dLead.Exps, lt.Exps) {
			factor := termDivide(lt, dLead)
			q = q.addTerm(factor)
			cur = cur.Sub(termToPoly(factor).Mul(d))
		} else {
			r = r.addTerm(lt)
			cur = cur.Sub(termToPoly(lt))
		}
	}
	return q, r
}
