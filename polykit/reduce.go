package polykit

import "github.com/jonathanmweiss/ranalg/numkit"

// LeadingMonomial returns the leading term of p under order.
func (p MPoly) LeadingMonomial(order Order) (Term, bool) {
	return order.Leading(p)
}

func lcmExps(a, b map[string]int) map[string]int {
	out := make(map[string]int, len(a)+len(b))
	for v, e := range a {
		out[v] = e
	}
	for v, e := range b {
		if e > out[v] {
			out[v] = e
		}
	}
	return out
}

// SPolynomial computes the S-polynomial of a and b under order: the
// combination that cancels their leading terms against the lcm of their
// leading monomials. It is the generator Buchberger's algorithm reduces at
// every step (package groebner's Buchberger loop).
func (p MPoly) SPolynomial(other MPoly, order Order) MPoly {
	la, _ := order.Leading(p)
	lb, _ := order.Leading(other)
	lcmTerm := Term{Coeff: numkit.OneR, Exps: lcmExps(la.Exps, lb.Exps)}
	factorA := termDivide(lcmTerm, Term{Coeff: la.Coeff, Exps: la.Exps})
	factorB := termDivide(lcmTerm, Term{Coeff: lb.Coeff, Exps: lb.Exps})
	return termToPoly(factorA).Mul(p).Sub(termToPoly(factorB).Mul(other))
}

// Reduce computes the normal form of p with respect to basis under order:
// the multi-divisor generalization of DivideBySingle, reducing whichever
// basis element's leading term divides the current leading term at each
// step until nothing further reduces.
func (p MPoly) Reduce(basis []MPoly, order Order) MPoly {
	r := NewMPolyConstant(numkit.ZeroR)
	cur := p
	for !cur.IsZero() {
		lt, _ := order.Leading(cur)
		reduced := false
		for _, g := range basis {
			if g.IsZero() {
				continue
			}
			gl, _ := order.Leading(g)
			if expDivides(gl.Exps, lt.Exps) {
				factor := termDivide(lt, gl)
				cur = cur.Sub(termToPoly(factor).Mul(g))
				reduced = true
				break
			}
		}
		if !reduced {
			r = r.addTerm(lt)
			cur = cur.Sub(termToPoly(lt))
		}
	}
	return r
}
