// Package groebner implements Buchberger's algorithm and the monomial-basis
// / multiplication-table machinery the multivariate Tarski-query manager
// (package tarski) needs, grounded on carl's gb-buchberger/Buchberger.h and
// thom/TarskiQuery/MultiplicationTable.h. The basis this package computes
// is a plain (non-reduced, non-minimal) Gröbner basis: sufficient for
// correct normal forms, which is all TaQ needs - see DESIGN.md for why the
// reduced/minimal-basis bookkeeping of the original was dropped.
package groebner

import (
	"errors"

	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

// ErrNotZeroDimensional is returned when a basis's variety is not a finite
// set of points, so no finite monomial basis of the quotient ring exists.
var ErrNotZeroDimensional = errors.New("groebner: ideal is not zero-dimensional")

// Basis is a (not necessarily reduced) Gröbner basis under a fixed order.
type Basis struct {
	Gens  []polykit.MPoly
	Order polykit.Order
}

// Buchberger computes a Gröbner basis of the ideal generated by gens under
// order via the textbook S-polynomial / reduce-to-zero loop (a
// deliberately simplified stand-in for the Gebauer-Moeller-optimized
// criteria carl's Buchberger.h implements).
func Buchberger(gens []polykit.MPoly, order polykit.Order) Basis {
	var g []polykit.MPoly
	for _, p := range gens {
		if !p.IsZero() {
			g = append(g, p)
		}
	}
	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < len(g); i++ {
		for j := i + 1; j < len(g); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}
	for len(pairs) > 0 {
		pr := pairs[0]
		pairs = pairs[1:]
		s := g[pr.i].SPolynomial(g[pr.j], order)
		r := s.Reduce(g, order)
		if !r.IsZero() {
			newIdx := len(g)
			g = append(g, r)
			for k := 0; k < newIdx; k++ {
				pairs = append(pairs, pair{k, newIdx})
			}
		}
	}
	return Basis{Gens: g, Order: order}
}

// IsTrivial reports whether the basis generates the whole ring (a nonzero
// constant reduces to itself among the generators), matching carl's
// GroebnerBase::isTrivialBase().
func (b Basis) IsTrivial() bool {
	for _, g := range b.Gens {
		if c, ok := g.IsConstant(); ok && !c.IsZero() {
			return true
		}
	}
	return false
}

func monomialDivides(small, big map[string]int) bool {
	for v, e := range small {
		if big[v] < e {
			return false
		}
	}
	return true
}

func cloneMonomial(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for v, e := range m {
		if e != 0 {
			out[v] = e
		}
	}
	return out
}

func monomialEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for v, e := range a {
		if b[v] != e {
			return false
		}
	}
	return true
}

// vars returns the sorted union of variables across the basis generators.
func (b Basis) vars() []string {
	set := map[string]struct{}{}
	for _, g := range b.Gens {
		for _, v := range g.Vars() {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// MonomialBasis enumerates the standard monomials of the quotient ring:
// those not divisible by any leading monomial of the basis. It requires
// the ideal to be zero-dimensional, witnessed by every variable having some
// generator whose leading monomial is a pure power of it.
func (b Basis) MonomialBasis() ([]map[string]int, error) {
	if b.IsTrivial() {
		return nil, nil
	}
	vars := b.vars()
	bounds := make(map[string]int, len(vars))
	for _, v := range vars {
		bound := -1
		for _, g := range b.Gens {
			lt, _ := b.Order.Leading(g)
			if len(lt.Exps) == 1 {
				if e, ok := lt.Exps[v]; ok && (bound == -1 || e < bound) {
					bound = e
				}
			}
		}
		if bound == -1 {
			return nil, ErrNotZeroDimensional
		}
		bounds[v] = bound
	}

	var result []map[string]int
	leading := make([]map[string]int, len(b.Gens))
	for i, g := range b.Gens {
		lt, _ := b.Order.Leading(g)
		leading[i] = lt.Exps
	}
	var gen func(idx int, cur map[string]int)
	gen = func(idx int, cur map[string]int) {
		if idx == len(vars) {
			for _, lt := range leading {
				if monomialDivides(lt, cur) {
					return
				}
			}
			result = append(result, cloneMonomial(cur))
			return
		}
		v := vars[idx]
		for e := 0; e < bounds[v]; e++ {
			next := cloneMonomial(cur)
			if e > 0 {
				next[v] = e
			}
			gen(idx+1, next)
		}
	}
	gen(0, map[string]int{})
	return result, nil
}

// MultTable is the quotient ring's multiplication table: the monomial basis
// B together with, for every pair (i,j), the B-coordinate vector of
// normalForm(b_i * b_j). It backs tarski's multivariate Tarski-query
// computation (grounded on carl's MultiplicationTable.h) - built via direct
// Gröbner-reduction of each product rather than the original's border-basis
// (Bor/Cor/Mon) bookkeeping, see DESIGN.md.
type MultTable struct {
	GB       Basis
	Basis    []map[string]int
	Products [][][]numkit.Rational
}

// NewMultTable builds the multiplication table for gb's quotient ring.
func NewMultTable(gb Basis) (*MultTable, error) {
	basis, err := gb.MonomialBasis()
	if err != nil {
		return nil, err
	}
	n := len(basis)
	products := make([][][]numkit.Rational, n)
	for i := range products {
		products[i] = make([][]numkit.Rational, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			bi := polykit.NewMPolyMonomial(numkit.OneR, basis[i])
			bj := polykit.NewMPolyMonomial(numkit.OneR, basis[j])
			reduced := bi.Mul(bj).Reduce(gb.Gens, gb.Order)
			vec := decompose(reduced, basis)
			products[i][j] = vec
			products[j][i] = vec
		}
	}
	return &MultTable{GB: gb, Basis: basis, Products: products}, nil
}

func decompose(p polykit.MPoly, basis []map[string]int) []numkit.Rational {
	vec := make([]numkit.Rational, len(basis))
	for i := range vec {
		vec[i] = numkit.ZeroR
	}
	for _, t := range p.Terms() {
		idx := -1
		for i, m := range basis {
			if monomialEqual(t.Exps, m) {
				idx = i
				break
			}
		}
		if idx < 0 {
			panic("groebner: normal form produced a non-standard monomial")
		}
		vec[idx] = vec[idx].Add(t.Coeff)
	}
	return vec
}

// MultiplicationMatrix returns the matrix of "multiply by q" on the
// quotient ring, in the MultTable's monomial basis, built from the
// precomputed b_i*b_j products via bilinearity: q = sum_k qv_k b_k, so
// q*b_i = sum_k qv_k * (b_k*b_i).
func (mt *MultTable) MultiplicationMatrix(q polykit.MPoly) [][]numkit.Rational {
	n := len(mt.Basis)
	qv := decompose(q.Reduce(mt.GB.Gens, mt.GB.Order), mt.Basis)
	m := make([][]numkit.Rational, n)
	for i := range m {
		m[i] = make([]numkit.Rational, n)
		for r := range m[i] {
			m[i][r] = numkit.ZeroR
		}
	}
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if qv[k].IsZero() {
				continue
			}
			prodVec := mt.Products[k][i]
			for r := 0; r < n; r++ {
				m[r][i] = m[r][i].Add(qv[k].Mul(prodVec[r]))
			}
		}
	}
	return m
}

// Trace returns trace(M_q), the trace of the multiplication-by-q matrix.
func (mt *MultTable) Trace(q polykit.MPoly) numkit.Rational {
	m := mt.MultiplicationMatrix(q)
	tr := numkit.ZeroR
	for i := range m {
		tr = tr.Add(m[i][i])
	}
	return tr
}
