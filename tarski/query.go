// Package tarski implements the Tarski-query managers and sign-
// determination procedure, grounded on carl's
// thom/TarskiQuery/{TarskiQueryManager,MultivariateTarskiQuery}.h and
// thom/SignDetermination/SignDetermination.h.
package tarski

import (
	"errors"
	"sync"

	"github.com/jonathanmweiss/ranalg/groebner"
	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

// ErrZeroDimensionalRequired is returned by NewQueryManager when the
// multivariate zero set Z does not have a finite variety.
var ErrZeroDimensionalRequired = errors.New("tarski: zero set is not zero-dimensional")

// QueryManager answers TaQ(q) = sum_{x in real zeros of Z} sgn(q(x)),
// dispatching to a univariate or multivariate implementation depending on
// the shape of Z.
type QueryManager struct {
	uni   *UnivariateManager
	multi *MultivariateManager
}

// NewQueryManager builds a query manager over the zero-dimensional system
// Z. A single-polynomial, single-variable Z takes the Sturm-sequence fast
// path; anything else goes through a Gröbner basis and multiplication
// table, failing with ErrZeroDimensionalRequired if Z's variety is
// infinite.
func NewQueryManager(z []polykit.MPoly) (*QueryManager, error) {
	vars := combinedVars(z)
	if len(z) == 1 && len(vars) <= 1 {
		v := "_z"
		if len(vars) == 1 {
			v = vars[0]
		}
		asM := z[0].AsUnivariate(v)
		if plain, ok := asM.AsRationalUPoly(); ok && !plain.IsZero() && !plain.IsConstant() {
			return &QueryManager{uni: NewUnivariateManager(plain)}, nil
		}
	}

	order := polykit.DefaultOrder(z...)
	gb := groebner.Buchberger(z, order)
	if gb.IsTrivial() {
		return &QueryManager{multi: &MultivariateManager{order: order, gb: gb, trivial: true, cache: map[string]int{}}}, nil
	}
	mt, err := groebner.NewMultTable(gb)
	if err != nil {
		return nil, ErrZeroDimensionalRequired
	}
	return &QueryManager{multi: &MultivariateManager{order: order, gb: gb, mt: mt, cache: map[string]int{}}}, nil
}

// TaQ returns the Tarski query of q against this manager's zero set.
func (m *QueryManager) TaQ(q polykit.MPoly) int {
	if m.uni != nil {
		return m.uni.TaQ(q)
	}
	return m.multi.TaQ(q)
}

func combinedVars(ps []polykit.MPoly) []string {
	set := map[string]struct{}{}
	for _, p := range ps {
		for _, v := range p.Vars() {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// UnivariateManager caches Tarski queries on (z, z').
type UnivariateManager struct {
	z      polykit.UPoly
	zPrime polykit.UPoly
	mu     sync.Mutex
	cache  map[string]int
}

// NewUnivariateManager builds a manager for the single defining polynomial
// z of a univariate zero-dimensional zero set.
func NewUnivariateManager(z polykit.UPoly) *UnivariateManager {
	return &UnivariateManager{z: z, zPrime: z.Derivative(), cache: map[string]int{}}
}

func normalizeUPoly(p polykit.UPoly) (polykit.UPoly, numkit.Sign) {
	if p.IsZero() {
		return p, numkit.Zero
	}
	lc := p.LeadCoeff()
	sign := lc.Sign()
	return p.Scale(numkit.OneR.Quo(lc)), sign
}

// TaQ reduces q to a univariate polynomial in z's main variable and counts
// the signed sign variations of the generalized Sturm sequence (z, z'*q)
// over the whole real line.
func (m *UnivariateManager) TaQ(q polykit.MPoly) int {
	if q.IsZero() {
		return 0
	}
	asM := q.AsUnivariate(m.z.MainVar())
	plain, ok := asM.AsRationalUPoly()
	if !ok {
		panic("tarski: univariate query manager given a query outside its variable")
	}
	if plain.IsZero() {
		return 0
	}
	norm, sign := normalizeUPoly(plain)
	key := norm.String()

	m.mu.Lock()
	if v, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return int(sign) * v
	}
	m.mu.Unlock()

	seq := polykit.GeneralizedSturmSequence(m.z, m.zPrime.Mul(norm))
	val := polykit.CountSignChanges(seq, interval.Unbounded())

	m.mu.Lock()
	m.cache[key] = val
	m.mu.Unlock()
	return int(sign) * val
}

// MultivariateManager answers TaQ via a Gröbner basis, a monomial basis of
// the quotient ring and the characteristic polynomial of the
// multiplication-by-q endomorphism.
type MultivariateManager struct {
	order   polykit.Order
	gb      groebner.Basis
	mt      *groebner.MultTable
	trivial bool
	mu      sync.Mutex
	cache   map[string]int
}

func normalizeMPoly(q polykit.MPoly, order polykit.Order) (polykit.MPoly, numkit.Sign) {
	if q.IsZero() {
		return q, numkit.Zero
	}
	lt, _ := order.Leading(q)
	sign := lt.Coeff.Sign()
	return q.Scale(numkit.OneR.Quo(lt.Coeff)), sign
}

func (m *MultivariateManager) TaQ(q polykit.MPoly) int {
	if m.trivial || q.IsZero() {
		return 0
	}
	norm, sign := normalizeMPoly(q, m.order)
	key := norm.String()

	m.mu.Lock()
	if v, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return int(sign) * v
	}
	m.mu.Unlock()

	val := m.computeTaQ(norm)

	m.mu.Lock()
	m.cache[key] = val
	m.mu.Unlock()
	return int(sign) * val
}

func (m *MultivariateManager) computeTaQ(q polykit.MPoly) int {
	n := len(m.mt.Basis)
	t := make([][]numkit.Rational, n)
	for i := range t {
		t[i] = make([]numkit.Rational, n)
	}
	for i := 0; i < n; i++ {
		bi := polykit.NewMPolyMonomial(numkit.OneR, m.mt.Basis[i])
		for j := 0; j < n; j++ {
			bj := polykit.NewMPolyMonomial(numkit.OneR, m.mt.Basis[j])
			t[i][j] = m.mt.Trace(q.Mul(bi).Mul(bj))
		}
	}
	chi := charPoly(t)
	return signVariations(chi) - signVariations(chi.NegateVariable())
}

// charPoly computes the characteristic polynomial of t via the
// Faddeev-LeVerrier recursion (a Newton-identity-style scheme), computed
// exactly over the rationals - the original's sqrt(n)-blocking speedup is a
// performance optimization this port omits, see DESIGN.md.
func charPoly(t [][]numkit.Rational) polykit.UPoly {
	n := len(t)
	c := make([]numkit.Rational, n+1)
	c[0] = numkit.OneR
	m := zeroMatrix(n)
	for k := 1; k <= n; k++ {
		tm := matMul(t, m)
		for i := 0; i < n; i++ {
			tm[i][i] = tm[i][i].Add(c[k-1])
		}
		m = tm
		tr := traceOf(matMul(t, m))
		c[k] = tr.Neg().Quo(numkit.NewFromInt64(int64(k)))
	}
	coeffs := make([]numkit.Rational, n+1)
	for k := 0; k <= n; k++ {
		coeffs[n-k] = c[k]
	}
	return polykit.NewUPoly("_t", coeffs)
}

func zeroMatrix(n int) [][]numkit.Rational {
	m := make([][]numkit.Rational, n)
	for i := range m {
		m[i] = make([]numkit.Rational, n)
		for j := range m[i] {
			m[i][j] = numkit.ZeroR
		}
	}
	return m
}

func matMul(a, b [][]numkit.Rational) [][]numkit.Rational {
	n := len(a)
	out := zeroMatrix(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if a[i][k].IsZero() {
				continue
			}
			for j := 0; j < n; j++ {
				out[i][j] = out[i][j].Add(a[i][k].Mul(b[k][j]))
			}
		}
	}
	return out
}

func traceOf(m [][]numkit.Rational) numkit.Rational {
	tr := numkit.ZeroR
	for i := range m {
		tr = tr.Add(m[i][i])
	}
	return tr
}

// signVariations counts sign variations among p's coefficients from the
// leading term down, ignoring zeros: the classical Descartes'-rule count
// the v_+/v_- terms need.
func signVariations(p polykit.UPoly) int {
	prev := numkit.Zero
	started := false
	count := 0
	for i := p.Degree(); i >= 0; i-- {
		s := p.Coeff(i).Sign()
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
