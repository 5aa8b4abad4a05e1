package ran

import (
	"sort"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
	"github.com/jonathanmweiss/ranalg/rootisolator"
)

// ResultKind tags the outcome of a (possibly multivariate) real-root query:
// a concrete root list, a nullified polynomial (identically zero under the
// assignment, so every value is a root), or a system that still has free
// variables after substitution and elimination.
type ResultKind int

const (
	ResultRoots ResultKind = iota
	ResultNullified
	ResultNonUnivariate
)

// RealRootsResult is the outcome of RealRoots / RealRootsMultivariate.
type RealRootsResult struct {
	Kind  ResultKind
	Roots []RAN // strictly ascending when Kind == ResultRoots
}

// RealRoots isolates the real roots of univariate p inside iv, wrapping
// each isolating interval rootisolator.Isolate finds into a RAN.
func RealRoots(p polykit.UPoly, iv interval.Interval) RealRootsResult {
	isolated := rootisolator.Isolate(p, iv)
	if isolated.Kind == rootisolator.Nullified {
		return RealRootsResult{Kind: ResultNullified}
	}
	roots := make([]RAN, 0, len(isolated.Intervals))
	for _, ivv := range isolated.Intervals {
		r, err := FromPolyInterval(isolated.SquareFree, ivv)
		if err != nil {
			panic("ran: RealRoots isolating interval failed to construct a RAN: " + err.Error())
		}
		roots = append(roots, r)
	}
	return RealRootsResult{Kind: ResultRoots, Roots: roots}
}

// RealRootsMultivariate isolates the real roots of f inside iv, where f is
// univariate in its own MainVar with coefficients that are multivariate
// polynomials over the remaining variables, each of which must be assigned
// a RAN in m.
func RealRootsMultivariate(f polykit.UPolyM, m map[string]RAN, iv interval.Interval) RealRootsResult {
	if f.IsZero() {
		return RealRootsResult{Kind: ResultNullified}
	}
	if len(f.OtherVars()) == 0 {
		if plain, ok := f.AsRationalUPoly(); ok {
			return RealRoots(plain, iv)
		}
	}

	cur := f
	remaining := map[string]RAN{}
	for _, v := range cur.OtherVars() {
		r, ok := m[v]
		if !ok {
			return RealRootsResult{Kind: ResultNonUnivariate}
		}
		if val, isNum := r.Value(); isNum {
			cur = cur.SubstituteNumeric(v, val)
		} else {
			remaining[v] = r
		}
	}
	if cur.IsZero() {
		return RealRootsResult{Kind: ResultNullified}
	}
	if len(cur.OtherVars()) == 0 {
		if plain, ok := cur.AsRationalUPoly(); ok {
			return RealRoots(plain, iv)
		}
	}

	tilde, ok := eliminateAuxVars(cur, remaining)
	if !ok {
		return RealRootsResult{Kind: ResultNonUnivariate}
	}
	if tilde.IsZero() {
		return RealRootsResult{Kind: ResultNullified}
	}

	isolated := rootisolator.Isolate(tilde, iv)
	if isolated.Kind == rootisolator.Nullified {
		return RealRootsResult{Kind: ResultNullified}
	}
	var roots []RAN
	full := f.ToMPoly()
	for _, ivv := range isolated.Intervals {
		r, err := FromPolyInterval(isolated.SquareFree, ivv)
		if err != nil {
			continue
		}
		assign := map[string]RAN{f.MainVar: r}
		for v, rv := range m {
			assign[v] = rv
		}
		val, ok := Evaluate(full, assign)
		if ok && val.IsZero() {
			roots = append(roots, r)
		}
	}
	return RealRootsResult{Kind: ResultRoots, Roots: roots}
}

// polyDegree returns the degree remaining[v]'s defining polynomial would
// have, treating a RAN that has collapsed to numeric (no defining
// polynomial left) as degree 0 so it sorts last.
func polyDegree(r RAN) int {
	p, ok := r.Polynomial()
	if !ok {
		return 0
	}
	return p.Degree()
}

// eliminateAuxVars eliminates every variable in remaining from cur by
// iterated resultants against each RAN's defining polynomial, reducing
// higher-degree RANs first. A RAN can collapse to numeric between calls (or
// even between successive variables within one call, once refinement is
// interleaved with elimination by a caller), in which case it is
// substituted directly instead of resultant-eliminated. eliminateAuxVars
// returns false if the elimination order still leaves free variables.
func eliminateAuxVars(cur polykit.UPolyM, remaining map[string]RAN) (polykit.UPoly, bool) {
	mainVarX := cur.MainVar
	vars := make([]string, 0, len(remaining))
	for v := range remaining {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		return polyDegree(remaining[vars[i]]) > polyDegree(remaining[vars[j]])
	})

	curPoly := cur.ToMPoly()
	for _, v := range vars {
		if curPoly.IsZero() {
			return polykit.ZeroUPoly(mainVarX), true
		}
		if val, ok := remaining[v].Value(); ok {
			curPoly = curPoly.SubstituteNumeric(v, val)
			continue
		}
		uv := curPoly.AsUnivariate(v)
		if uv.IsZero() {
			return polykit.ZeroUPoly(mainVarX), true
		}
		defP, ok := remaining[v].Polynomial()
		if !ok {
			// Collapsed between the Value() check above and here: retry as
			// a numeric substitution.
			val, _ := remaining[v].Value()
			curPoly = curPoly.SubstituteNumeric(v, val)
			continue
		}
		defP = defP.WithMainVar(v)
		curPoly = polykit.Resultant(uv, polykit.FromUPoly(defP))
	}
	final := curPoly.AsUnivariate(mainVarX)
	plain, ok := final.AsRationalUPoly()
	if !ok {
		return polykit.UPoly{}, false
	}
	return plain, true
}

func buildIntervalAssign(ranVars map[string]RAN) map[string]interval.Interval {
	out := make(map[string]interval.Interval, len(ranVars))
	for v, r := range ranVars {
		if val, ok := r.Value(); ok {
			out[v] = interval.Point(val)
			continue
		}
		iv, _ := r.Interval()
		out[v] = iv
	}
	return out
}

// Evaluate computes f(m) as a RAN: it substitutes numeric assignments,
// returns a numeric RAN if f collapses to a constant, and otherwise builds
// q(v,...) = v - f for a fresh v, eliminates the remaining RAN-valued
// variables by resultant, and returns a RAN bounded by the
// interval-evaluation of f.
func Evaluate(f polykit.MPoly, m map[string]RAN) (RAN, bool) {
	cur := f
	ranVars := map[string]RAN{}
	for _, v := range cur.Vars() {
		r, ok := m[v]
		if !ok {
			return RAN{}, false
		}
		if val, isNum := r.Value(); isNum {
			cur = cur.SubstituteNumeric(v, val)
		} else {
			ranVars[v] = r
		}
	}
	if c, isConst := cur.IsConstant(); isConst {
		return FromRational(c), true
	}

	fresh := polykit.FreshVariable("eval")
	q := polykit.NewMPolyVar(fresh).Sub(cur)
	qUniv := q.AsUnivariate(fresh)
	tilde, ok := eliminateAuxVars(qUniv, ranVars)
	if !ok {
		return RAN{}, false
	}
	sf := tilde.SquareFreePart()

	J, ok := cur.EvalIntervalPartial(buildIntervalAssign(ranVars))
	if !ok {
		J = interval.Unbounded()
	}

	for iter := 0; iter < 256; iter++ {
		count := sf.CountRealRoots(J)
		if count == 1 && !boundaryIsRoot(sf, J) {
			break
		}
		progressed := false
		for _, r := range ranVars {
			if !r.IsNumeric() {
				r.Refine()
				progressed = true
			}
		}
		if progressed {
			if newJ, ok := cur.EvalIntervalPartial(buildIntervalAssign(ranVars)); ok {
				J = newJ
			}
			continue
		}
		mid := J.Sample()
		sign := sf.EvalSign(mid)
		if sign == numkit.Zero {
			return FromRational(mid), true
		}
		loSign := sf.EvalSign(J.Lower)
		if sign == loSign {
			J.SetLower(mid)
		} else {
			J.SetUpper(mid)
		}
	}

	result, err := FromPolyInterval(sf, J)
	if err != nil {
		return RAN{}, false
	}
	return result, true
}

func boundaryIsRoot(p polykit.UPoly, iv interval.Interval) bool {
	if iv.LowerType != interval.Infty && p.EvalSign(iv.Lower) == numkit.Zero {
		return true
	}
	if iv.UpperType != interval.Infty && p.EvalSign(iv.Upper) == numkit.Zero {
		return true
	}
	return false
}
