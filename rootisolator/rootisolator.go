// Package rootisolator implements real-root isolation for univariate
// rational polynomials over a rational interval: the engine the RAN package
// builds on. It works purely in
// terms of polykit/interval values, never constructing a RAN itself -
// package ran wraps each isolating interval this package returns into a
// RAN via ran.FromPolyInterval, which keeps the dependency graph acyclic
// (ran depends on rootisolator, not the reverse).
package rootisolator

import (
	"sort"

	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

// Kind tags the three possible outcomes of isolation.
type Kind int

const (
	Roots Kind = iota
	Nullified
	NonUnivariate
)

// Result is the outcome of isolating the real roots of a univariate
// polynomial: SquareFree is the (possibly renamed) square-free polynomial
// the isolating intervals are roots of, and Intervals is the strictly
// ascending, pairwise-disjoint sequence of isolating intervals - each
// containing exactly one real root of SquareFree.
type Result struct {
	Kind       Kind
	SquareFree polykit.UPoly
	Intervals  []interval.Interval
}

// Isolate isolates every real root of p inside iv. The zero polynomial is
// Nullified, a non-zero constant has no roots, and otherwise roots are
// isolated from the square-free part via root bounds and
// Sturm-sequence-guided bisection.
func Isolate(p polykit.UPoly, iv interval.Interval) Result {
	if p.IsZero() {
		return Result{Kind: Nullified}
	}
	if p.IsConstant() {
		return Result{Kind: Roots}
	}
	sf := p.SquareFreePart()
	bound := sf.CauchyBound()
	bounding := interval.Closed(bound.Neg(), bound)
	if !interval.HasIntersection(iv, bounding) {
		return Result{Kind: Roots, SquareFree: sf}
	}
	search := interval.Intersect(iv, bounding)

	var ivals []interval.Interval
	isolateRoots(sf, search, &ivals)

	out := ivals[:0]
	for _, v := range ivals {
		if withinOriginal(v, iv) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lower.Less(out[j].Lower) })
	return Result{Kind: Roots, SquareFree: sf, Intervals: out}
}

func withinOriginal(v, iv interval.Interval) bool {
	mid := v.Lower
	if !v.IsPoint() {
		mid = numkit.Mid(v.Lower, v.Upper)
	}
	return iv.Contains(mid)
}

// isolateRoots appends the isolating intervals for sf's real roots inside
// iv (the search window, already intersected with a root bound) to out,
// in ascending order. It first peels off any root sitting exactly on a weak
// endpoint of iv, then bisects the remainder guided by Sturm's theorem
// (polykit.UPoly.CountRealRoots), which reports how many real roots remain
// in a candidate sub-interval without needing to isolate them individually.
func isolateRoots(sf polykit.UPoly, iv interval.Interval, out *[]interval.Interval) {
	if iv.LowerType == interval.Weak && sf.EvalSign(iv.Lower) == numkit.Zero {
		*out = append(*out, interval.Point(iv.Lower))
		if iv.IsPoint() {
			return
		}
		iv = interval.Interval{Lower: iv.Lower, Upper: iv.Upper, LowerType: interval.Strict, UpperType: iv.UpperType}
	}
	if iv.UpperType == interval.Weak && !iv.IsPoint() && sf.EvalSign(iv.Upper) == numkit.Zero {
		defer func() { *out = append(*out, interval.Point(iv.Upper)) }()
		iv = interval.Interval{Lower: iv.Lower, Upper: iv.Upper, LowerType: iv.LowerType, UpperType: interval.Strict}
	}

	count := sf.CountRealRoots(iv)
	if count == 0 {
		return
	}
	if count == 1 {
		*out = append(*out, iv)
		return
	}

	mid := iv.Sample()
	sign := sf.EvalSign(mid)
	left := interval.Interval{Lower: iv.Lower, Upper: mid, LowerType: iv.LowerType, UpperType: interval.Strict}
	right := interval.Interval{Lower: mid, Upper: iv.Upper, LowerType: interval.Strict, UpperType: iv.UpperType}
	if sign == numkit.Zero {
		isolateRoots(sf, left, out)
		*out = append(*out, interval.Point(mid))
		isolateRoots(sf, right, out)
		return
	}
	isolateRoots(sf, left, out)
	isolateRoots(sf, right, out)
}
