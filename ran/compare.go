package ran

import (
	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

// Relation is one of the six comparison relations a Constraint or the RAN
// comparison API can test a polynomial against zero, or a RAN against
// another RAN.
type Relation int

const (
	EQ Relation = iota
	NEQ
	LESS
	LEQ
	GREATER
	GEQ
)

func relationHolds(rel Relation, cmp int) bool {
	switch rel {
	case EQ:
		return cmp == 0
	case NEQ:
		return cmp != 0
	case LESS:
		return cmp < 0
	case LEQ:
		return cmp <= 0
	case GREATER:
		return cmp > 0
	case GEQ:
		return cmp >= 0
	}
	panic("ran: unknown relation")
}

// Compare decides rel between a and b: identical shared state and
// both-numeric short-circuit immediately; otherwise it alternates refining
// a and b against each other's bounds (gcd-unifying them once they share a
// common root, and otherwise falling back to disjoint endpoint order) until
// rel is decided.
func Compare(a, b RAN, rel Relation) bool {
	if a.shared != nil && b.shared != nil && a.shared == b.shared {
		return relationHolds(rel, 0)
	}
	if result, decided := compareIfNumeric(a, b, rel); decided {
		return result
	}

	for {
		// A RAN can collapse to numeric mid-loop (RefineUsing/Refine may
		// land exactly on a rational root), so this check must run fresh
		// on every iteration rather than trusting a stale interval.
		if result, decided := compareIfNumeric(a, b, rel); decided {
			return result
		}
		ai, _ := a.Interval()
		bi, _ := b.Interval()
		// Intervals overlap: refine against the crossing endpoints until
		// they coincide or separate.
		if interval.HasIntersection(ai, bi) {
			if !ai.Equal(bi) {
				a.RefineUsing(bi.Lower)
				a.RefineUsing(bi.Upper)
				b.RefineUsing(ai.Lower)
				b.RefineUsing(ai.Upper)
				continue
			}
			pa, _ := a.Polynomial()
			pb, _ := b.Polynomial()
			if pa.Equal(pb) {
				return relationHolds(rel, 0)
			}
			g := polykit.GCD(pa, pb)
			if !g.IsConstant() && g.CountRealRoots(ai) == 1 {
				unify(a, b, g)
				return relationHolds(rel, 0)
			}
			a.Refine()
			b.Refine()
			continue
		}
		// Disjoint: endpoint order decides.
		if ai.Upper.LessEqual(bi.Lower) {
			return relationHolds(rel, -1)
		}
		if bi.Upper.LessEqual(ai.Lower) {
			return relationHolds(rel, 1)
		}
		a.Refine()
		b.Refine()
	}
}

// compareIfNumeric decides rel between a and b when at least one side has
// collapsed to (or started as) a plain rational value, comparing the
// numeric side against the other's current interval when only one has.
func compareIfNumeric(a, b RAN, rel Relation) (result, decided bool) {
	av, aok := a.Value()
	bv, bok := b.Value()
	if aok && bok {
		return relationHolds(rel, av.Cmp(bv)), true
	}
	if aok {
		return compareNumericAgainstRAN(av, b, rel, true), true
	}
	if bok {
		return compareNumericAgainstRAN(bv, a, rel, false), true
	}
	return false, false
}

// unify overwrites both a's and b's shared state with copies of one record
// built from the common polynomial g: two handles proven to hold the same
// root are merged so every alias of either one observes the merge too,
// recomputing the sign cache at the common lower bound. The two records
// stay distinct, so a later refinement through a's aliases is not seen
// through b's, and vice versa.
func unify(a, b RAN, g polykit.UPoly) {
	ai, _ := a.Interval()
	s := &state{poly: g, iv: ai, lowerSign: g.EvalSign(ai.Lower)}
	*a.shared = *s
	*b.shared = *s
}

func compareNumericAgainstRAN(q numkit.Rational, r RAN, rel Relation, qIsA bool) bool {
	sign, ok := r.RefineUsing(q)
	if !ok {
		iv, _ := r.Interval()
		cmp := 0
		if q.LessEqual(iv.Lower) {
			cmp = -1
		} else if iv.Upper.LessEqual(q) {
			cmp = 1
		}
		if qIsA {
			return relationHolds(rel, cmp)
		}
		return relationHolds(rel, -cmp)
	}
	// sign is sgn(r - q): Positive means r > q i.e. q < r.
	cmp := 0
	switch sign {
	case numkit.Positive:
		cmp = -1 // q < r
	case numkit.Negative:
		cmp = 1 // q > r
	}
	if qIsA {
		return relationHolds(rel, cmp)
	}
	return relationHolds(rel, -cmp)
}

// CompareRational decides rel between RAN a and rational q.
func CompareRational(a RAN, q numkit.Rational, rel Relation) bool {
	if av, ok := a.Value(); ok {
		return relationHolds(rel, av.Cmp(q))
	}
	return compareNumericAgainstRAN(q, a, rel, false)
}
