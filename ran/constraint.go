package ran

import (
	"github.com/jonathanmweiss/ranalg/interval"
	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

// Trivalent is the three-valued verdict a polynomial relation evaluates to
// under a partial RAN assignment: decided true, decided false, or not yet
// decidable from the current refinement.
type Trivalent int

const (
	False Trivalent = iota
	True
	Indeterminate
)

func (t Trivalent) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "indeterminate"
	}
}

func boolToTrivalent(b bool) Trivalent {
	if b {
		return True
	}
	return False
}

// Constraint is a polynomial relation f ρ 0.
type Constraint struct {
	F   polykit.MPoly
	Rel Relation
}

// EvaluateConstraint decides c's relation under the RAN assignment m:
// numeric substitution and constant-relation shortcuts first, then interval
// evaluation, then a Lagrange-bound fast path on the resultant-eliminated
// polynomial, refining the assignment's RAN intervals between rounds until
// the relation is decided or no further refinement is possible; after 64
// undecided rounds it returns Indeterminate.
func EvaluateConstraint(c Constraint, m map[string]RAN) Trivalent {
	cur := c.F
	ranVars := map[string]RAN{}
	for _, v := range cur.Vars() {
		r, ok := m[v]
		if !ok {
			return Indeterminate
		}
		if val, isNum := r.Value(); isNum {
			cur = cur.SubstituteNumeric(v, val)
		} else {
			ranVars[v] = r
		}
	}
	if val, isConst := cur.IsConstant(); isConst {
		return boolToTrivalent(relationHolds(c.Rel, val.Cmp(numkit.ZeroR)))
	}

	for iter := 0; iter < 64; iter++ {
		if J, ok := cur.EvalIntervalPartial(buildIntervalAssign(ranVars)); ok {
			if verdict, decided := decideFromInterval(J, c.Rel); decided {
				return verdict
			}
		}

		fresh := polykit.FreshVariable("con")
		q := polykit.NewMPolyVar(fresh).Sub(cur)
		qUniv := q.AsUnivariate(fresh)
		if tilde, ok := eliminateAuxVars(qUniv, ranVars); ok && !tilde.IsZero() {
			lp := tilde.LagrangePositiveBound()
			lm := tilde.LagrangeNegativeBound()
			if lp.IsZero() {
				if c.Rel == GREATER {
					return False
				}
				if c.Rel == LEQ {
					return True
				}
			}
			if lm.IsZero() {
				if c.Rel == LESS {
					return False
				}
				if c.Rel == GEQ {
					return True
				}
			}
		}

		progressed := false
		for _, r := range ranVars {
			if !r.IsNumeric() {
				r.Refine()
				progressed = true
			}
		}
		if !progressed {
			return Indeterminate
		}
	}
	return Indeterminate
}

// decideFromInterval reports the verdict rel decides from the definite sign
// of J, if any.
func decideFromInterval(J interval.Interval, rel Relation) (Trivalent, bool) {
	strictPos := J.LowerType != interval.Infty && (J.Lower.Sign() == numkit.Positive || (J.LowerType == interval.Strict && J.Lower.IsZero()))
	nonNeg := J.LowerType != interval.Infty && J.Lower.Sign() != numkit.Negative
	strictNeg := J.UpperType != interval.Infty && (J.Upper.Sign() == numkit.Negative || (J.UpperType == interval.Strict && J.Upper.IsZero()))
	nonPos := J.UpperType != interval.Infty && J.Upper.Sign() != numkit.Positive
	isZeroPoint := J.IsPoint() && J.Lower.IsZero()

	switch rel {
	case GREATER:
		if strictPos {
			return True, true
		}
		if nonPos {
			return False, true
		}
	case GEQ:
		if nonNeg {
			return True, true
		}
		if strictNeg {
			return False, true
		}
	case LESS:
		if strictNeg {
			return True, true
		}
		if nonNeg {
			return False, true
		}
	case LEQ:
		if nonPos {
			return True, true
		}
		if strictPos {
			return False, true
		}
	case EQ:
		if strictPos || strictNeg {
			return False, true
		}
		if isZeroPoint {
			return True, true
		}
	case NEQ:
		if strictPos || strictNeg {
			return True, true
		}
		if isZeroPoint {
			return False, true
		}
	}
	return Indeterminate, false
}
