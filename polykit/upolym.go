package polykit

import "github.com/jonathanmweiss/ranalg/numkit"

// UPolyM is a univariate polynomial in MainVar whose coefficients are
// themselves multivariate polynomials in the remaining variables: a
// multivariate polynomial f treated as univariate in one selected variable
// x, with coefficients that are multivariate polynomials over the other
// variables.
type UPolyM struct {
	MainVar string
	Coeffs  []MPoly // ascending degree in MainVar; none of them mention MainVar
}

// NewUPolyM trims trailing zero coefficients and returns the canonical form.
func NewUPolyM(mainVar string, coeffs []MPoly) UPolyM {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	return UPolyM{MainVar: mainVar, Coeffs: append([]MPoly(nil), coeffs[:n]...)}
}

// FromUPoly lifts a plain rational-coefficient UPoly into UPolyM form.
func FromUPoly(p UPoly) UPolyM {
	coeffs := make([]MPoly, len(p.Coeffs()))
	for i, c := range p.Coeffs() {
		coeffs[i] = NewMPolyConstant(c)
	}
	return NewUPolyM(p.MainVar(), coeffs)
}

func (u UPolyM) Degree() int { return len(u.Coeffs) - 1 }

func (u UPolyM) IsZero() bool { return len(u.Coeffs) == 0 }

func (u UPolyM) LeadCoeff() MPoly {
	if u.IsZero() {
		return NewMPolyConstant(numkit.ZeroR)
	}
	return u.Coeffs[len(u.Coeffs)-1]
}

// OtherVars returns the sorted union of variables across all coefficients
// (i.e. every variable of u except MainVar).
func (u UPolyM) OtherVars() []string {
	set := map[string]struct{}{}
	for _, c := range u.Coeffs {
		for _, v := range c.Vars() {
			set[v] = struct{}{}
		}
	}
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	return sortStrings(vars)
}

func sortStrings(s []string) []string {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
	return s
}

// ToMPoly expands sum_i Coeffs[i] * MainVar^i into a single MPoly.
func (u UPolyM) ToMPoly() MPoly {
	res := NewMPolyConstant(numkit.ZeroR)
	for i, c := range u.Coeffs {
		if c.IsZero() {
			continue
		}
		if i == 0 {
			res = res.Add(c)
			continue
		}
		monomial := NewMPolyVar(u.MainVar)
		pw := NewMPolyConstant(numkit.OneR)
		for k := 0; k < i; k++ {
			pw = pw.Mul(monomial)
		}
		res = res.Add(c.Mul(pw))
	}
	return res
}

// SubstituteNumeric substitutes val for v in every coefficient. v must not
// be MainVar.
func (u UPolyM) SubstituteNumeric(v string, val numkit.Rational) UPolyM {
	coeffs := make([]MPoly, len(u.Coeffs))
	for i, c := range u.Coeffs {
		coeffs[i] = c.SubstituteNumeric(v, val)
	}
	return NewUPolyM(u.MainVar, coeffs)
}

// AsRationalUPoly converts u to a plain UPoly when every coefficient is
// constant.
func (u UPolyM) AsRationalUPoly() (UPoly, bool) {
	coeffs := make([]numkit.Rational, len(u.Coeffs))
	for i, c := range u.Coeffs {
		val, ok := c.IsConstant()
		if !ok {
			return UPoly{}, false
		}
		coeffs[i] = val
	}
	return NewUPoly(u.MainVar, coeffs), true
}

// Derivative differentiates with respect to MainVar.
func (u UPolyM) Derivative() UPolyM {
	if len(u.Coeffs) <= 1 {
		return NewUPolyM(u.MainVar, nil)
	}
	out := make([]MPoly, len(u.Coeffs)-1)
	for i := 1; i < len(u.Coeffs); i++ {
		out[i-1] = u.Coeffs[i].Scale(numkit.NewFromInt64(int64(i)))
	}
	return NewUPolyM(u.MainVar, out)
}
