package tarski

import (
	"math"
	"math/big"
	"sort"

	"github.com/ALTree/bigfloat"

	"github.com/jonathanmweiss/ranalg/numkit"
	"github.com/jonathanmweiss/ranalg/polykit"
)

// SignCondition assigns a realised sign to each polynomial of the sequence
// passed to SignDetermination, in the same order.
type SignCondition []numkit.Sign

// solvePrecisionBits scales with the system size so the Gaussian-elimination
// round-off stays well below the half-integer threshold used to recover
// exact integer counts from the float solve.
func solvePrecisionBits(n int) uint {
	return uint(128 + 32*n)
}

var sdSigns = []numkit.Sign{numkit.Zero, numkit.Positive, numkit.Negative}

// sigmaPower computes sigma^alpha as a big.Float, with 0^0 = 1 by
// convention, matching the adapted-matrix entry rule below.
func sigmaPower(sigma numkit.Sign, alpha int, prec uint) *big.Float {
	if alpha == 0 {
		return new(big.Float).SetPrec(prec).SetInt64(1)
	}
	base := new(big.Float).SetPrec(prec).SetInt64(int64(sigma))
	exp := new(big.Float).SetPrec(prec).SetInt64(int64(alpha))
	if sigma == numkit.Negative {
		// bigfloat.Pow rejects a negative base: raise |sigma| and restore
		// the sign for odd alpha.
		res := bigfloat.Pow(base.Neg(base), exp)
		if alpha%2 == 1 {
			res.Neg(res)
		}
		return res
	}
	return bigfloat.Pow(base, exp)
}

// adaptedMatrix3 is the fixed 3x3 matrix M_3 of the base adapted family:
// rows indexed by the base adapted list (0),(1),(2), columns by
// (ZERO,POS,NEG).
func adaptedMatrix3(prec uint) [][]*big.Float {
	m := make([][]*big.Float, 3)
	for alpha := 0; alpha < 3; alpha++ {
		row := make([]*big.Float, 3)
		for j, s := range sdSigns {
			row[j] = sigmaPower(s, alpha, prec)
		}
		m[alpha] = row
	}
	return m
}

func kron(a, b [][]*big.Float, prec uint) [][]*big.Float {
	ra, ca := len(a), len(a[0])
	rb, cb := len(b), len(b[0])
	out := make([][]*big.Float, ra*rb)
	for i := range out {
		out[i] = make([]*big.Float, ca*cb)
	}
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			for p := 0; p < rb; p++ {
				for q := 0; q < cb; q++ {
					v := new(big.Float).SetPrec(prec).Mul(a[i][j], b[p][q])
					out[i*rb+p][j*cb+q] = v
				}
			}
		}
	}
	return out
}

// SignDetermination computes the sign conditions that the polynomials P
// realise on the real zeros of the zero-dimensional system Z, via the
// moment-matrix construction behind the Ben-Or/Kozen/Reif recursion. This
// port builds the full Kronecker tensor M_3^{⊗|P|} over every one of the
// 3^|P| exponent tuples rather than the original's "adapted family"
// dimension reduction (which only tracks the exponent tuples known to
// correspond to realised conditions so far) - trading the adapted family's
// polynomial-size bound for an exponential but far simpler construction;
// see DESIGN.md.
func SignDetermination(p, z []polykit.MPoly) []SignCondition {
	tqm, err := NewQueryManager(z)
	if err != nil {
		return nil
	}
	r := tqm.TaQ(polykit.NewMPolyConstant(numkit.OneR))
	if r == 0 || len(p) == 0 {
		return nil
	}

	n := len(p)
	total := 1
	for i := 0; i < n; i++ {
		total *= 3
	}
	prec := solvePrecisionBits(total)

	m3 := adaptedMatrix3(prec)
	mTotal := [][]*big.Float{{new(big.Float).SetPrec(prec).SetInt64(1)}}
	for i := 0; i < n; i++ {
		mTotal = kron(mTotal, m3, prec)
	}

	powCache := make([]map[int]polykit.MPoly, n)
	for j := range powCache {
		powCache[j] = map[int]polykit.MPoly{0: polykit.NewMPolyConstant(numkit.OneR)}
	}
	var powerOf func(j, e int) polykit.MPoly
	powerOf = func(j, e int) polykit.MPoly {
		if v, ok := powCache[j][e]; ok {
			return v
		}
		v := powerOf(j, e-1).Mul(p[j])
		powCache[j][e] = v
		return v
	}

	d := make([]*big.Float, total)
	digits := make([][]int, total)
	for idx := 0; idx < total; idx++ {
		tup := decodeBase3(idx, n)
		digits[idx] = tup
		product := polykit.NewMPolyConstant(numkit.OneR)
		for j, e := range tup {
			if e > 0 {
				product = product.Mul(powerOf(j, e))
			}
		}
		d[idx] = new(big.Float).SetPrec(prec).SetInt64(int64(tqm.TaQ(product)))
	}

	c := gaussianSolve(mTotal, d, prec)

	results := make([]SignCondition, 0)
	for idx := 0; idx < total; idx++ {
		count := roundToInt(c[idx])
		if count == 0 {
			continue
		}
		cond := make(SignCondition, n)
		for j, digit := range digits[idx] {
			cond[j] = sdSigns[digit]
		}
		results = append(results, cond)
	}
	sort.Slice(results, func(i, j int) bool { return lessCondition(results[i], results[j]) })
	return results
}

func lessCondition(a, b SignCondition) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func decodeBase3(idx, n int) []int {
	digits := make([]int, n)
	for j := n - 1; j >= 0; j-- {
		digits[j] = idx % 3
		idx /= 3
	}
	return digits
}

func roundToInt(x *big.Float) int {
	f, _ := x.Float64()
	return int(math.Round(f))
}

// gaussianSolve solves a*x = b over big.Float with partial pivoting. The
// system built from Kronecker powers of adaptedMatrix3 is always square and
// generically invertible (a tensor of invertible matrices is invertible).
func gaussianSolve(a [][]*big.Float, b []*big.Float, prec uint) []*big.Float {
	n := len(a)
	aug := make([][]*big.Float, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]*big.Float, n+1)
		for j := 0; j < n; j++ {
			aug[i][j] = new(big.Float).SetPrec(prec).Copy(a[i][j])
		}
		aug[i][n] = new(big.Float).SetPrec(prec).Copy(b[i])
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := new(big.Float).SetPrec(prec).Abs(aug[col][col])
		for row := col + 1; row < n; row++ {
			v := new(big.Float).SetPrec(prec).Abs(aug[row][col])
			if v.Cmp(best) > 0 {
				best = v
				pivot = row
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		pv := aug[col][col]
		for row := col + 1; row < n; row++ {
			if aug[row][col].Sign() == 0 {
				continue
			}
			factor := new(big.Float).SetPrec(prec).Quo(aug[row][col], pv)
			for k := col; k <= n; k++ {
				tmp := new(big.Float).SetPrec(prec).Mul(factor, aug[col][k])
				aug[row][k] = new(big.Float).SetPrec(prec).Sub(aug[row][k], tmp)
			}
		}
	}

	x := make([]*big.Float, n)
	for row := n - 1; row >= 0; row-- {
		sum := new(big.Float).SetPrec(prec).Copy(aug[row][n])
		for col := row + 1; col < n; col++ {
			tmp := new(big.Float).SetPrec(prec).Mul(aug[row][col], x[col])
			sum = new(big.Float).SetPrec(prec).Sub(sum, tmp)
		}
		x[row] = new(big.Float).SetPrec(prec).Quo(sum, aug[row][row])
	}
	return x
}
