// Package numkit provides the arbitrary-precision rational arithmetic that
// the rest of this module treats as an external collaborator: canonical
// rationals, signs, floor/ceil/gcd/mod, and integer square roots.
package numkit

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

// Sign is the trichotomy of a real value's sign.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func (s Sign) String() string {
	switch s {
	case Negative:
		return "NEG"
	case Zero:
		return "ZERO"
	case Positive:
		return "POS"
	default:
		return "?"
	}
}

// Negate flips a sign; Zero stays Zero.
func (s Sign) Negate() Sign { return -s }

// Mul combines two signs the way real multiplication would.
func (s Sign) Mul(o Sign) Sign { return s * o }

// Rational is a canonical arbitrary-precision rational (denominator > 0,
// reduced to lowest terms by the underlying big.Rat).
type Rational struct {
	r *big.Rat
}

// ZeroR is the additive identity.
var ZeroR = Rational{r: new(big.Rat)}

// OneR is the multiplicative identity.
var OneR = NewFromInt64(1)

func wrap(r *big.Rat) Rational {
	if r == nil {
		r = new(big.Rat)
	}
	return Rational{r: r}
}

// NewFromInt64 builds a Rational from an integer.
func NewFromInt64(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// NewFromBigInt builds a Rational equal to n.
func NewFromBigInt(n *big.Int) Rational {
	return Rational{r: new(big.Rat).SetInt(n)}
}

// NewFromFraction builds num/den, den must be non-zero.
func NewFromFraction(num, den int64) Rational {
	return Rational{r: big.NewRat(num, den)}
}

// NewFromBigRat wraps an existing big.Rat (copied, so the caller keeps
// ownership of the original).
func NewFromBigRat(r *big.Rat) Rational {
	return Rational{r: new(big.Rat).Set(r)}
}

// BigRat exposes the underlying big.Rat for callers that need to interop
// with math/big directly. The returned value must not be mutated.
func (a Rational) BigRat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Rational) rat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Rational) Add(b Rational) Rational {
	return wrap(new(big.Rat).Add(a.rat(), b.rat()))
}

func (a Rational) Sub(b Rational) Rational {
	return wrap(new(big.Rat).Sub(a.rat(), b.rat()))
}

func (a Rational) Mul(b Rational) Rational {
	return wrap(new(big.Rat).Mul(a.rat(), b.rat()))
}

// Quo computes a/b; panics if b is zero, mirroring big.Rat's contract.
func (a Rational) Quo(b Rational) Rational {
	if b.IsZero() {
		panic("numkit: division by zero")
	}
	return wrap(new(big.Rat).Quo(a.rat(), b.rat()))
}

func (a Rational) Neg() Rational {
	return wrap(new(big.Rat).Neg(a.rat()))
}

func (a Rational) Abs() Rational {
	return wrap(new(big.Rat).Abs(a.rat()))
}

func (a Rational) Cmp(b Rational) int {
	return a.rat().Cmp(b.rat())
}

func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

func (a Rational) Less(b Rational) bool { return a.Cmp(b) < 0 }

func (a Rational) LessEqual(b Rational) bool { return a.Cmp(b) <= 0 }

func (a Rational) Sign() Sign {
	switch a.rat().Sign() {
	case -1:
		return Negative
	case 1:
		return Positive
	default:
		return Zero
	}
}

func (a Rational) IsZero() bool { return a.rat().Sign() == 0 }

func (a Rational) IsInteger() bool { return a.rat().IsInt() }

// Floor returns the greatest integer <= a.
func (a Rational) Floor() Rational {
	n, d := a.rat().Num(), a.rat().Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(n, d, m) // Euclidean division: m in [0, d)
	return NewFromBigInt(q)
}

// Ceil returns the smallest integer >= a.
func (a Rational) Ceil() Rational {
	if a.IsInteger() {
		return a
	}
	return a.Floor().Add(OneR)
}

// FloorInt returns Floor as a *big.Int.
func (a Rational) FloorInt() *big.Int {
	return a.Floor().rat().Num()
}

// Mid returns the exact arithmetic mean of a and b.
func Mid(a, b Rational) Rational {
	return a.Add(b).Quo(NewFromInt64(2))
}

// GCD returns gcd(|a|, |b|) for integer-valued rationals a, b.
func GCD(a, b Rational) Rational {
	if !a.IsInteger() || !b.IsInteger() {
		panic("numkit: GCD requires integer-valued rationals")
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.FloorInt()), new(big.Int).Abs(b.FloorInt()))
	return NewFromBigInt(g)
}

// Mod returns a mod b (Euclidean, result in [0, |b|)) for integer-valued a, b.
func Mod(a, b Rational) Rational {
	if !a.IsInteger() || !b.IsInteger() {
		panic("numkit: Mod requires integer-valued rationals")
	}
	m := new(big.Int).Mod(a.FloorInt(), new(big.Int).Abs(b.FloorInt()))
	return NewFromBigInt(m)
}

// SqrtFloor returns floor(sqrt(a)) for a non-negative integer-valued a.
func SqrtFloor(a Rational) Rational {
	if a.Sign() == Negative {
		panic("numkit: SqrtFloor of negative value")
	}
	if !a.IsInteger() {
		panic("numkit: SqrtFloor requires an integer-valued rational")
	}
	return NewFromBigInt(new(big.Int).Sqrt(a.FloorInt()))
}

func (a Rational) String() string {
	if a.IsInteger() {
		return a.rat().Num().String()
	}
	return a.rat().RatString()
}

func (a Rational) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, a.String())
}

// Hash mixes the numerator and denominator words of the reduced fraction
// through a 128-bit FNV-style accumulator, folded to a uint64. It is a
// bucket hint only: equality (and therefore correctness of anything keyed
// on it) must still be checked with Equal, never inferred from equal
// hashes.
func (a Rational) Hash() uint64 {
	const fnvPrime64 = 1099511628211

	lo, hi := uint64(0xcbf29ce484222325), uint64(0x9e3779b97f4a7c15)
	mix := func(words []big.Word) {
		for _, w := range words {
			lo = (lo ^ uint64(w)) * fnvPrime64
			hi = (hi ^ uint64(w)) * fnvPrime64
			lo, hi = hi, lo^hi
		}
	}
	mix(a.rat().Num().Bits())
	mix(a.rat().Denom().Bits())

	acc := uint128.New(lo, hi)
	folded := acc.Big()
	return folded.Uint64() ^ (lo ^ hi)
}
