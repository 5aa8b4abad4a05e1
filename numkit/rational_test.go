package numkit

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := assert.New(t)

	x := NewFromFraction(1, 2)
	y := NewFromFraction(1, 3)

	a.True(x.Add(y).Equal(NewFromFraction(5, 6)))
	a.True(x.Sub(y).Equal(NewFromFraction(1, 6)))
	a.True(x.Mul(y).Equal(NewFromFraction(1, 6)))
	a.True(x.Quo(y).Equal(NewFromFraction(3, 2)))
	a.True(x.Neg().Equal(NewFromFraction(-1, 2)))
	a.True(x.Neg().Abs().Equal(x))
}

func TestSign(t *testing.T) {
	a := assert.New(t)

	a.Equal(Positive, NewFromInt64(3).Sign())
	a.Equal(Negative, NewFromInt64(-3).Sign())
	a.Equal(Zero, NewFromInt64(0).Sign())
	a.True(ZeroR.IsZero())
}

func TestQuoByZeroPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewFromInt64(1).Quo(ZeroR)
	})
}

func TestFloorCeil(t *testing.T) {
	a := assert.New(t)

	half := NewFromFraction(3, 2)
	a.True(half.Floor().Equal(OneR))
	a.True(half.Ceil().Equal(NewFromInt64(2)))

	negHalf := NewFromFraction(-3, 2)
	a.True(negHalf.Floor().Equal(NewFromInt64(-2)))
	a.True(negHalf.Ceil().Equal(NewFromInt64(-1)))

	a.True(NewFromInt64(4).Floor().Equal(NewFromInt64(4)))
	a.True(NewFromInt64(4).Ceil().Equal(NewFromInt64(4)))
}

func TestGCDAndMod(t *testing.T) {
	a := assert.New(t)

	a.True(GCD(NewFromInt64(12), NewFromInt64(18)).Equal(NewFromInt64(6)))
	a.True(Mod(NewFromInt64(-7), NewFromInt64(3)).Equal(NewFromInt64(2)))
}

func TestSqrtFloor(t *testing.T) {
	a := assert.New(t)

	a.True(SqrtFloor(NewFromInt64(17)).Equal(NewFromInt64(4)))
	a.True(SqrtFloor(NewFromInt64(16)).Equal(NewFromInt64(4)))
	a.Panics(func() { SqrtFloor(NewFromInt64(-1)) })
}

func TestStringAndBigRatRoundtrip(t *testing.T) {
	a := assert.New(t)

	a.Equal("3", NewFromInt64(3).String())
	a.Equal("1/3", NewFromFraction(1, 3).String())

	r := big.NewRat(5, 7)
	rat := NewFromBigRat(r)
	a.Equal("5/7", rat.String())
	// mutating the original big.Rat must not affect the wrapped copy.
	r.SetInt64(1)
	a.Equal("5/7", rat.String())
}

func TestHashIsBucketHintNotEquality(t *testing.T) {
	a := assert.New(t)

	x := NewFromFraction(1, 2)
	y := NewFromFraction(2, 4)
	a.True(x.Equal(y))
	a.Equal(x.Hash(), y.Hash())
}
