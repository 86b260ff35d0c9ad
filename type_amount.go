package pietree

import "github.com/shopspring/decimal"

// Amount is a monetary scalar. The engine deals in a single implicit
// currency: conversion is out of scope, so Amount carries no currency code.
// Display formatting lives in the renderer package.
type Amount struct {
	value decimal.Decimal
}

func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func (a Amount) Equal(b Amount) bool       { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool    { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }
func (a Amount) Add(b Amount) Amount       { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount       { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount               { return Amount{value: a.value.Neg()} }
func (a Amount) IsZero() bool              { return a.value.IsZero() }
func (a Amount) IsPositive() bool          { return a.value.IsPositive() }
func (a Amount) IsNegative() bool          { return a.value.IsNegative() }
func (a Amount) String() string            { return a.value.String() }

// Mul scales the amount by a share count (price times quantity).
func (a Amount) Mul(q Quantity) Amount { return Amount{value: a.value.Mul(q.value)} }

// Div divides the amount by a share count (cost basis ÷ shares).
// Dividing by a zero quantity panics; callers guard with IsZero.
func (a Amount) Div(q Quantity) Amount { return Amount{value: a.value.Div(q.value)} }

// Ratio returns a/b as a plain float. Used for percentage computations
// where exactness no longer matters.
func (a Amount) Ratio(b Amount) float64 { return a.value.Div(b.value).InexactFloat64() }

// InexactFloat64 returns the nearest float64 representation of the amount.
func (a Amount) InexactFloat64() float64 { return a.value.InexactFloat64() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}
func (a *Amount) UnmarshalJSON(bytes []byte) error {
	return a.value.UnmarshalJSON(bytes)
}
