package kernel

import (
	"fmt"

	"yard/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Weight is a mass in kilograms. Order quantities, booked volumes and measured tare/brutto/netto
// all use it, so sums in the order ledger stay exact.
//
// The zero value is 0 kg and is valid.
type Weight struct {
	kg decimal.Decimal
}

// NewWeight validates that kg is not negative.
func NewWeight(kg decimal.Decimal) (Weight, error) {
	if kg.IsNegative() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s kg is negative", kg))
	}
	return Weight{kg: kg}, nil
}

// Kilograms builds a Weight from a whole number of kilograms without validation.
// Intended for constants and tests.
func Kilograms(kg int64) Weight {
	return Weight{kg: decimal.NewFromInt(kg)}
}

// WeightFromFloat converts an API value in kilograms.
func WeightFromFloat(kg float64) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(kg))
}

func (w Weight) Decimal() decimal.Decimal {
	return w.kg
}

func (w Weight) Float64() float64 {
	return w.kg.InexactFloat64()
}

func (w Weight) Add(other Weight) Weight {
	return Weight{kg: w.kg.Add(other.kg)}
}

// Sub may produce a negative weight; callers decide whether that is an error.
func (w Weight) Sub(other Weight) Weight {
	return Weight{kg: w.kg.Sub(other.kg)}
}

func (w Weight) Min(other Weight) Weight {
	if other.kg.LessThan(w.kg) {
		return other
	}
	return w
}

func (w Weight) LessThan(other Weight) bool {
	return w.kg.LessThan(other.kg)
}

func (w Weight) GreaterThan(other Weight) bool {
	return w.kg.GreaterThan(other.kg)
}

func (w Weight) IsEqual(other Weight) bool {
	return w.kg.Equal(other.kg)
}

func (w Weight) IsZero() bool {
	return w.kg.IsZero()
}

func (w Weight) IsNegative() bool {
	return w.kg.IsNegative()
}

func (w Weight) IsPositive() bool {
	return w.kg.IsPositive()
}

func (w Weight) String() string {
	return w.kg.String() + " kg"
}
