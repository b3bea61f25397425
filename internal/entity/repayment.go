package entity

import (
	"errors"
	"math"
)

var ErrInvalidTenure = errors.New("loan tenure must be at least one year")

// CalculateRepayment returns the monthly instalment for an amortized loan,
// rounded to cents. annualRate is a percentage (5.5 means 5.5%).
func CalculateRepayment(loanAmount float64, tenureYears int, annualRate float64) (float64, error) {
	if tenureYears <= 0 {
		return 0, ErrInvalidTenure
	}

	monthlyRate := annualRate / 100 / 12
	payments := float64(tenureYears * 12)

	if monthlyRate == 0 {
		return roundCents(loanAmount / payments), nil
	}

	monthly := (loanAmount * monthlyRate) / (1 - math.Pow(1+monthlyRate, -payments))
	return roundCents(monthly), nil
}

// TotalPayable is what the borrower pays over the whole tenure.
func TotalPayable(monthly float64, tenureYears int) float64 {
	return roundCents(monthly * float64(tenureYears*12))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
