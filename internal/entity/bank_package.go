package entity

import "context"

// BankPackage is a loan product offered for an amount range.
type BankPackage struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	MinAmount     float64 `json:"min_amount"`
	MaxAmount     float64 `json:"max_amount"`
	InterestRate  float64 `json:"interest_rate"` // annual %
	TenureOptions []int   `json:"tenure_options"`
}

// Covers reports whether amount falls inside [MinAmount, MaxAmount].
func (p BankPackage) Covers(amount float64) bool {
	return p.MinAmount <= amount && amount <= p.MaxAmount
}

type BankPackageRepositoryInterface interface {
	FindAll(ctx context.Context) ([]*BankPackage, error)
}
