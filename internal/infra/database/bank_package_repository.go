package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/refinly/loan-referral/internal/entity"
)

type BankPackageRepository struct {
	DB *sqlx.DB
}

func NewBankPackageRepository(db *sqlx.DB) *BankPackageRepository {
	return &BankPackageRepository{DB: db}
}

type bankPackageRow struct {
	ID            int64         `db:"id"`
	Name          string        `db:"name"`
	MinAmount     float64       `db:"min_amount"`
	MaxAmount     float64       `db:"max_amount"`
	InterestRate  float64       `db:"interest_rate"`
	TenureOptions pq.Int64Array `db:"tenure_options"`
}

func (r *BankPackageRepository) FindAll(ctx context.Context) ([]*entity.BankPackage, error) {
	query := `SELECT id, name, min_amount, max_amount, interest_rate, tenure_options FROM bank_packages ORDER BY id`

	var rows []bankPackageRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list bank packages: %w", err)
	}

	packages := make([]*entity.BankPackage, 0, len(rows))
	for _, row := range rows {
		tenures := make([]int, 0, len(row.TenureOptions))
		for _, t := range row.TenureOptions {
			tenures = append(tenures, int(t))
		}
		packages = append(packages, &entity.BankPackage{
			ID:            row.ID,
			Name:          row.Name,
			MinAmount:     row.MinAmount,
			MaxAmount:     row.MaxAmount,
			InterestRate:  row.InterestRate,
			TenureOptions: tenures,
		})
	}
	return packages, nil
}
