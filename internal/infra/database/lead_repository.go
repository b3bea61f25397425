package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/refinly/loan-referral/internal/entity"
)

type LeadRepository struct {
	DB *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

type leadRow struct {
	ID               int64     `db:"id"`
	ReferrerID       int64     `db:"referrer_id"`
	Name             string    `db:"name"`
	Age              int       `db:"age"`
	LoanAmount       float64   `db:"loan_amount"`
	LoanTenure       int       `db:"loan_tenure"`
	CurrentRepayment float64   `db:"current_repayment"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r leadRow) toEntity() *entity.Lead {
	return &entity.Lead{
		ID:               r.ID,
		ReferrerID:       r.ReferrerID,
		Name:             r.Name,
		Age:              r.Age,
		LoanAmount:       r.LoanAmount,
		LoanTenure:       r.LoanTenure,
		CurrentRepayment: r.CurrentRepayment,
		Status:           entity.LeadStatus(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Create inserts the lead in its own transaction. Any failure rolls back.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lead tx: %w", err)
	}
	// no-op once committed
	defer tx.Rollback()

	if lead.Status == "" {
		lead.Status = entity.LeadStatusNew
	}

	query := `
		INSERT INTO leads (referrer_id, name, age, loan_amount, loan_tenure, current_repayment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowxContext(ctx, query,
		lead.ReferrerID,
		lead.Name,
		lead.Age,
		lead.LoanAmount,
		lead.LoanTenure,
		lead.CurrentRepayment,
		string(lead.Status),
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return entity.ErrReferrerNotFound
		}
		return fmt.Errorf("insert lead: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lead: %w", err)
	}

	return nil
}

// ListStale returns leads still in status that were created before olderThan,
// oldest first.
func (r *LeadRepository) ListStale(ctx context.Context, status entity.LeadStatus, olderThan time.Time) ([]*entity.Lead, error) {
	query := `
		SELECT id, referrer_id, name, age, loan_amount, loan_tenure, current_repayment, status, created_at, updated_at
		FROM leads
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC
	`

	var rows []leadRow
	if err := r.DB.SelectContext(ctx, &rows, query, string(status), olderThan); err != nil {
		return nil, fmt.Errorf("list stale leads: %w", err)
	}

	leads := make([]*entity.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, row.toEntity())
	}
	return leads, nil
}
