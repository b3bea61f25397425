package entity

import (
	"context"
	"errors"
	"time"
)

var ErrReferrerNotFound = errors.New("referrer does not exist")

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "New"
	LeadStatusInProgress LeadStatus = "In Progress"
	LeadStatusClosed     LeadStatus = "Closed"
)

// Lead is a prospective refinancing customer submitted by a referrer.
type Lead struct {
	ID               int64      `json:"id"`
	ReferrerID       int64      `json:"referrer_id"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	LoanAmount       float64    `json:"loan_amount"`
	LoanTenure       int        `json:"loan_tenure"` // years
	CurrentRepayment float64    `json:"current_repayment"`
	Status           LeadStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewLead builds a lead in the New state.
func NewLead(referrerID int64, name string, age int, loanAmount float64, tenure int, currentRepayment float64) *Lead {
	return &Lead{
		ReferrerID:       referrerID,
		Name:             name,
		Age:              age,
		LoanAmount:       loanAmount,
		LoanTenure:       tenure,
		CurrentRepayment: currentRepayment,
		Status:           LeadStatusNew,
	}
}

type LeadRepositoryInterface interface {
	// Create inserts the lead and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, lead *Lead) error
	ListStale(ctx context.Context, status LeadStatus, olderThan time.Time) ([]*Lead, error)
}
