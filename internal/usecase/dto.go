package usecase

import "github.com/refinly/loan-referral/internal/entity"

// SubmitLeadInput uses pointers so an absent field can be told apart from a
// present one.
type SubmitLeadInput struct {
	Name             *string  `json:"name"`
	Age              *int     `json:"age"`
	LoanAmount       *float64 `json:"loan_amount"`
	LoanTenure       *int     `json:"loan_tenure"`
	CurrentRepayment *float64 `json:"current_repayment"`
}

type SuitablePackage struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	InterestRate       float64 `json:"interest_rate"`
	TenureOptions      []int   `json:"tenure_options"`
	EstimatedRepayment float64 `json:"estimated_repayment"`
}

type SubmitLeadOutput struct {
	Message             string            `json:"message"`
	LeadID              int64             `json:"lead_id"`
	SuitablePackages    []SuitablePackage `json:"suitable_packages"`
	CalculatedRepayment float64           `json:"calculated_repayment"`
}

// LeadNotification is what admins are told about a new lead.
type LeadNotification struct {
	LeadID           int64   `json:"lead_id"`
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	LoanAmount       float64 `json:"loan_amount"`
	LoanTenure       int     `json:"loan_tenure"`
	CurrentRepayment float64 `json:"current_repayment"`
	ReferrerName     string  `json:"referrer_name"`
	Status           string  `json:"status"`
}

func NewLeadNotification(lead *entity.Lead, referrer *entity.User) LeadNotification {
	return LeadNotification{
		LeadID:           lead.ID,
		Name:             lead.Name,
		Age:              lead.Age,
		LoanAmount:       lead.LoanAmount,
		LoanTenure:       lead.LoanTenure,
		CurrentRepayment: lead.CurrentRepayment,
		ReferrerName:     referrer.Name,
		Status:           string(lead.Status),
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
}
