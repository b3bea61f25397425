package mail

import "gopkg.in/gomail.v2"

type NewLeadEmailData struct {
	LeadID           int64
	Name             string
	Age              int
	LoanAmount       string
	LoanTenure       int
	CurrentRepayment string
	ReferrerName     string
	Status           string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	Dialer Dialer
}
