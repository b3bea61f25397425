package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/refinly/loan-referral/internal/usecase"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var newLeadTemplate = template.Must(template.ParseFS(templateFS, "templates/new_lead.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

// SendNewLead mails the lead summary to every address in to.
func (s *EmailSender) SendNewLead(to []string, n usecase.LeadNotification) error {
	if len(to) == 0 {
		return nil
	}

	m, err := s.newLeadMessage(to, n)
	if err != nil {
		return err
	}

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead %d e-mail: %w", n.LeadID, err)
	}
	return nil
}

func (s *EmailSender) newLeadMessage(to []string, n usecase.LeadNotification) (*gomail.Message, error) {
	body, err := renderNewLead(n)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("New lead #%d: %s", n.LeadID, n.Name))
	m.SetBody("text/plain", usecase.FormatLeadNotification(n))
	m.AddAlternative("text/html", body)
	return m, nil
}

func renderNewLead(n usecase.LeadNotification) (string, error) {
	data := NewLeadEmailData{
		LeadID:           n.LeadID,
		Name:             n.Name,
		Age:              n.Age,
		LoanAmount:       fmt.Sprintf("%.2f", n.LoanAmount),
		LoanTenure:       n.LoanTenure,
		CurrentRepayment: fmt.Sprintf("%.2f", n.CurrentRepayment),
		ReferrerName:     n.ReferrerName,
		Status:           n.Status,
	}

	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render lead e-mail: %w", err)
	}
	return body.String(), nil
}
