package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// FormatLeadNotification renders the WhatsApp markdown body sent to admins.
func FormatLeadNotification(n LeadNotification) string {
	var b strings.Builder
	b.WriteString("📣 *New Lead Submitted*\n\n")
	fmt.Fprintf(&b, "*Lead ID:* %d\n", n.LeadID)
	fmt.Fprintf(&b, "*Name:* %s\n", n.Name)
	fmt.Fprintf(&b, "*Age:* %d\n", n.Age)
	fmt.Fprintf(&b, "*Loan Amount:* $%.2f\n", n.LoanAmount)
	fmt.Fprintf(&b, "*Loan Tenure:* %d years\n", n.LoanTenure)
	fmt.Fprintf(&b, "*Current Repayment:* $%.2f\n", n.CurrentRepayment)
	fmt.Fprintf(&b, "*Referrer:* %s\n", n.ReferrerName)
	fmt.Fprintf(&b, "*Status:* %s\n", n.Status)
	return b.String()
}

// DirectAdminNotifier messages every admin number in order and, when an
// e-mail sender is set, mails a copy to the admin addresses.
type DirectAdminNotifier struct {
	Sender  MessageSender
	Numbers []string
	Mailer  LeadEmailSender
	Emails  []string
	Logger  *zap.Logger
}

func NewDirectAdminNotifier(sender MessageSender, numbers []string, mailer LeadEmailSender, emails []string, logger *zap.Logger) *DirectAdminNotifier {
	return &DirectAdminNotifier{
		Sender:  sender,
		Numbers: numbers,
		Mailer:  mailer,
		Emails:  emails,
		Logger:  logger,
	}
}

// NotifyNewLead returns ErrNotDelivered when admin numbers are configured but
// none of them received the message.
func (n *DirectAdminNotifier) NotifyNewLead(ctx context.Context, notification LeadNotification) error {
	delivered, attempted := n.Broadcast(ctx, FormatLeadNotification(notification))

	if n.Mailer != nil && len(n.Emails) > 0 {
		if err := n.Mailer.SendNewLead(n.Emails, notification); err != nil {
			n.Logger.Error("lead e-mail failed", zap.Int64("lead_id", notification.LeadID), zap.Error(err))
		}
	}

	if attempted > 0 && delivered == 0 {
		return fmt.Errorf("lead %d: %w", notification.LeadID, ErrNotDelivered)
	}
	return nil
}

// Broadcast sends body to each non-blank admin number and reports how many
// sends succeeded out of how many were tried.
func (n *DirectAdminNotifier) Broadcast(ctx context.Context, body string) (delivered, attempted int) {
	for _, number := range n.Numbers {
		number = strings.TrimSpace(number)
		if number == "" {
			continue
		}
		attempted++

		res := n.Sender.Send(ctx, number, body)
		if !res.Delivered {
			n.Logger.Warn("admin notification not delivered",
				zap.String("admin_number", number),
				zap.Int("status_code", res.StatusCode),
				zap.String("reason", res.Reason),
			)
			continue
		}
		delivered++
		n.Logger.Info("notification sent to admin", zap.String("admin_number", number))
	}
	return delivered, attempted
}

// FallbackNotifier tries Primary and falls back to Secondary when it fails.
type FallbackNotifier struct {
	Primary   AdminNotifier
	Secondary AdminNotifier
	Logger    *zap.Logger
}

func (f *FallbackNotifier) NotifyNewLead(ctx context.Context, notification LeadNotification) error {
	err := f.Primary.NotifyNewLead(ctx, notification)
	if err == nil {
		return nil
	}
	f.Logger.Warn("primary notifier failed, notifying inline",
		zap.Int64("lead_id", notification.LeadID),
		zap.Error(err),
	)
	return f.Secondary.NotifyNewLead(ctx, notification)
}
