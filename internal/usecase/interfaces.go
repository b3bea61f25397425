package usecase

import (
	"context"
	"time"

	"github.com/refinly/loan-referral/internal/infra/integration/whatsapp"
)

type MessageSender interface {
	Send(ctx context.Context, to, body string) whatsapp.SendResult
}

type Completer interface {
	Complete(ctx context.Context, userText string) (string, error)
}

type PresetMatcher interface {
	Match(text string) (string, bool)
}

type DedupeStore interface {
	FirstSeen(ctx context.Context, id string) (bool, error)
}

type AdminNotifier interface {
	NotifyNewLead(ctx context.Context, n LeadNotification) error
}

type LeadEmailSender interface {
	SendNewLead(to []string, n LeadNotification) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) bool
}

type TokenIssuer interface {
	CreateAccessToken(userID int64, role, email string) (string, error)
	TTL() time.Duration
}
