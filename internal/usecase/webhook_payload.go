package usecase

import (
	"fmt"

	"github.com/refinly/loan-referral/internal/entity"
)

// WebhookPayload mirrors the parts of the WhatsApp delivery callback we read.
// Pointer and slice fields stay nil when the provider omits them.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string        `json:"field"`
	Value *WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	ID        string       `json:"id"`
	From      *string      `json:"from"`
	Timestamp string       `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *WebhookText `json:"text"`
}

type WebhookText struct {
	Body string `json:"body"`
}

// InboundMessage is a parsed chat message ready for the bot.
type InboundMessage struct {
	ID   string
	From string
	Text string // trimmed, lower-cased
}

// FirstMessage walks entry[0].changes[0].value.messages[0]. It returns
// ErrNoMessages when the message list is empty and ErrInvalidPayload when any
// level above it is missing.
func (p *WebhookPayload) FirstMessage() (*InboundMessage, error) {
	if p == nil || len(p.Entry) == 0 {
		return nil, fmt.Errorf("%w: missing entry", ErrInvalidPayload)
	}
	if len(p.Entry[0].Changes) == 0 {
		return nil, fmt.Errorf("%w: missing changes", ErrInvalidPayload)
	}
	value := p.Entry[0].Changes[0].Value
	if value == nil {
		return nil, fmt.Errorf("%w: missing value", ErrInvalidPayload)
	}
	if len(value.Messages) == 0 {
		return nil, ErrNoMessages
	}

	msg := value.Messages[0]
	if msg.From == nil || *msg.From == "" {
		return nil, fmt.Errorf("%w: missing sender", ErrInvalidPayload)
	}

	var text string
	if msg.Text != nil {
		text = entity.NormalizeMessage(msg.Text.Body)
	}

	return &InboundMessage{ID: msg.ID, From: *msg.From, Text: text}, nil
}
