package usecase

import (
	"context"
	"errors"

	"github.com/refinly/loan-referral/internal/infra/metrics"
	"go.uber.org/zap"
)

const ApologyMessage = "I'm sorry, I'm having trouble processing your request at the moment."

// Reply outcomes reported back to the webhook caller.
const (
	StatusNoMessages   = "no messages"
	StatusDuplicate    = "duplicate ignored"
	StatusPresetSent   = "preset answer sent"
	StatusMessageReply = "message processed"
)

type HandleMessageUseCase struct {
	Presets PresetMatcher
	LLM     Completer
	Sender  MessageSender
	Dedupe  DedupeStore
	Logger  *zap.Logger
}

func NewHandleMessageUseCase(
	presets PresetMatcher,
	llm Completer,
	sender MessageSender,
	dedupe DedupeStore,
	logger *zap.Logger,
) *HandleMessageUseCase {
	return &HandleMessageUseCase{
		Presets: presets,
		LLM:     llm,
		Sender:  sender,
		Dedupe:  dedupe,
		Logger:  logger,
	}
}

// Execute answers the first message of a webhook delivery and returns the
// status string for the response body. Only ErrInvalidPayload is returned as
// an error; upstream failures are absorbed.
func (uc *HandleMessageUseCase) Execute(ctx context.Context, payload *WebhookPayload) (string, error) {
	msg, err := payload.FirstMessage()
	if errors.Is(err, ErrNoMessages) {
		return StatusNoMessages, nil
	}
	if err != nil {
		return "", err
	}

	if msg.ID != "" && uc.Dedupe != nil {
		firstSeen, err := uc.Dedupe.FirstSeen(ctx, msg.ID)
		if err != nil {
			uc.Logger.Warn("dedupe lookup failed", zap.String("message_id", msg.ID), zap.Error(err))
			metrics.RecordIntegrationError("redis")
		} else if !firstSeen {
			uc.Logger.Info("duplicate message ignored", zap.String("message_id", msg.ID))
			return StatusDuplicate, nil
		}
	}

	if answer, ok := uc.Presets.Match(msg.Text); ok {
		metrics.RecordChatbotReply("preset")
		uc.reply(ctx, msg.From, answer)
		return StatusPresetSent, nil
	}

	uc.reply(ctx, msg.From, uc.complete(ctx, msg.Text))
	return StatusMessageReply, nil
}

func (uc *HandleMessageUseCase) complete(ctx context.Context, text string) string {
	if uc.LLM == nil {
		metrics.RecordChatbotReply("fallback")
		return ApologyMessage
	}

	reply, err := uc.LLM.Complete(ctx, text)
	if err != nil {
		uc.Logger.Error("completion failed", zap.Error(err))
		metrics.RecordIntegrationError("openai")
		metrics.RecordChatbotReply("fallback")
		return ApologyMessage
	}

	metrics.RecordChatbotReply("llm")
	return reply
}

func (uc *HandleMessageUseCase) reply(ctx context.Context, to, body string) {
	res := uc.Sender.Send(ctx, to, body)
	if !res.Delivered {
		uc.Logger.Warn("reply not delivered",
			zap.String("to", to),
			zap.Int("status_code", res.StatusCode),
			zap.String("reason", res.Reason),
		)
		return
	}
	uc.Logger.Debug("reply sent", zap.String("to", to), zap.String("wa_message_id", res.MessageID))
}
