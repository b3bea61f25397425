package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/refinly/loan-referral/internal/usecase"
	"go.uber.org/zap"
)

type MessageHandler interface {
	Execute(ctx context.Context, payload *usecase.WebhookPayload) (string, error)
}

const signatureHeader = "X-Hub-Signature-256"

type WebhookHandler struct {
	VerifyToken string
	AppSecret   string // signature checks are skipped when empty
	UseCase     MessageHandler
	Logger      *zap.Logger
}

func NewWebhookHandler(verifyToken, appSecret string, uc MessageHandler, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		VerifyToken: verifyToken,
		AppSecret:   appSecret,
		UseCase:     uc,
		Logger:      logger,
	}
}

// Verify answers the provider's subscription handshake.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if mode == "" || token == "" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Hello World"))
		return
	}

	if mode == "subscribe" && h.tokenMatches(token) {
		h.Logger.Info("webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	h.Logger.Warn("webhook verification failed", zap.String("mode", mode))
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte("Verification token mismatch"))
}

func (h *WebhookHandler) tokenMatches(token string) bool {
	if h.VerifyToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.VerifyToken)) == 1
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	if h.AppSecret != "" && !validSignature(h.AppSecret, body, r.Header.Get(signatureHeader)) {
		h.Logger.Warn("webhook signature rejected")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid signature"})
		return
	}

	var payload usecase.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.Logger.Warn("webhook body is not valid JSON", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	status, err := h.UseCase.Execute(r.Context(), &payload)
	if errors.Is(err, usecase.ErrInvalidPayload) {
		h.Logger.Warn("invalid webhook payload", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}
	if err != nil {
		h.Logger.Error("webhook processing failed", zap.Error(err))
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// validSignature checks a "sha256=<hex>" HMAC of the raw body.
func validSignature(secret string, body []byte, header string) bool {
	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
