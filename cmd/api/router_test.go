package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/refinly/loan-referral/internal/entity"
	"github.com/refinly/loan-referral/internal/infra/auth"
	"github.com/refinly/loan-referral/internal/infra/http/handlers"
	"github.com/refinly/loan-referral/internal/usecase"
)

type stubMessages struct{}

func (stubMessages) Execute(context.Context, *usecase.WebhookPayload) (string, error) {
	return usecase.StatusNoMessages, nil
}

type stubLeads struct{}

func (stubLeads) Execute(_ context.Context, _ int64, _ usecase.SubmitLeadInput) (*usecase.SubmitLeadOutput, error) {
	return &usecase.SubmitLeadOutput{Message: usecase.MsgLeadSubmitted, LeadID: 1, SuitablePackages: []usecase.SuitablePackage{}}, nil
}

type stubRegister struct{}

func (stubRegister) Execute(context.Context, usecase.RegisterInput) (*entity.User, error) {
	return &entity.User{ID: 1}, nil
}

type stubLogin struct{}

func (stubLogin) Execute(context.Context, usecase.LoginInput) (*usecase.LoginOutput, error) {
	return &usecase.LoginOutput{AccessToken: "t", TokenType: usecase.TokenTypeBearer}, nil
}

func testRouter(t *testing.T, tokens *auth.TokenManager) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zap.NewNop()
	return newRouter(routerDeps{
		Logger:       log,
		Tokens:       tokens,
		Webhook:      handlers.NewWebhookHandler("verify-me", "", stubMessages{}, log),
		Leads:        handlers.NewLeadHandler(stubLeads{}, log),
		Auth:         handlers.NewAuthHandler(stubRegister{}, stubLogin{}, log),
		Health:       handlers.NewHealthHandler("test", map[string]handlers.Check{}),
		LoginLimiter: handlers.NewRateLimiter(ctx, 10, time.Minute, false),
		CORSOrigins:  []string{"*"},
	})
}

func TestRouter(t *testing.T) {
	tokens := auth.NewTokenManager("router-secret", time.Hour)
	referrer, _ := tokens.CreateAccessToken(1, "referrer", "r@example.com")
	agent, _ := tokens.CreateAccessToken(2, "agent", "a@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
		want   string
	}{
		{"unknown route", http.MethodGet, "/does-not-exist", "", "", http.StatusNotFound, `{"error":"Resource not found"}`},
		{"wrong method", http.MethodGet, "/submit-lead", "", "", http.StatusMethodNotAllowed, `{"error":"Method not allowed"}`},
		{"wrong method under prefix", http.MethodDelete, "/api/chatbot/webhook", "", "", http.StatusMethodNotAllowed, `{"error":"Method not allowed"}`},
		{"verify", http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=abc", "", "", http.StatusOK, "abc"},
		{"verify under prefix", http.MethodGet, "/api/chatbot/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=abc", "", "", http.StatusOK, "abc"},
		{"webhook post", http.MethodPost, "/api/chatbot/webhook", `{"entry":[]}`, "", http.StatusOK, `{"status":"no messages"}`},
		{"lead without token", http.MethodPost, "/submit-lead", `{}`, "", http.StatusUnauthorized, `{"error":"UNAUTHORIZED"}`},
		{"lead wrong role", http.MethodPost, "/submit-lead", `{}`, agent, http.StatusForbidden, `{"error":"FORBIDDEN"}`},
		{"lead ok", http.MethodPost, "/api/chatbot/submit-lead", `{}`, referrer, http.StatusCreated, ""},
		{"login", http.MethodPost, "/api/auth/login", `{}`, "", http.StatusOK, ""},
		{"health", http.MethodGet, "/health", "", "", http.StatusOK, ""},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK, ""},
	}

	router := testRouter(t, tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			switch {
			case tt.want == "":
			case strings.HasPrefix(tt.want, "{"):
				assert.JSONEq(t, tt.want, rec.Body.String())
			default:
				assert.Equal(t, tt.want, rec.Body.String())
			}
		})
	}
}
