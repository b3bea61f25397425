package handlers

import (
	"context"
	"net/http"

	"github.com/refinly/loan-referral/internal/entity"
	"github.com/refinly/loan-referral/internal/usecase"
	"go.uber.org/zap"
)

type Registerer interface {
	Execute(ctx context.Context, input usecase.RegisterInput) (*entity.User, error)
}

type Authenticator interface {
	Execute(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
}

type AuthHandler struct {
	RegisterUC Registerer
	LoginUC    Authenticator
	Logger     *zap.Logger
}

func NewAuthHandler(register Registerer, login Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{RegisterUC: register, LoginUC: login, Logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON.")
		return
	}

	user, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON.")
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
