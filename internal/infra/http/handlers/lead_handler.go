package handlers

import (
	"context"
	"net/http"

	"github.com/refinly/loan-referral/internal/infra/http/middleware"
	"github.com/refinly/loan-referral/internal/usecase"
	"go.uber.org/zap"
)

type LeadSubmitter interface {
	Execute(ctx context.Context, referrerID int64, input usecase.SubmitLeadInput) (*usecase.SubmitLeadOutput, error)
}

type LeadHandler struct {
	SubmitLeadUC LeadSubmitter
	Logger       *zap.Logger
}

func NewLeadHandler(uc LeadSubmitter, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{SubmitLeadUC: uc, Logger: logger}
}

// Submit expects JWTAuth to have run; the caller is the referrer.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED"})
		return
	}
	referrerID, err := claims.UserID()
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED"})
		return
	}

	var input usecase.SubmitLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON.")
		return
	}

	output, err := h.SubmitLeadUC.Execute(r.Context(), referrerID, input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
