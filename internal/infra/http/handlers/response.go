package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/refinly/loan-referral/internal/usecase"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type validationResponse struct {
	Message string                    `json:"message"`
	Errors  []usecase.ValidationError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// writeUseCaseError maps the usecase error taxonomy onto HTTP responses.
func writeUseCaseError(w http.ResponseWriter, log *zap.Logger, err error) {
	var verr *usecase.ValidationErrors
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Message: verr.Message, Errors: verr.Fields})
		return
	}

	var derr *usecase.DomainError
	if errors.As(err, &derr) {
		writeErrorResponse(w, domainStatus(derr.Code), derr.Code, derr.Message)
		return
	}

	var terr *usecase.TechnicalError
	if errors.As(err, &terr) {
		log.Error("technical error", zap.String("code", terr.Code), zap.Error(err))
	} else {
		log.Error("unhandled error", zap.Error(err))
	}
	writeInternalError(w)
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeReferrerNotFound, usecase.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case usecase.CodeEmailExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Resource not found"})
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}
