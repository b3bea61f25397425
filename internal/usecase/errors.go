package usecase

import "errors"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeReferrerNotFound   = "REFERRER_NOT_FOUND"
	CodeEmailExists        = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDatabase           = "DATABASE_ERROR"
	CodeHashing            = "HASHING_ERROR"
	CodeToken              = "TOKEN_ERROR"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNoMessages     = errors.New("no messages")
	ErrNotDelivered   = errors.New("notification not delivered to any admin")
)

// DomainError is a business rule failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is an infrastructure failure. Message is for logs only.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
