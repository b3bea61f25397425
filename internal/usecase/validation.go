package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// bcrypt ignores input past this length and golang.org/x/crypto rejects it.
const maxPasswordBytes = 72

const (
	MsgAllFieldsRequired = "All fields are required."
	MsgInvalidLead       = "Invalid lead data."
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when an input has one or more invalid fields.
type ValidationErrors struct {
	Message string
	Fields  []ValidationError
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return e.Message + " " + strings.Join(parts, ", ")
}

// ValidateSubmitLeadInput treats absent and zero values as missing.
func ValidateSubmitLeadInput(in SubmitLeadInput) []ValidationError {
	var errs []ValidationError

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if utf8.RuneCountInString(*in.Name) > 100 {
		errs = append(errs, ValidationError{"name", "must not exceed 100 characters"})
	}

	switch {
	case in.Age == nil || *in.Age == 0:
		errs = append(errs, ValidationError{"age", "is required"})
	case *in.Age < 0:
		errs = append(errs, ValidationError{"age", "must be positive"})
	}

	switch {
	case in.LoanAmount == nil || *in.LoanAmount == 0:
		errs = append(errs, ValidationError{"loan_amount", "is required"})
	case *in.LoanAmount < 0:
		errs = append(errs, ValidationError{"loan_amount", "must be positive"})
	}

	switch {
	case in.LoanTenure == nil || *in.LoanTenure == 0:
		errs = append(errs, ValidationError{"loan_tenure", "is required"})
	case *in.LoanTenure < 0:
		errs = append(errs, ValidationError{"loan_tenure", "must be at least one year"})
	}

	switch {
	case in.CurrentRepayment == nil || *in.CurrentRepayment == 0:
		errs = append(errs, ValidationError{"current_repayment", "is required"})
	case *in.CurrentRepayment < 0:
		errs = append(errs, ValidationError{"current_repayment", "must be positive"})
	}

	return errs
}

func ValidateRegisterInput(in RegisterInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if len(in.Password) < 8 {
		errs = append(errs, ValidationError{"password", "must have at least 8 characters"})
	} else if len(in.Password) > maxPasswordBytes {
		errs = append(errs, ValidationError{"password", "must not exceed 72 bytes"})
	}

	return errs
}

// LeadValidationMessage picks the summary line for a failed lead submission.
func LeadValidationMessage(errs []ValidationError) string {
	for _, e := range errs {
		if e.Message == "is required" {
			return MsgAllFieldsRequired
		}
	}
	return MsgInvalidLead
}
